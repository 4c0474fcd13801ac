package command

import (
	"context"

	"github.com/manjitt2/Movie-bot/internal/domain"
)

type MovieRecommender interface {
	RecommendMovies(ctx context.Context, title string) (domain.MovieRecommendations, error)
}

type BookRecommender interface {
	RecommendBooks(ctx context.Context, title string) (domain.BookRecommendations, error)
}
