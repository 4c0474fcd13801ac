package usecase

import (
	"context"

	"github.com/manjitt2/Movie-bot/internal/domain"
)

type MovieRepository interface {
	FindMovieID(ctx context.Context, title string) (int, bool, error)
	FetchMovieRecommendations(ctx context.Context, movieID int) ([]domain.MovieRecord, error)
}

type BookRepository interface {
	FindBookSubjects(ctx context.Context, title string) ([]string, error)
	FetchBooksBySubject(ctx context.Context, subject string) ([]domain.BookRecord, error)
}
