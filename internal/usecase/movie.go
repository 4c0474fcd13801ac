package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/manjitt2/Movie-bot/internal/domain"
)

type Movie struct {
	repo MovieRepository
}

func NewMovie(repo MovieRepository) *Movie {
	return &Movie{repo: repo}
}

// RecommendMovies resolves title to the first search hit and returns up to
// five movies recommended for it.
func (uc *Movie) RecommendMovies(ctx context.Context, title string) (domain.MovieRecommendations, error) {
	const op = "useCase.RecommendMovies"

	if strings.TrimSpace(title) == "" {
		return domain.MovieRecommendations{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyQuery)
	}

	movieID, found, err := uc.repo.FindMovieID(ctx, title)
	if err != nil {
		return domain.MovieRecommendations{}, fmt.Errorf("%s: search %q: %w", op, title, err)
	}
	if !found {
		return domain.MovieRecommendations{}, &domain.NotFoundError{Kind: domain.KindMovie, Title: title}
	}

	movies, err := uc.repo.FetchMovieRecommendations(ctx, movieID)
	if err != nil {
		return domain.MovieRecommendations{}, fmt.Errorf("%s: recommendations for %d: %w", op, movieID, err)
	}
	if len(movies) == 0 {
		return domain.MovieRecommendations{}, &domain.NoRecommendationsError{Kind: domain.KindMovie, Title: title}
	}

	return domain.MovieRecommendations{
		Query:  title,
		Movies: topN(movies, domain.MaxRecommendations),
	}, nil
}

func topN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
