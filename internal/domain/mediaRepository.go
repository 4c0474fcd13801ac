package domain

import "context"

type MovieRepository interface {
	FindMovieID(ctx context.Context, title string) (int, bool, error)
	FetchMovieRecommendations(ctx context.Context, movieID int) ([]MovieRecord, error)
}

type BookRepository interface {
	FindBookSubjects(ctx context.Context, title string) ([]string, error)
	FetchBooksBySubject(ctx context.Context, subject string) ([]BookRecord, error)
}
