package guardedRepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/manjitt2/Movie-bot/internal/domain"
	"github.com/manjitt2/Movie-bot/pkg/prometheus"
)

const (
	MoviesBreaker = "tmdb"
	BooksBreaker  = "openlibrary"

	tripAfterFailures = 5
	openTimeout       = 30 * time.Second
)

// GuardedRepo puts one circuit breaker in front of each upstream. It never
// retries; an open breaker fails the call immediately.
type GuardedRepo struct {
	movies   domain.MovieRepository
	books    domain.BookRepository
	moviesCB *gobreaker.CircuitBreaker[any]
	booksCB  *gobreaker.CircuitBreaker[any]
	log      *slog.Logger
}

func NewGuardedRepo(movies domain.MovieRepository, books domain.BookRepository, log *slog.Logger) *GuardedRepo {
	return &GuardedRepo{
		movies:   movies,
		books:    books,
		moviesCB: newBreaker(MoviesBreaker, log),
		booksCB:  newBreaker(BooksBreaker, log),
		log:      log,
	}
}

func newBreaker(name string, log *slog.Logger) *gobreaker.CircuitBreaker[any] {
	prometheus.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfterFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
			prometheus.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})
}

func (r *GuardedRepo) FindMovieID(ctx context.Context, title string) (int, bool, error) {
	type lookup struct {
		id    int
		found bool
	}
	res, err := execute(ctx, r, r.moviesCB, "FindMovieID", func() (lookup, error) {
		id, found, err := r.movies.FindMovieID(ctx, title)
		return lookup{id: id, found: found}, err
	})
	return res.id, res.found, err
}

func (r *GuardedRepo) FetchMovieRecommendations(ctx context.Context, movieID int) ([]domain.MovieRecord, error) {
	return execute(ctx, r, r.moviesCB, "FetchMovieRecommendations", func() ([]domain.MovieRecord, error) {
		return r.movies.FetchMovieRecommendations(ctx, movieID)
	})
}

func (r *GuardedRepo) FindBookSubjects(ctx context.Context, title string) ([]string, error) {
	return execute(ctx, r, r.booksCB, "FindBookSubjects", func() ([]string, error) {
		return r.books.FindBookSubjects(ctx, title)
	})
}

func (r *GuardedRepo) FetchBooksBySubject(ctx context.Context, subject string) ([]domain.BookRecord, error) {
	return execute(ctx, r, r.booksCB, "FetchBooksBySubject", func() ([]domain.BookRecord, error) {
		return r.books.FetchBooksBySubject(ctx, subject)
	})
}

func execute[T any](ctx context.Context, r *GuardedRepo, cb *gobreaker.CircuitBreaker[any], method string,
	fn func() (T, error)) (T, error) {
	const op = "guardedRepo.execute"
	var zero T

	result, err := cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return zero, err
		}
		prometheus.APIFailures.WithLabelValues(method).Inc()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			r.log.WarnContext(ctx, "upstream call rejected", "method", method, "breaker", cb.Name(), "error", err)
			return zero, fmt.Errorf("%s: %s: %w: %w", op, method, domain.ErrTransport, err)
		}
		r.log.ErrorContext(ctx, "upstream call failed", "method", method, "error", err)
		return zero, err
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%s: %s: unexpected result type %T", op, method, result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
