package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/manjitt2/Movie-bot/internal/domain"
)

type Book struct {
	repo BookRepository
}

func NewBook(repo BookRepository) *Book {
	return &Book{repo: repo}
}

// RecommendBooks looks up the subjects of the first book matching title and
// returns up to five works from the first subject.
func (uc *Book) RecommendBooks(ctx context.Context, title string) (domain.BookRecommendations, error) {
	const op = "useCase.RecommendBooks"

	if strings.TrimSpace(title) == "" {
		return domain.BookRecommendations{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyQuery)
	}

	subjects, err := uc.repo.FindBookSubjects(ctx, title)
	if err != nil {
		return domain.BookRecommendations{}, fmt.Errorf("%s: search %q: %w", op, title, err)
	}
	if len(subjects) == 0 {
		return domain.BookRecommendations{}, &domain.NotFoundError{Kind: domain.KindBook, Title: title}
	}

	primary := subjects[0]
	books, err := uc.repo.FetchBooksBySubject(ctx, primary)
	if err != nil {
		return domain.BookRecommendations{}, fmt.Errorf("%s: works for %q: %w", op, primary, err)
	}
	if len(books) == 0 {
		return domain.BookRecommendations{}, &domain.NoRecommendationsError{
			Kind:    domain.KindBook,
			Title:   title,
			Subject: primary,
		}
	}

	return domain.BookRecommendations{
		Query:   title,
		Subject: primary,
		Books:   topN(books, domain.MaxRecommendations),
	}, nil
}
