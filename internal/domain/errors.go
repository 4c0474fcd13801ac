package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrNoRecommendations = errors.New("no recommendations")
	ErrTransport         = errors.New("upstream request failed")
	ErrEmptyQuery        = errors.New("empty query")
)

// NotFoundError reports that the lookup for Title returned nothing.
type NotFoundError struct {
	Kind  MediaKind
	Title string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Title, ErrNotFound)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NoRecommendationsError reports that the lookup succeeded but the follow-up
// call came back empty. Subject is set for books only.
type NoRecommendationsError struct {
	Kind    MediaKind
	Title   string
	Subject string
}

func (e *NoRecommendationsError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s %q in subject %q: %v", e.Kind, e.Title, e.Subject, ErrNoRecommendations)
	}
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Title, ErrNoRecommendations)
}

func (e *NoRecommendationsError) Is(target error) bool {
	return target == ErrNoRecommendations
}
