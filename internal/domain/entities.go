package domain

const (
	MaxRecommendations = 5
	MaxSubjects        = 3

	DefaultReleaseYear = "N/A"
	DefaultAuthor      = "Unknown Author"
)

type MediaKind string

const (
	KindMovie MediaKind = "movie"
	KindBook  MediaKind = "book"
)

type MovieRecord struct {
	ID          int
	Title       string
	ReleaseYear string
}

type BookRecord struct {
	Title  string
	Author string
}

type MovieRecommendations struct {
	Query  string
	Movies []MovieRecord
}

type BookRecommendations struct {
	Query   string
	Subject string
	Books   []BookRecord
}
