package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manjitt2/Movie-bot/internal/domain"
	"github.com/manjitt2/Movie-bot/internal/usecase"
	"github.com/manjitt2/Movie-bot/pkg/prometheus"
)

type fakeMovieRepo struct {
	id     int
	found  bool
	movies []domain.MovieRecord
	err    error
}

func (f *fakeMovieRepo) FindMovieID(ctx context.Context, title string) (int, bool, error) {
	return f.id, f.found, f.err
}

func (f *fakeMovieRepo) FetchMovieRecommendations(ctx context.Context, movieID int) ([]domain.MovieRecord, error) {
	return f.movies, nil
}

type fakeBookRepo struct {
	subjects   []string
	books      []domain.BookRecord
	gotSubject string
}

func (f *fakeBookRepo) FindBookSubjects(ctx context.Context, title string) ([]string, error) {
	return f.subjects, nil
}

func (f *fakeBookRepo) FetchBooksBySubject(ctx context.Context, subject string) ([]domain.BookRecord, error) {
	f.gotSubject = subject
	return f.books, nil
}

type panickingMovies struct{}

func (panickingMovies) RecommendMovies(ctx context.Context, title string) (domain.MovieRecommendations, error) {
	panic("nil map write")
}

func newDispatcher(movies MovieRecommender, books BookRecommender) *Dispatcher {
	return NewDispatcher("!", movies, books, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func inceptionRecommendations() []domain.MovieRecord {
	return []domain.MovieRecord{
		{ID: 157336, Title: "Interstellar", ReleaseYear: "2014"},
		{ID: 155, Title: "The Dark Knight", ReleaseYear: "2008"},
		{ID: 1124, Title: "The Prestige", ReleaseYear: "2006"},
		{ID: 603, Title: "The Matrix", ReleaseYear: "1999"},
		{ID: 11324, Title: "Shutter Island", ReleaseYear: "2010"},
	}
}

func TestParse(t *testing.T) {
	d := newDispatcher(nil, nil)

	tests := []struct {
		text    string
		command string
		args    string
		ok      bool
	}{
		{text: "!movie Inception", command: "movie", args: "Inception", ok: true},
		{text: "!book   The Lord of the Rings  ", command: "book", args: "The Lord of the Rings", ok: true},
		{text: "!hello", command: "hello", ok: true},
		{text: "!movie\tThe Matrix", command: "movie", args: "The Matrix", ok: true},
		{text: "! movie Inception", ok: false},
		{text: "!", ok: false},
		{text: "movie Inception", ok: false},
		{text: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			command, args, ok := d.Parse(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.command, command)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestParseCustomPrefix(t *testing.T) {
	d := NewDispatcher("rec!", nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	command, args, ok := d.Parse("rec!movie Up")
	require.True(t, ok)
	assert.Equal(t, "movie", command)
	assert.Equal(t, "Up", args)

	_, _, ok = d.Parse("!movie Up")
	assert.False(t, ok)
}

func TestHello(t *testing.T) {
	d := newDispatcher(nil, nil)

	reply, ok := d.Handle(context.Background(), "!hello", "alice")
	require.True(t, ok)
	assert.Equal(t, "Hello, alice!", reply.Text)
	assert.False(t, reply.IsEmbed())
}

func TestHelpListsCommands(t *testing.T) {
	d := newDispatcher(nil, nil)

	reply, ok := d.Handle(context.Background(), "!help", "alice")
	require.True(t, ok)
	for _, cmd := range []string{"!hello", "!movie <title>", "!book <title>"} {
		assert.Contains(t, reply.Text, cmd)
	}
}

func TestUnknownCommandIsIgnored(t *testing.T) {
	d := newDispatcher(nil, nil)

	_, ok := d.Handle(context.Background(), "!dance now", "alice")
	assert.False(t, ok)

	_, ok = d.Handle(context.Background(), "just chatting", "alice")
	assert.False(t, ok)
}

func TestMovieScenarioInception(t *testing.T) {
	repo := &fakeMovieRepo{id: 27205, found: true, movies: inceptionRecommendations()}
	d := newDispatcher(usecase.NewMovie(repo), nil)
	before := testutil.ToFloat64(prometheus.CommandCounter.WithLabelValues(CommandMovie, statusSuccess))

	reply, ok := d.Handle(context.Background(), "!movie inception", "alice")
	require.True(t, ok)
	require.True(t, reply.IsEmbed())

	embed := reply.Embed
	assert.Equal(t, "Recommendations for 'Inception'", embed.Title)
	assert.Equal(t, ColorBlue, embed.Color)
	require.Len(t, embed.Fields, 5)
	for i, m := range inceptionRecommendations() {
		assert.Equal(t, fmt.Sprintf("%s (%s)", m.Title, m.ReleaseYear), embed.Fields[i].Name)
		assert.Empty(t, embed.Fields[i].Value)
	}
	assert.Equal(t, before+1, testutil.ToFloat64(prometheus.CommandCounter.WithLabelValues(CommandMovie, statusSuccess)))
}

func TestMovieNotFound(t *testing.T) {
	d := newDispatcher(usecase.NewMovie(&fakeMovieRepo{}), nil)
	before := testutil.ToFloat64(prometheus.CommandCounter.WithLabelValues(CommandMovie, statusNotFound))

	reply, ok := d.Handle(context.Background(), "!movie zzzznotamovie123", "alice")
	require.True(t, ok)
	assert.Equal(t, "Sorry, I couldn't find the movie 'zzzznotamovie123'.", reply.Text)
	assert.Equal(t, before+1, testutil.ToFloat64(prometheus.CommandCounter.WithLabelValues(CommandMovie, statusNotFound)))
}

func TestMovieNoRecommendations(t *testing.T) {
	d := newDispatcher(usecase.NewMovie(&fakeMovieRepo{id: 1, found: true}), nil)

	reply, ok := d.Handle(context.Background(), "!movie Obscure Film", "alice")
	require.True(t, ok)
	assert.Equal(t, "I found 'Obscure Film', but couldn't find any recommendations.", reply.Text)
}

func TestMovieWithoutTitleGetsUsage(t *testing.T) {
	d := newDispatcher(usecase.NewMovie(&fakeMovieRepo{}), nil)

	reply, ok := d.Handle(context.Background(), "!movie", "alice")
	require.True(t, ok)
	assert.Equal(t, "Please provide a title, e.g. !movie <title>", reply.Text)
}

func TestTransportFailureBecomesGenericReply(t *testing.T) {
	repo := &fakeMovieRepo{err: fmt.Errorf("dial tcp: %w", domain.ErrTransport)}
	d := newDispatcher(usecase.NewMovie(repo), nil)
	before := testutil.ToFloat64(prometheus.CommandCounter.WithLabelValues(CommandMovie, statusError))

	reply, ok := d.Handle(context.Background(), "!movie Inception", "alice")
	require.True(t, ok)
	assert.Equal(t, genericErrorText, reply.Text)
	assert.Equal(t, before+1, testutil.ToFloat64(prometheus.CommandCounter.WithLabelValues(CommandMovie, statusError)))
}

func TestPanicIsRecovered(t *testing.T) {
	d := newDispatcher(panickingMovies{}, nil)

	reply, ok := d.Handle(context.Background(), "!movie Inception", "alice")
	require.True(t, ok)
	assert.Equal(t, genericErrorText, reply.Text)
}

func TestBookScenario(t *testing.T) {
	repo := &fakeBookRepo{
		subjects: []string{"Fantasy", "Fiction", "Magic"},
		books: []domain.BookRecord{
			{Title: "A Wizard of Earthsea", Author: "Ursula K. Le Guin"},
			{Title: "Anonymous Tales", Author: domain.DefaultAuthor},
		},
	}
	d := newDispatcher(nil, usecase.NewBook(repo))

	reply, ok := d.Handle(context.Background(), "!book the hobbit", "alice")
	require.True(t, ok)
	require.True(t, reply.IsEmbed())

	assert.Equal(t, "Fantasy", repo.gotSubject)
	assert.Equal(t, "Recommendations for 'The Hobbit'", reply.Embed.Title)
	assert.Equal(t, "Based on the genre: **Fantasy**", reply.Embed.Description)
	assert.Equal(t, ColorOrange, reply.Embed.Color)
	require.Len(t, reply.Embed.Fields, 2)
	assert.Equal(t, domain.EmbedField{Name: "A Wizard of Earthsea", Value: "by Ursula K. Le Guin"}, reply.Embed.Fields[0])
	assert.Equal(t, "by Unknown Author", reply.Embed.Fields[1].Value)
}

func TestBookNoRecommendationsInGenre(t *testing.T) {
	repo := &fakeBookRepo{subjects: []string{"Fantasy", "Fiction", "Magic"}}
	d := newDispatcher(nil, usecase.NewBook(repo))

	reply, ok := d.Handle(context.Background(), "!book The Hobbit", "alice")
	require.True(t, ok)
	assert.Equal(t, "Fantasy", repo.gotSubject)
	assert.Equal(t, "Found the book, but couldn't find recommendations in the genre: 'Fantasy'.", reply.Text)
}

func TestBookNotFound(t *testing.T) {
	d := newDispatcher(nil, usecase.NewBook(&fakeBookRepo{}))

	reply, ok := d.Handle(context.Background(), "!book qqqqnotabook", "alice")
	require.True(t, ok)
	assert.Equal(t, "Sorry, I couldn't find 'qqqqnotabook' or its genres.", reply.Text)
}

func TestExecuteCommandDirectly(t *testing.T) {
	d := newDispatcher(nil, nil)

	reply, ok := d.Execute(context.Background(), CommandHello, "", "bob")
	require.True(t, ok)
	assert.Equal(t, "Hello, bob!", reply.Text)

	_, ok = d.Execute(context.Background(), "start", "", "bob")
	assert.False(t, ok)
}
