package command

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/manjitt2/Movie-bot/internal/domain"
	"github.com/manjitt2/Movie-bot/pkg/prometheus"
)

const (
	CommandHello = "hello"
	CommandMovie = "movie"
	CommandBook  = "book"
	CommandHelp  = "help"

	correlationIDKey = "correlation_id"
	commandKey       = "command"
	authorKey        = "author"
	errorKey         = "error"
	queryKey         = "query"

	statusSuccess           = "success"
	statusBadRequest        = "bad_request"
	statusNotFound          = "not_found"
	statusNoRecommendations = "no_recommendations"
	statusError             = "error"
)

type handlerFunc func(ctx context.Context, author, args string) (domain.Reply, error)

// Dispatcher maps command names to handlers. It keeps no state between
// commands and is safe for concurrent use.
type Dispatcher struct {
	prefix   string
	movies   MovieRecommender
	books    BookRecommender
	log      *slog.Logger
	handlers map[string]handlerFunc
}

func NewDispatcher(prefix string, movies MovieRecommender, books BookRecommender, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		prefix: prefix,
		movies: movies,
		books:  books,
		log:    log,
	}
	d.handlers = map[string]handlerFunc{
		CommandHello: d.handleHello,
		CommandMovie: d.handleMovie,
		CommandBook:  d.handleBook,
		CommandHelp:  d.handleHelp,
	}
	return d
}

func (d *Dispatcher) Prefix() string {
	return d.prefix
}

// Parse splits a prefixed message into command name and argument. The
// command must follow the prefix directly.
func (d *Dispatcher) Parse(text string) (command string, args string, ok bool) {
	rest, found := strings.CutPrefix(text, d.prefix)
	if !found {
		return "", "", false
	}
	command = rest
	if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
		command, args = rest[:i], rest[i:]
	}
	if command == "" {
		return "", "", false
	}
	return command, strings.TrimSpace(args), true
}

// Handle parses and executes a raw chat message. ok is false when the
// message is not addressed to the bot or names an unknown command.
func (d *Dispatcher) Handle(ctx context.Context, text, author string) (domain.Reply, bool) {
	command, args, ok := d.Parse(text)
	if !ok {
		return domain.Reply{}, false
	}
	return d.Execute(ctx, command, args, author)
}

// Execute runs a single command to completion. Every failure, panics
// included, is turned into a text reply.
func (d *Dispatcher) Execute(ctx context.Context, command, args, author string) (reply domain.Reply, ok bool) {
	handler, known := d.handlers[command]
	if !known {
		d.log.DebugContext(ctx, "unknown command ignored", commandKey, command)
		return domain.Reply{}, false
	}

	startTime := time.Now()
	status := statusSuccess
	log := d.log.With(correlationIDKey, uuid.NewString(), commandKey, command)

	defer func() {
		if r := recover(); r != nil {
			status = statusError
			log.ErrorContext(ctx, "command panicked", "panic", r)
			reply, ok = domain.TextReply(genericErrorText), true
		}
		prometheus.CommandDuration.WithLabelValues(command).Observe(time.Since(startTime).Seconds())
		prometheus.CommandCounter.WithLabelValues(command, status).Inc()
	}()

	log.InfoContext(ctx, "command received", queryKey, args, authorKey, author)

	reply, err := handler(ctx, author, args)
	if err != nil {
		status = statusOf(err)
		if status == statusError {
			log.ErrorContext(ctx, "command failed", queryKey, args, errorKey, err)
		} else {
			log.InfoContext(ctx, "command finished without results", queryKey, args, errorKey, err)
		}
		return domain.TextReply(errorText(d.prefix, command, err)), true
	}

	log.DebugContext(ctx, "command finished", "duration", time.Since(startTime))
	return reply, true
}

func (d *Dispatcher) handleHello(_ context.Context, author, _ string) (domain.Reply, error) {
	return domain.TextReply(greetingText(author)), nil
}

func (d *Dispatcher) handleHelp(_ context.Context, _, _ string) (domain.Reply, error) {
	return domain.TextReply(helpText(d.prefix)), nil
}

func (d *Dispatcher) handleMovie(ctx context.Context, _, title string) (domain.Reply, error) {
	recs, err := d.movies.RecommendMovies(ctx, title)
	if err != nil {
		return domain.Reply{}, err
	}
	return domain.EmbedReply(MovieEmbed(recs)), nil
}

func (d *Dispatcher) handleBook(ctx context.Context, _, title string) (domain.Reply, error) {
	recs, err := d.books.RecommendBooks(ctx, title)
	if err != nil {
		return domain.Reply{}, err
	}
	return domain.EmbedReply(BookEmbed(recs)), nil
}

func statusOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return statusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return statusNotFound
	case errors.Is(err, domain.ErrNoRecommendations):
		return statusNoRecommendations
	default:
		return statusError
	}
}
