package command

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/manjitt2/Movie-bot/internal/domain"
)

const (
	ColorBlue   = 0x3498DB
	ColorOrange = 0xE67E22

	movieDescription = "Here are some movies you might also like:"
	movieFooter      = "Powered by The Movie Database (TMDB)"
	bookFooter       = "Powered by Open Library"

	genericErrorText = "Sorry, something went wrong while fetching recommendations. Please try again later."
)

func MovieEmbed(recs domain.MovieRecommendations) domain.Embed {
	fields := make([]domain.EmbedField, 0, len(recs.Movies))
	for _, m := range recs.Movies {
		fields = append(fields, domain.EmbedField{
			Name: fmt.Sprintf("%s (%s)", m.Title, m.ReleaseYear),
		})
	}
	return domain.Embed{
		Title:       recommendationsTitle(recs.Query),
		Description: movieDescription,
		Color:       ColorBlue,
		Fields:      fields,
		Footer:      movieFooter,
	}
}

func BookEmbed(recs domain.BookRecommendations) domain.Embed {
	fields := make([]domain.EmbedField, 0, len(recs.Books))
	for _, b := range recs.Books {
		fields = append(fields, domain.EmbedField{
			Name:  b.Title,
			Value: "by " + b.Author,
		})
	}
	return domain.Embed{
		Title:       recommendationsTitle(recs.Query),
		Description: fmt.Sprintf("Based on the genre: **%s**", recs.Subject),
		Color:       ColorOrange,
		Fields:      fields,
		Footer:      bookFooter,
	}
}

// Casers keep state between calls, so each title gets its own.
func recommendationsTitle(query string) string {
	return fmt.Sprintf("Recommendations for '%s'", cases.Title(language.Und).String(query))
}

func greetingText(name string) string {
	return fmt.Sprintf("Hello, %s!", name)
}

func usageText(prefix, command string) string {
	return fmt.Sprintf("Please provide a title, e.g. %s%s <title>", prefix, command)
}

func helpText(prefix string) string {
	return fmt.Sprintf("Commands:\n"+
		"%[1]shello - say hello\n"+
		"%[1]smovie <title> - movies similar to <title>\n"+
		"%[1]sbook <title> - books from the genre of <title>\n"+
		"%[1]shelp - show this message", prefix)
}

// errorText turns a pipeline error into the message shown to the user.
func errorText(prefix, command string, err error) string {
	var notFound *domain.NotFoundError
	var noRecs *domain.NoRecommendationsError

	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return usageText(prefix, command)
	case errors.As(err, &notFound):
		if notFound.Kind == domain.KindBook {
			return fmt.Sprintf("Sorry, I couldn't find '%s' or its genres.", notFound.Title)
		}
		return fmt.Sprintf("Sorry, I couldn't find the movie '%s'.", notFound.Title)
	case errors.As(err, &noRecs):
		if noRecs.Kind == domain.KindBook {
			return fmt.Sprintf("Found the book, but couldn't find recommendations in the genre: '%s'.", noRecs.Subject)
		}
		return fmt.Sprintf("I found '%s', but couldn't find any recommendations.", noRecs.Title)
	default:
		return genericErrorText
	}
}
