package openlibrary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/manjitt2/Movie-bot/configs"
	"github.com/manjitt2/Movie-bot/internal/domain"
)

type Repo struct {
	Path   string
	Client *http.Client
}

func NewRepo(config *configs.Config) *Repo {
	path := config.OL.Path
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return &Repo{
		Path: path,
		Client: &http.Client{
			Timeout: config.APITimeout,
		},
	}
}

type searchResponse struct {
	Docs []struct {
		Subject []string `json:"subject"`
	} `json:"docs"`
}

type work struct {
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
}

type subjectResponse struct {
	Works []work `json:"works"`
}

func (w work) toRecord() domain.BookRecord {
	author := domain.DefaultAuthor
	if len(w.Authors) > 0 && w.Authors[0].Name != "" {
		author = w.Authors[0].Name
	}
	return domain.BookRecord{
		Title:  w.Title,
		Author: author,
	}
}

// SubjectSlug turns a subject label into its path form: "Science Fiction"
// becomes "science_fiction".
func SubjectSlug(subject string) string {
	return strings.ReplaceAll(strings.ToLower(subject), " ", "_")
}

// FindBookSubjects returns up to three subjects of the first document matching title.
func (repo *Repo) FindBookSubjects(ctx context.Context, title string) ([]string, error) {
	const op = "openlibrary.FindBookSubjects"

	var resp searchResponse
	if err := repo.get(ctx, "search.json", url.Values{"q": {title}}, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(resp.Docs) == 0 || len(resp.Docs[0].Subject) == 0 {
		return []string{}, nil
	}

	subjects := resp.Docs[0].Subject
	if len(subjects) > domain.MaxSubjects {
		subjects = subjects[:domain.MaxSubjects]
	}
	return append([]string(nil), subjects...), nil
}

func (repo *Repo) FetchBooksBySubject(ctx context.Context, subject string) ([]domain.BookRecord, error) {
	const op = "openlibrary.FetchBooksBySubject"

	var resp subjectResponse
	endpoint := "subjects/" + url.PathEscape(SubjectSlug(subject)) + ".json"
	params := url.Values{"limit": {strconv.Itoa(domain.MaxRecommendations)}}
	if err := repo.get(ctx, endpoint, params, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	works := resp.Works
	if len(works) > domain.MaxRecommendations {
		works = works[:domain.MaxRecommendations]
	}
	books := make([]domain.BookRecord, 0, len(works))
	for _, w := range works {
		books = append(books, w.toRecord())
	}
	return books, nil
}

func (repo *Repo) get(ctx context.Context, endpoint string, params url.Values, dst any) error {
	body, err := repo.doRequest(ctx, endpoint+"?"+params.Encode())
	if err != nil {
		return err
	}
	if err = json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to decode response: %w: %w", domain.ErrTransport, err)
	}
	return nil
}

func (repo *Repo) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	const op = "Repo.doRequest"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, repo.Path+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w: %w", op, domain.ErrTransport, err)
	}
	req.Header.Add("accept", "application/json")

	resp, err := repo.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w: %w", op, domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%s: %w: bad status %d, response: %s", op, domain.ErrTransport, resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w: %w", op, domain.ErrTransport, err)
	}
	return body, nil
}
