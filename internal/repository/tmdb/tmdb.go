package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/manjitt2/Movie-bot/configs"
	"github.com/manjitt2/Movie-bot/internal/domain"
)

type Repo struct {
	Path   string
	APIKey string
	Client *http.Client
}

func NewRepo(config *configs.Config) *Repo {
	path := config.TMDB.Path
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return &Repo{
		APIKey: config.TMDB.Token,
		Path:   path,
		Client: &http.Client{
			Timeout: config.APITimeout,
		},
	}
}

type movieResult struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

type moviePage struct {
	Results []movieResult `json:"results"`
}

func (m movieResult) toRecord() domain.MovieRecord {
	year, _, _ := strings.Cut(m.ReleaseDate, "-")
	if year == "" {
		year = domain.DefaultReleaseYear
	}
	return domain.MovieRecord{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseYear: year,
	}
}

// FindMovieID returns the id of the first search hit for title.
func (repo *Repo) FindMovieID(ctx context.Context, title string) (int, bool, error) {
	const op = "tmdb.FindMovieID"

	var page moviePage
	if err := repo.get(ctx, "search/movie", url.Values{"query": {title}}, &page); err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	if len(page.Results) == 0 {
		return 0, false, nil
	}
	return page.Results[0].ID, true, nil
}

func (repo *Repo) FetchMovieRecommendations(ctx context.Context, movieID int) ([]domain.MovieRecord, error) {
	const op = "tmdb.FetchMovieRecommendations"

	var page moviePage
	endpoint := fmt.Sprintf("movie/%d/recommendations", movieID)
	if err := repo.get(ctx, endpoint, url.Values{}, &page); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	results := page.Results
	if len(results) > domain.MaxRecommendations {
		results = results[:domain.MaxRecommendations]
	}
	movies := make([]domain.MovieRecord, 0, len(results))
	for _, m := range results {
		movies = append(movies, m.toRecord())
	}
	return movies, nil
}

func (repo *Repo) get(ctx context.Context, endpoint string, params url.Values, dst any) error {
	params.Set("api_key", repo.APIKey)
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
