// Package tmdb is a stateless client for the movie metadata provider.
// It fetches and maps; favorites and trending snapshot its results but
// never refresh them.
package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/moviehub-app/moviehub/internal/models"
)

// DefaultBaseURL is the provider's v3 API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// Client queries the metadata provider with bearer-token auth.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root. Useful for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns a Client authenticating with the given API read token.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{baseURL: DefaultBaseURL, apiKey: apiKey, http: &http.Client{}}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SearchResult is one page of movies.
type SearchResult struct {
	Page         int            `json:"page"`
	Results      []models.Movie `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("fetching %s: %s: %s", path, resp.Status, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// Search returns movies matching the query, one page at a time.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	var res SearchResult
	if err := c.get(ctx, "/search/movie", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Discover returns popular movies, optionally narrowed to one genre.
func (c *Client) Discover(ctx context.Context, genreID int, page int) (*SearchResult, error) {
	q := url.Values{}
	q.Set("sort_by", "popularity.desc")
	q.Set("page", strconv.Itoa(page))
	if genreID != 0 {
		q.Set("with_genres", strconv.Itoa(genreID))
	}
	var res SearchResult
	if err := c.get(ctx, "/discover/movie", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// movieDetail is the /movie/{id} response. Unlike list endpoints, which
// carry a flat genre_ids array, the detail endpoint expands genres into
// objects.
type movieDetail struct {
	models.Movie
	Genres []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

// Movie returns full details for one movie id.
func (c *Client) Movie(ctx context.Context, id int) (*models.Movie, error) {
	var d movieDetail
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id), nil, &d); err != nil {
		return nil, err
	}
	m := d.Movie
	m.GenreIDs = make([]int, 0, len(d.Genres))
	for _, g := range d.Genres {
		m.GenreIDs = append(m.GenreIDs, g.ID)
	}
	return &m, nil
}
