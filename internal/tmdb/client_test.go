package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviehub-app/moviehub/internal/models"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/movie", r.URL.Path)
		require.Equal(t, "fight club", r.URL.Query().Get("query"))
		require.Equal(t, "1", r.URL.Query().Get("page"))
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(SearchResult{
			Page: 1,
			Results: []models.Movie{{
				ID: 550, Title: "Fight Club", VoteAverage: 8.4, GenreIDs: []int{18, 53},
			}},
			TotalPages:   1,
			TotalResults: 1,
		})
	}))
	defer srv.Close()

	c := New("token-123", WithBaseURL(srv.URL))
	res, err := c.Search(context.Background(), "fight club", 1)
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, 550, res.Results[0].ID)
	assert.Equal(t, "Fight Club", res.Results[0].Title)
}

func TestDiscover_GenreFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/discover/movie", r.URL.Path)
		require.Equal(t, "18", r.URL.Query().Get("with_genres"))
		require.Equal(t, "popularity.desc", r.URL.Query().Get("sort_by"))
		_ = json.NewEncoder(w).Encode(SearchResult{Page: 1})
	}))
	defer srv.Close()

	c := New("k", WithBaseURL(srv.URL))
	_, err := c.Discover(context.Background(), 18, 1)
	require.NoError(t, err)
}

func TestMovie_MapsDetailGenres(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movie/550", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": 550,
			"title": "Fight Club",
			"poster_path": "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
			"release_date": "1999-10-15",
			"vote_average": 8.4,
			"original_language": "en",
			"genres": [{"id": 18, "name": "Drama"}, {"id": 53, "name": "Thriller"}]
		}`))
	}))
	defer srv.Close()

	c := New("k", WithBaseURL(srv.URL))
	m, err := c.Movie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, 550, m.ID)
	assert.Equal(t, "Fight Club", m.Title)
	assert.Equal(t, []int{18, 53}, m.GenreIDs)
}

func TestMovie_NotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movie/550", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_message":"Invalid API key"}`))
	}))
	defer srv.Close()

	c := New("bad-key", WithBaseURL(srv.URL))
	_, err := c.Movie(context.Background(), 550)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
}
