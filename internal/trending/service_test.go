package trending

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviehub-app/moviehub/internal/appwrite"
	"github.com/moviehub-app/moviehub/internal/logging"
	"github.com/moviehub-app/moviehub/internal/models"
)

type fakeMetrics struct {
	docs []metricDoc
	fail bool
}

func (f *fakeMetrics) handler(t *testing.T) http.Handler {
	const base = "/databases/db1/collections/metrics/documents"

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.fail {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{"code": 500, "type": "general_unknown", "message": "down"})
			return
		}

		switch {
		case r.Method == http.MethodGet && r.URL.Path == base:
			queries := r.URL.Query()["queries[]"]
			matched := f.match(queries)
			_ = json.NewEncoder(w).Encode(appwrite.DocumentList[metricDoc]{Total: len(matched), Documents: matched})

		case r.Method == http.MethodPost && r.URL.Path == base:
			var req struct {
				DocumentID string    `json:"documentId"`
				Data       metricDoc `json:"data"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			doc := req.Data
			doc.ID = req.DocumentID
			f.docs = append(f.docs, doc)
			_ = json.NewEncoder(w).Encode(doc)

		case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, base+"/"):
			id := strings.TrimPrefix(r.URL.Path, base+"/")
			var req struct {
				Data map[string]int `json:"data"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			for i := range f.docs {
				if f.docs[i].ID == id {
					f.docs[i].Count = req.Data["count"]
					_ = json.NewEncoder(w).Encode(f.docs[i])
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)

		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	})
}

func (f *fakeMetrics) match(queries []string) []metricDoc {
	matched := make([]metricDoc, 0)
	var limit int
	var term string
	orderByCount := false
	for _, q := range queries {
		switch {
		case strings.HasPrefix(q, `equal("searchTerm"`):
			term = strings.TrimSuffix(strings.SplitN(q, `["`, 2)[1], `"])`)
		case strings.HasPrefix(q, "limit("):
			limit, _ = strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(q, "limit("), ")"))
		case q == `orderDesc("count")`:
			orderByCount = true
		}
	}
	for _, doc := range f.docs {
		if term == "" || doc.SearchTerm == term {
			matched = append(matched, doc)
		}
	}
	if orderByCount {
		sort.Slice(matched, func(i, j int) bool { return matched[i].Count > matched[j].Count })
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

func setupService(t *testing.T) (*Service, *fakeMetrics) {
	t.Helper()
	metrics := &fakeMetrics{}
	srv := httptest.NewServer(metrics.handler(t))
	t.Cleanup(srv.Close)
	c := appwrite.New(srv.URL, "p")
	return NewService(c, "db1", "metrics", "https://image.tmdb.org/t/p/w500", logging.NewNopLogger()), metrics
}

func TestUpdateSearchCount_CreatesThenIncrements(t *testing.T) {
	ctx := context.Background()
	s, metrics := setupService(t)

	movie := models.Movie{ID: 550, Title: "Fight Club", PosterPath: "/fc.jpg"}
	s.UpdateSearchCount(ctx, "fight club", movie)

	require.Len(t, metrics.docs, 1)
	assert.Equal(t, 1, metrics.docs[0].Count)
	assert.Equal(t, 550, metrics.docs[0].MovieID)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/fc.jpg", metrics.docs[0].PosterURL)

	s.UpdateSearchCount(ctx, "fight club", movie)
	require.Len(t, metrics.docs, 1)
	assert.Equal(t, 2, metrics.docs[0].Count)
}

func TestUpdateSearchCount_SwallowsFailures(t *testing.T) {
	ctx := context.Background()
	s, metrics := setupService(t)
	metrics.fail = true

	// must not panic or error out
	s.UpdateSearchCount(ctx, "anything", models.Movie{ID: 1})
	assert.Empty(t, metrics.docs)
}

func TestTrendingMovies_TopFiveByCount(t *testing.T) {
	ctx := context.Background()
	s, metrics := setupService(t)

	for i, term := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		metrics.docs = append(metrics.docs, metricDoc{
			ID: term, SearchTerm: term, Count: i + 1, MovieID: 100 + i,
		})
	}

	entries, err := s.TrendingMovies(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, "g", entries[0].SearchTerm)
	assert.Equal(t, 7, entries[0].Count)
	assert.Equal(t, "c", entries[4].SearchTerm)
}

func TestTrendingMovies_PropagatesError(t *testing.T) {
	ctx := context.Background()
	s, metrics := setupService(t)
	metrics.fail = true

	_, err := s.TrendingMovies(ctx)
	require.Error(t, err)
}
