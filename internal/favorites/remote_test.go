package favorites

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviehub-app/moviehub/internal/appwrite"
	"github.com/moviehub-app/moviehub/internal/common"
	"github.com/moviehub-app/moviehub/internal/logging"
	"github.com/moviehub-app/moviehub/internal/models"
)

// fakeDatabase is an in-memory stand-in for the hosted document database,
// speaking just enough of the wire protocol for the store under test.
type fakeDatabase struct {
	mu   sync.Mutex
	docs []favoriteDoc
	fail bool
}

func (f *fakeDatabase) handler(t *testing.T) http.Handler {
	const base = "/databases/db1/collections/favs/documents"

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.fail {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{"code": 500, "type": "general_unknown", "message": "boom"})
			return
		}

		switch {
		case r.Method == http.MethodGet && r.URL.Path == base:
			matched := make([]favoriteDoc, 0)
			queries := r.URL.Query()["queries[]"]
			for _, doc := range f.docs {
				if matchesQueries(doc, queries) {
					matched = append(matched, doc)
				}
			}
			_ = json.NewEncoder(w).Encode(appwrite.DocumentList[favoriteDoc]{
				Total:     len(matched),
				Documents: matched,
			})

		case r.Method == http.MethodPost && r.URL.Path == base:
			var req struct {
				DocumentID  string      `json:"documentId"`
				Data        favoriteDoc `json:"data"`
				Permissions []string    `json:"permissions"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Contains(t, req.Permissions, `read("user:`+req.Data.UserID+`")`)
			doc := req.Data
			doc.ID = req.DocumentID
			f.docs = append(f.docs, doc)
			_ = json.NewEncoder(w).Encode(doc)

		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, base+"/"):
			id := strings.TrimPrefix(r.URL.Path, base+"/")
			for i, doc := range f.docs {
				if doc.ID == id {
					f.docs = append(f.docs[:i], f.docs[i+1:]...)
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"code": 404, "type": "document_not_found", "message": "not found"})

		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func matchesQueries(doc favoriteDoc, queries []string) bool {
	for _, q := range queries {
		switch {
		case strings.HasPrefix(q, `equal("userId"`):
			if !strings.Contains(q, `["`+doc.UserID+`"]`) {
				return false
			}
		case strings.HasPrefix(q, `equal("movieId"`):
			if !strings.Contains(q, `["`+doc.MovieID+`"]`) {
				return false
			}
		}
	}
	return true
}

func setupRemoteStore(t *testing.T) (*RemoteStore, *fakeDatabase) {
	t.Helper()
	db := &fakeDatabase{}
	srv := httptest.NewServer(db.handler(t))
	t.Cleanup(srv.Close)
	return NewRemoteStore(appwrite.New(srv.URL, "p"), "db1", "favs"), db
}

func TestRemoteStore_AddListRemove(t *testing.T) {
	ctx := context.Background()
	store, _ := setupRemoteStore(t)

	rec := models.NewFavoriteRecord(fightClub, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	stored, err := store.Add(ctx, "u1", rec)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.RecordID)
	assert.Equal(t, 550, stored.MovieID)
	assert.Equal(t, rec.AddedAt, stored.AddedAt)

	_, err = store.Add(ctx, "u1", rec)
	require.ErrorIs(t, err, common.ErrFavoriteExists)

	recs, err := store.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Fight Club", recs[0].Title)
	assert.Equal(t, []int{18, 53}, recs[0].GenreIDs)

	n, err := store.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.Remove(ctx, "u1", 550))

	err = store.Remove(ctx, "u1", 550)
	require.ErrorIs(t, err, common.ErrFavoriteNotFound)
}

func TestRemoteStore_Probe(t *testing.T) {
	ctx := context.Background()
	store, db := setupRemoteStore(t)

	require.NoError(t, store.Probe(ctx))

	db.fail = true
	err := store.Probe(ctx)
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestRemoteStore_UserScoping(t *testing.T) {
	ctx := context.Background()
	store, _ := setupRemoteStore(t)

	_, err := store.Add(ctx, "u1", models.NewFavoriteRecord(fightClub, time.Now().UTC()))
	require.NoError(t, err)

	recs, err := store.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, recs)

	err = store.Remove(ctx, "u2", 550)
	require.ErrorIs(t, err, common.ErrFavoriteNotFound)
}

func TestService_EndToEndOutageFailover(t *testing.T) {
	ctx := context.Background()
	remoteStore, db := setupRemoteStore(t)
	s := NewService(remoteStore, setupLocal(t), logging.NewNopLogger())

	require.NoError(t, s.AddToFavorites(ctx, "u1", fightClub))
	require.True(t, s.UsingRemote())

	db.fail = true
	other := models.Movie{ID: 603, Title: "The Matrix"}
	require.NoError(t, s.AddToFavorites(ctx, "u1", other))
	assert.False(t, s.UsingRemote())
	assert.True(t, s.IsFavorite("u1", 603))

	// local backend answers while the outage lasts
	n, err := s.GetFavoriteCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
