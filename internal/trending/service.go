// Package trending tracks what users search for and surfaces the most
// searched movies. Counts live in the hosted document database; tracking
// is strictly best-effort and must never break the search flow it rides
// along with.
package trending

import (
	"context"
	"fmt"

	"github.com/moviehub-app/moviehub/internal/appwrite"
	"github.com/moviehub-app/moviehub/internal/logging"
	"github.com/moviehub-app/moviehub/internal/models"
)

const trendingLimit = 5

// metricDoc is the wire shape of one search-term counter.
type metricDoc struct {
	ID         string `json:"$id,omitempty"`
	SearchTerm string `json:"searchTerm"`
	Count      int    `json:"count"`
	MovieID    int    `json:"movie_id"`
	PosterURL  string `json:"poster_url"`
}

// Entry is one trending movie: the searched term, how often it was
// searched, and the movie it resolved to.
type Entry struct {
	SearchTerm string
	Count      int
	MovieID    int
	PosterURL  string
}

// Service reads and writes search metrics. Unlike auth and favorites it
// has no local fallback: trending data is nice-to-have and simply absent
// while the database is unreachable.
type Service struct {
	client       *appwrite.Client
	databaseID   string
	collectionID string
	posterBase   string
	log          logging.Logger
}

// NewService returns a trending service over the given database client.
// posterBase is prepended to poster paths when recording a search, e.g.
// "https://image.tmdb.org/t/p/w500".
func NewService(client *appwrite.Client, databaseID string, collectionID string, posterBase string, log logging.Logger) *Service {
	return &Service{
		client:       client,
		databaseID:   databaseID,
		collectionID: collectionID,
		posterBase:   posterBase,
		log:          log.With("component", "trending"),
	}
}

// UpdateSearchCount bumps the counter for a search term, creating the
// counter on first sight with a snapshot of the best-matching movie.
// Failures are logged and swallowed.
func (s *Service) UpdateSearchCount(ctx context.Context, term string, movie models.Movie) {
	list, err := appwrite.ListDocuments[metricDoc](ctx, s.client, s.databaseID, s.collectionID,
		appwrite.QueryEqual("searchTerm", term))
	if err != nil {
		s.log.Warn(ctx, "skipping search-count update", "term", term, "error", err)
		return
	}

	if len(list.Documents) > 0 {
		doc := list.Documents[0]
		_, err = appwrite.UpdateDocument[metricDoc](ctx, s.client, s.databaseID, s.collectionID, doc.ID,
			map[string]int{"count": doc.Count + 1})
	} else {
		_, err = appwrite.CreateDocument[metricDoc](ctx, s.client, s.databaseID, s.collectionID, metricDoc{
			SearchTerm: term,
			Count:      1,
			MovieID:    movie.ID,
			PosterURL:  fmt.Sprintf("%s%s", s.posterBase, movie.PosterPath),
		})
	}
	if err != nil {
		s.log.Warn(ctx, "skipping search-count update", "term", term, "error", err)
	}
}

// TrendingMovies returns the most searched movies, highest count first.
func (s *Service) TrendingMovies(ctx context.Context) ([]Entry, error) {
	list, err := appwrite.ListDocuments[metricDoc](ctx, s.client, s.databaseID, s.collectionID,
		appwrite.QueryLimit(trendingLimit),
		appwrite.QueryOrderDesc("count"))
	if err != nil {
		return nil, fmt.Errorf("listing trending movies: %w", err)
	}

	entries := make([]Entry, 0, len(list.Documents))
	for _, doc := range list.Documents {
		entries = append(entries, Entry{
			SearchTerm: doc.SearchTerm,
			Count:      doc.Count,
			MovieID:    doc.MovieID,
			PosterURL:  doc.PosterURL,
		})
	}
	return entries, nil
}
