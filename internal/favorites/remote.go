// Package favorites implements the favorites facade: toggle, list and
// membership operations over a per-user favorites collection, mirrored to
// whichever backend is currently reachable.
package favorites

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/moviehub-app/moviehub/internal/appwrite"
	"github.com/moviehub-app/moviehub/internal/common"
	"github.com/moviehub-app/moviehub/internal/models"
)

// favoriteDoc is the remote document shape. movieId is stored as a string
// for historical reasons; ids are parsed back to integers when listing.
type favoriteDoc struct {
	ID               string  `json:"$id,omitempty"`
	UserID           string  `json:"userId"`
	MovieID          string  `json:"movieId"`
	Title            string  `json:"title"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	GenreIDs         []int   `json:"genre_ids"`
	AddedAt          string  `json:"addedAt"`
}

func (d favoriteDoc) toRecord() models.FavoriteRecord {
	movieID, _ := strconv.Atoi(d.MovieID)
	addedAt, _ := time.Parse(time.RFC3339, d.AddedAt)
	return models.FavoriteRecord{
		RecordID:         d.ID,
		MovieID:          movieID,
		Title:            d.Title,
		PosterPath:       d.PosterPath,
		ReleaseDate:      d.ReleaseDate,
		VoteAverage:      d.VoteAverage,
		OriginalLanguage: d.OriginalLanguage,
		Overview:         d.Overview,
		GenreIDs:         d.GenreIDs,
		AddedAt:          addedAt,
	}
}

func docFromRecord(userID string, rec models.FavoriteRecord) favoriteDoc {
	return favoriteDoc{
		UserID:           userID,
		MovieID:          strconv.Itoa(rec.MovieID),
		Title:            rec.Title,
		PosterPath:       rec.PosterPath,
		ReleaseDate:      rec.ReleaseDate,
		VoteAverage:      rec.VoteAverage,
		OriginalLanguage: rec.OriginalLanguage,
		Overview:         rec.Overview,
		GenreIDs:         rec.GenreIDs,
		AddedAt:          rec.AddedAt.UTC().Format(time.RFC3339),
	}
}

// RemoteStore keeps favorites in the hosted document database, one
// document per (user, movie) pair, readable and writable only by the
// owning user.
type RemoteStore struct {
	client       *appwrite.Client
	databaseID   string
	collectionID string
}

// NewRemoteStore returns a RemoteStore over the given database client.
func NewRemoteStore(client *appwrite.Client, databaseID string, collectionID string) *RemoteStore {
	return &RemoteStore{client: client, databaseID: databaseID, collectionID: collectionID}
}

// Probe performs a cheap no-op list call to test whether the remote
// database is reachable and configured.
func (r *RemoteStore) Probe(ctx context.Context) error {
	_, err := appwrite.ListDocuments[favoriteDoc](ctx, r.client, r.databaseID, r.collectionID,
		appwrite.QueryLimit(1))
	return err
}

// List returns the user's favorites, most recently added first.
func (r *RemoteStore) List(ctx context.Context, userID string) ([]models.FavoriteRecord, error) {
	list, err := appwrite.ListDocuments[favoriteDoc](ctx, r.client, r.databaseID, r.collectionID,
		appwrite.QueryEqual("userId", userID),
		appwrite.QueryOrderDesc("addedAt"))
	if err != nil {
		return nil, err
	}
	recs := make([]models.FavoriteRecord, 0, len(list.Documents))
	for _, doc := range list.Documents {
		recs = append(recs, doc.toRecord())
	}
	return recs, nil
}

func (r *RemoteStore) find(ctx context.Context, userID string, movieID int) (*favoriteDoc, error) {
	list, err := appwrite.ListDocuments[favoriteDoc](ctx, r.client, r.databaseID, r.collectionID,
		appwrite.QueryEqual("userId", userID),
		appwrite.QueryEqual("movieId", strconv.Itoa(movieID)))
	if err != nil {
		return nil, err
	}
	if len(list.Documents) == 0 {
		return nil, nil
	}
	return &list.Documents[0], nil
}

// Add stores a favorite document scoped to the owning user. Adding a
// movie that is already favorited returns ErrFavoriteExists.
func (r *RemoteStore) Add(ctx context.Context, userID string, rec models.FavoriteRecord) (models.FavoriteRecord, error) {
	existing, err := r.find(ctx, userID, rec.MovieID)
	if err != nil {
		return models.FavoriteRecord{}, err
	}
	if existing != nil {
		return models.FavoriteRecord{}, common.ErrFavoriteExists
	}

	role := appwrite.RoleUser(userID)
	created, err := appwrite.CreateDocument[favoriteDoc](ctx, r.client, r.databaseID, r.collectionID,
		docFromRecord(userID, rec),
		appwrite.PermissionRead(role),
		appwrite.PermissionUpdate(role),
		appwrite.PermissionDelete(role),
		appwrite.PermissionWrite(role),
	)
	if err != nil {
		return models.FavoriteRecord{}, fmt.Errorf("creating favorite: %w", err)
	}
	return created.toRecord(), nil
}

// Remove deletes the favorite document for the given movie, or returns
// ErrFavoriteNotFound when none exists.
func (r *RemoteStore) Remove(ctx context.Context, userID string, movieID int) error {
	doc, err := r.find(ctx, userID, movieID)
	if err != nil {
		return err
	}
	if doc == nil {
		return common.ErrFavoriteNotFound
	}
	return r.client.DeleteDocument(ctx, r.databaseID, r.collectionID, doc.ID)
}

// Count returns the number of favorites the user has stored remotely.
func (r *RemoteStore) Count(ctx context.Context, userID string) (int, error) {
	list, err := appwrite.ListDocuments[favoriteDoc](ctx, r.client, r.databaseID, r.collectionID,
		appwrite.QueryEqual("userId", userID))
	if err != nil {
		return 0, err
	}
	return list.Total, nil
}
