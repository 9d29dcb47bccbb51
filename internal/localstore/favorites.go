package localstore

import (
	"context"
	"errors"

	"github.com/moviehub-app/moviehub/internal/common"
	"github.com/moviehub-app/moviehub/internal/models"
)

const favoritesKeyPrefix = "favorites:"

// FavoritesStore keeps one ordered favorites list per user, newest-first.
// Every mutation reads and rewrites the whole per-user list; favorites
// lists are small, so this stays well within reason.
type FavoritesStore struct {
	store *Store
}

// NewFavoritesStore returns a FavoritesStore over the shared local store.
func NewFavoritesStore(store *Store) *FavoritesStore {
	return &FavoritesStore{store: store}
}

func (f *FavoritesStore) load(userID string) ([]models.FavoriteRecord, error) {
	var recs []models.FavoriteRecord
	err := f.store.getJSON(favoritesKeyPrefix+userID, &recs)
	if errors.Is(err, errKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// List returns the user's favorites, most recently added first.
func (f *FavoritesStore) List(ctx context.Context, userID string) ([]models.FavoriteRecord, error) {
	return f.load(userID)
}

// Add prepends a favorite record. Adding a movie that is already present
// returns ErrFavoriteExists.
func (f *FavoritesStore) Add(ctx context.Context, userID string, rec models.FavoriteRecord) (models.FavoriteRecord, error) {
	recs, err := f.load(userID)
	if err != nil {
		return models.FavoriteRecord{}, err
	}
	for _, existing := range recs {
		if existing.MovieID == rec.MovieID {
			return models.FavoriteRecord{}, common.ErrFavoriteExists
		}
	}

	updated := append([]models.FavoriteRecord{rec}, recs...)
	if err := f.store.setJSON(favoritesKeyPrefix+userID, updated); err != nil {
		return models.FavoriteRecord{}, err
	}
	return rec, nil
}

// Remove deletes the favorite for the given movie. Removing an absent
// movie returns ErrFavoriteNotFound.
func (f *FavoritesStore) Remove(ctx context.Context, userID string, movieID int) error {
	recs, err := f.load(userID)
	if err != nil {
		return err
	}

	updated := recs[:0]
	for _, rec := range recs {
		if rec.MovieID != movieID {
			updated = append(updated, rec)
		}
	}
	if len(updated) == len(recs) {
		return common.ErrFavoriteNotFound
	}
	return f.store.setJSON(favoritesKeyPrefix+userID, updated)
}

// Count returns the number of favorites stored for the user.
func (f *FavoritesStore) Count(ctx context.Context, userID string) (int, error) {
	recs, err := f.load(userID)
	if err != nil {
		return 0, err
	}
	return len(recs), nil
}
