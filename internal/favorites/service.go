package favorites

import (
	"context"
	"errors"
	"time"

	"github.com/moviehub-app/moviehub/internal/common"
	"github.com/moviehub-app/moviehub/internal/logging"
	"github.com/moviehub-app/moviehub/internal/models"
)

// Store is the common surface of the remote and local favorites backends.
type Store interface {
	List(ctx context.Context, userID string) ([]models.FavoriteRecord, error)
	Add(ctx context.Context, userID string, rec models.FavoriteRecord) (models.FavoriteRecord, error)
	Remove(ctx context.Context, userID string, movieID int) error
	Count(ctx context.Context, userID string) (int, error)
}

// Remote is a Store that can additionally report whether it is reachable.
type Remote interface {
	Store
	Probe(ctx context.Context) error
}

// Service is the favorites facade. It owns the in-memory favorites list
// and its id index, and mirrors writes to whichever backend is live.
// The in-memory view belongs to one user at a time: loads and mutations
// for a different user replace it, and membership queries for anyone
// else answer false.
//
// Reachability is re-probed on every add and remove rather than cached:
// a small latency cost buys always-current failover decisions. Toggle is
// check-then-act and therefore not atomic under concurrent calls; the UI
// is expected to disable its trigger while a toggle is in flight.
type Service struct {
	remote Remote
	local  Store
	log    logging.Logger
	now    func() time.Time

	useRemote  bool
	loadedUser string
	records    []models.FavoriteRecord
	index      map[int]struct{}
}

// NewService builds a facade over the given backends. The facade starts
// in remote mode and re-evaluates reachability on each mutating call.
func NewService(remote Remote, local Store, log logging.Logger) *Service {
	return &Service{
		remote:    remote,
		local:     local,
		log:       log.With("component", "favorites"),
		now:       time.Now,
		useRemote: true,
		index:     map[int]struct{}{},
	}
}

// UsingRemote reports which backend the facade currently targets.
func (s *Service) UsingRemote() bool { return s.useRemote }

func (s *Service) switchToLocal(ctx context.Context, reason error) {
	if s.useRemote {
		s.useRemote = false
		s.log.Warn(ctx, "favorites database unavailable, using local storage", "error", reason)
	}
}

// probe refreshes the backend mode from current reachability. Probe
// failures are never surfaced; they only steer the mode.
func (s *Service) probe(ctx context.Context) {
	if err := s.remote.Probe(ctx); err != nil {
		s.switchToLocal(ctx, err)
		return
	}
	s.useRemote = true
}

func (s *Service) setState(userID string, recs []models.FavoriteRecord) {
	s.loadedUser = userID
	s.records = recs
	s.index = make(map[int]struct{}, len(recs))
	for _, rec := range recs {
		s.index[rec.MovieID] = struct{}{}
	}
}

// LoadFavorites populates the in-memory list and index for the given
// user. Call it whenever the authenticated user changes; an empty userID
// clears the state.
func (s *Service) LoadFavorites(ctx context.Context, userID string) ([]models.FavoriteRecord, error) {
	if userID == "" {
		s.setState("", nil)
		return nil, nil
	}

	if s.useRemote {
		recs, err := s.remote.List(ctx, userID)
		if err == nil {
			s.setState(userID, recs)
			return recs, nil
		}
		s.switchToLocal(ctx, err)
	}

	recs, err := s.local.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.setState(userID, recs)
	return recs, nil
}

// IsFavorite reports membership against the in-memory index. It does not
// trigger a load; callers load favorites when the user changes. Asking
// about a user other than the one last loaded always answers false.
func (s *Service) IsFavorite(userID string, movieID int) bool {
	if userID != s.loadedUser {
		return false
	}
	_, ok := s.index[movieID]
	return ok
}

// AddToFavorites stores a snapshot of the movie as a favorite of the
// user. The remote backend is probed first; on probe failure, or on a
// failed remote write, the operation is retried transparently against
// local storage. A duplicate add returns ErrFavoriteExists from either
// backend.
func (s *Service) AddToFavorites(ctx context.Context, userID string, movie models.Movie) error {
	s.probe(ctx)

	rec := models.NewFavoriteRecord(movie, s.now().UTC())

	stored, err := s.addToBackend(ctx, userID, rec)
	if err != nil {
		return err
	}

	if userID != s.loadedUser {
		s.setState(userID, nil)
	}
	s.records = append([]models.FavoriteRecord{stored}, s.records...)
	s.index[stored.MovieID] = struct{}{}
	return nil
}

func (s *Service) addToBackend(ctx context.Context, userID string, rec models.FavoriteRecord) (models.FavoriteRecord, error) {
	if s.useRemote {
		stored, err := s.remote.Add(ctx, userID, rec)
		if err == nil {
			return stored, nil
		}
		if errors.Is(err, common.ErrFavoriteExists) {
			return models.FavoriteRecord{}, err
		}
		s.switchToLocal(ctx, err)
	}
	return s.local.Add(ctx, userID, rec)
}

// RemoveFromFavorites deletes the user's favorite for the given movie,
// with the same probe-and-fallback behavior as AddToFavorites. Removing
// an absent favorite returns ErrFavoriteNotFound.
func (s *Service) RemoveFromFavorites(ctx context.Context, userID string, movieID int) error {
	s.probe(ctx)

	if err := s.removeFromBackend(ctx, userID, movieID); err != nil {
		return err
	}

	if userID != s.loadedUser {
		s.setState(userID, nil)
		return nil
	}
	updated := s.records[:0]
	for _, rec := range s.records {
		if rec.MovieID != movieID {
			updated = append(updated, rec)
		}
	}
	s.records = updated
	delete(s.index, movieID)
	return nil
}

func (s *Service) removeFromBackend(ctx context.Context, userID string, movieID int) error {
	if s.useRemote {
		err := s.remote.Remove(ctx, userID, movieID)
		if err == nil {
			return nil
		}
		if errors.Is(err, common.ErrFavoriteNotFound) {
			return err
		}
		s.switchToLocal(ctx, err)
	}
	return s.local.Remove(ctx, userID, movieID)
}

// ToggleFavorite adds the movie when it is not currently a favorite and
// removes it when it is, returning the new membership state. Two
// concurrent toggles can both observe the same starting state; see the
// Service documentation for the caller contract.
func (s *Service) ToggleFavorite(ctx context.Context, userID string, movie models.Movie) (bool, error) {
	if s.IsFavorite(userID, movie.ID) {
		if err := s.RemoveFromFavorites(ctx, userID, movie.ID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := s.AddToFavorites(ctx, userID, movie); err != nil {
		return false, err
	}
	return true, nil
}

// GetFavoriteCount returns the user's favorite count from the active
// backend, falling back to local storage on remote failure.
func (s *Service) GetFavoriteCount(ctx context.Context, userID string) (int, error) {
	if s.useRemote {
		n, err := s.remote.Count(ctx, userID)
		if err == nil {
			return n, nil
		}
		s.switchToLocal(ctx, err)
	}
	return s.local.Count(ctx, userID)
}
