// Package localstore implements the on-device fallback backend: a
// persistent key-value store holding a synthetic user registry, the
// active session, and per-user favorites. It is used whenever the remote
// services are unreachable or misconfigured.
package localstore

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// errKeyNotFound is internal to this package; public APIs translate it
// into the domain sentinels of internal/common.
var errKeyNotFound = errors.New("key not found")

// Store wraps one Badger database shared by every local repository in the
// process. Writes are last-writer-wins; there is no versioning.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) the Badger database in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// getJSON reads the value at key into out.
func (s *Store) getJSON(key string, out any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errKeyNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	return nil
}

// setJSON stores value at key, replacing any previous value.
func (s *Store) setJSON(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// delete removes key; deleting an absent key is not an error.
func (s *Store) delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}
