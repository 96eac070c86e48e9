// Package store persists the command history of the shell in a bbolt
// database.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.squeak.sh/pkg/logutil"
	"src.squeak.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

const bucketCmd = "cmd"

// initDB holds the initializers of the buckets, run when a database is
// opened.
var initDB = map[string]func(*bolt.Tx) error{}

// DBStore is a storedefs.Store backed by a database file.
type DBStore interface {
	storedefs.Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore opens the database file at dbname, creating it if needed. It
// fails if another process holds the file for more than a second.
func NewStore(dbname string) (DBStore, error) {
	db, err := bolt.Open(dbname, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbname, err)
	}
	logger.Println("opened", dbname)
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &dbStore{db}, nil
}

// Close closes the database.
func (s *dbStore) Close() error { return s.db.Close() }
