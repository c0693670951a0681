package storage

import (
	"fmt"

	"github.com/conorfennell/benkyou/internal/deck"
)

const (
	DriverSQLite = "sqlite"
	DriverJSON   = "json"
)

// Store persists deck progress.
type Store interface {
	LoadProgress(deckName string) ([]deck.Record, error)
	SaveProgress(deckName string, records []deck.Record) error
	Close() error
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*FileStore)(nil)
)

// OpenStore opens the progress backend named by driver: a sqlite database
// at dbPath or a directory of JSON files at progressDir.
func OpenStore(driver, dbPath, progressDir string) (Store, error) {
	switch driver {
	case DriverSQLite:
		db, err := Open(dbPath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case DriverJSON:
		fs, err := NewFileStore(progressDir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
