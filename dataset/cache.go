package dataset

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/cinegraph/cinegraph/errors"
)

// Cache persists fetched datasets in a local SQLite database so the app can
// come up offline. One row per source; a refetch of the same source replaces
// the previous payload.
type Cache struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// OpenCache opens (and if needed creates) the cache database at path.
func OpenCache(path string, logger *zap.SugaredLogger) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open cache database")
	}

	// WAL mode for concurrent reads during writes
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to enable WAL mode")
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to set busy timeout")
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS datasets (
			source     TEXT PRIMARY KEY,
			fetched_at TEXT NOT NULL,
			stored_at  TEXT NOT NULL,
			payload    TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create datasets table")
	}

	return &Cache{db: db, logger: logger.Named("dataset.cache")}, nil
}

// Store upserts the dataset payload keyed by its source.
func (c *Cache) Store(ds *Dataset) error {
	payload, err := ds.Marshal()
	if err != nil {
		return err
	}

	_, err = c.db.Exec(`
		INSERT INTO datasets (source, fetched_at, stored_at, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(source) DO UPDATE SET
			fetched_at = excluded.fetched_at,
			stored_at  = excluded.stored_at,
			payload    = excluded.payload`,
		ds.Source,
		ds.FetchedAt.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
		string(payload),
	)
	if err != nil {
		return errors.Wrap(err, "failed to store dataset")
	}

	c.logger.Debugw("Dataset cached", "source", ds.Source, "movies", len(ds.Movies))
	return nil
}

// Latest returns the most recently stored dataset across all sources.
func (c *Cache) Latest() (*Dataset, error) {
	var payload string
	err := c.db.QueryRow(
		`SELECT payload FROM datasets ORDER BY stored_at DESC LIMIT 1`,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNoData, "fetch cache is empty")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cache")
	}

	return Parse([]byte(payload))
}

// Get returns the cached dataset for a specific source.
func (c *Cache) Get(source string) (*Dataset, error) {
	var payload string
	err := c.db.QueryRow(
		`SELECT payload FROM datasets WHERE source = ?`, source,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrNoData, "no cached dataset for %q", source)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cache")
	}

	return Parse([]byte(payload))
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}
