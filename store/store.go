/*
Package store is the motion tree's persistent cache: a SQLite-backed
lookup keyed on a protein pair and, for the clustering output, the
parameter tuple that produced it. It follows
TobiSchelling-AICrawler/internal/database's shape almost exactly — an
Open/Close wrapper, a PRAGMA user_version migration runner, an ordered
migrations slice — adapted from a news-crawler's tables to this
domain's three: protein pairs, motion trees, and nodes.

A STORE_FAILURE from any method here is never retried or recovered
locally. motiontree.Run only writes to the store, and ignores a failed
write; it never reads from it.
*/
package store

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/motiontree/motiontree/motionerr"
)

// DB wraps a SQLite connection holding the motion tree cache.
type DB struct {
	conn *sql.DB
	path string
}

// Open creates or opens the cache database at dbPath, applying any
// pending migrations.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, motionerr.Wrap(motionerr.StoreFailure, "creating store directory", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, motionerr.Wrap(motionerr.StoreFailure, "opening store", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, motionerr.Wrap(motionerr.StoreFailure, "setting journal mode", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, motionerr.Wrap(motionerr.StoreFailure, "enabling foreign keys", err)
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, motionerr.Wrap(motionerr.StoreFailure, "migrating store schema", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	if err := db.conn.Close(); err != nil {
		return motionerr.Wrap(motionerr.StoreFailure, "closing store", err)
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

func storeErr(msg string, err error) error {
	return motionerr.Wrap(motionerr.StoreFailure, msg, err)
}
