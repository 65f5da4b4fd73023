package foldericon

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // register sqlite3 driver
)

// Cache stores encoded icon containers keyed by the SHA-1 of the source image
// file they were produced from.
type Cache struct {
	db *sql.DB
}

// NewCache opens or creates the cache database at file.
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	// Writes come from every pipeline worker
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS icon (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

// Find returns the icon container stored for sha, or nil if there is none.
func (c *Cache) Find(sha string) ([]byte, error) {
	var data []byte
	switch err := c.db.QueryRow("SELECT data FROM icon WHERE sha1 = ?", sha).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return data, nil
	default:
		return nil, err
	}
}

// Store records data as the icon container for sha, replacing any existing
// entry.
func (c *Cache) Store(sha string, data []byte) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO icon (sha1, data) VALUES (?, ?)", sha, data); err != nil {
		return err
	}
	return nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
