package archive

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS feeds (
    subscription TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    link TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS entries (
    subscription TEXT NOT NULL,
    position INTEGER NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    link TEXT NOT NULL,
    summary TEXT NOT NULL DEFAULT '',
    published DATETIME,
    PRIMARY KEY (subscription, position)
);

CREATE INDEX IF NOT EXISTS idx_entries_link ON entries(subscription, link);
`

// SQLiteStore is the database-backed archive, for deployments that want the
// archive queryable instead of (or alongside) the published XML documents.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the archive database and initializes the schema.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(subscription string) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT title, link, summary, published
		FROM entries WHERE subscription = ? ORDER BY position`, subscription)
	if err != nil {
		return nil, fmt.Errorf("load archive %s: %w", subscription, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var published sql.NullTime
		if err := rows.Scan(&e.Title, &e.Link, &e.Summary, &published); err != nil {
			return nil, fmt.Errorf("scan archive entry: %w", err)
		}
		if published.Valid {
			t := published.Time
			e.Published = &t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Persist rewrites the subscription's rows in one transaction; positions
// record the merged order so Load round-trips it.
func (s *SQLiteStore) Persist(subscription string, info FeedInfo, existing, appended []Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin persist: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO feeds (subscription, title, link, description) VALUES (?, ?, ?, ?)
		ON CONFLICT(subscription) DO UPDATE SET title = excluded.title,
			link = excluded.link, description = excluded.description`,
		subscription, info.Title, info.Link, info.Description); err != nil {
		return fmt.Errorf("persist feed info: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM entries WHERE subscription = ?`, subscription); err != nil {
		return fmt.Errorf("clear archive: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO entries (subscription, position, title, link, summary, published)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range Merge(existing, appended) {
		var published *time.Time
		if e.Published != nil {
			published = e.Published
		}
		if _, err := stmt.Exec(subscription, i, e.Title, e.Link, e.Summary, published); err != nil {
			return fmt.Errorf("insert archive entry %s: %w", e.Link, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
