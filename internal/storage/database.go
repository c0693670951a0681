package storage

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/conorfennell/benkyou/internal/deck"
	"github.com/conorfennell/benkyou/internal/domain"
	"github.com/conorfennell/benkyou/internal/srs"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Execute the schema to create tables if they don't exist.
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// LoadProgress returns the saved progress records of a deck, in the order
// they were saved. Rows that no longer decode into a card are skipped.
func (db *DB) LoadProgress(deckName string) ([]deck.Record, error) {
	rows, err := db.conn.Query(`
		SELECT japanese, reading, english, status, step, interval_seconds, ease, card_level, level, last_reviewed
		FROM progress WHERE deck = ?
		ORDER BY position
	`, deckName)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress for deck %s: %w", deckName, err)
	}
	defer rows.Close()

	var records []deck.Record
	for rows.Next() {
		var (
			r            deck.Record
			status       string
			interval     sql.NullFloat64
			level        int
			lastReviewed sql.NullFloat64
		)
		if err := rows.Scan(
			&r.Japanese,
			&r.Reading,
			&r.English,
			&status,
			&r.Card.Step,
			&interval,
			&r.Card.Ease,
			&r.Card.Level,
			&level,
			&lastReviewed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan progress row for deck %s: %w", deckName, err)
		}

		r.Card.Status, err = srs.ParseStatus(status)
		if err != nil {
			slog.Warn("Skipping unreadable progress row", "deck", deckName, "japanese", r.Japanese, "error", err)
			continue
		}
		if interval.Valid {
			r.Card.Interval = &interval.Float64
		}
		if lastReviewed.Valid {
			r.LastReviewedTime = &lastReviewed.Float64
		}
		r.Level = &level
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read progress for deck %s: %w", deckName, err)
	}
	return records, nil
}

// SaveProgress replaces the saved progress of a deck in one transaction.
func (db *DB) SaveProgress(deckName string, records []deck.Record) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM progress WHERE deck = ?`, deckName); err != nil {
		return fmt.Errorf("failed to clear progress for deck %s: %w", deckName, err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO progress
			(deck, japanese, reading, english, status, step, interval_seconds, ease, card_level, level, last_reviewed, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare progress insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		level := 0
		if r.Level != nil {
			level = *r.Level
		}
		_, err := stmt.Exec(
			deckName,
			r.Japanese,
			r.Reading,
			r.English,
			r.Card.Status.String(),
			r.Card.Step,
			nullFloat(r.Card.Interval),
			r.Card.Ease,
			r.Card.Level,
			level,
			nullFloat(r.LastReviewedTime),
			i,
		)
		if err != nil {
			return fmt.Errorf("failed to save progress for %s: %w", r.Japanese, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit progress for deck %s: %w", deckName, err)
	}
	return nil
}

// LogReview inserts a review log entry.
func (db *DB) LogReview(l domain.ReviewLog) error {
	_, err := db.conn.Exec(`
		INSERT INTO review_logs (id, session_id, deck, card_hash, prompt, rating, correct, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		l.ID,
		l.SessionID,
		l.Deck,
		l.CardHash,
		l.Prompt,
		l.Rating,
		l.Correct,
		l.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert review log %s: %w", l.ID, err)
	}
	return nil
}

// ReviewsByDeck retrieves the review history of a deck, oldest first.
func (db *DB) ReviewsByDeck(deckName string) ([]domain.ReviewLog, error) {
	rows, err := db.conn.Query(`
		SELECT id, session_id, deck, card_hash, prompt, rating, correct, reviewed_at
		FROM review_logs WHERE deck = ?
		ORDER BY reviewed_at, rowid
	`, deckName)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews for deck %s: %w", deckName, err)
	}
	defer rows.Close()

	var logs []domain.ReviewLog
	for rows.Next() {
		var l domain.ReviewLog
		if err := rows.Scan(
			&l.ID,
			&l.SessionID,
			&l.Deck,
			&l.CardHash,
			&l.Prompt,
			&l.Rating,
			&l.Correct,
			&l.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review row for deck %s: %w", deckName, err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
