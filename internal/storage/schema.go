package storage

const schema = `
-- The 'progress' table stores the scheduling state of every studied card, per deck.
CREATE TABLE IF NOT EXISTS progress (
    deck TEXT NOT NULL,
    japanese TEXT NOT NULL,
    reading TEXT NOT NULL DEFAULT '',
    english TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    step INTEGER NOT NULL DEFAULT 0,
    interval_seconds REAL, -- NULL for a card that was never scheduled
    ease REAL NOT NULL,
    card_level INTEGER NOT NULL DEFAULT 0,
    level INTEGER NOT NULL DEFAULT 0,
    last_reviewed REAL, -- epoch seconds
    position INTEGER NOT NULL,

    PRIMARY KEY (deck, japanese)
);

-- The 'review_logs' table keeps one row per graded answer.
CREATE TABLE IF NOT EXISTS review_logs (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    deck TEXT NOT NULL,
    card_hash TEXT NOT NULL,
    prompt TEXT NOT NULL,
    rating TEXT NOT NULL,
    correct INTEGER NOT NULL,
    reviewed_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_review_logs_deck ON review_logs(deck, reviewed_at);
`
