package storage

const schema = `
-- Decks own their cards; decks imported from a markdown source carry that
-- source's id so re-syncs can reconcile them.
CREATE TABLE IF NOT EXISTS decks (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    source_id INTEGER,
    created_at DATETIME NOT NULL,

    FOREIGN KEY(source_id) REFERENCES sources(id)
);

-- Scheduling state lives next to the card content and is only written
-- back after a grade.
CREATE TABLE IF NOT EXISTS cards (
    id TEXT PRIMARY KEY,
    deck_id TEXT NOT NULL,
    front TEXT NOT NULL,
    back TEXT NOT NULL,
    ease REAL NOT NULL,
    repetitions INTEGER NOT NULL DEFAULT 0,
    interval_days INTEGER NOT NULL DEFAULT 0,
    due_at DATETIME NOT NULL,
    last_quality INTEGER NOT NULL DEFAULT 0,
    source_hash TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL,

    FOREIGN KEY(deck_id) REFERENCES decks(id)
);

CREATE TABLE IF NOT EXISTS workouts (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    target TEXT,
    date TEXT NOT NULL,
    started_at DATETIME NOT NULL,
    est_minutes INTEGER NOT NULL DEFAULT 0,
    session_rpe REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS exercises (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    workout_id TEXT NOT NULL,
    name TEXT NOT NULL,
    sets INTEGER NOT NULL DEFAULT 0,
    reps TEXT,
    rpe REAL NOT NULL DEFAULT 0,

    FOREIGN KEY(workout_id) REFERENCES workouts(id)
);

-- Single-row tables: the current recovery check-in and the user profile.
CREATE TABLE IF NOT EXISTS recovery (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    sleep_hours REAL NOT NULL,
    stress INTEGER NOT NULL,
    soreness INTEGER NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS profile (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    name TEXT NOT NULL DEFAULT '',
    goal TEXT NOT NULL DEFAULT '',
    jokes_enabled INTEGER NOT NULL DEFAULT 1,
    voice_enabled INTEGER NOT NULL DEFAULT 0,
    preferred_deck_id TEXT NOT NULL DEFAULT '',
    max_study_minutes INTEGER NOT NULL DEFAULT 35
);

CREATE TABLE IF NOT EXISTS notifications (
    id TEXT PRIMARY KEY,
    created_at DATETIME NOT NULL,
    type TEXT NOT NULL,
    text TEXT NOT NULL,
    read INTEGER NOT NULL DEFAULT 0
);

-- Deck sources: local directories or git repositories of markdown files.
CREATE TABLE IF NOT EXISTS sources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    kind TEXT NOT NULL,
    last_synced DATETIME
);
`
