package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;

-- Preferences: one value per key and profile
CREATE TABLE IF NOT EXISTS preferences (
    profile TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (profile, key)
);

CREATE INDEX IF NOT EXISTS idx_preferences_profile ON preferences(profile);
`
