package db

import (
	"database/sql"
)

// MigrateUp creates the campaign schema.
//
// Petition signatures and newsletter subscriptions carry a UNIQUE
// constraint on email: the database is the authority on duplicates, and
// the repositories translate constraint violations into domain errors.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS contact_submissions (
    id         BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL,
    subject    TEXT NOT NULL,
    message    TEXT NOT NULL,
    locale     VARCHAR(5) NOT NULL DEFAULT 'tr',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS petition_signatures (
    id         BIGSERIAL PRIMARY KEY,
    email      TEXT NOT NULL UNIQUE,
    first_name TEXT NOT NULL,
    last_name  TEXT NOT NULL,
    city       TEXT,
    locale     VARCHAR(5) NOT NULL DEFAULT 'tr',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS newsletter_subscriptions (
    id            BIGSERIAL PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    first_name    TEXT,
    interests     JSONB NOT NULL DEFAULT '[]',
    active        BOOLEAN NOT NULL DEFAULT TRUE,
    subscribed_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS videos (
    id           BIGSERIAL PRIMARY KEY,
    title        TEXT NOT NULL,
    title_en     TEXT NOT NULL DEFAULT '',
    description  TEXT NOT NULL DEFAULT '',
    url          TEXT NOT NULL,
    category     VARCHAR(20) NOT NULL,
    featured     BOOLEAN NOT NULL DEFAULT FALSE,
    published_at TIMESTAMPTZ,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// Contact listing in the admin panel is newest first
		`CREATE INDEX IF NOT EXISTS idx_contact_submissions_created_at ON contact_submissions(created_at DESC)`,
		// Signature counter and recent-signature displays
		`CREATE INDEX IF NOT EXISTS idx_petition_signatures_created_at ON petition_signatures(created_at DESC)`,
		// Active subscriber count
		`CREATE INDEX IF NOT EXISTS idx_newsletter_active ON newsletter_subscriptions(active) WHERE active = TRUE`,
		// Video listing filters
		`CREATE INDEX IF NOT EXISTS idx_videos_category ON videos(category)`,
		`CREATE INDEX IF NOT EXISTS idx_videos_featured ON videos(featured) WHERE featured = TRUE`,
		`CREATE INDEX IF NOT EXISTS idx_videos_published_at ON videos(published_at DESC NULLS LAST)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// Category constraint, ignored when it already exists
	_, _ = db.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'chk_video_category'
    ) THEN
        ALTER TABLE videos ADD CONSTRAINT chk_video_category
        CHECK (category IN ('news', 'testimony', 'documentary', 'event'));
    END IF;
END $$;
`)

	return nil
}

// MigrateDown rolls back the campaign schema.
// Use with caution: this will delete all data in the affected tables.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS videos CASCADE`,
		`DROP TABLE IF EXISTS newsletter_subscriptions CASCADE`,
		`DROP TABLE IF EXISTS petition_signatures CASCADE`,
		`DROP TABLE IF EXISTS contact_submissions CASCADE`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
