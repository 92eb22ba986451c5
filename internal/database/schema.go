package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied at startup. Statements are idempotent so repeated
// startups are safe; there is no migration versioning.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	phone TEXT NOT NULL DEFAULT '',
	company TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL CHECK (role IN ('candidate', 'employer', 'admin')),
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	location TEXT NOT NULL,
	type TEXT NOT NULL CHECK (type IN ('full-time', 'part-time', 'contract', 'internship')),
	description TEXT NOT NULL,
	requirements TEXT[] NOT NULL CHECK (array_length(requirements, 1) >= 1),
	salary_min NUMERIC,
	salary_max NUMERIC,
	salary_currency TEXT NOT NULL DEFAULT 'USD' CHECK (salary_currency IN ('USD', 'EUR', 'GBP', 'INR')),
	status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'closed')),
	employer_id UUID NOT NULL REFERENCES users(id),
	version BIGINT NOT NULL DEFAULT 1,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_jobs_status_created ON jobs (status, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_jobs_employer ON jobs (employer_id, created_at DESC);

CREATE TABLE IF NOT EXISTS applications (
	id UUID PRIMARY KEY,
	job_id UUID NOT NULL REFERENCES jobs(id),
	candidate_id UUID NOT NULL REFERENCES users(id),
	status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'reviewed', 'shortlisted', 'accepted', 'rejected')),
	cover_letter TEXT NOT NULL CHECK (cover_letter <> ''),
	resume TEXT NOT NULL CHECK (resume LIKE '/uploads/resumes/%'),
	notes TEXT,
	version BIGINT NOT NULL DEFAULT 1,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (job_id, candidate_id)
);

CREATE INDEX IF NOT EXISTS idx_applications_candidate ON applications (candidate_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_applications_job ON applications (job_id, created_at DESC);
`

// Migrate applies the schema to the connected database.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Println("Database schema applied")
	return nil
}
