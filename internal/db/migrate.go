package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the econ schema. Every statement is idempotent so the bot
// and the sweeper can both run it at startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE SCHEMA IF NOT EXISTS econ`,
		`CREATE TABLE IF NOT EXISTS econ.accounts (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL DEFAULT 'Unknown',
			job_tier        INT NOT NULL DEFAULT 0,
			job_rank        INT NOT NULL DEFAULT 0,
			balance         BIGINT NOT NULL DEFAULT 0,
			times_worked    INT NOT NULL DEFAULT 0,
			last_work_at    TIMESTAMPTZ NOT NULL DEFAULT 'epoch',
			last_passive_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS econ.houses (
			user_id   TEXT NOT NULL,
			idx       INT NOT NULL,
			PRIMARY KEY (user_id, idx)
		)`,
		`CREATE TABLE IF NOT EXISTS econ.businesses (
			user_id   TEXT NOT NULL,
			idx       INT NOT NULL,
			PRIMARY KEY (user_id, idx)
		)`,
		`CREATE TABLE IF NOT EXISTS econ.illegal_businesses (
			user_id   TEXT NOT NULL,
			idx       INT NOT NULL,
			PRIMARY KEY (user_id, idx)
		)`,
		`CREATE TABLE IF NOT EXISTS econ.inventory (
			user_id  TEXT NOT NULL,
			item     TEXT NOT NULL,
			quantity INT NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, item)
		)`,
		`CREATE TABLE IF NOT EXISTS econ.active_effects (
			user_id    TEXT NOT NULL,
			effect     TEXT NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (user_id, effect)
		)`,
		`CREATE TABLE IF NOT EXISTS econ.loans (
			id           BIGSERIAL PRIMARY KEY,
			lender_id    TEXT NOT NULL,
			borrower_id  TEXT NOT NULL,
			principal    BIGINT NOT NULL,
			interest_pct DOUBLE PRECISION NOT NULL,
			due_at       TIMESTAMPTZ NOT NULL,
			paid         BOOLEAN NOT NULL DEFAULT false,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS loans_lender_idx ON econ.loans (lender_id, paid, due_at)`,
		`CREATE INDEX IF NOT EXISTS loans_borrower_idx ON econ.loans (borrower_id, paid, due_at)`,
		`CREATE TABLE IF NOT EXISTS econ.ledger_entries (
			id          BIGSERIAL PRIMARY KEY,
			tx_group_id UUID NOT NULL,
			user_id     TEXT NOT NULL,
			account     TEXT NOT NULL,
			delta       BIGINT NOT NULL,
			metadata    JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS ledger_user_idx ON econ.ledger_entries (user_id, created_at)`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
