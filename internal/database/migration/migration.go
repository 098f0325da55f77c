// Package migration creates the schema on first boot. Steps are plain
// idempotent DDL run in order; there is no down path and no version table,
// a sentinel check keeps repeat boots cheap.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id            BIGSERIAL   PRIMARY KEY,
  filename      TEXT        NOT NULL,
  original_name TEXT        NOT NULL,
  storage_path  TEXT        NOT NULL UNIQUE,
  size          BIGINT      NOT NULL CHECK (size >= 0),
  tags          TEXT        NOT NULL DEFAULT '[]',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents (created_at DESC, id DESC);`,
	},
	{
		// No foreign key to documents: tokens deliberately outlive their
		// document, and consumption re-checks document existence anyway.
		Name: "create_table_download_tokens",
		SQL: `CREATE TABLE IF NOT EXISTS download_tokens (
  id          BIGSERIAL   PRIMARY KEY,
  token       TEXT        NOT NULL UNIQUE,
  document_id BIGINT      NOT NULL,
  expires_at  TIMESTAMPTZ NOT NULL,
  used_at     TIMESTAMPTZ,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_download_tokens_document_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_download_tokens_document_id ON download_tokens (document_id);`,
	},
}

// EnsureMigrated creates the schema if it is not present yet. The sentinel
// query checks both tables so a partially created schema is completed rather
// than skipped.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger) error {
	start := time.Now()

	var exists bool
	const sentinel = `SELECT to_regclass('public.documents') IS NOT NULL AND to_regclass('public.download_tokens') IS NOT NULL`
	if err := db.QueryRowContext(ctx, sentinel).Scan(&exists); err != nil {
		log.Error().Err(err).Msg("migration sentinel check failed")
		return fmt.Errorf("failed to check sentinel tables: %w", err)
	}

	if exists {
		log.Info().Dur("duration_ms", time.Since(start)).Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Msg("creating schema")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().Err(err).Str("migration_step", step.Name).Msg("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Info().
			Str("migration_step", step.Name).
			Dur("duration_ms", time.Since(stepStart)).
			Msg("migration step applied")
	}

	log.Info().Dur("duration_ms", time.Since(start)).Msg("schema created")
	return nil
}
