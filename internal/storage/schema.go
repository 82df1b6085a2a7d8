package storage

import (
	"context"
	"fmt"
)

// EnsureSchema creates the tables the service writes to. Kept idempotent so
// a fresh database works without a separate migration step.
func (d *DB) EnsureSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS analysis_runs (
  run_id UUID PRIMARY KEY,
  recipe_filename TEXT NOT NULL,
  manifest_filename TEXT NOT NULL,
  status TEXT NOT NULL CHECK (status IN ('pending','running','completed','failed')),
  report JSONB,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS llm_calls (
  call_id UUID PRIMARY KEY,
  operation TEXT NOT NULL,
  run_id UUID,
  provider_name TEXT NOT NULL,
  model TEXT NOT NULL,
  status TEXT NOT NULL,
  error_type TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_llm_calls_run ON llm_calls(run_id, created_at DESC);
`
	if _, err := d.Pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
