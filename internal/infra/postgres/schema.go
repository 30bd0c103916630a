package postgres

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS quiz_results (
	id           BIGSERIAL PRIMARY KEY,
	owner        TEXT        NOT NULL,
	session_id   TEXT        NOT NULL,
	difficulty   TEXT        NOT NULL,
	topics       TEXT[]      NOT NULL,
	score        INTEGER     NOT NULL,
	total        INTEGER     NOT NULL,
	percentage   DOUBLE PRECISION NOT NULL,
	started_at   TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS quiz_results_owner_completed_idx
	ON quiz_results (owner, completed_at DESC);

CREATE TABLE IF NOT EXISTS quiz_answers (
	id              BIGSERIAL PRIMARY KEY,
	result_id       BIGINT      NOT NULL REFERENCES quiz_results (id) ON DELETE CASCADE,
	question_order  INTEGER     NOT NULL,
	question_id     TEXT        NOT NULL,
	selected_option TEXT        NOT NULL,
	correct_answer  TEXT        NOT NULL,
	is_correct      BOOLEAN     NOT NULL,
	answered_at     TIMESTAMPTZ NOT NULL
);
`

// Migrate creates the tables used by the result repository if they are missing.
func Migrate(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
