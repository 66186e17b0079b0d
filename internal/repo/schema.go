package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`create table if not exists remote_commands (
        command_id  uuid primary key,
        cp_id       integer not null,
        type        text not null,
        payload     jsonb not null default '{}',
        status      text not null,
        outcome     text,
        response    jsonb,
        error       text,
        created_at  timestamptz not null default now(),
        updated_at  timestamptz not null default now()
    )`,
	`create index if not exists remote_commands_cp_created_idx on remote_commands (cp_id, created_at desc)`,
}

// EnsureSchema creates the audit tables if they are missing.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
