package repo

import (
	"context"
	"errors"

	"cpmsdash/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommandsRepo struct{ db *pgxpool.Pool }

func NewCommandsRepo(db *pgxpool.Pool) *CommandsRepo { return &CommandsRepo{db: db} }

func (r *CommandsRepo) Create(ctx context.Context, c models.CommandRecord) error {
	_, err := r.db.Exec(ctx, `
        insert into remote_commands (command_id, cp_id, type, payload, status)
        values ($1,$2,$3,$4,$5)
    `, c.ID, c.CPID, c.Type, c.Payload, c.Status)
	return err
}

func (r *CommandsRepo) Get(ctx context.Context, id string) (*models.CommandRecord, error) {
	row := r.db.QueryRow(ctx, `
        select command_id::text, cp_id, type, payload, status, outcome, response, error, created_at, updated_at
        from remote_commands where command_id=$1
    `, id)

	c, err := scanCommand(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// ListByChargePoint returns the newest commands first.
func (r *CommandsRepo) ListByChargePoint(ctx context.Context, cpID, limit int) ([]models.CommandRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `
        select command_id::text, cp_id, type, payload, status, outcome, response, error, created_at, updated_at
        from remote_commands where cp_id=$1
        order by created_at desc
        limit $2
    `, cpID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CommandRecord
	for rows.Next() {
		c, err := scanCommand(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CommandsRepo) MarkSent(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `update remote_commands set status='Sent', updated_at=now() where command_id=$1`, id)
	return err
}

// MarkAcked records the charger's answer; outcome is Accepted or Rejected.
func (r *CommandsRepo) MarkAcked(ctx context.Context, id, outcome string, response []byte) error {
	_, err := r.db.Exec(ctx, `update remote_commands set status='Acked', outcome=$2, response=$3, updated_at=now() where command_id=$1`, id, outcome, response)
	return err
}

func (r *CommandsRepo) MarkFailed(ctx context.Context, id string, errMsg string) error {
	_, err := r.db.Exec(ctx, `update remote_commands set status='Failed', error=$2, updated_at=now() where command_id=$1`, id, errMsg)
	return err
}

func scanCommand(row pgx.Row) (*models.CommandRecord, error) {
	var c models.CommandRecord
	if err := row.Scan(&c.ID, &c.CPID, &c.Type, &c.Payload, &c.Status, &c.Outcome, &c.Response, &c.Error, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
