package postgres

import (
	"context"
	"errors"

	"github.com/abdulrafay-07/slack/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ChannelRepo struct {
	pool *pgxpool.Pool
}

func NewChannelRepo(pool *pgxpool.Pool) *ChannelRepo {
	return &ChannelRepo{pool: pool}
}

func (r *ChannelRepo) Create(ctx context.Context, channel *domain.Channel) error {
	query := `
		INSERT INTO channels (id, workspace_id, name, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, channel.ID, channel.WorkspaceID, channel.Name, channel.CreatedAt)
	return err
}

func (r *ChannelRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error) {
	query := `
		SELECT id, workspace_id, name, created_at
		FROM channels
		WHERE id = $1`
	var channel domain.Channel
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&channel.ID, &channel.WorkspaceID, &channel.Name, &channel.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &channel, err
}

func (r *ChannelRepo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Channel, error) {
	query := `
		SELECT id, workspace_id, name, created_at
		FROM channels
		WHERE workspace_id = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []domain.Channel
	for rows.Next() {
		var channel domain.Channel
		if err := rows.Scan(&channel.ID, &channel.WorkspaceID, &channel.Name, &channel.CreatedAt); err != nil {
			return nil, err
		}
		channels = append(channels, channel)
	}
	return channels, rows.Err()
}

func (r *ChannelRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	_, err := r.pool.Exec(ctx, `UPDATE channels SET name = $1 WHERE id = $2`, name, id)
	return err
}

func (r *ChannelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM channels WHERE id = $1`, id)
	return err
}
