package postgres

import (
	"context"
	"errors"

	"github.com/abdulrafay-07/slack/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WorkspaceRepo struct {
	pool *pgxpool.Pool
}

func NewWorkspaceRepo(pool *pgxpool.Pool) *WorkspaceRepo {
	return &WorkspaceRepo{pool: pool}
}

func (r *WorkspaceRepo) Create(ctx context.Context, ws *domain.Workspace) error {
	query := `
		INSERT INTO workspaces (id, name, join_code, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, ws.ID, ws.Name, ws.JoinCode, ws.OwnerID, ws.CreatedAt)
	return err
}

func (r *WorkspaceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	query := `
		SELECT id, name, join_code, owner_id, created_at
		FROM workspaces
		WHERE id = $1`
	var ws domain.Workspace
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ws.ID, &ws.Name, &ws.JoinCode, &ws.OwnerID, &ws.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &ws, err
}

func (r *WorkspaceRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	query := `
		SELECT w.id, w.name, w.join_code, w.owner_id, w.created_at
		FROM workspaces w
		JOIN members m ON m.workspace_id = w.id
		WHERE m.user_id = $1
		ORDER BY w.created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []domain.Workspace
	for rows.Next() {
		var ws domain.Workspace
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.JoinCode, &ws.OwnerID, &ws.CreatedAt); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, ws)
	}
	return workspaces, rows.Err()
}

func (r *WorkspaceRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	_, err := r.pool.Exec(ctx, `UPDATE workspaces SET name = $1 WHERE id = $2`, name, id)
	return err
}

func (r *WorkspaceRepo) UpdateJoinCode(ctx context.Context, id uuid.UUID, joinCode string) error {
	_, err := r.pool.Exec(ctx, `UPDATE workspaces SET join_code = $1 WHERE id = $2`, joinCode, id)
	return err
}

func (r *WorkspaceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Members, channels, conversations, messages and reactions go with it
	// via ON DELETE CASCADE.
	_, err := r.pool.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	return err
}
