package postgres

import (
	"context"
	"errors"

	"github.com/abdulrafay-07/slack/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MemberRepo struct {
	pool *pgxpool.Pool
}

func NewMemberRepo(pool *pgxpool.Pool) *MemberRepo {
	return &MemberRepo{pool: pool}
}

func (r *MemberRepo) Create(ctx context.Context, member *domain.Member) error {
	query := `
		INSERT INTO members (id, workspace_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query,
		member.ID, member.WorkspaceID, member.UserID, member.Role, member.CreatedAt,
	)
	return err
}

func (r *MemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	query := `
		SELECT m.id, m.workspace_id, m.user_id, m.role, m.created_at,
			u.name, u.email, u.avatar_url
		FROM members m
		JOIN users u ON m.user_id = u.id
		WHERE m.id = $1`
	var member domain.Member
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&member.ID, &member.WorkspaceID, &member.UserID, &member.Role, &member.CreatedAt,
		&member.UserName, &member.UserEmail, &member.UserAvatarURL,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &member, err
}

func (r *MemberRepo) GetByWorkspaceAndUser(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.Member, error) {
	query := `
		SELECT m.id, m.workspace_id, m.user_id, m.role, m.created_at,
			u.name, u.email, u.avatar_url
		FROM members m
		JOIN users u ON m.user_id = u.id
		WHERE m.workspace_id = $1 AND m.user_id = $2`
	var member domain.Member
	err := r.pool.QueryRow(ctx, query, workspaceID, userID).Scan(
		&member.ID, &member.WorkspaceID, &member.UserID, &member.Role, &member.CreatedAt,
		&member.UserName, &member.UserEmail, &member.UserAvatarURL,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &member, err
}

func (r *MemberRepo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Member, error) {
	query := `
		SELECT m.id, m.workspace_id, m.user_id, m.role, m.created_at,
			u.name, u.email, u.avatar_url
		FROM members m
		JOIN users u ON m.user_id = u.id
		WHERE m.workspace_id = $1
		ORDER BY m.created_at`

	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var member domain.Member
		if err := rows.Scan(
			&member.ID, &member.WorkspaceID, &member.UserID, &member.Role, &member.CreatedAt,
			&member.UserName, &member.UserEmail, &member.UserAvatarURL,
		); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (r *MemberRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	_, err := r.pool.Exec(ctx, `UPDATE members SET role = $1 WHERE id = $2`, role, id)
	return err
}

func (r *MemberRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	return err
}
