package postgres

import (
	"context"
	"errors"

	"github.com/abdulrafay-07/slack/internal/domain"
	"github.com/abdulrafay-07/slack/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres unique_violation.
const uniqueViolationCode = "23505"

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

func (r *ConversationRepo) Create(ctx context.Context, conv *domain.Conversation) error {
	query := `
		INSERT INTO conversations (id, workspace_id, member_one_id, member_two_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query,
		conv.ID, conv.WorkspaceID, conv.MemberOneID, conv.MemberTwoID, conv.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return repository.ErrDuplicate
	}
	return err
}

func (r *ConversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	query := `
		SELECT id, workspace_id, member_one_id, member_two_id, created_at
		FROM conversations
		WHERE id = $1`
	var conv domain.Conversation
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&conv.ID, &conv.WorkspaceID, &conv.MemberOneID, &conv.MemberTwoID, &conv.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &conv, err
}

func (r *ConversationRepo) GetByMembers(ctx context.Context, workspaceID, memberOneID, memberTwoID uuid.UUID) (*domain.Conversation, error) {
	query := `
		SELECT id, workspace_id, member_one_id, member_two_id, created_at
		FROM conversations
		WHERE workspace_id = $1 AND member_one_id = $2 AND member_two_id = $3`
	var conv domain.Conversation
	err := r.pool.QueryRow(ctx, query, workspaceID, memberOneID, memberTwoID).Scan(
		&conv.ID, &conv.WorkspaceID, &conv.MemberOneID, &conv.MemberTwoID, &conv.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &conv, err
}
