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

type ReactionRepo struct {
	pool *pgxpool.Pool
}

func NewReactionRepo(pool *pgxpool.Pool) *ReactionRepo {
	return &ReactionRepo{pool: pool}
}

func (r *ReactionRepo) Create(ctx context.Context, reaction *domain.Reaction) error {
	query := `
		INSERT INTO reactions (id, workspace_id, message_id, member_id, value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		reaction.ID, reaction.WorkspaceID, reaction.MessageID, reaction.MemberID, reaction.Value, reaction.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return repository.ErrDuplicate
	}
	return err
}

func (r *ReactionRepo) Get(ctx context.Context, messageID, memberID uuid.UUID, value string) (*domain.Reaction, error) {
	query := `
		SELECT id, workspace_id, message_id, member_id, value, created_at
		FROM reactions
		WHERE message_id = $1 AND member_id = $2 AND value = $3`
	var reaction domain.Reaction
	err := r.pool.QueryRow(ctx, query, messageID, memberID, value).Scan(
		&reaction.ID, &reaction.WorkspaceID, &reaction.MessageID, &reaction.MemberID, &reaction.Value, &reaction.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &reaction, err
}

func (r *ReactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM reactions WHERE id = $1`, id)
	return err
}

func (r *ReactionRepo) ListByMessageIDs(ctx context.Context, messageIDs []uuid.UUID) (map[uuid.UUID][]domain.Reaction, error) {
	result := make(map[uuid.UUID][]domain.Reaction)
	if len(messageIDs) == 0 {
		return result, nil
	}

	// Insertion order matters: the timeline groups emoji in first-seen order.
	query := `
		SELECT id, workspace_id, message_id, member_id, value, created_at
		FROM reactions
		WHERE message_id = ANY($1)
		ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, messageIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var reaction domain.Reaction
		if err := rows.Scan(
			&reaction.ID, &reaction.WorkspaceID, &reaction.MessageID, &reaction.MemberID, &reaction.Value, &reaction.CreatedAt,
		); err != nil {
			return nil, err
		}
		result[reaction.MessageID] = append(result[reaction.MessageID], reaction)
	}
	return result, rows.Err()
}
