package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/abdulrafay-07/slack/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

const messageColumns = `
	m.id, m.workspace_id, m.member_id, m.channel_id, m.conversation_id,
	m.parent_id, m.body, m.file_key, m.created_at, m.edited_at,
	u.name, u.avatar_url`

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var msg domain.Message
	err := row.Scan(
		&msg.ID, &msg.WorkspaceID, &msg.MemberID, &msg.ChannelID, &msg.ConversationID,
		&msg.ParentID, &msg.Body, &msg.FileKey, &msg.CreatedAt, &msg.EditedAt,
		&msg.AuthorName, &msg.AuthorAvatarURL,
	)
	return &msg, err
}

func (r *MessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, workspace_id, member_id, channel_id, conversation_id, parent_id, body, file_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		msg.ID, msg.WorkspaceID, msg.MemberID, msg.ChannelID, msg.ConversationID,
		msg.ParentID, msg.Body, msg.FileKey, msg.CreatedAt,
	)
	return err
}

func (r *MessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM messages m
		JOIN members mem ON m.member_id = mem.id
		JOIN users u ON mem.user_id = u.id
		WHERE m.id = $1`, messageColumns)
	msg, err := scanMessage(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return msg, err
}

func (r *MessageRepo) ListByChannel(ctx context.Context, channelID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error) {
	// Top-level messages only; replies surface through thread summaries.
	return r.list(ctx, "m.channel_id = $1 AND m.parent_id IS NULL", channelID, before, limit)
}

func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error) {
	return r.list(ctx, "m.conversation_id = $1 AND m.parent_id IS NULL", conversationID, before, limit)
}

func (r *MessageRepo) ListThread(ctx context.Context, parentID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error) {
	return r.list(ctx, "m.parent_id = $1", parentID, before, limit)
}

// list pages newest first using the cursor message's created_at.
func (r *MessageRepo) list(ctx context.Context, where string, scopeID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error) {
	var query string
	var args []any

	if before != nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM messages m
			JOIN members mem ON m.member_id = mem.id
			JOIN users u ON mem.user_id = u.id
			WHERE %s
				AND m.created_at < (SELECT created_at FROM messages WHERE id = $2)
			ORDER BY m.created_at DESC
			LIMIT %d`, messageColumns, where, limit)
		args = []any{scopeID, *before}
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM messages m
			JOIN members mem ON m.member_id = mem.id
			JOIN users u ON mem.user_id = u.id
			WHERE %s
			ORDER BY m.created_at DESC
			LIMIT %d`, messageColumns, where, limit)
		args = []any{scopeID}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}
	return messages, rows.Err()
}

func (r *MessageRepo) UpdateBody(ctx context.Context, id uuid.UUID, body string) error {
	_, err := r.pool.Exec(ctx, `UPDATE messages SET body = $1, edited_at = now() WHERE id = $2`, body, id)
	return err
}

func (r *MessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Reactions cascade; replies keep living with parent_id set to NULL.
	_, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	return err
}

func (r *MessageRepo) ThreadSummaries(ctx context.Context, parentIDs []uuid.UUID) (map[uuid.UUID]*domain.ThreadSummary, error) {
	if len(parentIDs) == 0 {
		return map[uuid.UUID]*domain.ThreadSummary{}, nil
	}

	// One row per parent: reply count plus the newest reply's author.
	query := `
		SELECT DISTINCT ON (m.parent_id)
			m.parent_id,
			COUNT(*) OVER (PARTITION BY m.parent_id),
			m.created_at, u.name, u.avatar_url
		FROM messages m
		JOIN members mem ON m.member_id = mem.id
		JOIN users u ON mem.user_id = u.id
		WHERE m.parent_id = ANY($1)
		ORDER BY m.parent_id, m.created_at DESC`

	rows, err := r.pool.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make(map[uuid.UUID]*domain.ThreadSummary)
	for rows.Next() {
		var s domain.ThreadSummary
		if err := rows.Scan(&s.ParentID, &s.Count, &s.LastReplyAt, &s.LastReplyAuthorName, &s.LastReplyAuthorImage); err != nil {
			return nil, err
		}
		summaries[s.ParentID] = &s
	}
	return summaries, rows.Err()
}
