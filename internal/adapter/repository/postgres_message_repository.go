package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/entity"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/repository"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/pkg/errors"
)

type postgresMessageRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMessageRepository(db *pgxpool.Pool) repository.MessageRepository {
	return &postgresMessageRepository{db: db}
}

func (r *postgresMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO collaboration_messages (id, collaboration_id, sender_id, content, message_type, created_at)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6)`,
		message.ID, message.CollaborationID, message.SenderID,
		message.Content, string(message.MessageType), message.CreatedAt,
	)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}
	return nil
}

func (r *postgresMessageRepository) ListByCollaboration(ctx context.Context, collaborationID string, limit int, before *time.Time) ([]*entity.Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, collaboration_id, COALESCE(sender_id::text, ''), content, message_type, created_at
		FROM collaboration_messages
		WHERE collaboration_id = $1 AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at
		LIMIT $3`,
		collaborationID, before, limit,
	)
	if err != nil {
		return nil, errors.Internal("Failed to list messages", err)
	}
	defer rows.Close()

	var messages []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.CollaborationID, &m.SenderID, &m.Content, &m.MessageType, &m.CreatedAt); err != nil {
			return nil, errors.Internal("Failed to scan message", err)
		}
		messages = append(messages, &m)
	}
	if rows.Err() != nil {
		return nil, errors.Internal("Failed to iterate messages", rows.Err())
	}

	return messages, nil
}

func (r *postgresMessageRepository) MarkRead(ctx context.Context, collaborationID, userID string, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO collaboration_read_markers (collaboration_id, user_id, last_read_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (collaboration_id, user_id)
		DO UPDATE SET last_read_at = GREATEST(collaboration_read_markers.last_read_at, EXCLUDED.last_read_at)`,
		collaborationID, userID, at,
	)
	if err != nil {
		return errors.Internal("Failed to mark messages as read", err)
	}
	return nil
}

// ListConversations joins the viewer's non-pending collaborations with the
// latest message, the viewer's read marker, and the partner's identity.
// Conversations without messages sort last, by collaboration recency.
func (r *postgresMessageRepository) ListConversations(ctx context.Context, viewer entity.Actor) ([]*entity.ConversationSummary, error) {
	participantColumn := "c.creator_id"
	if viewer.Role == entity.PartyHotel {
		participantColumn = "c.hotel_id"
	}

	rows, err := r.db.Query(ctx, `
		SELECT
			c.id,
			c.status,
			CASE WHEN $2 = 'creator' THEN l.name ELSE cr.name END AS partner_name,
			CASE WHEN $2 = 'creator' THEN COALESCE(l.image_url, '') ELSE COALESCE(cr.avatar_url, '') END AS partner_avatar,
			COALESCE(last_msg.content, ''),
			last_msg.created_at,
			COALESCE(unread.count, 0)
		FROM collaborations c
		JOIN hotel_listings l ON l.id = c.listing_id
		JOIN creators cr ON cr.id = c.creator_id
		LEFT JOIN LATERAL (
			SELECT m.content, m.created_at
			FROM collaboration_messages m
			WHERE m.collaboration_id = c.id
			ORDER BY m.created_at DESC
			LIMIT 1
		) last_msg ON true
		LEFT JOIN collaboration_read_markers rm
			ON rm.collaboration_id = c.id AND rm.user_id = $3
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS count
			FROM collaboration_messages m
			WHERE m.collaboration_id = c.id
			  AND m.sender_id IS NOT NULL
			  AND m.sender_id <> $3
			  AND (rm.last_read_at IS NULL OR m.created_at > rm.last_read_at)
		) unread ON true
		WHERE `+participantColumn+` = $1 AND c.status <> 'pending'
		ORDER BY last_msg.created_at DESC NULLS LAST, c.updated_at DESC`,
		viewer.ProfileID, string(viewer.Role), viewer.UserID,
	)
	if err != nil {
		return nil, errors.Internal("Failed to list conversations", err)
	}
	defer rows.Close()

	var conversations []*entity.ConversationSummary
	for rows.Next() {
		var conv entity.ConversationSummary
		conv.MyRole = viewer.Role
		if err := rows.Scan(
			&conv.CollaborationID, &conv.CollaborationStatus,
			&conv.PartnerName, &conv.PartnerAvatar,
			&conv.LastMessage, &conv.LastMessageAt, &conv.UnreadCount,
		); err != nil {
			return nil, errors.Internal("Failed to scan conversation", err)
		}
		conversations = append(conversations, &conv)
	}
	if rows.Err() != nil {
		return nil, errors.Internal("Failed to iterate conversations", rows.Err())
	}

	return conversations, nil
}
