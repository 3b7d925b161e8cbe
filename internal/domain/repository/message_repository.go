package repository

import (
	"context"
	"time"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/entity"
)

// MessageRepository stores collaboration chat messages and per-user read
// markers, and computes the conversation projection from them.
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error

	// ListByCollaboration returns messages in ascending creation order,
	// optionally only those created before the given timestamp.
	ListByCollaboration(ctx context.Context, collaborationID string, limit int, before *time.Time) ([]*entity.Message, error)

	// MarkRead advances the user's read marker for the collaboration.
	MarkRead(ctx context.Context, collaborationID, userID string, at time.Time) error

	// ListConversations projects the viewer's non-pending collaborations
	// into conversation summaries, newest message first.
	ListConversations(ctx context.Context, viewer entity.Actor) ([]*entity.ConversationSummary, error)
}
