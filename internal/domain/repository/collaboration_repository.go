package repository

import (
	"context"
	"time"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/entity"
)

// CollaborationRepository is the storage port for the negotiation state
// machine. Every transition method performs its decisive write as a single
// conditional update guarded on the current status, so that of two
// conflicting concurrent calls exactly one wins; the loser gets a Conflict.
type CollaborationRepository interface {
	Create(ctx context.Context, collab *entity.Collaboration, deliverables []entity.Deliverable) error
	GetByID(ctx context.Context, id string) (*entity.Collaboration, error)
	ListByParticipant(ctx context.Context, party entity.Party, profileID string, status entity.Status, limit, offset int) ([]*entity.Collaboration, int64, error)

	// Respond moves pending to negotiating (accept, stamping the responder's
	// agreement) or pending to declined.
	Respond(ctx context.Context, id string, accept bool, responder entity.Party, message string, at time.Time) (*entity.Collaboration, error)

	// UpdateTerms writes the collaboration's negotiable fields while
	// negotiating, stamping the actor's agreement and clearing the
	// counterpart's. A non-nil deliverables slice replaces the existing set
	// in the same transaction.
	UpdateTerms(ctx context.Context, collab *entity.Collaboration, deliverables []entity.Deliverable, actor entity.Party, at time.Time) (*entity.Collaboration, error)

	// Approve stamps the acting party's agreement while negotiating and
	// promotes to accepted in the same statement when both stamps are set.
	Approve(ctx context.Context, id string, party entity.Party, at time.Time) (*entity.Collaboration, error)

	// Cancel moves pending or negotiating → cancelled.
	Cancel(ctx context.Context, id string, reason *string, at time.Time) (*entity.Collaboration, error)

	ListDeliverables(ctx context.Context, collaborationID string) ([]entity.Deliverable, error)

	// ToggleDeliverable flips one deliverable between pending and completed.
	ToggleDeliverable(ctx context.Context, collaborationID, deliverableID string) error
}
