package repository

import (
	"context"
	goerrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/entity"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/repository"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/pkg/errors"
)

const collaborationColumns = `id, listing_id, creator_id, hotel_id, initiator_type, status,
	collaboration_type, why_great_fit, free_stay_min_nights, free_stay_max_nights,
	paid_amount, discount_percentage, travel_date_from, travel_date_to,
	response_message, creator_agreed_at, hotel_agreed_at, cancelled_at,
	cancellation_reason, created_at, updated_at`

type postgresCollaborationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCollaborationRepository(db *pgxpool.Pool) repository.CollaborationRepository {
	return &postgresCollaborationRepository{db: db}
}

func (r *postgresCollaborationRepository) Create(ctx context.Context, collab *entity.Collaboration, deliverables []entity.Deliverable) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return errors.Internal("Failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	minNights, maxNights, paidAmount, discountPct := compensationColumns(collab.Compensation)

	_, err = tx.Exec(ctx, `
		INSERT INTO collaborations (
			id, listing_id, creator_id, hotel_id, initiator_type, status,
			collaboration_type, why_great_fit, free_stay_min_nights, free_stay_max_nights,
			paid_amount, discount_percentage, travel_date_from, travel_date_to,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12, $13, $14, $15, $16)`,
		collab.ID, collab.ListingID, collab.CreatorID, collab.HotelID,
		string(collab.InitiatorType), string(collab.Status),
		string(collab.Compensation.Type()), collab.WhyGreatFit,
		minNights, maxNights, paidAmount, discountPct,
		collab.TravelDateFrom, collab.TravelDateTo,
		collab.CreatedAt, collab.UpdatedAt,
	)
	if err != nil {
		return errors.Internal("Failed to create collaboration", err)
	}

	if err := insertDeliverables(ctx, tx, collab.ID, deliverables); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Internal("Failed to commit collaboration", err)
	}

	return nil
}

func (r *postgresCollaborationRepository) GetByID(ctx context.Context, id string) (*entity.Collaboration, error) {
	if uuid.Validate(id) != nil {
		return nil, errors.NotFound("Collaboration", nil)
	}

	row := r.db.QueryRow(ctx, `SELECT `+collaborationColumns+` FROM collaborations WHERE id = $1`, id)
	return scanCollaboration(row)
}

func (r *postgresCollaborationRepository) ListByParticipant(ctx context.Context, party entity.Party, profileID string, status entity.Status, limit, offset int) ([]*entity.Collaboration, int64, error) {
	column := "creator_id"
	if party == entity.PartyHotel {
		column = "hotel_id"
	}

	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM collaborations
		WHERE `+column+` = $1 AND ($2 = '' OR status = $2)`,
		profileID, string(status),
	).Scan(&total)
	if err != nil {
		return nil, 0, errors.Internal("Failed to count collaborations", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+collaborationColumns+` FROM collaborations
		WHERE `+column+` = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		profileID, string(status), limit, offset,
	)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list collaborations", err)
	}
	defer rows.Close()

	var collabs []*entity.Collaboration
	for rows.Next() {
		collab, err := scanCollaboration(rows)
		if err != nil {
			return nil, 0, err
		}
		collabs = append(collabs, collab)
	}
	if rows.Err() != nil {
		return nil, 0, errors.Internal("Failed to iterate collaborations", rows.Err())
	}

	return collabs, total, nil
}

func (r *postgresCollaborationRepository) Respond(ctx context.Context, id string, accept bool, responder entity.Party, message string, at time.Time) (*entity.Collaboration, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE collaborations SET
			status = CASE WHEN $2 THEN 'negotiating' ELSE 'declined' END,
			creator_agreed_at = CASE WHEN $2 AND $3 = 'creator' THEN $4 ELSE creator_agreed_at END,
			hotel_agreed_at = CASE WHEN $2 AND $3 = 'hotel' THEN $4 ELSE hotel_agreed_at END,
			response_message = NULLIF($5, ''),
			updated_at = $4
		WHERE id = $1 AND status = 'pending'
		RETURNING `+collaborationColumns,
		id, accept, string(responder), at, message,
	)

	collab, err := scanCollaboration(row)
	if err != nil {
		return nil, r.transitionError(ctx, id, err, "Collaboration has already been responded to")
	}
	return collab, nil
}

func (r *postgresCollaborationRepository) UpdateTerms(ctx context.Context, collab *entity.Collaboration, deliverables []entity.Deliverable, actor entity.Party, at time.Time) (*entity.Collaboration, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	minNights, maxNights, paidAmount, discountPct := compensationColumns(collab.Compensation)

	row := tx.QueryRow(ctx, `
		UPDATE collaborations SET
			collaboration_type = $2,
			free_stay_min_nights = $3,
			free_stay_max_nights = $4,
			paid_amount = $5,
			discount_percentage = $6,
			travel_date_from = $7,
			travel_date_to = $8,
			creator_agreed_at = CASE WHEN $9 = 'creator' THEN $10 ELSE NULL END,
			hotel_agreed_at = CASE WHEN $9 = 'hotel' THEN $10 ELSE NULL END,
			updated_at = $10
		WHERE id = $1 AND status = 'negotiating'
		RETURNING `+collaborationColumns,
		collab.ID, string(collab.Compensation.Type()),
		minNights, maxNights, paidAmount, discountPct,
		collab.TravelDateFrom, collab.TravelDateTo,
		string(actor), at,
	)

	updated, err := scanCollaboration(row)
	if err != nil {
		return nil, r.transitionError(ctx, collab.ID, err, "Terms can only be updated while negotiating")
	}

	if deliverables != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM collaboration_deliverables WHERE collaboration_id = $1`, collab.ID); err != nil {
			return nil, errors.Internal("Failed to replace deliverables", err)
		}
		if err := insertDeliverables(ctx, tx, collab.ID, deliverables); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Internal("Failed to commit terms update", err)
	}

	return updated, nil
}

func (r *postgresCollaborationRepository) Approve(ctx context.Context, id string, party entity.Party, at time.Time) (*entity.Collaboration, error) {
	// The promotion to accepted happens inside the same statement, so two
	// concurrent approvals cannot both observe "other side missing".
	row := r.db.QueryRow(ctx, `
		UPDATE collaborations SET
			creator_agreed_at = CASE WHEN $2 = 'creator' THEN $3 ELSE creator_agreed_at END,
			hotel_agreed_at = CASE WHEN $2 = 'hotel' THEN $3 ELSE hotel_agreed_at END,
			status = CASE
				WHEN (CASE WHEN $2 = 'creator' THEN hotel_agreed_at ELSE creator_agreed_at END) IS NOT NULL
				THEN 'accepted' ELSE status END,
			updated_at = $3
		WHERE id = $1 AND status = 'negotiating'
		RETURNING `+collaborationColumns,
		id, string(party), at,
	)

	collab, err := scanCollaboration(row)
	if err != nil {
		return nil, r.transitionError(ctx, id, err, "Collaboration is not in a negotiating state")
	}
	return collab, nil
}

func (r *postgresCollaborationRepository) Cancel(ctx context.Context, id string, reason *string, at time.Time) (*entity.Collaboration, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE collaborations SET
			status = 'cancelled',
			cancelled_at = $2,
			cancellation_reason = $3,
			updated_at = $2
		WHERE id = $1 AND status IN ('pending', 'negotiating')
		RETURNING `+collaborationColumns,
		id, at, reason,
	)

	collab, err := scanCollaboration(row)
	if err != nil {
		return nil, r.transitionError(ctx, id, err, "Collaboration is already concluded")
	}
	return collab, nil
}

func (r *postgresCollaborationRepository) ListDeliverables(ctx context.Context, collaborationID string) ([]entity.Deliverable, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, collaboration_id, platform, content_type, quantity, status
		FROM collaboration_deliverables
		WHERE collaboration_id = $1
		ORDER BY position`,
		collaborationID,
	)
	if err != nil {
		return nil, errors.Internal("Failed to list deliverables", err)
	}
	defer rows.Close()

	var deliverables []entity.Deliverable
	for rows.Next() {
		var d entity.Deliverable
		if err := rows.Scan(&d.ID, &d.CollaborationID, &d.Platform, &d.ContentType, &d.Quantity, &d.Status); err != nil {
			return nil, errors.Internal("Failed to scan deliverable", err)
		}
		deliverables = append(deliverables, d)
	}
	if rows.Err() != nil {
		return nil, errors.Internal("Failed to iterate deliverables", rows.Err())
	}

	return deliverables, nil
}

func (r *postgresCollaborationRepository) ToggleDeliverable(ctx context.Context, collaborationID, deliverableID string) error {
	if uuid.Validate(deliverableID) != nil {
		return errors.NotFound("Deliverable", nil)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE collaboration_deliverables
		SET status = CASE WHEN status = 'pending' THEN 'completed' ELSE 'pending' END
		WHERE id = $1 AND collaboration_id = $2`,
		deliverableID, collaborationID,
	)
	if err != nil {
		return errors.Internal("Failed to toggle deliverable", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("Deliverable", nil)
	}

	return nil
}

// transitionError distinguishes "row gone" from "guard failed": a conditional
// update matching zero rows is a Conflict when the collaboration exists.
func (r *postgresCollaborationRepository) transitionError(ctx context.Context, id string, err error, conflictMessage string) error {
	if !errors.Is(err, "NOT_FOUND") {
		return err
	}

	var exists bool
	checkErr := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM collaborations WHERE id = $1)`, id).Scan(&exists)
	if checkErr != nil {
		return errors.Internal("Failed to check collaboration", checkErr)
	}
	if exists {
		return errors.Conflict(conflictMessage)
	}
	return errors.NotFound("Collaboration", nil)
}

func insertDeliverables(ctx context.Context, tx pgx.Tx, collaborationID string, deliverables []entity.Deliverable) error {
	for i, d := range deliverables {
		_, err := tx.Exec(ctx, `
			INSERT INTO collaboration_deliverables (id, collaboration_id, platform, content_type, quantity, status, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			d.ID, collaborationID, d.Platform, d.ContentType, d.Quantity, string(d.Status), i,
		)
		if err != nil {
			return errors.Internal("Failed to insert deliverable", err)
		}
	}
	return nil
}

func compensationColumns(c entity.Compensation) (minNights, maxNights *int, paidAmount *float64, discountPct *int) {
	if c.FreeStay != nil {
		minNights = &c.FreeStay.MinNights
		maxNights = &c.FreeStay.MaxNights
	}
	if c.Paid != nil {
		paidAmount = &c.Paid.Amount
	}
	if c.Discount != nil {
		discountPct = &c.Discount.Percentage
	}
	return minNights, maxNights, paidAmount, discountPct
}

func scanCollaboration(row pgx.Row) (*entity.Collaboration, error) {
	var c entity.Collaboration
	var ctype string
	var whyGreatFit, responseMessage *string
	var minNights, maxNights, discountPct *int
	var paidAmount *float64

	err := row.Scan(
		&c.ID, &c.ListingID, &c.CreatorID, &c.HotelID, &c.InitiatorType, &c.Status,
		&ctype, &whyGreatFit, &minNights, &maxNights,
		&paidAmount, &discountPct, &c.TravelDateFrom, &c.TravelDateTo,
		&responseMessage, &c.CreatorAgreedAt, &c.HotelAgreedAt, &c.CancelledAt,
		&c.CancellationReason, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if goerrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NotFound("Collaboration", err)
		}
		return nil, errors.Internal("Failed to scan collaboration", err)
	}

	if whyGreatFit != nil {
		c.WhyGreatFit = *whyGreatFit
	}
	if responseMessage != nil {
		c.ResponseMessage = *responseMessage
	}

	switch entity.CollaborationType(ctype) {
	case entity.TypeFreeStay:
		if minNights != nil && maxNights != nil {
			c.Compensation.FreeStay = &entity.FreeStayTerms{MinNights: *minNights, MaxNights: *maxNights}
		}
	case entity.TypePaid:
		if paidAmount != nil {
			c.Compensation.Paid = &entity.PaidTerms{Amount: *paidAmount}
		}
	case entity.TypeDiscount:
		if discountPct != nil {
			c.Compensation.Discount = &entity.DiscountTerms{Percentage: *discountPct}
		}
	}

	return &c, nil
}
