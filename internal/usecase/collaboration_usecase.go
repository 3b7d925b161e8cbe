package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/entity"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/repository"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/pkg/errors"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/pkg/logger"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/pkg/utils"
)

type CollaborationUseCase struct {
	collabRepo    repository.CollaborationRepository
	messageRepo   repository.MessageRepository
	directoryRepo repository.DirectoryRepository
}

func NewCollaborationUseCase(
	collabRepo repository.CollaborationRepository,
	messageRepo repository.MessageRepository,
	directoryRepo repository.DirectoryRepository,
) *CollaborationUseCase {
	return &CollaborationUseCase{
		collabRepo:    collabRepo,
		messageRepo:   messageRepo,
		directoryRepo: directoryRepo,
	}
}

type CreateCollaborationInput struct {
	InitiatorType entity.Party
	ListingID     string
	CreatorID     string // required when a hotel initiates
	WhyGreatFit   string
	Consent       bool
	Terms         TermsInput
}

func (uc *CollaborationUseCase) CreateCollaboration(ctx context.Context, actor entity.Actor, input CreateCollaborationInput) (*entity.CollaborationView, error) {
	if !input.InitiatorType.Valid() {
		return nil, errors.BadRequest("initiator_type must be creator or hotel", nil)
	}
	if input.InitiatorType != actor.Role {
		return nil, errors.BadRequest("initiator_type does not match your role", nil)
	}
	if input.Terms.CollaborationType == nil {
		return nil, errors.BadRequest("collaboration_type is required", nil)
	}

	listing, err := uc.directoryRepo.GetListing(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}

	var creatorID string
	switch actor.Role {
	case entity.PartyCreator:
		creatorID = actor.ProfileID
	case entity.PartyHotel:
		if listing.HotelID != actor.ProfileID {
			return nil, errors.Forbidden("You can only propose collaborations for your own listing", nil)
		}
		if input.CreatorID == "" {
			return nil, errors.BadRequest("creator_id is required when a hotel initiates a collaboration", nil)
		}
		creator, err := uc.directoryRepo.GetCreator(ctx, input.CreatorID)
		if err != nil {
			return nil, err
		}
		creatorID = creator.ID
	}

	collab := &entity.Collaboration{
		ID:            uuid.New().String(),
		ListingID:     listing.ID,
		CreatorID:     creatorID,
		HotelID:       listing.HotelID,
		InitiatorType: input.InitiatorType,
		Status:        entity.StatusPending,
		WhyGreatFit:   input.WhyGreatFit,
	}

	if err := applyTerms(collab, input.Terms); err != nil {
		return nil, err
	}

	deliverables, err := buildDeliverables(collab.ID, input.Terms.PlatformDeliverables)
	if err != nil {
		return nil, err
	}

	nowTime := time.Now().UTC()
	collab.CreatedAt = nowTime
	collab.UpdatedAt = nowTime

	if err := uc.collabRepo.Create(ctx, collab, deliverables); err != nil {
		return nil, err
	}

	return collab.View(deliverables), nil
}

func (uc *CollaborationUseCase) GetCollaboration(ctx context.Context, actor entity.Actor, id string) (*entity.CollaborationView, error) {
	collab, err := uc.collabRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, ok := collab.PartyOf(actor); !ok {
		return nil, errors.Forbidden("You are not a participant of this collaboration", nil)
	}

	return uc.view(ctx, collab)
}

func (uc *CollaborationUseCase) ListCollaborations(ctx context.Context, actor entity.Actor, status string, page, limit int) ([]*entity.CollaborationView, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)

	collabs, total, err := uc.collabRepo.ListByParticipant(ctx, actor.Role, actor.ProfileID, entity.Status(status), pagination.PageSize, pagination.Offset)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*entity.CollaborationView, 0, len(collabs))
	for _, collab := range collabs {
		view, err := uc.view(ctx, collab)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}

	return views, total, nil
}

type RespondInput struct {
	Decision entity.Status // accepted or declined
	Message  string
}

func (uc *CollaborationUseCase) RespondToCollaboration(ctx context.Context, actor entity.Actor, id string, input RespondInput) (*entity.CollaborationView, error) {
	if input.Decision != entity.StatusAccepted && input.Decision != entity.StatusDeclined {
		return nil, errors.BadRequest("status must be accepted or declined", nil)
	}

	collab, err := uc.collabRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	party, ok := collab.PartyOf(actor)
	if !ok {
		return nil, errors.Forbidden("You are not a participant of this collaboration", nil)
	}
	if party == collab.InitiatorType {
		return nil, errors.Forbidden("The initiator cannot respond to their own proposal", nil)
	}
	if collab.Status != entity.StatusPending {
		return nil, errors.Conflict("Collaboration has already been responded to")
	}

	accept := input.Decision == entity.StatusAccepted
	updated, err := uc.collabRepo.Respond(ctx, id, accept, party, input.Message, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	outcome := "declined"
	if accept {
		outcome = "accepted"
	}
	uc.recordSystemMessage(ctx, id, fmt.Sprintf("Collaboration proposal %s by the %s", outcome, party))

	return uc.view(ctx, updated)
}

func (uc *CollaborationUseCase) UpdateCollaborationTerms(ctx context.Context, actor entity.Actor, id string, input TermsInput) (*entity.CollaborationView, error) {
	collab, err := uc.collabRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	party, ok := collab.PartyOf(actor)
	if !ok {
		return nil, errors.Forbidden("You are not a participant of this collaboration", nil)
	}
	if collab.Status != entity.StatusNegotiating {
		return nil, errors.Conflict("Terms can only be updated while negotiating")
	}

	if err := applyTerms(collab, input); err != nil {
		return nil, err
	}

	var deliverables []entity.Deliverable
	if input.PlatformDeliverables != nil {
		deliverables, err = buildDeliverables(collab.ID, input.PlatformDeliverables)
		if err != nil {
			return nil, err
		}
	}

	updated, err := uc.collabRepo.UpdateTerms(ctx, collab, deliverables, party, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uc.recordSystemMessage(ctx, id, fmt.Sprintf("Collaboration terms updated by the %s", party))

	return uc.view(ctx, updated)
}

func (uc *CollaborationUseCase) ApproveCollaboration(ctx context.Context, actor entity.Actor, id string) (*entity.CollaborationView, error) {
	collab, err := uc.collabRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	party, ok := collab.PartyOf(actor)
	if !ok {
		return nil, errors.Forbidden("You are not a participant of this collaboration", nil)
	}
	if collab.Status != entity.StatusNegotiating {
		return nil, errors.Conflict("Collaboration is not in a negotiating state")
	}

	updated, err := uc.collabRepo.Approve(ctx, id, party, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if updated.Status == entity.StatusAccepted {
		uc.recordSystemMessage(ctx, id, "Both parties agreed. Collaboration accepted")
	}

	return uc.view(ctx, updated)
}

func (uc *CollaborationUseCase) CancelCollaboration(ctx context.Context, actor entity.Actor, id string, reason *string) (*entity.CollaborationView, error) {
	collab, err := uc.collabRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	party, ok := collab.PartyOf(actor)
	if !ok {
		return nil, errors.Forbidden("You are not a participant of this collaboration", nil)
	}
	if collab.Status.Terminal() {
		return nil, errors.Conflict("Collaboration is already concluded")
	}

	updated, err := uc.collabRepo.Cancel(ctx, id, reason, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uc.recordSystemMessage(ctx, id, fmt.Sprintf("Collaboration cancelled by the %s", party))

	return uc.view(ctx, updated)
}

func (uc *CollaborationUseCase) ToggleDeliverable(ctx context.Context, actor entity.Actor, collaborationID, deliverableID string) (*entity.CollaborationView, error) {
	collab, err := uc.collabRepo.GetByID(ctx, collaborationID)
	if err != nil {
		return nil, err
	}

	if _, ok := collab.PartyOf(actor); !ok {
		return nil, errors.Forbidden("You are not a participant of this collaboration", nil)
	}

	if err := uc.collabRepo.ToggleDeliverable(ctx, collaborationID, deliverableID); err != nil {
		return nil, err
	}

	return uc.view(ctx, collab)
}

func (uc *CollaborationUseCase) view(ctx context.Context, collab *entity.Collaboration) (*entity.CollaborationView, error) {
	deliverables, err := uc.collabRepo.ListDeliverables(ctx, collab.ID)
	if err != nil {
		return nil, err
	}
	return collab.View(deliverables), nil
}

// The chat timeline mirrors negotiation events; a failure to record one must
// not undo a transition that already committed.
func (uc *CollaborationUseCase) recordSystemMessage(ctx context.Context, collaborationID, content string) {
	message := &entity.Message{
		ID:              uuid.New().String(),
		CollaborationID: collaborationID,
		Content:         content,
		MessageType:     entity.MessageSystem,
		CreatedAt:       time.Now().UTC(),
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		logger.LogCollaborationWarning(collaborationID, "system_message", err)
	}
}
