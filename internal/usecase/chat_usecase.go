package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/entity"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/repository"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/pkg/errors"
)

// ChatUseCase covers the messaging side of a collaboration: the conversation
// projection, the message timeline, and read markers. Transport (push,
// websockets) is intentionally absent; the projection is pull-only.
type ChatUseCase struct {
	messageRepo repository.MessageRepository
	collabRepo  repository.CollaborationRepository
}

func NewChatUseCase(
	messageRepo repository.MessageRepository,
	collabRepo repository.CollaborationRepository,
) *ChatUseCase {
	return &ChatUseCase{
		messageRepo: messageRepo,
		collabRepo:  collabRepo,
	}
}

func (uc *ChatUseCase) ListConversations(ctx context.Context, actor entity.Actor) ([]*entity.ConversationSummary, error) {
	return uc.messageRepo.ListConversations(ctx, actor)
}

type SendMessageInput struct {
	Content     string
	MessageType entity.MessageType
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, actor entity.Actor, collaborationID string, input SendMessageInput) (*entity.Message, error) {
	if input.Content == "" {
		return nil, errors.BadRequest("content is required", nil)
	}
	if input.MessageType == "" {
		input.MessageType = entity.MessageText
	}
	if input.MessageType != entity.MessageText {
		return nil, errors.BadRequest("message_type must be text", nil)
	}

	collab, err := uc.collabRepo.GetByID(ctx, collaborationID)
	if err != nil {
		return nil, err
	}
	if _, ok := collab.PartyOf(actor); !ok {
		return nil, errors.Forbidden("You are not a participant of this collaboration", nil)
	}
	if collab.Status == entity.StatusPending {
		return nil, errors.Conflict("Chat opens once the proposal has been responded to")
	}

	message := &entity.Message{
		ID:              uuid.New().String(),
		CollaborationID: collaborationID,
		SenderID:        actor.UserID,
		Content:         input.Content,
		MessageType:     input.MessageType,
		CreatedAt:       time.Now().UTC(),
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, actor entity.Actor, collaborationID string, limit int, before *time.Time) ([]*entity.Message, error) {
	collab, err := uc.collabRepo.GetByID(ctx, collaborationID)
	if err != nil {
		return nil, err
	}
	if _, ok := collab.PartyOf(actor); !ok {
		return nil, errors.Forbidden("You are not a participant of this collaboration", nil)
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	return uc.messageRepo.ListByCollaboration(ctx, collaborationID, limit, before)
}

func (uc *ChatUseCase) MarkMessagesRead(ctx context.Context, actor entity.Actor, collaborationID string) error {
	collab, err := uc.collabRepo.GetByID(ctx, collaborationID)
	if err != nil {
		return err
	}
	if _, ok := collab.PartyOf(actor); !ok {
		return errors.Forbidden("You are not a participant of this collaboration", nil)
	}

	return uc.messageRepo.MarkRead(ctx, collaborationID, actor.UserID, time.Now().UTC())
}
