package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/entity"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/usecase"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/pkg/errors"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

func (h *ChatHandler) ListConversations(c echo.Context) error {
	conversations, err := h.chatUseCase.ListConversations(c.Request().Context(), actorFromContext(c))
	if err != nil {
		return response.Error(c, err)
	}

	if conversations == nil {
		conversations = []*entity.ConversationSummary{}
	}
	return response.Success(c, conversations)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	var before *time.Time
	if raw := c.QueryParam("before"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return response.Error(c, errors.BadRequest("before must be an RFC3339 timestamp", err))
		}
		before = &parsed
	}

	messages, err := h.chatUseCase.ListMessages(c.Request().Context(), actorFromContext(c), c.Param("id"), limit, before)
	if err != nil {
		return response.Error(c, err)
	}

	if messages == nil {
		messages = []*entity.Message{}
	}
	return response.Success(c, messages)
}

type sendMessageRequest struct {
	Content     string `json:"content" validate:"required"`
	MessageType string `json:"message_type,omitempty" validate:"omitempty,oneof=text"`
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), actorFromContext(c), c.Param("id"), usecase.SendMessageInput{
		Content:     req.Content,
		MessageType: entity.MessageType(req.MessageType),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, message)
}

func (h *ChatHandler) MarkMessagesRead(c echo.Context) error {
	if err := h.chatUseCase.MarkMessagesRead(c.Request().Context(), actorFromContext(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"read": true})
}
