package router

import (
	"github.com/labstack/echo/v4"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/adapter/api/handler"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/adapter/api/middleware"
)

// SetupChatRouter initializes conversation and messaging routes. They live
// under /collaborations because a chat exists only inside a collaboration.
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	collaborations := e.Group("/collaborations")
	collaborations.Use(authMiddleware.Authenticate)

	collaborations.GET("/conversations", chatHandler.ListConversations)
	collaborations.GET("/:id/messages", chatHandler.ListMessages)
	collaborations.POST("/:id/messages", chatHandler.SendMessage)
	collaborations.POST("/:id/read", chatHandler.MarkMessagesRead)
}
