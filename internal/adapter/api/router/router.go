package router

import (
	"github.com/labstack/echo/v4"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/adapter/api/handler"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	collaborationHandler *handler.CollaborationHandler,
	chatHandler *handler.ChatHandler,
	healthHandler *handler.HealthHandler,
) {
	e.GET("/health", healthHandler.Health)

	SetupCollaborationRouter(e, collaborationHandler, authMiddleware)
	SetupChatRouter(e, chatHandler, authMiddleware)
}
