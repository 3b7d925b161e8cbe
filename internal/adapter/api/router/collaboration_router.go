package router

import (
	"github.com/labstack/echo/v4"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/adapter/api/handler"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/adapter/api/middleware"
)

// SetupCollaborationRouter initializes collaboration negotiation routes
func SetupCollaborationRouter(e *echo.Echo, collaborationHandler *handler.CollaborationHandler, authMiddleware *middleware.AuthMiddleware) {
	collaborations := e.Group("/collaborations")
	collaborations.Use(authMiddleware.Authenticate)

	collaborations.POST("", collaborationHandler.CreateCollaboration)
	collaborations.GET("", collaborationHandler.ListCollaborations)
	collaborations.GET("/:id", collaborationHandler.GetCollaboration)
	collaborations.POST("/:id/respond", collaborationHandler.RespondToCollaboration)
	collaborations.PUT("/:id/terms", collaborationHandler.UpdateCollaborationTerms)
	collaborations.POST("/:id/approve", collaborationHandler.ApproveCollaboration)
	collaborations.POST("/:id/cancel", collaborationHandler.CancelCollaboration)
	collaborations.POST("/:id/deliverables/:deliverableId/toggle", collaborationHandler.ToggleDeliverable)
}
