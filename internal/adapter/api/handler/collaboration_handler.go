package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/entity"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/usecase"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/pkg/errors"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/pkg/response"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/pkg/utils"
)

type CollaborationHandler struct {
	collaborationUseCase *usecase.CollaborationUseCase
}

func NewCollaborationHandler(collaborationUseCase *usecase.CollaborationUseCase) *CollaborationHandler {
	return &CollaborationHandler{
		collaborationUseCase: collaborationUseCase,
	}
}

func actorFromContext(c echo.Context) entity.Actor {
	return c.Get("actor").(entity.Actor)
}

type deliverableRequest struct {
	Type     string `json:"type" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Status   string `json:"status,omitempty"`
}

type platformDeliverablesRequest struct {
	Platform     string               `json:"platform" validate:"required"`
	Deliverables []deliverableRequest `json:"deliverables" validate:"required,min=1,dive"`
}

type createCollaborationRequest struct {
	InitiatorType     string `json:"initiator_type" validate:"required,oneof=creator hotel"`
	ListingID         string `json:"listing_id" validate:"required"`
	CreatorID         string `json:"creator_id,omitempty"`
	CollaborationType string `json:"collaboration_type" validate:"required,oneof='Free Stay' 'Paid' 'Discount'"`
	WhyGreatFit       string `json:"why_great_fit,omitempty"`

	FreeStayMinNights  *int     `json:"free_stay_min_nights,omitempty"`
	FreeStayMaxNights  *int     `json:"free_stay_max_nights,omitempty"`
	PaidAmount         *float64 `json:"paid_amount,omitempty"`
	DiscountPercentage *int     `json:"discount_percentage,omitempty"`

	TravelDateFrom *string `json:"travel_date_from,omitempty"`
	TravelDateTo   *string `json:"travel_date_to,omitempty"`
	// Hotel-initiated proposals phrase the range as a preference.
	PreferredDateFrom *string `json:"preferred_date_from,omitempty"`
	PreferredDateTo   *string `json:"preferred_date_to,omitempty"`

	PlatformDeliverables []platformDeliverablesRequest `json:"platform_deliverables" validate:"required,min=1,dive"`
	Consent              bool                          `json:"consent,omitempty"`
}

func (h *CollaborationHandler) CreateCollaboration(c echo.Context) error {
	var req createCollaborationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ctype := entity.CollaborationType(req.CollaborationType)
	terms := usecase.TermsInput{
		CollaborationType:    &ctype,
		FreeStayMinNights:    req.FreeStayMinNights,
		FreeStayMaxNights:    req.FreeStayMaxNights,
		PaidAmount:           req.PaidAmount,
		DiscountPercentage:   req.DiscountPercentage,
		TravelDateFrom:       firstDate(req.TravelDateFrom, req.PreferredDateFrom),
		TravelDateTo:         firstDate(req.TravelDateTo, req.PreferredDateTo),
		PlatformDeliverables: toDeliverablesInput(req.PlatformDeliverables),
	}

	view, err := h.collaborationUseCase.CreateCollaboration(c.Request().Context(), actorFromContext(c), usecase.CreateCollaborationInput{
		InitiatorType: entity.Party(req.InitiatorType),
		ListingID:     req.ListingID,
		CreatorID:     req.CreatorID,
		WhyGreatFit:   req.WhyGreatFit,
		Consent:       req.Consent,
		Terms:         terms,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, view)
}

func (h *CollaborationHandler) GetCollaboration(c echo.Context) error {
	view, err := h.collaborationUseCase.GetCollaboration(c.Request().Context(), actorFromContext(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *CollaborationHandler) ListCollaborations(c echo.Context) error {
	status := c.QueryParam("status")
	pagination := utils.GetPaginationParams(c)

	views, total, err := h.collaborationUseCase.ListCollaborations(
		c.Request().Context(),
		actorFromContext(c),
		status,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, views, total, pagination.Page, pagination.PageSize)
}

type respondRequest struct {
	Status          string `json:"status" validate:"required,oneof=accepted declined"`
	ResponseMessage string `json:"response_message,omitempty"`
}

func (h *CollaborationHandler) RespondToCollaboration(c echo.Context) error {
	var req respondRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	view, err := h.collaborationUseCase.RespondToCollaboration(c.Request().Context(), actorFromContext(c), c.Param("id"), usecase.RespondInput{
		Decision: entity.Status(req.Status),
		Message:  req.ResponseMessage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

type updateTermsRequest struct {
	CollaborationType *string `json:"collaboration_type,omitempty" validate:"omitempty,oneof='Free Stay' 'Paid' 'Discount'"`

	StayNights         *int     `json:"stay_nights,omitempty" validate:"omitempty,min=1"`
	FreeStayMinNights  *int     `json:"free_stay_min_nights,omitempty" validate:"omitempty,min=1"`
	FreeStayMaxNights  *int     `json:"free_stay_max_nights,omitempty" validate:"omitempty,min=1"`
	PaidAmount         *float64 `json:"paid_amount,omitempty" validate:"omitempty,gt=0"`
	DiscountPercentage *int     `json:"discount_percentage,omitempty" validate:"omitempty,min=1,max=100"`

	TravelDateFrom *string `json:"travel_date_from,omitempty"`
	TravelDateTo   *string `json:"travel_date_to,omitempty"`

	PlatformDeliverables []platformDeliverablesRequest `json:"platform_deliverables,omitempty" validate:"omitempty,min=1,dive"`
}

func (h *CollaborationHandler) UpdateCollaborationTerms(c echo.Context) error {
	var req updateTermsRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	terms := usecase.TermsInput{
		StayNights:           req.StayNights,
		FreeStayMinNights:    req.FreeStayMinNights,
		FreeStayMaxNights:    req.FreeStayMaxNights,
		PaidAmount:           req.PaidAmount,
		DiscountPercentage:   req.DiscountPercentage,
		TravelDateFrom:       req.TravelDateFrom,
		TravelDateTo:         req.TravelDateTo,
		PlatformDeliverables: toDeliverablesInput(req.PlatformDeliverables),
	}
	if req.CollaborationType != nil {
		ctype := entity.CollaborationType(*req.CollaborationType)
		terms.CollaborationType = &ctype
	}

	view, err := h.collaborationUseCase.UpdateCollaborationTerms(c.Request().Context(), actorFromContext(c), c.Param("id"), terms)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *CollaborationHandler) ApproveCollaboration(c echo.Context) error {
	view, err := h.collaborationUseCase.ApproveCollaboration(c.Request().Context(), actorFromContext(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

type cancelRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func (h *CollaborationHandler) CancelCollaboration(c echo.Context) error {
	var req cancelRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	view, err := h.collaborationUseCase.CancelCollaboration(c.Request().Context(), actorFromContext(c), c.Param("id"), req.Reason)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func (h *CollaborationHandler) ToggleDeliverable(c echo.Context) error {
	view, err := h.collaborationUseCase.ToggleDeliverable(
		c.Request().Context(),
		actorFromContext(c),
		c.Param("id"),
		c.Param("deliverableId"),
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func firstDate(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func toDeliverablesInput(groups []platformDeliverablesRequest) []usecase.PlatformDeliverablesInput {
	if groups == nil {
		return nil
	}
	out := make([]usecase.PlatformDeliverablesInput, 0, len(groups))
	for _, g := range groups {
		group := usecase.PlatformDeliverablesInput{Platform: g.Platform}
		for _, d := range g.Deliverables {
			group.Deliverables = append(group.Deliverables, usecase.DeliverableInput{
				ContentType: d.Type,
				Quantity:    d.Quantity,
			})
		}
		out = append(out, group)
	}
	return out
}
