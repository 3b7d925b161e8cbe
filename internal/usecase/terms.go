package usecase

import (
	"github.com/google/uuid"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/entity"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/pkg/errors"
)

// TermsInput is a sparse set of negotiable fields. Nil means "leave
// untouched"; the same input type feeds both the create and the update path
// so the validation rules have one home.
type TermsInput struct {
	CollaborationType  *entity.CollaborationType
	FreeStayMinNights  *int
	FreeStayMaxNights  *int
	StayNights         *int // shorthand: sets min and max nights together
	PaidAmount         *float64
	DiscountPercentage *int

	TravelDateFrom *string
	TravelDateTo   *string

	PlatformDeliverables []PlatformDeliverablesInput // nil keeps the current set
}

type PlatformDeliverablesInput struct {
	Platform     string
	Deliverables []DeliverableInput
}

type DeliverableInput struct {
	ContentType string
	Quantity    int
}

// applyTerms mutates the collaboration's negotiable fields from the input.
// Identity fields (participants, listing) are never touched here.
func applyTerms(c *entity.Collaboration, in TermsInput) error {
	comp, err := resolveCompensation(c.Compensation, in)
	if err != nil {
		return err
	}
	c.Compensation = comp

	if in.TravelDateFrom != nil {
		from, err := entity.ParseDate(*in.TravelDateFrom)
		if err != nil {
			return errors.BadRequest("travel_date_from must be a date in YYYY-MM-DD format", err)
		}
		c.TravelDateFrom = &from
	}
	if in.TravelDateTo != nil {
		to, err := entity.ParseDate(*in.TravelDateTo)
		if err != nil {
			return errors.BadRequest("travel_date_to must be a date in YYYY-MM-DD format", err)
		}
		c.TravelDateTo = &to
	}
	if c.TravelDateFrom != nil && c.TravelDateTo != nil && c.TravelDateTo.Before(*c.TravelDateFrom) {
		return errors.BadRequest("travel_date_to must not be before travel_date_from", nil)
	}

	return nil
}

// resolveCompensation combines the current compensation union with the sparse
// input and returns the new union, enforcing that the populated variant
// matches the (possibly updated) collaboration type.
func resolveCompensation(current entity.Compensation, in TermsInput) (entity.Compensation, error) {
	ctype := current.Type()
	if in.CollaborationType != nil {
		ctype = *in.CollaborationType
	}

	switch ctype {
	case entity.TypeFreeStay:
		terms := entity.FreeStayTerms{}
		if current.FreeStay != nil {
			terms = *current.FreeStay
		}
		if in.StayNights != nil {
			terms.MinNights = *in.StayNights
			terms.MaxNights = *in.StayNights
		}
		if in.FreeStayMinNights != nil {
			terms.MinNights = *in.FreeStayMinNights
		}
		if in.FreeStayMaxNights != nil {
			terms.MaxNights = *in.FreeStayMaxNights
		}
		if terms.MinNights <= 0 || terms.MaxNights <= 0 {
			return entity.Compensation{}, errors.BadRequest("Free Stay collaborations require free_stay_min_nights and free_stay_max_nights", nil)
		}
		if terms.MaxNights < terms.MinNights {
			return entity.Compensation{}, errors.BadRequest("free_stay_max_nights must not be less than free_stay_min_nights", nil)
		}
		if in.PaidAmount != nil || in.DiscountPercentage != nil {
			return entity.Compensation{}, errors.BadRequest("compensation fields do not match collaboration type Free Stay", nil)
		}
		return entity.Compensation{FreeStay: &terms}, nil

	case entity.TypePaid:
		terms := entity.PaidTerms{}
		if current.Paid != nil {
			terms = *current.Paid
		}
		if in.PaidAmount != nil {
			terms.Amount = *in.PaidAmount
		}
		if terms.Amount <= 0 {
			return entity.Compensation{}, errors.BadRequest("Paid collaborations require a positive paid_amount", nil)
		}
		if in.StayNights != nil || in.FreeStayMinNights != nil || in.FreeStayMaxNights != nil || in.DiscountPercentage != nil {
			return entity.Compensation{}, errors.BadRequest("compensation fields do not match collaboration type Paid", nil)
		}
		return entity.Compensation{Paid: &terms}, nil

	case entity.TypeDiscount:
		terms := entity.DiscountTerms{}
		if current.Discount != nil {
			terms = *current.Discount
		}
		if in.DiscountPercentage != nil {
			terms.Percentage = *in.DiscountPercentage
		}
		if terms.Percentage <= 0 || terms.Percentage > 100 {
			return entity.Compensation{}, errors.BadRequest("Discount collaborations require a discount_percentage between 1 and 100", nil)
		}
		if in.StayNights != nil || in.FreeStayMinNights != nil || in.FreeStayMaxNights != nil || in.PaidAmount != nil {
			return entity.Compensation{}, errors.BadRequest("compensation fields do not match collaboration type Discount", nil)
		}
		return entity.Compensation{Discount: &terms}, nil
	}

	return entity.Compensation{}, errors.BadRequest("collaboration_type must be one of: Free Stay, Paid, Discount", nil)
}

// buildDeliverables flattens and validates the platform-grouped payload into
// a fresh deliverable set for the collaboration.
func buildDeliverables(collaborationID string, groups []PlatformDeliverablesInput) ([]entity.Deliverable, error) {
	var out []entity.Deliverable
	for _, group := range groups {
		if group.Platform == "" {
			return nil, errors.BadRequest("deliverable platform is required", nil)
		}
		for _, d := range group.Deliverables {
			if d.ContentType == "" {
				return nil, errors.BadRequest("deliverable type is required", nil)
			}
			if d.Quantity < 1 {
				return nil, errors.BadRequest("deliverable quantity must be a positive integer", nil)
			}
			out = append(out, entity.Deliverable{
				ID:              uuid.New().String(),
				CollaborationID: collaborationID,
				Platform:        group.Platform,
				ContentType:     d.ContentType,
				Quantity:        d.Quantity,
				Status:          entity.DeliverablePending,
			})
		}
	}
	if len(out) == 0 {
		return nil, errors.BadRequest("at least one deliverable is required", nil)
	}
	return out, nil
}
