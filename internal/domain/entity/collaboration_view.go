package entity

import "time"

const dateLayout = "2006-01-02"

// CollaborationView is the wire shape of a collaboration: the compensation
// union flattened back into per-type fields and the deliverables grouped by
// platform.
type CollaborationView struct {
	ID                string            `json:"id"`
	ListingID         string            `json:"listing_id"`
	CreatorID         string            `json:"creator_id"`
	HotelID           string            `json:"hotel_id"`
	InitiatorType     Party             `json:"initiator_type"`
	Status            Status            `json:"status"`
	CollaborationType CollaborationType `json:"collaboration_type"`
	WhyGreatFit       string            `json:"why_great_fit,omitempty"`

	FreeStayMinNights  *int     `json:"free_stay_min_nights,omitempty"`
	FreeStayMaxNights  *int     `json:"free_stay_max_nights,omitempty"`
	PaidAmount         *float64 `json:"paid_amount,omitempty"`
	DiscountPercentage *int     `json:"discount_percentage,omitempty"`

	TravelDateFrom *string `json:"travel_date_from,omitempty"`
	TravelDateTo   *string `json:"travel_date_to,omitempty"`

	ResponseMessage    string     `json:"response_message,omitempty"`
	CreatorAgreedAt    *time.Time `json:"creator_agreed_at"`
	HotelAgreedAt      *time.Time `json:"hotel_agreed_at"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`

	PlatformDeliverables []PlatformDeliverables `json:"platform_deliverables"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// View flattens the collaboration plus its deliverables into the wire shape.
func (c *Collaboration) View(deliverables []Deliverable) *CollaborationView {
	v := &CollaborationView{
		ID:                   c.ID,
		ListingID:            c.ListingID,
		CreatorID:            c.CreatorID,
		HotelID:              c.HotelID,
		InitiatorType:        c.InitiatorType,
		Status:               c.Status,
		CollaborationType:    c.Compensation.Type(),
		WhyGreatFit:          c.WhyGreatFit,
		ResponseMessage:      c.ResponseMessage,
		CreatorAgreedAt:      c.CreatorAgreedAt,
		HotelAgreedAt:        c.HotelAgreedAt,
		CancelledAt:          c.CancelledAt,
		CancellationReason:   c.CancellationReason,
		PlatformDeliverables: GroupDeliverables(deliverables),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}

	if fs := c.Compensation.FreeStay; fs != nil {
		v.FreeStayMinNights = &fs.MinNights
		v.FreeStayMaxNights = &fs.MaxNights
	}
	if p := c.Compensation.Paid; p != nil {
		v.PaidAmount = &p.Amount
	}
	if d := c.Compensation.Discount; d != nil {
		v.DiscountPercentage = &d.Percentage
	}

	v.TravelDateFrom = formatDate(c.TravelDateFrom)
	v.TravelDateTo = formatDate(c.TravelDateTo)

	return v
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// ParseDate parses a YYYY-MM-DD wire date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
