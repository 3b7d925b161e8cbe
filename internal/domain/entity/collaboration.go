package entity

import (
	"time"
)

// Party identifies one side of a collaboration.
type Party string

const (
	PartyCreator Party = "creator"
	PartyHotel   Party = "hotel"
)

// Other returns the counterpart side.
func (p Party) Other() Party {
	if p == PartyCreator {
		return PartyHotel
	}
	return PartyCreator
}

func (p Party) Valid() bool {
	return p == PartyCreator || p == PartyHotel
}

// Status is the lifecycle status of a collaboration.
type Status string

const (
	StatusPending     Status = "pending"
	StatusNegotiating Status = "negotiating"
	StatusAccepted    Status = "accepted"
	StatusDeclined    Status = "declined"
	StatusCancelled   Status = "cancelled"
)

// Terminal reports whether no further transition may leave the status.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusDeclined || s == StatusCancelled
}

type CollaborationType string

const (
	TypeFreeStay CollaborationType = "Free Stay"
	TypePaid     CollaborationType = "Paid"
	TypeDiscount CollaborationType = "Discount"
)

type FreeStayTerms struct {
	MinNights int `json:"min_nights"`
	MaxNights int `json:"max_nights"`
}

type PaidTerms struct {
	Amount float64 `json:"amount"`
}

type DiscountTerms struct {
	Percentage int `json:"percentage"`
}

// Compensation is a tagged union over the three collaboration types. Exactly
// one variant is set on a valid collaboration; the union itself makes the
// "at most one compensation shape" invariant structural.
type Compensation struct {
	FreeStay *FreeStayTerms
	Paid     *PaidTerms
	Discount *DiscountTerms
}

// Type derives the collaboration type from the populated variant.
func (c Compensation) Type() CollaborationType {
	switch {
	case c.FreeStay != nil:
		return TypeFreeStay
	case c.Paid != nil:
		return TypePaid
	case c.Discount != nil:
		return TypeDiscount
	}
	return ""
}

// Valid reports whether exactly one variant is populated.
func (c Compensation) Valid() bool {
	count := 0
	if c.FreeStay != nil {
		count++
	}
	if c.Paid != nil {
		count++
	}
	if c.Discount != nil {
		count++
	}
	return count == 1
}

type Collaboration struct {
	ID            string       `json:"id"`
	ListingID     string       `json:"listing_id"`
	CreatorID     string       `json:"creator_id"`
	HotelID       string       `json:"hotel_id"`
	InitiatorType Party        `json:"initiator_type"`
	Status        Status       `json:"status"`
	WhyGreatFit   string       `json:"why_great_fit,omitempty"`
	Compensation  Compensation `json:"-"`

	TravelDateFrom *time.Time `json:"-"`
	TravelDateTo   *time.Time `json:"-"`

	ResponseMessage    string     `json:"response_message,omitempty"`
	CreatorAgreedAt    *time.Time `json:"creator_agreed_at"`
	HotelAgreedAt      *time.Time `json:"hotel_agreed_at"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartyID returns the profile id owning the given side.
func (c *Collaboration) PartyID(p Party) string {
	if p == PartyCreator {
		return c.CreatorID
	}
	return c.HotelID
}

// PartyOf resolves which side an actor is on, or false for non-participants.
func (c *Collaboration) PartyOf(actor Actor) (Party, bool) {
	if actor.Role == PartyCreator && actor.ProfileID == c.CreatorID {
		return PartyCreator, true
	}
	if actor.Role == PartyHotel && actor.ProfileID == c.HotelID {
		return PartyHotel, true
	}
	return "", false
}

// AgreedAt returns the agreement timestamp of the given side.
func (c *Collaboration) AgreedAt(p Party) *time.Time {
	if p == PartyCreator {
		return c.CreatorAgreedAt
	}
	return c.HotelAgreedAt
}

// Actor is a participant identity resolved by the auth layer: the underlying
// user plus the profile (creator or hotel) it acts as.
type Actor struct {
	UserID    string
	Role      Party
	ProfileID string
}
