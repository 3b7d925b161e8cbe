package entity

// Listing is the slice of a hotel listing the negotiation core needs: enough
// to resolve the counterparty and show partner identity. Listing management
// itself lives outside this service.
type Listing struct {
	ID       string `json:"id"`
	HotelID  string `json:"hotel_id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// CreatorProfile is the creator identity slice used when a hotel initiates a
// collaboration and in the conversation projection.
type CreatorProfile struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
