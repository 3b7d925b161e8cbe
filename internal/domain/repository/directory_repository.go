package repository

import (
	"context"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/entity"
)

// DirectoryRepository resolves the identities the negotiation core needs from
// the surrounding marketplace: listings to their owning hotel, and creator
// profiles. Read-only from this service's point of view.
type DirectoryRepository interface {
	GetListing(ctx context.Context, listingID string) (*entity.Listing, error)
	GetCreator(ctx context.Context, creatorID string) (*entity.CreatorProfile, error)
}
