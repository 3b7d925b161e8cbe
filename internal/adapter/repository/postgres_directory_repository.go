package repository

import (
	"context"
	goerrors "errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/entity"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/repository"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/pkg/errors"
)

type postgresDirectoryRepository struct {
	db *pgxpool.Pool
}

func NewPostgresDirectoryRepository(db *pgxpool.Pool) repository.DirectoryRepository {
	return &postgresDirectoryRepository{db: db}
}

func (r *postgresDirectoryRepository) GetListing(ctx context.Context, listingID string) (*entity.Listing, error) {
	if uuid.Validate(listingID) != nil {
		return nil, errors.NotFound("Listing", nil)
	}

	var l entity.Listing
	var imageURL *string
	err := r.db.QueryRow(ctx, `
		SELECT id, hotel_id, name, image_url FROM hotel_listings WHERE id = $1`,
		listingID,
	).Scan(&l.ID, &l.HotelID, &l.Name, &imageURL)
	if err != nil {
		if goerrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}

	if imageURL != nil {
		l.ImageURL = *imageURL
	}
	return &l, nil
}

func (r *postgresDirectoryRepository) GetCreator(ctx context.Context, creatorID string) (*entity.CreatorProfile, error) {
	if uuid.Validate(creatorID) != nil {
		return nil, errors.NotFound("Creator", nil)
	}

	var c entity.CreatorProfile
	var avatarURL *string
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, avatar_url FROM creators WHERE id = $1`,
		creatorID,
	).Scan(&c.ID, &c.UserID, &c.Name, &avatarURL)
	if err != nil {
		if goerrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NotFound("Creator", err)
		}
		return nil, errors.Internal("Failed to get creator", err)
	}

	if avatarURL != nil {
		c.AvatarURL = *avatarURL
	}
	return &c, nil
}
