package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/entity"
	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/pkg/errors"
)

// memoryStore implements the storage ports in memory with the same guard
// semantics as the Postgres adapters, so the usecases are exercised without a
// database.
type memoryStore struct {
	mu sync.Mutex

	collabs      map[string]*entity.Collaboration
	deliverables map[string][]entity.Deliverable
	messages     []entity.Message
	readMarkers  map[string]time.Time // collaborationID + "/" + userID

	listings map[string]entity.Listing
	creators map[string]entity.CreatorProfile
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		collabs:      map[string]*entity.Collaboration{},
		deliverables: map[string][]entity.Deliverable{},
		readMarkers:  map[string]time.Time{},
		listings:     map[string]entity.Listing{},
		creators:     map[string]entity.CreatorProfile{},
	}
}

// The two Create methods clash, so each port gets a thin wrapper over the
// shared store.
type memoryCollabRepo struct{ *memoryStore }

func (r memoryCollabRepo) Create(ctx context.Context, collab *entity.Collaboration, deliverables []entity.Deliverable) error {
	return r.createCollaboration(ctx, collab, deliverables)
}

type memoryMessageRepo struct{ *memoryStore }

func (r memoryMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	return r.createMessage(ctx, message)
}

func (s *memoryStore) createCollaboration(ctx context.Context, collab *entity.Collaboration, deliverables []entity.Deliverable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *collab
	s.collabs[collab.ID] = &copied
	s.deliverables[collab.ID] = append([]entity.Deliverable(nil), deliverables...)
	return nil
}

func (s *memoryStore) GetByID(ctx context.Context, id string) (*entity.Collaboration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(id)
}

func (s *memoryStore) getLocked(id string) (*entity.Collaboration, error) {
	collab, ok := s.collabs[id]
	if !ok {
		return nil, errors.NotFound("Collaboration", nil)
	}
	copied := *collab
	return &copied, nil
}

func (s *memoryStore) ListByParticipant(ctx context.Context, party entity.Party, profileID string, status entity.Status, limit, offset int) ([]*entity.Collaboration, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []*entity.Collaboration
	for _, c := range s.collabs {
		if c.PartyID(party) != profileID {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		copied := *c
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (s *memoryStore) Respond(ctx context.Context, id string, accept bool, responder entity.Party, message string, at time.Time) (*entity.Collaboration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collab, ok := s.collabs[id]
	if !ok {
		return nil, errors.NotFound("Collaboration", nil)
	}
	if collab.Status != entity.StatusPending {
		return nil, errors.Conflict("Collaboration has already been responded to")
	}

	if accept {
		collab.Status = entity.StatusNegotiating
		if responder == entity.PartyCreator {
			collab.CreatorAgreedAt = &at
		} else {
			collab.HotelAgreedAt = &at
		}
	} else {
		collab.Status = entity.StatusDeclined
	}
	collab.ResponseMessage = message
	collab.UpdatedAt = at

	return s.getLocked(id)
}

func (s *memoryStore) UpdateTerms(ctx context.Context, updated *entity.Collaboration, deliverables []entity.Deliverable, actor entity.Party, at time.Time) (*entity.Collaboration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collab, ok := s.collabs[updated.ID]
	if !ok {
		return nil, errors.NotFound("Collaboration", nil)
	}
	if collab.Status != entity.StatusNegotiating {
		return nil, errors.Conflict("Terms can only be updated while negotiating")
	}

	collab.Compensation = updated.Compensation
	collab.TravelDateFrom = updated.TravelDateFrom
	collab.TravelDateTo = updated.TravelDateTo
	if actor == entity.PartyCreator {
		collab.CreatorAgreedAt = &at
		collab.HotelAgreedAt = nil
	} else {
		collab.HotelAgreedAt = &at
		collab.CreatorAgreedAt = nil
	}
	collab.UpdatedAt = at

	if deliverables != nil {
		s.deliverables[collab.ID] = append([]entity.Deliverable(nil), deliverables...)
	}

	return s.getLocked(collab.ID)
}

func (s *memoryStore) Approve(ctx context.Context, id string, party entity.Party, at time.Time) (*entity.Collaboration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collab, ok := s.collabs[id]
	if !ok {
		return nil, errors.NotFound("Collaboration", nil)
	}
	if collab.Status != entity.StatusNegotiating {
		return nil, errors.Conflict("Collaboration is not in a negotiating state")
	}

	if party == entity.PartyCreator {
		collab.CreatorAgreedAt = &at
	} else {
		collab.HotelAgreedAt = &at
	}
	if collab.CreatorAgreedAt != nil && collab.HotelAgreedAt != nil {
		collab.Status = entity.StatusAccepted
	}
	collab.UpdatedAt = at

	return s.getLocked(id)
}

func (s *memoryStore) Cancel(ctx context.Context, id string, reason *string, at time.Time) (*entity.Collaboration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collab, ok := s.collabs[id]
	if !ok {
		return nil, errors.NotFound("Collaboration", nil)
	}
	if collab.Status != entity.StatusPending && collab.Status != entity.StatusNegotiating {
		return nil, errors.Conflict("Collaboration is already concluded")
	}

	collab.Status = entity.StatusCancelled
	collab.CancelledAt = &at
	collab.CancellationReason = reason
	collab.UpdatedAt = at

	return s.getLocked(id)
}

func (s *memoryStore) ListDeliverables(ctx context.Context, collaborationID string) ([]entity.Deliverable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Deliverable(nil), s.deliverables[collaborationID]...), nil
}

func (s *memoryStore) ToggleDeliverable(ctx context.Context, collaborationID, deliverableID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deliverables := s.deliverables[collaborationID]
	for i := range deliverables {
		if deliverables[i].ID == deliverableID {
			deliverables[i].Status = deliverables[i].Status.Toggle()
			return nil
		}
	}
	return errors.NotFound("Deliverable", nil)
}

func (s *memoryStore) createMessage(ctx context.Context, message *entity.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, *message)
	return nil
}

func (s *memoryStore) ListByCollaboration(ctx context.Context, collaborationID string, limit int, before *time.Time) ([]*entity.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.Message
	for i := range s.messages {
		m := s.messages[i]
		if m.CollaborationID != collaborationID {
			continue
		}
		if before != nil && !m.CreatedAt.Before(*before) {
			continue
		}
		copied := m
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memoryStore) MarkRead(ctx context.Context, collaborationID, userID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := collaborationID + "/" + userID
	if existing, ok := s.readMarkers[key]; !ok || at.After(existing) {
		s.readMarkers[key] = at
	}
	return nil
}

func (s *memoryStore) ListConversations(ctx context.Context, viewer entity.Actor) ([]*entity.ConversationSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.ConversationSummary
	for _, c := range s.collabs {
		if c.PartyID(viewer.Role) != viewer.ProfileID || c.Status == entity.StatusPending {
			continue
		}

		conv := &entity.ConversationSummary{
			CollaborationID:     c.ID,
			CollaborationStatus: c.Status,
			MyRole:              viewer.Role,
		}
		if viewer.Role == entity.PartyCreator {
			listing := s.listings[c.ListingID]
			conv.PartnerName = listing.Name
			conv.PartnerAvatar = listing.ImageURL
		} else {
			creator := s.creators[c.CreatorID]
			conv.PartnerName = creator.Name
			conv.PartnerAvatar = creator.AvatarURL
		}

		marker, hasMarker := s.readMarkers[c.ID+"/"+viewer.UserID]
		for i := range s.messages {
			m := s.messages[i]
			if m.CollaborationID != c.ID {
				continue
			}
			if conv.LastMessageAt == nil || m.CreatedAt.After(*conv.LastMessageAt) {
				at := m.CreatedAt
				conv.LastMessage = m.Content
				conv.LastMessageAt = &at
			}
			if m.SenderID != "" && m.SenderID != viewer.UserID && (!hasMarker || m.CreatedAt.After(marker)) {
				conv.UnreadCount++
			}
		}

		out = append(out, conv)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].LastMessageAt, out[j].LastMessageAt
		switch {
		case a != nil && b != nil:
			return a.After(*b)
		case a != nil:
			return true
		default:
			return false
		}
	})

	return out, nil
}

func (s *memoryStore) GetListing(ctx context.Context, listingID string) (*entity.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, ok := s.listings[listingID]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	return &listing, nil
}

func (s *memoryStore) GetCreator(ctx context.Context, creatorID string) (*entity.CreatorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creator, ok := s.creators[creatorID]
	if !ok {
		return nil, errors.NotFound("Creator", nil)
	}
	return &creator, nil
}
