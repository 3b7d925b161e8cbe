package entity

type DeliverableStatus string

const (
	DeliverablePending   DeliverableStatus = "pending"
	DeliverableCompleted DeliverableStatus = "completed"
)

// Toggle flips between pending and completed.
func (s DeliverableStatus) Toggle() DeliverableStatus {
	if s == DeliverablePending {
		return DeliverableCompleted
	}
	return DeliverablePending
}

// Deliverable is one promised content item within a collaboration. The set is
// replaced wholesale on a terms update; individual items only ever toggle.
type Deliverable struct {
	ID              string            `json:"id"`
	CollaborationID string            `json:"-"`
	Platform        string            `json:"-"`
	ContentType     string            `json:"type"`
	Quantity        int               `json:"quantity"`
	Status          DeliverableStatus `json:"status"`
}

// PlatformDeliverables groups a collaboration's deliverables by platform for
// the wire view.
type PlatformDeliverables struct {
	Platform     string        `json:"platform"`
	Deliverables []Deliverable `json:"deliverables"`
}

// GroupDeliverables builds the platform-grouped view, preserving first-seen
// platform order.
func GroupDeliverables(deliverables []Deliverable) []PlatformDeliverables {
	grouped := []PlatformDeliverables{}
	index := map[string]int{}
	for _, d := range deliverables {
		i, ok := index[d.Platform]
		if !ok {
			i = len(grouped)
			index[d.Platform] = i
			grouped = append(grouped, PlatformDeliverables{Platform: d.Platform})
		}
		grouped[i].Deliverables = append(grouped[i].Deliverables, d)
	}
	return grouped
}
