package models

import "time"

// WardrobeItem is one garment in a user's catalogue. The planner never
// mutates item identity; the composer may carry a local image override.
type WardrobeItem struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Category  string    `db:"category" json:"category"`
	ImageRef  string    `db:"image_ref" json:"image_ref"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// WardrobeFilter describes query params for listing wardrobe items.
type WardrobeFilter struct {
	UserID    string
	Category  string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// SlottedWardrobe groups catalogue items by their resolved slot. Items whose
// category has no slot mapping land in Unmapped keyed by the raw category
// string instead of being dropped.
type SlottedWardrobe struct {
	Slots    map[Slot][]WardrobeItem   `json:"slots"`
	Unmapped map[string][]WardrobeItem `json:"unmapped,omitempty"`
}

// GroupBySlot partitions items into slot buckets preserving input order.
func GroupBySlot(items []WardrobeItem) SlottedWardrobe {
	grouped := SlottedWardrobe{Slots: make(map[Slot][]WardrobeItem)}
	for _, item := range items {
		slot, ok := SlotFor(item.Category)
		if !ok {
			if grouped.Unmapped == nil {
				grouped.Unmapped = make(map[string][]WardrobeItem)
			}
			grouped.Unmapped[item.Category] = append(grouped.Unmapped[item.Category], item)
			continue
		}
		grouped.Slots[slot] = append(grouped.Slots[slot], item)
	}
	return grouped
}

// Pagination carries page metadata in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
