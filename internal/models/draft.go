package models

import (
	appErrors "github.com/noah-isme/wardrobe-planner-api/pkg/errors"
)

// OutfitDraft is the in-memory slot assignment being edited. It is a value
// type: every transition returns a fresh draft and never mutates the
// receiver, so callers always hold a consistent snapshot.
//
// Two invariants hold after every single transition:
//   - a full-body garment excludes top, bottom and outerwear
//   - any of top/bottom/outerwear excludes full-body
//
// Shoes and accessories are orthogonal to both.
type OutfitDraft struct {
	Top         *WardrobeItem  `json:"top,omitempty"`
	Bottom      *WardrobeItem  `json:"bottom,omitempty"`
	Outerwear   *WardrobeItem  `json:"outerwear,omitempty"`
	FullBody    *WardrobeItem  `json:"full_body,omitempty"`
	Shoes       []WardrobeItem `json:"shoes,omitempty"`
	Accessories []WardrobeItem `json:"accessories,omitempty"`
}

// Place assigns the item to the slot resolved from its category and returns
// the resulting draft. Single-valued slots replace their occupant; placing a
// full-body item clears the separates and vice versa. Multi-valued slots
// append, deduplicated by item id.
func (d OutfitDraft) Place(item WardrobeItem) (OutfitDraft, error) {
	slot, ok := SlotFor(item.Category)
	if !ok {
		return d, appErrors.Clone(appErrors.ErrUnmappedCategory, "no slot mapping for category "+item.Category)
	}

	next := d.clone()
	switch slot {
	case SlotFullBody:
		next.FullBody = &item
		next.Top, next.Bottom, next.Outerwear = nil, nil, nil
	case SlotTop:
		next.Top = &item
		next.FullBody = nil
	case SlotBottom:
		next.Bottom = &item
		next.FullBody = nil
	case SlotOuterwear:
		next.Outerwear = &item
		next.FullBody = nil
	case SlotShoes:
		next.Shoes = appendUnique(next.Shoes, item)
	case SlotAccessory:
		next.Accessories = appendUnique(next.Accessories, item)
	}
	return next, nil
}

// Remove clears the given slot. Single-valued slots clear unconditionally,
// regardless of whether itemID matches the occupant. Multi-valued slots drop
// only the matching id; a non-member id leaves the draft untouched.
func (d OutfitDraft) Remove(slot Slot, itemID string) OutfitDraft {
	next := d.clone()
	switch slot {
	case SlotTop:
		next.Top = nil
	case SlotBottom:
		next.Bottom = nil
	case SlotOuterwear:
		next.Outerwear = nil
	case SlotFullBody:
		next.FullBody = nil
	case SlotShoes:
		next.Shoes = removeByID(next.Shoes, itemID)
	case SlotAccessory:
		next.Accessories = removeByID(next.Accessories, itemID)
	}
	return next
}

// WithImageOverride replaces the image ref on every occurrence of itemID
// across all slots. Slot membership never changes.
func (d OutfitDraft) WithImageOverride(itemID, imageRef string) OutfitDraft {
	next := d.clone()
	for _, single := range []**WardrobeItem{&next.Top, &next.Bottom, &next.Outerwear, &next.FullBody} {
		if *single != nil && (*single).ID == itemID {
			updated := **single
			updated.ImageRef = imageRef
			*single = &updated
		}
	}
	for i := range next.Shoes {
		if next.Shoes[i].ID == itemID {
			next.Shoes[i].ImageRef = imageRef
		}
	}
	for i := range next.Accessories {
		if next.Accessories[i].ID == itemID {
			next.Accessories[i].ImageRef = imageRef
		}
	}
	return next
}

// IsEmpty reports whether every slot is unoccupied.
func (d OutfitDraft) IsEmpty() bool {
	return d.Top == nil && d.Bottom == nil && d.Outerwear == nil && d.FullBody == nil &&
		len(d.Shoes) == 0 && len(d.Accessories) == 0
}

// Items flattens the draft into an ordered, deduplicated list following the
// canonical slot order and, within a slot, insertion order.
func (d OutfitDraft) Items() []WardrobeItem {
	seen := make(map[string]struct{})
	var items []WardrobeItem
	add := func(item WardrobeItem) {
		if _, ok := seen[item.ID]; ok {
			return
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}
	for _, single := range []*WardrobeItem{d.Top, d.Bottom, d.Outerwear, d.FullBody} {
		if single != nil {
			add(*single)
		}
	}
	for _, item := range d.Shoes {
		add(item)
	}
	for _, item := range d.Accessories {
		add(item)
	}
	return items
}

// Equal compares two drafts slot by slot, including image overrides and
// multi-slot ordering.
func (d OutfitDraft) Equal(other OutfitDraft) bool {
	if !singleEqual(d.Top, other.Top) || !singleEqual(d.Bottom, other.Bottom) ||
		!singleEqual(d.Outerwear, other.Outerwear) || !singleEqual(d.FullBody, other.FullBody) {
		return false
	}
	return itemsEqual(d.Shoes, other.Shoes) && itemsEqual(d.Accessories, other.Accessories)
}

func (d OutfitDraft) clone() OutfitDraft {
	next := OutfitDraft{
		Top:       copyItem(d.Top),
		Bottom:    copyItem(d.Bottom),
		Outerwear: copyItem(d.Outerwear),
		FullBody:  copyItem(d.FullBody),
	}
	if len(d.Shoes) > 0 {
		next.Shoes = append([]WardrobeItem(nil), d.Shoes...)
	}
	if len(d.Accessories) > 0 {
		next.Accessories = append([]WardrobeItem(nil), d.Accessories...)
	}
	return next
}

func copyItem(item *WardrobeItem) *WardrobeItem {
	if item == nil {
		return nil
	}
	dup := *item
	return &dup
}

func appendUnique(items []WardrobeItem, item WardrobeItem) []WardrobeItem {
	for _, existing := range items {
		if existing.ID == item.ID {
			return items
		}
	}
	return append(items, item)
}

func removeByID(items []WardrobeItem, id string) []WardrobeItem {
	for i, item := range items {
		if item.ID == id {
			return append(items[:i:i], items[i+1:]...)
		}
	}
	return items
}

func singleEqual(a, b *WardrobeItem) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID && a.ImageRef == b.ImageRef
}

func itemsEqual(a, b []WardrobeItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].ImageRef != b[i].ImageRef {
			return false
		}
	}
	return true
}
