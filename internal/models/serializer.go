package models

import (
	appErrors "github.com/noah-isme/wardrobe-planner-api/pkg/errors"
)

// ItemLookup resolves a wardrobe item by id. The second return value is
// false when the item no longer exists in the catalogue.
type ItemLookup func(id string) (WardrobeItem, bool)

// SerializeDraft converts a draft into its persisted outfit shape. The draft
// must hold at least one item.
func SerializeDraft(d OutfitDraft, name, gender string) (*Outfit, error) {
	if d.IsEmpty() {
		return nil, appErrors.ErrEmptyOutfit
	}

	parts := ClothingParts{}
	if d.Top != nil {
		parts.Top = idPtr(d.Top.ID)
	}
	if d.Bottom != nil {
		parts.Bottom = idPtr(d.Bottom.ID)
	}
	if d.Outerwear != nil {
		parts.Outerwear = idPtr(d.Outerwear.ID)
	}
	if d.FullBody != nil {
		parts.FullBody = idPtr(d.FullBody.ID)
	}
	for _, item := range d.Shoes {
		parts.Shoes = append(parts.Shoes, item.ID)
	}
	for _, item := range d.Accessories {
		parts.Accessories = append(parts.Accessories, item.ID)
	}

	items := d.Items()
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	return &Outfit{
		Name:          name,
		Gender:        gender,
		ClothingItems: ids,
		ClothingParts: parts,
	}, nil
}

// DeserializeOutfit rehydrates a draft from a persisted outfit. Ids the
// lookup cannot resolve are dropped: the referenced garment left the
// catalogue and the rest of the outfit is still usable.
func DeserializeOutfit(outfit *Outfit, lookup ItemLookup) OutfitDraft {
	draft := OutfitDraft{}
	if outfit == nil {
		return draft
	}

	resolve := func(id *string) *WardrobeItem {
		if id == nil {
			return nil
		}
		item, ok := lookup(*id)
		if !ok {
			return nil
		}
		return &item
	}

	draft.Top = resolve(outfit.ClothingParts.Top)
	draft.Bottom = resolve(outfit.ClothingParts.Bottom)
	draft.Outerwear = resolve(outfit.ClothingParts.Outerwear)
	draft.FullBody = resolve(outfit.ClothingParts.FullBody)

	for _, id := range outfit.ClothingParts.Shoes {
		if item, ok := lookup(id); ok {
			draft.Shoes = append(draft.Shoes, item)
		}
	}
	for _, id := range outfit.ClothingParts.Accessories {
		if item, ok := lookup(id); ok {
			draft.Accessories = append(draft.Accessories, item)
		}
	}
	return draft
}

func idPtr(id string) *string {
	return &id
}
