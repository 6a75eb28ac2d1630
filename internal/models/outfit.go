package models

import "time"

// ClothingParts is the persisted slot layout of an outfit: single-valued
// slots serialize as one id, multi-valued slots as an ordered id list.
// Empty slots are omitted from the stored document.
type ClothingParts struct {
	Top         *string  `json:"top,omitempty"`
	Bottom      *string  `json:"bottom,omitempty"`
	Outerwear   *string  `json:"outerwear,omitempty"`
	FullBody    *string  `json:"full_body,omitempty"`
	Shoes       []string `json:"shoes,omitempty"`
	Accessories []string `json:"accessory,omitempty"`
}

// Outfit is the persisted form of a composed outfit. It references wardrobe
// items by id only; the catalogue remains the system of record for the items
// themselves.
type Outfit struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	Name          string        `json:"name"`
	Gender        string        `json:"gender"`
	ClothingItems []string      `json:"clothing_items"`
	ClothingParts ClothingParts `json:"clothing_parts"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// OutfitFilter describes query params for listing outfits.
type OutfitFilter struct {
	UserID    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
