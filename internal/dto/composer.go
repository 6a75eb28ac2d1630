package dto

import (
	"time"

	"github.com/noah-isme/wardrobe-planner-api/internal/models"
)

// StartComposerSessionRequest opens an outfit editing session, optionally
// rehydrated from a persisted outfit.
type StartComposerSessionRequest struct {
	UserID   string `json:"userId" validate:"required"`
	OutfitID string `json:"outfitId"`
}

// ComposerSessionResponse returns the session handle and current draft.
type ComposerSessionResponse struct {
	SessionID string             `json:"sessionId"`
	Draft     models.OutfitDraft `json:"draft"`
	Empty     bool               `json:"empty"`
	ExpiresAt time.Time          `json:"expiresAt"`
}

// PlaceItemRequest drops a wardrobe item onto the draft.
type PlaceItemRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}

// RemoveItemRequest clears a slot or removes one member of a multi slot.
type RemoveItemRequest struct {
	Slot   string `json:"slot" validate:"required"`
	ItemID string `json:"itemId"`
}

// ImageOverrideRequest swaps the image reference of an item everywhere it
// appears in the draft (the result of a crop in the surrounding UI).
type ImageOverrideRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	ImageRef string `json:"imageRef" validate:"required"`
}

// SaveOutfitRequest persists the session's draft as an outfit.
type SaveOutfitRequest struct {
	Name   string `json:"name" validate:"required"`
	Gender string `json:"gender"`
}
