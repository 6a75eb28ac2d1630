package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id, category string) WardrobeItem {
	return WardrobeItem{ID: id, UserID: "u1", Name: id, Category: category, ImageRef: id + ".png"}
}

func mustPlace(t *testing.T, d OutfitDraft, it WardrobeItem) OutfitDraft {
	t.Helper()
	next, err := d.Place(it)
	require.NoError(t, err)
	return next
}

func TestPlaceSingleSlotReplaces(t *testing.T) {
	d := mustPlace(t, OutfitDraft{}, item("tee", "t-shirt"))
	require.NotNil(t, d.Top)
	assert.Equal(t, "tee", d.Top.ID)

	d = mustPlace(t, d, item("shirt", "shirt"))
	require.NotNil(t, d.Top)
	assert.Equal(t, "shirt", d.Top.ID)
}

func TestPlaceFullBodyClearsSeparates(t *testing.T) {
	d := mustPlace(t, OutfitDraft{}, item("tee", "t-shirt"))
	d = mustPlace(t, d, item("jeans", "jeans"))
	d = mustPlace(t, d, item("coat", "coat"))
	d = mustPlace(t, d, item("boots", "boots"))

	d = mustPlace(t, d, item("dress", "dress"))
	assert.Nil(t, d.Top)
	assert.Nil(t, d.Bottom)
	assert.Nil(t, d.Outerwear)
	require.NotNil(t, d.FullBody)
	assert.Equal(t, "dress", d.FullBody.ID)
	// shoes are orthogonal to the exclusivity rule
	assert.Len(t, d.Shoes, 1)
}

func TestPlaceSeparateClearsFullBody(t *testing.T) {
	d := mustPlace(t, OutfitDraft{}, item("dress", "dress"))
	d = mustPlace(t, d, item("jeans", "jeans"))
	assert.Nil(t, d.FullBody)
	require.NotNil(t, d.Bottom)
	assert.Equal(t, "jeans", d.Bottom.ID)

	d = mustPlace(t, OutfitDraft{}, item("gown", "gown"))
	d = mustPlace(t, d, item("blazer", "blazer"))
	assert.Nil(t, d.FullBody)
	require.NotNil(t, d.Outerwear)
}

func TestPlaceUnmappedCategoryFails(t *testing.T) {
	_, err := OutfitDraft{}.Place(item("x", "umbrella"))
	require.Error(t, err)
}

func TestPlaceMultiSlotAppendsAndDedupes(t *testing.T) {
	d := mustPlace(t, OutfitDraft{}, item("hat", "hat"))
	d = mustPlace(t, d, item("scarf", "scarf"))
	require.Len(t, d.Accessories, 2)
	assert.Equal(t, "hat", d.Accessories[0].ID)
	assert.Equal(t, "scarf", d.Accessories[1].ID)

	d = mustPlace(t, d, item("hat", "hat"))
	assert.Len(t, d.Accessories, 2)
}

func TestRemoveSingleSlotIgnoresItemID(t *testing.T) {
	d := mustPlace(t, OutfitDraft{}, item("tee", "t-shirt"))
	d = d.Remove(SlotTop, "someone-else")
	assert.Nil(t, d.Top)
}

func TestRemoveMultiSlotByID(t *testing.T) {
	d := mustPlace(t, OutfitDraft{}, item("hat", "hat"))
	d = mustPlace(t, d, item("belt", "belt"))

	d = d.Remove(SlotAccessory, "hat")
	require.Len(t, d.Accessories, 1)
	assert.Equal(t, "belt", d.Accessories[0].ID)

	// non-member removal leaves the draft untouched
	same := d.Remove(SlotAccessory, "not-there")
	assert.True(t, d.Equal(same))
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	base := mustPlace(t, OutfitDraft{}, item("tee", "t-shirt"))

	_ = mustPlace(t, base, item("dress", "dress"))
	require.NotNil(t, base.Top)
	assert.Equal(t, "tee", base.Top.ID)

	_ = base.Remove(SlotTop, "tee")
	require.NotNil(t, base.Top)

	_ = base.WithImageOverride("tee", "crop.png")
	assert.Equal(t, "tee.png", base.Top.ImageRef)
}

func TestWithImageOverrideHitsEveryOccurrence(t *testing.T) {
	d := mustPlace(t, OutfitDraft{}, item("tee", "t-shirt"))
	d = mustPlace(t, d, item("hat", "hat"))
	d = mustPlace(t, d, item("sneakers", "sneakers"))

	d = d.WithImageOverride("hat", "hat-cropped.png")
	assert.Equal(t, "hat-cropped.png", d.Accessories[0].ImageRef)
	assert.Equal(t, "tee.png", d.Top.ImageRef)

	// unknown id is a no-op
	same := d.WithImageOverride("ghost", "x.png")
	assert.True(t, d.Equal(same))
}

func TestIsEmptyAndItemsOrder(t *testing.T) {
	assert.True(t, OutfitDraft{}.IsEmpty())

	d := mustPlace(t, OutfitDraft{}, item("boots", "boots"))
	d = mustPlace(t, d, item("jeans", "jeans"))
	d = mustPlace(t, d, item("tee", "t-shirt"))
	d = mustPlace(t, d, item("hat", "hat"))
	assert.False(t, d.IsEmpty())

	ids := make([]string, 0)
	for _, it := range d.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"tee", "jeans", "boots", "hat"}, ids)
}

func TestInvariantHoldsAcrossSequences(t *testing.T) {
	sequence := []WardrobeItem{
		item("tee", "t-shirt"),
		item("dress", "dress"),
		item("jeans", "jeans"),
		item("gown", "gown"),
		item("coat", "coat"),
		item("jumpsuit", "jumpsuit"),
	}
	d := OutfitDraft{}
	for _, it := range sequence {
		d = mustPlace(t, d, it)
		separates := d.Top != nil || d.Bottom != nil || d.Outerwear != nil
		if d.FullBody != nil {
			assert.False(t, separates, "full body and separates coexist after placing %s", it.ID)
		}
	}
	require.NotNil(t, d.FullBody)
	assert.Equal(t, "jumpsuit", d.FullBody.ID)
}
