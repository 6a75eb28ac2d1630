package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotFor(t *testing.T) {
	slot, ok := SlotFor("hoodie")
	require.True(t, ok)
	assert.Equal(t, SlotTop, slot)

	slot, ok = SlotFor("jumpsuit")
	require.True(t, ok)
	assert.Equal(t, SlotFullBody, slot)

	_, ok = SlotFor("umbrella")
	assert.False(t, ok)

	// lookup is case sensitive on canonical spellings
	_, ok = SlotFor("Hoodie")
	assert.False(t, ok)
}

func TestSlotMultiValued(t *testing.T) {
	assert.True(t, SlotShoes.MultiValued())
	assert.True(t, SlotAccessory.MultiValued())
	assert.False(t, SlotTop.MultiValued())
	assert.False(t, SlotFullBody.MultiValued())
}

func TestGroupBySlot(t *testing.T) {
	items := []WardrobeItem{
		item("tee", "t-shirt"),
		item("hat", "hat"),
		item("umbrella", "umbrella"),
		item("shirt", "shirt"),
		item("swimsuit", "swimsuit"),
	}
	grouped := GroupBySlot(items)

	require.Len(t, grouped.Slots[SlotTop], 2)
	assert.Equal(t, "tee", grouped.Slots[SlotTop][0].ID)
	assert.Equal(t, "shirt", grouped.Slots[SlotTop][1].ID)
	assert.Len(t, grouped.Slots[SlotAccessory], 1)

	require.Len(t, grouped.Unmapped["umbrella"], 1)
	require.Len(t, grouped.Unmapped["swimsuit"], 1)
}
