package models

// Slot identifies a body-part position an outfit can occupy.
type Slot string

const (
	SlotTop       Slot = "top"
	SlotBottom    Slot = "bottom"
	SlotOuterwear Slot = "outerwear"
	SlotFullBody  Slot = "full_body"
	SlotShoes     Slot = "shoes"
	SlotAccessory Slot = "accessory"
)

// SlotOrder is the canonical iteration order used when flattening an outfit
// into its persisted item list.
var SlotOrder = []Slot{SlotTop, SlotBottom, SlotOuterwear, SlotFullBody, SlotShoes, SlotAccessory}

// MultiValued reports whether the slot holds an ordered set of items rather
// than a single occupant.
func (s Slot) MultiValued() bool {
	return s == SlotShoes || s == SlotAccessory
}

// Valid reports whether the value is one of the known slots.
func (s Slot) Valid() bool {
	switch s {
	case SlotTop, SlotBottom, SlotOuterwear, SlotFullBody, SlotShoes, SlotAccessory:
		return true
	}
	return false
}

// categorySlots maps canonical catalogue categories to their body-part slot.
// Lookup is case-sensitive on the catalogue's canonical spelling.
var categorySlots = map[string]Slot{
	"t-shirt":    SlotTop,
	"shirt":      SlotTop,
	"blouse":     SlotTop,
	"polo":       SlotTop,
	"sweater":    SlotTop,
	"hoodie":     SlotTop,
	"longsleeve": SlotTop,
	"tank_top":   SlotTop,
	"top":        SlotTop,

	"jeans":    SlotBottom,
	"trousers": SlotBottom,
	"pants":    SlotBottom,
	"chinos":   SlotBottom,
	"shorts":   SlotBottom,
	"skirt":    SlotBottom,
	"leggings": SlotBottom,

	"jacket":   SlotOuterwear,
	"blazer":   SlotOuterwear,
	"coat":     SlotOuterwear,
	"cardigan": SlotOuterwear,
	"parka":    SlotOuterwear,
	"vest":     SlotOuterwear,

	"dress":    SlotFullBody,
	"gown":     SlotFullBody,
	"jumpsuit": SlotFullBody,
	"overall":  SlotFullBody,

	"sneakers": SlotShoes,
	"boots":    SlotShoes,
	"heels":    SlotShoes,
	"sandals":  SlotShoes,
	"loafers":  SlotShoes,
	"flats":    SlotShoes,
	"shoes":    SlotShoes,

	"hat":        SlotAccessory,
	"cap":        SlotAccessory,
	"scarf":      SlotAccessory,
	"belt":       SlotAccessory,
	"bag":        SlotAccessory,
	"tie":        SlotAccessory,
	"gloves":     SlotAccessory,
	"watch":      SlotAccessory,
	"jewelry":    SlotAccessory,
	"sunglasses": SlotAccessory,
}

// SlotFor resolves a catalogue category to its slot. The second return value
// is false for categories outside the composable garment set; callers decide
// whether to surface those as an unmapped bucket or reject the item.
func SlotFor(category string) (Slot, bool) {
	slot, ok := categorySlots[category]
	return slot, ok
}
