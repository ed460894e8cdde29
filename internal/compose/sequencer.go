package compose

import (
	"crypto_dashboard/internal/catalog"
	"crypto_dashboard/internal/domain/entity"
)

// Sequencer walks the ordered card list and decides, per adjacent pair,
// whether a layout break (new row) precedes a card. The decision is a pure
// function of (previous type, current type): a break goes before card i
// (i > 0) iff card i's type requires its own row and differs from card
// i-1's type. No break at index 0, never two in a row, no look-ahead.
type Sequencer struct {
	catalog *catalog.Catalog
}

// NewSequencer builds a sequencer over the given card-type registry.
func NewSequencer(c *catalog.Catalog) *Sequencer {
	return &Sequencer{catalog: c}
}

// Sequence produces the render order: cards interleaved with layout breaks.
// Views carry each card's decoded config, or a degraded marker when the type
// is unknown or its values were malformed.
func (s *Sequencer) Sequence(cards []entity.CardInstance) []entity.Slot {
	slots := make([]entity.Slot, 0, len(cards))
	for i, card := range cards {
		desc, known := s.catalog.Lookup(card.CardTypeID)
		if i > 0 && known && desc.OwnRow && cards[i-1].CardTypeID != card.CardTypeID {
			slots = append(slots, entity.Slot{Kind: entity.SlotBreak})
		}

		view := entity.CardView{ID: card.ID, CardTypeID: card.CardTypeID}
		cfg, ok := s.catalog.DecodeConfig(card)
		if ok {
			view.Config = cfg
		} else {
			view.Degraded = true
		}
		slots = append(slots, entity.Slot{Kind: entity.SlotCard, Card: &view})
	}
	return slots
}
