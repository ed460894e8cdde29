package compose

import (
	"testing"

	"crypto_dashboard/internal/catalog"
	"crypto_dashboard/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kindsOf(slots []entity.Slot) []entity.SlotKind {
	out := make([]entity.SlotKind, len(slots))
	for i, s := range slots {
		out[i] = s.Kind
	}
	return out
}

func card(typeID string, values ...entity.ValueEntry) entity.CardInstance {
	return entity.CardInstance{CardTypeID: typeID, Values: values}
}

func TestSequenceNoBreakAtStart(t *testing.T) {
	seq := NewSequencer(catalog.Default())

	// crypto_table needs its own row, but a break never precedes the
	// first card.
	slots := seq.Sequence([]entity.CardInstance{card(catalog.TypeCryptoTable)})

	assert.Equal(t, []entity.SlotKind{entity.SlotCard}, kindsOf(slots))
}

func TestSequenceBreakBeforeOwnRowCard(t *testing.T) {
	seq := NewSequencer(catalog.Default())

	slots := seq.Sequence([]entity.CardInstance{
		card(catalog.TypeCrypto, entity.ValueEntry{ID: catalog.FieldCoinID, Value: "1"}),
		card(catalog.TypeCryptoTable),
	})

	assert.Equal(t, []entity.SlotKind{entity.SlotCard, entity.SlotBreak, entity.SlotCard}, kindsOf(slots))
}

func TestSequenceNoBreakBetweenSameOwnRowType(t *testing.T) {
	seq := NewSequencer(catalog.Default())

	slots := seq.Sequence([]entity.CardInstance{
		card(catalog.TypeCryptoTable),
		card(catalog.TypeCryptoTable),
	})

	assert.Equal(t, []entity.SlotKind{entity.SlotCard, entity.SlotCard}, kindsOf(slots))
}

func TestSequenceAlternatingOwnRowTypes(t *testing.T) {
	seq := NewSequencer(catalog.Default())

	m := entity.ValueEntry{ID: catalog.FieldExchange, Value: "binance"}
	b := entity.ValueEntry{ID: catalog.FieldTickerBase, Value: "BTC"}
	q := entity.ValueEntry{ID: catalog.FieldTickerQuote, Value: "USDT"}

	slots := seq.Sequence([]entity.CardInstance{
		card(catalog.TypeOrderBook, m, b, q),
		card(catalog.TypeCryptoTable),
		card(catalog.TypeOrderBook, m, b, q),
	})

	assert.Equal(t, []entity.SlotKind{
		entity.SlotCard,
		entity.SlotBreak, entity.SlotCard,
		entity.SlotBreak, entity.SlotCard,
	}, kindsOf(slots))
}

func TestSequenceOwnRowCardAfterInlineCard(t *testing.T) {
	seq := NewSequencer(catalog.Default())

	m := entity.ValueEntry{ID: catalog.FieldExchange, Value: "binance"}
	b := entity.ValueEntry{ID: catalog.FieldTickerBase, Value: "BTC"}
	q := entity.ValueEntry{ID: catalog.FieldTickerQuote, Value: "USDT"}

	// orderbook, crypto, orderbook: no break at the start, no break before
	// the inline crypto card, a break before the second orderbook because
	// its predecessor is a different type.
	slots := seq.Sequence([]entity.CardInstance{
		card(catalog.TypeOrderBook, m, b, q),
		card(catalog.TypeCrypto, entity.ValueEntry{ID: catalog.FieldCoinID, Value: "1"}),
		card(catalog.TypeOrderBook, m, b, q),
	})

	assert.Equal(t, []entity.SlotKind{
		entity.SlotCard,
		entity.SlotCard,
		entity.SlotBreak, entity.SlotCard,
	}, kindsOf(slots))
}

func TestSequenceNeverEmitsConsecutiveBreaks(t *testing.T) {
	seq := NewSequencer(catalog.Default())

	slots := seq.Sequence([]entity.CardInstance{
		card(catalog.TypeCrypto, entity.ValueEntry{ID: catalog.FieldCoinID, Value: "1"}),
		card(catalog.TypeCryptoTable),
		card(catalog.TypeOhlcvChart),
		card(catalog.TypeUniswapPoolsTable),
	})

	kinds := kindsOf(slots)
	for i := 1; i < len(kinds); i++ {
		if kinds[i] == entity.SlotBreak {
			assert.NotEqual(t, entity.SlotBreak, kinds[i-1], "break at %d follows a break", i)
		}
	}
}

func TestSequenceCarriesDecodedConfig(t *testing.T) {
	seq := NewSequencer(catalog.Default())

	slots := seq.Sequence([]entity.CardInstance{
		card(catalog.TypeCrypto, entity.ValueEntry{ID: catalog.FieldCoinID, Value: "1027"}),
	})

	require.Len(t, slots, 1)
	require.NotNil(t, slots[0].Card)
	assert.Equal(t, catalog.CoinConfig{CoinID: 1027}, slots[0].Card.Config)
	assert.False(t, slots[0].Card.Degraded)
}

func TestSequenceMarksDegradedCards(t *testing.T) {
	seq := NewSequencer(catalog.Default())

	slots := seq.Sequence([]entity.CardInstance{
		card(catalog.TypeCrypto, entity.ValueEntry{ID: catalog.FieldCoinID, Value: "abc"}),
		card("unknown_widget"),
	})

	require.Len(t, slots, 2)
	assert.True(t, slots[0].Card.Degraded)
	assert.True(t, slots[1].Card.Degraded)
}
