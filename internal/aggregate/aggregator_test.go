package aggregate

import (
	"testing"

	"crypto_dashboard/internal/catalog"
	"crypto_dashboard/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coinCard(id string) entity.CardInstance {
	return entity.CardInstance{
		CardTypeID: catalog.TypeCrypto,
		Values:     []entity.ValueEntry{{ID: catalog.FieldCoinID, Value: id}},
	}
}

func miniCoinCard(id string) entity.CardInstance {
	return entity.CardInstance{
		CardTypeID: catalog.TypeMiniCrypto,
		Values:     []entity.ValueEntry{{ID: catalog.FieldCoinID, Value: id}},
	}
}

func fiatCard(base, quote string) entity.CardInstance {
	return entity.CardInstance{
		CardTypeID: catalog.TypeFiatCurrency,
		Values: []entity.ValueEntry{
			{ID: catalog.FieldTickerBase, Value: base},
			{ID: catalog.FieldTickerQuote, Value: quote},
		},
	}
}

func balanceCard(typeID, address, isOwner string) entity.CardInstance {
	return entity.CardInstance{
		CardTypeID: typeID,
		Values: []entity.ValueEntry{
			{ID: catalog.FieldAddress, Value: address},
			{ID: catalog.FieldIsOwner, Value: isOwner},
		},
	}
}

func TestAggregateDeduplicatesCoinIDs(t *testing.T) {
	agg := NewAggregator(catalog.Default())

	reqs := agg.Aggregate([]entity.CardInstance{
		coinCard("1027"),
		coinCard("1"),
		miniCoinCard("1027"),
		coinCard("1"),
	})

	assert.Equal(t, []int64{1, 1027}, reqs.CoinIDs)
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	agg := NewAggregator(catalog.Default())

	cards := []entity.CardInstance{
		coinCard("52"),
		fiatCard("EUR", "USD"),
		fiatCard("GBP", "USD"),
		balanceCard(catalog.TypeNanoBalance, "nano_1abc", "false"),
		coinCard("1"),
	}
	reversed := make([]entity.CardInstance, len(cards))
	for i, c := range cards {
		reversed[len(cards)-1-i] = c
	}

	assert.Equal(t, agg.Aggregate(cards), agg.Aggregate(reversed))
}

func TestAggregateNormalizesTickers(t *testing.T) {
	agg := NewAggregator(catalog.Default())

	reqs := agg.Aggregate([]entity.CardInstance{
		fiatCard("eur", "usd"),
		fiatCard("EUR", "USD"),
		fiatCard("GBP", "JPY"),
	})

	assert.Equal(t, []string{"EUR/USD", "GBP/JPY"}, reqs.Tickers)
}

func TestAggregateMergesAccountOwnership(t *testing.T) {
	agg := NewAggregator(catalog.Default())

	// The same address viewed once as foreign and once as owned must come
	// out owned, regardless of which card the aggregator sees first.
	reqs := agg.Aggregate([]entity.CardInstance{
		balanceCard(catalog.TypeNanoBalance, "nano_1abc", "false"),
		balanceCard(catalog.TypeNanoBalance, "nano_1abc", "true"),
	})

	require.Len(t, reqs.Accounts, 1)
	assert.Equal(t, entity.Account{Address: "nano_1abc", IsOwner: true}, reqs.Accounts[0])
}

func TestAggregateBananoTotalAugmentsQuoteSet(t *testing.T) {
	agg := NewAggregator(catalog.Default())

	reqs := agg.Aggregate([]entity.CardInstance{
		coinCard("1"),
		coinCard("1027"),
		{CardTypeID: catalog.TypeBananoTotal},
	})

	assert.Equal(t, []int64{1, 1027, catalog.BananoCoinID}, reqs.CoinIDs)
}

func TestAggregateSkipsMalformedCards(t *testing.T) {
	agg := NewAggregator(catalog.Default())

	reqs := agg.Aggregate([]entity.CardInstance{
		coinCard("1"),
		coinCard("not-a-number"),
		coinCard("-5"),
		{CardTypeID: catalog.TypeCrypto}, // no coin_id value at all
		{CardTypeID: "unknown_widget"},
		fiatCard("", "USD"),
	})

	assert.Equal(t, []int64{1}, reqs.CoinIDs)
	assert.Empty(t, reqs.Tickers)
}

func TestAggregateBalanceTypeActivatesDomainWithoutAccounts(t *testing.T) {
	agg := NewAggregator(catalog.Default())

	// A balance card whose address is missing still activates the domain;
	// the provider just has nothing to fetch.
	reqs := agg.Aggregate([]entity.CardInstance{
		{CardTypeID: catalog.TypeNanoBalance},
	})

	assert.True(t, reqs.ChainBalanceActive)
	assert.Empty(t, reqs.Accounts)

	reqs = agg.Aggregate([]entity.CardInstance{
		{CardTypeID: catalog.TypeBananoTotalBal},
	})
	assert.True(t, reqs.ChainBalanceActive)
}

func TestAggregateEmptyCardList(t *testing.T) {
	agg := NewAggregator(catalog.Default())

	reqs := agg.Aggregate(nil)

	assert.Empty(t, reqs.CoinIDs)
	assert.Empty(t, reqs.Tickers)
	assert.Empty(t, reqs.Accounts)
	assert.False(t, reqs.ChainBalanceActive)
}
