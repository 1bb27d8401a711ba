package market_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kebabpro/kebabd/internal/domain"
)

func nowForTest() time.Time {
	return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
}

func TestFinalPrice_FiatInverse(t *testing.T) {
	m := newMarket(t)

	// Fiat pricing never consults market state.
	assert.InDelta(t, 1/1.08, m.FinalPrice("USD", domain.Factor{}, nil), 0.0001)
	assert.InDelta(t, 1.0, m.FinalPrice("EUR", domain.Factor{}, nil), 0.0001)
}

func TestFinalPrice_UnknownAsset(t *testing.T) {
	m := newMarket(t)
	assert.Zero(t, m.FinalPrice("nope", domain.Factor{}, nil))
}

func TestFinalPrice_UsesDriftedBase(t *testing.T) {
	m := newMarket(t)

	istanbul, _ := domain.FindFactor(domain.KebabLocation, "istanbul")
	want := m.BasePrice("doner") * istanbul.Multiplier
	assert.InDelta(t, want, m.FinalPrice("doner", istanbul, nil), 0.0001)
}

func TestQuoteBuyQuoteSell_UseSelectedLocations(t *testing.T) {
	m := newMarket(t)

	require.True(t, m.SetBuyLocation("berlin"))
	require.True(t, m.SetSellLocation("london"))

	base := m.BasePrice("doner")
	assert.InDelta(t, base*1.0, m.QuoteBuy("doner"), 0.0001)
	assert.InDelta(t, base*1.75, m.QuoteSell("doner"), 0.0001)
}

func TestQuotes_ApplySpecSelections(t *testing.T) {
	m := newMarket(t)

	require.True(t, m.SetBuyLocation("berlin"))
	require.True(t, m.SelectKebabSpec(domain.DimProtein, "lamb"))
	require.True(t, m.SelectKebabSpec(domain.DimFormat, "plate"))

	base := m.BasePrice("doner")
	assert.InDelta(t, base*1.6*1.5, m.QuoteBuy("doner"), 0.0001)

	// Livestock quotes use the livestock spec set, not the kebab one.
	require.True(t, m.SelectLivestockSpec(domain.DimUse, "racing"))
	camelBase := m.BasePrice("dromedary")
	assert.InDelta(t, camelBase*4.5, m.QuoteBuy("dromedary"), 0.0001)
}

func TestSpecSelection_RejectsUnknown(t *testing.T) {
	m := newMarket(t)

	assert.False(t, m.SelectKebabSpec(domain.DimProtein, "tofu"))
	assert.False(t, m.SelectKebabSpec(domain.DimGender, "male"), "gender is not a kebab dimension")
	assert.False(t, m.SetBuyLocation("atlantis"))
}

func TestReport_BlackMarketGate(t *testing.T) {
	m := newMarket(t)

	closed := m.Report(m.DriftTick(nowForTest()))
	m.SetBlackMarketOpen(true)
	open := m.Report(m.DriftTick(nowForTest()))

	assert.Greater(t, len(open.Quotes), len(closed.Quotes))
}
