package market_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kebabpro/kebabd/internal/domain"
	"github.com/kebabpro/kebabd/internal/market"
)

func TestDriftTick_PricesStayPositive(t *testing.T) {
	m := newMarket(t)

	for i := 0; i < 200; i++ {
		m.DriftTick(time.Now())
	}
	for _, cat := range []domain.Category{domain.CategoryKebab, domain.CategoryLivestock, domain.CategoryIngredient} {
		for _, a := range domain.AllAssets(cat) {
			assert.Greater(t, m.BasePrice(a.ID), 0.0, a.ID)
		}
	}
}

func TestDriftTick_NoiseIsBounded(t *testing.T) {
	m := newMarket(t)

	before := m.BasePrice("doner")
	m.DriftTick(time.Now())
	after := m.BasePrice("doner")

	assert.InDelta(t, before, after, before*0.0031, "one tick moves at most ~0.3%")
}

func TestHistory_CapacityAndFIFO(t *testing.T) {
	m := market.New(market.Config{HistoryCapacity: 5, SeedBalance: 100})

	base := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		m.DriftTick(base.Add(time.Duration(i) * 15 * time.Second))
	}

	h := m.History()
	require.Len(t, h, 5)
	// Oldest evicted one-for-one: the last five ticks remain, in order.
	assert.Equal(t, "12:03:45", h[0].Time)
	assert.Equal(t, "12:04:45", h[4].Time)
}

func TestHistory_SeededOnColdStart(t *testing.T) {
	m := newMarket(t)
	assert.NotEmpty(t, m.History())
	assert.LessOrEqual(t, len(m.History()), market.DefaultHistoryCapacity)
}

func TestHistory_TaggedWithRealMode(t *testing.T) {
	m := newMarket(t)

	p := m.DriftTick(time.Now())
	assert.False(t, p.Real)

	m.MarkSynced(time.Now(), nil)
	p = m.DriftTick(time.Now())
	assert.True(t, p.Real)
}

func TestRescale_AbsoluteFromCatalog(t *testing.T) {
	m := newMarket(t)

	// Scenario C: anchor 7.50 against the 5.00 döner seed → ratio 1.5.
	m.Rescale(1.5, 1.0)
	for _, a := range domain.AllAssets(domain.CategoryKebab) {
		assert.InDelta(t, a.BasePrice*1.5, m.BasePrice(a.ID), 0.0001, a.ID)
	}
	for _, a := range domain.AllAssets(domain.CategoryLivestock) {
		assert.InDelta(t, a.BasePrice, m.BasePrice(a.ID), 0.0001, a.ID)
	}
}

func TestRescale_Idempotent(t *testing.T) {
	m := newMarket(t)

	m.Rescale(1.5, 2.0)
	first := m.BasePrice("doner")
	firstCamel := m.BasePrice("dromedary")

	// Drift in between must not leak into a repeated rescale.
	m.DriftTick(time.Now())
	m.Rescale(1.5, 2.0)

	assert.InDelta(t, first, m.BasePrice("doner"), 0.0001)
	assert.InDelta(t, firstCamel, m.BasePrice("dromedary"), 0.0001)
}

func TestRescale_IngredientsFollowKebabAnchor(t *testing.T) {
	m := newMarket(t)

	m.Rescale(2.0, 1.0)
	onion, _ := domain.FindAsset("onion")
	assert.InDelta(t, onion.BasePrice*2.0, m.BasePrice("onion"), 0.0001)
}

func TestRescale_NonPositiveRatiosIgnored(t *testing.T) {
	m := newMarket(t)

	m.Rescale(0, -3)
	doner, _ := domain.FindAsset("doner")
	assert.InDelta(t, doner.BasePrice, m.BasePrice("doner"), 0.0001)
}
