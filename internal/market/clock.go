package market

import (
	"time"

	"github.com/kebabpro/kebabd/internal/domain"
)

const (
	// driftSpan is the half-width of the per-tick multiplicative noise.
	driftSpan = 0.003
	// priceFloorFraction keeps every price strictly positive: no drift or
	// rescale may push a price below this fraction of its static base.
	priceFloorFraction = 0.01
	// timeLabelLayout matches the clock label shown next to each point.
	timeLabelLayout = "15:04:05"
)

// DriftTick applies one period of multiplicative random-walk noise to every
// price in all three maps, then appends a history point tagged with the
// current oracle mode. This is the only autonomous price mutator besides
// Rescale.
func (m *Market) DriftTick(now time.Time) PricePoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.driftLocked(now)
}

func (m *Market) driftLocked(now time.Time) PricePoint {
	for cat, entries := range m.prices {
		for id, price := range entries {
			noise := 1 + (m.rng.Float64()*2-1)*driftSpan
			entries[id] = m.clampPrice(cat, id, price*noise)
		}
	}

	point := PricePoint{
		Time:      now.Format(timeLabelLayout),
		Kebab:     m.prices[domain.CategoryKebab][domain.CanonicalKebabID],
		Livestock: m.prices[domain.CategoryLivestock]["majaheem"],
		Real:      m.realMode,
	}
	m.history = append(m.history, point)
	if len(m.history) > m.cfg.HistoryCapacity {
		m.history = m.history[len(m.history)-m.cfg.HistoryCapacity:]
	}
	return point
}

// clampPrice enforces the strictly-positive invariant against the asset's
// static base price.
func (m *Market) clampPrice(cat domain.Category, id string, price float64) float64 {
	base := 1.0
	for _, a := range domain.AllAssets(cat) {
		if a.ID == id {
			base = a.BasePrice
			break
		}
	}
	if floor := base * priceFloorFraction; price < floor {
		return floor
	}
	return price
}

// Rescale resets every kebab and ingredient price to kebabRatio times its
// static catalog base, and every livestock price to livestockRatio times its
// base. The rescale is absolute — computed from the catalog, not the drifted
// price — so repeating it with the same ratios is a no-op.
func (m *Market) Rescale(kebabRatio, livestockRatio float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if kebabRatio <= 0 {
		kebabRatio = 1
	}
	if livestockRatio <= 0 {
		livestockRatio = 1
	}

	ratios := map[domain.Category]float64{
		domain.CategoryKebab:      kebabRatio,
		domain.CategoryIngredient: kebabRatio, // ingredients follow the kebab anchor
		domain.CategoryLivestock:  livestockRatio,
	}
	for cat, ratio := range ratios {
		for _, a := range domain.AllAssets(cat) {
			m.prices[cat][a.ID] = m.clampPrice(cat, a.ID, a.BasePrice*ratio)
		}
	}
}

// MarkSynced records a successful oracle reconciliation: real mode on,
// timestamp and citations stored.
func (m *Market) MarkSynced(at time.Time, sources []domain.Source) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.realMode = true
	m.lastSync = at
	m.sources = sources
}

// SetNews replaces the news list. Callers keep the previous list on a failed
// or unparseable fetch by simply not calling this.
func (m *Market) SetNews(items []domain.NewsItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.news = items
}
