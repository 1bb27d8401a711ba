package market

import (
	"time"

	"github.com/kebabpro/kebabd/internal/domain"
)

// Snapshot is the full serializable state of a market. It is what the
// persistence boundary stores as one keyed blob and what Restore consumes on
// startup. Spec selections and locations are stored by factor id and
// re-resolved against the static tables on restore, so a catalog change
// never crashes a load.
type Snapshot struct {
	Balance   float64                       `json:"balance"`
	Inventory map[string]float64            `json:"inventory"`
	Portions  map[domain.Portion]int        `json:"portions"`
	Prices    map[string]map[string]float64 `json:"marketState"`
	History   []PricePoint                  `json:"history"`
	Journal   []Trade                       `json:"journal,omitempty"`

	KebabSpecs     map[domain.Dimension]string `json:"kebabSpecs,omitempty"`
	LivestockSpecs map[domain.Dimension]string `json:"livestockSpecs,omitempty"`
	BuyLocation    string                      `json:"buyLocation,omitempty"`
	SellLocation   string                      `json:"sellLocation,omitempty"`

	RealMode    bool              `json:"isRealMode"`
	LastSync    time.Time         `json:"lastSync,omitzero"`
	Sources     []domain.Source   `json:"sources,omitempty"`
	News        []domain.NewsItem `json:"news,omitempty"`
	BlackMarket bool              `json:"isBlackMarketOpen"`
	Language    string            `json:"language,omitempty"`
	Currency    string            `json:"currency,omitempty"`
}

// Snapshot captures the whole mutable state as one value copy.
func (m *Market) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Balance:        m.balance,
		Inventory:      make(map[string]float64, len(m.inventory)),
		Portions:       make(map[domain.Portion]int, len(m.portions)),
		Prices:         make(map[string]map[string]float64, len(m.prices)),
		History:        append([]PricePoint(nil), m.history...),
		Journal:        append([]Trade(nil), m.journal...),
		KebabSpecs:     specIDs(m.kebabSpecs),
		LivestockSpecs: specIDs(m.livestockSpecs),
		BuyLocation:    m.buyLocation.ID,
		SellLocation:   m.sellLocation.ID,
		RealMode:       m.realMode,
		LastSync:       m.lastSync,
		Sources:        append([]domain.Source(nil), m.sources...),
		News:           append([]domain.NewsItem(nil), m.news...),
		BlackMarket:    m.blackMarket,
		Language:       m.language,
		Currency:       m.currency,
	}
	for id, qty := range m.inventory {
		snap.Inventory[id] = qty
	}
	for p, n := range m.portions {
		snap.Portions[p] = n
	}
	for cat, entries := range m.prices {
		cp := make(map[string]float64, len(entries))
		for id, price := range entries {
			cp[id] = price
		}
		snap.Prices[string(cat)] = cp
	}
	return snap
}

// Restore replaces the market's state with the snapshot's. Missing price
// entries are backfilled from the catalog and non-positive ones clamped, so
// a stale or hand-edited snapshot cannot break the price invariant.
func (m *Market) Restore(snap Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if snap.Balance >= 0 {
		m.balance = snap.Balance
	}
	m.inventory = map[string]float64{}
	for id, qty := range snap.Inventory {
		if qty > 0 {
			m.inventory[id] = qty
		}
	}
	for _, p := range domain.Portions {
		if n, ok := snap.Portions[p]; ok && n >= 0 {
			m.portions[p] = n
		} else {
			m.portions[p] = 0
		}
	}

	for _, cat := range pricedCategories {
		entries := snap.Prices[string(cat)]
		for _, a := range domain.AllAssets(cat) {
			price, ok := entries[a.ID]
			if !ok || price <= 0 {
				price = a.BasePrice
			}
			m.prices[cat][a.ID] = price
		}
	}

	if len(snap.History) > 0 {
		m.history = append([]PricePoint(nil), snap.History...)
		if len(m.history) > m.cfg.HistoryCapacity {
			m.history = m.history[len(m.history)-m.cfg.HistoryCapacity:]
		}
	}
	m.journal = append([]Trade(nil), snap.Journal...)

	m.kebabSpecs = resolveSpecs(domain.CategoryKebab, snap.KebabSpecs)
	m.livestockSpecs = resolveSpecs(domain.CategoryLivestock, snap.LivestockSpecs)
	locations := domain.LocationsFor(domain.CategoryKebab)
	if f, ok := domain.FindFactor(locations, snap.BuyLocation); ok {
		m.buyLocation = f
	}
	if f, ok := domain.FindFactor(locations, snap.SellLocation); ok {
		m.sellLocation = f
	}

	m.realMode = snap.RealMode
	m.lastSync = snap.LastSync
	m.sources = append([]domain.Source(nil), snap.Sources...)
	m.news = append([]domain.NewsItem(nil), snap.News...)
	m.blackMarket = snap.BlackMarket
	if snap.Language != "" {
		m.language = snap.Language
	}
	if domain.IsFiat(snap.Currency) {
		m.currency = snap.Currency
	}
}

func specIDs(specs domain.Specs) map[domain.Dimension]string {
	if len(specs) == 0 {
		return nil
	}
	out := make(map[domain.Dimension]string, len(specs))
	for dim, f := range specs {
		out[dim] = f.ID
	}
	return out
}

func resolveSpecs(cat domain.Category, ids map[domain.Dimension]string) domain.Specs {
	specs := domain.Specs{}
	tables := domain.DimensionsFor(cat)
	for dim, id := range ids {
		table, ok := tables[dim]
		if !ok {
			continue
		}
		if f, ok := domain.FindFactor(table, id); ok {
			specs[dim] = f
		}
	}
	return specs
}
