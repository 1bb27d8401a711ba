// Package market is the mutable economic state of the simulation: prices,
// ledger, history and preferences, behind one explicit handle.
//
// There is no global store: every consumer (CLI, websocket hub, tests) gets
// a *Market and calls explicit queries and
// mutators. All mutations take the handle's lock and are applied as one
// synchronous step, so a drift tick and a user trade can interleave but
// never overlap.
package market

import (
	"math/rand"
	"sync"
	"time"

	"github.com/kebabpro/kebabd/internal/domain"
)

const (
	// DefaultHistoryCapacity bounds the rolling price history (FIFO).
	DefaultHistoryCapacity = 50
	// DefaultSeedBalance is the starting fiat balance in EUR.
	DefaultSeedBalance = 15000
	// seedDonerStock is the starting inventory of the canonical kebab.
	seedDonerStock = 10
	// journalCapacity bounds the trade journal (FIFO).
	journalCapacity = 100
	// seedHistoryPoints is the synthetic run generated on cold start so the
	// time series is never empty.
	seedHistoryPoints = 12
)

// Config holds the tunables of a market instance.
type Config struct {
	HistoryCapacity int
	SeedBalance     float64
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		HistoryCapacity: DefaultHistoryCapacity,
		SeedBalance:     DefaultSeedBalance,
	}
}

// PricePoint is one entry of the rolling history.
type PricePoint struct {
	Time      string  `json:"time"`
	Kebab     float64 `json:"kebab"`
	Livestock float64 `json:"livestock"`
	Real      bool    `json:"isReal"`
}

// Market is a single simulated economy. Safe for concurrent use.
type Market struct {
	mu  sync.Mutex
	cfg Config
	rng *rand.Rand

	balance   float64
	inventory map[string]float64
	portions  map[domain.Portion]int
	prices    map[domain.Category]map[string]float64
	history   []PricePoint
	journal   []Trade

	kebabSpecs     domain.Specs
	livestockSpecs domain.Specs
	buyLocation    domain.Factor
	sellLocation   domain.Factor

	realMode    bool
	lastSync    time.Time
	sources     []domain.Source
	news        []domain.NewsItem
	blackMarket bool
	language    string
	currency    string
}

// New creates a market with seed defaults and a synthetic history run.
func New(cfg Config) *Market {
	if cfg.HistoryCapacity <= 0 {
		cfg.HistoryCapacity = DefaultHistoryCapacity
	}
	if cfg.SeedBalance <= 0 {
		cfg.SeedBalance = DefaultSeedBalance
	}
	m := &Market{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	m.seedLocked(time.Now())
	return m
}

// seedLocked installs seed defaults in place. Caller holds mu (or owns m
// exclusively, as in New).
func (m *Market) seedLocked(now time.Time) {
	m.balance = m.cfg.SeedBalance
	m.inventory = map[string]float64{domain.CanonicalKebabID: seedDonerStock}
	m.portions = map[domain.Portion]int{}
	for _, p := range domain.Portions {
		m.portions[p] = 0
	}

	m.prices = map[domain.Category]map[string]float64{}
	for _, cat := range pricedCategories {
		entries := map[string]float64{}
		for _, a := range domain.AllAssets(cat) {
			entries[a.ID] = a.BasePrice
		}
		m.prices[cat] = entries
	}

	m.history = nil
	m.journal = nil
	m.kebabSpecs = domain.Specs{}
	m.livestockSpecs = domain.Specs{}
	m.buyLocation = domain.KebabLocation[0]
	m.sellLocation = domain.KebabLocation[1]
	m.realMode = false
	m.lastSync = time.Time{}
	m.sources = nil
	m.news = nil
	m.blackMarket = false
	m.language = "it"
	m.currency = "EUR"

	// Short synthetic run so charts have something to draw from tick one.
	for i := seedHistoryPoints; i > 0; i-- {
		m.driftLocked(now.Add(-time.Duration(i) * 15 * time.Second))
	}
}

var pricedCategories = []domain.Category{
	domain.CategoryKebab,
	domain.CategoryLivestock,
	domain.CategoryIngredient,
}

// Balance returns the current fiat balance.
func (m *Market) Balance() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance
}

// Inventory returns a copy of the current holdings.
func (m *Market) Inventory() map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]float64, len(m.inventory))
	for id, qty := range m.inventory {
		out[id] = qty
	}
	return out
}

// Holding returns the quantity held of one asset.
func (m *Market) Holding(id string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inventory[id]
}

// PortionCount returns the current count of one portion kind.
func (m *Market) PortionCount(p domain.Portion) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.portions[p]
}

// History returns a copy of the rolling price history, oldest first.
func (m *Market) History() []PricePoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PricePoint, len(m.history))
	copy(out, m.history)
	return out
}

// News returns the latest ingested news list.
func (m *Market) News() []domain.NewsItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.NewsItem, len(m.news))
	copy(out, m.news)
	return out
}

// Sources returns the citations recorded by the last successful sync.
func (m *Market) Sources() []domain.Source {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Source, len(m.sources))
	copy(out, m.sources)
	return out
}

// RealMode reports whether prices are anchored to oracle data.
func (m *Market) RealMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.realMode
}

// LastSync returns the timestamp of the last successful oracle sync
// (zero time if never synced).
func (m *Market) LastSync() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSync
}

// BlackMarketOpen reports whether the extended catalog is unlocked.
func (m *Market) BlackMarketOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blackMarket
}

// SetBlackMarketOpen flips the extended-catalog flag. The decision to open
// the bazaar lives outside the engine (oracle unlock tag, UI).
func (m *Market) SetBlackMarketOpen(open bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blackMarket = open
}

// BasePrice returns the current simulated base price of an asset, falling
// back to the static catalog price if the entry is somehow missing.
func (m *Market) BasePrice(id string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.basePriceLocked(id)
}

func (m *Market) basePriceLocked(id string) float64 {
	a, ok := domain.FindAsset(id)
	if !ok {
		return 0
	}
	if p := m.prices[a.Category][id]; p > 0 {
		return p
	}
	return a.BasePrice
}
