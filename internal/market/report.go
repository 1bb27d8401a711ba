package market

import (
	"time"

	"github.com/kebabpro/kebabd/internal/domain"
)

// Quote is one priced row of the market board.
type Quote struct {
	Asset domain.AssetDefinition `json:"asset"`
	Base  float64                `json:"base"`
	Buy   float64                `json:"buy"`
	Sell  float64                `json:"sell"`
	Held  float64                `json:"held"`
}

// TickReport is what notifiers (console, websocket hub) receive after each
// clock tick: the new history point plus a display-ready view of the board.
type TickReport struct {
	Point     PricePoint        `json:"point"`
	Balance   float64           `json:"balance"`
	Currency  string            `json:"currency"`
	RealMode  bool              `json:"isRealMode"`
	LastSync  time.Time         `json:"lastSync,omitzero"`
	Quotes    []Quote           `json:"quotes"`
	Portions  map[string]int    `json:"portions"`
	Headlines []domain.NewsItem `json:"headlines,omitempty"`
}

// maxHeadlines bounds the ticker-tape slice in each report.
const maxHeadlines = 3

// Report builds a TickReport for the given history point using the current
// buy/sell locations and spec selections. Black-market rows are included
// only while the bazaar is open.
func (m *Market) Report(point PricePoint) TickReport {
	m.mu.Lock()
	blackMarket := m.blackMarket
	m.mu.Unlock()

	var quotes []Quote
	for _, cat := range pricedCategories {
		for _, a := range domain.VisibleAssets(cat, blackMarket) {
			quotes = append(quotes, Quote{
				Asset: a,
				Base:  m.BasePrice(a.ID),
				Buy:   m.QuoteBuy(a.ID),
				Sell:  m.QuoteSell(a.ID),
				Held:  m.Holding(a.ID),
			})
		}
	}

	news := m.News()
	if len(news) > maxHeadlines {
		news = news[:maxHeadlines]
	}

	portions := map[string]int{}
	for _, p := range domain.Portions {
		portions[string(p)] = m.PortionCount(p)
	}

	return TickReport{
		Point:     point,
		Balance:   m.Balance(),
		Currency:  m.Currency(),
		RealMode:  m.RealMode(),
		LastSync:  m.LastSync(),
		Quotes:    quotes,
		Portions:  portions,
		Headlines: news,
	}
}
