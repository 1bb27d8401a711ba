package market

import "github.com/kebabpro/kebabd/internal/domain"

// SelectKebabSpec sets the kebab-side factor for one dimension. The factor
// id must exist in that dimension's table; unknown ids are rejected.
func (m *Market) SelectKebabSpec(dim domain.Dimension, factorID string) bool {
	table, ok := domain.DimensionsFor(domain.CategoryKebab)[dim]
	if !ok {
		return false
	}
	f, ok := domain.FindFactor(table, factorID)
	if !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kebabSpecs[dim] = f
	return true
}

// SelectLivestockSpec sets the livestock-side factor for one dimension.
func (m *Market) SelectLivestockSpec(dim domain.Dimension, factorID string) bool {
	table, ok := domain.DimensionsFor(domain.CategoryLivestock)[dim]
	if !ok {
		return false
	}
	f, ok := domain.FindFactor(table, factorID)
	if !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.livestockSpecs[dim] = f
	return true
}

// SetBuyLocation selects the buy-side location factor by id. Trading
// locations come from the kebab table; ingredients share it.
func (m *Market) SetBuyLocation(id string) bool {
	f, ok := domain.FindFactor(domain.LocationsFor(domain.CategoryKebab), id)
	if !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buyLocation = f
	return true
}

// SetSellLocation selects the sell-side location factor by id.
func (m *Market) SetSellLocation(id string) bool {
	f, ok := domain.FindFactor(domain.LocationsFor(domain.CategoryKebab), id)
	if !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sellLocation = f
	return true
}

// BuyLocation returns the currently selected buy-side location.
func (m *Market) BuyLocation() domain.Factor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buyLocation
}

// SellLocation returns the currently selected sell-side location.
func (m *Market) SellLocation() domain.Factor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sellLocation
}

// SetLanguage stores the UI language preference (translation itself is a UI
// concern, the engine only persists the choice).
func (m *Market) SetLanguage(lang string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.language = lang
}

// SetCurrency stores the display currency preference. Unknown codes are
// rejected so display conversion can always resolve a rate.
func (m *Market) SetCurrency(code string) bool {
	if !domain.IsFiat(code) {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currency = code
	return true
}

// Language returns the stored language preference.
func (m *Market) Language() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.language
}

// Currency returns the stored display currency code.
func (m *Market) Currency() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currency
}
