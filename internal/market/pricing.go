package market

import "github.com/kebabpro/kebabd/internal/domain"

// FinalPrice computes the effective price of an asset under the given
// location and spec selections. Fiat ids short-circuit to the inverse of
// their fixed exchange rate and never consult market state. Unknown ids
// price at 0.
func (m *Market) FinalPrice(id string, loc domain.Factor, specs domain.Specs) float64 {
	if domain.IsFiat(id) {
		return domain.InverseFiat(id)
	}
	a, ok := domain.FindAsset(id)
	if !ok {
		return 0
	}
	return domain.EffectivePrice(m.BasePrice(id), a.Category, loc, specs)
}

// QuoteBuy prices an asset at the currently selected buy location with the
// category's current spec selections.
func (m *Market) QuoteBuy(id string) float64 {
	loc, specs := m.tradeContext(id)
	return m.FinalPrice(id, loc, specs)
}

// QuoteSell prices an asset at the currently selected sell location with the
// category's current spec selections.
func (m *Market) QuoteSell(id string) float64 {
	_, specs := m.tradeContext(id)
	m.mu.Lock()
	loc := m.sellLocation
	m.mu.Unlock()
	return m.FinalPrice(id, loc, specs)
}

func (m *Market) tradeContext(id string) (domain.Factor, domain.Specs) {
	a, _ := domain.FindAsset(id)
	m.mu.Lock()
	defer m.mu.Unlock()
	specs := m.kebabSpecs
	if a.Category == domain.CategoryLivestock {
		specs = m.livestockSpecs
	}
	return m.buyLocation, cloneSpecs(specs)
}

func cloneSpecs(s domain.Specs) domain.Specs {
	out := make(domain.Specs, len(s))
	for dim, f := range s {
		out[dim] = f
	}
	return out
}
