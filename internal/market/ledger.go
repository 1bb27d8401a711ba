package market

import (
	"time"

	"github.com/google/uuid"

	"github.com/kebabpro/kebabd/internal/domain"
)

// TradeKind tags a journal entry.
type TradeKind string

const (
	TradeBuy   TradeKind = "buy"
	TradeSell  TradeKind = "sell"
	TradeSwap  TradeKind = "swap"
	TradeCraft TradeKind = "craft"
	TradeFund  TradeKind = "fund"
)

// Trade is one executed ledger operation, kept in a bounded journal.
type Trade struct {
	ID       string    `json:"id"`
	Kind     TradeKind `json:"kind"`
	AssetID  string    `json:"asset_id"`
	Quantity float64   `json:"quantity"`
	Value    float64   `json:"value"` // EUR moved by the operation
	At       time.Time `json:"at"`
}

// Journal returns a copy of the trade journal, oldest first.
func (m *Market) Journal() []Trade {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Trade, len(m.journal))
	copy(out, m.journal)
	return out
}

func (m *Market) recordLocked(kind TradeKind, assetID string, qty, value float64) {
	m.journal = append(m.journal, Trade{
		ID:       uuid.NewString(),
		Kind:     kind,
		AssetID:  assetID,
		Quantity: qty,
		Value:    value,
		At:       time.Now().UTC(),
	})
	if len(m.journal) > journalCapacity {
		m.journal = m.journal[len(m.journal)-journalCapacity:]
	}
}

// Buy purchases one unit of the asset at the given price. Returns false
// (and changes nothing) if the balance is insufficient or the price is
// negative. Yield ingredients credit their portion counter instead of the
// inventory.
func (m *Market) Buy(id string, price float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if price < 0 || m.balance < price {
		return false
	}
	a, ok := domain.FindAsset(id)
	if !ok {
		return false
	}

	m.balance -= price
	if a.Yields() {
		m.portions[a.YieldPortion] += a.YieldQuantity
	} else {
		m.inventory[id]++
	}
	m.recordLocked(TradeBuy, id, 1, price)
	return true
}

// Sell disposes of one unit of the asset at the given price. Returns false
// if the asset is not held. Portions are not independently sellable.
func (m *Market) Sell(id string, price float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inventory[id] < 1 {
		return false
	}
	m.inventory[id]--
	if m.inventory[id] == 0 {
		delete(m.inventory, id)
	}
	m.balance += price
	m.recordLocked(TradeSell, id, 1, price)
	return true
}

// Swap converts amount units of fromID into toID at the given prices.
// Fiat fromID draws from the balance; anything else from the inventory.
// The credited quantity may be fractional. A zero or negative toPrice is
// rejected — never divide into Inf/NaN.
func (m *Market) Swap(fromID, toID string, amount, fromPrice, toPrice float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if amount <= 0 || toPrice <= 0 {
		return false
	}
	totalValue := amount * fromPrice

	if domain.IsFiat(fromID) {
		if m.balance < totalValue {
			return false
		}
		m.balance -= totalValue
	} else {
		if m.inventory[fromID] < amount {
			return false
		}
		m.inventory[fromID] -= amount
		if m.inventory[fromID] == 0 {
			delete(m.inventory, fromID)
		}
	}

	m.inventory[toID] += totalValue / toPrice
	m.recordLocked(TradeSwap, toID, totalValue/toPrice, totalValue)
	return true
}

// Assemble crafts one unit of the given kebab from its recipe. All-or-
// nothing: every requirement is validated before any counter changes.
func (m *Market) Assemble(kebabID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	recipe, ok := domain.CraftingRecipes[kebabID]
	if !ok {
		return false
	}

	for input, qty := range recipe {
		if domain.IsPortion(input) {
			if m.portions[domain.Portion(input)] < qty {
				return false
			}
		} else if m.inventory[input] < float64(qty) {
			return false
		}
	}

	for input, qty := range recipe {
		if domain.IsPortion(input) {
			m.portions[domain.Portion(input)] -= qty
		} else {
			m.inventory[input] -= float64(qty)
			if m.inventory[input] == 0 {
				delete(m.inventory, input)
			}
		}
	}
	m.inventory[kebabID]++
	m.recordLocked(TradeCraft, kebabID, 1, 0)
	return true
}

// AddFunds credits the balance unconditionally. This is the whole contract
// of the reward boundary (minigames, bonuses). Non-positive amounts are
// ignored so the balance invariant can never be broken from outside.
func (m *Market) AddFunds(amount float64) {
	if amount <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balance += amount
	m.recordLocked(TradeFund, "", 0, amount)
}

// Reset clears all mutable state back to seed defaults.
func (m *Market) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seedLocked(time.Now())
}
