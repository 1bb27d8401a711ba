// Package engine orchestrates the simulation: the drift clock, the ledger
// operation surface, oracle reconciliation and write-through persistence.
package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/kebabpro/kebabd/internal/market"
	"github.com/kebabpro/kebabd/internal/ports"
)

// Config holds the engine tunables.
type Config struct {
	// TickInterval is the simulator clock period.
	TickInterval time.Duration
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{TickInterval: 15 * time.Second}
}

// Engine drives one market instance. Persistence is write-through: every
// mutation that goes through the engine is followed by a full snapshot save.
type Engine struct {
	cfg       Config
	market    *market.Market
	oracle    ports.Oracle
	store     ports.SnapshotStore
	notifiers []ports.Notifier

	syncing atomic.Bool
}

// New creates an engine. store may be nil (ephemeral run); oracle may be a
// disabled client; notifiers are optional.
func New(cfg Config, m *market.Market, oracle ports.Oracle, store ports.SnapshotStore, notifiers ...ports.Notifier) *Engine {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultConfig().TickInterval
	}
	return &Engine{
		cfg:       cfg,
		market:    m,
		oracle:    oracle,
		store:     store,
		notifiers: notifiers,
	}
}

// Market exposes the underlying handle for read-side queries.
func (e *Engine) Market() *market.Market {
	return e.market
}

// Load restores persisted state, if any. A missing or corrupt snapshot
// leaves the seeded defaults in place.
func (e *Engine) Load(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	snap, err := e.store.Load(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		slog.Info("no prior state, starting from seed defaults")
		return nil
	}
	e.market.Restore(*snap)
	slog.Info("state restored",
		"balance", snap.Balance,
		"history_points", len(snap.History),
		"real_mode", snap.RealMode,
	)
	return nil
}

// Run executes the simulator clock until the context is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	slog.Info("engine starting", "tick_interval", e.cfg.TickInterval)

	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("engine stopped")
			return nil
		case now := <-ticker.C:
			e.Tick(ctx, now)
		}
	}
}

// Tick performs one clock period: drift every price, persist, publish.
func (e *Engine) Tick(ctx context.Context, now time.Time) market.TickReport {
	point := e.market.DriftTick(now)
	e.persist(ctx)

	report := e.market.Report(point)
	for _, n := range e.notifiers {
		if err := n.PublishTick(ctx, report); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}
	return report
}

// persist saves the full snapshot. A storage failure is logged and the
// in-memory state stays authoritative; the next mutation retries.
func (e *Engine) persist(ctx context.Context) {
	if e.store == nil {
		return
	}
	if err := e.store.Save(ctx, e.market.Snapshot()); err != nil {
		slog.Warn("storage error", "err", err)
	}
}

// --- ledger operation surface (each mutation is followed by a save) ---

// Buy purchases one unit at the asset's current buy quote.
func (e *Engine) Buy(ctx context.Context, id string) bool {
	ok := e.market.Buy(id, e.market.QuoteBuy(id))
	if ok {
		e.persist(ctx)
	}
	return ok
}

// Sell disposes of one unit at the asset's current sell quote.
func (e *Engine) Sell(ctx context.Context, id string) bool {
	ok := e.market.Sell(id, e.market.QuoteSell(id))
	if ok {
		e.persist(ctx)
	}
	return ok
}

// Swap converts holdings (or balance, for fiat fromID) between assets at
// their current buy quotes.
func (e *Engine) Swap(ctx context.Context, fromID, toID string, amount float64) bool {
	fromPrice := e.market.QuoteBuy(fromID) // fiat ids quote at their inverse rate
	ok := e.market.Swap(fromID, toID, amount, fromPrice, e.market.QuoteBuy(toID))
	if ok {
		e.persist(ctx)
	}
	return ok
}

// Assemble crafts one unit of the given kebab.
func (e *Engine) Assemble(ctx context.Context, kebabID string) bool {
	ok := e.market.Assemble(kebabID)
	if ok {
		e.persist(ctx)
	}
	return ok
}

// AddFunds credits the balance (reward boundary).
func (e *Engine) AddFunds(ctx context.Context, amount float64) {
	e.market.AddFunds(amount)
	e.persist(ctx)
}

// Reset clears persisted and in-memory state back to seed defaults.
func (e *Engine) Reset(ctx context.Context) error {
	e.market.Reset()
	if e.store != nil {
		if err := e.store.Reset(ctx); err != nil {
			return err
		}
	}
	e.persist(ctx)
	return nil
}

// SetBuyLocation selects the buy-side location and persists the choice.
func (e *Engine) SetBuyLocation(ctx context.Context, id string) bool {
	ok := e.market.SetBuyLocation(id)
	if ok {
		e.persist(ctx)
	}
	return ok
}

// SetSellLocation selects the sell-side location and persists the choice.
func (e *Engine) SetSellLocation(ctx context.Context, id string) bool {
	ok := e.market.SetSellLocation(id)
	if ok {
		e.persist(ctx)
	}
	return ok
}
