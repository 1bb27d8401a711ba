package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/kebabpro/kebabd/internal/domain"
)

// ErrSyncInFlight is returned when a reconciliation is already running.
// At most one sync may be outstanding; the second caller just backs off.
var ErrSyncInFlight = errors.New("oracle sync already in flight")

// Anchor extraction patterns. The oracle is asked for exactly this format;
// a missing label means "no rescale for that axis" (ratio 1.0), not an error.
var (
	kebabAnchorRe     = regexp.MustCompile(`VALORE_REALE_BERLINO:\s*([0-9]+\.?[0-9]*)`)
	livestockAnchorRe = regexp.MustCompile(`VALORE_REALE_CAMMELLO:\s*([0-9]+\.?[0-9]*)`)
)

// SyncWithReality reconciles simulated prices against the oracle's real-world
// anchors and ingests the sector news feed.
//
// The rescale is absolute: each anchor ratio is computed against the
// canonical asset's static seed base and applied to every asset's catalog
// base price, resetting accumulated drift. Repeating a sync with identical
// anchors is therefore a no-op.
//
// Any fetch failure abandons the whole sync: no partial state mutation, the
// real-mode flag untouched, the error logged for operators.
func (e *Engine) SyncWithReality(ctx context.Context) error {
	if !e.syncing.CompareAndSwap(false, true) {
		return ErrSyncInFlight
	}
	defer e.syncing.Store(false)

	dateLabel := time.Now().Format("02/01/2006")

	report, err := e.oracle.FetchAnchorPrices(ctx, dateLabel)
	if err != nil {
		slog.Warn("oracle sync abandoned", "err", err)
		return fmt.Errorf("engine.SyncWithReality: %w", err)
	}
	if report == nil {
		// Oracle disabled: nothing to reconcile against.
		slog.Debug("oracle disabled, sync skipped")
		return nil
	}

	news, err := e.oracle.FetchNews(ctx, dateLabel)
	if err != nil {
		slog.Warn("oracle sync abandoned", "err", err)
		return fmt.Errorf("engine.SyncWithReality: %w", err)
	}

	kebabRatio := anchorRatio(kebabAnchorRe, report.Text, domain.CanonicalKebabID)
	livestockRatio := anchorRatio(livestockAnchorRe, report.Text, domain.CanonicalLivestockID)

	e.market.Rescale(kebabRatio, livestockRatio)
	e.market.MarkSynced(time.Now(), report.Sources)
	if len(news) > 0 {
		e.market.SetNews(news)
	}
	e.persist(ctx)

	slog.Info("oracle sync applied",
		"kebab_ratio", kebabRatio,
		"livestock_ratio", livestockRatio,
		"sources", len(report.Sources),
		"news", len(news),
	)
	return nil
}

// Syncing reports whether a reconciliation is currently outstanding.
func (e *Engine) Syncing() bool {
	return e.syncing.Load()
}

// anchorRatio extracts one anchor value from the oracle text and divides it
// by the canonical asset's static seed base. Missing pattern or broken
// number means ratio 1.0.
func anchorRatio(re *regexp.Regexp, text, canonicalID string) float64 {
	match := re.FindStringSubmatch(text)
	if match == nil {
		return 1.0
	}
	anchor, err := strconv.ParseFloat(match[1], 64)
	if err != nil || anchor <= 0 {
		return 1.0
	}
	asset, ok := domain.FindAsset(canonicalID)
	if !ok || asset.BasePrice <= 0 {
		return 1.0
	}
	return anchor / asset.BasePrice
}

// Ask forwards a question to the Visir. When the reply carries the unlock
// tag, the extended catalog opens and the choice is persisted.
func (e *Engine) Ask(ctx context.Context, question string) (domain.GuruReply, error) {
	reply, err := e.oracle.Ask(ctx, question)
	if err != nil {
		return domain.GuruReply{}, fmt.Errorf("engine.Ask: %w", err)
	}
	if reply.UnlockBlackMarket && !e.market.BlackMarketOpen() {
		e.market.SetBlackMarketOpen(true)
		e.persist(ctx)
		slog.Info("black market unlocked")
	}
	return reply, nil
}
