package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kebabpro/kebabd/internal/domain"
	"github.com/kebabpro/kebabd/internal/market"
)

func sampleReport() market.TickReport {
	m := market.New(market.DefaultConfig())
	point := m.History()[len(m.History())-1]
	return m.Report(point)
}

func TestConsoleCompactLine(t *testing.T) {
	var sb strings.Builder
	c := NewConsoleWriter(&sb, false)

	report := sampleReport()
	err := c.PublishTick(context.Background(), report)
	require.NoError(t, err)

	line := sb.String()
	assert.Contains(t, line, report.Point.Time)
	assert.Contains(t, line, "doner")
	assert.Contains(t, line, "balance")
	assert.Contains(t, line, "[SIM]")
	assert.Contains(t, line, "€")
}

func TestConsoleCompactRealMode(t *testing.T) {
	var sb strings.Builder
	c := NewConsoleWriter(&sb, false)

	report := sampleReport()
	report.RealMode = true
	require.NoError(t, c.PublishTick(context.Background(), report))

	assert.Contains(t, sb.String(), "[REAL]")
}

func TestConsoleBoardListsAssets(t *testing.T) {
	var sb strings.Builder
	c := NewConsoleWriter(&sb, true)

	require.NoError(t, c.PublishTick(context.Background(), sampleReport()))

	out := sb.String()
	assert.Contains(t, out, "KEBAB MARKET")
	assert.Contains(t, out, "Döner")
	assert.Contains(t, out, "Dromedario")
	// Cartera con valor de posesiones, porciones y modo.
	assert.Contains(t, out, "holdings")
	assert.Contains(t, out, "meat:")
	assert.Contains(t, out, "simulated drift")
}

func TestConsoleBoardShowsNews(t *testing.T) {
	var sb strings.Builder
	c := NewConsoleWriter(&sb, true)

	report := sampleReport()
	report.Headlines = []domain.NewsItem{
		{Headline: "Crolla il prezzo della carne", Source: "Gazzetta", Impact: domain.ImpactDown},
	}
	require.NoError(t, c.PublishTick(context.Background(), report))

	out := sb.String()
	assert.Contains(t, out, "Crolla il prezzo della carne")
	assert.Contains(t, out, "▼")
}

func TestConsoleBoardRealModeShowsSync(t *testing.T) {
	var sb strings.Builder
	c := NewConsoleWriter(&sb, true)

	report := sampleReport()
	report.RealMode = true
	report.LastSync = time.Date(2026, 2, 10, 12, 30, 0, 0, time.UTC)
	require.NoError(t, c.PublishTick(context.Background(), report))

	out := sb.String()
	assert.Contains(t, out, "anchored to real data")
	assert.Contains(t, out, "12:30:00")
}

func TestDisplayAmount(t *testing.T) {
	assert.InDelta(t, 1080.0, displayAmount(1000, "USD"), 1e-9)
	assert.InDelta(t, 1000.0, displayAmount(1000, "EUR"), 1e-9)
	// Divisa desconocida: se muestra el valor EUR sin convertir.
	assert.InDelta(t, 1000.0, displayAmount(1000, "XXX"), 1e-9)
}

func TestTrimZero(t *testing.T) {
	assert.Equal(t, "10", trimZero(10))
	assert.Equal(t, "0.500", trimZero(0.5))
}
