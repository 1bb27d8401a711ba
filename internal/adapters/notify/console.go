package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/kebabpro/kebabd/internal/domain"
	"github.com/kebabpro/kebabd/internal/market"
)

// Console implementa ports.Notifier escribiendo a stdout.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador de consola. Con table=false imprime una
// línea compacta por tick; con table=true el tablero completo.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// PublishTick imprime el estado del tick en el modo configurado.
func (c *Console) PublishTick(_ context.Context, report market.TickReport) error {
	if c.table {
		c.printBoard(report)
	} else {
		c.printCompact(report)
	}
	return nil
}

// printCompact imprime lo esencial en una línea.
func (c *Console) printCompact(r market.TickReport) {
	mode := "SIM"
	if r.RealMode {
		mode = "REAL"
	}
	symbol := domain.CurrencySymbols[r.Currency]
	fmt.Fprintf(c.out, "[%s] doner %.2f | camel %.2f | balance %.2f%s [%s]\n",
		r.Point.Time, r.Point.Kebab, r.Point.Livestock, displayAmount(r.Balance, r.Currency), symbol, mode)
}

// printBoard imprime el tablero completo: cotizaciones, cartera y noticias.
func (c *Console) printBoard(r market.TickReport) {
	fmt.Fprintf(c.out, "\n=== KEBAB MARKET @ %s ===\n", r.Point.Time)

	table := tablewriter.NewWriter(c.out)
	table.Header("Asset", "Cat", "Base", "Buy", "Sell", "Held")
	for _, q := range r.Quotes {
		table.Append(
			fmt.Sprintf("%s %s", q.Asset.Icon, q.Asset.Name),
			string(q.Asset.Category),
			fmt.Sprintf("%.2f", q.Base),
			fmt.Sprintf("%.2f", q.Buy),
			fmt.Sprintf("%.2f", q.Sell),
			trimZero(q.Held),
		)
	}
	table.Render()

	c.printPortfolio(r)

	if len(r.Headlines) > 0 {
		c.printNews(r.Headlines)
	}
}

func (c *Console) printPortfolio(r market.TickReport) {
	symbol := domain.CurrencySymbols[r.Currency]
	mode := "simulated drift"
	if r.RealMode {
		mode = "anchored to real data"
		if !r.LastSync.IsZero() {
			mode += " (last sync " + r.LastSync.Format("15:04:05") + ")"
		}
	}

	// Valor de las posesiones a precio de venta actual.
	var holdings float64
	for _, q := range r.Quotes {
		holdings += q.Held * q.Sell
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "balance %.2f%s | holdings %.2f%s | portions",
		displayAmount(r.Balance, r.Currency), symbol, displayAmount(holdings, r.Currency), symbol)
	for _, p := range domain.Portions {
		fmt.Fprintf(&sb, " %s:%d", p, r.Portions[string(p)])
	}
	fmt.Fprintf(&sb, " | %s\n", mode)
	fmt.Fprint(c.out, sb.String())
}

func (c *Console) printNews(items []domain.NewsItem) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Impact", "Headline", "Source")
	for _, n := range items {
		table.Append(impactIcon(n.Impact), n.Headline, n.Source)
	}
	table.Render()
}

// displayAmount convierte un importe EUR a la divisa de visualización.
func displayAmount(eur float64, currency string) float64 {
	if rate, ok := domain.FiatRate(currency); ok {
		return eur * rate
	}
	return eur
}

func impactIcon(impact domain.NewsImpact) string {
	switch impact {
	case domain.ImpactUp:
		return "▲"
	case domain.ImpactDown:
		return "▼"
	default:
		return "■"
	}
}

// trimZero formatea cantidades de inventario sin ruido decimal.
func trimZero(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.3f", v)
}
