package ports

import (
	"context"

	"github.com/kebabpro/kebabd/internal/market"
)

// Notifier presenta el estado del mercado tras cada tick del simulador.
// La consola imprime tablas; el hub websocket lo difunde como JSON.
type Notifier interface {
	PublishTick(ctx context.Context, report market.TickReport) error
}
