package ports

import (
	"context"

	"github.com/kebabpro/kebabd/internal/market"
)

// SnapshotStore persiste el estado completo del mercado como un único blob
// con clave fija. El engine trata el medio como un get/set opaco.
type SnapshotStore interface {
	// Load lee el snapshot guardado. Devuelve (nil, nil) si no hay estado
	// previo o si el blob está corrupto — la corrupción nunca es fatal.
	Load(ctx context.Context) (*market.Snapshot, error)

	// Save reescribe el snapshot completo (write-through tras cada mutación).
	Save(ctx context.Context, snap market.Snapshot) error

	// Reset borra el snapshot guardado.
	Reset(ctx context.Context) error

	// Close cierra la conexión limpiamente.
	Close() error
}
