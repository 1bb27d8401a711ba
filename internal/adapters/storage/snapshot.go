package storage

// snapshot.go — persistencia del estado del mercado como un único blob JSON
// con clave fija, sobre SQLite puro-Go (sin CGo).
//
// Estrategia:
//   - Una tabla `snapshots` con una fila por clave; en la práctica una sola
//     fila (snapshotKey). Write-through: el engine guarda tras cada mutación,
//     que ocurre como mucho cada 15s o por acción del usuario.
//   - Un blob corrupto se trata como "sin estado previo": Load devuelve nil
//     y el engine siembra defaults. La corrupción nunca tumba el arranque.

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kebabpro/kebabd/internal/market"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    key        TEXT PRIMARY KEY,
    payload    BLOB     NOT NULL,
    updated_at DATETIME NOT NULL
);
`

// snapshotKey es la clave fija del blob, constante en todo el proceso.
const snapshotKey = "kebab_economy_pro_v1"

// SQLiteStore implementa ports.SnapshotStore sobre SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore abre (o crea) la base de datos en la ruta dada y aplica el
// schema. Usar ":memory:" en tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStore: open %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStore: apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load lee el snapshot guardado. (nil, nil) si no hay fila o el payload no
// parsea — en ambos casos el caller debe sembrar defaults.
func (s *SQLiteStore) Load(ctx context.Context) (*market.Snapshot, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE key = ?`, snapshotKey,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage.Load: %w", err)
	}

	var snap market.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		slog.Warn("storage: corrupt snapshot, falling back to seed defaults", "err", err)
		return nil, nil
	}
	return &snap, nil
}

// Save reescribe el snapshot completo (upsert).
func (s *SQLiteStore) Save(ctx context.Context, snap market.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("storage.Save: marshal: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		snapshotKey, payload, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage.Save: %w", err)
	}
	return nil
}

// Reset borra el snapshot guardado.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, snapshotKey); err != nil {
		return fmt.Errorf("storage.Reset: %w", err)
	}
	return nil
}

// Close cierra la conexión.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
