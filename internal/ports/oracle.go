package ports

import (
	"context"

	"github.com/kebabpro/kebabd/internal/domain"
)

// Oracle es el colaborador externo de generación de texto que suministra
// precios ancla, noticias del sector y el chat del Visir.
type Oracle interface {
	// FetchAnchorPrices consulta los precios reales de referencia para la
	// fecha simulada dada. Devuelve nil (sin error) si el oráculo está
	// deshabilitado.
	FetchAnchorPrices(ctx context.Context, dateLabel string) (*domain.AnchorReport, error)

	// FetchNews consulta noticias del sector. Una respuesta no parseable
	// devuelve slice vacío, no error.
	FetchNews(ctx context.Context, dateLabel string) ([]domain.NewsItem, error)

	// Ask envía una pregunta libre al Visir. El adapter extrae la marca de
	// desbloqueo del texto antes de devolver la respuesta.
	Ask(ctx context.Context, question string) (domain.GuruReply, error)
}
