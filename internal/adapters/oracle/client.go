// Package oracle es el adapter HTTP del colaborador de generación de texto
// (endpoint estilo generateContent con grounding de búsqueda). El engine solo
// ve el contrato de ports.Oracle; todo el markup y parsing vive aquí.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kebabpro/kebabd/internal/domain"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-3-flash-preview"

	// Límite conservador: el free tier admite ~15 req/min.
	requestsPerMinute = 10

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// unlockTag es la marca entre corchetes que el Visir puede emitir para abrir
// el bazar. Se extrae aquí y NUNCA llega al core como string literal.
const unlockTag = "[APRI_BAZAR]"

// Client implementa ports.Oracle contra el endpoint generateContent.
type Client struct {
	http    *http.Client
	baseURL string
	model   string
	apiKey  string
	limiter *rate.Limiter
}

// NewClient crea un Client. Con apiKey vacía el cliente queda deshabilitado:
// FetchAnchorPrices devuelve nil y FetchNews lista vacía, sin error.
func NewClient(baseURL, model, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Limit(requestsPerMinute)/60, 2),
	}
}

// Enabled devuelve true si hay API key configurada.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// FetchAnchorPrices consulta los precios reales de referencia.
func (c *Client) FetchAnchorPrices(ctx context.Context, dateLabel string) (*domain.AnchorReport, error) {
	if !c.Enabled() {
		return nil, nil
	}

	resp, err := c.generate(ctx, genRequest{
		Contents: userContents(anchorPrompt(dateLabel)),
		Tools:    searchTools(),
	})
	if err != nil {
		return nil, fmt.Errorf("oracle.FetchAnchorPrices: %w", err)
	}

	return &domain.AnchorReport{
		Text:    resp.text(),
		Sources: resp.sources(),
	}, nil
}

// FetchNews consulta la crónica del sector. El modelo devuelve prosa con un
// array JSON embebido; si no se encuentra o no parsea, lista vacía.
func (c *Client) FetchNews(ctx context.Context, dateLabel string) ([]domain.NewsItem, error) {
	if !c.Enabled() {
		return nil, nil
	}

	resp, err := c.generate(ctx, genRequest{
		Contents: userContents(newsPrompt(dateLabel)),
		Tools:    searchTools(),
	})
	if err != nil {
		return nil, fmt.Errorf("oracle.FetchNews: %w", err)
	}

	return extractNews(resp.text()), nil
}

// Ask envía una pregunta libre al Visir y devuelve la respuesta con la marca
// de desbloqueo ya extraída del texto.
func (c *Client) Ask(ctx context.Context, question string) (domain.GuruReply, error) {
	if !c.Enabled() {
		return domain.GuruReply{Reply: guruOfflineReply}, nil
	}

	resp, err := c.generate(ctx, genRequest{
		Contents:          userContents(question),
		SystemInstruction: systemContent(guruPersona),
		GenerationConfig:  &genConfig{Temperature: 0.8},
	})
	if err != nil {
		return domain.GuruReply{}, fmt.Errorf("oracle.Ask: %w", err)
	}

	text := resp.text()
	unlock := strings.Contains(text, unlockTag)
	if unlock {
		text = strings.TrimSpace(strings.ReplaceAll(text, unlockTag, ""))
	}
	return domain.GuruReply{Reply: text, UnlockBlackMarket: unlock}, nil
}

// extractNews aísla el primer array JSON del texto y lo parsea. Cualquier
// fallo devuelve nil: la lista previa del mercado se conserva.
func extractNews(text string) []domain.NewsItem {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil
	}
	var items []domain.NewsItem
	if err := json.Unmarshal([]byte(text[start:end+1]), &items); err != nil {
		slog.Warn("oracle: unparseable news payload", "err", err)
		return nil
	}
	return items
}

// --- wire types del endpoint generateContent ---

type genRequest struct {
	Contents          []genContent `json:"contents"`
	SystemInstruction *genContent  `json:"systemInstruction,omitempty"`
	Tools             []genTool    `json:"tools,omitempty"`
	GenerationConfig  *genConfig   `json:"generationConfig,omitempty"`
}

type genContent struct {
	Parts []genPart `json:"parts"`
}

type genPart struct {
	Text string `json:"text"`
}

type genTool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type genConfig struct {
	Temperature float64 `json:"temperature,omitempty"`
}

type genResponse struct {
	Candidates []struct {
		Content           genContent `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []struct {
				Web struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

func (r *genResponse) text() string {
	var sb strings.Builder
	if len(r.Candidates) > 0 {
		for _, p := range r.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

func (r *genResponse) sources() []domain.Source {
	var out []domain.Source
	if len(r.Candidates) == 0 {
		return out
	}
	for _, chunk := range r.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web.URI == "" {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = "Dati di Mercato Certificati"
		}
		out = append(out, domain.Source{Title: title, URI: chunk.Web.URI})
	}
	return out
}

func userContents(prompt string) []genContent {
	return []genContent{{Parts: []genPart{{Text: prompt}}}}
}

func systemContent(instruction string) *genContent {
	return &genContent{Parts: []genPart{{Text: instruction}}}
}

func searchTools() []genTool {
	return []genTool{{GoogleSearch: &struct{}{}}}
}

// generate hace el POST con rate limiting y retries con backoff exponencial.
func (c *Client) generate(ctx context.Context, reqBody genRequest) (*genResponse, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			if attempt == maxRetries {
				return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return nil, fmt.Errorf("oracle error %d after %d retries", resp.StatusCode, maxRetries)
			}
			slog.Warn("oracle retry", "status", resp.StatusCode, "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("oracle client error %d: %s", resp.StatusCode, string(body))
		}

		var out genResponse
		err = json.NewDecoder(resp.Body).Decode(&out)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return &out, nil
	}
	return nil, fmt.Errorf("exhausted %d retries", maxRetries)
}

func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
