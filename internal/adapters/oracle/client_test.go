package oracle_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kebabpro/kebabd/internal/adapters/oracle"
	"github.com/kebabpro/kebabd/internal/domain"
)

// generateResponse construye el JSON mínimo del endpoint generateContent.
func generateResponse(text string, sources ...[2]string) map[string]any {
	var chunks []map[string]any
	for _, s := range sources {
		chunks = append(chunks, map[string]any{
			"web": map[string]any{"title": s[0], "uri": s[1]},
		})
	}
	return map[string]any{
		"candidates": []map[string]any{{
			"content":           map[string]any{"parts": []map[string]any{{"text": text}}},
			"groundingMetadata": map[string]any{"groundingChunks": chunks},
		}},
	}
}

func serveJSON(t *testing.T, body map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
}

func TestFetchAnchorPrices_TextAndSources(t *testing.T) {
	srv := serveJSON(t, generateResponse(
		"VALORE_REALE_BERLINO: 7.50\nVALORE_REALE_CAMMELLO: 2500\nNOTE: dati aste",
		[2]string{"Dönerpreis Index", "https://doenerpreis.test"},
	))
	defer srv.Close()

	client := oracle.NewClient(srv.URL, "test-model", "test-key")
	report, err := client.FetchAnchorPrices(context.Background(), "28/08/2026")

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Contains(t, report.Text, "VALORE_REALE_BERLINO: 7.50")
	require.Len(t, report.Sources, 1)
	assert.Equal(t, "https://doenerpreis.test", report.Sources[0].URI)
}

func TestFetchAnchorPrices_RequestPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(generateResponse("NOTE: ok"))
	}))
	defer srv.Close()

	client := oracle.NewClient(srv.URL, "test-model", "test-key")
	_, err := client.FetchAnchorPrices(context.Background(), "28/08/2026")

	require.NoError(t, err)
	// Un único segmento de versión; la base configurada no lleva /v1beta.
	assert.Equal(t, "/v1beta/models/test-model:generateContent", gotPath)
}

func TestFetchAnchorPrices_DisabledWithoutKey(t *testing.T) {
	client := oracle.NewClient("http://unused.test", "", "")
	report, err := client.FetchAnchorPrices(context.Background(), "28/08/2026")
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestFetchAnchorPrices_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := oracle.NewClient(srv.URL, "test-model", "test-key")
	_, err := client.FetchAnchorPrices(context.Background(), "28/08/2026")
	assert.Error(t, err)
}

func TestFetchNews_ExtractsEmbeddedArray(t *testing.T) {
	text := `Ecco le notizie del settore:
[{"headline": "Döner record a Berlino", "summary": "Un chiosco vende 10k kebab", "source": "Spiegel", "impact": "up", "date": "2026-08-27", "url": "https://spiegel.test"}]
Fonti verificate.`
	srv := serveJSON(t, generateResponse(text))
	defer srv.Close()

	client := oracle.NewClient(srv.URL, "test-model", "test-key")
	news, err := client.FetchNews(context.Background(), "28/08/2026")

	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, "Döner record a Berlino", news[0].Headline)
	assert.Equal(t, domain.ImpactUp, news[0].Impact)
}

func TestFetchNews_UnparseableReturnsEmpty(t *testing.T) {
	srv := serveJSON(t, generateResponse("nessun JSON qui, solo prosa"))
	defer srv.Close()

	client := oracle.NewClient(srv.URL, "test-model", "test-key")
	news, err := client.FetchNews(context.Background(), "28/08/2026")

	require.NoError(t, err)
	assert.Empty(t, news)
}

func TestAsk_StripsUnlockTag(t *testing.T) {
	srv := serveJSON(t, generateResponse("Benvenuto nel bazar. [APRI_BAZAR]"))
	defer srv.Close()

	client := oracle.NewClient(srv.URL, "test-model", "test-key")
	reply, err := client.Ask(context.Background(), "apri il bazar")

	require.NoError(t, err)
	assert.True(t, reply.UnlockBlackMarket)
	assert.Equal(t, "Benvenuto nel bazar.", reply.Reply)
	assert.NotContains(t, reply.Reply, "[")
}

func TestAsk_PlainReply(t *testing.T) {
	srv := serveJSON(t, generateResponse("Compra agnello, vendi seitan."))
	defer srv.Close()

	client := oracle.NewClient(srv.URL, "test-model", "test-key")
	reply, err := client.Ask(context.Background(), "consiglio?")

	require.NoError(t, err)
	assert.False(t, reply.UnlockBlackMarket)
	assert.Equal(t, "Compra agnello, vendi seitan.", reply.Reply)
}

func TestAsk_OfflineWithoutKey(t *testing.T) {
	client := oracle.NewClient("http://unused.test", "", "")
	reply, err := client.Ask(context.Background(), "ciao")
	require.NoError(t, err)
	assert.NotEmpty(t, reply.Reply)
	assert.False(t, reply.UnlockBlackMarket)
}
