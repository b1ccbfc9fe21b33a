package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pakurmart-api/internal/application/dto"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func testInput() dto.RecommendationInput {
	return dto.RecommendationInput{
		UserID:   "U1",
		TimeSlot: entity.TimeSlotMorning,
		PurchaseHistory: [][]entity.OrderItem{
			{{ProductID: "p1", Name: "Milk", Quantity: 2}},
		},
		AvailableProducts: []*entity.Product{
			{ID: "p1", Name: "Milk", CategoryID: "c1", Price: decimal.RequireFromString("4.5")},
			{ID: "p2", Name: "Bread", CategoryID: "c2", Price: decimal.RequireFromString("2")},
		},
	}
}

const modelAnswer = `{"recommendations":[` +
	`{"productId":"p2","reason":"goes with milk","score":0.7},` +
	`{"productId":"ghost","reason":"not in catalog","score":0.99},` +
	`{"productId":"p1","reason":"bought often","score":1.4}],` +
	`"summary":"Breakfast basics"}`

// ──────────────────────────────────────────────────────────────────────────────
// Parseo
// ──────────────────────────────────────────────────────────────────────────────

func TestParseRecommendations_FiltraYOrdena(t *testing.T) {
	res, err := parseRecommendations(modelAnswer, testInput().AvailableProducts)
	require.NoError(t, err)
	require.Len(t, res.Items, 2, "el producto inexistente se descarta")
	assert.Equal(t, "p1", res.Items[0].ProductID)
	assert.Equal(t, 1.0, res.Items[0].Score, "score acotado a 1")
	assert.Equal(t, "p2", res.Items[1].ProductID)
	assert.Equal(t, "Breakfast basics", res.Summary)
}

func TestParseRecommendations_MarkdownYDuplicados(t *testing.T) {
	raw := "Aquí tienes:\n```json\n" +
		`{"recommendations":[{"productId":"p1","score":0.5},{"productId":"p1","score":0.9}]}` +
		"\n```"
	res, err := parseRecommendations(raw, testInput().AvailableProducts)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 0.5, res.Items[0].Score, "se conserva la primera aparición")
}

func TestParseRecommendations_SinJSON(t *testing.T) {
	_, err := parseRecommendations("no sé", testInput().AvailableProducts)
	assert.Error(t, err)
}

func TestBuildUserPrompt_IncluyeFranjaYCatalogo(t *testing.T) {
	prompt, err := buildUserPrompt(testInput())
	require.NoError(t, err)
	assert.Contains(t, prompt, "Franja horaria: morning")
	assert.Contains(t, prompt, `"id":"p2"`)
	assert.Contains(t, prompt, `"price":"4.50"`)
	assert.Contains(t, prompt, `"productId":"p1"`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Gemini
// ──────────────────────────────────────────────────────────────────────────────

func TestGeminiService_GenerateRecommendations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)
		require.Len(t, req.Contents, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Franja horaria: morning")

		resp := geminiResponse{}
		resp.Candidates = append(resp.Candidates, struct {
			Content geminiContent `json:"content"`
		}{Content: geminiContent{Parts: []geminiPart{{Text: modelAnswer}}}})
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	svc := NewGeminiService("k", "gemini-test")
	svc.baseURL = srv.URL

	res, err := svc.GenerateRecommendations(context.Background(), testInput())
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "p1", res.Items[0].ProductID)
}

func TestGeminiService_ErrorDeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"code":429,"message":"quota"}}`)
	}))
	defer srv.Close()

	svc := NewGeminiService("k", "gemini-test")
	svc.baseURL = srv.URL

	_, err := svc.GenerateRecommendations(context.Background(), testInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}

func TestGeminiService_SinAPIKey(t *testing.T) {
	_, err := NewGeminiService("", "m").GenerateRecommendations(context.Background(), testInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

// ──────────────────────────────────────────────────────────────────────────────
// Anthropic
// ──────────────────────────────────────────────────────────────────────────────

func TestAnthropicService_GenerateRecommendations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-test", req.Model)
		assert.True(t, strings.HasPrefix(req.System, "Eres el asistente de compras"))

		_, _ = io.WriteString(w, `{"content":[{"type":"text","text":`+
			mustJSON(t, "```json\n"+modelAnswer+"\n```")+`}]}`)
	}))
	defer srv.Close()

	svc := NewAnthropicService("k", "claude-test")
	svc.url = srv.URL

	res, err := svc.GenerateRecommendations(context.Background(), testInput())
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Breakfast basics", res.Summary)
}

func TestAnthropicService_ErrorDeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	}))
	defer srv.Close()

	svc := NewAnthropicService("k", "claude-test")
	svc.url = srv.URL

	_, err := svc.GenerateRecommendations(context.Background(), testInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication_error")
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
