package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/jhoicas/pakurmart-api/internal/application/dto"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
)

const (
	// maxRecommendations tope de productos sugeridos por respuesta.
	maxRecommendations = 10
	// maxHistoryOrders pedidos más recientes que se envían como historial.
	maxHistoryOrders = 20

	recommendationSystemPrompt = `Eres el asistente de compras de una tienda de víveres a domicilio.
Con el historial de compras del cliente, la franja horaria actual y el catálogo disponible,
sugiere los productos que probablemente quiera comprar ahora.
Devuelve ÚNICAMENTE un objeto JSON (sin markdown ni texto adicional) con esta estructura exacta:
{
  "recommendations": [
    {"productId": "<id exacto del catálogo>", "reason": "<motivo breve>", "score": <número entre 0.0 y 1.0>}
  ],
  "summary": "<una frase que resuma la sugerencia>"
}

Reglas:
- Usa solo productId que existan en el catálogo recibido.
- Máximo 10 recomendaciones, ordenadas de mayor a menor score.
- Ten en cuenta la franja horaria (morning, afternoon, evening, night).
- reason: máximo 120 caracteres, en el idioma de los nombres del catálogo.`
)

// recommendationPayload JSON que esperamos del modelo.
type recommendationPayload struct {
	Recommendations []struct {
		ProductID string  `json:"productId"`
		Reason    string  `json:"reason"`
		Score     float64 `json:"score"`
	} `json:"recommendations"`
	Summary string `json:"summary"`
}

type promptProduct struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CategoryID  string `json:"categoryId"`
	Price       string `json:"price"`
	Unit        string `json:"unit,omitempty"`
}

type promptItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name,omitempty"`
	Quantity  int    `json:"quantity"`
}

// buildUserPrompt serializa historial y catálogo en el mensaje del usuario.
func buildUserPrompt(input dto.RecommendationInput) (string, error) {
	history := input.PurchaseHistory
	if len(history) > maxHistoryOrders {
		history = history[:maxHistoryOrders]
	}
	orders := make([][]promptItem, 0, len(history))
	for _, items := range history {
		order := make([]promptItem, 0, len(items))
		for _, it := range items {
			order = append(order, promptItem{ProductID: it.ProductID, Name: it.Name, Quantity: it.Quantity})
		}
		orders = append(orders, order)
	}
	catalog := make([]promptProduct, 0, len(input.AvailableProducts))
	for _, p := range input.AvailableProducts {
		catalog = append(catalog, promptProduct{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			CategoryID:  p.CategoryID,
			Price:       p.Price.StringFixed(2),
			Unit:        p.Unit,
		})
	}

	historyJSON, err := json.Marshal(orders)
	if err != nil {
		return "", fmt.Errorf("AI: serializar historial: %w", err)
	}
	catalogJSON, err := json.Marshal(catalog)
	if err != nil {
		return "", fmt.Errorf("AI: serializar catálogo: %w", err)
	}
	return fmt.Sprintf("Franja horaria: %s\nHistorial de compras (pedidos, más reciente primero): %s\nCatálogo: %s",
		input.TimeSlot, historyJSON, catalogJSON), nil
}

// parseRecommendations interpreta la respuesta del modelo: descarta IDs que no están en el
// catálogo y duplicados, acota el score a [0, 1] y ordena de mayor a menor.
func parseRecommendations(rawText string, catalog []*entity.Product) (*dto.RecommendationResult, error) {
	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", rawText)
	}
	var payload recommendationPayload
	if err := json.Unmarshal([]byte(cleanJSON), &payload); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de recomendaciones: %w (JSON extraído: %s)", err, cleanJSON)
	}

	known := make(map[string]bool, len(catalog))
	for _, p := range catalog {
		known[p.ID] = true
	}
	seen := make(map[string]bool, len(payload.Recommendations))
	items := make([]entity.RecommendedItem, 0, len(payload.Recommendations))
	for _, r := range payload.Recommendations {
		id := strings.TrimSpace(r.ProductID)
		if !known[id] || seen[id] {
			continue
		}
		seen[id] = true
		items = append(items, entity.RecommendedItem{
			ProductID: id,
			Reason:    strings.TrimSpace(r.Reason),
			Score:     clampScore(r.Score),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Score > items[j].Score })
	if len(items) > maxRecommendations {
		items = items[:maxRecommendations]
	}
	return &dto.RecommendationResult{Items: items, Summary: strings.TrimSpace(payload.Summary)}, nil
}

func clampScore(s float64) float64 {
	if math.IsNaN(s) || s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
// Captura desde el primer '{' hasta el último '}'.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
