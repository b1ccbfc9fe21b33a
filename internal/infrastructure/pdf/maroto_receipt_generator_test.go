package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
)

func TestRenderReceipt_GeneraPDF(t *testing.T) {
	g := NewMarotoReceiptGenerator("PakurMart")
	order := &entity.Order{
		ID:          "o1",
		UserID:      "U1",
		OrderNumber: "PM-1001",
		Status:      entity.OrderStatusConfirmed,
		Items: []entity.OrderItem{
			{ProductID: "p1", Name: "Leche entera 1 L", Price: decimal.RequireFromString("4.50"), Quantity: 2},
			{ProductID: "p2", Price: decimal.RequireFromString("1.25"), Quantity: 1},
		},
		Total:           decimal.RequireFromString("10.25"),
		DeliveryAddress: "Calle 1 #2-3",
		TimeSlot:        entity.TimeSlotMorning,
		CreatedAt:       time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	out, err := g.RenderReceipt(order)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestRenderReceipt_PedidoNil(t *testing.T) {
	_, err := NewMarotoReceiptGenerator("PakurMart").RenderReceipt(nil)
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "$0.00",
		"4.5":       "$4.50",
		"999.999":   "$1,000.00",
		"1234567.5": "$1,234,567.50",
		"-2500":     "-$2,500.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestTotalRows_AjusteSoloSiDifiere(t *testing.T) {
	order := &entity.Order{
		Items: []entity.OrderItem{{Price: decimal.NewFromInt(10), Quantity: 1}},
		Total: decimal.NewFromInt(10),
	}
	assert.Len(t, totalRows(order), 1)

	order.Total = decimal.NewFromInt(13)
	assert.Len(t, totalRows(order), 3, "productos + ajuste + total")
}
