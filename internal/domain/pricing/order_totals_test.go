package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/internal/domain/pricing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestItemsTotal(t *testing.T) {
	items := []entity.OrderItem{
		{ProductID: "p1", Price: d("4.50"), Quantity: 2},
		{ProductID: "p2", Price: d("0.10"), Quantity: 3},
		{ProductID: "p3", Price: d("99"), Quantity: 0},
	}
	assert.True(t, d("9.30").Equal(pricing.ItemsTotal(items)), "got %s", pricing.ItemsTotal(items))
	assert.True(t, pricing.ItemsTotal(nil).IsZero())
}

func TestAdjustment(t *testing.T) {
	o := &entity.Order{
		Items: []entity.OrderItem{{Price: d("10"), Quantity: 1}},
		Total: d("13.5"),
	}
	assert.True(t, d("3.5").Equal(pricing.Adjustment(o)), "domicilio")

	o.Total = d("8")
	assert.True(t, d("-2").Equal(pricing.Adjustment(o)), "descuento")

	o.Total = d("10")
	assert.True(t, pricing.Adjustment(o).IsZero())
}
