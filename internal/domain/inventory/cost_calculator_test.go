package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/temucosoft-retail/internal/domain/inventory"
)

func TestWeightedAverageCost(t *testing.T) {
	got := inventory.WeightedAverageCost(10, decimal.NewFromInt(100), 10, decimal.NewFromInt(200))
	assert.True(t, decimal.NewFromInt(150).Equal(got), got.String())
}

func TestWeightedAverageCost_SinStockPrevio(t *testing.T) {
	got := inventory.WeightedAverageCost(0, decimal.Zero, 5, decimal.NewFromInt(990))
	assert.True(t, decimal.NewFromInt(990).Equal(got))
}

func TestWeightedAverageCost_StockNegativoCuentaComoCero(t *testing.T) {
	got := inventory.WeightedAverageCost(-3, decimal.NewFromInt(500), 2, decimal.NewFromInt(700))
	assert.True(t, decimal.NewFromInt(700).Equal(got))
}

func TestWeightedAverageCost_Redondeo(t *testing.T) {
	got := inventory.WeightedAverageCost(1, decimal.NewFromInt(10), 2, decimal.NewFromInt(11))
	assert.Equal(t, "10.67", got.StringFixed(2))
}
