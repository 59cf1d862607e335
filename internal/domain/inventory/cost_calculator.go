package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado tras una recepción de mercadería (servicio de dominio).
// NuevoCosto = ((stock * costoActual) + (cantEntrada * costoEntrada)) / (stock + cantEntrada)
// El stock negativo se trata como cero: un ajuste manual no debe distorsionar el costo.
func WeightedAverageCost(stock int, currentCost decimal.Decimal, inQty int, inCost decimal.Decimal) decimal.Decimal {
	if stock < 0 {
		stock = 0
	}
	sum := stock + inQty
	if sum <= 0 {
		return currentCost
	}
	num := decimal.NewFromInt(int64(stock)).Mul(currentCost).
		Add(decimal.NewFromInt(int64(inQty)).Mul(inCost))
	return num.Div(decimal.NewFromInt(int64(sum))).Round(2)
}
