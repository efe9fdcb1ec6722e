package inventory

import "github.com/shopspring/decimal"

// NeedsReplenishment indica si el stock dispara un pedido: estrictamente menor que el punto de pedido.
func NeedsReplenishment(stock, reorderPoint decimal.Decimal) bool {
	return stock.LessThan(reorderPoint)
}

// IsCritical indica si el stock quedó por debajo del stock de seguridad (listado de faltantes).
// Es un filtro independiente de NeedsReplenishment.
func IsCritical(stock, safetyStock decimal.Decimal) bool {
	return stock.LessThan(safetyStock)
}

// NeedsReplenishmentOpt aplica NeedsReplenishment cuando el punto de pedido está definido.
func NeedsReplenishmentOpt(stock decimal.Decimal, reorderPoint *decimal.Decimal) bool {
	if reorderPoint == nil {
		return false
	}
	return NeedsReplenishment(stock, *reorderPoint)
}

// IsCriticalOpt aplica IsCritical cuando el stock de seguridad está definido.
func IsCriticalOpt(stock decimal.Decimal, safetyStock *decimal.Decimal) bool {
	if safetyStock == nil {
		return false
	}
	return IsCritical(stock, *safetyStock)
}
