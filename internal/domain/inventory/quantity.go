package inventory

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

// DefaultDaysPerYear base para convertir demanda anual a diaria.
const DefaultDaysPerYear = 365

var (
	two = decimal.NewFromInt(2)
	one = decimal.NewFromInt(1)
)

// Params parámetros del motor de cálculo.
type Params struct {
	DaysPerYear int
}

func (p Params) daysPerYear() decimal.Decimal {
	if p.DaysPerYear <= 0 {
		return decimal.NewFromInt(DefaultDaysPerYear)
	}
	return decimal.NewFromInt(int64(p.DaysPerYear))
}

// EOQ lote económico de Wilson: Q* = sqrt(2·D·S / H), redondeado hacia arriba a unidades.
// Sin demanda devuelve 0; sin costo de almacenamiento se pide la demanda anual completa.
func EOQ(annualDemand, orderingCost, holdingCost decimal.Decimal) decimal.Decimal {
	if !annualDemand.IsPositive() {
		return decimal.Zero
	}
	if !holdingCost.IsPositive() {
		return annualDemand.Ceil()
	}
	f, _ := two.Mul(annualDemand).Mul(orderingCost).Div(holdingCost).Float64()
	q := decimal.NewFromFloat(math.Sqrt(f)).Ceil()
	if q.LessThan(one) {
		return one
	}
	return q
}

// PeriodDemand demanda esperada en `days` días, redondeada hacia arriba.
func (p Params) PeriodDemand(annualDemand decimal.Decimal, days int) decimal.Decimal {
	if !annualDemand.IsPositive() || days <= 0 {
		return decimal.Zero
	}
	return annualDemand.Mul(decimal.NewFromInt(int64(days))).Div(p.daysPerYear()).Ceil()
}

// ReferenceQuantity cantidad de referencia usada por el CGI:
//   - LOTE_FIJO y OTRO: EOQ.
//   - TIEMPO_FIJO: demanda del intervalo de revisión (D·T/año).
func (p Params) ReferenceQuantity(a *entity.Article, l *entity.SupplierLink) (decimal.Decimal, error) {
	switch l.Policy {
	case entity.PolicyFixedLot, entity.PolicyOther:
		return EOQ(a.AnnualDemand, l.OrderingCost, a.StorageCost), nil
	case entity.PolicyFixedTime:
		q := p.PeriodDemand(a.AnnualDemand, fixedDays(l))
		if q.IsZero() && a.AnnualDemand.IsPositive() {
			q = one
		}
		return q, nil
	default:
		return decimal.Zero, errModelNotConfigured(l)
	}
}

// SuggestedQuantity cantidad a pedir para una asignación según su política:
//   - LOTE_FIJO y OTRO: EOQ.
//   - TIEMPO_FIJO: nivel objetivo D·(T+L)/año + SS menos el stock actual.
//
// El resultado se limita al inventario máximo del artículo y nunca baja de 1.
func (p Params) SuggestedQuantity(a *entity.Article, l *entity.SupplierLink) (decimal.Decimal, error) {
	var q decimal.Decimal
	switch l.Policy {
	case entity.PolicyFixedLot, entity.PolicyOther:
		q = EOQ(a.AnnualDemand, l.OrderingCost, a.StorageCost)
	case entity.PolicyFixedTime:
		q = p.targetLevel(a, l).Sub(a.Stock).Ceil()
	default:
		return decimal.Zero, errModelNotConfigured(l)
	}
	if a.MaxInventory.IsPositive() {
		room := a.MaxInventory.Sub(a.Stock)
		if q.GreaterThan(room) {
			q = room
		}
	}
	if q.LessThan(one) {
		q = one
	}
	return q, nil
}

// ReorderPoint punto de pedido que corresponde a la asignación predeterminada.
// LOTE_FIJO: d·L + SS. TIEMPO_FIJO: SS (la revisión se dispara por fecha). OTRO: sin punto (nil).
func (p Params) ReorderPoint(a *entity.Article, l *entity.SupplierLink) *decimal.Decimal {
	switch l.Policy {
	case entity.PolicyFixedLot:
		rp := a.AnnualDemand.Mul(decimal.NewFromInt(int64(l.LeadTimeDays))).
			Div(p.daysPerYear()).Add(l.SafetyStock).Ceil()
		return &rp
	case entity.PolicyFixedTime:
		rp := l.SafetyStock
		return &rp
	default:
		return nil
	}
}

// OrderUpTo cantidad que lleva el stock hasta el nivel objetivo de una asignación de tiempo fijo,
// limitada al inventario máximo. A diferencia de SuggestedQuantity no se eleva a 1: si el stock
// ya alcanza el objetivo devuelve 0 y la revisión no debe generar orden.
func (p Params) OrderUpTo(a *entity.Article, l *entity.SupplierLink) (decimal.Decimal, error) {
	if l.Policy != entity.PolicyFixedTime {
		return decimal.Zero, errModelNotConfigured(l)
	}
	q := p.targetLevel(a, l).Sub(a.Stock).Ceil()
	if a.MaxInventory.IsPositive() {
		room := a.MaxInventory.Sub(a.Stock)
		if q.GreaterThan(room) {
			q = room
		}
	}
	if q.IsNegative() {
		return decimal.Zero, nil
	}
	return q, nil
}

// targetLevel nivel objetivo de tiempo fijo: D·(T+L)/año + SS.
func (p Params) targetLevel(a *entity.Article, l *entity.SupplierLink) decimal.Decimal {
	return p.PeriodDemand(a.AnnualDemand, fixedDays(l)+l.LeadTimeDays).Add(l.SafetyStock)
}

// ReorderCache punto de pedido y stock de seguridad que el artículo guarda de su asignación
// predeterminada. Con política OTRO se conserva el punto de pedido vigente del artículo.
func (p Params) ReorderCache(a *entity.Article, def *entity.SupplierLink) (rp, ss *decimal.Decimal) {
	rp = p.ReorderPoint(a, def)
	if rp == nil {
		rp = a.ReorderPoint
	}
	safety := def.SafetyStock
	return rp, &safety
}

func fixedDays(l *entity.SupplierLink) int {
	if l.FixedTimeDays == nil {
		return 0
	}
	return *l.FixedTimeDays
}
