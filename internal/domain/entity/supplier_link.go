package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierLink es la asignación de un proveedor a un artículo bajo un modelo de inventario
// (articulo_proveedor). Policy se resuelve una sola vez al leer el modelo asociado.
type SupplierLink struct {
	ID             string
	ArticleID      string
	SupplierID     string
	ModelID        string
	SupplierName   string
	ModelName      string
	Policy         Policy
	OrderingCost   decimal.Decimal // costo por pedido emitido
	UnitCost       decimal.Decimal
	LeadTimeDays   int
	IsDefault      bool
	SafetyStock    decimal.Decimal
	ServiceLevel   decimal.Decimal // 0..100
	NextReviewDate *time.Time      // solo TIEMPO_FIJO
	FixedTimeDays  *int            // solo TIEMPO_FIJO
	AssignedAt     time.Time
	DeactivatedAt  *time.Time
}

// IsActive indica si la asignación no fue dada de baja.
func (l *SupplierLink) IsActive() bool { return l.DeactivatedAt == nil }

// ReviewDue indica si una asignación de tiempo fijo tiene la revisión vencida a la fecha dada.
func (l *SupplierLink) ReviewDue(now time.Time) bool {
	if l.Policy != PolicyFixedTime || l.NextReviewDate == nil {
		return false
	}
	return !l.NextReviewDate.After(now)
}
