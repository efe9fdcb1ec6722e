package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article representa un artículo del inventario.
// ReorderPoint y SafetyStock son una copia desnormalizada calculada desde la asignación
// predeterminada (la asignación es la fuente de verdad del stock de seguridad).
type Article struct {
	ID           string
	Name         string
	Description  string
	UnitPrice    decimal.Decimal // precio de venta
	StorageCost  decimal.Decimal // costo de almacenamiento anual por unidad
	Stock        decimal.Decimal
	MaxInventory decimal.Decimal
	AnnualDemand decimal.Decimal // unidades por año
	ReorderPoint *decimal.Decimal
	SafetyStock  *decimal.Decimal
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el artículo no fue dado de baja.
func (a *Article) IsActive() bool { return a.DeletedAt == nil }
