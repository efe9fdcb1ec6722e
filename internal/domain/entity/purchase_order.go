package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus estado de una orden de compra.
type PurchaseOrderStatus string

const (
	PurchaseOrderPending   PurchaseOrderStatus = "PENDIENTE"
	PurchaseOrderSent      PurchaseOrderStatus = "ENVIADA"
	PurchaseOrderFinalized PurchaseOrderStatus = "FINALIZADA"
	PurchaseOrderCancelled PurchaseOrderStatus = "CANCELADA"
)

// IsValid indica si el estado es uno de los conocidos.
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderPending, PurchaseOrderSent, PurchaseOrderFinalized, PurchaseOrderCancelled:
		return true
	}
	return false
}

// CanTransitionTo: PENDIENTE → ENVIADA → FINALIZADA; CANCELADA solo desde PENDIENTE.
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderPending:
		return target == PurchaseOrderSent || target == PurchaseOrderCancelled
	case PurchaseOrderSent:
		return target == PurchaseOrderFinalized
	default:
		return false // estados terminales
	}
}

// IsOpen indica si la orden todavía puede recibir mercadería (bloquea bajas).
func (s PurchaseOrderStatus) IsOpen() bool {
	return s == PurchaseOrderPending || s == PurchaseOrderSent
}

// PurchaseOrder orden de compra a un único proveedor.
type PurchaseOrder struct {
	ID           string
	SupplierID   string
	SupplierName string
	Status       PurchaseOrderStatus
	Total        decimal.Decimal
	Lines        []PurchaseOrderLine
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PurchaseOrderLine línea de una orden; referencia la asignación artículo-proveedor.
type PurchaseOrderLine struct {
	ID             string
	OrderID        string
	SupplierLinkID string
	ArticleID      string
	ArticleName    string
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal
	SubTotal       decimal.Decimal // Quantity * UnitCost
}

// Recalculate recalcula subtotales y total de la orden.
func (o *PurchaseOrder) Recalculate() {
	total := decimal.Zero
	for i := range o.Lines {
		o.Lines[i].SubTotal = o.Lines[i].Quantity.Mul(o.Lines[i].UnitCost).Round(2)
		total = total.Add(o.Lines[i].SubTotal)
	}
	o.Total = total
}
