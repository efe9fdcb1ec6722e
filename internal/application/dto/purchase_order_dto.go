package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewOrderLineRequest línea de POST /GenerarOrdenCompra/nuevaOrden.
// SubTotal es informativo: el servidor lo recalcula con el costo unitario de la asignación.
type NewOrderLineRequest struct {
	Cantidad            decimal.Decimal `json:"cantidad" validate:"gt=0"`
	SubTotal            decimal.Decimal `json:"subTotal"`
	ArticuloProveedorID string          `json:"articuloProveedorId" validate:"required"`
}

// NewOrderRequest body de POST /GenerarOrdenCompra/nuevaOrden.
type NewOrderRequest struct {
	Detalles     []NewOrderLineRequest `json:"detalles" validate:"required,min=1,dive"`
	Confirmacion bool                  `json:"confirmacion"`
}

// NewOrderResponse respuesta de nuevaOrden. Con Creada=false, OrdenesDeCompra son las órdenes
// abiertas que ya incluyen los artículos de NombresPedidos y se requiere confirmación.
type NewOrderResponse struct {
	Creada          bool                    `json:"creada"`
	OrdenesDeCompra []PurchaseOrderResponse `json:"ordenesDeCompra"`
	NombresPedidos  []string                `json:"nombresPedidos"`
}

// ModifyOrderLineRequest línea de ModificarOrdenCompra.
type ModifyOrderLineRequest struct {
	ArticuloProveedorID string          `json:"articuloProveedorId" validate:"required"`
	Cantidad            decimal.Decimal `json:"cantidad" validate:"gt=0"`
}

// ModifyOrderRequest body de POST /ModificarOrdenCompra/modificar.
type ModifyOrderRequest struct {
	ID       string                   `json:"id" validate:"required"`
	Detalles []ModifyOrderLineRequest `json:"detalles" validate:"required,min=1,dive"`
}

// PurchaseOrderLineResponse línea de una orden de compra.
type PurchaseOrderLineResponse struct {
	ID                  string          `json:"id"`
	ArticuloProveedorID string          `json:"articuloProveedorId"`
	IDArticulo          string          `json:"idArticulo"`
	NombreArticulo      string          `json:"nombreArticulo"`
	Cantidad            decimal.Decimal `json:"cantidad"`
	CostoUnitario       decimal.Decimal `json:"costoUnitario"`
	SubTotal            decimal.Decimal `json:"subTotal"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID              string                      `json:"id"`
	IDProveedor     string                      `json:"idProveedor"`
	NombreProveedor string                      `json:"nombreProveedor"`
	Estado          string                      `json:"estado"`
	Total           decimal.Decimal             `json:"total"`
	FhCreacion      time.Time                   `json:"fhCreacion"`
	Detalles        []PurchaseOrderLineResponse `json:"detalles"`
}
