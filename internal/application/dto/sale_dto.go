package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea de venta.
type SaleLineRequest struct {
	ArticuloID string          `json:"articuloId" validate:"required"`
	Cantidad   decimal.Decimal `json:"cantidad" validate:"gt=0"`
}

// CreateSaleRequest body de POST /ABMVenta/crear.
type CreateSaleRequest struct {
	Detalles []SaleLineRequest `json:"detalles" validate:"required,min=1,dive"`
}

// SaleLineResponse línea de venta registrada.
type SaleLineResponse struct {
	ID             string          `json:"id"`
	IDArticulo     string          `json:"idArticulo"`
	NombreArticulo string          `json:"nombreArticulo"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	SubTotal       decimal.Decimal `json:"subTotal"`
}

// SaleResponse salida de una venta. ArticulosAReponer lista los artículos que quedaron
// bajo su punto de pedido; OrdenesGeneradas las órdenes creadas automáticamente.
type SaleResponse struct {
	ID                string                  `json:"id"`
	Total             decimal.Decimal         `json:"total"`
	FhVenta           time.Time               `json:"fhVenta"`
	Detalles          []SaleLineResponse      `json:"detalles"`
	ArticulosAReponer []string                `json:"articulosAReponer,omitempty"`
	OrdenesGeneradas  []PurchaseOrderResponse `json:"ordenesGeneradas,omitempty"`
}
