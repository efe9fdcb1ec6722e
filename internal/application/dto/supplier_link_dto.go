package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssignSupplierRequest body para POST /asignarProveedor/asignar.
// TiempoFijo es obligatorio cuando el modelo es de tiempo fijo; ProximaRevision, si falta,
// se calcula como fecha de asignación + TiempoFijo días.
type AssignSupplierRequest struct {
	ArticuloID         string          `json:"articuloId" validate:"required"`
	ProveedorID        string          `json:"proveedorId" validate:"required"`
	ModeloInventarioID string          `json:"modeloInventarioId" validate:"required"`
	CostoPedido        decimal.Decimal `json:"costoPedido" validate:"gte=0"`
	CostoUnitario      decimal.Decimal `json:"costoUnitario" validate:"gt=0"`
	DemoraEntrega      int             `json:"demoraEntrega" validate:"gte=0"`
	IsPredeterminado   bool            `json:"isPredeterminado"`
	StockSeguridad     decimal.Decimal `json:"stockSeguridad" validate:"gte=0"`
	NivelServicio      decimal.Decimal `json:"nivelServicio" validate:"gte=0,lte=100"`
	ProximaRevision    *time.Time      `json:"proximaRevision"`
	TiempoFijo         *int            `json:"tiempoFijo" validate:"omitempty,gt=0"`
}

// ModifySupplierLinkRequest body para POST /asignarProveedor/modificar.
// Artículo y proveedor forman la identidad de la asignación y no se modifican.
type ModifySupplierLinkRequest struct {
	ID                 string          `json:"id" validate:"required"`
	ModeloInventarioID string          `json:"modeloInventarioId" validate:"required"`
	CostoPedido        decimal.Decimal `json:"costoPedido" validate:"gte=0"`
	CostoUnitario      decimal.Decimal `json:"costoUnitario" validate:"gt=0"`
	DemoraEntrega      int             `json:"demoraEntrega" validate:"gte=0"`
	IsPredeterminado   bool            `json:"isPredeterminado"`
	StockSeguridad     decimal.Decimal `json:"stockSeguridad" validate:"gte=0"`
	NivelServicio      decimal.Decimal `json:"nivelServicio" validate:"gte=0,lte=100"`
	ProximaRevision    *time.Time      `json:"proximaRevision"`
	TiempoFijo         *int            `json:"tiempoFijo" validate:"omitempty,gt=0"`
}

// SupplierLinkResponse salida de una asignación artículo-proveedor.
type SupplierLinkResponse struct {
	ID                     string          `json:"id"`
	ArticuloID             string          `json:"articuloId"`
	ProveedorID            string          `json:"proveedorId"`
	NombreProveedor        string          `json:"nombreProveedor"`
	ModeloInventarioID     string          `json:"modeloInventarioId"`
	NombreModeloInventario string          `json:"nombreModeloInventario"`
	TipoModelo             string          `json:"tipoModelo"`
	CostoPedido            decimal.Decimal `json:"costoPedido"`
	CostoUnitario          decimal.Decimal `json:"costoUnitario"`
	DemoraEntrega          int             `json:"demoraEntrega"`
	IsPredeterminado       bool            `json:"isPredeterminado"`
	StockSeguridad         decimal.Decimal `json:"stockSeguridad"`
	NivelServicio          decimal.Decimal `json:"nivelServicio"`
	ProximaRevision        *time.Time      `json:"proximaRevision"`
	TiempoFijo             *int            `json:"tiempoFijo"`
	FhAsignacion           time.Time       `json:"fhAsignacion"`
	FhBaja                 *time.Time      `json:"fhBaja"`
}
