package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentArticleDTO datos de un artículo para la pantalla de ajuste de inventario.
type AdjustmentArticleDTO struct {
	ID                 string           `json:"id"`
	Nombre             string           `json:"nombre"`
	Stock              decimal.Decimal  `json:"stock"`
	PuntoPedido        *decimal.Decimal `json:"puntoPedido"`
	StockSeguridad     *decimal.Decimal `json:"stockSeguridad"`
	NecesitaReposicion bool             `json:"necesitaReposicion"`
	Critico            bool             `json:"critico"`
}

// AdjustmentRequestResponse respuesta de POST /AjustarInventario/solicitar.
// Pendiente=true indica que el ajuste quedó a la espera de confirmación con Token.
type AdjustmentRequestResponse struct {
	RequiereOrdenCompra bool       `json:"requiereOrdenCompra"`
	Pendiente           bool       `json:"pendiente"`
	Token               string     `json:"token,omitempty"`
	VenceEn             *time.Time `json:"venceEn,omitempty"`
}

// CGIRowDTO fila del cálculo de CGI por proveedor.
type CGIRowDTO struct {
	IDArticuloProveedor string          `json:"idArticuloProveedor"`
	IDProveedor         string          `json:"idProveedor"`
	NombreProveedor     string          `json:"nombreProveedor"`
	NombreTipoModelo    string          `json:"nombreTipoModelo"`
	CantidadReferencia  decimal.Decimal `json:"cantidadReferencia"`
	CostoCompra         decimal.Decimal `json:"costoCompra"`
	CostoPedido         decimal.Decimal `json:"costoPedido"`
	CostoAlmacenamiento decimal.Decimal `json:"costoAlmacenamiento"`
	CGI                 decimal.Decimal `json:"cgi"`
	Predeterminado      bool            `json:"predeterminado"`
	Minimo              bool            `json:"minimo"`
}

// CGIResponse respuesta de GET /CalcularCGI/calculo.
// Empatados lista las asignaciones que comparten el CGI mínimo cuando hay más de una.
type CGIResponse struct {
	NombreArticulo            string      `json:"nombreArticulo"`
	DatosCGI                  []CGIRowDTO `json:"datosCGI"`
	IDArticuloProveedorMinimo string      `json:"idArticuloProveedorMinimo,omitempty"`
	IDArticuloProveedorPredet string      `json:"idArticuloProveedorPredeterminado,omitempty"`
	Empatados                 []string    `json:"empatados,omitempty"`
}

// CandidateSupplierDTO proveedor candidato para una línea de orden de compra.
type CandidateSupplierDTO struct {
	ArticuloProveedorID string          `json:"articuloProveedorId"`
	IDProveedor         string          `json:"idProveedor"`
	NombreProveedor     string          `json:"nombreProveedor"`
	NombreTipoModelo    string          `json:"nombreTipoModelo"`
	CostoUnitario       decimal.Decimal `json:"costoUnitario"`
	CostoPedido         decimal.Decimal `json:"costoPedido"`
	Predeterminado      bool            `json:"predeterminado"`
}

// OrderSuggestionDTO respuesta de GET /GenerarOrdenCompra/sugerirOrden.
// Si se pide una asignación concreta, Seleccion trae la cantidad que le corresponde.
type OrderSuggestionDTO struct {
	IDArticulo                     string                 `json:"idArticulo"`
	NombreArticulo                 string                 `json:"nombreArticulo"`
	Proveedores                    []CandidateSupplierDTO `json:"proveedores"`
	ProveedorPredeterminadoID      string                 `json:"proveedorPredeterminadoId,omitempty"`
	ArticuloProveedorPredeterminID string                 `json:"articuloProveedorPredeterminadoId,omitempty"`
	CantidadPredeterminada         decimal.Decimal        `json:"cantidadPredeterminada"`
	Estado                         string                 `json:"estado"`
	Seleccion                      *SelectionDTO          `json:"seleccion,omitempty"`
}

// SelectionDTO cantidad para la asignación elegida.
type SelectionDTO struct {
	ArticuloProveedorID string          `json:"articuloProveedorId"`
	Cantidad            decimal.Decimal `json:"cantidad"`
}

// PendingReviewDTO asignación de tiempo fijo con revisión vencida. CantidadSugerida 0 indica que
// el stock ya alcanza el nivel objetivo: procesarla solo adelanta la fecha.
type PendingReviewDTO struct {
	ArticuloProveedorID string          `json:"articuloProveedorId"`
	IDArticulo          string          `json:"idArticulo"`
	NombreArticulo      string          `json:"nombreArticulo"`
	NombreProveedor     string          `json:"nombreProveedor"`
	ProximaRevision     time.Time       `json:"proximaRevision"`
	TiempoFijo          int             `json:"tiempoFijo"`
	Stock               decimal.Decimal `json:"stock"`
	CantidadSugerida    decimal.Decimal `json:"cantidadSugerida"`
}

// ReviewResultDTO resultado de procesar una revisión periódica. OrdenDeCompra es nil cuando el
// stock ya alcanzaba el nivel objetivo.
type ReviewResultDTO struct {
	ArticuloProveedorID string                 `json:"articuloProveedorId"`
	ProximaRevision     time.Time              `json:"proximaRevision"`
	OrdenDeCompra       *PurchaseOrderResponse `json:"ordenDeCompra,omitempty"`
}
