package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArticleRequest entrada para crear un artículo.
type ArticleRequest struct {
	Nombre                string          `json:"nombre" validate:"required,min=1,max=200"`
	DescripcionArt        string          `json:"descripcionArt" validate:"max=500"`
	PrecioUnitario        decimal.Decimal `json:"precioUnitario" validate:"gt=0"`
	CostoAlmacenamiento   decimal.Decimal `json:"costoAlmacenamiento" validate:"gte=0"`
	Stock                 decimal.Decimal `json:"stock" validate:"gte=0"`
	InventarioMaxArticulo decimal.Decimal `json:"inventarioMaxArticulo" validate:"gt=0"`
	DemandaArticulo       decimal.Decimal `json:"demandaArticulo" validate:"gte=0"`
}

// UpdateArticleRequest entrada para modificar un artículo. El stock se modifica por ajuste de inventario.
type UpdateArticleRequest struct {
	ID                    string          `json:"id" validate:"required"`
	Nombre                string          `json:"nombre" validate:"required,min=1,max=200"`
	DescripcionArt        string          `json:"descripcionArt" validate:"max=500"`
	PrecioUnitario        decimal.Decimal `json:"precioUnitario" validate:"gt=0"`
	CostoAlmacenamiento   decimal.Decimal `json:"costoAlmacenamiento" validate:"gte=0"`
	InventarioMaxArticulo decimal.Decimal `json:"inventarioMaxArticulo" validate:"gt=0"`
	DemandaArticulo       decimal.Decimal `json:"demandaArticulo" validate:"gte=0"`
}

// ArticleResponse salida de un artículo.
type ArticleResponse struct {
	ID                    string           `json:"id"`
	Nombre                string           `json:"nombre"`
	DescripcionArt        string           `json:"descripcionArt"`
	PrecioUnitario        decimal.Decimal  `json:"precioUnitario"`
	CostoAlmacenamiento   decimal.Decimal  `json:"costoAlmacenamiento"`
	Stock                 decimal.Decimal  `json:"stock"`
	InventarioMaxArticulo decimal.Decimal  `json:"inventarioMaxArticulo"`
	DemandaArticulo       decimal.Decimal  `json:"demandaArticulo"`
	PuntoPedido           *decimal.Decimal `json:"puntoPedido"`
	StockSeguridad        *decimal.Decimal `json:"stockSeguridad"`
	FhBajaArticulo        *time.Time       `json:"fhBajaArticulo"`
}
