package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta de artículos; descuenta stock al registrarse.
type Sale struct {
	ID        string
	Total     decimal.Decimal
	Lines     []SaleLine
	CreatedAt time.Time
}

// SaleLine línea de venta al precio unitario vigente del artículo.
type SaleLine struct {
	ID          string
	SaleID      string
	ArticleID   string
	ArticleName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	SubTotal    decimal.Decimal
}
