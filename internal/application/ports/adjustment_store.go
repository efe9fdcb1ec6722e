package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PendingAdjustment ajuste de inventario que quedó esperando confirmación.
type PendingAdjustment struct {
	ArticleID   string          `json:"articleId"`
	Stock       decimal.Decimal `json:"stock"`
	RequestedAt time.Time       `json:"requestedAt"`
}

// PendingAdjustmentStore guarda ajustes pendientes con vencimiento.
// Take consume el token: una segunda llamada con el mismo token devuelve (nil, nil).
type PendingAdjustmentStore interface {
	Save(ctx context.Context, token string, adj PendingAdjustment, ttl time.Duration) error
	Take(ctx context.Context, token string) (*PendingAdjustment, error)
}
