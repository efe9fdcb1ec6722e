package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

// ArticleRepository define el puerto de persistencia para Article (DIP).
// Los Get devuelven (nil, nil) cuando el registro no existe.
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE); usar dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Article, error)
	Update(ctx context.Context, article *entity.Article) error
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
	// UpdateReorderCache actualiza la copia desnormalizada de punto de pedido y stock de seguridad.
	UpdateReorderCache(ctx context.Context, id string, reorderPoint, safetyStock *decimal.Decimal) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, onlyActive bool) ([]*entity.Article, error)
	// ListBelowReorderPoint artículos vigentes con stock < punto de pedido.
	ListBelowReorderPoint(ctx context.Context) ([]*entity.Article, error)
	// ListBelowSafetyStock artículos vigentes con stock < stock de seguridad.
	ListBelowSafetyStock(ctx context.Context) ([]*entity.Article, error)
}
