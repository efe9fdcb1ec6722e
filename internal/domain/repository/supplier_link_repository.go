package repository

import (
	"context"
	"time"

	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

// SupplierLinkRepository define el puerto de persistencia para las asignaciones artículo-proveedor.
// Las lecturas devuelven la asignación con SupplierName, ModelName y Policy ya resueltos;
// si el modelo no existe Policy queda en PolicyUnknown.
type SupplierLinkRepository interface {
	Create(ctx context.Context, link *entity.SupplierLink) error
	GetByID(ctx context.Context, id string) (*entity.SupplierLink, error)
	GetForUpdate(ctx context.Context, id string) (*entity.SupplierLink, error)
	Update(ctx context.Context, link *entity.SupplierLink) error
	Deactivate(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, onlyActive bool) ([]*entity.SupplierLink, error)
	ListByArticle(ctx context.Context, articleID string, onlyActive bool) ([]*entity.SupplierLink, error)
	// ClearDefault desmarca el predeterminado de las asignaciones activas del artículo salvo exceptID.
	ClearDefault(ctx context.Context, articleID, exceptID string) error
	// FindActive busca una asignación activa para la terna artículo+proveedor+modelo.
	FindActive(ctx context.Context, articleID, supplierID, modelID string) (*entity.SupplierLink, error)
	CountActiveByModel(ctx context.Context, modelID string) (int, error)
	// ListDefaultArticleNames nombres de artículos vigentes cuyo predeterminado es el proveedor.
	ListDefaultArticleNames(ctx context.Context, supplierID string) ([]string, error)
	// ListDueReviews asignaciones activas de tiempo fijo con revisión vencida a `now`.
	ListDueReviews(ctx context.Context, now time.Time) ([]*entity.SupplierLink, error)
	UpdateNextReview(ctx context.Context, id string, next time.Time) error
}
