package repository

import (
	"context"
	"time"

	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	// Create persiste la orden con sus líneas.
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la fila de la orden; usar dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id string, status entity.PurchaseOrderStatus, at time.Time) error
	// ReplaceLines reemplaza las líneas y el total de la orden.
	ReplaceLines(ctx context.Context, order *entity.PurchaseOrder) error
	// List lista órdenes; status vacío = todas.
	List(ctx context.Context, status entity.PurchaseOrderStatus) ([]*entity.PurchaseOrder, error)
	// ListOpenByArticles órdenes abiertas (PENDIENTE o ENVIADA) con líneas de alguno de los artículos.
	ListOpenByArticles(ctx context.Context, articleIDs []string) ([]*entity.PurchaseOrder, error)
	CountOpenByLink(ctx context.Context, linkID string) (int, error)
	CountOpenByArticle(ctx context.Context, articleID string) (int, error)
	CountOpenBySupplier(ctx context.Context, supplierID string) (int, error)
}
