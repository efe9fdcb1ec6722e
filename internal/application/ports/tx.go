package ports

import (
	"context"

	"github.com/jhoicas/reposicion-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Articles  repository.ArticleRepository
	Suppliers repository.SupplierRepository
	Models    repository.InventoryModelRepository
	Links     repository.SupplierLinkRepository
	Orders    repository.PurchaseOrderRepository
	Sales     repository.SaleRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD. Si fn devuelve error se hace Rollback,
// si no Commit. Las guardas de negocio y la escritura que protegen van en el mismo fn.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
