package ports

import "github.com/jhoicas/reposicion-api/internal/domain/entity"

// PurchaseOrderRenderer genera el documento imprimible de una orden de compra.
type PurchaseOrderRenderer interface {
	Render(order *entity.PurchaseOrder) ([]byte, error)
}
