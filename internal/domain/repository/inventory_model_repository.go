package repository

import (
	"context"
	"time"

	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

// InventoryModelRepository define el puerto de persistencia para InventoryModel (DIP).
type InventoryModelRepository interface {
	Create(ctx context.Context, model *entity.InventoryModel) error
	GetByID(ctx context.Context, id string) (*entity.InventoryModel, error)
	Update(ctx context.Context, model *entity.InventoryModel) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, onlyActive bool) ([]*entity.InventoryModel, error)
}
