package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/application/ports"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
)

// InventoryModelUseCase casos de uso ABM de modelos de inventario.
type InventoryModelUseCase struct {
	repo     repository.InventoryModelRepository
	txRunner ports.TxRunner
}

// NewInventoryModelUseCase construye el caso de uso.
func NewInventoryModelUseCase(repo repository.InventoryModelRepository, txRunner ports.TxRunner) *InventoryModelUseCase {
	return &InventoryModelUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un modelo de inventario.
func (uc *InventoryModelUseCase) Create(ctx context.Context, in dto.InventoryModelRequest) (*dto.InventoryModelResponse, error) {
	name := strings.TrimSpace(in.NombreMI)
	if name == "" {
		return nil, domain.NewValidation("nombreMI", "es obligatorio")
	}
	now := time.Now()
	m := &entity.InventoryModel{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	out := dto.FromInventoryModel(m)
	return &out, nil
}

// GetByID obtiene un modelo de inventario.
func (uc *InventoryModelUseCase) GetByID(ctx context.Context, id string) (*dto.InventoryModelResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromInventoryModel(m)
	return &out, nil
}

// Update renombra un modelo vigente. Cambiar el nombre puede cambiar la política resuelta,
// por eso se rechaza si hay asignaciones activas que lo usan.
func (uc *InventoryModelUseCase) Update(ctx context.Context, id string, in dto.InventoryModelRequest) (*dto.InventoryModelResponse, error) {
	name := strings.TrimSpace(in.NombreMI)
	if name == "" {
		return nil, domain.NewValidation("nombreMI", "es obligatorio")
	}
	var out dto.InventoryModelResponse
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		m, err := r.Models.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if !m.IsActive() {
			return domain.NewConflict(domain.CodeModelInactive, "el modelo de inventario está dado de baja")
		}
		if entity.ResolvePolicy(name) != m.Policy() {
			n, err := r.Links.CountActiveByModel(ctx, id)
			if err != nil {
				return err
			}
			if n > 0 {
				return domain.NewConflict(domain.CodeModelInUse,
					"el cambio de nombre altera el tipo de modelo y hay asignaciones activas que lo usan")
			}
		}
		m.Name = name
		m.UpdatedAt = time.Now()
		if err := r.Models.Update(ctx, m); err != nil {
			return err
		}
		out = dto.FromInventoryModel(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete da de baja un modelo sin asignaciones activas.
func (uc *InventoryModelUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		m, err := r.Models.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if !m.IsActive() {
			return domain.NewConflict(domain.CodeModelInactive, "el modelo de inventario ya está dado de baja")
		}
		n, err := r.Links.CountActiveByModel(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.NewConflict(domain.CodeModelInUse, "el modelo de inventario tiene asignaciones activas")
		}
		return r.Models.SoftDelete(ctx, id, time.Now())
	})
}

// List lista modelos de inventario; onlyActive excluye los dados de baja.
func (uc *InventoryModelUseCase) List(ctx context.Context, onlyActive bool) ([]dto.InventoryModelResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryModelResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.FromInventoryModel(m))
	}
	return out, nil
}
