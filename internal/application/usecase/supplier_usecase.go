package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/application/ports"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
)

// SupplierUseCase casos de uso ABM de proveedores.
type SupplierUseCase struct {
	repo     repository.SupplierRepository
	txRunner ports.TxRunner
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, txRunner ports.TxRunner) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.NombreProveedor)
	if name == "" {
		return nil, domain.NewValidation("nombreProveedor", "es obligatorio")
	}
	now := time.Now()
	s := &entity.Supplier{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	out := dto.FromSupplier(s)
	return &out, nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromSupplier(s)
	return &out, nil
}

// Update renombra un proveedor vigente.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.NombreProveedor)
	if name == "" {
		return nil, domain.NewValidation("nombreProveedor", "es obligatorio")
	}
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if !s.IsActive() {
		return nil, domain.NewConflict(domain.CodeSupplierInactive, "el proveedor está dado de baja")
	}
	s.Name = name
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	out := dto.FromSupplier(s)
	return &out, nil
}

// Delete da de baja al proveedor y sus asignaciones. Se rechaza si es predeterminado de algún
// artículo vigente o si tiene órdenes de compra abiertas.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		s, err := r.Suppliers.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if !s.IsActive() {
			return domain.NewConflict(domain.CodeSupplierInactive, "el proveedor ya está dado de baja")
		}
		names, err := r.Links.ListDefaultArticleNames(ctx, id)
		if err != nil {
			return err
		}
		if len(names) > 0 {
			return domain.NewConflict(domain.CodeDefaultSupplierInUse,
				"el proveedor es predeterminado de: "+strings.Join(names, ", "))
		}
		open, err := r.Orders.CountOpenBySupplier(ctx, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return domain.NewConflict(domain.CodeOpenPurchaseOrders,
				"el proveedor tiene órdenes de compra pendientes o enviadas")
		}
		links, err := r.Links.List(ctx, true)
		if err != nil {
			return err
		}
		for _, l := range links {
			if l.SupplierID != id {
				continue
			}
			if err := r.Links.Deactivate(ctx, l.ID, now); err != nil {
				return err
			}
		}
		return r.Suppliers.SoftDelete(ctx, id, now)
	})
	if err == nil {
		log.Info().Str("supplier_id", id).Msg("proveedor dado de baja")
	}
	return err
}

// List lista proveedores; onlyActive excluye los dados de baja.
func (uc *SupplierUseCase) List(ctx context.Context, onlyActive bool) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.FromSupplier(s))
	}
	return out, nil
}
