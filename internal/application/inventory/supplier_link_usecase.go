package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/application/ports"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
)

// SupplierLinkUseCase administra las asignaciones artículo-proveedor.
// Toda escritura bloquea primero la fila del artículo (SELECT FOR UPDATE): así dos asignaciones
// concurrentes del mismo artículo se serializan y nunca quedan dos predeterminados activos.
type SupplierLinkUseCase struct {
	txRunner ports.TxRunner
	links    repository.SupplierLinkRepository
	params   inventory.Params
	now      func() time.Time
}

// NewSupplierLinkUseCase construye el caso de uso.
func NewSupplierLinkUseCase(txRunner ports.TxRunner, links repository.SupplierLinkRepository, params inventory.Params) *SupplierLinkUseCase {
	return &SupplierLinkUseCase{txRunner: txRunner, links: links, params: params, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *SupplierLinkUseCase) WithClock(now func() time.Time) *SupplierLinkUseCase {
	uc.now = now
	return uc
}

// linkParams campos editables comunes a asignar y modificar.
type linkParams struct {
	modelID      string
	orderingCost decimal.Decimal
	unitCost     decimal.Decimal
	leadTime     int
	isDefault    bool
	safetyStock  decimal.Decimal
	serviceLevel decimal.Decimal
	nextReview   *time.Time
	fixedTime    *int
}

func (p linkParams) validate() error {
	v := &domain.ValidationError{}
	if p.orderingCost.IsNegative() {
		v.Add("costoPedido", "no puede ser negativo")
	}
	if !p.unitCost.IsPositive() {
		v.Add("costoUnitario", "debe ser mayor a 0")
	}
	if p.leadTime < 0 {
		v.Add("demoraEntrega", "no puede ser negativa")
	}
	if p.safetyStock.IsNegative() {
		v.Add("stockSeguridad", "no puede ser negativo")
	}
	if p.serviceLevel.IsNegative() || p.serviceLevel.GreaterThan(decimal.NewFromInt(100)) {
		v.Add("nivelServicio", "debe estar entre 0 y 100")
	}
	if p.fixedTime != nil && *p.fixedTime <= 0 {
		v.Add("tiempoFijo", "debe ser mayor a 0")
	}
	return v.OrNil()
}

// Assign crea una asignación. Si se marca como predeterminada, desmarca la anterior en la misma transacción.
func (uc *SupplierLinkUseCase) Assign(ctx context.Context, in dto.AssignSupplierRequest) (*dto.SupplierLinkResponse, error) {
	p := linkParams{
		modelID:      in.ModeloInventarioID,
		orderingCost: in.CostoPedido,
		unitCost:     in.CostoUnitario,
		leadTime:     in.DemoraEntrega,
		isDefault:    in.IsPredeterminado,
		safetyStock:  in.StockSeguridad,
		serviceLevel: in.NivelServicio,
		nextReview:   in.ProximaRevision,
		fixedTime:    in.TiempoFijo,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	now := uc.now()
	var out dto.SupplierLinkResponse
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		article, err := lockActiveArticle(ctx, r, in.ArticuloID)
		if err != nil {
			return err
		}
		supplier, err := r.Suppliers.GetForUpdate(ctx, in.ProveedorID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}
		if !supplier.IsActive() {
			return domain.NewConflict(domain.CodeSupplierInactive, "el proveedor está dado de baja y no admite asignaciones")
		}
		model, err := activeModel(ctx, r, p.modelID)
		if err != nil {
			return err
		}
		dup, err := r.Links.FindActive(ctx, article.ID, supplier.ID, model.ID)
		if err != nil {
			return err
		}
		if dup != nil {
			return domain.NewConflict(domain.CodeDuplicateAssignment,
				"ya existe una asignación activa para el artículo, proveedor y modelo indicados")
		}

		link := &entity.SupplierLink{
			ID:           uuid.New().String(),
			ArticleID:    article.ID,
			SupplierID:   supplier.ID,
			SupplierName: supplier.Name,
			AssignedAt:   now,
		}
		if err := p.apply(link, model, now); err != nil {
			return err
		}
		if link.IsDefault {
			if err := r.Links.ClearDefault(ctx, article.ID, ""); err != nil {
				return err
			}
		}
		if err := r.Links.Create(ctx, link); err != nil {
			return err
		}
		if link.IsDefault {
			if err := uc.refreshReorderCache(ctx, r, article, link); err != nil {
				return err
			}
		}
		out = dto.FromSupplierLink(link)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("link_id", out.ID).Str("article_id", out.ArticuloID).
		Bool("default", out.IsPredeterminado).Msg("proveedor asignado")
	return &out, nil
}

// Modify cambia los parámetros de una asignación activa (no su artículo ni su proveedor).
func (uc *SupplierLinkUseCase) Modify(ctx context.Context, in dto.ModifySupplierLinkRequest) (*dto.SupplierLinkResponse, error) {
	p := linkParams{
		modelID:      in.ModeloInventarioID,
		orderingCost: in.CostoPedido,
		unitCost:     in.CostoUnitario,
		leadTime:     in.DemoraEntrega,
		isDefault:    in.IsPredeterminado,
		safetyStock:  in.StockSeguridad,
		serviceLevel: in.NivelServicio,
		nextReview:   in.ProximaRevision,
		fixedTime:    in.TiempoFijo,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	now := uc.now()
	var out dto.SupplierLinkResponse
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		current, err := r.Links.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		article, err := lockActiveArticle(ctx, r, current.ArticleID)
		if err != nil {
			return err
		}
		link, err := r.Links.GetForUpdate(ctx, in.ID)
		if err != nil {
			return err
		}
		if link == nil {
			return domain.ErrNotFound
		}
		if !link.IsActive() {
			return domain.NewConflict(domain.CodeLinkInactive, "la asignación está dada de baja")
		}
		model, err := activeModel(ctx, r, p.modelID)
		if err != nil {
			return err
		}
		if model.ID != link.ModelID {
			dup, err := r.Links.FindActive(ctx, link.ArticleID, link.SupplierID, model.ID)
			if err != nil {
				return err
			}
			if dup != nil && dup.ID != link.ID {
				return domain.NewConflict(domain.CodeDuplicateAssignment,
					"ya existe una asignación activa para el artículo, proveedor y modelo indicados")
			}
		}

		wasDefault := link.IsDefault
		if err := p.apply(link, model, now); err != nil {
			return err
		}
		if link.IsDefault {
			if err := r.Links.ClearDefault(ctx, link.ArticleID, link.ID); err != nil {
				return err
			}
		}
		if err := r.Links.Update(ctx, link); err != nil {
			return err
		}
		switch {
		case link.IsDefault:
			if err := uc.refreshReorderCache(ctx, r, article, link); err != nil {
				return err
			}
		case wasDefault:
			if err := r.Articles.UpdateReorderCache(ctx, article.ID, nil, nil); err != nil {
				return err
			}
		}
		out = dto.FromSupplierLink(link)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Eliminate da de baja una asignación. Se rechaza si tiene órdenes de compra abiertas;
// en ese caso la asignación sigue activa.
func (uc *SupplierLinkUseCase) Eliminate(ctx context.Context, id string) error {
	now := uc.now()
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		link, err := r.Links.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if link == nil {
			return domain.ErrNotFound
		}
		if !link.IsActive() {
			return domain.NewConflict(domain.CodeLinkInactive, "la asignación ya está dada de baja")
		}
		open, err := r.Orders.CountOpenByLink(ctx, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return domain.NewConflict(domain.CodeOpenPurchaseOrders,
				"la asignación tiene órdenes de compra pendientes o enviadas")
		}
		if err := r.Links.Deactivate(ctx, id, now); err != nil {
			return err
		}
		if link.IsDefault {
			return r.Articles.UpdateReorderCache(ctx, link.ArticleID, nil, nil)
		}
		return nil
	})
	if err == nil {
		log.Info().Str("link_id", id).Msg("asignación dada de baja")
	}
	return err
}

// GetByID obtiene una asignación.
func (uc *SupplierLinkUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierLinkResponse, error) {
	l, err := uc.links.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromSupplierLink(l)
	return &out, nil
}

// List lista asignaciones; articleID vacío = todas.
func (uc *SupplierLinkUseCase) List(ctx context.Context, articleID string, onlyActive bool) ([]dto.SupplierLinkResponse, error) {
	var (
		list []*entity.SupplierLink
		err  error
	)
	if articleID != "" {
		list, err = uc.links.ListByArticle(ctx, articleID, onlyActive)
	} else {
		list, err = uc.links.List(ctx, onlyActive)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierLinkResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.FromSupplierLink(l))
	}
	return out, nil
}

// apply copia los parámetros a la asignación resolviendo la política del modelo.
// Tiempo fijo exige tiempoFijo; la próxima revisión por defecto es now + tiempoFijo días.
func (p linkParams) apply(link *entity.SupplierLink, model *entity.InventoryModel, now time.Time) error {
	link.ModelID = model.ID
	link.ModelName = model.Name
	link.Policy = model.Policy()
	link.OrderingCost = p.orderingCost
	link.UnitCost = p.unitCost
	link.LeadTimeDays = p.leadTime
	link.IsDefault = p.isDefault
	link.SafetyStock = p.safetyStock
	link.ServiceLevel = p.serviceLevel

	if link.Policy != entity.PolicyFixedTime {
		link.FixedTimeDays = nil
		link.NextReviewDate = nil
		return nil
	}
	if p.fixedTime == nil {
		return domain.NewValidation("tiempoFijo", "es obligatorio para un modelo de tiempo fijo")
	}
	days := *p.fixedTime
	link.FixedTimeDays = &days
	next := now.AddDate(0, 0, days)
	if p.nextReview != nil {
		next = *p.nextReview
	}
	link.NextReviewDate = &next
	return nil
}

// refreshReorderCache recalcula la copia de punto de pedido y stock de seguridad del artículo
// desde su asignación predeterminada.
func (uc *SupplierLinkUseCase) refreshReorderCache(ctx context.Context, r ports.TxRepos, a *entity.Article, def *entity.SupplierLink) error {
	rp, ss := uc.params.ReorderCache(a, def)
	if err := r.Articles.UpdateReorderCache(ctx, a.ID, rp, ss); err != nil {
		return err
	}
	a.ReorderPoint, a.SafetyStock = rp, ss
	return nil
}

func lockActiveArticle(ctx context.Context, r ports.TxRepos, id string) (*entity.Article, error) {
	a, err := r.Articles.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if !a.IsActive() {
		return nil, domain.NewConflict(domain.CodeArticleInactive, "el artículo está dado de baja")
	}
	return a, nil
}

func activeModel(ctx context.Context, r ports.TxRepos, id string) (*entity.InventoryModel, error) {
	m, err := r.Models.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NewBusiness(domain.ErrModelNotConfigured, domain.CodeModelNotConfigured,
			"el modelo de inventario indicado no existe")
	}
	if !m.IsActive() {
		return nil, domain.NewConflict(domain.CodeModelInactive, "el modelo de inventario está dado de baja")
	}
	return m, nil
}
