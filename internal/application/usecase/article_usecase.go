package usecase

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

// ArticleUseCase casos de uso ABM de artículos. El stock se modifica por ajuste, venta o recepción.
type ArticleUseCase struct {
	repo     repository.ArticleRepository
	txRunner ports.TxRunner
	params   inventory.Params
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(repo repository.ArticleRepository, txRunner ports.TxRunner, params inventory.Params) *ArticleUseCase {
	return &ArticleUseCase{repo: repo, txRunner: txRunner, params: params}
}

// Create crea un artículo. Punto de pedido y stock de seguridad quedan vacíos hasta asignar un predeterminado.
func (uc *ArticleUseCase) Create(ctx context.Context, in dto.ArticleRequest) (*dto.ArticleResponse, error) {
	if err := validateArticle(in.Nombre, in.PrecioUnitario, in.InventarioMaxArticulo, in.CostoAlmacenamiento, in.DemandaArticulo).
		checkStock(in.Stock, in.InventarioMaxArticulo).OrNil(); err != nil {
		return nil, err
	}
	now := time.Now()
	a := &entity.Article{
		ID:           uuid.New().String(),
		Name:         in.Nombre,
		Description:  in.DescripcionArt,
		UnitPrice:    in.PrecioUnitario,
		StorageCost:  in.CostoAlmacenamiento,
		Stock:        in.Stock,
		MaxInventory: in.InventarioMaxArticulo,
		AnnualDemand: in.DemandaArticulo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	out := dto.FromArticle(a)
	return &out, nil
}

// GetByID obtiene un artículo (vigente o no).
func (uc *ArticleUseCase) GetByID(ctx context.Context, id string) (*dto.ArticleResponse, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromArticle(a)
	return &out, nil
}

// Update modifica los datos descriptivos y de costo de un artículo vigente. Si cambia la demanda
// el punto de pedido guardado se recalcula desde la asignación predeterminada.
func (uc *ArticleUseCase) Update(ctx context.Context, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	if err := validateArticle(in.Nombre, in.PrecioUnitario, in.InventarioMaxArticulo, in.CostoAlmacenamiento, in.DemandaArticulo).OrNil(); err != nil {
		return nil, err
	}
	var a *entity.Article
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		var err error
		a, err = r.Articles.GetForUpdate(ctx, in.ID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if !a.IsActive() {
			return domain.NewConflict(domain.CodeArticleInactive, "el artículo está dado de baja")
		}
		a.Name = in.Nombre
		a.Description = in.DescripcionArt
		a.UnitPrice = in.PrecioUnitario
		a.StorageCost = in.CostoAlmacenamiento
		a.MaxInventory = in.InventarioMaxArticulo
		a.AnnualDemand = in.DemandaArticulo
		a.UpdatedAt = time.Now()
		if err := r.Articles.Update(ctx, a); err != nil {
			return err
		}
		links, err := r.Links.ListByArticle(ctx, a.ID, true)
		if err != nil {
			return err
		}
		def, outcome := inventory.SelectDefault(links)
		if outcome != inventory.DefaultFound {
			return nil
		}
		rp, ss := uc.params.ReorderCache(a, def)
		if err := r.Articles.UpdateReorderCache(ctx, a.ID, rp, ss); err != nil {
			return err
		}
		a.ReorderPoint, a.SafetyStock = rp, ss
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromArticle(a)
	return &out, nil
}

// Delete da de baja el artículo y sus asignaciones activas. Se rechaza si tiene stock
// o si existen órdenes de compra abiertas que lo incluyen.
func (uc *ArticleUseCase) Delete(ctx context.Context, id string) error {
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		a, err := r.Articles.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if !a.IsActive() {
			return domain.NewConflict(domain.CodeArticleInactive, "el artículo ya está dado de baja")
		}
		if a.Stock.IsPositive() {
			return domain.NewConflict(domain.CodeArticleHasStock,
				"el artículo tiene stock ("+a.Stock.String()+"); debe quedar en 0 para darlo de baja")
		}
		open, err := r.Orders.CountOpenByArticle(ctx, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return domain.NewConflict(domain.CodeOpenPurchaseOrders,
				"el artículo tiene órdenes de compra pendientes o enviadas")
		}
		links, err := r.Links.ListByArticle(ctx, id, true)
		if err != nil {
			return err
		}
		for _, l := range links {
			if err := r.Links.Deactivate(ctx, l.ID, now); err != nil {
				return err
			}
		}
		return r.Articles.SoftDelete(ctx, id, now)
	})
	if err == nil {
		log.Info().Str("article_id", id).Msg("artículo dado de baja")
	}
	return err
}

// List lista artículos; onlyActive excluye los dados de baja.
func (uc *ArticleUseCase) List(ctx context.Context, onlyActive bool) ([]dto.ArticleResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	return toArticleResponses(list), nil
}

// ListCritical artículos vigentes con stock por debajo del stock de seguridad (faltantes).
func (uc *ArticleUseCase) ListCritical(ctx context.Context) ([]dto.ArticleResponse, error) {
	list, err := uc.repo.ListBelowSafetyStock(ctx)
	if err != nil {
		return nil, err
	}
	return toArticleResponses(list), nil
}

// ListToReplenish artículos vigentes con stock por debajo del punto de pedido (a reponer).
func (uc *ArticleUseCase) ListToReplenish(ctx context.Context) ([]dto.ArticleResponse, error) {
	list, err := uc.repo.ListBelowReorderPoint(ctx)
	if err != nil {
		return nil, err
	}
	return toArticleResponses(list), nil
}

func toArticleResponses(list []*entity.Article) []dto.ArticleResponse {
	out := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.FromArticle(a))
	}
	return out
}

type articleCheck struct{ *domain.ValidationError }

func validateArticle(name string, price, maxInv, storage, demand decimal.Decimal) articleCheck {
	v := &domain.ValidationError{}
	if name == "" {
		v.Add("nombre", "es obligatorio")
	}
	if !price.IsPositive() {
		v.Add("precioUnitario", "debe ser mayor a 0")
	}
	if !maxInv.IsPositive() {
		v.Add("inventarioMaxArticulo", "debe ser mayor a 0")
	}
	if storage.IsNegative() {
		v.Add("costoAlmacenamiento", "no puede ser negativo")
	}
	if demand.IsNegative() {
		v.Add("demandaArticulo", "no puede ser negativa")
	}
	return articleCheck{v}
}

func (c articleCheck) checkStock(stock, maxInv decimal.Decimal) articleCheck {
	if stock.IsNegative() {
		c.Add("stock", "no puede ser negativo")
	}
	if maxInv.IsPositive() && stock.GreaterThan(maxInv) {
		c.Add("stock", "supera el inventario máximo")
	}
	return c
}
