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

// DefaultConfirmationTTL vigencia de un ajuste pendiente si no se configura otra.
const DefaultConfirmationTTL = 10 * time.Minute

// AdjustmentUseCase ajuste manual de stock con confirmación en dos fases:
// si el nuevo stock queda bajo el punto de pedido el ajuste no se guarda hasta que se confirma.
type AdjustmentUseCase struct {
	txRunner ports.TxRunner
	articles repository.ArticleRepository
	pending  ports.PendingAdjustmentStore
	ttl      time.Duration
	now      func() time.Time
}

// NewAdjustmentUseCase construye el caso de uso. ttl <= 0 usa DefaultConfirmationTTL.
func NewAdjustmentUseCase(
	txRunner ports.TxRunner,
	articles repository.ArticleRepository,
	pending ports.PendingAdjustmentStore,
	ttl time.Duration,
) *AdjustmentUseCase {
	if ttl <= 0 {
		ttl = DefaultConfirmationTTL
	}
	return &AdjustmentUseCase{txRunner: txRunner, articles: articles, pending: pending, ttl: ttl, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *AdjustmentUseCase) WithClock(now func() time.Time) *AdjustmentUseCase {
	uc.now = now
	return uc
}

// GetArticle devuelve el artículo con su evaluación de reposición actual.
func (uc *AdjustmentUseCase) GetArticle(ctx context.Context, id string) (*dto.AdjustmentArticleDTO, error) {
	a, err := uc.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	out := toAdjustmentArticle(a)
	return &out, nil
}

// Confirm aplica el ajuste de stock. Devuelve si el artículo requiere orden de compra:
//   - no la requiere: se guarda y devuelve false
//   - la requiere y forced=false: no se guarda y devuelve true
//   - la requiere y forced=true: se guarda y devuelve true
func (uc *AdjustmentUseCase) Confirm(ctx context.Context, articleID string, stock decimal.Decimal, forced bool) (bool, error) {
	if err := validateStock(stock); err != nil {
		return false, err
	}
	var needs bool
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		a, err := lockActiveArticle(ctx, r, articleID)
		if err != nil {
			return err
		}
		if err := checkMaxInventory(a, stock); err != nil {
			return err
		}
		needs = inventory.NeedsReplenishmentOpt(stock, a.ReorderPoint)
		if needs && !forced {
			return nil
		}
		return r.Articles.UpdateStock(ctx, a.ID, stock)
	})
	if err != nil {
		return false, err
	}
	if needs && forced {
		log.Warn().Str("article_id", articleID).Str("stock", stock.String()).
			Msg("ajuste forzado por debajo del punto de pedido")
	}
	return needs, nil
}

// Request evalúa el ajuste. Si no requiere orden de compra se guarda en el acto; si la requiere
// queda pendiente y se devuelve un token de un solo uso para ConfirmToken.
func (uc *AdjustmentUseCase) Request(ctx context.Context, articleID string, stock decimal.Decimal) (*dto.AdjustmentRequestResponse, error) {
	needs, err := uc.Confirm(ctx, articleID, stock, false)
	if err != nil {
		return nil, err
	}
	if !needs {
		return &dto.AdjustmentRequestResponse{}, nil
	}
	now := uc.now()
	token := uuid.New().String()
	adj := ports.PendingAdjustment{ArticleID: articleID, Stock: stock, RequestedAt: now}
	if err := uc.pending.Save(ctx, token, adj, uc.ttl); err != nil {
		return nil, err
	}
	expires := now.Add(uc.ttl)
	return &dto.AdjustmentRequestResponse{
		RequiereOrdenCompra: true,
		Pendiente:           true,
		Token:               token,
		VenceEn:             &expires,
	}, nil
}

// ConfirmToken guarda el ajuste pendiente asociado al token. El token se consume:
// un segundo intento o un token vencido responde CodeAdjustmentExpired. Si el guardado falla
// el token vuelve al store con la vigencia que le quedaba y puede reintentarse.
func (uc *AdjustmentUseCase) ConfirmToken(ctx context.Context, token string) (*dto.AdjustmentArticleDTO, error) {
	adj, err := uc.pending.Take(ctx, token)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.NewBusiness(domain.ErrNotFound, domain.CodeAdjustmentExpired,
			"el ajuste pendiente no existe, ya fue confirmado o venció")
	}
	if _, err := uc.Confirm(ctx, adj.ArticleID, adj.Stock, true); err != nil {
		uc.restore(ctx, token, *adj)
		return nil, err
	}
	return uc.GetArticle(ctx, adj.ArticleID)
}

// restore devuelve un ajuste tomado al store por el resto de su vigencia.
func (uc *AdjustmentUseCase) restore(ctx context.Context, token string, adj ports.PendingAdjustment) {
	left := uc.ttl - uc.now().Sub(adj.RequestedAt)
	if left <= 0 {
		return
	}
	if err := uc.pending.Save(ctx, token, adj, left); err != nil {
		log.Warn().Err(err).Str("article_id", adj.ArticleID).Msg("no se pudo restaurar el ajuste pendiente")
	}
}

func validateStock(stock decimal.Decimal) error {
	if stock.IsNegative() {
		return domain.NewValidation("stock", "no puede ser negativo")
	}
	return nil
}

func checkMaxInventory(a *entity.Article, stock decimal.Decimal) error {
	if a.MaxInventory.IsPositive() && stock.GreaterThan(a.MaxInventory) {
		return domain.NewBusiness(domain.ErrInvalidInput, domain.CodeMaxInventoryExceeded,
			"el stock supera el inventario máximo del artículo ("+a.MaxInventory.String()+")")
	}
	return nil
}

func toAdjustmentArticle(a *entity.Article) dto.AdjustmentArticleDTO {
	return dto.AdjustmentArticleDTO{
		ID:                 a.ID,
		Nombre:             a.Name,
		Stock:              a.Stock,
		PuntoPedido:        a.ReorderPoint,
		StockSeguridad:     a.SafetyStock,
		NecesitaReposicion: inventory.NeedsReplenishmentOpt(a.Stock, a.ReorderPoint),
		Critico:            inventory.IsCriticalOpt(a.Stock, a.SafetyStock),
	}
}
