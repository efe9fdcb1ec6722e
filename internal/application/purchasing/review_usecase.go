package purchasing

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/application/ports"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
)

// ReviewUseCase revisión periódica de las asignaciones de tiempo fijo: en la fecha de revisión
// se pide hasta el nivel objetivo sin importar el punto de pedido.
type ReviewUseCase struct {
	txRunner ports.TxRunner
	links    repository.SupplierLinkRepository
	articles repository.ArticleRepository
	params   inventory.Params
	now      func() time.Time
}

// NewReviewUseCase construye el caso de uso.
func NewReviewUseCase(
	txRunner ports.TxRunner,
	links repository.SupplierLinkRepository,
	articles repository.ArticleRepository,
	params inventory.Params,
) *ReviewUseCase {
	return &ReviewUseCase{txRunner: txRunner, links: links, articles: articles, params: params, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReviewUseCase) WithClock(now func() time.Time) *ReviewUseCase {
	uc.now = now
	return uc
}

// Pending lista las revisiones vencidas con la cantidad a pedir.
func (uc *ReviewUseCase) Pending(ctx context.Context) ([]dto.PendingReviewDTO, error) {
	due, err := uc.links.ListDueReviews(ctx, uc.now())
	if err != nil {
		return nil, err
	}
	out := make([]dto.PendingReviewDTO, 0, len(due))
	for _, l := range due {
		a, err := uc.articles.GetByID(ctx, l.ArticleID)
		if err != nil {
			return nil, err
		}
		if a == nil || !a.IsActive() || l.FixedTimeDays == nil {
			continue
		}
		q, err := uc.params.OrderUpTo(a, l)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.PendingReviewDTO{
			ArticuloProveedorID: l.ID,
			IDArticulo:          a.ID,
			NombreArticulo:      a.Name,
			NombreProveedor:     l.SupplierName,
			ProximaRevision:     *l.NextReviewDate,
			TiempoFijo:          *l.FixedTimeDays,
			Stock:               a.Stock,
			CantidadSugerida:    q,
		})
	}
	return out, nil
}

// Process crea la orden de la revisión vencida y corre la próxima revisión tiempoFijo días
// (las veces necesarias para que quede en el futuro). Si el stock ya alcanza el nivel objetivo
// no se genera orden y solo se adelanta la fecha.
func (uc *ReviewUseCase) Process(ctx context.Context, linkID string) (*dto.ReviewResultDTO, error) {
	now := uc.now()
	out := dto.ReviewResultDTO{ArticuloProveedorID: linkID}
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		peek, err := r.Links.GetByID(ctx, linkID)
		if err != nil {
			return err
		}
		if peek == nil {
			return domain.ErrNotFound
		}
		a, err := r.Articles.GetForUpdate(ctx, peek.ArticleID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		link, err := r.Links.GetForUpdate(ctx, linkID)
		if err != nil {
			return err
		}
		if link == nil {
			return domain.ErrNotFound
		}
		if !link.IsActive() {
			return domain.NewConflict(domain.CodeLinkInactive, "la asignación está dada de baja")
		}
		if link.Policy != entity.PolicyFixedTime || link.FixedTimeDays == nil || *link.FixedTimeDays <= 0 {
			return domain.NewConflict(domain.CodeReviewNotDue, "la asignación no es de tiempo fijo")
		}
		if !link.ReviewDue(now) {
			return domain.NewConflict(domain.CodeReviewNotDue,
				"la próxima revisión es el "+link.NextReviewDate.Format("2006-01-02"))
		}
		q, err := uc.params.OrderUpTo(a, link)
		if err != nil {
			return err
		}
		if q.IsPositive() {
			orders, err := CreateOrdersInTx(ctx, r, []OrderLineInput{{LinkID: link.ID, Quantity: q}}, now)
			if err != nil {
				return err
			}
			order := dto.FromPurchaseOrder(orders[0])
			out.OrdenDeCompra = &order
		}
		next := *link.NextReviewDate
		for !next.After(now) {
			next = next.AddDate(0, 0, *link.FixedTimeDays)
		}
		if err := r.Links.UpdateNextReview(ctx, link.ID, next); err != nil {
			return err
		}
		out.ProximaRevision = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	ev := log.Info().Str("link_id", linkID).Time("next_review", out.ProximaRevision)
	if out.OrdenDeCompra != nil {
		ev = ev.Str("order_id", out.OrdenDeCompra.ID)
	}
	ev.Bool("ordered", out.OrdenDeCompra != nil).Msg("revisión periódica procesada")
	return &out, nil
}
