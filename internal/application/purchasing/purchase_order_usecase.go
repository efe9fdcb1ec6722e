package purchasing

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/application/ports"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
)

// PurchaseOrderUseCase órdenes de compra: alta agrupada por proveedor y máquina de estados
// PENDIENTE → ENVIADA → FINALIZADA, o PENDIENTE → CANCELADA.
type PurchaseOrderUseCase struct {
	txRunner ports.TxRunner
	orders   repository.PurchaseOrderRepository
	renderer ports.PurchaseOrderRenderer
	now      func() time.Time
}

// NewPurchaseOrderUseCase construye el caso de uso. renderer puede ser nil si no se exponen PDFs.
func NewPurchaseOrderUseCase(
	txRunner ports.TxRunner,
	orders repository.PurchaseOrderRepository,
	renderer ports.PurchaseOrderRenderer,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{txRunner: txRunner, orders: orders, renderer: renderer, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *PurchaseOrderUseCase) WithClock(now func() time.Time) *PurchaseOrderUseCase {
	uc.now = now
	return uc
}

// Create crea una orden por proveedor. Si algún artículo ya figura en una orden abierta y
// Confirmacion es false no se escribe nada: se devuelven esas órdenes y los artículos repetidos.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in dto.NewOrderRequest) (*dto.NewOrderResponse, error) {
	lines := make([]OrderLineInput, 0, len(in.Detalles))
	for _, d := range in.Detalles {
		lines = append(lines, OrderLineInput{LinkID: d.ArticuloProveedorID, Quantity: d.Cantidad})
	}
	if err := validateLines(lines); err != nil {
		return nil, err
	}
	now := uc.now()
	out := &dto.NewOrderResponse{}
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		resolved, err := resolveLines(ctx, r, lines)
		if err != nil {
			return err
		}
		if !in.Confirmacion {
			open, names, err := openOrdersFor(ctx, r, resolved)
			if err != nil {
				return err
			}
			if len(open) > 0 {
				out.OrdenesDeCompra = dto.FromPurchaseOrders(open)
				out.NombresPedidos = names
				return nil
			}
		}
		created, err := createOrders(ctx, r, resolved, now)
		if err != nil {
			return err
		}
		out.Creada = true
		out.OrdenesDeCompra = dto.FromPurchaseOrders(created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.Creada {
		log.Info().Int("orders", len(out.OrdenesDeCompra)).Msg("órdenes de compra creadas")
	}
	return out, nil
}

// openOrdersFor órdenes abiertas que incluyen alguno de los artículos pedidos y los nombres de esos artículos.
func openOrdersFor(ctx context.Context, r ports.TxRepos, lines []resolvedLine) ([]*entity.PurchaseOrder, []string, error) {
	ids := make([]string, 0, len(lines))
	names := make(map[string]string, len(lines))
	for _, l := range lines {
		if _, ok := names[l.article.ID]; !ok {
			ids = append(ids, l.article.ID)
			names[l.article.ID] = l.article.Name
		}
	}
	open, err := r.Orders.ListOpenByArticles(ctx, ids)
	if err != nil || len(open) == 0 {
		return nil, nil, err
	}
	seen := make(map[string]bool)
	var repeated []string
	for _, o := range open {
		for _, ol := range o.Lines {
			name, ok := names[ol.ArticleID]
			if ok && !seen[ol.ArticleID] {
				seen[ol.ArticleID] = true
				repeated = append(repeated, name)
			}
		}
	}
	sort.Strings(repeated)
	return open, repeated, nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromPurchaseOrder(o)
	return &out, nil
}

// List lista órdenes; status vacío = todas.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, status string) ([]dto.PurchaseOrderResponse, error) {
	st := entity.PurchaseOrderStatus(status)
	if status != "" && !st.IsValid() {
		return nil, domain.NewValidation("estado", "estado desconocido: "+status)
	}
	list, err := uc.orders.List(ctx, st)
	if err != nil {
		return nil, err
	}
	return dto.FromPurchaseOrders(list), nil
}

// Send pasa la orden de PENDIENTE a ENVIADA.
func (uc *PurchaseOrderUseCase) Send(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, id, entity.PurchaseOrderSent, nil)
}

// Cancel pasa la orden de PENDIENTE a CANCELADA.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, id, entity.PurchaseOrderCancelled, nil)
}

// Finalize pasa la orden de ENVIADA a FINALIZADA y suma las cantidades recibidas al stock,
// todo en la misma transacción.
func (uc *PurchaseOrderUseCase) Finalize(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, id, entity.PurchaseOrderFinalized, func(r ports.TxRepos, o *entity.PurchaseOrder) error {
		for _, l := range o.Lines {
			a, err := r.Articles.GetForUpdate(ctx, l.ArticleID)
			if err != nil {
				return err
			}
			if a == nil {
				return domain.ErrNotFound
			}
			if err := r.Articles.UpdateStock(ctx, a.ID, a.Stock.Add(l.Quantity)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (uc *PurchaseOrderUseCase) transition(
	ctx context.Context,
	id string,
	target entity.PurchaseOrderStatus,
	onApply func(r ports.TxRepos, o *entity.PurchaseOrder) error,
) (*dto.PurchaseOrderResponse, error) {
	now := uc.now()
	var out dto.PurchaseOrderResponse
	var from entity.PurchaseOrderStatus
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		o, err := r.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		from = o.Status
		if !o.Status.CanTransitionTo(target) {
			return domain.NewConflict(domain.CodeInvalidTransition,
				"no se puede pasar la orden de "+string(o.Status)+" a "+string(target))
		}
		if onApply != nil {
			if err := onApply(r, o); err != nil {
				return err
			}
		}
		if err := r.Orders.UpdateStatus(ctx, id, target, now); err != nil {
			return err
		}
		o.Status = target
		o.UpdatedAt = now
		out = dto.FromPurchaseOrder(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("order_id", id).Str("from", string(from)).Str("to", string(target)).
		Msg("orden de compra actualizada")
	return &out, nil
}

// Modify reemplaza las líneas de una orden PENDIENTE. Todas las asignaciones deben ser
// del proveedor de la orden.
func (uc *PurchaseOrderUseCase) Modify(ctx context.Context, in dto.ModifyOrderRequest) (*dto.PurchaseOrderResponse, error) {
	lines := make([]OrderLineInput, 0, len(in.Detalles))
	for _, d := range in.Detalles {
		lines = append(lines, OrderLineInput{LinkID: d.ArticuloProveedorID, Quantity: d.Cantidad})
	}
	if err := validateLines(lines); err != nil {
		return nil, err
	}
	now := uc.now()
	var out dto.PurchaseOrderResponse
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		o, err := r.Orders.GetForUpdate(ctx, in.ID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Status != entity.PurchaseOrderPending {
			return domain.NewConflict(domain.CodeInvalidTransition,
				"solo se modifican órdenes PENDIENTE; la orden está "+string(o.Status))
		}
		resolved, err := resolveLines(ctx, r, lines)
		if err != nil {
			return err
		}
		v := &domain.ValidationError{}
		for i, l := range resolved {
			if l.link.SupplierID != o.SupplierID {
				v.Add("detalles["+strconv.Itoa(i)+"].articuloProveedorId", "pertenece a otro proveedor")
			}
		}
		if err := v.OrNil(); err != nil {
			return err
		}
		o.Lines = make([]entity.PurchaseOrderLine, 0, len(resolved))
		for _, l := range resolved {
			o.Lines = append(o.Lines, entity.PurchaseOrderLine{
				ID:             uuid.New().String(),
				OrderID:        o.ID,
				SupplierLinkID: l.link.ID,
				ArticleID:      l.article.ID,
				ArticleName:    l.article.Name,
				Quantity:       l.quantity,
				UnitCost:       l.link.UnitCost,
			})
		}
		o.Recalculate()
		o.UpdatedAt = now
		if err := r.Orders.ReplaceLines(ctx, o); err != nil {
			return err
		}
		out = dto.FromPurchaseOrder(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RenderPDF genera el PDF de la orden.
func (uc *PurchaseOrderUseCase) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	if uc.renderer == nil {
		return nil, domain.ErrNotFound
	}
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return uc.renderer.Render(o)
}
