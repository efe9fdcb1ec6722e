package sales

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/application/ports"
	"github.com/jhoicas/reposicion-api/internal/application/purchasing"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
)

// SaleUseCase registra ventas descontando stock en una sola transacción.
// Con autoOrder, cada artículo que queda bajo su punto de pedido y cuyo predeterminado es de
// lote fijo genera una orden PENDIENTE si no tiene otra abierta.
type SaleUseCase struct {
	txRunner  ports.TxRunner
	sales     repository.SaleRepository
	params    inventory.Params
	autoOrder bool
	now       func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner ports.TxRunner, sales repository.SaleRepository, params inventory.Params, autoOrder bool) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, sales: sales, params: params, autoOrder: autoOrder, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *SaleUseCase) WithClock(now func() time.Time) *SaleUseCase {
	uc.now = now
	return uc
}

// Create registra la venta. Rechaza todo si algún artículo no tiene stock suficiente.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	qty, order, err := mergeLines(in.Detalles)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	sale := &entity.Sale{ID: uuid.New().String(), CreatedAt: now}
	var toReplenish []string
	var generated []*entity.PurchaseOrder

	err = uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		// bloqueo en orden de id para no cruzarse con otra venta
		locked := append([]string(nil), order...)
		sort.Strings(locked)
		articles := make(map[string]*entity.Article, len(locked))
		for _, id := range locked {
			a, err := r.Articles.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if a == nil {
				return domain.ErrNotFound
			}
			if !a.IsActive() {
				return domain.NewConflict(domain.CodeArticleInactive, "el artículo "+a.Name+" está dado de baja")
			}
			if a.Stock.LessThan(qty[id]) {
				return domain.NewBusiness(domain.ErrInsufficientStock, domain.CodeInsufficientStock,
					"stock insuficiente para "+a.Name+" (disponible "+a.Stock.String()+")")
			}
			articles[id] = a
		}

		total := decimal.Zero
		for _, id := range order {
			a := articles[id]
			a.Stock = a.Stock.Sub(qty[id])
			if err := r.Articles.UpdateStock(ctx, id, a.Stock); err != nil {
				return err
			}
			line := entity.SaleLine{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ArticleID:   id,
				ArticleName: a.Name,
				Quantity:    qty[id],
				UnitPrice:   a.UnitPrice,
				SubTotal:    qty[id].Mul(a.UnitPrice).Round(2),
			}
			total = total.Add(line.SubTotal)
			sale.Lines = append(sale.Lines, line)
		}
		sale.Total = total
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}

		var autoLines []purchasing.OrderLineInput
		for _, id := range order {
			a := articles[id]
			if !inventory.NeedsReplenishmentOpt(a.Stock, a.ReorderPoint) {
				continue
			}
			toReplenish = append(toReplenish, a.Name)
			if !uc.autoOrder {
				continue
			}
			line, err := uc.autoOrderLine(ctx, r, a)
			if err != nil {
				return err
			}
			if line != nil {
				autoLines = append(autoLines, *line)
			}
		}
		if len(autoLines) > 0 {
			orders, err := purchasing.CreateOrdersInTx(ctx, r, autoLines, now)
			if err != nil {
				return err
			}
			generated = orders
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, o := range generated {
		log.Info().Str("sale_id", sale.ID).Str("order_id", o.ID).Str("supplier_id", o.SupplierID).
			Msg("orden de compra generada automáticamente")
	}
	out := dto.FromSale(sale)
	out.ArticulosAReponer = toReplenish
	if len(generated) > 0 {
		out.OrdenesGeneradas = dto.FromPurchaseOrders(generated)
	}
	return &out, nil
}

// autoOrderLine línea de pedido automático para el artículo, o nil si no corresponde.
func (uc *SaleUseCase) autoOrderLine(ctx context.Context, r ports.TxRepos, a *entity.Article) (*purchasing.OrderLineInput, error) {
	links, err := r.Links.ListByArticle(ctx, a.ID, true)
	if err != nil {
		return nil, err
	}
	def, _ := inventory.SelectDefault(links)
	if def == nil || def.Policy != entity.PolicyFixedLot {
		return nil, nil
	}
	open, err := r.Orders.CountOpenByArticle(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if open > 0 {
		return nil, nil
	}
	q, err := uc.params.SuggestedQuantity(a, def)
	if err != nil {
		return nil, err
	}
	return &purchasing.OrderLineInput{LinkID: def.ID, Quantity: q}, nil
}

// GetByID obtiene una venta.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromSale(s)
	return &out, nil
}

// List lista ventas, más recientes primero.
func (uc *SaleUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	list, err := uc.sales.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.FromSale(s))
	}
	return out, nil
}

// mergeLines valida y suma cantidades por artículo conservando el orden de aparición.
func mergeLines(lines []dto.SaleLineRequest) (map[string]decimal.Decimal, []string, error) {
	v := &domain.ValidationError{}
	if len(lines) == 0 {
		v.Add("detalles", "debe incluir al menos una línea")
	}
	qty := make(map[string]decimal.Decimal, len(lines))
	var order []string
	for i, l := range lines {
		if l.ArticuloID == "" {
			v.Add("detalles["+strconv.Itoa(i)+"].articuloId", "es obligatorio")
			continue
		}
		if !l.Cantidad.IsPositive() {
			v.Add("detalles["+strconv.Itoa(i)+"].cantidad", "debe ser mayor a 0")
			continue
		}
		if _, ok := qty[l.ArticuloID]; !ok {
			order = append(order, l.ArticuloID)
		}
		qty[l.ArticuloID] = qty[l.ArticuloID].Add(l.Cantidad)
	}
	if err := v.OrNil(); err != nil {
		return nil, nil, err
	}
	return qty, order, nil
}
