package purchasing

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/reposicion-api/internal/application/ports"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

// OrderLineInput línea pedida: asignación artículo-proveedor y cantidad.
type OrderLineInput struct {
	LinkID   string
	Quantity decimal.Decimal
}

func validateLines(lines []OrderLineInput) error {
	v := &domain.ValidationError{}
	if len(lines) == 0 {
		v.Add("detalles", "debe incluir al menos una línea")
	}
	for i, l := range lines {
		if l.LinkID == "" {
			v.Add("detalles["+strconv.Itoa(i)+"].articuloProveedorId", "es obligatorio")
		}
		if !l.Quantity.IsPositive() {
			v.Add("detalles["+strconv.Itoa(i)+"].cantidad", "debe ser mayor a 0")
		}
	}
	return v.OrNil()
}

// resolvedLine línea con su asignación y artículo ya cargados.
type resolvedLine struct {
	link     *entity.SupplierLink
	article  *entity.Article
	quantity decimal.Decimal
}

// resolveLines carga asignación y artículo de cada línea; ambos deben estar vigentes.
// Bloquea primero el artículo y después la asignación, el mismo orden que al modificar una
// asignación, para que una baja concurrente no deje una orden sobre datos dados de baja.
// Líneas repetidas de la misma asignación se suman.
func resolveLines(ctx context.Context, r ports.TxRepos, lines []OrderLineInput) ([]resolvedLine, error) {
	out := make([]resolvedLine, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, in := range lines {
		if i, ok := index[in.LinkID]; ok {
			out[i].quantity = out[i].quantity.Add(in.Quantity)
			continue
		}
		peek, err := r.Links.GetByID(ctx, in.LinkID)
		if err != nil {
			return nil, err
		}
		if peek == nil {
			return nil, domain.ErrNotFound
		}
		a, err := r.Articles.GetForUpdate(ctx, peek.ArticleID)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, domain.ErrNotFound
		}
		if !a.IsActive() {
			return nil, domain.NewConflict(domain.CodeArticleInactive,
				"el artículo "+a.Name+" está dado de baja")
		}
		link, err := r.Links.GetForUpdate(ctx, in.LinkID)
		if err != nil {
			return nil, err
		}
		if link == nil {
			return nil, domain.ErrNotFound
		}
		if !link.IsActive() {
			return nil, domain.NewConflict(domain.CodeLinkInactive,
				"la asignación "+link.ID+" está dada de baja")
		}
		index[in.LinkID] = len(out)
		out = append(out, resolvedLine{link: link, article: a, quantity: in.Quantity})
	}
	return out, nil
}

// createOrders agrupa las líneas por proveedor (una orden PENDIENTE por proveedor) y las persiste.
// El costo unitario sale de la asignación; subtotales y total se recalculan.
func createOrders(ctx context.Context, r ports.TxRepos, lines []resolvedLine, now time.Time) ([]*entity.PurchaseOrder, error) {
	var orders []*entity.PurchaseOrder
	bySupplier := make(map[string]*entity.PurchaseOrder)
	for _, l := range lines {
		o, ok := bySupplier[l.link.SupplierID]
		if !ok {
			o = &entity.PurchaseOrder{
				ID:           uuid.New().String(),
				SupplierID:   l.link.SupplierID,
				SupplierName: l.link.SupplierName,
				Status:       entity.PurchaseOrderPending,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			bySupplier[l.link.SupplierID] = o
			orders = append(orders, o)
		}
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
	for _, o := range orders {
		o.Recalculate()
		if err := r.Orders.Create(ctx, o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// CreateOrdersInTx crea órdenes PENDIENTES dentro de una transacción abierta por otro caso de uso
// (venta con pedido automático, revisión periódica).
func CreateOrdersInTx(ctx context.Context, r ports.TxRepos, lines []OrderLineInput, now time.Time) ([]*entity.PurchaseOrder, error) {
	if err := validateLines(lines); err != nil {
		return nil, err
	}
	resolved, err := resolveLines(ctx, r, lines)
	if err != nil {
		return nil, err
	}
	return createOrders(ctx, r, resolved, now)
}
