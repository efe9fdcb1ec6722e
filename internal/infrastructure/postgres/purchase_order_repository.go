package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo persiste órdenes de compra y sus líneas.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier); Create y ReplaceLines
// escriben varias filas, usar dentro de una transacción.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderSelect = `
	SELECT o.id, o.proveedor_id, p.nombre, o.estado, o.total, o.created_at, o.updated_at
	FROM orden_compra o
	JOIN proveedor p ON p.id = o.proveedor_id`

func scanOrder(row scanner) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var status string
	if err := row.Scan(&o.ID, &o.SupplierID, &o.SupplierName, &status, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = entity.PurchaseOrderStatus(status)
	return &o, nil
}

// Create inserta la cabecera y todas las líneas.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orden_compra (id, proveedor_id, estado, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.SupplierID, string(o.Status), o.Total, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return r.insertLines(ctx, o)
}

func (r *PurchaseOrderRepo) insertLines(ctx context.Context, o *entity.PurchaseOrder) error {
	for i := range o.Lines {
		l := &o.Lines[i]
		l.OrderID = o.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO orden_compra_detalle (id, orden_compra_id, articulo_proveedor_id, articulo_id, cantidad, costo_unitario, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, o.ID, l.SupplierLinkID, l.ArticleID, l.Quantity, l.UnitCost, l.SubTotal,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order line: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, orderSelect+` WHERE o.id = $1`, id)
}

// GetForUpdate bloquea la cabecera de la orden.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, orderSelect+` WHERE o.id = $1 FOR UPDATE OF o`, id)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.attachLines(ctx, []*entity.PurchaseOrder{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id string, status entity.PurchaseOrderStatus, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orden_compra SET estado = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceLines borra las líneas actuales e inserta las de o, actualizando el total.
func (r *PurchaseOrderRepo) ReplaceLines(ctx context.Context, o *entity.PurchaseOrder) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orden_compra SET total = $2, updated_at = $3 WHERE id = $1`, o.ID, o.Total, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase order total: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM orden_compra_detalle WHERE orden_compra_id = $1`, o.ID); err != nil {
		return fmt.Errorf("delete purchase order lines: %w", err)
	}
	return r.insertLines(ctx, o)
}

// List lista órdenes por fecha de creación; status vacío = todas.
func (r *PurchaseOrderRepo) List(ctx context.Context, status entity.PurchaseOrderStatus) ([]*entity.PurchaseOrder, error) {
	if status == "" {
		return r.list(ctx, orderSelect+` ORDER BY o.created_at, o.id`)
	}
	return r.list(ctx, orderSelect+` WHERE o.estado = $1 ORDER BY o.created_at, o.id`, string(status))
}

func (r *PurchaseOrderRepo) ListOpenByArticles(ctx context.Context, articleIDs []string) ([]*entity.PurchaseOrder, error) {
	if len(articleIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, orderSelect+`
		WHERE o.estado IN ('PENDIENTE', 'ENVIADA')
		  AND EXISTS (SELECT 1 FROM orden_compra_detalle d WHERE d.orden_compra_id = o.id AND d.articulo_id = ANY($1::uuid[]))
		ORDER BY o.created_at, o.id`, articleIDs)
}

func (r *PurchaseOrderRepo) CountOpenByLink(ctx context.Context, linkID string) (int, error) {
	return r.countOpen(ctx, `AND EXISTS (SELECT 1 FROM orden_compra_detalle d
		WHERE d.orden_compra_id = o.id AND d.articulo_proveedor_id = $1)`, linkID)
}

func (r *PurchaseOrderRepo) CountOpenByArticle(ctx context.Context, articleID string) (int, error) {
	return r.countOpen(ctx, `AND EXISTS (SELECT 1 FROM orden_compra_detalle d
		WHERE d.orden_compra_id = o.id AND d.articulo_id = $1)`, articleID)
}

func (r *PurchaseOrderRepo) CountOpenBySupplier(ctx context.Context, supplierID string) (int, error) {
	return r.countOpen(ctx, `AND o.proveedor_id = $1`, supplierID)
}

func (r *PurchaseOrderRepo) countOpen(ctx context.Context, cond, arg string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM orden_compra o WHERE o.estado IN ('PENDIENTE', 'ENVIADA') `+cond, arg,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open purchase orders: %w", err)
	}
	return n, nil
}

func (r *PurchaseOrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	if err := r.attachLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachLines carga las líneas de todas las órdenes en una sola consulta.
func (r *PurchaseOrderRepo) attachLines(ctx context.Context, orders []*entity.PurchaseOrder) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*entity.PurchaseOrder, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}
	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.orden_compra_id, d.articulo_proveedor_id, d.articulo_id, a.nombre, d.cantidad, d.costo_unitario, d.subtotal
		FROM orden_compra_detalle d
		JOIN articulo a ON a.id = d.articulo_id
		WHERE d.orden_compra_id = ANY($1::uuid[])
		ORDER BY a.nombre, d.id`, ids)
	if err != nil {
		return fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.SupplierLinkID, &l.ArticleID, &l.ArticleName,
			&l.Quantity, &l.UnitCost, &l.SubTotal); err != nil {
			return fmt.Errorf("scan purchase order line: %w", err)
		}
		o := byID[l.OrderID]
		o.Lines = append(o.Lines, l)
	}
	return rows.Err()
}
