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

var _ repository.SupplierLinkRepository = (*SupplierLinkRepo)(nil)

// SupplierLinkRepo persiste las asignaciones artículo-proveedor (articulo_proveedor).
type SupplierLinkRepo struct {
	q Querier
}

// NewSupplierLinkRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierLinkRepository(q Querier) *SupplierLinkRepo {
	return &SupplierLinkRepo{q: q}
}

// La política se resuelve del nombre del modelo; con el modelo ausente queda PolicyUnknown.
const linkSelect = `
	SELECT ap.id, ap.articulo_id, ap.proveedor_id, ap.modelo_id, p.nombre, m.nombre,
		ap.costo_pedido, ap.costo_unitario, ap.demora_entrega, ap.predeterminado, ap.stock_seguridad,
		ap.nivel_servicio, ap.proxima_revision, ap.tiempo_fijo, ap.fh_asignacion, ap.fh_baja
	FROM articulo_proveedor ap
	JOIN proveedor p ON p.id = ap.proveedor_id
	LEFT JOIN modelo_inventario m ON m.id = ap.modelo_id`

func scanLink(row scanner) (*entity.SupplierLink, error) {
	var l entity.SupplierLink
	var modelName *string
	err := row.Scan(&l.ID, &l.ArticleID, &l.SupplierID, &l.ModelID, &l.SupplierName, &modelName,
		&l.OrderingCost, &l.UnitCost, &l.LeadTimeDays, &l.IsDefault, &l.SafetyStock,
		&l.ServiceLevel, &l.NextReviewDate, &l.FixedTimeDays, &l.AssignedAt, &l.DeactivatedAt)
	if err != nil {
		return nil, err
	}
	if modelName != nil {
		l.ModelName = *modelName
		l.Policy = entity.ResolvePolicy(*modelName)
	}
	return &l, nil
}

// Create persiste una asignación. Un segundo predeterminado activo devuelve domain.ErrDuplicate.
func (r *SupplierLinkRepo) Create(ctx context.Context, l *entity.SupplierLink) error {
	query := `
		INSERT INTO articulo_proveedor (id, articulo_id, proveedor_id, modelo_id, costo_pedido, costo_unitario,
			demora_entrega, predeterminado, stock_seguridad, nivel_servicio, proxima_revision, tiempo_fijo, fh_asignacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.ArticleID, l.SupplierID, l.ModelID, l.OrderingCost, l.UnitCost,
		l.LeadTimeDays, l.IsDefault, l.SafetyStock, l.ServiceLevel, l.NextReviewDate, l.FixedTimeDays, l.AssignedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert supplier link: %w", err)
	}
	return nil
}

func (r *SupplierLinkRepo) GetByID(ctx context.Context, id string) (*entity.SupplierLink, error) {
	return r.get(ctx, linkSelect+` WHERE ap.id = $1`, id)
}

// GetForUpdate bloquea solo la fila de la asignación.
func (r *SupplierLinkRepo) GetForUpdate(ctx context.Context, id string) (*entity.SupplierLink, error) {
	return r.get(ctx, linkSelect+` WHERE ap.id = $1 FOR UPDATE OF ap`, id)
}

func (r *SupplierLinkRepo) get(ctx context.Context, query string, args ...any) (*entity.SupplierLink, error) {
	l, err := scanLink(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier link: %w", err)
	}
	return l, nil
}

// Update reescribe los parámetros modificables; artículo y proveedor no cambian.
func (r *SupplierLinkRepo) Update(ctx context.Context, l *entity.SupplierLink) error {
	query := `
		UPDATE articulo_proveedor SET modelo_id = $2, costo_pedido = $3, costo_unitario = $4, demora_entrega = $5,
			predeterminado = $6, stock_seguridad = $7, nivel_servicio = $8, proxima_revision = $9, tiempo_fijo = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.ModelID, l.OrderingCost, l.UnitCost, l.LeadTimeDays,
		l.IsDefault, l.SafetyStock, l.ServiceLevel, l.NextReviewDate, l.FixedTimeDays,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier link: %w", err)
	}
	return nil
}

// Deactivate da de baja la asignación y le quita el predeterminado.
func (r *SupplierLinkRepo) Deactivate(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE articulo_proveedor SET fh_baja = $2, predeterminado = false WHERE id = $1 AND fh_baja IS NULL`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("deactivate supplier link: %w", err)
	}
	return nil
}

func (r *SupplierLinkRepo) List(ctx context.Context, onlyActive bool) ([]*entity.SupplierLink, error) {
	query := linkSelect
	if onlyActive {
		query += ` WHERE ap.fh_baja IS NULL`
	}
	return r.list(ctx, query+` ORDER BY ap.fh_asignacion, ap.id`)
}

func (r *SupplierLinkRepo) ListByArticle(ctx context.Context, articleID string, onlyActive bool) ([]*entity.SupplierLink, error) {
	query := linkSelect + ` WHERE ap.articulo_id = $1`
	if onlyActive {
		query += ` AND ap.fh_baja IS NULL`
	}
	return r.list(ctx, query+` ORDER BY ap.fh_asignacion, ap.id`, articleID)
}

// ClearDefault desmarca el predeterminado activo del artículo; exceptID vacío no excluye ninguno.
func (r *SupplierLinkRepo) ClearDefault(ctx context.Context, articleID, exceptID string) error {
	query := `UPDATE articulo_proveedor SET predeterminado = false
		WHERE articulo_id = $1 AND predeterminado AND fh_baja IS NULL`
	args := []any{articleID}
	if exceptID != "" {
		query += ` AND id <> $2`
		args = append(args, exceptID)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("clear default supplier: %w", err)
	}
	return nil
}

func (r *SupplierLinkRepo) FindActive(ctx context.Context, articleID, supplierID, modelID string) (*entity.SupplierLink, error) {
	return r.get(ctx, linkSelect+`
		WHERE ap.articulo_id = $1 AND ap.proveedor_id = $2 AND ap.modelo_id = $3 AND ap.fh_baja IS NULL`,
		articleID, supplierID, modelID)
}

func (r *SupplierLinkRepo) CountActiveByModel(ctx context.Context, modelID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM articulo_proveedor WHERE modelo_id = $1 AND fh_baja IS NULL`, modelID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count links by model: %w", err)
	}
	return n, nil
}

func (r *SupplierLinkRepo) ListDefaultArticleNames(ctx context.Context, supplierID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT a.nombre FROM articulo_proveedor ap
		JOIN articulo a ON a.id = ap.articulo_id
		WHERE ap.proveedor_id = $1 AND ap.predeterminado AND ap.fh_baja IS NULL AND a.fh_baja IS NULL
		ORDER BY a.nombre`, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list default article names: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan article name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ListDueReviews filtra por fecha en SQL y por política en Go (la política vive en el nombre del modelo).
func (r *SupplierLinkRepo) ListDueReviews(ctx context.Context, now time.Time) ([]*entity.SupplierLink, error) {
	list, err := r.list(ctx, linkSelect+`
		WHERE ap.fh_baja IS NULL AND ap.proxima_revision IS NOT NULL AND ap.proxima_revision <= $1
		ORDER BY ap.proxima_revision, ap.id`, now)
	if err != nil {
		return nil, err
	}
	due := list[:0]
	for _, l := range list {
		if l.ReviewDue(now) {
			due = append(due, l)
		}
	}
	return due, nil
}

func (r *SupplierLinkRepo) UpdateNextReview(ctx context.Context, id string, next time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE articulo_proveedor SET proxima_revision = $2 WHERE id = $1`, id, next)
	if err != nil {
		return fmt.Errorf("update next review: %w", err)
	}
	return nil
}

func (r *SupplierLinkRepo) list(ctx context.Context, query string, args ...any) ([]*entity.SupplierLink, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplier links: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplierLink
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier link: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
