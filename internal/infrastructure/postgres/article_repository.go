package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo implementación del puerto ArticleRepository sobre PostgreSQL (usable con pool o tx).
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

const articleColumns = `id, nombre, descripcion, precio_unitario, costo_almacenamiento, stock, inventario_max,
	demanda_anual, punto_pedido, stock_seguridad, fh_baja, created_at, updated_at`

func scanArticle(row scanner) (*entity.Article, error) {
	var a entity.Article
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.UnitPrice, &a.StorageCost, &a.Stock, &a.MaxInventory,
		&a.AnnualDemand, &a.ReorderPoint, &a.SafetyStock, &a.DeletedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste un nuevo artículo.
func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	query := `
		INSERT INTO articulo (id, nombre, descripcion, precio_unitario, costo_almacenamiento, stock, inventario_max,
			demanda_anual, punto_pedido, stock_seguridad, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Name, a.Description, a.UnitPrice, a.StorageCost, a.Stock, a.MaxInventory,
		a.AnnualDemand, a.ReorderPoint, a.SafetyStock, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID (vigente o dado de baja).
func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	return r.get(ctx, `SELECT `+articleColumns+` FROM articulo WHERE id = $1`, id)
}

// GetForUpdate obtiene el artículo bloqueando su fila hasta el fin de la transacción.
func (r *ArticleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Article, error) {
	return r.get(ctx, `SELECT `+articleColumns+` FROM articulo WHERE id = $1 FOR UPDATE`, id)
}

func (r *ArticleRepo) get(ctx context.Context, query, id string) (*entity.Article, error) {
	a, err := scanArticle(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// Update actualiza los datos descriptivos y de costo. Stock y punto de pedido tienen sus propios métodos.
func (r *ArticleRepo) Update(ctx context.Context, a *entity.Article) error {
	query := `
		UPDATE articulo SET nombre = $2, descripcion = $3, precio_unitario = $4, costo_almacenamiento = $5,
			inventario_max = $6, demanda_anual = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Name, a.Description, a.UnitPrice, a.StorageCost, a.MaxInventory, a.AnnualDemand, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// UpdateStock fija el stock del artículo.
func (r *ArticleRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE articulo SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update article stock: %w", err)
	}
	return nil
}

// UpdateReorderCache actualiza punto de pedido y stock de seguridad (NULL = sin predeterminado).
func (r *ArticleRepo) UpdateReorderCache(ctx context.Context, id string, reorderPoint, safetyStock *decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE articulo SET punto_pedido = $2, stock_seguridad = $3, updated_at = now() WHERE id = $1`,
		id, reorderPoint, safetyStock,
	)
	if err != nil {
		return fmt.Errorf("update article reorder point: %w", err)
	}
	return nil
}

// SoftDelete marca la fecha de baja del artículo.
func (r *ArticleRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE articulo SET fh_baja = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("soft delete article: %w", err)
	}
	return nil
}

// List lista artículos ordenados por nombre; onlyActive excluye los dados de baja.
func (r *ArticleRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articulo`
	if onlyActive {
		query += ` WHERE fh_baja IS NULL`
	}
	return r.list(ctx, query+` ORDER BY nombre, id`)
}

// ListBelowReorderPoint artículos vigentes con stock por debajo del punto de pedido.
func (r *ArticleRepo) ListBelowReorderPoint(ctx context.Context) ([]*entity.Article, error) {
	return r.list(ctx, `SELECT `+articleColumns+` FROM articulo
		WHERE fh_baja IS NULL AND punto_pedido IS NOT NULL AND stock < punto_pedido
		ORDER BY nombre, id`)
}

// ListBelowSafetyStock artículos vigentes con stock por debajo del stock de seguridad.
func (r *ArticleRepo) ListBelowSafetyStock(ctx context.Context) ([]*entity.Article, error) {
	return r.list(ctx, `SELECT `+articleColumns+` FROM articulo
		WHERE fh_baja IS NULL AND stock_seguridad IS NOT NULL AND stock < stock_seguridad
		ORDER BY nombre, id`)
}

func (r *ArticleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Article, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
