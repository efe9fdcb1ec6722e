package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
)

var _ repository.InventoryModelRepository = (*InventoryModelRepo)(nil)

// InventoryModelRepo implementación del puerto InventoryModelRepository sobre PostgreSQL.
type InventoryModelRepo struct {
	q Querier
}

// NewInventoryModelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryModelRepository(q Querier) *InventoryModelRepo {
	return &InventoryModelRepo{q: q}
}

func (r *InventoryModelRepo) Create(ctx context.Context, m *entity.InventoryModel) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO modelo_inventario (id, nombre, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		m.ID, m.Name, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory model: %w", err)
	}
	return nil
}

func (r *InventoryModelRepo) GetByID(ctx context.Context, id string) (*entity.InventoryModel, error) {
	var m entity.InventoryModel
	err := r.q.QueryRow(ctx,
		`SELECT id, nombre, fh_baja, created_at, updated_at FROM modelo_inventario WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.DeletedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory model: %w", err)
	}
	return &m, nil
}

func (r *InventoryModelRepo) Update(ctx context.Context, m *entity.InventoryModel) error {
	_, err := r.q.Exec(ctx, `UPDATE modelo_inventario SET nombre = $2, updated_at = $3 WHERE id = $1`,
		m.ID, m.Name, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update inventory model: %w", err)
	}
	return nil
}

func (r *InventoryModelRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE modelo_inventario SET fh_baja = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("soft delete inventory model: %w", err)
	}
	return nil
}

func (r *InventoryModelRepo) List(ctx context.Context, onlyActive bool) ([]*entity.InventoryModel, error) {
	query := `SELECT id, nombre, fh_baja, created_at, updated_at FROM modelo_inventario`
	if onlyActive {
		query += ` WHERE fh_baja IS NULL`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY nombre, id`)
	if err != nil {
		return nil, fmt.Errorf("list inventory models: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryModel
	for rows.Next() {
		var m entity.InventoryModel
		if err := rows.Scan(&m.ID, &m.Name, &m.DeletedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory model: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
