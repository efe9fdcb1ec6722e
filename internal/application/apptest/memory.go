// Package apptest provee repositorios en memoria para probar los casos de uso sin PostgreSQL.
package apptest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reposicion-api/internal/application/ports"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

// Store base de datos en memoria. Run hace una copia al empezar y la restaura si fn falla,
// igual que un Rollback.
type Store struct {
	mu        sync.Mutex
	articles  map[string]entity.Article
	suppliers map[string]entity.Supplier
	models    map[string]entity.InventoryModel
	links     map[string]entity.SupplierLink
	orders    map[string]entity.PurchaseOrder
	sales     map[string]entity.Sale

	// Writes cuenta escrituras confirmadas (para verificar que un rechazo no escribió).
	Writes int
	// Locked registra cada lectura con bloqueo como "tabla:id", en orden.
	Locked []string
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		articles:  map[string]entity.Article{},
		suppliers: map[string]entity.Supplier{},
		models:    map[string]entity.InventoryModel{},
		links:     map[string]entity.SupplierLink{},
		orders:    map[string]entity.PurchaseOrder{},
		sales:     map[string]entity.Sale{},
	}
}

// Repos devuelve los repositorios sobre el Store.
func (s *Store) Repos() ports.TxRepos {
	return ports.TxRepos{
		Articles:  &ArticleRepo{s},
		Suppliers: &SupplierRepo{s},
		Models:    &ModelRepo{s},
		Links:     &LinkRepo{s},
		Orders:    &OrderRepo{s},
		Sales:     &SaleRepo{s},
	}
}

// Run implementa ports.TxRunner.
func (s *Store) Run(_ context.Context, fn func(r ports.TxRepos) error) error {
	snap := s.snapshot()
	if err := fn(s.Repos()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	articles  map[string]entity.Article
	suppliers map[string]entity.Supplier
	models    map[string]entity.InventoryModel
	links     map[string]entity.SupplierLink
	orders    map[string]entity.PurchaseOrder
	sales     map[string]entity.Sale
	writes    int
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		articles:  copyMap(s.articles),
		suppliers: copyMap(s.suppliers),
		models:    copyMap(s.models),
		links:     copyMap(s.links),
		orders:    make(map[string]entity.PurchaseOrder, len(s.orders)),
		sales:     copyMap(s.sales),
		writes:    s.Writes,
	}
	for k, o := range s.orders {
		snap.orders[k] = cloneOrder(o)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles, s.suppliers, s.models = snap.articles, snap.suppliers, snap.models
	s.links, s.orders, s.sales = snap.links, snap.orders, snap.sales
	s.Writes = snap.writes
}

func copyMap[T any](m map[string]T) map[string]T {
	out := make(map[string]T, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneOrder(o entity.PurchaseOrder) entity.PurchaseOrder {
	o.Lines = append([]entity.PurchaseOrderLine(nil), o.Lines...)
	return o
}

func (s *Store) lock(table, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Locked = append(s.Locked, table+":"+id)
}

// ── Seeds ────────────────────────────────────────────────────────────────────

// PutArticle inserta o reemplaza un artículo sin pasar por los casos de uso.
func (s *Store) PutArticle(a entity.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[a.ID] = a
}

// PutSupplier inserta o reemplaza un proveedor.
func (s *Store) PutSupplier(v entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[v.ID] = v
}

// PutModel inserta o reemplaza un modelo de inventario.
func (s *Store) PutModel(m entity.InventoryModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[m.ID] = m
}

// PutLink inserta o reemplaza una asignación.
func (s *Store) PutLink(l entity.SupplierLink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[l.ID] = l
}

// PutOrder inserta o reemplaza una orden de compra.
func (s *Store) PutOrder(o entity.PurchaseOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = cloneOrder(o)
}

// Article lee un artículo (nil si no existe).
func (s *Store) Article(id string) *entity.Article {
	a, _ := (&ArticleRepo{s}).GetByID(context.Background(), id)
	return a
}

// Link lee una asignación con nombres y política resueltos.
func (s *Store) Link(id string) *entity.SupplierLink {
	l, _ := (&LinkRepo{s}).GetByID(context.Background(), id)
	return l
}

// Orders devuelve todas las órdenes.
func (s *Store) Orders() []*entity.PurchaseOrder {
	list, _ := (&OrderRepo{s}).List(context.Background(), "")
	return list
}

// ActiveDefaults cuenta las asignaciones activas predeterminadas del artículo.
func (s *Store) ActiveDefaults(articleID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.links {
		if l.ArticleID == articleID && l.DeactivatedAt == nil && l.IsDefault {
			n++
		}
	}
	return n
}

// ── Articles ─────────────────────────────────────────────────────────────────

// ArticleRepo implementa repository.ArticleRepository.
type ArticleRepo struct{ s *Store }

func (r *ArticleRepo) Create(_ context.Context, a *entity.Article) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.articles[a.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.articles[a.ID] = *a
	r.s.Writes++
	return nil
}

func (r *ArticleRepo) GetByID(_ context.Context, id string) (*entity.Article, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.articles[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *ArticleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Article, error) {
	r.s.lock("articulo", id)
	return r.GetByID(ctx, id)
}

func (r *ArticleRepo) Update(_ context.Context, a *entity.Article) error {
	return r.mutate(a.ID, func(cur *entity.Article) {
		stock, rp, ss := cur.Stock, cur.ReorderPoint, cur.SafetyStock
		*cur = *a
		cur.Stock, cur.ReorderPoint, cur.SafetyStock = stock, rp, ss
	})
}

func (r *ArticleRepo) UpdateStock(_ context.Context, id string, stock decimal.Decimal) error {
	return r.mutate(id, func(cur *entity.Article) { cur.Stock = stock })
}

func (r *ArticleRepo) UpdateReorderCache(_ context.Context, id string, rp, ss *decimal.Decimal) error {
	return r.mutate(id, func(cur *entity.Article) { cur.ReorderPoint, cur.SafetyStock = rp, ss })
}

func (r *ArticleRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	return r.mutate(id, func(cur *entity.Article) { cur.DeletedAt = &at })
}

func (r *ArticleRepo) mutate(id string, fn func(*entity.Article)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.articles[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(&a)
	r.s.articles[id] = a
	r.s.Writes++
	return nil
}

func (r *ArticleRepo) List(_ context.Context, onlyActive bool) ([]*entity.Article, error) {
	return r.filter(func(a *entity.Article) bool { return !onlyActive || a.IsActive() }), nil
}

func (r *ArticleRepo) ListBelowReorderPoint(_ context.Context) ([]*entity.Article, error) {
	return r.filter(func(a *entity.Article) bool {
		return a.IsActive() && a.ReorderPoint != nil && a.Stock.LessThan(*a.ReorderPoint)
	}), nil
}

func (r *ArticleRepo) ListBelowSafetyStock(_ context.Context) ([]*entity.Article, error) {
	return r.filter(func(a *entity.Article) bool {
		return a.IsActive() && a.SafetyStock != nil && a.Stock.LessThan(*a.SafetyStock)
	}), nil
}

func (r *ArticleRepo) filter(keep func(*entity.Article) bool) []*entity.Article {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Article
	for _, a := range r.s.articles {
		a := a
		if keep(&a) {
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ── Suppliers ────────────────────────────────────────────────────────────────

// SupplierRepo implementa repository.SupplierRepository.
type SupplierRepo struct{ s *Store }

func (r *SupplierRepo) Create(_ context.Context, v *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.suppliers[v.ID] = *v
	r.s.Writes++
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *SupplierRepo) GetForUpdate(ctx context.Context, id string) (*entity.Supplier, error) {
	r.s.lock("proveedor", id)
	return r.GetByID(ctx, id)
}

func (r *SupplierRepo) Update(_ context.Context, v *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.suppliers[v.ID] = *v
	r.s.Writes++
	return nil
}

func (r *SupplierRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := r.s.suppliers[id]
	v.DeletedAt = &at
	r.s.suppliers[id] = v
	r.s.Writes++
	return nil
}

func (r *SupplierRepo) List(_ context.Context, onlyActive bool) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Supplier
	for _, v := range r.s.suppliers {
		v := v
		if !onlyActive || v.IsActive() {
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── Inventory models ─────────────────────────────────────────────────────────

// ModelRepo implementa repository.InventoryModelRepository.
type ModelRepo struct{ s *Store }

func (r *ModelRepo) Create(_ context.Context, m *entity.InventoryModel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.models[m.ID] = *m
	r.s.Writes++
	return nil
}

func (r *ModelRepo) GetByID(_ context.Context, id string) (*entity.InventoryModel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.models[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *ModelRepo) Update(_ context.Context, m *entity.InventoryModel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.models[m.ID] = *m
	r.s.Writes++
	return nil
}

func (r *ModelRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := r.s.models[id]
	m.DeletedAt = &at
	r.s.models[id] = m
	r.s.Writes++
	return nil
}

func (r *ModelRepo) List(_ context.Context, onlyActive bool) ([]*entity.InventoryModel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.InventoryModel
	for _, m := range r.s.models {
		m := m
		if !onlyActive || m.IsActive() {
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── Supplier links ───────────────────────────────────────────────────────────

// LinkRepo implementa repository.SupplierLinkRepository. Las lecturas resuelven nombres y
// política igual que el JOIN de PostgreSQL.
type LinkRepo struct{ s *Store }

// resolve requiere s.mu tomado.
func (r *LinkRepo) resolve(l entity.SupplierLink) *entity.SupplierLink {
	if sup, ok := r.s.suppliers[l.SupplierID]; ok {
		l.SupplierName = sup.Name
	}
	l.Policy = entity.PolicyUnknown
	l.ModelName = ""
	if m, ok := r.s.models[l.ModelID]; ok {
		l.ModelName = m.Name
		l.Policy = m.Policy()
	}
	return &l
}

func (r *LinkRepo) Create(_ context.Context, l *entity.SupplierLink) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l.IsDefault {
		for _, cur := range r.s.links {
			if cur.ArticleID == l.ArticleID && cur.DeactivatedAt == nil && cur.IsDefault {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.links[l.ID] = *l
	r.s.Writes++
	return nil
}

func (r *LinkRepo) GetByID(_ context.Context, id string) (*entity.SupplierLink, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.links[id]
	if !ok {
		return nil, nil
	}
	return r.resolve(l), nil
}

func (r *LinkRepo) GetForUpdate(ctx context.Context, id string) (*entity.SupplierLink, error) {
	r.s.lock("asignacion", id)
	return r.GetByID(ctx, id)
}

func (r *LinkRepo) Update(_ context.Context, l *entity.SupplierLink) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.links[l.ID]; !ok {
		return domain.ErrNotFound
	}
	if l.IsDefault {
		for _, cur := range r.s.links {
			if cur.ID != l.ID && cur.ArticleID == l.ArticleID && cur.DeactivatedAt == nil && cur.IsDefault {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.links[l.ID] = *l
	r.s.Writes++
	return nil
}

func (r *LinkRepo) Deactivate(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.links[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.DeactivatedAt = &at
	l.IsDefault = false
	r.s.links[id] = l
	r.s.Writes++
	return nil
}

func (r *LinkRepo) List(_ context.Context, onlyActive bool) ([]*entity.SupplierLink, error) {
	return r.filter(func(l *entity.SupplierLink) bool { return !onlyActive || l.IsActive() }), nil
}

func (r *LinkRepo) ListByArticle(_ context.Context, articleID string, onlyActive bool) ([]*entity.SupplierLink, error) {
	return r.filter(func(l *entity.SupplierLink) bool {
		return l.ArticleID == articleID && (!onlyActive || l.IsActive())
	}), nil
}

func (r *LinkRepo) ClearDefault(_ context.Context, articleID, exceptID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, l := range r.s.links {
		if l.ArticleID == articleID && l.ID != exceptID && l.DeactivatedAt == nil && l.IsDefault {
			l.IsDefault = false
			r.s.links[id] = l
			r.s.Writes++
		}
	}
	return nil
}

func (r *LinkRepo) FindActive(_ context.Context, articleID, supplierID, modelID string) (*entity.SupplierLink, error) {
	list := r.filter(func(l *entity.SupplierLink) bool {
		return l.IsActive() && l.ArticleID == articleID && l.SupplierID == supplierID && l.ModelID == modelID
	})
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *LinkRepo) CountActiveByModel(_ context.Context, modelID string) (int, error) {
	return len(r.filter(func(l *entity.SupplierLink) bool { return l.IsActive() && l.ModelID == modelID })), nil
}

func (r *LinkRepo) ListDefaultArticleNames(_ context.Context, supplierID string) ([]string, error) {
	list := r.filter(func(l *entity.SupplierLink) bool {
		return l.IsActive() && l.IsDefault && l.SupplierID == supplierID
	})
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var names []string
	for _, l := range list {
		if a, ok := r.s.articles[l.ArticleID]; ok && a.DeletedAt == nil {
			names = append(names, a.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (r *LinkRepo) ListDueReviews(_ context.Context, now time.Time) ([]*entity.SupplierLink, error) {
	return r.filter(func(l *entity.SupplierLink) bool { return l.IsActive() && l.ReviewDue(now) }), nil
}

func (r *LinkRepo) UpdateNextReview(_ context.Context, id string, next time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.links[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.NextReviewDate = &next
	r.s.links[id] = l
	r.s.Writes++
	return nil
}

func (r *LinkRepo) filter(keep func(*entity.SupplierLink) bool) []*entity.SupplierLink {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SupplierLink
	for _, l := range r.s.links {
		rl := r.resolve(l)
		if keep(rl) {
			out = append(out, rl)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AssignedAt.Equal(out[j].AssignedAt) {
			return out[i].AssignedAt.Before(out[j].AssignedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ── Purchase orders ──────────────────────────────────────────────────────────

// OrderRepo implementa repository.PurchaseOrderRepository.
type OrderRepo struct{ s *Store }

func (r *OrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[o.ID] = cloneOrder(*o)
	r.s.Writes++
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	c := cloneOrder(o)
	return &c, nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id string, status entity.PurchaseOrderStatus, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status, o.UpdatedAt = status, at
	r.s.orders[id] = o
	r.s.Writes++
	return nil
}

func (r *OrderRepo) ReplaceLines(_ context.Context, o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Lines = append([]entity.PurchaseOrderLine(nil), o.Lines...)
	cur.Total, cur.UpdatedAt = o.Total, o.UpdatedAt
	r.s.orders[o.ID] = cur
	r.s.Writes++
	return nil
}

func (r *OrderRepo) List(_ context.Context, status entity.PurchaseOrderStatus) ([]*entity.PurchaseOrder, error) {
	return r.filter(func(o *entity.PurchaseOrder) bool { return status == "" || o.Status == status }), nil
}

func (r *OrderRepo) ListOpenByArticles(_ context.Context, articleIDs []string) ([]*entity.PurchaseOrder, error) {
	want := make(map[string]bool, len(articleIDs))
	for _, id := range articleIDs {
		want[id] = true
	}
	return r.filter(func(o *entity.PurchaseOrder) bool {
		if !o.Status.IsOpen() {
			return false
		}
		for _, l := range o.Lines {
			if want[l.ArticleID] {
				return true
			}
		}
		return false
	}), nil
}

func (r *OrderRepo) CountOpenByLink(_ context.Context, linkID string) (int, error) {
	return r.countOpen(func(l entity.PurchaseOrderLine) bool { return l.SupplierLinkID == linkID }), nil
}

func (r *OrderRepo) CountOpenByArticle(_ context.Context, articleID string) (int, error) {
	return r.countOpen(func(l entity.PurchaseOrderLine) bool { return l.ArticleID == articleID }), nil
}

func (r *OrderRepo) CountOpenBySupplier(_ context.Context, supplierID string) (int, error) {
	return len(r.filter(func(o *entity.PurchaseOrder) bool {
		return o.Status.IsOpen() && o.SupplierID == supplierID
	})), nil
}

func (r *OrderRepo) countOpen(match func(entity.PurchaseOrderLine) bool) int {
	return len(r.filter(func(o *entity.PurchaseOrder) bool {
		if !o.Status.IsOpen() {
			return false
		}
		for _, l := range o.Lines {
			if match(l) {
				return true
			}
		}
		return false
	}))
}

func (r *OrderRepo) filter(keep func(*entity.PurchaseOrder) bool) []*entity.PurchaseOrder {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PurchaseOrder
	for _, o := range r.s.orders {
		c := cloneOrder(o)
		if keep(&c) {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return strings.Compare(out[i].ID, out[j].ID) < 0
	})
	return out
}

// ── Sales ────────────────────────────────────────────────────────────────────

// SaleRepo implementa repository.SaleRepository.
type SaleRepo struct{ s *Store }

func (r *SaleRepo) Create(_ context.Context, v *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *v
	c.Lines = append([]entity.SaleLine(nil), v.Lines...)
	r.s.sales[v.ID] = c
	r.s.Writes++
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *SaleRepo) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Sale, 0, len(r.s.sales))
	for _, v := range r.s.sales {
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []*entity.Sale{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
