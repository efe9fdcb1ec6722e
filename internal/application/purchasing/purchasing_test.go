package purchasing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reposicion-api/internal/application/apptest"
	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/application/purchasing"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intPtr(v int) *int { return &v }

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func codeOf(err error) string {
	var be *domain.BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// seed: dos artículos, dos proveedores; art-1 se compra a sup-a y sup-b, art-2 solo a sup-a.
func seed() *apptest.Store {
	s := apptest.NewStore()
	s.PutArticle(entity.Article{ID: "art-1", Name: "Tornillo", Stock: d("10"), MaxInventory: d("500"), AnnualDemand: d("365")})
	s.PutArticle(entity.Article{ID: "art-2", Name: "Tuerca", Stock: d("0"), MaxInventory: d("500"), AnnualDemand: d("365")})
	s.PutSupplier(entity.Supplier{ID: "sup-a", Name: "Acme"})
	s.PutSupplier(entity.Supplier{ID: "sup-b", Name: "Bolt"})
	s.PutModel(entity.InventoryModel{ID: "mod-lote", Name: "Lote Fijo"})
	s.PutModel(entity.InventoryModel{ID: "mod-tiempo", Name: "Tiempo Fijo"})
	s.PutLink(entity.SupplierLink{ID: "l-1a", ArticleID: "art-1", SupplierID: "sup-a", ModelID: "mod-lote",
		UnitCost: d("2.50"), IsDefault: true, AssignedAt: fixedNow})
	s.PutLink(entity.SupplierLink{ID: "l-1b", ArticleID: "art-1", SupplierID: "sup-b", ModelID: "mod-lote",
		UnitCost: d("2"), AssignedAt: fixedNow})
	s.PutLink(entity.SupplierLink{ID: "l-2a", ArticleID: "art-2", SupplierID: "sup-a", ModelID: "mod-lote",
		UnitCost: d("1.10"), IsDefault: true, AssignedAt: fixedNow})
	return s
}

func newUC(s *apptest.Store) *purchasing.PurchaseOrderUseCase {
	return purchasing.NewPurchaseOrderUseCase(s, s.Repos().Orders, nil).WithClock(clock)
}

func line(link, qty string) dto.NewOrderLineRequest {
	return dto.NewOrderLineRequest{ArticuloProveedorID: link, Cantidad: d(qty)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta de órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AgrupaPorProveedorYRecalculaSubtotales(t *testing.T) {
	s := seed()
	req := dto.NewOrderRequest{Detalles: []dto.NewOrderLineRequest{
		{ArticuloProveedorID: "l-1a", Cantidad: d("4"), SubTotal: d("999")},
		line("l-2a", "10"),
		line("l-1b", "3"),
	}}

	out, err := newUC(s).Create(context.Background(), req)
	require.NoError(t, err)

	require.True(t, out.Creada)
	require.Len(t, out.OrdenesDeCompra, 2)
	acme := out.OrdenesDeCompra[0]
	assert.Equal(t, "sup-a", acme.IDProveedor)
	assert.Equal(t, string(entity.PurchaseOrderPending), acme.Estado)
	require.Len(t, acme.Detalles, 2)
	assert.True(t, acme.Detalles[0].SubTotal.Equal(d("10")), "el subtotal del cliente se ignora")
	assert.True(t, acme.Total.Equal(d("21")))
	assert.True(t, out.OrdenesDeCompra[1].Total.Equal(d("6")))
}

func TestCreate_AdvierteOrdenAbiertaSinConfirmacion(t *testing.T) {
	ctx := context.Background()
	s := seed()
	uc := newUC(s)
	_, err := uc.Create(ctx, dto.NewOrderRequest{Detalles: []dto.NewOrderLineRequest{line("l-1a", "5")}})
	require.NoError(t, err)

	warn, err := uc.Create(ctx, dto.NewOrderRequest{Detalles: []dto.NewOrderLineRequest{line("l-1b", "2"), line("l-2a", "1")}})
	require.NoError(t, err)

	assert.False(t, warn.Creada)
	assert.Equal(t, []string{"Tornillo"}, warn.NombresPedidos)
	assert.Len(t, warn.OrdenesDeCompra, 1)
	assert.Len(t, s.Orders(), 1, "sin confirmación no se crea nada")

	ok, err := uc.Create(ctx, dto.NewOrderRequest{Detalles: []dto.NewOrderLineRequest{line("l-1b", "2")}, Confirmacion: true})
	require.NoError(t, err)
	assert.True(t, ok.Creada)
	assert.Len(t, s.Orders(), 2)
}

func TestCreate_CantidadInvalida(t *testing.T) {
	s := seed()

	_, err := newUC(s).Create(context.Background(), dto.NewOrderRequest{Detalles: []dto.NewOrderLineRequest{line("l-1a", "0")}})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "detalles[0].cantidad")
}

func TestCreate_AsignacionDadaDeBaja(t *testing.T) {
	s := seed()
	l := *s.Link("l-1b")
	at := fixedNow
	l.DeactivatedAt = &at
	s.PutLink(l)

	_, err := newUC(s).Create(context.Background(), dto.NewOrderRequest{Detalles: []dto.NewOrderLineRequest{line("l-1b", "1")}})

	assert.Equal(t, domain.CodeLinkInactive, codeOf(err))
}

func TestCreate_BloqueaArticuloAntesQueAsignacion(t *testing.T) {
	s := seed()

	_, err := newUC(s).Create(context.Background(), dto.NewOrderRequest{Detalles: []dto.NewOrderLineRequest{
		line("l-1a", "2"), line("l-2a", "1"),
	}})

	require.NoError(t, err)
	assert.Equal(t, []string{"articulo:art-1", "asignacion:l-1a", "articulo:art-2", "asignacion:l-2a"}, s.Locked)
}

func TestCreate_ArticuloDadoDeBaja(t *testing.T) {
	s := seed()
	a := *s.Article("art-2")
	at := fixedNow
	a.DeletedAt = &at
	s.PutArticle(a)

	_, err := newUC(s).Create(context.Background(), dto.NewOrderRequest{Detalles: []dto.NewOrderLineRequest{line("l-2a", "1")}})

	assert.Equal(t, domain.CodeArticleInactive, codeOf(err))
	assert.Empty(t, s.Orders())
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func createOne(t *testing.T, s *apptest.Store, uc *purchasing.PurchaseOrderUseCase) string {
	t.Helper()
	out, err := uc.Create(context.Background(), dto.NewOrderRequest{Detalles: []dto.NewOrderLineRequest{line("l-1a", "5")}})
	require.NoError(t, err)
	return out.OrdenesDeCompra[0].ID
}

func TestTransitions_EnviarYFinalizarSumaStock(t *testing.T) {
	ctx := context.Background()
	s := seed()
	uc := newUC(s)
	id := createOne(t, s, uc)

	_, err := uc.Finalize(ctx, id)
	assert.Equal(t, domain.CodeInvalidTransition, codeOf(err), "no se finaliza una orden pendiente")

	sent, err := uc.Send(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PurchaseOrderSent), sent.Estado)

	done, err := uc.Finalize(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PurchaseOrderFinalized), done.Estado)
	assert.True(t, s.Article("art-1").Stock.Equal(d("15")))

	_, err = uc.Cancel(ctx, id)
	assert.Equal(t, domain.CodeInvalidTransition, codeOf(err))
}

func TestTransitions_CancelarSoloDesdePendiente(t *testing.T) {
	ctx := context.Background()
	s := seed()
	uc := newUC(s)
	pending := createOne(t, s, uc)

	out, err := uc.Cancel(ctx, pending)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PurchaseOrderCancelled), out.Estado)

	_, err = uc.Send(ctx, pending)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	sentID := createOne(t, s, uc)
	_, err = uc.Send(ctx, sentID)
	require.NoError(t, err)
	_, err = uc.Cancel(ctx, sentID)
	assert.Equal(t, domain.CodeInvalidTransition, codeOf(err))
	assert.True(t, s.Article("art-1").Stock.Equal(d("10")), "cancelar no toca stock")
}

func TestModify_SoloPendienteYMismoProveedor(t *testing.T) {
	ctx := context.Background()
	s := seed()
	uc := newUC(s)
	id := createOne(t, s, uc)

	_, err := uc.Modify(ctx, dto.ModifyOrderRequest{ID: id, Detalles: []dto.ModifyOrderLineRequest{
		{ArticuloProveedorID: "l-1b", Cantidad: d("1")},
	}})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr, "l-1b es de otro proveedor")

	out, err := uc.Modify(ctx, dto.ModifyOrderRequest{ID: id, Detalles: []dto.ModifyOrderLineRequest{
		{ArticuloProveedorID: "l-1a", Cantidad: d("8")},
		{ArticuloProveedorID: "l-2a", Cantidad: d("10")},
	}})
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(d("31")))
	assert.Len(t, out.Detalles, 2)

	_, err = uc.Send(ctx, id)
	require.NoError(t, err)
	_, err = uc.Modify(ctx, dto.ModifyOrderRequest{ID: id, Detalles: []dto.ModifyOrderLineRequest{
		{ArticuloProveedorID: "l-1a", Cantidad: d("1")},
	}})
	assert.Equal(t, domain.CodeInvalidTransition, codeOf(err))
}

func TestList_FiltraPorEstado(t *testing.T) {
	ctx := context.Background()
	s := seed()
	uc := newUC(s)
	id := createOne(t, s, uc)
	_, err := uc.Send(ctx, id)
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.NewOrderRequest{Detalles: []dto.NewOrderLineRequest{line("l-2a", "1")}})
	require.NoError(t, err)

	sent, err := uc.List(ctx, "ENVIADA")
	require.NoError(t, err)
	all, err := uc.List(ctx, "")
	require.NoError(t, err)
	_, err = uc.List(ctx, "PERDIDA")

	assert.Len(t, sent, 1)
	assert.Len(t, all, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Revisión periódica
// ──────────────────────────────────────────────────────────────────────────────

func seedReview(next time.Time) *apptest.Store {
	s := seed()
	s.PutLink(entity.SupplierLink{ID: "l-2t", ArticleID: "art-2", SupplierID: "sup-b", ModelID: "mod-tiempo",
		UnitCost: d("1"), LeadTimeDays: 3, SafetyStock: d("4"), FixedTimeDays: intPtr(7),
		NextReviewDate: &next, AssignedAt: fixedNow})
	return s
}

func TestReview_PendientesYProcesar(t *testing.T) {
	ctx := context.Background()
	s := seedReview(fixedNow.AddDate(0, 0, -1))
	uc := purchasing.NewReviewUseCase(s, s.Repos().Links, s.Repos().Articles, inventory.Params{}).WithClock(clock)

	pending, err := uc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	// demanda 1/día: (7 + 3) días + 4 de seguridad - 0 en stock
	assert.True(t, pending[0].CantidadSugerida.Equal(d("14")), "got %s", pending[0].CantidadSugerida)

	res, err := uc.Process(ctx, "l-2t")
	require.NoError(t, err)
	require.NotNil(t, res.OrdenDeCompra)
	assert.Equal(t, "sup-b", res.OrdenDeCompra.IDProveedor)
	assert.True(t, res.OrdenDeCompra.Detalles[0].Cantidad.Equal(d("14")))
	assert.Equal(t, fixedNow.AddDate(0, 0, 6), res.ProximaRevision)
	assert.Equal(t, fixedNow.AddDate(0, 0, 6), *s.Link("l-2t").NextReviewDate)

	_, err = uc.Process(ctx, "l-2t")
	assert.Equal(t, domain.CodeReviewNotDue, codeOf(err))
}

func TestReview_StockSobreElObjetivoNoGeneraOrden(t *testing.T) {
	ctx := context.Background()
	s := seedReview(fixedNow.AddDate(0, 0, -1))
	a := *s.Article("art-2")
	a.Stock = d("20")
	s.PutArticle(a)
	uc := purchasing.NewReviewUseCase(s, s.Repos().Links, s.Repos().Articles, inventory.Params{}).WithClock(clock)

	pending, err := uc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.True(t, pending[0].CantidadSugerida.IsZero(), "got %s", pending[0].CantidadSugerida)

	res, err := uc.Process(ctx, "l-2t")

	require.NoError(t, err)
	assert.Nil(t, res.OrdenDeCompra)
	assert.Empty(t, s.Orders())
	assert.Equal(t, fixedNow.AddDate(0, 0, 6), *s.Link("l-2t").NextReviewDate)
}

func TestReview_NoVencidaNoSeLista(t *testing.T) {
	s := seedReview(fixedNow.AddDate(0, 0, 2))
	uc := purchasing.NewReviewUseCase(s, s.Repos().Links, s.Repos().Articles, inventory.Params{}).WithClock(clock)

	pending, err := uc.Pending(context.Background())

	require.NoError(t, err)
	assert.Empty(t, pending)
}
