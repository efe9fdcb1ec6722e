package inventory_test

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
	appinv "github.com/jhoicas/reposicion-api/internal/application/inventory"
	"github.com/jhoicas/reposicion-api/internal/application/ports"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/reposicion-api/internal/infrastructure/cache"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal { v := d(s); return &v }

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

// seedCatalog carga un artículo, tres proveedores y los modelos Lote Fijo / Tiempo Fijo.
func seedCatalog(t *testing.T) *apptest.Store {
	t.Helper()
	s := apptest.NewStore()
	s.PutArticle(entity.Article{
		ID: "art-1", Name: "Tornillo", UnitPrice: d("2"), StorageCost: d("2"),
		Stock: d("20"), MaxInventory: d("1000"), AnnualDemand: d("1000"),
	})
	for _, id := range []string{"sup-a", "sup-b", "sup-c"} {
		s.PutSupplier(entity.Supplier{ID: id, Name: "Proveedor " + id})
	}
	s.PutModel(entity.InventoryModel{ID: "mod-lote", Name: "Lote Fijo"})
	s.PutModel(entity.InventoryModel{ID: "mod-tiempo", Name: "Tiempo Fijo"})
	return s
}

func assignReq(supplierID, modelID string, isDefault bool) dto.AssignSupplierRequest {
	return dto.AssignSupplierRequest{
		ArticuloID:         "art-1",
		ProveedorID:        supplierID,
		ModeloInventarioID: modelID,
		CostoPedido:        d("50"),
		CostoUnitario:      d("3"),
		DemoraEntrega:      73,
		IsPredeterminado:   isDefault,
		StockSeguridad:     d("5"),
		NivelServicio:      d("95"),
	}
}

func newLinkUC(s *apptest.Store) *appinv.SupplierLinkUseCase {
	return appinv.NewSupplierLinkUseCase(s, s.Repos().Links, inventory.Params{}).WithClock(clock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignación de proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestAssign_NuevoPredeterminadoDesmarcaElAnterior(t *testing.T) {
	ctx := context.Background()
	s := seedCatalog(t)
	uc := newLinkUC(s)

	first, err := uc.Assign(ctx, assignReq("sup-a", "mod-lote", true))
	require.NoError(t, err)
	second, err := uc.Assign(ctx, assignReq("sup-b", "mod-lote", true))
	require.NoError(t, err)

	assert.Equal(t, 1, s.ActiveDefaults("art-1"))
	assert.False(t, s.Link(first.ID).IsDefault)
	assert.True(t, s.Link(second.ID).IsDefault)
}

func TestAssign_PredeterminadoRecalculaPuntoDePedido(t *testing.T) {
	ctx := context.Background()
	s := seedCatalog(t)

	_, err := newLinkUC(s).Assign(ctx, assignReq("sup-a", "mod-lote", true))
	require.NoError(t, err)

	a := s.Article("art-1")
	require.NotNil(t, a.ReorderPoint)
	// 1000 * 73 / 365 + 5
	assert.True(t, a.ReorderPoint.Equal(d("205")), "got %s", a.ReorderPoint)
	require.NotNil(t, a.SafetyStock)
	assert.True(t, a.SafetyStock.Equal(d("5")))
}

func TestAssign_NoPredeterminadoNoTocaElArticulo(t *testing.T) {
	ctx := context.Background()
	s := seedCatalog(t)

	_, err := newLinkUC(s).Assign(ctx, assignReq("sup-a", "mod-lote", false))
	require.NoError(t, err)

	assert.Nil(t, s.Article("art-1").ReorderPoint)
	assert.Equal(t, 0, s.ActiveDefaults("art-1"))
}

func TestAssign_ProveedorDadoDeBaja(t *testing.T) {
	s := seedCatalog(t)
	at := fixedNow
	s.PutSupplier(entity.Supplier{ID: "sup-a", Name: "Baja", DeletedAt: &at})

	_, err := newLinkUC(s).Assign(context.Background(), assignReq("sup-a", "mod-lote", true))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, domain.CodeSupplierInactive, codeOf(err))
	assert.Equal(t, 0, s.Writes)
}

func TestAssign_BloqueaArticuloYProveedor(t *testing.T) {
	s := seedCatalog(t)

	_, err := newLinkUC(s).Assign(context.Background(), assignReq("sup-a", "mod-lote", false))

	require.NoError(t, err)
	assert.Equal(t, []string{"articulo:art-1", "proveedor:sup-a"}, s.Locked)
}

func TestAssign_ModeloInexistenteEsErrorDeConfiguracion(t *testing.T) {
	s := seedCatalog(t)

	_, err := newLinkUC(s).Assign(context.Background(), assignReq("sup-a", "mod-x", false))

	assert.True(t, errors.Is(err, domain.ErrModelNotConfigured))
	assert.Equal(t, domain.CodeModelNotConfigured, codeOf(err))
}

func TestAssign_TiempoFijoExigeTiempoFijo(t *testing.T) {
	s := seedCatalog(t)

	_, err := newLinkUC(s).Assign(context.Background(), assignReq("sup-a", "mod-tiempo", false))

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "tiempoFijo")
	assert.Equal(t, 0, s.Writes, "la validación rechaza antes de escribir")
}

func TestAssign_TiempoFijoProximaRevisionPorDefecto(t *testing.T) {
	s := seedCatalog(t)
	req := assignReq("sup-a", "mod-tiempo", true)
	req.TiempoFijo = intPtr(7)

	out, err := newLinkUC(s).Assign(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, out.ProximaRevision)
	assert.Equal(t, fixedNow.AddDate(0, 0, 7), *out.ProximaRevision)
	assert.Equal(t, entity.PolicyFixedTime.String(), out.TipoModelo)
	// tiempo fijo: el punto de pedido es el stock de seguridad
	assert.True(t, s.Article("art-1").ReorderPoint.Equal(d("5")))
}

func TestAssign_LoteFijoDescartaParametrosDeTiempoFijo(t *testing.T) {
	s := seedCatalog(t)
	req := assignReq("sup-a", "mod-lote", false)
	req.TiempoFijo = intPtr(7)

	out, err := newLinkUC(s).Assign(context.Background(), req)
	require.NoError(t, err)

	assert.Nil(t, out.TiempoFijo)
	assert.Nil(t, out.ProximaRevision)
}

func TestAssign_DuplicadaMismaTerna(t *testing.T) {
	ctx := context.Background()
	s := seedCatalog(t)
	uc := newLinkUC(s)

	_, err := uc.Assign(ctx, assignReq("sup-a", "mod-lote", false))
	require.NoError(t, err)
	_, err = uc.Assign(ctx, assignReq("sup-a", "mod-lote", false))

	assert.Equal(t, domain.CodeDuplicateAssignment, codeOf(err))
}

func TestModify_MarcarPredeterminadoMantieneUnico(t *testing.T) {
	ctx := context.Background()
	s := seedCatalog(t)
	uc := newLinkUC(s)

	a, err := uc.Assign(ctx, assignReq("sup-a", "mod-lote", true))
	require.NoError(t, err)
	b, err := uc.Assign(ctx, assignReq("sup-b", "mod-lote", false))
	require.NoError(t, err)

	_, err = uc.Modify(ctx, dto.ModifySupplierLinkRequest{
		ID: b.ID, ModeloInventarioID: "mod-lote", CostoPedido: d("40"), CostoUnitario: d("2.5"),
		DemoraEntrega: 10, IsPredeterminado: true, StockSeguridad: d("8"), NivelServicio: d("90"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, s.ActiveDefaults("art-1"))
	assert.False(t, s.Link(a.ID).IsDefault)
	assert.True(t, s.Article("art-1").SafetyStock.Equal(d("8")), "el stock de seguridad sale de la asignación")
}

func TestModify_DesmarcarPredeterminadoLimpiaElCache(t *testing.T) {
	ctx := context.Background()
	s := seedCatalog(t)
	uc := newLinkUC(s)

	a, err := uc.Assign(ctx, assignReq("sup-a", "mod-lote", true))
	require.NoError(t, err)

	_, err = uc.Modify(ctx, dto.ModifySupplierLinkRequest{
		ID: a.ID, ModeloInventarioID: "mod-lote", CostoPedido: d("50"), CostoUnitario: d("3"),
		DemoraEntrega: 73, IsPredeterminado: false, StockSeguridad: d("5"), NivelServicio: d("95"),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, s.ActiveDefaults("art-1"))
	assert.Nil(t, s.Article("art-1").ReorderPoint)
}

// ──────────────────────────────────────────────────────────────────────────────
// Baja de asignaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestEliminate_UnicaAsignacionSinOrdenes(t *testing.T) {
	ctx := context.Background()
	s := seedCatalog(t)
	uc := newLinkUC(s)
	link, err := uc.Assign(ctx, assignReq("sup-a", "mod-lote", true))
	require.NoError(t, err)

	require.NoError(t, uc.Eliminate(ctx, link.ID))

	assert.False(t, s.Link(link.ID).IsActive())
	assert.Nil(t, s.Article("art-1").ReorderPoint)
}

func TestEliminate_ConOrdenAbiertaQuedaActiva(t *testing.T) {
	ctx := context.Background()
	s := seedCatalog(t)
	uc := newLinkUC(s)
	link, err := uc.Assign(ctx, assignReq("sup-a", "mod-lote", true))
	require.NoError(t, err)
	s.PutOrder(entity.PurchaseOrder{
		ID: "oc-1", SupplierID: "sup-a", Status: entity.PurchaseOrderSent,
		Lines: []entity.PurchaseOrderLine{{ID: "l-1", SupplierLinkID: link.ID, ArticleID: "art-1", Quantity: d("10")}},
	})

	err = uc.Eliminate(ctx, link.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, domain.CodeOpenPurchaseOrders, codeOf(err))
	assert.True(t, s.Link(link.ID).IsActive())
	assert.True(t, s.Link(link.ID).IsDefault)
}

func TestEliminate_OrdenFinalizadaNoBloquea(t *testing.T) {
	ctx := context.Background()
	s := seedCatalog(t)
	uc := newLinkUC(s)
	link, err := uc.Assign(ctx, assignReq("sup-a", "mod-lote", false))
	require.NoError(t, err)
	s.PutOrder(entity.PurchaseOrder{
		ID: "oc-1", SupplierID: "sup-a", Status: entity.PurchaseOrderFinalized,
		Lines: []entity.PurchaseOrderLine{{ID: "l-1", SupplierLinkID: link.ID, ArticleID: "art-1", Quantity: d("10")}},
	})

	assert.NoError(t, uc.Eliminate(ctx, link.ID))
}

func TestList_PorArticuloSoloVigentes(t *testing.T) {
	ctx := context.Background()
	s := seedCatalog(t)
	uc := newLinkUC(s)
	a, err := uc.Assign(ctx, assignReq("sup-a", "mod-lote", false))
	require.NoError(t, err)
	_, err = uc.Assign(ctx, assignReq("sup-b", "mod-lote", false))
	require.NoError(t, err)
	require.NoError(t, uc.Eliminate(ctx, a.ID))

	active, err := uc.List(ctx, "art-1", true)
	require.NoError(t, err)
	all, err := uc.List(ctx, "art-1", false)
	require.NoError(t, err)

	assert.Len(t, active, 1)
	assert.Len(t, all, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste de inventario en dos fases
// ──────────────────────────────────────────────────────────────────────────────

func newAdjustmentUC(s *apptest.Store) *appinv.AdjustmentUseCase {
	return appinv.NewAdjustmentUseCase(s, s.Repos().Articles, cache.NewMemoryAdjustmentStore(), time.Minute).WithClock(clock)
}

func seedWithReorderPoint(t *testing.T) *apptest.Store {
	t.Helper()
	s := seedCatalog(t)
	a := *s.Article("art-1")
	a.ReorderPoint = dp("10")
	a.SafetyStock = dp("3")
	s.PutArticle(a)
	return s
}

func TestConfirm_BajoPuntoSinForzarNoGuarda(t *testing.T) {
	s := seedWithReorderPoint(t)

	requires, err := newAdjustmentUC(s).Confirm(context.Background(), "art-1", d("5"), false)

	require.NoError(t, err)
	assert.True(t, requires)
	assert.True(t, s.Article("art-1").Stock.Equal(d("20")), "no se persiste")
}

func TestConfirm_BajoPuntoForzadoGuarda(t *testing.T) {
	s := seedWithReorderPoint(t)

	requires, err := newAdjustmentUC(s).Confirm(context.Background(), "art-1", d("5"), true)

	require.NoError(t, err)
	assert.True(t, requires)
	assert.True(t, s.Article("art-1").Stock.Equal(d("5")))
}

func TestConfirm_SobrePuntoGuarda(t *testing.T) {
	s := seedWithReorderPoint(t)
	uc := newAdjustmentUC(s)
	_, err := uc.Confirm(context.Background(), "art-1", d("5"), true)
	require.NoError(t, err)

	requires, err := uc.Confirm(context.Background(), "art-1", d("20"), false)

	require.NoError(t, err)
	assert.False(t, requires)
	assert.True(t, s.Article("art-1").Stock.Equal(d("20")))
}

func TestConfirm_IgualAlPuntoNoRequiereOrden(t *testing.T) {
	s := seedWithReorderPoint(t)

	requires, err := newAdjustmentUC(s).Confirm(context.Background(), "art-1", d("10"), false)

	require.NoError(t, err)
	assert.False(t, requires)
	assert.True(t, s.Article("art-1").Stock.Equal(d("10")))
}

func TestConfirm_StockNegativoEsValidacion(t *testing.T) {
	s := seedWithReorderPoint(t)

	_, err := newAdjustmentUC(s).Confirm(context.Background(), "art-1", d("-1"), true)

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestConfirm_SuperaInventarioMaximo(t *testing.T) {
	s := seedWithReorderPoint(t)

	_, err := newAdjustmentUC(s).Confirm(context.Background(), "art-1", d("1001"), false)

	assert.Equal(t, domain.CodeMaxInventoryExceeded, codeOf(err))
	assert.True(t, s.Article("art-1").Stock.Equal(d("20")))
}

func TestConfirm_ArticuloInexistente(t *testing.T) {
	s := seedWithReorderPoint(t)

	_, err := newAdjustmentUC(s).Confirm(context.Background(), "nada", d("5"), false)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRequest_TokenConfirmaUnaSolaVez(t *testing.T) {
	ctx := context.Background()
	s := seedWithReorderPoint(t)
	uc := newAdjustmentUC(s)

	res, err := uc.Request(ctx, "art-1", d("5"))
	require.NoError(t, err)
	require.True(t, res.Pendiente)
	assert.True(t, res.RequiereOrdenCompra)
	require.NotEmpty(t, res.Token)
	assert.Equal(t, fixedNow.Add(time.Minute), *res.VenceEn)
	assert.True(t, s.Article("art-1").Stock.Equal(d("20")), "pendiente: todavía no se guarda")

	art, err := uc.ConfirmToken(ctx, res.Token)
	require.NoError(t, err)
	assert.True(t, art.Stock.Equal(d("5")))
	assert.True(t, art.NecesitaReposicion)
	assert.False(t, art.Critico)

	_, err = uc.ConfirmToken(ctx, res.Token)
	assert.Equal(t, domain.CodeAdjustmentExpired, codeOf(err))
}

// failingTx delega en el Store salvo en la llamada número failOn a Run, que falla sin ejecutar fn.
type failingTx struct {
	*apptest.Store
	calls  int
	failOn int
}

func (f *failingTx) Run(ctx context.Context, fn func(r ports.TxRepos) error) error {
	f.calls++
	if f.calls == f.failOn {
		return errors.New("conexión perdida")
	}
	return f.Store.Run(ctx, fn)
}

func TestConfirmToken_FalloAlGuardarConservaElToken(t *testing.T) {
	ctx := context.Background()
	s := seedWithReorderPoint(t)
	// 1: Request, 2: primer ConfirmToken
	tx := &failingTx{Store: s, failOn: 2}
	uc := appinv.NewAdjustmentUseCase(tx, s.Repos().Articles, cache.NewMemoryAdjustmentStore(), time.Minute).WithClock(clock)

	res, err := uc.Request(ctx, "art-1", d("5"))
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	_, err = uc.ConfirmToken(ctx, res.Token)
	require.Error(t, err)
	assert.True(t, s.Article("art-1").Stock.Equal(d("20")))

	art, err := uc.ConfirmToken(ctx, res.Token)
	require.NoError(t, err, "el token sigue vigente tras el fallo")
	assert.True(t, art.Stock.Equal(d("5")))
}

func TestConfirmToken_VencidoNoSeRestaura(t *testing.T) {
	ctx := context.Background()
	s := seedWithReorderPoint(t)
	tx := &failingTx{Store: s, failOn: 2}
	now := fixedNow
	uc := appinv.NewAdjustmentUseCase(tx, s.Repos().Articles, cache.NewMemoryAdjustmentStore(), time.Minute).
		WithClock(func() time.Time { return now })

	res, err := uc.Request(ctx, "art-1", d("5"))
	require.NoError(t, err)
	now = fixedNow.Add(2 * time.Minute)

	_, err = uc.ConfirmToken(ctx, res.Token)
	require.Error(t, err)

	_, err = uc.ConfirmToken(ctx, res.Token)
	assert.Equal(t, domain.CodeAdjustmentExpired, codeOf(err))
}

func TestRequest_SinNecesidadGuardaDirecto(t *testing.T) {
	s := seedWithReorderPoint(t)

	res, err := newAdjustmentUC(s).Request(context.Background(), "art-1", d("15"))

	require.NoError(t, err)
	assert.False(t, res.Pendiente)
	assert.False(t, res.RequiereOrdenCompra)
	assert.Empty(t, res.Token)
	assert.True(t, s.Article("art-1").Stock.Equal(d("15")))
}

func TestGetArticle_EvaluaFiltrosIndependientes(t *testing.T) {
	s := seedWithReorderPoint(t)
	a := *s.Article("art-1")
	a.Stock = d("2")
	s.PutArticle(a)

	out, err := newAdjustmentUC(s).GetArticle(context.Background(), "art-1")

	require.NoError(t, err)
	assert.True(t, out.NecesitaReposicion)
	assert.True(t, out.Critico)
}

// ──────────────────────────────────────────────────────────────────────────────
// CGI y sugerencia de orden
// ──────────────────────────────────────────────────────────────────────────────

// seedCGI arma el caso de empate: A=120.00, B=95.50 (predeterminado), C=95.50.
func seedCGI(t *testing.T) *apptest.Store {
	t.Helper()
	s := seedCatalog(t)
	a := *s.Article("art-1")
	a.StorageCost = d("0")
	a.AnnualDemand = d("10")
	s.PutArticle(a)
	put := func(id, supplier, unit, ordering string, def bool) {
		s.PutLink(entity.SupplierLink{
			ID: id, ArticleID: "art-1", SupplierID: supplier, ModelID: "mod-lote",
			UnitCost: d(unit), OrderingCost: d(ordering), IsDefault: def, AssignedAt: fixedNow,
		})
	}
	put("l-a", "sup-a", "11", "10", false)
	put("l-b", "sup-b", "9", "5.50", true)
	put("l-c", "sup-c", "9.05", "5", false)
	return s
}

func TestCalculateCGI_EmpateYPredeterminado(t *testing.T) {
	s := seedCGI(t)
	uc := appinv.NewReplenishmentUseCase(s.Repos().Articles, s.Repos().Links, inventory.Params{})

	out, err := uc.CalculateCGI(context.Background(), "art-1")
	require.NoError(t, err)

	require.Len(t, out.DatosCGI, 3)
	byLink := map[string]dto.CGIRowDTO{}
	for _, row := range out.DatosCGI {
		byLink[row.IDArticuloProveedor] = row
	}
	assert.True(t, byLink["l-a"].CGI.Equal(d("120")))
	assert.True(t, byLink["l-b"].CGI.Equal(d("95.50")))
	assert.True(t, byLink["l-c"].CGI.Equal(d("95.50")))
	assert.True(t, byLink["l-b"].Minimo)
	assert.True(t, byLink["l-c"].Minimo)
	assert.False(t, byLink["l-a"].Minimo)
	assert.Equal(t, "l-b", out.IDArticuloProveedorMinimo)
	assert.Equal(t, "l-b", out.IDArticuloProveedorPredet)
	assert.Equal(t, []string{"l-b", "l-c"}, out.Empatados)
	assert.Equal(t, "Tornillo", out.NombreArticulo)
}

func TestCalculateCGI_SinEmpateNoListaEmpatados(t *testing.T) {
	s := seedCGI(t)
	l := *s.Link("l-c")
	l.UnitCost = d("10")
	s.PutLink(l)
	uc := appinv.NewReplenishmentUseCase(s.Repos().Articles, s.Repos().Links, inventory.Params{})

	out, err := uc.CalculateCGI(context.Background(), "art-1")

	require.NoError(t, err)
	assert.Equal(t, "l-b", out.IDArticuloProveedorMinimo)
	assert.Empty(t, out.Empatados)
}

func TestCalculateCGI_ModeloSinResolver(t *testing.T) {
	s := seedCGI(t)
	s.PutLink(entity.SupplierLink{
		ID: "l-x", ArticleID: "art-1", SupplierID: "sup-a", ModelID: "mod-borrado",
		UnitCost: d("1"), AssignedAt: fixedNow,
	})
	uc := appinv.NewReplenishmentUseCase(s.Repos().Articles, s.Repos().Links, inventory.Params{})

	_, err := uc.CalculateCGI(context.Background(), "art-1")

	assert.True(t, errors.Is(err, domain.ErrModelNotConfigured))
}

func TestSuggestOrder_CambioDeProveedorReiniciaCantidad(t *testing.T) {
	ctx := context.Background()
	s := seedCatalog(t)
	a := *s.Article("art-1")
	a.Stock = d("0")
	s.PutArticle(a)
	s.PutLink(entity.SupplierLink{ID: "l-a", ArticleID: "art-1", SupplierID: "sup-a", ModelID: "mod-lote",
		UnitCost: d("3"), OrderingCost: d("50"), IsDefault: true, AssignedAt: fixedNow})
	s.PutLink(entity.SupplierLink{ID: "l-b", ArticleID: "art-1", SupplierID: "sup-b", ModelID: "mod-lote",
		UnitCost: d("2"), OrderingCost: d("60"), AssignedAt: fixedNow})
	uc := appinv.NewReplenishmentUseCase(s.Repos().Articles, s.Repos().Links, inventory.Params{})

	def, err := uc.SuggestOrder(ctx, "art-1", "", nil)
	require.NoError(t, err)
	require.NotNil(t, def.Seleccion)
	assert.Equal(t, "l-a", def.Seleccion.ArticuloProveedorID)
	assert.True(t, def.Seleccion.Cantidad.Equal(d("224")))
	assert.Equal(t, "sup-a", def.ProveedorPredeterminadoID)
	assert.Len(t, def.Proveedores, 2)

	other, err := uc.SuggestOrder(ctx, "art-1", "l-b", nil)
	require.NoError(t, err)
	assert.True(t, other.Seleccion.Cantidad.Equal(d("1")))

	back, err := uc.SuggestOrder(ctx, "art-1", "l-a", nil)
	require.NoError(t, err)
	assert.True(t, back.Seleccion.Cantidad.Equal(d("224")))
}

func TestSuggestOrder_CantidadManual(t *testing.T) {
	ctx := context.Background()
	s := seedCatalog(t)
	s.PutLink(entity.SupplierLink{ID: "l-a", ArticleID: "art-1", SupplierID: "sup-a", ModelID: "mod-lote",
		UnitCost: d("3"), OrderingCost: d("50"), IsDefault: true, AssignedAt: fixedNow})
	s.PutLink(entity.SupplierLink{ID: "l-b", ArticleID: "art-1", SupplierID: "sup-b", ModelID: "mod-lote",
		UnitCost: d("2"), OrderingCost: d("60"), AssignedAt: fixedNow})
	uc := appinv.NewReplenishmentUseCase(s.Repos().Articles, s.Repos().Links, inventory.Params{})

	out, err := uc.SuggestOrder(ctx, "art-1", "l-b", dp("40"))
	require.NoError(t, err)
	assert.Equal(t, "l-b", out.Seleccion.ArticuloProveedorID)
	assert.True(t, out.Seleccion.Cantidad.Equal(d("40")))

	_, err = uc.SuggestOrder(ctx, "art-1", "l-b", dp("0"))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "cantidad")
}

func TestSuggestOrder_CantidadSinProveedorElegido(t *testing.T) {
	s := seedCatalog(t)
	s.PutLink(entity.SupplierLink{ID: "l-b", ArticleID: "art-1", SupplierID: "sup-b", ModelID: "mod-lote",
		UnitCost: d("2"), OrderingCost: d("60"), AssignedAt: fixedNow})
	uc := appinv.NewReplenishmentUseCase(s.Repos().Articles, s.Repos().Links, inventory.Params{})

	_, err := uc.SuggestOrder(context.Background(), "art-1", "", dp("5"))

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "cantidad")
}

func TestSuggestOrder_SinPredeterminado(t *testing.T) {
	s := seedCatalog(t)
	s.PutLink(entity.SupplierLink{ID: "l-b", ArticleID: "art-1", SupplierID: "sup-b", ModelID: "mod-lote",
		UnitCost: d("2"), OrderingCost: d("60"), AssignedAt: fixedNow})
	uc := appinv.NewReplenishmentUseCase(s.Repos().Articles, s.Repos().Links, inventory.Params{})

	out, err := uc.SuggestOrder(context.Background(), "art-1", "", nil)

	require.NoError(t, err)
	assert.Nil(t, out.Seleccion)
	assert.Equal(t, inventory.NoDefault.String(), out.Estado)
	assert.True(t, out.CantidadPredeterminada.Equal(d("1")))
}

func TestSuggestOrder_SinProveedores(t *testing.T) {
	s := seedCatalog(t)
	uc := appinv.NewReplenishmentUseCase(s.Repos().Articles, s.Repos().Links, inventory.Params{})

	out, err := uc.SuggestOrder(context.Background(), "art-1", "", nil)

	require.NoError(t, err)
	assert.Equal(t, inventory.NoSuppliers.String(), out.Estado)
	assert.Empty(t, out.Proveedores)
}
