package usecase_test

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
	"github.com/jhoicas/reposicion-api/internal/application/usecase"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func codeOf(err error) string {
	var be *domain.BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

func seed() *apptest.Store {
	s := apptest.NewStore()
	s.PutArticle(entity.Article{ID: "art-1", Name: "Tuerca", UnitPrice: d("1"), Stock: d("0"), MaxInventory: d("100")})
	s.PutSupplier(entity.Supplier{ID: "sup-1", Name: "Acme"})
	s.PutModel(entity.InventoryModel{ID: "mod-1", Name: "Lote Fijo"})
	s.PutLink(entity.SupplierLink{ID: "l-1", ArticleID: "art-1", SupplierID: "sup-1", ModelID: "mod-1",
		UnitCost: d("1"), IsDefault: true, AssignedAt: time.Now()})
	return s
}

func newArticleUC(s *apptest.Store) *usecase.ArticleUseCase {
	return usecase.NewArticleUseCase(s.Repos().Articles, s, inventory.Params{})
}

// ──────────────────────────────────────────────────────────────────────────────
// Artículos
// ──────────────────────────────────────────────────────────────────────────────

func TestArticleCreate_ValidaCampos(t *testing.T) {
	s := apptest.NewStore()
	uc := newArticleUC(s)

	_, err := uc.Create(context.Background(), dto.ArticleRequest{Nombre: "", PrecioUnitario: d("0"), InventarioMaxArticulo: d("10"), Stock: d("20")})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "nombre")
	assert.Contains(t, verr.Fields, "precioUnitario")
	assert.Contains(t, verr.Fields, "stock")
	assert.Equal(t, 0, s.Writes)
}

func TestArticleCreate_SinPuntoDePedido(t *testing.T) {
	s := apptest.NewStore()
	uc := newArticleUC(s)

	out, err := uc.Create(context.Background(), dto.ArticleRequest{
		Nombre: "Arandela", PrecioUnitario: d("1.5"), InventarioMaxArticulo: d("100"), Stock: d("10"),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Nil(t, out.PuntoPedido)
	assert.Nil(t, out.FhBajaArticulo)
}

func TestArticleUpdate_RecalculaPuntoDePedidoAlCambiarDemanda(t *testing.T) {
	s := seed()
	l := *s.Link("l-1")
	l.LeadTimeDays = 73
	l.SafetyStock = d("5")
	s.PutLink(l)
	a := *s.Article("art-1")
	a.AnnualDemand = d("1000")
	rp, ss := d("205"), d("5")
	a.ReorderPoint, a.SafetyStock = &rp, &ss
	s.PutArticle(a)
	uc := newArticleUC(s)

	out, err := uc.Update(context.Background(), dto.UpdateArticleRequest{
		ID: "art-1", Nombre: "Tuerca", PrecioUnitario: d("1"), InventarioMaxArticulo: d("100"), DemandaArticulo: d("0"),
	})

	require.NoError(t, err)
	// sin demanda el punto de pedido queda en el stock de seguridad
	require.NotNil(t, out.PuntoPedido)
	assert.True(t, out.PuntoPedido.Equal(d("5")), "got %s", out.PuntoPedido)
	assert.True(t, s.Article("art-1").ReorderPoint.Equal(d("5")))
	assert.Contains(t, s.Locked, "articulo:art-1")
}

func TestArticleUpdate_SinPredeterminadoConservaPuntoDePedido(t *testing.T) {
	s := seed()
	l := *s.Link("l-1")
	l.IsDefault = false
	s.PutLink(l)
	a := *s.Article("art-1")
	rp := d("12")
	a.ReorderPoint = &rp
	s.PutArticle(a)

	_, err := newArticleUC(s).Update(context.Background(), dto.UpdateArticleRequest{
		ID: "art-1", Nombre: "Tuerca M8", PrecioUnitario: d("1"), InventarioMaxArticulo: d("100"), DemandaArticulo: d("50"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Tuerca M8", s.Article("art-1").Name)
	assert.True(t, s.Article("art-1").ReorderPoint.Equal(d("12")))
}

func TestArticleDelete_ConStockSeRechaza(t *testing.T) {
	s := seed()
	a := *s.Article("art-1")
	a.Stock = d("3")
	s.PutArticle(a)

	err := newArticleUC(s).Delete(context.Background(), "art-1")

	assert.Equal(t, domain.CodeArticleHasStock, codeOf(err))
	assert.True(t, s.Article("art-1").IsActive())
}

func TestArticleDelete_ConOrdenAbiertaSeRechaza(t *testing.T) {
	s := seed()
	s.PutOrder(entity.PurchaseOrder{ID: "oc-1", SupplierID: "sup-1", Status: entity.PurchaseOrderPending,
		Lines: []entity.PurchaseOrderLine{{SupplierLinkID: "l-1", ArticleID: "art-1", Quantity: d("1")}}})

	err := newArticleUC(s).Delete(context.Background(), "art-1")

	assert.Equal(t, domain.CodeOpenPurchaseOrders, codeOf(err))
	assert.True(t, s.Article("art-1").IsActive())
}

func TestArticleDelete_DaDeBajaSusAsignaciones(t *testing.T) {
	s := seed()

	require.NoError(t, newArticleUC(s).Delete(context.Background(), "art-1"))

	assert.False(t, s.Article("art-1").IsActive())
	assert.False(t, s.Link("l-1").IsActive())
}

func TestArticleLists_FaltantesYReponerSonIndependientes(t *testing.T) {
	s := apptest.NewStore()
	rp, ss := d("10"), d("3")
	s.PutArticle(entity.Article{ID: "a", Name: "A", Stock: d("5"), ReorderPoint: &rp, SafetyStock: &ss})
	s.PutArticle(entity.Article{ID: "b", Name: "B", Stock: d("2"), ReorderPoint: &rp, SafetyStock: &ss})
	s.PutArticle(entity.Article{ID: "c", Name: "C", Stock: d("50"), ReorderPoint: &rp, SafetyStock: &ss})
	uc := newArticleUC(s)

	reponer, err := uc.ListToReplenish(context.Background())
	require.NoError(t, err)
	faltantes, err := uc.ListCritical(context.Background())
	require.NoError(t, err)

	assert.Len(t, reponer, 2)
	require.Len(t, faltantes, 1)
	assert.Equal(t, "b", faltantes[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores y modelos
// ──────────────────────────────────────────────────────────────────────────────

func TestSupplierDelete_PredeterminadoDeArticuloVigente(t *testing.T) {
	s := seed()

	err := usecase.NewSupplierUseCase(s.Repos().Suppliers, s).Delete(context.Background(), "sup-1")

	require.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, domain.CodeDefaultSupplierInUse, codeOf(err))
	assert.Contains(t, err.Error(), "Tuerca")
}

func TestSupplierDelete_SinUsoDaDeBajaAsignaciones(t *testing.T) {
	s := seed()
	l := *s.Link("l-1")
	l.IsDefault = false
	s.PutLink(l)

	require.NoError(t, usecase.NewSupplierUseCase(s.Repos().Suppliers, s).Delete(context.Background(), "sup-1"))

	assert.False(t, s.Link("l-1").IsActive())
	list, err := usecase.NewSupplierUseCase(s.Repos().Suppliers, s).List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSupplierDelete_BloqueaElProveedor(t *testing.T) {
	s := seed()
	l := *s.Link("l-1")
	l.IsDefault = false
	s.PutLink(l)

	require.NoError(t, usecase.NewSupplierUseCase(s.Repos().Suppliers, s).Delete(context.Background(), "sup-1"))

	assert.Equal(t, []string{"proveedor:sup-1"}, s.Locked)
}

func TestSupplierDelete_Inexistente(t *testing.T) {
	s := seed()

	err := usecase.NewSupplierUseCase(s.Repos().Suppliers, s).Delete(context.Background(), "nada")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestModelDelete_ConAsignacionesActivas(t *testing.T) {
	s := seed()

	err := usecase.NewInventoryModelUseCase(s.Repos().Models, s).Delete(context.Background(), "mod-1")

	assert.Equal(t, domain.CodeModelInUse, codeOf(err))
}

func TestModelUpdate_CambioDePoliticaEnUso(t *testing.T) {
	s := seed()
	uc := usecase.NewInventoryModelUseCase(s.Repos().Models, s)

	_, err := uc.Update(context.Background(), "mod-1", dto.InventoryModelRequest{NombreMI: "Tiempo Fijo semanal"})
	assert.Equal(t, domain.CodeModelInUse, codeOf(err))

	out, err := uc.Update(context.Background(), "mod-1", dto.InventoryModelRequest{NombreMI: "LOTE FIJO mensual"})
	require.NoError(t, err)
	assert.Equal(t, entity.PolicyFixedLot.String(), out.TipoModelo)
}
