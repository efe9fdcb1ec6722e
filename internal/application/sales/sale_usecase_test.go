package sales_test

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
	"github.com/jhoicas/reposicion-api/internal/application/sales"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func seed() *apptest.Store {
	s := apptest.NewStore()
	rp := d("10")
	s.PutArticle(entity.Article{ID: "art-1", Name: "Tornillo", UnitPrice: d("1.25"), StorageCost: d("2"),
		Stock: d("12"), MaxInventory: d("1000"), AnnualDemand: d("1000"), ReorderPoint: &rp})
	s.PutArticle(entity.Article{ID: "art-2", Name: "Tuerca", UnitPrice: d("0.50"), Stock: d("100"), MaxInventory: d("1000")})
	s.PutSupplier(entity.Supplier{ID: "sup-a", Name: "Acme"})
	s.PutModel(entity.InventoryModel{ID: "mod-lote", Name: "Lote Fijo"})
	s.PutLink(entity.SupplierLink{ID: "l-1", ArticleID: "art-1", SupplierID: "sup-a", ModelID: "mod-lote",
		UnitCost: d("1"), OrderingCost: d("50"), IsDefault: true, AssignedAt: fixedNow})
	return s
}

func newUC(s *apptest.Store, auto bool) *sales.SaleUseCase {
	return sales.NewSaleUseCase(s, s.Repos().Sales, inventory.Params{}, auto).
		WithClock(func() time.Time { return fixedNow })
}

func TestCreate_DescuentaStockYCalculaTotal(t *testing.T) {
	s := seed()

	out, err := newUC(s, false).Create(context.Background(), dto.CreateSaleRequest{Detalles: []dto.SaleLineRequest{
		{ArticuloID: "art-1", Cantidad: d("1")},
		{ArticuloID: "art-2", Cantidad: d("4")},
		{ArticuloID: "art-1", Cantidad: d("1")},
	}})
	require.NoError(t, err)

	assert.True(t, s.Article("art-1").Stock.Equal(d("10")))
	assert.True(t, s.Article("art-2").Stock.Equal(d("96")))
	require.Len(t, out.Detalles, 2, "las líneas del mismo artículo se suman")
	assert.True(t, out.Total.Equal(d("4.50")))
	assert.Empty(t, out.ArticulosAReponer, "stock igual al punto de pedido no dispara")
}

func TestCreate_StockInsuficienteNoEscribeNada(t *testing.T) {
	s := seed()

	_, err := newUC(s, true).Create(context.Background(), dto.CreateSaleRequest{Detalles: []dto.SaleLineRequest{
		{ArticuloID: "art-2", Cantidad: d("1")},
		{ArticuloID: "art-1", Cantidad: d("13")},
	}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, s.Article("art-2").Stock.Equal(d("100")))
	assert.Equal(t, 0, s.Writes)
}

func TestCreate_InformaArticulosAReponer(t *testing.T) {
	s := seed()

	out, err := newUC(s, false).Create(context.Background(), dto.CreateSaleRequest{Detalles: []dto.SaleLineRequest{
		{ArticuloID: "art-1", Cantidad: d("3")},
	}})

	require.NoError(t, err)
	assert.Equal(t, []string{"Tornillo"}, out.ArticulosAReponer)
	assert.Empty(t, out.OrdenesGeneradas)
	assert.Empty(t, s.Orders())
}

func TestCreate_PedidoAutomaticoLoteFijo(t *testing.T) {
	ctx := context.Background()
	s := seed()
	uc := newUC(s, true)

	out, err := uc.Create(ctx, dto.CreateSaleRequest{Detalles: []dto.SaleLineRequest{{ArticuloID: "art-1", Cantidad: d("3")}}})
	require.NoError(t, err)

	require.Len(t, out.OrdenesGeneradas, 1)
	o := out.OrdenesGeneradas[0]
	assert.Equal(t, string(entity.PurchaseOrderPending), o.Estado)
	// EOQ: sqrt(2 * 1000 * 50 / 2) = 223.6 → 224
	assert.True(t, o.Detalles[0].Cantidad.Equal(d("224")))

	// con una orden abierta no se genera otra
	again, err := uc.Create(ctx, dto.CreateSaleRequest{Detalles: []dto.SaleLineRequest{{ArticuloID: "art-1", Cantidad: d("1")}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tornillo"}, again.ArticulosAReponer)
	assert.Empty(t, again.OrdenesGeneradas)
	assert.Len(t, s.Orders(), 1)
}

func TestCreate_Validacion(t *testing.T) {
	s := seed()

	_, err := newUC(s, false).Create(context.Background(), dto.CreateSaleRequest{Detalles: []dto.SaleLineRequest{
		{ArticuloID: "", Cantidad: d("1")},
		{ArticuloID: "art-1", Cantidad: d("-2")},
	}})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "detalles[0].articuloId")
	assert.Contains(t, verr.Fields, "detalles[1].cantidad")
}

func TestGetByIDYList(t *testing.T) {
	ctx := context.Background()
	s := seed()
	uc := newUC(s, false)
	created, err := uc.Create(ctx, dto.CreateSaleRequest{Detalles: []dto.SaleLineRequest{{ArticuloID: "art-2", Cantidad: d("1")}}})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(d("0.50")))

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.GetByID(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
