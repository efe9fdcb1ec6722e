package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
)

// ReplenishmentUseCase compara proveedores de un artículo: CGI por asignación y sugerencia de orden.
type ReplenishmentUseCase struct {
	articles repository.ArticleRepository
	links    repository.SupplierLinkRepository
	params   inventory.Params
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	articles repository.ArticleRepository,
	links repository.SupplierLinkRepository,
	params inventory.Params,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{articles: articles, links: links, params: params}
}

func (uc *ReplenishmentUseCase) load(ctx context.Context, articleID string) (*entity.Article, []*entity.SupplierLink, error) {
	a, err := uc.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, nil, err
	}
	if a == nil {
		return nil, nil, domain.ErrNotFound
	}
	links, err := uc.links.ListByArticle(ctx, articleID, true)
	if err != nil {
		return nil, nil, err
	}
	return a, links, nil
}

// CalculateCGI calcula el CGI de cada asignación activa del artículo. El mínimo y el predeterminado
// se informan por separado; ante empate de CGI gana el menor id de proveedor y luego de asignación.
func (uc *ReplenishmentUseCase) CalculateCGI(ctx context.Context, articleID string) (*dto.CGIResponse, error) {
	a, links, err := uc.load(ctx, articleID)
	if err != nil {
		return nil, err
	}
	res, err := uc.params.ComputeCGI(a, links)
	if err != nil {
		return nil, err
	}
	out := &dto.CGIResponse{NombreArticulo: a.Name, DatosCGI: make([]dto.CGIRowDTO, 0, len(res.Rows))}
	for _, row := range res.Rows {
		out.DatosCGI = append(out.DatosCGI, dto.CGIRowDTO{
			IDArticuloProveedor: row.LinkID,
			IDProveedor:         row.SupplierID,
			NombreProveedor:     row.SupplierName,
			NombreTipoModelo:    row.ModelName,
			CantidadReferencia:  row.Quantity,
			CostoCompra:         row.PurchaseCost,
			CostoPedido:         row.OrderingCost,
			CostoAlmacenamiento: row.HoldingCost,
			CGI:                 row.CGI,
			Predeterminado:      row.IsDefault,
			Minimo:              row.IsMinimum,
		})
	}
	if c := res.CheapestRow(); c != nil {
		out.IDArticuloProveedorMinimo = c.LinkID
	}
	if d := res.DefaultRow(); d != nil {
		out.IDArticuloProveedorPredet = d.LinkID
	}
	if tied := res.Tied(); len(tied) > 1 {
		for _, row := range tied {
			out.Empatados = append(out.Empatados, row.LinkID)
		}
	}
	return out, nil
}

// SuggestOrder arma los candidatos para una línea de orden de compra. Con linkID vacío la
// selección es el predeterminado; con otro linkID la cantidad vuelve a 1. quantity, si viene,
// reemplaza la cantidad de la selección y exige que haya una asignación elegida.
func (uc *ReplenishmentUseCase) SuggestOrder(ctx context.Context, articleID, linkID string, quantity *decimal.Decimal) (*dto.OrderSuggestionDTO, error) {
	if quantity != nil && !quantity.IsPositive() {
		return nil, domain.NewValidation("cantidad", "debe ser mayor a 0")
	}
	a, links, err := uc.load(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !a.IsActive() {
		return nil, domain.NewConflict(domain.CodeArticleInactive, "el artículo está dado de baja")
	}
	s, err := uc.params.Suggest(a, links)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderSuggestionDTO{
		IDArticulo:                     a.ID,
		NombreArticulo:                 a.Name,
		Proveedores:                    make([]dto.CandidateSupplierDTO, 0, len(s.Candidates)),
		ArticuloProveedorPredeterminID: s.DefaultLinkID,
		CantidadPredeterminada:         s.DefaultQuantity,
		Estado:                         s.Outcome.String(),
	}
	for _, c := range s.Candidates {
		out.Proveedores = append(out.Proveedores, dto.CandidateSupplierDTO{
			ArticuloProveedorID: c.LinkID,
			IDProveedor:         c.SupplierID,
			NombreProveedor:     c.SupplierName,
			NombreTipoModelo:    c.ModelName,
			CostoUnitario:       c.UnitCost,
			CostoPedido:         c.OrderingCost,
			Predeterminado:      c.IsDefault,
		})
		if c.IsDefault {
			out.ProveedorPredeterminadoID = c.SupplierID
		}
	}

	sel := s.Select()
	if linkID != "" {
		if _, ok := s.Candidate(linkID); !ok {
			return nil, domain.ErrNotFound
		}
		sel.Choose(linkID)
	}
	if quantity != nil {
		if sel.LinkID() == "" {
			return nil, domain.NewValidation("cantidad", "requiere un proveedor elegido (idArticuloProveedor)")
		}
		sel.SetQuantity(*quantity)
	}
	if sel.LinkID() != "" {
		out.Seleccion = &dto.SelectionDTO{ArticuloProveedorID: sel.LinkID(), Cantidad: sel.Quantity()}
	}
	return out, nil
}
