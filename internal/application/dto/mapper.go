package dto

import "github.com/jhoicas/reposicion-api/internal/domain/entity"

// FromArticle convierte la entidad a su respuesta HTTP.
func FromArticle(a *entity.Article) ArticleResponse {
	return ArticleResponse{
		ID:                    a.ID,
		Nombre:                a.Name,
		DescripcionArt:        a.Description,
		PrecioUnitario:        a.UnitPrice,
		CostoAlmacenamiento:   a.StorageCost,
		Stock:                 a.Stock,
		InventarioMaxArticulo: a.MaxInventory,
		DemandaArticulo:       a.AnnualDemand,
		PuntoPedido:           a.ReorderPoint,
		StockSeguridad:        a.SafetyStock,
		FhBajaArticulo:        a.DeletedAt,
	}
}

// FromSupplier convierte la entidad a su respuesta HTTP.
func FromSupplier(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{IDProveedor: s.ID, NombreProveedor: s.Name, FhBajaProveedor: s.DeletedAt}
}

// FromInventoryModel convierte la entidad a su respuesta HTTP.
func FromInventoryModel(m *entity.InventoryModel) InventoryModelResponse {
	return InventoryModelResponse{
		IDMI:       m.ID,
		NombreMI:   m.Name,
		TipoModelo: m.Policy().String(),
		FhBajaMI:   m.DeletedAt,
	}
}

// FromSupplierLink convierte la entidad a su respuesta HTTP.
func FromSupplierLink(l *entity.SupplierLink) SupplierLinkResponse {
	return SupplierLinkResponse{
		ID:                     l.ID,
		ArticuloID:             l.ArticleID,
		ProveedorID:            l.SupplierID,
		NombreProveedor:        l.SupplierName,
		ModeloInventarioID:     l.ModelID,
		NombreModeloInventario: l.ModelName,
		TipoModelo:             l.Policy.String(),
		CostoPedido:            l.OrderingCost,
		CostoUnitario:          l.UnitCost,
		DemoraEntrega:          l.LeadTimeDays,
		IsPredeterminado:       l.IsDefault,
		StockSeguridad:         l.SafetyStock,
		NivelServicio:          l.ServiceLevel,
		ProximaRevision:        l.NextReviewDate,
		TiempoFijo:             l.FixedTimeDays,
		FhAsignacion:           l.AssignedAt,
		FhBaja:                 l.DeactivatedAt,
	}
}

// FromPurchaseOrder convierte la entidad a su respuesta HTTP.
func FromPurchaseOrder(o *entity.PurchaseOrder) PurchaseOrderResponse {
	lines := make([]PurchaseOrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, PurchaseOrderLineResponse{
			ID:                  l.ID,
			ArticuloProveedorID: l.SupplierLinkID,
			IDArticulo:          l.ArticleID,
			NombreArticulo:      l.ArticleName,
			Cantidad:            l.Quantity,
			CostoUnitario:       l.UnitCost,
			SubTotal:            l.SubTotal,
		})
	}
	return PurchaseOrderResponse{
		ID:              o.ID,
		IDProveedor:     o.SupplierID,
		NombreProveedor: o.SupplierName,
		Estado:          string(o.Status),
		Total:           o.Total,
		FhCreacion:      o.CreatedAt,
		Detalles:        lines,
	}
}

// FromPurchaseOrders convierte una lista de órdenes.
func FromPurchaseOrders(orders []*entity.PurchaseOrder) []PurchaseOrderResponse {
	out := make([]PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromPurchaseOrder(o))
	}
	return out
}

// FromSale convierte la entidad a su respuesta HTTP.
func FromSale(s *entity.Sale) SaleResponse {
	lines := make([]SaleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, SaleLineResponse{
			ID:             l.ID,
			IDArticulo:     l.ArticleID,
			NombreArticulo: l.ArticleName,
			Cantidad:       l.Quantity,
			PrecioUnitario: l.UnitPrice,
			SubTotal:       l.SubTotal,
		})
	}
	return SaleResponse{ID: s.ID, Total: s.Total, FhVenta: s.CreatedAt, Detalles: lines}
}
