package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

// CGIRow costo de gestión de inventario para una asignación.
type CGIRow struct {
	LinkID       string
	SupplierID   string
	SupplierName string
	ModelName    string
	Policy       entity.Policy
	Quantity     decimal.Decimal // cantidad de referencia de la política
	PurchaseCost decimal.Decimal // costoUnitario * Q
	OrderingCost decimal.Decimal // costo por pedido configurado
	HoldingCost  decimal.Decimal // costoAlmacenamiento * (Q/2 + SS)
	CGI          decimal.Decimal
	IsDefault    bool
	IsMinimum    bool // empata con el mínimo
}

// CGIResult resultado del cálculo para un artículo.
// Cheapest es el índice de la fila elegida como más económica (-1 si no hay filas);
// ante empate gana el proveedor de menor ID y luego la asignación de menor ID.
// Default es el índice de la asignación predeterminada (-1 si no hay).
type CGIResult struct {
	Rows     []CGIRow
	Cheapest int
	Default  int
}

// CheapestRow devuelve la fila más económica o nil.
func (r CGIResult) CheapestRow() *CGIRow {
	if r.Cheapest < 0 {
		return nil
	}
	return &r.Rows[r.Cheapest]
}

// DefaultRow devuelve la fila predeterminada o nil.
func (r CGIResult) DefaultRow() *CGIRow {
	if r.Default < 0 {
		return nil
	}
	return &r.Rows[r.Default]
}

// Tied devuelve las filas que empatan con el mínimo.
func (r CGIResult) Tied() []CGIRow {
	var out []CGIRow
	for _, row := range r.Rows {
		if row.IsMinimum {
			out = append(out, row)
		}
	}
	return out
}

// ComputeCGI calcula el CGI de cada asignación activa del artículo. El orden de salida
// respeta el de entrada.
func (p Params) ComputeCGI(a *entity.Article, links []*entity.SupplierLink) (CGIResult, error) {
	res := CGIResult{Cheapest: -1, Default: -1}
	for _, l := range ActiveLinks(links) {
		q, err := p.ReferenceQuantity(a, l)
		if err != nil {
			return CGIResult{}, err
		}
		row := CGIRow{
			LinkID:       l.ID,
			SupplierID:   l.SupplierID,
			SupplierName: l.SupplierName,
			ModelName:    l.ModelName,
			Policy:       l.Policy,
			Quantity:     q,
			PurchaseCost: l.UnitCost.Mul(q).Round(2),
			OrderingCost: l.OrderingCost.Round(2),
			HoldingCost:  a.StorageCost.Mul(q.Div(two).Add(l.SafetyStock)).Round(2),
			IsDefault:    l.IsDefault,
		}
		row.CGI = row.PurchaseCost.Add(row.OrderingCost).Add(row.HoldingCost)
		res.Rows = append(res.Rows, row)
		if row.IsDefault {
			res.Default = len(res.Rows) - 1
		}
	}
	if len(res.Rows) == 0 {
		return res, nil
	}

	lowest := res.Rows[0].CGI
	for _, row := range res.Rows[1:] {
		if row.CGI.LessThan(lowest) {
			lowest = row.CGI
		}
	}
	for i := range res.Rows {
		if !res.Rows[i].CGI.Equal(lowest) {
			continue
		}
		res.Rows[i].IsMinimum = true
		if res.Cheapest < 0 || lessByID(res.Rows[i], res.Rows[res.Cheapest]) {
			res.Cheapest = i
		}
	}
	return res, nil
}

func lessByID(a, b CGIRow) bool {
	if a.SupplierID != b.SupplierID {
		return a.SupplierID < b.SupplierID
	}
	return a.LinkID < b.LinkID
}
