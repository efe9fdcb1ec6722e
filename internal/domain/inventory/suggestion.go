package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

// Candidate proveedor candidato para una línea de orden de compra.
type Candidate struct {
	LinkID       string
	SupplierID   string
	SupplierName string
	ModelName    string
	Policy       entity.Policy
	UnitCost     decimal.Decimal
	OrderingCost decimal.Decimal
	IsDefault    bool
}

// Suggestion sugerencia de pedido para un artículo.
// Si hay predeterminado, DefaultLinkID lo preselecciona con la cantidad de su política;
// si no, DefaultLinkID es vacío y DefaultQuantity es 1.
type Suggestion struct {
	ArticleID       string
	Candidates      []Candidate
	DefaultLinkID   string
	DefaultQuantity decimal.Decimal
	Outcome         DefaultOutcome
}

// Suggest arma la sugerencia de pedido a partir de las asignaciones activas.
func (p Params) Suggest(a *entity.Article, links []*entity.SupplierLink) (Suggestion, error) {
	active := ActiveLinks(links)
	s := Suggestion{ArticleID: a.ID, Candidates: make([]Candidate, 0, len(active)), DefaultQuantity: one}
	for _, l := range active {
		s.Candidates = append(s.Candidates, Candidate{
			LinkID:       l.ID,
			SupplierID:   l.SupplierID,
			SupplierName: l.SupplierName,
			ModelName:    l.ModelName,
			Policy:       l.Policy,
			UnitCost:     l.UnitCost,
			OrderingCost: l.OrderingCost,
			IsDefault:    l.IsDefault,
		})
	}
	def, outcome := SelectDefault(active)
	s.Outcome = outcome
	if def == nil {
		return s, nil
	}
	q, err := p.SuggestedQuantity(a, def)
	if err != nil {
		return Suggestion{}, err
	}
	s.DefaultLinkID = def.ID
	s.DefaultQuantity = q
	return s, nil
}

// HasDefault indica si la sugerencia trae preselección.
func (s Suggestion) HasDefault() bool { return s.DefaultLinkID != "" }

// QuantityFor cantidad que corresponde al elegir la asignación indicada:
// la de la política para el predeterminado, 1 para cualquier otra.
func (s Suggestion) QuantityFor(linkID string) decimal.Decimal {
	if s.HasDefault() && linkID == s.DefaultLinkID {
		return s.DefaultQuantity
	}
	return one
}

// Candidate busca un candidato por ID de asignación.
func (s Suggestion) Candidate(linkID string) (Candidate, bool) {
	for _, c := range s.Candidates {
		if c.LinkID == linkID {
			return c, true
		}
	}
	return Candidate{}, false
}

// Selection estado de edición de una línea a partir de una sugerencia.
// Cambiar de proveedor recalcula la cantidad; la cantidad tipeada no sobrevive al cambio.
type Selection struct {
	suggestion Suggestion
	linkID     string
	quantity   decimal.Decimal
}

// Select inicia la edición con la preselección de la sugerencia.
func (s Suggestion) Select() *Selection {
	return &Selection{suggestion: s, linkID: s.DefaultLinkID, quantity: s.QuantityFor(s.DefaultLinkID)}
}

// Choose cambia el proveedor elegido y reinicia la cantidad.
func (sel *Selection) Choose(linkID string) {
	sel.linkID = linkID
	sel.quantity = sel.suggestion.QuantityFor(linkID)
}

// SetQuantity registra una cantidad ingresada manualmente.
func (sel *Selection) SetQuantity(q decimal.Decimal) { sel.quantity = q }

// LinkID asignación elegida (vacío si no hay elección).
func (sel *Selection) LinkID() string { return sel.linkID }

// Quantity cantidad vigente.
func (sel *Selection) Quantity() decimal.Decimal { return sel.quantity }
