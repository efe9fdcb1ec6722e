package inventory

import "github.com/jhoicas/reposicion-api/internal/domain/entity"

// DefaultOutcome resultado de buscar el proveedor predeterminado.
type DefaultOutcome int

const (
	// DefaultFound existe una asignación activa predeterminada.
	DefaultFound DefaultOutcome = iota
	// NoDefault el artículo tiene proveedores pero ninguno predeterminado.
	NoDefault
	// NoSuppliers el artículo no tiene asignaciones activas.
	NoSuppliers
)

func (o DefaultOutcome) String() string {
	switch o {
	case DefaultFound:
		return "PREDETERMINADO"
	case NoDefault:
		return "SIN_PREDETERMINADO"
	default:
		return "SIN_PROVEEDORES"
	}
}

// SelectDefault devuelve la asignación activa marcada como predeterminada.
// Las asignaciones dadas de baja se ignoran.
func SelectDefault(links []*entity.SupplierLink) (*entity.SupplierLink, DefaultOutcome) {
	active := 0
	for _, l := range links {
		if !l.IsActive() {
			continue
		}
		active++
		if l.IsDefault {
			return l, DefaultFound
		}
	}
	if active == 0 {
		return nil, NoSuppliers
	}
	return nil, NoDefault
}

// ActiveLinks filtra las asignaciones vigentes.
func ActiveLinks(links []*entity.SupplierLink) []*entity.SupplierLink {
	out := make([]*entity.SupplierLink, 0, len(links))
	for _, l := range links {
		if l.IsActive() {
			out = append(out, l)
		}
	}
	return out
}
