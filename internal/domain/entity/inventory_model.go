package entity

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Policy es la política de reposición que gobierna una asignación artículo-proveedor.
// El valor cero (PolicyUnknown) indica que el modelo no pudo resolverse.
type Policy int

const (
	PolicyUnknown Policy = iota
	PolicyFixedLot
	PolicyFixedTime
	PolicyOther
)

func (p Policy) String() string {
	switch p {
	case PolicyFixedLot:
		return "LOTE_FIJO"
	case PolicyFixedTime:
		return "TIEMPO_FIJO"
	case PolicyOther:
		return "OTRO"
	default:
		return "DESCONOCIDO"
	}
}

// Palabras clave canónicas de los modelos (ya normalizadas).
const (
	keywordFixedLot  = "lote fijo"
	keywordFixedTime = "tiempo fijo"
)

// InventoryModel es un modelo de inventario con nombre libre ("Lote Fijo", "Tiempo Fijo", ...).
type InventoryModel struct {
	ID        string
	Name      string
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el modelo está vigente.
func (m *InventoryModel) IsActive() bool { return m.DeletedAt == nil }

// Policy resuelve la política del modelo a partir de su nombre.
func (m *InventoryModel) Policy() Policy { return ResolvePolicy(m.Name) }

// ResolvePolicy traduce el nombre de un modelo a su política. La comparación ignora
// mayúsculas, tildes y espacios repetidos; sin coincidencia devuelve PolicyOther.
func ResolvePolicy(name string) Policy {
	n := normalizePolicyName(name)
	switch {
	case strings.Contains(n, keywordFixedLot):
		return PolicyFixedLot
	case strings.Contains(n, keywordFixedTime):
		return PolicyFixedTime
	default:
		return PolicyOther
	}
}

func normalizePolicyName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}
	folded := cases.Fold().String(stripped)
	return strings.Join(strings.Fields(folded), " ")
}
