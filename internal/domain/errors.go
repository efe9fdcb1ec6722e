package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrModelNotConfigured = errors.New("modelo de inventario no configurado")
)

// Códigos estables de reglas de negocio (los consume el front para decidir el mensaje).
const (
	CodeArticleHasStock      = "ARTICULO_CON_STOCK"
	CodeOpenPurchaseOrders   = "ORDENES_ABIERTAS"
	CodeDefaultSupplierInUse = "PROVEEDOR_PREDETERMINADO"
	CodeModelInUse           = "MODELO_EN_USO"
	CodeSupplierInactive     = "PROVEEDOR_DADO_DE_BAJA"
	CodeArticleInactive      = "ARTICULO_DADO_DE_BAJA"
	CodeModelInactive        = "MODELO_DADO_DE_BAJA"
	CodeLinkInactive         = "ASIGNACION_DADA_DE_BAJA"
	CodeInvalidTransition    = "TRANSICION_INVALIDA"
	CodeInsufficientStock    = "STOCK_INSUFICIENTE"
	CodeDuplicateAssignment  = "ASIGNACION_DUPLICADA"
	CodeAdjustmentExpired    = "AJUSTE_VENCIDO"
	CodeReviewNotDue         = "REVISION_NO_VENCIDA"
	CodeModelNotConfigured   = "MODELO_NO_CONFIGURADO"
	CodeMaxInventoryExceeded = "INVENTARIO_MAXIMO_SUPERADO"
)

// BusinessError es un rechazo por regla de negocio: lleva un código estable y el motivo legible.
// Envuelve un sentinel para que errors.Is siga funcionando (ErrConflict, ErrNotFound...).
type BusinessError struct {
	Code   string
	Reason string
	Kind   error
}

func (e *BusinessError) Error() string { return e.Reason }

func (e *BusinessError) Unwrap() error { return e.Kind }

// NewConflict crea un error de regla de negocio de tipo conflicto.
func NewConflict(code, reason string) *BusinessError {
	return &BusinessError{Code: code, Reason: reason, Kind: ErrConflict}
}

// NewBusiness crea un error de regla de negocio con el sentinel indicado.
func NewBusiness(kind error, code, reason string) *BusinessError {
	return &BusinessError{Code: code, Reason: reason, Kind: kind}
}

// ValidationError agrupa errores por campo. Se rechaza antes de cualquier escritura.
type ValidationError struct {
	Fields map[string]string
}

// NewValidation crea un ValidationError con un único campo.
func NewValidation(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Add agrega un campo y devuelve el mismo error (encadenable).
func (e *ValidationError) Add(field, msg string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
	return e
}

// Empty indica si no hay errores registrados.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// OrNil devuelve nil si no hay campos, para usar como `return verr.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "datos inválidos: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
