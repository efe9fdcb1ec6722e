package entity

import "time"

// Supplier representa un proveedor. Un proveedor dado de baja no admite nuevas asignaciones.
type Supplier struct {
	ID        string
	Name      string
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el proveedor está vigente.
func (s *Supplier) IsActive() bool { return s.DeletedAt == nil }
