package dto

import "time"

// SupplierRequest entrada para crear o modificar un proveedor.
type SupplierRequest struct {
	NombreProveedor string `json:"nombreProveedor" validate:"required,min=1,max=200"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	IDProveedor     string     `json:"idProveedor"`
	NombreProveedor string     `json:"nombreProveedor"`
	FhBajaProveedor *time.Time `json:"fhBajaProveedor"`
}

// InventoryModelRequest entrada para crear o modificar un modelo de inventario.
type InventoryModelRequest struct {
	NombreMI string `json:"nombreMI" validate:"required,min=1,max=100"`
}

// InventoryModelResponse salida de un modelo de inventario. TipoModelo es la política resuelta.
type InventoryModelResponse struct {
	IDMI       string     `json:"idMI"`
	NombreMI   string     `json:"nombreMI"`
	TipoModelo string     `json:"tipoModelo"`
	FhBajaMI   *time.Time `json:"fhBajaMI"`
}
