package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/application/inventory"
)

// SupplierLinkHandler maneja /asignarProveedor.
type SupplierLinkHandler struct {
	uc *inventory.SupplierLinkUseCase
}

func NewSupplierLinkHandler(uc *inventory.SupplierLinkUseCase) *SupplierLinkHandler {
	return &SupplierLinkHandler{uc: uc}
}

// Assign godoc
// @Summary      Asignar proveedor a un artículo
// @Description  Si isPredeterminado=true desmarca el predeterminado anterior en la misma transacción
// @Description  y recalcula punto de pedido y stock de seguridad del artículo.
// @Tags         asignarProveedor
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignSupplierRequest  true  "Asignación"
// @Success      201   {object}  dto.SupplierLinkResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /asignarProveedor/asignar [post]
func (h *SupplierLinkHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignSupplierRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Assign(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Modify godoc
// @Summary      Modificar asignación
// @Tags         asignarProveedor
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ModifySupplierLinkRequest  true  "Parámetros de la asignación"
// @Success      200   {object}  dto.SupplierLinkResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /asignarProveedor/modificar [post]
func (h *SupplierLinkHandler) Modify(c *fiber.Ctx) error {
	var in dto.ModifySupplierLinkRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Modify(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Eliminate godoc
// @Summary      Dar de baja una asignación
// @Description  Rechaza con 409 ORDENES_ABIERTAS si la asignación tiene órdenes pendientes o enviadas.
// @Tags         asignarProveedor
// @Security     Bearer
// @Param        id   path  string  true  "ID de la asignación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /asignarProveedor/eliminar/{id} [put]
func (h *SupplierLinkHandler) Eliminate(c *fiber.Ctx) error {
	if err := h.uc.Eliminate(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetAll godoc
// @Summary      Listar asignaciones
// @Tags         asignarProveedor
// @Security     Bearer
// @Produce      json
// @Param        idArticulo    query  string  false  "Filtrar por artículo"
// @Param        soloVigentes  query  bool    false  "Excluir asignaciones dadas de baja"
// @Success      200  {array}  dto.SupplierLinkResponse
// @Router       /asignarProveedor/getAll [get]
func (h *SupplierLinkHandler) GetAll(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("idArticulo"), c.QueryBool("soloVigentes", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener asignación por ID
// @Tags         asignarProveedor
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la asignación"
// @Success      200  {object}  dto.SupplierLinkResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /asignarProveedor/getById/{id} [get]
func (h *SupplierLinkHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
