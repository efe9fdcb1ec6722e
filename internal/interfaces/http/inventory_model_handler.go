package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/application/usecase"
)

// InventoryModelHandler maneja /ABMModeloInventario.
type InventoryModelHandler struct {
	uc *usecase.InventoryModelUseCase
}

func NewInventoryModelHandler(uc *usecase.InventoryModelUseCase) *InventoryModelHandler {
	return &InventoryModelHandler{uc: uc}
}

// GetAll godoc
// @Summary      Listar modelos de inventario
// @Tags         ABMModeloInventario
// @Security     Bearer
// @Produce      json
// @Param        soloVigentes  query  bool  false  "Excluir modelos dados de baja"
// @Success      200  {array}  dto.InventoryModelResponse
// @Router       /ABMModeloInventario/getAll [get]
func (h *InventoryModelHandler) GetAll(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.QueryBool("soloVigentes", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener modelo de inventario por ID
// @Tags         ABMModeloInventario
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del modelo"
// @Success      200  {object}  dto.InventoryModelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ABMModeloInventario/getById/{id} [get]
func (h *InventoryModelHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear modelo de inventario
// @Tags         ABMModeloInventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InventoryModelRequest  true  "Nombre del modelo"
// @Success      201   {object}  dto.InventoryModelResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /ABMModeloInventario/crear [post]
func (h *InventoryModelHandler) Create(c *fiber.Ctx) error {
	var in dto.InventoryModelRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Renombrar modelo de inventario
// @Description  Rechaza con 409 si el nuevo nombre cambia la política y hay asignaciones activas.
// @Tags         ABMModeloInventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del modelo"
// @Param        body  body  dto.InventoryModelRequest  true  "Nombre del modelo"
// @Success      200   {object}  dto.InventoryModelResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /ABMModeloInventario/modificar/{id} [put]
func (h *InventoryModelHandler) Update(c *fiber.Ctx) error {
	var in dto.InventoryModelRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Dar de baja un modelo de inventario
// @Tags         ABMModeloInventario
// @Security     Bearer
// @Param        id   path  string  true  "ID del modelo"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /ABMModeloInventario/eliminar/{id} [put]
func (h *InventoryModelHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
