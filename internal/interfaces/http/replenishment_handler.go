package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reposicion-api/internal/application/inventory"
)

// ReplenishmentHandler maneja /CalcularCGI y la sugerencia de /GenerarOrdenCompra.
type ReplenishmentHandler struct {
	uc *inventory.ReplenishmentUseCase
}

func NewReplenishmentHandler(uc *inventory.ReplenishmentUseCase) *ReplenishmentHandler {
	return &ReplenishmentHandler{uc: uc}
}

// CalculateCGI godoc
// @Summary      Costo de gestión de inventario por proveedor
// @Description  Una fila por asignación activa. Las filas empatadas en el mínimo llevan minimo=true;
// @Description  idArticuloProveedorMinimo desempata por proveedor y asignación de menor id.
// @Tags         CalcularCGI
// @Security     Bearer
// @Produce      json
// @Param        idArticulo  query  string  true  "ID del artículo"
// @Success      200  {object}  dto.CGIResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /CalcularCGI/calculo [get]
func (h *ReplenishmentHandler) CalculateCGI(c *fiber.Ctx) error {
	id, err := requiredQuery(c, "idArticulo")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CalculateCGI(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SuggestOrder godoc
// @Summary      Sugerir orden de compra para un artículo
// @Description  Sin idArticuloProveedor se preselecciona el predeterminado con la cantidad de su política.
// @Description  Con otro proveedor la cantidad vuelve a 1. cantidad reemplaza la cantidad de la selección.
// @Tags         GenerarOrdenCompra
// @Security     Bearer
// @Produce      json
// @Param        idArticulo           query  string  true   "ID del artículo"
// @Param        idArticuloProveedor  query  string  false  "Asignación elegida"
// @Param        cantidad             query  number  false  "Cantidad ingresada a mano"
// @Success      200  {object}  dto.OrderSuggestionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /GenerarOrdenCompra/sugerirOrden [get]
func (h *ReplenishmentHandler) SuggestOrder(c *fiber.Ctx) error {
	id, err := requiredQuery(c, "idArticulo")
	if err != nil {
		return writeError(c, err)
	}
	qty, err := optionalQueryDecimal(c, "cantidad")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SuggestOrder(c.UserContext(), id, c.Query("idArticuloProveedor"), qty)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
