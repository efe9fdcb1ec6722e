package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reposicion-api/internal/application/inventory"
)

// AdjustmentHandler maneja /AjustarInventario.
type AdjustmentHandler struct {
	uc *inventory.AdjustmentUseCase
}

func NewAdjustmentHandler(uc *inventory.AdjustmentUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// GetArticle godoc
// @Summary      Artículo a ajustar con su evaluación de reposición
// @Tags         AjustarInventario
// @Security     Bearer
// @Produce      json
// @Param        idArticulo  query  string  true  "ID del artículo"
// @Success      200  {object}  dto.AdjustmentArticleDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /AjustarInventario/getArticulo [get]
func (h *AdjustmentHandler) GetArticle(c *fiber.Ctx) error {
	id, err := requiredQuery(c, "idArticulo")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetArticle(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar ajuste de stock
// @Description  Devuelve true si el nuevo stock requiere orden de compra. Con forzarConfirmacion=false
// @Description  y stock por debajo del punto de pedido, el ajuste NO se guarda.
// @Tags         AjustarInventario
// @Security     Bearer
// @Produce      json
// @Param        idArticulo          query  string  true   "ID del artículo"
// @Param        stock               query  number  true   "Nuevo stock"
// @Param        forzarConfirmacion  query  bool    false  "Guardar aunque requiera orden de compra"
// @Success      200  {boolean}  boolean
// @Failure      409  {object}   dto.ErrorResponse
// @Failure      422  {object}   dto.ErrorResponse
// @Router       /AjustarInventario/confirmar [post]
func (h *AdjustmentHandler) Confirm(c *fiber.Ctx) error {
	id, err := requiredQuery(c, "idArticulo")
	if err != nil {
		return writeError(c, err)
	}
	stock, err := queryDecimal(c, "stock")
	if err != nil {
		return writeError(c, err)
	}
	needs, err := h.uc.Confirm(c.UserContext(), id, stock, c.QueryBool("forzarConfirmacion", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(needs)
}

// Request godoc
// @Summary      Solicitar ajuste de stock con confirmación diferida
// @Description  Si no requiere orden de compra se guarda en el acto. Si la requiere queda pendiente
// @Description  y se devuelve un token para confirmarToken.
// @Tags         AjustarInventario
// @Security     Bearer
// @Produce      json
// @Param        idArticulo  query  string  true  "ID del artículo"
// @Param        stock       query  number  true  "Nuevo stock"
// @Success      200  {object}  dto.AdjustmentRequestResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /AjustarInventario/solicitar [post]
func (h *AdjustmentHandler) Request(c *fiber.Ctx) error {
	id, err := requiredQuery(c, "idArticulo")
	if err != nil {
		return writeError(c, err)
	}
	stock, err := queryDecimal(c, "stock")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Request(c.UserContext(), id, stock)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ConfirmToken godoc
// @Summary      Confirmar un ajuste pendiente
// @Description  El token es de un solo uso; vencido o reutilizado responde 404 AJUSTE_VENCIDO.
// @Tags         AjustarInventario
// @Security     Bearer
// @Produce      json
// @Param        token  path  string  true  "Token devuelto por solicitar"
// @Success      200  {object}  dto.AdjustmentArticleDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /AjustarInventario/confirmarToken/{token} [post]
func (h *AdjustmentHandler) ConfirmToken(c *fiber.Ctx) error {
	out, err := h.uc.ConfirmToken(c.UserContext(), c.Params("token"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
