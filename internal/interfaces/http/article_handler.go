package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/application/usecase"
)

// ArticleHandler maneja /ABMArticulo.
type ArticleHandler struct {
	uc *usecase.ArticleUseCase
}

// NewArticleHandler construye el handler.
func NewArticleHandler(uc *usecase.ArticleUseCase) *ArticleHandler {
	return &ArticleHandler{uc: uc}
}

// GetAll godoc
// @Summary      Listar artículos
// @Tags         ABMArticulo
// @Security     Bearer
// @Produce      json
// @Param        soloVigentes  query  bool  false  "Excluir artículos dados de baja"
// @Success      200  {array}   dto.ArticleResponse
// @Router       /ABMArticulo/getAll [get]
func (h *ArticleHandler) GetAll(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.QueryBool("soloVigentes", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         ABMArticulo
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ArticleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ABMArticulo/getById/{id} [get]
func (h *ArticleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear artículo
// @Tags         ABMArticulo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ArticleRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ArticleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /ABMArticulo/crear [post]
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var in dto.ArticleRequest
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
// @Summary      Modificar artículo
// @Description  No modifica el stock: usar AjustarInventario.
// @Tags         ABMArticulo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateArticleRequest  true  "Datos del artículo"
// @Success      200   {object}  dto.ArticleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /ABMArticulo/modificar [put]
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateArticleRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Dar de baja un artículo
// @Description  Rechaza con 409 si el artículo tiene stock o órdenes de compra abiertas.
// @Tags         ABMArticulo
// @Security     Bearer
// @Param        id   path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /ABMArticulo/eliminar/{id} [put]
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Critical godoc
// @Summary      Artículos faltantes (stock por debajo del stock de seguridad)
// @Tags         ABMArticulo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ArticleResponse
// @Router       /ABMArticulo/faltantes [get]
func (h *ArticleHandler) Critical(c *fiber.Ctx) error {
	out, err := h.uc.ListCritical(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToReplenish godoc
// @Summary      Artículos a reponer (stock por debajo del punto de pedido)
// @Tags         ABMArticulo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ArticleResponse
// @Router       /ABMArticulo/reponer [get]
func (h *ArticleHandler) ToReplenish(c *fiber.Ctx) error {
	out, err := h.uc.ListToReplenish(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
