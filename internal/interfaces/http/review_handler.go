package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reposicion-api/internal/application/purchasing"
)

// ReviewHandler maneja /RevisionPeriodica (asignaciones de tiempo fijo).
type ReviewHandler struct {
	uc *purchasing.ReviewUseCase
}

func NewReviewHandler(uc *purchasing.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// Pending godoc
// @Summary      Revisiones periódicas vencidas
// @Tags         RevisionPeriodica
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PendingReviewDTO
// @Router       /RevisionPeriodica/pendientes [get]
func (h *ReviewHandler) Pending(c *fiber.Ctx) error {
	out, err := h.uc.Pending(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Process godoc
// @Summary      Procesar una revisión periódica
// @Description  Genera la orden con la cantidad hasta el nivel objetivo y adelanta la próxima revisión.
// @Description  Si el stock ya alcanza el objetivo no se genera orden (200 sin ordenDeCompra).
// @Tags         RevisionPeriodica
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la asignación"
// @Success      201  {object}  dto.ReviewResultDTO
// @Success      200  {object}  dto.ReviewResultDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /RevisionPeriodica/procesar/{id} [post]
func (h *ReviewHandler) Process(c *fiber.Ctx) error {
	out, err := h.uc.Process(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out.OrdenDeCompra == nil {
		return c.JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
