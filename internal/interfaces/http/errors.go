package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/domain"
)

// errInvalidBody cuerpo que no se puede decodificar como JSON.
var errInvalidBody = errors.New("cuerpo inválido")

// writeError traduce un error de aplicación a la respuesta HTTP.
//
//   - ValidationError → 422 con el detalle por campo.
//   - BusinessError → según el sentinel que envuelve (409, 404, 422), con código estable.
//   - ErrNotFound → 404, ErrDuplicate → 409.
//   - cualquier otro → 500 genérico; el detalle queda solo en el log.
func writeError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos inválidos", Fields: verr.Fields,
		})
	}
	var berr *domain.BusinessError
	if errors.As(err, &berr) {
		return c.Status(businessStatus(berr.Kind)).JSON(dto.ErrorResponse{Code: berr.Code, Message: berr.Reason})
	}
	switch {
	case errors.Is(err, errInvalidBody):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrModelNotConfigured):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: domain.CodeModelNotConfigured, Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	log.Error().Err(err).
		Str("request_id", requestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: "error interno, intente nuevamente",
	})
}

func businessStatus(kind error) int {
	switch {
	case errors.Is(kind, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(kind, domain.ErrInvalidInput):
		return fiber.StatusUnprocessableEntity
	default:
		// ErrConflict, ErrInsufficientStock, ErrModelNotConfigured
		return fiber.StatusConflict
	}
}

// requestID devuelve el id asignado por el middleware requestid.
func requestID(c *fiber.Ctx) string {
	if v, ok := c.Locals("requestid").(string); ok {
		return v
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
