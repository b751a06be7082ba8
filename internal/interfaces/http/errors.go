package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/domain"
)

// localError guarda la causa de un 5xx para que RequestLogger la registre.
const localError = "request_error"

// errorStatus traduce un error de dominio a (status HTTP, código).
// ErrNoValidRows se evalúa antes que ErrInvalidInput porque lo envuelve.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNoValidRows):
		return fiber.StatusBadRequest, "NO_VALID_ROWS"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrStore):
		return fiber.StatusInternalServerError, "STORE"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// respondError escribe el ErrorResponse correspondiente a err.
// En los 5xx no se expone el detalle del driver al cliente.
func respondError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if status >= fiber.StatusInternalServerError {
		c.Locals(localError, err)
		msg = "error interno del servidor"
		if code == "STORE" {
			msg = domain.ErrStore.Error()
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// parseBody decodifica el JSON del cuerpo; cuerpo vacío se acepta cuando optional es true.
func parseBody(c *fiber.Ctx, out interface{}, optional bool) bool {
	if optional && len(c.Body()) == 0 {
		return true
	}
	return c.BodyParser(out) == nil
}
