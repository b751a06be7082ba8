package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/application/usecase"
)

// SegmentHandler maneja los segmentos guardados.
type SegmentHandler struct {
	uc *usecase.SegmentUseCase
}

// NewSegmentHandler construye el handler.
func NewSegmentHandler(uc *usecase.SegmentUseCase) *SegmentHandler {
	return &SegmentHandler{uc: uc}
}

// List godoc
// @Summary      Listar segmentos
// @Tags         segments
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SegmentResponse
// @Router       /api/segments [get]
func (h *SegmentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear segmento
// @Tags         segments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSegmentRequest  true  "Segmento"
// @Success      201   {object}  dto.SegmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/segments [post]
func (h *SegmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSegmentRequest
	if !parseBody(c, &in, false) {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar segmento
// @Tags         segments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID del segmento"
// @Param        body  body      dto.UpdateSegmentRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.SegmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/segments/{id} [patch]
func (h *SegmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSegmentRequest
	if !parseBody(c, &in, false) {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar segmento
// @Tags         segments
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del segmento"
// @Success      200  {object}  dto.OKResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/segments/{id} [delete]
func (h *SegmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}
