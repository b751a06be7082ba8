package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/application/usecase"
)

// StageHandler maneja las etapas del pipeline.
type StageHandler struct {
	uc *usecase.StageUseCase
}

// NewStageHandler construye el handler.
func NewStageHandler(uc *usecase.StageUseCase) *StageHandler {
	return &StageHandler{uc: uc}
}

// List godoc
// @Summary      Listar etapas
// @Tags         stages
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StageResponse
// @Router       /api/stages [get]
func (h *StageHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear etapa
// @Tags         stages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateStageRequest  true  "Etapa"
// @Success      201   {object}  dto.StageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stages [post]
func (h *StageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStageRequest
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
// @Summary      Actualizar etapa
// @Tags         stages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "ID de la etapa"
// @Param        body  body      dto.UpdateStageRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.StageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stages/{id} [patch]
func (h *StageHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStageRequest
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
// @Summary      Eliminar etapa
// @Description  Si la etapa tiene leads, moveToStageId indica a dónde reubicarlos.
// @Tags         stages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true   "ID de la etapa"
// @Param        body  body      dto.DeleteStageRequest  false  "Etapa destino"
// @Success      200   {object}  dto.OKResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stages/{id} [delete]
func (h *StageHandler) Delete(c *fiber.Ctx) error {
	var in dto.DeleteStageRequest
	if !parseBody(c, &in, true) {
		return invalidBody(c)
	}
	if err := h.uc.Delete(c.UserContext(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}
