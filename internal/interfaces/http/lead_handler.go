package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CRM-api/internal/application/crm"
	"github.com/jhoicas/CRM-api/internal/application/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LeadHandler maneja las peticiones HTTP de leads (protegido).
type LeadHandler struct {
	leads      *crm.LeadUseCase
	imports    *crm.ImportUseCase
	export     *crm.ExportUseCase
	duplicates *crm.DuplicatesUseCase
	merge      *crm.MergeUseCase
}

// NewLeadHandler construye el handler.
func NewLeadHandler(
	leads *crm.LeadUseCase,
	imports *crm.ImportUseCase,
	export *crm.ExportUseCase,
	duplicates *crm.DuplicatesUseCase,
	merge *crm.MergeUseCase,
) *LeadHandler {
	return &LeadHandler{leads: leads, imports: imports, export: export, duplicates: duplicates, merge: merge}
}

// List godoc
// @Summary      Listar leads
// @Description  Todos los leads ordenados por actualizadoEn desc, con etapa, etiquetas y deal.
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LeadResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	out, err := h.leads.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de lead
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del lead"
// @Success      200  {object}  dto.LeadDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) Get(c *fiber.Ctx) error {
	out, err := h.leads.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear lead
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateLeadRequest  true  "Datos del lead"
// @Success      201   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeadRequest
	if !parseBody(c, &in, false) {
		return invalidBody(c)
	}
	out, err := h.leads.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar lead (parcial)
// @Description  Campo ausente = sin cambio; null en ultimoContacto/proximoSeguimiento las borra.
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID del lead"
// @Param        body  body      dto.UpdateLeadRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [patch]
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLeadRequest
	if !parseBody(c, &in, false) {
		return invalidBody(c)
	}
	out, err := h.leads.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar lead
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del lead"
// @Success      200  {object}  dto.OKResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [delete]
func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	if err := h.leads.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// Close godoc
// @Summary      Cerrar lead como GANADO
// @Description  Registra el deal, mueve el lead a GANADO y agrega la interacción CIERRE.
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "ID del lead"
// @Param        body  body      dto.CloseLeadRequest  true  "Datos del deal"
// @Success      200   {object}  dto.CloseLeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/close [post]
func (h *LeadHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseLeadRequest
	if !parseBody(c, &in, false) {
		return invalidBody(c)
	}
	out, err := h.leads.Close(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteDeal godoc
// @Summary      Eliminar el deal del lead
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del lead"
// @Success      200  {object}  dto.OKResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/deal [delete]
func (h *LeadHandler) DeleteDeal(c *fiber.Ctx) error {
	if err := h.leads.DeleteDeal(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// AddInteraction godoc
// @Summary      Registrar interacción
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true  "ID del lead"
// @Param        body  body      dto.CreateInteractionRequest  true  "Interacción"
// @Success      201   {object}  dto.InteractionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/interacciones [post]
func (h *LeadHandler) AddInteraction(c *fiber.Ctx) error {
	var in dto.CreateInteractionRequest
	if !parseBody(c, &in, false) {
		return invalidBody(c)
	}
	out, err := h.leads.AddInteraction(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Action godoc
// @Summary      Acción rápida sobre un lead
// @Description  contactado | followup | respondio
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID del lead"
// @Param        body  body      dto.LeadActionRequest  true  "Acción"
// @Success      200   {object}  dto.OKResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/actions [post]
func (h *LeadHandler) Action(c *fiber.Ctx) error {
	var in dto.LeadActionRequest
	if !parseBody(c, &in, false) {
		return invalidBody(c)
	}
	if err := h.leads.ApplyAction(c.UserContext(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// Import godoc
// @Summary      Importar leads desde CSV
// @Description  Texto CSV completo (coma o punto y coma) y mapeo campo -> encabezado.
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ImportLeadsRequest  true  "CSV y mapeo"
// @Success      200   {object}  dto.ImportLeadsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads/import [post]
func (h *LeadHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportLeadsRequest
	if !parseBody(c, &in, false) {
		return invalidBody(c)
	}
	out, err := h.imports.Import(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar leads
// @Tags         leads
// @Security     Bearer
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  query  string  false  "csv | xlsx"  default(csv)
// @Success      200
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/leads/export [get]
func (h *LeadHandler) Export(c *fiber.Ctx) error {
	if c.Query("format") == "xlsx" {
		b, err := h.export.XLSX(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		c.Attachment("leads.xlsx")
		c.Set(fiber.HeaderContentType, xlsxContentType)
		return c.Send(b)
	}
	text, err := h.export.CSV(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment("leads.csv")
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.SendString(text)
}

// Duplicates godoc
// @Summary      Grupos de leads duplicados
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.DuplicateGroupDTO
// @Router       /api/leads/duplicates [get]
func (h *LeadHandler) Duplicates(c *fiber.Ctx) error {
	out, err := h.duplicates.Find(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Merge godoc
// @Summary      Fusionar leads
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.MergeLeadsRequest  true  "Principal y leads a fusionar"
// @Success      200   {object}  dto.MergeLeadsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/merge [post]
func (h *LeadHandler) Merge(c *fiber.Ctx) error {
	var in dto.MergeLeadsRequest
	if !parseBody(c, &in, false) {
		return invalidBody(c)
	}
	out, err := h.merge.Merge(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
