package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/CRM-api/internal/application/analytics"
	"github.com/jhoicas/CRM-api/internal/application/crm"
	"github.com/jhoicas/CRM-api/internal/application/usecase"
	"github.com/jhoicas/CRM-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LeadUC       *crm.LeadUseCase
	ImportUC     *crm.ImportUseCase
	ExportUC     *crm.ExportUseCase
	DuplicatesUC *crm.DuplicatesUseCase
	MergeUC      *crm.MergeUseCase
	StageUC      *usecase.StageUseCase
	TagUC        *usecase.TagUseCase
	SegmentUC    *usecase.SegmentUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	ReportUC     *appanalytics.ReportUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(jwt.RoleAdmin)

	// Leads: las rutas fijas van antes de /:id
	leads := api.Group("/leads")
	leadHandler := NewLeadHandler(deps.LeadUC, deps.ImportUC, deps.ExportUC, deps.DuplicatesUC, deps.MergeUC)
	leads.Get("/", leadHandler.List)
	leads.Post("/", leadHandler.Create)
	leads.Get("/export", leadHandler.Export)
	leads.Get("/duplicates", leadHandler.Duplicates)
	leads.Post("/import", leadHandler.Import)
	leads.Post("/merge", adminOnly, leadHandler.Merge)
	leads.Get("/:id", leadHandler.Get)
	leads.Patch("/:id", leadHandler.Update)
	leads.Delete("/:id", leadHandler.Delete)
	leads.Post("/:id/close", leadHandler.Close)
	leads.Delete("/:id/deal", leadHandler.DeleteDeal)
	leads.Post("/:id/interacciones", leadHandler.AddInteraction)
	leads.Post("/:id/actions", leadHandler.Action)

	// Etapas: la configuración del pipeline solo la cambia un admin
	stages := api.Group("/stages")
	stageHandler := NewStageHandler(deps.StageUC)
	stages.Get("/", stageHandler.List)
	stages.Post("/", adminOnly, stageHandler.Create)
	stages.Patch("/:id", adminOnly, stageHandler.Update)
	stages.Delete("/:id", adminOnly, stageHandler.Delete)

	tags := api.Group("/tags")
	tagHandler := NewTagHandler(deps.TagUC)
	tags.Get("/", tagHandler.List)
	tags.Post("/", tagHandler.Create)
	tags.Patch("/:id", tagHandler.Update)
	tags.Delete("/:id", tagHandler.Delete)

	segments := api.Group("/segments")
	segmentHandler := NewSegmentHandler(deps.SegmentUC)
	segments.Get("/", segmentHandler.List)
	segments.Post("/", segmentHandler.Create)
	segments.Patch("/:id", segmentHandler.Update)
	segments.Delete("/:id", segmentHandler.Delete)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC)
	api.Get("/dashboard", dashboardHandler.Get)
	api.Get("/dashboard/report.pdf", dashboardHandler.Report)
}
