package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/CRM-api/docs"
	appanalytics "github.com/jhoicas/CRM-api/internal/application/analytics"
	"github.com/jhoicas/CRM-api/internal/application/crm"
	"github.com/jhoicas/CRM-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/CRM-api/internal/infrastructure/pdf"
	"github.com/jhoicas/CRM-api/internal/infrastructure/postgres"
	"github.com/jhoicas/CRM-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/CRM-api/internal/interfaces/http"
	"github.com/jhoicas/CRM-api/pkg/config"
	"github.com/jhoicas/CRM-api/pkg/logger"
	"github.com/jhoicas/CRM-api/pkg/money"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Etapas por defecto: una sola vez al arrancar, nunca en lecturas
	stageUC := usecase.NewStageUseCase(repos.Stages, txRunner, log.Component("stages"))
	if _, err := stageUC.SeedDefaults(ctx); err != nil {
		log.Fatal().Err(err).Msg("sembrar etapas por defecto")
	}

	crmLog := log.Component("crm")
	leadUC := crm.NewLeadUseCase(repos, txRunner, crmLog)
	importUC := crm.NewImportUseCase(txRunner, crmLog)
	exportUC := crm.NewExportUseCase(repos, spreadsheet.NewXLSXWriter())
	duplicatesUC := crm.NewDuplicatesUseCase(repos.Leads)
	mergeUC := crm.NewMergeUseCase(txRunner, crmLog)

	tagUC := usecase.NewTagUseCase(repos.Tags, txRunner)
	segmentUC := usecase.NewSegmentUseCase(postgres.NewSegmentRepository(pool))

	dashboardUC := appanalytics.NewDashboardUseCase(postgres.NewDashboardRepository(pool), repos.Stages, cfg.CRM.Location())
	// PDF: reporte comercial del dashboard
	reportUC := appanalytics.NewReportUseCase(
		dashboardUC, repos.Stages, infrapdf.NewMarotoReportGenerator(),
		money.NewFormatter("es"), cfg.CRM.DefaultCurrency,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024, // importaciones CSV grandes
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LeadUC:       leadUC,
		ImportUC:     importUC,
		ExportUC:     exportUC,
		DuplicatesUC: duplicatesUC,
		MergeUC:      mergeUC,
		StageUC:      stageUC,
		TagUC:        tagUC,
		SegmentUC:    segmentUC,
		DashboardUC:  dashboardUC,
		ReportUC:     reportUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
