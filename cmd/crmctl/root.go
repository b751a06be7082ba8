package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/CRM-api/internal/infrastructure/postgres"
	"github.com/jhoicas/CRM-api/pkg/config"
	"github.com/jhoicas/CRM-api/pkg/logger"
)

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "crmctl",
	Short: "Herramientas de operación del CRM",
	Long:  "Migraciones, siembra de etapas, importación de planillas, reporte de duplicados y emisión de tokens de operador.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		cfg = c
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})
		return nil
	},
	SilenceUsage: true,
}

// openPool abre el pool de PostgreSQL con la configuración cargada.
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	return postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
