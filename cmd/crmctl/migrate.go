package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/CRM-api/internal/application/usecase"
	"github.com/jhoicas/CRM-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica el esquema de la base de datos",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()
		return postgres.Migrate(ctx, pool, log)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Crea las etapas por defecto si la tabla está vacía",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		repos := postgres.NewRepos(pool)
		uc := usecase.NewStageUseCase(repos.Stages, postgres.NewTxRunner(pool), log)
		n, err := uc.SeedDefaults(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "etapas creadas: %d\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
