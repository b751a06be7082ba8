package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/CRM-api/internal/application/crm"
	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/infrastructure/postgres"
)

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Lista los grupos de leads duplicados",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		out, err := crm.NewDuplicatesUseCase(postgres.NewLeadRepository(pool)).Find(ctx)
		if err != nil {
			return err
		}
		return printGroups(cmd, out)
	},
}

func init() {
	rootCmd.AddCommand(duplicatesCmd)
}

func printGroups(cmd *cobra.Command, groups []dto.DuplicateGroupDTO) error {
	if len(groups) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "sin duplicados")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, g := range groups {
		for _, l := range g.Leads {
			_, _ = w.Write([]byte(g.Type + "\t" + g.Value + "\t" + l.ID + "\t" + l.Name + "\t" + l.CreatedAt + "\n"))
		}
	}
	return w.Flush()
}
