package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/CRM-api/pkg/jwt"
)

var (
	tokenOperator string
	tokenRole     string
	tokenMinutes  int
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite un JWT para un operador",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.JWT.Secret == "" {
			return fmt.Errorf("JWT_SECRET requerido")
		}
		if tokenRole != jwt.RoleAdmin && tokenRole != jwt.RoleSeller {
			return fmt.Errorf("rol %q inválido: %s | %s", tokenRole, jwt.RoleAdmin, jwt.RoleSeller)
		}
		exp := tokenMinutes
		if exp <= 0 {
			exp = cfg.JWT.Expiration
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, tokenOperator, tokenRole, cfg.JWT.Issuer, exp)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenOperator, "operator", "", "identificador del operador (requerido)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", jwt.RoleSeller, "admin | vendedor")
	tokenCmd.Flags().IntVar(&tokenMinutes, "minutes", 0, "vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	_ = tokenCmd.MarkFlagRequired("operator")
	rootCmd.AddCommand(tokenCmd)
}
