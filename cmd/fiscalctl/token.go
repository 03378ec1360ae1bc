package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Faturacao-api/pkg/jwt"
)

// tokenCmd emite un token de desarrollo firmado con JWT_SECRET.
func (c *cli) tokenCmd() *cobra.Command {
	var userID, companyID, role string
	cmd := &cobra.Command{
		Use:     "token",
		Short:   "Emite un token de desarrollo para la API",
		Example: `  JWT_SECRET=dev fiscalctl token --user u1 --company c1 --role contabilista`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch role {
			case "admin", "contabilista", "operador":
			default:
				return fmt.Errorf("rol %q no válido (admin, contabilista, operador)", role)
			}
			ttl := time.Duration(c.cfg.JWT.Expiration) * time.Minute
			token, err := jwt.Generate(c.cfg.JWT.Secret, c.cfg.JWT.Issuer, jwt.Identity{UserID: userID, CompanyID: companyID, Role: role}, ttl)
			if err != nil {
				return err
			}
			c.log.Warn().Str("company_id", companyID).Str("role", role).Msg("token de desarrollo emitido")
			return c.print(map[string]string{"token": token})
		},
	}
	cmd.Flags().StringVar(&userID, "user", "dev", "usuario")
	cmd.Flags().StringVar(&companyID, "company", "", "empresa")
	cmd.Flags().StringVar(&role, "role", "admin", "rol")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}
