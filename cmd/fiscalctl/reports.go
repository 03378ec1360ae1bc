package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (c *cli) modelo7Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "modelo7",
		Short:   "Declaração periódica de IVA (régimen de la empresa)",
		Example: `  fiscalctl modelo7 -f empresa.json --year 2024 --month 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.load()
			if err != nil {
				return err
			}
			r, err := s.reporting.Modelo7(cmd.Context(), s.companyID, c.period())
			if err != nil {
				return err
			}
			return c.print(r)
		},
	}
	c.periodFlags(cmd, true)
	return cmd
}

func (c *cli) modelo1Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "modelo1",
		Short:   "Declaração anual del Imposto Industrial con columna comparativa",
		Example: `  fiscalctl modelo1 -f empresa.json --year 2024`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.load()
			if err != nil {
				return err
			}
			r, err := s.reporting.Modelo1(cmd.Context(), s.companyID, c.year)
			if err != nil {
				return err
			}
			return c.print(r)
		},
	}
	c.periodFlags(cmd, false)
	return cmd
}

func (c *cli) stampCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stamp",
		Short: "Mapa mensal del Imposto de Selo sobre recibos",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.load()
			if err != nil {
				return err
			}
			r, err := s.reporting.StampDuty(cmd.Context(), s.companyID, c.period())
			if err != nil {
				return err
			}
			return c.print(r)
		},
	}
	c.periodFlags(cmd, true)
	return cmd
}

func (c *cli) dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Resumen de ventas, IVA y retenciones del período",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.load()
			if err != nil {
				return err
			}
			r, err := s.reporting.Dashboard(cmd.Context(), s.companyID, c.period())
			if err != nil {
				return err
			}
			return c.print(r)
		},
	}
	c.periodFlags(cmd, true)
	return cmd
}

func (c *cli) saftCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "saft",
		Short: "Genera el ficheiro SAF-T (AO) de facturação",
		Long: `Escribe el ficheiro en Windows-1252 dentro de --out-dir y muestra su
nombre y el digest SHA-256 de la forma canónica.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.load()
			if err != nil {
				return err
			}
			res, err := s.reporting.SAFT(cmd.Context(), s.companyID, c.period())
			if err != nil {
				return err
			}
			path := filepath.Join(outDir, res.FileName)
			if err := os.WriteFile(path, res.XML, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", path, err)
			}
			c.log.Info().Str("file", path).Int("bytes", len(res.XML)).Msg("SAF-T escrito")
			return c.print(map[string]any{
				"file":   path,
				"digest": res.Digest,
				"bytes":  len(res.XML),
			})
		},
	}
	c.periodFlags(cmd, true)
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "directorio de salida")
	return cmd
}
