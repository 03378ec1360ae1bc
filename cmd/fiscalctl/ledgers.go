package main

import "github.com/spf13/cobra"

func (c *cli) stockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stock",
		Short: "Saldos de stock reproducidos desde documentos y ajustes",
		Long: `Reproduce ventas certificadas, compras y ajustes manuales. Muestra
alertas de saldo negativo y las diferencias con el stock guardado en productos.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.load()
			if err != nil {
				return err
			}
			r, err := s.inventory.Stock(cmd.Context(), s.companyID)
			if err != nil {
				return err
			}
			return c.print(r)
		},
	}
}

func (c *cli) cashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cash",
		Short: "Saldos de caixa y transferencias descuadradas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.load()
			if err != nil {
				return err
			}
			r, err := s.treasury.Registers(cmd.Context(), s.companyID)
			if err != nil {
				return err
			}
			return c.print(r)
		},
	}
}
