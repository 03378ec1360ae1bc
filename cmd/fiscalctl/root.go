package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
	"github.com/jhoicas/Faturacao-api/internal/application/inventory"
	"github.com/jhoicas/Faturacao-api/internal/application/reporting"
	"github.com/jhoicas/Faturacao-api/internal/application/treasury"
	"github.com/jhoicas/Faturacao-api/internal/infrastructure/fixture"
	"github.com/jhoicas/Faturacao-api/internal/infrastructure/saft"
	"github.com/jhoicas/Faturacao-api/pkg/config"
	"github.com/jhoicas/Faturacao-api/pkg/logger"
)

var version = "1.0.0"

// cli estado compartido por los subcomandos.
type cli struct {
	out     io.Writer
	errOut  io.Writer
	fixture string
	year    int
	month   int

	cfg *config.Config
	lg  *logger.Logger
	log zerolog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "fiscalctl",
		Short: "Declarações fiscais y ledgers sobre un fichero de datos",
		Long: `fiscalctl ejecuta los mismos cálculos que la API (Modelo 7, Modelo 1,
Imposto de Selo, SAF-T, stock y caixa) sobre un dataset JSON de una empresa.

El fichero contiene "company", "invoices", "purchases", "payroll",
"adjustments", "products", "warehouses", "cashRegisters", "cashMovements"
y "overrides" (ejercicio -> código -> valor). La configuración (câmbios,
taxa do regime simplificado, datos del software) se lee del entorno o de .env.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			c.cfg = cfg
			c.lg = logger.NewWithWriter(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "fiscalctl"}, c.errOut)
			c.log = c.lg.WithComponent("cli")
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVarP(&c.fixture, "fixture", "f", "", "fichero JSON con los datos de la empresa")

	root.AddCommand(
		c.modelo7Cmd(),
		c.modelo1Cmd(),
		c.stampCmd(),
		c.dashboardCmd(),
		c.saftCmd(),
		c.stockCmd(),
		c.cashCmd(),
		c.tokenCmd(),
	)
	return root
}

// periodFlags --year y --month; month 0 = ejercicio completo.
func (c *cli) periodFlags(cmd *cobra.Command, monthly bool) {
	cmd.Flags().IntVarP(&c.year, "year", "y", 0, "ejercicio (ej. 2024)")
	_ = cmd.MarkFlagRequired("year")
	if monthly {
		cmd.Flags().IntVarP(&c.month, "month", "m", 0, "mes 1-12 (0 = ejercicio completo)")
	}
}

func (c *cli) period() dto.PeriodQuery {
	return dto.PeriodQuery{Year: c.year, Month: c.month}
}

// services casos de uso sobre el dataset; no hay caché ni firma.
type services struct {
	companyID string
	store     *fixture.Store
	reporting *reporting.UseCase
	inventory *inventory.UseCase
	treasury  *treasury.UseCase
}

func (c *cli) load() (*services, error) {
	if c.fixture == "" {
		return nil, fmt.Errorf("--fixture requerido")
	}
	store, err := fixture.Load(c.fixture)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("fixture", c.fixture).Str("company_id", store.CompanyID()).Msg("dataset cargado")

	ucLog := c.lg.WithComponent("usecase")
	return &services{
		companyID: store.CompanyID(),
		store:     store,
		reporting: reporting.NewUseCase(
			store.Invoices(), store.Purchases(), store.Payroll(), store.Overrides(), store.Companies(),
			saft.NewBuilder(), nil,
			reporting.Options{
				SimplifiedExemptRate: c.cfg.Tax.SimplifiedExemptRate,
				Software: saft.SoftwareInfo{
					CertificateNumber: c.cfg.AGT.SoftwareCertificateNumber,
					ProductID:         c.cfg.AGT.ProductID,
					ProductVersion:    c.cfg.AGT.ProductVersion,
				},
			},
			ucLog,
		),
		inventory: inventory.NewUseCase(store.Invoices(), store.Purchases(), store.Adjustments(), store.Products(), store.Warehouses(), ucLog),
		treasury:  treasury.NewUseCase(store.Cash(), store.Invoices(), store.Purchases(), ucLog),
	}, nil
}

// print escribe v como JSON indentado.
func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
