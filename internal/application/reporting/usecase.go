// Package reporting contiene los casos de uso de las declarações fiscales
// (Modelo 7, Modelo 1, Imposto de Selo), el ficheiro SAF-T y el dashboard.
// Todo se calcula a partir de los documentos; la caché es opcional.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
	"github.com/jhoicas/Faturacao-api/internal/domain"
	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
	"github.com/jhoicas/Faturacao-api/internal/domain/tax"
	"github.com/jhoicas/Faturacao-api/internal/infrastructure/saft"
)

// Options parámetros de configuración de los relatórios.
// SimplifiedExemptRate se usa tal cual: 0 deja el volumen isento sin imposto.
type Options struct {
	SimplifiedExemptRate decimal.Decimal
	Software             saft.SoftwareInfo
}

// UseCase relatórios fiscales de una empresa.
type UseCase struct {
	invoiceRepo  repository.InvoiceRepository
	purchaseRepo repository.PurchaseRepository
	payrollRepo  repository.PayrollRepository
	overrideRepo repository.OverrideRepository
	companyRepo  repository.CompanyRepository
	saftBuilder  SAFTBuilder
	cache        ReportCache
	opts         Options
	log          zerolog.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewUseCase(
	invoiceRepo repository.InvoiceRepository,
	purchaseRepo repository.PurchaseRepository,
	payrollRepo repository.PayrollRepository,
	overrideRepo repository.OverrideRepository,
	companyRepo repository.CompanyRepository,
	saftBuilder SAFTBuilder,
	cache ReportCache,
	opts Options,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
		payrollRepo:  payrollRepo,
		overrideRepo: overrideRepo,
		companyRepo:  companyRepo,
		saftBuilder:  saftBuilder,
		cache:        cache,
		opts:         opts,
		log:          log,
		now:          time.Now,
	}
}

// PeriodFromQuery valida la query y la convierte en Period.
func PeriodFromQuery(q dto.PeriodQuery) (tax.Period, error) {
	if q.Year < 2000 || q.Year > 2100 || q.Month < 0 || q.Month > 12 {
		return tax.Period{}, fmt.Errorf("%w: período %d-%d", domain.ErrInvalidInput, q.Year, q.Month)
	}
	return tax.Period{Year: q.Year, Month: time.Month(q.Month)}, nil
}

// Modelo7 declaração periódica de IVA según el régimen de la empresa.
func (uc *UseCase) Modelo7(ctx context.Context, companyID string, q dto.PeriodQuery) (*dto.Modelo7Response, error) {
	p, err := PeriodFromQuery(q)
	if err != nil {
		return nil, err
	}
	return cached(ctx, uc, companyID, "modelo7:"+p.String(), func() (*dto.Modelo7Response, error) {
		company, err := uc.company(ctx, companyID)
		if err != nil {
			return nil, err
		}
		f := periodFilter(p)
		invoices, err := uc.invoiceRepo.List(ctx, companyID, f)
		if err != nil {
			return nil, fmt.Errorf("listar documentos: %w", err)
		}
		purchases, err := uc.purchaseRepo.List(ctx, companyID, f)
		if err != nil {
			return nil, fmt.Errorf("listar compras: %w", err)
		}
		r := tax.ComputeModelo7(tax.Modelo7Input{
			Regime:     company.Regime,
			Period:     p,
			Invoices:   invoices,
			Purchases:  purchases,
			ExemptRate: uc.opts.SimplifiedExemptRate,
		})
		return toModelo7Response(p, r), nil
	})
}

// Modelo1 declaração anual del Imposto Industrial con columna comparativa.
func (uc *UseCase) Modelo1(ctx context.Context, companyID string, year int) (*dto.Modelo1Response, error) {
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: ejercicio %d", domain.ErrInvalidInput, year)
	}
	return cached(ctx, uc, companyID, fmt.Sprintf("modelo1:%d", year), func() (*dto.Modelo1Response, error) {
		overrides, err := uc.overrideRepo.Get(ctx, companyID, year)
		if err != nil {
			return nil, fmt.Errorf("cargar valores manuales: %w", err)
		}
		return uc.computeModelo1(ctx, companyID, year, overrides)
	})
}

func (uc *UseCase) computeModelo1(ctx context.Context, companyID string, year int, overrides tax.Overrides) (*dto.Modelo1Response, error) {
	f := repository.DocumentFilter{
		From: tax.YearPeriod(year - 1).Start(),
		To:   tax.YearPeriod(year).End(),
	}
	invoices, err := uc.invoiceRepo.List(ctx, companyID, f)
	if err != nil {
		return nil, fmt.Errorf("listar documentos: %w", err)
	}
	purchases, err := uc.purchaseRepo.List(ctx, companyID, f)
	if err != nil {
		return nil, fmt.Errorf("listar compras: %w", err)
	}
	payroll, err := uc.payrollRepo.ListByYears(ctx, companyID, year-1, year)
	if err != nil {
		return nil, fmt.Errorf("listar salarios: %w", err)
	}
	r := tax.ComputeModelo1Comparative(tax.Modelo1Input{
		Year:      year,
		Invoices:  invoices,
		Purchases: purchases,
		Payroll:   payroll,
		Overrides: overrides,
	})
	return toModelo1Response(r), nil
}

// ReplaceOverrides guarda los valores manuales del formulario y devuelve la
// declaração recalculada. Texto vacío o inválido elimina el override.
func (uc *UseCase) ReplaceOverrides(ctx context.Context, companyID string, in dto.Modelo1OverridesRequest) (*dto.Modelo1Response, error) {
	if in.Year < 2000 || in.Year > 2100 {
		return nil, fmt.Errorf("%w: ejercicio %d", domain.ErrInvalidInput, in.Year)
	}
	overrides := tax.ParseOverrides(in.Values)
	if err := uc.overrideRepo.Replace(ctx, companyID, in.Year, overrides); err != nil {
		return nil, fmt.Errorf("guardar valores manuales: %w", err)
	}
	uc.log.Info().
		Str("company_id", companyID).
		Int("year", in.Year).
		Int("overrides", len(overrides)).
		Msg("valores manuales del Modelo 1 actualizados")
	uc.invalidate(ctx, companyID)
	return uc.computeModelo1(ctx, companyID, in.Year, overrides)
}

// StampDuty mapa del Imposto de Selo del período.
func (uc *UseCase) StampDuty(ctx context.Context, companyID string, q dto.PeriodQuery) (*dto.StampDutyResponse, error) {
	p, err := PeriodFromQuery(q)
	if err != nil {
		return nil, err
	}
	return cached(ctx, uc, companyID, "stamp:"+p.String(), func() (*dto.StampDutyResponse, error) {
		invoices, err := uc.invoiceRepo.List(ctx, companyID, periodFilter(p))
		if err != nil {
			return nil, fmt.Errorf("listar documentos: %w", err)
		}
		return toStampDutyResponse(tax.ComputeStampDuty(invoices, p)), nil
	})
}

// Dashboard indicadores del período; sin año usa el mes en curso.
func (uc *UseCase) Dashboard(ctx context.Context, companyID string, q dto.PeriodQuery) (*dto.DashboardSummaryDTO, error) {
	if q.Year == 0 {
		now := uc.now()
		q = dto.PeriodQuery{Year: now.Year(), Month: int(now.Month())}
	}
	p, err := PeriodFromQuery(q)
	if err != nil {
		return nil, err
	}
	return cached(ctx, uc, companyID, "dashboard:"+p.String(), func() (*dto.DashboardSummaryDTO, error) {
		f := periodFilter(p)
		invoices, err := uc.invoiceRepo.List(ctx, companyID, f)
		if err != nil {
			return nil, fmt.Errorf("listar documentos: %w", err)
		}
		purchases, err := uc.purchaseRepo.List(ctx, companyID, f)
		if err != nil {
			return nil, fmt.Errorf("listar compras: %w", err)
		}
		return toDashboardDTO(tax.ComputeDashboard(invoices, purchases, p)), nil
	})
}

// SAFT genera el ficheiro de facturação del período. No se cachea.
func (uc *UseCase) SAFT(ctx context.Context, companyID string, q dto.PeriodQuery) (*saft.Result, error) {
	p, err := PeriodFromQuery(q)
	if err != nil {
		return nil, err
	}
	company, err := uc.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	invoices, err := uc.invoiceRepo.List(ctx, companyID, periodFilter(p))
	if err != nil {
		return nil, fmt.Errorf("listar documentos: %w", err)
	}
	res, err := uc.saftBuilder.Build(saft.Input{
		Company:     *company,
		Summary:     tax.SummarizeSales(invoices, p),
		Software:    uc.opts.Software,
		GeneratedAt: uc.now(),
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("period", p.String()).
		Str("digest", res.Digest).
		Int("bytes", len(res.XML)).
		Msg("SAF-T generado")
	return res, nil
}

func (uc *UseCase) company(ctx context.Context, companyID string) (*entity.Company, error) {
	c, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("cargar empresa: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *UseCase) invalidate(ctx context.Context, companyID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, companyID); err != nil {
		uc.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo invalidar la caché de relatórios")
	}
}

// periodFilter ventana de carga; el cálculo vuelve a filtrar por fecha efectiva.
func periodFilter(p tax.Period) repository.DocumentFilter {
	return repository.DocumentFilter{From: p.Start(), To: p.End()}
}

// cached lee el relatório de la caché o lo calcula y lo guarda. Los fallos
// de la caché nunca impiden responder.
func cached[T any](ctx context.Context, uc *UseCase, companyID, name string, compute func() (*T, error)) (*T, error) {
	if uc.cache == nil {
		return compute()
	}
	version, err := uc.cache.Version(ctx, companyID)
	if err != nil {
		uc.log.Warn().Err(err).Str("report", name).Msg("caché no disponible")
		return compute()
	}
	key := fmt.Sprintf("reports:%s:v%d:%s", companyID, version, name)
	var hit T
	if ok, err := uc.cache.Get(ctx, key, &hit); err == nil && ok {
		uc.log.Debug().Str("key", key).Msg("relatório servido desde caché")
		return &hit, nil
	}
	out, err := compute()
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, key, out); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar el relatório en caché")
	}
	return out, nil
}
