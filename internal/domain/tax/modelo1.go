package tax

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
)

// Constantes del Imposto Industrial.
var (
	IndustrialTaxRate      = decimal.RequireFromString("0.25")
	EmployerSocialSecurity = decimal.RequireFromString("0.08")
)

// Reparto ilustrativo de FSE cuando la linha 75 se introduce a mano.
var fseIllustrativeSplit = []fseShare{
	{"75.1", "Água e electricidade", decimal.RequireFromString("0.10")},
	{"75.2", "Rendas e alugueres", decimal.RequireFromString("0.20")},
	{"75.3", "Honorários e avenças", decimal.RequireFromString("0.15")},
	{"75.4", "Outros fornecimentos e serviços", decimal.RequireFromString("0.55")},
}

type fseShare struct {
	code  string
	label string
	share decimal.Decimal
}

// Line linha de la declaração.
type Line struct {
	Code       string
	Label      string
	Value      decimal.Decimal
	Computed   decimal.Decimal // valor antes de aplicar el override
	Overridden bool
	Manual     bool // sin fuente automática
}

// Modelo1Declaration declaração anual de un ejercicio.
type Modelo1Declaration struct {
	Year                       int
	Lines                      []Line
	FSEBreakdown               []Line // sólo cuando la linha 75 está sobrescrita
	TotalProveitosOperacionais decimal.Decimal
	TotalOutrosProveitos       decimal.Decimal
	TotalProveitosGeral        decimal.Decimal
	TotalCustos                decimal.Decimal
	ResultadoAntesImpostos     decimal.Decimal
	AcrescimosFiscais          decimal.Decimal // art18 + art37 + art45
	Deducoes                   decimal.Decimal
	LucroTributavel            decimal.Decimal
	Colecta                    decimal.Decimal
	DeducoesColecta            decimal.Decimal
	ImpostoPagar               decimal.Decimal
}

// Line busca una linha por código.
func (d Modelo1Declaration) Line(code string) (Line, bool) {
	for _, l := range d.Lines {
		if l.Code == code {
			return l, true
		}
	}
	return Line{}, false
}

// Value valor de la linha (cero si no existe).
func (d Modelo1Declaration) Value(code string) decimal.Decimal {
	l, _ := d.Line(code)
	return l.Value
}

// Modelo1Input colecciones completas; el cálculo filtra el ejercicio.
type Modelo1Input struct {
	Year      int
	Invoices  []entity.Invoice
	Purchases []entity.Purchase
	Payroll   []entity.SalarySlip
	Overrides Overrides
}

// Modelo1Report ejercicio actual (con overrides) y anterior (sólo calculado).
type Modelo1Report struct {
	Current Modelo1Declaration
	Prior   Modelo1Declaration
}

// ComputeModelo1Comparative ejecuta el cálculo dos veces para las columnas
// comparativas. El ejercicio anterior nunca admite overrides.
func ComputeModelo1Comparative(in Modelo1Input) Modelo1Report {
	prior := in
	prior.Year = in.Year - 1
	prior.Overrides = nil
	return Modelo1Report{
		Current: ComputeModelo1(in),
		Prior:   ComputeModelo1(prior),
	}
}

type modelo1Sources struct {
	productSales decimal.Decimal
	serviceSales decimal.Decimal
	returns      decimal.Decimal
	discounts    decimal.Decimal
	cmvmc        decimal.Decimal
	fse          decimal.Decimal
	grossPayroll decimal.Decimal
}

func collectModelo1Sources(in Modelo1Input) modelo1Sources {
	p := YearPeriod(in.Year)
	var s modelo1Sources
	for _, inv := range CertifiedOnly(InvoicesInPeriod(in.Invoices, p)) {
		switch {
		case inv.Type.IsSale():
			for _, it := range inv.Items {
				net := netOfTax(it.Total, it.TaxRate)
				if it.Type == entity.ItemTypeService {
					s.serviceSales = s.serviceSales.Add(net)
				} else {
					s.productSales = s.productSales.Add(net)
				}
			}
			s.discounts = s.discounts.Add(inv.Subtotal.Mul(inv.GlobalDiscount.Shift(-2)))
		case inv.Type.IsCreditNote():
			s.returns = s.returns.Add(inv.Subtotal)
		}
	}
	for _, pu := range AccruedPurchasesInPeriod(in.Purchases, p) {
		if pu.Type.IsReceipt() {
			s.fse = s.fse.Add(pu.Subtotal)
		} else {
			s.cmvmc = s.cmvmc.Add(pu.Subtotal)
		}
	}
	for _, slip := range PayrollInPeriod(in.Payroll, p) {
		s.grossPayroll = s.grossPayroll.Add(slip.GrossTotal)
	}
	return s
}

// ComputeModelo1 recorre el plano de linhas de arriba abajo; cada linha
// consulta primero el override.
func ComputeModelo1(in Modelo1Input) Modelo1Declaration {
	src := collectModelo1Sources(in)
	b := &lineBuilder{overrides: in.Overrides}
	d := Modelo1Declaration{Year: in.Year}

	// Proveitos operacionais
	v611 := b.manual("61.1", "Vendas de mercadorias")
	v612 := b.computed("61.2", "Vendas de produtos", src.productSales)
	v613 := b.manual("61.3", "Vendas de embalagens")
	v614 := b.manual("61.4", "Subsídios a preços")
	v618 := b.computed("61.8", "Devoluções", src.returns)
	v619 := b.computed("61.9", "Descontos e abatimentos", src.discounts)
	v61 := b.computed("61", "Vendas", sum(v611, v612, v613, v614).Sub(v618).Sub(v619))

	v621 := b.computed("62.1", "Serviços principais", src.serviceSales)
	v622 := b.manual("62.2", "Serviços secundários")
	v623 := b.manual("62.3", "Serviços prestados ao estrangeiro")
	v62 := b.computed("62", "Prestações de serviço", sum(v621, v622, v623))

	v63 := b.manual("63", "Outros proveitos operacionais")
	v64 := b.manual("64", "Variação nos produtos acabados e em vias de fabrico")
	v65 := b.manual("65", "Trabalhos para a própria empresa")
	d.TotalProveitosOperacionais = sum(v61, v62, v63, v64, v65)

	// Outros proveitos
	v66 := b.manual("66", "Proveitos e ganhos financeiros gerais")
	v67 := b.manual("67", "Proveitos e ganhos financeiros em filiais e associadas")
	v68 := b.manual("68", "Outros proveitos e ganhos não operacionais")
	v69 := b.manual("69", "Proveitos e ganhos extraordinários")
	d.TotalOutrosProveitos = sum(v66, v67, v68, v69)
	d.TotalProveitosGeral = d.TotalProveitosOperacionais.Add(d.TotalOutrosProveitos)

	// Custos
	v71 := b.computed("71", "Custo das mercadorias vendidas e matérias consumidas", src.cmvmc)
	v721 := b.computed("72.1", "Remunerações do pessoal", src.grossPayroll)
	v722 := b.computed("72.2", "Encargos sobre remunerações", src.grossPayroll.Mul(EmployerSocialSecurity))
	v723 := b.manual("72.3", "Outros custos com o pessoal")
	v72 := b.computed("72", "Custos com o pessoal", sum(v721, v722, v723))
	v73 := b.manual("73", "Amortizações do exercício")
	v75 := b.computed("75", "Fornecimentos e serviços de terceiros", src.fse)
	if l := b.last(); l.Overridden {
		d.FSEBreakdown = fseBreakdown(l.Value)
	}
	v76 := b.manual("76", "Custos e perdas financeiros gerais")
	v77 := b.manual("77", "Custos e perdas financeiros em filiais e associadas")
	v78 := b.manual("78", "Outros custos e perdas não operacionais")
	v79 := b.manual("79", "Custos e perdas extraordinários")
	d.TotalCustos = sum(v71, v72, v73, v75, v76, v77, v78, v79)

	d.ResultadoAntesImpostos = d.TotalProveitosGeral.Sub(d.TotalCustos)

	// Apuramento do lucro tributável
	art18 := b.manual("art18", "Acréscimos: custos não aceites (art. 18.º)")
	art37 := b.manual("art37", "Acréscimos: provisões excedentes (art. 37.º)")
	art45 := b.manual("art45", "Acréscimos: outras correcções (art. 45.º)")
	d.AcrescimosFiscais = sum(art18, art37, art45)
	d.Deducoes = b.manual("deducoes", "Deduções ao lucro")
	d.LucroTributavel = nonNegative(d.ResultadoAntesImpostos.Add(d.AcrescimosFiscais).Sub(d.Deducoes))
	d.Colecta = d.LucroTributavel.Mul(IndustrialTaxRate)
	d.DeducoesColecta = b.manual("deducoesColecta", "Deduções à colecta")
	d.ImpostoPagar = nonNegative(d.Colecta.Sub(d.DeducoesColecta))

	d.Lines = b.lines
	return d
}

type lineBuilder struct {
	overrides Overrides
	lines     []Line
}

func (b *lineBuilder) computed(code, label string, computed decimal.Decimal) decimal.Decimal {
	v, ok := b.overrides.Resolve(code, computed)
	b.lines = append(b.lines, Line{Code: code, Label: label, Value: v, Computed: computed, Overridden: ok})
	return v
}

func (b *lineBuilder) manual(code, label string) decimal.Decimal {
	v, ok := b.overrides.Lookup(code)
	b.lines = append(b.lines, Line{Code: code, Label: label, Value: v, Overridden: ok, Manual: true})
	return v
}

func (b *lineBuilder) last() Line {
	return b.lines[len(b.lines)-1]
}

func fseBreakdown(total decimal.Decimal) []Line {
	out := make([]Line, 0, len(fseIllustrativeSplit))
	for _, s := range fseIllustrativeSplit {
		v := total.Mul(s.share)
		out = append(out, Line{Code: s.code, Label: s.label, Value: v, Computed: v})
	}
	return out
}

// netOfTax extrae la base de un valor con IVA incluido.
func netOfTax(total, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return total
	}
	return total.Div(decimal.NewFromInt(1).Add(rate.Shift(-2)))
}

func sum(vals ...decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, vals...)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
