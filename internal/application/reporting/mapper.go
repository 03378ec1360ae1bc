package reporting

import (
	"github.com/jhoicas/Faturacao-api/internal/application/dto"
	"github.com/jhoicas/Faturacao-api/internal/domain/tax"
	"github.com/jhoicas/Faturacao-api/pkg/money"
)

const dateLayout = "2006-01-02"

func toModelo7Response(p tax.Period, r tax.Modelo7Report) *dto.Modelo7Response {
	out := &dto.Modelo7Response{Period: p.String(), Regime: string(r.Regime)}
	if g := r.General; g != nil {
		gd := &dto.Modelo7GeneralDTO{
			Buckets:                make([]dto.VATBucketDTO, 0, len(g.Buckets)),
			TotalSalesBase:         g.TotalSalesBase,
			TotalFavorEstado:       g.TotalFavorEstado,
			DeductibleTax:          g.DeductibleTax,
			RegularizationsSubject: g.RegularizationsSubject,
			TotalFavorSujeito:      g.TotalFavorSujeito,
			ToPay:                  g.ToPay,
			ToRecover:              g.ToRecover,
			SupplierAnnex:          make([]dto.SupplierAnnexRowDTO, 0, len(g.SupplierAnnex.Rows)),
			SupplierAnnexTotalTax:  g.SupplierAnnex.TotalTax,
			RegularizationAnnex:    make([]dto.RegularizationRowDTO, 0, len(g.RegularizationAnnex.Rows)),
			RegularizationTotalTax: g.RegularizationAnnex.TotalTax,
		}
		for _, b := range g.Buckets {
			gd.Buckets = append(gd.Buckets, dto.VATBucketDTO{Rate: b.Rate, Base: b.Base, Tax: b.Tax})
		}
		for _, r := range g.SupplierAnnex.Rows {
			gd.SupplierAnnex = append(gd.SupplierAnnex, dto.SupplierAnnexRowDTO{
				SupplierNIF: r.SupplierNIF, SupplierName: r.SupplierName,
				DocumentType: string(r.DocumentType), DocumentNumber: r.DocumentNumber,
				Date: r.Date.Format(dateLayout), Base: r.Base, Tax: r.Tax, Deductible: r.Deductible,
			})
		}
		for _, r := range g.RegularizationAnnex.Rows {
			gd.RegularizationAnnex = append(gd.RegularizationAnnex, dto.RegularizationRowDTO{
				DocumentType: string(r.DocumentType), DocumentNumber: r.DocumentNumber,
				Date: r.Date.Format(dateLayout), ClientNIF: r.ClientNIF,
				Base: r.Base, Tax: r.Tax, Destination: r.Destination,
			})
		}
		out.General = gd
	}
	if s := r.Simplified; s != nil {
		out.Simplified = &dto.Modelo7SimplifiedDTO{
			Documents:       s.Documents,
			Rate:            s.Rate,
			Turnover:        s.Turnover,
			ExemptTurnover:  s.ExemptTurnover,
			TaxableTurnover: s.TaxableTurnover,
			TaxOnTaxable:    s.TaxOnTaxable,
			ExemptRate:      s.ExemptRate,
			TaxOnExempt:     s.TaxOnExempt,
			TaxDue:          s.TaxDue,
		}
	}
	return out
}

func toModelo1Response(r tax.Modelo1Report) *dto.Modelo1Response {
	return &dto.Modelo1Response{Current: toDeclaration(r.Current), Prior: toDeclaration(r.Prior)}
}

func toDeclaration(d tax.Modelo1Declaration) dto.Modelo1DeclarationDTO {
	return dto.Modelo1DeclarationDTO{
		Year:                       d.Year,
		Lines:                      toLines(d.Lines),
		FSEBreakdown:               toLines(d.FSEBreakdown),
		TotalProveitosOperacionais: d.TotalProveitosOperacionais,
		TotalOutrosProveitos:       d.TotalOutrosProveitos,
		TotalProveitosGeral:        d.TotalProveitosGeral,
		TotalCustos:                d.TotalCustos,
		ResultadoAntesImpostos:     d.ResultadoAntesImpostos,
		AcrescimosFiscais:          d.AcrescimosFiscais,
		Deducoes:                   d.Deducoes,
		LucroTributavel:            d.LucroTributavel,
		Colecta:                    d.Colecta,
		DeducoesColecta:            d.DeducoesColecta,
		ImpostoPagar:               d.ImpostoPagar,
	}
}

func toLines(lines []tax.Line) []dto.Modelo1LineDTO {
	if len(lines) == 0 {
		return nil
	}
	out := make([]dto.Modelo1LineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.Modelo1LineDTO{
			Code: l.Code, Label: l.Label, Value: l.Value,
			Computed: l.Computed, Overridden: l.Overridden, Manual: l.Manual,
		})
	}
	return out
}

func toStampDutyResponse(r tax.StampDutyReport) *dto.StampDutyResponse {
	out := &dto.StampDutyResponse{
		Period:    r.Period.String(),
		Rows:      make([]dto.StampDutyRowDTO, 0, len(r.Rows)),
		TotalBase: r.TotalBase,
		TotalTax:  r.TotalTax,
	}
	for _, row := range r.Rows {
		out.Rows = append(out.Rows, dto.StampDutyRowDTO{
			DocumentType: string(row.DocumentType), DocumentNumber: row.DocumentNumber,
			Date: row.Date.Format(dateLayout), ClientName: row.ClientName,
			Base: row.Base, Tax: row.Tax,
		})
	}
	return out
}

func toDashboardDTO(s tax.DashboardSummary) *dto.DashboardSummaryDTO {
	return &dto.DashboardSummaryDTO{
		Period:        s.Period.String(),
		Documents:     s.Documents,
		GrossSales:    s.GrossSales,
		CreditNotes:   s.CreditNotes,
		NetSales:      s.NetSales,
		VATCharged:    s.VATCharged,
		Withholding:   s.Withholding,
		Retention:     s.Retention,
		StampDuty:     s.StampDuty,
		Purchases:     s.Purchases,
		DeductibleVAT: s.DeductibleVAT,
		NetSalesText:  money.FormatKz(s.NetSales),
	}
}
