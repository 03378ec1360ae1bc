// Package saft genera el ficheiro SAF-T (AO) de facturação a partir de los
// documentos certificados de un período.
package saft

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/tax"
	"github.com/jhoicas/Faturacao-api/pkg/agt"
)

const (
	xmlDeclaration = `version="1.0" encoding="Windows-1252"`
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// SoftwareInfo identificación del programa certificado en el Header.
type SoftwareInfo struct {
	CertificateNumber string
	ProductID         string
	ProductVersion    string
}

// Input datos de un ficheiro.
type Input struct {
	Company     entity.Company
	Summary     tax.SalesSummary
	Software    SoftwareInfo
	GeneratedAt time.Time
}

// Result ficheiro codificado en Windows-1252 y digest SHA-256 (Base64) de su forma canónica.
type Result struct {
	XML      []byte
	Digest   string
	FileName string
}

// Builder construye el AuditFile con etree.
type Builder struct{}

// NewBuilder crea el builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build genera el ficheiro completo.
func (b *Builder) Build(in Input) (*Result, error) {
	if in.Company.NIF == "" {
		return nil, fmt.Errorf("saft: empresa sin NIF")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlDeclaration)
	root := doc.CreateElement("AuditFile")
	root.CreateAttr("xmlns", agt.SAFTNamespace)

	b.writeHeader(root.CreateElement("Header"), in)
	b.writeMasterFiles(root.CreateElement("MasterFiles"), in.Summary.Documents)
	b.writeSalesInvoices(root.CreateElement("SourceDocuments").CreateElement("SalesInvoices"), in.Summary)
	doc.Indent(2)

	// el digest se calcula sobre el AuditFile sin declaración, en UTF-8
	bare := etree.NewDocument()
	bare.SetRoot(root.Copy())
	utf8XML, err := bare.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("saft: serializar: %w", err)
	}
	digest, err := canonicalDigest(utf8XML)
	if err != nil {
		return nil, err
	}

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("saft: serializar: %w", err)
	}
	encoded, err := charmap.Windows1252.NewEncoder().Bytes(out)
	if err != nil {
		return nil, fmt.Errorf("saft: codificar Windows-1252: %w", err)
	}
	return &Result{
		XML:      encoded,
		Digest:   digest,
		FileName: fmt.Sprintf("SAFT_AO_%s_%s.xml", in.Company.NIF, in.Summary.Period.String()),
	}, nil
}

func (b *Builder) writeHeader(h *etree.Element, in Input) {
	p := in.Summary.Period
	text(h, "AuditFileVersion", agt.SAFTAuditFileVersion)
	text(h, "CompanyID", in.Company.NIF)
	text(h, "TaxRegistrationNumber", in.Company.NIF)
	text(h, "TaxAccountingBasis", agt.SAFTTaxAccountingBasis)
	text(h, "CompanyName", in.Company.Name)
	addr := h.CreateElement("CompanyAddress")
	text(addr, "AddressDetail", orDefault(in.Company.Address, "Desconhecido"))
	text(addr, "City", orDefault(in.Company.City, "Desconhecido"))
	text(addr, "Country", "AO")
	text(h, "FiscalYear", strconv.Itoa(p.Year))
	text(h, "StartDate", p.Start().Format(dateLayout))
	text(h, "EndDate", p.End().Format(dateLayout))
	text(h, "CurrencyCode", agt.SAFTCurrencyCode)
	text(h, "DateCreated", in.GeneratedAt.Format(dateLayout))
	text(h, "TaxEntity", agt.SAFTTaxEntity)
	text(h, "ProductCompanyTaxID", in.Company.NIF)
	text(h, "SoftwareValidationNumber", orDefault(in.Software.CertificateNumber, "0"))
	text(h, "ProductID", in.Software.ProductID)
	text(h, "ProductVersion", in.Software.ProductVersion)
	if in.Company.Phone != "" {
		text(h, "Telephone", in.Company.Phone)
	}
	if in.Company.Email != "" {
		text(h, "Email", in.Company.Email)
	}
}

// writeMasterFiles clientes y tabla de impuestos usados por los documentos.
func (b *Builder) writeMasterFiles(mf *etree.Element, docs []entity.Invoice) {
	type customer struct{ id, nif, name string }
	customers := map[string]customer{}
	rates := map[string]decimal.Decimal{}
	for _, inv := range docs {
		id := customerID(inv)
		if _, ok := customers[id]; !ok {
			customers[id] = customer{id: id, nif: customerTaxID(inv.ClientNIF), name: orDefault(inv.ClientName, "Consumidor final")}
		}
		for _, it := range inv.Items {
			rates[it.TaxRate.String()] = it.TaxRate
		}
	}

	ids := make([]string, 0, len(customers))
	for id := range customers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		c := customers[id]
		el := mf.CreateElement("Customer")
		text(el, "CustomerID", c.id)
		text(el, "AccountID", "Desconhecido")
		text(el, "CustomerTaxID", c.nif)
		text(el, "CompanyName", c.name)
		addr := el.CreateElement("BillingAddress")
		text(addr, "AddressDetail", "Desconhecido")
		text(addr, "City", "Desconhecido")
		text(addr, "Country", "AO")
		text(el, "SelfBillingIndicator", "0")
	}

	keys := make([]string, 0, len(rates))
	for k := range rates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return rates[keys[i]].GreaterThan(rates[keys[j]]) })
	table := mf.CreateElement("TaxTable")
	for _, k := range keys {
		r := rates[k]
		e := table.CreateElement("TaxTableEntry")
		text(e, "TaxType", "IVA")
		text(e, "TaxCountryRegion", "AO")
		text(e, "TaxCode", agt.TaxCode(r))
		text(e, "Description", "IVA "+r.String()+"%")
		text(e, "TaxPercentage", r.StringFixed(2))
	}
}

func (b *Builder) writeSalesInvoices(si *etree.Element, s tax.SalesSummary) {
	text(si, "NumberOfEntries", strconv.Itoa(s.NumberOfEntries))
	text(si, "TotalDebit", s.TotalDebit.StringFixed(2))
	text(si, "TotalCredit", s.TotalCredit.StringFixed(2))
	for _, inv := range s.Documents {
		b.writeInvoice(si.CreateElement("Invoice"), inv)
	}
}

func (b *Builder) writeInvoice(el *etree.Element, inv entity.Invoice) {
	text(el, "InvoiceNo", inv.Number)
	st := el.CreateElement("DocumentStatus")
	status := "N"
	statusDate := systemEntry(inv)
	if inv.IsCancelled() {
		status = "A"
		if inv.CancelledAt != nil {
			statusDate = *inv.CancelledAt
		}
	}
	text(st, "InvoiceStatus", status)
	text(st, "InvoiceStatusDate", statusDate.Format(dateTimeLayout))
	if inv.CancelReason != "" {
		text(st, "Reason", inv.CancelReason)
	}
	text(st, "SourceID", orDefault(inv.CreatedBy, "Desconhecido"))
	text(st, "SourceBilling", "P")

	text(el, "Hash", inv.Hash)
	text(el, "HashControl", "1")
	text(el, "Period", strconv.Itoa(int(inv.EffectiveDate().Month())))
	text(el, "InvoiceDate", inv.Date.Format(dateLayout))
	text(el, "InvoiceType", string(inv.Type))
	sp := el.CreateElement("SpecialRegimes")
	text(sp, "SelfBillingIndicator", "0")
	text(sp, "CashVATSchemeIndicator", "0")
	text(sp, "ThirdPartiesBillingIndicator", "0")
	text(el, "SourceID", orDefault(inv.CreatedBy, "Desconhecido"))
	text(el, "SystemEntryDate", systemEntry(inv).Format(dateTimeLayout))
	text(el, "CustomerID", customerID(inv))

	credit := inv.Type.IsCreditNote()
	for i, it := range inv.Items {
		line := el.CreateElement("Line")
		text(line, "LineNumber", strconv.Itoa(i+1))
		if credit && inv.ReferenceID != "" {
			text(line.CreateElement("References"), "Reference", inv.ReferenceID)
		}
		text(line, "ProductCode", orDefault(it.ProductID, "SERV"))
		text(line, "ProductDescription", it.Description)
		text(line, "Quantity", it.Quantity.String())
		text(line, "UnitOfMeasure", "UN")
		text(line, "UnitPrice", it.UnitPrice.StringFixed(2))
		text(line, "TaxPointDate", inv.Date.Format(dateLayout))
		text(line, "Description", it.Description)
		if credit {
			text(line, "DebitAmount", it.Total.StringFixed(2))
		} else {
			text(line, "CreditAmount", it.Total.StringFixed(2))
		}
		t := line.CreateElement("Tax")
		text(t, "TaxType", "IVA")
		text(t, "TaxCountryRegion", "AO")
		text(t, "TaxCode", agt.TaxCode(it.TaxRate))
		text(t, "TaxPercentage", it.TaxRate.StringFixed(2))
		if it.TaxRate.IsZero() {
			text(line, "TaxExemptionReason", agt.ExemptionReasons[agt.ExemptionM00])
			text(line, "TaxExemptionCode", agt.ExemptionM00)
		}
		text(line, "SettlementAmount", "0.00")
	}

	tot := el.CreateElement("DocumentTotals")
	text(tot, "TaxPayable", inv.TaxAmount.StringFixed(2))
	text(tot, "NetTotal", inv.Subtotal.StringFixed(2))
	text(tot, "GrossTotal", inv.Total.StringFixed(2))
	if inv.Currency != "" && inv.Currency != agt.SAFTCurrencyCode {
		c := tot.CreateElement("Currency")
		text(c, "CurrencyCode", inv.Currency)
		text(c, "CurrencyAmount", inv.Total.StringFixed(2))
		text(c, "ExchangeRate", inv.ExchangeRate.String())
	}
	if inv.PaymentMethod != "" {
		pay := tot.CreateElement("Payment")
		text(pay, "PaymentMechanism", inv.PaymentMethod)
		text(pay, "PaymentAmount", inv.Total.StringFixed(2))
		text(pay, "PaymentDate", inv.Date.Format(dateLayout))
	}
	if inv.WithholdingAmount.IsPositive() {
		w := el.CreateElement("WithholdingTax")
		text(w, "WithholdingTaxType", "II")
		text(w, "WithholdingTaxDescription", "Retenção na fonte sobre prestação de serviços")
		text(w, "WithholdingTaxAmount", inv.WithholdingAmount.StringFixed(2))
	}
}

func canonicalDigest(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("saft: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func text(parent *etree.Element, tag, value string) {
	parent.CreateElement(tag).SetText(value)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// customerTaxID vacío o genérico se declara como consumidor final.
func customerTaxID(nif string) string {
	if agt.IsConsumerFinal(nif) {
		return agt.ConsumerFinalNIF
	}
	return strings.ToUpper(strings.TrimSpace(nif))
}

func customerID(inv entity.Invoice) string {
	if inv.ClientID != "" {
		return inv.ClientID
	}
	return agt.ConsumerFinalNIF
}

func systemEntry(inv entity.Invoice) time.Time {
	if inv.SystemEntryDate != nil {
		return *inv.SystemEntryDate
	}
	return inv.Date
}
