// Package fixture implementa los puertos de repositorio sobre un dataset JSON
// en memoria. Lo usa fiscalctl para calcular declarações sin base de datos.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/domain"
	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
	"github.com/jhoicas/Faturacao-api/internal/domain/tax"
)

// Dataset contenido del fichero. Las claves de las entidades siguen el nombre
// de sus campos (camelCase admitido); fechas en RFC 3339 e importes como
// número o texto. Overrides: ejercicio → código de linha → valor.
type Dataset struct {
	Company       entity.Company               `json:"company"`
	Invoices      []entity.Invoice             `json:"invoices"`
	Purchases     []entity.Purchase            `json:"purchases"`
	Payroll       []entity.SalarySlip          `json:"payroll"`
	Adjustments   []entity.StockMovement       `json:"adjustments"`
	Products      []entity.Product             `json:"products"`
	Warehouses    []entity.Warehouse           `json:"warehouses"`
	CashRegisters []entity.CashRegister        `json:"cashRegisters"`
	CashMovements []entity.CashMovement        `json:"cashMovements"`
	Overrides     map[string]map[string]string `json:"overrides"`
}

// Store dataset de una sola empresa. Seguro para uso concurrente.
type Store struct {
	mu        sync.RWMutex
	data      Dataset
	overrides map[int]tax.Overrides
}

// Load lee y decodifica el fichero.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: leer %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodifica un dataset. La empresa es obligatoria; las entidades sin
// CompanyID se asignan a ella.
func Parse(raw []byte) (*Store, error) {
	var d Dataset
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("fixture: JSON inválido: %w", err)
	}
	if d.Company.ID == "" {
		return nil, fmt.Errorf("%w: fixture sin company.id", domain.ErrInvalidInput)
	}
	s := &Store{data: d, overrides: make(map[int]tax.Overrides, len(d.Overrides))}
	s.assignCompany()
	for y, fields := range d.Overrides {
		year, err := strconv.Atoi(y)
		if err != nil {
			return nil, fmt.Errorf("%w: ejercicio de overrides %q", domain.ErrInvalidInput, y)
		}
		s.overrides[year] = tax.ParseOverrides(fields)
	}
	return s, nil
}

// CompanyID empresa del dataset.
func (s *Store) CompanyID() string { return s.data.Company.ID }

func (s *Store) assignCompany() {
	id := s.data.Company.ID
	for i := range s.data.Invoices {
		if s.data.Invoices[i].CompanyID == "" {
			s.data.Invoices[i].CompanyID = id
		}
	}
	for i := range s.data.Purchases {
		if s.data.Purchases[i].CompanyID == "" {
			s.data.Purchases[i].CompanyID = id
		}
	}
	for i := range s.data.Payroll {
		if s.data.Payroll[i].CompanyID == "" {
			s.data.Payroll[i].CompanyID = id
		}
	}
	for i := range s.data.Adjustments {
		if s.data.Adjustments[i].CompanyID == "" {
			s.data.Adjustments[i].CompanyID = id
		}
	}
	for i := range s.data.Products {
		if s.data.Products[i].CompanyID == "" {
			s.data.Products[i].CompanyID = id
		}
	}
	for i := range s.data.Warehouses {
		if s.data.Warehouses[i].CompanyID == "" {
			s.data.Warehouses[i].CompanyID = id
		}
	}
	for i := range s.data.CashRegisters {
		if s.data.CashRegisters[i].CompanyID == "" {
			s.data.CashRegisters[i].CompanyID = id
		}
	}
	for i := range s.data.CashMovements {
		if s.data.CashMovements[i].CompanyID == "" {
			s.data.CashMovements[i].CompanyID = id
		}
	}
}

// ── repositorios ──

// Companies puerto de empresa.
func (s *Store) Companies() repository.CompanyRepository { return companyRepo{s} }

// Invoices puerto de documentos de venta.
func (s *Store) Invoices() repository.InvoiceRepository { return invoiceRepo{s} }

// Purchases puerto de compras.
func (s *Store) Purchases() repository.PurchaseRepository { return purchaseRepo{s} }

// Payroll puerto de recibos de salario.
func (s *Store) Payroll() repository.PayrollRepository { return payrollRepo{s} }

// Overrides puerto de valores manuales del Modelo 1.
func (s *Store) Overrides() repository.OverrideRepository { return overrideRepo{s} }

// Adjustments puerto de ajustes de stock.
func (s *Store) Adjustments() repository.StockMovementRepository { return adjustmentRepo{s} }

// Products puerto de productos.
func (s *Store) Products() repository.ProductRepository { return productRepo{s} }

// Warehouses puerto de armazéns.
func (s *Store) Warehouses() repository.WarehouseRepository { return warehouseRepo{s} }

// Cash puerto de caixas.
func (s *Store) Cash() repository.CashRepository { return cashRepo{s} }

type companyRepo struct{ s *Store }

func (r companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	if id != r.s.data.Company.ID {
		return nil, nil
	}
	c := r.s.data.Company
	return &c, nil
}

type invoiceRepo struct{ s *Store }

func (r invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	for _, existing := range r.s.data.Invoices {
		if existing.ID == inv.ID {
			return domain.ErrDuplicate
		}
	}
	r.s.data.Invoices = append(r.s.data.Invoices, *inv)
	return nil
}

func (r invoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.data.Invoices {
		if r.s.data.Invoices[i].ID == inv.ID && r.s.data.Invoices[i].CompanyID == inv.CompanyID {
			r.s.data.Invoices[i] = *inv
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r invoiceRepo) GetByID(_ context.Context, companyID, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, inv := range r.s.data.Invoices {
		if inv.ID == id && inv.CompanyID == companyID {
			return &inv, nil
		}
	}
	return nil, nil
}

func (r invoiceRepo) List(_ context.Context, companyID string, f repository.DocumentFilter) ([]entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []entity.Invoice
	for _, inv := range r.s.data.Invoices {
		if inv.CompanyID == companyID && inWindow(inv.EffectiveDate(), f) {
			out = append(out, inv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EffectiveDate().Before(out[j].EffectiveDate()) })
	return out, nil
}

type purchaseRepo struct{ s *Store }

func (r purchaseRepo) List(_ context.Context, companyID string, f repository.DocumentFilter) ([]entity.Purchase, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []entity.Purchase
	for _, p := range r.s.data.Purchases {
		if p.CompanyID == companyID && inWindow(p.Date, f) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type payrollRepo struct{ s *Store }

func (r payrollRepo) ListByYears(_ context.Context, companyID string, fromYear, toYear int) ([]entity.SalarySlip, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []entity.SalarySlip
	for _, sl := range r.s.data.Payroll {
		if sl.CompanyID == companyID && sl.Year >= fromYear && sl.Year <= toYear {
			out = append(out, sl)
		}
	}
	return out, nil
}

type overrideRepo struct{ s *Store }

func (r overrideRepo) Get(_ context.Context, companyID string, year int) (tax.Overrides, error) {
	if companyID != r.s.data.Company.ID {
		return nil, nil
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.overrides[year].Clone(), nil
}

func (r overrideRepo) Replace(_ context.Context, companyID string, year int, o tax.Overrides) error {
	if companyID != r.s.data.Company.ID {
		return domain.ErrNotFound
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.overrides[year] = o.Clone()
	return nil
}

type adjustmentRepo struct{ s *Store }

func (r adjustmentRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.s.data.Adjustments = append(r.s.data.Adjustments, *m)
	return nil
}

func (r adjustmentRepo) List(_ context.Context, companyID string) ([]entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []entity.StockMovement
	for _, m := range r.s.data.Adjustments {
		if m.CompanyID == companyID {
			out = append(out, m)
		}
	}
	return out, nil
}

type productRepo struct{ s *Store }

func (r productRepo) ListByCompany(_ context.Context, companyID string) ([]entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []entity.Product
	for _, p := range r.s.data.Products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r productRepo) UpdateStockCache(_ context.Context, productID string, stock decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.data.Products {
		if r.s.data.Products[i].ID == productID {
			r.s.data.Products[i].Stock = stock
			return nil
		}
	}
	return domain.ErrNotFound
}

type warehouseRepo struct{ s *Store }

func (r warehouseRepo) ListByCompany(_ context.Context, companyID string) ([]entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []entity.Warehouse
	for _, w := range r.s.data.Warehouses {
		if w.CompanyID == companyID {
			out = append(out, w)
		}
	}
	return out, nil
}

type cashRepo struct{ s *Store }

func (r cashRepo) ListRegisters(_ context.Context, companyID string) ([]entity.CashRegister, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []entity.CashRegister
	for _, c := range r.s.data.CashRegisters {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r cashRepo) CreateMovements(_ context.Context, movements []entity.CashMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.CashMovements = append(r.s.data.CashMovements, movements...)
	return nil
}

func (r cashRepo) ListMovements(_ context.Context, companyID string) ([]entity.CashMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []entity.CashMovement
	for _, m := range r.s.data.CashMovements {
		if m.CompanyID == companyID {
			out = append(out, m)
		}
	}
	return out, nil
}

// inWindow mismo criterio que el filtro SQL: límites inclusivos, cero = abierto.
func inWindow(t time.Time, f repository.DocumentFilter) bool {
	if !f.From.IsZero() && t.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.After(f.To) {
		return false
	}
	return true
}
