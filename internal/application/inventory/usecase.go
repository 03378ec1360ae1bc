// Package inventory contiene los casos de uso del stock: saldos derivados del
// ledger, ajustes manuales, reposición y reparación de la caché Product.Stock.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Faturacao-api/internal/application/dto"
	"github.com/jhoicas/Faturacao-api/internal/domain"
	"github.com/jhoicas/Faturacao-api/internal/domain/entity"
	"github.com/jhoicas/Faturacao-api/internal/domain/inventory"
	"github.com/jhoicas/Faturacao-api/internal/domain/repository"
)

var replenishFactor = decimal.RequireFromString("1.5")

// UseCase stock de una empresa.
type UseCase struct {
	invoiceRepo    repository.InvoiceRepository
	purchaseRepo   repository.PurchaseRepository
	adjustmentRepo repository.StockMovementRepository
	productRepo    repository.ProductRepository
	warehouseRepo  repository.WarehouseRepository
	log            zerolog.Logger
	now            func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	invoiceRepo repository.InvoiceRepository,
	purchaseRepo repository.PurchaseRepository,
	adjustmentRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		invoiceRepo:    invoiceRepo,
		purchaseRepo:   purchaseRepo,
		adjustmentRepo: adjustmentRepo,
		productRepo:    productRepo,
		warehouseRepo:  warehouseRepo,
		log:            log,
		now:            time.Now,
	}
}

// Stock reproduce el ledger completo y lo compara con la caché de productos.
func (uc *UseCase) Stock(ctx context.Context, companyID string) (*dto.StockReportResponse, error) {
	ledger, products, err := uc.build(ctx, companyID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	out := &dto.StockReportResponse{
		Balances:      make([]dto.StockBalanceDTO, 0, len(ledger.Balances)),
		Alerts:        make([]dto.StockBalanceDTO, 0, len(ledger.Alerts)),
		Drifts:        make([]dto.StockDriftDTO, 0),
		Replenishment: replenishment(products, ledger),
	}
	for _, b := range ledger.Balances {
		out.Balances = append(out.Balances, toBalanceDTO(b, names[b.ProductID]))
	}
	for _, b := range ledger.Alerts {
		out.Alerts = append(out.Alerts, toBalanceDTO(b, names[b.ProductID]))
		uc.log.Warn().
			Str("company_id", companyID).
			Str("product_id", b.ProductID).
			Str("balance", b.Balance.String()).
			Msg("stock negativo")
	}
	for _, d := range inventory.Reconcile(products, ledger) {
		out.Drifts = append(out.Drifts, dto.StockDriftDTO{ProductID: d.ProductID, Cached: d.Cached, Ledger: d.Ledger})
	}
	return out, nil
}

// RegisterAdjustment guarda un ajuste manual (inventário físico, quebra) y
// actualiza la caché del producto con el nuevo saldo del ledger.
func (uc *UseCase) RegisterAdjustment(ctx context.Context, companyID, userID string, in dto.StockAdjustmentRequest) (*dto.StockBalanceDTO, error) {
	mt := entity.StockMovementType(in.Type)
	if mt != entity.StockMovementEntry && mt != entity.StockMovementExit {
		return nil, fmt.Errorf("%w: tipo de ajuste %q", domain.ErrInvalidInput, in.Type)
	}
	if !in.Quantity.IsPositive() || in.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: quantidade positiva y custo no negativo", domain.ErrInvalidInput)
	}

	products, err := uc.productRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	product := findProduct(products, in.ProductID)
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.Type == entity.ItemTypeService {
		return nil, fmt.Errorf("%w: los serviços no tienen stock", domain.ErrInvalidInput)
	}
	warehouses, err := uc.warehouseRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar armazéns: %w", err)
	}
	w := findWarehouse(warehouses, in.WarehouseID)
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if w.Closed {
		return nil, fmt.Errorf("%w: armazém %s encerrado", domain.ErrInvalidInput, w.Name)
	}

	m := &entity.StockMovement{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Date:        uc.now(),
		Type:        mt,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		DocumentRef: "AJUSTE",
		Notes:       in.Notes,
		CreatedBy:   userID,
	}
	if err := uc.adjustmentRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("guardar ajuste: %w", err)
	}

	ledger, _, err := uc.build(ctx, companyID)
	if err != nil {
		return nil, err
	}
	balance, _ := ledger.Balance(in.ProductID)
	if err := uc.productRepo.UpdateStockCache(ctx, in.ProductID, balance.Balance); err != nil {
		return nil, fmt.Errorf("actualizar caché de stock: %w", err)
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("product_id", in.ProductID).
		Str("type", in.Type).
		Str("quantity", in.Quantity.String()).
		Str("balance", balance.Balance.String()).
		Msg("ajuste de stock registrado")
	res := toBalanceDTO(balance, product.Name)
	res.ProductID = in.ProductID
	return &res, nil
}

// ReconcileCache reescribe Product.Stock de los productos con diferencias.
func (uc *UseCase) ReconcileCache(ctx context.Context, companyID string) ([]dto.StockDriftDTO, error) {
	ledger, products, err := uc.build(ctx, companyID)
	if err != nil {
		return nil, err
	}
	drifts := inventory.Reconcile(products, ledger)
	out := make([]dto.StockDriftDTO, 0, len(drifts))
	for _, d := range drifts {
		if err := uc.productRepo.UpdateStockCache(ctx, d.ProductID, d.Ledger); err != nil {
			return nil, fmt.Errorf("reparar caché de %s: %w", d.ProductID, err)
		}
		out = append(out, dto.StockDriftDTO{ProductID: d.ProductID, Cached: d.Cached, Ledger: d.Ledger})
	}
	if len(out) > 0 {
		uc.log.Warn().Str("company_id", companyID).Int("products", len(out)).Msg("caché de stock reparada")
	}
	return out, nil
}

func (uc *UseCase) build(ctx context.Context, companyID string) (inventory.Ledger, []entity.Product, error) {
	all := repository.DocumentFilter{}
	invoices, err := uc.invoiceRepo.List(ctx, companyID, all)
	if err != nil {
		return inventory.Ledger{}, nil, fmt.Errorf("listar documentos: %w", err)
	}
	purchases, err := uc.purchaseRepo.List(ctx, companyID, all)
	if err != nil {
		return inventory.Ledger{}, nil, fmt.Errorf("listar compras: %w", err)
	}
	adjustments, err := uc.adjustmentRepo.List(ctx, companyID)
	if err != nil {
		return inventory.Ledger{}, nil, fmt.Errorf("listar ajustes: %w", err)
	}
	products, err := uc.productRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return inventory.Ledger{}, nil, fmt.Errorf("listar productos: %w", err)
	}
	l := inventory.Build(inventory.LedgerInput{Invoices: invoices, Purchases: purchases, Adjustments: adjustments})
	return l, products, nil
}

// replenishment productos con mínimo definido y saldo por debajo de él.
func replenishment(products []entity.Product, l inventory.Ledger) []dto.ReplenishmentDTO {
	out := make([]dto.ReplenishmentDTO, 0)
	for _, p := range products {
		if p.Type == entity.ItemTypeService || !p.MinStock.IsPositive() {
			continue
		}
		b, _ := l.Balance(p.ID)
		if !b.Balance.LessThan(p.MinStock) {
			continue
		}
		qty := p.MinStock.Mul(replenishFactor).Sub(b.Balance)
		cost := b.AverageCost
		if cost.IsZero() {
			cost = p.Cost
		}
		out = append(out, dto.ReplenishmentDTO{
			ProductID:     p.ID,
			ProductName:   p.Name,
			MinStock:      p.MinStock,
			Balance:       b.Balance,
			SuggestedQty:  qty,
			EstimatedCost: qty.Mul(cost),
		})
	}
	return out
}

func toBalanceDTO(b inventory.StockBalance, name string) dto.StockBalanceDTO {
	byWarehouse := b.ByWarehouse
	if byWarehouse == nil {
		byWarehouse = map[string]decimal.Decimal{}
	}
	return dto.StockBalanceDTO{
		ProductID:   b.ProductID,
		ProductName: name,
		Entries:     b.Entries,
		Exits:       b.Exits,
		Balance:     b.Balance,
		ByWarehouse: byWarehouse,
		AverageCost: b.AverageCost,
		Value:       b.Value,
		Negative:    b.Negative,
	}
}

func findProduct(products []entity.Product, id string) *entity.Product {
	for i := range products {
		if products[i].ID == id {
			return &products[i]
		}
	}
	return nil
}

func findWarehouse(warehouses []entity.Warehouse, id string) *entity.Warehouse {
	for i := range warehouses {
		if warehouses[i].ID == id {
			return &warehouses[i]
		}
	}
	return nil
}
