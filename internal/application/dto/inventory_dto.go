package dto

import "github.com/shopspring/decimal"

// StockBalanceDTO saldo derivado de un producto.
type StockBalanceDTO struct {
	ProductID   string                     `json:"product_id"`
	ProductName string                     `json:"product_name,omitempty"`
	Entries     decimal.Decimal            `json:"entries"`
	Exits       decimal.Decimal            `json:"exits"`
	Balance     decimal.Decimal            `json:"balance"`
	ByWarehouse map[string]decimal.Decimal `json:"by_warehouse"`
	AverageCost decimal.Decimal            `json:"average_cost"`
	Value       decimal.Decimal            `json:"value"`
	Negative    bool                       `json:"negative"`
}

// StockDriftDTO diferencia entre caché y ledger.
type StockDriftDTO struct {
	ProductID string          `json:"product_id"`
	Cached    decimal.Decimal `json:"cached"`
	Ledger    decimal.Decimal `json:"ledger"`
}

// StockReportResponse GET /api/inventory/stock.
type StockReportResponse struct {
	Balances      []StockBalanceDTO  `json:"balances"`
	Alerts        []StockBalanceDTO  `json:"alerts"`
	Drifts        []StockDriftDTO    `json:"drifts"`
	Replenishment []ReplenishmentDTO `json:"replenishment"`
}

// StockAdjustmentRequest POST /api/inventory/adjustments.
type StockAdjustmentRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	Type        string          `json:"type" validate:"required,oneof=ENTRY EXIT"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitCost    decimal.Decimal `json:"unit_cost" validate:"gte=0"`
	Notes       string          `json:"notes,omitempty"`
}

// ReplenishmentDTO producto con saldo por debajo del stock mínimo.
// SuggestedQty lleva el saldo a 1,5 × mínimo.
type ReplenishmentDTO struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	MinStock      decimal.Decimal `json:"min_stock"`
	Balance       decimal.Decimal `json:"balance"`
	SuggestedQty  decimal.Decimal `json:"suggested_qty"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}
