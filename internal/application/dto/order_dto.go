package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOFRequest body pour POST /api/of.
type CreateOFRequest struct {
	OfCode        string          `json:"of_code"`
	ProductID     string          `json:"product_id"`
	QtyCommandee  decimal.Decimal `json:"qty_commandee"`
	DateLancement time.Time       `json:"date_lancement"`
}

// OFResponse représentation d'un ordre de fabrication.
type OFResponse struct {
	ID            string          `json:"id"`
	OfCode        string          `json:"of_code"`
	ProductID     string          `json:"product_id"`
	QtyCommandee  decimal.Decimal `json:"qty_commandee"`
	QtyProduite   decimal.Decimal `json:"qty_produite"`
	LotFini       string          `json:"lot_fini,omitempty"`
	Status        string          `json:"status"`
	DateLancement time.Time       `json:"date_lancement"`
}

// ProductionFiniRequest body pour la déclaration de production.
type ProductionFiniRequest struct {
	OfID      string          `json:"of_id"`
	ProductID string          `json:"product_id"`
	Qty       decimal.Decimal `json:"qty"`
	LotFini   string          `json:"lot_fini"`
}

// CreateReceiptRequest body pour POST /api/receipts.
type CreateReceiptRequest struct {
	PurchaseInvoiceID string          `json:"purchase_invoice_id"`
	ComponentID       string          `json:"component_id"`
	Lot               string          `json:"lot,omitempty"`
	Qty               decimal.Decimal `json:"qty"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	LocationCode      string          `json:"location_code,omitempty"`
}

// AvgCostResponse nouveau coût moyen après recalcul.
type AvgCostResponse struct {
	ComponentID string          `json:"component_id"`
	AvgCost     decimal.Decimal `json:"avg_cost"`
}

// ProductUnitCostResponse coût unitaire d'un produit fini.
type ProductUnitCostResponse struct {
	ProductID string          `json:"product_id"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// OFCostResponse valorisation d'un OF.
type OFCostResponse struct {
	OfID      string          `json:"of_id"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`
}
