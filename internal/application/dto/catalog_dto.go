package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateComponentRequest body pour POST /api/components.
type CreateComponentRequest struct {
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	UOM          string           `json:"uom,omitempty"`
	CoutStandard decimal.Decimal  `json:"cout_standard"`
	PackColisage *decimal.Decimal `json:"pack_colisage,omitempty"`
}

// UpdateComponentRequest body pour PUT /api/components/:id.
type UpdateComponentRequest struct {
	Name         string           `json:"name,omitempty"`
	UOM          string           `json:"uom,omitempty"`
	PackColisage *decimal.Decimal `json:"pack_colisage,omitempty"`
}

// ComponentResponse représentation d'un composant.
type ComponentResponse struct {
	ID           string           `json:"id"`
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	UOM          string           `json:"uom"`
	CoutStandard decimal.Decimal  `json:"cout_standard"`
	PackColisage *decimal.Decimal `json:"pack_colisage,omitempty"`
	Active       bool             `json:"active"`
	CreatedAt    time.Time        `json:"created_at"`
}

// CreateProductRequest body pour POST /api/products.
type CreateProductRequest struct {
	Code                   string          `json:"code"`
	Name                   string          `json:"name"`
	UOM                    string          `json:"uom,omitempty"`
	CoutSousTraitanceUnite decimal.Decimal `json:"cout_sous_traitance_unite"`
	CoutAutresUnite        decimal.Decimal `json:"cout_autres_unite"`
}

// ProductResponse représentation d'un produit fini.
type ProductResponse struct {
	ID                     string          `json:"id"`
	Code                   string          `json:"code"`
	Name                   string          `json:"name"`
	UOM                    string          `json:"uom"`
	CoutSousTraitanceUnite decimal.Decimal `json:"cout_sous_traitance_unite"`
	CoutAutresUnite        decimal.Decimal `json:"cout_autres_unite"`
	Active                 bool            `json:"active"`
	CreatedAt              time.Time       `json:"created_at"`
}

// SetBomItemRequest body pour PUT /api/products/:id/bom.
type SetBomItemRequest struct {
	ComponentID string          `json:"component_id"`
	QtyParUnite decimal.Decimal `json:"qty_par_unite"`
}

// BomItemResponse ligne de nomenclature.
type BomItemResponse struct {
	ComponentID string          `json:"component_id"`
	QtyParUnite decimal.Decimal `json:"qty_par_unite"`
}

// CreateSupplierRequest body pour POST /api/suppliers.
type CreateSupplierRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// CreateInvoiceRequest body pour POST /api/suppliers/:id/invoices.
type CreateInvoiceRequest struct {
	InvoiceNo   string    `json:"invoice_no"`
	InvoiceDate time.Time `json:"invoice_date"`
	Currency    string    `json:"currency,omitempty"`
}

// CreateLocationRequest body pour POST /api/locations.
type CreateLocationRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
