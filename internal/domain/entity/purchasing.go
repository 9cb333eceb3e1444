package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier représente un fournisseur de composants.
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// PurchaseInvoice est une facture d'achat. Unique par (fournisseur, n°).
type PurchaseInvoice struct {
	ID          string
	SupplierID  string
	InvoiceNo   string
	InvoiceDate time.Time
	Currency    string // ex. TND
	CreatedAt   time.Time
}

// GoodsReceipt enregistre la livraison d'un lot de composant: quantité
// et coût unitaire facturé. C'est l'entrée qui déclenche le recalcul du
// coût moyen pondéré.
type GoodsReceipt struct {
	ID                string
	PurchaseInvoiceID string
	ComponentID       string
	Lot               string
	Qty               decimal.Decimal // strictement positive
	UnitCost          decimal.Decimal
	LocationID        string
	CreatedAt         time.Time
}
