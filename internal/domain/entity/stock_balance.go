package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Types d'item stockables.
const (
	ItemTypeComponent = "COMPONENT"
	ItemTypeProduct   = "PRODUCT"
)

// StockBalance est le solde courant d'un item à un emplacement.
// Agrégat matérialisé des mouvements, maintenu par la même transaction
// qui crée le mouvement; jamais recalculé en rejouant l'historique.
// L'absence de ligne vaut zéro.
type StockBalance struct {
	ItemType   string // COMPONENT | PRODUCT
	ItemID     string
	LocationID string
	QtyOnHand  decimal.Decimal
	UpdatedAt  time.Time
}
