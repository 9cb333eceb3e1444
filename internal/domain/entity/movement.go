package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement est un enregistrement immuable d'un transfert de quantité.
// Les mouvements ne sont jamais modifiés ni supprimés: ils forment la
// piste d'audit dont StockBalance est l'état dérivé.
type Movement struct {
	ID             string
	Type           string // voir internal/domain/movement
	ItemType       string // COMPONENT | PRODUCT
	ItemID         string
	Lot            string // optionnel
	Qty            decimal.Decimal // strictement positive
	FromLocationID string // optionnel selon le type
	ToLocationID   string // optionnel selon le type
	OfID           string // ordre de fabrication lié, optionnel
	Reference      string // texte libre (n° facture, note...)
	CreatedBy      string
	CreatedAt      time.Time
}
