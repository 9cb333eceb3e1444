package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body pour POST /api/movements.
type CreateMovementRequest struct {
	Type           string          `json:"type"`
	ItemType       string          `json:"item_type"`
	ItemID         string          `json:"item_id"`
	Lot            string          `json:"lot,omitempty"`
	Qty            decimal.Decimal `json:"qty"`
	FromLocationID string          `json:"from_location_id,omitempty"`
	ToLocationID   string          `json:"to_location_id,omitempty"`
	OfID           string          `json:"of_id,omitempty"`
	Reference      string          `json:"reference,omitempty"`
}

// ValidateMovementResponse résultat d'une validation consultative.
type ValidateMovementResponse struct {
	Valid        bool            `json:"valid"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Error        string          `json:"error,omitempty"`
}

// MovementResponse représentation d'un mouvement.
type MovementResponse struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	ItemType       string          `json:"item_type"`
	ItemID         string          `json:"item_id"`
	Lot            string          `json:"lot,omitempty"`
	Qty            decimal.Decimal `json:"qty"`
	FromLocationID string          `json:"from_location_id,omitempty"`
	ToLocationID   string          `json:"to_location_id,omitempty"`
	OfID           string          `json:"of_id,omitempty"`
	Reference      string          `json:"reference,omitempty"`
	CreatedBy      string          `json:"created_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// StockBalanceResponse solde d'un item à un emplacement.
type StockBalanceResponse struct {
	LocationID string          `json:"location_id"`
	Qty        decimal.Decimal `json:"qty"`
}

// SortieVersPipcosRequest body pour la sortie de composants vers le
// sous-traitant sous un OF.
type SortieVersPipcosRequest struct {
	OfID        string          `json:"of_id"`
	ComponentID string          `json:"component_id"`
	Qty         decimal.Decimal `json:"qty"`
	Lot         string          `json:"lot,omitempty"`
}

// TransfertFiniRequest body pour le retour de produit fini au dépôt.
type TransfertFiniRequest struct {
	ProductID string          `json:"product_id"`
	Qty       decimal.Decimal `json:"qty"`
	Lot       string          `json:"lot,omitempty"`
}

// RetourDePipcosRequest body pour un retour depuis le sous-traitant.
type RetourDePipcosRequest struct {
	OfID     string          `json:"of_id"`
	ItemType string          `json:"item_type"`
	ItemID   string          `json:"item_id"`
	Qty      decimal.Decimal `json:"qty"`
	Lot      string          `json:"lot,omitempty"`
}
