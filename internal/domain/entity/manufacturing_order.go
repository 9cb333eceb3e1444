package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts d'un ordre de fabrication (progression en avant uniquement).
const (
	OFStatusBrouillon = "BROUILLON"
	OFStatusEnCours   = "EN_COURS"
	OFStatusClos      = "CLOS"
)

// ManufacturingOrder (OF) est un ordre de production d'un produit fini.
// QtyProduite s'accumule au fil des mouvements PRODUCTION_FINI; LotFini
// est posé par le premier et écrasé par les suivants.
type ManufacturingOrder struct {
	ID            string
	OfCode        string // code unique, ex. OF-2025-002
	ProductID     string
	QtyCommandee  decimal.Decimal
	QtyProduite   decimal.Decimal
	LotFini       string
	Status        string
	DateLancement time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanTransitionTo vérifie la progression BROUILLON → EN_COURS → CLOS.
func (of *ManufacturingOrder) CanTransitionTo(status string) bool {
	switch of.Status {
	case OFStatusBrouillon:
		return status == OFStatusEnCours || status == OFStatusClos
	case OFStatusEnCours:
		return status == OFStatusClos
	default:
		return false
	}
}
