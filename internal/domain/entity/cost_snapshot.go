package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostComponentSnapshot porte le coût moyen pondéré courant d'un
// composant. Une ligne par composant; mis à jour uniquement par le
// recalcul déclenché à chaque réception, lu par la valorisation.
// AvgCost est stocké sans arrondi préalable.
type CostComponentSnapshot struct {
	ComponentID string
	AvgCost     decimal.Decimal
	ComputedAt  time.Time
}
