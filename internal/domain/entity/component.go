package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Component représente un composant (matière première ou article de
// conditionnement). CoutStandard est le coût de référence utilisé tant
// qu'aucun snapshot de coût moyen n'existe; il ne change jamais.
// Un composant ne se supprime pas, il se désactive.
type Component struct {
	ID           string
	Code         string // code unique, ex. FLACON200
	Name         string
	UOM          string // unité de mesure, ex. "pièce"
	CoutStandard decimal.Decimal
	PackColisage *decimal.Decimal // taille de colisage, optionnel
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
