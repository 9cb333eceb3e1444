package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product représente un produit fini conditionné chez le sous-traitant.
// Les coûts fixes par unité (sous-traitance et autres) s'ajoutent au
// coût des composants lors de la valorisation.
type Product struct {
	ID                     string
	Code                   string // code unique, ex. BICAR200
	Name                   string
	UOM                    string
	CoutSousTraitanceUnite decimal.Decimal
	CoutAutresUnite        decimal.Decimal
	Active                 bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
