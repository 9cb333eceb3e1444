package costing

import "github.com/shopspring/decimal"

// WeightedAvgCost implémente le coût moyen pondéré (service de domaine).
// NouveauCout = ((QtéActuelle * CoutActuel) + (QtéReçue * CoutReçu)) / (QtéActuelle + QtéReçue)
// Si la somme des quantités est nulle ou négative, le coût est zéro
// (garde la division par zéro; cas dégénéré, QtéReçue est positive en
// fonctionnement normal).
func WeightedAvgCost(qtyActuelle, coutActuel, qtyRecue, coutRecu decimal.Decimal) decimal.Decimal {
	newQty := qtyActuelle.Add(qtyRecue)
	if newQty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := qtyActuelle.Mul(coutActuel).Add(qtyRecue.Mul(coutRecu))
	return num.Div(newQty)
}
