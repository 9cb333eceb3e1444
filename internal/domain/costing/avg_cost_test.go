package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bikarpharma/suivi-stock/internal/domain/costing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestWeightedAvgCost(t *testing.T) {
	cases := []struct {
		name        string
		qtyActuelle string
		coutActuel  string
		qtyRecue    string
		coutRecu    string
		want        string
	}{
		{
			// Exemple de référence: 100 à 1.000 + 50 à 1.500.
			name:        "moyenne pondérée de deux lots",
			qtyActuelle: "100", coutActuel: "1.000",
			qtyRecue: "50", coutRecu: "1.500",
			want: "1.1666666666666667",
		},
		{
			name:        "stock vide prend le coût reçu",
			qtyActuelle: "0", coutActuel: "0",
			qtyRecue: "7000", coutRecu: "0.28",
			want: "0.28",
		},
		{
			name:        "même coût reste stable",
			qtyActuelle: "500", coutActuel: "0.12",
			qtyRecue: "250", coutRecu: "0.12",
			want: "0.12",
		},
		{
			name:        "quantités fractionnaires",
			qtyActuelle: "2.5", coutActuel: "4",
			qtyRecue: "2.5", coutRecu: "2",
			want: "3",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := costing.WeightedAvgCost(d(tc.qtyActuelle), d(tc.coutActuel), d(tc.qtyRecue), d(tc.coutRecu))
			assert.True(t, d(tc.want).Equal(got.Round(16)),
				"attendu %s, obtenu %s", tc.want, got)
		})
	}
}

// La somme des quantités nulle ou négative court-circuite la division:
// coût zéro.
func TestWeightedAvgCost_QuantiteNulle(t *testing.T) {
	assert.True(t, costing.WeightedAvgCost(d("0"), d("1.5"), d("0"), d("2")).IsZero())
	assert.True(t, costing.WeightedAvgCost(d("-50"), d("1"), d("50"), d("2")).IsZero())
	assert.True(t, costing.WeightedAvgCost(d("-100"), d("1"), d("50"), d("2")).IsZero())
}
