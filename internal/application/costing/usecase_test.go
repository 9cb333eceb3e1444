package costing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikarpharma/suivi-stock/internal/application/costing"
	"github.com/bikarpharma/suivi-stock/internal/domain"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/testutil"
)

const (
	productID = "prod-bicar200"
	ofID      = "of-2025-002"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// bicarComponent décrit une ligne de la nomenclature du scénario BICAR200.
type bicarComponent struct {
	id      string
	avgCost string
}

// seedBicar200 monte le produit BICAR200 complet: six composants à une
// unité par flacon, snapshots de coût moyen, coûts fixes 0.250 + 0.
func seedBicar200(t *testing.T) (*testutil.DB, *costing.UseCase) {
	t.Helper()
	db := testutil.NewDB()
	now := time.Now()

	db.Products[productID] = &entity.Product{
		ID: productID, Code: "BICAR200", Name: "Bicarbonate 200ml", UOM: "flacon",
		CoutSousTraitanceUnite: d("0.250"),
		CoutAutresUnite:        decimal.Zero,
		Active:                 true, CreatedAt: now, UpdatedAt: now,
	}

	components := []bicarComponent{
		{"comp-flacon", "0.28"},
		{"comp-bouchon", "0.05"},
		{"comp-opercule", "0.04"},
		{"comp-etiquette", "0.12"},
		{"comp-etui", "0.09"},
		{"comp-notice", "0.07"},
	}
	bomRepo := testutil.NewBomRepo(db)
	snapshotRepo := testutil.NewSnapshotRepo(db)
	for _, c := range components {
		db.Components[c.id] = &entity.Component{
			ID: c.id, Code: c.id, Name: c.id, UOM: "pièce",
			CoutStandard: d("9.99"), // volontairement faux: le snapshot doit primer
			Active:       true, CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, bomRepo.Upsert(&entity.BomItem{
			ProductID: productID, ComponentID: c.id, QtyParUnite: d("1"),
		}))
		require.NoError(t, snapshotRepo.Upsert(&entity.CostComponentSnapshot{
			ComponentID: c.id, AvgCost: d(c.avgCost), ComputedAt: now,
		}))
	}

	db.Orders[ofID] = &entity.ManufacturingOrder{
		ID: ofID, OfCode: "OF-2025-002", ProductID: productID,
		QtyCommandee: d("5000"), QtyProduite: d("4900"), LotFini: "LOT-BICAR200-001",
		Status: entity.OFStatusEnCours, DateLancement: now, CreatedAt: now, UpdatedAt: now,
	}

	uc := costing.NewUseCase(
		testutil.NewProductRepo(db),
		testutil.NewComponentRepo(db),
		bomRepo,
		snapshotRepo,
		testutil.NewOrderRepo(db),
	)
	return db, uc
}

// Composants 0.28+0.05+0.04+0.12+0.09+0.07 = 0.650, plus 0.250 de
// sous-traitance: coût unitaire 0.900.
func TestCalculateProductUnitCost_Bicar200(t *testing.T) {
	_, uc := seedBicar200(t)

	got, err := uc.CalculateProductUnitCost(productID)
	require.NoError(t, err)
	assert.True(t, d("0.900").Equal(got), "attendu 0.900, obtenu %s", got)
}

// Sans snapshot pour un composant, le coût standard sert de repli.
func TestCalculateProductUnitCost_RepliSurCoutStandard(t *testing.T) {
	db, uc := seedBicar200(t)
	delete(db.Snapshots, "comp-flacon")
	db.Components["comp-flacon"].CoutStandard = d("0.30")

	got, err := uc.CalculateProductUnitCost(productID)
	require.NoError(t, err)
	// 0.30 remplace 0.28: 0.650 + 0.02 + 0.250 = 0.920
	assert.True(t, d("0.920").Equal(got), "attendu 0.920, obtenu %s", got)
}

// Un produit sans nomenclature ne vaut que ses coûts fixes.
func TestCalculateProductUnitCost_SansNomenclature(t *testing.T) {
	db := testutil.NewDB()
	now := time.Now()
	db.Products["prod-nu"] = &entity.Product{
		ID: "prod-nu", Code: "NU", Name: "Sans BOM", UOM: "pièce",
		CoutSousTraitanceUnite: d("0.10"), CoutAutresUnite: d("0.05"),
		Active: true, CreatedAt: now, UpdatedAt: now,
	}
	uc := costing.NewUseCase(
		testutil.NewProductRepo(db),
		testutil.NewComponentRepo(db),
		testutil.NewBomRepo(db),
		testutil.NewSnapshotRepo(db),
		testutil.NewOrderRepo(db),
	)

	got, err := uc.CalculateProductUnitCost("prod-nu")
	require.NoError(t, err)
	assert.True(t, d("0.15").Equal(got))
}

func TestCalculateProductUnitCost_ProduitInconnu(t *testing.T) {
	_, uc := seedBicar200(t)
	_, err := uc.CalculateProductUnitCost("prod-fantome")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Le coût total de l'OF se base sur la quantité PRODUITE (4900), pas la
// quantité commandée (5000): 4900 × 0.900 = 4410.000.
func TestCalculateOFCost_QuantiteProduite(t *testing.T) {
	_, uc := seedBicar200(t)

	got, err := uc.CalculateOFCost(ofID)
	require.NoError(t, err)
	assert.True(t, d("0.900").Equal(got.UnitCost), "coût unitaire attendu 0.900, obtenu %s", got.UnitCost)
	assert.True(t, d("4410.000").Equal(got.TotalCost), "coût total attendu 4410.000, obtenu %s", got.TotalCost)
}

// Un OF sans production valorise à zéro.
func TestCalculateOFCost_SansProduction(t *testing.T) {
	db, uc := seedBicar200(t)
	db.Orders[ofID].QtyProduite = decimal.Zero

	got, err := uc.CalculateOFCost(ofID)
	require.NoError(t, err)
	assert.True(t, got.TotalCost.IsZero())
}

func TestCalculateOFCost_OFInconnu(t *testing.T) {
	_, uc := seedBicar200(t)
	_, err := uc.CalculateOFCost("of-fantome")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
