package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikarpharma/suivi-stock/internal/application/order"
	"github.com/bikarpharma/suivi-stock/internal/domain"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/testutil"
)

const (
	pipcosID  = "loc-pipcos"
	productID = "prod-bicar200"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixture(t *testing.T) (*testutil.DB, *order.UseCase) {
	t.Helper()
	db := testutil.NewDB()
	now := time.Now()
	db.Locations[pipcosID] = &entity.Location{ID: pipcosID, Code: entity.LocationPipcos, Name: "Site Pipcos", CreatedAt: now}
	db.Products[productID] = &entity.Product{
		ID: productID, Code: "BICAR200", Name: "Bicarbonate 200ml", UOM: "flacon",
		CoutSousTraitanceUnite: d("0.250"), CoutAutresUnite: decimal.Zero,
		Active: true, CreatedAt: now, UpdatedAt: now,
	}
	uc := order.NewUseCase(
		&testutil.TxRunner{DB: db},
		testutil.NewOrderRepo(db),
		testutil.NewProductRepo(db),
		testutil.NewLocationRepo(db),
	)
	return db, uc
}

func createOF(t *testing.T, uc *order.UseCase, code string, qty string) *entity.ManufacturingOrder {
	t.Helper()
	of, err := uc.Create(order.CreateInput{
		OfCode:        code,
		ProductID:     productID,
		QtyCommandee:  d(qty),
		DateLancement: time.Now(),
	})
	require.NoError(t, err)
	return of
}

func TestCreate_StatutInitialBrouillon(t *testing.T) {
	_, uc := fixture(t)

	of := createOF(t, uc, "OF-2025-002", "5000")
	assert.Equal(t, entity.OFStatusBrouillon, of.Status)
	assert.True(t, of.QtyProduite.IsZero())
	assert.Empty(t, of.LotFini)
}

func TestCreate_Validations(t *testing.T) {
	_, uc := fixture(t)

	// Code déjà pris.
	createOF(t, uc, "OF-2025-002", "5000")
	_, err := uc.Create(order.CreateInput{
		OfCode: "OF-2025-002", ProductID: productID,
		QtyCommandee: d("100"), DateLancement: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Quantité commandée non positive.
	_, err = uc.Create(order.CreateInput{
		OfCode: "OF-2025-003", ProductID: productID,
		QtyCommandee: decimal.Zero, DateLancement: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Produit inconnu.
	_, err = uc.Create(order.CreateInput{
		OfCode: "OF-2025-004", ProductID: "prod-fantome",
		QtyCommandee: d("100"), DateLancement: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La première production fait passer l'OF en EN_COURS et crédite le
// produit fini au site du sous-traitant.
func TestRecordProduction_PremiereDeclaration(t *testing.T) {
	db, uc := fixture(t)
	of := createOF(t, uc, "OF-2025-002", "5000")

	m, err := uc.RecordProduction(context.Background(), order.ProductionInput{
		OfID: of.ID, ProductID: productID, Qty: d("3000"), LotFini: "LOT-BICAR200-001",
	})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, pipcosID, m.ToLocationID)

	got, err := uc.GetByID(of.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OFStatusEnCours, got.Status)
	assert.True(t, d("3000").Equal(got.QtyProduite))
	assert.Equal(t, "LOT-BICAR200-001", got.LotFini)

	balance, err := testutil.NewBalanceRepo(db).Get(entity.ItemTypeProduct, productID, pipcosID)
	require.NoError(t, err)
	assert.True(t, d("3000").Equal(balance.QtyOnHand))
}

// Les déclarations successives cumulent la quantité; le lot est écrasé.
func TestRecordProduction_Cumul(t *testing.T) {
	db, uc := fixture(t)
	of := createOF(t, uc, "OF-2025-002", "5000")
	ctx := context.Background()

	_, err := uc.RecordProduction(ctx, order.ProductionInput{
		OfID: of.ID, ProductID: productID, Qty: d("3000"), LotFini: "LOT-A",
	})
	require.NoError(t, err)
	_, err = uc.RecordProduction(ctx, order.ProductionInput{
		OfID: of.ID, ProductID: productID, Qty: d("1900"), LotFini: "LOT-B",
	})
	require.NoError(t, err)

	got, _ := uc.GetByID(of.ID)
	assert.True(t, d("4900").Equal(got.QtyProduite), "attendu 4900, obtenu %s", got.QtyProduite)
	assert.Equal(t, "LOT-B", got.LotFini, "le dernier lot déclaré écrase le précédent")
	assert.Equal(t, entity.OFStatusEnCours, got.Status, "EN_COURS reste EN_COURS")

	balance, _ := testutil.NewBalanceRepo(db).Get(entity.ItemTypeProduct, productID, pipcosID)
	assert.True(t, d("4900").Equal(balance.QtyOnHand))
}

func TestRecordProduction_Refus(t *testing.T) {
	_, uc := fixture(t)
	of := createOF(t, uc, "OF-2025-002", "5000")
	ctx := context.Background()

	// Produit déclaré différent de celui de l'OF.
	_, err := uc.RecordProduction(ctx, order.ProductionInput{
		OfID: of.ID, ProductID: "prod-autre", Qty: d("100"), LotFini: "LOT-A",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Quantité non positive, lot vide.
	_, err = uc.RecordProduction(ctx, order.ProductionInput{
		OfID: of.ID, ProductID: productID, Qty: decimal.Zero, LotFini: "LOT-A",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RecordProduction(ctx, order.ProductionInput{
		OfID: of.ID, ProductID: productID, Qty: d("100"), LotFini: "",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un OF clos ne produit plus.
func TestRecordProduction_OFClos(t *testing.T) {
	_, uc := fixture(t)
	of := createOF(t, uc, "OF-2025-002", "5000")
	_, err := uc.Close(of.ID)
	require.NoError(t, err)

	_, err = uc.RecordProduction(context.Background(), order.ProductionInput{
		OfID: of.ID, ProductID: productID, Qty: d("100"), LotFini: "LOT-A",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestClose_ProgressionEnAvantUniquement(t *testing.T) {
	_, uc := fixture(t)
	of := createOF(t, uc, "OF-2025-002", "5000")

	closed, err := uc.Close(of.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OFStatusClos, closed.Status)

	// Déjà clos: la clôture ne se rejoue pas.
	_, err = uc.Close(of.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.Close("of-fantome")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
