package receipt_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikarpharma/suivi-stock/internal/application/receipt"
	"github.com/bikarpharma/suivi-stock/internal/domain"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/movement"
	"github.com/bikarpharma/suivi-stock/internal/testutil"
)

const (
	depotID     = "loc-depot"
	componentID = "comp-flacon"
	invoiceID   = "inv-1"
	supplierID  = "sup-1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fixture prépare un composant, une facture et les deux emplacements.
func fixture(t *testing.T) (*testutil.DB, *receipt.UseCase) {
	t.Helper()
	db := testutil.NewDB()
	now := time.Now()
	db.Locations[depotID] = &entity.Location{ID: depotID, Code: entity.LocationDepot, Name: "Dépôt Bikarpharma", CreatedAt: now}
	db.Components[componentID] = &entity.Component{
		ID: componentID, Code: "FLACON200", Name: "Flacon 200ml", UOM: "pièce",
		CoutStandard: d("0.28"), Active: true, CreatedAt: now, UpdatedAt: now,
	}
	db.Invoices[invoiceID] = &entity.PurchaseInvoice{
		ID: invoiceID, SupplierID: supplierID, InvoiceNo: "FACT-2025-001",
		InvoiceDate: now, Currency: "TND", CreatedAt: now,
	}
	uc := receipt.NewUseCase(
		&testutil.TxRunner{DB: db},
		testutil.NewComponentRepo(db),
		testutil.NewInvoiceRepo(db),
		testutil.NewLocationRepo(db),
		testutil.NewBalanceRepo(db),
		testutil.NewSnapshotRepo(db),
	)
	return db, uc
}

func TestCreateGoodsReceipt_PremiereReception(t *testing.T) {
	db, uc := fixture(t)

	created, err := uc.CreateGoodsReceipt(context.Background(), receipt.Input{
		PurchaseInvoiceID: invoiceID,
		ComponentID:       componentID,
		Lot:               "LOT-2025-001",
		Qty:               d("7000"),
		UnitCost:          d("0.28"),
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, depotID, created.LocationID, "sans code d'emplacement, la réception arrive au dépôt")

	// Un mouvement ENTREE_DEPOT référençant la facture.
	require.Len(t, db.Movements, 1)
	m := db.Movements[0]
	assert.Equal(t, movement.TypeEntreeDepot, m.Type)
	assert.Equal(t, "FACT-2025-001", m.Reference)
	assert.Equal(t, depotID, m.ToLocationID)

	// Le solde dépôt est crédité.
	balance, err := testutil.NewBalanceRepo(db).Get(entity.ItemTypeComponent, componentID, depotID)
	require.NoError(t, err)
	assert.True(t, d("7000").Equal(balance.QtyOnHand))

	// Premier snapshot: stock vide avant, donc coût moyen = coût reçu.
	snapshot, err := uc.GetAvgCost(componentID)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.True(t, d("0.28").Equal(snapshot.AvgCost))
}

// Le recalcul lit le solde dépôt AVANT d'appliquer le delta de la
// réception. Avec 100 à 1.000 en stock puis 50 reçus à 1.500, le coût
// doit être 1.1666... — pas la moyenne calculée sur 150+50.
func TestCreateGoodsReceipt_RecalculAvantApplicationDuDelta(t *testing.T) {
	db, uc := fixture(t)

	_, err := uc.CreateGoodsReceipt(context.Background(), receipt.Input{
		PurchaseInvoiceID: invoiceID,
		ComponentID:       componentID,
		Qty:               d("100"),
		UnitCost:          d("1.000"),
	})
	require.NoError(t, err)

	_, err = uc.CreateGoodsReceipt(context.Background(), receipt.Input{
		PurchaseInvoiceID: invoiceID,
		ComponentID:       componentID,
		Qty:               d("50"),
		UnitCost:          d("1.500"),
	})
	require.NoError(t, err)

	snapshot, err := uc.GetAvgCost(componentID)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	// (100*1.000 + 50*1.500) / 150
	want := d("175").Div(d("150"))
	assert.True(t, want.Equal(snapshot.AvgCost),
		"attendu %s, obtenu %s", want, snapshot.AvgCost)

	balance, _ := testutil.NewBalanceRepo(db).Get(entity.ItemTypeComponent, componentID, depotID)
	assert.True(t, d("150").Equal(balance.QtyOnHand))
}

func TestCreateGoodsReceipt_Validations(t *testing.T) {
	_, uc := fixture(t)
	ctx := context.Background()

	// Quantité non positive.
	_, err := uc.CreateGoodsReceipt(ctx, receipt.Input{
		PurchaseInvoiceID: invoiceID, ComponentID: componentID,
		Qty: decimal.Zero, UnitCost: d("0.28"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Coût unitaire négatif.
	_, err = uc.CreateGoodsReceipt(ctx, receipt.Input{
		PurchaseInvoiceID: invoiceID, ComponentID: componentID,
		Qty: d("10"), UnitCost: d("-0.01"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Composant inconnu.
	_, err = uc.CreateGoodsReceipt(ctx, receipt.Input{
		PurchaseInvoiceID: invoiceID, ComponentID: "comp-fantome",
		Qty: d("10"), UnitCost: d("0.28"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Facture inconnue.
	_, err = uc.CreateGoodsReceipt(ctx, receipt.Input{
		PurchaseInvoiceID: "inv-fantome", ComponentID: componentID,
		Qty: d("10"), UnitCost: d("0.28"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecalculateAvgCost_Autonome(t *testing.T) {
	db, uc := fixture(t)
	// 200 unités en stock au dépôt, coût moyen courant 0.30.
	_ = testutil.NewBalanceRepo(db).ApplyDelta(entity.ItemTypeComponent, componentID, depotID, d("200"))
	_ = testutil.NewSnapshotRepo(db).Upsert(&entity.CostComponentSnapshot{
		ComponentID: componentID, AvgCost: d("0.30"), ComputedAt: time.Now(),
	})

	got, err := uc.RecalculateAvgCost(context.Background(), componentID, d("100"), d("0.60"))
	require.NoError(t, err)
	// (200*0.30 + 100*0.60) / 300 = 0.40
	assert.True(t, d("0.40").Equal(got), "attendu 0.40, obtenu %s", got)

	snapshot, _ := uc.GetAvgCost(componentID)
	assert.True(t, d("0.40").Equal(snapshot.AvgCost), "le snapshot est écrasé")
}

// Sans aucun snapshot, GetAvgCost retourne nil sans erreur.
func TestGetAvgCost_SansSnapshot(t *testing.T) {
	_, uc := fixture(t)
	snapshot, err := uc.GetAvgCost(componentID)
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}
