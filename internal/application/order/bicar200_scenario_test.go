package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcosting "github.com/bikarpharma/suivi-stock/internal/application/costing"
	"github.com/bikarpharma/suivi-stock/internal/application/order"
	"github.com/bikarpharma/suivi-stock/internal/application/receipt"
	"github.com/bikarpharma/suivi-stock/internal/application/stock"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/movement"
	"github.com/bikarpharma/suivi-stock/internal/testutil"
)

// Scénario de bout en bout sur le produit BICAR200: réceptions des six
// composants, ordre OF-2025-002 de 5000 flacons, sorties vers le
// sous-traitant, production de 4900, transfert au dépôt et retours.
// Les soldes finaux et la valorisation sont vérifiés chiffre à chiffre.

const depotScenarioID = "loc-depot"

type scenarioComponent struct {
	id       string
	code     string
	qtyRecue string
	unitCost string
}

var scenarioComponents = []scenarioComponent{
	{"comp-flacon", "FLACON200", "7000", "0.28"},
	{"comp-bouchon", "BOUCHON28", "10000", "0.05"},
	{"comp-opercule", "OPERCULE", "10000", "0.04"},
	{"comp-etiquette", "ETIQ-BICAR", "7000", "0.12"},
	{"comp-etui", "ETUI-BICAR", "10000", "0.09"},
	{"comp-notice", "NOTICE-BICAR", "7000", "0.07"},
}

type scenarioEnv struct {
	db        *testutil.DB
	stockUC   *stock.UseCase
	receiptUC *receipt.UseCase
	orderUC   *order.UseCase
	costingUC *appcosting.UseCase
}

func newScenarioEnv(t *testing.T) *scenarioEnv {
	t.Helper()
	db := testutil.NewDB()
	now := time.Now()
	db.Locations[depotScenarioID] = &entity.Location{ID: depotScenarioID, Code: entity.LocationDepot, Name: "Dépôt Bikarpharma", CreatedAt: now}
	db.Locations[pipcosID] = &entity.Location{ID: pipcosID, Code: entity.LocationPipcos, Name: "Site Pipcos", CreatedAt: now}
	db.Suppliers["sup-1"] = &entity.Supplier{ID: "sup-1", Name: "Fournisseur Principal", CreatedAt: now}
	db.Invoices["inv-1"] = &entity.PurchaseInvoice{
		ID: "inv-1", SupplierID: "sup-1", InvoiceNo: "FACT-2025-001",
		InvoiceDate: now, Currency: "TND", CreatedAt: now,
	}
	db.Products[productID] = &entity.Product{
		ID: productID, Code: "BICAR200", Name: "Bicarbonate de soude 200ml", UOM: "flacon",
		CoutSousTraitanceUnite: d("0.250"), CoutAutresUnite: decimal.Zero,
		Active: true, CreatedAt: now, UpdatedAt: now,
	}

	bomRepo := testutil.NewBomRepo(db)
	for _, c := range scenarioComponents {
		db.Components[c.id] = &entity.Component{
			ID: c.id, Code: c.code, Name: c.code, UOM: "pièce",
			CoutStandard: d(c.unitCost), Active: true, CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, bomRepo.Upsert(&entity.BomItem{
			ProductID: productID, ComponentID: c.id, QtyParUnite: d("1"),
		}))
	}

	tx := &testutil.TxRunner{DB: db}
	return &scenarioEnv{
		db:        db,
		stockUC:   stock.NewUseCase(tx, testutil.NewMovementRepo(db), testutil.NewBalanceRepo(db)),
		receiptUC: receipt.NewUseCase(tx, testutil.NewComponentRepo(db), testutil.NewInvoiceRepo(db), testutil.NewLocationRepo(db), testutil.NewBalanceRepo(db), testutil.NewSnapshotRepo(db)),
		orderUC:   order.NewUseCase(tx, testutil.NewOrderRepo(db), testutil.NewProductRepo(db), testutil.NewLocationRepo(db)),
		costingUC: appcosting.NewUseCase(testutil.NewProductRepo(db), testutil.NewComponentRepo(db), bomRepo, testutil.NewSnapshotRepo(db), testutil.NewOrderRepo(db)),
	}
}

func (e *scenarioEnv) balance(t *testing.T, itemType, itemID, locationID string) decimal.Decimal {
	t.Helper()
	b, err := testutil.NewBalanceRepo(e.db).Get(itemType, itemID, locationID)
	require.NoError(t, err)
	return b.QtyOnHand
}

func TestScenarioBicar200(t *testing.T) {
	env := newScenarioEnv(t)
	ctx := context.Background()

	// ── Réceptions: chaque composant arrive au dépôt ────────────────────
	for _, c := range scenarioComponents {
		_, err := env.receiptUC.CreateGoodsReceipt(ctx, receipt.Input{
			PurchaseInvoiceID: "inv-1",
			ComponentID:       c.id,
			Lot:               "LOT-2025-001",
			Qty:               d(c.qtyRecue),
			UnitCost:          d(c.unitCost),
		})
		require.NoError(t, err)
	}
	// Premières réceptions sur stock vide: coût moyen = coût facturé.
	for _, c := range scenarioComponents {
		snapshot, err := env.receiptUC.GetAvgCost(c.id)
		require.NoError(t, err)
		require.NotNil(t, snapshot, c.code)
		assert.True(t, d(c.unitCost).Equal(snapshot.AvgCost), c.code)
	}

	// ── Lancement de l'OF et envoi des composants chez Pipcos ──────────
	of, err := env.orderUC.Create(order.CreateInput{
		OfCode: "OF-2025-002", ProductID: productID,
		QtyCommandee: d("5000"), DateLancement: time.Now(),
	})
	require.NoError(t, err)

	for _, c := range scenarioComponents {
		_, err := env.stockUC.CreateMovement(ctx, stock.MovementInput{
			Type:           movement.TypeSortieVersPipcos,
			ItemType:       entity.ItemTypeComponent,
			ItemID:         c.id,
			Lot:            "LOT-2025-001",
			Qty:            d("5000"),
			FromLocationID: depotScenarioID,
			ToLocationID:   pipcosID,
			OfID:           of.ID,
		})
		require.NoError(t, err, c.code)
	}

	// ── Production de 4900 flacons chez le sous-traitant ───────────────
	_, err = env.orderUC.RecordProduction(ctx, order.ProductionInput{
		OfID: of.ID, ProductID: productID, Qty: d("4900"), LotFini: "LOT-BICAR200-001",
	})
	require.NoError(t, err)

	// La consommation des composants chez le sous-traitant n'est pas
	// journalisée: le solde PIPCOS est décrémenté directement.
	balanceRepo := testutil.NewBalanceRepo(env.db)
	for _, c := range scenarioComponents {
		require.NoError(t, balanceRepo.ApplyDelta(entity.ItemTypeComponent, c.id, pipcosID, d("-4900")))
	}

	// ── Transfert du fini au dépôt, retour des surplus ─────────────────
	_, err = env.stockUC.CreateMovement(ctx, stock.MovementInput{
		Type:           movement.TypeTransfertFiniVersDepot,
		ItemType:       entity.ItemTypeProduct,
		ItemID:         productID,
		Lot:            "LOT-BICAR200-001",
		Qty:            d("4900"),
		FromLocationID: pipcosID,
		ToLocationID:   depotScenarioID,
	})
	require.NoError(t, err)

	for _, c := range scenarioComponents {
		_, err := env.stockUC.CreateMovement(ctx, stock.MovementInput{
			Type:           movement.TypeRetourDePipcos,
			ItemType:       entity.ItemTypeComponent,
			ItemID:         c.id,
			Lot:            "LOT-2025-001",
			Qty:            d("40"),
			FromLocationID: pipcosID,
			ToLocationID:   depotScenarioID,
			OfID:           of.ID,
		})
		require.NoError(t, err, c.code)
	}

	_, err = env.orderUC.Close(of.ID)
	require.NoError(t, err)

	// ── Soldes finaux ──────────────────────────────────────────────────
	for _, c := range scenarioComponents {
		wantDepot := d(c.qtyRecue).Sub(d("5000")).Add(d("40"))
		gotDepot := env.balance(t, entity.ItemTypeComponent, c.id, depotScenarioID)
		assert.True(t, wantDepot.Equal(gotDepot),
			"%s au dépôt: attendu %s, obtenu %s", c.code, wantDepot, gotDepot)

		gotPipcos := env.balance(t, entity.ItemTypeComponent, c.id, pipcosID)
		assert.True(t, d("60").Equal(gotPipcos),
			"%s chez Pipcos: attendu 60, obtenu %s", c.code, gotPipcos)
	}
	assert.True(t, d("4900").Equal(env.balance(t, entity.ItemTypeProduct, productID, depotScenarioID)),
		"4900 flacons finis au dépôt")
	assert.True(t, env.balance(t, entity.ItemTypeProduct, productID, pipcosID).IsZero(),
		"plus aucun fini chez Pipcos après le transfert")

	// ── Valorisation ───────────────────────────────────────────────────
	unitCost, err := env.costingUC.CalculateProductUnitCost(productID)
	require.NoError(t, err)
	assert.True(t, d("0.900").Equal(unitCost), "coût unitaire attendu 0.900, obtenu %s", unitCost)

	ofCost, err := env.costingUC.CalculateOFCost(of.ID)
	require.NoError(t, err)
	assert.True(t, d("4410.000").Equal(ofCost.TotalCost),
		"coût total OF attendu 4410.000, obtenu %s", ofCost.TotalCost)

	// L'OF clos porte bien la sortie réelle.
	final, err := env.orderUC.GetByID(of.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OFStatusClos, final.Status)
	assert.True(t, d("4900").Equal(final.QtyProduite))
	assert.Equal(t, "LOT-BICAR200-001", final.LotFini)
}
