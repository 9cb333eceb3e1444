package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikarpharma/suivi-stock/internal/application/stock"
	"github.com/bikarpharma/suivi-stock/internal/domain"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/movement"
	"github.com/bikarpharma/suivi-stock/internal/testutil"
)

const (
	depotID     = "loc-depot"
	pipcosID    = "loc-pipcos"
	componentID = "comp-flacon"
	productID   = "prod-bicar"
	ofID        = "of-1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStockUC(db *testutil.DB) *stock.UseCase {
	return stock.NewUseCase(
		&testutil.TxRunner{DB: db},
		testutil.NewMovementRepo(db),
		testutil.NewBalanceRepo(db),
	)
}

// seedBalance pose un solde initial directement dans la base mémoire.
func seedBalance(db *testutil.DB, itemType, itemID, locationID string, qty string) {
	_ = testutil.NewBalanceRepo(db).ApplyDelta(itemType, itemID, locationID, d(qty))
}

func TestCreateMovement_EntreeDepotCrediteLeSolde(t *testing.T) {
	db := testutil.NewDB()
	uc := newStockUC(db)

	created, err := uc.CreateMovement(context.Background(), stock.MovementInput{
		Type:         movement.TypeEntreeDepot,
		ItemType:     entity.ItemTypeComponent,
		ItemID:       componentID,
		Qty:          d("7000"),
		ToLocationID: depotID,
		Reference:    "FACT-2025-001",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)

	qty, err := uc.GetStockByLocation(entity.ItemTypeComponent, componentID, depotID)
	require.NoError(t, err)
	assert.True(t, d("7000").Equal(qty), "le solde dépôt doit valoir la quantité reçue")
	assert.Len(t, db.Movements, 1, "le journal contient exactement le mouvement créé")
}

// Un transfert décrémente la source et crédite la destination de la
// même quantité: la somme des soldes est conservée.
func TestCreateMovement_TransfertConserveLaQuantite(t *testing.T) {
	db := testutil.NewDB()
	uc := newStockUC(db)
	seedBalance(db, entity.ItemTypeComponent, componentID, depotID, "7000")

	_, err := uc.CreateMovement(context.Background(), stock.MovementInput{
		Type:           movement.TypeSortieVersPipcos,
		ItemType:       entity.ItemTypeComponent,
		ItemID:         componentID,
		Qty:            d("5000"),
		FromLocationID: depotID,
		ToLocationID:   pipcosID,
		OfID:           ofID,
	})
	require.NoError(t, err)

	depot, _ := uc.GetStockByLocation(entity.ItemTypeComponent, componentID, depotID)
	pipcos, _ := uc.GetStockByLocation(entity.ItemTypeComponent, componentID, pipcosID)
	assert.True(t, d("2000").Equal(depot))
	assert.True(t, d("5000").Equal(pipcos))
	assert.True(t, d("7000").Equal(depot.Add(pipcos)), "la quantité totale est conservée")
}

func TestCreateMovement_StockInsuffisantRefuseSansEcrire(t *testing.T) {
	db := testutil.NewDB()
	uc := newStockUC(db)
	seedBalance(db, entity.ItemTypeComponent, componentID, depotID, "100")

	_, err := uc.CreateMovement(context.Background(), stock.MovementInput{
		Type:           movement.TypeSortieVersPipcos,
		ItemType:       entity.ItemTypeComponent,
		ItemID:         componentID,
		Qty:            d("101"),
		FromLocationID: depotID,
		ToLocationID:   pipcosID,
		OfID:           ofID,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.True(t, d("100").Equal(insufficient.Current), "l'erreur rapporte le stock courant")
	assert.True(t, d("101").Equal(insufficient.Requested), "l'erreur rapporte la quantité demandée")

	assert.Empty(t, db.Movements, "aucun mouvement ne doit être journalisé")
	depot, _ := uc.GetStockByLocation(entity.ItemTypeComponent, componentID, depotID)
	assert.True(t, d("100").Equal(depot), "le solde source est inchangé")
	pipcos, _ := uc.GetStockByLocation(entity.ItemTypeComponent, componentID, pipcosID)
	assert.True(t, pipcos.IsZero(), "la destination n'est pas créditée")
}

// La sortie exacte du solde disponible passe: le contrôle est strict
// (< demandé), pas une marge.
func TestCreateMovement_SortieDuSoldeExact(t *testing.T) {
	db := testutil.NewDB()
	uc := newStockUC(db)
	seedBalance(db, entity.ItemTypeComponent, componentID, depotID, "100")

	_, err := uc.CreateMovement(context.Background(), stock.MovementInput{
		Type:           movement.TypeSortieVersPipcos,
		ItemType:       entity.ItemTypeComponent,
		ItemID:         componentID,
		Qty:            d("100"),
		FromLocationID: depotID,
		ToLocationID:   pipcosID,
		OfID:           ofID,
	})
	require.NoError(t, err)
	depot, _ := uc.GetStockByLocation(entity.ItemTypeComponent, componentID, depotID)
	assert.True(t, depot.IsZero())
}

func TestCreateMovement_ValidationsCommunes(t *testing.T) {
	db := testutil.NewDB()
	uc := newStockUC(db)

	// Quantité nulle.
	_, err := uc.CreateMovement(context.Background(), stock.MovementInput{
		Type:         movement.TypeEntreeDepot,
		ItemType:     entity.ItemTypeComponent,
		ItemID:       componentID,
		Qty:          decimal.Zero,
		ToLocationID: depotID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Quantité négative.
	_, err = uc.CreateMovement(context.Background(), stock.MovementInput{
		Type:         movement.TypeEntreeDepot,
		ItemType:     entity.ItemTypeComponent,
		ItemID:       componentID,
		Qty:          d("-5"),
		ToLocationID: depotID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// ItemType inconnu.
	_, err = uc.CreateMovement(context.Background(), stock.MovementInput{
		Type:         movement.TypeEntreeDepot,
		ItemType:     "LOT",
		ItemID:       componentID,
		Qty:          d("10"),
		ToLocationID: depotID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Règle structurelle violée: rien n'est écrit.
	_, err = uc.CreateMovement(context.Background(), stock.MovementInput{
		Type:     movement.TypeEntreeDepot,
		ItemType: entity.ItemTypeComponent,
		ItemID:   componentID,
		Qty:      d("10"),
	})
	var structural *movement.StructuralError
	assert.True(t, errors.As(err, &structural))
	assert.Empty(t, db.Movements)
}

func TestValidateMovement_Consultatif(t *testing.T) {
	db := testutil.NewDB()
	uc := newStockUC(db)
	seedBalance(db, entity.ItemTypeComponent, componentID, depotID, "50")

	// Suffisant.
	result, err := uc.ValidateMovement(stock.MovementInput{
		Type:           movement.TypeSortieVersPipcos,
		ItemType:       entity.ItemTypeComponent,
		ItemID:         componentID,
		Qty:            d("30"),
		FromLocationID: depotID,
		ToLocationID:   pipcosID,
		OfID:           ofID,
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.True(t, d("50").Equal(result.CurrentStock))

	// Insuffisant: pas une erreur, un verdict avec le solde courant.
	result, err = uc.ValidateMovement(stock.MovementInput{
		Type:           movement.TypeSortieVersPipcos,
		ItemType:       entity.ItemTypeComponent,
		ItemID:         componentID,
		Qty:            d("80"),
		FromLocationID: depotID,
		ToLocationID:   pipcosID,
		OfID:           ofID,
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.True(t, d("50").Equal(result.CurrentStock))

	// La validation ne crée jamais rien.
	assert.Empty(t, db.Movements)
}

// Sans emplacement source (entrée pure), la validation saute le
// contrôle de suffisance.
func TestValidateMovement_EntreeSansControleDeSuffisance(t *testing.T) {
	uc := newStockUC(testutil.NewDB())
	result, err := uc.ValidateMovement(stock.MovementInput{
		Type:         movement.TypeEntreeDepot,
		ItemType:     entity.ItemTypeComponent,
		ItemID:       componentID,
		Qty:          d("10"),
		ToLocationID: depotID,
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestCreateMovement_TransactionEnEchecNePersisteRien(t *testing.T) {
	db := testutil.NewDB()
	boom := errors.New("connexion perdue")
	uc := stock.NewUseCase(
		&testutil.FailingTxRunner{Err: boom},
		testutil.NewMovementRepo(db),
		testutil.NewBalanceRepo(db),
	)

	_, err := uc.CreateMovement(context.Background(), stock.MovementInput{
		Type:         movement.TypeEntreeDepot,
		ItemType:     entity.ItemTypeComponent,
		ItemID:       componentID,
		Qty:          d("10"),
		ToLocationID: depotID,
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, db.Movements)
	assert.Empty(t, db.Balances)
}

func TestGetAllStocks_VentilationParEmplacement(t *testing.T) {
	db := testutil.NewDB()
	uc := newStockUC(db)
	seedBalance(db, entity.ItemTypeComponent, componentID, depotID, "2040")
	seedBalance(db, entity.ItemTypeComponent, componentID, pipcosID, "60")

	balances, err := uc.GetAllStocks(entity.ItemTypeComponent, componentID)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.QtyOnHand)
	}
	assert.True(t, d("2100").Equal(total))
}
