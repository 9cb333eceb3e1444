package receipt

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bikarpharma/suivi-stock/internal/application/stock"
	"github.com/bikarpharma/suivi-stock/internal/domain"
	"github.com/bikarpharma/suivi-stock/internal/domain/costing"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/movement"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

// UseCase gère les réceptions de marchandises et le recalcul du coût
// moyen pondéré qu'elles déclenchent.
type UseCase struct {
	txRunner      TxRunner
	componentRepo repository.ComponentRepository
	invoiceRepo   repository.PurchaseInvoiceRepository
	locationRepo  repository.LocationRepository
	balanceRepo   repository.StockBalanceRepository
	snapshotRepo  repository.CostSnapshotRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(
	txRunner TxRunner,
	componentRepo repository.ComponentRepository,
	invoiceRepo repository.PurchaseInvoiceRepository,
	locationRepo repository.LocationRepository,
	balanceRepo repository.StockBalanceRepository,
	snapshotRepo repository.CostSnapshotRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		componentRepo: componentRepo,
		invoiceRepo:   invoiceRepo,
		locationRepo:  locationRepo,
		balanceRepo:   balanceRepo,
		snapshotRepo:  snapshotRepo,
	}
}

// Input est l'entrée de CreateGoodsReceipt.
type Input struct {
	PurchaseInvoiceID string
	ComponentID       string
	Lot               string
	Qty               decimal.Decimal // strictement positive
	UnitCost          decimal.Decimal
	LocationCode      string // vide = DEPOT
	CreatedBy         string
}

// CreateGoodsReceipt enregistre une livraison: dans une seule
// transaction, recalcule le snapshot de coût moyen (lecture du solde
// dépôt AVANT l'application de l'entrée), crée le mouvement
// ENTREE_DEPOT avec son effet sur le solde, puis la ligne de réception.
func (uc *UseCase) CreateGoodsReceipt(ctx context.Context, in Input) (*entity.GoodsReceipt, error) {
	if !in.Qty.GreaterThan(decimal.Zero) || in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	component, err := uc.componentRepo.GetByID(in.ComponentID)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, domain.ErrNotFound
	}
	invoice, err := uc.invoiceRepo.GetByID(in.PurchaseInvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	locationCode := in.LocationCode
	if locationCode == "" {
		locationCode = entity.LocationDepot
	}
	location, err := uc.locationRepo.GetByCode(locationCode)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	depot := location
	if location.Code != entity.LocationDepot {
		if depot, err = uc.locationRepo.GetByCode(entity.LocationDepot); err != nil {
			return nil, err
		}
		if depot == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	created := &entity.GoodsReceipt{
		ID:                uuid.New().String(),
		PurchaseInvoiceID: invoice.ID,
		ComponentID:       component.ID,
		Lot:               in.Lot,
		Qty:               in.Qty,
		UnitCost:          in.UnitCost,
		LocationID:        location.ID,
		CreatedAt:         now,
	}

	err = uc.txRunner.RunReceipt(ctx, func(
		movRepo repository.MovementRepository,
		balanceRepo repository.StockBalanceRepository,
		snapshotRepo repository.CostSnapshotRepository,
		receiptRepo repository.GoodsReceiptRepository,
	) error {
		// Recalcul d'abord: la lecture du solde dépôt doit précéder
		// l'application du delta de cette réception, sinon la quantité
		// reçue serait comptée deux fois dans la moyenne.
		if _, err := recalculateAt(balanceRepo, snapshotRepo, component.ID, depot.ID, in.Qty, in.UnitCost, now); err != nil {
			return err
		}
		_, err := stock.CreateMovementInTx(movRepo, balanceRepo, stock.MovementInput{
			Type:         movement.TypeEntreeDepot,
			ItemType:     entity.ItemTypeComponent,
			ItemID:       component.ID,
			Lot:          in.Lot,
			Qty:          in.Qty,
			ToLocationID: location.ID,
			Reference:    invoice.InvoiceNo,
			CreatedBy:    in.CreatedBy,
		}, now)
		if err != nil {
			return err
		}
		return receiptRepo.Create(created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RecalculateAvgCost recalcule le snapshot de coût moyen pondéré d'un
// composant pour une quantité reçue à un coût unitaire donné, et
// retourne le nouveau coût. Le solde dépôt est lu tel quel: le caller
// doit appeler AVANT d'appliquer le delta de la réception.
func (uc *UseCase) RecalculateAvgCost(ctx context.Context, componentID string, qty, unitCost decimal.Decimal) (decimal.Decimal, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	depot, err := uc.locationRepo.GetByCode(entity.LocationDepot)
	if err != nil {
		return decimal.Zero, err
	}
	if depot == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return recalculateAt(uc.balanceRepo, uc.snapshotRepo, componentID, depot.ID, qty, unitCost, time.Now())
}

// GetAvgCost retourne le snapshot courant, nil si aucun n'existe.
func (uc *UseCase) GetAvgCost(componentID string) (*entity.CostComponentSnapshot, error) {
	return uc.snapshotRepo.Get(componentID)
}

// recalculateAt lit le solde dépôt du composant puis écrase le snapshot
// avec la nouvelle moyenne pondérée.
func recalculateAt(
	balanceRepo repository.StockBalanceRepository,
	snapshotRepo repository.CostSnapshotRepository,
	componentID, depotLocationID string,
	qty, unitCost decimal.Decimal,
	now time.Time,
) (decimal.Decimal, error) {
	balance, err := balanceRepo.Get(entity.ItemTypeComponent, componentID, depotLocationID)
	if err != nil {
		return decimal.Zero, err
	}
	return upsertAvgCost(snapshotRepo, componentID, balance.QtyOnHand, qty, unitCost, now)
}

func upsertAvgCost(
	snapshotRepo repository.CostSnapshotRepository,
	componentID string,
	currentQty, qty, unitCost decimal.Decimal,
	now time.Time,
) (decimal.Decimal, error) {
	snapshot, err := snapshotRepo.Get(componentID)
	if err != nil {
		return decimal.Zero, err
	}
	currentAvg := decimal.Zero
	if snapshot != nil {
		currentAvg = snapshot.AvgCost
	}
	newAvg := costing.WeightedAvgCost(currentQty, currentAvg, qty, unitCost)
	if err := snapshotRepo.Upsert(&entity.CostComponentSnapshot{
		ComponentID: componentID,
		AvgCost:     newAvg,
		ComputedAt:  now,
	}); err != nil {
		return decimal.Zero, err
	}
	return newAvg, nil
}
