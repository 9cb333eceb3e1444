package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bikarpharma/suivi-stock/internal/application/stock"
	"github.com/bikarpharma/suivi-stock/internal/domain"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/movement"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

// UseCase gère le cycle de vie des ordres de fabrication: création,
// déclaration de production chez le sous-traitant et clôture.
type UseCase struct {
	txRunner     TxRunner
	ofRepo       repository.ManufacturingOrderRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(
	txRunner TxRunner,
	ofRepo repository.ManufacturingOrderRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, ofRepo: ofRepo, productRepo: productRepo, locationRepo: locationRepo}
}

// CreateInput est l'entrée de Create.
type CreateInput struct {
	OfCode        string
	ProductID     string
	QtyCommandee  decimal.Decimal
	DateLancement time.Time
}

// Create crée un OF au statut BROUILLON.
func (uc *UseCase) Create(in CreateInput) (*entity.ManufacturingOrder, error) {
	if in.OfCode == "" || !in.QtyCommandee.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.ofRepo.GetByCode(in.OfCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	of := &entity.ManufacturingOrder{
		ID:            uuid.New().String(),
		OfCode:        in.OfCode,
		ProductID:     in.ProductID,
		QtyCommandee:  in.QtyCommandee,
		QtyProduite:   decimal.Zero,
		Status:        entity.OFStatusBrouillon,
		DateLancement: in.DateLancement,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.ofRepo.Create(of); err != nil {
		return nil, err
	}
	return of, nil
}

// ProductionInput est l'entrée de RecordProduction.
type ProductionInput struct {
	OfID      string
	ProductID string
	Qty       decimal.Decimal
	LotFini   string
	CreatedBy string
}

// RecordProduction déclare une production chez le sous-traitant: le
// produit fini apparaît au site PIPCOS (mouvement PRODUCTION_FINI),
// QtyProduite s'incrémente, LotFini est écrasé et un OF en BROUILLON
// passe EN_COURS. Un OF CLOS ne produit plus.
func (uc *UseCase) RecordProduction(ctx context.Context, in ProductionInput) (*entity.Movement, error) {
	if !in.Qty.GreaterThan(decimal.Zero) || in.LotFini == "" {
		return nil, domain.ErrInvalidInput
	}
	of, err := uc.ofRepo.GetByID(in.OfID)
	if err != nil {
		return nil, err
	}
	if of == nil || of.ProductID != in.ProductID {
		return nil, domain.ErrNotFound
	}
	if of.Status == entity.OFStatusClos {
		return nil, domain.ErrInvalidTransition
	}
	pipcos, err := uc.locationRepo.GetByCode(entity.LocationPipcos)
	if err != nil {
		return nil, err
	}
	if pipcos == nil {
		return nil, domain.ErrNotFound
	}

	status := of.Status
	if status == entity.OFStatusBrouillon {
		status = entity.OFStatusEnCours
	}

	var created *entity.Movement
	err = uc.txRunner.RunProduction(ctx, func(
		movRepo repository.MovementRepository,
		balanceRepo repository.StockBalanceRepository,
		ofRepo repository.ManufacturingOrderRepository,
	) error {
		m, err := stock.CreateMovementInTx(movRepo, balanceRepo, stock.MovementInput{
			Type:         movement.TypeProductionFini,
			ItemType:     entity.ItemTypeProduct,
			ItemID:       in.ProductID,
			Lot:          in.LotFini,
			Qty:          in.Qty,
			ToLocationID: pipcos.ID,
			OfID:         of.ID,
			CreatedBy:    in.CreatedBy,
		}, time.Now())
		if err != nil {
			return err
		}
		created = m
		return ofRepo.RecordProduction(of.ID, in.Qty, in.LotFini, status)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Close clôture un OF. Transition en avant uniquement.
func (uc *UseCase) Close(ofID string) (*entity.ManufacturingOrder, error) {
	of, err := uc.ofRepo.GetByID(ofID)
	if err != nil {
		return nil, err
	}
	if of == nil {
		return nil, domain.ErrNotFound
	}
	if !of.CanTransitionTo(entity.OFStatusClos) {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.ofRepo.UpdateStatus(of.ID, entity.OFStatusClos); err != nil {
		return nil, err
	}
	of.Status = entity.OFStatusClos
	return of, nil
}

// GetByID retourne un OF.
func (uc *UseCase) GetByID(id string) (*entity.ManufacturingOrder, error) {
	of, err := uc.ofRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if of == nil {
		return nil, domain.ErrNotFound
	}
	return of, nil
}

// List retourne les OF paginés.
func (uc *UseCase) List(limit, offset int) ([]*entity.ManufacturingOrder, error) {
	return uc.ofRepo.List(limit, offset)
}
