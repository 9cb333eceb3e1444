package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bikarpharma/suivi-stock/internal/domain"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/movement"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

// UseCase orchestre les mouvements de stock: validation structurelle,
// contrôle de suffisance, puis écriture atomique du mouvement et des
// soldes (verrouillage de ligne côté source).
type UseCase struct {
	txRunner    TxRunner
	movRepo     repository.MovementRepository
	balanceRepo repository.StockBalanceRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(txRunner TxRunner, movRepo repository.MovementRepository, balanceRepo repository.StockBalanceRepository) *UseCase {
	return &UseCase{txRunner: txRunner, movRepo: movRepo, balanceRepo: balanceRepo}
}

// MovementInput est l'entrée de CreateMovement.
type MovementInput struct {
	Type           string
	ItemType       string
	ItemID         string
	Lot            string
	Qty            decimal.Decimal
	FromLocationID string
	ToLocationID   string
	OfID           string
	Reference      string
	CreatedBy      string
}

// SufficiencyResult est le résultat d'un contrôle de suffisance.
type SufficiencyResult struct {
	Valid        bool
	CurrentStock decimal.Decimal
}

// ValidateMovement vérifie la règle structurelle du type puis, si un
// emplacement source est présent, la suffisance du stock. Contrôle
// consultatif: le contrôle décisif est refait dans la transaction de
// CreateMovement sur une ligne verrouillée.
func (uc *UseCase) ValidateMovement(in MovementInput) (SufficiencyResult, error) {
	if err := uc.validateStructure(in); err != nil {
		return SufficiencyResult{}, err
	}
	if in.FromLocationID == "" {
		return SufficiencyResult{Valid: true}, nil
	}
	return uc.ValidateSufficiency(in.ItemType, in.ItemID, in.FromLocationID, in.Qty)
}

// ValidateSufficiency compare la quantité demandée au solde courant de
// l'emplacement source et rapporte les deux valeurs.
func (uc *UseCase) ValidateSufficiency(itemType, itemID, fromLocationID string, qty decimal.Decimal) (SufficiencyResult, error) {
	balance, err := uc.balanceRepo.Get(itemType, itemID, fromLocationID)
	if err != nil {
		return SufficiencyResult{}, err
	}
	if balance.QtyOnHand.LessThan(qty) {
		return SufficiencyResult{Valid: false, CurrentStock: balance.QtyOnHand}, nil
	}
	return SufficiencyResult{Valid: true, CurrentStock: balance.QtyOnHand}, nil
}

// CreateMovement crée un mouvement: (a) validation structurelle,
// (b) suffisance consultative pour la branche sortante, (c) transaction
// atomique: verrou de la ligne source, re-contrôle, insertion du
// mouvement, décrément source et incrément destination avec la même
// quantité. Tout ou rien.
func (uc *UseCase) CreateMovement(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	if err := uc.validateStructure(in); err != nil {
		return nil, err
	}
	if in.FromLocationID != "" {
		check, err := uc.ValidateSufficiency(in.ItemType, in.ItemID, in.FromLocationID, in.Qty)
		if err != nil {
			return nil, err
		}
		if !check.Valid {
			return nil, &domain.InsufficientStockError{
				ItemType:   in.ItemType,
				ItemID:     in.ItemID,
				LocationID: in.FromLocationID,
				Current:    check.CurrentStock,
				Requested:  in.Qty,
			}
		}
	}

	var created *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balanceRepo repository.StockBalanceRepository,
	) error {
		m, err := CreateMovementInTx(movRepo, balanceRepo, in, time.Now())
		if err != nil {
			return err
		}
		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateMovementInTx exécute l'écriture d'un mouvement avec les
// repositories fournis (transaction du caller). Utilisé par les cas
// d'usage réception et production pour composer leurs transactions.
// La structure est supposée déjà validée.
func CreateMovementInTx(
	movRepo repository.MovementRepository,
	balanceRepo repository.StockBalanceRepository,
	in MovementInput,
	now time.Time,
) (*entity.Movement, error) {
	if in.FromLocationID != "" {
		// Verrou de la ligne source: le contrôle décisif et le décrément
		// sont sérialisés par (itemType, itemId, locationId).
		balance, err := balanceRepo.GetForUpdate(in.ItemType, in.ItemID, in.FromLocationID)
		if err != nil {
			return nil, err
		}
		if balance.QtyOnHand.LessThan(in.Qty) {
			return nil, &domain.InsufficientStockError{
				ItemType:   in.ItemType,
				ItemID:     in.ItemID,
				LocationID: in.FromLocationID,
				Current:    balance.QtyOnHand,
				Requested:  in.Qty,
			}
		}
	}

	m := &entity.Movement{
		ID:             uuid.New().String(),
		Type:           in.Type,
		ItemType:       in.ItemType,
		ItemID:         in.ItemID,
		Lot:            in.Lot,
		Qty:            in.Qty,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		OfID:           in.OfID,
		Reference:      in.Reference,
		CreatedBy:      in.CreatedBy,
		CreatedAt:      now,
	}
	if err := movRepo.Create(m); err != nil {
		return nil, err
	}
	if in.FromLocationID != "" {
		if err := balanceRepo.ApplyDelta(in.ItemType, in.ItemID, in.FromLocationID, in.Qty.Neg()); err != nil {
			return nil, err
		}
	}
	if in.ToLocationID != "" {
		if err := balanceRepo.ApplyDelta(in.ItemType, in.ItemID, in.ToLocationID, in.Qty); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// validateStructure applique les règles communes (quantité strictement
// positive, itemType connu) puis la règle structurelle du type.
func (uc *UseCase) validateStructure(in MovementInput) error {
	if in.ItemID == "" || !in.Qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if in.ItemType != entity.ItemTypeComponent && in.ItemType != entity.ItemTypeProduct {
		return domain.ErrInvalidInput
	}
	return movement.Validate(movement.Data{
		Type:           in.Type,
		ItemType:       in.ItemType,
		OfID:           in.OfID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
	})
}

// GetStockByLocation retourne le solde courant (zéro si jamais touché).
func (uc *UseCase) GetStockByLocation(itemType, itemID, locationID string) (decimal.Decimal, error) {
	balance, err := uc.balanceRepo.Get(itemType, itemID, locationID)
	if err != nil {
		return decimal.Zero, err
	}
	return balance.QtyOnHand, nil
}

// GetAllStocks retourne la ventilation par emplacement d'un item.
func (uc *UseCase) GetAllStocks(itemType, itemID string) ([]*entity.StockBalance, error) {
	return uc.balanceRepo.ListByItem(itemType, itemID)
}

// ListMovementsByItem retourne l'historique d'un item (journal immuable).
func (uc *UseCase) ListMovementsByItem(itemType, itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.ListByItem(itemType, itemID, from, to, limit, offset)
}

// ListMovementsByLocation retourne l'historique d'un emplacement.
func (uc *UseCase) ListMovementsByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.ListByLocation(locationID, from, to, limit, offset)
}
