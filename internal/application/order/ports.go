package order

import (
	"context"

	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

// TxRunner exécute la transaction d'une déclaration de production: le
// mouvement PRODUCTION_FINI, son effet sur le solde et la mise à jour
// de l'OF persistent ensemble ou pas du tout.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		balanceRepo repository.StockBalanceRepository,
		ofRepo repository.ManufacturingOrderRepository,
	) error) error
}
