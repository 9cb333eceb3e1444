package receipt

import (
	"context"

	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

// TxRunner exécute la transaction d'une réception: recalcul du coût
// moyen, mouvement d'entrée avec son effet sur le solde, et ligne de
// réception, ensemble ou pas du tout.
type TxRunner interface {
	RunReceipt(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		balanceRepo repository.StockBalanceRepository,
		snapshotRepo repository.CostSnapshotRepository,
		receiptRepo repository.GoodsReceiptRepository,
	) error) error
}
