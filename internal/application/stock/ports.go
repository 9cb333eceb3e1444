package stock

import (
	"context"

	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction de BD, en passant
// des repositories liés à cette transaction. Garantit que le mouvement
// et ses effets sur les soldes persistent ensemble ou pas du tout.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		balanceRepo repository.StockBalanceRepository,
	) error) error
}
