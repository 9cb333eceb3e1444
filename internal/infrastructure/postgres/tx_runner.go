package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bikarpharma/suivi-stock/internal/application/order"
	"github.com/bikarpharma/suivi-stock/internal/application/receipt"
	"github.com/bikarpharma/suivi-stock/internal/application/stock"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

// Vérifications statiques des ports transactionnels.
var (
	_ stock.TxRunner   = (*TxRunner)(nil)
	_ receipt.TxRunner = (*TxRunner)(nil)
	_ order.TxRunner   = (*TxRunner)(nil)
)

// TxRunner exécute des callbacks dans une transaction PostgreSQL avec
// des repositories liés à la transaction. Commit si le callback réussit,
// Rollback sinon: un mouvement n'existe jamais sans ses effets de solde.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construit le runner avec le pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run transaction d'un mouvement: journal + soldes.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.StockBalanceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMovementRepository(tx), NewStockBalanceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReceipt transaction d'une réception: recalcul du coût moyen,
// mouvement d'entrée et ligne de réception ensemble.
func (r *TxRunner) RunReceipt(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.StockBalanceRepository,
	snapshotRepo repository.CostSnapshotRepository,
	receiptRepo repository.GoodsReceiptRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewMovementRepository(tx),
		NewStockBalanceRepository(tx),
		NewCostSnapshotRepository(tx),
		NewGoodsReceiptRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProduction transaction d'une déclaration de production: mouvement
// PRODUCTION_FINI et mise à jour de l'OF ensemble.
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.StockBalanceRepository,
	ofRepo repository.ManufacturingOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewMovementRepository(tx),
		NewStockBalanceRepository(tx),
		NewManufacturingOrderRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
