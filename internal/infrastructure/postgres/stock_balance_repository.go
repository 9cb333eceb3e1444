package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo implémentation sur PostgreSQL (pool ou tx).
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construit l'adaptateur. Passer pool ou tx.
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

// Get retourne le solde courant du triplet; une ligne absente vaut zéro.
func (r *StockBalanceRepo) Get(itemType, itemID, locationID string) (*entity.StockBalance, error) {
	query := `
		SELECT item_type, item_id, location_id, qty_on_hand, updated_at
		FROM stock_balances
		WHERE item_type = $1 AND item_id = $2 AND location_id = $3`
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, itemType, itemID, locationID).Scan(
		&b.ItemType, &b.ItemID, &b.LocationID, &b.QtyOnHand, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockBalance{ItemType: itemType, ItemID: itemID, LocationID: locationID, QtyOnHand: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate verrouille la ligne (SELECT FOR UPDATE) pour sérialiser
// le contrôle de suffisance et le décrément qui suit.
func (r *StockBalanceRepo) GetForUpdate(itemType, itemID, locationID string) (*entity.StockBalance, error) {
	query := `
		SELECT item_type, item_id, location_id, qty_on_hand, updated_at
		FROM stock_balances
		WHERE item_type = $1 AND item_id = $2 AND location_id = $3
		FOR UPDATE`
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, itemType, itemID, locationID).Scan(
		&b.ItemType, &b.ItemID, &b.LocationID, &b.QtyOnHand, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockBalance{ItemType: itemType, ItemID: itemID, LocationID: locationID, QtyOnHand: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock balance for update: %w", err)
	}
	return &b, nil
}

// ApplyDelta applique un delta signé; crée la ligne initialisée au
// delta si elle n'existe pas encore.
func (r *StockBalanceRepo) ApplyDelta(itemType, itemID, locationID string, delta decimal.Decimal) error {
	query := `
		INSERT INTO stock_balances (item_type, item_id, location_id, qty_on_hand, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (item_type, item_id, location_id)
		DO UPDATE SET qty_on_hand = stock_balances.qty_on_hand + EXCLUDED.qty_on_hand, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, itemType, itemID, locationID, delta)
	if err != nil {
		return fmt.Errorf("apply stock delta: %w", err)
	}
	return nil
}

// ListByItem retourne la ventilation par emplacement d'un item.
func (r *StockBalanceRepo) ListByItem(itemType, itemID string) ([]*entity.StockBalance, error) {
	query := `
		SELECT item_type, item_id, location_id, qty_on_hand, updated_at
		FROM stock_balances
		WHERE item_type = $1 AND item_id = $2
		ORDER BY location_id`
	rows, err := r.q.Query(context.Background(), query, itemType, itemID)
	if err != nil {
		return nil, fmt.Errorf("list stock balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBalance
	for rows.Next() {
		var b entity.StockBalance
		if err := rows.Scan(&b.ItemType, &b.ItemID, &b.LocationID, &b.QtyOnHand, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
