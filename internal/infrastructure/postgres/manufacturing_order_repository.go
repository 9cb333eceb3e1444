package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bikarpharma/suivi-stock/internal/domain"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

var _ repository.ManufacturingOrderRepository = (*ManufacturingOrderRepo)(nil)

// ManufacturingOrderRepo implémentation des OF sur PostgreSQL.
type ManufacturingOrderRepo struct {
	q Querier
}

// NewManufacturingOrderRepository construit l'adaptateur. Passer pool ou tx.
func NewManufacturingOrderRepository(q Querier) *ManufacturingOrderRepo {
	return &ManufacturingOrderRepo{q: q}
}

const ofColumns = `id, of_code, product_id, qty_commandee, qty_produite, lot_fini, status, date_lancement, created_at, updated_at`

// Create persiste un OF.
func (r *ManufacturingOrderRepo) Create(of *entity.ManufacturingOrder) error {
	query := `
		INSERT INTO manufacturing_orders (` + ofColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		of.ID, of.OfCode, of.ProductID, of.QtyCommandee, of.QtyProduite,
		of.LotFini, of.Status, of.DateLancement, of.CreatedAt, of.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create manufacturing order: %w", err)
	}
	return nil
}

// GetByID retourne un OF, nil si introuvable.
func (r *ManufacturingOrderRepo) GetByID(id string) (*entity.ManufacturingOrder, error) {
	return r.getBy("id", id)
}

// GetByCode retourne un OF par son code, nil si introuvable.
func (r *ManufacturingOrderRepo) GetByCode(ofCode string) (*entity.ManufacturingOrder, error) {
	return r.getBy("of_code", ofCode)
}

func (r *ManufacturingOrderRepo) getBy(column, value string) (*entity.ManufacturingOrder, error) {
	query := `SELECT ` + ofColumns + ` FROM manufacturing_orders WHERE ` + column + ` = $1`
	var of entity.ManufacturingOrder
	var lotFini *string
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&of.ID, &of.OfCode, &of.ProductID, &of.QtyCommandee, &of.QtyProduite,
		&lotFini, &of.Status, &of.DateLancement, &of.CreatedAt, &of.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manufacturing order: %w", err)
	}
	of.LotFini = deref(lotFini)
	return &of, nil
}

// List retourne les OF du plus récent au plus ancien.
func (r *ManufacturingOrderRepo) List(limit, offset int) ([]*entity.ManufacturingOrder, error) {
	query := `
		SELECT ` + ofColumns + ` FROM manufacturing_orders
		ORDER BY date_lancement DESC, of_code DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list manufacturing orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ManufacturingOrder
	for rows.Next() {
		var of entity.ManufacturingOrder
		var lotFini *string
		if err := rows.Scan(
			&of.ID, &of.OfCode, &of.ProductID, &of.QtyCommandee, &of.QtyProduite,
			&lotFini, &of.Status, &of.DateLancement, &of.CreatedAt, &of.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan manufacturing order: %w", err)
		}
		of.LotFini = deref(lotFini)
		list = append(list, &of)
	}
	return list, rows.Err()
}

// RecordProduction cumule la quantité produite et écrase le lot fini.
func (r *ManufacturingOrderRepo) RecordProduction(id string, qty decimal.Decimal, lotFini, status string) error {
	query := `
		UPDATE manufacturing_orders
		SET qty_produite = qty_produite + $2, lot_fini = $3, status = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, qty, nullable(lotFini), status)
	if err != nil {
		return fmt.Errorf("record production: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus pose le statut donné.
func (r *ManufacturingOrderRepo) UpdateStatus(id string, status string) error {
	query := `UPDATE manufacturing_orders SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
