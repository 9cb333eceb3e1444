package postgres

import (
	"context"
	"fmt"

	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

var _ repository.GoodsReceiptRepository = (*GoodsReceiptRepo)(nil)

// GoodsReceiptRepo implémentation des réceptions sur PostgreSQL.
type GoodsReceiptRepo struct {
	q Querier
}

// NewGoodsReceiptRepository construit l'adaptateur. Passer pool ou tx.
func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

const receiptColumns = `id, purchase_invoice_id, component_id, lot, qty, unit_cost, location_id, created_at`

// Create persiste une réception. Appelé dans la transaction qui crée le
// mouvement ENTREE_DEPOT correspondant.
func (r *GoodsReceiptRepo) Create(gr *entity.GoodsReceipt) error {
	query := `INSERT INTO goods_receipts (` + receiptColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		gr.ID, gr.PurchaseInvoiceID, gr.ComponentID, nullable(gr.Lot), gr.Qty, gr.UnitCost, gr.LocationID, gr.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create goods receipt: %w", err)
	}
	return nil
}

// ListByInvoice retourne les réceptions d'une facture.
func (r *GoodsReceiptRepo) ListByInvoice(invoiceID string) ([]*entity.GoodsReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM goods_receipts WHERE purchase_invoice_id = $1 ORDER BY created_at`
	return r.list(query, invoiceID)
}

// ListByComponent retourne l'historique des réceptions d'un composant,
// les plus récentes en premier.
func (r *GoodsReceiptRepo) ListByComponent(componentID string, limit, offset int) ([]*entity.GoodsReceipt, error) {
	query := `
		SELECT ` + receiptColumns + ` FROM goods_receipts
		WHERE component_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, componentID, limit, offset)
}

func (r *GoodsReceiptRepo) list(query string, args ...any) ([]*entity.GoodsReceipt, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list goods receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.GoodsReceipt
	for rows.Next() {
		var gr entity.GoodsReceipt
		var lot *string
		if err := rows.Scan(&gr.ID, &gr.PurchaseInvoiceID, &gr.ComponentID, &lot, &gr.Qty, &gr.UnitCost, &gr.LocationID, &gr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan goods receipt: %w", err)
		}
		gr.Lot = deref(lot)
		list = append(list, &gr)
	}
	return list, rows.Err()
}
