package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bikarpharma/suivi-stock/internal/domain"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

var _ repository.PurchaseInvoiceRepository = (*PurchaseInvoiceRepo)(nil)

// PurchaseInvoiceRepo implémentation des factures d'achat sur PostgreSQL.
type PurchaseInvoiceRepo struct {
	q Querier
}

// NewPurchaseInvoiceRepository construit l'adaptateur. Passer pool ou tx.
func NewPurchaseInvoiceRepository(q Querier) *PurchaseInvoiceRepo {
	return &PurchaseInvoiceRepo{q: q}
}

const invoiceColumns = `id, supplier_id, invoice_no, invoice_date, currency, created_at`

// Create persiste une facture. L'unicité (fournisseur, n°) est portée
// par une contrainte en base.
func (r *PurchaseInvoiceRepo) Create(inv *entity.PurchaseInvoice) error {
	query := `INSERT INTO purchase_invoices (` + invoiceColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.SupplierID, inv.InvoiceNo, inv.InvoiceDate, inv.Currency, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create purchase invoice: %w", err)
	}
	return nil
}

// GetByID retourne une facture, nil si introuvable.
func (r *PurchaseInvoiceRepo) GetByID(id string) (*entity.PurchaseInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM purchase_invoices WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetBySupplierAndNo retourne la facture identifiée par le couple
// (fournisseur, n° de facture), nil si introuvable.
func (r *PurchaseInvoiceRepo) GetBySupplierAndNo(supplierID, invoiceNo string) (*entity.PurchaseInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM purchase_invoices WHERE supplier_id = $1 AND invoice_no = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, supplierID, invoiceNo))
}

func (r *PurchaseInvoiceRepo) scanOne(row pgx.Row) (*entity.PurchaseInvoice, error) {
	var inv entity.PurchaseInvoice
	err := row.Scan(&inv.ID, &inv.SupplierID, &inv.InvoiceNo, &inv.InvoiceDate, &inv.Currency, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase invoice: %w", err)
	}
	return &inv, nil
}

// ListBySupplier retourne les factures d'un fournisseur, les plus
// récentes en premier.
func (r *PurchaseInvoiceRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseInvoice, error) {
	query := `
		SELECT ` + invoiceColumns + ` FROM purchase_invoices
		WHERE supplier_id = $1 ORDER BY invoice_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, supplierID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseInvoice
	for rows.Next() {
		var inv entity.PurchaseInvoice
		if err := rows.Scan(&inv.ID, &inv.SupplierID, &inv.InvoiceNo, &inv.InvoiceDate, &inv.Currency, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
