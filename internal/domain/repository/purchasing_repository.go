package repository

import "github.com/bikarpharma/suivi-stock/internal/domain/entity"

// SupplierRepository est le port de persistance des fournisseurs.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List(limit, offset int) ([]*entity.Supplier, error)
}

// PurchaseInvoiceRepository est le port de persistance des factures d'achat.
type PurchaseInvoiceRepository interface {
	Create(inv *entity.PurchaseInvoice) error
	GetByID(id string) (*entity.PurchaseInvoice, error)
	GetBySupplierAndNo(supplierID, invoiceNo string) (*entity.PurchaseInvoice, error)
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseInvoice, error)
}

// GoodsReceiptRepository est le port de persistance des réceptions.
type GoodsReceiptRepository interface {
	Create(r *entity.GoodsReceipt) error
	ListByInvoice(invoiceID string) ([]*entity.GoodsReceipt, error)
	ListByComponent(componentID string, limit, offset int) ([]*entity.GoodsReceipt, error)
}
