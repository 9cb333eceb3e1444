package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/bikarpharma/suivi-stock/internal/domain"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

// SupplierUseCase gère les fournisseurs et leurs factures d'achat.
type SupplierUseCase struct {
	repo        repository.SupplierRepository
	invoiceRepo repository.PurchaseInvoiceRepository
}

// NewSupplierUseCase construit le cas d'usage.
func NewSupplierUseCase(repo repository.SupplierRepository, invoiceRepo repository.PurchaseInvoiceRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, invoiceRepo: invoiceRepo}
}

// CreateSupplierInput est l'entrée de CreateSupplier.
type CreateSupplierInput struct {
	Name    string
	Contact string
	Email   string
	Phone   string
}

// CreateSupplier crée un fournisseur.
func (uc *SupplierUseCase) CreateSupplier(in CreateSupplierInput) (*entity.Supplier, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Contact:   in.Contact,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// ListSuppliers retourne les fournisseurs paginés.
func (uc *SupplierUseCase) ListSuppliers(limit, offset int) ([]*entity.Supplier, error) {
	return uc.repo.List(limit, offset)
}

// CreateInvoiceInput est l'entrée de CreateInvoice.
type CreateInvoiceInput struct {
	SupplierID  string
	InvoiceNo   string
	InvoiceDate time.Time
	Currency    string
}

// CreateInvoice crée une facture d'achat, unique par (fournisseur, n°).
func (uc *SupplierUseCase) CreateInvoice(in CreateInvoiceInput) (*entity.PurchaseInvoice, error) {
	if in.InvoiceNo == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.repo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.invoiceRepo.GetBySupplierAndNo(in.SupplierID, in.InvoiceNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Currency == "" {
		in.Currency = "TND"
	}
	invoice := &entity.PurchaseInvoice{
		ID:          uuid.New().String(),
		SupplierID:  in.SupplierID,
		InvoiceNo:   in.InvoiceNo,
		InvoiceDate: in.InvoiceDate,
		Currency:    in.Currency,
		CreatedAt:   time.Now(),
	}
	if err := uc.invoiceRepo.Create(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// ListInvoices retourne les factures d'un fournisseur.
func (uc *SupplierUseCase) ListInvoices(supplierID string, limit, offset int) ([]*entity.PurchaseInvoice, error) {
	return uc.invoiceRepo.ListBySupplier(supplierID, limit, offset)
}
