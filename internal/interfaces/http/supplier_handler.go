package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bikarpharma/suivi-stock/internal/application/catalog"
	"github.com/bikarpharma/suivi-stock/internal/application/dto"
)

// SupplierHandler gère les fournisseurs et leurs factures d'achat.
type SupplierHandler struct {
	uc *catalog.SupplierUseCase
}

// NewSupplierHandler construit le handler.
func NewSupplierHandler(uc *catalog.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create crée un fournisseur. POST /api/suppliers.
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	supplier, err := h.uc.CreateSupplier(catalog.CreateSupplierInput{
		Name:    in.Name,
		Contact: in.Contact,
		Email:   in.Email,
		Phone:   in.Phone,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// List retourne les fournisseurs. GET /api/suppliers.
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pagination invalide"})
	}
	page.DefaultPage()
	suppliers, err := h.uc.ListSuppliers(page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(suppliers)
}

// CreateInvoice crée une facture d'achat.
// POST /api/suppliers/:id/invoices.
func (h *SupplierHandler) CreateInvoice(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	invoice, err := h.uc.CreateInvoice(catalog.CreateInvoiceInput{
		SupplierID:  c.Params("id"),
		InvoiceNo:   in.InvoiceNo,
		InvoiceDate: in.InvoiceDate,
		Currency:    in.Currency,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// ListInvoices retourne les factures d'un fournisseur.
// GET /api/suppliers/:id/invoices.
func (h *SupplierHandler) ListInvoices(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pagination invalide"})
	}
	page.DefaultPage()
	invoices, err := h.uc.ListInvoices(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoices)
}
