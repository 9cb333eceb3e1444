package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bikarpharma/suivi-stock/internal/application/dto"
	"github.com/bikarpharma/suivi-stock/internal/application/receipt"
)

// ReceiptHandler gère les réceptions de marchandises et les snapshots
// de coût moyen pondéré.
type ReceiptHandler struct {
	uc *receipt.UseCase
}

// NewReceiptHandler construit le handler.
func NewReceiptHandler(uc *receipt.UseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

// Create enregistre une réception: recalcul du coût moyen, mouvement
// ENTREE_DEPOT et ligne de réception en une transaction.
// POST /api/receipts.
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	created, err := h.uc.CreateGoodsReceipt(c.Context(), receipt.Input{
		PurchaseInvoiceID: in.PurchaseInvoiceID,
		ComponentID:       in.ComponentID,
		Lot:               in.Lot,
		Qty:               in.Qty,
		UnitCost:          in.UnitCost,
		LocationCode:      in.LocationCode,
		CreatedBy:         GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetAvgCost retourne le snapshot de coût moyen d'un composant.
// GET /api/components/:id/avg-cost.
func (h *ReceiptHandler) GetAvgCost(c *fiber.Ctx) error {
	snapshot, err := h.uc.GetAvgCost(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if snapshot == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "aucun snapshot de coût pour ce composant"})
	}
	return c.JSON(dto.AvgCostResponse{ComponentID: snapshot.ComponentID, AvgCost: snapshot.AvgCost})
}
