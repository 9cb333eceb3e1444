package http

import (
	"github.com/gofiber/fiber/v2"

	appcosting "github.com/bikarpharma/suivi-stock/internal/application/costing"
	"github.com/bikarpharma/suivi-stock/internal/application/dto"
	"github.com/bikarpharma/suivi-stock/internal/application/order"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
)

// OrderHandler gère le cycle de vie des ordres de fabrication et leur
// valorisation.
type OrderHandler struct {
	uc        *order.UseCase
	costingUC *appcosting.UseCase
}

// NewOrderHandler construit le handler.
func NewOrderHandler(uc *order.UseCase, costingUC *appcosting.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc, costingUC: costingUC}
}

// Create crée un OF au statut BROUILLON. POST /api/of.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOFRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	of, err := h.uc.Create(order.CreateInput{
		OfCode:        in.OfCode,
		ProductID:     in.ProductID,
		QtyCommandee:  in.QtyCommandee,
		DateLancement: in.DateLancement,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOFResponse(of))
}

// GetByID retourne un OF. GET /api/of/:id.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	of, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toOFResponse(of))
}

// List retourne les OF paginés. GET /api/of.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pagination invalide"})
	}
	page.DefaultPage()
	orders, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.OFResponse, 0, len(orders))
	for _, of := range orders {
		out = append(out, *toOFResponse(of))
	}
	return c.JSON(out)
}

// RecordProduction déclare une production chez le sous-traitant.
// POST /api/of/:id/production.
func (h *OrderHandler) RecordProduction(c *fiber.Ctx) error {
	var in dto.ProductionFiniRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	created, err := h.uc.RecordProduction(c.Context(), order.ProductionInput{
		OfID:      c.Params("id"),
		ProductID: in.ProductID,
		Qty:       in.Qty,
		LotFini:   in.LotFini,
		CreatedBy: GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(created))
}

// Close clôture un OF. POST /api/of/:id/close.
func (h *OrderHandler) Close(c *fiber.Ctx) error {
	of, err := h.uc.Close(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toOFResponse(of))
}

// GetCost valorise un OF: coût unitaire du produit × quantité produite.
// GET /api/of/:id/cost.
func (h *OrderHandler) GetCost(c *fiber.Ctx) error {
	cost, err := h.costingUC.CalculateOFCost(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OFCostResponse{OfID: c.Params("id"), UnitCost: cost.UnitCost, TotalCost: cost.TotalCost})
}

// GetProductUnitCost retourne le coût unitaire d'un produit fini.
// GET /api/products/:id/unit-cost.
func (h *OrderHandler) GetProductUnitCost(c *fiber.Ctx) error {
	unitCost, err := h.costingUC.CalculateProductUnitCost(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ProductUnitCostResponse{ProductID: c.Params("id"), UnitCost: unitCost})
}

func toOFResponse(of *entity.ManufacturingOrder) *dto.OFResponse {
	return &dto.OFResponse{
		ID:            of.ID,
		OfCode:        of.OfCode,
		ProductID:     of.ProductID,
		QtyCommandee:  of.QtyCommandee,
		QtyProduite:   of.QtyProduite,
		LotFini:       of.LotFini,
		Status:        of.Status,
		DateLancement: of.DateLancement,
	}
}
