package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bikarpharma/suivi-stock/internal/application/catalog"
	"github.com/bikarpharma/suivi-stock/internal/application/dto"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
)

// ProductHandler gère le catalogue des produits finis et leur
// nomenclature.
type ProductHandler struct {
	uc *catalog.ProductUseCase
}

// NewProductHandler construit le handler.
func NewProductHandler(uc *catalog.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create crée un produit. POST /api/products.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	product, err := h.uc.Create(catalog.CreateProductInput{
		Code:                   in.Code,
		Name:                   in.Name,
		UOM:                    in.UOM,
		CoutSousTraitanceUnite: in.CoutSousTraitanceUnite,
		CoutAutresUnite:        in.CoutAutresUnite,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
}

// GetByID retourne un produit. GET /api/products/:id.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toProductResponse(product))
}

// List retourne les produits actifs. GET /api/products.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pagination invalide"})
	}
	page.DefaultPage()
	products, err := h.uc.ListActive(page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, *toProductResponse(product))
	}
	return c.JSON(out)
}

// Deactivate désactive un produit. DELETE /api/products/:id.
func (h *ProductHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetBomItem crée ou remplace une ligne de nomenclature.
// PUT /api/products/:id/bom.
func (h *ProductHandler) SetBomItem(c *fiber.Ctx) error {
	var in dto.SetBomItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	item, err := h.uc.SetBomItem(c.Params("id"), in.ComponentID, in.QtyParUnite)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.BomItemResponse{ComponentID: item.ComponentID, QtyParUnite: item.QtyParUnite})
}

// GetBom retourne la nomenclature. GET /api/products/:id/bom.
func (h *ProductHandler) GetBom(c *fiber.Ctx) error {
	items, err := h.uc.GetBom(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.BomItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.BomItemResponse{ComponentID: item.ComponentID, QtyParUnite: item.QtyParUnite})
	}
	return c.JSON(out)
}

// RemoveBomItem retire un composant de la nomenclature.
// DELETE /api/products/:id/bom/:componentId.
func (h *ProductHandler) RemoveBomItem(c *fiber.Ctx) error {
	if err := h.uc.RemoveBomItem(c.Params("id"), c.Params("componentId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toProductResponse(product *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                     product.ID,
		Code:                   product.Code,
		Name:                   product.Name,
		UOM:                    product.UOM,
		CoutSousTraitanceUnite: product.CoutSousTraitanceUnite,
		CoutAutresUnite:        product.CoutAutresUnite,
		Active:                 product.Active,
		CreatedAt:              product.CreatedAt,
	}
}
