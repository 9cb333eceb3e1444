package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bikarpharma/suivi-stock/internal/application/catalog"
	"github.com/bikarpharma/suivi-stock/internal/application/dto"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
)

// ComponentHandler gère le catalogue des composants.
type ComponentHandler struct {
	uc *catalog.ComponentUseCase
}

// NewComponentHandler construit le handler.
func NewComponentHandler(uc *catalog.ComponentUseCase) *ComponentHandler {
	return &ComponentHandler{uc: uc}
}

// Create crée un composant. POST /api/components.
func (h *ComponentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	component, err := h.uc.Create(catalog.CreateComponentInput{
		Code:         in.Code,
		Name:         in.Name,
		UOM:          in.UOM,
		CoutStandard: in.CoutStandard,
		PackColisage: in.PackColisage,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toComponentResponse(component))
}

// GetByID retourne un composant. GET /api/components/:id.
func (h *ComponentHandler) GetByID(c *fiber.Ctx) error {
	component, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toComponentResponse(component))
}

// List retourne les composants actifs. GET /api/components.
func (h *ComponentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pagination invalide"})
	}
	page.DefaultPage()
	components, err := h.uc.ListActive(page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ComponentResponse, 0, len(components))
	for _, component := range components {
		out = append(out, *toComponentResponse(component))
	}
	return c.JSON(out)
}

// Update modifie les champs descriptifs. PUT /api/components/:id.
// Le coût standard n'est pas modifiable.
func (h *ComponentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	component, err := h.uc.Update(c.Params("id"), catalog.UpdateComponentInput{
		Name:         in.Name,
		UOM:          in.UOM,
		PackColisage: in.PackColisage,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toComponentResponse(component))
}

// Deactivate désactive un composant. DELETE /api/components/:id.
func (h *ComponentHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toComponentResponse(component *entity.Component) *dto.ComponentResponse {
	return &dto.ComponentResponse{
		ID:           component.ID,
		Code:         component.Code,
		Name:         component.Name,
		UOM:          component.UOM,
		CoutStandard: component.CoutStandard,
		PackColisage: component.PackColisage,
		Active:       component.Active,
		CreatedAt:    component.CreatedAt,
	}
}
