package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bikarpharma/suivi-stock/internal/application/catalog"
	"github.com/bikarpharma/suivi-stock/internal/application/dto"
)

// LocationHandler gère les emplacements de stock.
type LocationHandler struct {
	uc *catalog.LocationUseCase
}

// NewLocationHandler construit le handler.
func NewLocationHandler(uc *catalog.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Create crée un emplacement. POST /api/locations.
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	location, err := h.uc.Create(in.Code, in.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(location)
}

// List retourne tous les emplacements. GET /api/locations.
func (h *LocationHandler) List(c *fiber.Ctx) error {
	locations, err := h.uc.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(locations)
}
