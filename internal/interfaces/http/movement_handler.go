package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bikarpharma/suivi-stock/internal/application/dto"
	"github.com/bikarpharma/suivi-stock/internal/application/stock"
	"github.com/bikarpharma/suivi-stock/internal/domain"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/movement"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

// MovementHandler gère les mouvements de stock: l'endpoint générique,
// les opérations dédiées du cycle de sous-traitance et les lectures de
// soldes et d'historique.
type MovementHandler struct {
	uc           *stock.UseCase
	locationRepo repository.LocationRepository
}

// NewMovementHandler construit le handler.
func NewMovementHandler(uc *stock.UseCase, locationRepo repository.LocationRepository) *MovementHandler {
	return &MovementHandler{uc: uc, locationRepo: locationRepo}
}

// Create crée un mouvement générique. POST /api/movements.
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	created, err := h.uc.CreateMovement(c.Context(), stock.MovementInput{
		Type:           in.Type,
		ItemType:       in.ItemType,
		ItemID:         in.ItemID,
		Lot:            in.Lot,
		Qty:            in.Qty,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		OfID:           in.OfID,
		Reference:      in.Reference,
		CreatedBy:      GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(created))
}

// Validate contrôle un mouvement sans le créer (structure + suffisance
// consultative). POST /api/movements/validate.
func (h *MovementHandler) Validate(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	result, err := h.uc.ValidateMovement(stock.MovementInput{
		Type:           in.Type,
		ItemType:       in.ItemType,
		ItemID:         in.ItemID,
		Qty:            in.Qty,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		OfID:           in.OfID,
	})
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ValidateMovementResponse{Valid: result.Valid, CurrentStock: result.CurrentStock}
	if !result.Valid {
		out.Error = "stock insuffisant"
	}
	return c.JSON(out)
}

// SortieVersPipcos envoie des composants du dépôt vers le sous-traitant
// sous un OF. POST /api/movements/sortie-vers-pipcos.
func (h *MovementHandler) SortieVersPipcos(c *fiber.Ctx) error {
	var in dto.SortieVersPipcosRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	depot, pipcos, err := h.resolveSites()
	if err != nil {
		return writeError(c, err)
	}
	created, err := h.uc.CreateMovement(c.Context(), stock.MovementInput{
		Type:           movement.TypeSortieVersPipcos,
		ItemType:       entity.ItemTypeComponent,
		ItemID:         in.ComponentID,
		Lot:            in.Lot,
		Qty:            in.Qty,
		FromLocationID: depot.ID,
		ToLocationID:   pipcos.ID,
		OfID:           in.OfID,
		CreatedBy:      GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(created))
}

// TransfertFiniVersDepot ramène du produit fini du sous-traitant au
// dépôt. POST /api/movements/transfert-fini-vers-depot.
func (h *MovementHandler) TransfertFiniVersDepot(c *fiber.Ctx) error {
	var in dto.TransfertFiniRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	depot, pipcos, err := h.resolveSites()
	if err != nil {
		return writeError(c, err)
	}
	created, err := h.uc.CreateMovement(c.Context(), stock.MovementInput{
		Type:           movement.TypeTransfertFiniVersDepot,
		ItemType:       entity.ItemTypeProduct,
		ItemID:         in.ProductID,
		Lot:            in.Lot,
		Qty:            in.Qty,
		FromLocationID: pipcos.ID,
		ToLocationID:   depot.ID,
		CreatedBy:      GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(created))
}

// RetourDePipcos enregistre un retour depuis le sous-traitant vers le
// dépôt sous un OF. POST /api/movements/retour-de-pipcos.
func (h *MovementHandler) RetourDePipcos(c *fiber.Ctx) error {
	var in dto.RetourDePipcosRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	depot, pipcos, err := h.resolveSites()
	if err != nil {
		return writeError(c, err)
	}
	created, err := h.uc.CreateMovement(c.Context(), stock.MovementInput{
		Type:           movement.TypeRetourDePipcos,
		ItemType:       in.ItemType,
		ItemID:         in.ItemID,
		Lot:            in.Lot,
		Qty:            in.Qty,
		FromLocationID: pipcos.ID,
		ToLocationID:   depot.ID,
		OfID:           in.OfID,
		CreatedBy:      GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(created))
}

// GetStock retourne le solde d'un item à un emplacement.
// GET /api/stocks/:itemType/:itemId/:locationId.
func (h *MovementHandler) GetStock(c *fiber.Ctx) error {
	qty, err := h.uc.GetStockByLocation(c.Params("itemType"), c.Params("itemId"), c.Params("locationId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockBalanceResponse{LocationID: c.Params("locationId"), Qty: qty})
}

// GetAllStocks retourne la ventilation par emplacement d'un item.
// GET /api/stocks/:itemType/:itemId.
func (h *MovementHandler) GetAllStocks(c *fiber.Ctx) error {
	balances, err := h.uc.GetAllStocks(c.Params("itemType"), c.Params("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockBalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, dto.StockBalanceResponse{LocationID: b.LocationID, Qty: b.QtyOnHand})
	}
	return c.JSON(out)
}

// ListByItem retourne l'historique d'un item.
// GET /api/movements/item/:itemType/:itemId.
func (h *MovementHandler) ListByItem(c *fiber.Ctx) error {
	from, to, page, err := parseHistoryQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paramètres de filtre invalides"})
	}
	movements, err := h.uc.ListMovementsByItem(c.Params("itemType"), c.Params("itemId"), from, to, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toMovementResponses(movements))
}

// ListByLocation retourne l'historique d'un emplacement.
// GET /api/movements/location/:locationId.
func (h *MovementHandler) ListByLocation(c *fiber.Ctx) error {
	from, to, page, err := parseHistoryQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paramètres de filtre invalides"})
	}
	movements, err := h.uc.ListMovementsByLocation(c.Params("locationId"), from, to, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toMovementResponses(movements))
}

// resolveSites charge les deux emplacements opérationnels par leur code
// stable.
func (h *MovementHandler) resolveSites() (depot, pipcos *entity.Location, err error) {
	depot, err = h.locationRepo.GetByCode(entity.LocationDepot)
	if err != nil {
		return nil, nil, err
	}
	pipcos, err = h.locationRepo.GetByCode(entity.LocationPipcos)
	if err != nil {
		return nil, nil, err
	}
	if depot == nil || pipcos == nil {
		return nil, nil, domain.ErrNotFound
	}
	return depot, pipcos, nil
}

func parseHistoryQuery(c *fiber.Ctx) (from, to *time.Time, page dto.PageRequest, err error) {
	if err = c.QueryParser(&page); err != nil {
		return nil, nil, page, err
	}
	page.DefaultPage()
	if s := c.Query("from"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, page, perr
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, page, perr
		}
		to = &t
	}
	return from, to, page, nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:             m.ID,
		Type:           m.Type,
		ItemType:       m.ItemType,
		ItemID:         m.ItemID,
		Lot:            m.Lot,
		Qty:            m.Qty,
		FromLocationID: m.FromLocationID,
		ToLocationID:   m.ToLocationID,
		OfID:           m.OfID,
		Reference:      m.Reference,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}

func toMovementResponses(movements []*entity.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, *toMovementResponse(m))
	}
	return out
}
