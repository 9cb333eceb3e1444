package repository

import (
	"github.com/shopspring/decimal"

	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
)

// StockBalanceRepository est le port de persistance des soldes de stock.
// Utilisé au sein des transactions pour garantir la cohérence avec le
// journal des mouvements.
type StockBalanceRepository interface {
	// Get retourne le solde courant; une ligne absente vaut un solde à
	// zéro (jamais d'erreur "introuvable").
	Get(itemType, itemID, locationID string) (*entity.StockBalance, error)
	// GetForUpdate verrouille la ligne (SELECT FOR UPDATE) avant un
	// contrôle de suffisance suivi d'une décrémentation.
	GetForUpdate(itemType, itemID, locationID string) (*entity.StockBalance, error)
	// ApplyDelta applique un delta signé; crée la ligne initialisée au
	// delta si elle n'existe pas.
	ApplyDelta(itemType, itemID, locationID string, delta decimal.Decimal) error
	// ListByItem retourne la ventilation par emplacement d'un item.
	ListByItem(itemType, itemID string) ([]*entity.StockBalance, error)
}
