package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InsufficientStockError signale une sortie supérieure au solde de
// l'emplacement source, avec les deux valeurs. errors.Is(err,
// ErrInsufficientStock) reste vrai pour les handlers.
type InsufficientStockError struct {
	ItemType   string
	ItemID     string
	LocationID string
	Current    decimal.Decimal
	Requested  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuffisant. Disponible: %s, Demandé: %s", e.Current, e.Requested)
}

// Is rattache l'erreur au sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
