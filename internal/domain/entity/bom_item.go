package entity

import "github.com/shopspring/decimal"

// BomItem relie un produit à un composant avec la quantité consommée
// par unité produite. Unique par (produit, composant).
type BomItem struct {
	ID          string
	ProductID   string
	ComponentID string
	QtyParUnite decimal.Decimal // >= 0
}
