package repository

import (
	"github.com/shopspring/decimal"

	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
)

// ManufacturingOrderRepository est le port de persistance des OF.
type ManufacturingOrderRepository interface {
	Create(of *entity.ManufacturingOrder) error
	GetByID(id string) (*entity.ManufacturingOrder, error)
	GetByCode(ofCode string) (*entity.ManufacturingOrder, error)
	List(limit, offset int) ([]*entity.ManufacturingOrder, error)
	// RecordProduction incrémente QtyProduite, écrase LotFini et pose le
	// statut donné. Appelé dans la transaction du mouvement PRODUCTION_FINI.
	RecordProduction(id string, qty decimal.Decimal, lotFini, status string) error
	UpdateStatus(id string, status string) error
}
