package repository

import (
	"time"

	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
)

// MovementRepository est le port de persistance du journal des
// mouvements. Création uniquement: le journal est immuable.
type MovementRepository interface {
	Create(m *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	ListByItem(itemType, itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByOF(ofID string) ([]*entity.Movement, error)
}
