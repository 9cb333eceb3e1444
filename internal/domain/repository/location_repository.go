package repository

import "github.com/bikarpharma/suivi-stock/internal/domain/entity"

// LocationRepository est le port de persistance des emplacements.
type LocationRepository interface {
	Create(l *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	GetByCode(code string) (*entity.Location, error)
	List() ([]*entity.Location, error)
}
