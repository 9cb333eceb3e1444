package repository

import "github.com/bikarpharma/suivi-stock/internal/domain/entity"

// ComponentRepository est le port de persistance des composants.
type ComponentRepository interface {
	Create(c *entity.Component) error
	GetByID(id string) (*entity.Component, error)
	GetByCode(code string) (*entity.Component, error)
	Update(c *entity.Component) error
	ListActive(limit, offset int) ([]*entity.Component, error)
	// SetActive active/désactive un composant; pas de suppression.
	SetActive(id string, active bool) error
}
