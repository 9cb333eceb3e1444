package repository

import "github.com/bikarpharma/suivi-stock/internal/domain/entity"

// ProductRepository est le port de persistance des produits finis.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	Update(p *entity.Product) error
	ListActive(limit, offset int) ([]*entity.Product, error)
	SetActive(id string, active bool) error
}

// BomRepository est le port de persistance de la nomenclature.
type BomRepository interface {
	Upsert(item *entity.BomItem) error
	ListByProduct(productID string) ([]*entity.BomItem, error)
	Delete(productID, componentID string) error
}
