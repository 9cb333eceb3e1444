package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bikarpharma/suivi-stock/internal/domain"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

// ProductUseCase gère le catalogue des produits finis et leur
// nomenclature.
type ProductUseCase struct {
	repo          repository.ProductRepository
	bomRepo       repository.BomRepository
	componentRepo repository.ComponentRepository
}

// NewProductUseCase construit le cas d'usage.
func NewProductUseCase(repo repository.ProductRepository, bomRepo repository.BomRepository, componentRepo repository.ComponentRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, bomRepo: bomRepo, componentRepo: componentRepo}
}

// CreateProductInput est l'entrée de Create.
type CreateProductInput struct {
	Code                   string
	Name                   string
	UOM                    string
	CoutSousTraitanceUnite decimal.Decimal
	CoutAutresUnite        decimal.Decimal
}

// Create crée un produit actif. Code unique.
func (uc *ProductUseCase) Create(in CreateProductInput) (*entity.Product, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CoutSousTraitanceUnite.LessThan(decimal.Zero) || in.CoutAutresUnite.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.UOM == "" {
		in.UOM = "pièce"
	}
	now := time.Now()
	product := &entity.Product{
		ID:                     uuid.New().String(),
		Code:                   in.Code,
		Name:                   in.Name,
		UOM:                    in.UOM,
		CoutSousTraitanceUnite: in.CoutSousTraitanceUnite,
		CoutAutresUnite:        in.CoutAutresUnite,
		Active:                 true,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID retourne un produit.
func (uc *ProductUseCase) GetByID(id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListActive retourne les produits actifs.
func (uc *ProductUseCase) ListActive(limit, offset int) ([]*entity.Product, error) {
	return uc.repo.ListActive(limit, offset)
}

// Deactivate désactive un produit.
func (uc *ProductUseCase) Deactivate(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SetActive(id, false)
}

// SetBomItem crée ou remplace une ligne de nomenclature. Unique par
// (produit, composant); quantité par unité >= 0.
func (uc *ProductUseCase) SetBomItem(productID, componentID string, qtyParUnite decimal.Decimal) (*entity.BomItem, error) {
	if qtyParUnite.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	component, err := uc.componentRepo.GetByID(componentID)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, domain.ErrNotFound
	}
	item := &entity.BomItem{
		ID:          uuid.New().String(),
		ProductID:   productID,
		ComponentID: componentID,
		QtyParUnite: qtyParUnite,
	}
	if err := uc.bomRepo.Upsert(item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetBom retourne la nomenclature d'un produit.
func (uc *ProductUseCase) GetBom(productID string) ([]*entity.BomItem, error) {
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.bomRepo.ListByProduct(productID)
}

// RemoveBomItem retire un composant de la nomenclature.
func (uc *ProductUseCase) RemoveBomItem(productID, componentID string) error {
	return uc.bomRepo.Delete(productID, componentID)
}
