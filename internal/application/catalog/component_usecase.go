package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bikarpharma/suivi-stock/internal/domain"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

// ComponentUseCase gère le catalogue des composants. Le coût standard
// est une référence immuable après création; les composants se
// désactivent, ils ne se suppriment pas.
type ComponentUseCase struct {
	repo repository.ComponentRepository
}

// NewComponentUseCase construit le cas d'usage.
func NewComponentUseCase(repo repository.ComponentRepository) *ComponentUseCase {
	return &ComponentUseCase{repo: repo}
}

// CreateComponentInput est l'entrée de Create.
type CreateComponentInput struct {
	Code         string
	Name         string
	UOM          string
	CoutStandard decimal.Decimal
	PackColisage *decimal.Decimal
}

// Create crée un composant actif. Code unique.
func (uc *ComponentUseCase) Create(in CreateComponentInput) (*entity.Component, error) {
	if in.Code == "" || in.Name == "" || in.CoutStandard.LessThan(decimal.Zero) {
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
	component := &entity.Component{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Name:         in.Name,
		UOM:          in.UOM,
		CoutStandard: in.CoutStandard,
		PackColisage: in.PackColisage,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(component); err != nil {
		return nil, err
	}
	return component, nil
}

// GetByID retourne un composant.
func (uc *ComponentUseCase) GetByID(id string) (*entity.Component, error) {
	component, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, domain.ErrNotFound
	}
	return component, nil
}

// ListActive retourne les composants actifs.
func (uc *ComponentUseCase) ListActive(limit, offset int) ([]*entity.Component, error) {
	return uc.repo.ListActive(limit, offset)
}

// UpdateComponentInput est l'entrée de Update. Le coût standard n'est
// pas modifiable.
type UpdateComponentInput struct {
	Name         string
	UOM          string
	PackColisage *decimal.Decimal
}

// Update met à jour les champs descriptifs d'un composant.
func (uc *ComponentUseCase) Update(id string, in UpdateComponentInput) (*entity.Component, error) {
	component, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		component.Name = in.Name
	}
	if in.UOM != "" {
		component.UOM = in.UOM
	}
	if in.PackColisage != nil {
		component.PackColisage = in.PackColisage
	}
	component.UpdatedAt = time.Now()
	if err := uc.repo.Update(component); err != nil {
		return nil, err
	}
	return component, nil
}

// Deactivate désactive un composant (pas de suppression).
func (uc *ComponentUseCase) Deactivate(id string) error {
	component, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if component == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SetActive(id, false)
}
