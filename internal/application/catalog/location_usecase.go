package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/bikarpharma/suivi-stock/internal/domain"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

// LocationUseCase gère les emplacements de stock. Deux instances fixes
// en exploitation (DEPOT et PIPCOS), créées par le seed.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construit le cas d'usage.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crée un emplacement avec un code stable unique.
func (uc *LocationUseCase) Create(code, name string) (*entity.Location, error) {
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	location := &entity.Location{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return location, nil
}

// GetByCode retourne un emplacement par son code stable.
func (uc *LocationUseCase) GetByCode(code string) (*entity.Location, error) {
	location, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	return location, nil
}

// List retourne tous les emplacements.
func (uc *LocationUseCase) List() ([]*entity.Location, error) {
	return uc.repo.List()
}
