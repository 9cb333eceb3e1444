package costing

import (
	"github.com/shopspring/decimal"

	"github.com/bikarpharma/suivi-stock/internal/domain"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

// UseCase valorise les produits finis et les ordres de fabrication à
// partir de la nomenclature et des snapshots de coût moyen.
type UseCase struct {
	productRepo   repository.ProductRepository
	componentRepo repository.ComponentRepository
	bomRepo       repository.BomRepository
	snapshotRepo  repository.CostSnapshotRepository
	ofRepo        repository.ManufacturingOrderRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(
	productRepo repository.ProductRepository,
	componentRepo repository.ComponentRepository,
	bomRepo repository.BomRepository,
	snapshotRepo repository.CostSnapshotRepository,
	ofRepo repository.ManufacturingOrderRepository,
) *UseCase {
	return &UseCase{
		productRepo:   productRepo,
		componentRepo: componentRepo,
		bomRepo:       bomRepo,
		snapshotRepo:  snapshotRepo,
		ofRepo:        ofRepo,
	}
}

// OFCost est le résultat de la valorisation d'un OF.
type OFCost struct {
	UnitCost  decimal.Decimal
	TotalCost decimal.Decimal
}

// CalculateProductUnitCost calcule le coût unitaire d'un produit fini:
// pour chaque ligne de nomenclature, (coût moyen du snapshot, ou coût
// standard du composant si aucun snapshot) × quantité par unité; la
// somme plus les coûts fixes de sous-traitance et autres.
func (uc *UseCase) CalculateProductUnitCost(productID string) (decimal.Decimal, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, domain.ErrNotFound
	}

	bomItems, err := uc.bomRepo.ListByProduct(productID)
	if err != nil {
		return decimal.Zero, err
	}

	totalComponentCost := decimal.Zero
	for _, item := range bomItems {
		snapshot, err := uc.snapshotRepo.Get(item.ComponentID)
		if err != nil {
			return decimal.Zero, err
		}
		var unitCost decimal.Decimal
		if snapshot != nil {
			unitCost = snapshot.AvgCost
		} else {
			component, err := uc.componentRepo.GetByID(item.ComponentID)
			if err != nil {
				return decimal.Zero, err
			}
			if component == nil {
				return decimal.Zero, domain.ErrNotFound
			}
			unitCost = component.CoutStandard
		}
		totalComponentCost = totalComponentCost.Add(unitCost.Mul(item.QtyParUnite))
	}

	return totalComponentCost.Add(product.CoutSousTraitanceUnite).Add(product.CoutAutresUnite), nil
}

// CalculateOFCost valorise un OF: coût unitaire du produit et coût
// total = coût unitaire × quantité PRODUITE (la sortie réelle, pas la
// quantité commandée).
func (uc *UseCase) CalculateOFCost(ofID string) (OFCost, error) {
	of, err := uc.ofRepo.GetByID(ofID)
	if err != nil {
		return OFCost{}, err
	}
	if of == nil {
		return OFCost{}, domain.ErrNotFound
	}
	unitCost, err := uc.CalculateProductUnitCost(of.ProductID)
	if err != nil {
		return OFCost{}, err
	}
	return OFCost{
		UnitCost:  unitCost,
		TotalCost: unitCost.Mul(of.QtyProduite),
	}, nil
}
