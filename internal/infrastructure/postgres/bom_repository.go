package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

var _ repository.BomRepository = (*BomRepo)(nil)

// BomRepo implémentation de la nomenclature sur PostgreSQL.
type BomRepo struct {
	q Querier
}

// NewBomRepository construit l'adaptateur. Passer pool ou tx.
func NewBomRepository(q Querier) *BomRepo {
	return &BomRepo{q: q}
}

// Upsert crée ou remplace la ligne (produit, composant).
func (r *BomRepo) Upsert(item *entity.BomItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO bom_items (id, product_id, component_id, qty_par_unite)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, component_id)
		DO UPDATE SET qty_par_unite = EXCLUDED.qty_par_unite`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ProductID, item.ComponentID, item.QtyParUnite,
	)
	if err != nil {
		return fmt.Errorf("upsert bom item: %w", err)
	}
	return nil
}

// ListByProduct retourne la nomenclature d'un produit.
func (r *BomRepo) ListByProduct(productID string) ([]*entity.BomItem, error) {
	query := `
		SELECT id, product_id, component_id, qty_par_unite
		FROM bom_items WHERE product_id = $1 ORDER BY component_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list bom items: %w", err)
	}
	defer rows.Close()
	var list []*entity.BomItem
	for rows.Next() {
		var it entity.BomItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ComponentID, &it.QtyParUnite); err != nil {
			return nil, fmt.Errorf("scan bom item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Delete retire un composant de la nomenclature d'un produit.
func (r *BomRepo) Delete(productID, componentID string) error {
	query := `DELETE FROM bom_items WHERE product_id = $1 AND component_id = $2`
	_, err := r.q.Exec(context.Background(), query, productID, componentID)
	if err != nil {
		return fmt.Errorf("delete bom item: %w", err)
	}
	return nil
}
