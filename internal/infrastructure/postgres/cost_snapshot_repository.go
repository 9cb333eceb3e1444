package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

var _ repository.CostSnapshotRepository = (*CostSnapshotRepo)(nil)

// CostSnapshotRepo implémentation des snapshots de coût moyen sur
// PostgreSQL.
type CostSnapshotRepo struct {
	q Querier
}

// NewCostSnapshotRepository construit l'adaptateur. Passer pool ou tx.
func NewCostSnapshotRepository(q Querier) *CostSnapshotRepo {
	return &CostSnapshotRepo{q: q}
}

// Get retourne le snapshot d'un composant, nil si aucun recalcul n'a
// encore eu lieu.
func (r *CostSnapshotRepo) Get(componentID string) (*entity.CostComponentSnapshot, error) {
	query := `
		SELECT component_id, avg_cost, computed_at
		FROM cost_component_snapshots WHERE component_id = $1`
	var s entity.CostComponentSnapshot
	err := r.q.QueryRow(context.Background(), query, componentID).Scan(&s.ComponentID, &s.AvgCost, &s.ComputedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cost snapshot: %w", err)
	}
	return &s, nil
}

// Upsert écrase le snapshot du composant.
func (r *CostSnapshotRepo) Upsert(s *entity.CostComponentSnapshot) error {
	query := `
		INSERT INTO cost_component_snapshots (component_id, avg_cost, computed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (component_id)
		DO UPDATE SET avg_cost = EXCLUDED.avg_cost, computed_at = EXCLUDED.computed_at`
	_, err := r.q.Exec(context.Background(), query, s.ComponentID, s.AvgCost, s.ComputedAt)
	if err != nil {
		return fmt.Errorf("upsert cost snapshot: %w", err)
	}
	return nil
}
