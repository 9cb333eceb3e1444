package repository

import "github.com/bikarpharma/suivi-stock/internal/domain/entity"

// CostSnapshotRepository est le port de persistance des snapshots de
// coût moyen pondéré (une ligne par composant).
type CostSnapshotRepository interface {
	// Get retourne nil sans erreur si aucun snapshot n'existe encore.
	Get(componentID string) (*entity.CostComponentSnapshot, error)
	// Upsert crée ou écrase le snapshot et rafraîchit ComputedAt.
	Upsert(s *entity.CostComponentSnapshot) error
}
