package entity

import "time"

// Codes des deux emplacements opérationnels.
const (
	LocationDepot  = "DEPOT"  // dépôt Bikarpharma
	LocationPipcos = "PIPCOS" // site du sous-traitant
)

// Location représente un point de stockage identifié par un code stable.
type Location struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time
}
