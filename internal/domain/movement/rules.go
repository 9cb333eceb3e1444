// Package movement porte les types de mouvement et leurs règles
// structurelles. L'ensemble des types est fermé: ajouter un type, c'est
// ajouter une entrée explicite dans Validate.
package movement

import (
	"fmt"

	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
)

// Types de mouvement du cycle de sous-traitance.
const (
	TypeEntreeDepot            = "ENTREE_DEPOT"
	TypeSortieVersPipcos       = "SORTIE_VERS_PIPCOS"
	TypeProductionFini         = "PRODUCTION_FINI"
	TypeTransfertFiniVersDepot = "TRANSFERT_FINI_VERS_DEPOT"
	TypeRetourDePipcos         = "RETOUR_DE_PIPCOS"
)

// StructuralError décrit une règle structurelle violée pour un type de
// mouvement donné. Le mouvement n'est jamais créé.
type StructuralError struct {
	MovementType string
	Rule         string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: %s", e.MovementType, e.Rule)
}

// Data est la partie d'un mouvement soumise aux règles structurelles.
type Data struct {
	Type           string
	ItemType       string
	OfID           string
	FromLocationID string
	ToLocationID   string
}

// Validate applique la règle structurelle du type: champs requis,
// champs interdits et contrainte d'itemType. Switch exhaustif sur
// l'ensemble fermé des types.
func Validate(d Data) error {
	switch d.Type {
	case TypeEntreeDepot:
		if d.ToLocationID == "" || d.FromLocationID != "" {
			return &StructuralError{d.Type, "toLocation requis, fromLocation doit être vide"}
		}
	case TypeSortieVersPipcos:
		if d.OfID == "" || d.FromLocationID == "" || d.ToLocationID == "" {
			return &StructuralError{d.Type, "ofId, fromLocation et toLocation requis"}
		}
		if d.ItemType != entity.ItemTypeComponent {
			return &StructuralError{d.Type, "itemType doit être COMPONENT"}
		}
	case TypeProductionFini:
		if d.OfID == "" || d.ToLocationID == "" {
			return &StructuralError{d.Type, "ofId et toLocation requis"}
		}
		if d.ItemType != entity.ItemTypeProduct {
			return &StructuralError{d.Type, "itemType doit être PRODUCT"}
		}
	case TypeTransfertFiniVersDepot:
		if d.FromLocationID == "" || d.ToLocationID == "" {
			return &StructuralError{d.Type, "fromLocation et toLocation requis"}
		}
		if d.ItemType != entity.ItemTypeProduct {
			return &StructuralError{d.Type, "itemType doit être PRODUCT"}
		}
	case TypeRetourDePipcos:
		// Pas de contrainte d'itemType: un retour peut porter sur un
		// composant comme sur du produit fini.
		if d.OfID == "" || d.FromLocationID == "" || d.ToLocationID == "" {
			return &StructuralError{d.Type, "ofId, fromLocation et toLocation requis"}
		}
	default:
		return &StructuralError{d.Type, "type de mouvement inconnu"}
	}
	return nil
}
