package movement_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/movement"
)

const (
	depotID  = "loc-depot"
	pipcosID = "loc-pipcos"
	ofID     = "of-1"
)

// Table de vérité des règles structurelles: pour chaque type, les
// combinaisons valides et chaque champ manquant ou interdit.
func TestValidate_ReglesStructurelles(t *testing.T) {
	cases := []struct {
		name    string
		data    movement.Data
		wantErr bool
	}{
		{
			name: "ENTREE_DEPOT valide",
			data: movement.Data{Type: movement.TypeEntreeDepot, ItemType: entity.ItemTypeComponent, ToLocationID: depotID},
		},
		{
			name:    "ENTREE_DEPOT sans toLocation",
			data:    movement.Data{Type: movement.TypeEntreeDepot, ItemType: entity.ItemTypeComponent},
			wantErr: true,
		},
		{
			name:    "ENTREE_DEPOT avec fromLocation interdit",
			data:    movement.Data{Type: movement.TypeEntreeDepot, ItemType: entity.ItemTypeComponent, FromLocationID: pipcosID, ToLocationID: depotID},
			wantErr: true,
		},
		{
			name: "SORTIE_VERS_PIPCOS valide",
			data: movement.Data{Type: movement.TypeSortieVersPipcos, ItemType: entity.ItemTypeComponent, OfID: ofID, FromLocationID: depotID, ToLocationID: pipcosID},
		},
		{
			name:    "SORTIE_VERS_PIPCOS sans OF",
			data:    movement.Data{Type: movement.TypeSortieVersPipcos, ItemType: entity.ItemTypeComponent, FromLocationID: depotID, ToLocationID: pipcosID},
			wantErr: true,
		},
		{
			name:    "SORTIE_VERS_PIPCOS refuse un produit fini",
			data:    movement.Data{Type: movement.TypeSortieVersPipcos, ItemType: entity.ItemTypeProduct, OfID: ofID, FromLocationID: depotID, ToLocationID: pipcosID},
			wantErr: true,
		},
		{
			name: "PRODUCTION_FINI valide",
			data: movement.Data{Type: movement.TypeProductionFini, ItemType: entity.ItemTypeProduct, OfID: ofID, ToLocationID: pipcosID},
		},
		{
			name:    "PRODUCTION_FINI refuse un composant",
			data:    movement.Data{Type: movement.TypeProductionFini, ItemType: entity.ItemTypeComponent, OfID: ofID, ToLocationID: pipcosID},
			wantErr: true,
		},
		{
			name:    "PRODUCTION_FINI sans OF",
			data:    movement.Data{Type: movement.TypeProductionFini, ItemType: entity.ItemTypeProduct, ToLocationID: pipcosID},
			wantErr: true,
		},
		{
			name: "TRANSFERT_FINI_VERS_DEPOT valide",
			data: movement.Data{Type: movement.TypeTransfertFiniVersDepot, ItemType: entity.ItemTypeProduct, FromLocationID: pipcosID, ToLocationID: depotID},
		},
		{
			name:    "TRANSFERT_FINI_VERS_DEPOT refuse un composant",
			data:    movement.Data{Type: movement.TypeTransfertFiniVersDepot, ItemType: entity.ItemTypeComponent, FromLocationID: pipcosID, ToLocationID: depotID},
			wantErr: true,
		},
		{
			name: "RETOUR_DE_PIPCOS composant valide",
			data: movement.Data{Type: movement.TypeRetourDePipcos, ItemType: entity.ItemTypeComponent, OfID: ofID, FromLocationID: pipcosID, ToLocationID: depotID},
		},
		{
			name:    "RETOUR_DE_PIPCOS sans OF",
			data:    movement.Data{Type: movement.TypeRetourDePipcos, ItemType: entity.ItemTypeComponent, FromLocationID: pipcosID, ToLocationID: depotID},
			wantErr: true,
		},
		{
			name:    "type inconnu",
			data:    movement.Data{Type: "FUSION", ItemType: entity.ItemTypeComponent, ToLocationID: depotID},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := movement.Validate(tc.data)
			if tc.wantErr {
				require.Error(t, err)
				var structural *movement.StructuralError
				require.True(t, errors.As(err, &structural),
					"toute violation doit être une StructuralError")
				assert.Equal(t, tc.data.Type, structural.MovementType)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Le retour depuis le sous-traitant accepte les deux itemTypes: un
// retour peut porter sur du produit fini comme sur des composants.
func TestValidate_RetourDePipcosAccepteProduitFini(t *testing.T) {
	err := movement.Validate(movement.Data{
		Type:           movement.TypeRetourDePipcos,
		ItemType:       entity.ItemTypeProduct,
		OfID:           ofID,
		FromLocationID: pipcosID,
		ToLocationID:   depotID,
	})
	assert.NoError(t, err, "un retour de produit fini sous OF est accepté")
}
