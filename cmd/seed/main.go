package main

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bikarpharma/suivi-stock/internal/application/auth"
	"github.com/bikarpharma/suivi-stock/internal/application/catalog"
	appcosting "github.com/bikarpharma/suivi-stock/internal/application/costing"
	"github.com/bikarpharma/suivi-stock/internal/application/dto"
	"github.com/bikarpharma/suivi-stock/internal/application/order"
	"github.com/bikarpharma/suivi-stock/internal/application/receipt"
	"github.com/bikarpharma/suivi-stock/internal/application/stock"
	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/movement"
	"github.com/bikarpharma/suivi-stock/internal/infrastructure/postgres"
	"github.com/bikarpharma/suivi-stock/pkg/config"
	"github.com/bikarpharma/suivi-stock/pkg/logger"
)

// Seed du scénario de référence BICAR200: emplacements, six composants
// reçus au dépôt, produit fini avec sa nomenclature, OF-2025-002 avec
// sorties vers Pipcos, production, transfert au dépôt et retours.
// Passe par les cas d'usage pour que chaque mouvement suive le circuit
// normal (journal + soldes + snapshots).
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("chargement de la configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	componentRepo := postgres.NewComponentRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	bomRepo := postgres.NewBomRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	balanceRepo := postgres.NewStockBalanceRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	snapshotRepo := postgres.NewCostSnapshotRepository(pool)
	ofRepo := postgres.NewManufacturingOrderRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	invoiceRepo := postgres.NewPurchaseInvoiceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	locationUC := catalog.NewLocationUseCase(locationRepo)
	componentUC := catalog.NewComponentUseCase(componentRepo)
	productUC := catalog.NewProductUseCase(productRepo, bomRepo, componentRepo)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo, invoiceRepo)
	stockUC := stock.NewUseCase(txRunner, movementRepo, balanceRepo)
	receiptUC := receipt.NewUseCase(txRunner, componentRepo, invoiceRepo, locationRepo, balanceRepo, snapshotRepo)
	orderUC := order.NewUseCase(txRunner, ofRepo, productRepo, locationRepo)
	costingUC := appcosting.NewUseCase(productRepo, componentRepo, bomRepo, snapshotRepo, ofRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Garde-fou: le seed n'est pas rejouable.
	if existing, err := locationRepo.GetByCode(entity.LocationDepot); err != nil {
		log.Fatal().Err(err).Msg("vérification du seed")
	} else if existing != nil {
		log.Info().Msg("seed déjà appliqué, rien à faire")
		return
	}

	log.Info().Msg("création des emplacements")
	depot, err := locationUC.Create(entity.LocationDepot, "Dépôt Bikarpharma")
	if err != nil {
		log.Fatal().Err(err).Msg("emplacement DEPOT")
	}
	pipcos, err := locationUC.Create(entity.LocationPipcos, "Pipcos (Sous-traitant)")
	if err != nil {
		log.Fatal().Err(err).Msg("emplacement PIPCOS")
	}

	log.Info().Msg("création des composants")
	seedComponents := []struct {
		Code string
		Name string
		Cost string
		Qty  int64
	}{
		{"FLACON200", "Flacon 200ml", "0.28", 7000},
		{"ETIQ_BICAR200", "Étiquette BICAR 200", "0.05", 10000},
		{"NOTICE_BICAR", "Notice BICAR", "0.04", 10000},
		{"ETUI_BICAR200", "Étui BICAR 200", "0.12", 7000},
		{"BOUCHON_PP28", "Bouchon PP28", "0.09", 10000},
		{"GOBLET_DOSEUR", "Gobelet doseur", "0.07", 7000},
	}
	type seededComponent struct {
		Component  *entity.Component
		InitialQty decimal.Decimal
		UnitCost   decimal.Decimal
	}
	components := make([]seededComponent, 0, len(seedComponents))
	for _, sc := range seedComponents {
		cost := decimal.RequireFromString(sc.Cost)
		component, err := componentUC.Create(catalog.CreateComponentInput{
			Code:         sc.Code,
			Name:         sc.Name,
			UOM:          "pièce",
			CoutStandard: cost,
		})
		if err != nil {
			log.Fatal().Err(err).Str("code", sc.Code).Msg("composant")
		}
		components = append(components, seededComponent{
			Component:  component,
			InitialQty: decimal.NewFromInt(sc.Qty),
			UnitCost:   cost,
		})
	}

	log.Info().Msg("création du fournisseur et de la facture")
	supplier, err := supplierUC.CreateSupplier(catalog.CreateSupplierInput{
		Name:    "Fournisseur Principal",
		Contact: "Contact Principal",
		Email:   "contact@fournisseur.tn",
		Phone:   "+216 71 123 456",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("fournisseur")
	}
	invoice, err := supplierUC.CreateInvoice(catalog.CreateInvoiceInput{
		SupplierID:  supplier.ID,
		InvoiceNo:   "FACT-2025-001",
		InvoiceDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Currency:    "TND",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("facture")
	}

	log.Info().Msg("réceptions des stocks initiaux au dépôt")
	for _, sc := range components {
		if _, err := receiptUC.CreateGoodsReceipt(ctx, receipt.Input{
			PurchaseInvoiceID: invoice.ID,
			ComponentID:       sc.Component.ID,
			Lot:               "LOT-2025-001",
			Qty:               sc.InitialQty,
			UnitCost:          sc.UnitCost,
		}); err != nil {
			log.Fatal().Err(err).Str("code", sc.Component.Code).Msg("réception")
		}
	}

	log.Info().Msg("création du produit BICAR200 et de sa nomenclature")
	product, err := productUC.Create(catalog.CreateProductInput{
		Code:                   "BICAR200",
		Name:                   "BICAR 200ml",
		UOM:                    "pièce",
		CoutSousTraitanceUnite: decimal.RequireFromString("0.25"),
		CoutAutresUnite:        decimal.Zero,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("produit")
	}
	for _, sc := range components {
		if _, err := productUC.SetBomItem(product.ID, sc.Component.ID, decimal.NewFromInt(1)); err != nil {
			log.Fatal().Err(err).Str("code", sc.Component.Code).Msg("nomenclature")
		}
	}

	log.Info().Msg("création de l'OF-2025-002")
	of, err := orderUC.Create(order.CreateInput{
		OfCode:        "OF-2025-002",
		ProductID:     product.ID,
		QtyCommandee:  decimal.NewFromInt(5000),
		DateLancement: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("OF")
	}

	log.Info().Msg("sortie de 5000 unités de chaque composant vers Pipcos")
	for _, sc := range components {
		if _, err := stockUC.CreateMovement(ctx, stock.MovementInput{
			Type:           movement.TypeSortieVersPipcos,
			ItemType:       entity.ItemTypeComponent,
			ItemID:         sc.Component.ID,
			Lot:            "LOT-2025-001",
			Qty:            decimal.NewFromInt(5000),
			FromLocationID: depot.ID,
			ToLocationID:   pipcos.ID,
			OfID:           of.ID,
		}); err != nil {
			log.Fatal().Err(err).Str("code", sc.Component.Code).Msg("sortie vers Pipcos")
		}
	}

	log.Info().Msg("production de 4900 BICAR200")
	if _, err := orderUC.RecordProduction(ctx, order.ProductionInput{
		OfID:      of.ID,
		ProductID: product.ID,
		Qty:       decimal.NewFromInt(4900),
		LotFini:   "LOT-BICAR200-001",
	}); err != nil {
		log.Fatal().Err(err).Msg("production")
	}

	// Consommation des composants chez le sous-traitant: non journalisée
	// (le journal ne porte que les transferts entre emplacements), le
	// solde Pipcos est décrémenté directement.
	for _, sc := range components {
		if err := balanceRepo.ApplyDelta(entity.ItemTypeComponent, sc.Component.ID, pipcos.ID, decimal.NewFromInt(-4900)); err != nil {
			log.Fatal().Err(err).Str("code", sc.Component.Code).Msg("consommation Pipcos")
		}
	}

	log.Info().Msg("transfert de 4900 BICAR200 vers le dépôt")
	if _, err := stockUC.CreateMovement(ctx, stock.MovementInput{
		Type:           movement.TypeTransfertFiniVersDepot,
		ItemType:       entity.ItemTypeProduct,
		ItemID:         product.ID,
		Lot:            "LOT-BICAR200-001",
		Qty:            decimal.NewFromInt(4900),
		FromLocationID: pipcos.ID,
		ToLocationID:   depot.ID,
	}); err != nil {
		log.Fatal().Err(err).Msg("transfert fini")
	}

	log.Info().Msg("retour de 40 unités de chaque composant depuis Pipcos")
	for _, sc := range components {
		if _, err := stockUC.CreateMovement(ctx, stock.MovementInput{
			Type:           movement.TypeRetourDePipcos,
			ItemType:       entity.ItemTypeComponent,
			ItemID:         sc.Component.ID,
			Lot:            "LOT-2025-001",
			Qty:            decimal.NewFromInt(40),
			FromLocationID: pipcos.ID,
			ToLocationID:   depot.ID,
			OfID:           of.ID,
		}); err != nil {
			log.Fatal().Err(err).Str("code", sc.Component.Code).Msg("retour de Pipcos")
		}
	}

	log.Info().Msg("création de l'utilisateur admin")
	if _, err := authUC.Register(dto.RegisterRequest{
		Email:    "admin@bikarpharma.com",
		Password: "changeme-admin",
		Name:     "Administrateur",
		Role:     entity.RoleAdmin,
	}); err != nil {
		log.Fatal().Err(err).Msg("utilisateur admin")
	}

	// Vérifications du scénario.
	for _, sc := range components {
		expectedDepot := sc.InitialQty.Sub(decimal.NewFromInt(5000)).Add(decimal.NewFromInt(40))
		gotDepot, err := stockUC.GetStockByLocation(entity.ItemTypeComponent, sc.Component.ID, depot.ID)
		if err != nil {
			log.Fatal().Err(err).Msg("lecture du solde dépôt")
		}
		gotPipcos, err := stockUC.GetStockByLocation(entity.ItemTypeComponent, sc.Component.ID, pipcos.ID)
		if err != nil {
			log.Fatal().Err(err).Msg("lecture du solde Pipcos")
		}
		log.Info().
			Str("composant", sc.Component.Code).
			Str("depot", gotDepot.String()).
			Str("depot_attendu", expectedDepot.String()).
			Str("pipcos", gotPipcos.String()).
			Str("pipcos_attendu", "60").
			Msg("solde composant")
	}

	unitCost, err := costingUC.CalculateProductUnitCost(product.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("coût unitaire")
	}
	ofCost, err := costingUC.CalculateOFCost(of.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("coût OF")
	}
	log.Info().
		Str("cout_unitaire", unitCost.StringFixed(3)).
		Str("cout_unitaire_attendu", "0.900").
		Str("cout_of_total", ofCost.TotalCost.StringFixed(3)).
		Str("cout_of_attendu", "4410.000").
		Msg("valorisation BICAR200")

	log.Info().Msg("seed terminé")
}
