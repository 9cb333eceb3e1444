// Package testutil fournit des implémentations en mémoire des ports de
// persistance pour les tests des cas d'usage, avec un TxRunner qui
// restaure l'état en cas d'erreur pour reproduire le rollback.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bikarpharma/suivi-stock/internal/domain/entity"
	"github.com/bikarpharma/suivi-stock/internal/domain/repository"
)

// DB état partagé des repositories en mémoire.
type DB struct {
	mu sync.Mutex

	Movements  []*entity.Movement
	Balances   map[string]*entity.StockBalance
	Snapshots  map[string]*entity.CostComponentSnapshot
	Receipts   []*entity.GoodsReceipt
	Orders     map[string]*entity.ManufacturingOrder
	Components map[string]*entity.Component
	Products   map[string]*entity.Product
	BomItems   map[string]*entity.BomItem
	Locations  map[string]*entity.Location
	Suppliers  map[string]*entity.Supplier
	Invoices   map[string]*entity.PurchaseInvoice
	Users      map[string]*entity.User
}

// NewDB crée une base vide.
func NewDB() *DB {
	return &DB{
		Balances:   map[string]*entity.StockBalance{},
		Snapshots:  map[string]*entity.CostComponentSnapshot{},
		Orders:     map[string]*entity.ManufacturingOrder{},
		Components: map[string]*entity.Component{},
		Products:   map[string]*entity.Product{},
		BomItems:   map[string]*entity.BomItem{},
		Locations:  map[string]*entity.Location{},
		Suppliers:  map[string]*entity.Supplier{},
		Invoices:   map[string]*entity.PurchaseInvoice{},
		Users:      map[string]*entity.User{},
	}
}

func balanceKey(itemType, itemID, locationID string) string {
	return itemType + "|" + itemID + "|" + locationID
}

func bomKey(productID, componentID string) string {
	return productID + "|" + componentID
}

// snapshotState copie l'état mutable touché par les transactions.
type snapshotState struct {
	movements []*entity.Movement
	balances  map[string]*entity.StockBalance
	snapshots map[string]*entity.CostComponentSnapshot
	receipts  []*entity.GoodsReceipt
	orders    map[string]*entity.ManufacturingOrder
}

func (db *DB) capture() snapshotState {
	s := snapshotState{
		movements: append([]*entity.Movement(nil), db.Movements...),
		balances:  map[string]*entity.StockBalance{},
		snapshots: map[string]*entity.CostComponentSnapshot{},
		receipts:  append([]*entity.GoodsReceipt(nil), db.Receipts...),
		orders:    map[string]*entity.ManufacturingOrder{},
	}
	for k, v := range db.Balances {
		cp := *v
		s.balances[k] = &cp
	}
	for k, v := range db.Snapshots {
		cp := *v
		s.snapshots[k] = &cp
	}
	for k, v := range db.Orders {
		cp := *v
		s.orders[k] = &cp
	}
	return s
}

func (db *DB) restore(s snapshotState) {
	db.Movements = s.movements
	db.Balances = s.balances
	db.Snapshots = s.snapshots
	db.Receipts = s.receipts
	db.Orders = s.orders
}

// TxRunner exécute les callbacks transactionnels sur la base en
// mémoire. Si le callback échoue, l'état antérieur est restauré.
type TxRunner struct {
	DB *DB
}

// Run voir stock.TxRunner.
func (r *TxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.StockBalanceRepository,
) error) error {
	r.DB.mu.Lock()
	defer r.DB.mu.Unlock()
	before := r.DB.capture()
	if err := fn(&MovementRepo{db: r.DB}, &BalanceRepo{db: r.DB}); err != nil {
		r.DB.restore(before)
		return err
	}
	return nil
}

// RunReceipt voir receipt.TxRunner.
func (r *TxRunner) RunReceipt(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.StockBalanceRepository,
	snapshotRepo repository.CostSnapshotRepository,
	receiptRepo repository.GoodsReceiptRepository,
) error) error {
	r.DB.mu.Lock()
	defer r.DB.mu.Unlock()
	before := r.DB.capture()
	if err := fn(&MovementRepo{db: r.DB}, &BalanceRepo{db: r.DB}, &SnapshotRepo{db: r.DB}, &ReceiptRepo{db: r.DB}); err != nil {
		r.DB.restore(before)
		return err
	}
	return nil
}

// RunProduction voir order.TxRunner.
func (r *TxRunner) RunProduction(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.StockBalanceRepository,
	ofRepo repository.ManufacturingOrderRepository,
) error) error {
	r.DB.mu.Lock()
	defer r.DB.mu.Unlock()
	before := r.DB.capture()
	if err := fn(&MovementRepo{db: r.DB}, &BalanceRepo{db: r.DB}, &OrderRepo{db: r.DB}); err != nil {
		r.DB.restore(before)
		return err
	}
	return nil
}

// FailingTxRunner refuse toute transaction; sert à vérifier qu'aucune
// écriture ne survit quand la transaction ne s'ouvre pas.
type FailingTxRunner struct {
	Err error
}

func (r *FailingTxRunner) Run(context.Context, func(repository.MovementRepository, repository.StockBalanceRepository) error) error {
	return r.Err
}

// ── Repositories ──────────────────────────────────────────────────────

// MovementRepo journal en mémoire.
type MovementRepo struct{ db *DB }

func NewMovementRepo(db *DB) *MovementRepo { return &MovementRepo{db: db} }

var _ repository.MovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.db.Movements = append(r.db.Movements, &cp)
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.db.Movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) ListByItem(itemType, itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.db.Movements {
		if m.ItemType != itemType || m.ItemID != itemID {
			continue
		}
		if !inRange(m.CreatedAt, from, to) {
			continue
		}
		out = append(out, m)
	}
	return paginate(out, limit, offset), nil
}

func (r *MovementRepo) ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.db.Movements {
		if m.FromLocationID != locationID && m.ToLocationID != locationID {
			continue
		}
		if !inRange(m.CreatedAt, from, to) {
			continue
		}
		out = append(out, m)
	}
	return paginate(out, limit, offset), nil
}

func (r *MovementRepo) ListByOF(ofID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.db.Movements {
		if m.OfID == ofID {
			out = append(out, m)
		}
	}
	return out, nil
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func paginate(in []*entity.Movement, limit, offset int) []*entity.Movement {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}

// BalanceRepo soldes en mémoire.
type BalanceRepo struct{ db *DB }

func NewBalanceRepo(db *DB) *BalanceRepo { return &BalanceRepo{db: db} }

var _ repository.StockBalanceRepository = (*BalanceRepo)(nil)

func (r *BalanceRepo) Get(itemType, itemID, locationID string) (*entity.StockBalance, error) {
	if b, ok := r.db.Balances[balanceKey(itemType, itemID, locationID)]; ok {
		cp := *b
		return &cp, nil
	}
	return &entity.StockBalance{
		ItemType:   itemType,
		ItemID:     itemID,
		LocationID: locationID,
		QtyOnHand:  decimal.Zero,
	}, nil
}

func (r *BalanceRepo) GetForUpdate(itemType, itemID, locationID string) (*entity.StockBalance, error) {
	return r.Get(itemType, itemID, locationID)
}

func (r *BalanceRepo) ApplyDelta(itemType, itemID, locationID string, delta decimal.Decimal) error {
	key := balanceKey(itemType, itemID, locationID)
	b, ok := r.db.Balances[key]
	if !ok {
		b = &entity.StockBalance{ItemType: itemType, ItemID: itemID, LocationID: locationID, QtyOnHand: decimal.Zero}
		r.db.Balances[key] = b
	}
	b.QtyOnHand = b.QtyOnHand.Add(delta)
	b.UpdatedAt = time.Now()
	return nil
}

func (r *BalanceRepo) ListByItem(itemType, itemID string) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	for _, b := range r.db.Balances {
		if b.ItemType == itemType && b.ItemID == itemID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

// SnapshotRepo snapshots de coût moyen en mémoire.
type SnapshotRepo struct{ db *DB }

func NewSnapshotRepo(db *DB) *SnapshotRepo { return &SnapshotRepo{db: db} }

var _ repository.CostSnapshotRepository = (*SnapshotRepo)(nil)

func (r *SnapshotRepo) Get(componentID string) (*entity.CostComponentSnapshot, error) {
	if s, ok := r.db.Snapshots[componentID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *SnapshotRepo) Upsert(s *entity.CostComponentSnapshot) error {
	cp := *s
	r.db.Snapshots[s.ComponentID] = &cp
	return nil
}

// ReceiptRepo réceptions en mémoire.
type ReceiptRepo struct{ db *DB }

func NewReceiptRepo(db *DB) *ReceiptRepo { return &ReceiptRepo{db: db} }

var _ repository.GoodsReceiptRepository = (*ReceiptRepo)(nil)

func (r *ReceiptRepo) Create(gr *entity.GoodsReceipt) error {
	cp := *gr
	r.db.Receipts = append(r.db.Receipts, &cp)
	return nil
}

func (r *ReceiptRepo) ListByInvoice(invoiceID string) ([]*entity.GoodsReceipt, error) {
	var out []*entity.GoodsReceipt
	for _, gr := range r.db.Receipts {
		if gr.PurchaseInvoiceID == invoiceID {
			out = append(out, gr)
		}
	}
	return out, nil
}

func (r *ReceiptRepo) ListByComponent(componentID string, limit, offset int) ([]*entity.GoodsReceipt, error) {
	var out []*entity.GoodsReceipt
	for _, gr := range r.db.Receipts {
		if gr.ComponentID == componentID {
			out = append(out, gr)
		}
	}
	return out, nil
}

// OrderRepo ordres de fabrication en mémoire.
type OrderRepo struct{ db *DB }

func NewOrderRepo(db *DB) *OrderRepo { return &OrderRepo{db: db} }

var _ repository.ManufacturingOrderRepository = (*OrderRepo)(nil)

func (r *OrderRepo) Create(of *entity.ManufacturingOrder) error {
	cp := *of
	r.db.Orders[of.ID] = &cp
	return nil
}

func (r *OrderRepo) GetByID(id string) (*entity.ManufacturingOrder, error) {
	if of, ok := r.db.Orders[id]; ok {
		cp := *of
		return &cp, nil
	}
	return nil, nil
}

func (r *OrderRepo) GetByCode(ofCode string) (*entity.ManufacturingOrder, error) {
	for _, of := range r.db.Orders {
		if of.OfCode == ofCode {
			cp := *of
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *OrderRepo) List(limit, offset int) ([]*entity.ManufacturingOrder, error) {
	var out []*entity.ManufacturingOrder
	for _, of := range r.db.Orders {
		cp := *of
		out = append(out, &cp)
	}
	return out, nil
}

func (r *OrderRepo) RecordProduction(id string, qty decimal.Decimal, lotFini, status string) error {
	of, ok := r.db.Orders[id]
	if !ok {
		return nil
	}
	of.QtyProduite = of.QtyProduite.Add(qty)
	of.LotFini = lotFini
	of.Status = status
	of.UpdatedAt = time.Now()
	return nil
}

func (r *OrderRepo) UpdateStatus(id string, status string) error {
	if of, ok := r.db.Orders[id]; ok {
		of.Status = status
		of.UpdatedAt = time.Now()
	}
	return nil
}

// ComponentRepo catalogue composants en mémoire.
type ComponentRepo struct{ db *DB }

func NewComponentRepo(db *DB) *ComponentRepo { return &ComponentRepo{db: db} }

var _ repository.ComponentRepository = (*ComponentRepo)(nil)

func (r *ComponentRepo) Create(c *entity.Component) error {
	cp := *c
	r.db.Components[c.ID] = &cp
	return nil
}

func (r *ComponentRepo) GetByID(id string) (*entity.Component, error) {
	if c, ok := r.db.Components[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *ComponentRepo) GetByCode(code string) (*entity.Component, error) {
	for _, c := range r.db.Components {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ComponentRepo) Update(c *entity.Component) error {
	cp := *c
	r.db.Components[c.ID] = &cp
	return nil
}

func (r *ComponentRepo) ListActive(limit, offset int) ([]*entity.Component, error) {
	var out []*entity.Component
	for _, c := range r.db.Components {
		if c.Active {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *ComponentRepo) SetActive(id string, active bool) error {
	if c, ok := r.db.Components[id]; ok {
		c.Active = active
	}
	return nil
}

// ProductRepo catalogue produits en mémoire.
type ProductRepo struct{ db *DB }

func NewProductRepo(db *DB) *ProductRepo { return &ProductRepo{db: db} }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.db.Products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.db.Products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.db.Products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.db.Products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) ListActive(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.db.Products {
		if p.Active {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *ProductRepo) SetActive(id string, active bool) error {
	if p, ok := r.db.Products[id]; ok {
		p.Active = active
	}
	return nil
}

// BomRepo nomenclature en mémoire.
type BomRepo struct{ db *DB }

func NewBomRepo(db *DB) *BomRepo { return &BomRepo{db: db} }

var _ repository.BomRepository = (*BomRepo)(nil)

func (r *BomRepo) Upsert(item *entity.BomItem) error {
	cp := *item
	r.db.BomItems[bomKey(item.ProductID, item.ComponentID)] = &cp
	return nil
}

func (r *BomRepo) ListByProduct(productID string) ([]*entity.BomItem, error) {
	var out []*entity.BomItem
	for _, it := range r.db.BomItems {
		if it.ProductID == productID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *BomRepo) Delete(productID, componentID string) error {
	delete(r.db.BomItems, bomKey(productID, componentID))
	return nil
}

// LocationRepo emplacements en mémoire.
type LocationRepo struct{ db *DB }

func NewLocationRepo(db *DB) *LocationRepo { return &LocationRepo{db: db} }

var _ repository.LocationRepository = (*LocationRepo)(nil)

func (r *LocationRepo) Create(l *entity.Location) error {
	cp := *l
	r.db.Locations[l.ID] = &cp
	return nil
}

func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	if l, ok := r.db.Locations[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *LocationRepo) GetByCode(code string) (*entity.Location, error) {
	for _, l := range r.db.Locations {
		if l.Code == code {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *LocationRepo) List() ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.db.Locations {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

// SupplierRepo fournisseurs en mémoire.
type SupplierRepo struct{ db *DB }

func NewSupplierRepo(db *DB) *SupplierRepo { return &SupplierRepo{db: db} }

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

func (r *SupplierRepo) Create(s *entity.Supplier) error {
	cp := *s
	r.db.Suppliers[s.ID] = &cp
	return nil
}

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	if s, ok := r.db.Suppliers[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.db.Suppliers {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

// InvoiceRepo factures d'achat en mémoire.
type InvoiceRepo struct{ db *DB }

func NewInvoiceRepo(db *DB) *InvoiceRepo { return &InvoiceRepo{db: db} }

var _ repository.PurchaseInvoiceRepository = (*InvoiceRepo)(nil)

func (r *InvoiceRepo) Create(inv *entity.PurchaseInvoice) error {
	cp := *inv
	r.db.Invoices[inv.ID] = &cp
	return nil
}

func (r *InvoiceRepo) GetByID(id string) (*entity.PurchaseInvoice, error) {
	if inv, ok := r.db.Invoices[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}

func (r *InvoiceRepo) GetBySupplierAndNo(supplierID, invoiceNo string) (*entity.PurchaseInvoice, error) {
	for _, inv := range r.db.Invoices {
		if inv.SupplierID == supplierID && inv.InvoiceNo == invoiceNo {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *InvoiceRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseInvoice, error) {
	var out []*entity.PurchaseInvoice
	for _, inv := range r.db.Invoices {
		if inv.SupplierID == supplierID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

// UserRepo utilisateurs en mémoire.
type UserRepo struct{ db *DB }

func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(u *entity.User) error {
	cp := *u
	r.db.Users[u.ID] = &cp
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.db.Users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.db.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
