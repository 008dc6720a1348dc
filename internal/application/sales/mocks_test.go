package sales_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dukapos/pos-api/internal/application/sales"
	"github.com/dukapos/pos-api/internal/domain"
	"github.com/dukapos/pos-api/internal/domain/entity"
	"github.com/dukapos/pos-api/internal/domain/pricing"
	"github.com/dukapos/pos-api/internal/domain/repository"
)

// memStore in-memory backing state shared by the mock repositories. The
// TxRunner mock snapshots it before each transaction and restores it on
// failure, mirroring the rollback guarantees of the real runner.
type memStore struct {
	mu        sync.Mutex
	items     map[string]*entity.Item
	customers map[string]*entity.Customer
	sales     map[string]*entity.Sale
	saleItems map[string][]*entity.SaleItem
	invTxs    []*entity.InventoryTransaction
	custTxs   []*entity.CustomerTransaction
}

func newMemStore() *memStore {
	return &memStore{
		items:     make(map[string]*entity.Item),
		customers: make(map[string]*entity.Customer),
		sales:     make(map[string]*entity.Sale),
		saleItems: make(map[string][]*entity.SaleItem),
	}
}

func copyItem(i *entity.Item) *entity.Item {
	c := *i
	return &c
}

func copySale(s *entity.Sale) *entity.Sale {
	c := *s
	return &c
}

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	for id, it := range s.items {
		snap.items[id] = copyItem(it)
	}
	for id, c := range s.customers {
		cc := *c
		snap.customers[id] = &cc
	}
	for id, sa := range s.sales {
		snap.sales[id] = copySale(sa)
	}
	for id, lines := range s.saleItems {
		cp := make([]*entity.SaleItem, len(lines))
		for i, l := range lines {
			lc := *l
			cp[i] = &lc
		}
		snap.saleItems[id] = cp
	}
	snap.invTxs = append([]*entity.InventoryTransaction(nil), s.invTxs...)
	snap.custTxs = append([]*entity.CustomerTransaction(nil), s.custTxs...)
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.items = snap.items
	s.customers = snap.customers
	s.sales = snap.sales
	s.saleItems = snap.saleItems
	s.invTxs = snap.invTxs
	s.custTxs = snap.custTxs
}

// ledgerSum derived balance for a customer, same rule as the SQL SUM.
func (s *memStore) ledgerSum(customerID string) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range s.custTxs {
		if tx.CustomerID == customerID {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// stockOutMinusIn reconciles an item's audit trail: Σ STOCK_OUT − Σ STOCK_IN.
func (s *memStore) stockOutMinusIn(itemID string) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range s.invTxs {
		if tx.ItemID != itemID {
			continue
		}
		switch tx.Type {
		case entity.TxTypeStockOut:
			sum = sum.Add(tx.Quantity)
		case entity.TxTypeStockIn:
			sum = sum.Sub(tx.Quantity)
		}
	}
	return sum
}

// mockItemRepo

type mockItemRepo struct{ s *memStore }

func (r *mockItemRepo) Create(item *entity.Item) error {
	r.s.items[item.ID] = copyItem(item)
	return nil
}

func (r *mockItemRepo) GetByID(id string) (*entity.Item, error) {
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return copyItem(item), nil
}

// GetForUpdate returns a copy; writes only land via UpdateQuantity/Update, as
// with the SQL implementation. Serialization is provided by the runner mutex.
func (r *mockItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *mockItemRepo) Update(item *entity.Item) error {
	if _, ok := r.s.items[item.ID]; !ok {
		return domain.ErrItemNotFound
	}
	r.s.items[item.ID] = copyItem(item)
	return nil
}

func (r *mockItemRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	item, ok := r.s.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	item.Quantity = quantity
	return nil
}

func (r *mockItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(r.s.items))
	for _, it := range r.s.items {
		out = append(out, copyItem(it))
	}
	return out, nil
}

func (r *mockItemRepo) ListLowStock() ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.s.items {
		if it.LowOnStock() {
			out = append(out, copyItem(it))
		}
	}
	return out, nil
}

// mockInvTxRepo

type mockInvTxRepo struct{ s *memStore }

func (r *mockInvTxRepo) Create(tx *entity.InventoryTransaction) error {
	c := *tx
	r.s.invTxs = append(r.s.invTxs, &c)
	return nil
}

func (r *mockInvTxRepo) ListByItem(itemID string, limit int) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, tx := range r.s.invTxs {
		if tx.ItemID == itemID {
			c := *tx
			out = append(out, &c)
		}
	}
	return out, nil
}

// mockCustomerRepo

type mockCustomerRepo struct{ s *memStore }

func (r *mockCustomerRepo) Create(c *entity.Customer) error {
	cc := *c
	r.s.customers[c.ID] = &cc
	return nil
}

func (r *mockCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *mockCustomerRepo) FindByPhone(phone string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.Phone == phone {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

func (r *mockCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		cc := *c
		out = append(out, &cc)
	}
	return out, nil
}

// mockCustTxRepo

type mockCustTxRepo struct{ s *memStore }

func (r *mockCustTxRepo) Create(tx *entity.CustomerTransaction) error {
	c := *tx
	r.s.custTxs = append(r.s.custTxs, &c)
	return nil
}

func (r *mockCustTxRepo) ListByCustomer(customerID string, limit int) ([]*entity.CustomerTransaction, error) {
	var out []*entity.CustomerTransaction
	for _, tx := range r.s.custTxs {
		if tx.CustomerID == customerID {
			c := *tx
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *mockCustTxRepo) SumByCustomer(customerID string) (decimal.Decimal, error) {
	return r.s.ledgerSum(customerID), nil
}

// mockSaleRepo

type mockSaleRepo struct{ s *memStore }

func (r *mockSaleRepo) Create(sale *entity.Sale) error {
	r.s.sales[sale.ID] = copySale(sale)
	return nil
}

func (r *mockSaleRepo) CreateItem(item *entity.SaleItem) error {
	c := *item
	r.s.saleItems[item.SaleID] = append(r.s.saleItems[item.SaleID], &c)
	return nil
}

func (r *mockSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return copySale(sale), nil
}

func (r *mockSaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *mockSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	lines := r.s.saleItems[saleID]
	out := make([]*entity.SaleItem, len(lines))
	for i, l := range lines {
		c := *l
		out[i] = &c
	}
	return out, nil
}

func (r *mockSaleRepo) Update(sale *entity.Sale) error {
	if _, ok := r.s.sales[sale.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.sales[sale.ID] = copySale(sale)
	return nil
}

func (r *mockSaleRepo) DeleteItemsBySaleID(saleID string) error {
	delete(r.s.saleItems, saleID)
	return nil
}

func (r *mockSaleRepo) Delete(id string) error {
	delete(r.s.sales, id)
	delete(r.s.saleItems, id)
	return nil
}

func (r *mockSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0, len(r.s.sales))
	for _, s := range r.s.sales {
		out = append(out, copySale(s))
	}
	return out, nil
}

// mockTxRunner serializes transactions with the store mutex (standing in for
// row locks) and restores the pre-transaction snapshot when the callback
// fails, so a failed sale leaves no partial writes behind.
type mockTxRunner struct{ s *memStore }

var _ sales.TxRunner = (*mockTxRunner)(nil)

func (t *mockTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	invTxRepo repository.InventoryTransactionRepository,
	customerRepo repository.CustomerRepository,
	custTxRepo repository.CustomerTransactionRepository,
	saleRepo repository.SaleRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	snap := t.s.snapshot()
	err := fn(
		&mockItemRepo{s: t.s},
		&mockInvTxRepo{s: t.s},
		&mockCustomerRepo{s: t.s},
		&mockCustTxRepo{s: t.s},
		&mockSaleRepo{s: t.s},
	)
	if err != nil {
		t.s.restore(snap)
	}
	return err
}

// fixture wires a store, mocks and both sale use cases for a test.
type fixture struct {
	store    *memStore
	createUC *sales.CreateSaleUseCase
	updateUC *sales.UpdateSaleUseCase
}

func newFixture(policy pricing.WholeUnitPolicy) *fixture {
	store := newMemStore()
	runner := &mockTxRunner{s: store}
	return &fixture{
		store: store,
		createUC: sales.NewCreateSaleUseCase(
			runner,
			&mockSaleRepo{s: store},
			&mockCustomerRepo{s: store},
			&mockItemRepo{s: store},
			policy,
		),
		updateUC: sales.NewUpdateSaleUseCase(runner, policy),
	}
}
