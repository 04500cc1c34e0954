package controller

import (
	"context"
	"errors"
	"sync"

	"exoticworld/models"

	"github.com/shopspring/decimal"
)

var errOffline = errors.New("Error de conexión")

type fakeCatalog struct {
	mu       sync.Mutex
	products []models.Product
	err      error
	queries  []string
	calls    int
}

func (f *fakeCatalog) Products(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeCatalog) ProductByID(ctx context.Context, id int) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, errors.New("fetch product: unexpected status 404")
}

func (f *fakeCatalog) SearchByName(ctx context.Context, name string) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, name)
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeCatalog) searchQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

// fakeCart keeps cart lines in memory keyed by product id, mimicking the
// service's add/decrement/clear rules closely enough for the controller.
type fakeCart struct {
	mu       sync.Mutex
	catalog  map[int]models.Product
	lines    map[int]int
	order    []int
	itemsErr error
	totalErr error
	writeErr error
	users    []string
	itemsHit int
}

func newFakeCart(products ...models.Product) *fakeCart {
	f := &fakeCart{catalog: map[int]models.Product{}, lines: map[int]int{}}
	for _, p := range products {
		f.catalog[p.ID] = p
	}
	return f
}

func (f *fakeCart) record(userID string) {
	f.users = append(f.users, userID)
}

func (f *fakeCart) set(productID, qty int) {
	if _, ok := f.lines[productID]; !ok {
		f.order = append(f.order, productID)
	}
	f.lines[productID] = qty
}

func (f *fakeCart) drop(productID int) {
	delete(f.lines, productID)
	for i, id := range f.order {
		if id == productID {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

func (f *fakeCart) item(productID int) *models.CartItem {
	return &models.CartItem{ID: productID, Quantity: f.lines[productID], ProductID: productID, Product: f.catalog[productID]}
}

func (f *fakeCart) AddItem(ctx context.Context, userID string, productID, quantity int) (*models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(userID)
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.set(productID, f.lines[productID]+quantity)
	return f.item(productID), nil
}

func (f *fakeCart) DecrementItem(ctx context.Context, userID string, productID int) (*models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(userID)
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	if f.lines[productID] <= 1 {
		f.drop(productID)
		return nil, nil
	}
	f.lines[productID]--
	return f.item(productID), nil
}

func (f *fakeCart) UpdateQuantity(ctx context.Context, userID string, productID, quantity int) (*models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(userID)
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.set(productID, quantity)
	return f.item(productID), nil
}

func (f *fakeCart) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(userID)
	f.itemsHit++
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	items := []models.CartItem{}
	for _, id := range f.order {
		items = append(items, *f.item(id))
	}
	return items, nil
}

func (f *fakeCart) Total(ctx context.Context, userID string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.totalErr != nil {
		return decimal.Zero, f.totalErr
	}
	total := decimal.Zero
	for id, qty := range f.lines {
		total = total.Add(f.catalog[id].Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total, nil
}

func (f *fakeCart) Clear(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(userID)
	if f.writeErr != nil {
		return f.writeErr
	}
	f.lines = map[int]int{}
	f.order = nil
	return nil
}

func (f *fakeCart) RemoveItem(ctx context.Context, userID string, productID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(userID)
	if f.writeErr != nil {
		return f.writeErr
	}
	f.drop(productID)
	return nil
}

func (f *fakeCart) itemsCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.itemsHit
}

func (f *fakeCart) usersSeen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.users...)
}

type failingPrefs struct{}

func (failingPrefs) UserID(ctx context.Context) (string, error) { return "", errOffline }
func (failingPrefs) SetUserID(ctx context.Context, userID string) error {
	return errOffline
}
func (failingPrefs) Clear(ctx context.Context) error { return errOffline }
