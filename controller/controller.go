// Package controller owns the client-side state of the catalog and cart and
// sequences every fetch, mutation and reconciliation against the service.
//
// Each operation publishes its progress into observable slots (see package
// state) and also returns the failure, if any, to the caller. After every
// successful cart mutation the cart is re-fetched from the service instead
// of being patched locally, so the server stays the single source of truth.
// Operations may run concurrently; overlapping reloads are not serialized
// and the last response to land is what observers see.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"exoticworld/models"
	"exoticworld/preferences"
	"exoticworld/state"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoUser is returned by cart operations before an identity is resolved.
	ErrNoUser = errors.New("no user identity resolved")
	// ErrClosed is delivered by Go after Close.
	ErrClosed = errors.New("controller closed")
)

// Catalog is the product side of the repository layer.
type Catalog interface {
	Products(ctx context.Context) ([]models.Product, error)
	ProductByID(ctx context.Context, id int) (*models.Product, error)
	SearchByName(ctx context.Context, name string) ([]models.Product, error)
}

// Cart is the cart side of the repository layer.
type Cart interface {
	AddItem(ctx context.Context, userID string, productID, quantity int) (*models.CartItem, error)
	DecrementItem(ctx context.Context, userID string, productID int) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID string, productID, quantity int) (*models.CartItem, error)
	Items(ctx context.Context, userID string) ([]models.CartItem, error)
	Total(ctx context.Context, userID string) (decimal.Decimal, error)
	Clear(ctx context.Context, userID string) error
	RemoveItem(ctx context.Context, userID string, productID int) error
}

type Controller struct {
	catalog Catalog
	cart    Cart
	prefs   preferences.Store

	products *state.Slot[state.UI[[]models.Product]]
	search   *state.Slot[state.UI[[]models.Product]]
	items    *state.Slot[state.UI[[]models.CartItem]]
	detail   *state.Slot[state.UI[models.Product]]
	total    *state.Slot[decimal.Decimal]
	errMsg   *state.Slot[string]
	userID   *state.Slot[string]

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
	tasks  sync.WaitGroup
}

// New creates a controller with every slot Idle, a zero total and no
// resolved identity. Call Start to resolve the identity and load data.
func New(catalog Catalog, cart Cart, prefs preferences.Store) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		catalog:  catalog,
		cart:     cart,
		prefs:    prefs,
		products: state.NewSlot(state.Idle[[]models.Product]()),
		search:   state.NewSlot(state.Idle[[]models.Product]()),
		items:    state.NewSlot(state.Idle[[]models.CartItem]()),
		detail:   state.NewSlot(state.Idle[models.Product]()),
		total:    state.NewSlot(decimal.Zero),
		errMsg:   state.NewSlot(""),
		userID:   state.NewSlot(""),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (c *Controller) Products() state.View[state.UI[[]models.Product]] { return c.products }
func (c *Controller) SearchResults() state.View[state.UI[[]models.Product]] { return c.search }
func (c *Controller) CartItems() state.View[state.UI[[]models.CartItem]] { return c.items }
func (c *Controller) ProductDetail() state.View[state.UI[models.Product]] { return c.detail }
func (c *Controller) Total() state.View[decimal.Decimal]                  { return c.total }

// ErrorMessage is the transient, consume-once notice; "" means none.
func (c *Controller) ErrorMessage() state.View[string] { return c.errMsg }

// UserID is the resolved identity; "" until Start has run.
func (c *Controller) UserID() state.View[string] { return c.userID }

// Start resolves the user identity, then loads the catalog and the cart
// concurrently. It returns the first load failure.
func (c *Controller) Start(ctx context.Context) error {
	c.ResolveUser(ctx)

	var g errgroup.Group
	g.Go(func() error { return c.LoadCatalog(ctx) })
	g.Go(func() error { return c.LoadCart(ctx) })
	return g.Wait()
}

// ResolveUser reads the saved identity into the user slot, falling back to
// the default identity when preferences cannot be read.
func (c *Controller) ResolveUser(ctx context.Context) string {
	userID, err := c.prefs.UserID(ctx)
	if err != nil || userID == "" {
		log.Printf("WARNING: could not read saved user id, using %s: %v", preferences.DefaultUserID, err)
		userID = preferences.DefaultUserID
	}
	c.userID.Store(userID)
	return userID
}

// LoadCatalog fetches the full product list into the catalog slot.
func (c *Controller) LoadCatalog(ctx context.Context) error {
	c.products.Store(state.Loading[[]models.Product]())

	products, err := c.catalog.Products(ctx)
	if err != nil {
		c.products.Store(state.Failure[[]models.Product](err.Error()))
		c.notify("Could not load products", err)
		return err
	}

	c.products.Store(state.Success(products))
	return nil
}

// Search fetches the products matching query into the search slot. A blank
// query resets the search slot to Idle without calling the service, which
// makes renderers fall back to the catalog slot.
func (c *Controller) Search(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		c.ClearSearch()
		return nil
	}

	c.search.Store(state.Loading[[]models.Product]())

	products, err := c.catalog.SearchByName(ctx, query)
	if err != nil {
		c.search.Store(state.Failure[[]models.Product](err.Error()))
		c.notify("Search failed", err)
		return err
	}

	c.search.Store(state.Success(products))
	return nil
}

func (c *Controller) ClearSearch() {
	c.search.Store(state.Idle[[]models.Product]())
}

// LoadProduct fetches one product into the detail slot.
func (c *Controller) LoadProduct(ctx context.Context, id int) error {
	c.detail.Store(state.Loading[models.Product]())

	product, err := c.catalog.ProductByID(ctx, id)
	if err != nil {
		c.detail.Store(state.Failure[models.Product](err.Error()))
		c.notify("Could not load product", err)
		return err
	}

	c.detail.Store(state.Success(*product))
	return nil
}

// ConsumeError clears the transient error message. Calling it with no
// message pending is a no-op.
func (c *Controller) ConsumeError() {
	c.errMsg.Store("")
}

// notify publishes a transient, user-facing failure notice.
func (c *Controller) notify(action string, err error) {
	c.errMsg.Store(fmt.Sprintf("%s: %v", action, err))
}
