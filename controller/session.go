package controller

import (
	"context"
	"strings"

	"exoticworld/models"
	"exoticworld/preferences"
	"exoticworld/state"

	"github.com/shopspring/decimal"
)

// SetUserID saves a new identity and loads that user's cart.
func (c *Controller) SetUserID(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if err := c.prefs.SetUserID(ctx, userID); err != nil {
		c.notify("Could not save user", err)
		return err
	}
	c.userID.Store(userID)
	return c.LoadCart(ctx)
}

// ResetUser clears the saved preferences, returns to the default identity
// and loads its cart.
func (c *Controller) ResetUser(ctx context.Context) error {
	if err := c.prefs.Clear(ctx); err != nil {
		c.notify("Could not clear preferences", err)
		return err
	}
	c.userID.Store(preferences.DefaultUserID)
	return c.LoadCart(ctx)
}

// Go runs op in the background under the controller's lifetime context.
// The returned channel yields op's result once and is then closed. After
// Close, op is not run and ErrClosed is delivered instead.
func (c *Controller) Go(op func(ctx context.Context) error) <-chan error {
	done := make(chan error, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		done <- ErrClosed
		close(done)
		return done
	}
	c.tasks.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.tasks.Done()
		done <- op(c.ctx)
		close(done)
	}()
	return done
}

// Close cancels every task started with Go and waits for them to return.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.tasks.Wait()
}

// Snapshot is a copy of every slot, taken one slot at a time.
type Snapshot struct {
	Products state.UI[[]models.Product]
	Search   state.UI[[]models.Product]
	Cart     state.UI[[]models.CartItem]
	Product  state.UI[models.Product]
	Total    decimal.Decimal
	Error    string
	UserID   string
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Products: c.products.Load(),
		Search:   c.search.Load(),
		Cart:     c.items.Load(),
		Product:  c.detail.Load(),
		Total:    c.total.Load(),
		Error:    c.errMsg.Load(),
		UserID:   c.userID.Load(),
	}
}

// VisibleProducts is what a product list shows: the search results while a
// search is active, the catalog otherwise.
func (s Snapshot) VisibleProducts() state.UI[[]models.Product] {
	if s.Search.IsIdle() {
		return s.Products
	}
	return s.Search
}
