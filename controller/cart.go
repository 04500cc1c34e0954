package controller

import (
	"context"

	"exoticworld/models"
	"exoticworld/state"

	"github.com/shopspring/decimal"
)

// LoadCart fetches the cart lines of the resolved user into the cart slot
// and then recomputes the total. Without an identity it does nothing and
// returns ErrNoUser.
func (c *Controller) LoadCart(ctx context.Context) error {
	userID := c.userID.Load()
	if userID == "" {
		return ErrNoUser
	}

	c.items.Store(state.Loading[[]models.CartItem]())

	items, err := c.cart.Items(ctx, userID)
	if err != nil {
		c.items.Store(state.Failure[[]models.CartItem](err.Error()))
		c.notify("Could not load cart", err)
		return err
	}

	c.items.Store(state.Success(items))
	c.ComputeTotal(ctx)
	return nil
}

// ComputeTotal publishes the cart total. The server total is preferred; if
// it cannot be fetched the total is the sum of the subtotals in the cart
// slot, or zero when the cart slot holds no loaded list.
func (c *Controller) ComputeTotal(ctx context.Context) decimal.Decimal {
	if userID := c.userID.Load(); userID != "" {
		if total, err := c.cart.Total(ctx, userID); err == nil {
			c.total.Store(total)
			return total
		}
	}

	total := c.localTotal()
	c.total.Store(total)
	return total
}

func (c *Controller) localTotal() decimal.Decimal {
	items, ok := c.items.Load().Get()
	if !ok {
		return decimal.Zero
	}
	return models.SumSubtotals(items)
}

// AddToCart adds quantity units of productID; a quantity below one adds a
// single unit.
func (c *Controller) AddToCart(ctx context.Context, productID, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	return c.mutate(ctx, "Could not add to cart", func(userID string) error {
		_, err := c.cart.AddItem(ctx, userID, productID, quantity)
		return err
	})
}

// Decrement removes one unit of productID. The service deletes a line that
// reaches zero; that still counts as success and the cart is reloaded.
func (c *Controller) Decrement(ctx context.Context, productID int) error {
	return c.mutate(ctx, "Could not decrease quantity", func(userID string) error {
		_, err := c.cart.DecrementItem(ctx, userID, productID)
		return err
	})
}

// SetQuantity sets the quantity of the productID line.
func (c *Controller) SetQuantity(ctx context.Context, productID, quantity int) error {
	return c.mutate(ctx, "Could not update quantity", func(userID string) error {
		_, err := c.cart.UpdateQuantity(ctx, userID, productID, quantity)
		return err
	})
}

func (c *Controller) RemoveItem(ctx context.Context, productID int) error {
	return c.mutate(ctx, "Could not remove item", func(userID string) error {
		return c.cart.RemoveItem(ctx, userID, productID)
	})
}

// ClearCart empties the cart; the reload that follows yields an empty list.
func (c *Controller) ClearCart(ctx context.Context) error {
	return c.mutate(ctx, "Could not empty cart", func(userID string) error {
		return c.cart.Clear(ctx, userID)
	})
}

// mutate runs one cart write for the resolved user. On success the cart is
// re-fetched; on failure only the transient message changes, so a loaded
// cart stays on screen.
func (c *Controller) mutate(ctx context.Context, action string, call func(userID string) error) error {
	userID := c.userID.Load()
	if userID == "" {
		return ErrNoUser
	}

	if err := call(userID); err != nil {
		c.notify(action, err)
		return err
	}
	return c.LoadCart(ctx)
}
