package repository

import (
	"context"
	"fmt"

	"exoticworld/dtos"
	"exoticworld/models"

	"github.com/shopspring/decimal"
)

// CartService is the subset of apiclient.Client used for carts.
type CartService interface {
	Cart(ctx context.Context, userID string) (*models.Cart, error)
	AddToCart(ctx context.Context, userID string, productID, quantity int) (*models.CartItem, error)
	DecrementCartItem(ctx context.Context, userID string, productID int) (*models.CartItem, error)
	UpdateCartQuantity(ctx context.Context, userID string, productID, quantity int) (*models.CartItem, error)
	CartItems(ctx context.Context, userID string) ([]models.CartItem, error)
	CartTotal(ctx context.Context, userID string) (*dtos.CartTotal, error)
	ClearCart(ctx context.Context, userID string) error
	RemoveCartItem(ctx context.Context, userID string, productID int) error
}

type CartRepository struct {
	svc CartService
}

func NewCartRepository(svc CartService) *CartRepository {
	return &CartRepository{svc: svc}
}

// Cart fetches the user's cart. A user with no cart yet is a failure
// wrapping ErrEmptyResponse.
func (r *CartRepository) Cart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := r.svc.Cart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch cart: %w", err)
	}
	if cart == nil {
		return nil, fmt.Errorf("fetch cart: %w", ErrEmptyResponse)
	}
	return cart, nil
}

func (r *CartRepository) AddItem(ctx context.Context, userID string, productID, quantity int) (*models.CartItem, error) {
	item, err := r.svc.AddToCart(ctx, userID, productID, quantity)
	if err != nil {
		return nil, fmt.Errorf("add product %d to cart: %w", productID, err)
	}
	if item == nil {
		return nil, fmt.Errorf("add product %d to cart: %w", productID, ErrEmptyResponse)
	}
	return item, nil
}

// DecrementItem removes one unit. A nil item with a nil error means the
// line reached zero and the service deleted it.
func (r *CartRepository) DecrementItem(ctx context.Context, userID string, productID int) (*models.CartItem, error) {
	item, err := r.svc.DecrementCartItem(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("decrement product %d: %w", productID, err)
	}
	return item, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, userID string, productID, quantity int) (*models.CartItem, error) {
	item, err := r.svc.UpdateCartQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, fmt.Errorf("update quantity of product %d: %w", productID, err)
	}
	if item == nil {
		return nil, fmt.Errorf("update quantity of product %d: %w", productID, ErrEmptyResponse)
	}
	return item, nil
}

// Items lists the cart lines; never nil on success.
func (r *CartRepository) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	items, err := r.svc.CartItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch cart items: %w", err)
	}
	return nonNil(items), nil
}

// Total returns the server-computed total; an absent body is zero.
func (r *CartRepository) Total(ctx context.Context, userID string) (decimal.Decimal, error) {
	total, err := r.svc.CartTotal(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch cart total: %w", err)
	}
	if total == nil {
		return decimal.Zero, nil
	}
	return total.Total, nil
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	if err := r.svc.ClearCart(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID string, productID int) error {
	if err := r.svc.RemoveCartItem(ctx, userID, productID); err != nil {
		return fmt.Errorf("remove product %d from cart: %w", productID, err)
	}
	return nil
}
