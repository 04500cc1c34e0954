package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"exoticworld/dtos"
	"exoticworld/models"
)

func cartPath(userID, action string) string {
	p := "carrito/usuario/" + userID
	if action != "" {
		p += "/" + action
	}
	return p
}

func productQuery(productID int) url.Values {
	return url.Values{"productoId": {strconv.Itoa(productID)}}
}

// Cart fetches the cart owned by userID. A user without a cart yields nil
// and no error when the service answers 2xx with no body.
func (c *Client) Cart(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	found, err := c.do(ctx, http.MethodGet, cartPath(userID, ""), nil, nil, &cart)
	if err != nil || !found {
		return nil, err
	}
	return &cart, nil
}

// AddToCart adds quantity units of productID, creating the cart and the
// line as needed, and returns the resulting line.
func (c *Client) AddToCart(ctx context.Context, userID string, productID, quantity int) (*models.CartItem, error) {
	query := productQuery(productID)
	query.Set("cantidad", strconv.Itoa(quantity))

	var item models.CartItem
	found, err := c.do(ctx, http.MethodPost, cartPath(userID, "agregar"), query, nil, &item)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrEmptyBody
	}
	return &item, nil
}

// DecrementCartItem removes one unit of productID. When the line reaches
// zero the service deletes it and the result is nil with no error.
func (c *Client) DecrementCartItem(ctx context.Context, userID string, productID int) (*models.CartItem, error) {
	var item models.CartItem
	found, err := c.do(ctx, http.MethodPost, cartPath(userID, "decrementar"), productQuery(productID), nil, &item)
	if err != nil || !found {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateCartQuantity(ctx context.Context, userID string, productID, quantity int) (*models.CartItem, error) {
	query := productQuery(productID)
	query.Set("cantidad", strconv.Itoa(quantity))

	var item models.CartItem
	found, err := c.do(ctx, http.MethodPut, cartPath(userID, "actualizar-cantidad"), query, nil, &item)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrEmptyBody
	}
	return &item, nil
}

// CartItems lists the lines of the user's cart. A null body yields a nil slice.
func (c *Client) CartItems(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if _, err := c.do(ctx, http.MethodGet, cartPath(userID, "items"), nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CartTotal fetches the server-computed total; nil when the body is absent.
func (c *Client) CartTotal(ctx context.Context, userID string) (*dtos.CartTotal, error) {
	var total dtos.CartTotal
	found, err := c.do(ctx, http.MethodGet, cartPath(userID, "total"), nil, nil, &total)
	if err != nil || !found {
		return nil, err
	}
	return &total, nil
}

func (c *Client) ClearCart(ctx context.Context, userID string) error {
	_, err := c.do(ctx, http.MethodDelete, cartPath(userID, "vaciar"), nil, nil, nil)
	return err
}

func (c *Client) RemoveCartItem(ctx context.Context, userID string, productID int) error {
	_, err := c.do(ctx, http.MethodDelete, cartPath(userID, "eliminar-item"), productQuery(productID), nil, nil)
	return err
}
