package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"exoticworld/models"
)

// Products lists the whole catalog. A null body yields a nil slice.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if _, err := c.do(ctx, http.MethodGet, "productos", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches one product. It returns ErrEmptyBody when the service
// answers 2xx without a product.
func (c *Client) Product(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	found, err := c.do(ctx, http.MethodGet, "productos/"+strconv.Itoa(id), nil, nil, &product)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrEmptyBody
	}
	return &product, nil
}

// SearchProducts lists the products whose name matches name.
func (c *Client) SearchProducts(ctx context.Context, name string) ([]models.Product, error) {
	var products []models.Product
	query := url.Values{"nombre": {name}}
	if _, err := c.do(ctx, http.MethodGet, "productos/buscar/nombre", query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	var created models.Product
	found, err := c.do(ctx, http.MethodPost, "productos", nil, product, &created)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrEmptyBody
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int, product models.Product) (*models.Product, error) {
	var updated models.Product
	found, err := c.do(ctx, http.MethodPut, "productos/"+strconv.Itoa(id), nil, product, &updated)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrEmptyBody
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "productos/"+strconv.Itoa(id), nil, nil, nil)
	return err
}
