// Package repository turns every call to the catalog/cart service into a
// plain (value, error) result with the operation named in the error. It
// normalizes absent bodies: lists are never nil, optional payloads are nil
// without an error, and required payloads that are missing fail.
package repository

import (
	"context"
	"errors"
	"fmt"

	"exoticworld/models"
)

// ErrEmptyResponse is wrapped into failures where the service answered
// successfully but without the payload the operation needs.
var ErrEmptyResponse = errors.New("empty response body")

// ProductService is the subset of apiclient.Client used for the catalog.
type ProductService interface {
	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id int) (*models.Product, error)
	SearchProducts(ctx context.Context, name string) ([]models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int, product models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

type ProductRepository struct {
	svc ProductService
}

func NewProductRepository(svc ProductService) *ProductRepository {
	return &ProductRepository{svc: svc}
}

// Products returns the catalog in service order.
func (r *ProductRepository) Products(ctx context.Context) ([]models.Product, error) {
	products, err := r.svc.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return nonNil(products), nil
}

func (r *ProductRepository) ProductByID(ctx context.Context, id int) (*models.Product, error) {
	product, err := r.svc.Product(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch product %d: %w", id, err)
	}
	if product == nil {
		return nil, fmt.Errorf("fetch product %d: %w", id, ErrEmptyResponse)
	}
	return product, nil
}

// SearchByName returns the products the service matches against name.
func (r *ProductRepository) SearchByName(ctx context.Context, name string) ([]models.Product, error) {
	products, err := r.svc.SearchProducts(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search products %q: %w", name, err)
	}
	return nonNil(products), nil
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	created, err := r.svc.CreateProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	if created == nil {
		return nil, fmt.Errorf("create product: %w", ErrEmptyResponse)
	}
	return created, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, id int, product models.Product) (*models.Product, error) {
	updated, err := r.svc.UpdateProduct(ctx, id, product)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("update product %d: %w", id, ErrEmptyResponse)
	}
	return updated, nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id int) error {
	if err := r.svc.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
