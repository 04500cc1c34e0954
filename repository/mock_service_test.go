package repository

import (
	"context"

	"exoticworld/dtos"
	"exoticworld/models"
)

// mockService implements ProductService and CartService. Unset funcs
// answer with zero values.
type mockService struct {
	ProductsFn           func() ([]models.Product, error)
	ProductFn            func(id int) (*models.Product, error)
	SearchProductsFn     func(name string) ([]models.Product, error)
	CreateProductFn      func(p models.Product) (*models.Product, error)
	UpdateProductFn      func(id int, p models.Product) (*models.Product, error)
	DeleteProductFn      func(id int) error
	CartFn               func(userID string) (*models.Cart, error)
	AddToCartFn          func(userID string, productID, quantity int) (*models.CartItem, error)
	DecrementCartItemFn  func(userID string, productID int) (*models.CartItem, error)
	UpdateCartQuantityFn func(userID string, productID, quantity int) (*models.CartItem, error)
	CartItemsFn          func(userID string) ([]models.CartItem, error)
	CartTotalFn          func(userID string) (*dtos.CartTotal, error)
	ClearCartFn          func(userID string) error
	RemoveCartItemFn     func(userID string, productID int) error

	ProductsCalls int
	SearchQueries []string
}

func (m *mockService) Products(ctx context.Context) ([]models.Product, error) {
	m.ProductsCalls++
	if m.ProductsFn != nil {
		return m.ProductsFn()
	}
	return nil, nil
}

func (m *mockService) Product(ctx context.Context, id int) (*models.Product, error) {
	if m.ProductFn != nil {
		return m.ProductFn(id)
	}
	return nil, nil
}

func (m *mockService) SearchProducts(ctx context.Context, name string) ([]models.Product, error) {
	m.SearchQueries = append(m.SearchQueries, name)
	if m.SearchProductsFn != nil {
		return m.SearchProductsFn(name)
	}
	return nil, nil
}

func (m *mockService) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	if m.CreateProductFn != nil {
		return m.CreateProductFn(p)
	}
	return nil, nil
}

func (m *mockService) UpdateProduct(ctx context.Context, id int, p models.Product) (*models.Product, error) {
	if m.UpdateProductFn != nil {
		return m.UpdateProductFn(id, p)
	}
	return nil, nil
}

func (m *mockService) DeleteProduct(ctx context.Context, id int) error {
	if m.DeleteProductFn != nil {
		return m.DeleteProductFn(id)
	}
	return nil
}

func (m *mockService) Cart(ctx context.Context, userID string) (*models.Cart, error) {
	if m.CartFn != nil {
		return m.CartFn(userID)
	}
	return nil, nil
}

func (m *mockService) AddToCart(ctx context.Context, userID string, productID, quantity int) (*models.CartItem, error) {
	if m.AddToCartFn != nil {
		return m.AddToCartFn(userID, productID, quantity)
	}
	return nil, nil
}

func (m *mockService) DecrementCartItem(ctx context.Context, userID string, productID int) (*models.CartItem, error) {
	if m.DecrementCartItemFn != nil {
		return m.DecrementCartItemFn(userID, productID)
	}
	return nil, nil
}

func (m *mockService) UpdateCartQuantity(ctx context.Context, userID string, productID, quantity int) (*models.CartItem, error) {
	if m.UpdateCartQuantityFn != nil {
		return m.UpdateCartQuantityFn(userID, productID, quantity)
	}
	return nil, nil
}

func (m *mockService) CartItems(ctx context.Context, userID string) ([]models.CartItem, error) {
	if m.CartItemsFn != nil {
		return m.CartItemsFn(userID)
	}
	return nil, nil
}

func (m *mockService) CartTotal(ctx context.Context, userID string) (*dtos.CartTotal, error) {
	if m.CartTotalFn != nil {
		return m.CartTotalFn(userID)
	}
	return nil, nil
}

func (m *mockService) ClearCart(ctx context.Context, userID string) error {
	if m.ClearCartFn != nil {
		return m.ClearCartFn(userID)
	}
	return nil
}

func (m *mockService) RemoveCartItem(ctx context.Context, userID string, productID int) error {
	if m.RemoveCartItemFn != nil {
		return m.RemoveCartItemFn(userID, productID)
	}
	return nil
}
