package dtos

import "github.com/shopspring/decimal"

// ProductRequest is the body accepted by product create and update.
// It carries the same wire names as models.Product; any id in the body is ignored.
type ProductRequest struct {
	Name        string          `json:"nombreProducto" binding:"required,max=255"`
	Description string          `json:"descripcionProducto" binding:"max=2000"`
	Price       decimal.Decimal `json:"precioProducto"`
}
