package models

import (
	"github.com/shopspring/decimal"
)

// Cart is the server-owned cart of a single user.
type Cart struct {
	ID     int    `gorm:"column:carrito_id;primaryKey;autoIncrement" json:"carrito_id"`
	UserID string `gorm:"column:usuario_id;not null;uniqueIndex" json:"usuarioId"`
}

func (Cart) TableName() string {
	return "carritos"
}

// CartItem is one product line inside a cart. Quantity is always >= 1;
// the service deletes the line instead of storing zero.
type CartItem struct {
	ID        int     `gorm:"column:item_id;primaryKey;autoIncrement" json:"item_id"`
	Quantity  int     `gorm:"column:cantidad;not null;default:1" json:"cantidad"`
	CartID    int     `gorm:"column:carrito_id;not null;index" json:"-"`
	Cart      Cart    `gorm:"foreignKey:CartID;references:ID" json:"carrito"`
	ProductID int     `gorm:"column:producto_id;not null;index" json:"-"`
	Product   Product `gorm:"foreignKey:ProductID;references:ID" json:"producto"`
}

func (CartItem) TableName() string {
	return "carrito_items"
}

// Subtotal is price × quantity. It is always derived, never stored.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SumSubtotals adds up the subtotals of items; an empty list sums to zero.
func SumSubtotals(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
