package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers ("precioProducto": 100.0), not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog entry. The JSON tags are the service's wire names.
type Product struct {
	ID          int             `gorm:"column:producto_id;primaryKey;autoIncrement" json:"producto_id"`
	Name        string          `gorm:"column:nombre_producto;not null;index" json:"nombreProducto" binding:"required"`
	Description string          `gorm:"column:descripcion_producto" json:"descripcionProducto"`
	Price       decimal.Decimal `gorm:"column:precio_producto;type:decimal(12,2);not null" json:"precioProducto"`
}

func (Product) TableName() string {
	return "productos"
}
