package dtos

import "github.com/shopspring/decimal"

// CartTotal is the body of GET /carrito/usuario/{userId}/total.
type CartTotal struct {
	Total decimal.Decimal `json:"total"`
}
