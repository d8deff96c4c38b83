package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const StatusPending = "Pending"

// Order is an immutable snapshot of a checkout; only Status changes later.
type Order struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Items        []Item          `json:"items"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	CustomerName string          `json:"customerName"`
	Email        string          `json:"email"`
	Address      string          `json:"address"`
	Phone        string          `json:"phone"`
	OrderDate    time.Time       `json:"orderDate"`
	Status       string          `json:"status"`
}

type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}
