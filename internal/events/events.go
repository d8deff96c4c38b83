// Package events publishes domain events about orders.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const TypeOrderCreated = "order.created"

// OrderCreated is emitted once a checkout transaction has committed.
type OrderCreated struct {
	Type        string          `json:"type"`
	OrderID     string          `json:"orderId"`
	UserID      string          `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ItemCount   int             `json:"itemCount"`
	Status      string          `json:"status"`
	OrderDate   time.Time       `json:"orderDate"`
}

func (e OrderCreated) Encode() ([]byte, error) {
	if e.Type == "" {
		e.Type = TypeOrderCreated
	}
	return json.Marshal(e)
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, e OrderCreated) error
	Close()
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) PublishOrderCreated(context.Context, OrderCreated) error { return nil }

func (Nop) Close() {}
