package order

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront/internal/database"
)

// CreateOrderItem line of the order payload.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	ProductID string          `json:"productId" binding:"required"       example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Name      string          `json:"name"                               example:"Mechanical Keyboard"`
	Price     decimal.Decimal `json:"price"     swaggertype:"number"     example:"199.90"`
	Quantity  int             `json:"quantity"  binding:"required,min=1" example:"2"`
}

// CreateOrderRequest payload of POST /api/orders. Items and total are
// stored as sent.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Items        []CreateOrderItem `json:"items"        binding:"required,min=1,dive"`
	TotalAmount  decimal.Decimal   `json:"totalAmount"  swaggertype:"number" example:"399.80"`
	CustomerName string            `json:"customerName" example:"Ada Lovelace"`
	Email        string            `json:"email"        example:"ada@example.com"`
	Address      string            `json:"address"      example:"12 Analytical St"`
	Phone        string            `json:"phone"        example:"+44 20 0000 0000"`
}

func (r CreateOrderRequest) Validate() error {
	if r.TotalAmount.IsNegative() {
		return errors.New("totalAmount must be at least 0")
	}
	if err := database.CheckMoney("totalAmount", r.TotalAmount); err != nil {
		return err
	}
	for _, it := range r.Items {
		if it.Price.IsNegative() {
			return errors.New("price must be at least 0")
		}
		if err := database.CheckMoney("price", it.Price); err != nil {
			return err
		}
		if err := database.CheckCount("quantity", it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// Order builds the pending order for userID.
func (r CreateOrderRequest) Order(id, userID string) *Order {
	items := make([]Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, Item{ProductID: it.ProductID, Name: it.Name, Price: it.Price, Quantity: it.Quantity})
	}
	return &Order{
		ID:           id,
		UserID:       userID,
		Items:        items,
		TotalAmount:  r.TotalAmount,
		CustomerName: r.CustomerName,
		Email:        r.Email,
		Address:      r.Address,
		Phone:        r.Phone,
		Status:       StatusPending,
	}
}

// UpdateStatusRequest payload of PUT /api/orders/:id. Any non-empty status
// is accepted.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"Shipped"`
}
