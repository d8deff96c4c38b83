package cart

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront/internal/database"
)

// Item is one cart line. Name, price and image are copied from the request
// when the line is first added.
type Item struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
	CreatedAt time.Time       `json:"createdAt"`
}

// AddItemRequest payload of POST /api/cart.
// swagger:model AddItemRequest
type AddItemRequest struct {
	ProductID string          `json:"productId" binding:"required"       example:"6f1c2d3e-0000-4000-8000-000000000001"`
	Name      string          `json:"name"                               example:"Mechanical Keyboard"`
	Price     decimal.Decimal `json:"price"     swaggertype:"number"     example:"199.90"`
	Quantity  int             `json:"quantity"  binding:"required,min=1" example:"1"`
	Image     string          `json:"image"                              example:"/img/keyboard.png"`
}

func (r AddItemRequest) Validate() error {
	if r.Price.IsNegative() {
		return errors.New("price must be at least 0")
	}
	if err := database.CheckMoney("price", r.Price); err != nil {
		return err
	}
	return database.CheckCount("quantity", r.Quantity)
}

// UpdateQuantityRequest payload of PUT /api/cart/:id.
// swagger:model UpdateQuantityRequest
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1" example:"3"`
}

func (r UpdateQuantityRequest) Validate() error {
	return database.CheckCount("quantity", r.Quantity)
}
