package product

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront/internal/database"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	IsAvailable bool            `json:"isAvailable"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

var (
	errNegativePrice = errors.New("price must be at least 0")
	errNegativeStock = errors.New("stock must be at least 0")
)

// CreateProductRequest payload of creation. Every field is optional.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name        string          `json:"name"        example:"Mechanical Keyboard"`
	Price       decimal.Decimal `json:"price"       swaggertype:"number" example:"199.90"`
	Category    string          `json:"category"    example:"peripherals"`
	Stock       int             `json:"stock"       example:"10"`
	IsAvailable *bool           `json:"isAvailable" example:"true"`
	Image       string          `json:"image"       example:"/img/keyboard.png"`
	Description string          `json:"description" example:"RGB 60%"`
}

func (r CreateProductRequest) Validate() error {
	return validate(r.Price, r.Stock)
}

func validate(price decimal.Decimal, stock int) error {
	if price.IsNegative() {
		return errNegativePrice
	}
	if err := database.CheckMoney("price", price); err != nil {
		return err
	}
	if stock < 0 {
		return errNegativeStock
	}
	return database.CheckCount("stock", stock)
}

// Product builds the row to insert; isAvailable defaults to true.
func (r CreateProductRequest) Product(id string) *Product {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return &Product{
		ID:          id,
		Name:        r.Name,
		Price:       r.Price,
		Category:    r.Category,
		Stock:       r.Stock,
		IsAvailable: available,
		Image:       r.Image,
		Description: r.Description,
	}
}

// UpdateProductRequest payload of partial update: nil fields are left unchanged.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price" swaggertype:"number"`
	Category    *string          `json:"category"`
	Stock       *int             `json:"stock"`
	IsAvailable *bool            `json:"isAvailable"`
	Image       *string          `json:"image"`
	Description *string          `json:"description"`
}

func (r UpdateProductRequest) Validate() error {
	price, stock := decimal.Zero, 0
	if r.Price != nil {
		price = *r.Price
	}
	if r.Stock != nil {
		stock = *r.Stock
	}
	return validate(price, stock)
}
