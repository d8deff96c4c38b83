package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikeMC777/storefront/internal/cart"
	"github.com/MikeMC777/storefront/internal/httpx"
)

// @Summary      List cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   cart.Item
// @Failure      401  {object}  httpx.HTTPError
// @Router       /api/cart [get]
func listCartHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.List(c.Request.Context(), identity(c).ID)
		if err != nil {
			httpx.Internal(c, "Failed to load cart", err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// @Summary      Add to cart
// @Description  Adds a line, or increments the quantity when the product is already in the cart.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      cart.AddItemRequest  true  "Line"
// @Success      201   {object}  cart.Item  "new line"
// @Success      200   {object}  cart.Item  "quantity incremented"
// @Failure      400   {object}  httpx.HTTPError
// @Router       /api/cart [post]
func addToCartHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cart.AddItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BindError(c, err)
			return
		}
		if _, err := uuid.Parse(in.ProductID); err != nil {
			httpx.Error(c, http.StatusBadRequest, "productId is invalid")
			return
		}
		if err := in.Validate(); err != nil {
			httpx.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		it := &cart.Item{
			ID:        uuid.NewString(),
			UserID:    identity(c).ID,
			ProductID: in.ProductID,
			Name:      in.Name,
			Price:     in.Price,
			Quantity:  in.Quantity,
			Image:     in.Image,
		}
		inserted, err := repo.Add(c.Request.Context(), it)
		if err != nil {
			if errors.Is(err, cart.ErrQuantityTooLarge) {
				httpx.Error(c, http.StatusBadRequest, err.Error())
				return
			}
			httpx.Internal(c, "Failed to add to cart", err)
			return
		}
		status := http.StatusOK
		if inserted {
			status = http.StatusCreated
		}
		c.JSON(status, it)
	}
}

// @Summary      Set cart line quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "Cart item ID"
// @Param        body  body      cart.UpdateQuantityRequest  true  "Quantity"
// @Success      200   {object}  cart.Item
// @Failure      400   {object}  httpx.HTTPError
// @Failure      404   {object}  httpx.HTTPError
// @Router       /api/cart/{id} [put]
func updateCartItemHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			httpx.Error(c, http.StatusNotFound, "Cart item not found")
			return
		}
		var in cart.UpdateQuantityRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BindError(c, err)
			return
		}
		if err := in.Validate(); err != nil {
			httpx.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		it, err := repo.UpdateQuantity(c.Request.Context(), identity(c).ID, id, in.Quantity)
		if err != nil {
			if errors.Is(err, cart.ErrNotFound) {
				httpx.Error(c, http.StatusNotFound, "Cart item not found")
				return
			}
			httpx.Internal(c, "Failed to update cart", err)
			return
		}
		c.JSON(http.StatusOK, it)
	}
}

// @Summary      Remove cart line
// @Description  Idempotent: removing a missing line still succeeds.
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Cart item ID"
// @Success      200  {object}  map[string]string
// @Router       /api/cart/{id} [delete]
func removeCartItemHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err == nil {
			if err := repo.Remove(c.Request.Context(), identity(c).ID, id); err != nil {
				httpx.Internal(c, "Failed to remove item", err)
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}

// @Summary      Clear cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /api/cart [delete]
func clearCartHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.Clear(c.Request.Context(), identity(c).ID); err != nil {
			httpx.Internal(c, "Failed to clear cart", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
