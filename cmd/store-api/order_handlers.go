package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MikeMC777/storefront/internal/events"
	"github.com/MikeMC777/storefront/internal/httpx"
	"github.com/MikeMC777/storefront/internal/metrics"
	"github.com/MikeMC777/storefront/internal/order"
)

// @Summary      Place order
// @Description  Stores the order as sent and empties the caller's cart in the same transaction.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      order.CreateOrderRequest  true  "Order"
// @Success      201   {object}  order.Order
// @Failure      400   {object}  httpx.HTTPError
// @Router       /api/orders [post]
func createOrderHandler(repo order.Repository, pub events.Publisher, m *metrics.Metrics, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.CreateOrderRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BindError(c, err)
			return
		}
		if err := in.Validate(); err != nil {
			httpx.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		for _, it := range in.Items {
			if _, err := uuid.Parse(it.ProductID); err != nil {
				httpx.Error(c, http.StatusBadRequest, "productId is invalid")
				return
			}
		}

		o := in.Order(uuid.NewString(), identity(c).ID)
		if err := repo.Checkout(c.Request.Context(), o); err != nil {
			httpx.Internal(c, "Failed to create order", err)
			return
		}
		m.OrderCreated()

		ev := events.OrderCreated{
			OrderID:     o.ID,
			UserID:      o.UserID,
			TotalAmount: o.TotalAmount,
			ItemCount:   len(o.Items),
			Status:      o.Status,
			OrderDate:   o.OrderDate,
		}
		// the order is committed; a lost event must not fail the request
		if err := pub.PublishOrderCreated(context.WithoutCancel(c.Request.Context()), ev); err != nil {
			log.WithError(err).WithField("order_id", o.ID).Warn("[events] publish order.created failed")
		}
		c.JSON(http.StatusCreated, o)
	}
}

// @Summary      My orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  order.Order
// @Router       /api/orders/my-orders [get]
func myOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := repo.ListByUser(c.Request.Context(), identity(c).ID)
		if err != nil {
			httpx.Internal(c, "Failed to list orders", err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary      All orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   order.Order
// @Failure      403  {object}  httpx.HTTPError
// @Router       /api/orders [get]
func listOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := repo.ListAll(c.Request.Context())
		if err != nil {
			httpx.Internal(c, "Failed to list orders", err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary      Update order status
// @Description  Any non-empty status is accepted.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Order ID"
// @Param        body  body      order.UpdateStatusRequest  true  "Status"
// @Success      200   {object}  order.Order
// @Failure      400   {object}  httpx.HTTPError
// @Failure      404   {object}  httpx.HTTPError
// @Router       /api/orders/{id} [put]
func updateOrderStatusHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			httpx.Error(c, http.StatusNotFound, "Order not found")
			return
		}
		var in order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BindError(c, err)
			return
		}
		ctx := c.Request.Context()
		if err := repo.UpdateStatus(ctx, id, in.Status); err != nil {
			if errors.Is(err, order.ErrNotFound) {
				httpx.Error(c, http.StatusNotFound, "Order not found")
				return
			}
			httpx.Internal(c, "Failed to update order", err)
			return
		}
		o, err := repo.GetByID(ctx, id)
		if err != nil {
			httpx.Internal(c, "Failed to fetch order", err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
