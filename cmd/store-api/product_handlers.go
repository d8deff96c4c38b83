package main

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikeMC777/storefront/internal/httpx"
	"github.com/MikeMC777/storefront/internal/product"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {array}   product.Product
// @Router       /api/products [get]
func listProductsHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.List(c.Request.Context())
		if err != nil {
			httpx.Internal(c, "Failed to list products", err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  product.Product
// @Failure      404  {object}  httpx.HTTPError
// @Router       /api/products/{id} [get]
func getProductHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			httpx.Error(c, http.StatusNotFound, "Product not found")
			return
		}
		p, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				httpx.Error(c, http.StatusNotFound, "Product not found")
				return
			}
			httpx.Internal(c, "Failed to fetch product", err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// @Summary      Create product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      product.CreateProductRequest  true  "Product"
// @Success      201   {object}  product.Product
// @Failure      400   {object}  httpx.HTTPError
// @Failure      401   {object}  httpx.HTTPError
// @Failure      403   {object}  httpx.HTTPError
// @Router       /api/products [post]
func createProductHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in product.CreateProductRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BindError(c, err)
			return
		}
		if err := in.Validate(); err != nil {
			httpx.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		p := in.Product(uuid.NewString())
		if err := repo.Create(c.Request.Context(), p); err != nil {
			httpx.Internal(c, "Failed to create product", err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// @Summary      Update product
// @Description  Partial update: omitted fields keep their value.
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                        true  "Product ID"
// @Param        body  body      product.UpdateProductRequest  true  "Fields to change"
// @Success      200   {object}  product.Product
// @Failure      400   {object}  httpx.HTTPError
// @Failure      404   {object}  httpx.HTTPError
// @Router       /api/products/{id} [put]
func updateProductHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			httpx.Error(c, http.StatusNotFound, "Product not found")
			return
		}
		var in product.UpdateProductRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BindError(c, err)
			return
		}
		if err := in.Validate(); err != nil {
			httpx.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		p, err := repo.Update(c.Request.Context(), id, in)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				httpx.Error(c, http.StatusNotFound, "Product not found")
				return
			}
			httpx.Internal(c, "Failed to update product", err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// @Summary      Delete product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  httpx.HTTPError
// @Router       /api/products/{id} [delete]
func deleteProductHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			httpx.Error(c, http.StatusNotFound, "Product not found")
			return
		}
		ok, err := repo.Delete(c.Request.Context(), id)
		if err != nil {
			httpx.Internal(c, "Failed to delete product", err)
			return
		}
		if !ok {
			httpx.Error(c, http.StatusNotFound, "Product not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// @Summary      Export catalog
// @Description  Whole catalog as an Excel workbook.
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200
// @Failure      403  {object}  httpx.HTTPError
// @Router       /api/admin/products/export [get]
func exportProductsHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.List(c.Request.Context())
		if err != nil {
			httpx.Internal(c, "Failed to list products", err)
			return
		}
		var buf bytes.Buffer
		if err := product.WriteXLSX(&buf, items); err != nil {
			httpx.Internal(c, "Failed to build export", err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="products.xlsx"`)
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	}
}
