package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/storefront/internal/httpx"
	"github.com/MikeMC777/storefront/internal/report"
)

// @Summary      Dashboard stats
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  report.Stats
// @Failure      403  {object}  httpx.HTTPError
// @Router       /api/admin/stats [get]
func statsHandler(repo report.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := repo.Stats(c.Request.Context())
		if err != nil {
			httpx.Internal(c, "Failed to compute stats", err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}
