package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/MikeMC777/storefront/internal/auth"
	"github.com/MikeMC777/storefront/internal/cart"
	"github.com/MikeMC777/storefront/internal/events"
	"github.com/MikeMC777/storefront/internal/httpx"
	"github.com/MikeMC777/storefront/internal/metrics"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/report"
	"github.com/MikeMC777/storefront/internal/user"
)

type accountService interface {
	Register(ctx context.Context, in user.RegisterRequest) (*user.AuthResponse, error)
	Login(ctx context.Context, in user.LoginRequest) (*user.AuthResponse, error)
	GetSelf(ctx context.Context, id string) (*user.User, error)
}

type deps struct {
	users    accountService
	tokens   auth.Verifier
	products product.Repository
	carts    cart.Repository
	orders   order.Repository
	stats    report.Repository
	events   events.Publisher
	metrics  *metrics.Metrics
	limiter  *httpx.RateLimiter

	corsOrigins    []string
	trustedProxies []string
	log            logrus.FieldLogger
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	// ClientIP keys the auth limiter, so forwarded headers count only from known proxies
	if err := r.SetTrustedProxies(d.trustedProxies); err != nil {
		d.log.WithError(err).Warn("[http] invalid TRUSTED_PROXIES, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(d.log), d.metrics.Middleware(), httpx.CORS(d.corsOrigins))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(d.metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authn := auth.RequireAuthenticated(d.tokens)
	admin := auth.RequireAdmin()

	api := r.Group("/api")
	{
		a := api.Group("/auth")
		a.POST("/register", d.limiter.Middleware(), registerHandler(d.users))
		a.POST("/login", d.limiter.Middleware(), loginHandler(d.users))
		a.GET("/me", authn, meHandler(d.users))

		p := api.Group("/products")
		p.GET("", listProductsHandler(d.products))
		p.GET("/:id", getProductHandler(d.products))
		p.POST("", authn, admin, createProductHandler(d.products))
		p.PUT("/:id", authn, admin, updateProductHandler(d.products))
		p.DELETE("/:id", authn, admin, deleteProductHandler(d.products))

		c := api.Group("/cart", authn)
		c.GET("", listCartHandler(d.carts))
		c.POST("", addToCartHandler(d.carts))
		c.PUT("/:id", updateCartItemHandler(d.carts))
		c.DELETE("/:id", removeCartItemHandler(d.carts))
		c.DELETE("", clearCartHandler(d.carts))

		o := api.Group("/orders", authn)
		o.POST("", createOrderHandler(d.orders, d.events, d.metrics, d.log))
		o.GET("/my-orders", myOrdersHandler(d.orders))
		o.GET("", admin, listOrdersHandler(d.orders))
		o.PUT("/:id", admin, updateOrderStatusHandler(d.orders))

		ad := api.Group("/admin", authn, admin)
		ad.GET("/stats", statsHandler(d.stats))
		ad.GET("/products/export", exportProductsHandler(d.products))
	}
	return r
}

// identity is set by RequireAuthenticated on every route that calls this.
func identity(c *gin.Context) auth.Identity {
	id, _ := auth.IdentityFrom(c)
	return id
}
