package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/mcastellanos/tienda/internal/middleware/auth"
)

type Deps struct {
	Auth    *AuthHTTP
	Cart    *CartHTTP
	Catalog *CatalogHTTP
	Orders  *OrderHTTP
	Search  *SearchHTTP
	Gate    *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Tienda API is running"})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	auth := e.Group("/auth")
	auth.POST("/login", d.Auth.Login)

	cart := e.Group("/cart", d.Gate.RequireLogin)
	cart.POST("/add/:product_id", d.Cart.AddToCart)
	cart.GET("", d.Cart.GetCart)
	cart.DELETE("", d.Cart.ClearCart)

	categories := e.Group("/categories")
	categories.GET("", d.Catalog.GetCategories)
	categories.GET("/:id", d.Catalog.GetCategory)
	categories.POST("", d.Catalog.CreateCategory, d.Gate.RequireLogin)
	categories.DELETE("/:id", d.Catalog.DeleteCategory, d.Gate.RequireLogin)

	products := e.Group("/products")
	products.GET("", d.Catalog.GetProducts)
	if d.Search != nil {
		products.GET("/search", d.Search.Search)
	}
	products.GET("/:id", d.Catalog.GetProduct)
	products.POST("", d.Catalog.CreateProduct, d.Gate.RequireLogin)
	products.PUT("/:id", d.Catalog.UpdateProduct, d.Gate.RequireLogin)
	products.DELETE("/:id", d.Catalog.DeleteProduct, d.Gate.RequireLogin)

	orders := e.Group("/orders", d.Gate.RequireLogin)
	orders.POST("", d.Orders.CreateOrder)
	orders.GET("", d.Orders.ListOrders)
	orders.GET("/:id", d.Orders.GetOrder)
}
