package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/EdYashida/ecommerce-api/internal/handlers"
	"github.com/EdYashida/ecommerce-api/internal/handlers/cart"
	"github.com/EdYashida/ecommerce-api/internal/service"
)

type Deps struct {
	DB             *gorm.DB
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	CartHandler    *cart.CartHandler
	SearchHandler  *handlers.SearchHandler
	Sessions       *service.SessionService
}

func Register(e *echo.Echo, d *Deps) {
	requireLogin := d.Sessions.RequireLogin

	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "API up") })

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.POST("/logout", d.AuthHandler.LogOut, requireLogin)

	api := e.Group("/api")

	api.POST("/products/add", d.ProductHandler.AddProduct, requireLogin)
	api.DELETE("/products/delete/:id", d.ProductHandler.DeleteProduct, requireLogin)
	api.PUT("/products/delete/:id", d.ProductHandler.UpdateProduct, requireLogin)
	api.GET("/products/search", d.SearchHandler.Search)
	api.GET("/products/:id", d.ProductHandler.GetProduct)
	api.GET("/products", d.ProductHandler.GetProducts)

	cartGroup := api.Group("/cart", requireLogin)

	cartGroup.POST("/add/:id", d.CartHandler.AddToCart)
	cartGroup.DELETE("/remove/:id", d.CartHandler.RemoveFromCart)
	cartGroup.GET("", d.CartHandler.ViewCart)
	cartGroup.POST("/checkout", d.CartHandler.Checkout)
}
