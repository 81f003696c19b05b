package ecommerce_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shitiandmw/e-commerce-sub001/controllers/ecommerce/category_controller"
	"github.com/shitiandmw/e-commerce-sub001/controllers/ecommerce/product_controller"
)

// SetupStorefrontRoutes registers the public storefront passthrough endpoints.
func SetupStorefrontRoutes(rg *gin.RouterGroup) {
	store := rg.Group("/store")

	store.GET("/products", product_controller.GetStorefrontProducts)
	store.GET("/products/:id", product_controller.GetStorefrontProductByID)
	store.GET("/categories", category_controller.GetCategories)
}
