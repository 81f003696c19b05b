package product_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shitiandmw/e-commerce-sub001/config"
	"github.com/shitiandmw/e-commerce-sub001/models"
	"github.com/shitiandmw/e-commerce-sub001/services"
)

// GetStorefrontProductByID godoc
// @Summary Get storefront product by ID
// @Description Get a single product for the storefront, proxied from the commerce platform
// @Tags store
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse{data=models.Product}
// @Failure 404 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /store/products/{id} [get]
func GetStorefrontProductByID(c *gin.Context) {
	productID := c.Param("id")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	product, err := commerceClient.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		log.Printf("[store.product] ERROR id=%s err=%v", productID, err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to load product"))
		return
	}

	log.Printf("[store.product] respond 200 id=%s", productID)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product retrieved successfully", product))
}
