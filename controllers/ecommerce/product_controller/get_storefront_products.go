package product_controller

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shitiandmw/e-commerce-sub001/config"
	"github.com/shitiandmw/e-commerce-sub001/models"
	"github.com/shitiandmw/e-commerce-sub001/services"
)

var commerceClient *services.CommerceClient

// Init wires the commerce client used by the storefront handlers.
func Init(client *services.CommerceClient) {
	commerceClient = client
}

func getPaginationParams(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// GetStorefrontProducts godoc
// @Summary Get storefront products
// @Description Get paginated products for the storefront, proxied from the commerce platform, with optional search
// @Tags store
// @Produce json
// @Param q query string false "Search query"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Product}
// @Failure 502 {object} models.ApiResponse
// @Router /store/products [get]
func GetStorefrontProducts(c *gin.Context) {
	page, limit := getPaginationParams(c)
	search := c.Query("q")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	products, total, err := commerceClient.ListProductsPage(ctx, limit, (page-1)*limit, search)
	if err != nil {
		log.Printf("[store.products] ERROR err=%v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to load products"))
		return
	}

	totalPages := (total + limit - 1) / limit
	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}

	log.Printf("[store.products] respond 200 page=%d products=%d total=%d", page, len(products), total)

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products retrieved successfully", products, meta))
}
