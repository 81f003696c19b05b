package category_controller

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

// Init wires the commerce client used by the category handlers.
func Init(client *services.CommerceClient) {
	commerceClient = client
}

// GetCategories godoc
// @Summary Get product categories
// @Description Get paginated product categories for the storefront navigation, proxied from the commerce platform
// @Tags store
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(50)
// @Success 200 {object} models.ApiResponse{data=[]models.ProductCategory}
// @Failure 502 {object} models.ApiResponse
// @Router /store/categories [get]
func GetCategories(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 50
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	categories, total, err := commerceClient.ListCategoriesPage(ctx, limit, (page-1)*limit)
	if err != nil {
		log.Printf("[store.categories] ERROR err=%v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to load categories"))
		return
	}

	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}

	log.Printf("[store.categories] respond 200 categories=%d total=%d", len(categories), total)

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Categories retrieved successfully", categories, meta))
}
