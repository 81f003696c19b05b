package admin_auth_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shitiandmw/e-commerce-sub001/middleware"
	"github.com/shitiandmw/e-commerce-sub001/models"
	"github.com/shitiandmw/e-commerce-sub001/services"
)

// GetAdminMe godoc
// @Summary Get current admin
// @Description Returns the authenticated admin's profile from the token claims
// @Tags Admin - Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.AdminResponse}
// @Failure 401 {object} models.ApiResponse
// @Router /admin/me [get]
func GetAdminMe(c *gin.Context) {
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Not authenticated"))
		return
	}
	email, _ := middleware.GetAdminEmailFromContext(c)

	name := ""
	if admin, err := services.GetAdminAccount(); err == nil {
		name = admin.Name
	}

	log.Printf("[admin.me] respond 200 admin=%s", email)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Admin profile retrieved successfully", models.AdminResponse{
		ID:    adminID,
		Email: email,
		Name:  name,
	}))
}
