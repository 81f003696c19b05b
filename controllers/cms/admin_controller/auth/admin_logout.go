package admin_auth_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shitiandmw/e-commerce-sub001/models"
)

// AdminLogout godoc
// @Summary Logout admin
// @Description Clears the admin auth cookie. Tokens are stateless, so the client must also discard any stored token
// @Tags Admin - Auth
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /admin/logout [post]
func AdminLogout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("admin_token", "", -1, "/", "", false, true)

	log.Printf("[admin.logout] cookie cleared")

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logout successful", nil))
}
