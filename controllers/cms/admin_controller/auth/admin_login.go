package admin_auth_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shitiandmw/e-commerce-sub001/models"
	"github.com/shitiandmw/e-commerce-sub001/services"
)

// AdminLogin godoc
// @Summary Login as admin
// @Description Authenticate the dashboard admin with email and password. Returns JWT token and sets it as a cookie
// @Tags Admin - Auth
// @Accept json
// @Produce json
// @Param loginRequest body models.AdminLoginRequest true "Email and password"
// @Success 200 {object} models.ApiResponse{data=models.AdminLoginResponse}
// @Failure 400 {object} models.ApiResponse "Invalid credentials"
// @Failure 500 {object} models.ApiResponse "Server error"
// @Router /admin/login [post]
func AdminLogin(c *gin.Context) {
	log.Printf("[admin.login] attempt")

	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request"))
		return
	}

	admin, err := services.GetAdminAccount()
	if err != nil {
		log.Printf("[admin.login] admin account not configured")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	if req.Email != admin.Email || !services.VerifyAdminPassword(admin.PasswordHash, req.Password) {
		log.Printf("[admin.login] invalid credentials: %s", req.Email)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid email or password"))
		return
	}

	// Generate JWT token
	token, err := services.GenerateAdminJWT(admin.ID, admin.Email)
	if err != nil {
		log.Printf("[admin.login] failed to generate token: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Server error"))
		return
	}

	// ✅ SET TOKEN IN HTTP COOKIE
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		"admin_token",
		token,
		24*60*60,
		"/",
		"",
		false,
		true,
	)

	log.Printf("[admin.login] success: %s (%s)", admin.Email, admin.ID)

	response := models.AdminLoginResponse{
		Admin: models.AdminResponse{ID: admin.ID, Email: admin.Email, Name: admin.Name},
		Token: token,
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Login successful", response))
}
