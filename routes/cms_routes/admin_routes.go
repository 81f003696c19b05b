package cms_routes

import (
	"github.com/gin-gonic/gin"
	admin_auth_controller "github.com/shitiandmw/e-commerce-sub001/controllers/cms/admin_controller/auth"
	"github.com/shitiandmw/e-commerce-sub001/middleware"
)

// SetupAdminRoutes registers admin auth endpoints at /admin
func SetupAdminRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")

	admin.POST("/login", admin_auth_controller.AdminLogin)
	admin.POST("/logout", admin_auth_controller.AdminLogout)
	admin.GET("/me", middleware.AuthMiddleware(), admin_auth_controller.GetAdminMe)
}
