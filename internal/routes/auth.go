package routes

import (
	"sisdna-portal/internal/controllers"
	"sisdna-portal/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAuthRouter(api *echo.Group, secureGroup *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger) {
	authCtrl := controllers.NewAuthController(authService, logger)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh_token", authCtrl.Refresh)
		authGroup.POST("/logout", authCtrl.Logout)
	}
	secureGroup.GET("/auth/me", authCtrl.Me)
}
