package routes

import (
	"sisdna-portal/internal/controllers"
	"sisdna-portal/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runSincronizacionRouter(
	secureGroup *echo.Group,
	syncDefensoriaService services.SyncDefensoriaServiceInterface,
	syncSupervisionService services.SyncSupervisionServiceInterface,
	logger *zap.Logger,
) {
	sincronizacionCtrl := controllers.NewSincronizacionController(syncDefensoriaService, syncSupervisionService, logger)

	syncGroup := secureGroup.Group("/sincronizacion")
	{
		syncGroup.GET("/defensorias", sincronizacionCtrl.GetDefensorias)
		syncGroup.GET("/supervisiones", sincronizacionCtrl.GetSupervisiones)
		syncGroup.GET("/estados", sincronizacionCtrl.GetEstados)
	}
}
