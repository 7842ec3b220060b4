package routes

import (
	"sisdna-portal/internal/controllers"
	"sisdna-portal/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runReporteRouter(secureGroup *echo.Group, reporteService services.ReporteServiceInterface, logger *zap.Logger) {
	reporteCtrl := controllers.NewReporteController(reporteService, logger)

	reporteGroup := secureGroup.Group("/reportes")
	{
		reporteGroup.GET("/defensorias", reporteCtrl.GetStats)
		reporteGroup.GET("/defensorias/export", reporteCtrl.ExportDefensorias)
	}
}
