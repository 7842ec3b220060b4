package routes

import (
	"sisdna-portal/internal/controllers"
	"sisdna-portal/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runUbigeoRouter(api *echo.Group, ubigeoService services.UbigeoServiceInterface, logger *zap.Logger) {
	ubigeoCtrl := controllers.NewUbigeoController(ubigeoService, logger)

	// Cascading selectors feed the public directory form.
	ubigeoGroup := api.Group("/ubigeos")
	{
		ubigeoGroup.GET("/departamentos", ubigeoCtrl.GetDepartamentos)
		ubigeoGroup.GET("/departamentos/:departamento/provincias", ubigeoCtrl.GetProvincias)
		ubigeoGroup.GET("/provincias/:provincia/distritos", ubigeoCtrl.GetDistritos)
		ubigeoGroup.GET("/:codigo", ubigeoCtrl.GetRegionInfo)
	}
}
