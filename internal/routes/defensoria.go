package routes

import (
	"sisdna-portal/internal/controllers"
	"sisdna-portal/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runDefensoriaRouter(api *echo.Group, secureGroup *echo.Group, defensoriaService services.DefensoriaServiceInterface, logger *zap.Logger) {
	defensoriaCtrl := controllers.NewDefensoriaController(defensoriaService, logger)

	// Citizen-facing directory, no credentials required.
	api.GET("/directorio/defensorias", defensoriaCtrl.GetDirectorio)

	secureGroup.GET("/defensorias", defensoriaCtrl.GetDefensorias)
	secureGroup.GET("/defensorias/:codigo", defensoriaCtrl.FindDefensoria)
	secureGroup.GET("/defensorias/responsables", defensoriaCtrl.GetResponsables)
}
