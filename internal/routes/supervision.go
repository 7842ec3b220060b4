package routes

import (
	"sisdna-portal/internal/controllers"
	"sisdna-portal/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runSupervisionRouter(secureGroup *echo.Group, supervisionService services.SupervisionServiceInterface, logger *zap.Logger) {
	supervisionCtrl := controllers.NewSupervisionController(supervisionService, logger)

	secureGroup.GET("/supervisiones", supervisionCtrl.GetSupervisiones)
	secureGroup.GET("/supervisiones/supervisores", supervisionCtrl.GetSupervisores)
	secureGroup.GET("/supervisiones/modalidades", supervisionCtrl.GetModalidades)
	secureGroup.GET("/supervisiones/:nid", supervisionCtrl.FindSupervision)
}
