package controllers

import (
	"net/http"

	"sisdna-portal/internal/services"
	"sisdna-portal/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UbigeoController struct {
	ubigeoService services.UbigeoServiceInterface
	logger        *zap.Logger
}

func NewUbigeoController(ubigeoService services.UbigeoServiceInterface, logger *zap.Logger) *UbigeoController {
	return &UbigeoController{ubigeoService: ubigeoService, logger: logger}
}

func (c *UbigeoController) GetDepartamentos(ctx echo.Context) error {
	departamentos, err := c.ubigeoService.ListDepartamentos(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, departamentos, "Departamentos obtenidos correctamente", http.StatusOK)
}

func (c *UbigeoController) GetProvincias(ctx echo.Context) error {
	provincias, err := c.ubigeoService.ListProvincias(ctx.Request().Context(), ctx.Param("departamento"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, provincias, "Provincias obtenidas correctamente", http.StatusOK)
}

func (c *UbigeoController) GetDistritos(ctx echo.Context) error {
	distritos, err := c.ubigeoService.ListDistritos(ctx.Request().Context(), ctx.Param("provincia"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, distritos, "Distritos obtenidos correctamente", http.StatusOK)
}

func (c *UbigeoController) GetRegionInfo(ctx echo.Context) error {
	region, err := c.ubigeoService.RegionInfo(ctx.Request().Context(), ctx.Param("codigo"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, region, "Informacion de region obtenida", http.StatusOK)
}
