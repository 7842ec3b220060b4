package controllers

import (
	"net/http"

	"sisdna-portal/internal/dto"
	"sisdna-portal/internal/entities"
	"sisdna-portal/internal/services"
	apperrors "sisdna-portal/pkg/errors"
	"sisdna-portal/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SincronizacionController struct {
	syncDefensoriaService  services.SyncDefensoriaServiceInterface
	syncSupervisionService services.SyncSupervisionServiceInterface
	logger                 *zap.Logger
}

func NewSincronizacionController(
	syncDefensoriaService services.SyncDefensoriaServiceInterface,
	syncSupervisionService services.SyncSupervisionServiceInterface,
	logger *zap.Logger,
) *SincronizacionController {
	return &SincronizacionController{
		syncDefensoriaService:  syncDefensoriaService,
		syncSupervisionService: syncSupervisionService,
		logger:                 logger,
	}
}

func (c *SincronizacionController) GetDefensorias(ctx echo.Context) error {
	var query dto.DefensoriaQueryDTO
	if err := ctx.Bind(&query); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "parametros de busqueda invalidos", err, nil), c.logger)
	}
	if err := ctx.Validate(&query); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	paging := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter := entities.DefensoriaFilter{
		Ubigeo:       query.Ubigeo,
		CodigoDNA:    query.CodigoDNA,
		EstadoSisdna: query.EstadoSisdna,
		Page:         paging.Page,
		PageSize:     paging.Limit,
	}

	page, total, err := c.syncDefensoriaService.Search(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, page, "Estado de sincronizacion de defensorias obtenido", http.StatusOK, total)
}

func (c *SincronizacionController) GetSupervisiones(ctx echo.Context) error {
	filter, err := supervisionFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	page, total, err := c.syncSupervisionService.Search(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, page, "Estado de sincronizacion de supervisiones obtenido", http.StatusOK, total)
}

func (c *SincronizacionController) GetEstados(ctx echo.Context) error {
	estados, err := c.syncDefensoriaService.ListEstados(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, estados, "Estados de sincronizacion obtenidos", http.StatusOK)
}
