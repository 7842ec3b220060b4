package controllers

import (
	"net/http"
	"strconv"
	"time"

	"sisdna-portal/internal/dto"
	"sisdna-portal/internal/entities"
	"sisdna-portal/internal/services"
	apperrors "sisdna-portal/pkg/errors"
	"sisdna-portal/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SupervisionController struct {
	supervisionService services.SupervisionServiceInterface
	logger             *zap.Logger
}

func NewSupervisionController(supervisionService services.SupervisionServiceInterface, logger *zap.Logger) *SupervisionController {
	return &SupervisionController{supervisionService: supervisionService, logger: logger}
}

func supervisionFilter(ctx echo.Context) (entities.SupervisionFilter, error) {
	var query dto.SupervisionQueryDTO
	if err := ctx.Bind(&query); err != nil {
		return entities.SupervisionFilter{}, apperrors.NewHttpError(http.StatusBadRequest, "parametros de busqueda invalidos", err, nil)
	}
	if err := ctx.Validate(&query); err != nil {
		return entities.SupervisionFilter{}, err
	}

	paging := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter := entities.SupervisionFilter{
		Ubigeo:       query.Ubigeo,
		CodigoDNA:    query.CodigoDNA,
		Supervisor:   query.Supervisor,
		EstadoSisdna: query.EstadoSisdna,
		Page:         paging.Page,
		PageSize:     paging.Limit,
	}
	if query.FechaDesde != "" {
		desde, _ := time.Parse("2006-01-02", query.FechaDesde)
		filter.FechaDesde = &desde
	}
	if query.FechaHasta != "" {
		hasta, _ := time.Parse("2006-01-02", query.FechaHasta)
		filter.FechaHasta = &hasta
	}
	return filter, nil
}

func (c *SupervisionController) GetSupervisiones(ctx echo.Context) error {
	filter, err := supervisionFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	page, total, err := c.supervisionService.Search(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, page, "Listado de supervisiones obtenido correctamente", http.StatusOK, total)
}

func (c *SupervisionController) FindSupervision(ctx echo.Context) error {
	nid, err := strconv.ParseUint(ctx.Param("nid"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("identificador de supervision invalido"), c.logger)
	}

	supervision, err := c.supervisionService.FindByNid(ctx.Request().Context(), nid)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, supervision, "Supervision obtenida correctamente", http.StatusOK)
}

func (c *SupervisionController) GetSupervisores(ctx echo.Context) error {
	supervisores, err := c.supervisionService.ListSupervisores(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, supervisores, "Listado de supervisores obtenido correctamente", http.StatusOK)
}

func (c *SupervisionController) GetModalidades(ctx echo.Context) error {
	modalidades, err := c.supervisionService.ListModalidades(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, modalidades, "Listado de modalidades obtenido correctamente", http.StatusOK)
}
