package controllers

import (
	"net/http"
	"strings"

	"sisdna-portal/internal/dto"
	"sisdna-portal/internal/entities"
	"sisdna-portal/internal/services"
	apperrors "sisdna-portal/pkg/errors"
	"sisdna-portal/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DefensoriaController struct {
	defensoriaService services.DefensoriaServiceInterface
	logger            *zap.Logger
}

func NewDefensoriaController(defensoriaService services.DefensoriaServiceInterface, logger *zap.Logger) *DefensoriaController {
	return &DefensoriaController{defensoriaService: defensoriaService, logger: logger}
}

func (c *DefensoriaController) searchFilter(ctx echo.Context) (entities.DefensoriaFilter, error) {
	var query dto.DefensoriaQueryDTO
	if err := ctx.Bind(&query); err != nil {
		return entities.DefensoriaFilter{}, apperrors.NewHttpError(http.StatusBadRequest, "parametros de busqueda invalidos", err, nil)
	}
	if err := ctx.Validate(&query); err != nil {
		return entities.DefensoriaFilter{}, err
	}

	paging := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	return entities.DefensoriaFilter{
		Ubigeo:       query.Ubigeo,
		CodigoDNA:    query.CodigoDNA,
		Estado:       query.Estado,
		EstadoSisdna: query.EstadoSisdna,
		Page:         paging.Page,
		PageSize:     paging.Limit,
	}, nil
}

// GetDirectorio is the public directory listing: no auth, no outbound
// case-management links.
func (c *DefensoriaController) GetDirectorio(ctx echo.Context) error {
	filter, err := c.searchFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	page, total, err := c.defensoriaService.Search(ctx.Request().Context(), filter, false)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, page, "Directorio de defensorias obtenido correctamente", http.StatusOK, total)
}

// GetDefensorias is the staff listing, with sisdna navigation links.
func (c *DefensoriaController) GetDefensorias(ctx echo.Context) error {
	filter, err := c.searchFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	page, total, err := c.defensoriaService.Search(ctx.Request().Context(), filter, true)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, page, "Listado de defensorias obtenido correctamente", http.StatusOK, total)
}

func (c *DefensoriaController) FindDefensoria(ctx echo.Context) error {
	codigo := ctx.Param("codigo")
	defensoria, err := c.defensoriaService.FindByCodigo(ctx.Request().Context(), codigo, true)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, defensoria, "Defensoria encontrada", http.StatusOK)
}

// GetResponsables resolves the latest designated contact for a batch of
// office codes, one request per rendered page.
func (c *DefensoriaController) GetResponsables(ctx echo.Context) error {
	var query dto.ResponsablesQueryDTO
	if err := ctx.Bind(&query); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "parametros invalidos", err, nil), c.logger)
	}
	if err := ctx.Validate(&query); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	codigos := strings.Split(query.Codigos, ",")
	for i := range codigos {
		codigos[i] = strings.TrimSpace(codigos[i])
	}

	responsables, err := c.defensoriaService.LoadResponsables(ctx.Request().Context(), codigos)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, responsables, "Responsables obtenidos correctamente", http.StatusOK)
}
