package controllers

import (
	"fmt"
	"net/http"
	"time"

	"sisdna-portal/internal/dto"
	"sisdna-portal/internal/entities"
	"sisdna-portal/internal/services"
	apperrors "sisdna-portal/pkg/errors"
	"sisdna-portal/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var exportHeaders = []interface{}{
	"Código DNA", "Nombre", "Tipo", "Estado de acreditación",
	"Departamento", "Provincia", "Distrito",
	"Dirección", "Teléfono", "Correo",
}

type ReporteController struct {
	reporteService services.ReporteServiceInterface
	logger         *zap.Logger
}

func NewReporteController(reporteService services.ReporteServiceInterface, logger *zap.Logger) *ReporteController {
	return &ReporteController{reporteService: reporteService, logger: logger}
}

func (c *ReporteController) GetStats(ctx echo.Context) error {
	var query dto.ReporteFilterDTO
	if err := ctx.Bind(&query); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "parametros invalidos", err, nil), c.logger)
	}
	if err := ctx.Validate(&query); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	stats, err := c.reporteService.Stats(ctx.Request().Context(), query)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "Estadisticas obtenidas correctamente", http.StatusOK)
}

// ExportDefensorias streams the filtered directory as a spreadsheet.
func (c *ReporteController) ExportDefensorias(ctx echo.Context) error {
	var query dto.DefensoriaQueryDTO
	if err := ctx.Bind(&query); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "parametros invalidos", err, nil), c.logger)
	}
	if err := ctx.Validate(&query); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	filter := entities.DefensoriaFilter{
		Ubigeo:       query.Ubigeo,
		CodigoDNA:    query.CodigoDNA,
		Estado:       query.Estado,
		EstadoSisdna: query.EstadoSisdna,
	}
	rows, err := c.reporteService.ExportDefensorias(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.respondWithXLSX(ctx, rows)
}

func (c *ReporteController) respondWithXLSX(ctx echo.Context, rows []dto.DefensoriaDTO) error {
	f := excelize.NewFile()
	sheet := "Defensorías"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &exportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "J1", style)

	for i, item := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			item.CodigoDNA, item.Nombre, item.TipoDemuna, item.EstadoAcreditacion,
			item.Departamento, item.Provincia, item.Distrito,
			item.Direccion, item.Telefono, item.Correo,
		}
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "C", "G", 20)
	f.SetColWidth(sheet, "H", "H", 35)
	f.SetColWidth(sheet, "J", "J", 30)

	fileName := fmt.Sprintf("defensorias_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
