package services

import (
	"context"
	"fmt"
	"sync"

	"sisdna-portal/internal/cache"
	"sisdna-portal/internal/dto"
	"sisdna-portal/internal/entities"
	"sisdna-portal/internal/repositories"
	"sisdna-portal/pkg/config"
	"sisdna-portal/pkg/utils"

	"go.uber.org/zap"
)

type DefensoriaServiceInterface interface {
	Search(ctx context.Context, filter entities.DefensoriaFilter, staff bool) ([]dto.DefensoriaDTO, uint64, error)
	FindByCodigo(ctx context.Context, codigoDNA string, staff bool) (*dto.DefensoriaDTO, error)
	LoadResponsables(ctx context.Context, codigosDNA []string) (map[string]*dto.ResponsableDTO, error)
}

type DefensoriaService struct {
	defensoriaRepository     repositories.DefensoriaRepositoryInterface
	responsableRepository    repositories.ResponsableRepositoryInterface
	caracteristicaRepository repositories.CaracteristicaRepositoryInterface
	regions                  *regionResolver
	caracteristicas          *cache.LookupCache
	sisdnaCfg                *config.SisdnaConfig
	logger                   *zap.Logger
}

func NewDefensoriaService(
	defensoriaRepository repositories.DefensoriaRepositoryInterface,
	responsableRepository repositories.ResponsableRepositoryInterface,
	caracteristicaRepository repositories.CaracteristicaRepositoryInterface,
	ubigeoRepository repositories.UbigeoRepositoryInterface,
	sisdnaCfg *config.SisdnaConfig,
	logger *zap.Logger,
) DefensoriaServiceInterface {
	return &DefensoriaService{
		defensoriaRepository:     defensoriaRepository,
		responsableRepository:    responsableRepository,
		caracteristicaRepository: caracteristicaRepository,
		regions:                  newRegionResolver(ubigeoRepository),
		caracteristicas:          cache.NewLookupCache(),
		sisdnaCfg:                sisdnaCfg,
		logger:                   logger,
	}
}

// Search runs the directory query: count first, short-circuit on zero, then
// fetch the requested page and resolve every lookup code for display. A
// count failure fails the search; it is never reported as zero results.
func (s *DefensoriaService) Search(ctx context.Context, filter entities.DefensoriaFilter, staff bool) ([]dto.DefensoriaDTO, uint64, error) {
	filter.Page, filter.PageSize = clampPaging(filter.Page, filter.PageSize)

	total, err := s.defensoriaRepository.Count(ctx, filter)
	if err != nil {
		s.logger.Error("defensorias count failed", zap.Error(err))
		return nil, 0, err
	}
	if total == 0 {
		return []dto.DefensoriaDTO{}, 0, nil
	}

	limit := uint64(filter.PageSize)
	offset := uint64((filter.Page - 1) * filter.PageSize)
	defensorias, err := s.defensoriaRepository.List(ctx, filter, limit, offset)
	if err != nil {
		s.logger.Error("defensorias list failed", zap.Error(err))
		return nil, 0, err
	}

	return s.denormalize(ctx, defensorias, staff), total, nil
}

func (s *DefensoriaService) FindByCodigo(ctx context.Context, codigoDNA string, staff bool) (*dto.DefensoriaDTO, error) {
	defensoria, err := s.defensoriaRepository.FindByCodigo(ctx, codigoDNA)
	if err != nil {
		return nil, err
	}
	page := s.denormalize(ctx, []entities.Defensoria{*defensoria}, staff)
	return &page[0], nil
}

// denormalize resolves type/accreditation codes and region names for one
// page of rows. The two batch lookups are independent and run concurrently;
// either failing degrades that column to its fallback label instead of
// failing the page.
func (s *DefensoriaService) denormalize(ctx context.Context, defensorias []entities.Defensoria, staff bool) []dto.DefensoriaDTO {
	claveSet := make(map[string]bool)
	districtCodes := make([]string, 0, len(defensorias))
	for _, d := range defensorias {
		claveSet[d.TipoCodigo] = true
		claveSet[d.EstadoCodigo] = true
		districtCodes = append(districtCodes, d.UbigeoCodigo)
	}
	claves := make([]string, 0, len(claveSet))
	for clave := range claveSet {
		claves = append(claves, clave)
	}

	var (
		wg      sync.WaitGroup
		valores map[string]string
		regions map[string]Region
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		valores, err = s.resolveCaracteristicas(ctx, claves)
		if err != nil {
			s.logger.Warn("caracteristicas lookup degraded", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		regions, err = s.regions.RegionsFor(ctx, districtCodes)
		if err != nil {
			s.logger.Warn("ubigeo lookup degraded", zap.Error(err))
		}
	}()
	wg.Wait()

	page := make([]dto.DefensoriaDTO, 0, len(defensorias))
	for _, d := range defensorias {
		region, ok := regions[d.UbigeoCodigo]
		if !ok {
			region = Region{Departamento: fallbackRegion, Provincia: fallbackRegion, Distrito: fallbackRegion}
		}
		row := dto.DefensoriaDTO{
			CodigoDNA:          d.CodigoDNA,
			Nombre:             d.Nombre,
			TipoDemuna:         nameOr(valores, d.TipoCodigo, fallbackGenerico),
			UbigeoCodigo:       d.UbigeoCodigo,
			Direccion:          stringOr(utils.NullStringToString(d.Direccion), fallbackDireccion),
			Telefono:           utils.NullStringToString(d.Telefono),
			Correo:             utils.NullStringToString(d.Correo),
			EstadoAcreditacion: nameOr(valores, d.EstadoCodigo, fallbackGenerico),
			Departamento:       region.Departamento,
			Provincia:          region.Provincia,
			Distrito:           region.Distrito,
		}
		if staff {
			row.SisdnaURL = fmt.Sprintf("%s?codigoDna=%s", s.sisdnaCfg.CaseURL, d.CodigoDNA)
		}
		page = append(page, row)
	}
	return page
}

func (s *DefensoriaService) resolveCaracteristicas(ctx context.Context, claves []string) (map[string]string, error) {
	return s.caracteristicas.Resolve(ctx, claves, func(ctx context.Context, missing []string) (map[string]string, error) {
		caracteristicas, err := s.caracteristicaRepository.GetByClaves(ctx, missing)
		if err != nil {
			return nil, err
		}
		fetched := make(map[string]string, len(caracteristicas))
		for _, c := range caracteristicas {
			fetched[c.Clave] = c.Valor
		}
		return fetched, nil
	})
}

// LoadResponsables returns the latest designated contact per office. An
// office with no contact on file maps to nil; callers render the absence,
// they do not treat it as an error.
func (s *DefensoriaService) LoadResponsables(ctx context.Context, codigosDNA []string) (map[string]*dto.ResponsableDTO, error) {
	responsables, err := s.responsableRepository.ListLatestByCodigos(ctx, codigosDNA)
	if err != nil {
		s.logger.Error("responsables lookup failed", zap.Error(err))
		return nil, err
	}

	byCodigo := make(map[string]*dto.ResponsableDTO, len(codigosDNA))
	for _, codigo := range codigosDNA {
		byCodigo[codigo] = nil
	}
	for _, p := range responsables {
		byCodigo[p.CodigoDNA] = &dto.ResponsableDTO{
			Nombres:        p.Nombres,
			Apellidos:      p.Apellidos,
			Correo:         utils.NullStringToString(p.Correo),
			Telefono:       utils.NullStringToString(p.Telefono),
			FecDesignacion: utils.NullTimeToDateString(p.FecDesignacion),
		}
	}
	return byCodigo, nil
}

func stringOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
