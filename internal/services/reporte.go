package services

import (
	"context"
	"sort"
	"sync"

	"sisdna-portal/internal/cache"
	"sisdna-portal/internal/dto"
	"sisdna-portal/internal/entities"
	"sisdna-portal/internal/repositories"

	"go.uber.org/zap"
)

// Accreditation state keys in the caracteristicas table.
const (
	claveNoOperativa  = "a"
	claveAcreditada   = "b"
	claveNoAcreditada = "c"
)

const exportPageSize = 500

type ReporteServiceInterface interface {
	Stats(ctx context.Context, filter dto.ReporteFilterDTO) (*dto.DnaStatsDTO, error)
	ExportDefensorias(ctx context.Context, filter entities.DefensoriaFilter) ([]dto.DefensoriaDTO, error)
}

type ReporteService struct {
	reporteRepository        repositories.ReporteRepositoryInterface
	caracteristicaRepository repositories.CaracteristicaRepositoryInterface
	defensorias              DefensoriaServiceInterface
	regions                  *regionResolver
	caracteristicas          *cache.LookupCache
	logger                   *zap.Logger
}

func NewReporteService(
	reporteRepository repositories.ReporteRepositoryInterface,
	caracteristicaRepository repositories.CaracteristicaRepositoryInterface,
	ubigeoRepository repositories.UbigeoRepositoryInterface,
	defensorias DefensoriaServiceInterface,
	logger *zap.Logger,
) ReporteServiceInterface {
	return &ReporteService{
		reporteRepository:        reporteRepository,
		caracteristicaRepository: caracteristicaRepository,
		defensorias:              defensorias,
		regions:                  newRegionResolver(ubigeoRepository),
		caracteristicas:          cache.NewLookupCache(),
		logger:                   logger,
	}
}

// Stats aggregates the directory under the active filters. All four counts
// run concurrently against the same predicate set; any failing count fails
// the report.
func (s *ReporteService) Stats(ctx context.Context, filter dto.ReporteFilterDTO) (*dto.DnaStatsDTO, error) {
	entityFilter := entities.DefensoriaFilter{Ubigeo: filter.Ubigeo, Estado: filter.Estado}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		firstErr  error
		total     uint64
		porEstado map[string]uint64
		porDepto  map[string]uint64
		porTipo   map[string]uint64
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	wg.Add(4)
	go func() {
		defer wg.Done()
		var err error
		if total, err = s.reporteRepository.CountTotal(ctx, entityFilter); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if porEstado, err = s.reporteRepository.CountByEstado(ctx, entityFilter); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if porDepto, err = s.reporteRepository.CountByDepartamento(ctx, entityFilter); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if porTipo, err = s.reporteRepository.CountByTipo(ctx, entityFilter); err != nil {
			fail(err)
		}
	}()
	wg.Wait()
	if firstErr != nil {
		s.logger.Error("stats aggregation failed", zap.Error(firstErr))
		return nil, firstErr
	}

	stats := &dto.DnaStatsDTO{
		TotalDefensorias: total,
		NoOperativas:     porEstado[claveNoOperativa],
		Acreditadas:      porEstado[claveAcreditada],
		NoAcreditadas:    porEstado[claveNoAcreditada],
	}
	stats.PorEstado = s.estadoStats(ctx, porEstado, total)
	stats.PorDepartamento = s.departamentoStats(ctx, porDepto, total)
	stats.PorTipo = s.tipoStats(ctx, porTipo, total)
	return stats, nil
}

func (s *ReporteService) estadoStats(ctx context.Context, counts map[string]uint64, total uint64) []dto.EstadoStatDTO {
	labels := s.resolveClaves(ctx, keysOfCounts(counts))
	stats := make([]dto.EstadoStatDTO, 0, len(counts))
	for clave, count := range counts {
		stats = append(stats, dto.EstadoStatDTO{
			Estado:     nameOr(labels, clave, fallbackGenerico),
			Cantidad:   count,
			Porcentaje: percentage(count, total),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Cantidad > stats[j].Cantidad })
	return stats
}

func (s *ReporteService) tipoStats(ctx context.Context, counts map[string]uint64, total uint64) []dto.TipoStatDTO {
	labels := s.resolveClaves(ctx, keysOfCounts(counts))
	stats := make([]dto.TipoStatDTO, 0, len(counts))
	for clave, count := range counts {
		stats = append(stats, dto.TipoStatDTO{
			Tipo:       nameOr(labels, clave, fallbackGenerico),
			Cantidad:   count,
			Porcentaje: percentage(count, total),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Cantidad > stats[j].Cantidad })
	return stats
}

func (s *ReporteService) departamentoStats(ctx context.Context, counts map[string]uint64, total uint64) []dto.DepartamentoStatDTO {
	codes := make([]string, 0, len(counts))
	for prefix := range counts {
		codes = append(codes, prefix+"0000")
	}
	names, err := s.regions.resolveNames(ctx, codes)
	if err != nil {
		s.logger.Warn("departamento names lookup degraded", zap.Error(err))
	}

	stats := make([]dto.DepartamentoStatDTO, 0, len(counts))
	for prefix, count := range counts {
		stats = append(stats, dto.DepartamentoStatDTO{
			Departamento: nameOr(names, prefix+"0000", fallbackRegion),
			Cantidad:     count,
			Porcentaje:   percentage(count, total),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Cantidad > stats[j].Cantidad })
	return stats
}

func (s *ReporteService) resolveClaves(ctx context.Context, claves []string) map[string]string {
	labels, err := s.caracteristicas.Resolve(ctx, claves, func(ctx context.Context, missing []string) (map[string]string, error) {
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
	if err != nil {
		s.logger.Warn("caracteristicas lookup degraded", zap.Error(err))
		return map[string]string{}
	}
	return labels
}

// ExportDefensorias walks the full filtered listing page by page so the
// spreadsheet never holds a partial directory.
func (s *ReporteService) ExportDefensorias(ctx context.Context, filter entities.DefensoriaFilter) ([]dto.DefensoriaDTO, error) {
	filter.Page = 1
	filter.PageSize = exportPageSize

	all := make([]dto.DefensoriaDTO, 0)
	for {
		page, total, err := s.defensorias.Search(ctx, filter, true)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if uint64(len(all)) >= total || len(page) == 0 {
			return all, nil
		}
		filter.Page++
	}
}

func percentage(count, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func keysOfCounts(counts map[string]uint64) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	return keys
}
