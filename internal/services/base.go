package services

import (
	"context"
	"fmt"

	"sisdna-portal/internal/cache"
	"sisdna-portal/internal/entities"
	"sisdna-portal/internal/repositories"
	apperrors "sisdna-portal/pkg/errors"
	"sisdna-portal/pkg/ubigeo"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100

	// Display fallbacks for codes the reference tables cannot resolve.
	// The registry is fed by an external system and dangling codes do
	// occur; a search must degrade to these labels, never fail.
	fallbackRegion     = "Desconocido"
	fallbackDireccion  = "No especificada"
	fallbackSupervisor = "No asignado"
	fallbackGenerico   = "No especificado"
)

// clampPaging normalizes user-supplied paging: page floors at 1, the page
// size defaults to 25 and is capped at 100.
func clampPaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// validateFechaRange rejects an inverted date range before any query runs.
func validateFechaRange(f entities.SupervisionFilter) error {
	if f.FechaDesde != nil && f.FechaHasta != nil && f.FechaDesde.After(*f.FechaHasta) {
		return apperrors.NewInvalidInputError("fecha_desde no puede ser posterior a fecha_hasta")
	}
	return nil
}

// Region is the resolved location triple of a district ubigeo.
type Region struct {
	Departamento string `json:"departamento"`
	Provincia    string `json:"provincia"`
	Distrito     string `json:"distrito"`
}

// regionResolver turns district ubigeos into named region triples. Names go
// through an additive lookup cache, so a page of offices in the same
// province costs at most one batch query, and none once warm.
type regionResolver struct {
	ubigeoRepository repositories.UbigeoRepositoryInterface
	names            *cache.LookupCache
}

func newRegionResolver(ubigeoRepository repositories.UbigeoRepositoryInterface) *regionResolver {
	return &regionResolver{
		ubigeoRepository: ubigeoRepository,
		names:            cache.NewLookupCache(),
	}
}

func (r *regionResolver) resolveNames(ctx context.Context, codes []string) (map[string]string, error) {
	return r.names.Resolve(ctx, codes, func(ctx context.Context, missing []string) (map[string]string, error) {
		ubigeos, err := r.ubigeoRepository.GetByCodes(ctx, missing)
		if err != nil {
			return nil, err
		}
		fetched := make(map[string]string, len(ubigeos))
		for _, u := range ubigeos {
			fetched[u.Codigo] = u.Nombre
		}
		return fetched, nil
	})
}

// RegionsFor resolves the region triple for each district code in one
// batch, deriving the parent department and province codes locally.
func (r *regionResolver) RegionsFor(ctx context.Context, districtCodes []string) (map[string]Region, error) {
	all := make([]string, 0, len(districtCodes)*3)
	for _, code := range districtCodes {
		if code == "" {
			continue
		}
		all = append(all, code, ubigeo.DepartmentCode(code), ubigeo.ProvinceCode(code))
	}

	names, err := r.resolveNames(ctx, all)
	if err != nil {
		return nil, err
	}

	regions := make(map[string]Region, len(districtCodes))
	for _, code := range districtCodes {
		if code == "" {
			continue
		}
		regions[code] = Region{
			Departamento: nameOr(names, ubigeo.DepartmentCode(code), fallbackRegion),
			Provincia:    nameOr(names, ubigeo.ProvinceCode(code), fallbackRegion),
			Distrito:     nameOr(names, code, fallbackRegion),
		}
	}
	return regions, nil
}

// Ubicacion renders a region as the "departamento / provincia / distrito"
// line the sync screens display.
func (reg Region) Ubicacion() string {
	return fmt.Sprintf("%s / %s / %s", reg.Departamento, reg.Provincia, reg.Distrito)
}

// resolveOffices fetches the offices behind one page of rows in a single
// batch and maps each code to its display name and region triple. Region
// names go through the resolver's lookup cache.
func resolveOffices(
	ctx context.Context,
	defensoriaRepository repositories.DefensoriaRepositoryInterface,
	regions *regionResolver,
	codigosDNA []string,
) (map[string]string, map[string]Region, error) {
	defensorias, err := defensoriaRepository.ListByCodigos(ctx, codigosDNA)
	if err != nil {
		return nil, nil, err
	}

	nombres := make(map[string]string, len(defensorias))
	districtByCodigo := make(map[string]string, len(defensorias))
	districts := make([]string, 0, len(defensorias))
	for _, d := range defensorias {
		nombres[d.CodigoDNA] = d.Nombre
		districtByCodigo[d.CodigoDNA] = d.UbigeoCodigo
		districts = append(districts, d.UbigeoCodigo)
	}

	byDistrict, err := regions.RegionsFor(ctx, districts)
	if err != nil {
		return nombres, nil, err
	}

	resolved := make(map[string]Region, len(districtByCodigo))
	for codigo, district := range districtByCodigo {
		if region, ok := byDistrict[district]; ok {
			resolved[codigo] = region
		}
	}
	return nombres, resolved, nil
}

func nameOr(names map[string]string, key, fallback string) string {
	if name, ok := names[key]; ok && name != "" {
		return name
	}
	return fallback
}
