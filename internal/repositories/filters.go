package repositories

import (
	"sisdna-portal/internal/entities"
	"sisdna-portal/pkg/ubigeo"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// FilterAll is the sentinel the UI sends for "no selection" in enum filters.
const FilterAll = "all"

// defensoriaPredicates builds the WHERE conditions for an office search.
// Count and data queries are both derived from this one set, so the
// pagination metadata always describes the rows being displayed.
func defensoriaPredicates(f entities.DefensoriaFilter) []sq.Sqlizer {
	var preds []sq.Sqlizer

	if p := ubigeo.Predicate("nid_ubigeo", f.Ubigeo); p != nil {
		preds = append(preds, p)
	}
	if f.CodigoDNA != "" {
		preds = append(preds, sq.ILike{"codigo_dna": "%" + f.CodigoDNA + "%"})
	}
	if f.Estado != "" && f.Estado != FilterAll {
		preds = append(preds, sq.Eq{"nid_estado": f.Estado})
	}
	if f.EstadoSisdna != "" && f.EstadoSisdna != FilterAll {
		preds = append(preds, sq.Eq{"nid_estado_sisdna": f.EstadoSisdna})
	}
	return preds
}

// supervisionPredicates builds the WHERE conditions for a supervision
// search. codigosDNA carries the office codes already resolved from a
// location filter; nil means the location filter was not active.
func supervisionPredicates(f entities.SupervisionFilter, codigosDNA []string) []sq.Sqlizer {
	var preds []sq.Sqlizer

	if f.CodigoDNA != "" {
		preds = append(preds, sq.ILike{"codigo_dna": "%" + f.CodigoDNA + "%"})
	}
	if f.Supervisor != "" && f.Supervisor != FilterAll {
		preds = append(preds, sq.Eq{"codigo_supervisor": f.Supervisor})
	}
	if f.FechaDesde != nil {
		preds = append(preds, sq.GtOrEq{"fecha": *f.FechaDesde})
	}
	if f.FechaHasta != nil {
		preds = append(preds, sq.LtOrEq{"fecha": *f.FechaHasta})
	}
	if f.EstadoSisdna != "" && f.EstadoSisdna != FilterAll {
		preds = append(preds, sq.Eq{"nid_estado_sisdna": f.EstadoSisdna})
	}
	if codigosDNA != nil {
		preds = append(preds, sq.Eq{"codigo_dna": codigosDNA})
	}
	return preds
}

func applyPredicates(builder sq.SelectBuilder, preds []sq.Sqlizer) sq.SelectBuilder {
	for _, p := range preds {
		builder = builder.Where(p)
	}
	return builder
}

// pageRange converts a 1-based page into limit/offset.
func pageRange(page, pageSize int) (limit uint64, offset uint64) {
	if page < 1 {
		page = 1
	}
	return uint64(pageSize), uint64((page - 1) * pageSize)
}
