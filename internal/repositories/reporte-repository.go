package repositories

import (
	"context"

	"sisdna-portal/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReporteRepositoryInterface interface {
	CountTotal(ctx context.Context, filter entities.DefensoriaFilter) (uint64, error)
	CountByEstado(ctx context.Context, filter entities.DefensoriaFilter) (map[string]uint64, error)
	CountByDepartamento(ctx context.Context, filter entities.DefensoriaFilter) (map[string]uint64, error)
	CountByTipo(ctx context.Context, filter entities.DefensoriaFilter) (map[string]uint64, error)
}

type reporteRepository struct{ storage *pgxpool.Pool }

func NewReporteRepository(storage *pgxpool.Pool) ReporteRepositoryInterface {
	return &reporteRepository{storage: storage}
}

// Every aggregate shares the listing predicates, so the report always
// describes exactly the population the directory shows.
func (r *reporteRepository) base(filter entities.DefensoriaFilter) sq.SelectBuilder {
	return applyPredicates(psql.Select().From(defensoriaTable), defensoriaPredicates(filter))
}

func (r *reporteRepository) CountTotal(ctx context.Context, filter entities.DefensoriaFilter) (uint64, error) {
	query, args, err := r.base(filter).Columns("COUNT(*)").ToSql()
	if err != nil {
		return 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *reporteRepository) CountByEstado(ctx context.Context, filter entities.DefensoriaFilter) (map[string]uint64, error) {
	return r.grouped(ctx, r.base(filter).Columns("nid_estado", "COUNT(*)").GroupBy("nid_estado"))
}

func (r *reporteRepository) CountByDepartamento(ctx context.Context, filter entities.DefensoriaFilter) (map[string]uint64, error) {
	return r.grouped(ctx, r.base(filter).
		Columns("SUBSTRING(nid_ubigeo FROM 1 FOR 2)", "COUNT(*)").
		GroupBy("SUBSTRING(nid_ubigeo FROM 1 FOR 2)"))
}

func (r *reporteRepository) CountByTipo(ctx context.Context, filter entities.DefensoriaFilter) (map[string]uint64, error) {
	return r.grouped(ctx, r.base(filter).Columns("nid_tipo", "COUNT(*)").GroupBy("nid_tipo"))
}

func (r *reporteRepository) grouped(ctx context.Context, builder sq.SelectBuilder) (map[string]uint64, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]uint64)
	for rows.Next() {
		var key string
		var count uint64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}
