package repositories

import (
	"context"
	"errors"
	"strings"

	"sisdna-portal/internal/entities"
	apperrors "sisdna-portal/pkg/errors"
	"sisdna-portal/pkg/ubigeo"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defensoriaTable  = "defensorias"
	defensoriaFields = "codigo_dna, txt_nombre, nid_tipo, nid_ubigeo, txt_direccion, txt_telefono, txt_correo, nid_estado, nid_estado_sisdna, txt_campos_desactualizados"
)

type DefensoriaRepositoryInterface interface {
	Count(ctx context.Context, filter entities.DefensoriaFilter) (uint64, error)
	List(ctx context.Context, filter entities.DefensoriaFilter, limit, offset uint64) ([]entities.Defensoria, error)
	FindByCodigo(ctx context.Context, codigoDNA string) (*entities.Defensoria, error)
	ListByCodigos(ctx context.Context, codigosDNA []string) ([]entities.Defensoria, error)
	ListCodigosByUbigeo(ctx context.Context, ubigeoCode string) ([]string, error)
}

type defensoriaRepository struct{ storage *pgxpool.Pool }

func NewDefensoriaRepository(storage *pgxpool.Pool) DefensoriaRepositoryInterface {
	return &defensoriaRepository{storage: storage}
}

func (r *defensoriaRepository) Count(ctx context.Context, filter entities.DefensoriaFilter) (uint64, error) {
	query, args, err := applyPredicates(psql.Select("COUNT(*)").From(defensoriaTable), defensoriaPredicates(filter)).ToSql()
	if err != nil {
		return 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *defensoriaRepository) List(ctx context.Context, filter entities.DefensoriaFilter, limit, offset uint64) ([]entities.Defensoria, error) {
	builder := applyPredicates(
		psql.Select(strings.Split(defensoriaFields, ", ")...).From(defensoriaTable),
		defensoriaPredicates(filter),
	).OrderBy("codigo_dna").Limit(limit).Offset(offset)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	defensorias := make([]entities.Defensoria, 0)
	for rows.Next() {
		var d entities.Defensoria
		if err := rows.Scan(&d.CodigoDNA, &d.Nombre, &d.TipoCodigo, &d.UbigeoCodigo, &d.Direccion, &d.Telefono, &d.Correo, &d.EstadoCodigo, &d.EstadoSisdnaCodigo, &d.CamposDesactualizados); err != nil {
			return nil, err
		}
		defensorias = append(defensorias, d)
	}
	return defensorias, rows.Err()
}

func (r *defensoriaRepository) FindByCodigo(ctx context.Context, codigoDNA string) (*entities.Defensoria, error) {
	query, args, err := psql.Select(strings.Split(defensoriaFields, ", ")...).
		From(defensoriaTable).
		Where(sq.Eq{"codigo_dna": codigoDNA}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var d entities.Defensoria
	err = r.storage.QueryRow(ctx, query, args...).Scan(&d.CodigoDNA, &d.Nombre, &d.TipoCodigo, &d.UbigeoCodigo, &d.Direccion, &d.Telefono, &d.Correo, &d.EstadoCodigo, &d.EstadoSisdnaCodigo, &d.CamposDesactualizados)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *defensoriaRepository) ListByCodigos(ctx context.Context, codigosDNA []string) ([]entities.Defensoria, error) {
	if len(codigosDNA) == 0 {
		return []entities.Defensoria{}, nil
	}

	query, args, err := psql.Select(strings.Split(defensoriaFields, ", ")...).
		From(defensoriaTable).
		Where(sq.Eq{"codigo_dna": codigosDNA}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	defensorias := make([]entities.Defensoria, 0, len(codigosDNA))
	for rows.Next() {
		var d entities.Defensoria
		if err := rows.Scan(&d.CodigoDNA, &d.Nombre, &d.TipoCodigo, &d.UbigeoCodigo, &d.Direccion, &d.Telefono, &d.Correo, &d.EstadoCodigo, &d.EstadoSisdnaCodigo, &d.CamposDesactualizados); err != nil {
			return nil, err
		}
		defensorias = append(defensorias, d)
	}
	return defensorias, rows.Err()
}

// ListCodigosByUbigeo resolves a location filter into the office codes it
// covers. Supervisions carry no location of their own, so their location
// filter always goes through this lookup.
func (r *defensoriaRepository) ListCodigosByUbigeo(ctx context.Context, ubigeoCode string) ([]string, error) {
	builder := psql.Select("codigo_dna").From(defensoriaTable)
	if p := ubigeo.Predicate("nid_ubigeo", ubigeoCode); p != nil {
		builder = builder.Where(p)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	codigos := make([]string, 0)
	for rows.Next() {
		var codigo string
		if err := rows.Scan(&codigo); err != nil {
			return nil, err
		}
		codigos = append(codigos, codigo)
	}
	return codigos, rows.Err()
}
