package repositories

import (
	"context"
	"errors"

	"sisdna-portal/internal/entities"
	apperrors "sisdna-portal/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ubigeoTable = "ubigeos"

type UbigeoRepositoryInterface interface {
	GetByCodes(ctx context.Context, codes []string) ([]entities.Ubigeo, error)
	ListByLevel(ctx context.Context, nivel string) ([]entities.Ubigeo, error)
	ListByParent(ctx context.Context, nivel string, codigoPadre string) ([]entities.Ubigeo, error)
	FindByCodigo(ctx context.Context, codigo string) (*entities.Ubigeo, error)
}

type ubigeoRepository struct{ storage *pgxpool.Pool }

func NewUbigeoRepository(storage *pgxpool.Pool) UbigeoRepositoryInterface {
	return &ubigeoRepository{storage: storage}
}

func (r *ubigeoRepository) GetByCodes(ctx context.Context, codes []string) ([]entities.Ubigeo, error) {
	if len(codes) == 0 {
		return []entities.Ubigeo{}, nil
	}
	return r.list(ctx, psql.Select("codigo", "txt_nombre", "nivel", "codigo_padre").
		From(ubigeoTable).
		Where(sq.Eq{"codigo": codes}))
}

func (r *ubigeoRepository) ListByLevel(ctx context.Context, nivel string) ([]entities.Ubigeo, error) {
	return r.list(ctx, psql.Select("codigo", "txt_nombre", "nivel", "codigo_padre").
		From(ubigeoTable).
		Where(sq.Eq{"nivel": nivel}).
		OrderBy("txt_nombre"))
}

func (r *ubigeoRepository) ListByParent(ctx context.Context, nivel string, codigoPadre string) ([]entities.Ubigeo, error) {
	return r.list(ctx, psql.Select("codigo", "txt_nombre", "nivel", "codigo_padre").
		From(ubigeoTable).
		Where(sq.Eq{"nivel": nivel, "codigo_padre": codigoPadre}).
		OrderBy("txt_nombre"))
}

func (r *ubigeoRepository) FindByCodigo(ctx context.Context, codigo string) (*entities.Ubigeo, error) {
	query, args, err := psql.Select("codigo", "txt_nombre", "nivel", "codigo_padre").
		From(ubigeoTable).
		Where(sq.Eq{"codigo": codigo}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var u entities.Ubigeo
	err = r.storage.QueryRow(ctx, query, args...).Scan(&u.Codigo, &u.Nombre, &u.Nivel, &u.CodigoPadre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *ubigeoRepository) list(ctx context.Context, builder sq.SelectBuilder) ([]entities.Ubigeo, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ubigeos := make([]entities.Ubigeo, 0)
	for rows.Next() {
		var u entities.Ubigeo
		if err := rows.Scan(&u.Codigo, &u.Nombre, &u.Nivel, &u.CodigoPadre); err != nil {
			return nil, err
		}
		ubigeos = append(ubigeos, u)
	}
	return ubigeos, rows.Err()
}
