package repositories

import (
	"context"

	"sisdna-portal/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const caracteristicaTable = "defensorias_caracteristicas"

type CaracteristicaRepositoryInterface interface {
	GetByClaves(ctx context.Context, claves []string) ([]entities.Caracteristica, error)
}

type caracteristicaRepository struct{ storage *pgxpool.Pool }

func NewCaracteristicaRepository(storage *pgxpool.Pool) CaracteristicaRepositoryInterface {
	return &caracteristicaRepository{storage: storage}
}

func (r *caracteristicaRepository) GetByClaves(ctx context.Context, claves []string) ([]entities.Caracteristica, error) {
	if len(claves) == 0 {
		return []entities.Caracteristica{}, nil
	}

	query, args, err := psql.Select("clave", "txt_valor").
		From(caracteristicaTable).
		Where(sq.Eq{"clave": claves}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	caracteristicas := make([]entities.Caracteristica, 0, len(claves))
	for rows.Next() {
		var c entities.Caracteristica
		if err := rows.Scan(&c.Clave, &c.Valor); err != nil {
			return nil, err
		}
		caracteristicas = append(caracteristicas, c)
	}
	return caracteristicas, rows.Err()
}
