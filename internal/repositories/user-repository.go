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

const userTable = "users"

type UserRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
}

type userRepository struct{ storage *pgxpool.Pool }

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &userRepository{storage: storage}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *userRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *userRepository) findOne(ctx context.Context, pred sq.Eq) (*entities.User, error) {
	query, args, err := psql.Select("id", "email", "txt_nombre", "password_hash", "created_at").
		From(userTable).
		Where(pred).
		ToSql()
	if err != nil {
		return nil, err
	}

	var u entities.User
	err = r.storage.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Email, &u.Nombre, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
