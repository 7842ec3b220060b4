package utils

import (
	"context"

	"sisdna-portal/pkg/contextkeys"
	apperrors "sisdna-portal/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || id == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return id, nil
}

func GetUserEmailFromCtx(ctx context.Context) (string, error) {
	email, ok := ctx.Value(contextkeys.UserEmailKey).(string)
	if !ok || email == "" {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return email, nil
}
