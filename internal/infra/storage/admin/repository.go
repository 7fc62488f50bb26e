package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GradShootBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-GradShootBooking/pkg/psqlbuilder"
)

// Repository список администраторов (admin_users)
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// IsAdmin проверяет, есть ли email в admin_users (без учета регистра)
func (r *Repository) IsAdmin(ctx context.Context, email string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("admin_users").
		Where(squirrel.Expr("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsAdmin - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: IsAdmin - scan: %w", ErrScanRow, err)
	}
	return exists, nil
}
