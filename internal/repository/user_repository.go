package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Falmousl/Finance-Project/internal/model"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// UserRepository delegates hashing and verification to the proc_register_user
// procedure and the sfn_validate_user function in the database.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Register(ctx context.Context, username, password string) error {
	_, err := r.db.ExecContext(ctx, `CALL proc_register_user($1, $2)`, username, password)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return model.ErrUserExists
	}

	return storeErr("register user", err)
}

func (r *UserRepository) Authenticate(ctx context.Context, username, password string) (bool, error) {
	var valid sql.NullBool
	err := r.db.QueryRowContext(ctx, `SELECT sfn_validate_user($1, $2)`, username, password).Scan(&valid)
	if err != nil {
		return false, storeErr("validate user", err)
	}
	return valid.Valid && valid.Bool, nil
}
