package employee

import (
	"errors"

	employeeerrors "go-nippo/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates storage-level failures into the domain
// outcomes handlers branch on. A 23505 on the employees primary key means
// a concurrent insert won the race for the same code.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return employeeerrors.ErrDuplicateCode
	}

	return err
}
