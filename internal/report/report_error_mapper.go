package report

import (
	"errors"

	reporterrors "go-nippo/internal/report/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates storage failures into domain outcomes.
// The partial unique index on (report_date, employee_code) is the
// tiebreaker for two simultaneous submissions of the same date; its 23505
// surfaces as the duplicate-date outcome.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return reporterrors.ErrReportNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return reporterrors.ErrDuplicateDate
	}

	return err
}
