package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-nippo/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMatchesByCode(t *testing.T) {
	sentinel := apperror.New(apperror.CodeDuplicate, "already exists", http.StatusConflict)
	wrapped := apperror.Wrap(errors.New("db detail"), apperror.CodeDuplicate, "already exists", http.StatusConflict)

	assert.ErrorIs(t, wrapped, sentinel)

	other := apperror.New(apperror.CodeNotFound, "missing", http.StatusNotFound)
	assert.NotErrorIs(t, wrapped, other)
}

func TestAppErrorSurvivesWrapping(t *testing.T) {
	sentinel := apperror.New(apperror.CodeDateCheck, "date taken", http.StatusConflict)
	chained := fmt.Errorf("create report: %w", sentinel)

	assert.ErrorIs(t, chained, sentinel)
}

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps its status and code", func(t *testing.T) {
		err := apperror.New(apperror.CodeLoginCheck, "cannot delete yourself", http.StatusForbidden)

		got := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusForbidden, got.Status)
		assert.Equal(t, apperror.CodeLoginCheck, got.Code)
		assert.Equal(t, "cannot delete yourself", got.Message)
	})

	t.Run("unknown errors collapse to 500", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.NotContains(t, got.Message, "connection refused", "internals must not leak to the client")
	})
}
