package employee_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-nippo/internal/employee"
	employeeerrors "go-nippo/internal/employee/errors"
	"go-nippo/internal/employee/mock"
	"go-nippo/internal/password"
	"go-nippo/internal/principal"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newServiceEnv(t *testing.T) (employee.Service, *mock.MockRepository, sqlmock.Sqlmock, redismock.ClientMock) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	rdb, redisMock := redismock.NewClientMock()

	svc := employee.NewService(gormDB, repo, rdb)
	return svc, repo, dbMock, redisMock
}

func TestCreateEmployee(t *testing.T) {
	svc, repo, dbMock, redisMock := newServiceEnv(t)
	ctx := context.Background()

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().ExistsByCode(gomock.Any(), "1001").Return(false, nil)

	var saved employee.Employee
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *employee.Employee) error {
			saved = *e
			return nil
		},
	)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()
	redisMock.ExpectDel(employee.OptionsCacheKey).SetVal(1)

	resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{
		Code:     "1001",
		Name:     "Taro Yamada",
		Password: "Passw0rd",
		Role:     principal.RoleGeneral,
	})
	require.NoError(t, err)

	assert.Equal(t, "1001", resp.Code)
	assert.Equal(t, "Taro Yamada", resp.Name)
	assert.Equal(t, principal.RoleGeneral, resp.Role)

	assert.False(t, saved.DeleteFlg)
	assert.NotEqual(t, "Passw0rd", saved.Password, "plaintext must never reach the repository")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("Passw0rd")))
	assert.False(t, saved.CreatedAt.IsZero())
	assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCreateEmployee_DuplicateCode(t *testing.T) {
	svc, repo, dbMock, _ := newServiceEnv(t)
	ctx := context.Background()

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().ExistsByCode(gomock.Any(), "1001").Return(true, nil)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	_, err := svc.Create(ctx, employee.CreateEmployeeRequest{
		Code:     "1001",
		Name:     "Taro Yamada",
		Password: "Passw0rd",
		Role:     principal.RoleGeneral,
	})
	assert.ErrorIs(t, err, employeeerrors.ErrDuplicateCode)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCreateEmployee_PasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"full-width characters rejected before length", "パスワード１２３", password.ErrHalfSize},
		{"symbol rejected", "Passw0rd!", password.ErrHalfSize},
		{"too short", "Abc1234", password.ErrRangeCheck},
		{"too long", "Abcdefgh123456789", password.ErrRangeCheck},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newServiceEnv(t)

			_, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
				Code:     "1001",
				Name:     "Taro Yamada",
				Password: tt.password,
				Role:     principal.RoleGeneral,
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateEmployee_EmptyPasswordKeepsCurrent(t *testing.T) {
	svc, repo, dbMock, redisMock := newServiceEnv(t)
	ctx := context.Background()

	createdAt := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	existing := &employee.Employee{
		Code:      "1001",
		Name:      "Taro Yamada",
		Password:  "$2a$10$existinghash",
		Role:      principal.RoleGeneral,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().FindByCode(gomock.Any(), "1001").Return(existing, nil)

	var saved employee.Employee
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *employee.Employee) error {
			saved = *e
			return nil
		},
	)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()
	redisMock.ExpectDel(employee.OptionsCacheKey).SetVal(1)

	resp, err := svc.Update(ctx, "1001", employee.UpdateEmployeeRequest{
		Name: "Taro Tanaka",
		Role: principal.RoleAdmin,
	})
	require.NoError(t, err)

	assert.Equal(t, "Taro Tanaka", resp.Name)
	assert.Equal(t, "$2a$10$existinghash", saved.Password, "empty password means keep the current one")
	assert.True(t, saved.CreatedAt.Equal(createdAt), "CreatedAt must survive updates")
	assert.True(t, saved.UpdatedAt.After(createdAt))
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUpdateEmployee_NewPasswordIsValidatedAndRehashed(t *testing.T) {
	svc, repo, dbMock, redisMock := newServiceEnv(t)
	ctx := context.Background()

	existing := &employee.Employee{
		Code:     "1001",
		Name:     "Taro Yamada",
		Password: "$2a$10$existinghash",
		Role:     principal.RoleGeneral,
	}

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().FindByCode(gomock.Any(), "1001").Return(existing, nil)

	var saved employee.Employee
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *employee.Employee) error {
			saved = *e
			return nil
		},
	)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()
	redisMock.ExpectDel(employee.OptionsCacheKey).SetVal(1)

	_, err := svc.Update(ctx, "1001", employee.UpdateEmployeeRequest{
		Name:     "Taro Yamada",
		Password: "NewPassw0rd",
		Role:     principal.RoleGeneral,
	})
	require.NoError(t, err)

	assert.NotEqual(t, "$2a$10$existinghash", saved.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("NewPassw0rd")))
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUpdateEmployee_InvalidNewPassword(t *testing.T) {
	svc, repo, dbMock, _ := newServiceEnv(t)
	ctx := context.Background()

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().FindByCode(gomock.Any(), "1001").Return(&employee.Employee{Code: "1001"}, nil)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	_, err := svc.Update(ctx, "1001", employee.UpdateEmployeeRequest{
		Name:     "Taro Yamada",
		Password: "short",
		Role:     principal.RoleGeneral,
	})
	assert.ErrorIs(t, err, password.ErrRangeCheck)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUpdateEmployee_NotFound(t *testing.T) {
	svc, repo, dbMock, _ := newServiceEnv(t)
	ctx := context.Background()

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().FindByCode(gomock.Any(), "9999").Return(nil, gorm.ErrRecordNotFound)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	_, err := svc.Update(ctx, "9999", employee.UpdateEmployeeRequest{
		Name: "Nobody",
		Role: principal.RoleGeneral,
	})
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestDeleteEmployee_SelfDeleteRefused(t *testing.T) {
	svc, _, dbMock, _ := newServiceEnv(t)

	actor := principal.Principal{EmployeeCode: "1001", Role: principal.RoleAdmin}
	err := svc.Delete(context.Background(), "1001", actor)

	assert.ErrorIs(t, err, employeeerrors.ErrSelfDelete)
	assert.NoError(t, dbMock.ExpectationsWereMet(), "self-delete must be refused before any storage access")
}

func TestDeleteEmployee_PersistsFlag(t *testing.T) {
	svc, repo, dbMock, redisMock := newServiceEnv(t)
	ctx := context.Background()

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().FindByCode(gomock.Any(), "1002").Return(&employee.Employee{
		Code: "1002",
		Name: "Hanako Sato",
		Role: principal.RoleGeneral,
	}, nil)

	var saved employee.Employee
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *employee.Employee) error {
			saved = *e
			return nil
		},
	)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()
	redisMock.ExpectDel(employee.OptionsCacheKey).SetVal(1)

	actor := principal.Principal{EmployeeCode: "1001", Role: principal.RoleAdmin}
	require.NoError(t, svc.Delete(ctx, "1002", actor))

	assert.True(t, saved.DeleteFlg, "delete must persist the flag, not just set it in memory")
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestDeleteEmployee_NotFound(t *testing.T) {
	svc, repo, dbMock, _ := newServiceEnv(t)

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().FindByCode(gomock.Any(), "9999").Return(nil, gorm.ErrRecordNotFound)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	actor := principal.Principal{EmployeeCode: "1001", Role: principal.RoleAdmin}
	err := svc.Delete(context.Background(), "9999", actor)
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestGetByCode_NotFound(t *testing.T) {
	svc, repo, _, _ := newServiceEnv(t)

	repo.EXPECT().FindByCode(gomock.Any(), "9999").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetByCode(context.Background(), "9999")
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestGetOptions_CacheHit(t *testing.T) {
	svc, _, _, redisMock := newServiceEnv(t)

	cached := []employee.EmployeeOption{{Code: "1001", Name: "Taro Yamada"}}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	redisMock.ExpectGet(employee.OptionsCacheKey).SetVal(string(payload))

	got, err := svc.GetOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, got)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestGetOptions_CacheMissFillsRedis(t *testing.T) {
	svc, repo, _, redisMock := newServiceEnv(t)

	rows := []employee.Employee{
		{Code: "1001", Name: "Taro Yamada"},
		{Code: "1002", Name: "Hanako Sato"},
	}
	repo.EXPECT().FindAll(gomock.Any()).Return(rows, nil)

	want := []employee.EmployeeOption{
		{Code: "1001", Name: "Taro Yamada"},
		{Code: "1002", Name: "Hanako Sato"},
	}
	payload, err := json.Marshal(want)
	require.NoError(t, err)

	redisMock.ExpectGet(employee.OptionsCacheKey).RedisNil()
	redisMock.ExpectSet(employee.OptionsCacheKey, payload, 5*time.Minute).SetVal("OK")

	got, err := svc.GetOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
