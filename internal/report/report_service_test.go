package report_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-nippo/internal/events"
	"go-nippo/internal/messaging/kafka"
	kafkamock "go-nippo/internal/messaging/kafka/mock"
	"go-nippo/internal/principal"
	"go-nippo/internal/report"
	reporterrors "go-nippo/internal/report/errors"
	"go-nippo/internal/report/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newServiceEnv(t *testing.T) (report.Service, *mock.MockRepository, *kafkamock.MockOutboxRepository, sqlmock.Sqlmock) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	outbox := kafkamock.NewMockOutboxRepository(ctrl)

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	svc := report.NewServiceWithOutbox(gormDB, repo, outbox)
	return svc, repo, outbox, dbMock
}

func TestCreateReport_OwnerComesFromActor(t *testing.T) {
	svc, repo, outbox, dbMock := newServiceEnv(t)
	ctx := context.Background()

	actor := principal.Principal{EmployeeCode: "1001", Role: principal.RoleGeneral}
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().ExistsByDateAndEmployeeCode(gomock.Any(), date, "1001").Return(false, nil)

	var saved report.Report
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *report.Report) error {
			r.ID = 42
			saved = *r
			return nil
		},
	)

	var enqueued kafka.OutboxEvent
	outbox.EXPECT().WithTx(gomock.Any()).Return(outbox)
	outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event kafka.OutboxEvent) error {
			enqueued = event
			return nil
		},
	)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	resp, err := svc.Create(ctx, actor, report.CreateReportRequest{
		ReportDate: "2026-08-31",
		Title:      "Daily progress",
		Content:    "Finished the monthly closing checks.",
	})
	require.NoError(t, err)

	assert.Equal(t, "1001", resp.EmployeeCode, "ownership must come from the authenticated caller")
	assert.Equal(t, "2026-08-31", resp.ReportDate)
	assert.False(t, saved.DeleteFlg)
	assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)

	assert.Equal(t, events.ReportCreatedTopic, enqueued.Topic)
	assert.Equal(t, "report.created", enqueued.EventType)
	assert.Equal(t, "42", enqueued.AggregateID)
	assert.Equal(t, kafka.OutboxStatusPending, enqueued.Status)

	var payload events.ReportCreatedEvent
	require.NoError(t, json.Unmarshal(enqueued.Payload, &payload))
	assert.Equal(t, "1001", payload.EmployeeCode)
	assert.Equal(t, "2026-08-31", payload.ReportDate)

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCreateReport_DuplicateDate(t *testing.T) {
	svc, repo, _, dbMock := newServiceEnv(t)
	ctx := context.Background()

	actor := principal.Principal{EmployeeCode: "1001", Role: principal.RoleGeneral}
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().ExistsByDateAndEmployeeCode(gomock.Any(), date, "1001").Return(true, nil)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	_, err := svc.Create(ctx, actor, report.CreateReportRequest{
		ReportDate: "2026-08-31",
		Title:      "Second report of the day",
		Content:    "Should not be accepted.",
	})
	assert.ErrorIs(t, err, reporterrors.ErrDuplicateDate)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCreateReport_InvalidDate(t *testing.T) {
	svc, _, _, _ := newServiceEnv(t)

	actor := principal.Principal{EmployeeCode: "1001", Role: principal.RoleGeneral}
	_, err := svc.Create(context.Background(), actor, report.CreateReportRequest{
		ReportDate: "31/08/2026",
		Title:      "Bad date",
		Content:    "Wrong format.",
	})
	assert.ErrorIs(t, err, reporterrors.ErrInvalidDate)
}

func TestGetForActor_AdminSeesAll(t *testing.T) {
	svc, repo, _, _ := newServiceEnv(t)

	rows := []report.Report{
		{ID: 1, EmployeeCode: "1001", ReportDate: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)},
		{ID: 2, EmployeeCode: "1002", ReportDate: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)},
	}
	repo.EXPECT().FindAll(gomock.Any()).Return(rows, nil)

	admin := principal.Principal{EmployeeCode: "0001", Role: principal.RoleAdmin}
	got, err := svc.GetForActor(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGetForActor_GeneralSeesOnlyOwn(t *testing.T) {
	svc, repo, _, _ := newServiceEnv(t)

	rows := []report.Report{
		{ID: 1, EmployeeCode: "1001", ReportDate: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)},
	}
	repo.EXPECT().FindAllByEmployeeCode(gomock.Any(), "1001").Return(rows, nil)

	general := principal.Principal{EmployeeCode: "1001", Role: principal.RoleGeneral}
	got, err := svc.GetForActor(context.Background(), general)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1001", got[0].EmployeeCode)
}

func TestUpdateReport_OwnerAndCreatedAtUntouched(t *testing.T) {
	svc, repo, _, dbMock := newServiceEnv(t)
	ctx := context.Background()

	createdAt := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	existing := &report.Report{
		ID:           7,
		ReportDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Title:        "Old title",
		Content:      "Old content",
		EmployeeCode: "1001",
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().FindByID(gomock.Any(), uint(7)).Return(existing, nil)

	var saved report.Report
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *report.Report) error {
			saved = *r
			return nil
		},
	)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	resp, err := svc.Update(ctx, 7, report.UpdateReportRequest{
		ReportDate: "2026-08-01",
		Title:      "New title",
		Content:    "New content",
	})
	require.NoError(t, err)

	assert.Equal(t, "New title", resp.Title)
	assert.Equal(t, "1001", saved.EmployeeCode, "owner never changes on update")
	assert.True(t, saved.CreatedAt.Equal(createdAt), "CreatedAt never changes on update")
	assert.True(t, saved.UpdatedAt.After(createdAt))
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUpdateReport_DateChangeRechecksDuplicate(t *testing.T) {
	svc, repo, _, dbMock := newServiceEnv(t)
	ctx := context.Background()

	existing := &report.Report{
		ID:           7,
		ReportDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EmployeeCode: "1001",
	}
	newDate := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().FindByID(gomock.Any(), uint(7)).Return(existing, nil)
	repo.EXPECT().ExistsByDateAndEmployeeCode(gomock.Any(), newDate, "1001").Return(true, nil)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	_, err := svc.Update(ctx, 7, report.UpdateReportRequest{
		ReportDate: "2026-08-02",
		Title:      "Moved",
		Content:    "Collides with the report already on that day.",
	})
	assert.ErrorIs(t, err, reporterrors.ErrDuplicateDate)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUpdateReport_NotFound(t *testing.T) {
	svc, repo, _, dbMock := newServiceEnv(t)

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().FindByID(gomock.Any(), uint(99)).Return(nil, gorm.ErrRecordNotFound)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	_, err := svc.Update(context.Background(), 99, report.UpdateReportRequest{
		ReportDate: "2026-08-31",
		Title:      "Missing",
		Content:    "No such report.",
	})
	assert.ErrorIs(t, err, reporterrors.ErrReportNotFound)
}

func TestDeleteReport_PersistsFlag(t *testing.T) {
	svc, repo, _, dbMock := newServiceEnv(t)
	ctx := context.Background()

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().FindByID(gomock.Any(), uint(7)).Return(&report.Report{
		ID:           7,
		EmployeeCode: "1001",
		ReportDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	var saved report.Report
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *report.Report) error {
			saved = *r
			return nil
		},
	)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	require.NoError(t, svc.Delete(ctx, 7))
	assert.True(t, saved.DeleteFlg)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestDeleteReport_NotFound(t *testing.T) {
	svc, repo, _, dbMock := newServiceEnv(t)

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().FindByID(gomock.Any(), uint(99)).Return(nil, gorm.ErrRecordNotFound)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, reporterrors.ErrReportNotFound)
}

func TestCheckDuplicateDate(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	t.Run("invalid format", func(t *testing.T) {
		svc, _, _, _ := newServiceEnv(t)
		err := svc.CheckDuplicateDate(context.Background(), "2026/08/31", "1001")
		assert.ErrorIs(t, err, reporterrors.ErrInvalidDate)
	})

	t.Run("date taken", func(t *testing.T) {
		svc, repo, _, _ := newServiceEnv(t)
		repo.EXPECT().ExistsByDateAndEmployeeCode(gomock.Any(), date, "1001").Return(true, nil)

		err := svc.CheckDuplicateDate(context.Background(), "2026-08-31", "1001")
		assert.ErrorIs(t, err, reporterrors.ErrDuplicateDate)
	})

	t.Run("date free", func(t *testing.T) {
		svc, repo, _, _ := newServiceEnv(t)
		repo.EXPECT().ExistsByDateAndEmployeeCode(gomock.Any(), date, "1001").Return(false, nil)

		assert.NoError(t, svc.CheckDuplicateDate(context.Background(), "2026-08-31", "1001"))
	})
}
