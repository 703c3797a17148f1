package report

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go-nippo/internal/events"
	"go-nippo/internal/messaging/kafka"
	"go-nippo/internal/principal"
	reporterrors "go-nippo/internal/report/errors"
	"go-nippo/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]ReportResponse, error)
	GetForActor(ctx context.Context, actor principal.Principal) ([]ReportResponse, error)
	GetByID(ctx context.Context, id uint) (ReportResponse, error)
	CheckDuplicateDate(ctx context.Context, reportDate string, employeeCode string) error
	Create(ctx context.Context, actor principal.Principal, req CreateReportRequest) (ReportResponse, error)
	Update(ctx context.Context, id uint, req UpdateReportRequest) (ReportResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		logger: l,
	}
}

func (s *service) GetAll(ctx context.Context) ([]ReportResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToResponses(rows), nil
}

// GetForActor is where role-based visibility lives: administrators see
// every active report, everyone else only their own.
func (s *service) GetForActor(ctx context.Context, actor principal.Principal) ([]ReportResponse, error) {
	if actor.IsAdmin() {
		return s.GetAll(ctx)
	}

	rows, err := s.repo.FindAllByEmployeeCode(ctx, actor.EmployeeCode)
	if err != nil {
		return nil, err
	}
	return mapToResponses(rows), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (ReportResponse, error) {
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ReportResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*rep), nil
}

// CheckDuplicateDate is the form-side pre-check for the one-report-per-day
// rule. Create re-checks inside its transaction, so a clean answer here is
// advisory, not a reservation.
func (s *service) CheckDuplicateDate(ctx context.Context, reportDate string, employeeCode string) error {
	date, err := time.Parse(dateLayout, reportDate)
	if err != nil {
		return reporterrors.ErrInvalidDate
	}

	exists, err := s.repo.ExistsByDateAndEmployeeCode(ctx, date, employeeCode)
	if err != nil {
		return err
	}
	if exists {
		return reporterrors.ErrDuplicateDate
	}
	return nil
}

func (s *service) Create(ctx context.Context, actor principal.Principal, req CreateReportRequest) (ReportResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	date, err := time.Parse(dateLayout, req.ReportDate)
	if err != nil {
		return ReportResponse{}, reporterrors.ErrInvalidDate
	}

	var created Report
	err = s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		exists, err := qtx.ExistsByDateAndEmployeeCode(ctx, date, actor.EmployeeCode)
		if err != nil {
			return err
		}
		if exists {
			return reporterrors.ErrDuplicateDate
		}

		now := time.Now().UTC()
		created = Report{
			ReportDate: date,
			Title:      req.Title,
			Content:    req.Content,
			// Ownership always comes from the authenticated caller.
			EmployeeCode: actor.EmployeeCode,
			DeleteFlg:    false,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := qtx.Create(ctx, &created); err != nil {
			return err
		}

		return s.enqueueCreatedEvent(ctx, tx, created)
	})
	if err != nil {
		mapped := mapRepositoryError(err)
		l.Warn("create report failed",
			zap.String("employee_code", actor.EmployeeCode),
			zap.String("report_date", req.ReportDate),
			zap.Error(mapped),
		)
		return ReportResponse{}, mapped
	}

	l.Info("report created",
		zap.Uint("report_id", created.ID),
		zap.String("employee_code", created.EmployeeCode),
	)
	return mapToResponse(created), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateReportRequest) (ReportResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	date, err := time.Parse(dateLayout, req.ReportDate)
	if err != nil {
		return ReportResponse{}, reporterrors.ErrInvalidDate
	}

	var updated Report
	err = s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		existing, err := qtx.FindByID(ctx, id)
		if err != nil {
			return err
		}

		// Moving the report to another day must not collide with the
		// owner's report on that day.
		if !sameDay(existing.ReportDate, date) {
			exists, err := qtx.ExistsByDateAndEmployeeCode(ctx, date, existing.EmployeeCode)
			if err != nil {
				return err
			}
			if exists {
				return reporterrors.ErrDuplicateDate
			}
		}

		// Owner and CreatedAt stay untouched across updates.
		existing.ReportDate = date
		existing.Title = req.Title
		existing.Content = req.Content
		existing.UpdatedAt = time.Now().UTC()

		if err := qtx.Update(ctx, existing); err != nil {
			return err
		}
		updated = *existing
		return nil
	})
	if err != nil {
		mapped := mapRepositoryError(err)
		l.Warn("update report failed", zap.Uint("report_id", id), zap.Error(mapped))
		return ReportResponse{}, mapped
	}

	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	l := contextutil.GetLogger(ctx, s.logger)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		existing, err := qtx.FindByID(ctx, id)
		if err != nil {
			return err
		}

		existing.DeleteFlg = true
		existing.UpdatedAt = time.Now().UTC()
		return qtx.Update(ctx, existing)
	})
	if err != nil {
		mapped := mapRepositoryError(err)
		l.Warn("delete report failed", zap.Uint("report_id", id), zap.Error(mapped))
		return mapped
	}

	l.Info("report deleted", zap.Uint("report_id", id))
	return nil
}

// enqueueCreatedEvent writes the report.created outbox row in the same
// transaction as the report insert.
func (s *service) enqueueCreatedEvent(ctx context.Context, tx *gorm.DB, rep Report) error {
	if s.outbox == nil {
		return nil
	}

	event := events.ReportCreatedEvent{
		EventType:    "report.created",
		ReportID:     rep.ID,
		EmployeeCode: rep.EmployeeCode,
		ReportDate:   rep.ReportDate.Format(dateLayout),
		Title:        rep.Title,
		OccurredAt:   time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "report",
		AggregateID:   strconv.FormatUint(uint64(rep.ID), 10),
		EventType:     event.EventType,
		Topic:         events.ReportCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func sameDay(a, b time.Time) bool {
	return a.Format(dateLayout) == b.Format(dateLayout)
}

func mapToResponse(rep Report) ReportResponse {
	resp := ReportResponse{
		ID:           rep.ID,
		ReportDate:   rep.ReportDate.Format(dateLayout),
		Title:        rep.Title,
		Content:      rep.Content,
		EmployeeCode: rep.EmployeeCode,
		CreatedAt:    rep.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    rep.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if rep.Employee != nil {
		resp.EmployeeName = rep.Employee.Name
	}
	return resp
}

func mapToResponses(rows []Report) []ReportResponse {
	resp := make([]ReportResponse, len(rows))
	for i, rep := range rows {
		resp[i] = mapToResponse(rep)
	}
	return resp
}
