package notification

import (
	"context"

	"go.uber.org/zap"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	GetUnread(ctx context.Context, limit int) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, id uint) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetUnread(ctx context.Context, limit int) ([]NotificationResponse, error) {
	rows, err := s.repo.FindUnread(ctx, limit)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		resp[i] = NotificationResponse{
			ID:           n.ID,
			ReportID:     n.ReportID,
			EmployeeCode: n.EmployeeCode,
			Message:      n.Message,
			CreatedAt:    n.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, id uint) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		s.logger.Warn("mark notification read failed", zap.Uint("notification_id", id), zap.Error(err))
		return err
	}
	return nil
}
