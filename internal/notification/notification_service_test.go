package notification_test

import (
	"context"
	"testing"
	"time"

	"go-nippo/internal/notification"
	"go-nippo/internal/notification/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetUnread(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	svc := notification.NewService(repo)

	createdAt := time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)
	repo.EXPECT().FindUnread(gomock.Any(), 20).Return([]notification.Notification{
		{
			ID:           3,
			ReportID:     42,
			EmployeeCode: "1001",
			Message:      "1001 submitted a report for 2026-08-31",
			CreatedAt:    createdAt,
		},
	}, nil)

	got, err := svc.GetUnread(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(3), got[0].ID)
	assert.Equal(t, uint(42), got[0].ReportID)
	assert.Equal(t, "2026-08-31 09:30:00", got[0].CreatedAt)
}

func TestMarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	svc := notification.NewService(repo)

	repo.EXPECT().MarkRead(gomock.Any(), uint(3)).Return(nil)

	assert.NoError(t, svc.MarkRead(context.Background(), 3))
}
