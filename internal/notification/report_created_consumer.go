package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-nippo/internal/events"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ReportCreatedConsumer turns report.created events into notification rows
// so administrators see new submissions without polling the report list.
type ReportCreatedConsumer struct {
	reader *kafka.Reader
	repo   Repository
	logger *zap.Logger
}

func NewReportCreatedConsumer(
	broker string,
	groupID string,
	repo Repository,
	logger ...*zap.Logger,
) *ReportCreatedConsumer {
	l := zap.L().Named("notification.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.consumer")
	}

	return &ReportCreatedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.ReportCreatedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		repo:   repo,
		logger: l,
	}
}

func (c *ReportCreatedConsumer) Close() error {
	return c.reader.Close()
}

func (c *ReportCreatedConsumer) Run(ctx context.Context) {
	c.logger.Info("report created consumer started")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("report created consumer stopped")
				return
			}
			c.logger.Error("fetch report_created message failed", zap.Error(err))
			continue
		}

		var event events.ReportCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error("decode report_created event failed", zap.Error(err))
			// Malformed payloads never become readable, skip them.
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		if err := c.handle(ctx, event); err != nil {
			c.logger.Error("handle report_created event failed",
				zap.Uint("report_id", event.ReportID),
				zap.String("employee_code", event.EmployeeCode),
				zap.Error(err),
			)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("commit report_created message failed", zap.Error(err))
			continue
		}

		c.logger.Info("notification created from report_created event",
			zap.Uint("report_id", event.ReportID),
			zap.String("employee_code", event.EmployeeCode),
		)
	}
}

func (c *ReportCreatedConsumer) handle(ctx context.Context, event events.ReportCreatedEvent) error {
	return c.repo.Create(ctx, &Notification{
		ReportID:     event.ReportID,
		EmployeeCode: event.EmployeeCode,
		Message:      fmt.Sprintf("%s submitted a report for %s", event.EmployeeCode, event.ReportDate),
		ReadFlg:      false,
		CreatedAt:    time.Now().UTC(),
	})
}
