package events

import "time"

const ReportCreatedTopic = "nippo.report.lifecycle.v1"

type ReportCreatedEvent struct {
	EventType    string    `json:"event_type"`
	ReportID     uint      `json:"report_id"`
	EmployeeCode string    `json:"employee_code"`
	ReportDate   string    `json:"report_date"`
	Title        string    `json:"title"`
	OccurredAt   time.Time `json:"occurred_at"`
}
