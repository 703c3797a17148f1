package notification

import "time"

// Notification is the admin-facing feed entry produced from report
// lifecycle events.
type Notification struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ReportID     uint      `gorm:"column:report_id;not null;index"`
	EmployeeCode string    `gorm:"column:employee_code;type:varchar(10);not null"`
	Message      string    `gorm:"column:message;type:varchar(255);not null"`
	ReadFlg      bool      `gorm:"column:read_flg;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
}

func (Notification) TableName() string {
	return "notifications"
}
