package report

import (
	"time"
)

type Report struct {
	ID           uint         `gorm:"column:id;primaryKey;autoIncrement"`
	ReportDate   time.Time    `gorm:"column:report_date;type:date;not null;index"`
	Title        string       `gorm:"column:title;type:varchar(100);not null"`
	Content      string       `gorm:"column:content;type:text;not null"`
	EmployeeCode string       `gorm:"column:employee_code;type:varchar(10);not null;index"`
	DeleteFlg    bool         `gorm:"column:delete_flg;not null;default:false"`
	CreatedAt    time.Time    `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time    `gorm:"column:updated_at;not null"`
	Employee     *EmployeeRef `gorm:"foreignKey:EmployeeCode;references:Code"`
}

func (Report) TableName() string {
	return "reports"
}

// EmployeeRef is the minimal join shape for showing the author; it never
// loads the password column.
type EmployeeRef struct {
	Code string `gorm:"column:code;primaryKey"`
	Name string `gorm:"column:name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
