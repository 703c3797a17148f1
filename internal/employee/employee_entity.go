package employee

import (
	"time"
)

type Employee struct {
	Code      string    `gorm:"column:code;type:varchar(10);primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(20);not null"`
	Password  string    `gorm:"column:password;type:varchar(255);not null"`
	Role      string    `gorm:"column:role;type:varchar(10);not null;default:GENERAL"`
	DeleteFlg bool      `gorm:"column:delete_flg;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (Employee) TableName() string {
	return "employees"
}
