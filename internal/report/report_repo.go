package report

import (
	"context"
	"time"

	"go-nippo/internal/softdelete"

	"gorm.io/gorm"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, r *Report) error
	Update(ctx context.Context, r *Report) error
	FindByID(ctx context.Context, id uint) (*Report, error)
	FindAll(ctx context.Context) ([]Report, error)
	FindAllByEmployeeCode(ctx context.Context, employeeCode string) ([]Report, error)
	ExistsByDateAndEmployeeCode(ctx context.Context, date time.Time, employeeCode string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, rep *Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *repository) Update(ctx context.Context, rep *Report) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Report, error) {
	var rep Report
	err := r.db.WithContext(ctx).
		Scopes(softdelete.Active()).
		Preload("Employee").
		First(&rep, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Report, error) {
	var rows []Report
	err := r.db.WithContext(ctx).
		Scopes(softdelete.Active()).
		Preload("Employee").
		Order("report_date DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByEmployeeCode(ctx context.Context, employeeCode string) ([]Report, error) {
	var rows []Report
	err := r.db.WithContext(ctx).
		Scopes(softdelete.Active()).
		Preload("Employee").
		Where("employee_code = ?", employeeCode).
		Order("report_date DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ExistsByDateAndEmployeeCode(ctx context.Context, date time.Time, employeeCode string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Report{}).
		Scopes(softdelete.Active()).
		Where("report_date = ?", date.Format("2006-01-02")).
		Where("employee_code = ?", employeeCode).
		Count(&count).Error
	return count > 0, err
}
