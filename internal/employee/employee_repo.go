package employee

import (
	"context"

	"go-nippo/internal/softdelete"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	FindByCode(ctx context.Context, code string) (*Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// Update writes the full record back under its existing primary key; it
// never inserts a new row because Code is always set.
func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Scopes(softdelete.Active()).
		First(&e, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Scopes(softdelete.Active()).
		Order("code ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(softdelete.Active()).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}
