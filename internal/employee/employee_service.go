package employee

import (
	"context"
	"encoding/json"
	"time"

	employeeerrors "go-nippo/internal/employee/errors"
	"go-nippo/internal/password"
	"go-nippo/internal/principal"
	"go-nippo/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	OptionsCacheKey = "employees:options"
	optionsCacheTTL = 5 * time.Minute
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByCode(ctx context.Context, code string) (EmployeeResponse, error)
	Update(ctx context.Context, code string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, code string, actor principal.Principal) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Info("creating employee", zap.String("code", req.Code))

	// Password policy runs before anything touches storage.
	if err := password.Validate(req.Password); err != nil {
		return EmployeeResponse{}, err
	}
	hashed, err := password.Hash(req.Password)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return EmployeeResponse{}, err
	}

	var created Employee
	err = s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		exists, err := qtx.ExistsByCode(ctx, req.Code)
		if err != nil {
			return err
		}
		if exists {
			return employeeerrors.ErrDuplicateCode
		}

		now := time.Now().UTC()
		created = Employee{
			Code:      req.Code,
			Name:      req.Name,
			Password:  hashed,
			Role:      req.Role,
			DeleteFlg: false,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return qtx.Create(ctx, &created)
	})
	if err != nil {
		mapped := mapRepositoryError(err)
		l.Warn("create employee failed", zap.String("code", req.Code), zap.Error(mapped))
		return EmployeeResponse{}, mapped
	}

	s.invalidateOptions(ctx)
	l.Info("employee created", zap.String("code", created.Code))
	return mapToResponse(created), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

// GetOptions serves the code/name pairs used by select boxes from Redis,
// with singleflight guarding the cache fill.
func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var cached []EmployeeOption
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (any, error) {
		rows, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		options := make([]EmployeeOption, len(rows))
		for i, e := range rows {
			options[i] = EmployeeOption{Code: e.Code, Name: e.Name}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(options); err == nil {
				if err := s.rdb.Set(ctx, OptionsCacheKey, payload, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("employee options cache set failed", zap.Error(err))
				}
			}
		}
		return options, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeOption), nil
}

func (s *service) GetByCode(ctx context.Context, code string) (EmployeeResponse, error) {
	e, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, code string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	var updated Employee
	err := s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		existing, err := qtx.FindByCode(ctx, code)
		if err != nil {
			return err
		}

		existing.Name = req.Name
		existing.Role = req.Role

		// Password changes only when a new value was supplied.
		if req.Password != "" {
			if err := password.Validate(req.Password); err != nil {
				return err
			}
			hashed, err := password.Hash(req.Password)
			if err != nil {
				return err
			}
			existing.Password = hashed
		}

		existing.UpdatedAt = time.Now().UTC()

		if err := qtx.Update(ctx, existing); err != nil {
			return err
		}
		updated = *existing
		return nil
	})
	if err != nil {
		mapped := mapRepositoryError(err)
		l.Warn("update employee failed", zap.String("code", code), zap.Error(mapped))
		return EmployeeResponse{}, mapped
	}

	s.invalidateOptions(ctx)
	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, code string, actor principal.Principal) error {
	l := contextutil.GetLogger(ctx, s.logger)

	// An administrator may never remove the account they are logged in with.
	if code == actor.EmployeeCode {
		return employeeerrors.ErrSelfDelete
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		existing, err := qtx.FindByCode(ctx, code)
		if err != nil {
			return err
		}

		existing.DeleteFlg = true
		existing.UpdatedAt = time.Now().UTC()
		return qtx.Update(ctx, existing)
	})
	if err != nil {
		mapped := mapRepositoryError(err)
		l.Warn("delete employee failed", zap.String("code", code), zap.Error(mapped))
		return mapped
	}

	s.invalidateOptions(ctx)
	l.Info("employee deleted", zap.String("code", code), zap.String("deleted_by", actor.EmployeeCode))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Warn("employee options cache invalidation failed", zap.Error(err))
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		Code:      e.Code,
		Name:      e.Name,
		Role:      e.Role,
		CreatedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: e.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
