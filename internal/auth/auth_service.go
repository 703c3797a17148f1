package auth

import (
	"context"
	"os"
	"time"

	autherrors "go-nippo/internal/auth/errors"
	"go-nippo/internal/employee"
	"go-nippo/internal/password"

	"github.com/golang-jwt/jwt/v5"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, code, plainPassword string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, code string) (*AuthResponse, error)
}

type service struct {
	employeeRepo employee.Repository
}

func NewService(employeeRepo employee.Repository) Service {
	return &service{employeeRepo: employeeRepo}
}

// Login authenticates against the directory; soft-deleted accounts are
// invisible to FindByCode, so they cannot log in.
func (s *service) Login(ctx context.Context, code, plainPassword string) (string, string, AuthResponse, error) {
	emp, err := s.employeeRepo.FindByCode(ctx, code)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !password.Verify(plainPassword, emp.Password) {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := generateToken(emp.Code, emp.Role, 15*time.Minute)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := generateToken(emp.Code, emp.Role, 7*24*time.Hour)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, AuthResponse{
		Code: emp.Code,
		Name: emp.Name,
		Role: emp.Role,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	code, ok := claims["employee_code"].(string)
	if !ok || code == "" {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	// Re-read the directory so a revoked or soft-deleted account cannot
	// refresh its way back in.
	emp, err := s.employeeRepo.FindByCode(ctx, code)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	newAccessToken, err := generateToken(emp.Code, emp.Role, 15*time.Minute)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := generateToken(emp.Code, emp.Role, 7*24*time.Hour)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, AuthResponse{
		Code: emp.Code,
		Name: emp.Name,
		Role: emp.Role,
	}, nil
}

func (s *service) GetMe(ctx context.Context, code string) (*AuthResponse, error) {
	emp, err := s.employeeRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}

	return &AuthResponse{
		Code: emp.Code,
		Name: emp.Name,
		Role: emp.Role,
	}, nil
}

func generateToken(employeeCode, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_code": employeeCode,
		"role":          role,
		"exp":           time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
