// Package principal carries the authenticated caller's identity into the
// service layer. Services receive it explicitly instead of reading
// request-scoped globals.
package principal

import (
	"go-nippo/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

const (
	RoleAdmin   = "ADMIN"
	RoleGeneral = "GENERAL"
)

// Principal identifies the employee behind the current request.
type Principal struct {
	EmployeeCode string
	Role         string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleGeneral
}

// FromGin rebuilds the principal from the context keys the auth
// middleware sets after verifying the token.
func FromGin(c *gin.Context) (Principal, error) {
	code := c.GetString("employee_code")
	role := c.GetString("role")
	if code == "" || !ValidRole(role) {
		return Principal{}, apperror.ErrUnauthorized
	}
	return Principal{EmployeeCode: code, Role: role}, nil
}
