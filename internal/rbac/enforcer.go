// Package rbac authorizes routes with a Casbin enforcer over a static
// role/resource/action policy. Roles come from the verified token, so the
// enforcer never needs per-request storage access.
package rbac

import (
	"github.com/casbin/casbin/v2"
)

func NewEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath, policyPath)
}
