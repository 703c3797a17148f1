package rbac_test

import (
	"testing"

	"go-nippo/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func TestPolicy(t *testing.T) {
	e, err := rbac.NewEnforcer("model.conf", "policy.csv")
	assert.NoError(t, err)

	tests := []struct {
		role     string
		resource string
		action   string
		want     bool
	}{
		{"ADMIN", "employee", "create", true},
		{"ADMIN", "employee", "delete", true},
		{"ADMIN", "report", "read", true}, // inherits GENERAL grants
		{"ADMIN", "report", "create", true},
		{"GENERAL", "report", "read", true},
		{"GENERAL", "report", "create", true},
		{"GENERAL", "report", "delete", true},
		{"ADMIN", "notification", "read", true},
		{"ADMIN", "notification", "update", true},
		{"GENERAL", "employee", "read", false},
		{"GENERAL", "employee", "create", false},
		{"GENERAL", "employee", "delete", false},
		{"GENERAL", "notification", "read", false},
		{"GENERAL", "notification", "update", false},
	}

	for _, tt := range tests {
		allowed, err := e.Enforce(tt.role, tt.resource, tt.action)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, allowed, "%s %s:%s", tt.role, tt.resource, tt.action)
	}
}
