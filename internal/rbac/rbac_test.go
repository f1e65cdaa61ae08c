package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NicBab/x-tech-app-server/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestEnforcer(t *testing.T) {
	e, err := rbac.NewEnforcer()
	assert.NoError(t, err)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"admin deletes users", rbac.RoleAdmin, "users", "delete", true},
		{"employee cannot delete users", rbac.RoleEmployee, "users", "delete", false},
		{"admin lists users", rbac.RoleAdmin, "users", "list", true},
		{"employee lists users", rbac.RoleEmployee, "users", "list", true},
		{"admin creates products", rbac.RoleAdmin, "products", "create", true},
		{"employee cannot create products", rbac.RoleEmployee, "products", "create", false},
		{"unknown role denied", "SUPERUSER", "users", "list", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := e.Enforce(tc.role, tc.resource, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestAuthorize(t *testing.T) {
	e, err := rbac.NewEnforcer()
	assert.NoError(t, err)

	perform := func(role string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/users", nil)
		if role != "" {
			c.Set("role", role)
		}

		rbac.Authorize(e, "users", "delete")(c)
		if !c.IsAborted() {
			c.Status(http.StatusOK)
		}
		return w
	}

	t.Run("missing role context", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, perform("").Code)
	})

	t.Run("denied role", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, perform(rbac.RoleEmployee).Code)
	})

	t.Run("allowed role", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, perform(rbac.RoleAdmin).Code)
	})
}
