package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Roles carried in the JWT and enforced on protected routes.
const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Enforcer wraps casbin with the fixed two-role policy set.
type Enforcer struct {
	enforcer *casbin.Enforcer
}

func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	// Admins inherit everything employees can do.
	policies := [][]string{
		{RoleAdmin, "users", "delete"},
		{RoleAdmin, "users", "list"},
		{RoleAdmin, "products", "create"},
		{RoleAdmin, "products", "delete"},
		{RoleEmployee, "users", "list"},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	if _, err := e.AddGroupingPolicy(RoleAdmin, RoleEmployee); err != nil {
		return nil, err
	}

	return &Enforcer{enforcer: e}, nil
}

func (e *Enforcer) Enforce(role, resource, action string) (bool, error) {
	return e.enforcer.Enforce(role, resource, action)
}
