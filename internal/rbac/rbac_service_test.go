package rbac_test

import (
	"testing"

	"go-payroll/internal/domain"
	"go-payroll/internal/rbac"
	rbacMock "go-payroll/internal/rbac/mock"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	modelText := `[request_definition]
r = sub, dom, obj, act

[policy_definition]
p = sub, dom, obj, act

[role_definition]
g = _, _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub, r.dom) && r.dom == p.dom && r.obj == p.obj && r.act == p.act
`

	m, err := model.NewModelFromString(modelText)
	assert.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	assert.NoError(t, err)

	return e
}

func TestService_Enforce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := rbacMock.NewMockRepository(ctrl)
	repo.EXPECT().GetEmployeeRoles("company-1").Return([]rbac.EmployeeRoleRow{
		{EmployeeID: "emp-1", RoleID: "role-payroll-admin"},
	}, nil).AnyTimes()
	repo.EXPECT().GetRolePermissions("company-1").Return([]rbac.RolePermissionRow{
		{RoleID: "role-payroll-admin", Resource: "payroll_run", Action: "commit"},
		{RoleID: "role-payroll-admin", Resource: "payroll_run", Action: "read"},
	}, nil).AnyTimes()

	service := rbac.NewService(repo, newTestEnforcer(t), zap.NewNop())

	allowed, err := service.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		Resource:   "payroll_run",
		Action:     "commit",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)

	denied, err := service.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		Resource:   "payroll_run",
		Action:     "approve",
	})
	assert.NoError(t, err)
	assert.False(t, denied)
}

func TestService_Enforce_UnassignedEmployee(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := rbacMock.NewMockRepository(ctrl)
	repo.EXPECT().GetEmployeeRoles("company-1").Return(nil, nil)
	repo.EXPECT().GetRolePermissions("company-1").Return(nil, nil)

	service := rbac.NewService(repo, newTestEnforcer(t), zap.NewNop())

	allowed, err := service.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-9",
		CompanyID:  "company-1",
		Resource:   "payroll_run",
		Action:     "read",
	})
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestService_Enforce_CrossCompanyRoleDoesNotLeak(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := rbacMock.NewMockRepository(ctrl)
	repo.EXPECT().GetEmployeeRoles("company-2").Return([]rbac.EmployeeRoleRow{
		{EmployeeID: "emp-1", RoleID: "role-payroll-admin"},
	}, nil)
	repo.EXPECT().GetRolePermissions("company-2").Return([]rbac.RolePermissionRow{
		{RoleID: "role-payroll-admin", Resource: "payroll_run", Action: "commit"},
	}, nil)

	service := rbac.NewService(repo, newTestEnforcer(t), zap.NewNop())
	assert.NoError(t, service.LoadCompanyPolicy("company-2"))

	// Role was granted in company-2; an enforce against company-1 must
	// load company-1's (empty) policy, not reuse company-2's.
	repo.EXPECT().GetEmployeeRoles("company-1").Return(nil, nil)
	repo.EXPECT().GetRolePermissions("company-1").Return(nil, nil)

	allowed, err := service.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		Resource:   "payroll_run",
		Action:     "commit",
	})
	assert.NoError(t, err)
	assert.False(t, allowed)
}
