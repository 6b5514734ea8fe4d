package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleOwner, PermissionPayrollSettings))
	assert.True(t, HasPermission(RoleManager, PermissionPayrollManage))
	assert.False(t, HasPermission(RoleManager, PermissionPayrollSettings))
	assert.True(t, HasPermission(RoleEmployee, PermissionAttendanceCreate))
	assert.False(t, HasPermission(RoleEmployee, PermissionLeaveApprove))
	assert.False(t, HasPermission(RolePending, PermissionLeaveCreate))
	assert.False(t, HasPermission(Role("intern"), PermissionLeaveCreate))
}

func TestRoleIsManager(t *testing.T) {
	assert.True(t, RoleOwner.IsManager())
	assert.True(t, RoleManager.IsManager())
	assert.False(t, RoleEmployee.IsManager())
	assert.False(t, RolePending.IsManager())
}
