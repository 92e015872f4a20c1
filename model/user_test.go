package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	for _, role := range []Role{RoleGuest, RoleStudent, RoleTutor, RoleStaff, RoleAdmin} {
		assert.True(t, ValidRole(role))
	}
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("superadmin"))
	assert.False(t, ValidRole("Admin")) // case sensitive, closed set
}

func TestRoleElevated(t *testing.T) {
	assert.False(t, RoleGuest.Elevated())
	assert.False(t, Role("").Elevated())
	assert.True(t, RoleStudent.Elevated())
	assert.True(t, RoleTutor.Elevated())
	assert.True(t, RoleStaff.Elevated())
	assert.True(t, RoleAdmin.Elevated())
}

func TestRoleIn(t *testing.T) {
	assert.True(t, RoleAdmin.In(RoleStaff, RoleAdmin))
	assert.True(t, RoleStaff.In(RoleStaff, RoleAdmin))
	assert.False(t, RoleTutor.In(RoleStaff, RoleAdmin))
	assert.False(t, RoleGuest.In())
}
