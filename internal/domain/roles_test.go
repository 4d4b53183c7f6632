package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_HasRight(t *testing.T) {
	tests := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleUser, PermissionGetEvents, true},
		{RoleUser, PermissionManageEvents, false},
		{RoleUser, PermissionGetUsers, false},
		{RoleUser, PermissionManageUsers, false},
		{RoleAdmin, PermissionGetEvents, true},
		{RoleAdmin, PermissionManageEvents, true},
		{RoleAdmin, PermissionGetUsers, true},
		{RoleAdmin, PermissionManageUsers, true},
		{Role("GUEST"), PermissionGetEvents, false},
		{RoleAdmin, Permission("deleteEverything"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.perm), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.HasRight(tt.perm))
			var checker PermissionChecker = Principal{UserID: 1, Role: tt.role}
			assert.Equal(t, tt.want, checker.HasRight(tt.perm))
		})
	}
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("admin").Valid())
}
