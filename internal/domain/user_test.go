package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleTeacher.IsValid())
	assert.True(t, RoleStudent.IsValid())
	assert.False(t, Role("admin").IsValid())
	assert.False(t, Role("").IsValid())
	assert.False(t, Role("Teacher").IsValid(), "roles are case sensitive")
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ann@x.com", NormalizeEmail(" Ann@X.com "))
	assert.Equal(t, "ann@x.com", NormalizeEmail("ann@x.com"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestNewUser_NormalizesFields(t *testing.T) {
	user := NewUser("id-1", "  Ann Lee  ", " Ann@X.com ", "hash", RoleStudent)

	assert.Equal(t, "Ann Lee", user.Name)
	assert.Equal(t, "ann@x.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserValidate(t *testing.T) {
	valid := NewUser("id-1", "Ann", "ann@x.com", "hash", RoleTeacher)
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*User)
	}{
		{"missing id", func(u *User) { u.ID = "" }},
		{"missing email", func(u *User) { u.Email = "" }},
		{"missing hash", func(u *User) { u.PasswordHash = "" }},
		{"bad role", func(u *User) { u.Role = "admin" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := NewUser("id-1", "Ann", "ann@x.com", "hash", RoleTeacher)
			tt.mutate(user)
			assert.Error(t, user.Validate())
		})
	}
}
