package user

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		input string
		want  Role
	}{
		{"ADMIN", RoleAdmin},
		{"admin", RoleAdmin},
		{" Hr ", RoleHR},
		{"ROLE_EMPLOYEE", RoleEmployee},
		{"manager", RoleUnknown},
		{"", RoleUnknown},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseRole(c.input), "ParseRole(%q)", c.input)
	}
}

func TestRoleField_UnmarshalJSON(t *testing.T) {
	t.Run("plain string", func(t *testing.T) {
		var f RoleField
		require.NoError(t, json.Unmarshal([]byte(`"hr"`), &f))
		assert.Equal(t, RoleHR, f.Role)
		assert.Equal(t, "hr", f.Raw)
	})

	t.Run("object with name", func(t *testing.T) {
		var f RoleField
		require.NoError(t, json.Unmarshal([]byte(`{"id":3,"name":"EMPLOYEE"}`), &f))
		assert.Equal(t, RoleEmployee, f.Role)
	})

	t.Run("unsupported shape", func(t *testing.T) {
		var f RoleField
		err := json.Unmarshal([]byte(`42`), &f)
		assert.ErrorIs(t, err, ErrUnrecognizedRole)
	})

	t.Run("details payload", func(t *testing.T) {
		var d Details
		raw := `{"id":"u1","username":"jane","role":{"name":"admin"},"fullName":"Jane"}`
		require.NoError(t, json.Unmarshal([]byte(raw), &d))
		assert.Equal(t, RoleAdmin, d.Role.Role)
		assert.Equal(t, "Jane", d.FullName)
	})
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermissionHRManage))
	assert.False(t, HasPermission(RoleHR, PermissionHRManage))
	assert.True(t, HasPermission(RoleHR, PermissionAttendanceMark))
	assert.False(t, HasPermission(RoleEmployee, PermissionAttendanceMark))
	assert.True(t, HasPermission(RoleEmployee, PermissionAttendanceClock))
	assert.False(t, HasPermission(RoleUnknown, PermissionViewOwnProfile))
}
