package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	_, tok, err := ja.Encode(map[string]interface{}{"user_id": "u1", "exp": exp.Unix()})
	require.NoError(t, err)
	return tok
}

func TestStore_SaveInitClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewStore(path)

	_, err := store.Current()
	assert.ErrorIs(t, err, ErrNoSession)

	sess := Session{
		Token:      signedToken(t, time.Now().Add(time.Hour)),
		Role:       user.RoleEmployee,
		Username:   "ravi",
		ID:         "u1",
		EmployeeID: "E1",
	}
	require.NoError(t, store.Save(sess))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reloaded := NewStore(path)
	require.NoError(t, reloaded.Init())
	got, err := reloaded.Current()
	require.NoError(t, err)
	assert.Equal(t, sess, got)
	assert.Equal(t, sess.Token, reloaded.Token())

	require.NoError(t, reloaded.Clear())
	_, err = reloaded.Current()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Empty(t, reloaded.Token())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// clearing twice is fine
	assert.NoError(t, reloaded.Clear())
}

func TestStore_InitMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, store.Init())
	_, err := store.Current()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_InitExpired(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)
	require.NoError(t, store.Save(Session{
		Token:    signedToken(t, time.Now().Add(-time.Hour)),
		Role:     user.RoleHR,
		Username: "hr1",
	}))

	reloaded := NewStore(path)
	assert.ErrorIs(t, reloaded.Init(), ErrSessionExpired)
	assert.Empty(t, reloaded.Token())
}

func TestStore_InitNormalizesRole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"opaque","role":"hr","username":"h"}`), 0o600))

	store := NewStore(path)
	require.NoError(t, store.Init())
	sess, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, user.RoleHR, sess.Role)

	_, ok := sess.ExpiresAt()
	assert.False(t, ok, "opaque tokens have no readable expiry")
}

func TestSession_SubjectID(t *testing.T) {
	cases := []struct {
		name string
		sess Session
		want string
	}{
		{"employee with employee id", Session{Role: user.RoleEmployee, ID: "u", EmployeeID: "E"}, "E"},
		{"employee fallback", Session{Role: user.RoleEmployee, ID: "u"}, "u"},
		{"hr with hr id", Session{Role: user.RoleHR, ID: "u", HRID: "H"}, "H"},
		{"hr fallback", Session{Role: user.RoleHR, ID: "u"}, "u"},
		{"admin", Session{Role: user.RoleAdmin, ID: "u", HRID: "H"}, "u"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.sess.SubjectID())
		})
	}
}
