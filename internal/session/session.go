package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/user"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	ErrNoSession      = errors.New("no active session, run `hrdash login` first")
	ErrSessionExpired = errors.New("session expired, log in again")
)

// Provider hands the signed-in session to services.
type Provider interface {
	Current() (Session, error)
}

// Fixed is a Provider over a session that never changes.
type Fixed Session

func (f Fixed) Current() (Session, error) {
	s := Session(f)
	if !s.Authenticated() {
		return Session{}, ErrNoSession
	}
	return s, nil
}

// Session is the signed-in identity. ID is the acting-user id.
type Session struct {
	Token             string    `json:"token,omitempty" yaml:"token,omitempty"`
	Role              user.Role `json:"role" yaml:"role"`
	Username          string    `json:"username" yaml:"username"`
	ID                string    `json:"id,omitempty" yaml:"id,omitempty"`
	HRID              string    `json:"hrId,omitempty" yaml:"hrId,omitempty"`
	FullName          string    `json:"fullName,omitempty" yaml:"fullName,omitempty"`
	EmployeeID        string    `json:"employeeId,omitempty" yaml:"employeeId,omitempty"`
	ReferredByAdminID string    `json:"referredByAdminId,omitempty" yaml:"referredByAdminId,omitempty"`
}

// Profile is the session without its token, safe to print.
func (s Session) Profile() Session {
	s.Token = ""
	return s
}

// Authenticated mirrors the dashboard rule: token, role and username present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.Role.Valid() && s.Username != ""
}

// ActingUserID is the id recorded as the author of mutations.
func (s Session) ActingUserID() string {
	return s.ID
}

// SubjectID returns the id the backend keys the user's own records by.
func (s Session) SubjectID() string {
	switch s.Role {
	case user.RoleEmployee:
		if s.EmployeeID != "" {
			return s.EmployeeID
		}
	case user.RoleHR:
		if s.HRID != "" {
			return s.HRID
		}
	}
	return s.ID
}

// ExpiresAt decodes the token's exp claim without verifying the signature.
// Tokens without a readable exp report ok=false.
func (s Session) ExpiresAt() (time.Time, bool) {
	if s.Token == "" {
		return time.Time{}, false
	}
	tok, err := jwt.ParseString(s.Token, jwt.WithVerify(false), jwt.WithValidate(false))
	if err != nil {
		return time.Time{}, false
	}
	exp := tok.Expiration()
	if exp.IsZero() {
		return time.Time{}, false
	}
	return exp, true
}

// Expired reports whether the token carries an exp in the past.
func (s Session) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	return ok && !now.Before(exp)
}

// Store is the process-wide session holder backed by a JSON file.
type Store struct {
	path    string
	mu      sync.RWMutex
	current Session
	now     func() time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Init reads the session file once. A missing file leaves the store empty.
func (s *Store) Init() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return fmt.Errorf("failed to decode session file: %w", err)
	}
	sess.Role = user.ParseRole(string(sess.Role))
	if !sess.Authenticated() {
		return nil
	}
	if sess.Expired(s.now()) {
		return ErrSessionExpired
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return nil
}

// Current returns the session or ErrNoSession.
func (s *Store) Current() (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.current.Authenticated() {
		return Session{}, ErrNoSession
	}
	return s.current, nil
}

// Token satisfies the API client's token source; empty when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// Save replaces the session and persists it with owner-only permissions.
func (s *Store) Save(sess Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return nil
}

// Clear zeroes every field and removes the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Authorize returns the current session when its role holds perm.
func Authorize(p Provider, perm user.Permission) (Session, error) {
	sess, err := p.Current()
	if err != nil {
		return Session{}, err
	}
	if !user.HasPermission(sess.Role, perm) {
		return Session{}, fmt.Errorf("%w: %s cannot %s", user.ErrInsufficientPermissions, sess.Role, perm)
	}
	return sess, nil
}
