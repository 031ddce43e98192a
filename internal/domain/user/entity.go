package user

import (
	"encoding/json"
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/common"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // Manages HRs and sees every employee
	RoleHR       Role = "HR"       // Manages employees, attendance and leave
	RoleEmployee Role = "EMPLOYEE" // Self service only
	RoleUnknown  Role = ""
)

// ParseRole normalizes the role spellings the backend emits
// ("admin", "ROLE_HR", " Employee ") into a Role.
func ParseRole(raw string) Role {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "ROLE_")
	switch Role(s) {
	case RoleAdmin, RoleHR, RoleEmployee:
		return Role(s)
	default:
		return RoleUnknown
	}
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleHR || r == RoleEmployee
}

func (r Role) String() string {
	return string(r)
}

// RoleField decodes a role that arrives either as a plain string or as an
// object carrying a name, and exposes it normalized.
type RoleField struct {
	Raw  string
	Role Role
}

func (f *RoleField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Raw = s
		f.Role = ParseRole(s)
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return ErrUnrecognizedRole
	}
	f.Raw = obj.Name
	f.Role = ParseRole(obj.Name)
	return nil
}

func (f RoleField) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f.Role))
}

// Details is the profile the backend returns for a username.
type Details struct {
	ID                common.ID `json:"id"`
	Username          string    `json:"username"`
	Role              RoleField `json:"role"`
	EmployeeID        common.ID `json:"employeeId,omitempty"`
	HRID              common.ID `json:"hrId,omitempty"`
	FullName          string    `json:"fullName,omitempty"`
	ReferredByAdminID common.ID `json:"referredByAdminId,omitempty"`
}

// IsAdmin checks if the role is administrator
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// IsManager checks if the role may manage other people
func (r Role) IsManager() bool {
	return r == RoleAdmin || r == RoleHR
}

// CanApprove checks if the role can approve leave requests
func (r Role) CanApprove() bool {
	return r.IsManager()
}
