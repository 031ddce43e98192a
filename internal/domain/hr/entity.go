package hr

import "github.com/cmlabs-hris/hris-dashboard-go/internal/domain/common"

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type HR struct {
	ID                common.ID `json:"id"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	PhoneNumber       string    `json:"phoneNumber"`
	Department        string    `json:"department"`
	ReferredByAdminID common.ID `json:"referredByAdminId"`
	JoiningDate       int64     `json:"joiningDate"`
	Status            Status    `json:"status"`
	Username          string    `json:"username,omitempty"`
}
