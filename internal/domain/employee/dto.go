package employee

import (
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

// CreateRequest is the JSON part of an employee creation.
type CreateRequest struct {
	FullName           string  `json:"fullName"`
	Email              string  `json:"email"`
	PhoneNumber        string  `json:"phoneNumber,omitempty"`
	WhatsappNumber     string  `json:"whatsappNumber,omitempty"`
	LinkedInURL        string  `json:"linkedInUrl,omitempty"`
	CurrentAddress     string  `json:"currentAddress,omitempty"`
	PermanentAddress   string  `json:"permanentAddress,omitempty"`
	CollegeName        string  `json:"collegeName,omitempty"`
	Role               string  `json:"role"`
	Department         string  `json:"department"`
	JoiningDate        int64   `json:"joiningDate"`
	InternshipDuration *int    `json:"internshipDuration,omitempty"`
	Status             string  `json:"status,omitempty"`
	Salary             float64 `json:"salary"`
	HRID               string  `json:"hrId,omitempty"`

	// Multipart-only fields
	Username    string            `json:"-"`
	Password    string            `json:"-"`
	ReferenceID string            `json:"-"`
	Documents   map[string]string `json:"-"` // field name -> local file path
}

// Multipart reports whether the request must be sent as multipart/form-data.
func (r *CreateRequest) Multipart() bool {
	return r.Username != "" || len(r.Documents) > 0
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "fullName",
			Message: "fullName is required",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if r.PhoneNumber != "" && !validator.IsValidPhoneNumber(r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phoneNumber",
			Message: "phoneNumber is invalid",
		})
	}

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if r.Salary < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must not be negative",
		})
	}

	if r.InternshipDuration != nil && *r.InternshipDuration < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "internshipDuration",
			Message: "internshipDuration must not be negative",
		})
	}

	if r.Username != "" {
		if !validator.IsValidUsername(r.Username) {
			errs = append(errs, validator.ValidationError{
				Field:   "username",
				Message: "username must be 3-50 characters of letters, digits, '.', '_' or '-'",
			})
		}
		if len(r.Password) < 6 {
			errs = append(errs, validator.ValidationError{
				Field:   "password",
				Message: "password must be at least 6 characters",
			})
		}
	}

	for field := range r.Documents {
		if !validator.IsInSlice(field, DocumentFields) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: ErrUnknownDocument.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRequest carries only the fields to change.
type UpdateRequest struct {
	FullName       *string  `json:"fullName,omitempty"`
	Email          *string  `json:"email,omitempty"`
	PhoneNumber    *string  `json:"phoneNumber,omitempty"`
	CurrentAddress *string  `json:"currentAddress,omitempty"`
	Role           *string  `json:"role,omitempty"`
	Department     *string  `json:"department,omitempty"`
	Status         *string  `json:"status,omitempty"`
	Salary         *float64 `json:"salary,omitempty"`
	HRID           *string  `json:"hrId,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "fullName",
			Message: "fullName must not be empty",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.Salary != nil && *r.Salary < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Empty reports whether the update would change nothing.
func (r *UpdateRequest) Empty() bool {
	return r.FullName == nil && r.Email == nil && r.PhoneNumber == nil &&
		r.CurrentAddress == nil && r.Role == nil && r.Department == nil &&
		r.Status == nil && r.Salary == nil && r.HRID == nil
}
