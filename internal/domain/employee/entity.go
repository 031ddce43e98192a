package employee

import (
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/common"
)

type Employee struct {
	ID                 common.ID  `json:"id"`
	FullName           string     `json:"fullName"`
	Email              string     `json:"email"`
	PhoneNumber        string     `json:"phoneNumber,omitempty"`
	WhatsappNumber     string     `json:"whatsappNumber,omitempty"`
	LinkedInURL        string     `json:"linkedInUrl,omitempty"`
	CurrentAddress     string     `json:"currentAddress,omitempty"`
	PermanentAddress   string     `json:"permanentAddress,omitempty"`
	CollegeName        string     `json:"collegeName,omitempty"`
	Role               common.Ref `json:"role"`
	Department         common.Ref `json:"department"`
	JoiningDate        int64      `json:"joiningDate,omitempty"` // epoch milliseconds
	InternshipDuration *int       `json:"internshipDuration,omitempty"`
	Status             string     `json:"status,omitempty"`
	Salary             float64    `json:"salary"`
	HRID               common.ID  `json:"hrId,omitempty"`
}

// DisplayName falls back to a placeholder when the backend omits the name.
func (e Employee) DisplayName() string {
	if e.FullName == "" {
		return "Unknown Employee"
	}
	return e.FullName
}

// Joined converts JoiningDate to a time in the local zone.
func (e Employee) Joined() (time.Time, bool) {
	if e.JoiningDate == 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(e.JoiningDate), true
}

// Document fields accepted by the multipart create endpoint.
const (
	DocPhotograph         = "photograph"
	DocTenthMarksheet     = "tenthMarksheet"
	DocTwelfthMarksheet   = "twelfthMarksheet"
	DocBachelorDegree     = "bachelorDegree"
	DocPostgraduateDegree = "postgraduateDegree"
	DocAadharCard         = "aadharCard"
	DocPanCard            = "panCard"
	DocPCC                = "pcc"
	DocResume             = "resume"
	DocOfferLetter        = "offerLetter"
)

var DocumentFields = []string{
	DocPhotograph,
	DocTenthMarksheet,
	DocTwelfthMarksheet,
	DocBachelorDegree,
	DocPostgraduateDegree,
	DocAadharCard,
	DocPanCard,
	DocPCC,
	DocResume,
	DocOfferLetter,
}

// Dedupe keeps the first occurrence of every employee id, preserving order.
func Dedupe(list []Employee) []Employee {
	seen := make(map[common.ID]struct{}, len(list))
	out := make([]Employee, 0, len(list))
	for _, e := range list {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}

// AverageSalary returns the mean salary, or zero for an empty list.
func AverageSalary(list []Employee) float64 {
	if len(list) == 0 {
		return 0
	}
	var total float64
	for _, e := range list {
		total += e.Salary
	}
	return total / float64(len(list))
}
