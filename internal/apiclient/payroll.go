package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
)

type PayrollAPI struct{ c *Client }

var _ payroll.Repository = (*PayrollAPI)(nil)

func (a *PayrollAPI) Salary(ctx context.Context, sq payroll.SalaryQuery) (float64, error) {
	var out float64
	q := url.Values{"month": {strconv.Itoa(sq.Month)}, "year": {strconv.Itoa(sq.Year)}}
	err := a.c.getJSON(ctx, "salary", attendancePath(sq.EmployeeID, "salary"), q, &out)
	return out, err
}

func (a *PayrollAPI) GenerateSlip(ctx context.Context, req payroll.GenerateRequest) error {
	q := url.Values{
		"month":     {strconv.Itoa(req.Month)},
		"year":      {strconv.Itoa(req.Year)},
		"incentive": {strconv.FormatFloat(req.Incentive, 'f', -1, 64)},
	}
	return a.c.sendJSON(ctx, "generate salary slip", http.MethodPost, "/api/salaryslip/generate/"+pathID(req.EmployeeID), q, nil, nil)
}

// DownloadSlip returns the raw PDF bytes.
func (a *PayrollAPI) DownloadSlip(ctx context.Context, employeeID string, period payroll.Period) ([]byte, error) {
	data, _, err := a.c.send(ctx, request{
		op:     "download salary slip",
		method: http.MethodGet,
		path:   "/api/salaryslip/download/" + pathID(employeeID),
		query:  url.Values{"month": {string(period)}},
		accept: "application/pdf",
	})
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, payroll.ErrEmptySlip
	}
	return data, nil
}
