package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	GenerateSlip(w http.ResponseWriter, r *http.Request)
	DownloadSlip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollRepo payroll.Repository
}

func NewPayrollHandler(payrollRepo payroll.Repository) PayrollHandler {
	return &payrollHandlerImpl{payrollRepo: payrollRepo}
}

// GenerateSlip implements PayrollHandler.
func (h *payrollHandlerImpl) GenerateSlip(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	month, errMonth := strconv.Atoi(q.Get("month"))
	year, errYear := strconv.Atoi(q.Get("year"))
	incentive := 0.0
	var errIncentive error
	if raw := q.Get("incentive"); raw != "" {
		incentive, errIncentive = strconv.ParseFloat(raw, 64)
	}
	if errMonth != nil || errYear != nil || errIncentive != nil {
		response.BadRequest(w, "month, year and incentive must be numbers", nil)
		return
	}

	req := payroll.GenerateRequest{
		EmployeeID: chi.URLParam(r, "id"),
		Month:      month,
		Year:       year,
		Incentive:  incentive,
	}
	if err := h.payrollRepo.GenerateSlip(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Salary slip generated", nil)
}

// DownloadSlip implements PayrollHandler.
func (h *payrollHandlerImpl) DownloadSlip(w http.ResponseWriter, r *http.Request) {
	period, err := payroll.ParsePeriod(r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	pdf, err := h.payrollRepo.DownloadSlip(r.Context(), chi.URLParam(r, "id"), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Binary(w, "application/pdf", period.FileName(), pdf)
}
