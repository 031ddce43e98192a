package payroll

import "errors"

var (
	ErrInvalidPeriod = errors.New("salary period must be in YYYY-MM format")
	ErrSlipNotFound  = errors.New("salary slip not found")
	ErrEmptySlip     = errors.New("salary slip download was empty")
)
