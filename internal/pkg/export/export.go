package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/xuri/excelize/v2"
)

var ErrNoSheets = errors.New("workbook needs at least one sheet")

// Sheet is one worksheet: a header row followed by data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Workbook renders sheets into an .xlsx document.
func Workbook(sheets ...Sheet) (*bytes.Buffer, error) {
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return nil, fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %q: %w", sheet.Name, err)
		}
		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	header := make([]any, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", sheet.Name, err)
	}
	if err := f.SetRowStyle(sheet.Name, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %q: %w", sheet.Name, err)
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+1, sheet.Name, err)
		}
	}

	if len(sheet.Header) > 0 {
		last, err := excelize.ColumnNumberToName(len(sheet.Header))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, "A", last, 18); err != nil {
			return err
		}
	}
	return nil
}

// Save renders sheets and stores the workbook under name.
func Save(ctx context.Context, files storage.FileStorage, name string, sheets ...Sheet) (string, error) {
	buf, err := Workbook(sheets...)
	if err != nil {
		return "", err
	}
	return files.Save(ctx, buf, name)
}

func AttendanceBoard(rows []attendance.BoardRow) Sheet {
	s := Sheet{
		Name:   "Attendance",
		Header: []string{"Employee ID", "Name", "Date", "Status", "Present", "Absent", "Half Day", "Error"},
	}
	for _, r := range rows {
		s.Rows = append(s.Rows, []any{
			r.SubjectID, r.FullName, r.Date, r.Status.Label(),
			r.PresentCount, r.AbsentCount, r.HalfDayCount, r.Error,
		})
	}
	return s
}

func AttendanceRecords(records []attendance.Record) Sheet {
	s := Sheet{
		Name:   "Records",
		Header: []string{"Record ID", "Employee ID", "Date", "Status", "Check In", "Check Out"},
	}
	for _, r := range records {
		s.Rows = append(s.Rows, []any{
			r.ID.String(), r.EmployeeID.String(), r.Date, r.Status.Label(),
			clock(r.CheckInTime), clock(r.CheckOutTime),
		})
	}
	return s
}

func Employees(list []employee.Employee) Sheet {
	s := Sheet{
		Name:   "Employees",
		Header: []string{"ID", "Name", "Email", "Phone", "Role", "Department", "Joined", "Status", "Salary"},
	}
	for _, e := range list {
		joined := ""
		if t, ok := e.Joined(); ok {
			joined = t.Format(validator.DateLayout)
		}
		s.Rows = append(s.Rows, []any{
			e.ID.String(), e.DisplayName(), e.Email, e.PhoneNumber,
			e.Role.String(), e.Department.String(), joined, e.Status, e.Salary,
		})
	}
	return s
}

func Leaves(list []leave.Leave) Sheet {
	s := Sheet{
		Name:   "Leaves",
		Header: []string{"ID", "Employee ID", "From", "To", "Days", "Reason", "Status", "Requested"},
	}
	for _, l := range list {
		s.Rows = append(s.Rows, []any{
			l.ID.String(), l.EmployeeID.String(), l.FromDate, l.ToDate,
			l.DurationDays(), l.Reason, string(l.Status), l.RequestDate,
		})
	}
	return s
}

func clock(c *attendance.ClockTime) string {
	if c == nil {
		return ""
	}
	return c.String()
}
