package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/common"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

type attendanceRepository struct {
	db *DB
}

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// recordOn must be called with mu held.
func (r *attendanceRepository) recordOn(subjectID, day string) int {
	for i, rec := range r.db.records {
		if rec.EmployeeID.String() == subjectID && rec.Date == day {
			return i
		}
	}
	return -1
}

func (r *attendanceRepository) requireEmployee(subjectID string) error {
	if r.db.employeeIndex(subjectID) < 0 {
		return fmt.Errorf("%w: %s", employee.ErrEmployeeNotFound, subjectID)
	}
	return nil
}

// ListBySubject implements attendance.Repository.
func (r *attendanceRepository) ListBySubject(ctx context.Context, subjectID string, day string) ([]attendance.Record, error) {
	out := []attendance.Record{}
	err := r.db.read(func() error {
		if err := r.requireEmployee(subjectID); err != nil {
			return err
		}
		for _, rec := range r.db.records {
			if rec.EmployeeID.String() != subjectID {
				continue
			}
			if day != "" && rec.Date != day {
				continue
			}
			out = append(out, rec)
		}
		return nil
	})
	sortRecords(out)
	return out, err
}

// Mark implements attendance.Repository. One record per employee and day.
func (r *attendanceRepository) Mark(ctx context.Context, subjectID string, status attendance.Status) (attendance.Record, error) {
	if !status.Submittable() {
		return attendance.Record{}, fmt.Errorf("%w: %q", attendance.ErrInvalidStatus, status)
	}

	var out attendance.Record
	err := r.db.write(func() error {
		if err := r.requireEmployee(subjectID); err != nil {
			return err
		}
		today := r.db.today()
		if r.recordOn(subjectID, today) >= 0 {
			return attendance.ErrAlreadyMarked
		}
		out = attendance.Record{
			ID:         common.ID(r.db.newID()),
			EmployeeID: common.ID(subjectID),
			Date:       today,
			Status:     status,
		}
		r.db.records = append(r.db.records, out)
		return nil
	})
	return out, err
}

// Update implements attendance.Repository.
func (r *attendanceRepository) Update(ctx context.Context, recordID string, req attendance.UpdateRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	var out attendance.Record
	err := r.db.write(func() error {
		idx := -1
		for i, rec := range r.db.records {
			if rec.ID.String() == recordID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return attendance.ErrAttendanceNotFound
		}
		if err := r.requireEmployee(req.EmployeeID); err != nil {
			return err
		}
		if other := r.recordOn(req.EmployeeID, req.Date); other >= 0 && other != idx {
			return attendance.ErrAlreadyMarked
		}

		rec := &r.db.records[idx]
		rec.Status = req.Status
		rec.Date = req.Date
		rec.EmployeeID = common.ID(req.EmployeeID)
		out = *rec
		return nil
	})
	return out, err
}

// Summary implements attendance.Repository.
func (r *attendanceRepository) Summary(ctx context.Context, subjectID string, q attendance.RangeQuery) (attendance.Summary, error) {
	if err := q.Validate(); err != nil {
		return attendance.Summary{}, err
	}

	out := attendance.Summary{
		AttendanceList: []attendance.Record{},
		StartDate:      q.StartDate,
		EndDate:        q.EndDate,
	}
	err := r.db.read(func() error {
		if err := r.requireEmployee(subjectID); err != nil {
			return err
		}
		for _, rec := range r.db.records {
			if rec.EmployeeID.String() != subjectID || !inRange(rec.Date, q) {
				continue
			}
			out.AttendanceList = append(out.AttendanceList, rec)
			switch rec.Status {
			case attendance.StatusPresent:
				out.PresentCount++
			case attendance.StatusAbsent:
				out.AbsentCount++
			case attendance.StatusHalfDay:
				out.HalfDayCount++
			}
		}
		return nil
	})
	sortRecords(out.AttendanceList)
	return out, err
}

// CheckIn implements attendance.Repository. A missing record for today is
// created as PRESENT.
func (r *attendanceRepository) CheckIn(ctx context.Context, subjectID string, at attendance.ClockTime) (attendance.Record, error) {
	var out attendance.Record
	err := r.db.write(func() error {
		if err := r.requireEmployee(subjectID); err != nil {
			return err
		}
		today := r.db.today()
		idx := r.recordOn(subjectID, today)
		if idx < 0 {
			r.db.records = append(r.db.records, attendance.Record{
				ID:         common.ID(r.db.newID()),
				EmployeeID: common.ID(subjectID),
				Date:       today,
				Status:     attendance.StatusPresent,
			})
			idx = len(r.db.records) - 1
		}

		rec := &r.db.records[idx]
		if rec.CheckInTime != nil {
			return attendance.ErrAlreadyCheckedIn
		}
		t := at
		rec.CheckInTime = &t
		out = *rec
		return nil
	})
	return out, err
}

// CheckOut implements attendance.Repository.
func (r *attendanceRepository) CheckOut(ctx context.Context, subjectID string, at attendance.ClockTime) (attendance.Record, error) {
	var out attendance.Record
	err := r.db.write(func() error {
		if err := r.requireEmployee(subjectID); err != nil {
			return err
		}
		idx := r.recordOn(subjectID, r.db.today())
		if idx < 0 || r.db.records[idx].CheckInTime == nil {
			return attendance.ErrNotCheckedIn
		}
		rec := &r.db.records[idx]
		if rec.CheckOutTime != nil {
			return attendance.ErrAlreadyCheckedOut
		}
		t := at
		rec.CheckOutTime = &t
		out = *rec
		return nil
	})
	return out, err
}

// Range implements attendance.Repository.
func (r *attendanceRepository) Range(ctx context.Context, q attendance.RangeQuery) ([]attendance.Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	out := []attendance.Record{}
	_ = r.db.read(func() error {
		for _, rec := range r.db.records {
			if inRange(rec.Date, q) {
				out = append(out, rec)
			}
		}
		return nil
	})
	sortRecords(out)
	return out, nil
}

// inRange compares YYYY-MM-DD strings, which order lexically.
func inRange(day string, q attendance.RangeQuery) bool {
	if _, ok := validator.IsValidDate(day); !ok {
		return false
	}
	return day >= q.StartDate && day <= q.EndDate
}

func sortRecords(list []attendance.Record) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date < list[j].Date
		}
		return list[i].EmployeeID < list[j].EmployeeID
	})
}
