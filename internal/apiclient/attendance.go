package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
)

type AttendanceAPI struct{ c *Client }

var _ attendance.Repository = (*AttendanceAPI)(nil)

func attendancePath(subjectID, action string) string {
	return "/api/attendance/" + pathID(subjectID) + "/" + action
}

func (a *AttendanceAPI) ListBySubject(ctx context.Context, subjectID string, day string) ([]attendance.Record, error) {
	var q url.Values
	if day != "" {
		q = url.Values{"date": {day}}
	}
	var out []attendance.Record
	err := a.c.getJSON(ctx, "list attendance", attendancePath(subjectID, "report"), q, &out)
	return out, err
}

func (a *AttendanceAPI) Mark(ctx context.Context, subjectID string, status attendance.Status) (attendance.Record, error) {
	var out attendance.Record
	q := url.Values{"status": {string(status)}}
	err := a.c.sendJSON(ctx, "mark attendance", http.MethodPost, attendancePath(subjectID, "mark"), q, nil, &out)
	return out, err
}

func (a *AttendanceAPI) Update(ctx context.Context, recordID string, req attendance.UpdateRequest) (attendance.Record, error) {
	var out attendance.Record
	err := a.c.sendJSON(ctx, "update attendance", http.MethodPut, "/api/attendance/"+pathID(recordID), nil, req, &out)
	return out, err
}

func (a *AttendanceAPI) Summary(ctx context.Context, subjectID string, rq attendance.RangeQuery) (attendance.Summary, error) {
	var out attendance.Summary
	q := url.Values{"startDate": {rq.StartDate}, "endDate": {rq.EndDate}}
	err := a.c.getJSON(ctx, "attendance summary", attendancePath(subjectID, "summary"), q, &out)
	return out, err
}

func clockQuery(at attendance.ClockTime) url.Values {
	return url.Values{
		"hour":   {strconv.Itoa(at.Hour)},
		"minute": {strconv.Itoa(at.Minute)},
		"second": {strconv.Itoa(at.Second)},
		"nano":   {strconv.Itoa(at.Nano)},
	}
}

func (a *AttendanceAPI) CheckIn(ctx context.Context, subjectID string, at attendance.ClockTime) (attendance.Record, error) {
	var out attendance.Record
	err := a.c.sendJSON(ctx, "check in", http.MethodPost, attendancePath(subjectID, "checkin"), clockQuery(at), nil, &out)
	return out, err
}

func (a *AttendanceAPI) CheckOut(ctx context.Context, subjectID string, at attendance.ClockTime) (attendance.Record, error) {
	var out attendance.Record
	err := a.c.sendJSON(ctx, "check out", http.MethodPost, attendancePath(subjectID, "checkout"), clockQuery(at), nil, &out)
	return out, err
}

func (a *AttendanceAPI) Range(ctx context.Context, rq attendance.RangeQuery) ([]attendance.Record, error) {
	var out []attendance.Record
	q := url.Values{"startDate": {rq.StartDate}, "endDate": {rq.EndDate}}
	err := a.c.getJSON(ctx, "attendance range", "/api/attendance/range", q, &out)
	return out, err
}
