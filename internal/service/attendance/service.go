package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/pubsub"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/store"
	"golang.org/x/sync/errgroup"
)

const (
	EventStateChanged = "attendance.state"

	defaultConcurrency = 8
)

type AttendanceServiceImpl struct {
	attendance.Repository
	actingUserID func() string
	now          func() time.Time
	hub          *pubsub.Hub
	store        *store.Store
	logger       *slog.Logger
	concurrency  int

	mu         sync.Mutex
	states     map[string]*attendance.ViewState
	fetchSeq   map[string]uint64
	summarySeq map[string]uint64
	closed     bool
}

type Option func(*AttendanceServiceImpl)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *AttendanceServiceImpl) { s.now = now }
}

func WithHub(hub *pubsub.Hub) Option {
	return func(s *AttendanceServiceImpl) { s.hub = hub }
}

// WithStore mirrors summaries and check-in refreshes into the domain store.
func WithStore(st *store.Store) Option {
	return func(s *AttendanceServiceImpl) { s.store = st }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *AttendanceServiceImpl) { s.logger = l }
}

// WithConcurrency bounds the number of subjects tracked at once by TrackAll.
func WithConcurrency(n int) Option {
	return func(s *AttendanceServiceImpl) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewAttendanceService builds the reconciler. actingUserID reports the id of
// the signed-in operator; an empty value blocks every submission.
func NewAttendanceService(repo attendance.Repository, actingUserID func() string, opts ...Option) *AttendanceServiceImpl {
	s := &AttendanceServiceImpl{
		Repository:   repo,
		actingUserID: actingUserID,
		now:          time.Now,
		hub:          pubsub.NewHub(0),
		logger:       slog.Default(),
		concurrency:  defaultConcurrency,
		states:       make(map[string]*attendance.ViewState),
		fetchSeq:     make(map[string]uint64),
		summarySeq:   make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)

// stateLocked returns the subject's state, creating it on first use.
// Callers hold s.mu.
func (s *AttendanceServiceImpl) stateLocked(subjectID string) *attendance.ViewState {
	st, ok := s.states[subjectID]
	if !ok {
		st = &attendance.ViewState{SubjectID: subjectID}
		s.states[subjectID] = st
	}
	return st
}

func snapshot(st *attendance.ViewState) attendance.ViewState {
	out := *st
	if st.RecordID != nil {
		id := *st.RecordID
		out.RecordID = &id
	}
	if st.Summary != nil {
		sum := *st.Summary
		out.Summary = &sum
	}
	return out
}

// publishLocked broadcasts the subject's current state. Callers hold s.mu.
func (s *AttendanceServiceImpl) publishLocked(st *attendance.ViewState) {
	s.hub.Publish(pubsub.Event{Topic: st.SubjectID, Kind: EventStateChanged, Data: snapshot(st)})
}

// EnsureTodayStatus implements attendance.Tracker.
func (s *AttendanceServiceImpl) EnsureTodayStatus(ctx context.Context, subjectID string, day string) (attendance.ViewState, error) {
	if subjectID == "" {
		return attendance.ViewState{}, attendance.ErrSubjectRequired
	}
	if _, ok := validator.IsValidDate(day); !ok {
		return attendance.ViewState{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", attendance.ErrFetchFailed)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return attendance.ViewState{}, attendance.ErrClosed
	}
	st := s.stateLocked(subjectID)
	st.Loading = true
	s.fetchSeq[subjectID]++
	seq := s.fetchSeq[subjectID]
	s.publishLocked(st)
	s.mu.Unlock()

	records, err := s.Repository.ListBySubject(ctx, subjectID, day)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return attendance.ViewState{}, attendance.ErrClosed
	}
	if s.fetchSeq[subjectID] != seq {
		s.logger.Debug("dropping superseded attendance fetch", "subject_id", subjectID, "date", day)
		return snapshot(st), attendance.ErrSuperseded
	}

	st.Loading = false
	if err != nil {
		st.Error = err.Error()
		s.publishLocked(st)
		return snapshot(st), fmt.Errorf("%w: %w", attendance.ErrFetchFailed, err)
	}

	var match *attendance.Record
	matches := 0
	for i := range records {
		if !records[i].OnDay(day) {
			continue
		}
		matches++
		if match == nil {
			match = &records[i]
		}
	}
	if matches > 1 {
		s.logger.Warn("multiple attendance records for one day, using the first",
			"subject_id", subjectID,
			"date", day,
			"count", matches,
		)
	}

	st.Date = day
	st.Error = ""
	if match != nil {
		id := match.ID.String()
		st.RecordID = &id
		st.Status = match.Status
	} else {
		st.RecordID = nil
		st.Status = attendance.StatusNotMarked
	}
	s.publishLocked(st)
	return snapshot(st), nil
}

// SubmitStatus implements attendance.Tracker.
//
// A subject that already has a record for the loaded day is updated;
// otherwise a record is created. Only one submission per subject may be in
// flight; a second one fails with ErrSubmitInFlight and issues no request.
func (s *AttendanceServiceImpl) SubmitStatus(ctx context.Context, subjectID string, desired attendance.Status) (attendance.ViewState, error) {
	if s.actingUserID == nil || s.actingUserID() == "" {
		return attendance.ViewState{}, attendance.ErrMissingActingUser
	}
	if subjectID == "" {
		return attendance.ViewState{}, attendance.ErrSubjectRequired
	}
	if !desired.Submittable() {
		return attendance.ViewState{}, fmt.Errorf("%w: %s", attendance.ErrNotSubmittable, desired)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return attendance.ViewState{}, attendance.ErrClosed
	}
	st, ok := s.states[subjectID]
	if !ok || !st.Loaded() {
		s.mu.Unlock()
		return attendance.ViewState{}, attendance.ErrNotLoaded
	}
	if st.Pending {
		out := snapshot(st)
		s.mu.Unlock()
		return out, attendance.ErrSubmitInFlight
	}
	st.Pending = true
	day := st.Date
	var recordID string
	update := st.RecordID != nil && st.Status != attendance.StatusNotMarked
	if update {
		recordID = *st.RecordID
	}
	s.publishLocked(st)
	s.mu.Unlock()

	defer s.clearPending(subjectID)

	var (
		rec     attendance.Record
		err     error
		failure error
	)
	if update {
		rec, err = s.Repository.Update(ctx, recordID, attendance.UpdateRequest{
			Status:     desired,
			Date:       day,
			EmployeeID: subjectID,
		})
		failure = attendance.ErrUpdateFailed
	} else {
		rec, err = s.Repository.Mark(ctx, subjectID, desired)
		failure = attendance.ErrCreateFailed
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return attendance.ViewState{}, attendance.ErrClosed
	}
	if err != nil {
		st.Error = fmt.Sprintf("%s: %s", failure, err)
		s.publishLocked(st)
		out := snapshot(st)
		s.mu.Unlock()
		s.logger.Info("attendance submission failed",
			"subject_id", subjectID,
			"status", desired,
			"update", update,
			"error", err,
		)
		return out, fmt.Errorf("%w: %w", failure, err)
	}

	if id := rec.ID.String(); id != "" {
		st.RecordID = &id
	} else if update {
		st.RecordID = &recordID
	}
	st.Status = desired
	if rec.Status != "" {
		st.Status = rec.Status
	}
	st.Error = ""
	// Fetches started before the write may carry pre-write data.
	s.fetchSeq[subjectID]++
	s.publishLocked(st)
	s.mu.Unlock()

	s.logger.Debug("attendance submitted", "subject_id", subjectID, "status", desired, "update", update)

	return s.reconcile(ctx, subjectID, day)
}

// reconcile re-reads the subject's record and month-to-date summary after a
// successful write. The write already stands, so a failed re-read is logged
// and left in the state's Error instead of being returned.
func (s *AttendanceServiceImpl) reconcile(ctx context.Context, subjectID, day string) (attendance.ViewState, error) {
	_, err := s.EnsureTodayStatus(ctx, subjectID, day)
	if err == nil {
		t, _ := validator.IsValidDate(day)
		_, err = s.RefreshSummary(ctx, subjectID, attendance.RangeQuery{
			StartDate: attendance.MonthStart(t),
			EndDate:   day,
		})
	}
	if errors.Is(err, attendance.ErrClosed) {
		return attendance.ViewState{}, err
	}
	if err != nil && !errors.Is(err, attendance.ErrSuperseded) {
		s.logger.Warn("attendance saved but reconcile failed",
			"subject_id", subjectID,
			"date", day,
			"error", err,
		)
	}

	vs, _ := s.Snapshot(subjectID)
	// The pending flag is still held by the caller's deferred release.
	vs.Pending = false
	return vs, nil
}

func (s *AttendanceServiceImpl) clearPending(subjectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if st, ok := s.states[subjectID]; ok && st.Pending {
		st.Pending = false
		s.publishLocked(st)
	}
}

// RefreshSummary implements attendance.Tracker.
func (s *AttendanceServiceImpl) RefreshSummary(ctx context.Context, subjectID string, q attendance.RangeQuery) (attendance.Summary, error) {
	if subjectID == "" {
		return attendance.Summary{}, attendance.ErrSubjectRequired
	}
	if err := q.Validate(); err != nil {
		return attendance.Summary{}, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return attendance.Summary{}, attendance.ErrClosed
	}
	s.summarySeq[subjectID]++
	seq := s.summarySeq[subjectID]
	s.mu.Unlock()

	sum, err := s.Repository.Summary(ctx, subjectID, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return attendance.Summary{}, attendance.ErrClosed
	}
	if s.summarySeq[subjectID] != seq {
		return sum, attendance.ErrSuperseded
	}

	st, tracked := s.states[subjectID]
	if err != nil {
		if tracked {
			st.Error = fmt.Sprintf("%s: %s", attendance.ErrSummaryFailed, err)
			s.publishLocked(st)
		}
		return attendance.Summary{}, fmt.Errorf("%w: %w", attendance.ErrSummaryFailed, err)
	}

	if sum.StartDate == "" {
		sum.StartDate = q.StartDate
	}
	if sum.EndDate == "" {
		sum.EndDate = q.EndDate
	}
	if tracked {
		snap := sum
		st.Summary = &snap
		s.publishLocked(st)
	}
	if s.store != nil {
		s.store.SetSummary(sum)
	}
	return sum, nil
}

// TrackAll implements attendance.Tracker. Failures are recorded in each
// subject's state; the returned slice follows the order of subjects.
func (s *AttendanceServiceImpl) TrackAll(ctx context.Context, subjects []attendance.Subject, day time.Time) []attendance.ViewState {
	date := day.Format(validator.DateLayout)
	q := attendance.RangeQuery{StartDate: attendance.MonthStart(day), EndDate: date}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	for _, sub := range subjects {
		if sub.ID == "" {
			continue
		}
		st := s.stateLocked(sub.ID)
		if sub.FullName != "" {
			st.FullName = sub.FullName
		}
	}
	s.mu.Unlock()

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, sub := range subjects {
		if sub.ID == "" {
			continue
		}
		g.Go(func() error {
			if _, err := s.EnsureTodayStatus(ctx, sub.ID, date); err != nil {
				s.logger.Debug("attendance fetch failed", "subject_id", sub.ID, "error", err)
				return nil
			}
			if _, err := s.RefreshSummary(ctx, sub.ID, q); err != nil {
				s.logger.Debug("attendance summary failed", "subject_id", sub.ID, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]attendance.ViewState, 0, len(subjects))
	for _, sub := range subjects {
		if vs, ok := s.Snapshot(sub.ID); ok {
			out = append(out, vs)
		}
	}
	return out
}

// Snapshot implements attendance.Tracker.
func (s *AttendanceServiceImpl) Snapshot(subjectID string) (attendance.ViewState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[subjectID]
	if !ok {
		return attendance.ViewState{}, false
	}
	return snapshot(st), true
}

// States implements attendance.Tracker.
func (s *AttendanceServiceImpl) States() []attendance.ViewState {
	s.mu.Lock()
	out := make([]attendance.ViewState, 0, len(s.states))
	for _, st := range s.states {
		out = append(out, snapshot(st))
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].SubjectID < out[j].SubjectID
	})
	return out
}

// Close implements attendance.Tracker.
func (s *AttendanceServiceImpl) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.states = make(map[string]*attendance.ViewState)
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, subjectID string) (attendance.Record, error) {
	return s.clock(ctx, subjectID, s.Repository.CheckIn)
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, subjectID string) (attendance.Record, error) {
	return s.clock(ctx, subjectID, s.Repository.CheckOut)
}

func (s *AttendanceServiceImpl) clock(
	ctx context.Context,
	subjectID string,
	call func(context.Context, string, attendance.ClockTime) (attendance.Record, error),
) (attendance.Record, error) {
	if subjectID == "" {
		return attendance.Record{}, attendance.ErrSubjectRequired
	}
	rec, err := call(ctx, subjectID, attendance.ClockTimeOf(s.now()))
	if err != nil {
		return attendance.Record{}, err
	}

	if s.store != nil {
		if _, err := s.store.Attendance.Load(ctx, func(ctx context.Context) ([]attendance.Record, error) {
			return s.Repository.ListBySubject(ctx, subjectID, "")
		}); err != nil {
			s.logger.Warn("failed to refresh attendance records", "subject_id", subjectID, "error", err)
		}
	}
	return rec, nil
}

// Range implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Range(ctx context.Context, q attendance.RangeQuery) ([]attendance.Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return s.Repository.Range(ctx, q)
}

// Watch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Watch(subjectID string) (<-chan attendance.ViewState, func()) {
	events, cancel := s.hub.Subscribe(subjectID)
	out := make(chan attendance.ViewState, 16)
	go func() {
		defer close(out)
		for ev := range events {
			vs, ok := ev.Data.(attendance.ViewState)
			if !ok {
				continue
			}
			select {
			case out <- vs:
			default:
			}
		}
	}()
	return out, cancel
}
