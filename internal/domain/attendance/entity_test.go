package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		input string
		want  Status
	}{
		{"PRESENT", StatusPresent},
		{"present", StatusPresent},
		{"half-day", StatusHalfDay},
		{" Leave ", StatusLeave},
		{"NOT_MARKED", StatusNotMarked},
	}
	for _, c := range cases {
		got, err := ParseStatus(c.input)
		require.NoError(t, err, c.input)
		assert.Equal(t, c.want, got)
	}

	_, err := ParseStatus("LATE")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatus_Submittable(t *testing.T) {
	for _, s := range SubmittableStatuses {
		assert.True(t, s.Submittable(), s)
	}
	assert.False(t, StatusNotMarked.Submittable())
	assert.False(t, Status("").Submittable())
}

func TestRecord_OnDay(t *testing.T) {
	assert.True(t, Record{Date: "2024-06-01"}.OnDay("2024-06-01"))
	assert.False(t, Record{Date: "2024-06-02"}.OnDay("2024-06-01"))
	assert.False(t, Record{Date: "garbage"}.OnDay("2024-06-01"))

	// timestamps are compared in local time
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local).UTC().Format(time.RFC3339)
	assert.True(t, Record{Date: ts}.OnDay("2024-06-01"))
}

func TestUpdateRequest_Validate(t *testing.T) {
	ok := UpdateRequest{Status: StatusLeave, Date: "2024-06-01", EmployeeID: "E1"}
	assert.NoError(t, ok.Validate())

	bad := UpdateRequest{Status: StatusNotMarked, Date: "06/01/2024"}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
	assert.Contains(t, err.Error(), "date")
	assert.Contains(t, err.Error(), "employeeId")
}

func TestRangeQuery_Validate(t *testing.T) {
	assert.NoError(t, RangeQuery{StartDate: "2024-06-01", EndDate: "2024-06-30"}.Validate())
	assert.Error(t, RangeQuery{StartDate: "2024-06-30", EndDate: "2024-06-01"}.Validate())
	assert.Error(t, RangeQuery{StartDate: "", EndDate: "2024-06-01"}.Validate())
}

func TestMonthStart(t *testing.T) {
	day := time.Date(2024, 6, 17, 15, 4, 0, 0, time.Local)
	assert.Equal(t, "2024-06-01", MonthStart(day))
}

func TestViewState_Loaded(t *testing.T) {
	assert.False(t, ViewState{SubjectID: "E1"}.Loaded())
	assert.False(t, ViewState{SubjectID: "E1", Loading: true}.Loaded())
	assert.True(t, ViewState{SubjectID: "E1", Date: "2024-06-01", Status: StatusNotMarked}.Loaded())

	// a refresh in flight keeps the earlier result usable
	assert.True(t, ViewState{SubjectID: "E1", Date: "2024-06-01", Status: StatusPresent, Loading: true}.Loaded())
}
