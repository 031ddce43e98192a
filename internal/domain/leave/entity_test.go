package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeave_DurationDays(t *testing.T) {
	cases := []struct {
		from, to string
		want     int
	}{
		{"2024-06-01", "2024-06-01", 1},
		{"2024-06-01", "2024-06-03", 3},
		{"2024-02-28", "2024-03-01", 3},
		{"2024-06-03", "2024-06-01", 0},
		{"bad", "2024-06-01", 0},
	}
	for _, c := range cases {
		got := Leave{FromDate: c.from, ToDate: c.to}.DurationDays()
		assert.Equal(t, c.want, got, "%s..%s", c.from, c.to)
	}
}

func TestStatistics(t *testing.T) {
	list := []Leave{
		{Status: StatusPending},
		{Status: StatusPending},
		{Status: StatusApproved},
		{Status: StatusRejected},
		{Status: StatusAutoRejected},
	}
	assert.Equal(t, Stats{Total: 5, Pending: 2, Approved: 1, Rejected: 2}, Statistics(list))
	assert.Equal(t, Stats{}, Statistics(nil))
}

func TestApplyRequest_WithDefaults(t *testing.T) {
	req := ApplyRequest{EmployeeID: "E1"}.WithDefaults("2024-06-01")
	assert.Equal(t, StatusPending, req.Status)
	assert.Equal(t, "2024-06-01", req.RequestDate)

	kept := ApplyRequest{Status: StatusApproved, RequestDate: "2024-05-01"}.WithDefaults("2024-06-01")
	assert.Equal(t, StatusApproved, kept.Status)
	assert.Equal(t, "2024-05-01", kept.RequestDate)
}

func TestApplyRequest_Validate(t *testing.T) {
	ok := ApplyRequest{EmployeeID: "E1", FromDate: "2024-06-01", ToDate: "2024-06-02", Reason: "family"}
	assert.NoError(t, ok.Validate())

	bad := ApplyRequest{FromDate: "2024-06-05", ToDate: "2024-06-02"}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "toDate must not be before fromDate")
	assert.Contains(t, err.Error(), "reason is required")
}

func TestParseDecision(t *testing.T) {
	s, err := ParseDecision("approve")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, s)

	s, err = ParseDecision("REJECTED")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, s)

	_, err = ParseDecision("PENDING")
	assert.ErrorIs(t, err, ErrInvalidDecision)
}
