package store

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_LoadReplacesItems(t *testing.T) {
	var c Collection[string]
	ctx := context.Background()

	_, err := c.Load(ctx, func(context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	require.NoError(t, err)

	items, err := c.Load(ctx, func(context.Context) ([]string, error) {
		return []string{"c"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, items)
	assert.Equal(t, []string{"c"}, c.Items())
}

func TestCollection_FailedLoadKeepsItems(t *testing.T) {
	var c Collection[int]
	ctx := context.Background()
	c.Set([]int{1, 2})

	_, err := c.Load(ctx, func(context.Context) ([]int, error) {
		return nil, errors.New("HTTP error! status: 500")
	})
	require.Error(t, err)

	snap := c.Snapshot()
	assert.Equal(t, []int{1, 2}, snap.Items)
	assert.False(t, snap.Loading)
	assert.Equal(t, "HTTP error! status: 500", snap.Error)
}

func TestCollection_LoadingFlagDuringFetch(t *testing.T) {
	var c Collection[int]
	_, _ = c.Load(context.Background(), func(context.Context) ([]int, error) {
		assert.True(t, c.Snapshot().Loading)
		return []int{1}, nil
	})
	assert.False(t, c.Snapshot().Loading)
}

func TestCollection_ItemsAreCopies(t *testing.T) {
	var c Collection[int]
	c.Set([]int{1})
	items := c.Items()
	items[0] = 99
	assert.Equal(t, []int{1}, c.Items())
}

func TestStore_SummaryAndReset(t *testing.T) {
	s := New()
	_, ok := s.Summary()
	assert.False(t, ok)

	s.SetSummary(attendance.Summary{PresentCount: 3})
	s.SetSummary(attendance.Summary{AbsentCount: 1})
	sum, ok := s.Summary()
	require.True(t, ok)
	assert.Equal(t, 0, sum.PresentCount)
	assert.Equal(t, 1, sum.AbsentCount)

	s.Employees.Set(nil)
	s.Reset()
	_, ok = s.Summary()
	assert.False(t, ok)
}
