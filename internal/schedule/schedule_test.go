package schedule

import (
	"testing"
	"time"

	"joshemfoods/internal/domain"

	"github.com/stretchr/testify/assert"
)

func order(id, pickup string, status domain.OrderStatus) domain.Order {
	return domain.Order{ID: id, PickupTime: pickup, Status: status}
}

func TestCheckPickupTime(t *testing.T) {
	now := time.Date(2026, time.September, 10, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name        string
		pickup      string
		prepHours   int
		expectedErr error
	}{
		{
			name:        "one_hour_ahead_rejected_with_two_hour_floor",
			pickup:      "2026-09-10T11:00",
			prepHours:   2,
			expectedErr: ErrPickupTooSoon,
		},
		{
			name:      "three_hours_ahead_accepted",
			pickup:    "2026-09-10T13:00",
			prepHours: 2,
		},
		{
			name:      "exactly_on_the_floor_accepted",
			pickup:    "2026-09-10T12:00",
			prepHours: 2,
		},
		{
			name:      "zero_lead_time_accepts_now",
			pickup:    "2026-09-10T10:00",
			prepHours: 0,
		},
		{
			name:        "empty_pickup_rejected",
			pickup:      "",
			prepHours:   2,
			expectedErr: ErrPickupTimeRequired,
		},
		{
			name:        "garbage_pickup_rejected",
			pickup:      "next tuesday",
			prepHours:   2,
			expectedErr: ErrInvalidPickupTime,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := CheckPickupTime(testCase.pickup, now, testCase.prepHours)
			if testCase.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, testCase.expectedErr)
			}
		})
	}
}

func TestCheckPickupTimeNegativePrepTreatedAsZero(t *testing.T) {
	now := time.Date(2026, time.September, 10, 10, 0, 0, 0, time.Local)
	assert.NoError(t, CheckPickupTime("2026-09-10T10:00", now, -3))
}

func TestPartitionTotality(t *testing.T) {
	orders := []domain.Order{
		order("a", "2026-09-10T12:00", domain.StatusPending),
		order("b", "2026-09-10T12:20", domain.StatusConfirmed),
		order("c", "2026-09-10T13:00", domain.StatusReady),
		order("d", "2026-09-10T14:00", domain.StatusCompleted),
		order("e", "2026-09-10T15:00", domain.StatusCancelled),
	}

	active, archived := Partition(orders)

	assert.Len(t, active, 3)
	assert.Len(t, archived, 2)
	assert.Equal(t, len(orders), len(active)+len(archived))

	seen := map[string]int{}
	for _, o := range append(active, archived...) {
		seen[o.ID]++
	}
	for _, o := range orders {
		assert.Equal(t, 1, seen[o.ID], "order %s must land in exactly one half", o.ID)
	}
}

func TestPartitionEmpty(t *testing.T) {
	active, archived := Partition(nil)
	assert.NotNil(t, active)
	assert.NotNil(t, archived)
	assert.Empty(t, active)
	assert.Empty(t, archived)
}

func TestConflictsSymmetric(t *testing.T) {
	a := order("a", "2026-09-10T12:00", domain.StatusPending)
	b := order("b", "2026-09-10T12:20", domain.StatusConfirmed)
	c := order("c", "2026-09-10T13:00", domain.StatusPending)
	orders := []domain.Order{a, b, c}

	conflictIDs := func(o domain.Order) []string {
		var ids []string
		for _, other := range Conflicts(o, orders) {
			ids = append(ids, other.ID)
		}
		return ids
	}

	assert.Equal(t, []string{"b"}, conflictIDs(a))
	assert.Equal(t, []string{"a"}, conflictIDs(b))
	assert.Empty(t, conflictIDs(c))
}

func TestConflictsIgnoreArchivedNeighbors(t *testing.T) {
	a := order("a", "2026-09-10T12:00", domain.StatusPending)
	cancelled := order("b", "2026-09-10T12:10", domain.StatusCancelled)
	completed := order("c", "2026-09-10T12:15", domain.StatusCompleted)

	assert.Empty(t, Conflicts(a, []domain.Order{a, cancelled, completed}))
}

func TestConflictsWindowIsExclusive(t *testing.T) {
	a := order("a", "2026-09-10T12:00", domain.StatusPending)
	exactly := order("b", "2026-09-10T12:30", domain.StatusPending)
	inside := order("c", "2026-09-10T12:29", domain.StatusPending)
	orders := []domain.Order{a, exactly, inside}

	conflicts := Conflicts(a, orders)
	assert.Len(t, conflicts, 1)
	assert.Equal(t, "c", conflicts[0].ID)
}

func TestConflictsUnparseablePickup(t *testing.T) {
	broken := order("a", "???", domain.StatusPending)
	b := order("b", "2026-09-10T12:00", domain.StatusPending)

	assert.Empty(t, Conflicts(broken, []domain.Order{broken, b}))
	assert.Empty(t, Conflicts(b, []domain.Order{broken, b}))
}

func TestPickupCounts(t *testing.T) {
	orders := []domain.Order{
		order("a", "2026-09-10T12:00", domain.StatusPending),
		order("b", "2026-09-10T18:30", domain.StatusCompleted),
		order("c", "2026-09-11T09:00", domain.StatusConfirmed),
		order("d", "2026-09-11T10:00", domain.StatusCancelled),
		order("e", "2026-10-20T10:00", domain.StatusPending),
	}

	from := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, time.September, 30, 0, 0, 0, 0, time.Local)
	counts := PickupCounts(orders, from, to)

	// Completed orders count, cancelled ones and out-of-window ones do not.
	assert.Equal(t, map[string]int{
		"2026-09-10": 2,
		"2026-09-11": 1,
	}, counts)
}

func TestPickupCountsBucketsByCalendarDayNotDuration(t *testing.T) {
	late := order("a", "2026-09-10T23:50", domain.StatusPending)
	early := order("b", "2026-09-11T00:10", domain.StatusPending)

	from := time.Date(2026, time.September, 10, 12, 0, 0, 0, time.Local)
	to := time.Date(2026, time.September, 11, 12, 0, 0, 0, time.Local)
	counts := PickupCounts([]domain.Order{late, early}, from, to)

	assert.Equal(t, 1, counts["2026-09-10"])
	assert.Equal(t, 1, counts["2026-09-11"])
}

func TestCalendarWindow(t *testing.T) {
	now := time.Date(2026, time.September, 10, 10, 0, 0, 0, time.Local)
	from, to := CalendarWindow(now)
	assert.Equal(t, now.AddDate(0, 0, -5), from)
	assert.Equal(t, now.AddDate(0, 0, 20), to)
}

func TestSameDayCount(t *testing.T) {
	orders := []domain.Order{
		order("a", "2026-09-10T12:00", domain.StatusPending),
		order("b", "2026-09-10T19:00", domain.StatusConfirmed),
		order("c", "2026-09-10T20:00", domain.StatusCancelled),
		order("d", "2026-09-11T12:00", domain.StatusPending),
	}

	assert.Equal(t, 1, SameDayCount(orders, "a", "2026-09-10T12:00"))
	assert.Equal(t, 2, SameDayCount(orders, "new", "2026-09-10T08:00"))
	assert.Equal(t, 0, SameDayCount(orders, "new", "not-a-time"))
}
