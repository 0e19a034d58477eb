// Package schedule contains the pure pickup-time helpers. Everything here
// operates on whatever order list the caller already resolved; nothing is
// cached or stored.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"joshemfoods/internal/domain"
)

// ConflictWindow is the proximity threshold for flagging overlapping
// pickups.
const ConflictWindow = 30 * time.Minute

// Default calendar range: 5 days back through 20 days ahead of "now".
const (
	CalendarDaysBack  = 5
	CalendarDaysAhead = 20
)

var (
	ErrPickupTooSoon      = errors.New("pickup time is too soon")
	ErrInvalidPickupTime  = errors.New("pickup time is not a valid timestamp")
	ErrPickupTimeRequired = errors.New("pickup time is required")
)

// EarliestPickup returns the first acceptable pickup instant given the
// configured lead time in hours.
func EarliestPickup(now time.Time, prepHours int) time.Time {
	if prepHours < 0 {
		prepHours = 0
	}
	return now.Add(time.Duration(prepHours) * time.Hour)
}

// CheckPickupTime rejects a submission whose pickup time is before the
// lead-time floor. The error carries an explanatory message so the form can
// show it verbatim; callers must run this before any write happens.
func CheckPickupTime(pickupTime string, now time.Time, prepHours int) error {
	if pickupTime == "" {
		return ErrPickupTimeRequired
	}
	pickup, ok := domain.ParseTimestamp(pickupTime)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPickupTime, pickupTime)
	}

	earliest := EarliestPickup(now, prepHours)
	if pickup.Before(earliest) {
		return fmt.Errorf("%w: we need at least %d hour(s) to prepare, earliest pickup is %s",
			ErrPickupTooSoon, prepHours, earliest.Format("Mon Jan 2 3:04 PM"))
	}
	return nil
}

// Partition splits orders into active and archived. An order is archived iff
// its status is completed or cancelled; every order lands in exactly one
// half.
func Partition(orders []domain.Order) (active, archived []domain.Order) {
	active = []domain.Order{}
	archived = []domain.Order{}
	for _, order := range orders {
		if order.Archived() {
			archived = append(archived, order)
		} else {
			active = append(active, order)
		}
	}
	return active, archived
}

// Conflicts returns every other active order whose pickup time lies within
// the conflict window of the given order. The relation is symmetric and
// recomputed on demand; orders without a parseable pickup time never
// conflict.
func Conflicts(order domain.Order, orders []domain.Order) []domain.Order {
	pickup, ok := order.PickupAt()
	if !ok {
		return nil
	}

	var conflicts []domain.Order
	for _, other := range orders {
		if other.ID == order.ID || other.Archived() {
			continue
		}
		otherPickup, ok := other.PickupAt()
		if !ok {
			continue
		}
		delta := pickup.Sub(otherPickup)
		if delta < 0 {
			delta = -delta
		}
		if delta < ConflictWindow {
			conflicts = append(conflicts, other)
		}
	}
	return conflicts
}

// CalendarWindow returns the conventional heatmap range around now.
func CalendarWindow(now time.Time) (from, to time.Time) {
	return now.AddDate(0, 0, -CalendarDaysBack), now.AddDate(0, 0, CalendarDaysAhead)
}

// PickupCounts buckets non-cancelled orders by local calendar day within
// [from, to], keyed by "2006-01-02". Days with no orders are absent.
func PickupCounts(orders []domain.Order, from, to time.Time) map[string]int {
	fromDay := dayStart(from)
	toDay := dayStart(to)

	counts := map[string]int{}
	for _, order := range orders {
		if order.Status == domain.StatusCancelled {
			continue
		}
		pickup, ok := order.PickupAt()
		if !ok {
			continue
		}
		day := dayStart(pickup)
		if day.Before(fromDay) || day.After(toDay) {
			continue
		}
		counts[day.Format("2006-01-02")]++
	}
	return counts
}

// SameDayCount backs the "N other orders this day" hint on the order form:
// non-cancelled orders other than the given one picked up the same local
// calendar day.
func SameDayCount(orders []domain.Order, orderID string, pickupTime string) int {
	pickup, ok := domain.ParseTimestamp(pickupTime)
	if !ok {
		return 0
	}
	day := dayStart(pickup)

	count := 0
	for _, other := range orders {
		if other.ID == orderID || other.Status == domain.StatusCancelled {
			continue
		}
		otherPickup, ok := other.PickupAt()
		if !ok {
			continue
		}
		if dayStart(otherPickup).Equal(day) {
			count++
		}
	}
	return count
}

func dayStart(t time.Time) time.Time {
	year, month, day := t.Local().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
