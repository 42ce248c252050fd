package traffic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bikeflow/bikeflow/pkg/bikeshare"
	"github.com/bikeflow/bikeflow/pkg/util"
)

// DefaultWindowMinutes is the distance either side of the selected minute
// that a filtered view covers.
const DefaultWindowMinutes = 60

const anyTimeLabel = "(any time)"

var ErrMinuteOutOfRange = errors.New("minute of day must be between 0 and 1439")

// TimeFilter is either no filter at all or a concrete minute-of-day.
// The zero value is no filter.
type TimeFilter struct {
	minute int
	active bool
}

func NoFilter() TimeFilter {
	return TimeFilter{}
}

func AtMinute(minute int) (TimeFilter, error) {
	if minute < 0 || minute >= util.MinutesPerDay {
		return TimeFilter{}, fmt.Errorf("%w: got %d", ErrMinuteOutOfRange, minute)
	}

	return TimeFilter{minute: minute, active: true}, nil
}

// ParseTimeFilter reads the slider value. An empty string, "any" and the
// slider's -1 position all mean no filter.
func ParseTimeFilter(value string) (TimeFilter, error) {
	value = strings.TrimSpace(value)

	if value == "" || value == "-1" || strings.EqualFold(value, "any") {
		return NoFilter(), nil
	}

	minute, err := strconv.Atoi(value)
	if err != nil {
		return TimeFilter{}, fmt.Errorf("invalid time filter %q: %w", value, err)
	}

	return AtMinute(minute)
}

func (f TimeFilter) Active() bool {
	return f.active
}

func (f TimeFilter) Minute() (int, bool) {
	return f.minute, f.active
}

func (f TimeFilter) String() string {
	if !f.active {
		return "any"
	}

	return strconv.Itoa(f.minute)
}

func (f TimeFilter) Label() string {
	if !f.active {
		return anyTimeLabel
	}

	return util.FormatMinuteOfDay(f.minute)
}

// Window returns the half-open bucket range [minMinute, maxMinute) covered by
// the filter. When minMinute > maxMinute the range wraps past midnight.
// ok is false when no filter is active.
func (f TimeFilter) Window(halfWidth int) (minMinute int, maxMinute int, ok bool) {
	if !f.active {
		return 0, 0, false
	}

	minMinute = (f.minute - halfWidth + util.MinutesPerDay) % util.MinutesPerDay
	maxMinute = (f.minute + halfWidth) % util.MinutesPerDay

	return minMinute, maxMinute, true
}

// Select returns the trips from the buckets inside the filter's window, or
// every trip when no filter is active. Buckets are only read.
func Select(buckets *Buckets, filter TimeFilter) []*bikeshare.Trip {
	return SelectWidth(buckets, filter, DefaultWindowMinutes)
}

func SelectWidth(buckets *Buckets, filter TimeFilter, halfWidth int) []*bikeshare.Trip {
	minMinute, maxMinute, ok := filter.Window(halfWidth)
	if !ok {
		return flatten(buckets[:])
	}

	if minMinute > maxMinute {
		beforeMidnight := buckets[minMinute:]
		afterMidnight := buckets[:maxMinute]

		return flatten(beforeMidnight, afterMidnight)
	}

	return flatten(buckets[minMinute:maxMinute])
}

func flatten(ranges ...[][]*bikeshare.Trip) []*bikeshare.Trip {
	total := 0
	for _, bucketRange := range ranges {
		for _, bucket := range bucketRange {
			total += len(bucket)
		}
	}

	trips := make([]*bikeshare.Trip, 0, total)
	for _, bucketRange := range ranges {
		for _, bucket := range bucketRange {
			trips = append(trips, bucket...)
		}
	}

	return trips
}
