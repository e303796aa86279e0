package kmlog

import (
	"slices"
	"strconv"
)

type (
	// Event is a single logged odometer reading
	Event struct {
		Date      Date    `json:"date"`
		Kilometer float64 `json:"kilometer"`
	}

	// Events is an ordered collection of Event, non-decreasing by Date
	Events []Event

	// Summary holds the scalar statistics derived from Events
	Summary struct {
		LastEvent                 *Event   `json:"last_event,omitempty"`
		DistanceBetweenLastEvents *float64 `json:"distance_between_last_events,omitempty"`
		TotalEvents               int      `json:"total_events"`
		AverageDistance           float64  `json:"average_distance"`
	}

	// Series holds the per-consecutive-pair sequences used for charting.
	// Labels has one entry per event, the difference sequences start at the
	// second event and are therefore one shorter
	Series struct {
		Labels         []Date    `json:"labels"`
		DayDiffs       []int     `json:"day_diffs"`
		KilometerDiffs []float64 `json:"kilometer_diffs"`
	}
)

const (
	// NoLastEvent is displayed in place of a missing last event
	NoLastEvent = "None"

	// NoDistance is displayed when fewer than two events exist
	NoDistance = "N/A"
)

// Clone returns an independent copy of the Events
func (e Events) Clone() Events {
	if e == nil {
		return Events{}
	}
	return slices.Clone(e)
}

// Last returns the event at the highest index, if any
func (e Events) Last() (Event, bool) {
	if len(e) == 0 {
		return Event{}, false
	}
	return e[len(e)-1], true
}

// IsSorted reports whether the Events are non-decreasing by Date
func (e Events) IsSorted() bool {
	return slices.IsSortedFunc(e, compareEvents)
}

// String renders the event the way the log lists it
func (e Event) String() string {
	return "Date: " + e.Date.String() + ", Kilometer: " + FormatKilometer(e.Kilometer)
}

// LastEventText renders LastEvent, or NoLastEvent when the log is empty
func (s Summary) LastEventText() string {
	if s.LastEvent == nil {
		return NoLastEvent
	}
	return s.LastEvent.String()
}

// LastDistanceText renders DistanceBetweenLastEvents, or NoDistance when it
// is unavailable
func (s Summary) LastDistanceText() string {
	if s.DistanceBetweenLastEvents == nil {
		return NoDistance
	}
	return FormatKilometer(*s.DistanceBetweenLastEvents)
}

// AverageDistanceText renders AverageDistance with two decimals
func (s Summary) AverageDistanceText() string {
	return strconv.FormatFloat(s.AverageDistance, 'f', 2, 64)
}

// FormatKilometer renders a reading without a trailing fraction when it is
// integral
func FormatKilometer(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}

func compareEvents(l, r Event) int {
	return l.Date.Compare(r.Date)
}
