package kmlog

import "math"

// ComputeSummary derives the scalar statistics of the collection.
// AverageDistance is the mean of the consecutive kilometer deltas rounded to
// two decimals, and is 0 when there are fewer than two events
func ComputeSummary(evs Events) Summary {
	res := Summary{TotalEvents: len(evs)}
	if last, ok := evs.Last(); ok {
		res.LastEvent = &last
	}
	if len(evs) < 2 {
		return res
	}

	var total float64
	for i := 1; i < len(evs); i++ {
		total += evs[i].Kilometer - evs[i-1].Kilometer
	}
	res.AverageDistance = roundTo(total/float64(len(evs)-1), 2)

	dist := evs[len(evs)-1].Kilometer - evs[len(evs)-2].Kilometer
	res.DistanceBetweenLastEvents = &dist
	return res
}

// ComputeSeries derives the chart series of the collection: one label per
// event, and for every event after the first, the whole days and kilometers
// elapsed since its predecessor
func ComputeSeries(evs Events) Series {
	res := Series{
		Labels:         make([]Date, 0, len(evs)),
		DayDiffs:       make([]int, 0, max(len(evs)-1, 0)),
		KilometerDiffs: make([]float64, 0, max(len(evs)-1, 0)),
	}
	for i, ev := range evs {
		res.Labels = append(res.Labels, ev.Date)
		if i == 0 {
			continue
		}
		prev := evs[i-1]
		res.DayDiffs = append(res.DayDiffs, ev.Date.DaysSince(prev.Date))
		res.KilometerDiffs = append(res.KilometerDiffs,
			ev.Kilometer-prev.Kilometer,
		)
	}
	return res
}

func roundTo(val float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(val*p) / p
}
