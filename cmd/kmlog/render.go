package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/kode4food/kmlog"
)

func (a *app) render(l *kmlog.EventLog) error {
	if a.asJSON {
		return a.writeJSON(struct {
			Events  kmlog.Events  `json:"events"`
			Summary kmlog.Summary `json:"summary"`
		}{l.Events(), l.Summary()})
	}
	if err := a.printEvents(l.Events()); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(a.out)
	return a.printSummary(l.Summary())
}

func (a *app) printEvents(evs kmlog.Events) error {
	if a.asJSON {
		return a.writeJSON(evs)
	}
	if len(evs) == 0 {
		_, err := fmt.Fprintln(a.out, "No events logged")
		return err
	}
	for i, ev := range evs {
		_, err := fmt.Fprintf(a.out, "Event %d - %s\n", i+1, ev)
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *app) printSummary(sum kmlog.Summary) error {
	if a.asJSON {
		return a.writeJSON(sum)
	}
	_, err := fmt.Fprintf(a.out,
		"Total Events: %d\n"+
			"Average Distance: %s\n"+
			"Last Event: %s\n"+
			"Distance Between Last Events: %s\n",
		sum.TotalEvents,
		sum.AverageDistanceText(),
		sum.LastEventText(),
		sum.LastDistanceText(),
	)
	return err
}

func (a *app) printSeries(ser kmlog.Series) error {
	if a.asJSON {
		return a.writeJSON(ser)
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "Date\tDays Between\tKilometers Between")
	for i, label := range ser.Labels {
		if i == 0 {
			_, _ = fmt.Fprintf(w, "%s\t-\t-\n", label)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n",
			label, ser.DayDiffs[i-1],
			kmlog.FormatKilometer(ser.KilometerDiffs[i-1]),
		)
	}
	return w.Flush()
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
