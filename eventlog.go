package kmlog

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// EventLog owns an ordered collection of events and persists it to a Store
// after every mutation. Mutating operations return a copy of the updated
// collection so the caller can render it. An EventLog is not safe for
// concurrent use
type EventLog struct {
	store   Store
	log     *zap.Logger
	key     string
	events  Events
	editIdx int
	editing bool
}

const noEdit = -1

// NewEventLog creates an empty EventLog backed by the provided Store. Call
// Load to populate it from the Store
func NewEventLog(store Store, cfg Config) *EventLog {
	return &EventLog{
		store:  store,
		log:    cfg.logger(),
		key:    cfg.key(),
		events: Events{},
	}
}

// Load replaces the in-memory collection with the one persisted under the
// configured key and leaves edit mode. A missing or undecodable value yields
// an empty log. Only a failure of the Store itself is returned, in which case
// the log is left untouched
func (l *EventLog) Load(ctx context.Context) error {
	data, err := l.store.Get(ctx, l.key)
	if errors.Is(err, ErrNotFound) {
		l.CancelEdit()
		l.events = Events{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	l.CancelEdit()

	evs, err := DecodeEvents(data)
	if err != nil {
		l.log.Warn("Discarding malformed events",
			zap.String("key", l.key),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		l.events = Events{}
		return nil
	}

	sortTracking(evs, noEdit)
	l.events = evs
	l.log.Debug("Events loaded",
		zap.String("key", l.key),
		zap.Int("count", len(evs)),
	)
	return nil
}

// Add validates and appends a new event, then re-sorts the log by date
func (l *EventLog) Add(
	ctx context.Context, date, kilometer string,
) (Events, error) {
	ev, err := parseEvent(date, kilometer)
	if err != nil {
		return nil, err
	}

	next := append(l.events.Clone(), ev)
	edit := sortTracking(next, l.editTarget())
	return l.commit(ctx, "add", next, edit)
}

// Update replaces every field of the event at index, then re-sorts the log
// by date
func (l *EventLog) Update(
	ctx context.Context, index int, date, kilometer string,
) (Events, error) {
	if err := checkIndex(index, len(l.events)); err != nil {
		return nil, err
	}
	ev, err := parseEvent(date, kilometer)
	if err != nil {
		return nil, err
	}

	next := l.events.Clone()
	next[index] = ev
	edit := sortTracking(next, l.editTarget())
	return l.commit(ctx, "update", next, edit)
}

// Delete removes the event at index. Deleting the event being edited
// cancels edit mode
func (l *EventLog) Delete(ctx context.Context, index int) (Events, error) {
	if err := checkIndex(index, len(l.events)); err != nil {
		return nil, err
	}

	next := slices.Delete(l.events.Clone(), index, index+1)
	edit := l.editTarget()
	switch {
	case edit == index:
		edit = noEdit
	case edit > index:
		edit--
	}
	return l.commit(ctx, "delete", next, edit)
}

// BeginEdit enters edit mode for the event at index and returns it so the
// caller can pre-fill a form. The collection is left untouched until
// CommitEdit
func (l *EventLog) BeginEdit(index int) (Event, error) {
	if err := checkIndex(index, len(l.events)); err != nil {
		return Event{}, err
	}
	l.editIdx = index
	l.editing = true
	return l.events[index], nil
}

// CancelEdit leaves edit mode without touching the collection
func (l *EventLog) CancelEdit() {
	l.editIdx = 0
	l.editing = false
}

// CommitEdit updates the event being edited and leaves edit mode. On a
// ValidationError the log stays in edit mode so the caller can re-prompt
func (l *EventLog) CommitEdit(
	ctx context.Context, date, kilometer string,
) (Events, error) {
	if !l.editing {
		return nil, ErrNotEditing
	}
	res, err := l.Update(ctx, l.editIdx, date, kilometer)
	if err != nil {
		return nil, err
	}
	l.CancelEdit()
	return res, nil
}

// Submit commits the pending edit when in edit mode, and adds a new event
// otherwise
func (l *EventLog) Submit(
	ctx context.Context, date, kilometer string,
) (Events, error) {
	if l.editing {
		return l.CommitEdit(ctx, date, kilometer)
	}
	return l.Add(ctx, date, kilometer)
}

// Editing returns the index of the event being edited, if any
func (l *EventLog) Editing() (int, bool) {
	return l.editIdx, l.editing
}

// Events returns a copy of the collection
func (l *EventLog) Events() Events {
	return l.events.Clone()
}

// Len returns the number of events in the log
func (l *EventLog) Len() int {
	return len(l.events)
}

// Summary computes the summary statistics of the current collection
func (l *EventLog) Summary() Summary {
	return ComputeSummary(l.events)
}

// Series computes the chart series of the current collection
func (l *EventLog) Series() Series {
	return ComputeSeries(l.events)
}

func (l *EventLog) editTarget() int {
	if !l.editing {
		return noEdit
	}
	return l.editIdx
}

// commit persists next and only then installs it, so a failed write leaves
// the log exactly as it was
func (l *EventLog) commit(
	ctx context.Context, op string, next Events, edit int,
) (Events, error) {
	if err := l.persist(ctx, op, next); err != nil {
		return nil, err
	}

	l.events = next
	if edit == noEdit {
		l.CancelEdit()
	} else {
		l.editIdx = edit
	}
	return next.Clone(), nil
}

func (l *EventLog) persist(ctx context.Context, op string, evs Events) error {
	data, err := EncodeEvents(evs)
	if err != nil {
		return err
	}

	if err := l.store.Put(ctx, l.key, data); err != nil {
		l.log.Error("Failed to persist events",
			zap.String("op", op),
			zap.String("key", l.key),
			zap.Int("count", len(evs)),
			zap.Error(err),
		)
		return fmt.Errorf("persist events: %w", err)
	}

	l.log.Debug("Events persisted",
		zap.String("op", op),
		zap.String("key", l.key),
		zap.Int("count", len(evs)),
		zap.Int("bytes", len(data)),
	)
	return nil
}

func parseEvent(date, kilometer string) (Event, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Event{}, &ValidationError{
			Field: FieldDate,
			Value: date,
			Err:   err,
		}
	}
	km, err := ParseKilometer(kilometer)
	if err != nil {
		return Event{}, &ValidationError{
			Field: FieldKilometer,
			Value: kilometer,
			Err:   err,
		}
	}
	return Event{Date: d, Kilometer: km}, nil
}

// sortTracking stable-sorts evs by date in place and returns the new
// position of the event that was at index track, or noEdit
func sortTracking(evs Events, track int) int {
	order := make([]int, len(evs))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(l, r int) int {
		return compareEvents(evs[l], evs[r])
	})

	sorted := make(Events, len(evs))
	pos := noEdit
	for to, from := range order {
		sorted[to] = evs[from]
		if from == track {
			pos = to
		}
	}
	copy(evs, sorted)
	return pos
}
