package kmlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type eventRecord struct {
	Date      *Date           `json:"date"`
	Kilometer json.RawMessage `json:"kilometer"`
}

var (
	// ErrMalformedEvents indicates a stored blob could not be decoded
	ErrMalformedEvents = errors.New("malformed events blob")

	jsonNull = []byte("null")
)

// EncodeEvents serializes the collection as a JSON array of
// {"date", "kilometer"} records. An empty collection encodes as []
func EncodeEvents(evs Events) ([]byte, error) {
	if evs == nil {
		evs = Events{}
	}
	return json.Marshal(evs)
}

// DecodeEvents parses a blob produced by EncodeEvents. Kilometer values
// stored as numeric strings are accepted. A record missing either field
// makes the whole blob malformed
func DecodeEvents(data []byte) (Events, error) {
	var recs []eventRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEvents, err)
	}

	res := make(Events, 0, len(recs))
	for i, rec := range recs {
		ev, err := rec.toEvent()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w",
				ErrMalformedEvents, i, err,
			)
		}
		res = append(res, ev)
	}
	return res, nil
}

func (r eventRecord) toEvent() (Event, error) {
	if r.Date == nil {
		return Event{}, errEmptyDate
	}
	km, err := decodeKilometer(r.Kilometer)
	if err != nil {
		return Event{}, err
	}
	return Event{Date: *r.Date, Kilometer: km}, nil
}

func decodeKilometer(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return 0, errEmptyKm
	}

	var km float64
	if err := json.Unmarshal(raw, &km); err == nil {
		return checkKilometer(km)
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return 0, errKmNotANumber
	}
	return ParseKilometer(str)
}
