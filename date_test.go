package kmlog_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/kmlog"
)

func TestParseDate(t *testing.T) {
	d, err := kmlog.ParseDate("2024-01-05")
	assert.NoError(t, err)
	assert.Equal(t, kmlog.NewDate(2024, time.January, 5), d)
	assert.Equal(t, "2024-01-05", d.String())

	d, err = kmlog.ParseDate("  2024-02-29 ")
	assert.NoError(t, err)
	assert.Equal(t, kmlog.NewDate(2024, time.February, 29), d)

	d, err = kmlog.ParseDate("2024-01-05T23:30:00-05:00")
	assert.NoError(t, err)
	assert.Equal(t, kmlog.NewDate(2024, time.January, 5), d)
}

func TestParseDateInvalid(t *testing.T) {
	for _, str := range []string{"", "   ", "01/05/2024", "2024-02-30", "x"} {
		_, err := kmlog.ParseDate(str)
		assert.Error(t, err, str)
	}
}

func TestParseKilometer(t *testing.T) {
	km, err := kmlog.ParseKilometer("150")
	assert.NoError(t, err)
	assert.Equal(t, 150.0, km)

	km, err = kmlog.ParseKilometer(" 12.5 ")
	assert.NoError(t, err)
	assert.Equal(t, 12.5, km)

	for _, str := range []string{"", "abc", "12km", "NaN", "Inf", "-Inf"} {
		_, err := kmlog.ParseKilometer(str)
		assert.Error(t, err, str)
	}
}

func TestDaysSince(t *testing.T) {
	feb28 := kmlog.NewDate(2024, time.February, 28)
	mar1 := kmlog.NewDate(2024, time.March, 1)

	assert.Equal(t, 2, mar1.DaysSince(feb28))
	assert.Equal(t, -2, feb28.DaysSince(mar1))
	assert.Equal(t, 0, mar1.DaysSince(mar1))
	assert.Equal(t, 366, kmlog.NewDate(2025, time.January, 1).DaysSince(
		kmlog.NewDate(2024, time.January, 1),
	))
}

func TestDateCompare(t *testing.T) {
	a := kmlog.NewDate(2024, time.January, 1)
	b := kmlog.NewDate(2024, time.January, 2)

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, kmlog.Date{}.IsZero())
	assert.False(t, a.IsZero())
}

func TestEventJSON(t *testing.T) {
	ev := kmlog.Event{
		Date:      kmlog.NewDate(2024, time.January, 1),
		Kilometer: 100,
	}

	data, err := json.Marshal(ev)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-01","kilometer":100}`, string(data))

	var res kmlog.Event
	assert.NoError(t, json.Unmarshal(data, &res))
	assert.Equal(t, ev, res)
	assert.Equal(t, "Date: 2024-01-01, Kilometer: 100", res.String())
}

func TestFirstDateIsSet(t *testing.T) {
	d, err := kmlog.ParseDate("0001-01-01")
	assert.NoError(t, err)
	assert.False(t, d.IsZero())
	assert.Equal(t, "0001-01-01", d.String())

	text, err := d.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "0001-01-01", string(text))
	assert.Equal(t, 1, kmlog.NewDate(1, time.January, 2).DaysSince(d))
}

func TestKilometerRange(t *testing.T) {
	km, err := kmlog.ParseKilometer("-1e15")
	assert.NoError(t, err)
	assert.Equal(t, -kmlog.MaxKilometer, km)

	for _, str := range []string{"1e16", "-1e308", "1e308"} {
		_, err := kmlog.ParseKilometer(str)
		assert.Error(t, err, str)
	}
}
