package notify

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olliecrow/datapass_monitor/internal/usage"
)

type sent struct {
	title string
	body  string
}

func recorder() (*[]sent, SendFunc) {
	var out []sent
	return &out, func(title, body string) error {
		out = append(out, sent{title: title, body: body})
		return nil
	}
}

func rec(remaining, total float64) *usage.Record {
	plan := "Test Plan"
	r := usage.NewRecord(remaining, total, &plan, nil, false)
	return &r
}

func TestNotifierThresholdCrossing(t *testing.T) {
	t.Parallel()

	got, send := recorder()
	n := NewWithSender(20, zerolog.Nop(), send)

	n.Observe(rec(5, 10))
	n.Observe(rec(2.5, 10))
	assert.Empty(t, *got)

	n.Observe(rec(1.5, 10))
	require.Len(t, *got, 1)
	assert.Equal(t, "Data running low", (*got)[0].title)
	assert.Contains(t, (*got)[0].body, "Test Plan")
	assert.Contains(t, (*got)[0].body, "1.50 GB")

	n.Observe(rec(1, 10))
	assert.Len(t, *got, 1, "stays quiet while below the threshold")
}

func TestNotifierFirstRecordIsBaseline(t *testing.T) {
	t.Parallel()

	got, send := recorder()
	n := NewWithSender(20, zerolog.Nop(), send)

	n.Observe(rec(1, 10))
	assert.Empty(t, *got)
}

func TestNotifierDisabledThreshold(t *testing.T) {
	t.Parallel()

	got, send := recorder()
	n := NewWithSender(0, zerolog.Nop(), send)

	n.Observe(rec(5, 10))
	n.Observe(rec(0, 10))
	assert.Empty(t, *got)
}

func TestNotifierRenewal(t *testing.T) {
	t.Parallel()

	got, send := recorder()
	n := NewWithSender(0, zerolog.Nop(), send)

	n.Observe(rec(1, 10))
	n.Observe(rec(2, 10))
	assert.Empty(t, *got, "small increases are not a renewal")

	n.Observe(rec(10, 10))
	require.Len(t, *got, 1)
	assert.Equal(t, "Data plan renewed", (*got)[0].title)
}

func TestNotifierIgnoresUnlimited(t *testing.T) {
	t.Parallel()

	got, send := recorder()
	n := NewWithSender(50, zerolog.Nop(), send)

	unlimited := usage.NewRecord(0, 0, nil, nil, true)
	n.Observe(rec(9, 10))
	n.Observe(&unlimited)
	n.Observe(rec(1, 10))
	assert.Empty(t, *got)
}

func TestNotifierSendFailureIsLogged(t *testing.T) {
	t.Parallel()

	calls := 0
	n := NewWithSender(50, zerolog.Nop(), func(string, string) error {
		calls++
		return errors.New("no notification daemon")
	})

	n.Observe(rec(9, 10))
	n.Observe(rec(1, 10))
	assert.Equal(t, 1, calls)
}

func TestNotifierIgnoresNil(t *testing.T) {
	t.Parallel()

	got, send := recorder()
	n := NewWithSender(50, zerolog.Nop(), send)
	n.Observe(nil)
	n.Observe(rec(1, 10))
	assert.Empty(t, *got)
}
