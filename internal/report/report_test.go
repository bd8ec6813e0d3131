package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olliecrow/datapass_monitor/internal/usage"
)

func strPtr(s string) *string { return &s }

func meteredRecord() *usage.Record {
	rec := usage.NewRecord(5.5, 10, strPtr("Test Plan"), strPtr("31.12.2024 23:59"), false)
	return &rec
}

func unlimitedRecord() *usage.Record {
	rec := usage.NewRecord(0, 0, strPtr("Unlimited Flat"), nil, true)
	return &rec
}

func TestHuman(t *testing.T) {
	t.Parallel()

	t.Run("metered plan without colour", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, Human(&buf, meteredRecord(), Options{}))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 6)
		assert.Equal(t, "Plan: Test Plan", lines[0])
		assert.Equal(t, "Valid until: 31.12.2024 23:59", lines[1])
		assert.Equal(t, "Used:      4.50 GB (45.00%)", lines[2])
		assert.Equal(t, "Total:     10.00 GB (100%)", lines[3])
		assert.Equal(t, "Remaining: 5.50 GB (55.00%)", lines[4])
		assert.True(t, strings.HasSuffix(lines[5], " 45.00%"))
		assert.Contains(t, lines[5], "█")
		assert.Contains(t, lines[5], "░")
		assert.NotContains(t, buf.String(), "\x1b[")
	})

	t.Run("optional lines are omitted", func(t *testing.T) {
		t.Parallel()

		rec := usage.NewRecord(1, 2, nil, nil, false)
		var buf bytes.Buffer
		require.NoError(t, Human(&buf, &rec, Options{}))

		assert.NotContains(t, buf.String(), "Plan:")
		assert.NotContains(t, buf.String(), "Valid until:")
		assert.True(t, strings.HasPrefix(buf.String(), "Used:"))
	})

	t.Run("colour adds escape sequences", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, Human(&buf, meteredRecord(), Options{Color: true}))
		assert.Contains(t, buf.String(), "\x1b[")
		assert.Contains(t, buf.String(), "Test Plan")
	})

	t.Run("unlimited plan has no bar", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, Human(&buf, unlimitedRecord(), Options{}))
		assert.Equal(t, "Plan: Unlimited Flat\nData:      unlimited\n", buf.String())
	})
}

func TestBar(t *testing.T) {
	t.Parallel()

	bar := Bar(meteredRecord(), barWidth, termenv.Ascii)
	assert.Equal(t, barWidth, lipgloss.Width(bar))

	full := usage.NewRecord(0, 10, nil, nil, false)
	assert.NotContains(t, Bar(&full, barWidth, termenv.Ascii), "░")

	empty := usage.NewRecord(10, 10, nil, nil, false)
	assert.NotContains(t, Bar(&empty, barWidth, termenv.Ascii), "█")
}

func TestBarColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "42", BarColor(80))
	assert.Equal(t, "214", BarColor(50))
	assert.Equal(t, "214", BarColor(21))
	assert.Equal(t, "196", BarColor(20))
	assert.Equal(t, "196", BarColor(0))
}

func TestJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, meteredRecord()))

	assert.Contains(t, buf.String(), "\n  \"remaining_gb\": 5.5")
	var decoded usage.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *meteredRecord(), decoded)
}

func TestValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		field Field
		rec   *usage.Record
		want  string
	}{
		{FieldUsed, meteredRecord(), "4.50\n"},
		{FieldTotal, meteredRecord(), "10.00\n"},
		{FieldRemaining, meteredRecord(), "5.50\n"},
		{FieldPercentage, meteredRecord(), "45.00\n"},
		{FieldPlan, meteredRecord(), "Test Plan\n"},
		{FieldRemaining, unlimitedRecord(), "unlimited\n"},
		{FieldPercentage, unlimitedRecord(), "unlimited\n"},
		{FieldPlan, unlimitedRecord(), "Unlimited Flat\n"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		require.NoError(t, Value(&buf, tc.rec, tc.field))
		assert.Equal(t, tc.want, buf.String(), "field %s", tc.field)
	}

	t.Run("unnamed plan prints nothing", func(t *testing.T) {
		rec := usage.NewRecord(1, 2, nil, nil, false)
		var buf bytes.Buffer
		require.NoError(t, Value(&buf, &rec, FieldPlan))
		assert.Empty(t, buf.String())
	})

	t.Run("unknown field", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, Value(&buf, meteredRecord(), Field("speed")))
	})
}
