// Package report renders a usage record for one-shot output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/olliecrow/datapass_monitor/internal/usage"
)

const barWidth = 40

type Options struct {
	// Color forces ANSI colours regardless of the output being a terminal.
	Color bool
}

// Field names one value printed on its own by Value.
type Field string

const (
	FieldUsed       Field = "used"
	FieldTotal      Field = "total"
	FieldRemaining  Field = "remaining"
	FieldPercentage Field = "percentage"
	FieldPlan       Field = "plan"
)

type styles struct {
	plan      lipgloss.Style
	used      lipgloss.Style
	total     lipgloss.Style
	remaining lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		plan:      r.NewStyle().Bold(true),
		used:      r.NewStyle().Foreground(lipgloss.Color("12")),
		total:     r.NewStyle().Foreground(lipgloss.Color("15")),
		remaining: r.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

func colorProfile(color bool) termenv.Profile {
	if color {
		return termenv.ANSI256
	}
	return termenv.Ascii
}

// Human writes the multi-line report followed by a usage bar. Unlimited
// plans get a single data line and no bar.
func Human(w io.Writer, rec *usage.Record, opts Options) error {
	profile := colorProfile(opts.Color)
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	st := newStyles(r)

	var b strings.Builder
	if plan := rec.Plan(); plan != "" {
		fmt.Fprintf(&b, "Plan: %s\n", st.plan.Render(plan))
	}
	if rec.ValidUntil != nil {
		fmt.Fprintf(&b, "Valid until: %s\n", *rec.ValidUntil)
	}

	if rec.IsUnlimited {
		fmt.Fprintf(&b, "Data:      %s\n", st.remaining.Bold(true).Render("unlimited"))
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "Used:      %s (%.2f%%)\n", st.used.Render(gb(rec.UsedGB)), rec.Percentage)
	fmt.Fprintf(&b, "Total:     %s (100%%)\n", st.total.Render(gb(rec.TotalGB)))
	fmt.Fprintf(&b, "Remaining: %s (%.2f%%)\n", st.remaining.Render(gb(rec.RemainingGB)), rec.RemainingPercentage())
	fmt.Fprintf(&b, "%s %.2f%%\n", Bar(rec, barWidth, profile), rec.Percentage)

	_, err := io.WriteString(w, b.String())
	return err
}

// Bar renders the used share of the plan as a progress bar of the given
// width, coloured by the remaining share.
func Bar(rec *usage.Record, width int, profile termenv.Profile) string {
	bar := progress.New(
		progress.WithSolidFill(BarColor(rec.RemainingPercentage())),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
		progress.WithColorProfile(profile),
	)
	return bar.ViewAs(clamp01(rec.Percentage / 100))
}

// BarColor is green above 50% remaining, yellow above 20%, red otherwise.
func BarColor(remainingPercent float64) string {
	switch {
	case remainingPercent > 50:
		return "42"
	case remainingPercent > 20:
		return "214"
	default:
		return "196"
	}
}

func JSON(w io.Writer, rec *usage.Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode usage: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Value writes a single field. Quantities use two decimals and read
// "unlimited" for unlimited plans; an unnamed plan writes nothing.
func Value(w io.Writer, rec *usage.Record, field Field) error {
	if field == FieldPlan {
		plan := rec.Plan()
		if plan == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, plan)
		return err
	}

	var v float64
	switch field {
	case FieldUsed:
		v = rec.UsedGB
	case FieldTotal:
		v = rec.TotalGB
	case FieldRemaining:
		v = rec.RemainingGB
	case FieldPercentage:
		v = rec.Percentage
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	if rec.IsUnlimited {
		_, err := fmt.Fprintln(w, "unlimited")
		return err
	}
	_, err := fmt.Fprintf(w, "%.2f\n", v)
	return err
}

func gb(v float64) string {
	return fmt.Sprintf("%.2f GB", v)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
