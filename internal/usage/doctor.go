package usage

import (
	"context"
	"fmt"
	"time"
)

const doctorFetchTimeout = 15 * time.Second

type DoctorReport struct {
	Source string        `json:"source"`
	Checks []DoctorCheck `json:"checks"`
}

// RunDoctor walks the pipeline step by step against source. A failed step
// marks the remaining ones as skipped.
func RunDoctor(ctx context.Context, source Source) DoctorReport {
	report := DoctorReport{Source: source.Name()}

	html, fetchCheck := checkSourceFetch(ctx, source, doctorFetchTimeout)
	report.Checks = append(report.Checks, fetchCheck)
	if !fetchCheck.OK {
		return report.skipRest("page classification", "usage extraction")
	}

	doc, classifyCheck := checkClassification(html)
	report.Checks = append(report.Checks, classifyCheck)
	if !classifyCheck.OK {
		return report.skipRest("usage extraction")
	}

	report.Checks = append(report.Checks, checkExtraction(doc))
	return report
}

func (r DoctorReport) Healthy() bool {
	if len(r.Checks) == 0 {
		return false
	}
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

func (r DoctorReport) skipRest(names ...string) DoctorReport {
	for _, name := range names {
		r.Checks = append(r.Checks, DoctorCheck{
			Name:    name,
			OK:      false,
			Details: "skipped: previous check failed",
		})
	}
	return r
}

func checkSourceFetch(parent context.Context, source Source, timeout time.Duration) (string, DoctorCheck) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	start := time.Now()
	html, err := source.Fetch(ctx)
	if err != nil {
		return "", DoctorCheck{
			Name:    "source fetch",
			OK:      false,
			Details: err.Error(),
		}
	}
	return html, DoctorCheck{
		Name:    "source fetch",
		OK:      true,
		Details: fmt.Sprintf("%d bytes in %s", len(html), time.Since(start).Round(time.Millisecond)),
	}
}

func checkClassification(html string) (Node, DoctorCheck) {
	doc, err := ParseDocument(html)
	if err != nil {
		return nil, DoctorCheck{Name: "page classification", OK: false, Details: err.Error()}
	}
	kind, err := Classify(doc)
	if err != nil {
		return nil, DoctorCheck{Name: "page classification", OK: false, Details: err.Error()}
	}
	if kind == PageAuthRequired {
		return nil, DoctorCheck{
			Name:    "page classification",
			OK:      false,
			Details: "page is the redirect wall; fetch from the mobile network or pass --cookie",
		}
	}
	return doc, DoctorCheck{Name: "page classification", OK: true, Details: kind.String()}
}

func checkExtraction(doc Node) DoctorCheck {
	rec, err := Extract(doc)
	if err != nil {
		return DoctorCheck{Name: "usage extraction", OK: false, Details: err.Error()}
	}
	if rec.IsUnlimited {
		return DoctorCheck{
			Name:    "usage extraction",
			OK:      true,
			Details: fmt.Sprintf("plan=%s unlimited", rec.Plan()),
		}
	}
	return DoctorCheck{
		Name: "usage extraction",
		OK:   true,
		Details: fmt.Sprintf(
			"plan=%s remaining=%.2fGB total=%.2fGB used=%.0f%%",
			rec.Plan(),
			rec.RemainingGB,
			rec.TotalGB,
			rec.Percentage,
		),
	}
}
