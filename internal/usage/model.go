package usage

// Record is the usage snapshot extracted from one page, consumed by the
// one-shot report and the TUI.
type Record struct {
	RemainingGB float64 `json:"remaining_gb"`
	TotalGB     float64 `json:"total_gb"`
	UsedGB      float64 `json:"used_gb"`
	Percentage  float64 `json:"percentage"`
	PlanName    *string `json:"plan_name"`
	ValidUntil  *string `json:"valid_until"`
	IsUnlimited bool    `json:"is_unlimited"`
}

// NewRecord derives the used volume and usage percentage. Quantities of an
// unlimited plan carry no meaning and are zeroed.
func NewRecord(remainingGB, totalGB float64, planName, validUntil *string, unlimited bool) Record {
	if unlimited {
		remainingGB, totalGB = 0, 0
	}
	usedGB := totalGB - remainingGB
	percentage := 0.0
	if totalGB > 0 {
		percentage = usedGB / totalGB * 100
	}
	return Record{
		RemainingGB: remainingGB,
		TotalGB:     totalGB,
		UsedGB:      usedGB,
		Percentage:  percentage,
		PlanName:    planName,
		ValidUntil:  validUntil,
		IsUnlimited: unlimited,
	}
}

func (r Record) RemainingPercentage() float64 {
	return 100 - r.Percentage
}

// Plan returns the plan name or "" when the page did not name one.
func (r Record) Plan() string {
	if r.PlanName == nil {
		return ""
	}
	return *r.PlanName
}

type DoctorCheck struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Details string `json:"details"`
}

func stringPtr(s string) *string {
	out := s
	return &out
}
