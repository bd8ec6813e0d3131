// Package notify sends desktop notifications when the remaining volume of a
// plan runs low or is topped up.
package notify

import (
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog"

	"github.com/olliecrow/datapass_monitor/internal/usage"
)

// renewedJump is the rise in remaining volume, as a share of the total, that
// counts as a renewed plan.
const renewedJump = 20.0

type SendFunc func(title, body string) error

// Notifier compares each record with the previous one. The first record only
// sets the baseline.
type Notifier struct {
	threshold float64
	send      SendFunc
	logger    zerolog.Logger

	mu   sync.Mutex
	prev *usage.Record
}

// New returns a Notifier for the given remaining-percent threshold. A
// threshold of 0 disables the low-volume alert; renewals are still reported.
func New(threshold float64, logger zerolog.Logger) *Notifier {
	return NewWithSender(threshold, logger, func(title, body string) error {
		return beeep.Notify(title, body, "")
	})
}

func NewWithSender(threshold float64, logger zerolog.Logger, send SendFunc) *Notifier {
	return &Notifier{
		threshold: threshold,
		send:      send,
		logger:    logger.With().Str("component", "notify").Logger(),
	}
}

func (n *Notifier) Observe(rec *usage.Record) {
	if rec == nil {
		return
	}
	n.mu.Lock()
	prev := n.prev
	cur := *rec
	n.prev = &cur
	n.mu.Unlock()

	if prev == nil || rec.IsUnlimited || prev.IsUnlimited || rec.TotalGB <= 0 {
		return
	}

	newPercent := rec.RemainingPercentage()
	oldPercent := 100.0
	if prev.TotalGB > 0 {
		oldPercent = prev.RemainingPercentage()
	}
	if n.threshold > 0 && newPercent < n.threshold && oldPercent >= n.threshold {
		n.notify(
			"Data running low",
			fmt.Sprintf("%s: %.2f GB left (%.1f%%), below %.0f%%", planLabel(rec), rec.RemainingGB, newPercent, n.threshold),
		)
	}

	if rec.RemainingGB > prev.RemainingGB {
		jump := (rec.RemainingGB - prev.RemainingGB) / rec.TotalGB * 100
		if jump > renewedJump {
			n.notify(
				"Data plan renewed",
				fmt.Sprintf("%s: %.2f GB of %.2f GB available", planLabel(rec), rec.RemainingGB, rec.TotalGB),
			)
		}
	}
}

func (n *Notifier) notify(title, body string) {
	if err := n.send(title, body); err != nil {
		n.logger.Warn().Err(err).Str("title", title).Msg("notification failed")
		return
	}
	n.logger.Info().Str("title", title).Msg("notification sent")
}

func planLabel(rec *usage.Record) string {
	if plan := rec.Plan(); plan != "" {
		return plan
	}
	return "Mobile data"
}
