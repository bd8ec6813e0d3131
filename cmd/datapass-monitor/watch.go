package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/olliecrow/datapass_monitor/internal/config"
	"github.com/olliecrow/datapass_monitor/internal/notify"
	"github.com/olliecrow/datapass_monitor/internal/tui"
	"github.com/olliecrow/datapass_monitor/internal/usage"
)

const watchPollTimeout = 10 * time.Second

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	config.Source `embed:""`

	Interval    time.Duration `default:"60s" env:"DATAPASS_INTERVAL" help:"Poll interval."`
	NoColor     bool          `help:"Disable colour styling."`
	NoAltScreen bool          `help:"Disable alternate screen mode."`
	NotifyBelow float64       `env:"DATAPASS_NOTIFY_BELOW" placeholder:"PERCENT" help:"Send a desktop notification when the remaining share drops below PERCENT (0 disables)."`
}

func (c *WatchCmd) Validate() error {
	if c.Interval <= 0 {
		return errors.New("--interval must be > 0")
	}
	if c.NotifyBelow < 0 || c.NotifyBelow > 100 {
		return fmt.Errorf("--notify-below must be between 0 and 100, got %g", c.NotifyBelow)
	}
	return c.Source.Validate()
}

func (c *WatchCmd) Run(deps *Dependencies) error {
	if !interactive(deps.Stdout) {
		return errors.New("interactive live view requires a TTY")
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = watchPollTimeout
	}
	source := c.Open(timeout)
	fetcher := usage.NewFetcher(source, deps.Logger)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(deps.Ctx)
	defer cancel()

	var changes <-chan struct{}
	if fs, ok := source.(*usage.FileSource); ok {
		ch, err := fs.Watch(ctx)
		if err != nil {
			deps.Logger.Warn().Err(err).Msg("file watch unavailable; polling only")
		} else {
			changes = ch
		}
	}

	notifier := notify.New(c.NotifyBelow, deps.Logger)
	return tui.Run(tui.Options{
		Interval:  c.Interval,
		Timeout:   timeout,
		NoColor:   c.NoColor,
		AltScreen: !c.NoAltScreen,
		Source:    source.Name(),
		Changes:   changes,
		Fetch: func(ctx context.Context) (*usage.Record, error) {
			rec, err := fetcher.Fetch(ctx)
			if err == nil {
				notifier.Observe(rec)
			}
			return rec, err
		},
	})
}
