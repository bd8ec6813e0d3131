package usage

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Fetcher loads the page from its source and parses it. One attempt per
// call; failures are not retried.
type Fetcher struct {
	source Source
	logger zerolog.Logger
}

func NewFetcher(source Source, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		source: source,
		logger: logger.With().Str("component", "fetcher").Str("source", source.Name()).Logger(),
	}
}

func (f *Fetcher) Fetch(ctx context.Context) (*Record, error) {
	start := time.Now()
	html, err := f.source.Fetch(ctx)
	if err != nil {
		f.logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("fetch failed")
		return nil, err
	}
	f.logger.Debug().Int("bytes", len(html)).Dur("duration", time.Since(start)).Msg("fetched page")

	rec, err := Parse(html)
	if err != nil {
		f.logger.Warn().Err(err).Msg("parse failed")
		return nil, err
	}
	f.logger.Debug().
		Str("plan", rec.Plan()).
		Bool("unlimited", rec.IsUnlimited).
		Float64("remaining_gb", rec.RemainingGB).
		Float64("total_gb", rec.TotalGB).
		Msg("parsed usage")
	return rec, nil
}

func (f *Fetcher) Source() Source {
	return f.source
}

func (f *Fetcher) Close() error {
	return f.source.Close()
}
