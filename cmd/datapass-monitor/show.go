package main

import (
	"errors"

	"github.com/olliecrow/datapass_monitor/internal/config"
	"github.com/olliecrow/datapass_monitor/internal/report"
	"github.com/olliecrow/datapass_monitor/internal/usage"
)

// ShowCmd is the "show" subcommand and the default.
type ShowCmd struct {
	config.Source `embed:""`

	Format     string `short:"f" enum:"human,json" default:"human" help:"Output format (human, json)."`
	Color      bool   `short:"c" help:"Force coloured output."`
	Used       bool   `xor:"value" help:"Print only the used volume in GB."`
	Total      bool   `xor:"value" help:"Print only the total volume in GB."`
	Remaining  bool   `xor:"value" help:"Print only the remaining volume in GB."`
	Percentage bool   `xor:"value" help:"Print only the used percentage."`
	Plan       bool   `xor:"value" help:"Print only the plan name."`
}

func (c *ShowCmd) Validate() error {
	if c.Format == "json" && c.valueField() != "" {
		return errors.New("--format json cannot be combined with single-value flags")
	}
	return c.Source.Validate()
}

func (c *ShowCmd) Run(deps *Dependencies) error {
	fetcher := usage.NewFetcher(c.Open(usage.DefaultFetchTimeout), deps.Logger)
	defer fetcher.Close()

	rec, err := fetcher.Fetch(deps.Ctx)
	if err != nil {
		return err
	}

	if field := c.valueField(); field != "" {
		return report.Value(deps.Stdout, rec, field)
	}
	if c.Format == "json" {
		return report.JSON(deps.Stdout, rec)
	}
	return report.Human(deps.Stdout, rec, report.Options{Color: c.Color})
}

func (c *ShowCmd) valueField() report.Field {
	switch {
	case c.Used:
		return report.FieldUsed
	case c.Total:
		return report.FieldTotal
	case c.Remaining:
		return report.FieldRemaining
	case c.Percentage:
		return report.FieldPercentage
	case c.Plan:
		return report.FieldPlan
	default:
		return ""
	}
}
