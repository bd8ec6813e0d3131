package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/olliecrow/datapass_monitor/internal/config"
	"github.com/olliecrow/datapass_monitor/internal/usage"
)

var errUnhealthy = errors.New("doctor found failing checks")

// DoctorCmd is the "doctor" subcommand.
type DoctorCmd struct {
	config.Source `embed:""`

	JSON bool `help:"Output the report as JSON."`
}

func (c *DoctorCmd) Run(deps *Dependencies) error {
	source := c.Open(usage.DefaultFetchTimeout)
	defer source.Close()

	rep := usage.RunDoctor(deps.Ctx, source)
	deps.Logger.Debug().Bool("healthy", rep.Healthy()).Int("checks", len(rep.Checks)).Msg("doctor finished")

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode doctor report: %w", err)
		}
	} else {
		printDoctorHuman(deps.Stdout, rep)
	}

	if !rep.Healthy() {
		return errUnhealthy
	}
	return nil
}

func printDoctorHuman(w io.Writer, rep usage.DoctorReport) {
	fmt.Fprintln(w, "datapass monitor doctor")
	fmt.Fprintf(w, "source: %s\n\n", rep.Source)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Check", "Status", "Details"})
	for _, c := range rep.Checks {
		state := "FAIL"
		if c.OK {
			state = "PASS"
		}
		t.AppendRow(table.Row{c.Name, state, c.Details})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
