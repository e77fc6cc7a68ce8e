package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cuemix/internal/assembly"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var sfxBuses int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "plan <template.json>",
		Short: "Show how markers would be assigned to buses, without mixing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			tpl, err := loadTemplate(cmd, args[0])
			if err != nil {
				return err
			}

			buses := cfg.Assembly.SFXBuses
			if sfxBuses > 0 {
				buses = sfxBuses
			}
			plan := assembly.NewPlan(buses)
			assignments, err := assembly.Assign(tpl, plan)
			if err != nil {
				return err
			}

			if jsonOut {
				view := map[string][]string{}
				for _, bus := range plan.Buses() {
					labels := make([]string, 0, len(assignments[bus.ID]))
					for _, m := range assignments[bus.ID] {
						labels = append(labels, fmt.Sprintf("%s@%dms", m.Label(), m.TimeMs))
					}
					view[string(bus.ID)] = labels
				}
				return writeJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Template %s: %d markers over %dms, %d output channels\n",
				tpl.TemplateID, len(tpl.Markers), tpl.DurationMs, plan.TotalChannels())

			rows := make([][]string, 0, len(plan.Buses()))
			for _, bus := range plan.Buses() {
				markers := assignments[bus.ID]
				labels := make([]string, 0, len(markers))
				for _, m := range markers {
					labels = append(labels, fmt.Sprintf("%s@%dms", m.Label(), m.TimeMs))
				}
				rows = append(rows, []string{
					string(bus.ID),
					string(bus.Type),
					strconv.Itoa(bus.Channels),
					strconv.Itoa(len(markers)),
					strings.Join(labels, ", "),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"BUS", "TYPE", "CH", "MARKERS", "CUES"}, rows, 2, 3))
			return nil
		},
	}

	cmd.Flags().IntVar(&sfxBuses, "sfx-buses", 0, "Override the configured sfx bus count")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the assignment as JSON")
	return cmd
}
