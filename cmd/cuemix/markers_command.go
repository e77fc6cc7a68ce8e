package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cuemix/internal/timeline"
)

func newMarkersCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "markers <template.json>",
		Short: "List a template's markers and their generation state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := loadTemplate(cmd, args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, tpl)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Template %s (%s), %dms\n", tpl.TemplateID, tpl.TemplateName, tpl.DurationMs)

			rows := make([][]string, 0, len(tpl.Markers))
			for _, m := range tpl.SortedMarkers() {
				status := string(timeline.StatusNotGenerated)
				asset := ""
				if v := m.CurrentVersionRecord(); v != nil {
					status = string(v.Status)
					asset = v.AssetFile
				}
				rows = append(rows, []string{
					strconv.FormatInt(m.TimeMs, 10),
					string(m.Type),
					m.Label(),
					status,
					strconv.Itoa(len(m.Versions)),
					asset,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"TIME MS", "TYPE", "NAME", "STATUS", "VERS", "ASSET"}, rows, 0, 4))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the template as JSON")
	return cmd
}
