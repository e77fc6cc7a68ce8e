package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <template.json>",
		Short: "Check a template and its assets before assembling",
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
			if err := tpl.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var issues []string
			ready := 0
			for _, m := range tpl.SortedMarkers() {
				version := m.CurrentVersionRecord()
				switch {
				case version == nil:
					issues = append(issues, fmt.Sprintf("%s at %dms: no version generated yet", m.Label(), m.TimeMs))
				case !version.Status.Usable():
					issues = append(issues, fmt.Sprintf("%s at %dms: version %d has status %q",
						m.Label(), m.TimeMs, version.Version, version.Status))
				default:
					path := version.AssetFile
					if !filepath.IsAbs(path) {
						path = filepath.Join(cfg.Paths.AssetDir, path)
					}
					if _, err := os.Stat(path); err != nil {
						issues = append(issues, fmt.Sprintf("%s at %dms: asset %s not found",
							m.Label(), m.TimeMs, version.AssetFile))
						continue
					}
					ready++
				}
			}

			fmt.Fprintf(out, "Template %s: %d of %d markers ready\n", tpl.TemplateID, ready, len(tpl.Markers))
			for _, issue := range issues {
				fmt.Fprintf(out, "  - %s\n", issue)
			}
			if strict && len(issues) > 0 {
				return fmt.Errorf("%d marker(s) not ready", len(issues))
			}
			if ready == 0 && len(tpl.Markers) > 0 {
				return errors.New("no marker would contribute audio; assembly would fail")
			}
			if len(issues) == 0 {
				fmt.Fprintln(out, "Template valid")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any marker is not ready")
	return cmd
}
