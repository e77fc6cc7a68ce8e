package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"cuemix/internal/assembly"
)

func newAssembleCommand(ctx *commandContext) *cobra.Command {
	var outDir string
	var sfxBuses int
	var noPreview bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "assemble <template.json>",
		Short: "Mix a template's markers into stems, a composite, and metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			tpl, err := loadTemplate(cmd, args[0])
			if err != nil {
				return err
			}

			if sfxBuses > 0 {
				cfg.Assembly.SFXBuses = sfxBuses
			}
			if noPreview {
				cfg.Assembly.WritePreview = false
			}

			resolver, err := ctx.resolver()
			if err != nil {
				return err
			}

			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			var recorder assembly.Recorder
			if store != nil {
				recorder = store
				defer store.Close()
			}

			target := outDir
			if target == "" {
				target = filepath.Join(cfg.Paths.OutputDir, tpl.TemplateID)
			}

			asm := assembly.New(cfg, logger, resolver, recorder)
			result, err := asm.Assemble(cmd.Context(), tpl, target)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, result.Metadata)
			}

			out := cmd.OutOrStdout()
			md := result.Metadata
			fmt.Fprintf(out, "Assembled %s (%s) in %s\n", md.TemplateID, md.TemplateName, result.OutDir)

			rows := make([][]string, 0, len(md.Stems)+1)
			for _, stem := range md.Stems {
				rows = append(rows, []string{
					string(stem.Bus),
					stem.File,
					strconv.Itoa(stem.Channels),
					strconv.Itoa(stem.Markers),
				})
			}
			rows = append(rows, []string{
				"composite",
				md.CompositeFile,
				strconv.Itoa(len(md.ChannelLayout)),
				"",
			})
			fmt.Fprintln(out, renderTable(
				[]string{"BUS", "FILE", "CH", "MARKERS"}, rows, 2, 3))

			if md.PreviewFile != "" {
				fmt.Fprintf(out, "Preview: %s\n", md.PreviewFile)
			}
			if len(md.Skipped) > 0 {
				fmt.Fprintf(out, "%d marker(s) skipped:\n", len(md.Skipped))
				for _, skip := range md.Skipped {
					fmt.Fprintf(out, "  - %s at %dms: %s\n", skip.Marker, skip.TimeMs, skip.Reason)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: <output_dir>/<template_id>)")
	cmd.Flags().IntVar(&sfxBuses, "sfx-buses", 0, "Override the configured sfx bus count")
	cmd.Flags().BoolVar(&noPreview, "no-preview", false, "Skip the stereo preview mix")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the run metadata as JSON")
	return cmd
}
