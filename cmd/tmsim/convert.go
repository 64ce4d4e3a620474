package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/aretw0/tmsim/internal/batch"
	"github.com/aretw0/tmsim/internal/presentation/tui"
	"github.com/aretw0/tmsim/pkg/document"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		output string
		format string
		outDir string
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "convert SOURCE...",
		Short: "Convert descriptions into structured documents",
		Long: `Converts one description to --output (stdout by default) or several
descriptions into --out-dir, one document per source. Use "-" to read a
single source from stdin. Legacy documents are compact when written to a file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Format
			}
			f, err := document.ParseFormat(format)
			if err != nil {
				return err
			}
			conv := a.converter()

			if len(args) == 1 && outDir == "" {
				src, err := readSource(cmd, args[0])
				if err != nil {
					return err
				}
				data, err := conv.ConvertAndEncode(cmd.Context(), src, f)
				if err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				if output == "" || output == "-" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				if data, err = document.ForFile(data, f); err != nil {
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", output, err)
				}
				a.logger.Info("document written", "source", args[0], "output", output, "format", string(f))
				return nil
			}

			if output != "" {
				return errors.New("--output takes a single source, use --out-dir for several")
			}
			if slices.Contains(args, "-") {
				return errors.New("stdin (-) can only be converted as a single source")
			}
			if outDir == "" {
				outDir = "."
			}
			if err := batch.CheckOutputs(args, outDir, f); err != nil {
				return err
			}
			if !cmd.Flags().Changed("jobs") {
				jobs = a.cfg.Jobs
			}

			results, err := batch.Run(cmd.Context(), conv, args, f, jobs)
			if err != nil {
				return err
			}
			if err := batch.Write(results, outDir, f); err != nil {
				return err
			}

			var first error
			for _, r := range results {
				if r.Err == nil {
					a.logger.Info("document written", "source", r.Path, "output", batch.OutputPath(r.Path, outDir, f))
					continue
				}
				if first == nil {
					first = r.Err
				}
				tui.Failure(cmd.ErrOrStderr(), fmt.Sprintf("%s: %v", r.Path, r.Err))
			}
			if n := batch.Failed(results); n > 0 {
				return &reportedError{err: fmt.Errorf("%d of %d sources failed: %w", n, len(results), first)}
			}
			tui.Success(cmd.OutOrStdout(), fmt.Sprintf("converted %d sources into %s", len(results), outDir))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file for a single source (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json, yaml, toml, legacy (default from config, json)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory receiving one document per source")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "Parallel conversions in batch mode")
	return cmd
}
