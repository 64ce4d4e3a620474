package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/tmsim/internal/presentation/tui"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect SOURCE",
		Short: "Summarize a machine: alphabets, states and transition table",
		Long:  `Renders a markdown summary of the machine. On a terminal the summary is styled; otherwise the raw markdown is printed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			m, err := a.converter().Convert(cmd.Context(), src)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			md := tui.Summary(filepath.Base(args[0]), m)
			if !isTerminal(out) {
				_, err = fmt.Fprint(out, md)
				return err
			}

			render, err := tui.NewRenderer(terminalWidth(out))
			if err != nil {
				return err
			}
			styled, err := render(md)
			if err != nil {
				return err
			}
			tui.PrintBanner(out)
			_, err = fmt.Fprint(out, styled)
			return err
		},
	}
}
