package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/tmsim/internal/presentation/graph"
)

func newGraphCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "graph SOURCE",
		Short: "Print the state graph as a Mermaid flowchart",
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
			_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(m))
			return err
		},
	}
}
