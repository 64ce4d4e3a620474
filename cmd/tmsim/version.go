package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/tmsim"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tmsim",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tmsim version %s\n", tmsim.Version)
		},
	}
}
