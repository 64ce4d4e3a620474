package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/tmsim/internal/presentation/tui"
	"github.com/aretw0/tmsim/pkg/domain"
)

func newValidateCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "validate SOURCE...",
		Short: "Check descriptions without writing documents",
		Long:  `Reports whether each description converts cleanly. With --all every error is listed instead of the first one.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv := a.converter()

			var first error
			for _, path := range args {
				src, err := readSource(cmd, path)
				if err != nil {
					return err
				}

				var errs []error
				if all {
					errs = conv.Validate(cmd.Context(), src)
				} else if _, err := conv.Convert(cmd.Context(), src); err != nil {
					errs = domain.Errors(err)
				}

				if len(errs) == 0 {
					tui.Success(cmd.OutOrStdout(), path+" is valid")
					continue
				}
				if first == nil {
					first = errs[0]
				}
				for _, err := range errs {
					tui.Failure(cmd.ErrOrStderr(), fmt.Sprintf("%s: %v", path, err))
				}
			}

			if first != nil {
				return &reportedError{err: first}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every error instead of stopping at the first")
	return cmd
}
