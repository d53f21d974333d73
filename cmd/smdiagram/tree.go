package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"smdiagram/internal/render"
	"smdiagram/internal/structuremap"
)

func newTreeCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <map.json|map.yaml>",
		Short: "Print the rule tree of a StructureMap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, err := structuremap.LoadFile(args[0])
			if err != nil {
				return err
			}

			outline, err := render.RuleOutline(sm)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), outline)

			return nil
		},
	}
}
