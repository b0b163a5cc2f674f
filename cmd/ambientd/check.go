package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "Validate a package and its dependency graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}

			sem, root, err := loadPackage(cmd.Context(), path)
			if err != nil {
				return err
			}

			log.Info().
				Str("package_id", string(root.ID)).
				Int("packages", len(sem.Packages())).
				Msg("package graph is valid")
			return nil
		},
	}
}
