package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/aldzban/ambient/config"
	"github.com/aldzban/ambient/registry"
)

func deployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy [dir]",
		Short: "Store a package as an immutable deployment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}

			// Validate the whole graph before anything is written.
			if _, _, err := loadPackage(cmd.Context(), path); err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			store := registry.NewDeploymentStore(registry.Options{
				Addr:     cfg.RedisAddress,
				Password: cfg.RedisPassword,
			}, cfg.Namespace)
			defer store.Close()

			d, err := store.Deploy(cmd.Context(), registry.NewDiskSource(path))
			if err != nil {
				return err
			}

			log.Info().
				Str("deployment_id", d.ID).
				Str("package_id", d.PackageID).
				Msg("pin dependencies with this deployment id")
			return nil
		},
	}
}
