package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aldzban/ambient/config"
	"github.com/aldzban/ambient/registry"
	"github.com/aldzban/ambient/semantic"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ambientd",
		Short:         "Content-package manifest toolchain",
		Long:          "ambientd parses, resolves, validates, deploys and serves ECS content-package manifests.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(
		parseCmd(),
		checkCmd(),
		diffCmd(),
		deployCmd(),
		serveCmd(),
	)
	return cmd
}

// loadPackage resolves the package at path with a fresh semantic, using the
// configured deployment store for deployment-pinned dependencies. The Redis
// client connects lazily, so path-only loads never touch the network.
func loadPackage(ctx context.Context, path string) (*semantic.Semantic, *semantic.Package, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	store := registry.NewDeploymentStore(registry.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
	}, cfg.Namespace)
	defer store.Close()

	sem := semantic.New()
	loader := registry.NewLoader(sem, registry.WithDeploymentStore(store))
	pkg, err := loader.Load(ctx, registry.NewDiskSource(path))
	if err != nil {
		return nil, nil, err
	}
	return sem, pkg, nil
}
