package main

import (
	"github.com/spf13/cobra"

	"github.com/aldzban/ambient"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the configured package graph and serve resolved schemas over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := ambient.New()
			if err != nil {
				return err
			}
			return app.Start()
		},
	}
}
