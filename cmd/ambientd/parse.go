package main

import (
	"github.com/spf13/cobra"

	"github.com/aldzban/ambient/codec"
)

func parseCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "parse [dir]",
		Short: "Resolve a package and print its document as JSON",
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

			if !all {
				return printJSON(cmd, root.Document())
			}
			for _, pkg := range sem.Packages() {
				if err := printJSON(cmd, pkg.Document()); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "print every loaded package, dependencies included")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	bz, err := codec.EncodeIndent(v)
	if err != nil {
		return err
	}
	cmd.Println(string(bz))
	return nil
}
