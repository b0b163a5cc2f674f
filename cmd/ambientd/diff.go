package main

import (
	"github.com/spf13/cobra"

	"github.com/aldzban/ambient/schema"
)

func diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <dir> <dir>",
		Short: "Print the JSON patch between two resolved packages",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, before, err := loadPackage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, after, err := loadPackage(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			patch, err := schema.Diff(before, after)
			if err != nil {
				return err
			}
			if len(patch) == 0 {
				cmd.Println("packages declare the same schema")
				return nil
			}
			return printJSON(cmd, patch)
		},
	}
}
