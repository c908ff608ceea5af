package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "build <interface>",
		Short: "Build a binary module from an interface file, bypassing the caches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			moduleName, err := cmd.Flags().GetString("module-name")
			if err != nil {
				return err
			}
			return c.app.Build(cmd.Context(), args[0], moduleName, out)
		},
	}

	cmd.Flags().String("module-name", "", "Name of the module being built")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output path for the binary module")
	_ = cmd.MarkFlagRequired("module-name")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
