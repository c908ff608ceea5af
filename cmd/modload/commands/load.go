package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func (c *CLI) newLoadCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "load <module>...",
		Short: "Resolve binary modules for the named module interfaces",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Loads of distinct modules are independent; the single-writer
			// assumption holds per interface.
			g, ctx := errgroup.WithContext(cmd.Context())
			for _, moduleName := range args {
				g.Go(func() error {
					res, err := c.app.Load(ctx, dir, moduleName)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bytes\n", moduleName, len(res.Buffer))
					return nil
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory containing the module interfaces")

	return cmd
}
