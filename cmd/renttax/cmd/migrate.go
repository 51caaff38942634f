package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Open the configured store and apply its schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer application.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "store %s (%s) is up to date\n", application.Config.DB.Driver, application.Config.DB.DSN)
			return nil
		},
	}
}
