package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON snapshot of every collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			application, err := openApp(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer application.Close()

			snapshot, err := application.Reports.Export(ctx, time.Now())
			if err != nil {
				return err
			}
			if out == "" {
				return writeJSON(cmd.OutOrStdout(), snapshot)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := writeJSON(f, snapshot); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d properties to %s\n", len(snapshot.Properties), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
