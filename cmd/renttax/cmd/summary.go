package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	var propertyID string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the tax summary under the stored regime",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			application, err := openApp(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer application.Close()

			regime := application.Tax.Regime()
			if propertyID == "" {
				result, err := application.Tax.CalculateAggregate(ctx, regime)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), result)
			}

			id, err := uuid.Parse(propertyID)
			if err != nil {
				return fmt.Errorf("invalid --property: %w", err)
			}
			result, err := application.Tax.CalculateForProperty(ctx, id, regime)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&propertyID, "property", "", "limit the summary to one property id")
	return cmd
}
