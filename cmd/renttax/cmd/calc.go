package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/nurpe/renttax/internal/model"
	"github.com/nurpe/renttax/internal/tax"
)

func newCalcCmd() *cobra.Command {
	var (
		income   string
		expenses string
		landlord string
		tenant   string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run the flat tax calculation without touching the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			totalIncome, err := decimal.NewFromString(income)
			if err != nil {
				return fmt.Errorf("invalid --income: %w", err)
			}
			totalExpenses, err := decimal.NewFromString(expenses)
			if err != nil {
				return fmt.Errorf("invalid --expenses: %w", err)
			}
			if totalIncome.IsNegative() || totalExpenses.IsNegative() {
				return fmt.Errorf("amounts must not be negative")
			}
			regime, err := model.ParseRegime(landlord, tenant)
			if err != nil {
				return fmt.Errorf("invalid regime %s/%s: %w", landlord, tenant, err)
			}

			return writeJSON(cmd.OutOrStdout(), tax.CalculateFlat(totalIncome, totalExpenses, regime))
		},
	}

	cmd.Flags().StringVar(&income, "income", "0", "total income")
	cmd.Flags().StringVar(&expenses, "expenses", "0", "total expenses")
	cmd.Flags().StringVar(&landlord, "landlord", string(model.LandlordSelfEmployed), "landlord category")
	cmd.Flags().StringVar(&tenant, "tenant", string(model.TenantNaturalPerson), "tenant category")
	return cmd
}
