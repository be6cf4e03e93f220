package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"money-calculator/domain"
)

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert AMOUNT FROM TO",
		Short:   "Convert an amount at today's rate",
		Example: "  moneycalc convert 10 EUR USD",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			from, err := appCtx.catalog.Lookup(ctx, args[1])
			if err != nil {
				return err
			}
			to, err := appCtx.catalog.Lookup(ctx, args[2])
			if err != nil {
				return err
			}
			money, err := domain.ParseMoney(args[0], from)
			if err != nil {
				return err
			}

			result, err := appCtx.exchange.Convert(ctx, money, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v = %v (%v)\n", money, result, result.Currency().Name())
			return nil
		},
	}
	return cmd
}
