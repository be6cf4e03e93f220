package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func currenciesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currencies",
		Short: "List supported currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			currencies, err := appCtx.catalog.All(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range currencies {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.Code(), c.Name())
			}
			return nil
		},
	}
	return cmd
}
