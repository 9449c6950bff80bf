package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gshell/internal/connectors/google/directory"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Show Workspace customer details",
}

var customerGetCmd = &cobra.Command{
	Use:   "get [customer-id]",
	Short: "Show a customer (default: the account customer)",
	Args:  rangeArgs(0, 1),
	RunE:  runCustomerGet,
}

func init() {
	customerCmd.AddCommand(customerGetCmd)
	rootCmd.AddCommand(customerCmd)
}

func runCustomerGet(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	key := ""
	if len(args) == 1 {
		key = args[0]
	}
	c, err := svc.GetCustomer(cmd.Context(), key)
	if err != nil {
		if key == "" {
			key = svc.CustomerID()
		}
		return apiErr(cmd, key, err)
	}
	return printer.Print(directory.NewCustomerRow(c))
}
