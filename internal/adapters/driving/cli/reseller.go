package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/gshell/internal/connectors/google/reseller"
)

var resellerCmd = &cobra.Command{
	Use:   "reseller",
	Short: "Manage reseller customers and subscriptions",
	Long: `Manage the customers and subscriptions of a Google Workspace reseller.
The account given with --domain must be the reseller's own domain.`,
}

var resellerCustomerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage reseller customers",
}

var resellerCustomerGetCmd = &cobra.Command{
	Use:   "get <customer>",
	Short: "Show a customer by ID or primary domain",
	Args:  exactArgs(1),
	RunE:  runResellerCustomerGet,
}

var resellerCustomerNewCmd = &cobra.Command{
	Use:   "new <domain>",
	Short: "Create a customer, or transfer one with --auth-token",
	Args:  exactArgs(1),
	RunE:  runResellerCustomerNew,
}

var resellerCustomerSetCmd = &cobra.Command{
	Use:   "set <customer>",
	Short: "Update a customer's contact details",
	Args:  exactArgs(1),
	RunE:  runResellerCustomerSet,
}

// addressFlags are the postal address flags shared by customer new and set.
var addressFlags = []struct{ name, usage string }{
	{"contact-name", "Contact name"},
	{"organization", "Organization name"},
	{"address-line1", "Address line 1"},
	{"address-line2", "Address line 2"},
	{"address-line3", "Address line 3"},
	{"locality", "City or locality"},
	{"region", "State or region"},
	{"postal-code", "Postal code"},
	{"country-code", "ISO 3166 country code"},
}

func init() {
	f := resellerCustomerNewCmd.Flags()
	f.String("alternate-email", "", "Secondary contact address outside the customer domain")
	f.String("phone", "", "Phone number")
	f.String("auth-token", "", "Transfer token of an existing direct customer")
	addAddressFlags(f)
	_ = resellerCustomerNewCmd.MarkFlagRequired("alternate-email")
	_ = resellerCustomerNewCmd.MarkFlagRequired("organization")
	_ = resellerCustomerNewCmd.MarkFlagRequired("country-code")

	f = resellerCustomerSetCmd.Flags()
	f.String("alternate-email", "", "Secondary contact address")
	f.String("phone", "", "Phone number")
	addAddressFlags(f)

	resellerCustomerCmd.AddCommand(resellerCustomerGetCmd, resellerCustomerNewCmd, resellerCustomerSetCmd)
	resellerCmd.AddCommand(resellerCustomerCmd)
	rootCmd.AddCommand(resellerCmd)
}

func addAddressFlags(f *pflag.FlagSet) {
	for _, a := range addressFlags {
		f.String(a.name, "", a.usage)
	}
}

// addressFromFlags reads the address flags. changed reports whether any was given.
func addressFromFlags(cmd *cobra.Command) (addr reseller.Address, changed bool) {
	f := cmd.Flags()
	get := func(name string) string {
		if f.Changed(name) {
			changed = true
		}
		v, _ := f.GetString(name)
		return v
	}
	addr = reseller.Address{
		ContactName:      get("contact-name"),
		OrganizationName: get("organization"),
		AddressLine1:     get("address-line1"),
		AddressLine2:     get("address-line2"),
		AddressLine3:     get("address-line3"),
		Locality:         get("locality"),
		Region:           get("region"),
		PostalCode:       get("postal-code"),
		CountryCode:      get("country-code"),
	}
	return addr, changed
}

func runResellerCustomerGet(cmd *cobra.Command, args []string) error {
	svc, err := resellerClient(cmd)
	if err != nil {
		return err
	}
	c, err := svc.GetCustomer(cmd.Context(), args[0])
	if err != nil {
		return apiErr(cmd, args[0], err)
	}
	return printer.Print(reseller.NewCustomerRow(c))
}

func runResellerCustomerNew(cmd *cobra.Command, args []string) error {
	svc, err := resellerClient(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	nc := reseller.NewCustomer{Domain: args[0]}
	nc.AlternateEmail, _ = f.GetString("alternate-email")
	nc.PhoneNumber, _ = f.GetString("phone")
	nc.AuthToken, _ = f.GetString("auth-token")
	nc.Address, _ = addressFromFlags(cmd)

	action := "Create customer"
	if nc.AuthToken != "" {
		action = "Transfer customer"
	}
	if whatIf(action, args[0]) {
		return nil
	}
	c, err := svc.InsertCustomer(cmd.Context(), nc)
	if err != nil {
		return apiErr(cmd, args[0], err)
	}
	return printer.Print(reseller.NewCustomerRow(c))
}

func runResellerCustomerSet(cmd *cobra.Command, args []string) error {
	svc, err := resellerClient(cmd)
	if err != nil {
		return err
	}
	update := reseller.CustomerUpdate{
		AlternateEmail: optString(cmd, "alternate-email"),
		PhoneNumber:    optString(cmd, "phone"),
	}
	if addr, changed := addressFromFlags(cmd); changed {
		update.Address = &addr
	}
	if whatIf("Update customer", args[0]) {
		return nil
	}
	c, err := svc.PatchCustomer(cmd.Context(), args[0], update)
	if err != nil {
		return apiErr(cmd, args[0], err)
	}
	return printer.Print(reseller.NewCustomerRow(c))
}
