package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gshell/internal/connectors/google/directory"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

var domainCmd = &cobra.Command{
	Use:     "domain",
	Aliases: []string{"domains"},
	Short:   "Manage the customer's domains and domain aliases",
}

var domainGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show one domain",
	Args:  exactArgs(1),
	RunE:  runDomainGet,
}

var domainListCmd = &cobra.Command{
	Use:   "list",
	Short: "List domains",
	Args:  exactArgs(0),
	RunE:  runDomainList,
}

var domainNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Add a secondary domain",
	Args:  exactArgs(1),
	RunE:  runDomainNew,
}

var domainRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a secondary domain",
	Args:  exactArgs(1),
	RunE:  runDomainRemove,
}

var domainAliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage domain aliases",
}

var domainAliasGetCmd = &cobra.Command{
	Use:   "get <alias>",
	Short: "Show one domain alias",
	Args:  exactArgs(1),
	RunE:  runDomainAliasGet,
}

var domainAliasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List domain aliases",
	Args:  exactArgs(0),
	RunE:  runDomainAliasList,
}

var domainAliasNewCmd = &cobra.Command{
	Use:   "new <parent> <alias>",
	Short: "Add an alias to a domain",
	Args:  exactArgs(2),
	RunE:  runDomainAliasNew,
}

var domainAliasRemoveCmd = &cobra.Command{
	Use:   "remove <alias>",
	Short: "Delete a domain alias",
	Args:  exactArgs(1),
	RunE:  runDomainAliasRemove,
}

func init() {
	domainRemoveCmd.Flags().Bool("force", false, "Do not ask for confirmation")
	domainAliasListCmd.Flags().String("parent", "", "Only list aliases of this domain")
	domainAliasRemoveCmd.Flags().Bool("force", false, "Do not ask for confirmation")

	domainAliasCmd.AddCommand(domainAliasGetCmd, domainAliasListCmd, domainAliasNewCmd, domainAliasRemoveCmd)
	domainCmd.AddCommand(domainGetCmd, domainListCmd, domainNewCmd, domainRemoveCmd, domainAliasCmd)
	rootCmd.AddCommand(domainCmd)
}

func runDomainGet(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	d, err := svc.GetDomain(cmd.Context(), args[0])
	if err != nil {
		return apiErr(cmd, args[0], err)
	}
	return printer.Print(directory.NewDomainRow(d))
}

func runDomainList(cmd *cobra.Command, _ []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	domains, err := svc.ListDomains(cmd.Context())
	if err != nil {
		return apiErr(cmd, svc.CustomerID(), err)
	}
	rows := make([]directory.DomainRow, 0, len(domains))
	for _, d := range domains {
		rows = append(rows, directory.NewDomainRow(d))
	}
	return printer.Print(rows)
}

func runDomainNew(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	name := domain.NormalizeDomain(args[0])
	if whatIf("Add domain", name) {
		return nil
	}
	d, err := svc.InsertDomain(cmd.Context(), name)
	if err != nil {
		return apiErr(cmd, name, err)
	}
	return printer.Print(directory.NewDomainRow(d))
}

func runDomainRemove(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	name := domain.NormalizeDomain(args[0])

	return destructive(cmd, "remove domain", name, force, func() error {
		return svc.DeleteDomain(cmd.Context(), name)
	})
}

func runDomainAliasGet(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	a, err := svc.GetDomainAlias(cmd.Context(), args[0])
	if err != nil {
		return apiErr(cmd, args[0], err)
	}
	return printer.Print(directory.NewDomainAliasRow(a))
}

func runDomainAliasList(cmd *cobra.Command, _ []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	parent, _ := cmd.Flags().GetString("parent")

	aliases, err := svc.ListDomainAliases(cmd.Context(), parent)
	if err != nil {
		return apiErr(cmd, parent, err)
	}
	rows := make([]directory.DomainRow, 0, len(aliases))
	for _, a := range aliases {
		rows = append(rows, directory.NewDomainAliasRow(a))
	}
	return printer.Print(rows)
}

func runDomainAliasNew(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	parent := domain.NormalizeDomain(args[0])
	alias := domain.NormalizeDomain(args[1])
	if whatIf("Add domain alias "+alias, parent) {
		return nil
	}
	a, err := svc.InsertDomainAlias(cmd.Context(), parent, alias)
	if err != nil {
		return apiErr(cmd, alias, err)
	}
	return printer.Print(directory.NewDomainAliasRow(a))
}

func runDomainAliasRemove(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	alias := domain.NormalizeDomain(args[0])

	return destructive(cmd, "remove domain alias", alias, force, func() error {
		return svc.DeleteDomainAlias(cmd.Context(), alias)
	})
}
