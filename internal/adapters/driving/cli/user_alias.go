package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

var userAliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage user email aliases",
}

var userAliasListCmd = &cobra.Command{
	Use:   "list [user]",
	Short: "List the aliases of one user, or of every user",
	Long: `List the aliases of one user. Without a user, walk every user of the
account domain (or of --in-domain) and list all their aliases.`,
	Args: rangeArgs(0, 1),
	RunE: runUserAliasList,
}

var userAliasNewCmd = &cobra.Command{
	Use:   "new <user> <alias>",
	Short: "Add an alias to a user",
	Args:  exactArgs(2),
	RunE:  runUserAliasNew,
}

var userAliasRemoveCmd = &cobra.Command{
	Use:   "remove <user> <alias>",
	Short: "Remove an alias from a user",
	Args:  exactArgs(2),
	RunE:  runUserAliasRemove,
}

func init() {
	userAliasListCmd.Flags().String("in-domain", "", "Domain to walk when no user is given")
	userAliasRemoveCmd.Flags().Bool("force", false, "Do not ask for confirmation")

	userAliasCmd.AddCommand(userAliasListCmd, userAliasNewCmd, userAliasRemoveCmd)
	userCmd.AddCommand(userAliasCmd)
}

func runUserAliasList(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		rows, err := svc.ListUserAliases(cmd.Context(), args[0])
		if err != nil {
			return apiErr(cmd, args[0], err)
		}
		return printer.Print(rows)
	}

	domainName, _ := cmd.Flags().GetString("in-domain")
	if domainName == "" {
		domainName = svc.Domain()
	}
	rows, err := svc.ListAllUserAliases(cmd.Context(), domainName)
	if err != nil {
		return apiErr(cmd, domainName, err)
	}
	return printer.Print(rows)
}

func runUserAliasNew(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	alias := domain.NormalizeEmail(args[1], svc.Domain())
	target := domain.NormalizeEmail(args[0], svc.Domain())

	return change(cmd, "Add alias "+alias, target, func() error {
		_, err := svc.InsertUserAlias(cmd.Context(), args[0], args[1])
		if err == nil {
			printer.Success("Added alias %s to %s", alias, target)
		}
		return err
	})
}

func runUserAliasRemove(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	alias := domain.NormalizeEmail(args[1], svc.Domain())

	return destructive(cmd, "remove alias", alias, force, func() error {
		return svc.DeleteUserAlias(cmd.Context(), args[0], args[1])
	})
}
