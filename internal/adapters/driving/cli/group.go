package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gshell/internal/connectors/google/directory"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

var groupCmd = &cobra.Command{
	Use:     "group",
	Aliases: []string{"groups"},
	Short:   "Manage groups, their aliases and members",
}

var groupGetCmd = &cobra.Command{
	Use:   "get <group>",
	Short: "Show one group",
	Args:  exactArgs(1),
	RunE:  runGroupGet,
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups",
	Long: `List the groups of the account customer, of one domain with --in-domain,
or the groups a user belongs to with --member.`,
	Args: exactArgs(0),
	RunE: runGroupList,
}

var groupNewCmd = &cobra.Command{
	Use:   "new <group>",
	Short: "Create a group",
	Args:  exactArgs(1),
	RunE:  runGroupNew,
}

var groupSetCmd = &cobra.Command{
	Use:   "set <group>",
	Short: "Update a group",
	Args:  exactArgs(1),
	RunE:  runGroupSet,
}

var groupRemoveCmd = &cobra.Command{
	Use:   "remove <group>",
	Short: "Delete a group",
	Args:  exactArgs(1),
	RunE:  runGroupRemove,
}

func init() {
	f := groupListCmd.Flags()
	f.String("in-domain", "", "List only groups of this domain")
	f.String("member", "", "List only groups this user or group belongs to")
	f.StringP("query", "q", "", "Admin SDK group search query")
	f.Int("max", 0, "Stop after this many groups (0 lists all)")
	groupListCmd.MarkFlagsMutuallyExclusive("in-domain", "member")

	f = groupNewCmd.Flags()
	f.String("name", "", "Display name (default: the group address)")
	f.String("description", "", "Description")

	f = groupSetCmd.Flags()
	f.String("new-email", "", "Change the group address")
	f.String("name", "", "Display name")
	f.String("description", "", "Description")

	groupRemoveCmd.Flags().Bool("force", false, "Do not ask for confirmation")

	groupCmd.AddCommand(groupGetCmd, groupListCmd, groupNewCmd, groupSetCmd, groupRemoveCmd)
	rootCmd.AddCommand(groupCmd)
}

func runGroupGet(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	group, err := svc.GetGroup(cmd.Context(), args[0])
	if err != nil {
		return apiErr(cmd, args[0], err)
	}
	return printer.Print(directory.NewGroupRow(group))
}

func runGroupList(cmd *cobra.Command, _ []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	var opts directory.ListGroupsOptions
	opts.Domain, _ = f.GetString("in-domain")
	opts.UserKey, _ = f.GetString("member")
	opts.Query, _ = f.GetString("query")
	opts.Max, _ = f.GetInt("max")

	groups, err := svc.ListGroups(cmd.Context(), opts)
	if err != nil {
		return apiErr(cmd, svc.Domain(), err)
	}
	rows := make([]directory.GroupRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, directory.NewGroupRow(g))
	}
	return printer.Print(rows)
}

func runGroupNew(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	target := domain.NormalizeEmail(args[0], svc.Domain())
	if whatIf("Create group", target) {
		return nil
	}

	group, err := svc.InsertGroup(cmd.Context(), args[0], name, description)
	if err != nil {
		return apiErr(cmd, target, err)
	}
	return printer.Print(directory.NewGroupRow(group))
}

func runGroupSet(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	update := directory.GroupUpdate{
		Email:       optString(cmd, "new-email"),
		Name:        optString(cmd, "name"),
		Description: optString(cmd, "description"),
	}
	target := domain.NormalizeEmail(args[0], svc.Domain())
	if whatIf("Update group", target) {
		return nil
	}

	group, err := svc.PatchGroup(cmd.Context(), args[0], update)
	if err != nil {
		return apiErr(cmd, target, err)
	}
	return printer.Print(directory.NewGroupRow(group))
}

func runGroupRemove(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	target := domain.NormalizeEmail(args[0], svc.Domain())

	return destructive(cmd, "remove group", target, force, func() error {
		return svc.DeleteGroup(cmd.Context(), args[0])
	})
}
