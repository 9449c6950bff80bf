package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gshell/internal/connectors/google/directory"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

type groupAliasRow struct {
	Group string `json:"group" yaml:"group"`
	Alias string `json:"alias" yaml:"alias"`
}

func (r groupAliasRow) TableHeader() []string { return []string{"Group", "Alias"} }
func (r groupAliasRow) TableRow() []string    { return []string{r.Group, r.Alias} }

type hasMemberRow struct {
	Group    string `json:"group" yaml:"group"`
	Member   string `json:"member" yaml:"member"`
	IsMember bool   `json:"is_member" yaml:"is_member"`
}

func (r hasMemberRow) TableHeader() []string { return []string{"Group", "Member", "Is Member"} }
func (r hasMemberRow) TableRow() []string {
	return []string{r.Group, r.Member, strconv.FormatBool(r.IsMember)}
}

var groupAliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage group email aliases",
}

var groupAliasListCmd = &cobra.Command{
	Use:   "list <group>",
	Short: "List the aliases of a group",
	Args:  exactArgs(1),
	RunE:  runGroupAliasList,
}

var groupAliasNewCmd = &cobra.Command{
	Use:   "new <group> <alias>",
	Short: "Add an alias to a group",
	Args:  exactArgs(2),
	RunE:  runGroupAliasNew,
}

var groupAliasRemoveCmd = &cobra.Command{
	Use:   "remove <group> <alias>",
	Short: "Remove an alias from a group",
	Args:  exactArgs(2),
	RunE:  runGroupAliasRemove,
}

var groupMemberCmd = &cobra.Command{
	Use:     "member",
	Aliases: []string{"members"},
	Short:   "Manage group membership",
}

var groupMemberListCmd = &cobra.Command{
	Use:   "list <group>...",
	Short: "List the members of one or more groups",
	Long: `List the members of one or more groups. Several groups are fetched
concurrently and printed in the order given, one row per group/member pair.`,
	Args: minArgs(1),
	RunE: runGroupMemberList,
}

var groupMemberGetCmd = &cobra.Command{
	Use:   "get <group> <member>",
	Short: "Show one membership",
	Args:  exactArgs(2),
	RunE:  runGroupMemberGet,
}

var groupMemberAddCmd = &cobra.Command{
	Use:   "add <group> <member>",
	Short: "Add a user or group to a group",
	Args:  exactArgs(2),
	RunE:  runGroupMemberAdd,
}

var groupMemberSetCmd = &cobra.Command{
	Use:   "set <group> <member>",
	Short: "Change a member's role",
	Args:  exactArgs(2),
	RunE:  runGroupMemberSet,
}

var groupMemberRemoveCmd = &cobra.Command{
	Use:   "remove <group> <member>",
	Short: "Remove a member from a group",
	Args:  exactArgs(2),
	RunE:  runGroupMemberRemove,
}

var groupMemberHasCmd = &cobra.Command{
	Use:   "has <group> <member>",
	Short: "Check whether a user belongs to a group, directly or through nesting",
	Args:  exactArgs(2),
	RunE:  runGroupMemberHas,
}

func init() {
	groupAliasRemoveCmd.Flags().Bool("force", false, "Do not ask for confirmation")
	groupAliasCmd.AddCommand(groupAliasListCmd, groupAliasNewCmd, groupAliasRemoveCmd)

	f := groupMemberListCmd.Flags()
	f.String("roles", "", "Comma-separated subset of OWNER, MANAGER, MEMBER")
	f.Bool("include-derived", false, "Include members of nested groups")
	f.Int("max", 0, "Stop after this many members per group (0 lists all)")

	groupMemberAddCmd.Flags().String("role", directory.RoleMember, "OWNER, MANAGER or MEMBER")
	groupMemberSetCmd.Flags().String("role", "", "OWNER, MANAGER or MEMBER")
	_ = groupMemberSetCmd.MarkFlagRequired("role")
	groupMemberRemoveCmd.Flags().Bool("force", false, "Do not ask for confirmation")

	groupMemberCmd.AddCommand(groupMemberListCmd, groupMemberGetCmd, groupMemberAddCmd,
		groupMemberSetCmd, groupMemberRemoveCmd, groupMemberHasCmd)
	groupCmd.AddCommand(groupAliasCmd, groupMemberCmd)
}

func runGroupAliasList(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	target := domain.NormalizeEmail(args[0], svc.Domain())

	aliases, err := svc.ListGroupAliases(cmd.Context(), args[0])
	if err != nil {
		return apiErr(cmd, target, err)
	}
	rows := make([]groupAliasRow, 0, len(aliases))
	for _, a := range aliases {
		rows = append(rows, groupAliasRow{Group: target, Alias: a})
	}
	return printer.Print(rows)
}

func runGroupAliasNew(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	alias := domain.NormalizeEmail(args[1], svc.Domain())
	target := domain.NormalizeEmail(args[0], svc.Domain())

	return change(cmd, "Add alias "+alias, target, func() error {
		_, err := svc.InsertGroupAlias(cmd.Context(), args[0], args[1])
		if err == nil {
			printer.Success("Added alias %s to %s", alias, target)
		}
		return err
	})
}

func runGroupAliasRemove(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	alias := domain.NormalizeEmail(args[1], svc.Domain())

	return destructive(cmd, "remove alias", alias, force, func() error {
		return svc.DeleteGroupAlias(cmd.Context(), args[0], args[1])
	})
}

func runGroupMemberList(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	var opts directory.ListMembersOptions
	opts.Roles, _ = f.GetString("roles")
	opts.IncludeDerived, _ = f.GetBool("include-derived")
	opts.Max, _ = f.GetInt("max")

	if len(args) == 1 {
		group := domain.NormalizeEmail(args[0], svc.Domain())
		members, err := svc.ListMembers(cmd.Context(), args[0], opts)
		if err != nil {
			return apiErr(cmd, group, err)
		}
		rows := make([]directory.MemberRow, 0, len(members))
		for _, m := range members {
			rows = append(rows, directory.NewMemberRow(group, m))
		}
		return printer.Print(rows)
	}

	many, err := svc.ListManyMembers(cmd.Context(), args, opts)
	if err != nil {
		return apiErr(cmd, svc.Domain(), err)
	}
	return printer.Print(many.Rows)
}

func runGroupMemberGet(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	group := domain.NormalizeEmail(args[0], svc.Domain())

	member, err := svc.GetMember(cmd.Context(), args[0], args[1])
	if err != nil {
		return apiErr(cmd, args[1], err)
	}
	return printer.Print(directory.NewMemberRow(group, member))
}

func runGroupMemberAdd(cmd *cobra.Command, args []string) error {
	role, _ := cmd.Flags().GetString("role")
	role, err := directory.ParseRole(role)
	if err != nil {
		return invalidArg("--role", err)
	}
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	group := domain.NormalizeEmail(args[0], svc.Domain())
	member := domain.NormalizeEmail(args[1], svc.Domain())
	if whatIf("Add "+member+" as "+role, group) {
		return nil
	}

	m, err := svc.InsertMember(cmd.Context(), args[0], args[1], role)
	if err != nil {
		return apiErr(cmd, group, err)
	}
	return printer.Print(directory.NewMemberRow(group, m))
}

func runGroupMemberSet(cmd *cobra.Command, args []string) error {
	role, _ := cmd.Flags().GetString("role")
	role, err := directory.ParseRole(role)
	if err != nil {
		return invalidArg("--role", err)
	}
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	group := domain.NormalizeEmail(args[0], svc.Domain())
	member := domain.NormalizeEmail(args[1], svc.Domain())
	if whatIf("Set role of "+member+" to "+role, group) {
		return nil
	}

	m, err := svc.PatchMemberRole(cmd.Context(), args[0], args[1], role)
	if err != nil {
		return apiErr(cmd, group, err)
	}
	return printer.Print(directory.NewMemberRow(group, m))
}

func runGroupMemberRemove(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	group := domain.NormalizeEmail(args[0], svc.Domain())
	member := domain.NormalizeEmail(args[1], svc.Domain())

	return destructive(cmd, "remove "+member+" from", group, force, func() error {
		return svc.DeleteMember(cmd.Context(), args[0], args[1])
	})
}

func runGroupMemberHas(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	group := domain.NormalizeEmail(args[0], svc.Domain())
	member := domain.NormalizeEmail(args[1], svc.Domain())

	ok, err := svc.HasMember(cmd.Context(), args[0], args[1])
	if err != nil {
		return apiErr(cmd, group, err)
	}
	return printer.Print(hasMemberRow{Group: group, Member: member, IsMember: ok})
}
