package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gshell/internal/connectors/google/directory"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

var orgUnitCmd = &cobra.Command{
	Use:     "orgunit",
	Aliases: []string{"ou"},
	Short:   "Manage organizational units",
	Long:    `Manage organizational units. Paths may be given with or without the leading slash.`,
}

var orgUnitGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Show one org unit",
	Args:  exactArgs(1),
	RunE:  runOrgUnitGet,
}

var orgUnitListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List org units below a path (default: the root)",
	Args:  rangeArgs(0, 1),
	RunE:  runOrgUnitList,
}

var orgUnitNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create an org unit",
	Args:  exactArgs(1),
	RunE:  runOrgUnitNew,
}

var orgUnitSetCmd = &cobra.Command{
	Use:   "set <path>",
	Short: "Update an org unit",
	Args:  exactArgs(1),
	RunE:  runOrgUnitSet,
}

var orgUnitRemoveCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Delete an empty org unit",
	Args:  exactArgs(1),
	RunE:  runOrgUnitRemove,
}

func init() {
	orgUnitListCmd.Flags().String("type", directory.OrgUnitsAll, "all, children or all_including_parent")

	f := orgUnitNewCmd.Flags()
	f.String("parent", "/", "Parent org unit path")
	f.String("description", "", "Description")
	f.Bool("block-inheritance", false, "Block policy inheritance from the parent")

	f = orgUnitSetCmd.Flags()
	f.String("name", "", "Rename the org unit")
	f.String("parent", "", "Move the org unit under this path")
	f.String("description", "", "Description")
	f.Bool("block-inheritance", false, "Block policy inheritance from the parent")

	orgUnitRemoveCmd.Flags().Bool("force", false, "Do not ask for confirmation")

	orgUnitCmd.AddCommand(orgUnitGetCmd, orgUnitListCmd, orgUnitNewCmd, orgUnitSetCmd, orgUnitRemoveCmd)
	rootCmd.AddCommand(orgUnitCmd)
}

func runOrgUnitGet(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	ou, err := svc.GetOrgUnit(cmd.Context(), args[0])
	if err != nil {
		return apiErr(cmd, domain.NormalizeOrgUnitPath(args[0]), err)
	}
	return printer.Print(directory.NewOrgUnitRow(ou))
}

func runOrgUnitList(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	listType, _ := cmd.Flags().GetString("type")

	units, err := svc.ListOrgUnits(cmd.Context(), path, listType)
	if err != nil {
		return apiErr(cmd, domain.NormalizeOrgUnitPath(path), err)
	}
	rows := make([]directory.OrgUnitRow, 0, len(units))
	for _, ou := range units {
		rows = append(rows, directory.NewOrgUnitRow(ou))
	}
	return printer.Print(rows)
}

func runOrgUnitNew(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	ou := directory.NewOrgUnit{Name: args[0]}
	ou.ParentPath, _ = f.GetString("parent")
	ou.Description, _ = f.GetString("description")
	ou.BlockInheritance, _ = f.GetBool("block-inheritance")

	parent := domain.NormalizeOrgUnitPath(ou.ParentPath)
	if whatIf("Create org unit "+args[0], parent) {
		return nil
	}
	created, err := svc.InsertOrgUnit(cmd.Context(), ou)
	if err != nil {
		return apiErr(cmd, parent, err)
	}
	return printer.Print(directory.NewOrgUnitRow(created))
}

func runOrgUnitSet(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	update := directory.OrgUnitUpdate{
		Name:             optString(cmd, "name"),
		ParentPath:       optString(cmd, "parent"),
		Description:      optString(cmd, "description"),
		BlockInheritance: optBool(cmd, "block-inheritance"),
	}
	path := domain.NormalizeOrgUnitPath(args[0])
	if whatIf("Update org unit", path) {
		return nil
	}

	ou, err := svc.PatchOrgUnit(cmd.Context(), args[0], update)
	if err != nil {
		return apiErr(cmd, path, err)
	}
	return printer.Print(directory.NewOrgUnitRow(ou))
}

func runOrgUnitRemove(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	path := domain.NormalizeOrgUnitPath(args[0])

	return destructive(cmd, "remove org unit", path, force, func() error {
		return svc.DeleteOrgUnit(cmd.Context(), args[0])
	})
}
