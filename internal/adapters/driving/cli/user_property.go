package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gshell/internal/connectors/google/directory"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

var userPropertyCmd = &cobra.Command{
	Use:     "property",
	Aliases: []string{"prop"},
	Short:   "Manage multi-valued user properties",
	Long: `List, add and remove a user's addresses, secondary emails, external IDs,
IM accounts, organizations, phones, relations and websites.

Categories: ` + categoryNames(),
}

var userPropertyListCmd = &cobra.Command{
	Use:   "list <user>",
	Short: "List a user's properties",
	Args:  exactArgs(1),
	RunE:  runUserPropertyList,
}

var userPropertyAddCmd = &cobra.Command{
	Use:   "add <user>",
	Short: "Add a property to a user",
	Example: `  gshell user property add jane --category phone --type work --value "+1 555 0100" --primary
  gshell user property add jane --category website --type custom --custom-type blog --value https://jane.dev`,
	Args: exactArgs(1),
	RunE: runUserPropertyAdd,
}

var userPropertyRemoveCmd = &cobra.Command{
	Use:   "remove <user>",
	Short: "Remove a property, or a whole category with --all",
	Args:  exactArgs(1),
	RunE:  runUserPropertyRemove,
}

func init() {
	userPropertyListCmd.Flags().StringSlice("category", nil, "Only list these categories")

	f := userPropertyAddCmd.Flags()
	f.String("category", "", "Property category")
	f.String("type", "", "Property type, e.g. work, home, custom")
	f.String("custom-type", "", "Type label when --type is custom")
	f.String("value", "", "Property value")
	f.Bool("primary", false, "Mark as the primary entry of its category")
	_ = userPropertyAddCmd.MarkFlagRequired("category")
	_ = userPropertyAddCmd.MarkFlagRequired("value")

	f = userPropertyRemoveCmd.Flags()
	f.String("category", "", "Property category")
	f.String("value", "", "Value of the entry to remove")
	f.Bool("all", false, "Remove every entry of the category")
	f.Bool("force", false, "Do not ask for confirmation")
	_ = userPropertyRemoveCmd.MarkFlagRequired("category")
	userPropertyRemoveCmd.MarkFlagsMutuallyExclusive("value", "all")
	userPropertyRemoveCmd.MarkFlagsOneRequired("value", "all")

	userPropertyCmd.AddCommand(userPropertyListCmd, userPropertyAddCmd, userPropertyRemoveCmd)
	userCmd.AddCommand(userPropertyCmd)
}

func categoryNames() string {
	names := make([]string, 0, len(domain.AllPropertyCategories))
	for _, c := range domain.AllPropertyCategories {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

// parseCategories combines category names into one set. No names selects none.
func parseCategories(names []string) (domain.PropertyCategory, error) {
	set := domain.PropertyNone
	for _, name := range names {
		c, err := domain.ParsePropertyCategory(name)
		if err != nil {
			return domain.PropertyNone, invalidArg("--category", err)
		}
		set |= c
	}
	return set, nil
}

func runUserPropertyList(cmd *cobra.Command, args []string) error {
	names, _ := cmd.Flags().GetStringSlice("category")
	set, err := parseCategories(names)
	if err != nil {
		return err
	}
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}

	props, err := svc.GetUserProperties(cmd.Context(), args[0])
	if err != nil {
		return apiErr(cmd, args[0], err)
	}
	return printer.Print(props.Rows(set))
}

func runUserPropertyAdd(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	name, _ := f.GetString("category")
	category, err := parseCategories([]string{name})
	if err != nil {
		return err
	}
	var p directory.Property
	p.Type, _ = f.GetString("type")
	p.CustomType, _ = f.GetString("custom-type")
	p.Value, _ = f.GetString("value")
	p.Primary, _ = f.GetBool("primary")

	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	target := domain.NormalizeEmail(args[0], svc.Domain())
	if whatIf(fmt.Sprintf("Add %s %q", category, p.Value), target) {
		return nil
	}

	props, err := svc.GetUserProperties(cmd.Context(), args[0])
	if err != nil {
		return apiErr(cmd, target, err)
	}
	if err := props.Add(category, p); err != nil {
		return invalidArg("--value", err)
	}
	if _, err := svc.SaveUserProperties(cmd.Context(), args[0], props); err != nil {
		return apiErr(cmd, target, err)
	}
	return printer.Print(props.Rows(category))
}

func runUserPropertyRemove(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	name, _ := f.GetString("category")
	category, err := parseCategories([]string{name})
	if err != nil {
		return err
	}
	value, _ := f.GetString("value")
	all, _ := f.GetBool("all")
	force, _ := f.GetBool("force")

	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	target := domain.NormalizeEmail(args[0], svc.Domain())
	action := fmt.Sprintf("remove %s %q from", category, value)
	if all {
		action = fmt.Sprintf("remove every %s from", category)
	}

	return destructive(cmd, action, target, force, func() error {
		props, err := svc.GetUserProperties(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if all {
			props.Clear(category)
		} else if err := props.Remove(category, value); err != nil {
			return err
		}
		_, err = svc.SaveUserProperties(cmd.Context(), args[0], props)
		return err
	})
}
