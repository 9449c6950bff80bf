package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gshell/internal/connectors/google/directory"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

var schemaCmd = &cobra.Command{
	Use:     "schema",
	Aliases: []string{"schemas"},
	Short:   "Manage custom user schemas",
	Long: `Manage custom user schemas and their fields.

Fields are given as name:TYPE[:ACCESS][:multi][:indexed|noindex][:min..max], e.g.
  EmployeeNumber:INT64:ADMINS_AND_SELF:indexed:1..99999
  Projects:STRING:multi`,
}

var schemaGetCmd = &cobra.Command{
	Use:   "get <schema>",
	Short: "Show one schema",
	Args:  exactArgs(1),
	RunE:  runSchemaGet,
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schemas",
	Args:  exactArgs(0),
	RunE:  runSchemaList,
}

var schemaNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a schema",
	Args:  exactArgs(1),
	RunE:  runSchemaNew,
}

var schemaRemoveCmd = &cobra.Command{
	Use:   "remove <schema>",
	Short: "Delete a schema",
	Args:  exactArgs(1),
	RunE:  runSchemaRemove,
}

var schemaFieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Manage the fields of a schema",
}

var schemaFieldListCmd = &cobra.Command{
	Use:   "list <schema>",
	Short: "List the fields of a schema",
	Args:  exactArgs(1),
	RunE:  runSchemaFieldList,
}

var schemaFieldAddCmd = &cobra.Command{
	Use:   "add <schema> <field-spec>",
	Short: "Add a field to a schema",
	Args:  exactArgs(2),
	RunE:  runSchemaFieldAdd,
}

var schemaFieldRemoveCmd = &cobra.Command{
	Use:   "remove <schema> <field>",
	Short: "Remove a field from a schema",
	Args:  exactArgs(2),
	RunE:  runSchemaFieldRemove,
}

func init() {
	f := schemaNewCmd.Flags()
	f.String("display-name", "", "Display name")
	f.StringArray("field", nil, "Field spec (repeatable)")
	_ = schemaNewCmd.MarkFlagRequired("field")

	schemaRemoveCmd.Flags().Bool("force", false, "Do not ask for confirmation")
	schemaFieldAddCmd.Flags().String("display-name", "", "Field display name")
	schemaFieldRemoveCmd.Flags().Bool("force", false, "Do not ask for confirmation")

	schemaFieldCmd.AddCommand(schemaFieldListCmd, schemaFieldAddCmd, schemaFieldRemoveCmd)
	schemaCmd.AddCommand(schemaGetCmd, schemaListCmd, schemaNewCmd, schemaRemoveCmd, schemaFieldCmd)
	rootCmd.AddCommand(schemaCmd)
}

func runSchemaGet(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	sc, err := svc.GetSchema(cmd.Context(), args[0])
	if err != nil {
		return apiErr(cmd, args[0], err)
	}
	return printer.Print(directory.NewSchemaRow(sc))
}

func runSchemaList(cmd *cobra.Command, _ []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	schemas, err := svc.ListSchemas(cmd.Context())
	if err != nil {
		return apiErr(cmd, svc.CustomerID(), err)
	}
	rows := make([]directory.SchemaRow, 0, len(schemas))
	for _, sc := range schemas {
		rows = append(rows, directory.NewSchemaRow(sc))
	}
	return printer.Print(rows)
}

func runSchemaNew(cmd *cobra.Command, args []string) error {
	specs, _ := cmd.Flags().GetStringArray("field")
	fields, err := domain.NewSchemaFieldCollection()
	if err != nil {
		return invalidArg("--field", err)
	}
	for _, spec := range specs {
		field, err := domain.ParseSchemaFieldSpec(spec)
		if err != nil {
			return invalidArg(spec, err)
		}
		if err := fields.Add(field); err != nil {
			return invalidArg(spec, err)
		}
	}
	displayName, _ := cmd.Flags().GetString("display-name")

	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	if whatIf("Create schema", args[0]) {
		return nil
	}
	sc, err := svc.InsertSchema(cmd.Context(), args[0], displayName, fields)
	if err != nil {
		return apiErr(cmd, args[0], err)
	}
	return printer.Print(directory.SchemaFieldRows(sc))
}

func runSchemaRemove(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")

	return destructive(cmd, "remove schema", args[0], force, func() error {
		return svc.DeleteSchema(cmd.Context(), args[0])
	})
}

func runSchemaFieldList(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	sc, err := svc.GetSchema(cmd.Context(), args[0])
	if err != nil {
		return apiErr(cmd, args[0], err)
	}
	return printer.Print(directory.SchemaFieldRows(sc))
}

func runSchemaFieldAdd(cmd *cobra.Command, args []string) error {
	field, err := domain.ParseSchemaFieldSpec(args[1])
	if err != nil {
		return invalidArg(args[1], err)
	}
	field.DisplayName, _ = cmd.Flags().GetString("display-name")

	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	if whatIf("Add field "+field.FieldName, args[0]) {
		return nil
	}
	sc, err := svc.AddSchemaField(cmd.Context(), args[0], field)
	if err != nil {
		return apiErr(cmd, args[0], err)
	}
	return printer.Print(directory.SchemaFieldRows(sc))
}

func runSchemaFieldRemove(cmd *cobra.Command, args []string) error {
	svc, err := directoryClient(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")

	return destructive(cmd, "remove field "+args[1]+" from", args[0], force, func() error {
		_, err := svc.RemoveSchemaField(cmd.Context(), args[0], args[1])
		return err
	})
}
