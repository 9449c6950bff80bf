package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

// settingRow is one configuration key and its effective value.
type settingRow struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// TableHeader returns the column names used by TableRow.
func (r settingRow) TableHeader() []string {
	return []string{"Key", "Value"}
}

// TableRow returns the row cells.
func (r settingRow) TableRow() []string {
	return []string{r.Key, r.Value}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change gshell settings",
	Long: `Show and change gshell settings. Keys:
  domain.default        domain used when --domain is not given
  output.format         table, json or yaml
  output.color          auto, always or never
  api.page_size         page size of list requests (1-500)
  ratelimit.directory   Directory API requests per second
  ratelimit.reports     Reports API requests per second
  ratelimit.reseller    Reseller API requests per second
  ratelimit.burst       requests allowed in a burst`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every setting",
	Args:  exactArgs(0),
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one setting",
	Args:  exactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  exactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Restore the default of a setting",
	Args:  exactArgs(1),
	RunE:  runConfigUnset,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration file location",
	Args:  exactArgs(0),
	RunE: func(_ *cobra.Command, _ []string) error {
		printer.Line("%s", services.ConfigPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd, configUnsetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	keys := domain.AllSettingKeys()
	rows := make([]settingRow, 0, len(keys))
	for _, key := range keys {
		value, err := services.Settings.Value(key)
		if err != nil {
			return localErr(cmd, key, err)
		}
		rows = append(rows, settingRow{Key: key, Value: value})
	}
	return printer.Print(rows)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value, err := services.Settings.Value(args[0])
	if err != nil {
		return localErr(cmd, args[0], err)
	}
	if printer.Format() == domain.OutputTable {
		printer.Line("%s", value)
		return nil
	}
	return printer.Print(settingRow{Key: args[0], Value: value})
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if whatIf("Set "+args[0]+" to "+args[1], args[0]) {
		return nil
	}
	if err := services.Settings.Set(args[0], args[1]); err != nil {
		return localErr(cmd, args[0], err)
	}
	printer.Success("%s = %s", args[0], args[1])
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if whatIf("Unset", args[0]) {
		return nil
	}
	if err := services.Settings.Unset(args[0]); err != nil {
		return localErr(cmd, args[0], err)
	}
	printer.Success("%s restored to its default", args[0])
	return nil
}
