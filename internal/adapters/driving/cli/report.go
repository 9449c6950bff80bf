package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	reportsapi "google.golang.org/api/admin/reports/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google/reports"
)

// channelRow describes an open push notification channel.
type channelRow struct {
	ID         string `json:"id" yaml:"id"`
	ResourceID string `json:"resource_id" yaml:"resource_id"`
	Address    string `json:"address" yaml:"address"`
	Expiration string `json:"expiration,omitempty" yaml:"expiration,omitempty"`
}

// TableHeader returns the column names used by TableRow.
func (r channelRow) TableHeader() []string {
	return []string{"Channel ID", "Resource ID", "Address", "Expiration"}
}

// TableRow returns the row cells.
func (r channelRow) TableRow() []string {
	return []string{r.ID, r.ResourceID, r.Address, r.Expiration}
}

var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"reports"},
	Short:   "Read audit activities and usage reports",
}

var reportActivityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Audit log activities",
	Long: `Audit log activities of one application, such as admin, login, drive,
token, groups, mobile or saml.`,
}

var reportActivityListCmd = &cobra.Command{
	Use:   "list <application>",
	Short: "List activities",
	Example: `  gshell report activity list login --user jane --start 2024-05-01T00:00:00Z
  gshell report activity list admin --event CREATE_USER --max 50`,
	Args: exactArgs(1),
	RunE: runReportActivityList,
}

var reportActivityWatchCmd = &cobra.Command{
	Use:   "watch <application>",
	Short: "Open a web-hook channel for new activities",
	Args:  exactArgs(1),
	RunE:  runReportActivityWatch,
}

var reportChannelCmd = &cobra.Command{
	Use:   "channel",
	Short: "Manage push notification channels",
}

var reportChannelStopCmd = &cobra.Command{
	Use:   "stop <channel-id> <resource-id>",
	Short: "Stop a push notification channel",
	Args:  exactArgs(2),
	RunE:  runReportChannelStop,
}

var reportUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Usage reports",
}

var reportUsageCustomerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Show the account-wide usage report of one day",
	Args:  exactArgs(0),
	RunE:  runReportUsageCustomer,
}

var reportUsageUserCmd = &cobra.Command{
	Use:   "user [user]",
	Short: "Show per-user usage reports of one day (default: all users)",
	Args:  rangeArgs(0, 1),
	RunE:  runReportUsageUser,
}

func addActivityFlags(f *pflag.FlagSet) {
	f.String("user", "", "Only activities of this user (default: all)")
	f.String("event", "", "Only this event name")
	f.String("filters", "", "Event parameter filters, e.g. doc_id==12345")
	f.String("actor-ip", "", "Only activities from this IP address")
	f.String("start", "", "Start time (RFC 3339)")
	f.String("end", "", "End time (RFC 3339)")
	f.String("org-unit-id", "", "Only activities of users in this org unit ID")
}

func activityOptions(cmd *cobra.Command, application string) reports.ActivityOptions {
	f := cmd.Flags()
	opts := reports.ActivityOptions{Application: application}
	opts.UserKey, _ = f.GetString("user")
	opts.EventName, _ = f.GetString("event")
	opts.Filters, _ = f.GetString("filters")
	opts.ActorIPAddress, _ = f.GetString("actor-ip")
	opts.StartTime, _ = f.GetString("start")
	opts.EndTime, _ = f.GetString("end")
	opts.OrgUnitID, _ = f.GetString("org-unit-id")
	return opts
}

func init() {
	addActivityFlags(reportActivityListCmd.Flags())
	reportActivityListCmd.Flags().Int("max", 0, "Stop after this many activities (0 lists all)")

	f := reportActivityWatchCmd.Flags()
	addActivityFlags(f)
	f.String("address", "", "HTTPS URL notifications are sent to")
	f.String("token", "", "Token echoed back in every notification")
	f.Duration("ttl", 0, "Channel lifetime, e.g. 6h (default: API default)")
	_ = reportActivityWatchCmd.MarkFlagRequired("address")

	f = reportUsageCustomerCmd.Flags()
	f.String("date", "", "Report date (YYYY-MM-DD)")
	f.String("parameters", "", "Comma-separated app:parameter list")
	_ = reportUsageCustomerCmd.MarkFlagRequired("date")

	f = reportUsageUserCmd.Flags()
	f.String("date", "", "Report date (YYYY-MM-DD)")
	f.String("filters", "", "Parameter filters, e.g. accounts:last_login_time>2024-01-01T00:00:00.000Z")
	f.String("parameters", "", "Comma-separated app:parameter list")
	f.String("org-unit-id", "", "Only users in this org unit ID")
	f.Int("max", 0, "Stop after this many reports (0 lists all)")
	_ = reportUsageUserCmd.MarkFlagRequired("date")

	reportActivityCmd.AddCommand(reportActivityListCmd, reportActivityWatchCmd)
	reportChannelCmd.AddCommand(reportChannelStopCmd)
	reportUsageCmd.AddCommand(reportUsageCustomerCmd, reportUsageUserCmd)
	reportCmd.AddCommand(reportActivityCmd, reportChannelCmd, reportUsageCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportActivityList(cmd *cobra.Command, args []string) error {
	svc, err := reportsClient(cmd)
	if err != nil {
		return err
	}
	opts := activityOptions(cmd, args[0])
	opts.Max, _ = cmd.Flags().GetInt("max")

	items, err := svc.ListActivities(cmd.Context(), opts)
	if err != nil {
		return apiErr(cmd, args[0], err)
	}
	return printer.Print(reports.ActivityRows(items))
}

func runReportActivityWatch(cmd *cobra.Command, args []string) error {
	svc, err := reportsClient(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	req := reports.WatchRequest{ActivityOptions: activityOptions(cmd, args[0])}
	req.Address, _ = f.GetString("address")
	req.Token, _ = f.GetString("token")
	req.TTL, _ = f.GetDuration("ttl")

	if whatIf("Watch activities, notifying "+req.Address, args[0]) {
		return nil
	}
	ch, err := svc.Watch(cmd.Context(), req)
	if err != nil {
		return apiErr(cmd, args[0], err)
	}

	row := channelRow{ID: ch.Id, ResourceID: ch.ResourceId, Address: ch.Address}
	if ch.Expiration > 0 {
		row.Expiration = time.UnixMilli(ch.Expiration).UTC().Format(time.RFC3339)
	}
	printer.Info("Stop the channel with: gshell report channel stop %s %s", ch.Id, ch.ResourceId)
	return printer.Print(row)
}

func runReportChannelStop(cmd *cobra.Command, args []string) error {
	svc, err := reportsClient(cmd)
	if err != nil {
		return err
	}
	return change(cmd, "Stop channel", args[0], func() error {
		if err := svc.StopChannel(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		printer.Success("Stopped channel %s", args[0])
		return nil
	})
}

func runReportUsageCustomer(cmd *cobra.Command, _ []string) error {
	svc, err := reportsClient(cmd)
	if err != nil {
		return err
	}
	date, _ := cmd.Flags().GetString("date")
	parameters, _ := cmd.Flags().GetString("parameters")

	items, err := svc.CustomerUsage(cmd.Context(), date, parameters)
	if err != nil {
		return apiErr(cmd, date, err)
	}
	return printUsage(items)
}

func runReportUsageUser(cmd *cobra.Command, args []string) error {
	svc, err := reportsClient(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	opts := reports.UserUsageOptions{UserKey: reports.DefaultUserKey}
	if len(args) == 1 {
		opts.UserKey = args[0]
	}
	opts.Date, _ = f.GetString("date")
	opts.Filters, _ = f.GetString("filters")
	opts.Parameters, _ = f.GetString("parameters")
	opts.OrgUnitID, _ = f.GetString("org-unit-id")
	opts.Max, _ = f.GetInt("max")

	items, err := svc.UserUsage(cmd.Context(), opts)
	if err != nil {
		return apiErr(cmd, fmt.Sprintf("%s/%s", opts.UserKey, opts.Date), err)
	}
	return printUsage(items)
}

func printUsage(items []*reportsapi.UsageReport) error {
	return printer.Print(reports.UsageRows(items))
}
