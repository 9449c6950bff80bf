package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	resellerapi "google.golang.org/api/reseller/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google/reseller"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

var subscriptionCmd = &cobra.Command{
	Use:     "subscription",
	Aliases: []string{"sub"},
	Short:   "Manage reseller subscriptions",
	Long: `Manage reseller subscriptions. Subscriptions are addressed by customer ID
(or primary domain) and subscription ID.

Plans: ANNUAL_MONTHLY_PAY, ANNUAL_YEARLY_PAY, FLEXIBLE, TRIAL, FREE.`,
}

var subscriptionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscriptions",
	Args:  exactArgs(0),
	RunE:  runSubscriptionList,
}

var subscriptionGetCmd = &cobra.Command{
	Use:   "get <customer> <subscription>",
	Short: "Show one subscription",
	Args:  exactArgs(2),
	RunE:  runSubscriptionGet,
}

var subscriptionNewCmd = &cobra.Command{
	Use:   "new <customer> <sku>",
	Short: "Create a subscription",
	Args:  exactArgs(2),
	RunE:  runSubscriptionNew,
}

var subscriptionRemoveCmd = &cobra.Command{
	Use:   "remove <customer> <subscription>",
	Short: "Cancel a subscription or transfer it to direct billing",
	Args:  exactArgs(2),
	RunE:  runSubscriptionRemove,
}

var subscriptionSeatsCmd = &cobra.Command{
	Use:   "seats <customer> <subscription> <count>",
	Short: "Change the seat count",
	Args:  exactArgs(3),
	RunE:  runSubscriptionSeats,
}

var subscriptionPlanCmd = &cobra.Command{
	Use:   "plan <customer> <subscription> <plan>",
	Short: "Move a subscription to another plan",
	Args:  exactArgs(3),
	RunE:  runSubscriptionPlan,
}

var subscriptionRenewalCmd = &cobra.Command{
	Use:   "renewal <customer> <subscription> <renewal-type>",
	Short: "Change the renewal settings of an annual subscription",
	Args:  exactArgs(3),
	RunE:  runSubscriptionRenewal,
}

var subscriptionStartPaidCmd = &cobra.Command{
	Use:   "start-paid <customer> <subscription>",
	Short: "Convert a trial subscription to paid",
	Args:  exactArgs(2),
	RunE:  runSubscriptionStartPaid,
}

var subscriptionSuspendCmd = &cobra.Command{
	Use:   "suspend <customer> <subscription>",
	Short: "Suspend a subscription",
	Args:  exactArgs(2),
	RunE:  runSubscriptionSuspend,
}

var subscriptionActivateCmd = &cobra.Command{
	Use:   "activate <customer> <subscription>",
	Short: "Reactivate a suspended subscription",
	Args:  exactArgs(2),
	RunE:  runSubscriptionActivate,
}

func init() {
	f := subscriptionListCmd.Flags()
	f.String("customer", "", "Only list subscriptions of this customer")
	f.String("name-prefix", "", "Only list customers whose domain starts with this")
	f.String("auth-token", "", "Customer transfer token")
	f.Int("max", 0, "Stop after this many subscriptions (0 lists all)")

	f = subscriptionNewCmd.Flags()
	f.String("plan", reseller.PlanFlexible, "Plan name")
	f.Int64("seats", 0, "Seat count (required for annual plans)")
	f.String("renewal", "", "Renewal type for annual plans")
	f.String("purchase-order", "", "Purchase order ID")
	f.String("deal-code", "", "Deal code")
	f.String("auth-token", "", "Customer transfer token")

	f = subscriptionRemoveCmd.Flags()
	f.String("deletion-type", reseller.DeletionCancel, "cancel or transfer_to_direct")
	f.Bool("force", false, "Do not ask for confirmation")

	f = subscriptionPlanCmd.Flags()
	f.Int64("seats", 0, "Seat count for the new plan")
	f.String("purchase-order", "", "Purchase order ID")
	f.String("deal-code", "", "Deal code")

	subscriptionSuspendCmd.Flags().Bool("force", false, "Do not ask for confirmation")

	subscriptionCmd.AddCommand(subscriptionListCmd, subscriptionGetCmd, subscriptionNewCmd,
		subscriptionRemoveCmd, subscriptionSeatsCmd, subscriptionPlanCmd, subscriptionRenewalCmd,
		subscriptionStartPaidCmd, subscriptionSuspendCmd, subscriptionActivateCmd)
	resellerCmd.AddCommand(subscriptionCmd)
}

func subscriptionTarget(args []string) string {
	return args[0] + "/" + args[1]
}

func runSubscriptionList(cmd *cobra.Command, _ []string) error {
	svc, err := resellerClient(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	var opts reseller.ListSubscriptionsOptions
	opts.CustomerID, _ = f.GetString("customer")
	opts.CustomerNamePrefix, _ = f.GetString("name-prefix")
	opts.AuthToken, _ = f.GetString("auth-token")
	opts.Max, _ = f.GetInt("max")

	subs, err := svc.ListSubscriptions(cmd.Context(), opts)
	if err != nil {
		return apiErr(cmd, opts.CustomerID, err)
	}
	rows := make([]reseller.SubscriptionRow, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, reseller.NewSubscriptionRow(sub))
	}
	return printer.Print(rows)
}

func runSubscriptionGet(cmd *cobra.Command, args []string) error {
	svc, err := resellerClient(cmd)
	if err != nil {
		return err
	}
	sub, err := svc.GetSubscription(cmd.Context(), args[0], args[1])
	if err != nil {
		return apiErr(cmd, subscriptionTarget(args), err)
	}
	return printer.Print(reseller.NewSubscriptionRow(sub))
}

func runSubscriptionNew(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	ns := reseller.NewSubscription{CustomerID: args[0], SkuID: args[1]}
	plan, _ := f.GetString("plan")
	plan, err := reseller.ParsePlan(plan)
	if err != nil {
		return invalidArg("--plan", err)
	}
	ns.Plan = plan
	ns.Seats, _ = f.GetInt64("seats")
	ns.RenewalType, _ = f.GetString("renewal")
	ns.PurchaseOrderID, _ = f.GetString("purchase-order")
	ns.DealCode, _ = f.GetString("deal-code")
	ns.AuthToken, _ = f.GetString("auth-token")

	svc, err := resellerClient(cmd)
	if err != nil {
		return err
	}
	if whatIf(fmt.Sprintf("Create %s subscription of %s", ns.Plan, ns.SkuID), args[0]) {
		return nil
	}
	sub, err := svc.InsertSubscription(cmd.Context(), ns)
	if err != nil {
		return apiErr(cmd, subscriptionTarget(args), err)
	}
	return printer.Print(reseller.NewSubscriptionRow(sub))
}

func runSubscriptionRemove(cmd *cobra.Command, args []string) error {
	deletionType, _ := cmd.Flags().GetString("deletion-type")
	force, _ := cmd.Flags().GetBool("force")
	svc, err := resellerClient(cmd)
	if err != nil {
		return err
	}

	action := "cancel subscription"
	if deletionType == reseller.DeletionTransferToDirect {
		action = "transfer to direct billing subscription"
	}
	return destructive(cmd, action, subscriptionTarget(args), force, func() error {
		return svc.DeleteSubscription(cmd.Context(), args[0], args[1], deletionType)
	})
}

func runSubscriptionSeats(cmd *cobra.Command, args []string) error {
	seats, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return invalidArg(args[2], fmt.Errorf("%w: seat count must be a number", domain.ErrInvalidInput))
	}
	return subscriptionChange(cmd, args, fmt.Sprintf("Set seats to %d", seats),
		func(ctx context.Context, svc *reseller.Service) (*resellerapi.Subscription, error) {
			return svc.ChangeSeats(ctx, args[0], args[1], seats)
		})
}

func runSubscriptionPlan(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	req := reseller.ChangePlanRequest{Plan: args[2]}
	req.Seats, _ = f.GetInt64("seats")
	req.PurchaseOrderID, _ = f.GetString("purchase-order")
	req.DealCode, _ = f.GetString("deal-code")

	return subscriptionChange(cmd, args, "Change plan to "+args[2],
		func(ctx context.Context, svc *reseller.Service) (*resellerapi.Subscription, error) {
			return svc.ChangePlan(ctx, args[0], args[1], req)
		})
}

func runSubscriptionRenewal(cmd *cobra.Command, args []string) error {
	return subscriptionChange(cmd, args, "Change renewal to "+args[2],
		func(ctx context.Context, svc *reseller.Service) (*resellerapi.Subscription, error) {
			return svc.ChangeRenewalSettings(ctx, args[0], args[1], args[2])
		})
}

func runSubscriptionStartPaid(cmd *cobra.Command, args []string) error {
	return subscriptionChange(cmd, args, "Start paid service",
		func(ctx context.Context, svc *reseller.Service) (*resellerapi.Subscription, error) {
			return svc.StartPaidService(ctx, args[0], args[1])
		})
}

func runSubscriptionActivate(cmd *cobra.Command, args []string) error {
	return subscriptionChange(cmd, args, "Activate",
		func(ctx context.Context, svc *reseller.Service) (*resellerapi.Subscription, error) {
			return svc.Activate(ctx, args[0], args[1])
		})
}

func runSubscriptionSuspend(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	svc, err := resellerClient(cmd)
	if err != nil {
		return err
	}

	var sub *resellerapi.Subscription
	err = destructive(cmd, "suspend subscription", subscriptionTarget(args), force, func() error {
		var err error
		sub, err = svc.Suspend(cmd.Context(), args[0], args[1])
		return err
	})
	if err != nil || sub == nil {
		return err
	}
	return printer.Print(reseller.NewSubscriptionRow(sub))
}

// subscriptionChange runs a subscription write and prints the result.
func subscriptionChange(cmd *cobra.Command, args []string, action string,
	do func(context.Context, *reseller.Service) (*resellerapi.Subscription, error),
) error {
	svc, err := resellerClient(cmd)
	if err != nil {
		return err
	}
	target := subscriptionTarget(args)
	if whatIf(action, target) {
		return nil
	}
	sub, err := do(cmd.Context(), svc)
	if err != nil {
		return apiErr(cmd, target, err)
	}
	return printer.Print(reseller.NewSubscriptionRow(sub))
}
