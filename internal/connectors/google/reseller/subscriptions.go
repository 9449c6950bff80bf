package reseller

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	reseller "google.golang.org/api/reseller/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

// Plan names accepted by the Reseller API.
const (
	PlanAnnualMonthlyPay = "ANNUAL_MONTHLY_PAY"
	PlanAnnualYearlyPay  = "ANNUAL_YEARLY_PAY"
	PlanFlexible         = "FLEXIBLE"
	PlanTrial            = "TRIAL"
	PlanFree             = "FREE"
)

// Deletion types accepted by subscriptions.delete.
const (
	DeletionCancel           = "cancel"
	DeletionTransferToDirect = "transfer_to_direct"
)

// Renewal types accepted by subscriptions.changeRenewalSettings.
var renewalTypes = []string{
	"AUTO_RENEW_MONTHLY_PAY",
	"AUTO_RENEW_YEARLY_PAY",
	"CANCEL",
	"RENEW_CURRENT_USERS_MONTHLY_PAY",
	"RENEW_CURRENT_USERS_YEARLY_PAY",
	"SWITCH_TO_PAY_AS_YOU_GO",
}

// ParsePlan validates a plan name case-insensitively.
func ParsePlan(plan string) (string, error) {
	return oneOf("plan", plan, PlanAnnualMonthlyPay, PlanAnnualYearlyPay, PlanFlexible, PlanTrial, PlanFree)
}

// ParseRenewalType validates a renewal type case-insensitively.
func ParseRenewalType(renewal string) (string, error) {
	return oneOf("renewal type", renewal, renewalTypes...)
}

// IsAnnualPlan reports whether plan commits to a fixed seat count.
func IsAnnualPlan(plan string) bool {
	return plan == PlanAnnualMonthlyPay || plan == PlanAnnualYearlyPay
}

// SeatsFor builds the seat object for plan: annual plans use
// numberOfSeats, the others use maximumNumberOfSeats.
func SeatsFor(plan string, seats int64) (*reseller.Seats, error) {
	if seats < 0 {
		return nil, fmt.Errorf("%w: seats must not be negative", domain.ErrInvalidInput)
	}
	if IsAnnualPlan(plan) {
		if seats == 0 {
			return nil, fmt.Errorf("%w: annual plans need a seat count", domain.ErrInvalidInput)
		}
		return &reseller.Seats{NumberOfSeats: seats}, nil
	}
	return &reseller.Seats{MaximumNumberOfSeats: seats}, nil
}

// ListSubscriptionsOptions shapes a subscriptions.list request.
type ListSubscriptionsOptions struct {
	CustomerID         string
	CustomerNamePrefix string
	AuthToken          string
	// Max stops after this many subscriptions. 0 lists all.
	Max int
}

// NewSubscription describes a subscription to create.
type NewSubscription struct {
	CustomerID      string
	SkuID           string
	Plan            string
	Seats           int64
	RenewalType     string
	PurchaseOrderID string
	DealCode        string
	AuthToken       string
}

// SubscriptionRow is a subscription flattened for display.
type SubscriptionRow struct {
	CustomerID     string `json:"customer_id" yaml:"customer_id"`
	CustomerDomain string `json:"customer_domain,omitempty" yaml:"customer_domain,omitempty"`
	SubscriptionID string `json:"subscription_id" yaml:"subscription_id"`
	SkuID          string `json:"sku_id" yaml:"sku_id"`
	SkuName        string `json:"sku_name,omitempty" yaml:"sku_name,omitempty"`
	Plan           string `json:"plan" yaml:"plan"`
	Seats          int64  `json:"seats" yaml:"seats"`
	MaximumSeats   int64  `json:"maximum_seats" yaml:"maximum_seats"`
	LicensedSeats  int64  `json:"licensed_seats" yaml:"licensed_seats"`
	RenewalType    string `json:"renewal_type,omitempty" yaml:"renewal_type,omitempty"`
	Status         string `json:"status" yaml:"status"`
}

// NewSubscriptionRow flattens a subscription.
func NewSubscriptionRow(sub *reseller.Subscription) SubscriptionRow {
	row := SubscriptionRow{
		CustomerID: sub.CustomerId, CustomerDomain: sub.CustomerDomain, SubscriptionID: sub.SubscriptionId,
		SkuID: sub.SkuId, SkuName: sub.SkuName, Status: sub.Status,
	}
	if sub.Plan != nil {
		row.Plan = sub.Plan.PlanName
	}
	if sub.Seats != nil {
		row.Seats = sub.Seats.NumberOfSeats
		row.MaximumSeats = sub.Seats.MaximumNumberOfSeats
		row.LicensedSeats = sub.Seats.LicensedNumberOfSeats
	}
	if sub.RenewalSettings != nil {
		row.RenewalType = sub.RenewalSettings.RenewalType
	}
	return row
}

// TableHeader returns the column names used by TableRow.
func (r SubscriptionRow) TableHeader() []string {
	return []string{"Customer", "Subscription", "SKU", "Plan", "Seats", "Status"}
}

// TableRow returns the row cells.
func (r SubscriptionRow) TableRow() []string {
	seats := r.Seats
	if !IsAnnualPlan(r.Plan) {
		seats = r.MaximumSeats
	}
	customer := r.CustomerDomain
	if customer == "" {
		customer = r.CustomerID
	}
	sku := r.SkuName
	if sku == "" {
		sku = r.SkuID
	}
	return []string{customer, r.SubscriptionID, sku, r.Plan, strconv.FormatInt(seats, 10), r.Status}
}

// ListSubscriptions lists subscriptions, optionally of one customer.
func (s *Service) ListSubscriptions(ctx context.Context, opts ListSubscriptionsOptions) ([]*reseller.Subscription, error) {
	call := s.api.Subscriptions.List().MaxResults(google.PageSize(s.pageSize, opts.Max))
	target := "all"
	if opts.CustomerID != "" {
		target = opts.CustomerID
		call.CustomerId(opts.CustomerID)
	}
	if opts.CustomerNamePrefix != "" {
		call.CustomerNamePrefix(opts.CustomerNamePrefix)
	}
	if opts.AuthToken != "" {
		call.CustomerAuthToken(opts.AuthToken)
	}

	var subs []*reseller.Subscription
	err := google.Paged(ctx, s.limiter, apiName, "subscriptions.list", target, func() error {
		return call.Pages(ctx, func(page *reseller.Subscriptions) error {
			subs = append(subs, page.Subscriptions...)
			return google.PageGate(ctx, s.limiter, len(subs), opts.Max)
		})
	})
	if err != nil {
		return nil, err
	}
	return google.Truncate(subs, opts.Max), nil
}

// GetSubscription fetches one subscription.
func (s *Service) GetSubscription(ctx context.Context, customerID, subscriptionID string) (*reseller.Subscription, error) {
	if err := requireIDs(customerID, subscriptionID); err != nil {
		return nil, err
	}
	return google.Call(ctx, s.limiter, apiName, "subscriptions.get", customerID+"/"+subscriptionID,
		s.api.Subscriptions.Get(customerID, subscriptionID).Context(ctx).Do)
}

// InsertSubscription creates a subscription.
func (s *Service) InsertSubscription(ctx context.Context, ns NewSubscription) (*reseller.Subscription, error) {
	if err := required("customer", ns.CustomerID); err != nil {
		return nil, err
	}
	if err := required("sku", ns.SkuID); err != nil {
		return nil, err
	}
	plan, err := ParsePlan(ns.Plan)
	if err != nil {
		return nil, err
	}
	seats, err := SeatsFor(plan, ns.Seats)
	if err != nil {
		return nil, err
	}

	body := &reseller.Subscription{
		CustomerId:      ns.CustomerID,
		SkuId:           ns.SkuID,
		Plan:            &reseller.SubscriptionPlan{PlanName: plan},
		Seats:           seats,
		PurchaseOrderId: ns.PurchaseOrderID,
		DealCode:        ns.DealCode,
	}
	if ns.RenewalType != "" {
		renewal, err := ParseRenewalType(ns.RenewalType)
		if err != nil {
			return nil, err
		}
		body.RenewalSettings = &reseller.RenewalSettings{RenewalType: renewal}
	}

	call := s.api.Subscriptions.Insert(ns.CustomerID, body)
	if ns.AuthToken != "" {
		call.CustomerAuthToken(ns.AuthToken)
	}
	return google.Call(ctx, s.limiter, apiName, "subscriptions.insert", ns.CustomerID+"/"+ns.SkuID, call.Context(ctx).Do)
}

// DeleteSubscription cancels a subscription or transfers it to direct billing.
func (s *Service) DeleteSubscription(ctx context.Context, customerID, subscriptionID, deletionType string) error {
	if err := requireIDs(customerID, subscriptionID); err != nil {
		return err
	}
	dt, err := oneOf("deletion type", deletionType, DeletionCancel, DeletionTransferToDirect)
	if err != nil {
		return err
	}
	return google.Exec(ctx, s.limiter, apiName, "subscriptions.delete", customerID+"/"+subscriptionID,
		s.api.Subscriptions.Delete(customerID, subscriptionID, dt).Context(ctx).Do)
}

// ChangeSeats sets the seat count. The subscription's plan decides whether
// numberOfSeats or maximumNumberOfSeats is sent.
func (s *Service) ChangeSeats(ctx context.Context, customerID, subscriptionID string, seats int64) (*reseller.Subscription, error) {
	current, err := s.GetSubscription(ctx, customerID, subscriptionID)
	if err != nil {
		return nil, err
	}
	plan := ""
	if current.Plan != nil {
		plan = current.Plan.PlanName
	}
	body, err := SeatsFor(plan, seats)
	if err != nil {
		return nil, err
	}
	return google.Call(ctx, s.limiter, apiName, "subscriptions.changeSeats", customerID+"/"+subscriptionID,
		s.api.Subscriptions.ChangeSeats(customerID, subscriptionID, body).Context(ctx).Do)
}

// ChangePlanRequest describes a plan change.
type ChangePlanRequest struct {
	Plan            string
	Seats           int64
	PurchaseOrderID string
	DealCode        string
}

// ChangePlan moves a subscription to another plan.
func (s *Service) ChangePlan(ctx context.Context, customerID, subscriptionID string, req ChangePlanRequest) (*reseller.Subscription, error) {
	if err := requireIDs(customerID, subscriptionID); err != nil {
		return nil, err
	}
	plan, err := ParsePlan(req.Plan)
	if err != nil {
		return nil, err
	}
	body := &reseller.ChangePlanRequest{
		PlanName:        plan,
		PurchaseOrderId: req.PurchaseOrderID,
		DealCode:        req.DealCode,
	}
	if req.Seats > 0 || IsAnnualPlan(plan) {
		if body.Seats, err = SeatsFor(plan, req.Seats); err != nil {
			return nil, err
		}
	}
	return google.Call(ctx, s.limiter, apiName, "subscriptions.changePlan", customerID+"/"+subscriptionID,
		s.api.Subscriptions.ChangePlan(customerID, subscriptionID, body).Context(ctx).Do)
}

// ChangeRenewalSettings sets the renewal type of an annual subscription.
func (s *Service) ChangeRenewalSettings(ctx context.Context, customerID, subscriptionID, renewalType string) (*reseller.Subscription, error) {
	if err := requireIDs(customerID, subscriptionID); err != nil {
		return nil, err
	}
	renewal, err := ParseRenewalType(renewalType)
	if err != nil {
		return nil, err
	}
	body := &reseller.RenewalSettings{RenewalType: renewal}
	return google.Call(ctx, s.limiter, apiName, "subscriptions.changeRenewalSettings", customerID+"/"+subscriptionID,
		s.api.Subscriptions.ChangeRenewalSettings(customerID, subscriptionID, body).Context(ctx).Do)
}

// StartPaidService converts a trial subscription to paid.
func (s *Service) StartPaidService(ctx context.Context, customerID, subscriptionID string) (*reseller.Subscription, error) {
	if err := requireIDs(customerID, subscriptionID); err != nil {
		return nil, err
	}
	return google.Call(ctx, s.limiter, apiName, "subscriptions.startPaidService", customerID+"/"+subscriptionID,
		s.api.Subscriptions.StartPaidService(customerID, subscriptionID).Context(ctx).Do)
}

// Suspend suspends an active subscription.
func (s *Service) Suspend(ctx context.Context, customerID, subscriptionID string) (*reseller.Subscription, error) {
	if err := requireIDs(customerID, subscriptionID); err != nil {
		return nil, err
	}
	return google.Call(ctx, s.limiter, apiName, "subscriptions.suspend", customerID+"/"+subscriptionID,
		s.api.Subscriptions.Suspend(customerID, subscriptionID).Context(ctx).Do)
}

// Activate reactivates a suspended subscription.
func (s *Service) Activate(ctx context.Context, customerID, subscriptionID string) (*reseller.Subscription, error) {
	if err := requireIDs(customerID, subscriptionID); err != nil {
		return nil, err
	}
	return google.Call(ctx, s.limiter, apiName, "subscriptions.activate", customerID+"/"+subscriptionID,
		s.api.Subscriptions.Activate(customerID, subscriptionID).Context(ctx).Do)
}

func requireIDs(customerID, subscriptionID string) error {
	if err := required("customer", customerID); err != nil {
		return err
	}
	if strings.TrimSpace(subscriptionID) == "" {
		return fmt.Errorf("%w: subscription id is required", domain.ErrInvalidInput)
	}
	return nil
}
