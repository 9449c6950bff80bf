package reseller

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

func TestParsePlan(t *testing.T) {
	got, err := ParsePlan("flexible")
	require.NoError(t, err)
	assert.Equal(t, PlanFlexible, got)

	_, err = ParsePlan("MONTHLY")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = ParsePlan("")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSeatsFor(t *testing.T) {
	seats, err := SeatsFor(PlanAnnualYearlyPay, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(20), seats.NumberOfSeats)
	assert.Zero(t, seats.MaximumNumberOfSeats)

	seats, err = SeatsFor(PlanFlexible, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(20), seats.MaximumNumberOfSeats)
	assert.Zero(t, seats.NumberOfSeats)

	_, err = SeatsFor(PlanAnnualMonthlyPay, 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = SeatsFor(PlanTrial, -1)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListSubscriptions(t *testing.T) {
	svc, rec := newTestService(t, `{"subscriptions":[
		{"customerId":"C01","subscriptionId":"S1","skuId":"1010020027","plan":{"planName":"FLEXIBLE"},"seats":{"maximumNumberOfSeats":10},"status":"ACTIVE"},
		{"customerId":"C01","subscriptionId":"S2","skuId":"1010020028","plan":{"planName":"ANNUAL_YEARLY_PAY"},"seats":{"numberOfSeats":5},"status":"ACTIVE"}]}`)

	subs, err := svc.ListSubscriptions(context.Background(), ListSubscriptionsOptions{CustomerID: "C01", CustomerNamePrefix: "cli"})
	require.NoError(t, err)
	require.Len(t, subs, 2)

	req := rec.last(t)
	assert.Equal(t, "C01", req.Query.Get("customerId"))
	assert.Equal(t, "cli", req.Query.Get("customerNamePrefix"))
	assert.Equal(t, "50", req.Query.Get("maxResults"))

	assert.Equal(t, "10", NewSubscriptionRow(subs[0]).TableRow()[4])
	assert.Equal(t, "5", NewSubscriptionRow(subs[1]).TableRow()[4])
}

func TestInsertSubscription(t *testing.T) {
	svc, rec := newTestService(t, "")

	_, err := svc.InsertSubscription(context.Background(), NewSubscription{
		CustomerID: "C01", SkuID: "1010020027", Plan: "annual_monthly_pay", Seats: 15,
		RenewalType: "auto_renew_monthly_pay", PurchaseOrderID: "PO-1",
	})
	require.NoError(t, err)

	req := rec.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.True(t, req.hasSuffix("/customers/C01/subscriptions"))
	assert.Equal(t, map[string]interface{}{"planName": PlanAnnualMonthlyPay}, req.Body["plan"])
	assert.Equal(t, map[string]interface{}{"numberOfSeats": float64(15)}, req.Body["seats"])
	assert.Equal(t, map[string]interface{}{"renewalType": "AUTO_RENEW_MONTHLY_PAY"}, req.Body["renewalSettings"])
	assert.Equal(t, "PO-1", req.Body["purchaseOrderId"])
}

func TestInsertSubscription_Validation(t *testing.T) {
	svc, rec := newTestService(t, "")
	ctx := context.Background()

	_, err := svc.InsertSubscription(ctx, NewSubscription{CustomerID: "C01", SkuID: "x", Plan: "weekly"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.InsertSubscription(ctx, NewSubscription{CustomerID: "C01", SkuID: "x", Plan: PlanFlexible, RenewalType: "never"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.InsertSubscription(ctx, NewSubscription{SkuID: "x", Plan: PlanFlexible})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, rec.count())
}

func TestDeleteSubscription(t *testing.T) {
	svc, rec := newTestService(t, "")

	require.NoError(t, svc.DeleteSubscription(context.Background(), "C01", "S1", "Transfer_To_Direct"))
	req := rec.last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, DeletionTransferToDirect, req.Query.Get("deletionType"))

	err := svc.DeleteSubscription(context.Background(), "C01", "S1", "suspend")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChangeSeats_UsesCurrentPlan(t *testing.T) {
	svc, rec := newTestService(t, `{"subscriptionId":"S1","plan":{"planName":"FLEXIBLE"}}`)

	_, err := svc.ChangeSeats(context.Background(), "C01", "S1", 25)
	require.NoError(t, err)

	require.Equal(t, 2, rec.count())
	req := rec.last(t)
	assert.True(t, req.hasSuffix("/subscriptions/S1/changeSeats"))
	assert.Equal(t, float64(25), req.Body["maximumNumberOfSeats"])
	assert.NotContains(t, req.Body, "numberOfSeats")
}

func TestChangePlan(t *testing.T) {
	svc, rec := newTestService(t, "")

	_, err := svc.ChangePlan(context.Background(), "C01", "S1", ChangePlanRequest{Plan: "annual_yearly_pay", Seats: 10, DealCode: "D1"})
	require.NoError(t, err)

	req := rec.last(t)
	assert.True(t, req.hasSuffix("/subscriptions/S1/changePlan"))
	assert.Equal(t, PlanAnnualYearlyPay, req.Body["planName"])
	assert.Equal(t, map[string]interface{}{"numberOfSeats": float64(10)}, req.Body["seats"])

	_, err = svc.ChangePlan(context.Background(), "C01", "S1", ChangePlanRequest{Plan: PlanAnnualYearlyPay})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubscriptionStateChanges(t *testing.T) {
	svc, rec := newTestService(t, "")
	ctx := context.Background()

	_, err := svc.ChangeRenewalSettings(ctx, "C01", "S1", "cancel")
	require.NoError(t, err)
	assert.Equal(t, "CANCEL", rec.last(t).Body["renewalType"])

	_, err = svc.StartPaidService(ctx, "C01", "S1")
	require.NoError(t, err)
	assert.True(t, rec.last(t).hasSuffix("/subscriptions/S1/startPaidService"))

	_, err = svc.Suspend(ctx, "C01", "S1")
	require.NoError(t, err)
	assert.True(t, rec.last(t).hasSuffix("/subscriptions/S1/suspend"))

	_, err = svc.Activate(ctx, "C01", "S1")
	require.NoError(t, err)
	assert.True(t, rec.last(t).hasSuffix("/subscriptions/S1/activate"))

	_, err = svc.Activate(ctx, "C01", " ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
