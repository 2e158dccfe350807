package payment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlans_Catalog(t *testing.T) {
	plans := Plans()
	require.Len(t, plans, 4)

	ids := []string{}
	for _, p := range plans {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"free", "basic", "pro", "enterprise"}, ids)

	assert.True(t, plans[0].Price.IsZero())
	assert.True(t, decimal.RequireFromString("4.99").Equal(plans[1].Price))
	assert.True(t, decimal.RequireFromString("9.99").Equal(plans[2].Price))
	assert.True(t, decimal.RequireFromString("29.99").Equal(plans[3].Price))

	assert.True(t, plans[2].Recommended)
	assert.True(t, plans[3].Unlimited())
	assert.Equal(t, 1, plans[0].MaxLocations)
}

func TestPlans_ReturnsCopy(t *testing.T) {
	plans := Plans()
	plans[0].Name = "changed"

	p, ok := FindPlan("free")
	require.True(t, ok)
	assert.Equal(t, "Free", p.Name)
}

func TestFindPlan_Unknown(t *testing.T) {
	_, ok := FindPlan("platinum")
	assert.False(t, ok)
}

func TestPricingPlan_AllowsFrequency(t *testing.T) {
	free, _ := FindPlan("free")
	pro, _ := FindPlan("pro")

	assert.True(t, free.AllowsFrequency("daily"))
	assert.False(t, free.AllowsFrequency("hourly"))
	assert.True(t, pro.AllowsFrequency("weekly"))
}

func TestUserPlan_DaysRemaining(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	plan := newPaidPlan("pro", "pay_1", now)

	assert.Equal(t, 30, plan.DaysRemaining(now))
	assert.Equal(t, 0, plan.DaysRemaining(now.Add(31*24*time.Hour)))
}

func TestPayment_JSONLayout(t *testing.T) {
	paidAt := int64(1709294400000)
	p := Payment{
		ID:            "pay_1",
		UserID:        DefaultUserID,
		PlanID:        "basic",
		Amount:        decimal.RequireFromString("4.99"),
		Currency:      "USD",
		Status:        StatusCompleted,
		PaymentMethod: MethodCard,
		TransactionID: "txn_1",
		CreatedAt:     paidAt,
		PaidAt:        &paidAt,
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "default_user", raw["userId"])
	assert.Equal(t, "card", raw["paymentMethod"])
	assert.Equal(t, "txn_1", raw["transactionId"])
	assert.Contains(t, raw, "paidAt")

	var back Payment
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, p.Amount.Equal(back.Amount))
}
