package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultUserID   = "default_user"
	FreePlanID      = "free"
	UnlimitedQuota  = -1
	paidPlanPeriod  = 30 * 24 * time.Hour
	freePlanPeriod  = 365 * 24 * time.Hour
	defaultCurrency = "USD"
)

type MethodType string

const (
	MethodCard   MethodType = "card"
	MethodPayPal MethodType = "paypal"
	MethodCrypto MethodType = "crypto"
)

func (m MethodType) IsValid() bool {
	return m == MethodCard || m == MethodPayPal || m == MethodCrypto
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanCancelled PlanStatus = "cancelled"
	PlanExpired   PlanStatus = "expired"
	PlanTrial     PlanStatus = "trial"
)

type BillingInterval string

const (
	IntervalMonthly BillingInterval = "monthly"
	IntervalYearly  BillingInterval = "yearly"
)

// PricingPlan is a read-only catalog entry
type PricingPlan struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Currency       string          `json:"currency"`
	Interval       BillingInterval `json:"interval"`
	Features       []string        `json:"features"`
	MaxLocations   int             `json:"maxLocations"`
	AlertFrequency []string        `json:"alertFrequency"`
	Recommended    bool            `json:"recommended,omitempty"`
}

// Unlimited reports whether the plan has no location quota
func (p PricingPlan) Unlimited() bool {
	return p.MaxLocations == UnlimitedQuota
}

// AllowsFrequency reports whether subscriptions on this plan may use the frequency
func (p PricingPlan) AllowsFrequency(frequency string) bool {
	for _, f := range p.AlertFrequency {
		if f == frequency {
			return true
		}
	}
	return false
}

// Payment is one entry of the append-only payment log. Timestamps are epoch milliseconds.
type Payment struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	PlanID        string          `json:"planId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        Status          `json:"status"`
	PaymentMethod MethodType      `json:"paymentMethod"`
	TransactionID string          `json:"transactionId"`
	CreatedAt     int64           `json:"createdAt"`
	PaidAt        *int64          `json:"paidAt,omitempty"`
}

// Method is a stored payment instrument
type Method struct {
	ID          string     `json:"id"`
	Type        MethodType `json:"type"`
	Last4       string     `json:"last4,omitempty"`
	Brand       string     `json:"brand,omitempty"`
	ExpiryMonth int        `json:"expiryMonth,omitempty"`
	ExpiryYear  int        `json:"expiryYear,omitempty"`
	IsDefault   bool       `json:"isDefault"`
}

// UserPlan is the single current plan of the client
type UserPlan struct {
	UserID        string     `json:"userId"`
	PlanID        string     `json:"planId"`
	Status        PlanStatus `json:"status"`
	StartDate     int64      `json:"startDate"`
	EndDate       int64      `json:"endDate"`
	AutoRenew     bool       `json:"autoRenew"`
	LastPaymentID string     `json:"lastPaymentId,omitempty"`
}

// DaysRemaining returns whole days until EndDate, never negative
func (p UserPlan) DaysRemaining(now time.Time) int {
	remaining := time.UnixMilli(p.EndDate).Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Hours() / 24)
}

func newFreePlan(now time.Time) UserPlan {
	return UserPlan{
		UserID:    DefaultUserID,
		PlanID:    FreePlanID,
		Status:    PlanActive,
		StartDate: now.UnixMilli(),
		EndDate:   now.Add(freePlanPeriod).UnixMilli(),
		AutoRenew: false,
	}
}

func newPaidPlan(planID, paymentID string, now time.Time) UserPlan {
	return UserPlan{
		UserID:        DefaultUserID,
		PlanID:        planID,
		Status:        PlanActive,
		StartDate:     now.UnixMilli(),
		EndDate:       now.Add(paidPlanPeriod).UnixMilli(),
		AutoRenew:     true,
		LastPaymentID: paymentID,
	}
}
