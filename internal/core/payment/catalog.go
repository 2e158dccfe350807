package payment

import "github.com/shopspring/decimal"

var pricingPlans = []PricingPlan{
	{
		ID:       "free",
		Name:     "Free",
		Price:    decimal.Zero,
		Currency: defaultCurrency,
		Interval: IntervalMonthly,
		Features: []string{
			"1 location",
			"Daily updates",
			"Basic weather alerts",
			"Email notifications",
		},
		MaxLocations:   1,
		AlertFrequency: []string{"daily"},
	},
	{
		ID:       "basic",
		Name:     "Basic",
		Price:    decimal.RequireFromString("4.99"),
		Currency: defaultCurrency,
		Interval: IntervalMonthly,
		Features: []string{
			"5 locations",
			"Hourly or daily updates",
			"All weather alerts",
			"Email & SMS notifications",
			"Weather history",
		},
		MaxLocations:   5,
		AlertFrequency: []string{"hourly", "daily"},
	},
	{
		ID:          "pro",
		Name:        "Pro",
		Price:       decimal.RequireFromString("9.99"),
		Currency:    defaultCurrency,
		Interval:    IntervalMonthly,
		Recommended: true,
		Features: []string{
			"20 locations",
			"Real-time updates",
			"Advanced weather alerts",
			"Email, SMS & Push notifications",
			"Weather history & forecasts",
			"API access",
			"Priority support",
		},
		MaxLocations:   20,
		AlertFrequency: []string{"hourly", "daily", "weekly"},
	},
	{
		ID:       "enterprise",
		Name:     "Enterprise",
		Price:    decimal.RequireFromString("29.99"),
		Currency: defaultCurrency,
		Interval: IntervalMonthly,
		Features: []string{
			"Unlimited locations",
			"Real-time updates",
			"Custom alert rules",
			"All notification types",
			"Full weather data access",
			"API access with higher limits",
			"Dedicated support",
			"Custom integrations",
		},
		MaxLocations:   UnlimitedQuota,
		AlertFrequency: []string{"hourly", "daily", "weekly"},
	},
}

// Plans returns a copy of the pricing catalog in display order
func Plans() []PricingPlan {
	out := make([]PricingPlan, len(pricingPlans))
	copy(out, pricingPlans)
	return out
}

// FindPlan looks up a catalog entry by id
func FindPlan(id string) (PricingPlan, bool) {
	for _, p := range pricingPlans {
		if p.ID == id {
			return p, true
		}
	}
	return PricingPlan{}, false
}
