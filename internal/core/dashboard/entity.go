package dashboard

import (
	"weathermap.app/internal/core/layer"
	"weathermap.app/internal/core/mapview"
	"weathermap.app/internal/core/payment"
	"weathermap.app/internal/core/subscription"
	"weathermap.app/internal/core/timeline"
	"weathermap.app/internal/core/weather"
)

const (
	alertCheckTaskName = "alert-check"
	playbackTaskName   = "timeline-playback"
)

// Tab is the active sidebar section
type Tab string

const (
	TabLayers        Tab = "layers"
	TabSubscriptions Tab = "subscriptions"
	TabAlerts        Tab = "alerts"
)

func (t Tab) IsValid() bool {
	return t == TabLayers || t == TabSubscriptions || t == TabAlerts
}

// Modal names a dialog the dashboard can show
type Modal string

const (
	ModalPricing                Modal = "pricing"
	ModalPayment                Modal = "payment"
	ModalAddPaymentMethod       Modal = "add-payment-method"
	ModalSubscriptionForm       Modal = "subscription-form"
	ModalSubscriptionManagement Modal = "subscription-management"
)

var allModals = []Modal{
	ModalPricing,
	ModalPayment,
	ModalAddPaymentMethod,
	ModalSubscriptionForm,
	ModalSubscriptionManagement,
}

func (m Modal) IsValid() bool {
	for _, known := range allModals {
		if m == known {
			return true
		}
	}
	return false
}

// UIState is transient presentation state. Nothing here is persisted.
type UIState struct {
	ActiveTab         Tab            `json:"activeTab"`
	OpenModals        map[Modal]bool `json:"openModals"`
	SelectedPlanID    *string        `json:"selectedPlanId"`
	SelectedTimestamp *int64         `json:"selectedTimestamp"`
	Tint              *timeline.Tint `json:"tint"`
}

func newUIState() UIState {
	modals := make(map[Modal]bool, len(allModals))
	for _, m := range allModals {
		modals[m] = false
	}
	return UIState{ActiveTab: TabLayers, OpenModals: modals}
}

func (s UIState) clone() UIState {
	out := s
	out.OpenModals = make(map[Modal]bool, len(s.OpenModals))
	for k, v := range s.OpenModals {
		out.OpenModals[k] = v
	}
	if s.SelectedPlanID != nil {
		id := *s.SelectedPlanID
		out.SelectedPlanID = &id
	}
	if s.SelectedTimestamp != nil {
		ts := *s.SelectedTimestamp
		out.SelectedTimestamp = &ts
	}
	if s.Tint != nil {
		tint := *s.Tint
		out.Tint = &tint
	}
	return out
}

// TimelineView is the timeline part of the view model
type TimelineView struct {
	Slots         []timeline.Slot `json:"slots"`
	SelectedIndex int             `json:"selectedIndex"`
	Playing       bool            `json:"playing"`
}

// PaymentView is the billing part of the view model
type PaymentView struct {
	UserPlan      *payment.UserPlan    `json:"userPlan"`
	CurrentPlan   *payment.PricingPlan `json:"currentPlan"`
	Methods       []payment.Method     `json:"paymentMethods"`
	DefaultMethod *payment.Method      `json:"defaultPaymentMethod"`
	Payments      []payment.Payment    `json:"payments"`
	Processing    bool                 `json:"processing"`
	Error         *string              `json:"error"`
}

// View is everything needed to render the dashboard at one instant
type View struct {
	Weather       weather.State               `json:"weather"`
	IconURL       string                      `json:"iconUrl,omitempty"`
	Map           mapview.State               `json:"map"`
	Markers       []mapview.Marker            `json:"markers"`
	Layers        []layer.Config              `json:"layers"`
	EnabledLayers []layer.Config              `json:"enabledLayers"`
	Timeline      TimelineView                `json:"timeline"`
	Subscriptions []subscription.Subscription `json:"subscriptions"`
	Alerts        []subscription.Alert        `json:"alerts"`
	UnreadCount   int                         `json:"unreadCount"`
	Payment       PaymentView                 `json:"payment"`
	UI            UIState                     `json:"ui"`
}
