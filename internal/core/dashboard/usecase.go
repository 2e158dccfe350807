package dashboard

import (
	"context"
	"fmt"
	"sync"

	"weathermap.app/internal/core/layer"
	"weathermap.app/internal/core/mapview"
	"weathermap.app/internal/core/payment"
	"weathermap.app/internal/core/subscription"
	"weathermap.app/internal/core/timeline"
	"weathermap.app/internal/core/weather"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

const (
	msgLocationQuota = "You have reached the location limit of your plan. Upgrade to add more locations."
	msgNotMounted    = "dashboard is not mounted"
	msgFrequencyPlan = "Your plan does not include %s updates. Upgrade to choose them."
)

// UseCase wires the controllers together the way the dashboard screen does
// and owns the recurring alert-check and playback tasks.
type UseCase struct {
	weather       *weather.UseCase
	mapView       *mapview.UseCase
	layers        *layer.Registry
	subscriptions *subscription.UseCase
	payments      *payment.UseCase
	timeline      *timeline.Controller
	logger        ports.Logger

	alertTask    ports.RecurringTask
	playbackTask ports.RecurringTask

	mu      sync.Mutex
	ui      UIState
	mounted bool
	baseCtx context.Context
}

type UseCaseDependencies struct {
	Weather       *weather.UseCase
	Map           *mapview.UseCase
	Layers        *layer.Registry
	Subscriptions *subscription.UseCase
	Payments      *payment.UseCase
	Timeline      *timeline.Controller
	Scheduler     ports.TaskScheduler
	Config        ports.ConfigProvider
	Logger        ports.Logger
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	switch {
	case deps.Weather == nil:
		return nil, errors.NewValidationError("weather controller is required")
	case deps.Map == nil:
		return nil, errors.NewValidationError("map controller is required")
	case deps.Layers == nil:
		return nil, errors.NewValidationError("layer registry is required")
	case deps.Subscriptions == nil:
		return nil, errors.NewValidationError("subscription controller is required")
	case deps.Payments == nil:
		return nil, errors.NewValidationError("payment controller is required")
	case deps.Timeline == nil:
		return nil, errors.NewValidationError("timeline controller is required")
	case deps.Scheduler == nil:
		return nil, errors.NewValidationError("scheduler is required")
	case deps.Config == nil:
		return nil, errors.NewValidationError("config is required")
	case deps.Logger == nil:
		return nil, errors.NewValidationError("logger is required")
	}

	uc := &UseCase{
		weather:       deps.Weather,
		mapView:       deps.Map,
		layers:        deps.Layers,
		subscriptions: deps.Subscriptions,
		payments:      deps.Payments,
		timeline:      deps.Timeline,
		logger:        deps.Logger,
		ui:            newUIState(),
		baseCtx:       context.Background(),
	}

	schedulerConfig := deps.Config.GetSchedulerConfig()
	uc.alertTask = deps.Scheduler.NewTask(alertCheckTaskName, schedulerConfig.AlertCheckInterval, uc.checkAlerts)
	uc.playbackTask = deps.Scheduler.NewTask(playbackTaskName, schedulerConfig.TimelineTickInterval, uc.advanceTimeline)

	uc.timeline.OnTimeChange(uc.TimeChanged)
	return uc, nil
}

// Mount loads persisted state and starts the alert check. ctx bounds every
// recurring task until Unmount.
func (uc *UseCase) Mount(ctx context.Context) error {
	uc.mu.Lock()
	if uc.mounted {
		uc.mu.Unlock()
		return nil
	}
	uc.mounted = true
	uc.baseCtx = ctx
	uc.mu.Unlock()

	if err := uc.subscriptions.Load(ctx); err != nil {
		return fmt.Errorf("load subscriptions: %w", err)
	}
	if err := uc.payments.Load(ctx); err != nil {
		return fmt.Errorf("load payments: %w", err)
	}

	if err := uc.alertTask.Start(ctx); err != nil {
		return fmt.Errorf("start alert check: %w", err)
	}

	uc.logger.Info("Dashboard mounted")
	return nil
}

// Unmount stops every recurring task. Safe to call more than once.
func (uc *UseCase) Unmount() {
	// cleared first so a concurrent Play cannot restart playback
	uc.mu.Lock()
	wasMounted := uc.mounted
	uc.mounted = false
	uc.baseCtx = context.Background()
	uc.mu.Unlock()

	uc.alertTask.Stop()
	uc.playbackTask.Stop()
	uc.timeline.SetPlaying(false)

	if wasMounted {
		uc.logger.Info("Dashboard unmounted")
	}
}

func (uc *UseCase) IsMounted() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.mounted
}

func (uc *UseCase) checkAlerts(ctx context.Context) {
	if _, err := uc.subscriptions.CheckForAlerts(ctx); err != nil {
		uc.logger.Error("Alert check failed", ports.F("error", err))
	}
}

func (uc *UseCase) advanceTimeline(context.Context) {
	slot := uc.timeline.Advance()
	uc.logger.Debug("Timeline tick", ports.F("index", slot.Index))
}

// Search fetches weather for a city and recenters the map on success.
func (uc *UseCase) Search(ctx context.Context, city string) (*weather.Snapshot, error) {
	snapshot, err := uc.weather.FetchByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	uc.mapView.RecenterOnSnapshot(snapshot)
	return snapshot, nil
}

func (uc *UseCase) CenterToUser(ctx context.Context) (*weather.Snapshot, error) {
	return uc.mapView.CenterToUser(ctx)
}

func (uc *UseCase) MapClick(ctx context.Context, lat, lon float64) (*weather.Snapshot, error) {
	return uc.mapView.HandleClick(ctx, lat, lon)
}

// TimeChanged stamps every tile URL with ts and updates the tint.
func (uc *UseCase) TimeChanged(ts int64) {
	uc.layers.ApplyTimestamp(ts)
	tint := uc.timeline.Tint(ts)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ui.SelectedTimestamp = &ts
	uc.ui.Tint = &tint
}

// Play starts timeline playback; one slot per tick, wrapping at the end.
// The dashboard must be mounted.
func (uc *UseCase) Play() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if !uc.mounted {
		return errors.NewValidationError(msgNotMounted)
	}

	if uc.playbackTask.IsRunning() {
		uc.timeline.SetPlaying(true)
		return nil
	}
	if err := uc.playbackTask.Start(uc.baseCtx); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}
	uc.timeline.SetPlaying(true)
	uc.logger.Debug("Timeline playback started")
	return nil
}

func (uc *UseCase) Pause() {
	uc.timeline.SetPlaying(false)
	uc.playbackTask.Stop()
	uc.logger.Debug("Timeline playback paused")
}

// TogglePlay flips playback and reports whether it is now playing.
func (uc *UseCase) TogglePlay() (bool, error) {
	if uc.timeline.IsPlaying() {
		uc.Pause()
		return false, nil
	}
	if err := uc.Play(); err != nil {
		return false, err
	}
	return true, nil
}

func (uc *UseCase) SetTab(tab Tab) error {
	if !tab.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("unknown tab %q", tab))
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ui.ActiveTab = tab
	return nil
}

func (uc *UseCase) OpenModal(modal Modal) error {
	return uc.setModal(modal, true)
}

func (uc *UseCase) CloseModal(modal Modal) error {
	if err := uc.setModal(modal, false); err != nil {
		return err
	}
	if modal == ModalPayment {
		uc.mu.Lock()
		uc.ui.SelectedPlanID = nil
		uc.mu.Unlock()
	}
	return nil
}

func (uc *UseCase) setModal(modal Modal, open bool) error {
	if !modal.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("unknown modal %q", modal))
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ui.OpenModals[modal] = open
	return nil
}

// Subscribe adds a subscription if the current plan has room for another location
// and offers the requested alert frequency.
func (uc *UseCase) Subscribe(ctx context.Context, params subscription.AddParams) (*subscription.Subscription, error) {
	if !uc.payments.CanAddLocation(uc.subscriptions.Count()) {
		return nil, errors.NewValidationError(msgLocationQuota)
	}
	if params.Frequency.IsValid() && !uc.payments.CanUseFrequency(params.Frequency.String()) {
		return nil, errors.NewValidationError(fmt.Sprintf(msgFrequencyPlan, params.Frequency))
	}

	sub, err := uc.subscriptions.Add(ctx, params)
	if err != nil {
		return nil, err
	}
	_ = uc.setModal(ModalSubscriptionForm, false)
	return sub, nil
}

// Checkout selects a plan and opens the payment dialog.
func (uc *UseCase) Checkout(planID string) (*payment.PricingPlan, error) {
	plan, ok := payment.FindPlan(planID)
	if !ok {
		return nil, errors.NewInvalidPlanError("Invalid plan selected")
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	id := plan.ID
	uc.ui.SelectedPlanID = &id
	uc.ui.OpenModals[ModalPricing] = false
	uc.ui.OpenModals[ModalPayment] = true
	return &plan, nil
}

// Pay charges the selected plan and closes the payment dialog on success.
func (uc *UseCase) Pay(ctx context.Context, methodID string) (*payment.Payment, error) {
	uc.mu.Lock()
	planID := ""
	if uc.ui.SelectedPlanID != nil {
		planID = *uc.ui.SelectedPlanID
	}
	uc.mu.Unlock()

	p, err := uc.payments.ProcessPayment(ctx, planID, methodID)
	if err != nil {
		return p, err
	}

	uc.mu.Lock()
	uc.ui.OpenModals[ModalPayment] = false
	uc.ui.SelectedPlanID = nil
	uc.mu.Unlock()
	return p, nil
}

func (uc *UseCase) UI() UIState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.ui.clone()
}

// View assembles the full view model.
func (uc *UseCase) View() View {
	weatherState := uc.weather.State()

	iconURL := ""
	if weatherState.Snapshot != nil {
		if cond, ok := weatherState.Snapshot.PrimaryCondition(); ok {
			iconURL = uc.weather.IconURL(cond.Icon)
		}
	}

	paymentView := PaymentView{
		Methods:    uc.payments.PaymentMethods(),
		Payments:   uc.payments.Payments(),
		Processing: uc.payments.Processing(),
		Error:      uc.payments.LastError(),
	}
	if plan, ok := uc.payments.UserPlan(); ok {
		paymentView.UserPlan = plan
	}
	if current, ok := uc.payments.CurrentPlan(); ok {
		paymentView.CurrentPlan = current
	}
	if method, ok := uc.payments.DefaultPaymentMethod(); ok {
		paymentView.DefaultMethod = method
	}

	return View{
		Weather:       weatherState,
		IconURL:       iconURL,
		Map:           uc.mapView.State(),
		Markers:       uc.mapView.Markers(),
		Layers:        uc.layers.List(),
		EnabledLayers: uc.layers.EnabledLayers(),
		Timeline: TimelineView{
			Slots:         uc.timeline.Slots(),
			SelectedIndex: uc.timeline.SelectedIndex(),
			Playing:       uc.timeline.IsPlaying(),
		},
		Subscriptions: uc.subscriptions.List(),
		Alerts:        uc.subscriptions.Alerts(),
		UnreadCount:   len(uc.subscriptions.Unread()),
		Payment:       paymentView,
		UI:            uc.UI(),
	}
}

func (uc *UseCase) Weather() *weather.UseCase            { return uc.weather }
func (uc *UseCase) Map() *mapview.UseCase                { return uc.mapView }
func (uc *UseCase) Layers() *layer.Registry              { return uc.layers }
func (uc *UseCase) Subscriptions() *subscription.UseCase { return uc.subscriptions }
func (uc *UseCase) Payments() *payment.UseCase           { return uc.payments }
func (uc *UseCase) Timeline() *timeline.Controller       { return uc.timeline }
