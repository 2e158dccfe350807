package subscription

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

const (
	alertProbabilityThreshold   = 0.95
	warningProbabilityThreshold = 0.7
)

// UseCase manages subscriptions and their alerts. Both lists are written
// back to the store in full after every mutation.
type UseCase struct {
	store   ports.CollectionStore
	random  ports.RandomSource
	logger  ports.Logger
	metrics ports.MetricsCollector
	now     func() time.Time

	mu            sync.Mutex
	subscriptions []Subscription
	alerts        []Alert
}

type UseCaseDependencies struct {
	Store   ports.CollectionStore
	Random  ports.RandomSource
	Logger  ports.Logger
	Metrics ports.MetricsCollector
	Now     func() time.Time
}

type AddParams struct {
	LocationName string
	Coordinates  Coordinates
	Email        string
	Frequency    Frequency
	AlertTypes   []AlertType
}

// UpdateParams carries the fields to change; nil fields are left alone
type UpdateParams struct {
	LocationName *string
	Coordinates  *Coordinates
	Email        *string
	Frequency    *Frequency
	AlertTypes   []AlertType
	IsActive     *bool
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Store == nil {
		return nil, errors.NewValidationError("collection store is required")
	}
	if deps.Random == nil {
		return nil, errors.NewValidationError("random source is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &UseCase{
		store:         deps.Store,
		random:        deps.Random,
		logger:        deps.Logger,
		metrics:       deps.Metrics,
		now:           now,
		subscriptions: []Subscription{},
		alerts:        []Alert{},
	}, nil
}

// Load replaces in-memory state with the persisted collections.
// Unreadable collections are logged and treated as empty.
func (uc *UseCase) Load(ctx context.Context) error {
	var subs []Subscription
	if _, err := uc.store.Load(ctx, ports.CollectionSubscriptions, &subs); err != nil {
		uc.logger.Error("Error loading subscriptions", ports.F("error", err))
		subs = nil
	}

	var alerts []Alert
	if _, err := uc.store.Load(ctx, ports.CollectionAlerts, &alerts); err != nil {
		uc.logger.Error("Error loading alerts", ports.F("error", err))
		alerts = nil
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.subscriptions = nonNilSubscriptions(subs)
	uc.alerts = nonNilAlerts(alerts)

	uc.logger.Info("Subscriptions loaded",
		ports.F("subscriptions", len(uc.subscriptions)),
		ports.F("alerts", len(uc.alerts)))
	return nil
}

// Add creates an active subscription and a welcome alert for it.
func (uc *UseCase) Add(ctx context.Context, params AddParams) (*Subscription, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.now().UnixMilli()
	sub := Subscription{
		ID:           "sub_" + uuid.NewString(),
		LocationName: params.LocationName,
		Coordinates:  params.Coordinates,
		Email:        params.Email,
		Frequency:    params.Frequency,
		AlertTypes:   append([]AlertType(nil), params.AlertTypes...),
		IsActive:     true,
		CreatedAt:    now,
	}

	welcome := Alert{
		ID:             "alert_" + uuid.NewString(),
		SubscriptionID: sub.ID,
		Message:        WelcomeMessage(params.LocationName, params.Frequency),
		Severity:       SeverityInfo,
		Timestamp:      now,
	}

	subs := append(cloneSubscriptions(uc.subscriptions), sub)
	alerts := append([]Alert{welcome}, uc.alerts...)

	if err := uc.persist(ctx, subs, alerts); err != nil {
		return nil, fmt.Errorf("add subscription: %w", err)
	}
	uc.subscriptions = subs
	uc.alerts = alerts
	uc.recordAlert(welcome.Severity)

	uc.logger.Info("Subscription added",
		ports.F("subscriptionID", sub.ID),
		ports.F("location", sub.LocationName),
		ports.F("frequency", sub.Frequency.String()))
	return &sub, nil
}

// Remove deletes a subscription and every alert that references it.
func (uc *UseCase) Remove(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.indexOf(id) < 0 {
		return errors.NewNotFoundError("subscription not found")
	}

	subs := make([]Subscription, 0, len(uc.subscriptions))
	for _, s := range uc.subscriptions {
		if s.ID != id {
			subs = append(subs, s)
		}
	}
	alerts := make([]Alert, 0, len(uc.alerts))
	for _, a := range uc.alerts {
		if a.SubscriptionID != id {
			alerts = append(alerts, a)
		}
	}

	if err := uc.persist(ctx, subs, alerts); err != nil {
		return fmt.Errorf("remove subscription: %w", err)
	}
	uc.subscriptions = subs
	uc.alerts = alerts

	uc.logger.Info("Subscription removed", ports.F("subscriptionID", id))
	return nil
}

// Toggle flips the active flag.
func (uc *UseCase) Toggle(ctx context.Context, id string) (*Subscription, error) {
	return uc.mutate(ctx, id, func(s *Subscription) {
		s.IsActive = !s.IsActive
	})
}

// Update applies a partial change and stamps lastUpdate.
func (uc *UseCase) Update(ctx context.Context, id string, params UpdateParams) (*Subscription, error) {
	return uc.mutate(ctx, id, func(s *Subscription) {
		if params.LocationName != nil {
			s.LocationName = *params.LocationName
		}
		if params.Coordinates != nil {
			s.Coordinates = *params.Coordinates
		}
		if params.Email != nil {
			s.Email = *params.Email
		}
		if params.Frequency != nil {
			s.Frequency = *params.Frequency
		}
		if params.AlertTypes != nil {
			s.AlertTypes = append([]AlertType(nil), params.AlertTypes...)
		}
		if params.IsActive != nil {
			s.IsActive = *params.IsActive
		}
		ts := uc.now().UnixMilli()
		s.LastUpdate = &ts
	})
}

func (uc *UseCase) mutate(ctx context.Context, id string, apply func(s *Subscription)) (*Subscription, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx := uc.indexOf(id)
	if idx < 0 {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	subs := cloneSubscriptions(uc.subscriptions)
	apply(&subs[idx])

	if err := uc.saveCollection(ctx, ports.CollectionSubscriptions, subs); err != nil {
		return nil, fmt.Errorf("update subscription: %w", err)
	}
	uc.subscriptions = subs

	updated := subs[idx]
	return &updated, nil
}

// MarkAlertRead sets read on the matching alert only.
func (uc *UseCase) MarkAlertRead(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	alerts := append([]Alert(nil), uc.alerts...)
	found := false
	for i := range alerts {
		if alerts[i].ID == id {
			alerts[i].Read = true
			found = true
			break
		}
	}
	if !found {
		return errors.NewNotFoundError("alert not found")
	}

	if err := uc.saveCollection(ctx, ports.CollectionAlerts, alerts); err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	uc.alerts = alerts
	return nil
}

// ClearAllAlerts empties the alert list.
func (uc *UseCase) ClearAllAlerts(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	alerts := []Alert{}
	if err := uc.saveCollection(ctx, ports.CollectionAlerts, alerts); err != nil {
		return fmt.Errorf("clear alerts: %w", err)
	}
	uc.alerts = alerts
	return nil
}

// CheckForAlerts simulates alert generation: each active subscription gets an
// alert with probability 0.05, a warning 30% of the time.
func (uc *UseCase) CheckForAlerts(ctx context.Context) ([]Alert, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.now().UnixMilli()
	alerts := uc.alerts
	generated := []Alert{}

	for _, sub := range uc.subscriptions {
		if !sub.IsActive {
			continue
		}
		if uc.random.Float64() <= alertProbabilityThreshold {
			continue
		}

		severity := SeverityInfo
		if uc.random.Float64() > warningProbabilityThreshold {
			severity = SeverityWarning
		}

		alert := Alert{
			ID:             "alert_" + uuid.NewString(),
			SubscriptionID: sub.ID,
			Message:        UpdateMessage(sub.LocationName),
			Severity:       severity,
			Timestamp:      now,
		}
		alerts = append([]Alert{alert}, alerts...)
		generated = append(generated, alert)
	}

	if len(generated) == 0 {
		return generated, nil
	}

	if err := uc.saveCollection(ctx, ports.CollectionAlerts, alerts); err != nil {
		return nil, fmt.Errorf("check for alerts: %w", err)
	}
	uc.alerts = alerts
	for _, a := range generated {
		uc.recordAlert(a.Severity)
	}

	uc.logger.Info("Weather alerts generated", ports.F("count", len(generated)))
	return generated, nil
}

func (uc *UseCase) List() []Subscription {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return cloneSubscriptions(uc.subscriptions)
}

func (uc *UseCase) Active() []Subscription {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := []Subscription{}
	for _, s := range uc.subscriptions {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out
}

func (uc *UseCase) Get(id string) (*Subscription, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	idx := uc.indexOf(id)
	if idx < 0 {
		return nil, errors.NewNotFoundError("subscription not found")
	}
	sub := uc.subscriptions[idx]
	return &sub, nil
}

// Count returns the number of subscriptions, active or not.
func (uc *UseCase) Count() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.subscriptions)
}

// Alerts returns alerts newest first.
func (uc *UseCase) Alerts() []Alert {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return append([]Alert{}, uc.alerts...)
}

func (uc *UseCase) Unread() []Alert {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := []Alert{}
	for _, a := range uc.alerts {
		if !a.Read {
			out = append(out, a)
		}
	}
	return out
}

func (uc *UseCase) indexOf(id string) int {
	for i := range uc.subscriptions {
		if uc.subscriptions[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes both collections. If the alerts write fails, the stored
// subscriptions are restored to the committed in-memory list so storage never
// holds one collection without the other. Callers hold uc.mu.
func (uc *UseCase) persist(ctx context.Context, subs []Subscription, alerts []Alert) error {
	if err := uc.saveCollection(ctx, ports.CollectionSubscriptions, subs); err != nil {
		return err
	}
	if err := uc.saveCollection(ctx, ports.CollectionAlerts, alerts); err != nil {
		if rbErr := uc.saveCollection(ctx, ports.CollectionSubscriptions, uc.subscriptions); rbErr != nil {
			uc.logger.Error("Failed to restore subscriptions after alerts write failed",
				ports.F("error", rbErr))
		}
		return err
	}
	return nil
}

func (uc *UseCase) saveCollection(ctx context.Context, name string, value interface{}) error {
	if err := uc.store.Save(ctx, name, value); err != nil {
		uc.logger.Error("Failed to persist collection", ports.F("collection", name), ports.F("error", err))
		return err
	}
	return nil
}

func (uc *UseCase) recordAlert(severity Severity) {
	if uc.metrics != nil {
		uc.metrics.RecordAlert(string(severity))
	}
}

func cloneSubscriptions(in []Subscription) []Subscription {
	out := make([]Subscription, len(in))
	copy(out, in)
	return out
}

func nonNilSubscriptions(in []Subscription) []Subscription {
	if in == nil {
		return []Subscription{}
	}
	return in
}

func nonNilAlerts(in []Alert) []Alert {
	if in == nil {
		return []Alert{}
	}
	return in
}
