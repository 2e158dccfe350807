package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

const successProbabilityThreshold = 0.05

const (
	msgInvalidPlan     = "Invalid plan selected"
	msgInvalidMethod   = "Invalid payment method"
	msgPaymentDeclined = "Payment failed. Please try again."
)

// UseCase simulates checkout against the pricing catalog and keeps the
// payment log, stored payment methods and the current user plan.
type UseCase struct {
	store   ports.CollectionStore
	random  ports.RandomSource
	logger  ports.Logger
	metrics ports.MetricsCollector
	delay   time.Duration
	now     func() time.Time

	mu         sync.Mutex
	payments   []Payment
	methods    []Method
	plan       *UserPlan
	processing bool
	lastError  *string
}

type UseCaseDependencies struct {
	Store   ports.CollectionStore
	Random  ports.RandomSource
	Config  ports.ConfigProvider
	Logger  ports.Logger
	Metrics ports.MetricsCollector
	Now     func() time.Time
}

// MethodParams describes a payment method to store
type MethodParams struct {
	Type        MethodType
	Last4       string
	Brand       string
	ExpiryMonth int
	ExpiryYear  int
	IsDefault   bool
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Store == nil {
		return nil, errors.NewValidationError("collection store is required")
	}
	if deps.Random == nil {
		return nil, errors.NewValidationError("random source is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config provider is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &UseCase{
		store:    deps.Store,
		random:   deps.Random,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		delay:    deps.Config.GetPaymentConfig().ProcessingDelay,
		now:      now,
		payments: []Payment{},
		methods:  []Method{},
	}, nil
}

// Load restores persisted payment state. Without a stored plan the client
// starts on the free plan, which is written back immediately.
func (uc *UseCase) Load(ctx context.Context) error {
	var payments []Payment
	if _, err := uc.store.Load(ctx, ports.CollectionPayments, &payments); err != nil {
		uc.logger.Error("Error loading payments", ports.F("error", err))
		payments = nil
	}

	var methods []Method
	if _, err := uc.store.Load(ctx, ports.CollectionPaymentMethods, &methods); err != nil {
		uc.logger.Error("Error loading payment methods", ports.F("error", err))
		methods = nil
	}

	var plan UserPlan
	found, err := uc.store.Load(ctx, ports.CollectionUserPlan, &plan)
	if err != nil {
		uc.logger.Error("Error loading user plan", ports.F("error", err))
		found = false
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.payments = payments
	if uc.payments == nil {
		uc.payments = []Payment{}
	}
	uc.methods = methods
	if uc.methods == nil {
		uc.methods = []Method{}
	}

	if !found {
		plan = newFreePlan(uc.now())
		if err := uc.saveCollection(ctx, ports.CollectionUserPlan, plan); err != nil {
			uc.logger.Warn("Default plan kept in memory only", ports.F("error", err))
		}
	}
	uc.plan = &plan

	uc.logger.Info("Payment state loaded",
		ports.F("payments", len(uc.payments)),
		ports.F("methods", len(uc.methods)),
		ports.F("plan", plan.PlanID))
	return nil
}

// ProcessPayment charges the plan price to a stored method. The outcome is
// simulated: after the processing delay a draw above 0.05 succeeds.
func (uc *UseCase) ProcessPayment(ctx context.Context, planID, methodID string) (*Payment, error) {
	plan, ok := FindPlan(planID)
	if !ok {
		return nil, uc.fail(errors.NewInvalidPlanError(msgInvalidPlan))
	}

	uc.mu.Lock()
	method, ok := uc.findMethod(methodID)
	if !ok {
		uc.mu.Unlock()
		return nil, uc.fail(errors.NewInvalidPaymentMethodError(msgInvalidMethod))
	}
	uc.processing = true
	uc.lastError = nil
	uc.mu.Unlock()

	defer func() {
		uc.mu.Lock()
		uc.processing = false
		uc.mu.Unlock()
	}()

	uc.logger.Info("Processing payment",
		ports.F("planID", plan.ID),
		ports.F("methodType", string(method.Type)))

	if err := uc.wait(ctx); err != nil {
		return nil, uc.fail(err)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.now()
	success := uc.random.Float64() > successProbabilityThreshold

	payment := Payment{
		ID:            "pay_" + uuid.NewString(),
		UserID:        DefaultUserID,
		PlanID:        plan.ID,
		Amount:        plan.Price,
		Currency:      plan.Currency,
		Status:        StatusFailed,
		PaymentMethod: method.Type,
		TransactionID: "txn_" + uuid.NewString(),
		CreatedAt:     now.UnixMilli(),
	}
	if success {
		payment.Status = StatusCompleted
		paidAt := now.UnixMilli()
		payment.PaidAt = &paidAt
	}

	payments := append([]Payment{payment}, uc.payments...)
	if err := uc.saveCollection(ctx, ports.CollectionPayments, payments); err != nil {
		uc.setError(err)
		return nil, fmt.Errorf("process payment: %w", err)
	}
	uc.payments = payments
	uc.recordPayment(plan.ID, payment.Status)

	if !success {
		uc.logger.Warn("Payment declined",
			ports.F("paymentID", payment.ID),
			ports.F("planID", plan.ID))
		err := errors.NewPaymentDeclinedError(msgPaymentDeclined)
		uc.setError(err)
		return &payment, err
	}

	userPlan := newPaidPlan(plan.ID, payment.ID, now)
	if err := uc.saveCollection(ctx, ports.CollectionUserPlan, userPlan); err != nil {
		uc.setError(err)
		return &payment, fmt.Errorf("activate plan: %w", err)
	}
	uc.plan = &userPlan

	uc.logger.Info("Payment completed",
		ports.F("paymentID", payment.ID),
		ports.F("planID", plan.ID),
		ports.F("amount", payment.Amount.StringFixed(2)))
	return &payment, nil
}

func (uc *UseCase) wait(ctx context.Context) error {
	if uc.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(uc.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// AddPaymentMethod stores a method. The first method, or one added as
// default, becomes the only default.
func (uc *UseCase) AddPaymentMethod(ctx context.Context, params MethodParams) (*Method, error) {
	if !params.Type.IsValid() {
		return nil, errors.NewValidationError("unsupported payment method type")
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	method := Method{
		ID:          "pm_" + uuid.NewString(),
		Type:        params.Type,
		Last4:       params.Last4,
		Brand:       params.Brand,
		ExpiryMonth: params.ExpiryMonth,
		ExpiryYear:  params.ExpiryYear,
	}

	methods := cloneMethods(uc.methods)
	if len(methods) == 0 || params.IsDefault {
		for i := range methods {
			methods[i].IsDefault = false
		}
		method.IsDefault = true
	}
	methods = append(methods, method)

	if err := uc.saveCollection(ctx, ports.CollectionPaymentMethods, methods); err != nil {
		return nil, fmt.Errorf("add payment method: %w", err)
	}
	uc.methods = methods

	uc.logger.Info("Payment method added",
		ports.F("methodID", method.ID),
		ports.F("type", string(method.Type)),
		ports.F("default", method.IsDefault))
	return &method, nil
}

// RemovePaymentMethod deletes a method. Removing the default leaves the
// remaining methods without one.
func (uc *UseCase) RemovePaymentMethod(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, ok := uc.findMethod(id); !ok {
		return errors.NewNotFoundError("payment method not found")
	}

	methods := make([]Method, 0, len(uc.methods))
	for _, m := range uc.methods {
		if m.ID != id {
			methods = append(methods, m)
		}
	}

	if err := uc.saveCollection(ctx, ports.CollectionPaymentMethods, methods); err != nil {
		return fmt.Errorf("remove payment method: %w", err)
	}
	uc.methods = methods

	uc.logger.Info("Payment method removed", ports.F("methodID", id))
	return nil
}

func (uc *UseCase) SetDefaultPaymentMethod(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, ok := uc.findMethod(id); !ok {
		return errors.NewNotFoundError("payment method not found")
	}

	methods := cloneMethods(uc.methods)
	for i := range methods {
		methods[i].IsDefault = methods[i].ID == id
	}

	if err := uc.saveCollection(ctx, ports.CollectionPaymentMethods, methods); err != nil {
		return fmt.Errorf("set default payment method: %w", err)
	}
	uc.methods = methods
	return nil
}

// CancelSubscription stops renewal of the current plan. It stays usable until EndDate.
func (uc *UseCase) CancelSubscription(ctx context.Context) (*UserPlan, error) {
	return uc.updatePlan(ctx, "cancel subscription", func(p *UserPlan) error {
		p.Status = PlanCancelled
		p.AutoRenew = false
		return nil
	})
}

// ReactivateSubscription resumes a cancelled plan. Other states are left unchanged.
func (uc *UseCase) ReactivateSubscription(ctx context.Context) (*UserPlan, error) {
	return uc.updatePlan(ctx, "reactivate subscription", func(p *UserPlan) error {
		if p.Status != PlanCancelled {
			return errors.NewValidationError("only a cancelled subscription can be reactivated")
		}
		p.Status = PlanActive
		p.AutoRenew = true
		return nil
	})
}

func (uc *UseCase) updatePlan(ctx context.Context, op string, apply func(p *UserPlan) error) (*UserPlan, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.plan == nil {
		return nil, errors.NewNotFoundError("no active plan")
	}

	plan := *uc.plan
	if err := apply(&plan); err != nil {
		return nil, err
	}

	if err := uc.saveCollection(ctx, ports.CollectionUserPlan, plan); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	uc.plan = &plan

	uc.logger.Info("User plan updated",
		ports.F("planID", plan.PlanID),
		ports.F("status", string(plan.Status)))
	result := plan
	return &result, nil
}

// CurrentPlan resolves the user plan against the catalog.
func (uc *UseCase) CurrentPlan() (*PricingPlan, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.plan == nil {
		return nil, false
	}
	p, ok := FindPlan(uc.plan.PlanID)
	if !ok {
		return nil, false
	}
	return &p, true
}

// CanAddLocation reports whether another subscription fits the plan quota.
func (uc *UseCase) CanAddLocation(currentCount int) bool {
	plan, ok := uc.CurrentPlan()
	if !ok {
		return false
	}
	if plan.Unlimited() {
		return true
	}
	return currentCount < plan.MaxLocations
}

// CanUseFrequency reports whether the plan offers alerts at the given frequency.
func (uc *UseCase) CanUseFrequency(frequency string) bool {
	plan, ok := uc.CurrentPlan()
	if !ok {
		return false
	}
	return plan.AllowsFrequency(frequency)
}

// Payments returns the payment log newest first.
func (uc *UseCase) Payments() []Payment {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return append([]Payment{}, uc.payments...)
}

func (uc *UseCase) PaymentMethods() []Method {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return cloneMethods(uc.methods)
}

func (uc *UseCase) DefaultPaymentMethod() (*Method, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, m := range uc.methods {
		if m.IsDefault {
			method := m
			return &method, true
		}
	}
	return nil, false
}

func (uc *UseCase) UserPlan() (*UserPlan, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.plan == nil {
		return nil, false
	}
	plan := *uc.plan
	return &plan, true
}

func (uc *UseCase) Plans() []PricingPlan {
	return Plans()
}

// Processing reports whether a payment is waiting on the processing delay.
func (uc *UseCase) Processing() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.processing
}

// LastError returns the message of the last failed payment attempt, if any.
func (uc *UseCase) LastError() *string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.lastError == nil {
		return nil
	}
	msg := *uc.lastError
	return &msg
}

func (uc *UseCase) ClearError() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.lastError = nil
}

func (uc *UseCase) fail(err error) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.setError(err)
	return err
}

// setError must be called with mu held.
func (uc *UseCase) setError(err error) {
	msg := errors.MessageOf(err)
	uc.lastError = &msg
}

func (uc *UseCase) findMethod(id string) (Method, bool) {
	for _, m := range uc.methods {
		if m.ID == id {
			return m, true
		}
	}
	return Method{}, false
}

func (uc *UseCase) saveCollection(ctx context.Context, name string, value interface{}) error {
	if err := uc.store.Save(ctx, name, value); err != nil {
		uc.logger.Error("Failed to persist collection", ports.F("collection", name), ports.F("error", err))
		return err
	}
	return nil
}

func (uc *UseCase) recordPayment(planID string, status Status) {
	if uc.metrics != nil {
		uc.metrics.RecordPayment(planID, string(status))
	}
}

func cloneMethods(in []Method) []Method {
	out := make([]Method, len(in))
	copy(out, in)
	return out
}
