package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"weathermap.app/internal/core/dashboard"
	"weathermap.app/internal/core/payment"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
	"weathermap.app/pkg/validation"
)

// PaymentMethodRequest is the add-payment-method form
type PaymentMethodRequest struct {
	Type        string `json:"type" binding:"required,methodtype"`
	CardNumber  string `json:"cardNumber"`
	ExpiryMonth int    `json:"expiryMonth" binding:"omitempty,min=1,max=12"`
	ExpiryYear  int    `json:"expiryYear" binding:"omitempty,min=0"`
	CVV         string `json:"cvv"`
	IsDefault   bool   `json:"isDefault"`
}

// CheckoutRequest selects a plan for payment
type CheckoutRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

// PayRequest charges the selected plan with a stored method
type PayRequest struct {
	PaymentMethodID string `json:"paymentMethodId" binding:"required"`
}

// ProcessPaymentRequest charges a plan directly
type ProcessPaymentRequest struct {
	PlanID          string `json:"planId" binding:"required"`
	PaymentMethodID string `json:"paymentMethodId" binding:"required"`
}

// cardRules are checked in order; the first failure is reported
var cardRules = []struct {
	tag     string
	field   func(r *PaymentMethodRequest) interface{}
	message string
}{
	{"required,cardnumber", func(r *PaymentMethodRequest) interface{} { return r.CardNumber }, "Please enter a valid card number"},
	{"required", func(r *PaymentMethodRequest) interface{} { return r.ExpiryMonth }, "Please enter expiry date"},
	{"required", func(r *PaymentMethodRequest) interface{} { return r.ExpiryYear }, "Please enter expiry date"},
	{"required,cvv", func(r *PaymentMethodRequest) interface{} { return r.CVV }, "Please enter CVV"},
}

// toMethodParams validates the card fields and derives brand and last four digits
func toMethodParams(req *PaymentMethodRequest) (payment.MethodParams, error) {
	params := payment.MethodParams{Type: payment.MethodType(req.Type), IsDefault: req.IsDefault}
	if params.Type != payment.MethodCard {
		return params, nil
	}

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return params, errors.NewConfigurationError("gin validator engine is not go-playground/validator", nil)
	}
	for _, rule := range cardRules {
		if err := v.Var(rule.field(req), rule.tag); err != nil {
			return params, errors.NewValidationError(rule.message)
		}
	}

	params.Last4 = validation.LastFour(req.CardNumber)
	params.Brand = validation.CardBrand(req.CardNumber)
	params.ExpiryMonth = req.ExpiryMonth
	params.ExpiryYear = req.ExpiryYear
	return params, nil
}

func (s *HTTPServerAdapter) listPlans(c *gin.Context) {
	c.JSON(http.StatusOK, s.dashboard.Payments().Plans())
}

// UserPlanResponse is the stored plan with its catalog entry
type UserPlanResponse struct {
	UserPlan      *payment.UserPlan    `json:"userPlan"`
	Plan          *payment.PricingPlan `json:"plan"`
	DaysRemaining int                  `json:"daysRemaining"`
}

func (s *HTTPServerAdapter) userPlanResponse(c *gin.Context, userPlan *payment.UserPlan) {
	resp := UserPlanResponse{UserPlan: userPlan}
	if plan, ok := s.dashboard.Payments().CurrentPlan(); ok {
		resp.Plan = plan
	}
	if userPlan != nil {
		resp.DaysRemaining = userPlan.DaysRemaining(time.Now())
	}
	c.JSON(http.StatusOK, resp)
}

func (s *HTTPServerAdapter) getUserPlan(c *gin.Context) {
	userPlan, ok := s.dashboard.Payments().UserPlan()
	if !ok {
		s.handleError(c, errors.NewNotFoundError("no active plan"))
		return
	}
	s.userPlanResponse(c, userPlan)
}

func (s *HTTPServerAdapter) cancelPlan(c *gin.Context) {
	userPlan, err := s.dashboard.Payments().CancelSubscription(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}
	s.userPlanResponse(c, userPlan)
}

func (s *HTTPServerAdapter) reactivatePlan(c *gin.Context) {
	userPlan, err := s.dashboard.Payments().ReactivateSubscription(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}
	s.userPlanResponse(c, userPlan)
}

// checkout handles POST /api/checkout requests
func (s *HTTPServerAdapter) checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("planId is required"))
		return
	}

	plan, err := s.dashboard.Checkout(req.PlanID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// pay handles POST /api/checkout/pay requests
func (s *HTTPServerAdapter) pay(c *gin.Context) {
	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("paymentMethodId is required"))
		return
	}

	p, err := s.dashboard.Pay(c.Request.Context(), req.PaymentMethodID)
	if err != nil {
		s.logger.Info("Checkout payment not completed", ports.F("error", err))
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *HTTPServerAdapter) listPayments(c *gin.Context) {
	c.JSON(http.StatusOK, s.dashboard.Payments().Payments())
}

// processPayment handles POST /api/payments requests
func (s *HTTPServerAdapter) processPayment(c *gin.Context) {
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("planId and paymentMethodId are required"))
		return
	}

	p, err := s.dashboard.Payments().ProcessPayment(c.Request.Context(), req.PlanID, req.PaymentMethodID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *HTTPServerAdapter) clearPaymentError(c *gin.Context) {
	s.dashboard.Payments().ClearError()
	c.JSON(http.StatusOK, SuccessResponse{Message: "Payment error cleared"})
}

func (s *HTTPServerAdapter) listPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, s.dashboard.Payments().PaymentMethods())
}

// addPaymentMethod handles POST /api/payment-methods requests
func (s *HTTPServerAdapter) addPaymentMethod(c *gin.Context) {
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("Invalid payment method"))
		return
	}

	params, err := toMethodParams(&req)
	if err != nil {
		s.handleError(c, err)
		return
	}

	method, err := s.dashboard.Payments().AddPaymentMethod(c.Request.Context(), params)
	if err != nil {
		s.handleError(c, err)
		return
	}
	_ = s.dashboard.CloseModal(dashboard.ModalAddPaymentMethod)
	c.JSON(http.StatusCreated, method)
}

func (s *HTTPServerAdapter) removePaymentMethod(c *gin.Context) {
	if err := s.dashboard.Payments().RemovePaymentMethod(c.Request.Context(), c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.dashboard.Payments().PaymentMethods())
}

func (s *HTTPServerAdapter) setDefaultPaymentMethod(c *gin.Context) {
	if err := s.dashboard.Payments().SetDefaultPaymentMethod(c.Request.Context(), c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.dashboard.Payments().PaymentMethods())
}
