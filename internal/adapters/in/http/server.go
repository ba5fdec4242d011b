// Package http exposes the freight use cases as a JSON API on echo.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/exchange"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/tariff"

	"github.com/labstack/echo/v4"
)

type (
	createOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	evaluateRulesHandler interface {
		Handle(ctx context.Context, cmd commands.EvaluateOrderRulesCommand) (order.RuleResult, error)
	}
	createBillingHandler interface {
		Handle(ctx context.Context, cmd commands.CreateBillingCommand) (*billing.Billing, error)
	}
	issueFinalBillingHandler interface {
		Handle(ctx context.Context, cmd commands.IssueFinalBillingCommand) (*billing.Billing, error)
	}
	confirmPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmPaymentCommand) (*billing.Billing, error)
	}
	billingPreviewHandler interface {
		Handle(ctx context.Context, query queries.GenerateBillingPreviewQuery) (queries.BillingPreview, error)
	}
	calculateTariffHandler interface {
		Handle(ctx context.Context, query queries.CalculateTariffQuery) (tariff.Calculation, error)
	}
	orderTariffsHandler interface {
		Handle(ctx context.Context, query queries.CalculateOrderTariffsQuery) (tariff.OrderCalculation, error)
	}
	paymentMethodsHandler interface {
		Handle(ctx context.Context, query queries.GetPaymentMethodsQuery) ([]billing.PaymentMethod, error)
	}
	pendingBillingsHandler interface {
		Handle(ctx context.Context, query queries.GetPendingBillingsQuery) ([]queries.GetPendingBillingsQueryResponse, error)
	}
	exchangeRatesHandler interface {
		Handle(ctx context.Context, query queries.GetExchangeRatesQuery) ([]exchange.Rate, error)
	}
)

// Handlers groups the use case handlers the server dispatches to.
type Handlers struct {
	CreateOrder     createOrderHandler
	EvaluateRules   evaluateRulesHandler
	CreateBilling   createBillingHandler
	IssueFinal      issueFinalBillingHandler
	ConfirmPayment  confirmPaymentHandler
	BillingPreview  billingPreviewHandler
	CalculateTariff calculateTariffHandler
	OrderTariffs    orderTariffsHandler
	PaymentMethods  paymentMethodsHandler
	PendingBillings pendingBillingsHandler
	ExchangeRates   exchangeRatesHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "HTTPServer"),
	}
}

// Register installs the request validator and every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/rules/evaluate", s.EvaluateOrderRules)
	api.POST("/orders/:id/tariffs", s.CalculateOrderTariffs)
	api.POST("/orders/:id/billing/preview", s.PreviewBilling)
	api.POST("/orders/:id/billings", s.CreateBilling)
	api.GET("/orders/:id/payment-methods", s.GetPaymentMethods)
	api.POST("/tariffs/calculate", s.CalculateTariff)
	api.POST("/billings/:id/finalize", s.IssueFinalBilling)
	api.POST("/billings/:id/payment", s.ConfirmPayment)
	api.GET("/accounts/:id/billings/pending", s.GetPendingBillings)
	api.GET("/exchange-rates", s.GetExchangeRates)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, bindError(err))
	}
	if err := c.Validate(&req); err != nil {
		return s.writeError(c, err)
	}

	cmd, err := req.toCommand()
	if err != nil {
		return s.writeError(c, err)
	}

	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, newOrderResponse(created))
}

// EvaluateOrderRules handles POST /api/v1/orders/:id/rules/evaluate.
func (s *Server) EvaluateOrderRules(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewEvaluateOrderRulesCommand(orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	result, err := s.handlers.EvaluateRules.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, newRuleResultResponse(result))
}

// CalculateOrderTariffs handles POST /api/v1/orders/:id/tariffs.
func (s *Server) CalculateOrderTariffs(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewCalculateOrderTariffsQuery(orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	result, err := s.handlers.OrderTariffs.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, newOrderTariffsResponse(result))
}

// PreviewBilling handles POST /api/v1/orders/:id/billing/preview.
func (s *Server) PreviewBilling(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	fees, err := bindFees(c)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGenerateBillingPreviewQuery(orderID, fees)
	if err != nil {
		return s.writeError(c, err)
	}

	preview, err := s.handlers.BillingPreview.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, newPreviewResponse(preview))
}

// CreateBilling handles POST /api/v1/orders/:id/billings.
func (s *Server) CreateBilling(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	fees, err := bindFees(c)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewCreateBillingCommand(orderID, fees)
	if err != nil {
		return s.writeError(c, err)
	}

	created, err := s.handlers.CreateBilling.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, newBillingResponse(created))
}

// GetPaymentMethods handles GET /api/v1/orders/:id/payment-methods.
func (s *Server) GetPaymentMethods(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetPaymentMethodsQuery(orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	methods, err := s.handlers.PaymentMethods.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	response := make([]string, len(methods))
	for i, method := range methods {
		response[i] = method.String()
	}

	return c.JSON(http.StatusOK, response)
}

// CalculateTariff handles POST /api/v1/tariffs/calculate.
func (s *Server) CalculateTariff(c echo.Context) error {
	var req TariffRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, bindError(err))
	}
	if err := c.Validate(&req); err != nil {
		return s.writeError(c, err)
	}

	currency, err := kernel.NewCurrency(req.Currency)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewCalculateTariffQuery(req.HSCode, req.UnitPrice, req.Quantity, currency)
	if err != nil {
		return s.writeError(c, err)
	}

	calc, err := s.handlers.CalculateTariff.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, newTariffResponse(calc))
}

// IssueFinalBilling handles POST /api/v1/billings/:id/finalize.
func (s *Server) IssueFinalBilling(c echo.Context) error {
	billingID, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewIssueFinalBillingCommand(billingID)
	if err != nil {
		return s.writeError(c, err)
	}

	finalized, err := s.handlers.IssueFinal.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, newBillingResponse(finalized))
}

// ConfirmPayment handles POST /api/v1/billings/:id/payment.
func (s *Server) ConfirmPayment(c echo.Context) error {
	billingID, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req PaymentRequest
	if err = c.Bind(&req); err != nil {
		return s.writeError(c, bindError(err))
	}
	if err = c.Validate(&req); err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewConfirmPaymentCommand(
		billingID,
		billing.PaymentMethod(req.Method),
		req.Reference,
		req.DepositorName,
		req.PaidAt.UTC(),
	)
	if err != nil {
		return s.writeError(c, err)
	}

	paid, err := s.handlers.ConfirmPayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, newBillingResponse(paid))
}

// GetPendingBillings handles GET /api/v1/accounts/:id/billings/pending.
func (s *Server) GetPendingBillings(c echo.Context) error {
	accountID, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetPendingBillingsQuery(accountID)
	if err != nil {
		return s.writeError(c, err)
	}

	pending, err := s.handlers.PendingBillings.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	response := make([]PendingBillingResponse, len(pending))
	for i, p := range pending {
		response[i] = newPendingBillingResponse(p)
	}

	return c.JSON(http.StatusOK, response)
}

// GetExchangeRates handles GET /api/v1/exchange-rates.
func (s *Server) GetExchangeRates(c echo.Context) error {
	rates, err := s.handlers.ExchangeRates.Handle(c.Request().Context(), queries.NewGetExchangeRatesQuery())
	if err != nil {
		return s.writeError(c, err)
	}

	response := make([]ExchangeRateResponse, len(rates))
	for i, rate := range rates {
		response[i] = newExchangeRateResponse(rate)
	}

	return c.JSON(http.StatusOK, response)
}

func bindFees(c echo.Context) (billing.FeeRequest, error) {
	var req FeeRequest
	if err := c.Bind(&req); err != nil {
		return billing.FeeRequest{}, bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return billing.FeeRequest{}, err
	}
	return req.toDomain(), nil
}

func pathID(c echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param("id"))
}
