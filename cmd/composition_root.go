package cmd

import (
	"log/slog"

	"freight/internal/adapters/in/http"
	"freight/internal/adapters/out/kafka"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/raterepo"
	"freight/internal/adapters/out/ratesapi"
	"freight/internal/core/application/rates"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/tariff"
	"freight/internal/core/domain/services"
	"freight/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	rates      *rates.Provider
	publisher  *kafka.BillingEventPublisher
	logger     *slog.Logger

	evaluator *services.RuleEvaluator
	tariffs   *services.TariffCalculator
	builder   *services.BillingBuilder
}

// NewCompositionRoot wires the adapters the application depends on. The rate
// cache is seeded with the default table before the root is returned.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	source, err := ratesapi.NewClient(config.RatesAPIURL, config.RatesAPITimeout)
	if err != nil {
		return nil, err
	}

	provider, err := rates.NewProvider(
		source,
		raterepo.NewGormExchangeRateRepository(gormDB),
		rates.Options{
			TTL:          config.RatesCacheTTL,
			FetchTimeout: config.RatesAPITimeout,
			RetryAfter:   config.RatesRetryAfter,
		},
		logger,
	)
	if err != nil {
		return nil, err
	}
	provider.Init()

	publisher, err := kafka.NewBillingEventPublisher(kafka.Config{
		Brokers:      config.KafkaBrokers,
		Topic:        config.KafkaBillingTopic,
		WriteTimeout: config.KafkaWriteTimeout,
	}, logger)
	if err != nil {
		return nil, err
	}

	evaluator := services.NewRuleEvaluator(config.Policy)

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		rates:      provider,
		publisher:  publisher,
		logger:     logger,
		evaluator:  &evaluator,
		tariffs:    services.NewTariffCalculator(config.Policy, tariff.DefaultSchedule(), provider),
		builder:    services.NewBillingBuilder(provider),
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateEvaluateOrderRulesCommandHandler() commands.EvaluateOrderRulesCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEvaluateOrderRulesCommandHandler(f, c.evaluator, c.logger)
}

func (c *CompositionRoot) CreateCreateBillingCommandHandler() commands.CreateBillingCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateBillingCommandHandler(f, c.builder)
}

func (c *CompositionRoot) CreateIssueFinalBillingCommandHandler() commands.IssueFinalBillingCommandHandler {
	var f commands.BillingUoWFactory = FuncBillingUoWFactory(func() commands.BillingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewIssueFinalBillingCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	var f commands.BillingUoWFactory = FuncBillingUoWFactory(func() commands.BillingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPaymentCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRefreshExchangeRatesCommandHandler() commands.RefreshExchangeRatesCommandHandler {
	return commands.NewRefreshExchangeRatesCommandHandler(c.rates)
}

func (c *CompositionRoot) CreateGenerateBillingPreviewQueryHandler() queries.GenerateBillingPreviewQueryHandler {
	return queries.NewGenerateBillingPreviewQueryHandler(c.orderReader(), c.builder)
}

func (c *CompositionRoot) CreateCalculateTariffQueryHandler() queries.CalculateTariffQueryHandler {
	return queries.NewCalculateTariffQueryHandler(c.tariffs)
}

func (c *CompositionRoot) CreateCalculateOrderTariffsQueryHandler() queries.CalculateOrderTariffsQueryHandler {
	return queries.NewCalculateOrderTariffsQueryHandler(c.orderReader(), c.tariffs)
}

func (c *CompositionRoot) CreateGetPaymentMethodsQueryHandler() queries.GetPaymentMethodsQueryHandler {
	return queries.NewGetPaymentMethodsQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetPendingBillingsQueryHandler() queries.GetPendingBillingsQueryHandler {
	return queries.NewGetPendingBillingsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetExchangeRatesQueryHandler() queries.GetExchangeRatesQueryHandler {
	return queries.NewGetExchangeRatesQueryHandler(c.rates)
}

// CreateHTTPServer binds every use case to its endpoint.
func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	evaluateRules := c.CreateEvaluateOrderRulesCommandHandler()
	createBilling := c.CreateCreateBillingCommandHandler()
	issueFinal := c.CreateIssueFinalBillingCommandHandler()
	confirmPayment := c.CreateConfirmPaymentCommandHandler()

	return http.NewServer(http.Handlers{
		CreateOrder:     &createOrder,
		EvaluateRules:   &evaluateRules,
		CreateBilling:   &createBilling,
		IssueFinal:      &issueFinal,
		ConfirmPayment:  &confirmPayment,
		BillingPreview:  c.CreateGenerateBillingPreviewQueryHandler(),
		CalculateTariff: c.CreateCalculateTariffQueryHandler(),
		OrderTariffs:    c.CreateCalculateOrderTariffsQueryHandler(),
		PaymentMethods:  c.CreateGetPaymentMethodsQueryHandler(),
		PendingBillings: c.CreateGetPendingBillingsQueryHandler(),
		ExchangeRates:   c.CreateGetExchangeRatesQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	refresh := c.CreateRefreshExchangeRatesCommandHandler()
	return jobs.NewJobManager(
		jobs.NewExchangeRateRefreshJob(&refresh, c.config.RatesRefreshCron, c.config.RatesRefreshTimeout, c.logger),
	)
}

// Close releases the Kafka writer and drops the rate cache.
func (c *CompositionRoot) Close() error {
	c.rates.Shutdown()
	return c.publisher.Close()
}

// orderReader reads orders outside any transaction.
func (c *CompositionRoot) orderReader() queries.OrderReader {
	return c.uowFactory.Create().OrderRepository()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBillingUoWFactory func() commands.BillingUoW

func (f FuncBillingUoWFactory) Create() commands.BillingUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
