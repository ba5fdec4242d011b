package rates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"freight/internal/core/domain/model/exchange"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Options tune the cache and the remote lookups.
type Options struct {
	// TTL is how long a cached rate is served before it is fetched again.
	TTL time.Duration
	// FetchTimeout bounds every call to the remote API.
	FetchTimeout time.Duration
	// RetryAfter is how long a default rate stands in for a failed fetch
	// before the remote API is asked again.
	RetryAfter time.Duration
}

func DefaultOptions() Options {
	return Options{TTL: 24 * time.Hour, FetchTimeout: 5 * time.Second, RetryAfter: time.Minute}
}

func (o Options) Validate() error {
	return errors.Join(
		positive("ttl", o.TTL),
		positive("fetchTimeout", o.FetchTimeout),
		positive("retryAfter", o.RetryAfter),
	)
}

func positive(name string, d time.Duration) error {
	if d > 0 {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is not positive", d))
}

// entry is a cached rate. expiresAt counts from the moment the entry was
// stored, whatever the quote's AsOf says.
type entry struct {
	rate      exchange.Rate
	expiresAt time.Time
}

// Provider is the cached currency rate provider. It is safe for concurrent
// use; concurrent misses for the same currency share a single remote fetch.
type Provider struct {
	source  ports.ExchangeRateSource
	history ports.ExchangeRateRepository
	opts    Options
	logger  *slog.Logger
	now     func() time.Time

	mu    sync.RWMutex
	cache map[string]entry
	group singleflight.Group
}

func NewProvider(
	source ports.ExchangeRateSource,
	history ports.ExchangeRateRepository,
	opts Options,
	logger *slog.Logger,
) (*Provider, error) {
	if source == nil {
		return nil, errs.NewValueIsRequiredError("source")
	}
	if history == nil {
		return nil, errs.NewValueIsRequiredError("history")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Provider{
		source:  source,
		history: history,
		opts:    opts,
		logger:  logger.With("component", "rate_provider"),
		now:     time.Now,
		cache:   make(map[string]entry),
	}, nil
}

// Init seeds the cache with the default table. The seeded entries are already
// due, so the first lookup of each currency still asks the remote API and the
// seed is only served when that fails.
func (p *Provider) Init() {
	now := p.now()

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, currency := range exchange.DefaultCurrencies() {
		p.cache[currency.Code()] = entry{
			rate:      p.defaultRate(context.Background(), currency, now),
			expiresAt: now,
		}
	}
}

// Shutdown drops the cached rates. The provider must not be used afterwards.
func (p *Provider) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.cache)
}

// GetRate resolves the KRW rate of currency. It never fails.
//
// With asOf == nil the current rate is returned:
//   - a cached rate stored less than the TTL ago, labelled exchange.Cache
//   - otherwise a fresh remote rate, cached for the TTL and labelled exchange.API
//   - otherwise the default table rate, cached for Options.RetryAfter and
//     labelled exchange.Default
//
// Concurrent misses share one remote fetch. The fetch is detached from the
// caller's cancellation and bounded by Options.FetchTimeout only, so one
// abandoned request cannot pin the default rate for everybody else.
//
// With asOf set, the rate in effect at that time is looked up in the history,
// then remotely, then in the default table. The cache is not touched.
//
// KRW always resolves to 1. A currency missing from the default table falls
// back to 1 with a warning.
func (p *Provider) GetRate(ctx context.Context, currency kernel.Currency, asOf *time.Time) exchange.Rate {
	if currency.IsBase() {
		return exchange.BaseRate(p.now())
	}
	if err := currency.Validate(); err != nil {
		p.logger.WarnContext(ctx, "invalid currency, using identity rate", "error", err)
		return exchange.BaseRate(p.now())
	}

	if asOf != nil {
		return p.rateAt(ctx, currency, *asOf)
	}

	if rate, ok := p.cached(currency); ok {
		return rate
	}

	shared := context.WithoutCancel(ctx)
	v, _, _ := p.group.Do(currency.Code(), func() (any, error) {
		if rate, ok := p.cached(currency); ok {
			return rate, nil
		}
		return p.refreshOne(shared, currency), nil
	})
	return v.(exchange.Rate)
}

// Convert converts amount between two currencies through KRW.
//
// Equal currencies return amount unchanged. A KRW result is rounded half-up
// to whole won; any other result to two places.
//
// Example (THB 38.75):
//
//	provider.Convert(ctx, decimal.NewFromInt(100), kernel.THB, kernel.KRW) // 3875
func (p *Provider) Convert(ctx context.Context, amount decimal.Decimal, from, to kernel.Currency) decimal.Decimal {
	if from.IsEqual(to) {
		return amount
	}

	krw := amount.Mul(p.GetRate(ctx, from, nil).Rate())
	if to.IsBase() {
		return kernel.KRW.Round(krw)
	}

	return kernel.RoundHalfUp(krw.Div(p.GetRate(ctx, to, nil).Rate()), 2)
}

// Rates returns the current rate of every currency in the default table, in
// table order.
func (p *Provider) Rates(ctx context.Context) []exchange.Rate {
	currencies := exchange.DefaultCurrencies()
	result := make([]exchange.Rate, 0, len(currencies))
	for _, currency := range currencies {
		result = append(result, p.GetRate(ctx, currency, nil))
	}
	return result
}

// Refresh fetches every default-table currency from the remote API, ignoring
// the TTL. Fetched rates replace cached ones and are appended to the history.
// Currencies that fail keep their cached rate; their errors are joined into
// the result.
func (p *Provider) Refresh(ctx context.Context) error {
	var failures []error
	refreshed := 0

	for _, currency := range exchange.DefaultCurrencies() {
		_, err, _ := p.group.Do("refresh/"+currency.Code(), func() (any, error) {
			rate, err := p.fetch(ctx, currency, nil)
			if err != nil {
				return nil, err
			}
			p.store(currency, rate, p.opts.TTL)
			p.record(ctx, rate)
			return rate, nil
		})
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", currency, err))
			continue
		}
		refreshed++
	}

	p.logger.InfoContext(ctx, "exchange rates refreshed", "refreshed", refreshed, "failed", len(failures))
	return errors.Join(failures...)
}

// cached returns the cached rate of currency if it is still valid.
func (p *Provider) cached(currency kernel.Currency) (exchange.Rate, bool) {
	p.mu.RLock()
	e, ok := p.cache[currency.Code()]
	p.mu.RUnlock()

	if !ok || !p.now().Before(e.expiresAt) {
		return exchange.Rate{}, false
	}
	rate := e.rate
	if rate.Source() == exchange.API {
		rate = rate.WithSource(exchange.Cache)
	}
	return rate, true
}

func (p *Provider) store(currency kernel.Currency, rate exchange.Rate, ttl time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache[currency.Code()] = entry{rate: rate, expiresAt: p.now().Add(ttl)}
}

// refreshOne replaces an expired or missing cache entry.
func (p *Provider) refreshOne(ctx context.Context, currency kernel.Currency) exchange.Rate {
	rate, err := p.fetch(ctx, currency, nil)
	if err != nil {
		p.logger.WarnContext(ctx, "exchange rate fetch failed, using default rate",
			"currency", currency.Code(), "retry_after", p.opts.RetryAfter, "error", err)
		rate = p.defaultRate(ctx, currency, p.now())
		p.store(currency, rate, p.opts.RetryAfter)
		return rate
	}

	p.record(ctx, rate)
	p.store(currency, rate, p.opts.TTL)
	return rate
}

func (p *Provider) rateAt(ctx context.Context, currency kernel.Currency, asOf time.Time) exchange.Rate {
	rate, err := p.history.FindLatest(ctx, currency, asOf)
	if err == nil {
		return rate
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		p.logger.WarnContext(ctx, "exchange rate history lookup failed",
			"currency", currency.Code(), "as_of", asOf, "error", err)
	}

	rate, err = p.fetch(ctx, currency, &asOf)
	if err == nil {
		return rate
	}
	p.logger.WarnContext(ctx, "historical exchange rate fetch failed, using default rate",
		"currency", currency.Code(), "as_of", asOf, "error", err)

	return p.defaultRate(ctx, currency, asOf)
}

func (p *Provider) fetch(ctx context.Context, currency kernel.Currency, date *time.Time) (exchange.Rate, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.FetchTimeout)
	defer cancel()

	rate, err := p.source.Fetch(ctx, currency, date)
	if err != nil {
		return exchange.Rate{}, err
	}
	if !rate.Currency().IsEqual(currency) {
		return exchange.Rate{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("asked for %s, got %s", currency, rate.Currency()))
	}
	return rate, nil
}

// record appends rate to the history. Failures only cost point-in-time
// accuracy, so they are logged and dropped.
func (p *Provider) record(ctx context.Context, rate exchange.Rate) {
	if err := p.history.Save(ctx, rate); err != nil {
		p.logger.WarnContext(ctx, "failed to save exchange rate history",
			"currency", rate.Currency().Code(), "error", err)
	}
}

func (p *Provider) defaultRate(ctx context.Context, currency kernel.Currency, asOf time.Time) exchange.Rate {
	value, ok := exchange.DefaultRate(currency)
	if !ok {
		p.logger.WarnContext(ctx, "no default exchange rate, using 1", "currency", currency.Code())
		value = decimal.NewFromInt(1)
	}

	rate, err := exchange.NewRate(currency, value, asOf, exchange.Default)
	if err != nil {
		// asOf is zero only for a zero asOf argument; stamp it now instead.
		rate, _ = exchange.NewRate(currency, value, p.now(), exchange.Default)
	}
	return rate
}
