// Package ratesapi fetches KRW exchange rates from the remote rates service.
package ratesapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"freight/internal/core/domain/model/exchange"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Client implements ports.ExchangeRateSource over HTTP.
//
//	GET {baseURL}?currency=THB[&date=2026-07-01]
//	200 {"currency":"THB","rate":"38.75","date":"2026-07-01"}
//
// The rate may be a JSON string or number. A missing date means "now".
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a client for baseURL. The per-request deadline comes
// from the caller's context; timeout only caps requests made without one.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errs.NewValueIsRequiredError("rates api url")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("rates api url", err)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}, nil
}

type rateResponse struct {
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
	Date     string          `json:"date"`
}

// Fetch asks for the rate of currency, for the given day when date is set.
func (c *Client) Fetch(ctx context.Context, currency kernel.Currency, date *time.Time) (exchange.Rate, error) {
	if err := currency.Validate(); err != nil {
		return exchange.Rate{}, err
	}

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return exchange.Rate{}, fmt.Errorf("failed to parse rates api url: %w", err)
	}
	params := endpoint.Query()
	params.Set("currency", currency.Code())
	if date != nil {
		params.Set("date", date.UTC().Format(dateLayout))
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return exchange.Rate{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return exchange.Rate{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return exchange.Rate{}, fmt.Errorf("rates api error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload rateResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return exchange.Rate{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return c.toRate(currency, payload)
}

func (c *Client) toRate(requested kernel.Currency, payload rateResponse) (exchange.Rate, error) {
	currency := requested
	if payload.Currency != "" {
		parsed, err := kernel.NewCurrency(payload.Currency)
		if err != nil {
			return exchange.Rate{}, err
		}
		currency = parsed
	}

	asOf := c.now().UTC()
	if payload.Date != "" {
		parsed, err := parseDate(payload.Date)
		if err != nil {
			return exchange.Rate{}, errs.NewValueIsInvalidErrorWithCause("date", err)
		}
		asOf = parsed
	}

	return exchange.NewRate(currency, payload.Rate, asOf, exchange.API)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(dateLayout, s)
}
