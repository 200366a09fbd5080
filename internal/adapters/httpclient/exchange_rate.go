package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fxconvert/internal/domain"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// ExchangeRateClient talks to the exchangerate-api.com v6 contract:
// {baseURL}/{apiKey}/latest/{BASE} and {baseURL}/{apiKey}/codes.
type ExchangeRateClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

type latestResponse struct {
	Result          string                     `json:"result"`
	ErrorType       string                     `json:"error-type"`
	BaseCode        string                     `json:"base_code"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

type codesResponse struct {
	Result         string     `json:"result"`
	ErrorType      string     `json:"error-type"`
	SupportedCodes [][]string `json:"supported_codes"`
}

func (c *ExchangeRateClient) GetExchangeRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	var body latestResponse
	if err := c.getJSON(ctx, &body, "latest", base); err != nil {
		return nil, fmt.Errorf("failed to get rates for currency %q: %w", base, err)
	}

	if body.Result != "success" {
		return nil, fmt.Errorf("api returned non-success result for currency %q: %s", base, describeResult(body.Result, body.ErrorType))
	}

	if body.ConversionRates == nil {
		body.ConversionRates = map[string]decimal.Decimal{}
	}
	return body.ConversionRates, nil
}

func (c *ExchangeRateClient) GetSupportedCodes(ctx context.Context) ([]domain.SupportedCode, error) {
	var body codesResponse
	if err := c.getJSON(ctx, &body, "codes"); err != nil {
		return nil, fmt.Errorf("failed to get supported codes: %w", err)
	}

	// "result" is optional on this endpoint in older API versions
	if body.Result != "" && body.Result != "success" {
		return nil, fmt.Errorf("api returned non-success result for supported codes: %s", describeResult(body.Result, body.ErrorType))
	}

	codes := make([]domain.SupportedCode, 0, len(body.SupportedCodes))
	for i, entry := range body.SupportedCodes {
		if len(entry) != 2 || entry[0] == "" {
			return nil, fmt.Errorf("malformed supported code entry #%d: %v", i, entry)
		}
		codes = append(codes, domain.SupportedCode{Code: entry[0], Name: entry[1]})
	}
	return codes, nil
}

func (c *ExchangeRateClient) getJSON(ctx context.Context, dst any, segments ...string) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + c.apiKey
	for _, s := range segments {
		u.Path += "/" + s
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error carries the full URL, which contains the api key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, resp.Status)
	}

	if err = json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func describeResult(result, errorType string) string {
	if errorType == "" {
		return result
	}
	return result + " (" + errorType + ")"
}

func NewExchangeRateClient(httpClient *http.Client, baseURL string, apiKey string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, baseURL: baseURL, apiKey: apiKey}
}
