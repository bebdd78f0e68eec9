package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrMissingAPIKey is returned before any network call when the client was
// built without an API token.
var ErrMissingAPIKey = errors.New("alphavantage: API key is not set (AV_TOKEN)")

// FetchError reports a failed income-statement request. StatusCode is zero
// when the failure happened before or outside the HTTP exchange.
type FetchError struct {
	Symbol     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("alphavantage: fetch %s: status %d: %v", e.Symbol, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("alphavantage: fetch %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AnnualReport is one fiscal year of the provider's income statement. All
// values come over the wire as strings; "None" marks a missing figure.
type AnnualReport struct {
	FiscalDateEnding                string `json:"fiscalDateEnding"`
	ReportedCurrency                string `json:"reportedCurrency"`
	TotalRevenue                    string `json:"totalRevenue"`
	GrossProfit                     string `json:"grossProfit"`
	CostOfRevenue                   string `json:"costOfRevenue"`
	OperatingIncome                 string `json:"operatingIncome"`
	SellingGeneralAndAdministrative string `json:"sellingGeneralAndAdministrative"`
	ResearchAndDevelopment          string `json:"researchAndDevelopment"`
	InterestExpense                 string `json:"interestExpense"`
	EBITDA                          string `json:"ebitda"`
	NetIncome                       string `json:"netIncome"`
}

type incomeStatementResponse struct {
	Symbol        string         `json:"symbol"`
	AnnualReports []AnnualReport `json:"annualReports"`
	// The provider answers 200 with one of these instead of data when the
	// key is rejected or the rate limit is hit.
	Note         string `json:"Note"`
	ErrorMessage string `json:"Error Message"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// FetchIncomeStatement issues a single GET for the symbol's annual income
// statements. One attempt, no retry; any failure is terminal for the caller.
func (c *Client) FetchIncomeStatement(ctx context.Context, symbol string) ([]AnnualReport, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("invalid base URL: %w", err)}
	}
	q := u.Query()
	q.Set("function", "INCOME_STATEMENT")
	q.Set("symbol", symbol)
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			Symbol:     symbol,
			StatusCode: resp.StatusCode,
			Err:        errors.New("unexpected status"),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	var payload incomeStatementResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if payload.ErrorMessage != "" {
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("provider error: %s", payload.ErrorMessage)}
	}
	if payload.AnnualReports == nil {
		if payload.Note != "" {
			return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("provider note: %s", payload.Note)}
		}
		return nil, &FetchError{Symbol: symbol, Err: errors.New("response has no annualReports")}
	}

	return payload.AnnualReports, nil
}
