package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/simonvc/huvudbok/internal/ledger"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

func (c *Client) CreateTransaction(ctx context.Context, txn *ledger.Transaction) (*ledger.Transaction, error) {
	type postingReq struct {
		AccountNumber      string `json:"account_number"`
		AccountDescription string `json:"account_description,omitempty"`
		Debit              string `json:"debit"`
		Credit             string `json:"credit"`
	}
	postings := make([]postingReq, len(txn.Postings))
	for i, p := range txn.Postings {
		postings[i] = postingReq{
			AccountNumber:      p.AccountNumber,
			AccountDescription: p.AccountDescription,
			Debit:              p.Debit.String(),
			Credit:             p.Credit.String(),
		}
	}
	body := map[string]any{
		"description":        txn.Description,
		"date":               txn.Date,
		"is_opening_balance": txn.IsOpeningBalance,
		"postings":           postings,
	}
	var result ledger.Transaction
	if err := c.post(ctx, "/api/v1/transactions", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListTransactions lists verifications. year 0 lists every year.
func (c *Client) ListTransactions(ctx context.Context, year int, account string, limit int) ([]ledger.Transaction, error) {
	params := url.Values{}
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}
	if account != "" {
		params.Set("account", account)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var result []ledger.Transaction
	if err := c.get(ctx, "/api/v1/transactions?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetTransaction(ctx context.Context, id string) (*ledger.Transaction, error) {
	var result ledger.Transaction
	if err := c.get(ctx, "/api/v1/transactions/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListTemplates(ctx context.Context) ([]ledger.Template, error) {
	var result []ledger.Template
	if err := c.get(ctx, "/api/v1/templates", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyTemplate builds a verification from a template on the server and
// stores it, or only previews it when dryRun is set.
func (c *Client) ApplyTemplate(ctx context.Context, key string, params ledger.TemplateParams, dryRun bool) (*ledger.Transaction, error) {
	path := "/api/v1/templates/" + url.PathEscape(key)
	if dryRun {
		path += "?dry_run=true"
	}
	var result ledger.Transaction
	if err := c.post(ctx, path, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetChart(ctx context.Context) ([]ledger.ChartEntry, error) {
	var result []ledger.ChartEntry
	if err := c.get(ctx, "/api/v1/chart", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func reportParams(year int, period string) string {
	params := url.Values{}
	params.Set("year", strconv.Itoa(year))
	if period != "" {
		params.Set("period", period)
	}
	return params.Encode()
}

func (c *Client) BalanceSheet(ctx context.Context, year int, period string) (*ledger.BalanceSheet, error) {
	var result ledger.BalanceSheet
	if err := c.get(ctx, "/api/v1/reports/balance-sheet?"+reportParams(year, period), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) IncomeStatement(ctx context.Context, year int) (*ledger.IncomeStatement, error) {
	var result ledger.IncomeStatement
	if err := c.get(ctx, "/api/v1/reports/income-statement?"+reportParams(year, ""), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) VatReport(ctx context.Context, year int, period string) (*ledger.VatReport, error) {
	var result ledger.VatReport
	if err := c.get(ctx, "/api/v1/reports/vat?"+reportParams(year, period), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// InvalidateReports drops cached reports on the server. With no keys and
// no years the whole cache is flushed.
func (c *Client) InvalidateReports(ctx context.Context, keys []string, years []int) error {
	body := map[string]any{"keys": keys, "years": years}
	return c.post(ctx, "/api/v1/reports/invalidate", body, nil)
}

// Ping checks if the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/v1/chart", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.doRequest(req, result)
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doRequest(req, result)
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) doRequest(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
