package tendata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	authPath    = "/v2/token"
	queryPath   = "/v2/trade/search"
	accountPath = "/v2/account"

	requestTimeout = 30 * time.Second

	// DefaultPageSize is the full page size for bulk pulls. A page with
	// fewer rows than this is the last page: the API exposes no has-more
	// flag.
	DefaultPageSize = 50

	authRetryAttempts = 3
	authRetryBase     = 2 * time.Second
)

// Direction is the trade flow of a query.
type Direction string

const (
	Imports Direction = "imports"
	Exports Direction = "exports"
)

// Query describes one paginated trade search.
type Query struct {
	HSCode    string
	Direction Direction
	StartDate time.Time
	EndDate   time.Time
	// Origins/Dests are optional ISO-3 country filters.
	Origins []string
	Dests   []string
	// Keyword optionally restricts results to descriptions containing the
	// term. Multiple terms are space-joined and the API applies AND logic.
	Keyword string
	PageNo  int
	// PageSize defaults to DefaultPageSize; 1 reads the result total
	// without paying for a full page.
	PageSize int
}

// Page is one fetched result page.
type Page struct {
	Items []RawRecord
	// RawCount is the item count the API returned for this page, before
	// any mapping. RawCount < PageSize means no further pages exist.
	RawCount int
	// Total is the API-reported result total, populated on count queries.
	Total int64
}

// Client talks to the Tendata API. Create it with NewClient; the
// embedded CredentialStore handles the token lifecycle.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	creds   *CredentialStore
	logger  *slog.Logger
}

// NewClient builds a client for the given API base URL and static key.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
		logger:  logger.With("component", "tendata"),
	}
	c.creds = NewCredentialStore(c.Authenticate, logger)
	return c
}

// Credentials exposes the client's credential store for balance and
// account-expiry display.
func (c *Client) Credentials() *CredentialStore { return c.creds }

// Authenticate performs one authentication call with the static API key.
// Transport errors are retried with a bounded fibonacci backoff; an API
// rejection is returned as *APIError without retry.
func (c *Client) Authenticate(ctx context.Context) (AuthResult, error) {
	var out AuthResult
	backoff := retry.WithMaxRetries(authRetryAttempts, retry.NewFibonacci(authRetryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		body, err := c.post(ctx, authPath, map[string]any{"apiKey": c.apiKey}, "")
		if err != nil {
			return retry.RetryableError(err)
		}
		var resp authResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return retry.RetryableError(fmt.Errorf("decode auth response: %w", err))
		}
		if string(resp.Code) != codeOK {
			return &APIError{Code: string(resp.Code), Msg: resp.Msg}
		}
		lifetime, accountExpiry := parseExpiresIn(resp.Data.ExpiresIn)
		out = AuthResult{
			Token:         resp.Data.AccessToken,
			Lifetime:      lifetime,
			Balance:       string(resp.Data.Balance),
			AccountExpiry: accountExpiry,
		}
		return nil
	})
	return out, err
}

// FetchPage issues a single trade-query call. When the API signals an
// expired credential it forces one token refresh and retries the page
// exactly once; a second auth failure is terminal for this page.
func (c *Client) FetchPage(ctx context.Context, q Query) (Page, error) {
	token, err := c.creds.Get(ctx, false)
	if err != nil {
		return Page{}, err
	}

	page, err := c.fetchPage(ctx, q, token)
	if IsAuthExpired(err) {
		c.logger.Warn("credential rejected, forcing refresh", "hs_code", q.HSCode, "page", q.PageNo)
		token, err = c.creds.Get(ctx, true)
		if err != nil {
			return Page{}, err
		}
		page, err = c.fetchPage(ctx, q, token)
	}
	return page, err
}

// QueryCount reads the result total for a query without downloading a
// full page.
func (c *Client) QueryCount(ctx context.Context, q Query) (int64, error) {
	q.PageNo = 1
	q.PageSize = 1
	page, err := c.FetchPage(ctx, q)
	if err != nil {
		return 0, err
	}
	return page.Total, nil
}

// AccountInfo fetches the account balance and membership expiry.
func (c *Client) AccountInfo(ctx context.Context) (AccountInfo, error) {
	token, err := c.creds.Get(ctx, false)
	if err != nil {
		return AccountInfo{}, err
	}
	body, err := c.post(ctx, accountPath, map[string]any{}, token)
	if err != nil {
		return AccountInfo{}, err
	}
	var resp struct {
		Code FlexString  `json:"code"`
		Msg  string      `json:"msg"`
		Data AccountInfo `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return AccountInfo{}, fmt.Errorf("decode account response: %w", err)
	}
	if string(resp.Code) != codeOK {
		return AccountInfo{}, &APIError{Code: string(resp.Code), Msg: resp.Msg}
	}
	return resp.Data, nil
}

func (c *Client) fetchPage(ctx context.Context, q Query, token string) (Page, error) {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	payload := map[string]any{
		"pageNo":    q.PageNo,
		"pageSize":  pageSize,
		"catalog":   string(q.Direction),
		"startDate": q.StartDate.Format("2006-01-02"),
		"endDate":   q.EndDate.Format("2006-01-02"),
		"hsCode":    q.HSCode,
	}
	if len(q.Origins) > 0 {
		payload["countryOfOriginCode"] = strings.Join(q.Origins, ",")
	}
	if len(q.Dests) > 0 {
		payload["countryOfDestinationCode"] = strings.Join(q.Dests, ",")
	}
	if q.Keyword != "" {
		payload["keyword"] = q.Keyword
	}

	body, err := c.post(ctx, queryPath, payload, token)
	if err != nil {
		return Page{}, err
	}
	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Page{}, fmt.Errorf("decode query response: %w", err)
	}
	if string(resp.Code) != codeOK {
		return Page{}, &APIError{Code: string(resp.Code), Msg: resp.Msg}
	}
	return Page{
		Items:    resp.Data.Content,
		RawCount: len(resp.Data.Content),
		Total:    resp.total(),
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, token string) ([]byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request %s: status %d", path, resp.StatusCode)
	}
	return body, nil
}
