package tendata

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// fallbackTokenLifetime applies when the API reports a date-shaped
	// expiresIn instead of a seconds value. The real token contract is
	// undocumented; 7200s matches observed server behavior.
	fallbackTokenLifetime = 7200 * time.Second

	// expiryMargin is subtracted from every cached expiry so a token is
	// refreshed before the server would start rejecting it.
	expiryMargin = 60 * time.Second
)

// AuthResult is one successful authentication outcome.
type AuthResult struct {
	Token string
	// Lifetime is the usable token lifetime. Zero means the API did not
	// report one and the fallback applies.
	Lifetime time.Duration
	// Balance is the account point balance returned alongside the token,
	// cached for display only.
	Balance string
	// AccountExpiry is the membership expiry display string, present only
	// when the API returned a date-shaped expiresIn.
	AccountExpiry string
}

// CredentialStore caches the short-lived access token and refreshes it
// on expiry or on an explicit invalidation signal. Guarded by a mutex so
// a future multi-goroutine caller cannot race the refresh; the pipeline
// itself is single-threaded.
type CredentialStore struct {
	mu            sync.Mutex
	authenticate  func(ctx context.Context) (AuthResult, error)
	logger        *slog.Logger
	token         string
	expiry        time.Time
	balance       string
	accountExpiry string
	now           func() time.Time
}

// NewCredentialStore wires a store around an authentication call,
// normally Client.Authenticate.
func NewCredentialStore(authenticate func(ctx context.Context) (AuthResult, error), logger *slog.Logger) *CredentialStore {
	return &CredentialStore{
		authenticate: authenticate,
		logger:       logger.With("component", "credentials"),
		now:          time.Now,
	}
}

// Get returns a valid access token, refreshing when the cache is empty,
// expired, or forceRefresh is set. On authentication failure the cache
// is cleared and the error returned; the caller decides whether the run
// continues.
func (cs *CredentialStore) Get(ctx context.Context, forceRefresh bool) (string, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !forceRefresh && cs.token != "" && cs.now().Before(cs.expiry) {
		return cs.token, nil
	}

	res, err := cs.authenticate(ctx)
	if err != nil {
		cs.token = ""
		cs.expiry = time.Time{}
		cs.logger.Error("authentication failed", "error", err)
		return "", err
	}

	lifetime := res.Lifetime
	if lifetime <= 0 {
		lifetime = fallbackTokenLifetime
	}
	cs.token = res.Token
	cs.expiry = cs.now().Add(lifetime - expiryMargin)
	cs.balance = res.Balance
	if res.AccountExpiry != "" {
		cs.accountExpiry = res.AccountExpiry
	}
	cs.logger.Info("token refreshed", "expires_in", lifetime, "balance", cs.balance)
	return cs.token, nil
}

// Balance returns the account balance cached by the last successful
// authentication.
func (cs *CredentialStore) Balance() string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.balance
}

// AccountExpiry returns the membership expiry display string, when the
// API has reported one.
func (cs *CredentialStore) AccountExpiry() string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.accountExpiry
}

// parseExpiresIn resolves the API's two expiresIn shapes. A numeric
// value is a token lifetime in seconds. A string is a membership expiry
// date kept for display; the token then uses the local fallback
// lifetime. Both branches are permanently necessary: the upstream
// contract is inconsistent across responses.
func parseExpiresIn(raw json.RawMessage) (lifetime time.Duration, accountExpiry string) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0, ""
	}
	var secs float64
	if err := json.Unmarshal(raw, &secs); err == nil {
		return time.Duration(secs * float64(time.Second)), ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		// Numeric strings still mean seconds.
		if n, convErr := strconv.ParseFloat(strings.TrimSpace(s), 64); convErr == nil {
			return time.Duration(n * float64(time.Second)), ""
		}
		return 0, s
	}
	return 0, ""
}
