// Package account holds the set of authenticated upstream accounts and keeps
// their tokens fresh. The registry is the only shared mutable state in the
// service: readers take snapshots under a read lock, the refresh loop mutates
// under the write lock.
package account

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/example/shift-calendar/internal/manus"
)

// Credential identifies one person to the upstream service. It is immutable
// for the lifetime of its account.
type Credential struct {
	Username string
	Secret   string
}

// Account aggregates a credential with its current token and profile.
type Account struct {
	Credential Credential
	Token      manus.Token
	Profile    manus.Profile
}

// Authenticator is the slice of the upstream client the registry needs.
type Authenticator interface {
	Authenticate(ctx context.Context, username, secret string) (manus.Token, error)
	FetchProfile(ctx context.Context, token manus.Token) (manus.Profile, error)
}

// Registry guards the account list with a single reader/writer lock: many
// concurrent readers or one writer.
type Registry struct {
	upstream Authenticator
	logger   *slog.Logger

	mu       sync.RWMutex
	accounts []*Account
}

// NewRegistry builds an empty registry backed by the given upstream client.
func NewRegistry(upstream Authenticator, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{upstream: upstream, logger: logger}
}

// establishResult is the explicit per-credential outcome of initialization;
// Initialize collapses failures into "drop".
type establishResult struct {
	account *Account
	err     error
}

// Initialize replaces the registry contents by authenticating every credential
// concurrently. Credentials that fail either the token exchange or the profile
// lookup are logged and excluded. The resulting order is completion order, not
// input order.
func (r *Registry) Initialize(ctx context.Context, credentials []Credential) {
	results := make(chan establishResult, len(credentials))
	for _, cred := range credentials {
		go func(cred Credential) {
			account, err := r.establish(ctx, cred)
			results <- establishResult{account: account, err: err}
		}(cred)
	}

	accounts := make([]*Account, 0, len(credentials))
	for range credentials {
		result := <-results
		if result.err != nil {
			r.logger.Warn("dropping account that failed initialization", "error", result.err)
			continue
		}
		accounts = append(accounts, result.account)
	}

	r.mu.Lock()
	r.accounts = accounts
	r.mu.Unlock()

	r.logger.Info("initialized accounts", "configured", len(credentials), "active", len(accounts))
}

func (r *Registry) establish(ctx context.Context, cred Credential) (*Account, error) {
	token, err := r.upstream.Authenticate(ctx, cred.Username, cred.Secret)
	if err != nil {
		return nil, err
	}
	profile, err := r.upstream.FetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	return &Account{Credential: cred, Token: token, Profile: profile}, nil
}

// RefreshAll re-authenticates every account sequentially under the write lock,
// blocking readers for the duration of the pass. Accounts go one at a time so
// the upstream never sees a burst of token exchanges. A failed step leaves the
// account's prior token and profile untouched; a refresh never degrades an
// account to an unauthenticated state.
func (r *Registry) RefreshAll(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		token, err := r.upstream.Authenticate(ctx, account.Credential.Username, account.Credential.Secret)
		if err != nil {
			r.logger.Warn("token refresh failed, keeping previous token",
				"username", account.Credential.Username, "error", err)
			continue
		}
		account.Token = token

		profile, err := r.upstream.FetchProfile(ctx, token)
		if err != nil {
			r.logger.Warn("profile refresh failed, keeping previous profile",
				"username", account.Credential.Username, "error", err)
			continue
		}
		account.Profile = profile
	}

	r.logger.Info("refreshed accounts", "count", len(r.accounts))
}

// FindByUsername returns a copy of the account for the given username. The
// copy lets callers release the read lock before doing any slow work with the
// token and profile.
func (r *Registry) FindByUsername(name string) (Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, account := range r.accounts {
		if account.Credential.Username == name {
			return *account, true
		}
	}
	return Account{}, false
}

// Len reports the number of active accounts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}

// RunRefreshLoop re-authenticates every account once per interval until the
// context is cancelled. A ticker never fires at start, so the fresh tokens
// produced by Initialize are not immediately re-exchanged.
func (r *Registry) RunRefreshLoop(ctx context.Context, interval time.Duration) {
	r.logger.Info("starting token refresh loop", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("token refresh loop stopped")
			return
		case <-ticker.C:
			r.RefreshAll(ctx)
		}
	}
}
