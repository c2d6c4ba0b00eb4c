// Package auth holds the client-side session credential: the raw token the
// API issues at sign-in, its decoded identity claims, and the storage it
// survives restarts in. A malformed or expired token is indistinguishable
// from no token at all.
package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront/core"
	"github.com/goliatone/go-storefront/events"
)

// DefaultCredentialTTL mirrors the API's seven-day session cookie.
const DefaultCredentialTTL = 7 * 24 * time.Hour

// Accessor is the single authority on the current credential. It backs both
// the request layer, which attaches the raw token, and the stores, which
// gate optimistic mutations on a credential being present.
type Accessor struct {
	tokens core.TokenStore
	bus    *events.Bus
	logger core.Logger
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Accessor)

func WithLogger(logger core.Logger) Option {
	return func(a *Accessor) { a.logger = logger }
}

// WithBus makes the accessor announce sign-in and sign-out on the event
// channel so stores can re-sync.
func WithBus(bus *events.Bus) Option {
	return func(a *Accessor) { a.bus = bus }
}

func WithTTL(ttl time.Duration) Option {
	return func(a *Accessor) {
		if ttl > 0 {
			a.ttl = ttl
		}
	}
}

func WithNow(now func() time.Time) Option {
	return func(a *Accessor) {
		if now != nil {
			a.now = now
		}
	}
}

func NewAccessor(tokens core.TokenStore, opts ...Option) (*Accessor, error) {
	if tokens == nil {
		return nil, goerrors.New("auth accessor requires a token store", goerrors.CategoryBadInput).
			WithTextCode(core.ErrorBadInput)
	}
	a := &Accessor{
		tokens: tokens,
		ttl:    DefaultCredentialTTL,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Credential returns the decoded current credential. ok is false when the
// stored token is absent, expired, or fails to decode; a token that fails to
// decode is also evicted so the next read does not repeat the work.
func (a *Accessor) Credential(ctx context.Context) (core.Credential, bool) {
	raw, err := a.tokens.Get(ctx)
	if err != nil {
		core.LogError(ctx, a.logger, "credential read failed", map[string]any{
			"error": err.Error(),
		})
		return core.Credential{}, false
	}
	if raw == "" {
		return core.Credential{}, false
	}

	claims, err := DecodeClaims(raw)
	if err != nil {
		core.LogInfo(ctx, a.logger, "evicting malformed credential", nil)
		_ = a.tokens.Delete(ctx)
		return core.Credential{}, false
	}

	credential := core.Credential{Raw: raw, Claims: claims}
	if credential.Expired(a.now()) {
		_ = a.tokens.Delete(ctx)
		return core.Credential{}, false
	}
	return credential, true
}

// SetCredential stores the token issued at sign-in and announces the new
// session. Tokens that do not decode are rejected rather than stored, since
// a stored malformed token would read back as absent anyway.
func (a *Accessor) SetCredential(ctx context.Context, raw string) (core.Credential, error) {
	if raw == "" {
		return core.Credential{}, goerrors.New("session token is required", goerrors.CategoryBadInput).
			WithTextCode(core.ErrorBadInput)
	}
	claims, err := DecodeClaims(raw)
	if err != nil {
		return core.Credential{}, err
	}

	now := a.now()
	if err := a.tokens.Set(ctx, raw, expiryFor(claims, now, a.ttl)); err != nil {
		return core.Credential{}, goerrors.Wrap(err, goerrors.CategoryOperation, "persisting session token").
			WithTextCode(core.ErrorInternal)
	}
	a.bus.Publish(ctx, events.TopicUserLogin, map[string]any{
		"subject": claims.Subject,
	})
	return core.Credential{Raw: raw, Claims: claims}, nil
}

// ClearCredential drops the stored token. Clearing an already-empty store is
// not an error.
func (a *Accessor) ClearCredential(ctx context.Context) error {
	if err := a.tokens.Delete(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "clearing session token").
			WithTextCode(core.ErrorInternal)
	}
	a.bus.Publish(ctx, events.TopicUserLogout, nil)
	return nil
}

var _ core.CredentialSource = (*Accessor)(nil)
