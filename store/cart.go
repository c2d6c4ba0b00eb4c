// Package store holds the client-side cart and wishlist state machines.
// Mutations apply optimistically, then reconcile against the server response;
// any failure restores the exact pre-mutation snapshot before the error
// surfaces. Sync responses are admitted through a revision guard so a slow
// fetch can never clobber a newer mutation.
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-storefront/core"
	"github.com/goliatone/go-storefront/events"
	"golang.org/x/sync/singleflight"
)

// CartAPI is the slice of the request layer the cart store drives.
type CartAPI interface {
	GetCart(ctx context.Context) (core.CartSnapshot, error)
	AddCartItem(ctx context.Context, productID string) (core.CartSnapshot, string, error)
	UpdateCartItemQuantity(ctx context.Context, productID string, count int) (core.CartSnapshot, error)
	RemoveCartItem(ctx context.Context, productID string) (core.CartSnapshot, error)
	ClearCart(ctx context.Context) error
	ApplyCoupon(ctx context.Context, couponName string) (core.CartSnapshot, error)
}

type CartConfig struct {
	API         CartAPI
	Credentials core.CredentialSource
	Bus         *events.Bus
	Notifier    core.Notifier
	Logger      core.Logger
	Metrics     core.MetricsRecorder
}

// CartStore serializes mutations behind a single mutex held across the
// network call, so the pre-mutation snapshot captured for rollback is exact.
// Reads and sync admission use a separate state lock and never wait on the
// network.
type CartStore struct {
	api      CartAPI
	creds    core.CredentialSource
	notifier core.Notifier
	logger   core.Logger
	metrics  core.MetricsRecorder

	mutationMu sync.Mutex

	stateMu  sync.Mutex
	snapshot core.CartSnapshot
	seq      uint64

	flight   singleflight.Group
	cancels  []func()
	closedMu sync.Mutex
	closed   bool
}

func NewCartStore(cfg CartConfig) (*CartStore, error) {
	if cfg.API == nil {
		return nil, core.BadInputError("cart store requires an api client")
	}
	if cfg.Credentials == nil {
		return nil, core.BadInputError("cart store requires a credential source")
	}
	s := &CartStore{
		api:      cfg.API,
		creds:    cfg.Credentials,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}
	if s.notifier == nil {
		s.notifier = core.NopNotifier{}
	}
	if s.metrics == nil {
		s.metrics = core.NopMetricsRecorder{}
	}
	if cfg.Bus != nil {
		resync := func(ctx context.Context, _ events.Event) {
			go func() {
				_, _ = s.Sync(context.WithoutCancel(ctx))
			}()
		}
		s.cancels = append(s.cancels,
			cfg.Bus.Subscribe(events.TopicUserLogin, resync),
			cfg.Bus.Subscribe(events.TopicUserLogout, resync),
			cfg.Bus.Subscribe(events.TopicCartUpdated, resync),
		)
	}
	return s, nil
}

// Close detaches the store from the event bus.
func (s *CartStore) Close() {
	s.closedMu.Lock()
	defer s.closedMu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, cancel := range s.cancels {
		cancel()
	}
}

// Snapshot returns a copy of the current cart state.
func (s *CartStore) Snapshot() core.CartSnapshot {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.snapshot.Clone()
}

func (s *CartStore) ItemCount() int {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.snapshot.ItemCount
}

// AddItem optimistically adds one unit of product, then reconciles with the
// server cart. product must carry at least an identifier; price and display
// fields make the optimistic line presentable until the server responds.
func (s *CartStore) AddItem(ctx context.Context, product core.Product) (string, error) {
	if strings.TrimSpace(product.ID) == "" {
		return "", core.BadInputError("product id is required")
	}
	return s.mutate(ctx, "cart.add_item", func(snapshot *core.CartSnapshot) {
		if i := snapshot.Line(product.ID); i >= 0 {
			snapshot.Items[i].Count++
		} else {
			snapshot.Items = append(snapshot.Items, core.CartItem{
				Count:   1,
				Price:   product.Price,
				Product: product,
			})
		}
		snapshot.ItemCount++
	}, func(ctx context.Context) (core.CartSnapshot, string, error) {
		return s.api.AddCartItem(ctx, product.ID)
	})
}

// UpdateQuantity sets the line count for productID. Counts below one are
// rejected before any state changes; removal is a separate operation.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, count int) (string, error) {
	if strings.TrimSpace(productID) == "" {
		return "", core.BadInputError("product id is required")
	}
	if count < 1 {
		return "", core.BadInputError("cart item count must be at least 1")
	}
	return s.mutate(ctx, "cart.update_quantity", func(snapshot *core.CartSnapshot) {
		i := snapshot.Line(productID)
		if i < 0 {
			return
		}
		snapshot.ItemCount += count - snapshot.Items[i].Count
		snapshot.Items[i].Count = count
	}, func(ctx context.Context) (core.CartSnapshot, string, error) {
		next, err := s.api.UpdateCartItemQuantity(ctx, productID, count)
		return next, "", err
	})
}

// RemoveItem drops the line for productID.
func (s *CartStore) RemoveItem(ctx context.Context, productID string) (string, error) {
	if strings.TrimSpace(productID) == "" {
		return "", core.BadInputError("product id is required")
	}
	return s.mutate(ctx, "cart.remove_item", func(snapshot *core.CartSnapshot) {
		i := snapshot.Line(productID)
		if i < 0 {
			return
		}
		snapshot.ItemCount -= snapshot.Items[i].Count
		if snapshot.ItemCount < 0 {
			snapshot.ItemCount = 0
		}
		snapshot.Items = append(snapshot.Items[:i:i], snapshot.Items[i+1:]...)
	}, func(ctx context.Context) (core.CartSnapshot, string, error) {
		next, err := s.api.RemoveCartItem(ctx, productID)
		return next, "", err
	})
}

// Clear empties the cart.
func (s *CartStore) Clear(ctx context.Context) error {
	_, err := s.mutate(ctx, "cart.clear", func(snapshot *core.CartSnapshot) {
		*snapshot = core.CartSnapshot{}
	}, func(ctx context.Context) (core.CartSnapshot, string, error) {
		if err := s.api.ClearCart(ctx); err != nil {
			return core.CartSnapshot{}, "", err
		}
		return core.CartSnapshot{}, "", nil
	})
	return err
}

// ApplyCoupon asks the server to reprice the cart. There is no sensible
// optimistic form for totals, so the forward step is a no-op and the server
// snapshot lands on success.
func (s *CartStore) ApplyCoupon(ctx context.Context, couponName string) (string, error) {
	if strings.TrimSpace(couponName) == "" {
		return "", core.BadInputError("coupon name is required")
	}
	return s.mutate(ctx, "cart.apply_coupon", func(*core.CartSnapshot) {}, func(ctx context.Context) (core.CartSnapshot, string, error) {
		next, err := s.api.ApplyCoupon(ctx, couponName)
		return next, "", err
	})
}

// Sync refreshes local state from the server. Concurrent calls coalesce into
// one request; a response that raced with a mutation is discarded in favor of
// the newer local state. Without a credential the store empties locally and
// no request is made.
func (s *CartStore) Sync(ctx context.Context) (core.CartSnapshot, error) {
	result, err, _ := s.flight.Do("cart.sync", func() (any, error) {
		started := time.Now()
		if _, ok := s.creds.Credential(ctx); !ok {
			s.replace(core.CartSnapshot{})
			return s.Snapshot(), nil
		}

		startSeq := s.revision()
		snapshot, err := s.api.GetCart(ctx)
		if err != nil {
			if core.IsAuthRequired(err) {
				s.replace(core.CartSnapshot{})
				return s.Snapshot(), nil
			}
			core.ObserveOperation(ctx, s.logger, s.metrics, started, "cart.sync", err, nil)
			return s.Snapshot(), err
		}

		s.admit(snapshot, startSeq)
		core.ObserveOperation(ctx, s.logger, s.metrics, started, "cart.sync", nil, map[string]any{
			"item_count": snapshot.ItemCount,
		})
		return s.Snapshot(), nil
	})
	snapshot, _ := result.(core.CartSnapshot)
	return snapshot, err
}

func (s *CartStore) mutate(
	ctx context.Context,
	operation string,
	forward func(snapshot *core.CartSnapshot),
	call func(ctx context.Context) (core.CartSnapshot, string, error),
) (string, error) {
	started := time.Now()
	if _, ok := s.creds.Credential(ctx); !ok {
		err := core.AuthRequiredError(operation)
		s.notifier.Error(ctx, core.UserMessage(err))
		core.ObserveOperation(ctx, s.logger, s.metrics, started, operation, err, nil)
		return "", err
	}

	s.mutationMu.Lock()
	defer s.mutationMu.Unlock()

	prev := s.Snapshot()
	next := prev.Clone()
	forward(&next)
	s.replace(next)

	snapshot, message, err := call(ctx)
	if err != nil {
		s.replace(prev)
		s.notifier.Error(ctx, core.UserMessage(err))
		core.ObserveOperation(ctx, s.logger, s.metrics, started, operation, err, nil)
		return "", err
	}

	s.replace(snapshot)
	if message == "" {
		message = "success"
	}
	s.notifier.Success(ctx, message)
	core.ObserveOperation(ctx, s.logger, s.metrics, started, operation, nil, map[string]any{
		"item_count": snapshot.ItemCount,
	})
	return message, nil
}

func (s *CartStore) replace(snapshot core.CartSnapshot) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.snapshot = snapshot
	s.seq++
}

// admit installs a sync response only if no mutation landed since the sync
// started; otherwise the stale response is dropped.
func (s *CartStore) admit(snapshot core.CartSnapshot, startSeq uint64) bool {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.seq != startSeq {
		return false
	}
	s.snapshot = snapshot
	s.seq++
	return true
}

func (s *CartStore) revision() uint64 {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.seq
}
