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

// WishlistAPI is the slice of the request layer the wishlist store drives.
// Add and remove return the server's authoritative id set, not full products.
type WishlistAPI interface {
	GetWishlist(ctx context.Context) (core.WishlistSnapshot, error)
	AddWishlistItem(ctx context.Context, productID string) ([]string, string, error)
	RemoveWishlistItem(ctx context.Context, productID string) ([]string, string, error)
}

type WishlistConfig struct {
	API         WishlistAPI
	Credentials core.CredentialSource
	Bus         *events.Bus
	Notifier    core.Notifier
	Logger      core.Logger
	Metrics     core.MetricsRecorder
}

// WishlistStore mirrors CartStore's locking discipline: one mutex serializes
// mutations end to end, a second guards the snapshot, and sync responses go
// through revision admission.
type WishlistStore struct {
	api      WishlistAPI
	creds    core.CredentialSource
	notifier core.Notifier
	logger   core.Logger
	metrics  core.MetricsRecorder

	mutationMu sync.Mutex

	stateMu  sync.Mutex
	snapshot core.WishlistSnapshot
	seq      uint64

	flight   singleflight.Group
	cancels  []func()
	closedMu sync.Mutex
	closed   bool
}

func NewWishlistStore(cfg WishlistConfig) (*WishlistStore, error) {
	if cfg.API == nil {
		return nil, core.BadInputError("wishlist store requires an api client")
	}
	if cfg.Credentials == nil {
		return nil, core.BadInputError("wishlist store requires a credential source")
	}
	s := &WishlistStore{
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
			cfg.Bus.Subscribe(events.TopicWishlistUpdated, resync),
		)
	}
	return s, nil
}

// Close detaches the store from the event bus.
func (s *WishlistStore) Close() {
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

func (s *WishlistStore) Snapshot() core.WishlistSnapshot {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.snapshot.Clone()
}

func (s *WishlistStore) Contains(productID string) bool {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.snapshot.Contains(productID)
}

func (s *WishlistStore) Count() int {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.snapshot.Count
}

// AddItem optimistically adds product to the set, then reconciles with the
// server's id list. product needs only an identifier.
func (s *WishlistStore) AddItem(ctx context.Context, product core.Product) (string, error) {
	if strings.TrimSpace(product.ID) == "" {
		return "", core.BadInputError("product id is required")
	}
	return s.mutate(ctx, "wishlist.add_item", func(snapshot *core.WishlistSnapshot) {
		if snapshot.Contains(product.ID) {
			return
		}
		*snapshot = core.NewWishlistSnapshot(append(snapshot.Items, product))
	}, func(ctx context.Context) ([]string, string, error) {
		return s.api.AddWishlistItem(ctx, product.ID)
	})
}

// RemoveItem optimistically drops productID from the set.
func (s *WishlistStore) RemoveItem(ctx context.Context, productID string) (string, error) {
	if strings.TrimSpace(productID) == "" {
		return "", core.BadInputError("product id is required")
	}
	return s.mutate(ctx, "wishlist.remove_item", func(snapshot *core.WishlistSnapshot) {
		kept := make([]core.Product, 0, len(snapshot.Items))
		for _, item := range snapshot.Items {
			if item.ID == strings.TrimSpace(productID) {
				continue
			}
			kept = append(kept, item)
		}
		*snapshot = core.NewWishlistSnapshot(kept)
	}, func(ctx context.Context) ([]string, string, error) {
		return s.api.RemoveWishlistItem(ctx, productID)
	})
}

// Sync refreshes local state from the server with the same coalescing and
// admission rules as the cart store.
func (s *WishlistStore) Sync(ctx context.Context) (core.WishlistSnapshot, error) {
	result, err, _ := s.flight.Do("wishlist.sync", func() (any, error) {
		started := time.Now()
		if _, ok := s.creds.Credential(ctx); !ok {
			s.replace(core.WishlistSnapshot{})
			return s.Snapshot(), nil
		}

		startSeq := s.revision()
		snapshot, err := s.api.GetWishlist(ctx)
		if err != nil {
			if core.IsAuthRequired(err) {
				s.replace(core.WishlistSnapshot{})
				return s.Snapshot(), nil
			}
			core.ObserveOperation(ctx, s.logger, s.metrics, started, "wishlist.sync", err, nil)
			return s.Snapshot(), err
		}

		s.admit(snapshot, startSeq)
		core.ObserveOperation(ctx, s.logger, s.metrics, started, "wishlist.sync", nil, map[string]any{
			"count": snapshot.Count,
		})
		return s.Snapshot(), nil
	})
	snapshot, _ := result.(core.WishlistSnapshot)
	return snapshot, err
}

func (s *WishlistStore) mutate(
	ctx context.Context,
	operation string,
	forward func(snapshot *core.WishlistSnapshot),
	call func(ctx context.Context) ([]string, string, error),
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

	ids, message, err := call(ctx)
	if err != nil {
		s.replace(prev)
		s.notifier.Error(ctx, core.UserMessage(err))
		core.ObserveOperation(ctx, s.logger, s.metrics, started, operation, err, nil)
		return "", err
	}

	s.replace(s.reconcile(next, ids))
	if message == "" {
		message = "success"
	}
	s.notifier.Success(ctx, message)
	core.ObserveOperation(ctx, s.logger, s.metrics, started, operation, nil, map[string]any{
		"count": len(ids),
	})
	return message, nil
}

// reconcile builds the post-mutation snapshot from the server's id set,
// keeping display metadata for products the optimistic state already holds.
func (s *WishlistStore) reconcile(local core.WishlistSnapshot, ids []string) core.WishlistSnapshot {
	known := map[string]core.Product{}
	for _, item := range local.Items {
		known[item.ID] = item
	}
	items := make([]core.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := known[strings.TrimSpace(id)]; ok {
			items = append(items, product)
			continue
		}
		items = append(items, core.Product{ID: id})
	}
	return core.NewWishlistSnapshot(items)
}

func (s *WishlistStore) replace(snapshot core.WishlistSnapshot) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.snapshot = snapshot
	s.seq++
}

func (s *WishlistStore) admit(snapshot core.WishlistSnapshot, startSeq uint64) bool {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.seq != startSeq {
		return false
	}
	s.snapshot = snapshot
	s.seq++
	return true
}

func (s *WishlistStore) revision() uint64 {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.seq
}
