package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goliatone/go-storefront/core"
	"github.com/goliatone/go-storefront/events"
	"github.com/shopspring/decimal"
)

type fakeCreds struct{ ok bool }

func (f fakeCreds) Credential(context.Context) (core.Credential, bool) {
	return core.Credential{Raw: "session-token"}, f.ok
}

type switchableCreds struct {
	mu sync.Mutex
	ok bool
}

func (f *switchableCreds) set(ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ok = ok
}

func (f *switchableCreds) Credential(context.Context) (core.Credential, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return core.Credential{Raw: "session-token"}, f.ok
}

type fakeCartAPI struct {
	mu       sync.Mutex
	getCalls int

	getFunc    func(ctx context.Context) (core.CartSnapshot, error)
	addFunc    func(ctx context.Context, productID string) (core.CartSnapshot, string, error)
	updateFunc func(ctx context.Context, productID string, count int) (core.CartSnapshot, error)
	removeFunc func(ctx context.Context, productID string) (core.CartSnapshot, error)
	clearFunc  func(ctx context.Context) error
	couponFunc func(ctx context.Context, couponName string) (core.CartSnapshot, error)
}

func (f *fakeCartAPI) GetCart(ctx context.Context) (core.CartSnapshot, error) {
	f.mu.Lock()
	f.getCalls++
	fn := f.getFunc
	f.mu.Unlock()
	if fn == nil {
		return core.CartSnapshot{}, nil
	}
	return fn(ctx)
}

func (f *fakeCartAPI) AddCartItem(ctx context.Context, productID string) (core.CartSnapshot, string, error) {
	if f.addFunc == nil {
		return core.CartSnapshot{}, "", nil
	}
	return f.addFunc(ctx, productID)
}

func (f *fakeCartAPI) UpdateCartItemQuantity(ctx context.Context, productID string, count int) (core.CartSnapshot, error) {
	if f.updateFunc == nil {
		return core.CartSnapshot{}, nil
	}
	return f.updateFunc(ctx, productID, count)
}

func (f *fakeCartAPI) RemoveCartItem(ctx context.Context, productID string) (core.CartSnapshot, error) {
	if f.removeFunc == nil {
		return core.CartSnapshot{}, nil
	}
	return f.removeFunc(ctx, productID)
}

func (f *fakeCartAPI) ClearCart(ctx context.Context) error {
	if f.clearFunc == nil {
		return nil
	}
	return f.clearFunc(ctx)
}

func (f *fakeCartAPI) ApplyCoupon(ctx context.Context, couponName string) (core.CartSnapshot, error) {
	if f.couponFunc == nil {
		return core.CartSnapshot{}, nil
	}
	return f.couponFunc(ctx, couponName)
}

func (f *fakeCartAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls
}

type countingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *countingNotifier) Success(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *countingNotifier) Error(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

func cartWith(items ...core.CartItem) core.CartSnapshot {
	count := 0
	for _, item := range items {
		count += item.Count
	}
	return core.CartSnapshot{ID: "cart-1", Items: items, ItemCount: count}
}

func mouseLine(count int) core.CartItem {
	return core.CartItem{
		Count:   count,
		Price:   decimal.NewFromInt(40),
		Product: core.Product{ID: "p-mouse", Title: "Mouse", Price: decimal.NewFromInt(40)},
	}
}

func newCartStore(t *testing.T, api *fakeCartAPI, creds core.CredentialSource, notifier core.Notifier) *CartStore {
	t.Helper()
	store, err := NewCartStore(CartConfig{API: api, Credentials: creds, Notifier: notifier})
	if err != nil {
		t.Fatalf("new cart store: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func TestCartStore_AddItemAppliesOptimisticallyThenReconciles(t *testing.T) {
	ctx := context.Background()
	api := &fakeCartAPI{}
	var store *CartStore
	var midCallCount int32

	serverCart := cartWith(mouseLine(1))
	api.addFunc = func(context.Context, string) (core.CartSnapshot, string, error) {
		atomic.StoreInt32(&midCallCount, int32(store.ItemCount()))
		return serverCart, "product added successfully to your cart", nil
	}
	notifier := &countingNotifier{}
	store = newCartStore(t, api, fakeCreds{ok: true}, notifier)

	message, err := store.AddItem(ctx, core.Product{ID: "p-mouse", Title: "Mouse", Price: decimal.NewFromInt(40)})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if got := atomic.LoadInt32(&midCallCount); got != 1 {
		t.Fatalf("optimistic state must be visible during the call, item count = %d", got)
	}
	if store.ItemCount() != 1 {
		t.Fatalf("expected reconciled count 1, got %d", store.ItemCount())
	}
	if snapshot := store.Snapshot(); snapshot.ID != "cart-1" {
		t.Fatalf("expected server snapshot installed, got %+v", snapshot)
	}
	if message != "product added successfully to your cart" {
		t.Fatalf("unexpected message %q", message)
	}
	if len(notifier.successes) != 1 {
		t.Fatalf("expected exactly one success notification, got %v", notifier.successes)
	}
}

func TestCartStore_FailedMutationRollsBackExactly(t *testing.T) {
	ctx := context.Background()
	api := &fakeCartAPI{}
	api.getFunc = func(context.Context) (core.CartSnapshot, error) {
		return cartWith(mouseLine(2)), nil
	}
	api.addFunc = func(context.Context, string) (core.CartSnapshot, string, error) {
		return core.CartSnapshot{}, "", core.APIError("service unavailable", 503, "/cart")
	}
	notifier := &countingNotifier{}
	store := newCartStore(t, api, fakeCreds{ok: true}, notifier)

	if _, err := store.Sync(ctx); err != nil {
		t.Fatalf("seed sync: %v", err)
	}
	before := store.Snapshot()

	if _, err := store.AddItem(ctx, core.Product{ID: "p-keyboard"}); err == nil {
		t.Fatalf("expected the mutation to fail")
	}

	after := store.Snapshot()
	if after.ItemCount != before.ItemCount || len(after.Items) != len(before.Items) || after.ID != before.ID {
		t.Fatalf("state must match pre-mutation snapshot: before %+v after %+v", before, after)
	}
	if len(notifier.errors) != 1 {
		t.Fatalf("expected exactly one error notification, got %v", notifier.errors)
	}
	if len(notifier.successes) != 0 {
		t.Fatalf("failed mutation must not notify success, got %v", notifier.successes)
	}
}

func TestCartStore_SyncWithoutCredentialSkipsNetworkAndEmptiesState(t *testing.T) {
	ctx := context.Background()
	api := &fakeCartAPI{}
	store := newCartStore(t, api, fakeCreds{ok: false}, nil)

	snapshot, err := store.Sync(ctx)
	if err != nil {
		t.Fatalf("sync without credential must not fail: %v", err)
	}
	if api.calls() != 0 {
		t.Fatalf("sync without credential must not hit the network, %d calls", api.calls())
	}
	if snapshot.ItemCount != 0 || len(snapshot.Items) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snapshot)
	}
}

func TestCartStore_MutationWithoutCredentialFailsBeforeOptimisticApply(t *testing.T) {
	ctx := context.Background()
	api := &fakeCartAPI{}
	notifier := &countingNotifier{}
	store := newCartStore(t, api, fakeCreds{ok: false}, notifier)

	_, err := store.AddItem(ctx, core.Product{ID: "p-mouse"})
	if !core.IsAuthRequired(err) {
		t.Fatalf("expected auth-required error, got %v", err)
	}
	if store.ItemCount() != 0 {
		t.Fatalf("no optimistic state may land without a credential")
	}
	if len(notifier.errors) != 1 {
		t.Fatalf("expected one error notification, got %v", notifier.errors)
	}
}

func TestCartStore_UpdateQuantityRejectsCountBelowOne(t *testing.T) {
	ctx := context.Background()
	api := &fakeCartAPI{}
	var called int32
	api.updateFunc = func(context.Context, string, int) (core.CartSnapshot, error) {
		atomic.AddInt32(&called, 1)
		return core.CartSnapshot{}, nil
	}
	store := newCartStore(t, api, fakeCreds{ok: true}, nil)

	if _, err := store.UpdateQuantity(ctx, "p-mouse", 0); err == nil {
		t.Fatalf("expected rejection for count below one")
	}
	if atomic.LoadInt32(&called) != 0 {
		t.Fatalf("invalid count must be rejected before any network call")
	}
}

func TestCartStore_StaleSyncResponseIsDiscarded(t *testing.T) {
	ctx := context.Background()
	api := &fakeCartAPI{}

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	staleCart := cartWith(mouseLine(5))
	api.getFunc = func(context.Context) (core.CartSnapshot, error) {
		once.Do(func() { close(entered) })
		<-release
		return staleCart, nil
	}
	freshCart := cartWith(mouseLine(1))
	api.addFunc = func(context.Context, string) (core.CartSnapshot, string, error) {
		return freshCart, "added", nil
	}
	store := newCartStore(t, api, fakeCreds{ok: true}, nil)

	syncDone := make(chan core.CartSnapshot, 1)
	go func() {
		snapshot, _ := store.Sync(ctx)
		syncDone <- snapshot
	}()

	<-entered
	if _, err := store.AddItem(ctx, core.Product{ID: "p-mouse", Price: decimal.NewFromInt(40)}); err != nil {
		t.Fatalf("mutation during sync: %v", err)
	}
	close(release)

	select {
	case <-syncDone:
	case <-time.After(2 * time.Second):
		t.Fatalf("sync did not finish")
	}

	if got := store.ItemCount(); got != 1 {
		t.Fatalf("stale sync response must not clobber the newer mutation, item count = %d", got)
	}
}

func TestCartStore_ConcurrentSyncsCoalesce(t *testing.T) {
	ctx := context.Background()
	api := &fakeCartAPI{}

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	api.getFunc = func(context.Context) (core.CartSnapshot, error) {
		once.Do(func() { close(entered) })
		<-release
		return cartWith(mouseLine(2)), nil
	}
	store := newCartStore(t, api, fakeCreds{ok: true}, nil)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, _ = store.Sync(ctx)
		}()
	}
	close(start)
	<-entered
	close(release)
	wg.Wait()

	if api.calls() != 1 {
		t.Fatalf("concurrent syncs must coalesce into one request, got %d", api.calls())
	}
	if store.ItemCount() != 2 {
		t.Fatalf("expected synced count 2, got %d", store.ItemCount())
	}
}

func TestCartStore_ResyncsOnLoginEvent(t *testing.T) {
	api := &fakeCartAPI{}
	synced := make(chan struct{}, 1)
	api.getFunc = func(context.Context) (core.CartSnapshot, error) {
		select {
		case synced <- struct{}{}:
		default:
		}
		return cartWith(mouseLine(3)), nil
	}
	bus := events.NewBus()
	store, err := NewCartStore(CartConfig{API: api, Credentials: fakeCreds{ok: true}, Bus: bus})
	if err != nil {
		t.Fatalf("new cart store: %v", err)
	}
	defer store.Close()

	bus.Publish(context.Background(), events.TopicUserLogin, nil)

	select {
	case <-synced:
	case <-time.After(2 * time.Second):
		t.Fatalf("login event did not trigger a re-sync")
	}
}

func TestCartStore_LogoutEventEmptiesStateLocally(t *testing.T) {
	ctx := context.Background()
	api := &fakeCartAPI{}
	api.getFunc = func(context.Context) (core.CartSnapshot, error) {
		return cartWith(mouseLine(2)), nil
	}
	creds := &switchableCreds{ok: true}
	bus := events.NewBus()
	store, err := NewCartStore(CartConfig{API: api, Credentials: creds, Bus: bus})
	if err != nil {
		t.Fatalf("new cart store: %v", err)
	}
	defer store.Close()
	if _, err := store.Sync(ctx); err != nil {
		t.Fatalf("seed sync: %v", err)
	}

	creds.set(false)
	networkCalls := api.calls()
	bus.Publish(ctx, events.TopicUserLogout, nil)

	deadline := time.Now().Add(2 * time.Second)
	for store.ItemCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("logout event did not empty the cart, got %+v", store.Snapshot())
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := api.calls(); got != networkCalls {
		t.Fatalf("expected no network call on logout re-sync, got %d extra", got-networkCalls)
	}
}

func TestCartStore_ClearEmptiesLocalState(t *testing.T) {
	ctx := context.Background()
	api := &fakeCartAPI{}
	api.getFunc = func(context.Context) (core.CartSnapshot, error) {
		return cartWith(mouseLine(2)), nil
	}
	store := newCartStore(t, api, fakeCreds{ok: true}, nil)
	if _, err := store.Sync(ctx); err != nil {
		t.Fatalf("seed sync: %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if store.ItemCount() != 0 || len(store.Snapshot().Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", store.Snapshot())
	}
}
