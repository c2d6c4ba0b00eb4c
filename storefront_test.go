package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gocmd "github.com/goliatone/go-command"
	storefrontcommand "github.com/goliatone/go-storefront/command"
	"github.com/goliatone/go-storefront/core"
	storefrontquery "github.com/goliatone/go-storefront/query"
)

type fakeAPIServer struct {
	mu       sync.Mutex
	token    string
	cartSize int
}

func newFakeAPIServer(t *testing.T) (*fakeAPIServer, *httptest.Server) {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   "user-1",
		"name": "Dana",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(7 * 24 * time.Hour).Unix(),
	}).SignedString([]byte("server-secret"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	api := &fakeAPIServer{token: raw}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /auth/signin":
			json.NewEncoder(w).Encode(map[string]any{
				"message": "success",
				"token":   api.token,
				"user":    map[string]any{"name": "Dana", "email": "dana@example.com"},
			})
		case "GET /cart":
			if r.Header.Get("token") != api.token {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]any{"status": "error", "message": "please login first"})
				return
			}
			api.mu.Lock()
			size := api.cartSize
			api.mu.Unlock()
			writeCart(w, size)
		case "POST /cart":
			if r.Header.Get("token") != api.token {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]any{"status": "error", "message": "please login first"})
				return
			}
			api.mu.Lock()
			api.cartSize++
			size := api.cartSize
			api.mu.Unlock()
			writeCart(w, size)
		case "GET /wishlist":
			json.NewEncoder(w).Encode(map[string]any{"status": "success", "count": 0, "data": []any{}})
		case "GET /products":
			json.NewEncoder(w).Encode(map[string]any{
				"status":  "success",
				"results": 1,
				"data":    []any{map[string]any{"_id": "p-mouse", "title": "Mouse", "price": 40}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{"status": "error", "message": "route not found"})
		}
	}))
	t.Cleanup(server.Close)
	return api, server
}

func writeCart(w http.ResponseWriter, size int) {
	items := []any{}
	if size > 0 {
		items = append(items, map[string]any{
			"count":   size,
			"price":   40,
			"product": map[string]any{"_id": "p-mouse", "title": "Mouse", "price": 40},
		})
	}
	json.NewEncoder(w).Encode(map[string]any{
		"status":         "success",
		"numOfCartItems": size,
		"data": map[string]any{
			"_id":            "cart-1",
			"totalCartPrice": size * 40,
			"products":       items,
		},
	})
}

func newStorefront(t *testing.T, baseURL string) *Storefront {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.BaseURL = baseURL
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new storefront: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestStorefront_SignInThenMutateCart(t *testing.T) {
	ctx := context.Background()
	_, server := newFakeAPIServer(t)
	s := newStorefront(t, server.URL)

	collector := gocmd.NewResult[core.AuthSession]()
	signInCtx := gocmd.ContextWithResult(ctx, collector)
	err := s.Commands().SignIn.Execute(signInCtx, storefrontcommand.SignInMessage{
		Input: core.SignInInput{Email: "dana@example.com", Password: "pw"},
	})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if session, ok := collector.Load(); !ok || session.User.Name != "Dana" {
		t.Fatalf("expected stored session, got %#v ok=%v", session, ok)
	}
	claims, ok := s.Identity(ctx)
	if !ok || claims.Subject != "user-1" {
		t.Fatalf("expected signed-in identity, got %+v ok=%v", claims, ok)
	}

	if _, err := s.Cart().AddItem(ctx, core.Product{ID: "p-mouse", Title: "Mouse"}); err != nil {
		t.Fatalf("add cart item: %v", err)
	}
	snapshot, err := s.Queries().GetCart.Query(ctx, storefrontquery.GetCartMessage{})
	if err != nil {
		t.Fatalf("get cart query: %v", err)
	}
	if snapshot.ItemCount != 1 || snapshot.ID != "cart-1" {
		t.Fatalf("unexpected cart snapshot: %+v", snapshot)
	}
}

func TestStorefront_MutationsRequireSignIn(t *testing.T) {
	ctx := context.Background()
	_, server := newFakeAPIServer(t)
	s := newStorefront(t, server.URL)

	_, err := s.Cart().AddItem(ctx, core.Product{ID: "p-mouse"})
	if !core.IsAuthRequired(err) {
		t.Fatalf("expected auth-required error, got %v", err)
	}

	identity, err := s.Queries().CurrentIdentity.Query(ctx, storefrontquery.CurrentIdentityMessage{})
	if err != nil {
		t.Fatalf("identity query: %v", err)
	}
	if identity.SignedIn {
		t.Fatalf("expected anonymous identity")
	}
}

func TestStorefront_SignOutEmptiesIdentity(t *testing.T) {
	ctx := context.Background()
	_, server := newFakeAPIServer(t)
	s := newStorefront(t, server.URL)

	if _, err := s.Session().SignIn(ctx, core.SignInInput{Email: "dana@example.com", Password: "pw"}); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if err := s.Commands().SignOut.Execute(ctx, storefrontcommand.SignOutMessage{}); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if _, ok := s.Identity(ctx); ok {
		t.Fatalf("identity must be absent after sign-out")
	}
	if _, err := s.Cart().Sync(ctx); err != nil {
		t.Fatalf("post-sign-out sync must be a local no-op: %v", err)
	}
	if s.Cart().ItemCount() != 0 {
		t.Fatalf("cart must be empty after sign-out")
	}
}

func TestStorefront_CatalogReadsArePublicAndCached(t *testing.T) {
	ctx := context.Background()
	_, server := newFakeAPIServer(t)
	s := newStorefront(t, server.URL)

	products, err := s.Queries().ListProducts.Query(ctx, storefrontquery.ListProductsMessage{})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p-mouse" {
		t.Fatalf("unexpected products: %+v", products)
	}

	server.Close()
	cached, err := s.Queries().ListProducts.Query(ctx, storefrontquery.ListProductsMessage{})
	if err != nil {
		t.Fatalf("cached read must not hit the closed server: %v", err)
	}
	if len(cached) != 1 {
		t.Fatalf("expected cached products, got %+v", cached)
	}
}

func TestStorefront_ConfigProviderLayerMergesUnderRuntime(t *testing.T) {
	_, server := newFakeAPIServer(t)
	loader := core.NewStaticRawConfigLoader(map[string]any{
		"retry":   map[string]any{"max_retries": 5},
		"catalog": map[string]any{"cache_ttl_sec": 5},
	})
	cfg := core.Config{
		BaseURL: server.URL,
		Retry:   core.RetryConfig{MaxRetries: 1},
	}
	s, err := New(cfg, WithConfigProvider(core.NewCfgxConfigProvider(loader)))
	if err != nil {
		t.Fatalf("new storefront: %v", err)
	}
	defer s.Close()

	resolved := s.Config()
	if resolved.Retry.MaxRetries != 1 {
		t.Fatalf("runtime retries must win over the loaded layer, got %d", resolved.Retry.MaxRetries)
	}
	if resolved.Catalog.CacheTTLSec != 5 {
		t.Fatalf("loaded cache ttl must win over defaults, got %d", resolved.Catalog.CacheTTLSec)
	}
	if resolved.TokenHeader != "token" {
		t.Fatalf("default token header must survive, got %q", resolved.TokenHeader)
	}
	if resolved.BaseURL != server.URL {
		t.Fatalf("runtime base url must win, got %q", resolved.BaseURL)
	}
}

func TestStorefront_ProviderResolvedLoggerReceivesTransportLogs(t *testing.T) {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	logger := newCaptureLogger()
	cfg := core.DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.Retry.MaxRetries = 1
	cfg.Retry.BaseBackoffMS = 1
	s, err := New(cfg, WithLoggerProvider(stubLoggerProvider{logger: logger}))
	if err != nil {
		t.Fatalf("new storefront: %v", err)
	}
	defer s.Close()

	_, _ = s.Catalog().ListProducts(ctx, nil)

	found := false
	for _, entry := range logger.snapshot() {
		if entry.level == "error" && entry.msg == "request attempt failed" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected transport failure log through the resolved logger, got %+v", logger.snapshot())
	}
}

type stubLoggerProvider struct {
	logger core.Logger
}

func (s stubLoggerProvider) GetLogger(string) core.Logger {
	return s.logger
}

type capturedLog struct {
	level string
	msg   string
}

type captureLogger struct {
	mu      *sync.Mutex
	records *[]capturedLog
}

func newCaptureLogger() *captureLogger {
	records := []capturedLog{}
	return &captureLogger{mu: &sync.Mutex{}, records: &records}
}

func (l *captureLogger) WithFields(map[string]any) core.Logger   { return l }
func (l *captureLogger) WithContext(context.Context) core.Logger { return l }

func (l *captureLogger) Trace(msg string, args ...any) { l.record("trace", msg) }
func (l *captureLogger) Debug(msg string, args ...any) { l.record("debug", msg) }
func (l *captureLogger) Info(msg string, args ...any)  { l.record("info", msg) }
func (l *captureLogger) Warn(msg string, args ...any)  { l.record("warn", msg) }
func (l *captureLogger) Error(msg string, args ...any) { l.record("error", msg) }
func (l *captureLogger) Fatal(msg string, args ...any) { l.record("fatal", msg) }

func (l *captureLogger) record(level string, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.records = append(*l.records, capturedLog{level: level, msg: msg})
}

func (l *captureLogger) snapshot() []capturedLog {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := *l.records
	out := make([]capturedLog, len(items))
	copy(out, items)
	return out
}
