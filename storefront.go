// Package storefront wires the resilient transport, the typed request layer,
// the credential accessor, and the optimistic cart/wishlist stores into one
// client for the remote e-commerce API. Embedders construct it once and reach
// everything through the command/query bundles or the direct accessors.
package storefront

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-storefront/auth"
	"github.com/goliatone/go-storefront/catalog"
	storefrontcommand "github.com/goliatone/go-storefront/command"
	"github.com/goliatone/go-storefront/core"
	"github.com/goliatone/go-storefront/events"
	storefrontquery "github.com/goliatone/go-storefront/query"
	"github.com/goliatone/go-storefront/rest"
	"github.com/goliatone/go-storefront/store"
	"github.com/goliatone/go-storefront/transport"
)

type Commands struct {
	AddCartItem        *storefrontcommand.AddCartItemCommand
	UpdateCartQuantity *storefrontcommand.UpdateCartQuantityCommand
	RemoveCartItem     *storefrontcommand.RemoveCartItemCommand
	ClearCart          *storefrontcommand.ClearCartCommand
	ApplyCoupon        *storefrontcommand.ApplyCouponCommand
	SyncCart           *storefrontcommand.SyncCartCommand
	AddWishlistItem    *storefrontcommand.AddWishlistItemCommand
	RemoveWishlistItem *storefrontcommand.RemoveWishlistItemCommand
	SyncWishlist       *storefrontcommand.SyncWishlistCommand
	SignUp             *storefrontcommand.SignUpCommand
	SignIn             *storefrontcommand.SignInCommand
	SignOut            *storefrontcommand.SignOutCommand
	ForgotPassword     *storefrontcommand.ForgotPasswordCommand
	ResetPassword      *storefrontcommand.ResetPasswordCommand
	ChangePassword     *storefrontcommand.ChangePasswordCommand
	UpdateProfile      *storefrontcommand.UpdateProfileCommand
	CreateCashOrder    *storefrontcommand.CreateCashOrderCommand
	CreateReview       *storefrontcommand.CreateReviewCommand
	UpdateReview       *storefrontcommand.UpdateReviewCommand
	DeleteReview       *storefrontcommand.DeleteReviewCommand
}

type Queries struct {
	GetCart                   *storefrontquery.GetCartQuery
	GetWishlist               *storefrontquery.GetWishlistQuery
	IsWishlisted              *storefrontquery.IsWishlistedQuery
	CurrentIdentity           *storefrontquery.CurrentIdentityQuery
	ListProducts              *storefrontquery.ListProductsQuery
	GetProduct                *storefrontquery.GetProductQuery
	ListCategories            *storefrontquery.ListCategoriesQuery
	GetCategory               *storefrontquery.GetCategoryQuery
	ListSubCategories         *storefrontquery.ListSubCategoriesQuery
	ListCategorySubCategories *storefrontquery.ListCategorySubCategoriesQuery
	ListBrands                *storefrontquery.ListBrandsQuery
	GetBrand                  *storefrontquery.GetBrandQuery
	ListProductReviews        *storefrontquery.ListProductReviewsQuery
	ListAddresses             *storefrontquery.ListAddressesQuery
}

type Option func(*options)

type options struct {
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	httpClient      core.HTTPDoer
	tokens          core.TokenStore
	notifier        core.Notifier
	metrics         core.MetricsRecorder
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
	catalogFallback bool
}

func WithLogger(logger core.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(o *options) { o.loggerProvider = provider }
}

// WithConfigProvider sources the loaded configuration layer, typically from
// files or the environment. Runtime values passed to New win over it.
func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(o *options) { o.configProvider = provider }
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(o *options) { o.optionsResolver = resolver }
}

func WithHTTPClient(client core.HTTPDoer) Option {
	return func(o *options) { o.httpClient = client }
}

// WithTokenStore swaps the default in-memory credential store, typically for
// the SQLite-backed one in auth/sqlstore.
func WithTokenStore(tokens core.TokenStore) Option {
	return func(o *options) { o.tokens = tokens }
}

func WithNotifier(notifier core.Notifier) Option {
	return func(o *options) { o.notifier = notifier }
}

func WithMetricsRecorder(metrics core.MetricsRecorder) Option {
	return func(o *options) { o.metrics = metrics }
}

// WithStrictCatalogErrors surfaces catalog listing failures instead of
// degrading them to empty results.
func WithStrictCatalogErrors() Option {
	return func(o *options) { o.catalogFallback = false }
}

// Storefront is the composed client.
type Storefront struct {
	config   core.Config
	bus      *events.Bus
	rest     *rest.Client
	accessor *auth.Accessor
	session  *auth.Session
	cart     *store.CartStore
	wishlist *store.WishlistStore
	catalog  *catalog.Catalog
	commands Commands
	queries  Queries
}

// New composes the client. cfg is the runtime configuration layer; defaults
// and the config-provider layer are merged underneath it, and the resolved
// result is what must validate.
func New(cfg core.Config, opts ...Option) (*Storefront, error) {
	o := options{catalogFallback: true}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}

	provider, logger := glog.Resolve("storefront", o.loggerProvider, o.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("storefront"); named != nil {
			logger = glog.Ensure(named)
		}
	}
	o.logger = logger

	if o.configProvider == nil {
		o.configProvider = core.NewCfgxConfigProvider(nil)
	}
	if o.optionsResolver == nil {
		o.optionsResolver = core.GoOptionsResolver{}
	}
	defaults := core.DefaultConfig()
	loaded, err := o.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, err
	}
	cfg, err = o.optionsResolver.Resolve(defaults, loaded, cfg)
	if err != nil {
		return nil, err
	}

	if o.tokens == nil {
		o.tokens = auth.NewMemoryTokenStore()
	}

	bus := events.NewBus()

	transportOpts := []transport.Option{
		transport.WithPolicy(transport.PolicyFromConfig(cfg.Retry)),
		transport.WithLogger(o.logger),
		transport.WithMetricsRecorder(o.metrics),
	}
	if o.httpClient != nil {
		transportOpts = append(transportOpts, transport.WithHTTPClient(o.httpClient))
	}
	doer := transport.NewClient(transportOpts...)

	restClient, err := rest.New(cfg, doer,
		rest.WithTokenStore(o.tokens),
		rest.WithLogger(o.logger),
	)
	if err != nil {
		return nil, err
	}

	accessor, err := auth.NewAccessor(o.tokens,
		auth.WithBus(bus),
		auth.WithLogger(o.logger),
		auth.WithTTL(cfg.CredentialTTL()),
	)
	if err != nil {
		return nil, err
	}
	session, err := auth.NewSession(restClient, accessor)
	if err != nil {
		return nil, err
	}

	cart, err := store.NewCartStore(store.CartConfig{
		API:         restClient,
		Credentials: accessor,
		Bus:         bus,
		Notifier:    o.notifier,
		Logger:      o.logger,
		Metrics:     o.metrics,
	})
	if err != nil {
		return nil, err
	}
	wishlist, err := store.NewWishlistStore(store.WishlistConfig{
		API:         restClient,
		Credentials: accessor,
		Bus:         bus,
		Notifier:    o.notifier,
		Logger:      o.logger,
		Metrics:     o.metrics,
	})
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(catalog.Config{
		API:            restClient,
		CacheSize:      cfg.Catalog.CacheSize,
		CacheTTL:       time.Duration(cfg.Catalog.CacheTTLSec) * time.Second,
		SilentFallback: o.catalogFallback,
		Logger:         o.logger,
		Metrics:        o.metrics,
	})
	if err != nil {
		return nil, err
	}

	s := &Storefront{
		config:   cfg,
		bus:      bus,
		rest:     restClient,
		accessor: accessor,
		session:  session,
		cart:     cart,
		wishlist: wishlist,
		catalog:  cat,
	}
	s.commands = Commands{
		AddCartItem:        storefrontcommand.NewAddCartItemCommand(cart),
		UpdateCartQuantity: storefrontcommand.NewUpdateCartQuantityCommand(cart),
		RemoveCartItem:     storefrontcommand.NewRemoveCartItemCommand(cart),
		ClearCart:          storefrontcommand.NewClearCartCommand(cart),
		ApplyCoupon:        storefrontcommand.NewApplyCouponCommand(cart),
		SyncCart:           storefrontcommand.NewSyncCartCommand(cart),
		AddWishlistItem:    storefrontcommand.NewAddWishlistItemCommand(wishlist),
		RemoveWishlistItem: storefrontcommand.NewRemoveWishlistItemCommand(wishlist),
		SyncWishlist:       storefrontcommand.NewSyncWishlistCommand(wishlist),
		SignUp:             storefrontcommand.NewSignUpCommand(session),
		SignIn:             storefrontcommand.NewSignInCommand(session),
		SignOut:            storefrontcommand.NewSignOutCommand(session),
		ForgotPassword:     storefrontcommand.NewForgotPasswordCommand(session),
		ResetPassword:      storefrontcommand.NewResetPasswordCommand(session),
		ChangePassword:     storefrontcommand.NewChangePasswordCommand(session),
		UpdateProfile:      storefrontcommand.NewUpdateProfileCommand(session),
		CreateCashOrder:    storefrontcommand.NewCreateCashOrderCommand(restClient),
		CreateReview:       storefrontcommand.NewCreateReviewCommand(restClient),
		UpdateReview:       storefrontcommand.NewUpdateReviewCommand(restClient),
		DeleteReview:       storefrontcommand.NewDeleteReviewCommand(restClient),
	}
	s.queries = Queries{
		GetCart:                   storefrontquery.NewGetCartQuery(cart),
		GetWishlist:               storefrontquery.NewGetWishlistQuery(wishlist),
		IsWishlisted:              storefrontquery.NewIsWishlistedQuery(wishlist),
		CurrentIdentity:           storefrontquery.NewCurrentIdentityQuery(accessor),
		ListProducts:              storefrontquery.NewListProductsQuery(cat),
		GetProduct:                storefrontquery.NewGetProductQuery(cat),
		ListCategories:            storefrontquery.NewListCategoriesQuery(cat),
		GetCategory:               storefrontquery.NewGetCategoryQuery(cat),
		ListSubCategories:         storefrontquery.NewListSubCategoriesQuery(cat),
		ListCategorySubCategories: storefrontquery.NewListCategorySubCategoriesQuery(cat),
		ListBrands:                storefrontquery.NewListBrandsQuery(cat),
		GetBrand:                  storefrontquery.NewGetBrandQuery(cat),
		ListProductReviews:        storefrontquery.NewListProductReviewsQuery(restClient),
		ListAddresses:             storefrontquery.NewListAddressesQuery(restClient),
	}
	return s, nil
}

// Config is the resolved configuration the client was built with.
func (s *Storefront) Config() core.Config {
	if s == nil {
		return core.Config{}
	}
	return s.config
}

func (s *Storefront) Commands() Commands {
	if s == nil {
		return Commands{}
	}
	return s.commands
}

func (s *Storefront) Queries() Queries {
	if s == nil {
		return Queries{}
	}
	return s.queries
}

func (s *Storefront) Cart() *store.CartStore {
	if s == nil {
		return nil
	}
	return s.cart
}

func (s *Storefront) Wishlist() *store.WishlistStore {
	if s == nil {
		return nil
	}
	return s.wishlist
}

func (s *Storefront) Session() *auth.Session {
	if s == nil {
		return nil
	}
	return s.session
}

func (s *Storefront) Catalog() *catalog.Catalog {
	if s == nil {
		return nil
	}
	return s.catalog
}

// Rest exposes the typed request layer for operations the stores do not wrap.
func (s *Storefront) Rest() *rest.Client {
	if s == nil {
		return nil
	}
	return s.rest
}

// Bus is the event channel embedders publish external-update signals on.
func (s *Storefront) Bus() *events.Bus {
	if s == nil {
		return nil
	}
	return s.bus
}

// Identity reports the signed-in user's claims.
func (s *Storefront) Identity(ctx context.Context) (core.Claims, bool) {
	if s == nil {
		return core.Claims{}, false
	}
	return s.session.Identity(ctx)
}

// Close detaches the stores from the event bus.
func (s *Storefront) Close() {
	if s == nil {
		return
	}
	s.cart.Close()
	s.wishlist.Close()
}
