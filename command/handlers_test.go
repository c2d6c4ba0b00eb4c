package command

import (
	"context"
	"testing"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-storefront/core"
	"github.com/shopspring/decimal"
)

type stubCartService struct {
	addFn    func(ctx context.Context, product core.Product) (string, error)
	updateFn func(ctx context.Context, productID string, count int) (string, error)
	removeFn func(ctx context.Context, productID string) (string, error)
	clearFn  func(ctx context.Context) error
	couponFn func(ctx context.Context, couponName string) (string, error)
	syncFn   func(ctx context.Context) (core.CartSnapshot, error)
}

func (s stubCartService) AddItem(ctx context.Context, product core.Product) (string, error) {
	if s.addFn == nil {
		return "", nil
	}
	return s.addFn(ctx, product)
}

func (s stubCartService) UpdateQuantity(ctx context.Context, productID string, count int) (string, error) {
	if s.updateFn == nil {
		return "", nil
	}
	return s.updateFn(ctx, productID, count)
}

func (s stubCartService) RemoveItem(ctx context.Context, productID string) (string, error) {
	if s.removeFn == nil {
		return "", nil
	}
	return s.removeFn(ctx, productID)
}

func (s stubCartService) Clear(ctx context.Context) error {
	if s.clearFn == nil {
		return nil
	}
	return s.clearFn(ctx)
}

func (s stubCartService) ApplyCoupon(ctx context.Context, couponName string) (string, error) {
	if s.couponFn == nil {
		return "", nil
	}
	return s.couponFn(ctx, couponName)
}

func (s stubCartService) Sync(ctx context.Context) (core.CartSnapshot, error) {
	if s.syncFn == nil {
		return core.CartSnapshot{}, nil
	}
	return s.syncFn(ctx)
}

type stubSessionService struct {
	signInFn  func(ctx context.Context, in core.SignInInput) (core.AuthSession, error)
	signOutFn func(ctx context.Context) error
}

func (s stubSessionService) SignUp(context.Context, core.SignUpInput) (core.AuthSession, error) {
	return core.AuthSession{}, nil
}

func (s stubSessionService) SignIn(ctx context.Context, in core.SignInInput) (core.AuthSession, error) {
	if s.signInFn == nil {
		return core.AuthSession{}, nil
	}
	return s.signInFn(ctx, in)
}

func (s stubSessionService) SignOut(ctx context.Context) error {
	if s.signOutFn == nil {
		return nil
	}
	return s.signOutFn(ctx)
}

func (s stubSessionService) ForgotPassword(context.Context, string) (string, error) {
	return "", nil
}

func (s stubSessionService) ResetPassword(context.Context, core.ResetPasswordInput) (core.AuthSession, error) {
	return core.AuthSession{}, nil
}

func (s stubSessionService) ChangeMyPassword(context.Context, core.ChangePasswordInput) (core.AuthSession, error) {
	return core.AuthSession{}, nil
}

func (s stubSessionService) UpdateMe(context.Context, core.UpdateMeInput) (core.UserProfile, error) {
	return core.UserProfile{}, nil
}

func TestAddCartItemCommand_ExecuteDelegatesAndStoresResult(t *testing.T) {
	called := false
	svc := stubCartService{
		addFn: func(_ context.Context, product core.Product) (string, error) {
			called = true
			if product.ID != "p-mouse" {
				t.Fatalf("expected product p-mouse, got %q", product.ID)
			}
			return "added", nil
		},
	}

	cmd := NewAddCartItemCommand(svc)
	collector := gocmd.NewResult[string]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, AddCartItemMessage{Product: core.Product{ID: "p-mouse"}}); err != nil {
		t.Fatalf("execute add cart item: %v", err)
	}
	if !called {
		t.Fatalf("expected cart service invocation")
	}
	message, ok := collector.Load()
	if !ok || message != "added" {
		t.Fatalf("expected stored message, got %q ok=%v", message, ok)
	}
}

func TestSyncCartCommand_StoresSnapshot(t *testing.T) {
	expected := core.CartSnapshot{ID: "cart-1", ItemCount: 3, TotalPrice: decimal.NewFromInt(120)}
	svc := stubCartService{
		syncFn: func(context.Context) (core.CartSnapshot, error) {
			return expected, nil
		},
	}

	cmd := NewSyncCartCommand(svc)
	collector := gocmd.NewResult[core.CartSnapshot]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, SyncCartMessage{}); err != nil {
		t.Fatalf("execute sync cart: %v", err)
	}
	snapshot, ok := collector.Load()
	if !ok || snapshot.ID != "cart-1" || snapshot.ItemCount != 3 {
		t.Fatalf("unexpected stored snapshot: %#v", snapshot)
	}
}

func TestSignInCommand_StoresSession(t *testing.T) {
	svc := stubSessionService{
		signInFn: func(_ context.Context, in core.SignInInput) (core.AuthSession, error) {
			if in.Email != "dana@example.com" {
				t.Fatalf("unexpected email %q", in.Email)
			}
			return core.AuthSession{Token: "jwt", User: core.UserProfile{Name: "Dana"}}, nil
		},
	}

	cmd := NewSignInCommand(svc)
	collector := gocmd.NewResult[core.AuthSession]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, SignInMessage{Input: core.SignInInput{Email: "dana@example.com", Password: "pw"}}); err != nil {
		t.Fatalf("execute sign in: %v", err)
	}
	session, ok := collector.Load()
	if !ok || session.Token != "jwt" {
		t.Fatalf("unexpected stored session: %#v", session)
	}
}

func TestCommandMessages_Validate(t *testing.T) {
	cases := []struct {
		name    string
		message interface{ Validate() error }
		wantErr bool
	}{
		{"add cart item ok", AddCartItemMessage{Product: core.Product{ID: "p1"}}, false},
		{"add cart item missing id", AddCartItemMessage{}, true},
		{"update quantity ok", UpdateCartQuantityMessage{ProductID: "p1", Count: 2}, false},
		{"update quantity zero count", UpdateCartQuantityMessage{ProductID: "p1", Count: 0}, true},
		{"apply coupon blank", ApplyCouponMessage{Coupon: "  "}, true},
		{"sign in missing password", SignInMessage{Input: core.SignInInput{Email: "a@b.c"}}, true},
		{"cash order missing address", CreateCashOrderMessage{CartID: "c1"}, true},
		{"cash order ok", CreateCashOrderMessage{CartID: "c1", Address: core.ShippingAddress{Details: "5th Ave", Phone: "555", City: "NYC"}}, false},
		{"review rating out of range", CreateReviewMessage{ProductID: "p1", Input: core.ReviewInput{Rating: 6}}, true},
		{"review ok", CreateReviewMessage{ProductID: "p1", Input: core.ReviewInput{Rating: 4, Review: "solid"}}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.message.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestCommands_RequireServices(t *testing.T) {
	if err := (&AddCartItemCommand{}).Execute(context.Background(), AddCartItemMessage{Product: core.Product{ID: "p1"}}); err == nil {
		t.Fatalf("expected dependency error without a cart service")
	}
	if err := (&SignOutCommand{}).Execute(context.Background(), SignOutMessage{}); err == nil {
		t.Fatalf("expected dependency error without a session service")
	}
}
