package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-storefront/core"
)

// CartService is the mutation surface of the cart store.
type CartService interface {
	AddItem(ctx context.Context, product core.Product) (string, error)
	UpdateQuantity(ctx context.Context, productID string, count int) (string, error)
	RemoveItem(ctx context.Context, productID string) (string, error)
	Clear(ctx context.Context) error
	ApplyCoupon(ctx context.Context, couponName string) (string, error)
	Sync(ctx context.Context) (core.CartSnapshot, error)
}

// WishlistService is the mutation surface of the wishlist store.
type WishlistService interface {
	AddItem(ctx context.Context, product core.Product) (string, error)
	RemoveItem(ctx context.Context, productID string) (string, error)
	Sync(ctx context.Context) (core.WishlistSnapshot, error)
}

// SessionService covers sign-in, sign-up, and the password flows.
type SessionService interface {
	SignUp(ctx context.Context, in core.SignUpInput) (core.AuthSession, error)
	SignIn(ctx context.Context, in core.SignInInput) (core.AuthSession, error)
	SignOut(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, in core.ResetPasswordInput) (core.AuthSession, error)
	ChangeMyPassword(ctx context.Context, in core.ChangePasswordInput) (core.AuthSession, error)
	UpdateMe(ctx context.Context, in core.UpdateMeInput) (core.UserProfile, error)
}

type OrderService interface {
	CreateCashOrder(ctx context.Context, cartID string, address core.ShippingAddress) (core.Order, error)
}

type ReviewService interface {
	CreateReview(ctx context.Context, productID string, in core.ReviewInput) (core.Review, error)
	UpdateReview(ctx context.Context, reviewID string, in core.ReviewInput) (core.Review, error)
	DeleteReview(ctx context.Context, reviewID string) error
}

type AddCartItemCommand struct {
	service CartService
}

func NewAddCartItemCommand(service CartService) *AddCartItemCommand {
	return &AddCartItemCommand{service: service}
}

func (c *AddCartItemCommand) Execute(ctx context.Context, msg AddCartItemMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: cart service is required")
	}
	out, err := c.service.AddItem(ctx, msg.Product)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateCartQuantityCommand struct {
	service CartService
}

func NewUpdateCartQuantityCommand(service CartService) *UpdateCartQuantityCommand {
	return &UpdateCartQuantityCommand{service: service}
}

func (c *UpdateCartQuantityCommand) Execute(ctx context.Context, msg UpdateCartQuantityMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: cart service is required")
	}
	out, err := c.service.UpdateQuantity(ctx, msg.ProductID, msg.Count)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type RemoveCartItemCommand struct {
	service CartService
}

func NewRemoveCartItemCommand(service CartService) *RemoveCartItemCommand {
	return &RemoveCartItemCommand{service: service}
}

func (c *RemoveCartItemCommand) Execute(ctx context.Context, msg RemoveCartItemMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: cart service is required")
	}
	out, err := c.service.RemoveItem(ctx, msg.ProductID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ClearCartCommand struct {
	service CartService
}

func NewClearCartCommand(service CartService) *ClearCartCommand {
	return &ClearCartCommand{service: service}
}

func (c *ClearCartCommand) Execute(ctx context.Context, _ ClearCartMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: cart service is required")
	}
	return c.service.Clear(ctx)
}

type ApplyCouponCommand struct {
	service CartService
}

func NewApplyCouponCommand(service CartService) *ApplyCouponCommand {
	return &ApplyCouponCommand{service: service}
}

func (c *ApplyCouponCommand) Execute(ctx context.Context, msg ApplyCouponMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: cart service is required")
	}
	out, err := c.service.ApplyCoupon(ctx, msg.Coupon)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type SyncCartCommand struct {
	service CartService
}

func NewSyncCartCommand(service CartService) *SyncCartCommand {
	return &SyncCartCommand{service: service}
}

func (c *SyncCartCommand) Execute(ctx context.Context, _ SyncCartMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: cart service is required")
	}
	out, err := c.service.Sync(ctx)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type AddWishlistItemCommand struct {
	service WishlistService
}

func NewAddWishlistItemCommand(service WishlistService) *AddWishlistItemCommand {
	return &AddWishlistItemCommand{service: service}
}

func (c *AddWishlistItemCommand) Execute(ctx context.Context, msg AddWishlistItemMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: wishlist service is required")
	}
	out, err := c.service.AddItem(ctx, msg.Product)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type RemoveWishlistItemCommand struct {
	service WishlistService
}

func NewRemoveWishlistItemCommand(service WishlistService) *RemoveWishlistItemCommand {
	return &RemoveWishlistItemCommand{service: service}
}

func (c *RemoveWishlistItemCommand) Execute(ctx context.Context, msg RemoveWishlistItemMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: wishlist service is required")
	}
	out, err := c.service.RemoveItem(ctx, msg.ProductID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type SyncWishlistCommand struct {
	service WishlistService
}

func NewSyncWishlistCommand(service WishlistService) *SyncWishlistCommand {
	return &SyncWishlistCommand{service: service}
}

func (c *SyncWishlistCommand) Execute(ctx context.Context, _ SyncWishlistMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: wishlist service is required")
	}
	out, err := c.service.Sync(ctx)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type SignUpCommand struct {
	service SessionService
}

func NewSignUpCommand(service SessionService) *SignUpCommand {
	return &SignUpCommand{service: service}
}

func (c *SignUpCommand) Execute(ctx context.Context, msg SignUpMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: session service is required")
	}
	out, err := c.service.SignUp(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type SignInCommand struct {
	service SessionService
}

func NewSignInCommand(service SessionService) *SignInCommand {
	return &SignInCommand{service: service}
}

func (c *SignInCommand) Execute(ctx context.Context, msg SignInMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: session service is required")
	}
	out, err := c.service.SignIn(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type SignOutCommand struct {
	service SessionService
}

func NewSignOutCommand(service SessionService) *SignOutCommand {
	return &SignOutCommand{service: service}
}

func (c *SignOutCommand) Execute(ctx context.Context, _ SignOutMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: session service is required")
	}
	return c.service.SignOut(ctx)
}

type ForgotPasswordCommand struct {
	service SessionService
}

func NewForgotPasswordCommand(service SessionService) *ForgotPasswordCommand {
	return &ForgotPasswordCommand{service: service}
}

func (c *ForgotPasswordCommand) Execute(ctx context.Context, msg ForgotPasswordMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: session service is required")
	}
	out, err := c.service.ForgotPassword(ctx, msg.Email)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ResetPasswordCommand struct {
	service SessionService
}

func NewResetPasswordCommand(service SessionService) *ResetPasswordCommand {
	return &ResetPasswordCommand{service: service}
}

func (c *ResetPasswordCommand) Execute(ctx context.Context, msg ResetPasswordMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: session service is required")
	}
	out, err := c.service.ResetPassword(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ChangePasswordCommand struct {
	service SessionService
}

func NewChangePasswordCommand(service SessionService) *ChangePasswordCommand {
	return &ChangePasswordCommand{service: service}
}

func (c *ChangePasswordCommand) Execute(ctx context.Context, msg ChangePasswordMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: session service is required")
	}
	out, err := c.service.ChangeMyPassword(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateProfileCommand struct {
	service SessionService
}

func NewUpdateProfileCommand(service SessionService) *UpdateProfileCommand {
	return &UpdateProfileCommand{service: service}
}

func (c *UpdateProfileCommand) Execute(ctx context.Context, msg UpdateProfileMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: session service is required")
	}
	out, err := c.service.UpdateMe(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateCashOrderCommand struct {
	service OrderService
}

func NewCreateCashOrderCommand(service OrderService) *CreateCashOrderCommand {
	return &CreateCashOrderCommand{service: service}
}

func (c *CreateCashOrderCommand) Execute(ctx context.Context, msg CreateCashOrderMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: order service is required")
	}
	out, err := c.service.CreateCashOrder(ctx, msg.CartID, msg.Address)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateReviewCommand struct {
	service ReviewService
}

func NewCreateReviewCommand(service ReviewService) *CreateReviewCommand {
	return &CreateReviewCommand{service: service}
}

func (c *CreateReviewCommand) Execute(ctx context.Context, msg CreateReviewMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: review service is required")
	}
	out, err := c.service.CreateReview(ctx, msg.ProductID, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateReviewCommand struct {
	service ReviewService
}

func NewUpdateReviewCommand(service ReviewService) *UpdateReviewCommand {
	return &UpdateReviewCommand{service: service}
}

func (c *UpdateReviewCommand) Execute(ctx context.Context, msg UpdateReviewMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: review service is required")
	}
	out, err := c.service.UpdateReview(ctx, msg.ReviewID, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeleteReviewCommand struct {
	service ReviewService
}

func NewDeleteReviewCommand(service ReviewService) *DeleteReviewCommand {
	return &DeleteReviewCommand{service: service}
}

func (c *DeleteReviewCommand) Execute(ctx context.Context, msg DeleteReviewMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: review service is required")
	}
	return c.service.DeleteReview(ctx, msg.ReviewID)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
