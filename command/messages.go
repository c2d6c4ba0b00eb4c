// Package command exposes every state-changing storefront operation as a
// typed message with a dedicated handler, so embedders can dispatch, decorate,
// and audit mutations uniformly.
package command

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-storefront/core"
)

const (
	TypeAddCartItem        = "storefront.command.cart.add_item"
	TypeUpdateCartQuantity = "storefront.command.cart.update_quantity"
	TypeRemoveCartItem     = "storefront.command.cart.remove_item"
	TypeClearCart          = "storefront.command.cart.clear"
	TypeApplyCoupon        = "storefront.command.cart.apply_coupon"
	TypeSyncCart           = "storefront.command.cart.sync"
	TypeAddWishlistItem    = "storefront.command.wishlist.add_item"
	TypeRemoveWishlistItem = "storefront.command.wishlist.remove_item"
	TypeSyncWishlist       = "storefront.command.wishlist.sync"
	TypeSignUp             = "storefront.command.auth.sign_up"
	TypeSignIn             = "storefront.command.auth.sign_in"
	TypeSignOut            = "storefront.command.auth.sign_out"
	TypeForgotPassword     = "storefront.command.auth.forgot_password"
	TypeResetPassword      = "storefront.command.auth.reset_password"
	TypeChangePassword     = "storefront.command.auth.change_password"
	TypeUpdateProfile      = "storefront.command.auth.update_profile"
	TypeCreateCashOrder    = "storefront.command.orders.create_cash"
	TypeCreateReview       = "storefront.command.reviews.create"
	TypeUpdateReview       = "storefront.command.reviews.update"
	TypeDeleteReview       = "storefront.command.reviews.delete"
)

type AddCartItemMessage struct {
	Product core.Product
}

func (AddCartItemMessage) Type() string { return TypeAddCartItem }

func (m AddCartItemMessage) Validate() error {
	if strings.TrimSpace(m.Product.ID) == "" {
		return fmt.Errorf("command: product id is required")
	}
	return nil
}

type UpdateCartQuantityMessage struct {
	ProductID string
	Count     int
}

func (UpdateCartQuantityMessage) Type() string { return TypeUpdateCartQuantity }

func (m UpdateCartQuantityMessage) Validate() error {
	if strings.TrimSpace(m.ProductID) == "" {
		return fmt.Errorf("command: product id is required")
	}
	if m.Count < 1 {
		return fmt.Errorf("command: count must be at least 1")
	}
	return nil
}

type RemoveCartItemMessage struct {
	ProductID string
}

func (RemoveCartItemMessage) Type() string { return TypeRemoveCartItem }

func (m RemoveCartItemMessage) Validate() error {
	if strings.TrimSpace(m.ProductID) == "" {
		return fmt.Errorf("command: product id is required")
	}
	return nil
}

type ClearCartMessage struct{}

func (ClearCartMessage) Type() string { return TypeClearCart }

func (ClearCartMessage) Validate() error { return nil }

type ApplyCouponMessage struct {
	Coupon string
}

func (ApplyCouponMessage) Type() string { return TypeApplyCoupon }

func (m ApplyCouponMessage) Validate() error {
	if strings.TrimSpace(m.Coupon) == "" {
		return fmt.Errorf("command: coupon name is required")
	}
	return nil
}

type SyncCartMessage struct{}

func (SyncCartMessage) Type() string { return TypeSyncCart }

func (SyncCartMessage) Validate() error { return nil }

type AddWishlistItemMessage struct {
	Product core.Product
}

func (AddWishlistItemMessage) Type() string { return TypeAddWishlistItem }

func (m AddWishlistItemMessage) Validate() error {
	if strings.TrimSpace(m.Product.ID) == "" {
		return fmt.Errorf("command: product id is required")
	}
	return nil
}

type RemoveWishlistItemMessage struct {
	ProductID string
}

func (RemoveWishlistItemMessage) Type() string { return TypeRemoveWishlistItem }

func (m RemoveWishlistItemMessage) Validate() error {
	if strings.TrimSpace(m.ProductID) == "" {
		return fmt.Errorf("command: product id is required")
	}
	return nil
}

type SyncWishlistMessage struct{}

func (SyncWishlistMessage) Type() string { return TypeSyncWishlist }

func (SyncWishlistMessage) Validate() error { return nil }

type SignUpMessage struct {
	Input core.SignUpInput
}

func (SignUpMessage) Type() string { return TypeSignUp }

func (m SignUpMessage) Validate() error {
	if strings.TrimSpace(m.Input.Email) == "" {
		return fmt.Errorf("command: email is required")
	}
	if m.Input.Password == "" {
		return fmt.Errorf("command: password is required")
	}
	return nil
}

type SignInMessage struct {
	Input core.SignInInput
}

func (SignInMessage) Type() string { return TypeSignIn }

func (m SignInMessage) Validate() error {
	if strings.TrimSpace(m.Input.Email) == "" {
		return fmt.Errorf("command: email is required")
	}
	if m.Input.Password == "" {
		return fmt.Errorf("command: password is required")
	}
	return nil
}

type SignOutMessage struct{}

func (SignOutMessage) Type() string { return TypeSignOut }

func (SignOutMessage) Validate() error { return nil }

type ForgotPasswordMessage struct {
	Email string
}

func (ForgotPasswordMessage) Type() string { return TypeForgotPassword }

func (m ForgotPasswordMessage) Validate() error {
	if strings.TrimSpace(m.Email) == "" {
		return fmt.Errorf("command: email is required")
	}
	return nil
}

type ResetPasswordMessage struct {
	Input core.ResetPasswordInput
}

func (ResetPasswordMessage) Type() string { return TypeResetPassword }

func (m ResetPasswordMessage) Validate() error {
	if strings.TrimSpace(m.Input.Email) == "" {
		return fmt.Errorf("command: email is required")
	}
	if m.Input.NewPassword == "" {
		return fmt.Errorf("command: new password is required")
	}
	return nil
}

type ChangePasswordMessage struct {
	Input core.ChangePasswordInput
}

func (ChangePasswordMessage) Type() string { return TypeChangePassword }

func (m ChangePasswordMessage) Validate() error {
	if m.Input.CurrentPassword == "" {
		return fmt.Errorf("command: current password is required")
	}
	if m.Input.Password == "" {
		return fmt.Errorf("command: new password is required")
	}
	return nil
}

type UpdateProfileMessage struct {
	Input core.UpdateMeInput
}

func (UpdateProfileMessage) Type() string { return TypeUpdateProfile }

func (m UpdateProfileMessage) Validate() error {
	if strings.TrimSpace(m.Input.Name) == "" && strings.TrimSpace(m.Input.Email) == "" && strings.TrimSpace(m.Input.Phone) == "" {
		return fmt.Errorf("command: at least one profile field is required")
	}
	return nil
}

type CreateCashOrderMessage struct {
	CartID  string
	Address core.ShippingAddress
}

func (CreateCashOrderMessage) Type() string { return TypeCreateCashOrder }

func (m CreateCashOrderMessage) Validate() error {
	if strings.TrimSpace(m.CartID) == "" {
		return fmt.Errorf("command: cart id is required")
	}
	if strings.TrimSpace(m.Address.Details) == "" {
		return fmt.Errorf("command: shipping address details are required")
	}
	if strings.TrimSpace(m.Address.Phone) == "" {
		return fmt.Errorf("command: shipping phone is required")
	}
	return nil
}

type CreateReviewMessage struct {
	ProductID string
	Input     core.ReviewInput
}

func (CreateReviewMessage) Type() string { return TypeCreateReview }

func (m CreateReviewMessage) Validate() error {
	if strings.TrimSpace(m.ProductID) == "" {
		return fmt.Errorf("command: product id is required")
	}
	if err := validateRating(m.Input.Rating); err != nil {
		return err
	}
	return nil
}

type UpdateReviewMessage struct {
	ReviewID string
	Input    core.ReviewInput
}

func (UpdateReviewMessage) Type() string { return TypeUpdateReview }

func (m UpdateReviewMessage) Validate() error {
	if strings.TrimSpace(m.ReviewID) == "" {
		return fmt.Errorf("command: review id is required")
	}
	if err := validateRating(m.Input.Rating); err != nil {
		return err
	}
	return nil
}

type DeleteReviewMessage struct {
	ReviewID string
}

func (DeleteReviewMessage) Type() string { return TypeDeleteReview }

func (m DeleteReviewMessage) Validate() error {
	if strings.TrimSpace(m.ReviewID) == "" {
		return fmt.Errorf("command: review id is required")
	}
	return nil
}

func validateRating(rating float64) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("command: rating must be between 1 and 5")
	}
	return nil
}
