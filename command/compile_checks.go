package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[AddCartItemMessage]        = (*AddCartItemCommand)(nil)
	_ gocmd.Commander[UpdateCartQuantityMessage] = (*UpdateCartQuantityCommand)(nil)
	_ gocmd.Commander[RemoveCartItemMessage]     = (*RemoveCartItemCommand)(nil)
	_ gocmd.Commander[ClearCartMessage]          = (*ClearCartCommand)(nil)
	_ gocmd.Commander[ApplyCouponMessage]        = (*ApplyCouponCommand)(nil)
	_ gocmd.Commander[SyncCartMessage]           = (*SyncCartCommand)(nil)
	_ gocmd.Commander[AddWishlistItemMessage]    = (*AddWishlistItemCommand)(nil)
	_ gocmd.Commander[RemoveWishlistItemMessage] = (*RemoveWishlistItemCommand)(nil)
	_ gocmd.Commander[SyncWishlistMessage]       = (*SyncWishlistCommand)(nil)
	_ gocmd.Commander[SignUpMessage]             = (*SignUpCommand)(nil)
	_ gocmd.Commander[SignInMessage]             = (*SignInCommand)(nil)
	_ gocmd.Commander[SignOutMessage]            = (*SignOutCommand)(nil)
	_ gocmd.Commander[ForgotPasswordMessage]     = (*ForgotPasswordCommand)(nil)
	_ gocmd.Commander[ResetPasswordMessage]      = (*ResetPasswordCommand)(nil)
	_ gocmd.Commander[ChangePasswordMessage]     = (*ChangePasswordCommand)(nil)
	_ gocmd.Commander[UpdateProfileMessage]      = (*UpdateProfileCommand)(nil)
	_ gocmd.Commander[CreateCashOrderMessage]    = (*CreateCashOrderCommand)(nil)
	_ gocmd.Commander[CreateReviewMessage]       = (*CreateReviewCommand)(nil)
	_ gocmd.Commander[UpdateReviewMessage]       = (*UpdateReviewCommand)(nil)
	_ gocmd.Commander[DeleteReviewMessage]       = (*DeleteReviewCommand)(nil)
)
