package auth

import (
	"context"

	"github.com/goliatone/go-storefront/core"
)

// SessionAPI is the slice of the request layer the session service drives.
type SessionAPI interface {
	SignUp(ctx context.Context, in core.SignUpInput) (core.AuthSession, error)
	SignIn(ctx context.Context, in core.SignInInput) (core.AuthSession, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	VerifyResetCode(ctx context.Context, resetCode string) error
	ResetPassword(ctx context.Context, in core.ResetPasswordInput) (core.AuthSession, error)
	VerifyToken(ctx context.Context) error
	ChangeMyPassword(ctx context.Context, in core.ChangePasswordInput) (core.AuthSession, error)
	UpdateMe(ctx context.Context, in core.UpdateMeInput) (core.UserProfile, error)
}

// Session pairs the remote auth endpoints with the local credential store:
// every call that yields a fresh token persists it, and sign-out clears it.
type Session struct {
	api      SessionAPI
	accessor *Accessor
}

func NewSession(api SessionAPI, accessor *Accessor) (*Session, error) {
	if api == nil {
		return nil, core.BadInputError("session requires an api client")
	}
	if accessor == nil {
		return nil, core.BadInputError("session requires a credential accessor")
	}
	return &Session{api: api, accessor: accessor}, nil
}

func (s *Session) SignUp(ctx context.Context, in core.SignUpInput) (core.AuthSession, error) {
	session, err := s.api.SignUp(ctx, in)
	if err != nil {
		return core.AuthSession{}, err
	}
	return s.adopt(ctx, session)
}

func (s *Session) SignIn(ctx context.Context, in core.SignInInput) (core.AuthSession, error) {
	session, err := s.api.SignIn(ctx, in)
	if err != nil {
		return core.AuthSession{}, err
	}
	return s.adopt(ctx, session)
}

// SignOut clears the local credential. The API has no server-side sign-out;
// the token simply stops being sent.
func (s *Session) SignOut(ctx context.Context) error {
	return s.accessor.ClearCredential(ctx)
}

func (s *Session) ForgotPassword(ctx context.Context, email string) (string, error) {
	return s.api.ForgotPassword(ctx, email)
}

func (s *Session) VerifyResetCode(ctx context.Context, resetCode string) error {
	return s.api.VerifyResetCode(ctx, resetCode)
}

// ResetPassword completes the forgot-password flow. The API answers with a
// fresh token, so the user ends up signed in.
func (s *Session) ResetPassword(ctx context.Context, in core.ResetPasswordInput) (core.AuthSession, error) {
	session, err := s.api.ResetPassword(ctx, in)
	if err != nil {
		return core.AuthSession{}, err
	}
	return s.adopt(ctx, session)
}

func (s *Session) VerifyToken(ctx context.Context) error {
	return s.api.VerifyToken(ctx)
}

// ChangeMyPassword rotates the password and adopts the re-issued token.
func (s *Session) ChangeMyPassword(ctx context.Context, in core.ChangePasswordInput) (core.AuthSession, error) {
	session, err := s.api.ChangeMyPassword(ctx, in)
	if err != nil {
		return core.AuthSession{}, err
	}
	return s.adopt(ctx, session)
}

func (s *Session) UpdateMe(ctx context.Context, in core.UpdateMeInput) (core.UserProfile, error) {
	return s.api.UpdateMe(ctx, in)
}

// Identity reports the claims of the signed-in user.
func (s *Session) Identity(ctx context.Context) (core.Claims, bool) {
	credential, ok := s.accessor.Credential(ctx)
	if !ok {
		return core.Claims{}, false
	}
	return credential.Claims, true
}

func (s *Session) adopt(ctx context.Context, session core.AuthSession) (core.AuthSession, error) {
	if session.Token == "" {
		return session, nil
	}
	if _, err := s.accessor.SetCredential(ctx, session.Token); err != nil {
		return core.AuthSession{}, err
	}
	return session, nil
}
