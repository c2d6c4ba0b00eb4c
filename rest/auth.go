package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/goliatone/go-storefront/core"
)

func (c *Client) SignUp(ctx context.Context, in core.SignUpInput) (core.AuthSession, error) {
	env, err := c.do(ctx, call{method: http.MethodPost, path: "/auth/signup", body: in})
	if err != nil {
		return core.AuthSession{}, err
	}
	return decodeSession(env)
}

func (c *Client) SignIn(ctx context.Context, in core.SignInInput) (core.AuthSession, error) {
	env, err := c.do(ctx, call{method: http.MethodPost, path: "/auth/signin", body: in})
	if err != nil {
		return core.AuthSession{}, err
	}
	return decodeSession(env)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	email, err := requireID("email", email)
	if err != nil {
		return "", err
	}
	env, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/forgotPasswords",
		body:   map[string]string{"email": email},
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *Client) VerifyResetCode(ctx context.Context, resetCode string) error {
	resetCode, err := requireID("reset code", resetCode)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/verifyResetCode",
		body:   map[string]string{"resetCode": resetCode},
	})
	return err
}

// ResetPassword completes the forgot-password flow and yields a fresh
// session token.
func (c *Client) ResetPassword(ctx context.Context, in core.ResetPasswordInput) (core.AuthSession, error) {
	env, err := c.do(ctx, call{method: http.MethodPut, path: "/auth/resetPassword", body: in})
	if err != nil {
		return core.AuthSession{}, err
	}
	return decodeSession(env)
}

// VerifyToken asks the API whether the stored credential is still accepted.
func (c *Client) VerifyToken(ctx context.Context) error {
	_, err := c.do(ctx, call{method: http.MethodGet, path: "/auth/verifyToken", authed: true})
	return err
}

func (c *Client) ChangeMyPassword(ctx context.Context, in core.ChangePasswordInput) (core.AuthSession, error) {
	env, err := c.do(ctx, call{method: http.MethodPut, path: "/users/changeMyPassword", body: in, authed: true})
	if err != nil {
		return core.AuthSession{}, err
	}
	return decodeSession(env)
}

func (c *Client) UpdateMe(ctx context.Context, in core.UpdateMeInput) (core.UserProfile, error) {
	env, err := c.do(ctx, call{method: http.MethodPut, path: "/users/updateMe", body: in, authed: true})
	if err != nil {
		return core.UserProfile{}, err
	}
	profile := core.UserProfile{}
	if err := env.DecodeUser(&profile); err != nil {
		return core.UserProfile{}, err
	}
	if profile == (core.UserProfile{}) {
		if err := env.DecodeData(&profile); err != nil {
			return core.UserProfile{}, err
		}
	}
	return profile, nil
}

func decodeSession(env core.Envelope) (core.AuthSession, error) {
	session := core.AuthSession{Token: strings.TrimSpace(env.Token)}
	if err := env.DecodeUser(&session.User); err != nil {
		return core.AuthSession{}, err
	}
	return session, nil
}
