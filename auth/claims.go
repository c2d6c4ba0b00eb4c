package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront/core"
)

// DecodeClaims extracts the identity claims carried by the session token.
// The token is issued and verified server side; the client only reads the
// payload, so no signature check happens here.
func DecodeClaims(raw string) (core.Claims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, _, err := parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return core.Claims{}, goerrors.Wrap(err, goerrors.CategoryAuth, "malformed session token").
			WithTextCode(core.ErrorAuthRequired)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return core.Claims{}, goerrors.New("malformed session token payload", goerrors.CategoryAuth).
			WithTextCode(core.ErrorAuthRequired)
	}

	claims := core.Claims{}
	if id, ok := mapClaims["id"].(string); ok {
		claims.Subject = id
	}
	if name, ok := mapClaims["name"].(string); ok {
		claims.Name = name
	}
	if issued, err := mapClaims.GetIssuedAt(); err == nil && issued != nil {
		t := issued.Time.UTC()
		claims.IssuedAt = &t
	}
	if expires, err := mapClaims.GetExpirationTime(); err == nil && expires != nil {
		t := expires.Time.UTC()
		claims.ExpiresAt = &t
	}
	return claims, nil
}

// expiryFor picks the credential's storage deadline: the token's own exp
// claim when present, otherwise now plus the configured session TTL.
func expiryFor(claims core.Claims, now time.Time, ttl time.Duration) time.Time {
	if claims.ExpiresAt != nil {
		return *claims.ExpiresAt
	}
	return now.Add(ttl)
}
