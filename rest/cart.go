package rest

import (
	"context"
	"net/http"

	"github.com/goliatone/go-storefront/core"
)

// GetCart fetches the caller's server-side cart. The envelope-level
// numOfCartItems counter lands on CartSnapshot.ItemCount.
func (c *Client) GetCart(ctx context.Context) (core.CartSnapshot, error) {
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/cart", authed: true})
	if err != nil {
		return core.CartSnapshot{}, err
	}
	return decodeCart(env)
}

func (c *Client) AddCartItem(ctx context.Context, productID string) (core.CartSnapshot, string, error) {
	productID, err := requireID("product id", productID)
	if err != nil {
		return core.CartSnapshot{}, "", err
	}
	env, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/cart",
		body:   map[string]string{"productId": productID},
		authed: true,
	})
	if err != nil {
		return core.CartSnapshot{}, "", err
	}
	snapshot, err := decodeCart(env)
	return snapshot, env.Message, err
}

// UpdateCartItemQuantity sets the count on one cart line. A count below 1 is
// rejected locally; removing a line is an explicit separate operation.
func (c *Client) UpdateCartItemQuantity(ctx context.Context, productID string, count int) (core.CartSnapshot, error) {
	productID, err := requireID("product id", productID)
	if err != nil {
		return core.CartSnapshot{}, err
	}
	if count < 1 {
		return core.CartSnapshot{}, core.BadInputError("rest: quantity must be at least 1")
	}
	env, err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/cart/" + productID,
		body:   map[string]int{"count": count},
		authed: true,
	})
	if err != nil {
		return core.CartSnapshot{}, err
	}
	return decodeCart(env)
}

func (c *Client) RemoveCartItem(ctx context.Context, productID string) (core.CartSnapshot, error) {
	productID, err := requireID("product id", productID)
	if err != nil {
		return core.CartSnapshot{}, err
	}
	env, err := c.do(ctx, call{method: http.MethodDelete, path: "/cart/" + productID, authed: true})
	if err != nil {
		return core.CartSnapshot{}, err
	}
	return decodeCart(env)
}

// ClearCart empties the server-side cart. The endpoint answers with a
// message-only envelope, so there is no snapshot to return.
func (c *Client) ClearCart(ctx context.Context) error {
	_, err := c.do(ctx, call{method: http.MethodDelete, path: "/cart", authed: true})
	return err
}

func (c *Client) ApplyCoupon(ctx context.Context, couponName string) (core.CartSnapshot, error) {
	couponName, err := requireID("coupon name", couponName)
	if err != nil {
		return core.CartSnapshot{}, err
	}
	env, err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/cart/applyCoupon",
		body:   map[string]string{"coupon": couponName},
		authed: true,
	})
	if err != nil {
		return core.CartSnapshot{}, err
	}
	return decodeCart(env)
}

func decodeCart(env core.Envelope) (core.CartSnapshot, error) {
	snapshot := core.CartSnapshot{}
	if err := env.DecodeData(&snapshot); err != nil {
		return core.CartSnapshot{}, err
	}
	snapshot.ItemCount = env.NumOfCartItems
	if snapshot.ItemCount == 0 {
		for _, item := range snapshot.Items {
			snapshot.ItemCount += item.Count
		}
	}
	return snapshot, nil
}
