package rest

import (
	"context"
	"net/http"

	"github.com/goliatone/go-storefront/core"
)

// CreateCashOrder turns the cart identified by cartID into a cash-on-delivery
// order. The server consumes the cart; callers should re-sync it afterwards.
func (c *Client) CreateCashOrder(ctx context.Context, cartID string, address core.ShippingAddress) (core.Order, error) {
	cartID, err := requireID("cart id", cartID)
	if err != nil {
		return core.Order{}, err
	}
	env, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/orders/" + cartID,
		body:   map[string]core.ShippingAddress{"shippingAddress": address},
		authed: true,
	})
	if err != nil {
		return core.Order{}, err
	}
	order := core.Order{}
	if err := env.DecodeData(&order); err != nil {
		return core.Order{}, err
	}
	return order, nil
}
