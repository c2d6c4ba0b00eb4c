package rest

import (
	"context"
	"net/http"

	"github.com/goliatone/go-storefront/core"
)

// GetWishlist fetches the full wishlist with product metadata.
func (c *Client) GetWishlist(ctx context.Context) (core.WishlistSnapshot, error) {
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/wishlist", authed: true})
	if err != nil {
		return core.WishlistSnapshot{}, err
	}
	var products []core.Product
	if err := env.DecodeData(&products); err != nil {
		return core.WishlistSnapshot{}, err
	}
	snapshot := core.NewWishlistSnapshot(products)
	if env.Count > 0 {
		snapshot.Count = env.Count
	}
	return snapshot, nil
}

// AddWishlistItem adds a product and returns the server's authoritative id
// set. The add/remove endpoints answer with bare identifiers, not product
// objects; callers reconcile metadata themselves.
func (c *Client) AddWishlistItem(ctx context.Context, productID string) ([]string, string, error) {
	productID, err := requireID("product id", productID)
	if err != nil {
		return nil, "", err
	}
	env, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/wishlist",
		body:   map[string]string{"productId": productID},
		authed: true,
	})
	if err != nil {
		return nil, "", err
	}
	var ids []string
	if err := env.DecodeData(&ids); err != nil {
		return nil, "", err
	}
	return ids, env.Message, nil
}

func (c *Client) RemoveWishlistItem(ctx context.Context, productID string) ([]string, string, error) {
	productID, err := requireID("product id", productID)
	if err != nil {
		return nil, "", err
	}
	env, err := c.do(ctx, call{method: http.MethodDelete, path: "/wishlist/" + productID, authed: true})
	if err != nil {
		return nil, "", err
	}
	var ids []string
	if err := env.DecodeData(&ids); err != nil {
		return nil, "", err
	}
	return ids, env.Message, nil
}
