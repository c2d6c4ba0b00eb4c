package rest

import (
	"context"
	"net/http"

	"github.com/goliatone/go-storefront/core"
)

func (c *Client) ListAddresses(ctx context.Context) ([]core.Address, error) {
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/addresses", authed: true})
	if err != nil {
		return nil, err
	}
	var addresses []core.Address
	if err := env.DecodeData(&addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (c *Client) AddAddress(ctx context.Context, address core.Address) ([]core.Address, error) {
	env, err := c.do(ctx, call{method: http.MethodPost, path: "/addresses", body: address, authed: true})
	if err != nil {
		return nil, err
	}
	var addresses []core.Address
	if err := env.DecodeData(&addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (c *Client) RemoveAddress(ctx context.Context, addressID string) error {
	addressID, err := requireID("address id", addressID)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, call{method: http.MethodDelete, path: "/addresses/" + addressID, authed: true})
	return err
}
