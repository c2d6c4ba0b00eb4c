package rest

import (
	"context"
	"net/http"

	"github.com/goliatone/go-storefront/core"
)

func (c *Client) ListProductReviews(ctx context.Context, productID string) ([]core.Review, error) {
	productID, err := requireID("product id", productID)
	if err != nil {
		return nil, err
	}
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/products/" + productID + "/reviews"})
	if err != nil {
		return nil, err
	}
	var reviews []core.Review
	if err := env.DecodeData(&reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) GetReview(ctx context.Context, reviewID string) (core.Review, error) {
	reviewID, err := requireID("review id", reviewID)
	if err != nil {
		return core.Review{}, err
	}
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/reviews/" + reviewID})
	if err != nil {
		return core.Review{}, err
	}
	review := core.Review{}
	if err := env.DecodeData(&review); err != nil {
		return core.Review{}, err
	}
	return review, nil
}

func (c *Client) CreateReview(ctx context.Context, productID string, in core.ReviewInput) (core.Review, error) {
	productID, err := requireID("product id", productID)
	if err != nil {
		return core.Review{}, err
	}
	env, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/products/" + productID + "/reviews",
		body:   in,
		authed: true,
	})
	if err != nil {
		return core.Review{}, err
	}
	review := core.Review{}
	if err := env.DecodeData(&review); err != nil {
		return core.Review{}, err
	}
	return review, nil
}

func (c *Client) UpdateReview(ctx context.Context, reviewID string, in core.ReviewInput) (core.Review, error) {
	reviewID, err := requireID("review id", reviewID)
	if err != nil {
		return core.Review{}, err
	}
	env, err := c.do(ctx, call{method: http.MethodPut, path: "/reviews/" + reviewID, body: in, authed: true})
	if err != nil {
		return core.Review{}, err
	}
	review := core.Review{}
	if err := env.DecodeData(&review); err != nil {
		return core.Review{}, err
	}
	return review, nil
}

func (c *Client) DeleteReview(ctx context.Context, reviewID string) error {
	reviewID, err := requireID("review id", reviewID)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, call{method: http.MethodDelete, path: "/reviews/" + reviewID, authed: true})
	return err
}
