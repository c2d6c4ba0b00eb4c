package rest

import (
	"context"
	"net/http"

	"github.com/goliatone/go-storefront/core"
)

// ListProducts returns the full product listing. Catalog reads are public;
// they never attach the credential header.
func (c *Client) ListProducts(ctx context.Context, query map[string]string) ([]core.Product, error) {
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/products", query: query})
	if err != nil {
		return nil, err
	}
	var products []core.Product
	if err := env.DecodeData(&products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, productID string) (core.Product, error) {
	productID, err := requireID("product id", productID)
	if err != nil {
		return core.Product{}, err
	}
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/products/" + productID})
	if err != nil {
		return core.Product{}, err
	}
	var product core.Product
	if err := env.DecodeData(&product); err != nil {
		return core.Product{}, err
	}
	return product, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]core.Category, error) {
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/categories"})
	if err != nil {
		return nil, err
	}
	var categories []core.Category
	if err := env.DecodeData(&categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, categoryID string) (core.Category, error) {
	categoryID, err := requireID("category id", categoryID)
	if err != nil {
		return core.Category{}, err
	}
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/categories/" + categoryID})
	if err != nil {
		return core.Category{}, err
	}
	var category core.Category
	if err := env.DecodeData(&category); err != nil {
		return core.Category{}, err
	}
	return category, nil
}

func (c *Client) ListSubCategories(ctx context.Context) ([]core.SubCategory, error) {
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/subcategories"})
	if err != nil {
		return nil, err
	}
	var subcategories []core.SubCategory
	if err := env.DecodeData(&subcategories); err != nil {
		return nil, err
	}
	return subcategories, nil
}

// ListCategorySubCategories returns the subcategories nested under one
// category.
func (c *Client) ListCategorySubCategories(ctx context.Context, categoryID string) ([]core.SubCategory, error) {
	categoryID, err := requireID("category id", categoryID)
	if err != nil {
		return nil, err
	}
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/categories/" + categoryID + "/subcategories"})
	if err != nil {
		return nil, err
	}
	var subcategories []core.SubCategory
	if err := env.DecodeData(&subcategories); err != nil {
		return nil, err
	}
	return subcategories, nil
}

func (c *Client) ListBrands(ctx context.Context) ([]core.Brand, error) {
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/brands"})
	if err != nil {
		return nil, err
	}
	var brands []core.Brand
	if err := env.DecodeData(&brands); err != nil {
		return nil, err
	}
	return brands, nil
}

func (c *Client) GetBrand(ctx context.Context, brandID string) (core.Brand, error) {
	brandID, err := requireID("brand id", brandID)
	if err != nil {
		return core.Brand{}, err
	}
	env, err := c.do(ctx, call{method: http.MethodGet, path: "/brands/" + brandID})
	if err != nil {
		return core.Brand{}, err
	}
	var brand core.Brand
	if err := env.DecodeData(&brand); err != nil {
		return core.Brand{}, err
	}
	return brand, nil
}
