// Package query exposes the storefront's read operations as typed messages:
// local state reads (cart, wishlist, identity) and cached catalog reads.
package query

import (
	"fmt"
	"strings"
)

const (
	TypeGetCart                   = "storefront.query.cart.get"
	TypeGetWishlist               = "storefront.query.wishlist.get"
	TypeIsWishlisted              = "storefront.query.wishlist.contains"
	TypeCurrentIdentity           = "storefront.query.identity.current"
	TypeListProducts              = "storefront.query.catalog.products.list"
	TypeGetProduct                = "storefront.query.catalog.products.get"
	TypeListCategories            = "storefront.query.catalog.categories.list"
	TypeGetCategory               = "storefront.query.catalog.categories.get"
	TypeListSubCategories         = "storefront.query.catalog.subcategories.list"
	TypeListCategorySubCategories = "storefront.query.catalog.subcategories.by_category"
	TypeListBrands                = "storefront.query.catalog.brands.list"
	TypeGetBrand                  = "storefront.query.catalog.brands.get"
	TypeListProductReviews        = "storefront.query.reviews.by_product"
	TypeListAddresses             = "storefront.query.addresses.list"
)

type GetCartMessage struct{}

func (GetCartMessage) Type() string { return TypeGetCart }

func (GetCartMessage) Validate() error { return nil }

type GetWishlistMessage struct{}

func (GetWishlistMessage) Type() string { return TypeGetWishlist }

func (GetWishlistMessage) Validate() error { return nil }

type IsWishlistedMessage struct {
	ProductID string
}

func (IsWishlistedMessage) Type() string { return TypeIsWishlisted }

func (m IsWishlistedMessage) Validate() error {
	if strings.TrimSpace(m.ProductID) == "" {
		return fmt.Errorf("query: product id is required")
	}
	return nil
}

type CurrentIdentityMessage struct{}

func (CurrentIdentityMessage) Type() string { return TypeCurrentIdentity }

func (CurrentIdentityMessage) Validate() error { return nil }

type ListProductsMessage struct {
	Query map[string]string
}

func (ListProductsMessage) Type() string { return TypeListProducts }

func (ListProductsMessage) Validate() error { return nil }

type GetProductMessage struct {
	ProductID string
}

func (GetProductMessage) Type() string { return TypeGetProduct }

func (m GetProductMessage) Validate() error {
	if strings.TrimSpace(m.ProductID) == "" {
		return fmt.Errorf("query: product id is required")
	}
	return nil
}

type ListCategoriesMessage struct{}

func (ListCategoriesMessage) Type() string { return TypeListCategories }

func (ListCategoriesMessage) Validate() error { return nil }

type GetCategoryMessage struct {
	CategoryID string
}

func (GetCategoryMessage) Type() string { return TypeGetCategory }

func (m GetCategoryMessage) Validate() error {
	if strings.TrimSpace(m.CategoryID) == "" {
		return fmt.Errorf("query: category id is required")
	}
	return nil
}

type ListSubCategoriesMessage struct{}

func (ListSubCategoriesMessage) Type() string { return TypeListSubCategories }

func (ListSubCategoriesMessage) Validate() error { return nil }

type ListCategorySubCategoriesMessage struct {
	CategoryID string
}

func (ListCategorySubCategoriesMessage) Type() string { return TypeListCategorySubCategories }

func (m ListCategorySubCategoriesMessage) Validate() error {
	if strings.TrimSpace(m.CategoryID) == "" {
		return fmt.Errorf("query: category id is required")
	}
	return nil
}

type ListBrandsMessage struct{}

func (ListBrandsMessage) Type() string { return TypeListBrands }

func (ListBrandsMessage) Validate() error { return nil }

type GetBrandMessage struct {
	BrandID string
}

func (GetBrandMessage) Type() string { return TypeGetBrand }

func (m GetBrandMessage) Validate() error {
	if strings.TrimSpace(m.BrandID) == "" {
		return fmt.Errorf("query: brand id is required")
	}
	return nil
}

type ListProductReviewsMessage struct {
	ProductID string
}

func (ListProductReviewsMessage) Type() string { return TypeListProductReviews }

func (m ListProductReviewsMessage) Validate() error {
	if strings.TrimSpace(m.ProductID) == "" {
		return fmt.Errorf("query: product id is required")
	}
	return nil
}

type ListAddressesMessage struct{}

func (ListAddressesMessage) Type() string { return TypeListAddresses }

func (ListAddressesMessage) Validate() error { return nil }
