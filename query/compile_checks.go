package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-storefront/core"
)

var (
	_ gocmd.Querier[GetCartMessage, core.CartSnapshot]                    = (*GetCartQuery)(nil)
	_ gocmd.Querier[GetWishlistMessage, core.WishlistSnapshot]            = (*GetWishlistQuery)(nil)
	_ gocmd.Querier[IsWishlistedMessage, bool]                            = (*IsWishlistedQuery)(nil)
	_ gocmd.Querier[CurrentIdentityMessage, Identity]                     = (*CurrentIdentityQuery)(nil)
	_ gocmd.Querier[ListProductsMessage, []core.Product]                  = (*ListProductsQuery)(nil)
	_ gocmd.Querier[GetProductMessage, core.Product]                      = (*GetProductQuery)(nil)
	_ gocmd.Querier[ListCategoriesMessage, []core.Category]               = (*ListCategoriesQuery)(nil)
	_ gocmd.Querier[GetCategoryMessage, core.Category]                    = (*GetCategoryQuery)(nil)
	_ gocmd.Querier[ListSubCategoriesMessage, []core.SubCategory]         = (*ListSubCategoriesQuery)(nil)
	_ gocmd.Querier[ListCategorySubCategoriesMessage, []core.SubCategory] = (*ListCategorySubCategoriesQuery)(nil)
	_ gocmd.Querier[ListBrandsMessage, []core.Brand]                      = (*ListBrandsQuery)(nil)
	_ gocmd.Querier[GetBrandMessage, core.Brand]                          = (*GetBrandQuery)(nil)
	_ gocmd.Querier[ListProductReviewsMessage, []core.Review]             = (*ListProductReviewsQuery)(nil)
	_ gocmd.Querier[ListAddressesMessage, []core.Address]                 = (*ListAddressesQuery)(nil)
)
