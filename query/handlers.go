package query

import (
	"context"

	"github.com/goliatone/go-storefront/core"
)

// CartReader is the read surface of the cart store. Snapshot reads are local
// and never touch the network.
type CartReader interface {
	Snapshot() core.CartSnapshot
}

type WishlistReader interface {
	Snapshot() core.WishlistSnapshot
	Contains(productID string) bool
}

// CatalogReader is the read surface of the cached catalog.
type CatalogReader interface {
	ListProducts(ctx context.Context, query map[string]string) ([]core.Product, error)
	GetProduct(ctx context.Context, productID string) (core.Product, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
	GetCategory(ctx context.Context, categoryID string) (core.Category, error)
	ListSubCategories(ctx context.Context) ([]core.SubCategory, error)
	ListCategorySubCategories(ctx context.Context, categoryID string) ([]core.SubCategory, error)
	ListBrands(ctx context.Context) ([]core.Brand, error)
	GetBrand(ctx context.Context, brandID string) (core.Brand, error)
}

type ReviewReader interface {
	ListProductReviews(ctx context.Context, productID string) ([]core.Review, error)
}

type AddressReader interface {
	ListAddresses(ctx context.Context) ([]core.Address, error)
}

// Identity is the answer to "who is signed in". Claims is zero when
// SignedIn is false.
type Identity struct {
	SignedIn bool
	Claims   core.Claims
}

type GetCartQuery struct {
	reader CartReader
}

func NewGetCartQuery(reader CartReader) *GetCartQuery {
	return &GetCartQuery{reader: reader}
}

func (q *GetCartQuery) Query(_ context.Context, _ GetCartMessage) (core.CartSnapshot, error) {
	if q == nil || q.reader == nil {
		return core.CartSnapshot{}, queryDependencyError("query: cart reader is required")
	}
	return q.reader.Snapshot(), nil
}

type GetWishlistQuery struct {
	reader WishlistReader
}

func NewGetWishlistQuery(reader WishlistReader) *GetWishlistQuery {
	return &GetWishlistQuery{reader: reader}
}

func (q *GetWishlistQuery) Query(_ context.Context, _ GetWishlistMessage) (core.WishlistSnapshot, error) {
	if q == nil || q.reader == nil {
		return core.WishlistSnapshot{}, queryDependencyError("query: wishlist reader is required")
	}
	return q.reader.Snapshot(), nil
}

type IsWishlistedQuery struct {
	reader WishlistReader
}

func NewIsWishlistedQuery(reader WishlistReader) *IsWishlistedQuery {
	return &IsWishlistedQuery{reader: reader}
}

func (q *IsWishlistedQuery) Query(_ context.Context, msg IsWishlistedMessage) (bool, error) {
	if q == nil || q.reader == nil {
		return false, queryDependencyError("query: wishlist reader is required")
	}
	return q.reader.Contains(msg.ProductID), nil
}

type CurrentIdentityQuery struct {
	source core.CredentialSource
}

func NewCurrentIdentityQuery(source core.CredentialSource) *CurrentIdentityQuery {
	return &CurrentIdentityQuery{source: source}
}

func (q *CurrentIdentityQuery) Query(ctx context.Context, _ CurrentIdentityMessage) (Identity, error) {
	if q == nil || q.source == nil {
		return Identity{}, queryDependencyError("query: credential source is required")
	}
	credential, ok := q.source.Credential(ctx)
	if !ok {
		return Identity{}, nil
	}
	return Identity{SignedIn: true, Claims: credential.Claims}, nil
}

type ListProductsQuery struct {
	reader CatalogReader
}

func NewListProductsQuery(reader CatalogReader) *ListProductsQuery {
	return &ListProductsQuery{reader: reader}
}

func (q *ListProductsQuery) Query(ctx context.Context, msg ListProductsMessage) ([]core.Product, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: catalog reader is required")
	}
	return q.reader.ListProducts(ctx, msg.Query)
}

type GetProductQuery struct {
	reader CatalogReader
}

func NewGetProductQuery(reader CatalogReader) *GetProductQuery {
	return &GetProductQuery{reader: reader}
}

func (q *GetProductQuery) Query(ctx context.Context, msg GetProductMessage) (core.Product, error) {
	if q == nil || q.reader == nil {
		return core.Product{}, queryDependencyError("query: catalog reader is required")
	}
	return q.reader.GetProduct(ctx, msg.ProductID)
}

type ListCategoriesQuery struct {
	reader CatalogReader
}

func NewListCategoriesQuery(reader CatalogReader) *ListCategoriesQuery {
	return &ListCategoriesQuery{reader: reader}
}

func (q *ListCategoriesQuery) Query(ctx context.Context, _ ListCategoriesMessage) ([]core.Category, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: catalog reader is required")
	}
	return q.reader.ListCategories(ctx)
}

type GetCategoryQuery struct {
	reader CatalogReader
}

func NewGetCategoryQuery(reader CatalogReader) *GetCategoryQuery {
	return &GetCategoryQuery{reader: reader}
}

func (q *GetCategoryQuery) Query(ctx context.Context, msg GetCategoryMessage) (core.Category, error) {
	if q == nil || q.reader == nil {
		return core.Category{}, queryDependencyError("query: catalog reader is required")
	}
	return q.reader.GetCategory(ctx, msg.CategoryID)
}

type ListSubCategoriesQuery struct {
	reader CatalogReader
}

func NewListSubCategoriesQuery(reader CatalogReader) *ListSubCategoriesQuery {
	return &ListSubCategoriesQuery{reader: reader}
}

func (q *ListSubCategoriesQuery) Query(ctx context.Context, _ ListSubCategoriesMessage) ([]core.SubCategory, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: catalog reader is required")
	}
	return q.reader.ListSubCategories(ctx)
}

type ListCategorySubCategoriesQuery struct {
	reader CatalogReader
}

func NewListCategorySubCategoriesQuery(reader CatalogReader) *ListCategorySubCategoriesQuery {
	return &ListCategorySubCategoriesQuery{reader: reader}
}

func (q *ListCategorySubCategoriesQuery) Query(
	ctx context.Context,
	msg ListCategorySubCategoriesMessage,
) ([]core.SubCategory, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: catalog reader is required")
	}
	return q.reader.ListCategorySubCategories(ctx, msg.CategoryID)
}

type ListBrandsQuery struct {
	reader CatalogReader
}

func NewListBrandsQuery(reader CatalogReader) *ListBrandsQuery {
	return &ListBrandsQuery{reader: reader}
}

func (q *ListBrandsQuery) Query(ctx context.Context, _ ListBrandsMessage) ([]core.Brand, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: catalog reader is required")
	}
	return q.reader.ListBrands(ctx)
}

type GetBrandQuery struct {
	reader CatalogReader
}

func NewGetBrandQuery(reader CatalogReader) *GetBrandQuery {
	return &GetBrandQuery{reader: reader}
}

func (q *GetBrandQuery) Query(ctx context.Context, msg GetBrandMessage) (core.Brand, error) {
	if q == nil || q.reader == nil {
		return core.Brand{}, queryDependencyError("query: catalog reader is required")
	}
	return q.reader.GetBrand(ctx, msg.BrandID)
}

type ListProductReviewsQuery struct {
	reader ReviewReader
}

func NewListProductReviewsQuery(reader ReviewReader) *ListProductReviewsQuery {
	return &ListProductReviewsQuery{reader: reader}
}

func (q *ListProductReviewsQuery) Query(ctx context.Context, msg ListProductReviewsMessage) ([]core.Review, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: review reader is required")
	}
	return q.reader.ListProductReviews(ctx, msg.ProductID)
}

type ListAddressesQuery struct {
	reader AddressReader
}

func NewListAddressesQuery(reader AddressReader) *ListAddressesQuery {
	return &ListAddressesQuery{reader: reader}
}

func (q *ListAddressesQuery) Query(ctx context.Context, _ ListAddressesMessage) ([]core.Address, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: address reader is required")
	}
	return q.reader.ListAddresses(ctx)
}
