package core

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog entry shape returned by the storefront API.
type Product struct {
	ID                 string          `json:"_id"`
	Title              string          `json:"title"`
	Slug               string          `json:"slug,omitempty"`
	Description        string          `json:"description,omitempty"`
	ImageCover         string          `json:"imageCover,omitempty"`
	Images             []string        `json:"images,omitempty"`
	Price              decimal.Decimal `json:"price"`
	PriceAfterDiscount decimal.Decimal `json:"priceAfterDiscount,omitempty"`
	RatingsAverage     float64         `json:"ratingsAverage,omitempty"`
	RatingsQuantity    int             `json:"ratingsQuantity,omitempty"`
	Category           *Category       `json:"category,omitempty"`
	Brand              *Brand          `json:"brand,omitempty"`
}

type Category struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Image string `json:"image,omitempty"`
}

type SubCategory struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Slug     string `json:"slug,omitempty"`
	Category string `json:"category,omitempty"`
}

type Brand struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Image string `json:"image,omitempty"`
}

type ReviewUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type Review struct {
	ID        string     `json:"_id"`
	Review    string     `json:"review"`
	Rating    float64    `json:"rating"`
	User      ReviewUser `json:"user"`
	Product   string     `json:"product"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
}

// CartItem is one line of the server-side cart. Count is always >= 1 in a
// well-formed snapshot; Price is the server-computed unit price.
type CartItem struct {
	LineID  string          `json:"_id,omitempty"`
	Count   int             `json:"count"`
	Price   decimal.Decimal `json:"price"`
	Product Product         `json:"product"`
}

// CartSnapshot is the server-authoritative cart aggregate. TotalPrice and
// TotalPriceAfterDiscount are computed by the server and never derived
// locally; optimistic updates leave them untouched until the next snapshot.
type CartSnapshot struct {
	ID                      string           `json:"_id"`
	Items                   []CartItem       `json:"products"`
	TotalPrice              decimal.Decimal  `json:"totalCartPrice"`
	TotalPriceAfterDiscount *decimal.Decimal `json:"totalCartPriceAfterDiscount,omitempty"`

	// ItemCount mirrors the envelope-level numOfCartItems field, which the
	// API reports next to the data payload rather than inside it.
	ItemCount int `json:"-"`
}

// Clone returns a deep enough copy for optimistic bookkeeping: line slices
// are copied, product metadata is shared (read-only downstream).
func (s CartSnapshot) Clone() CartSnapshot {
	out := s
	out.Items = append([]CartItem(nil), s.Items...)
	if s.TotalPriceAfterDiscount != nil {
		v := *s.TotalPriceAfterDiscount
		out.TotalPriceAfterDiscount = &v
	}
	return out
}

// Line returns the index of the line holding productID, or -1.
func (s CartSnapshot) Line(productID string) int {
	productID = strings.TrimSpace(productID)
	for i, item := range s.Items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

// WishlistSnapshot is the server-authoritative wishlist: a set of product
// identifiers plus whatever display metadata the server sent. Identifiers
// are unique; Items is kept sorted by product id for deterministic reads.
type WishlistSnapshot struct {
	Items []Product `json:"items"`
	Count int       `json:"count"`
}

func (s WishlistSnapshot) Contains(productID string) bool {
	productID = strings.TrimSpace(productID)
	for _, item := range s.Items {
		if item.ID == productID {
			return true
		}
	}
	return false
}

func (s WishlistSnapshot) Clone() WishlistSnapshot {
	out := s
	out.Items = append([]Product(nil), s.Items...)
	return out
}

// NewWishlistSnapshot builds a snapshot from products, dropping duplicate
// identifiers and normalizing order.
func NewWishlistSnapshot(items []Product) WishlistSnapshot {
	seen := map[string]struct{}{}
	out := make([]Product, 0, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		item.ID = id
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return WishlistSnapshot{Items: out, Count: len(out)}
}

// Claims are the identity attributes embedded in the session token. They are
// decoded without signature verification; the remote API is the authority.
type Claims struct {
	Subject   string
	Name      string
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

// Credential is the opaque session token plus its decoded claims. The raw
// value travels on the wire in the API's custom token header; claims are
// used only for local identity display and expiry checks.
type Credential struct {
	Raw    string
	Claims Claims
}

func (c Credential) Expired(now time.Time) bool {
	if c.Claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(*c.Claims.ExpiresAt)
}

type ShippingAddress struct {
	Details string `json:"details"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
}

type Address struct {
	ID      string `json:"_id"`
	Name    string `json:"name,omitempty"`
	Details string `json:"details"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
}

type Order struct {
	ID                string          `json:"_id"`
	User              ReviewUser      `json:"user,omitempty"`
	TotalOrderPrice   decimal.Decimal `json:"totalOrderPrice"`
	PaymentMethodType string          `json:"paymentMethodType,omitempty"`
	IsPaid            bool            `json:"isPaid"`
	IsDelivered       bool            `json:"isDelivered"`
	CreatedAt         time.Time       `json:"createdAt,omitempty"`
}

type UserProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// AuthSession is the result of a successful sign-in or sign-up.
type AuthSession struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type SignUpInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	RePassword string `json:"rePassword"`
	Phone      string `json:"phone"`
}

type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResetPasswordInput struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	Password        string `json:"password"`
	RePassword      string `json:"rePassword"`
}

type UpdateMeInput struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type ReviewInput struct {
	Review string  `json:"review"`
	Rating float64 `json:"rating"`
}
