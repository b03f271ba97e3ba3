package services

import (
	"context"
	"time"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
)

// Type aliases expose domain models to the services package without reversing dependency direction.
type (
	Product            = domain.Product
	ProductQuery       = domain.ProductQuery
	Category           = domain.Category
	Review             = domain.Review
	User               = domain.User
	UserRole           = domain.UserRole
	SystemHealthReport = domain.SystemHealthReport
)

// CategorySummary is the read-time denormalised category attached to catalog
// responses.
type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CatalogProduct is a product joined with its category summary for responses.
// AvailableStock and IsLowStock are derived at read time so clients never
// subtract reservations themselves.
type CatalogProduct struct {
	Product
	Category       *CategorySummary `json:"category"`
	AvailableStock int              `json:"availableStock"`
	IsLowStock     bool             `json:"isLowStock"`
}

// NewCatalogProduct joins a product with its category summary and fills the
// derived stock fields.
func NewCatalogProduct(product domain.Product, category *CategorySummary) CatalogProduct {
	return CatalogProduct{
		Product:        product,
		Category:       category,
		AvailableStock: product.AvailableStock(),
		IsLowStock:     product.IsLowStock(),
	}
}

// CatalogService manages the product catalog for storefront and admin surfaces.
type CatalogService interface {
	ListProducts(ctx context.Context, query ProductQuery) (domain.Page[CatalogProduct], error)
	ListAllProducts(ctx context.Context) ([]CatalogProduct, error)
	GetProduct(ctx context.Context, productID string) (CatalogProduct, error)
	CreateProduct(ctx context.Context, cmd CreateProductCommand) (CatalogProduct, error)
	UpdateProduct(ctx context.Context, cmd UpdateProductCommand) (CatalogProduct, error)
	DeleteProduct(ctx context.Context, productID string) error
	AddReview(ctx context.Context, cmd AddReviewCommand) (CatalogProduct, error)
}

// CategoryService manages the category collection.
type CategoryService interface {
	ListActive(ctx context.Context) ([]Category, error)
	ListAll(ctx context.Context) ([]Category, error)
	Ensure(ctx context.Context, cmd EnsureCategoryCommand) (Category, error)
	SeedDefaults(ctx context.Context) ([]Category, error)
	DeleteAll(ctx context.Context) (int, error)
}

// CartService manages the cart ledger embedded in the user document.
type CartService interface {
	GetCart(ctx context.Context, userID string) (CartView, error)
	AddItem(ctx context.Context, cmd AddCartItemCommand) (CartView, error)
	SetQuantity(ctx context.Context, cmd SetCartQuantityCommand) (CartView, error)
	RemoveItem(ctx context.Context, userID, productID string) (CartView, error)
	Clear(ctx context.Context, userID string) (CartView, error)
}

// WishlistService manages the wishlist ledger embedded in the user document.
// Add and Remove return the resulting wishlist product ids so toggles render
// the updated list without a second request.
type WishlistService interface {
	List(ctx context.Context, userID string) ([]CatalogProduct, error)
	Add(ctx context.Context, userID, productID string) ([]string, error)
	Remove(ctx context.Context, userID, productID string) ([]string, error)
}

// UserService manages user records, role resolution, and identity lifecycle sync.
type UserService interface {
	GetUser(ctx context.Context, userID string) (User, error)
	ListUsers(ctx context.Context, page, limit int) (domain.Page[User], error)
	UpdateUser(ctx context.Context, cmd UpdateUserCommand) (User, error)
	DeleteUser(ctx context.Context, userID string) error
	ResolveRole(ctx context.Context, uid string) (UserRole, error)
	SyncIdentity(ctx context.Context, event IdentityEvent) error
}

// SystemService aggregates utility endpoints such as health checks.
type SystemService interface {
	HealthReport(ctx context.Context) (SystemHealthReport, error)
}

// Catalog event types published on product lifecycle and stock transitions.
const (
	CatalogEventProductCreated = "product.created"
	CatalogEventProductUpdated = "product.updated"
	CatalogEventProductDeleted = "product.deleted"
)

// CatalogEvent describes a product lifecycle or stock transition notification.
type CatalogEvent struct {
	Type       string               `json:"type"`
	ProductID  string               `json:"productId"`
	SKU        string               `json:"sku"`
	CategoryID string               `json:"categoryId"`
	Status     domain.ProductStatus `json:"status"`
	OccurredAt time.Time            `json:"occurredAt"`
}

// CatalogEventPublisher accepts catalog change notifications for downstream processing.
type CatalogEventPublisher interface {
	PublishCatalogEvent(ctx context.Context, event CatalogEvent) error
}

// Command and DTO definitions ------------------------------------------------

// CreateProductCommand carries the admin product creation payload.
type CreateProductCommand struct {
	Name            string
	Description     string
	BasePrice       float64
	DiscountedPrice *float64
	Brand           string
	Category        string
	Subcategory     string
	Images          []string
	Stock           int
	ReservedStock   int
	SKU             string
	Specifications  map[string]string
	Tags            []string
	Features        []string
	IsFeatured      bool
	LowStockAlert   *int
}

// UpdateProductCommand carries a partial product update. Nil fields are left
// untouched.
type UpdateProductCommand struct {
	ProductID       string
	Name            *string
	Description     *string
	BasePrice       *float64
	DiscountedPrice *float64
	Brand           *string
	Category        *string
	Subcategory     *string
	Images          []string
	Stock           *int
	ReservedStock   *int
	SalesCount      *int
	SKU             *string
	Status          *domain.ProductStatus
	Specifications  map[string]string
	Tags            []string
	Features        []string
	IsFeatured      *bool
	LowStockAlert   *int
}

// AddReviewCommand appends an authenticated user's review to a product.
type AddReviewCommand struct {
	ProductID string
	UserID    string
	UserName  string
	Rating    int
	Comment   string
}

// EnsureCategoryCommand creates a category, deriving the slug when absent.
type EnsureCategoryCommand struct {
	Name        string
	Slug        string
	Description string
	Image       string
}

// AddCartItemCommand adds or increments a cart entry.
type AddCartItemCommand struct {
	UserID    string
	ProductID string
	Quantity  int
}

// SetCartQuantityCommand replaces the quantity of an existing cart entry.
type SetCartQuantityCommand struct {
	UserID    string
	ProductID string
	Quantity  int
}

// CartItemView is a cart entry denormalised with a live product snapshot.
// Product is nil when the snapshot fetch failed or the product was removed.
type CartItemView struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	AddedAt   time.Time        `json:"addedAt"`
	Product   *ProductSnapshot `json:"product"`
}

// ProductSnapshot is the subset of product fields carts render with.
type ProductSnapshot struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Images            []string             `json:"images"`
	BasePrice         float64              `json:"basePrice"`
	DiscountedPrice   float64              `json:"discountedPrice"`
	Stock             int                  `json:"stock"`
	LowStockThreshold int                  `json:"lowStockThreshold"`
	Status            domain.ProductStatus `json:"status"`
}

// CartView is the denormalised cart returned by the cart endpoints.
type CartView struct {
	Items      []CartItemView `json:"items"`
	TotalItems int            `json:"totalItems"`
}

// UpdateUserCommand carries a superadmin role/status change.
type UpdateUserCommand struct {
	UserID string
	Role   *domain.UserRole
	Status *domain.UserStatus
}

// Identity lifecycle event names delivered by the identity webhook.
const (
	IdentityEventUserCreated = "user.created"
	IdentityEventUserUpdated = "user.updated"
	IdentityEventUserDeleted = "user.deleted"
)

// IdentityEvent is a provider lifecycle notification for a single account.
type IdentityEvent struct {
	Type    string `json:"type"`
	UID     string `json:"uid"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Picture string `json:"picture"`
	Locale  string `json:"locale"`
}
