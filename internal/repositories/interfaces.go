package repositories

import (
	"context"
	"time"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
)

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// ProductRepository persists catalog products.
type ProductRepository interface {
	Insert(ctx context.Context, product domain.Product) error
	Update(ctx context.Context, product domain.Product) error
	Delete(ctx context.Context, productID string) error
	FindByID(ctx context.Context, productID string) (domain.Product, error)
	FindBySKU(ctx context.Context, sku string) (domain.Product, error)
	List(ctx context.Context, query domain.ProductQuery) (domain.Page[domain.Product], error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	AppendReview(ctx context.Context, productID string, review domain.Review) (domain.Product, error)
}

// CategoryRepository persists storefront categories.
type CategoryRepository interface {
	Insert(ctx context.Context, category domain.Category) error
	FindByID(ctx context.Context, categoryID string) (domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (domain.Category, error)
	FindByName(ctx context.Context, name string) (domain.Category, error)
	List(ctx context.Context, onlyStatus *domain.CategoryStatus) ([]domain.Category, error)
	DeleteAll(ctx context.Context) (int, error)
}

// UserRepository persists user documents including the embedded cart and
// wishlist ledgers. Cart mutations run inside Firestore transactions so
// concurrent requests never lose increments.
type UserRepository interface {
	Upsert(ctx context.Context, user domain.User) error
	Delete(ctx context.Context, userID string) error
	FindByID(ctx context.Context, userID string) (domain.User, error)
	List(ctx context.Context, page, limit int) (domain.Page[domain.User], error)
	UpdateFields(ctx context.Context, userID string, fields map[string]any) error

	AddCartEntry(ctx context.Context, userID, productID string, quantity int, addedAt time.Time) (domain.User, error)
	SetCartQuantity(ctx context.Context, userID, productID string, quantity int) (domain.User, error)
	RemoveCartEntry(ctx context.Context, userID, productID string) (domain.User, error)
	ClearCart(ctx context.Context, userID string) (domain.User, error)

	AddToWishlist(ctx context.Context, userID, productID string) error
	RemoveFromWishlist(ctx context.Context, userID, productID string) error
}

// HealthRepository exposes status of downstream dependencies for health checks.
type HealthRepository interface {
	Collect(ctx context.Context) (domain.SystemHealthReport, error)
}
