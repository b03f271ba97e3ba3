package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
)

type repoError struct {
	msg         string
	notFound    bool
	conflict    bool
	unavailable bool
}

func (e *repoError) Error() string      { return e.msg }
func (e *repoError) IsNotFound() bool   { return e.notFound }
func (e *repoError) IsConflict() bool   { return e.conflict }
func (e *repoError) IsUnavailable() bool { return e.unavailable }

func notFoundErr(format string, args ...any) error {
	return &repoError{msg: fmt.Sprintf(format, args...), notFound: true}
}

func conflictErr(format string, args ...any) error {
	return &repoError{msg: fmt.Sprintf(format, args...), conflict: true}
}

type memoryProductRepo struct {
	mu       sync.Mutex
	products map[string]domain.Product
}

func newMemoryProductRepo() *memoryProductRepo {
	return &memoryProductRepo{products: map[string]domain.Product{}}
}

func (r *memoryProductRepo) Insert(_ context.Context, product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; ok {
		return conflictErr("product %s exists", product.ID)
	}
	r.products[product.ID] = product
	return nil
}

func (r *memoryProductRepo) Update(_ context.Context, product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return notFoundErr("product %s missing", product.ID)
	}
	r.products[product.ID] = product
	return nil
}

func (r *memoryProductRepo) Delete(_ context.Context, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[productID]; !ok {
		return notFoundErr("product %s missing", productID)
	}
	delete(r.products, productID)
	return nil
}

func (r *memoryProductRepo) FindByID(_ context.Context, productID string) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[productID]
	if !ok {
		return domain.Product{}, notFoundErr("product %s missing", productID)
	}
	return product, nil
}

func (r *memoryProductRepo) FindBySKU(_ context.Context, sku string) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sku = strings.ToUpper(sku)
	for _, product := range r.products {
		if strings.ToUpper(product.SKU) == sku {
			return product, nil
		}
	}
	return domain.Product{}, notFoundErr("sku %s missing", sku)
}

func (r *memoryProductRepo) List(_ context.Context, query domain.ProductQuery) (domain.Page[domain.Product], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	query = query.Normalize()
	matched := make([]domain.Product, 0, len(r.products))
	for _, product := range r.products {
		if query.Matches(product) {
			matched = append(matched, product)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	domain.SortProducts(matched, query.Sort)
	return domain.Paginate(matched, query), nil
}

func (r *memoryProductRepo) ListAll(_ context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]domain.Product, 0, len(r.products))
	for _, product := range r.products {
		all = append(all, product)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

func (r *memoryProductRepo) CountByCategory(_ context.Context, categoryID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, product := range r.products {
		if product.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *memoryProductRepo) AppendReview(_ context.Context, productID string, review domain.Review) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[productID]
	if !ok {
		return domain.Product{}, notFoundErr("product %s missing", productID)
	}
	product.Reviews = append(product.Reviews, review)
	product.Rating, product.TotalReviews = domain.RecalculateRating(product.Reviews)
	product.UpdatedAt = review.UpdatedAt
	r.products[productID] = product
	return product, nil
}

type memoryCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]domain.Category
}

func newMemoryCategoryRepo() *memoryCategoryRepo {
	return &memoryCategoryRepo{categories: map[string]domain.Category{}}
}

func (r *memoryCategoryRepo) Insert(_ context.Context, category domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; ok {
		return conflictErr("category %s exists", category.ID)
	}
	r.categories[category.ID] = category
	return nil
}

func (r *memoryCategoryRepo) FindByID(_ context.Context, categoryID string) (domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[categoryID]
	if !ok {
		return domain.Category{}, notFoundErr("category %s missing", categoryID)
	}
	return category, nil
}

func (r *memoryCategoryRepo) FindBySlug(_ context.Context, slug string) (domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, category := range r.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return domain.Category{}, notFoundErr("slug %s missing", slug)
}

func (r *memoryCategoryRepo) FindByName(_ context.Context, name string) (domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, category := range r.categories {
		if strings.EqualFold(category.Name, name) {
			return category, nil
		}
	}
	return domain.Category{}, notFoundErr("name %s missing", name)
}

func (r *memoryCategoryRepo) List(_ context.Context, onlyStatus *domain.CategoryStatus) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		if onlyStatus != nil && category.Status != *onlyStatus {
			continue
		}
		out = append(out, category)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryCategoryRepo) DeleteAll(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := len(r.categories)
	r.categories = map[string]domain.Category{}
	return count, nil
}

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]domain.User{}}
}

func (r *memoryUserRepo) Upsert(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return notFoundErr("user %s missing", userID)
	}
	delete(r.users, userID)
	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, userID string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return domain.User{}, notFoundErr("user %s missing", userID)
	}
	return user, nil
}

func (r *memoryUserRepo) List(_ context.Context, page, limit int) (domain.Page[domain.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	query := domain.ProductQuery{Page: page, Limit: limit}.Normalize()
	return domain.Paginate(users, query), nil
}

func (r *memoryUserRepo) UpdateFields(_ context.Context, userID string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return notFoundErr("user %s missing", userID)
	}
	for path, value := range fields {
		switch path {
		case "role":
			user.Role = value.(domain.UserRole)
		case "status":
			user.Status = value.(domain.UserStatus)
		case "updatedAt":
			user.UpdatedAt = value.(time.Time)
		}
	}
	r.users[userID] = user
	return nil
}

func (r *memoryUserRepo) AddCartEntry(_ context.Context, userID, productID string, quantity int, addedAt time.Time) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return domain.User{}, notFoundErr("user %s missing", userID)
	}
	if idx := user.CartIndex(productID); idx >= 0 {
		user.Cart[idx].Quantity += quantity
	} else {
		user.Cart = append(user.Cart, domain.CartEntry{ProductID: productID, Quantity: quantity, AddedAt: addedAt})
	}
	user.UpdatedAt = addedAt
	r.users[userID] = user
	return user, nil
}

func (r *memoryUserRepo) SetCartQuantity(_ context.Context, userID, productID string, quantity int) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return domain.User{}, notFoundErr("user %s missing", userID)
	}
	idx := user.CartIndex(productID)
	if idx < 0 {
		return domain.User{}, notFoundErr("product %s not in cart", productID)
	}
	user.Cart[idx].Quantity = quantity
	r.users[userID] = user
	return user, nil
}

func (r *memoryUserRepo) RemoveCartEntry(_ context.Context, userID, productID string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return domain.User{}, notFoundErr("user %s missing", userID)
	}
	if idx := user.CartIndex(productID); idx >= 0 {
		user.Cart = append(user.Cart[:idx], user.Cart[idx+1:]...)
	}
	r.users[userID] = user
	return user, nil
}

func (r *memoryUserRepo) ClearCart(_ context.Context, userID string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return domain.User{}, notFoundErr("user %s missing", userID)
	}
	user.Cart = nil
	r.users[userID] = user
	return user, nil
}

func (r *memoryUserRepo) AddToWishlist(_ context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return notFoundErr("user %s missing", userID)
	}
	if !user.HasWishlisted(productID) {
		user.Wishlist = append(user.Wishlist, productID)
	}
	r.users[userID] = user
	return nil
}

func (r *memoryUserRepo) RemoveFromWishlist(_ context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return notFoundErr("user %s missing", userID)
	}
	for i, id := range user.Wishlist {
		if id == productID {
			user.Wishlist = append(user.Wishlist[:i], user.Wishlist[i+1:]...)
			break
		}
	}
	r.users[userID] = user
	return nil
}

type captureCatalogEvents struct {
	mu     sync.Mutex
	events []CatalogEvent
}

func (c *captureCatalogEvents) PublishCatalogEvent(_ context.Context, event CatalogEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}
