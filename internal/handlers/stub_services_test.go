package handlers

import (
	"context"
	"encoding/json"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
	"github.com/sahaniaman/ecom-techora/internal/services"
)

type stubCatalogService struct {
	listFunc      func(ctx context.Context, query domain.ProductQuery) (domain.Page[services.CatalogProduct], error)
	listAllFunc   func(ctx context.Context) ([]services.CatalogProduct, error)
	getFunc       func(ctx context.Context, productID string) (services.CatalogProduct, error)
	createFunc    func(ctx context.Context, cmd services.CreateProductCommand) (services.CatalogProduct, error)
	updateFunc    func(ctx context.Context, cmd services.UpdateProductCommand) (services.CatalogProduct, error)
	deleteFunc    func(ctx context.Context, productID string) error
	addReviewFunc func(ctx context.Context, cmd services.AddReviewCommand) (services.CatalogProduct, error)
}

func (s *stubCatalogService) ListProducts(ctx context.Context, query domain.ProductQuery) (domain.Page[services.CatalogProduct], error) {
	return s.listFunc(ctx, query)
}

func (s *stubCatalogService) ListAllProducts(ctx context.Context) ([]services.CatalogProduct, error) {
	return s.listAllFunc(ctx)
}

func (s *stubCatalogService) GetProduct(ctx context.Context, productID string) (services.CatalogProduct, error) {
	return s.getFunc(ctx, productID)
}

func (s *stubCatalogService) CreateProduct(ctx context.Context, cmd services.CreateProductCommand) (services.CatalogProduct, error) {
	return s.createFunc(ctx, cmd)
}

func (s *stubCatalogService) UpdateProduct(ctx context.Context, cmd services.UpdateProductCommand) (services.CatalogProduct, error) {
	return s.updateFunc(ctx, cmd)
}

func (s *stubCatalogService) DeleteProduct(ctx context.Context, productID string) error {
	return s.deleteFunc(ctx, productID)
}

func (s *stubCatalogService) AddReview(ctx context.Context, cmd services.AddReviewCommand) (services.CatalogProduct, error) {
	return s.addReviewFunc(ctx, cmd)
}

type stubCategoryService struct {
	listActiveFunc func(ctx context.Context) ([]services.Category, error)
	listAllFunc    func(ctx context.Context) ([]services.Category, error)
	ensureFunc     func(ctx context.Context, cmd services.EnsureCategoryCommand) (services.Category, error)
	seedFunc       func(ctx context.Context) ([]services.Category, error)
	deleteAllFunc  func(ctx context.Context) (int, error)
}

func (s *stubCategoryService) ListActive(ctx context.Context) ([]services.Category, error) {
	return s.listActiveFunc(ctx)
}

func (s *stubCategoryService) ListAll(ctx context.Context) ([]services.Category, error) {
	return s.listAllFunc(ctx)
}

func (s *stubCategoryService) Ensure(ctx context.Context, cmd services.EnsureCategoryCommand) (services.Category, error) {
	return s.ensureFunc(ctx, cmd)
}

func (s *stubCategoryService) SeedDefaults(ctx context.Context) ([]services.Category, error) {
	return s.seedFunc(ctx)
}

func (s *stubCategoryService) DeleteAll(ctx context.Context) (int, error) {
	return s.deleteAllFunc(ctx)
}

type stubCartService struct {
	getFunc    func(ctx context.Context, userID string) (services.CartView, error)
	addFunc    func(ctx context.Context, cmd services.AddCartItemCommand) (services.CartView, error)
	setFunc    func(ctx context.Context, cmd services.SetCartQuantityCommand) (services.CartView, error)
	removeFunc func(ctx context.Context, userID, productID string) (services.CartView, error)
	clearFunc  func(ctx context.Context, userID string) (services.CartView, error)
}

func (s *stubCartService) GetCart(ctx context.Context, userID string) (services.CartView, error) {
	return s.getFunc(ctx, userID)
}

func (s *stubCartService) AddItem(ctx context.Context, cmd services.AddCartItemCommand) (services.CartView, error) {
	return s.addFunc(ctx, cmd)
}

func (s *stubCartService) SetQuantity(ctx context.Context, cmd services.SetCartQuantityCommand) (services.CartView, error) {
	return s.setFunc(ctx, cmd)
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID, productID string) (services.CartView, error) {
	return s.removeFunc(ctx, userID, productID)
}

func (s *stubCartService) Clear(ctx context.Context, userID string) (services.CartView, error) {
	return s.clearFunc(ctx, userID)
}

type stubWishlistService struct {
	listFunc   func(ctx context.Context, userID string) ([]services.CatalogProduct, error)
	addFunc    func(ctx context.Context, userID, productID string) ([]string, error)
	removeFunc func(ctx context.Context, userID, productID string) ([]string, error)
}

func (s *stubWishlistService) List(ctx context.Context, userID string) ([]services.CatalogProduct, error) {
	return s.listFunc(ctx, userID)
}

func (s *stubWishlistService) Add(ctx context.Context, userID, productID string) ([]string, error) {
	return s.addFunc(ctx, userID, productID)
}

func (s *stubWishlistService) Remove(ctx context.Context, userID, productID string) ([]string, error) {
	return s.removeFunc(ctx, userID, productID)
}

type stubUserService struct {
	getFunc     func(ctx context.Context, userID string) (services.User, error)
	listFunc    func(ctx context.Context, page, limit int) (domain.Page[services.User], error)
	updateFunc  func(ctx context.Context, cmd services.UpdateUserCommand) (services.User, error)
	deleteFunc  func(ctx context.Context, userID string) error
	resolveFunc func(ctx context.Context, uid string) (services.UserRole, error)
	syncFunc    func(ctx context.Context, event services.IdentityEvent) error
}

func (s *stubUserService) GetUser(ctx context.Context, userID string) (services.User, error) {
	return s.getFunc(ctx, userID)
}

func (s *stubUserService) ListUsers(ctx context.Context, page, limit int) (domain.Page[services.User], error) {
	return s.listFunc(ctx, page, limit)
}

func (s *stubUserService) UpdateUser(ctx context.Context, cmd services.UpdateUserCommand) (services.User, error) {
	return s.updateFunc(ctx, cmd)
}

func (s *stubUserService) DeleteUser(ctx context.Context, userID string) error {
	return s.deleteFunc(ctx, userID)
}

func (s *stubUserService) ResolveRole(ctx context.Context, uid string) (services.UserRole, error) {
	return s.resolveFunc(ctx, uid)
}

func (s *stubUserService) SyncIdentity(ctx context.Context, event services.IdentityEvent) error {
	return s.syncFunc(ctx, event)
}

type stubSystemService struct {
	reportFunc func(ctx context.Context) (services.SystemHealthReport, error)
}

func (s *stubSystemService) HealthReport(ctx context.Context) (services.SystemHealthReport, error) {
	return s.reportFunc(ctx)
}

func decodeEnvelope(data []byte) (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
