package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
	"github.com/sahaniaman/ecom-techora/internal/platform/textutil"
	"github.com/sahaniaman/ecom-techora/internal/repositories"
)

const productIDPrefix = "prod_"

var (
	// ErrCatalogInvalidInput indicates the caller supplied invalid data to a catalog operation.
	ErrCatalogInvalidInput = errors.New("catalog: invalid input")
	// ErrProductNotFound indicates the product could not be located.
	ErrProductNotFound = errors.New("catalog: product not found")
	// ErrCategoryNotFound indicates the referenced category does not exist.
	ErrCategoryNotFound = errors.New("catalog: category not found")
	// ErrSKUConflict indicates another product already uses the SKU.
	ErrSKUConflict = errors.New("catalog: sku already in use")
)

// CatalogServiceDeps bundles collaborators required to construct a CatalogService.
type CatalogServiceDeps struct {
	Products    repositories.ProductRepository
	Categories  repositories.CategoryRepository
	Events      CatalogEventPublisher
	Logger      *zap.Logger
	Clock       func() time.Time
	IDGenerator func() string
	Sanitizer   func(string) string
}

type catalogService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	events     CatalogEventPublisher
	logger     *zap.Logger
	clock      func() time.Time
	newID      func() string
	sanitize   func(string) string
}

// NewCatalogService wires dependencies into a concrete CatalogService implementation.
func NewCatalogService(deps CatalogServiceDeps) (CatalogService, error) {
	if deps.Products == nil {
		return nil, errors.New("catalog service: product repository is required")
	}
	if deps.Categories == nil {
		return nil, errors.New("catalog service: category repository is required")
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string {
			return productIDPrefix + ulid.Make().String()
		}
	}
	sanitize := deps.Sanitizer
	if sanitize == nil {
		policy := bluemonday.StrictPolicy()
		sanitize = func(s string) string {
			return strings.TrimSpace(policy.Sanitize(s))
		}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &catalogService{
		products:   deps.Products,
		categories: deps.Categories,
		events:     deps.Events,
		logger:     logger,
		clock:      func() time.Time { return clock().UTC() },
		newID:      idGen,
		sanitize:   sanitize,
	}, nil
}

func (s *catalogService) ListProducts(ctx context.Context, query ProductQuery) (domain.Page[CatalogProduct], error) {
	query = query.Normalize()
	if query.CategoryID != "" {
		category, err := s.resolveCategory(ctx, query.CategoryID)
		if err != nil {
			return domain.Page[CatalogProduct]{}, err
		}
		query.CategoryID = category.ID
	}

	page, err := s.products.List(ctx, query)
	if err != nil {
		return domain.Page[CatalogProduct]{}, err
	}

	items, err := s.joinCategories(ctx, page.Items)
	if err != nil {
		return domain.Page[CatalogProduct]{}, err
	}
	return domain.Page[CatalogProduct]{
		Items:      items,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}, nil
}

func (s *catalogService) ListAllProducts(ctx context.Context) ([]CatalogProduct, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.joinCategories(ctx, products)
}

func (s *catalogService) GetProduct(ctx context.Context, productID string) (CatalogProduct, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return CatalogProduct{}, fmt.Errorf("%w: product id is required", ErrCatalogInvalidInput)
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return CatalogProduct{}, translateProductError(err)
	}
	return s.joinCategory(ctx, product), nil
}

func (s *catalogService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (CatalogProduct, error) {
	now := s.clock()

	name := strings.TrimSpace(cmd.Name)
	description := s.sanitize(cmd.Description)
	brand := strings.TrimSpace(cmd.Brand)
	sku := strings.ToUpper(strings.TrimSpace(cmd.SKU))

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if description == "" {
		missing = append(missing, "description")
	}
	if cmd.BasePrice <= 0 {
		missing = append(missing, "basePrice")
	}
	if brand == "" {
		missing = append(missing, "brand")
	}
	if strings.TrimSpace(cmd.Category) == "" {
		missing = append(missing, "category")
	}
	if len(cmd.Images) == 0 {
		missing = append(missing, "images")
	}
	if cmd.Stock < 0 {
		missing = append(missing, "stock")
	}
	if sku == "" {
		missing = append(missing, "sku")
	}
	if len(missing) > 0 {
		return CatalogProduct{}, fmt.Errorf("%w: missing or invalid fields: %s", ErrCatalogInvalidInput, strings.Join(missing, ", "))
	}
	if cmd.ReservedStock < 0 {
		return CatalogProduct{}, fmt.Errorf("%w: reservedStock cannot be negative", ErrCatalogInvalidInput)
	}
	if cmd.ReservedStock > cmd.Stock {
		return CatalogProduct{}, fmt.Errorf("%w: reservedStock cannot exceed stock", ErrCatalogInvalidInput)
	}

	category, err := s.resolveCategory(ctx, cmd.Category)
	if err != nil {
		return CatalogProduct{}, err
	}

	if err := s.ensureSKUAvailable(ctx, sku, ""); err != nil {
		return CatalogProduct{}, err
	}

	discounted := cmd.BasePrice
	if cmd.DiscountedPrice != nil {
		discounted = *cmd.DiscountedPrice
	}
	base, discounted, discount := domain.NormalizePricing(cmd.BasePrice, discounted)

	status, cause := domain.NextStatus(cmd.Stock, domain.ProductStatusActive, domain.StatusCauseAuto)

	lowStock := 10
	if cmd.LowStockAlert != nil && *cmd.LowStockAlert >= 0 {
		lowStock = *cmd.LowStockAlert
	}

	product := domain.Product{
		ID:                s.newID(),
		Name:              name,
		Description:       description,
		BasePrice:         base,
		DiscountedPrice:   discounted,
		Discount:          discount,
		Brand:             brand,
		CategoryID:        category.ID,
		Subcategory:       strings.TrimSpace(cmd.Subcategory),
		Images:            cmd.Images,
		Stock:             cmd.Stock,
		ReservedStock:     cmd.ReservedStock,
		LowStockThreshold: lowStock,
		SKU:               sku,
		Specifications:    textutil.NormalizeStringMap(cmd.Specifications),
		Tags:              normalizeTags(cmd.Tags),
		Features:          normalizeFeatures(cmd.Features),
		Status:            status,
		StatusCause:       cause,
		IsFeatured:        cmd.IsFeatured,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.products.Insert(ctx, product); err != nil {
		return CatalogProduct{}, translateProductError(err)
	}

	s.publishEvent(ctx, CatalogEventProductCreated, product)
	return NewCatalogProduct(product, summarize(category)), nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) (CatalogProduct, error) {
	productID := strings.TrimSpace(cmd.ProductID)
	if productID == "" {
		return CatalogProduct{}, fmt.Errorf("%w: product id is required", ErrCatalogInvalidInput)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return CatalogProduct{}, translateProductError(err)
	}

	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return CatalogProduct{}, fmt.Errorf("%w: name cannot be empty", ErrCatalogInvalidInput)
		}
		product.Name = name
	}
	if cmd.Description != nil {
		description := s.sanitize(*cmd.Description)
		if description == "" {
			return CatalogProduct{}, fmt.Errorf("%w: description cannot be empty", ErrCatalogInvalidInput)
		}
		product.Description = description
	}
	if cmd.Brand != nil {
		product.Brand = strings.TrimSpace(*cmd.Brand)
	}
	if cmd.Subcategory != nil {
		product.Subcategory = strings.TrimSpace(*cmd.Subcategory)
	}
	if cmd.Category != nil {
		category, err := s.resolveCategory(ctx, *cmd.Category)
		if err != nil {
			return CatalogProduct{}, err
		}
		product.CategoryID = category.ID
	}
	if cmd.SKU != nil {
		sku := strings.ToUpper(strings.TrimSpace(*cmd.SKU))
		if sku == "" {
			return CatalogProduct{}, fmt.Errorf("%w: sku cannot be empty", ErrCatalogInvalidInput)
		}
		if err := s.ensureSKUAvailable(ctx, sku, product.ID); err != nil {
			return CatalogProduct{}, err
		}
		product.SKU = sku
	}
	if cmd.Images != nil {
		if len(cmd.Images) == 0 {
			return CatalogProduct{}, fmt.Errorf("%w: images cannot be empty", ErrCatalogInvalidInput)
		}
		product.Images = cmd.Images
	}
	if cmd.BasePrice != nil {
		if *cmd.BasePrice <= 0 {
			return CatalogProduct{}, fmt.Errorf("%w: basePrice must be positive", ErrCatalogInvalidInput)
		}
		product.BasePrice = *cmd.BasePrice
		if cmd.DiscountedPrice == nil {
			product.DiscountedPrice = *cmd.BasePrice
		}
	}
	if cmd.DiscountedPrice != nil {
		product.DiscountedPrice = *cmd.DiscountedPrice
	}
	product.BasePrice, product.DiscountedPrice, product.Discount = domain.NormalizePricing(product.BasePrice, product.DiscountedPrice)

	if cmd.Specifications != nil {
		product.Specifications = textutil.NormalizeStringMap(cmd.Specifications)
	}
	if cmd.Tags != nil {
		product.Tags = normalizeTags(cmd.Tags)
	}
	if cmd.Features != nil {
		product.Features = normalizeFeatures(cmd.Features)
	}
	if cmd.SalesCount != nil {
		if *cmd.SalesCount < 0 {
			return CatalogProduct{}, fmt.Errorf("%w: salesCount cannot be negative", ErrCatalogInvalidInput)
		}
		product.SalesCount = *cmd.SalesCount
	}
	if cmd.IsFeatured != nil {
		product.IsFeatured = *cmd.IsFeatured
	}
	if cmd.LowStockAlert != nil && *cmd.LowStockAlert >= 0 {
		product.LowStockThreshold = *cmd.LowStockAlert
	}

	if cmd.Status != nil {
		switch *cmd.Status {
		case domain.ProductStatusActive, domain.ProductStatusInactive, domain.ProductStatusOutOfStock:
		default:
			return CatalogProduct{}, fmt.Errorf("%w: unknown status %q", ErrCatalogInvalidInput, *cmd.Status)
		}
		product.Status = *cmd.Status
		product.StatusCause = domain.StatusCauseManual
	}
	if cmd.Stock != nil {
		if *cmd.Stock < 0 {
			return CatalogProduct{}, fmt.Errorf("%w: stock cannot be negative", ErrCatalogInvalidInput)
		}
		product.Stock = *cmd.Stock
	}
	if cmd.ReservedStock != nil {
		if *cmd.ReservedStock < 0 {
			return CatalogProduct{}, fmt.Errorf("%w: reservedStock cannot be negative", ErrCatalogInvalidInput)
		}
		product.ReservedStock = *cmd.ReservedStock
	}
	// Re-check on every save so a stock decrease alone cannot leave more
	// units reserved than exist.
	if product.ReservedStock > product.Stock {
		return CatalogProduct{}, fmt.Errorf("%w: reservedStock cannot exceed stock", ErrCatalogInvalidInput)
	}
	product.Status, product.StatusCause = domain.NextStatus(product.Stock, product.Status, product.StatusCause)

	product.UpdatedAt = s.clock()

	if err := s.products.Update(ctx, product); err != nil {
		return CatalogProduct{}, translateProductError(err)
	}

	s.publishEvent(ctx, CatalogEventProductUpdated, product)
	return s.joinCategory(ctx, product), nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return fmt.Errorf("%w: product id is required", ErrCatalogInvalidInput)
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return translateProductError(err)
	}
	if err := s.products.Delete(ctx, productID); err != nil {
		return translateProductError(err)
	}
	s.publishEvent(ctx, CatalogEventProductDeleted, product)
	return nil
}

func (s *catalogService) AddReview(ctx context.Context, cmd AddReviewCommand) (CatalogProduct, error) {
	productID := strings.TrimSpace(cmd.ProductID)
	if productID == "" {
		return CatalogProduct{}, fmt.Errorf("%w: product id is required", ErrCatalogInvalidInput)
	}
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return CatalogProduct{}, fmt.Errorf("%w: rating must be between 1 and 5", ErrCatalogInvalidInput)
	}
	comment := s.sanitize(cmd.Comment)
	if comment == "" {
		return CatalogProduct{}, fmt.Errorf("%w: comment is required", ErrCatalogInvalidInput)
	}

	now := s.clock()
	review := domain.Review{
		ReviewBy:  strings.TrimSpace(cmd.UserName),
		Message:   comment,
		Rating:    cmd.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if review.ReviewBy == "" {
		review.ReviewBy = strings.TrimSpace(cmd.UserID)
	}

	product, err := s.products.AppendReview(ctx, productID, review)
	if err != nil {
		return CatalogProduct{}, translateProductError(err)
	}
	return s.joinCategory(ctx, product), nil
}

// resolveCategory looks up a category reference by document id first, then by
// slug. Unknown references surface as ErrCategoryNotFound rather than being
// silently created.
func (s *catalogService) resolveCategory(ctx context.Context, ref string) (domain.Category, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Category{}, fmt.Errorf("%w: category is required", ErrCatalogInvalidInput)
	}

	category, err := s.categories.FindByID(ctx, ref)
	if err == nil {
		return category, nil
	}
	if !isNotFound(err) {
		return domain.Category{}, err
	}

	category, err = s.categories.FindBySlug(ctx, domain.Slugify(ref))
	if err == nil {
		return category, nil
	}
	if isNotFound(err) {
		return domain.Category{}, fmt.Errorf("%w: %q", ErrCategoryNotFound, ref)
	}
	return domain.Category{}, err
}

func (s *catalogService) ensureSKUAvailable(ctx context.Context, sku, excludeProductID string) error {
	existing, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID == excludeProductID {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrSKUConflict, sku)
}

func (s *catalogService) joinCategory(ctx context.Context, product domain.Product) CatalogProduct {
	joined := NewCatalogProduct(product, nil)
	if product.CategoryID == "" {
		return joined
	}
	category, err := s.categories.FindByID(ctx, product.CategoryID)
	if err != nil {
		s.logger.Warn("category join failed",
			zap.String("productId", product.ID),
			zap.String("categoryId", product.CategoryID),
			zap.Error(err))
		return joined
	}
	joined.Category = summarize(category)
	return joined
}

func (s *catalogService) joinCategories(ctx context.Context, products []domain.Product) ([]CatalogProduct, error) {
	categories, err := s.categories.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*CategorySummary, len(categories))
	for _, category := range categories {
		byID[category.ID] = summarize(category)
	}

	joined := make([]CatalogProduct, 0, len(products))
	for _, product := range products {
		joined = append(joined, NewCatalogProduct(product, byID[product.CategoryID]))
	}
	return joined, nil
}

// publishEvent is fire-and-forget: a publish failure never fails the request.
func (s *catalogService) publishEvent(ctx context.Context, eventType string, product domain.Product) {
	if s.events == nil {
		return
	}
	event := CatalogEvent{
		Type:       eventType,
		ProductID:  product.ID,
		SKU:        product.SKU,
		CategoryID: product.CategoryID,
		Status:     product.Status,
		OccurredAt: s.clock(),
	}
	if err := s.events.PublishCatalogEvent(ctx, event); err != nil {
		s.logger.Warn("catalog event publish failed",
			zap.String("eventType", eventType),
			zap.String("productId", product.ID),
			zap.Error(err))
	}
}

func summarize(category domain.Category) *CategorySummary {
	return &CategorySummary{ID: category.ID, Name: category.Name, Slug: category.Slug}
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// normalizeFeatures trims bullet-point features but keeps their casing, which
// is display copy rather than a search key.
func normalizeFeatures(features []string) []string {
	out := make([]string, 0, len(features))
	for _, feature := range features {
		feature = strings.TrimSpace(feature)
		if feature == "" {
			continue
		}
		out = append(out, feature)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isNotFound(err error) bool {
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.IsNotFound()
	}
	return false
}

func isConflict(err error) bool {
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.IsConflict()
	}
	return false
}

func translateProductError(err error) error {
	switch {
	case isNotFound(err):
		return fmt.Errorf("%w: %v", ErrProductNotFound, err)
	case isConflict(err):
		return fmt.Errorf("%w: %v", ErrSKUConflict, err)
	default:
		return err
	}
}
