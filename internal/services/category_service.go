package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
	"github.com/sahaniaman/ecom-techora/internal/repositories"
)

const categoryIDPrefix = "cat_"

var (
	// ErrCategoryInvalidInput indicates validation failures for category operations.
	ErrCategoryInvalidInput = errors.New("category: invalid input")
	// ErrCategoryConflict indicates a category with the same name or slug already exists.
	ErrCategoryConflict = errors.New("category: already exists")
	// ErrCategoryInUse indicates categories cannot be cleared while products reference them.
	ErrCategoryInUse = errors.New("category: still referenced by products")
)

// defaultCategories seeds an empty collection with the starter storefront taxonomy.
var defaultCategories = []EnsureCategoryCommand{
	{Name: "Electronics", Description: "Phones, laptops, and gadgets"},
	{Name: "Fashion", Description: "Clothing, shoes, and accessories"},
	{Name: "Home & Kitchen", Description: "Furniture, decor, and appliances"},
	{Name: "Beauty", Description: "Skincare, makeup, and personal care"},
	{Name: "Sports", Description: "Fitness gear and outdoor equipment"},
	{Name: "Books", Description: "Fiction, non-fiction, and study material"},
}

// CategoryServiceDeps bundles collaborators required to construct a CategoryService.
type CategoryServiceDeps struct {
	Categories  repositories.CategoryRepository
	Products    repositories.ProductRepository
	Clock       func() time.Time
	IDGenerator func() string
}

type categoryService struct {
	categories repositories.CategoryRepository
	products   repositories.ProductRepository
	clock      func() time.Time
	newID      func() string
}

// NewCategoryService wires dependencies into a concrete CategoryService implementation.
func NewCategoryService(deps CategoryServiceDeps) (CategoryService, error) {
	if deps.Categories == nil {
		return nil, errors.New("category service: category repository is required")
	}
	if deps.Products == nil {
		return nil, errors.New("category service: product repository is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string {
			return categoryIDPrefix + ulid.Make().String()
		}
	}
	return &categoryService{
		categories: deps.Categories,
		products:   deps.Products,
		clock:      func() time.Time { return clock().UTC() },
		newID:      idGen,
	}, nil
}

func (s *categoryService) ListActive(ctx context.Context) ([]domain.Category, error) {
	active := domain.CategoryStatusActive
	return s.categories.List(ctx, &active)
}

func (s *categoryService) ListAll(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx, nil)
}

func (s *categoryService) Ensure(ctx context.Context, cmd EnsureCategoryCommand) (domain.Category, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return domain.Category{}, fmt.Errorf("%w: name is required", ErrCategoryInvalidInput)
	}
	slug := strings.TrimSpace(cmd.Slug)
	if slug == "" {
		slug = domain.Slugify(name)
	} else {
		slug = domain.Slugify(slug)
	}
	if slug == "" {
		return domain.Category{}, fmt.Errorf("%w: name produces an empty slug", ErrCategoryInvalidInput)
	}

	if existing, err := s.categories.FindBySlug(ctx, slug); err == nil {
		return existing, fmt.Errorf("%w: slug %q", ErrCategoryConflict, slug)
	} else if !isNotFound(err) {
		return domain.Category{}, err
	}
	if existing, err := s.categories.FindByName(ctx, name); err == nil {
		return existing, fmt.Errorf("%w: name %q", ErrCategoryConflict, name)
	} else if !isNotFound(err) {
		return domain.Category{}, err
	}

	now := s.clock()
	category := domain.Category{
		ID:          s.newID(),
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(cmd.Description),
		Image:       strings.TrimSpace(cmd.Image),
		Status:      domain.CategoryStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.categories.Insert(ctx, category); err != nil {
		if isConflict(err) {
			return domain.Category{}, fmt.Errorf("%w: %v", ErrCategoryConflict, err)
		}
		return domain.Category{}, err
	}
	return category, nil
}

// SeedDefaults populates the starter taxonomy when the collection is empty.
// A non-empty collection is left untouched.
func (s *categoryService) SeedDefaults(ctx context.Context) ([]domain.Category, error) {
	existing, err := s.categories.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	seeded := make([]domain.Category, 0, len(defaultCategories))
	for _, cmd := range defaultCategories {
		category, err := s.Ensure(ctx, cmd)
		if err != nil && !errors.Is(err, ErrCategoryConflict) {
			return seeded, err
		}
		seeded = append(seeded, category)
	}
	return seeded, nil
}

// DeleteAll clears the collection. Refused while any product still references
// a category so the catalog never holds dangling category ids.
func (s *categoryService) DeleteAll(ctx context.Context) (int, error) {
	categories, err := s.categories.List(ctx, nil)
	if err != nil {
		return 0, err
	}
	for _, category := range categories {
		count, err := s.products.CountByCategory(ctx, category.ID)
		if err != nil {
			return 0, err
		}
		if count > 0 {
			return 0, fmt.Errorf("%w: category %q has %d products", ErrCategoryInUse, category.Name, count)
		}
	}
	return s.categories.DeleteAll(ctx)
}
