package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
	pfirestore "github.com/sahaniaman/ecom-techora/internal/platform/firestore"
	"github.com/sahaniaman/ecom-techora/internal/repositories"
)

const categoryCollection = "categories"

// CategoryRepository persists storefront categories in Firestore.
type CategoryRepository struct {
	provider *pfirestore.Provider
	base     *pfirestore.BaseRepository[domain.Category]
}

// NewCategoryRepository constructs a Firestore-backed category repository.
func NewCategoryRepository(provider *pfirestore.Provider) (*CategoryRepository, error) {
	if provider == nil {
		return nil, errors.New("category repository requires firestore provider")
	}
	return &CategoryRepository{
		provider: provider,
		base:     pfirestore.NewBaseRepository[domain.Category](provider, categoryCollection, nil, nil),
	}, nil
}

// Insert creates the category document, conflicting when the id exists.
func (r *CategoryRepository) Insert(ctx context.Context, category domain.Category) error {
	doc, err := r.base.DocumentRef(ctx, category.ID)
	if err != nil {
		return err
	}
	if _, err := doc.Create(ctx, category); err != nil {
		return pfirestore.WrapError("categories.insert", err)
	}
	return nil
}

// FindByID fetches a single category.
func (r *CategoryRepository) FindByID(ctx context.Context, categoryID string) (domain.Category, error) {
	doc, err := r.base.Get(ctx, categoryID)
	if err != nil {
		return domain.Category{}, err
	}
	category := doc.Data
	category.ID = doc.ID
	return category, nil
}

// FindBySlug locates a category by its slug.
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (domain.Category, error) {
	return r.findByField(ctx, "slug", strings.ToLower(strings.TrimSpace(slug)))
}

// FindByName locates a category by its exact name.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (domain.Category, error) {
	return r.findByField(ctx, "name", strings.TrimSpace(name))
}

func (r *CategoryRepository) findByField(ctx context.Context, field, value string) (domain.Category, error) {
	op := "categories.findBy" + field
	if value == "" {
		return domain.Category{}, pfirestore.WrapError(op, status.Errorf(codes.NotFound, "%s is empty", field))
	}
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where(field, "==", value).Limit(1)
	})
	if err != nil {
		return domain.Category{}, err
	}
	if len(docs) == 0 {
		return domain.Category{}, pfirestore.WrapError(op, status.Errorf(codes.NotFound, "category with %s %q not found", field, value))
	}
	category := docs[0].Data
	category.ID = docs[0].ID
	return category, nil
}

// List returns categories ordered by name, optionally restricted to a status.
func (r *CategoryRepository) List(ctx context.Context, onlyStatus *domain.CategoryStatus) ([]domain.Category, error) {
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		if onlyStatus != nil {
			q = q.Where("status", "==", string(*onlyStatus))
		}
		return q.OrderBy("name", firestore.Asc)
	})
	if err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(docs))
	for _, doc := range docs {
		category := doc.Data
		category.ID = doc.ID
		categories = append(categories, category)
	}
	return categories, nil
}

// DeleteAll removes every category document and reports how many were deleted.
func (r *CategoryRepository) DeleteAll(ctx context.Context) (int, error) {
	client, err := r.provider.Client(ctx)
	if err != nil {
		return 0, err
	}

	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Select()
	})
	if err != nil {
		return 0, err
	}

	coll := client.Collection(categoryCollection)
	writer := client.BulkWriter(ctx)
	for _, doc := range docs {
		if _, err := writer.Delete(coll.Doc(doc.ID)); err != nil {
			writer.End()
			return 0, pfirestore.WrapError("categories.deleteAll", err)
		}
	}
	writer.End()
	return len(docs), nil
}

var _ repositories.CategoryRepository = (*CategoryRepository)(nil)
