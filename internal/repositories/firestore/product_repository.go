package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
	pfirestore "github.com/sahaniaman/ecom-techora/internal/platform/firestore"
	"github.com/sahaniaman/ecom-techora/internal/repositories"
)

const productCollection = "products"

// ProductRepository persists catalog products in Firestore.
type ProductRepository struct {
	provider *pfirestore.Provider
	base     *pfirestore.BaseRepository[domain.Product]
}

// NewProductRepository constructs a Firestore-backed product repository.
func NewProductRepository(provider *pfirestore.Provider) (*ProductRepository, error) {
	if provider == nil {
		return nil, errors.New("product repository requires firestore provider")
	}
	return &ProductRepository{
		provider: provider,
		base:     pfirestore.NewBaseRepository[domain.Product](provider, productCollection, nil, nil),
	}, nil
}

// Insert creates the product document, failing with a conflict when the id
// is already taken.
func (r *ProductRepository) Insert(ctx context.Context, product domain.Product) error {
	doc, err := r.base.DocumentRef(ctx, product.ID)
	if err != nil {
		return err
	}
	if _, err := doc.Create(ctx, product); err != nil {
		return pfirestore.WrapError("products.insert", err)
	}
	return nil
}

// Update replaces the product document. Missing documents surface as not found.
func (r *ProductRepository) Update(ctx context.Context, product domain.Product) error {
	doc, err := r.base.DocumentRef(ctx, product.ID)
	if err != nil {
		return err
	}
	if _, err := doc.Set(ctx, product); err != nil {
		return pfirestore.WrapError("products.update", err)
	}
	return nil
}

// Delete removes the product document, reporting not found when it is absent.
func (r *ProductRepository) Delete(ctx context.Context, productID string) error {
	if _, err := r.base.Get(ctx, productID); err != nil {
		return err
	}
	doc, err := r.base.DocumentRef(ctx, productID)
	if err != nil {
		return err
	}
	if _, err := doc.Delete(ctx); err != nil {
		return pfirestore.WrapError("products.delete", err)
	}
	return nil
}

// FindByID fetches a single product.
func (r *ProductRepository) FindByID(ctx context.Context, productID string) (domain.Product, error) {
	doc, err := r.base.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	product := doc.Data
	product.ID = doc.ID
	return product, nil
}

// FindBySKU locates a product by its normalised SKU.
func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (domain.Product, error) {
	normalized := strings.ToUpper(strings.TrimSpace(sku))
	if normalized == "" {
		return domain.Product{}, pfirestore.WrapError("products.findBySku", status.Error(codes.NotFound, "sku is empty"))
	}

	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("sku", "==", normalized).Limit(1)
	})
	if err != nil {
		return domain.Product{}, err
	}
	if len(docs) == 0 {
		return domain.Product{}, pfirestore.WrapError("products.findBySku", status.Errorf(codes.NotFound, "sku %s not found", normalized))
	}
	product := docs[0].Data
	product.ID = docs[0].ID
	return product, nil
}

// List evaluates the catalog query. Exact-match filters are pushed into
// Firestore predicates; the substring search, price range, sort, and offset
// paging run on the fetched set because Firestore offers no case-insensitive
// OR matching across fields.
func (r *ProductRepository) List(ctx context.Context, query domain.ProductQuery) (domain.Page[domain.Product], error) {
	query = query.Normalize()

	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		if query.Status != nil {
			q = q.Where("status", "==", string(*query.Status))
		}
		if query.CategoryID != "" {
			q = q.Where("category", "==", query.CategoryID)
		}
		if query.IsFeatured != nil {
			q = q.Where("isFeatured", "==", *query.IsFeatured)
		}
		return q
	})
	if err != nil {
		return domain.Page[domain.Product]{}, err
	}

	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		product := doc.Data
		product.ID = doc.ID
		if !query.Matches(product) {
			continue
		}
		products = append(products, product)
	}

	domain.SortProducts(products, query.Sort)
	return domain.Paginate(products, query), nil
}

// ListAll returns every product ordered by creation time, newest first.
func (r *ProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.OrderBy("createdAt", firestore.Desc)
	})
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		product := doc.Data
		product.ID = doc.ID
		products = append(products, product)
	}
	return products, nil
}

// CountByCategory reports how many products reference the given category.
func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return 0, nil
	}
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("category", "==", categoryID).Select()
	})
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

// AppendReview attaches a review inside a transaction and recomputes the
// aggregate rating so concurrent submissions never drop each other.
func (r *ProductRepository) AppendReview(ctx context.Context, productID string, review domain.Review) (domain.Product, error) {
	docRef, err := r.base.DocumentRef(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}

	var updated domain.Product
	err = r.provider.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(docRef)
		if err != nil {
			return err
		}
		var product domain.Product
		if err := snap.DataTo(&product); err != nil {
			return fmt.Errorf("decode product %s: %w", snap.Ref.ID, err)
		}
		product.ID = snap.Ref.ID
		product.Reviews = append(product.Reviews, review)
		product.Rating, product.TotalReviews = domain.RecalculateRating(product.Reviews)
		product.UpdatedAt = review.CreatedAt

		updated = product
		return tx.Update(docRef, []firestore.Update{
			{Path: "reviews", Value: product.Reviews},
			{Path: "rating", Value: product.Rating},
			{Path: "totalReviews", Value: product.TotalReviews},
			{Path: "updatedAt", Value: product.UpdatedAt},
		})
	})
	if err != nil {
		return domain.Product{}, pfirestore.WrapError("products.appendReview", err)
	}
	return updated, nil
}

var _ repositories.ProductRepository = (*ProductRepository)(nil)
