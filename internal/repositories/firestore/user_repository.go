package firestore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
	pfirestore "github.com/sahaniaman/ecom-techora/internal/platform/firestore"
	"github.com/sahaniaman/ecom-techora/internal/repositories"
)

const userCollection = "users"

// UserRepository persists user documents keyed by the identity provider UID.
// Cart mutations run inside Firestore transactions; wishlist mutations rely
// on ArrayUnion/ArrayRemove so they stay idempotent without a read.
type UserRepository struct {
	provider *pfirestore.Provider
	base     *pfirestore.BaseRepository[domain.User]
}

// NewUserRepository constructs a Firestore-backed user repository.
func NewUserRepository(provider *pfirestore.Provider) (*UserRepository, error) {
	if provider == nil {
		return nil, errors.New("user repository requires firestore provider")
	}
	return &UserRepository{
		provider: provider,
		base:     pfirestore.NewBaseRepository[domain.User](provider, userCollection, nil, nil),
	}, nil
}

// Upsert stores the full user document.
func (r *UserRepository) Upsert(ctx context.Context, user domain.User) error {
	if strings.TrimSpace(user.ID) == "" {
		return errors.New("user repository: user id is required")
	}
	if _, err := r.base.Set(ctx, user.ID, user); err != nil {
		return err
	}
	return nil
}

// Delete removes the user document, reporting not found when absent.
func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.base.Get(ctx, userID); err != nil {
		return err
	}
	doc, err := r.base.DocumentRef(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := doc.Delete(ctx); err != nil {
		return pfirestore.WrapError("users.delete", err)
	}
	return nil
}

// FindByID fetches a single user document.
func (r *UserRepository) FindByID(ctx context.Context, userID string) (domain.User, error) {
	doc, err := r.base.Get(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	user := doc.Data
	user.ID = doc.ID
	return user, nil
}

// List returns users ordered by creation time, newest first.
func (r *UserRepository) List(ctx context.Context, page, limit int) (domain.Page[domain.User], error) {
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.OrderBy("createdAt", firestore.Desc)
	})
	if err != nil {
		return domain.Page[domain.User]{}, err
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		user := doc.Data
		user.ID = doc.ID
		users = append(users, user)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})

	query := domain.ProductQuery{Page: page, Limit: limit}.Normalize()
	return domain.Paginate(users, query), nil
}

// UpdateFields applies a partial update to the user document.
func (r *UserRepository) UpdateFields(ctx context.Context, userID string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	sort.Slice(updates, func(i, j int) bool { return updates[i].Path < updates[j].Path })
	if _, err := r.base.Update(ctx, userID, updates); err != nil {
		return err
	}
	return nil
}

// AddCartEntry atomically increments an existing entry's quantity or appends
// a new entry. The read and write share one transaction so concurrent adds
// never lose an increment.
func (r *UserRepository) AddCartEntry(ctx context.Context, userID, productID string, quantity int, addedAt time.Time) (domain.User, error) {
	return r.mutateCart(ctx, "users.addCartEntry", userID, func(user *domain.User) error {
		if idx := user.CartIndex(productID); idx >= 0 {
			user.Cart[idx].Quantity += quantity
			return nil
		}
		user.Cart = append(user.Cart, domain.CartEntry{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   addedAt.UTC(),
		})
		return nil
	})
}

// SetCartQuantity replaces the quantity of an existing entry, failing with
// not found when the product is not in the cart.
func (r *UserRepository) SetCartQuantity(ctx context.Context, userID, productID string, quantity int) (domain.User, error) {
	return r.mutateCart(ctx, "users.setCartQuantity", userID, func(user *domain.User) error {
		idx := user.CartIndex(productID)
		if idx < 0 {
			return status.Errorf(codes.NotFound, "product %s not in cart", productID)
		}
		user.Cart[idx].Quantity = quantity
		return nil
	})
}

// RemoveCartEntry drops the entry for productID if present.
func (r *UserRepository) RemoveCartEntry(ctx context.Context, userID, productID string) (domain.User, error) {
	return r.mutateCart(ctx, "users.removeCartEntry", userID, func(user *domain.User) error {
		idx := user.CartIndex(productID)
		if idx < 0 {
			return nil
		}
		user.Cart = append(user.Cart[:idx], user.Cart[idx+1:]...)
		return nil
	})
}

// ClearCart removes every cart entry.
func (r *UserRepository) ClearCart(ctx context.Context, userID string) (domain.User, error) {
	return r.mutateCart(ctx, "users.clearCart", userID, func(user *domain.User) error {
		user.Cart = nil
		return nil
	})
}

func (r *UserRepository) mutateCart(ctx context.Context, op, userID string, mutate func(*domain.User) error) (domain.User, error) {
	docRef, err := r.base.DocumentRef(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	var updated domain.User
	err = r.provider.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(docRef)
		if err != nil {
			return err
		}
		var user domain.User
		if err := snap.DataTo(&user); err != nil {
			return fmt.Errorf("decode user %s: %w", snap.Ref.ID, err)
		}
		user.ID = snap.Ref.ID

		if err := mutate(&user); err != nil {
			return err
		}
		user.UpdatedAt = time.Now().UTC()
		updated = user

		cart := user.Cart
		if cart == nil {
			cart = []domain.CartEntry{}
		}
		return tx.Update(docRef, []firestore.Update{
			{Path: "cart", Value: cart},
			{Path: "updatedAt", Value: user.UpdatedAt},
		})
	})
	if err != nil {
		return domain.User{}, pfirestore.WrapError(op, err)
	}
	return updated, nil
}

// AddToWishlist adds the product id to the wishlist set.
func (r *UserRepository) AddToWishlist(ctx context.Context, userID, productID string) error {
	return r.wishlistUpdate(ctx, "users.addToWishlist", userID, firestore.ArrayUnion(productID))
}

// RemoveFromWishlist removes the product id from the wishlist set.
func (r *UserRepository) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	return r.wishlistUpdate(ctx, "users.removeFromWishlist", userID, firestore.ArrayRemove(productID))
}

func (r *UserRepository) wishlistUpdate(ctx context.Context, op, userID string, value any) error {
	trimmed := strings.TrimSpace(userID)
	if trimmed == "" {
		return errors.New("user repository: user id is required")
	}
	docRef, err := r.base.DocumentRef(ctx, trimmed)
	if err != nil {
		return err
	}
	if _, err := docRef.Update(ctx, []firestore.Update{
		{Path: "wishlist", Value: value},
		{Path: "updatedAt", Value: time.Now().UTC()},
	}); err != nil {
		return pfirestore.WrapError(op, err)
	}
	return nil
}

var _ repositories.UserRepository = (*UserRepository)(nil)
