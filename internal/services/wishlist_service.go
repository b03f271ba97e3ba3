package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sahaniaman/ecom-techora/internal/repositories"
)

// ErrWishlistInvalidInput indicates validation failures for wishlist operations.
var ErrWishlistInvalidInput = errors.New("wishlist: invalid input")

// WishlistServiceDeps bundles collaborators required to construct a WishlistService.
type WishlistServiceDeps struct {
	Users    repositories.UserRepository
	Catalog  CatalogService
	Products repositories.ProductRepository
	Logger   *zap.Logger
}

type wishlistService struct {
	users    repositories.UserRepository
	products repositories.ProductRepository
	catalog  CatalogService
	logger   *zap.Logger
}

// NewWishlistService wires dependencies into a concrete WishlistService implementation.
func NewWishlistService(deps WishlistServiceDeps) (WishlistService, error) {
	if deps.Users == nil {
		return nil, errors.New("wishlist service: user repository is required")
	}
	if deps.Products == nil {
		return nil, errors.New("wishlist service: product repository is required")
	}
	if deps.Catalog == nil {
		return nil, errors.New("wishlist service: catalog service is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &wishlistService{
		users:    deps.Users,
		products: deps.Products,
		catalog:  deps.Catalog,
		logger:   logger,
	}, nil
}

// List populates wishlist ids with product documents. Products that no longer
// exist are skipped rather than failing the listing.
func (s *wishlistService) List(ctx context.Context, userID string) ([]CatalogProduct, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	products := make([]CatalogProduct, 0, len(user.Wishlist))
	for _, productID := range user.Wishlist {
		product, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) {
				s.logger.Debug("wishlist product missing",
					zap.String("userId", userID),
					zap.String("productId", productID))
				continue
			}
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func (s *wishlistService) Add(ctx context.Context, userID, productID string) ([]string, error) {
	userID, productID, err := wishlistArgs(userID, productID)
	if err != nil {
		return nil, err
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return nil, err
	}
	if err := s.users.AddToWishlist(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.currentWishlist(ctx, userID)
}

func (s *wishlistService) Remove(ctx context.Context, userID, productID string) ([]string, error) {
	userID, productID, err := wishlistArgs(userID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.users.RemoveFromWishlist(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.currentWishlist(ctx, userID)
}

// currentWishlist re-reads the ledger after a mutation so the caller sees the
// ids as persisted, not as locally guessed.
func (s *wishlistService) currentWishlist(ctx context.Context, userID string) ([]string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Wishlist == nil {
		return []string{}, nil
	}
	return user.Wishlist, nil
}

func wishlistArgs(userID, productID string) (string, string, error) {
	userID = strings.TrimSpace(userID)
	productID = strings.TrimSpace(productID)
	if userID == "" || productID == "" {
		return "", "", fmt.Errorf("%w: user id and product id are required", ErrWishlistInvalidInput)
	}
	return userID, productID, nil
}
