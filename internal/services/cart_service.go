package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
	"github.com/sahaniaman/ecom-techora/internal/repositories"
)

var (
	// ErrCartInvalidInput indicates validation failures for cart operations.
	ErrCartInvalidInput = errors.New("cart: invalid input")
	// ErrCartEntryNotFound indicates the product is not in the cart.
	ErrCartEntryNotFound = errors.New("cart: entry not found")
	// ErrCartProductUnavailable indicates the product cannot be added to a cart.
	ErrCartProductUnavailable = errors.New("cart: product unavailable")
)

// CartServiceDeps bundles collaborators required to construct a CartService.
type CartServiceDeps struct {
	Users    repositories.UserRepository
	Products repositories.ProductRepository
	Logger   *zap.Logger
	Clock    func() time.Time
}

type cartService struct {
	users    repositories.UserRepository
	products repositories.ProductRepository
	logger   *zap.Logger
	clock    func() time.Time
}

// NewCartService wires dependencies into a concrete CartService implementation.
func NewCartService(deps CartServiceDeps) (CartService, error) {
	if deps.Users == nil {
		return nil, errors.New("cart service: user repository is required")
	}
	if deps.Products == nil {
		return nil, errors.New("cart service: product repository is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cartService{
		users:    deps.Users,
		products: deps.Products,
		logger:   logger,
		clock:    func() time.Time { return clock().UTC() },
	}, nil
}

func (s *cartService) GetCart(ctx context.Context, userID string) (CartView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return CartView{}, err
	}
	return s.render(ctx, user), nil
}

func (s *cartService) AddItem(ctx context.Context, cmd AddCartItemCommand) (CartView, error) {
	userID := strings.TrimSpace(cmd.UserID)
	productID := strings.TrimSpace(cmd.ProductID)
	if userID == "" || productID == "" {
		return CartView{}, fmt.Errorf("%w: user id and product id are required", ErrCartInvalidInput)
	}
	quantity := cmd.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return CartView{}, fmt.Errorf("%w: quantity must be at least 1", ErrCartInvalidInput)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if isNotFound(err) {
			return CartView{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return CartView{}, err
	}
	if product.Status != domain.ProductStatusActive {
		return CartView{}, fmt.Errorf("%w: %s is %s", ErrCartProductUnavailable, productID, product.Status)
	}

	user, err := s.users.AddCartEntry(ctx, userID, productID, quantity, s.clock())
	if err != nil {
		return CartView{}, err
	}
	return s.render(ctx, user), nil
}

func (s *cartService) SetQuantity(ctx context.Context, cmd SetCartQuantityCommand) (CartView, error) {
	userID := strings.TrimSpace(cmd.UserID)
	productID := strings.TrimSpace(cmd.ProductID)
	if userID == "" || productID == "" {
		return CartView{}, fmt.Errorf("%w: user id and product id are required", ErrCartInvalidInput)
	}
	if cmd.Quantity < 1 {
		return CartView{}, fmt.Errorf("%w: quantity must be at least 1", ErrCartInvalidInput)
	}

	user, err := s.users.SetCartQuantity(ctx, userID, productID, cmd.Quantity)
	if err != nil {
		if isNotFound(err) {
			return CartView{}, fmt.Errorf("%w: %s", ErrCartEntryNotFound, productID)
		}
		return CartView{}, err
	}
	return s.render(ctx, user), nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID string) (CartView, error) {
	userID = strings.TrimSpace(userID)
	productID = strings.TrimSpace(productID)
	if userID == "" || productID == "" {
		return CartView{}, fmt.Errorf("%w: user id and product id are required", ErrCartInvalidInput)
	}
	user, err := s.users.RemoveCartEntry(ctx, userID, productID)
	if err != nil {
		return CartView{}, err
	}
	return s.render(ctx, user), nil
}

func (s *cartService) Clear(ctx context.Context, userID string) (CartView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CartView{}, fmt.Errorf("%w: user id is required", ErrCartInvalidInput)
	}
	user, err := s.users.ClearCart(ctx, userID)
	if err != nil {
		return CartView{}, err
	}
	return s.render(ctx, user), nil
}

// render denormalises cart entries with live product snapshots. A failed
// snapshot fetch yields a nil product for that entry only, never an error for
// the whole cart.
func (s *cartService) render(ctx context.Context, user domain.User) CartView {
	items := make([]CartItemView, 0, len(user.Cart))
	total := 0
	for _, entry := range user.Cart {
		item := CartItemView{
			ProductID: entry.ProductID,
			Quantity:  entry.Quantity,
			AddedAt:   entry.AddedAt,
		}
		product, err := s.products.FindByID(ctx, entry.ProductID)
		if err != nil {
			s.logger.Warn("cart snapshot fetch failed",
				zap.String("userId", user.ID),
				zap.String("productId", entry.ProductID),
				zap.Error(err))
		} else {
			item.Product = &ProductSnapshot{
				ID:                product.ID,
				Name:              product.Name,
				Images:            product.Images,
				BasePrice:         product.BasePrice,
				DiscountedPrice:   product.DiscountedPrice,
				Stock:             product.Stock,
				LowStockThreshold: product.LowStockThreshold,
				Status:            product.Status,
			}
		}
		items = append(items, item)
		total += entry.Quantity
	}
	return CartView{Items: items, TotalItems: total}
}
