package di

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sahaniaman/ecom-techora/internal/platform/config"
	"github.com/sahaniaman/ecom-techora/internal/repositories"
	"github.com/sahaniaman/ecom-techora/internal/services"
)

// Repositories bundles the persistence contracts the service layer depends on.
// The health repository is optional; when absent the system service is skipped
// and readiness checks answer without probing dependencies.
type Repositories struct {
	Products   repositories.ProductRepository
	Categories repositories.CategoryRepository
	Users      repositories.UserRepository
	Health     repositories.HealthRepository
}

// Services bundles the service-layer contracts that handlers rely upon. Concrete
// implementations are assembled via dependency injection in NewContainer.
type Services struct {
	Catalog    services.CatalogService
	Categories services.CategoryService
	Cart       services.CartService
	Wishlist   services.WishlistService
	Users      services.UserService
	System     services.SystemService
}

// ContainerDeps carries the externally constructed collaborators for NewContainer.
type ContainerDeps struct {
	Repositories Repositories
	Events       services.CatalogEventPublisher
	Logger       *zap.Logger
	Clock        func() time.Time
}

// Container wires repositories and services for runtime use.
type Container struct {
	Config       config.Config
	Repositories Repositories
	Services     Services
}

// NewContainer constructs the runtime dependencies. Production wiring supplies
// Firestore-backed repositories, while tests can pass in-memory implementations.
func NewContainer(cfg config.Config, deps ContainerDeps) (*Container, error) {
	reg := deps.Repositories
	if reg.Products == nil || reg.Categories == nil || reg.Users == nil {
		return nil, errors.New("di: product, category, and user repositories are required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	catalogService, err := services.NewCatalogService(services.CatalogServiceDeps{
		Products:   reg.Products,
		Categories: reg.Categories,
		Events:     deps.Events,
		Logger:     logger.Named("catalog"),
		Clock:      clock,
	})
	if err != nil {
		return nil, fmt.Errorf("di: catalog service: %w", err)
	}

	categoryService, err := services.NewCategoryService(services.CategoryServiceDeps{
		Categories: reg.Categories,
		Products:   reg.Products,
		Clock:      clock,
	})
	if err != nil {
		return nil, fmt.Errorf("di: category service: %w", err)
	}

	cartService, err := services.NewCartService(services.CartServiceDeps{
		Users:    reg.Users,
		Products: reg.Products,
		Logger:   logger.Named("cart"),
		Clock:    clock,
	})
	if err != nil {
		return nil, fmt.Errorf("di: cart service: %w", err)
	}

	wishlistService, err := services.NewWishlistService(services.WishlistServiceDeps{
		Users:    reg.Users,
		Catalog:  catalogService,
		Products: reg.Products,
		Logger:   logger.Named("wishlist"),
	})
	if err != nil {
		return nil, fmt.Errorf("di: wishlist service: %w", err)
	}

	userService, err := services.NewUserService(services.UserServiceDeps{
		Users:  reg.Users,
		Logger: logger.Named("users"),
		Clock:  clock,
	})
	if err != nil {
		return nil, fmt.Errorf("di: user service: %w", err)
	}

	svc := Services{
		Catalog:    catalogService,
		Categories: categoryService,
		Cart:       cartService,
		Wishlist:   wishlistService,
		Users:      userService,
	}

	if reg.Health != nil {
		systemService, err := services.NewSystemService(services.SystemServiceDeps{
			HealthRepository: reg.Health,
			Clock:            clock,
		})
		if err != nil {
			return nil, fmt.Errorf("di: system service: %w", err)
		}
		svc.System = systemService
	}

	return &Container{
		Config:       cfg,
		Repositories: reg,
		Services:     svc,
	}, nil
}
