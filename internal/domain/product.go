package domain

import (
	"time"
)

// ProductStatus enumerates the lifecycle states for catalog products.
type ProductStatus string

const (
	// ProductStatusActive indicates the product is purchasable and publicly listed.
	ProductStatusActive ProductStatus = "ACTIVE"
	// ProductStatusInactive indicates the product is hidden by an operator.
	ProductStatusInactive ProductStatus = "INACTIVE"
	// ProductStatusOutOfStock indicates the product has no sellable stock.
	ProductStatusOutOfStock ProductStatus = "OUT_OF_STOCK"
)

// StatusCause records whether the current status was derived from stock
// levels or set explicitly by an operator. Restocking only reverses
// stock-derived transitions.
type StatusCause string

const (
	// StatusCauseAuto marks a status derived from stock movements.
	StatusCauseAuto StatusCause = "AUTO"
	// StatusCauseManual marks a status set explicitly by an operator.
	StatusCauseManual StatusCause = "MANUAL"
)

// Review is a customer review embedded on a product document.
type Review struct {
	ReviewBy  string    `firestore:"reviewBy" json:"reviewBy"`
	Message   string    `firestore:"message" json:"message"`
	Images    []string  `firestore:"images,omitempty" json:"images,omitempty"`
	Rating    int       `firestore:"rating" json:"rating"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Product is the catalog aggregate stored in the products collection.
type Product struct {
	ID                string            `firestore:"-" json:"id"`
	Name              string            `firestore:"name" json:"name"`
	Description       string            `firestore:"description" json:"description"`
	BasePrice         float64           `firestore:"basePrice" json:"basePrice"`
	DiscountedPrice   float64           `firestore:"discountedPrice" json:"discountedPrice"`
	Discount          float64           `firestore:"discount" json:"discount"`
	Brand             string            `firestore:"brand" json:"brand"`
	CategoryID        string            `firestore:"category" json:"category"`
	Subcategory       string            `firestore:"subcategory,omitempty" json:"subcategory,omitempty"`
	Images            []string          `firestore:"images" json:"images"`
	Stock             int               `firestore:"stock" json:"stock"`
	ReservedStock     int               `firestore:"reservedStock" json:"reservedStock"`
	LowStockThreshold int               `firestore:"lowStockThreshold" json:"lowStockThreshold"`
	SalesCount        int               `firestore:"salesCount" json:"salesCount"`
	SKU               string            `firestore:"sku" json:"sku"`
	Features          []string          `firestore:"features,omitempty" json:"features,omitempty"`
	Specifications    map[string]string `firestore:"specifications,omitempty" json:"specifications,omitempty"`
	Tags              []string          `firestore:"tags,omitempty" json:"tags,omitempty"`
	Status            ProductStatus     `firestore:"status" json:"status"`
	StatusCause       StatusCause       `firestore:"statusCause" json:"-"`
	IsFeatured        bool              `firestore:"isFeatured" json:"isFeatured"`
	Rating            float64           `firestore:"rating" json:"rating"`
	TotalReviews      int               `firestore:"totalReviews" json:"totalReviews"`
	Reviews           []Review          `firestore:"reviews,omitempty" json:"reviews,omitempty"`
	CreatedAt         time.Time         `firestore:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time         `firestore:"updatedAt" json:"updatedAt"`
}

// AvailableStock returns the stock remaining after reservations.
func (p Product) AvailableStock() int {
	available := p.Stock - p.ReservedStock
	if available < 0 {
		return 0
	}
	return available
}

// IsLowStock reports whether available stock has fallen to or below the
// configured threshold.
func (p Product) IsLowStock() bool {
	return p.AvailableStock() <= p.LowStockThreshold
}

// CategoryStatus enumerates category visibility states.
type CategoryStatus string

const (
	// CategoryStatusActive indicates the category appears on the storefront.
	CategoryStatusActive CategoryStatus = "ACTIVE"
	// CategoryStatusInactive indicates the category is hidden.
	CategoryStatusInactive CategoryStatus = "INACTIVE"
)

// Category groups products for storefront navigation and filtering.
type Category struct {
	ID          string         `firestore:"-" json:"id"`
	Name        string         `firestore:"name" json:"name"`
	Slug        string         `firestore:"slug" json:"slug"`
	Description string         `firestore:"description,omitempty" json:"description,omitempty"`
	Image       string         `firestore:"image,omitempty" json:"image,omitempty"`
	Status      CategoryStatus `firestore:"status" json:"status"`
	CreatedAt   time.Time      `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `firestore:"updatedAt" json:"updatedAt"`
}
