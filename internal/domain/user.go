package domain

import (
	"time"
)

// UserRole enumerates the access tiers stored on user documents.
type UserRole string

const (
	// RoleUser is the default storefront customer role.
	RoleUser UserRole = "USER"
	// RoleAdmin grants catalog and category management access.
	RoleAdmin UserRole = "ADMIN"
	// RoleSuperAdmin grants user management on top of admin access.
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	// RoleVendor marks third-party sellers.
	RoleVendor UserRole = "VENDOR"
)

// IsAdmin reports whether the role carries catalog management rights.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// UserStatus enumerates account lifecycle states.
type UserStatus string

const (
	// UserStatusActive indicates a usable account.
	UserStatusActive UserStatus = "ACTIVE"
	// UserStatusInactive indicates a deactivated account.
	UserStatusInactive UserStatus = "INACTIVE"
	// UserStatusSuspended indicates an account blocked by an operator.
	UserStatusSuspended UserStatus = "SUSPENDED"
	// UserStatusPendingVerification indicates the account awaits email verification.
	UserStatusPendingVerification UserStatus = "PENDING_VERIFICATION"
)

// Profile carries optional display fields for a user.
type Profile struct {
	FirstName string `firestore:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  string `firestore:"lastName,omitempty" json:"lastName,omitempty"`
	Avatar    string `firestore:"avatar,omitempty" json:"avatar,omitempty"`
	Bio       string `firestore:"bio,omitempty" json:"bio,omitempty"`
}

// Preferences stores per-user storefront settings.
type Preferences struct {
	Language           string `firestore:"language,omitempty" json:"language,omitempty"`
	Currency           string `firestore:"currency,omitempty" json:"currency,omitempty"`
	Theme              string `firestore:"theme,omitempty" json:"theme,omitempty"`
	EmailNotifications bool   `firestore:"emailNotifications" json:"emailNotifications"`
}

// CartEntry is one product line embedded on the user document. At most one
// entry exists per product id.
type CartEntry struct {
	ProductID string    `firestore:"productId" json:"productId"`
	Quantity  int       `firestore:"quantity" json:"quantity"`
	AddedAt   time.Time `firestore:"addedAt" json:"addedAt"`
}

// User is the account document keyed by the identity provider UID. Cart and
// wishlist ledgers are embedded rather than stored as separate collections.
type User struct {
	ID            string      `firestore:"-" json:"id"`
	Email         string      `firestore:"email" json:"email"`
	Phone         string      `firestore:"phone,omitempty" json:"phone,omitempty"`
	Role          UserRole    `firestore:"role" json:"role"`
	Status        UserStatus  `firestore:"status" json:"status"`
	Profile       Profile     `firestore:"profile" json:"profile"`
	Preferences   Preferences `firestore:"preferences" json:"preferences"`
	Cart          []CartEntry `firestore:"cart" json:"cart"`
	Wishlist      []string    `firestore:"wishlist" json:"wishlist"`
	EmailVerified bool        `firestore:"emailVerified" json:"emailVerified"`
	LastLoginAt   *time.Time  `firestore:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time   `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time   `firestore:"updatedAt" json:"updatedAt"`
}

// CartIndex returns the position of the entry for productID, or -1.
func (u User) CartIndex(productID string) int {
	for i, entry := range u.Cart {
		if entry.ProductID == productID {
			return i
		}
	}
	return -1
}

// HasWishlisted reports whether productID is present in the wishlist ledger.
func (u User) HasWishlisted(productID string) bool {
	for _, id := range u.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}
