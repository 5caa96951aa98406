// Package model defines domain entities used by services and storage backends.
package model

import "time"

// Role is the access level attached to an authenticated session.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Principal is the authenticated identity for the current session.
// It never carries an id or a password; credentials are not retained in session form.
type Principal struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// AccountStatus tracks the approval lifecycle of a stored account.
// Transitions: pending -> approved, or removal. Approved is terminal.
type AccountStatus string

const (
	StatusPending  AccountStatus = "pending"
	StatusApproved AccountStatus = "approved"
)

// Account is a stored (non-administrator) identity awaiting or holding approval.
// The password is opaque to the core and compared as a plain value.
type Account struct {
	ID        int64         `json:"id"` // epoch-millisecond creation timestamp
	Name      string        `json:"name"`
	Email     string        `json:"email"` // unique across the directory
	Password  string        `json:"password"`
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Category classifies a product.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryHome        Category = "Home"
	CategoryOther       Category = "Other"
)

// Categories lists all valid product categories in display order.
var Categories = []Category{CategoryElectronics, CategoryClothing, CategoryHome, CategoryOther}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Stock status values derived from Product.Stock.
const (
	StatusInStock    = "In Stock"
	StatusOutOfStock = "Out of Stock"
)

// Product is a single inventory record. Its stock status is derived, never stored,
// so a persisted record can never contradict its stock count.
type Product struct {
	ID       int64    `json:"id"` // epoch-millisecond creation timestamp
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Price    float64  `json:"price"` // non-negative
	Stock    int      `json:"stock"` // non-negative
}

// Status derives the stock status from the current stock count.
func (p Product) Status() string {
	if p.Stock > 0 {
		return StatusInStock
	}
	return StatusOutOfStock
}
