// ABOUTME: Wire types for the SeeFirst API
// ABOUTME: Paged envelopes, catalog items, orders and account records

package client

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/seefirst/seefirst-cli/internal/pagination"
	"github.com/seefirst/seefirst-cli/internal/session"
)

// Page is the paged list envelope {data, total_pages, current_page}
type Page[T any] struct {
	Message     string `json:"message,omitempty"`
	Data        []T    `json:"data"`
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
}

// Item is the single record envelope {data}
type Item[T any] struct {
	Data T `json:"data"`
}

// Product is a catalog entry
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"` // comma-separated upload names
	Category    string          `json:"category,omitempty"`
	Condition   string          `json:"condition,omitempty"`
	Quantity    int             `json:"quantity,omitempty"`
	VendorID    int64           `json:"vendor_id,omitempty"`
}

// Images splits the comma-separated image field
func (p Product) Images() []string {
	var out []string
	for _, name := range strings.Split(p.Image, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// ProductQuery selects a page of the product listing
type ProductQuery struct {
	Filters pagination.Filters
	Page    int
	PerPage int
}

// ProductInput is a vendor's new product
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	Category    string
	Condition   string
}

// Category groups products
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Banner is a storefront promotion
type Banner struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
	Link  string `json:"link,omitempty"`
}

// Preview is a booked home preview of a product
type Preview struct {
	ID            int64  `json:"id"`
	ProductID     int64  `json:"product_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	Address       string `json:"address,omitempty"`
	Status        string `json:"status"`
	ScheduledAt   string `json:"scheduled_at,omitempty"`
}

// Order is a placed order
type Order struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product_id,omitempty"`
	Quantity      int             `json:"quantity,omitempty"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
}

// OrderInput places one order line
type OrderInput struct {
	ProductID     int64  `json:"product_id"`
	Quantity      int    `json:"quantity"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// Order statuses accepted by UpdateOrderStatus
var OrderStatuses = []string{"pending", "processing", "shipped", "delivered", "cancelled"}

// User is a storefront customer account
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Vendor is a seller account awaiting or holding approval
type Vendor struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	StoreName        string `json:"store_name"`
	StoreDescription string `json:"store_description,omitempty"`
	StoreLocation    string `json:"store_location,omitempty"`
	IsApproved       bool   `json:"is_approved"`
}

// VendorDashboard is the vendor panel summary
type VendorDashboard struct {
	IsApproved         bool   `json:"is_approved"`
	StoreName          string `json:"store_name"`
	ProductCount       int    `json:"product_count"`
	PendingOrdersCount int    `json:"pending_orders_count"`
}

// Credentials authenticate against a realm's login endpoint
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is a login response; admin logins carry no user
type LoginResult struct {
	Token string           `json:"token"`
	User  *session.Profile `json:"user,omitempty"`
}

// VendorRegistration signs up a new seller
type VendorRegistration struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Password         string `json:"password"`
	StoreName        string `json:"store_name"`
	StoreDescription string `json:"store_description,omitempty"`
	StoreLocation    string `json:"store_location,omitempty"`
}
