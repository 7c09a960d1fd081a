// ABOUTME: Dashboard summaries for the admin and vendor panels
// ABOUTME: Admin metrics load in parallel; one failing source only blanks its own metric

package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/seefirst/seefirst-cli/internal/client"
)

// Unavailable is displayed for a metric whose source failed
const Unavailable = "n/a"

// Metric is one dashboard figure
type Metric struct {
	Label  string
	Value  string
	Detail string
	Err    error
}

// Display is the value or Unavailable
func (m Metric) Display() string {
	if m.Err != nil || m.Value == "" {
		return Unavailable
	}
	return m.Value
}

// AdminAPI is what the admin summary reads
type AdminAPI interface {
	ListOrders(ctx context.Context, page int) (*client.Page[client.Order], error)
	ListUsers(ctx context.Context, page int) (*client.Page[client.User], error)
	ListProducts(ctx context.Context, q client.ProductQuery) (*client.Page[client.Product], error)
	ListPreviews(ctx context.Context, page int) (*client.Page[client.Preview], error)
}

// Admin is the admin panel's headline numbers
type Admin struct {
	Sales     Metric
	Orders    Metric
	Customers Metric
	Products  Metric
	Previews  Metric
}

// Metrics lists the figures in display order
func (a Admin) Metrics() []Metric {
	return []Metric{a.Sales, a.Orders, a.Customers, a.Products, a.Previews}
}

// Unauthorized reports whether any source rejected the session
func (a Admin) Unauthorized() bool {
	for _, m := range a.Metrics() {
		if client.IsUnauthorized(m.Err) {
			return true
		}
	}
	return false
}

// LoadAdmin fetches every admin metric concurrently. Each goroutine owns its
// own fields, so no locking is needed. Ordinary failures stay with their
// metric; a rejected session cancels the remaining fetches.
func LoadAdmin(ctx context.Context, api AdminAPI) Admin {
	s := Admin{
		Sales:     Metric{Label: "Total Sales"},
		Orders:    Metric{Label: "Total Orders"},
		Customers: Metric{Label: "Customers"},
		Products:  Metric{Label: "Products"},
		Previews:  Metric{Label: "Home Previews"},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		page, err := api.ListOrders(ctx, 1)
		if err != nil {
			s.Orders.Err, s.Sales.Err = err, err
			return rejected(err)
		}
		s.Orders.Value, s.Orders.Detail = countOf(page.Data, page.TotalPages)
		s.Sales.Value = salesOf(page.Data).StringFixed(2)
		if page.TotalPages > 1 {
			s.Sales.Detail = "first page"
		}
		return nil
	})

	g.Go(func() error {
		page, err := api.ListUsers(ctx, 1)
		if err != nil {
			s.Customers.Err = err
			return rejected(err)
		}
		s.Customers.Value, s.Customers.Detail = countOf(page.Data, page.TotalPages)
		return nil
	})

	g.Go(func() error {
		page, err := api.ListProducts(ctx, client.ProductQuery{Page: 1})
		if err != nil {
			s.Products.Err = err
			return rejected(err)
		}
		s.Products.Value, s.Products.Detail = countOf(page.Data, page.TotalPages)
		return nil
	})

	g.Go(func() error {
		page, err := api.ListPreviews(ctx, 1)
		if err != nil {
			s.Previews.Err = err
			return rejected(err)
		}
		s.Previews.Value, s.Previews.Detail = countOf(page.Data, page.TotalPages)
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Debug("admin summary stopped early", "error", err)
	}
	return s
}

// rejected passes through only the errors that make sibling fetches pointless
func rejected(err error) error {
	if client.IsUnauthorized(err) {
		return err
	}
	return nil
}

// countOf reports the fetched count, noting when more pages exist
func countOf[T any](data []T, totalPages int) (string, string) {
	value := strconv.Itoa(len(data))
	if totalPages > 1 {
		return value + "+", fmt.Sprintf("%d pages", totalPages)
	}
	return value, ""
}

// salesOf sums order totals, skipping cancelled orders
func salesOf(orders []client.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if strings.EqualFold(o.Status, "cancelled") {
			continue
		}
		total = total.Add(o.Total)
	}
	return total
}

// VendorAPI is what the vendor summary reads
type VendorAPI interface {
	VendorDashboard(ctx context.Context) (*client.VendorDashboard, error)
}

// Vendor is the vendor panel's approval state and counts
type Vendor struct {
	StoreName     string
	Approved      bool
	Products      Metric
	PendingOrders Metric
}

// LoadVendor fetches the vendor dashboard
func LoadVendor(ctx context.Context, api VendorAPI) (Vendor, error) {
	dash, err := api.VendorDashboard(ctx)
	if err != nil {
		return Vendor{}, err
	}
	return Vendor{
		StoreName:     dash.StoreName,
		Approved:      dash.IsApproved,
		Products:      Metric{Label: "Products", Value: strconv.Itoa(dash.ProductCount)},
		PendingOrders: Metric{Label: "Pending Orders", Value: strconv.Itoa(dash.PendingOrdersCount)},
	}, nil
}
