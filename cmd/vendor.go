// ABOUTME: Vendor panel commands: register, dashboard, products and add-product
// ABOUTME: All of them use the vendor session regardless of --realm

package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/session"
	"github.com/seefirst/seefirst-cli/internal/summary"
)

var (
	vendorProductsPage int
	newProduct         productFlags
	registration       client.VendorRegistration
)

// productFlags are the add-product inputs before parsing
type productFlags struct {
	name        string
	description string
	price       string
	quantity    int
	category    string
	condition   string
	images      []string
}

var vendorCmd = &cobra.Command{
	Use:   "vendor",
	Short: "Vendor panel",
}

var vendorRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Sign up as a vendor; the store is listed once an admin approves it",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context, w io.Writer) int {
			return runVendorRegister(ctx, w, registration)
		})
	},
}

var vendorDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show approval state, product count and pending orders",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(runVendorDashboard)
	},
}

var vendorProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "List your products",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context, w io.Writer) int {
			return runVendorProducts(ctx, w, vendorProductsPage)
		})
	},
}

var vendorAddProductCmd = &cobra.Command{
	Use:   "add-product",
	Short: "List a new product with images",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context, w io.Writer) int {
			return runVendorAddProduct(ctx, w, newProduct)
		})
	},
}

func init() {
	f := vendorRegisterCmd.Flags()
	f.StringVar(&registration.Name, "name", "", "Your name")
	f.StringVar(&registration.Email, "email", "", "Account email")
	f.StringVar(&registration.Phone, "phone", "", "Phone number")
	f.StringVar(&registration.Password, "password", "", "Account password")
	f.StringVar(&registration.StoreName, "store-name", "", "Store name")
	f.StringVar(&registration.StoreDescription, "store-description", "", "Store description")
	f.StringVar(&registration.StoreLocation, "store-location", "", "Store location")

	vendorProductsCmd.Flags().IntVar(&vendorProductsPage, "page", 1, "Page number")

	p := vendorAddProductCmd.Flags()
	p.StringVar(&newProduct.name, "name", "", "Product name")
	p.StringVar(&newProduct.description, "description", "", "Product description")
	p.StringVar(&newProduct.price, "price", "", "Price in taka")
	p.IntVar(&newProduct.quantity, "quantity", 1, "Units in stock")
	p.StringVar(&newProduct.category, "category", "", "Category ID")
	p.StringVar(&newProduct.condition, "condition", "", "Condition, e.g. new or used")
	p.StringArrayVar(&newProduct.images, "image", nil, "Image file (repeatable)")

	vendorCmd.AddCommand(vendorRegisterCmd, vendorDashboardCmd, vendorProductsCmd, vendorAddProductCmd)
	rootCmd.AddCommand(vendorCmd)
}

// withVendor opens a vendor env and requires a session
func withVendor(ctx context.Context, w io.Writer, fn func(e *env) int) int {
	return withEnv(ctx, w, session.RealmVendor, func(e *env) int {
		if _, ok := e.requireSession(ctx, w); !ok {
			return 2
		}
		return fn(e)
	})
}

// runVendorRegister submits a vendor sign-up
func runVendorRegister(ctx context.Context, w io.Writer, reg client.VendorRegistration) int {
	var missing []string
	for flag, v := range map[string]string{
		"--name": reg.Name, "--email": reg.Email, "--phone": reg.Phone,
		"--password": reg.Password, "--store-name": reg.StoreName,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, flag)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		fmt.Fprintf(w, "Error: missing %s\n", strings.Join(missing, ", "))
		return 2
	}

	return withEnv(ctx, w, session.RealmVendor, func(e *env) int {
		if err := e.client.RegisterVendor(ctx, reg); err != nil {
			return reportError(w, err)
		}
		fmt.Fprintf(w, "Registered %s. You can sign in once an admin approves the store.\n", reg.StoreName)
		return 0
	})
}

// runVendorDashboard prints the vendor summary
func runVendorDashboard(ctx context.Context, w io.Writer) int {
	return withVendor(ctx, w, func(e *env) int {
		s, err := summary.LoadVendor(ctx, e.client)
		if err != nil {
			return reportError(w, err)
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(map[string]any{
				"store_name":     s.StoreName,
				"approved":       s.Approved,
				"products":       s.Products.Display(),
				"pending_orders": s.PendingOrders.Display(),
			}))
			return 0
		}
		fmt.Fprintln(w, formatVendorHuman(s))
		return 0
	})
}

func formatVendorHuman(s summary.Vendor) string {
	status := "Awaiting admin approval"
	if s.Approved {
		status = "Approved"
	}
	return fmt.Sprintf("Store:           %s\nStatus:          %s\n%s",
		dash(s.StoreName), status,
		formatMetricsHuman([]summary.Metric{s.Products, s.PendingOrders}))
}

// runVendorProducts lists the vendor's own products
func runVendorProducts(ctx context.Context, w io.Writer, page int) int {
	return withVendor(ctx, w, func(e *env) int {
		products, err := e.client.VendorProducts(ctx, max(page, 1))
		if err != nil {
			return reportError(w, err)
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(products))
			return 0
		}
		if len(products.Data) == 0 {
			fmt.Fprintln(w, "No products yet. Add one with `seefirst vendor add-product`.")
			return 0
		}
		for _, p := range products.Data {
			fmt.Fprintf(w, "%-6d %-32s %12s  %d in stock\n", p.ID, truncate(p.Name, 32), formatPrice(p), p.Quantity)
		}
		return 0
	})
}

// runVendorAddProduct uploads a new product
func runVendorAddProduct(ctx context.Context, w io.Writer, in productFlags) int {
	price, err := decimal.NewFromString(strings.TrimSpace(in.price))
	if err != nil {
		fmt.Fprintf(w, "Error: invalid --price %q\n", in.price)
		return 2
	}

	var uploads []client.Upload
	for _, path := range in.images {
		up, err := client.OpenUpload(client.ImageField, path)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		uploads = append(uploads, up)
	}

	return withVendor(ctx, w, func(e *env) int {
		p, err := e.client.CreateProduct(ctx, client.ProductInput{
			Name:        in.name,
			Description: in.description,
			Price:       price,
			Quantity:    in.quantity,
			Category:    in.category,
			Condition:   in.condition,
		}, uploads)
		if err != nil {
			return reportError(w, err)
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(p))
		} else {
			fmt.Fprintf(w, "Listed %s (#%d) at %s\n", p.Name, p.ID, formatPrice(*p))
		}
		return 0
	})
}
