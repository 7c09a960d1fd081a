// ABOUTME: Catalog commands: home page, products, product, categories and banners
// ABOUTME: Product listings go through the same renderer and pager the TUI uses

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/listing"
	"github.com/seefirst/seefirst-cli/internal/pagination"
	"github.com/seefirst/seefirst-cli/internal/session"
	"github.com/seefirst/seefirst-cli/internal/storefront"
	"github.com/seefirst/seefirst-cli/internal/tui/styles"
)

var (
	productsPage    int
	productsLimit   int
	productsFilters pagination.Filters

	categoryImage string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products",
	Long:  `List a page of the product catalog, optionally filtered by category, condition or search text.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context, w io.Writer) int {
			state := pagination.State{Page: productsPage, Filters: productsFilters}
			return runProducts(ctx, w, state, productsLimit)
		})
	},
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context, w io.Writer) int {
			return runProduct(ctx, w, args[0])
		})
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List product categories",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(runCategories)
	},
}

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the storefront home page: new arrivals and featured products",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(runHome)
	},
}

var bannersCmd = &cobra.Command{
	Use:   "banners",
	Short: "List storefront banners as carousel slides",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(runBanners)
	},
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context, w io.Writer) int {
			return runCategoryAdd(ctx, w, args[0], categoryImage)
		})
	},
}

func init() {
	productsCmd.Flags().IntVar(&productsPage, "page", 1, "Page number")
	productsCmd.Flags().IntVar(&productsLimit, "limit", 0, "Products per page (default: page_size setting)")
	productsCmd.Flags().StringVar(&productsFilters.Category, "category", "", "Category ID")
	productsCmd.Flags().StringVar(&productsFilters.Sort, "sort", "", "Sort order: newest, price_asc or price_desc")
	productsCmd.Flags().StringVar(&productsFilters.Condition, "condition", "", "Condition, e.g. new or used")
	productsCmd.Flags().StringVar(&productsFilters.Search, "search", "", "Search text")

	categoriesAddCmd.Flags().StringVar(&categoryImage, "image", "", "Path to a category image")
	categoriesCmd.AddCommand(categoriesAddCmd)

	rootCmd.AddCommand(homeCmd, productsCmd, productCmd, categoriesCmd, bannersCmd)
}

// runProducts fetches and prints one page of products
func runProducts(ctx context.Context, w io.Writer, state pagination.State, limit int) int {
	if err := state.Filters.Validate(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if state.Page < 1 {
		state.Page = 1
	}

	return withEnv(ctx, w, "", func(e *env) int {
		if limit <= 0 {
			limit = e.cfg.PageSize
		}

		var raw *client.Page[client.Product]
		renderer := &listing.Renderer[client.Product]{
			Limit:    limit,
			Paginate: pagination.Build,
			Fetch: func(ctx context.Context, s pagination.State) (*client.Page[client.Product], error) {
				page, err := e.client.ListProducts(ctx, client.ProductQuery{Filters: s.Filters, Page: s.Page, PerPage: limit})
				raw = page
				return page, err
			},
		}

		container := renderer.Load(ctx, state)
		if container.Err != nil {
			return reportError(w, container.Err)
		}

		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(raw))
		} else {
			fmt.Fprintln(w, formatProductsHuman(container))
		}
		return 0
	})
}

// formatProductsHuman renders a product container as a table with a pager line
func formatProductsHuman(c listing.Container[client.Product]) string {
	if c.Empty() {
		return "No products found."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-6s %-32s %12s  %-12s %s\n", "ID", "NAME", "PRICE", "CONDITION", "CATEGORY")
	for _, p := range c.Items() {
		fmt.Fprintf(&sb, "%-6d %-32s %12s  %-12s %s\n",
			p.ID, truncate(p.Name, 32), formatPrice(p), dash(p.Condition), dash(p.Category))
	}
	if pager := formatPager(c.Pager); pager != "" {
		sb.WriteString("\n")
		sb.WriteString(pager)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatPager renders the pager as text, e.g. "Page 2 of 4  < 1 [2] 3 4 >"
func formatPager(v pagination.View) string {
	if v.Hidden {
		return ""
	}
	var parts []string
	for _, c := range v.Controls {
		switch {
		case c.Kind == pagination.KindPrev && !c.Disabled:
			parts = append(parts, "<")
		case c.Kind == pagination.KindNext && !c.Disabled:
			parts = append(parts, ">")
		case c.Kind == pagination.KindPage && c.Active:
			parts = append(parts, "["+strconv.Itoa(c.Page)+"]")
		case c.Kind == pagination.KindPage:
			parts = append(parts, strconv.Itoa(c.Page))
		}
	}
	return fmt.Sprintf("Page %d of %d  %s", v.Current, v.Total, strings.Join(parts, " "))
}

// runProduct prints one product
func runProduct(ctx context.Context, w io.Writer, rawID string) int {
	id, err := parseID(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	return withEnv(ctx, w, "", func(e *env) int {
		p, err := e.client.GetProduct(ctx, id)
		if err != nil {
			return reportError(w, err)
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(p))
		} else {
			fmt.Fprintln(w, formatProductHuman(p, e.client.UploadURL))
		}
		return 0
	})
}

func formatProductHuman(p *client.Product, uploadURL func(string) string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (#%d)\n", p.Name, p.ID)
	fmt.Fprintf(&sb, "Price:      %s\n", formatPrice(*p))
	fmt.Fprintf(&sb, "Condition:  %s\n", dash(p.Condition))
	fmt.Fprintf(&sb, "Category:   %s\n", dash(p.Category))
	if p.Quantity > 0 {
		fmt.Fprintf(&sb, "In stock:   %d\n", p.Quantity)
	}
	if p.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", p.Description)
	}
	if images := p.Images(); len(images) > 0 {
		sb.WriteString("\nImages:\n")
		for _, name := range images {
			fmt.Fprintf(&sb, "  %s\n", uploadURL(name))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// runCategories lists categories
func runCategories(ctx context.Context, w io.Writer) int {
	return withEnv(ctx, w, "", func(e *env) int {
		cats, err := e.client.ListCategories(ctx)
		if err != nil {
			return reportError(w, err)
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(cats))
			return 0
		}
		if len(cats) == 0 {
			fmt.Fprintln(w, "No categories.")
			return 0
		}
		for _, c := range cats {
			fmt.Fprintf(w, "%-6d %s\n", c.ID, c.Name)
		}
		return 0
	})
}

// runHome prints the new arrivals carousel and the featured products
func runHome(ctx context.Context, w io.Writer) int {
	return withEnv(ctx, w, "", func(e *env) int {
		home := storefront.Load(ctx, func(ctx context.Context, s pagination.State) (*client.Page[client.Product], error) {
			return e.client.ListProducts(ctx, client.ProductQuery{Filters: s.Filters, Page: s.Page})
		})
		if err := home.Err(); err != nil {
			return reportError(w, err)
		}

		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(map[string]any{
				"new_arrivals": home.Slides(),
				"featured":     home.Featured.Items(),
			}))
			return 0
		}
		fmt.Fprintln(w, formatHomeHuman(home))
		return 0
	})
}

func formatHomeHuman(home storefront.Home) string {
	var sb strings.Builder

	sb.WriteString("NEW ARRIVALS\n")
	slides := home.Slides()
	if len(slides) == 0 {
		sb.WriteString("  No products found.\n")
	}
	for i, slide := range slides {
		fmt.Fprintf(&sb, "  Slide %d of %d\n", i+1, len(slides))
		for _, p := range slide {
			fmt.Fprintf(&sb, "    %-6d %-32s %12s\n", p.ID, truncate(p.Name, 32), formatPrice(p))
		}
	}

	sb.WriteString("\nFEATURED\n")
	if home.Featured.Empty() {
		sb.WriteString("  No products found.\n")
	}
	for _, p := range home.Featured.Items() {
		fmt.Fprintf(&sb, "  %-6d %-32s %12s\n", p.ID, truncate(p.Name, 32), formatPrice(p))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// runBanners prints banners grouped into carousel slides
func runBanners(ctx context.Context, w io.Writer) int {
	return withEnv(ctx, w, "", func(e *env) int {
		banners, err := e.client.ListBanners(ctx)
		if err != nil {
			return reportError(w, err)
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(banners))
			return 0
		}
		fmt.Fprintln(w, formatBannersHuman(banners, e.client.UploadURL))
		return 0
	})
}

func formatBannersHuman(banners []client.Banner, uploadURL func(string) string) string {
	if len(banners) == 0 {
		return "No banners."
	}

	var sb strings.Builder
	for i, slide := range listing.Chunk(banners, listing.CarouselSize) {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Slide %d\n", i+1)
		for _, b := range slide {
			fmt.Fprintf(&sb, "  %-32s %s\n", truncate(dash(b.Title), 32), dash(uploadURL(b.Image)))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// runCategoryAdd creates a category as admin
func runCategoryAdd(ctx context.Context, w io.Writer, name, imagePath string) int {
	return withEnv(ctx, w, session.RealmAdmin, func(e *env) int {
		if _, ok := e.requireSession(ctx, w); !ok {
			return 2
		}

		var image *client.Upload
		if imagePath != "" {
			up, err := client.OpenUpload("image", imagePath)
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 2
			}
			image = &up
		}

		cat, err := e.client.CreateCategory(ctx, name, image)
		if err != nil {
			return reportError(w, err)
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(cat))
		} else {
			fmt.Fprintf(w, "Created category %s (#%d)\n", cat.Name, cat.ID)
		}
		return 0
	})
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func formatPrice(p client.Product) string {
	return styles.Currency + p.Price.StringFixed(2)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
