// ABOUTME: Cart commands: show, add, update, remove, clear and checkout
// ABOUTME: The cart lives in local storage; checkout places one order per line

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seefirst/seefirst-cli/internal/cart"
	"github.com/seefirst/seefirst-cli/internal/tui/styles"
)

var (
	cartQty       int
	checkoutName  string
	checkoutPhone string
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the cart",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(runCartShow)
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context, w io.Writer) int {
			return runCartAdd(ctx, w, args[0], cartQty)
		})
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <product-id> <delta>",
	Short: "Change a line's quantity by delta; lines reaching zero are removed",
	Example: `  seefirst cart update 7 1
  seefirst cart update 7 -- -1`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context, w io.Writer) int {
			return runCartUpdate(ctx, w, args[0], args[1])
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a product from the cart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context, w io.Writer) int {
			return runCartRemove(ctx, w, args[0])
		})
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(runCartClear)
	},
}

var cartCheckoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place orders for everything in the cart",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context, w io.Writer) int {
			return runCheckout(ctx, w, cart.Customer{Name: checkoutName, Phone: checkoutPhone})
		})
	},
}

func init() {
	cartAddCmd.Flags().IntVar(&cartQty, "qty", 1, "Quantity to add")
	cartCheckoutCmd.Flags().StringVar(&checkoutName, "name", "", "Customer name")
	cartCheckoutCmd.Flags().StringVar(&checkoutPhone, "phone", "", "Customer phone")

	cartCmd.AddCommand(cartAddCmd, cartUpdateCmd, cartRemoveCmd, cartClearCmd, cartCheckoutCmd)
	rootCmd.AddCommand(cartCmd)
}

// withCart opens the env and the cart for fn
func withCart(ctx context.Context, w io.Writer, fn func(e *env, c *cart.Local) int) int {
	return withEnv(ctx, w, "", func(e *env) int {
		c, err := e.openCart(ctx)
		if err != nil {
			return reportError(w, err)
		}
		return fn(e, c)
	})
}

// runCartShow prints the cart
func runCartShow(ctx context.Context, w io.Writer) int {
	return withCart(ctx, w, func(_ *env, c *cart.Local) int {
		printCart(w, c)
		return 0
	})
}

func printCart(w io.Writer, c cart.Store) {
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(map[string]any{
			"lines": c.Lines(),
			"count": c.Count(),
			"total": c.Total(),
		}))
		return
	}
	fmt.Fprintln(w, formatCartHuman(c.Lines(), c.Total().StringFixed(2)))
}

func formatCartHuman(lines []cart.Line, total string) string {
	if len(lines) == 0 {
		return "Your cart is empty."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-6s %-32s %5s %12s %12s\n", "ID", "NAME", "QTY", "PRICE", "SUBTOTAL")
	for _, l := range lines {
		fmt.Fprintf(&sb, "%-6d %-32s %5d %12s %12s\n",
			l.ProductID, truncate(l.Name, 32), l.Quantity,
			styles.Currency+l.UnitPrice.StringFixed(2),
			styles.Currency+l.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&sb, "\nTotal: %s%s", styles.Currency, total)
	return sb.String()
}

// runCartAdd looks the product up and adds qty of it
func runCartAdd(ctx context.Context, w io.Writer, rawID string, qty int) int {
	id, err := parseID(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if qty < 1 {
		fmt.Fprintln(w, "Error: --qty must be at least 1")
		return 2
	}

	return withCart(ctx, w, func(e *env, c *cart.Local) int {
		p, err := e.client.GetProduct(ctx, id)
		if err != nil {
			return reportError(w, err)
		}
		if err := c.Add(ctx, cart.ItemFromProduct(*p), qty); err != nil {
			return reportError(w, err)
		}
		if !IsJSONOutput() {
			fmt.Fprintf(w, "Added %d × %s. Cart: %d item(s)\n", qty, p.Name, c.Count())
			return 0
		}
		printCart(w, c)
		return 0
	})
}

// runCartUpdate changes a line's quantity by delta
func runCartUpdate(ctx context.Context, w io.Writer, rawID, rawDelta string) int {
	id, err := parseID(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	delta, err := strconv.Atoi(rawDelta)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid delta %q\n", rawDelta)
		return 2
	}

	return withCart(ctx, w, func(_ *env, c *cart.Local) int {
		if err := c.UpdateQuantity(ctx, id, delta); err != nil {
			return reportError(w, err)
		}
		printCart(w, c)
		return 0
	})
}

// runCartRemove drops a line
func runCartRemove(ctx context.Context, w io.Writer, rawID string) int {
	id, err := parseID(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	return withCart(ctx, w, func(_ *env, c *cart.Local) int {
		if err := c.Remove(ctx, id); err != nil {
			return reportError(w, err)
		}
		printCart(w, c)
		return 0
	})
}

// runCartClear empties the cart
func runCartClear(ctx context.Context, w io.Writer) int {
	return withCart(ctx, w, func(_ *env, c *cart.Local) int {
		if err := c.Clear(ctx); err != nil {
			return reportError(w, err)
		}
		fmt.Fprintln(w, "Cart cleared.")
		return 0
	})
}

// runCheckout places the cart's orders. Lines that were not ordered stay
// in the cart.
func runCheckout(ctx context.Context, w io.Writer, customer cart.Customer) int {
	if err := customer.Validate(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	return withCart(ctx, w, func(e *env, c *cart.Local) int {
		receipt, err := cart.Checkout(ctx, c, e.client, customer)
		if receipt != nil && len(receipt.Orders) > 0 {
			if IsJSONOutput() {
				fmt.Fprintln(w, formatJSON(receipt))
			} else {
				fmt.Fprintf(w, "Placed %d order(s) totalling %s%s\n",
					len(receipt.Orders), styles.Currency, receipt.Total.StringFixed(2))
			}
		}
		if err != nil {
			if len(c.Lines()) > 0 && !IsJSONOutput() {
				fmt.Fprintf(w, "%d line(s) left in the cart.\n", len(c.Lines()))
			}
			return reportError(w, err)
		}
		return 0
	})
}
