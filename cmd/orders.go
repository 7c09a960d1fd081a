// ABOUTME: Order commands for the admin panel
// ABOUTME: Lists orders and moves them through their statuses

package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/tui/styles"
)

var ordersPage int

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Manage orders (admin)",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context, w io.Writer) int {
			return runOrdersList(ctx, w, ordersPage)
		})
	},
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status <order-id> <status>",
	Short: "Set an order's status",
	Long:  "Set an order's status. Valid statuses: " + strings.Join(client.OrderStatuses, ", "),
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context, w io.Writer) int {
			return runOrderStatus(ctx, w, args[0], args[1])
		})
	},
}

func init() {
	ordersListCmd.Flags().IntVar(&ordersPage, "page", 1, "Page number")
	ordersCmd.AddCommand(ordersListCmd, ordersStatusCmd)
	rootCmd.AddCommand(ordersCmd)
}

// runOrdersList prints a page of orders
func runOrdersList(ctx context.Context, w io.Writer, page int) int {
	return withAdmin(ctx, w, func(e *env) int {
		orders, err := e.client.ListOrders(ctx, max(page, 1))
		if err != nil {
			return reportError(w, err)
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(orders))
		} else {
			fmt.Fprintln(w, formatOrdersHuman(orders))
		}
		return 0
	})
}

func formatOrdersHuman(page *client.Page[client.Order]) string {
	if len(page.Data) == 0 {
		return "No orders."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-6s %-24s %-14s %12s  %s\n", "ID", "CUSTOMER", "PHONE", "TOTAL", "STATUS")
	for _, o := range page.Data {
		fmt.Fprintf(&sb, "%-6d %-24s %-14s %12s  %s\n",
			o.ID, truncate(o.CustomerName, 24), dash(o.CustomerPhone),
			styles.Currency+o.Total.StringFixed(2), o.Status)
	}
	if page.TotalPages > 1 {
		fmt.Fprintf(&sb, "\nPage %d of %d", page.CurrentPage, page.TotalPages)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// runOrderStatus updates one order
func runOrderStatus(ctx context.Context, w io.Writer, rawID, status string) int {
	id, err := parseID(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	status = strings.ToLower(status)
	if !slices.Contains(client.OrderStatuses, status) {
		fmt.Fprintf(w, "Error: unknown status %q (want %s)\n", status, strings.Join(client.OrderStatuses, ", "))
		return 2
	}

	return withAdmin(ctx, w, func(e *env) int {
		if err := e.client.UpdateOrderStatus(ctx, id, status); err != nil {
			return reportError(w, err)
		}
		fmt.Fprintf(w, "Order #%d is now %s\n", id, status)
		return 0
	})
}
