// ABOUTME: Admin panel commands: dashboard, vendors, approvals, users and product removal
// ABOUTME: All of them use the admin session regardless of --realm

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/session"
	"github.com/seefirst/seefirst-cli/internal/summary"
)

var usersPage int

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin panel",
}

var adminDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show sales, orders, customers, products and home previews",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(runAdminDashboard)
	},
}

var adminVendorsCmd = &cobra.Command{
	Use:   "vendors",
	Short: "List vendors and their approval state",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(runAdminVendors)
	},
}

var adminApproveCmd = &cobra.Command{
	Use:   "approve <vendor-id>",
	Short: "Approve a vendor",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context, w io.Writer) int {
			return runAdminApprove(ctx, w, args[0])
		})
	},
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List customers",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context, w io.Writer) int {
			return runAdminUsers(ctx, w, usersPage)
		})
	},
}

var adminDeleteProductCmd = &cobra.Command{
	Use:   "delete-product <product-id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context, w io.Writer) int {
			return runAdminDeleteProduct(ctx, w, args[0])
		})
	},
}

func init() {
	adminUsersCmd.Flags().IntVar(&usersPage, "page", 1, "Page number")
	adminCmd.AddCommand(adminDashboardCmd, adminVendorsCmd, adminApproveCmd, adminUsersCmd, adminDeleteProductCmd)
	rootCmd.AddCommand(adminCmd)
}

// withAdmin opens an admin env and requires a session
func withAdmin(ctx context.Context, w io.Writer, fn func(e *env) int) int {
	return withEnv(ctx, w, session.RealmAdmin, func(e *env) int {
		if _, ok := e.requireSession(ctx, w); !ok {
			return 2
		}
		return fn(e)
	})
}

// runAdminDashboard prints the admin summary. A failing metric shows as
// unavailable; the command only fails when the session was rejected.
func runAdminDashboard(ctx context.Context, w io.Writer) int {
	return withAdmin(ctx, w, func(e *env) int {
		s := summary.LoadAdmin(ctx, e.client)
		if s.Unauthorized() {
			return reportError(w, client.ErrUnauthorized)
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(metricsJSON(s.Metrics())))
		} else {
			fmt.Fprintln(w, formatMetricsHuman(s.Metrics()))
		}
		return 0
	})
}

type metricJSON struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

func metricsJSON(metrics []summary.Metric) []metricJSON {
	out := make([]metricJSON, 0, len(metrics))
	for _, m := range metrics {
		mj := metricJSON{Label: m.Label, Value: m.Display(), Detail: m.Detail}
		if m.Err != nil {
			mj.Error = m.Err.Error()
		}
		out = append(out, mj)
	}
	return out
}

func formatMetricsHuman(metrics []summary.Metric) string {
	var sb strings.Builder
	for _, m := range metrics {
		line := fmt.Sprintf("%-16s %s", m.Label+":", m.Display())
		if m.Detail != "" {
			line += " (" + m.Detail + ")"
		}
		sb.WriteString(line + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// runAdminVendors lists vendors
func runAdminVendors(ctx context.Context, w io.Writer) int {
	return withAdmin(ctx, w, func(e *env) int {
		vendors, err := e.client.AdminVendors(ctx)
		if err != nil {
			return reportError(w, err)
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(vendors))
		} else {
			fmt.Fprintln(w, formatVendorsHuman(vendors))
		}
		return 0
	})
}

func formatVendorsHuman(vendors []client.Vendor) string {
	if len(vendors) == 0 {
		return "No vendors."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-6s %-24s %-28s %s\n", "ID", "STORE", "EMAIL", "STATUS")
	for _, v := range vendors {
		status := "pending"
		if v.IsApproved {
			status = "approved"
		}
		fmt.Fprintf(&sb, "%-6d %-24s %-28s %s\n", v.ID, truncate(v.StoreName, 24), truncate(v.Email, 28), status)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// runAdminApprove approves a vendor
func runAdminApprove(ctx context.Context, w io.Writer, rawID string) int {
	id, err := parseID(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	return withAdmin(ctx, w, func(e *env) int {
		if err := e.client.ApproveVendor(ctx, id); err != nil {
			return reportError(w, err)
		}
		fmt.Fprintf(w, "Vendor #%d approved\n", id)
		return 0
	})
}

// runAdminUsers lists customers
func runAdminUsers(ctx context.Context, w io.Writer, page int) int {
	return withAdmin(ctx, w, func(e *env) int {
		users, err := e.client.ListUsers(ctx, max(page, 1))
		if err != nil {
			return reportError(w, err)
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(users))
			return 0
		}
		if len(users.Data) == 0 {
			fmt.Fprintln(w, "No customers.")
			return 0
		}
		for _, u := range users.Data {
			fmt.Fprintf(w, "%-6d %-24s %-28s %s\n", u.ID, truncate(u.Name, 24), truncate(u.Email, 28), dash(u.Phone))
		}
		if users.TotalPages > 1 {
			fmt.Fprintf(w, "\nPage %d of %d\n", users.CurrentPage, users.TotalPages)
		}
		return 0
	})
}

// runAdminDeleteProduct removes a product
func runAdminDeleteProduct(ctx context.Context, w io.Writer, rawID string) int {
	id, err := parseID(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	return withAdmin(ctx, w, func(e *env) int {
		if err := e.client.DeleteProduct(ctx, id); err != nil {
			return reportError(w, err)
		}
		fmt.Fprintf(w, "Product #%d deleted\n", id)
		return 0
	})
}
