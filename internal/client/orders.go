// ABOUTME: Order endpoints for checkout and order management
// ABOUTME: Each order covers one product line

package client

import (
	"context"
	"fmt"
	"net/http"
	"slices"
)

// ListOrders fetches one page of orders visible to the session
func (c *Client) ListOrders(ctx context.Context, page int) (*Page[Order], error) {
	return listPage[Order](ctx, c, "/api/orders", page)
}

// CreateOrder places an order for one product line
func (c *Client) CreateOrder(ctx context.Context, in OrderInput) (*Order, error) {
	if in.Quantity < 1 {
		return nil, fmt.Errorf("order quantity must be at least 1")
	}

	var item Item[Order]
	req := &Request{Method: http.MethodPost, Path: "/api/orders", Body: in}
	if err := c.Call(ctx, req, &item); err != nil {
		return nil, err
	}
	return &item.Data, nil
}

// UpdateOrderStatus moves an order to a new status
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	if !slices.Contains(OrderStatuses, status) {
		return fmt.Errorf("unknown order status %q", status)
	}
	req := &Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/api/orders/%d", id),
		Body:   map[string]string{"status": status},
	}
	return c.Call(ctx, req, nil)
}
