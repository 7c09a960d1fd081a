// ABOUTME: Admin panel endpoints
// ABOUTME: Vendor approval, user listing, categories and product removal

package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// AdminVendors fetches every vendor account
func (c *Client) AdminVendors(ctx context.Context) ([]Vendor, error) {
	var page Page[Vendor]
	if err := c.Call(ctx, &Request{Path: "/api/admin/vendors"}, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

// ApproveVendor approves a pending vendor
func (c *Client) ApproveVendor(ctx context.Context, id int64) error {
	req := &Request{Method: http.MethodPut, Path: fmt.Sprintf("/api/admin/vendors/%d/approve", id)}
	return c.Call(ctx, req, nil)
}

// ListUsers fetches one page of customer accounts
func (c *Client) ListUsers(ctx context.Context, page int) (*Page[User], error) {
	return listPage[User](ctx, c, "/api/users", page)
}

// CreateCategory adds a category with an optional image
func (c *Client) CreateCategory(ctx context.Context, name string, image *Upload) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	var uploads []Upload
	if image != nil {
		img := *image
		img.Field = "image"
		uploads = append(uploads, img)
	}
	body, err := NewMultipart(map[string]string{"name": name}, uploads...)
	if err != nil {
		return nil, err
	}

	var item Item[Category]
	req := &Request{Method: http.MethodPost, Path: "/api/categories", Body: body}
	if err := c.Call(ctx, req, &item); err != nil {
		return nil, err
	}
	return &item.Data, nil
}

// DeleteProduct removes a product
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	req := &Request{Method: http.MethodDelete, Path: fmt.Sprintf("/api/products/%d", id)}
	return c.Call(ctx, req, nil)
}
