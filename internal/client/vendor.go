// ABOUTME: Vendor panel endpoints
// ABOUTME: Dashboard summary, own products and multipart product creation

package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ImageField is the multipart field for product images
const ImageField = "images[]"

// VendorDashboard fetches the signed-in vendor's summary
func (c *Client) VendorDashboard(ctx context.Context) (*VendorDashboard, error) {
	var dash VendorDashboard
	if err := c.Call(ctx, &Request{Path: "/api/vendor/dashboard"}, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

// VendorProducts fetches one page of the vendor's own products
func (c *Client) VendorProducts(ctx context.Context, page int) (*Page[Product], error) {
	return listPage[Product](ctx, c, "/api/vendor/products", page)
}

// CreateProduct uploads a new product with its images
func (c *Client) CreateProduct(ctx context.Context, in ProductInput, images []Upload) (*Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if !in.Price.IsPositive() {
		return nil, fmt.Errorf("product price must be positive")
	}

	fields := map[string]string{
		"name":        in.Name,
		"description": in.Description,
		"price":       in.Price.String(),
		"quantity":    strconv.Itoa(in.Quantity),
	}
	if in.Category != "" {
		fields["category"] = in.Category
	}
	if in.Condition != "" {
		fields["condition"] = in.Condition
	}
	for i := range images {
		images[i].Field = ImageField
	}

	body, err := NewMultipart(fields, images...)
	if err != nil {
		return nil, err
	}

	var item Item[Product]
	req := &Request{Method: http.MethodPost, Path: "/api/products", Body: body}
	if err := c.Call(ctx, req, &item); err != nil {
		return nil, err
	}
	return &item.Data, nil
}
