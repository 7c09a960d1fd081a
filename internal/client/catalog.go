// ABOUTME: Public catalog endpoints: products, categories, banners, previews
// ABOUTME: Also resolves uploaded image names to URLs

package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ListProducts fetches one page of the product listing
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*Page[Product], error) {
	query := q.Filters.Values()
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(q.PerPage))
	}

	var page Page[Product]
	if err := c.Call(ctx, &Request{Path: "/api/products", Query: query}, &page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []Product{}
	}
	return &page, nil
}

// GetProduct fetches a single product
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var item Item[Product]
	path := fmt.Sprintf("/api/products/%d", id)
	if err := c.Call(ctx, &Request{Path: path}, &item); err != nil {
		return nil, err
	}
	return &item.Data, nil
}

// ListCategories fetches every category
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var page Page[Category]
	if err := c.Call(ctx, &Request{Path: "/api/categories"}, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

// ListBanners fetches the storefront banners
func (c *Client) ListBanners(ctx context.Context) ([]Banner, error) {
	var page Page[Banner]
	if err := c.Call(ctx, &Request{Path: "/api/banners"}, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

// ListPreviews fetches one page of booked home previews
func (c *Client) ListPreviews(ctx context.Context, page int) (*Page[Preview], error) {
	return listPage[Preview](ctx, c, "/api/previews", page)
}

// UploadURL resolves an uploaded file name, or "" when there is none
func (c *Client) UploadURL(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return c.baseURL + "/uploads/" + url.PathEscape(name)
}

func listPage[T any](ctx context.Context, c *Client, path string, page int) (*Page[T], error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	var out Page[T]
	if err := c.Call(ctx, &Request{Path: path, Query: query}, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []T{}
	}
	return &out, nil
}
