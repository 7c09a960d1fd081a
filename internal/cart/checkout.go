// ABOUTME: Checkout turns cart lines into backend orders
// ABOUTME: Lines are removed as their orders succeed; the first failure stops the run

package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/seefirst/seefirst-cli/internal/client"
)

var ErrEmptyCart = errors.New("cart is empty")

// OrderPlacer creates one backend order
type OrderPlacer interface {
	CreateOrder(ctx context.Context, in client.OrderInput) (*client.Order, error)
}

// Customer is who the orders are for
type Customer struct {
	Name  string
	Phone string
}

// Validate requires both name and phone
func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("customer name is required")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return errors.New("customer phone is required")
	}
	return nil
}

// Receipt lists the orders placed and what they cost
type Receipt struct {
	Orders []client.Order
	Total  decimal.Decimal
}

// Checkout places one order per line in cart order. The returned receipt
// covers the orders placed before any error; unplaced lines stay in the cart.
func Checkout(ctx context.Context, store Store, placer OrderPlacer, customer Customer) (*Receipt, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	lines := store.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	receipt := &Receipt{Total: decimal.Zero}
	for _, line := range lines {
		order, err := placer.CreateOrder(ctx, client.OrderInput{
			ProductID:     line.ProductID,
			Quantity:      line.Quantity,
			CustomerName:  strings.TrimSpace(customer.Name),
			CustomerPhone: strings.TrimSpace(customer.Phone),
		})
		if err != nil {
			return receipt, fmt.Errorf("order for %s: %w", line.Name, err)
		}

		receipt.Orders = append(receipt.Orders, *order)
		receipt.Total = receipt.Total.Add(line.Subtotal())

		if err := store.Remove(ctx, line.ProductID); err != nil {
			return receipt, err
		}
	}
	return receipt, nil
}
