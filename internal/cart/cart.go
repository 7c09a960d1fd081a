// ABOUTME: Shopping cart with write-through persistence
// ABOUTME: One line per product, quantities at least one, listeners told the new count

package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/storage"
)

// StorageKey is where the cart lines are persisted
const StorageKey = "cart"

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNotInCart       = errors.New("product is not in the cart")
)

// Line is one product in the cart
type Line struct {
	ProductID  int64             `json:"product_id"`
	Name       string            `json:"name"`
	UnitPrice  decimal.Decimal   `json:"unit_price"`
	Quantity   int               `json:"quantity"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Subtotal is unit price times quantity
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Item is what gets added to the cart
type Item struct {
	ID         int64
	Name       string
	Price      decimal.Decimal
	Attributes map[string]string
}

// ItemFromProduct captures a product's current price and display attributes
func ItemFromProduct(p client.Product) Item {
	attrs := map[string]string{}
	if p.Condition != "" {
		attrs["condition"] = p.Condition
	}
	if p.Category != "" {
		attrs["category"] = p.Category
	}
	if imgs := p.Images(); len(imgs) > 0 {
		attrs["image"] = imgs[0]
	}
	if len(attrs) == 0 {
		attrs = nil
	}
	return Item{ID: p.ID, Name: p.Name, Price: p.Price, Attributes: attrs}
}

// Store is the cart contract views depend on
type Store interface {
	Lines() []Line
	Add(ctx context.Context, item Item, quantity int) error
	UpdateQuantity(ctx context.Context, productID int64, delta int) error
	Remove(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error
	Total() decimal.Decimal
	Count() int
}

// Observable is a Store that reports count changes
type Observable interface {
	Store
	OnChange(fn func(count int))
}

// Local keeps the cart in memory and writes it through to storage on every mutation
type Local struct {
	mu        sync.Mutex
	kv        storage.Store
	lines     []Line
	listeners []func(int)
}

var _ Observable = (*Local)(nil)

// Open loads the persisted cart. An unreadable record starts an empty cart.
func Open(ctx context.Context, kv storage.Store) (*Local, error) {
	c := &Local{kv: kv}

	raw, err := kv.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		slog.Warn("Discarding unreadable cart", "error", err)
		return c, nil
	}
	c.lines = normalize(lines)
	return c, nil
}

// normalize merges duplicate products and drops empty lines
func normalize(lines []Line) []Line {
	var out []Line
	index := map[int64]int{}
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if i, ok := index[l.ProductID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out
}

// OnChange registers fn to receive the item count after each mutation
func (c *Local) OnChange(fn func(count int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Lines returns a copy of the cart lines in insertion order
func (c *Local) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneLines(c.lines)
}

// Add puts quantity of item in the cart. A product already present keeps
// its original unit price and gains quantity.
func (c *Local) Add(ctx context.Context, item Item, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return c.mutate(ctx, func(lines []Line) ([]Line, error) {
		if i := indexOf(lines, item.ID); i >= 0 {
			lines[i].Quantity += quantity
			return lines, nil
		}
		return append(lines, Line{
			ProductID:  item.ID,
			Name:       item.Name,
			UnitPrice:  item.Price,
			Quantity:   quantity,
			Attributes: maps.Clone(item.Attributes),
		}), nil
	})
}

// UpdateQuantity changes a line by delta, removing it when the result is zero or less
func (c *Local) UpdateQuantity(ctx context.Context, productID int64, delta int) error {
	return c.mutate(ctx, func(lines []Line) ([]Line, error) {
		i := indexOf(lines, productID)
		if i < 0 {
			return nil, ErrNotInCart
		}
		lines[i].Quantity += delta
		if lines[i].Quantity <= 0 {
			return append(lines[:i], lines[i+1:]...), nil
		}
		return lines, nil
	})
}

// Remove deletes a product's line whatever its quantity. Absent products are a no-op.
func (c *Local) Remove(ctx context.Context, productID int64) error {
	c.mu.Lock()
	present := indexOf(c.lines, productID) >= 0
	c.mu.Unlock()
	if !present {
		return nil
	}

	return c.mutate(ctx, func(lines []Line) ([]Line, error) {
		if i := indexOf(lines, productID); i >= 0 {
			return append(lines[:i], lines[i+1:]...), nil
		}
		return lines, nil
	})
}

// Clear empties the cart
func (c *Local) Clear(ctx context.Context) error {
	return c.mutate(ctx, func([]Line) ([]Line, error) {
		return nil, nil
	})
}

// Total is the sum of line subtotals
func (c *Local) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count is the number of items across all lines
func (c *Local) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return countOf(c.lines)
}

// mutate applies fn to a copy of the lines, persists the result and only
// then swaps it in, so a failed write leaves the cart as it was
func (c *Local) mutate(ctx context.Context, fn func([]Line) ([]Line, error)) error {
	c.mu.Lock()

	next, err := fn(cloneLines(c.lines))
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if next == nil {
		next = []Line{}
	}

	raw, err := json.Marshal(next)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := c.kv.Set(ctx, StorageKey, raw); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("save cart: %w", err)
	}

	c.lines = next
	count := countOf(next)
	listeners := append([]func(int){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(count)
	}
	return nil
}

func indexOf(lines []Line, productID int64) int {
	for i, l := range lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func countOf(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		l.Attributes = maps.Clone(l.Attributes)
		out[i] = l
	}
	return out
}

// Badge is the navbar count text, empty when the cart is empty
func Badge(count int) string {
	if count <= 0 {
		return ""
	}
	return strconv.Itoa(count)
}
