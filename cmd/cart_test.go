// ABOUTME: Tests for the cart commands
// ABOUTME: Exercises add, update, checkout and partial checkout failures end to end

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/seefirst/seefirst-cli/internal/cart"
	"github.com/seefirst/seefirst-cli/internal/client"
)

func storefront(t *testing.T, failProduct int64) (*atomic.Int32, http.Handler) {
	t.Helper()
	var placed atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products/7", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"id":7,"name":"Lamp","price":"450"}}`))
	})
	mux.HandleFunc("GET /api/products/8", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"id":8,"name":"Desk","price":"9000"}}`))
	})
	mux.HandleFunc("POST /api/orders", func(w http.ResponseWriter, r *http.Request) {
		var in client.OrderInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("bad order body: %v", err)
		}
		if in.ProductID == failProduct {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error":"Out of stock"}`))
			return
		}
		n := placed.Add(1)
		w.Write([]byte(`{"data":{"id":` + strconv.Itoa(int(n)) + `,"status":"pending"}}`))
	})
	return &placed, mux
}

func TestCartAddUpdateShow(t *testing.T) {
	_, handler := storefront(t, 0)
	setupBackend(t, handler)
	ctx := context.Background()

	var buf bytes.Buffer
	if code := runCartAdd(ctx, &buf, "7", 2); code != 0 {
		t.Fatalf("add failed: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "Added 2 × Lamp") {
		t.Errorf("unexpected add output %q", buf.String())
	}

	buf.Reset()
	if code := runCartUpdate(ctx, &buf, "7", "1"); code != 0 {
		t.Fatalf("update failed: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "৳1350.00") {
		t.Errorf("expected total for 3 lamps, got:\n%s", buf.String())
	}

	buf.Reset()
	if code := runCartUpdate(ctx, &buf, "7", "-3"); code != 0 {
		t.Fatalf("update failed: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "Your cart is empty.") {
		t.Errorf("expected line removed at zero, got:\n%s", buf.String())
	}
}

func TestCartAdd_InvalidQty(t *testing.T) {
	var buf bytes.Buffer
	if code := runCartAdd(context.Background(), &buf, "7", 0); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestCheckout(t *testing.T) {
	placed, handler := storefront(t, 0)
	setupBackend(t, handler)
	ctx := context.Background()

	var buf bytes.Buffer
	runCartAdd(ctx, &buf, "7", 1)
	runCartAdd(ctx, &buf, "8", 1)

	buf.Reset()
	if code := runCheckout(ctx, &buf, cart.Customer{Name: "Rina", Phone: "01700000000"}); code != 0 {
		t.Fatalf("checkout failed: %s", buf.String())
	}
	if placed.Load() != 2 {
		t.Errorf("expected 2 orders, got %d", placed.Load())
	}
	if !strings.Contains(buf.String(), "Placed 2 order(s) totalling ৳9450.00") {
		t.Errorf("unexpected checkout output %q", buf.String())
	}

	buf.Reset()
	runCartShow(ctx, &buf)
	if !strings.Contains(buf.String(), "Your cart is empty.") {
		t.Errorf("expected empty cart after checkout, got %q", buf.String())
	}
}

func TestCheckout_StopsAtFirstFailure(t *testing.T) {
	placed, handler := storefront(t, 8)
	setupBackend(t, handler)
	ctx := context.Background()

	var buf bytes.Buffer
	runCartAdd(ctx, &buf, "7", 1)
	runCartAdd(ctx, &buf, "8", 1)

	buf.Reset()
	if code := runCheckout(ctx, &buf, cart.Customer{Name: "Rina", Phone: "01700000000"}); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	out := buf.String()
	if placed.Load() != 1 {
		t.Errorf("expected 1 order placed, got %d", placed.Load())
	}
	for _, want := range []string{"Placed 1 order(s)", "1 line(s) left in the cart.", "Error: Out of stock"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCheckout_MissingCustomer(t *testing.T) {
	var buf bytes.Buffer
	if code := runCheckout(context.Background(), &buf, cart.Customer{Name: "Rina"}); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "phone is required") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
