// ABOUTME: Tests for the admin, vendor and orders commands
// ABOUTME: Drives each panel against an httptest backend with a signed-in realm

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/session"
)

// signInAs logs into realm through the CLI login flow
func signInAs(t *testing.T, realm session.Realm, mux *http.ServeMux) {
	t.Helper()
	mux.HandleFunc("POST "+realm.LoginPath(), func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok-` + string(realm) + `","user":{"id":1,"name":"Tester"}}`))
	})
	setupBackend(t, mux)
	realmFlag = string(realm)

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf, "tester@example.com", "secret"); code != 0 {
		t.Fatalf("login failed with exit code %d: %s", code, buf.String())
	}
}

func TestOrderStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/orders/12", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(client.TokenHeader) != "tok-admin" {
			t.Errorf("expected admin token, got %q", r.Header.Get(client.TokenHeader))
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["status"] != "shipped" {
			t.Errorf("unexpected body %v", body)
		}
		w.Write([]byte(`{}`))
	})
	signInAs(t, session.RealmAdmin, mux)

	var buf bytes.Buffer
	if code := runOrderStatus(context.Background(), &buf, "12", "Shipped"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Order #12 is now shipped") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestOrderStatus_InvalidInput(t *testing.T) {
	setupBackend(t, http.NotFoundHandler())

	tests := []struct {
		name   string
		id     string
		status string
		want   string
	}{
		{"bad id", "abc", "shipped", "Error:"},
		{"unknown status", "3", "lost", "unknown status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if code := runOrderStatus(context.Background(), &buf, tt.id, tt.status); code != 2 {
				t.Errorf("expected exit code 2, got %d", code)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in %q", tt.want, buf.String())
			}
		})
	}
}

func TestAdminCommands_RequireSession(t *testing.T) {
	setupBackend(t, http.NotFoundHandler())

	var buf bytes.Buffer
	if code := runAdminVendors(context.Background(), &buf); code != 2 {
		t.Errorf("expected exit code 2 without a session, got %d", code)
	}
	if !strings.Contains(buf.String(), "Not signed in") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestAdminVendorsAndApprove(t *testing.T) {
	approved := false
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/admin/vendors", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":4,"name":"Nila","email":"nila@example.com","store_name":"Nila Crafts","is_approved":false}]}`))
	})
	mux.HandleFunc("PUT /api/admin/vendors/4/approve", func(w http.ResponseWriter, r *http.Request) {
		approved = true
		w.Write([]byte(`{}`))
	})
	signInAs(t, session.RealmAdmin, mux)
	ctx := context.Background()

	var buf bytes.Buffer
	if code := runAdminVendors(ctx, &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Nila Crafts") || !strings.Contains(buf.String(), "pending") {
		t.Errorf("unexpected vendors output:\n%s", buf.String())
	}

	buf.Reset()
	if code := runAdminApprove(ctx, &buf, "4"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !approved {
		t.Error("expected approve endpoint to be called")
	}
}

func TestAdminDeleteProduct_Rejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/products/9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Product has open orders"}`))
	})
	signInAs(t, session.RealmAdmin, mux)

	var buf bytes.Buffer
	if code := runAdminDeleteProduct(context.Background(), &buf, "9"); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Product has open orders") {
		t.Errorf("expected backend message, got %q", buf.String())
	}
}

func TestVendorRegister_MissingFields(t *testing.T) {
	setupBackend(t, http.NotFoundHandler())

	var buf bytes.Buffer
	code := runVendorRegister(context.Background(), &buf, client.VendorRegistration{Name: "Nila", Email: "nila@example.com"})
	if code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "missing --password, --phone, --store-name") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestVendorRegister(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/vendor/register", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(client.TokenHeader) != "" {
			t.Error("registration must not carry a token")
		}
		var reg client.VendorRegistration
		json.NewDecoder(r.Body).Decode(&reg)
		if reg.StoreName != "Nila Crafts" {
			t.Errorf("unexpected registration %+v", reg)
		}
		w.Write([]byte(`{}`))
	})
	setupBackend(t, mux)

	var buf bytes.Buffer
	reg := client.VendorRegistration{
		Name: "Nila", Email: "nila@example.com", Phone: "01700000000",
		Password: "secret", StoreName: "Nila Crafts",
	}
	if code := runVendorRegister(context.Background(), &buf, reg); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Registered Nila Crafts") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestVendorDashboard(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/vendor/dashboard", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"is_approved":false,"store_name":"Nila Crafts","product_count":3,"pending_orders_count":1}`))
	})
	signInAs(t, session.RealmVendor, mux)

	var buf bytes.Buffer
	if code := runVendorDashboard(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	out := buf.String()
	for _, want := range []string{"Nila Crafts", "Awaiting admin approval", "Products", "3", "Pending Orders"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestVendorAddProduct(t *testing.T) {
	image := filepath.Join(t.TempDir(), "chair.png")
	if err := os.WriteFile(image, []byte("png"), 0o600); err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/products", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart body: %v", err)
		}
		if r.FormValue("name") != "Teak Chair" || r.FormValue("price") != "3200" {
			t.Errorf("unexpected fields %v", r.MultipartForm.Value)
		}
		files := r.MultipartForm.File[client.ImageField]
		if len(files) != 1 || files[0].Filename != "chair.png" {
			t.Errorf("expected one image upload, got %v", files)
		} else {
			f, _ := files[0].Open()
			data, _ := io.ReadAll(f)
			f.Close()
			if string(data) != "png" {
				t.Errorf("unexpected image content %q", data)
			}
		}
		w.Write([]byte(`{"data":{"id":31,"name":"Teak Chair","price":"3200"}}`))
	})
	signInAs(t, session.RealmVendor, mux)

	var buf bytes.Buffer
	in := productFlags{name: "Teak Chair", price: "3200", quantity: 2, images: []string{image}}
	if code := runVendorAddProduct(context.Background(), &buf, in); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Listed Teak Chair (#31)") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestVendorAddProduct_InvalidPrice(t *testing.T) {
	setupBackend(t, http.NotFoundHandler())

	var buf bytes.Buffer
	if code := runVendorAddProduct(context.Background(), &buf, productFlags{name: "X", price: "cheap"}); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}
