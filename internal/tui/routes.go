// ABOUTME: Routing table for the TUI screens
// ABOUTME: Every navigation goes through the session guard before a screen is entered

package tui

import (
	"context"
	"log/slog"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seefirst/seefirst-cli/internal/session"
	"github.com/seefirst/seefirst-cli/internal/storefront"
	"github.com/seefirst/seefirst-cli/internal/tui/login"
)

// Route keys
const (
	RouteLogin     = "login"
	RouteCatalog   = "catalog"
	RouteHome      = "home"
	RouteProduct   = "product"
	RouteCart      = "cart"
	RouteDashboard = "dashboard"
)

// Route binds a key to a screen, its access level and what entering it loads
type Route struct {
	Key    string
	Screen Screen
	Access session.Access
	// Enter prepares the screen; param is route specific (a product id)
	Enter func(a *App, param string) tea.Cmd
}

func routeTable() map[string]Route {
	table := []Route{
		{Key: RouteLogin, Screen: ScreenLogin, Access: session.AccessAnonymous, Enter: (*App).enterLogin},
		{Key: RouteCatalog, Screen: ScreenCatalog, Access: session.AccessPublic, Enter: (*App).enterCatalog},
		{Key: RouteHome, Screen: ScreenHome, Access: session.AccessPublic, Enter: (*App).enterHome},
		{Key: RouteProduct, Screen: ScreenDetail, Access: session.AccessPublic, Enter: (*App).enterProduct},
		{Key: RouteCart, Screen: ScreenCart, Access: session.AccessPublic, Enter: (*App).enterCart},
		{Key: RouteDashboard, Screen: ScreenDashboard, Access: session.AccessProtected, Enter: (*App).enterDashboard},
	}
	routes := make(map[string]Route, len(table))
	for _, r := range table {
		routes[r.Key] = r
	}
	return routes
}

// homeRoute is where a signed-in user of the realm lands
func (a *App) homeRoute() string {
	if a.sessions.Realm() == session.RealmUser {
		return RouteCatalog
	}
	return RouteDashboard
}

// navigate enters the route named key, or wherever the guard redirects
func (a *App) navigate(key, param string) tea.Cmd {
	r, ok := a.routes[key]
	if !ok {
		slog.Warn("unknown route", "route", key)
		return nil
	}

	switch nav := session.Guard(context.Background(), a.sessions, r.Access); nav {
	case session.ToLogin:
		r, param = a.routes[RouteLogin], ""
	case session.ToHome:
		r, param = a.routes[a.homeRoute()], ""
	}

	slog.Debug("navigate", "requested", key, "route", r.Key)
	a.route = r.Key
	a.screen = r.Screen
	if r.Enter == nil {
		return nil
	}
	return r.Enter(a, param)
}

func (a *App) enterLogin(string) tea.Cmd {
	a.login = login.New(a.sessions.Realm())
	if a.notice != "" {
		a.login.SetNotice(a.notice)
		a.notice = ""
	}
	return a.login.Init()
}

func (a *App) enterCatalog(string) tea.Cmd {
	if a.catalogLoaded {
		return nil
	}
	a.catalogLoaded = true
	state := a.catalog.State()
	a.catalog.SetContainer(a.renderer.Placeholders())
	return tea.Batch(a.catalog.Init(), a.loadProducts(state), a.loadCategories())
}

func (a *App) enterHome(string) tea.Cmd {
	a.home.SetPage(storefront.Placeholders())
	return a.loadHome()
}

func (a *App) enterProduct(param string) tea.Cmd {
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		slog.Warn("invalid product id", "param", param)
		a.detail.SetError(err)
		return nil
	}
	a.detail.SetProduct(nil)
	return a.loadProduct(id)
}

func (a *App) enterCart(string) tea.Cmd {
	a.refreshCart()
	return nil
}

func (a *App) enterDashboard(string) tea.Cmd {
	a.dash.Reset()
	return a.loadSummary()
}
