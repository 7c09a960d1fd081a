// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Owns the screens, runs backend calls as commands and routes input to the active screen

package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seefirst/seefirst-cli/internal/cart"
	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/listing"
	"github.com/seefirst/seefirst-cli/internal/logger"
	"github.com/seefirst/seefirst-cli/internal/pagination"
	"github.com/seefirst/seefirst-cli/internal/session"
	"github.com/seefirst/seefirst-cli/internal/storefront"
	"github.com/seefirst/seefirst-cli/internal/summary"
	"github.com/seefirst/seefirst-cli/internal/tui/cartview"
	"github.com/seefirst/seefirst-cli/internal/tui/catalog"
	"github.com/seefirst/seefirst-cli/internal/tui/dashboard"
	"github.com/seefirst/seefirst-cli/internal/tui/detail"
	"github.com/seefirst/seefirst-cli/internal/tui/home"
	"github.com/seefirst/seefirst-cli/internal/tui/icons"
	"github.com/seefirst/seefirst-cli/internal/tui/login"
	"github.com/seefirst/seefirst-cli/internal/tui/styles"
	"github.com/seefirst/seefirst-cli/internal/tui/widgets"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenCatalog
	ScreenDetail
	ScreenCart
	ScreenDashboard
	ScreenHome
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum frame width
	panelPadding     = 4  // Horizontal padding around screen content
)

const sessionExpiredNotice = "Your session has expired. Please sign in again."

// Backend is the API surface the TUI calls
type Backend interface {
	summary.AdminAPI
	summary.VendorAPI
	cart.OrderPlacer
	GetProduct(ctx context.Context, id int64) (*client.Product, error)
	ListCategories(ctx context.Context) ([]client.Category, error)
	Login(ctx context.Context, realm session.Realm, creds client.Credentials) (*client.LoginResult, error)
	UploadURL(name string) string
}

// Deps are the collaborators the TUI runs against
type Deps struct {
	Client   Backend
	Sessions *session.Store
	Cart     cart.Observable
	PageSize int
}

type productsLoadedMsg struct {
	state     pagination.State
	container listing.Container[client.Product]
}

type categoriesLoadedMsg struct {
	categories []client.Category
	err        error
}

type productLoadedMsg struct {
	id      int64
	product *client.Product
	err     error
}

type loggedInMsg struct {
	profile session.Profile
	err     error
}

type checkoutDoneMsg struct {
	receipt *cart.Receipt
	err     error
}

type homeLoadedMsg struct {
	page storefront.Home
}

type summaryLoadedMsg struct {
	admin  *summary.Admin
	vendor *summary.Vendor
	err    error
}

// App is the root model for the TUI
type App struct {
	client   Backend
	sessions *session.Store
	cart     cart.Observable
	renderer *listing.Renderer[client.Product]
	routes   map[string]Route

	route  string
	screen Screen
	width  int
	height int

	profile   session.Profile
	cartCount atomic.Int64
	notice    string // shown on the next login screen
	status    string // last action, shown in the footer

	catalogLoaded bool

	// Child models
	login    *login.Login
	catalog  *catalog.Catalog
	home     *home.Home
	detail   *detail.Detail
	cartView *cartview.CartView
	dash     *dashboard.Dashboard
}

// New creates the TUI application
func New(deps Deps) *App {
	renderer := &listing.Renderer[client.Product]{
		Limit:    deps.PageSize,
		Paginate: pagination.Build,
		Fetch: func(ctx context.Context, state pagination.State) (*client.Page[client.Product], error) {
			return deps.Client.ListProducts(ctx, client.ProductQuery{
				Filters: state.Filters,
				Page:    state.Page,
				PerPage: deps.PageSize,
			})
		},
	}

	a := &App{
		client:   deps.Client,
		sessions: deps.Sessions,
		cart:     deps.Cart,
		renderer: renderer,
		routes:   routeTable(),
		catalog:  catalog.New(renderer.Placeholders()),
		home:     home.New(),
		detail:   detail.New(deps.Client.UploadURL),
		cartView: cartview.New(),
		dash:     dashboard.New(0, 0),
	}

	// Checkout removes lines from a command goroutine, so the count is atomic
	a.cartCount.Store(int64(deps.Cart.Count()))
	deps.Cart.OnChange(func(n int) { a.cartCount.Store(int64(n)) })

	if s, err := deps.Sessions.Get(context.Background()); err == nil {
		a.profile = s.Profile
	}
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.navigate(a.homeRoute(), "")
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.catalog.SetWidth(a.contentWidth())
		a.detail.SetWidth(a.contentWidth())
		a.dash.SetSize(a.contentWidth(), a.contentHeight())
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.capturingInput() {
			if cmd, ok := a.globalKey(msg); ok {
				return a, cmd
			}
		}
		return a.updateScreen(msg)

	case login.SubmittedMsg:
		return a, a.doLogin(msg.Credentials)

	case login.CancelledMsg:
		if a.sessions.Realm() == session.RealmUser {
			return a, a.navigate(RouteCatalog, "")
		}
		return a, tea.Quit

	case loggedInMsg:
		if msg.err != nil {
			if a.login == nil {
				return a, nil
			}
			text := client.UserMessage(msg.err)
			if client.IsUnauthorized(msg.err) {
				text = "Invalid email or password."
			}
			return a, a.login.SetError(text)
		}
		a.profile = msg.profile
		a.status = "Signed in as " + msg.profile.Name
		return a, a.navigate(a.homeRoute(), "")

	case catalog.LoadMsg:
		a.catalog.SetContainer(a.renderer.Placeholders())
		return a, tea.Batch(a.catalog.Init(), a.loadProducts(msg.State))

	case productsLoadedMsg:
		if msg.state != a.catalog.State() {
			slog.Debug("dropping stale product page", "page", msg.state.Page)
			return a, nil
		}
		if cmd, ok := a.handleErr(msg.container.Err); ok {
			return a, cmd
		}
		a.catalog.SetContainer(msg.container)
		return a, nil

	case categoriesLoadedMsg:
		if cmd, ok := a.handleErr(msg.err); ok {
			return a, cmd
		}
		if msg.err != nil {
			slog.Warn("loading categories failed", "error", msg.err)
			return a, nil
		}
		a.catalog.SetCategories(msg.categories)
		return a, nil

	case catalog.SelectedMsg:
		return a, a.navigate(RouteProduct, strconv.FormatInt(msg.Product.ID, 10))

	case homeLoadedMsg:
		if cmd, ok := a.handleErr(msg.page.Err()); ok {
			return a, cmd
		}
		a.home.SetPage(msg.page)
		return a, nil

	case home.SelectedMsg:
		return a, a.navigate(RouteProduct, strconv.FormatInt(msg.Product.ID, 10))

	case home.AddMsg:
		a.addToCart(msg.Product)
		return a, nil

	case home.BrowseMsg:
		return a, a.navigate(RouteCatalog, "")

	case catalog.AddMsg:
		a.addToCart(msg.Product)
		return a, nil

	case detail.AddMsg:
		a.addToCart(msg.Product)
		return a, nil

	case detail.BackMsg, cartview.BackMsg:
		return a, a.navigate(RouteCatalog, "")

	case productLoadedMsg:
		if cmd, ok := a.handleErr(msg.err); ok {
			return a, cmd
		}
		if msg.err != nil {
			a.detail.SetError(msg.err)
			return a, nil
		}
		a.detail.SetProduct(msg.product)
		return a, nil

	case cartview.QuantityMsg:
		a.mutateCart(func(ctx context.Context) error {
			return a.cart.UpdateQuantity(ctx, msg.ProductID, msg.Delta)
		})
		return a, nil

	case cartview.RemoveMsg:
		a.mutateCart(func(ctx context.Context) error {
			return a.cart.Remove(ctx, msg.ProductID)
		})
		return a, nil

	case cartview.ClearMsg:
		a.mutateCart(a.cart.Clear)
		return a, nil

	case cartview.CheckoutMsg:
		return a, a.checkout(msg.Customer)

	case checkoutDoneMsg:
		return a.handleCheckoutDone(msg)

	case summaryLoadedMsg:
		if cmd, ok := a.handleErr(msg.err); ok {
			return a, cmd
		}
		switch {
		case msg.err != nil:
			a.dash.SetError(msg.err)
		case msg.admin != nil:
			if msg.admin.Unauthorized() {
				cmd, _ := a.handleErr(client.ErrUnauthorized)
				return a, cmd
			}
			a.dash.SetAdmin(*msg.admin)
		case msg.vendor != nil:
			a.dash.SetVendor(*msg.vendor)
		}
		return a, nil
	}

	// Forward everything else (huh internals, spinner ticks) to the active screen
	return a.updateScreen(msg)
}

// capturingInput reports whether the active screen is taking text input
func (a *App) capturingInput() bool {
	switch a.screen {
	case ScreenLogin:
		return true
	case ScreenCatalog:
		return a.catalog.Searching()
	case ScreenCart:
		return a.cartView.CheckingOut()
	}
	return false
}

// globalKey handles shortcuts available on every screen
func (a *App) globalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return tea.Quit, true
	case "C":
		return a.navigate(RouteCart, ""), true
	case "P":
		return a.navigate(RouteCatalog, ""), true
	case "H":
		return a.navigate(RouteHome, ""), true
	case "D":
		if a.sessions.Realm() != session.RealmUser {
			return a.navigate(RouteDashboard, ""), true
		}
	case "L":
		return a.toggleSession(), true
	}
	return nil, false
}

func (a *App) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.screen {
	case ScreenLogin:
		if a.login != nil {
			_, cmd = a.login.Update(msg)
		}
	case ScreenCatalog:
		_, cmd = a.catalog.Update(msg)
	case ScreenHome:
		_, cmd = a.home.Update(msg)
	case ScreenDetail:
		_, cmd = a.detail.Update(msg)
	case ScreenCart:
		_, cmd = a.cartView.Update(msg)
	case ScreenDashboard:
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "r" {
			cmd = a.navigate(RouteDashboard, "")
		}
	}
	return a, cmd
}

// handleErr routes to login when err means the session was rejected. The
// client normally clears the stored session first; clearing again is a no-op.
func (a *App) handleErr(err error) (tea.Cmd, bool) {
	if !client.IsUnauthorized(err) {
		return nil, false
	}
	if err := a.sessions.Clear(context.Background()); err != nil {
		slog.Error("clearing expired session failed", "error", err)
	}
	a.profile = session.Profile{}
	a.notice = sessionExpiredNotice
	return a.navigate(RouteLogin, ""), true
}

// toggleSession signs out, or opens the login screen when signed out
func (a *App) toggleSession() tea.Cmd {
	ctx := context.Background()
	if _, err := a.sessions.Get(ctx); err != nil {
		return a.navigate(RouteLogin, "")
	}
	if err := a.sessions.Clear(ctx); err != nil {
		slog.Error("sign out failed", "error", err)
		a.status = "Sign out failed"
		return nil
	}
	a.profile = session.Profile{}
	a.status = "Signed out"
	return a.navigate(a.homeRoute(), "")
}

func (a *App) addToCart(p client.Product) {
	if err := a.cart.Add(context.Background(), cart.ItemFromProduct(p), 1); err != nil {
		slog.Error("add to cart failed", "product", p.ID, "error", err)
		a.status = "Could not add " + p.Name
		return
	}
	a.status = "Added " + p.Name
}

// mutateCart applies a cart change and refreshes the cart screen
func (a *App) mutateCart(fn func(ctx context.Context) error) {
	if err := fn(context.Background()); err != nil {
		slog.Error("cart update failed", "error", err)
		a.cartView.SetResult("Could not update the cart.", false)
	}
	a.refreshCart()
}

func (a *App) refreshCart() {
	a.cartView.SetLines(a.cart.Lines(), a.cart.Total())
}

func (a *App) handleCheckoutDone(msg checkoutDoneMsg) (tea.Model, tea.Cmd) {
	a.refreshCart()
	if cmd, ok := a.handleErr(msg.err); ok {
		a.cartView.SetResult("", false)
		return a, cmd
	}

	placed := 0
	if msg.receipt != nil {
		placed = len(msg.receipt.Orders)
	}
	if msg.err != nil {
		text := client.UserMessage(msg.err)
		if errors.Is(msg.err, cart.ErrEmptyCart) {
			text = "Your cart is empty."
		}
		if placed > 0 {
			text = fmt.Sprintf("Placed %d order(s), then: %s", placed, text)
		}
		a.cartView.SetResult(text, false)
		return a, nil
	}

	a.cartView.SetResult(fmt.Sprintf("Placed %d order(s) totalling %s%s. Thank you!",
		placed, styles.Currency, msg.receipt.Total.StringFixed(2)), true)
	a.status = "Order placed"
	return a, nil
}

// View implements tea.Model
func (a *App) View() string {
	var content string
	switch a.screen {
	case ScreenLogin:
		if a.login != nil {
			content = a.login.View()
		}
	case ScreenCatalog:
		content = a.catalog.View()
	case ScreenHome:
		content = a.home.View()
	case ScreenDetail:
		content = a.detail.View()
	case ScreenCart:
		content = a.cartView.View()
	case ScreenDashboard:
		content = a.dash.View()
	}
	return a.wrapWithFrame(lipgloss.NewStyle().Padding(1, panelPadding/2).Render(content))
}

func (a *App) frameWidth() int {
	return max(a.width, minTerminalWidth)
}

func (a *App) contentWidth() int {
	return a.frameWidth() - panelPadding
}

// contentHeight is the space between header and footer
func (a *App) contentHeight() int {
	return max(a.height-2, 0)
}

func (a *App) realmTitle() string {
	switch a.sessions.Realm() {
	case session.RealmAdmin:
		return "Admin Panel"
	case session.RealmVendor:
		return "Vendor Panel"
	}
	return "Storefront"
}

// renderHeader creates the header bar with branding, user and cart badge
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s %s ", icons.App.String(), titleStyle.Render("SeeFirst"), contextStyle.Render(a.realmTitle()))

	var right []string
	if a.profile.Name != "" {
		right = append(right, contextStyle.Render(icons.User.String()+" "+a.profile.Name))
	}
	if badge := widgets.CartBadge(int(a.cartCount.Load())); badge != "" {
		right = append(right, badge)
	}
	rightText := ""
	if len(right) > 0 {
		rightText = " " + strings.Join(right, "  ") + " "
	}

	fillWidth := max(width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText), 0) // -4 for ╭─ and ─╮
	fill := strings.Repeat("─", fillWidth)

	return borderStyle.Render("╭─") + leftText + borderStyle.Render(fill) + rightText + borderStyle.Render("─╮")
}

func (a *App) shortcuts() []string {
	switch a.screen {
	case ScreenLogin:
		return []string{"Enter Submit", "Esc Back"}
	case ScreenCatalog:
		return []string{"Enter View", "a Add", "n/p/1-9 Page", "/ Search", "C Cart", "q Quit"}
	case ScreenHome:
		return []string{"Enter View", "a Add", "←/→ Slide", "b Browse", "C Cart", "q Quit"}
	case ScreenDetail:
		return []string{"a Add", "b Back", "C Cart", "q Quit"}
	case ScreenCart:
		if a.cartView.CheckingOut() {
			return []string{"Enter Confirm", "Esc Cancel"}
		}
		return []string{"+/- Qty", "d Remove", "x Clear", "c Checkout", "b Back"}
	case ScreenDashboard:
		return []string{"r Refresh", "P Products", "L Sign out", "q Quit"}
	}
	return nil
}

// renderFooter creates the footer with keyboard shortcuts and the last action
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	shortcuts := a.shortcuts()
	var styled []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
	}
	leftText := " " + strings.Join(styled, "  ")
	leftWidth := lipgloss.Width(" " + strings.Join(shortcuts, "  "))

	rightText, rightWidth := "", 0
	if a.status != "" && leftWidth+len(a.status)+6 <= width {
		rightText = statusStyle.Render(a.status) + " "
		rightWidth = lipgloss.Width(a.status) + 1
	}

	fillWidth := max(width-4-leftWidth-rightWidth, 0) // -4 for ╰─ and ─╯
	fill := strings.Repeat("─", fillWidth)

	return borderStyle.Render("╰─") + leftText + borderStyle.Render(fill) + rightText + borderStyle.Render("─╯")
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

func (a *App) loadProducts(state pagination.State) tea.Cmd {
	return func() tea.Msg {
		return productsLoadedMsg{state: state, container: a.renderer.Load(context.Background(), state)}
	}
}

func (a *App) loadHome() tea.Cmd {
	return func() tea.Msg {
		page := storefront.Load(context.Background(), func(ctx context.Context, s pagination.State) (*client.Page[client.Product], error) {
			return a.client.ListProducts(ctx, client.ProductQuery{Filters: s.Filters, Page: s.Page})
		})
		return homeLoadedMsg{page: page}
	}
}

func (a *App) loadCategories() tea.Cmd {
	return func() tea.Msg {
		cats, err := a.client.ListCategories(context.Background())
		return categoriesLoadedMsg{categories: cats, err: err}
	}
}

func (a *App) loadProduct(id int64) tea.Cmd {
	return func() tea.Msg {
		p, err := a.client.GetProduct(context.Background(), id)
		return productLoadedMsg{id: id, product: p, err: err}
	}
}

func (a *App) loadSummary() tea.Cmd {
	realm := a.sessions.Realm()
	return func() tea.Msg {
		ctx := context.Background()
		switch realm {
		case session.RealmAdmin:
			s := summary.LoadAdmin(ctx, a.client)
			return summaryLoadedMsg{admin: &s}
		case session.RealmVendor:
			s, err := summary.LoadVendor(ctx, a.client)
			if err != nil {
				return summaryLoadedMsg{err: err}
			}
			return summaryLoadedMsg{vendor: &s}
		}
		return summaryLoadedMsg{err: errors.New("no dashboard for this account")}
	}
}

func (a *App) doLogin(creds client.Credentials) tea.Cmd {
	realm := a.sessions.Realm()
	return func() tea.Msg {
		ctx := context.Background()
		res, err := a.client.Login(ctx, realm, creds)
		if err != nil {
			return loggedInMsg{err: err}
		}
		profile := res.Profile(creds.Email)
		if err := a.sessions.Set(ctx, res.Token, profile); err != nil {
			return loggedInMsg{err: err}
		}
		slog.Info("signed in", "realm", realm, "user", profile.Name)
		return loggedInMsg{profile: profile}
	}
}

func (a *App) checkout(customer cart.Customer) tea.Cmd {
	return func() tea.Msg {
		receipt, err := cart.Checkout(context.Background(), a.cart, a.client, customer)
		return checkoutDoneMsg{receipt: receipt, err: err}
	}
}

// Run starts the TUI. While the alternate screen is up, logs go to
// debug.log in logDir instead of stderr.
func Run(deps Deps, logDir string, logOpts logger.Options) error {
	if f, err := logger.OpenFile(logDir); err == nil {
		defer f.Close()
		logOpts.Output = f
	} else {
		logOpts.Output = io.Discard
	}
	logger.Init(logOpts)

	p := tea.NewProgram(
		New(deps),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
