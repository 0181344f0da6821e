// Package tui provides the interactive storefront using Bubble Tea.
// It renders from the session store and raises user intents (add to cart,
// sign in, checkout, ask) into the shop flows.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glowify/storefront/internal/chat"
	"github.com/glowify/storefront/internal/domain"
	"github.com/glowify/storefront/internal/money"
	"github.com/glowify/storefront/internal/session"
	"github.com/glowify/storefront/internal/shop"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	priceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)
)

// View represents the current view mode
type View int

const (
	ViewProducts View = iota
	ViewCart
	ViewAuth
	ViewChat
	ViewHelp
)

// Auth form field order.
const (
	authFieldName = iota
	authFieldEmail
	authFieldPassword
	authFieldCount
)

// Model is the storefront TUI model
type Model struct {
	shop      *shop.Shop
	assistant *chat.Assistant
	money     *money.Formatter

	// State
	view     View
	products []domain.Product
	cursor   int
	cart     domain.CartSnapshot
	identity *domain.Identity
	status   string
	errText  string
	loading  bool
	quitting bool

	// Pending add-to-cart waiting for authentication.
	pendingProduct int64

	// Auth form
	authRegister bool
	authInputs   []textinput.Model
	authFocus    int

	// Chat
	chatInput textinput.Model
	chatView  viewport.Model

	// Components
	spinner spinner.Model
	width   int
	height  int

	changes   <-chan session.Change
	cancelSub func()
}

// New creates the storefront TUI model.
func New(s *shop.Shop, assistant *chat.Assistant, locale string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	inputs := make([]textinput.Model, authFieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 100
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[authFieldName].Placeholder = "Nama Lengkap"
	inputs[authFieldEmail].Placeholder = "Email"
	inputs[authFieldPassword].Placeholder = "Password"
	inputs[authFieldPassword].EchoMode = textinput.EchoPassword

	ci := textinput.New()
	ci.Placeholder = "Tulis pertanyaanmu..."
	ci.CharLimit = 300
	ci.Width = 60

	changes, cancel := s.Store().Subscribe()

	return Model{
		shop:       s,
		assistant:  assistant,
		money:      money.New(locale),
		view:       ViewProducts,
		cart:       domain.EmptyCart(),
		spinner:    sp,
		authInputs: inputs,
		chatInput:  ci,
		chatView:   viewport.New(70, 12),
		changes:    changes,
		cancelSub:  cancel,
		loading:    true,
	}
}

// Init starts product loading and the store change listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.fetchProducts(),
		listenChanges(m.changes),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chatView.Width = min(msg.Width-4, 76)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case productsMsg:
		m.loading = false
		m.products = msg
		if m.cursor >= len(m.products) {
			m.cursor = 0
		}
		return m, nil

	case productsErrMsg:
		m.loading = false
		m.errText = "Produk tidak dapat dimuat. Coba lagi dengan 'r'."
		return m, nil

	case storeChangedMsg:
		store := m.shop.Store()
		if id, ok := store.Identity(); ok {
			v := id
			m.identity = &v
		} else {
			m.identity = nil
		}
		m.cart = store.Cart()
		return m, listenChanges(m.changes)

	case subClosedMsg:
		return m, nil

	case addedMsg:
		m.loading = false
		m.status = "Ditambahkan ke keranjang"
		m.view = ViewCart
		return m, nil

	case authRequiredMsg:
		m.loading = false
		m.pendingProduct = msg.productID
		m.openAuth()
		return m, textinput.Blink

	case cartErrMsg:
		m.loading = false
		m.errText = msg.text
		return m, nil

	case signedInMsg:
		m.loading = false
		m.errText = ""
		m.status = "Masuk sebagai " + msg.identity.Name
		m.view = ViewProducts
		if m.pendingProduct != 0 {
			productID := m.pendingProduct
			m.pendingProduct = 0
			m.loading = true
			return m, m.addItem(productID)
		}
		return m, nil

	case authFailedMsg:
		m.loading = false
		m.errText = shop.AuthMessage(msg.err)
		return m, nil

	case checkoutDoneMsg:
		m.loading = false
		m.errText = ""
		m.status = "Pesanan dibuat. Total: " + m.money.Format(msg.total)
		m.view = ViewProducts // cart drawer closes on success
		return m, nil

	case checkoutFailedMsg:
		m.loading = false
		m.errText = msg.text
		return m, nil

	case chatUpdatedMsg:
		m.loading = false
		m.refreshChatView()
		return m, nil
	}

	return m, nil
}

func (m *Model) openAuth() {
	m.view = ViewAuth
	m.errText = ""
	m.authFocus = authFieldEmail
	if m.authRegister {
		m.authFocus = authFieldName
	}
	for i := range m.authInputs {
		m.authInputs[i].Blur()
	}
	m.authInputs[m.authFocus].Focus()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		m.cancelSub()
		return m, tea.Quit
	}

	switch m.view {
	case ViewProducts:
		return m.handleProductsKey(msg)
	case ViewCart:
		return m.handleCartKey(msg)
	case ViewAuth:
		return m.handleAuthKey(msg)
	case ViewChat:
		return m.handleChatKey(msg)
	case ViewHelp:
		m.view = ViewProducts
		return m, nil
	}
	return m, nil
}

func (m Model) handleProductsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		m.cancelSub()
		return m, tea.Quit
	case "?":
		m.view = ViewHelp
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case "enter", "a":
		if m.loading || len(m.products) == 0 {
			return m, nil
		}
		product := m.products[m.cursor]
		if m.identity == nil {
			m.pendingProduct = product.ID
			m.openAuth()
			return m, textinput.Blink
		}
		m.loading = true
		m.status = ""
		return m, m.addItem(product.ID)
	case "c":
		m.view = ViewCart
	case "t":
		m.view = ViewChat
		m.refreshChatView()
		m.chatInput.Focus()
		return m, textinput.Blink
	case "l":
		if m.identity == nil {
			m.openAuth()
			return m, textinput.Blink
		}
		m.shop.Logout()
		m.status = "Keluar"
	case "r":
		m.loading = true
		m.errText = ""
		return m, m.fetchProducts()
	}
	return m, nil
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "c":
		m.view = ViewProducts
	case "x", "enter":
		if m.loading {
			return m, nil
		}
		if m.cart.Empty() {
			m.errText = "Keranjang kosong"
			return m, nil
		}
		m.loading = true
		m.errText = ""
		return m, m.checkout()
	}
	return m, nil
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = ViewProducts
		m.pendingProduct = 0
		m.errText = ""
		return m, nil
	case "ctrl+r":
		m.authRegister = !m.authRegister
		m.openAuth()
		return m, textinput.Blink
	case "tab", "shift+tab", "up", "down":
		first := authFieldEmail
		if m.authRegister {
			first = authFieldName
		}
		delta := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			delta = -1
		}
		m.authFocus += delta
		if m.authFocus > authFieldPassword {
			m.authFocus = first
		}
		if m.authFocus < first {
			m.authFocus = authFieldPassword
		}
		for i := range m.authInputs {
			m.authInputs[i].Blur()
		}
		m.authInputs[m.authFocus].Focus()
		return m, textinput.Blink
	case "enter":
		if m.loading {
			return m, nil
		}
		name := m.authInputs[authFieldName].Value()
		email := m.authInputs[authFieldEmail].Value()
		password := m.authInputs[authFieldPassword].Value()
		m.loading = true
		m.errText = ""
		return m, m.signIn(name, email, password, m.authRegister)
	}

	var cmd tea.Cmd
	m.authInputs[m.authFocus], cmd = m.authInputs[m.authFocus].Update(msg)
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = ViewProducts
		m.chatInput.Blur()
		return m, nil
	case "enter":
		question := m.chatInput.Value()
		if strings.TrimSpace(question) == "" || m.loading {
			return m, nil
		}
		m.chatInput.SetValue("")
		m.loading = true
		return m, m.ask(question)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
