package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glowify/storefront/internal/config"
	"github.com/glowify/storefront/internal/domain"
	"github.com/glowify/storefront/internal/session"
	"github.com/glowify/storefront/internal/shop"
)

// Messages produced by commands.
type (
	productsMsg    []domain.Product
	productsErrMsg struct{ err error }

	storeChangedMsg session.Change
	subClosedMsg    struct{}

	addedMsg        struct{}
	authRequiredMsg struct{ productID int64 }
	cartErrMsg      struct{ text string }

	signedInMsg   struct{ identity domain.Identity }
	authFailedMsg struct{ err error }

	checkoutDoneMsg   struct{ total int64 }
	checkoutFailedMsg struct{ text string }

	chatUpdatedMsg struct{}
)

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), config.Env().Timeout)
}

func (m Model) fetchProducts() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opContext()
		defer cancel()

		products, err := m.shop.Products(ctx)
		if err != nil {
			return productsErrMsg{err: err}
		}
		return productsMsg(products)
	}
}

// listenChanges forwards one store change into the program and is re-issued
// by Update after each delivery.
func listenChanges(ch <-chan session.Change) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return subClosedMsg{}
		}
		return storeChangedMsg(change)
	}
}

func (m Model) addItem(productID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opContext()
		defer cancel()

		err := m.shop.AddItem(ctx, productID, 1)
		if err == nil {
			return addedMsg{}
		}
		if errors.Is(err, shop.ErrNoIdentity) {
			return authRequiredMsg{productID: productID}
		}
		return cartErrMsg{text: "Gagal menambahkan ke keranjang"}
	}
}

func (m Model) signIn(name, email, password string, register bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opContext()
		defer cancel()

		identity, err := m.shop.SignIn(ctx, name, email, password, register)
		if err != nil {
			return authFailedMsg{err: err}
		}
		return signedInMsg{identity: identity}
	}
}

func (m Model) checkout() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opContext()
		defer cancel()

		total, err := m.shop.Checkout(ctx)
		if err != nil {
			return checkoutFailedMsg{text: shop.CheckoutMessage(err)}
		}
		return checkoutDoneMsg{total: total}
	}
}

func (m Model) ask(question string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opContext()
		defer cancel()

		m.assistant.Ask(ctx, question)
		return chatUpdatedMsg{}
	}
}
