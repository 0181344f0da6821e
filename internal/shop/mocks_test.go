package shop

import (
	"context"
	"sync"

	"github.com/glowify/storefront/internal/domain"
)

// fakeAPI is an in-memory Commerce double. It records the order of calls
// and can simulate a server-held cart that grows on add and clears on
// checkout.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	products      []domain.Product
	loginIdentity domain.Identity
	cart          domain.CartSnapshot
	checkoutTotal int64

	productsErr error
	registerErr error
	loginErr    error
	cartErr     error
	addErr      error
	checkoutErr error

	// onAdd mutates the server cart when set.
	onAdd func(productID int64, quantity int)

	// onCart runs after a cart response snapshot is taken but before it is
	// returned, so tests can hold a fetch open past later mutations.
	onCart func()
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{cart: domain.EmptyCart()}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAPI) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Products(ctx context.Context) ([]domain.Product, error) {
	f.record("products")
	return f.products, f.productsErr
}

func (f *fakeAPI) Register(ctx context.Context, name, email, password string) error {
	f.record("register")
	return f.registerErr
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	f.record("login")
	if f.loginErr != nil {
		return domain.Identity{}, f.loginErr
	}
	return f.loginIdentity, nil
}

func (f *fakeAPI) Cart(ctx context.Context, userID int64) (domain.CartSnapshot, error) {
	f.record("cart")
	if f.cartErr != nil {
		return domain.CartSnapshot{}, f.cartErr
	}
	f.mu.Lock()
	items := append([]domain.CartLine(nil), f.cart.Items...)
	snap := domain.CartSnapshot{Items: items, Total: f.cart.Total}
	f.mu.Unlock()
	if f.onCart != nil {
		f.onCart()
	}
	return snap, nil
}

func (f *fakeAPI) AddToCart(ctx context.Context, userID, productID int64, quantity int) error {
	f.record("add")
	if f.addErr != nil {
		return f.addErr
	}
	if f.onAdd != nil {
		f.mu.Lock()
		f.onAdd(productID, quantity)
		f.mu.Unlock()
	}
	return nil
}

func (f *fakeAPI) Checkout(ctx context.Context, userID int64) (int64, error) {
	f.record("checkout")
	if f.checkoutErr != nil {
		return 0, f.checkoutErr
	}
	f.mu.Lock()
	f.cart = domain.EmptyCart()
	f.mu.Unlock()
	return f.checkoutTotal, nil
}

var _ Commerce = (*fakeAPI)(nil)

func serumSnapshot() domain.CartSnapshot {
	return domain.CartSnapshot{
		Items: []domain.CartLine{{Title: "Serum", Price: 150000, Quantity: 1, Subtotal: 150000}},
		Total: 150000,
	}
}
