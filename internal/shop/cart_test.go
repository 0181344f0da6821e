package shop

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowify/storefront/internal/api"
	"github.com/glowify/storefront/internal/domain"
)

func loggedInShop(t *testing.T, f *fakeAPI) *Shop {
	t.Helper()
	f.loginIdentity = domain.Identity{UserID: 1, Name: "Ayu", Email: "a@x.com"}
	s, _ := newTestShop(f)
	_, err := s.Login(context.Background(), "a@x.com", "secret")
	require.NoError(t, err)
	f.mu.Lock()
	f.calls = nil
	f.mu.Unlock()
	return s
}

func TestAddItemWithoutIdentity(t *testing.T) {
	f := newFakeAPI()
	s, _ := newTestShop(f)

	err := s.AddItem(context.Background(), 42, 1)
	assert.ErrorIs(t, err, ErrNoIdentity)
	assert.Empty(t, f.callLog(), "no network call may be issued without an identity")
}

func TestAddItemRefetchesAuthoritativeSnapshot(t *testing.T) {
	f := newFakeAPI()
	s := loggedInShop(t, f)
	f.onAdd = func(productID int64, quantity int) {
		f.cart = serumSnapshot()
	}

	err := s.AddItem(context.Background(), 42, 1)
	require.NoError(t, err)

	assert.Equal(t, serumSnapshot(), s.Store().Cart())
	assert.Equal(t, []string{"add", "cart"}, f.callLog())
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	f := newFakeAPI()
	s := loggedInShop(t, f)

	var gotQty int
	f.onAdd = func(productID int64, quantity int) { gotQty = quantity }

	require.NoError(t, s.AddItem(context.Background(), 42, 0))
	assert.Equal(t, 1, gotQty)
}

func TestAddItemRemoteRejected(t *testing.T) {
	f := newFakeAPI()
	s := loggedInShop(t, f)
	f.addErr = &api.StatusError{Status: http.StatusBadRequest, Detail: "unknown product"}

	err := s.AddItem(context.Background(), 999, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteRejected)

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "unknown product", re.Detail)
}

func TestAddItemSucceedsWhenResyncFails(t *testing.T) {
	f := newFakeAPI()
	s := loggedInShop(t, f)
	f.cartErr = fmt.Errorf("timeout")

	err := s.AddItem(context.Background(), 42, 1)
	assert.NoError(t, err, "the add completed remotely; only the resync failed")
}

func TestRefreshCartWithoutIdentity(t *testing.T) {
	f := newFakeAPI()
	s, _ := newTestShop(f)

	snap, err := s.RefreshCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.EmptyCart(), snap)
	assert.Empty(t, f.callLog())
}

func TestRefreshCartIdempotent(t *testing.T) {
	f := newFakeAPI()
	s := loggedInShop(t, f)
	f.mu.Lock()
	f.cart = serumSnapshot()
	f.mu.Unlock()

	first, err := s.RefreshCart(context.Background())
	require.NoError(t, err)
	second, err := s.RefreshCart(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first, s.Store().Cart())
}

func TestCartTotalMatchesLineSubtotals(t *testing.T) {
	f := newFakeAPI()
	s := loggedInShop(t, f)
	f.mu.Lock()
	f.cart = domain.CartSnapshot{
		Items: []domain.CartLine{
			{Title: "Serum", Price: 150000, Quantity: 2, Subtotal: 300000},
			{Title: "Toner", Price: 85000, Quantity: 1, Subtotal: 85000},
		},
		Total: 385000,
	}
	f.mu.Unlock()

	snap, err := s.RefreshCart(context.Background())
	require.NoError(t, err)

	var sum int64
	for _, line := range snap.Items {
		sum += line.Subtotal
	}
	assert.Equal(t, sum, snap.Total)
}

func TestConcurrentAddsAreSerialized(t *testing.T) {
	f := newFakeAPI()
	s := loggedInShop(t, f)

	f.onAdd = func(productID int64, quantity int) {
		line := domain.CartLine{
			Title:    fmt.Sprintf("Product %d", productID),
			Price:    10000,
			Quantity: quantity,
			Subtotal: 10000 * int64(quantity),
		}
		f.cart.Items = append(f.cart.Items, line)
		f.cart.Total += line.Subtotal
	}

	const adds = 8
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func(productID int64) {
			defer wg.Done()
			assert.NoError(t, s.AddItem(context.Background(), productID, 1))
		}(int64(i + 1))
	}
	wg.Wait()

	// Every add is immediately followed by its own fetch.
	calls := f.callLog()
	require.Len(t, calls, 2*adds)
	for i := 0; i < len(calls); i += 2 {
		assert.Equal(t, "add", calls[i])
		assert.Equal(t, "cart", calls[i+1])
	}

	// The store holds the final server truth, not a stale interleaving.
	got := s.Store().Cart()
	assert.Len(t, got.Items, adds)
	assert.EqualValues(t, adds*10000, got.Total)
}

func TestAddItemRefetchIgnoresEarlierInFlightRead(t *testing.T) {
	f := newFakeAPI()
	s := loggedInShop(t, f)
	f.onAdd = func(productID int64, quantity int) {
		f.cart = serumSnapshot()
	}

	// Hold the first fetch open after it has taken its (pre-add) response.
	// Later fetches pass through untouched.
	started := make(chan struct{})
	release := make(chan struct{})
	first := make(chan struct{}, 1)
	first <- struct{}{}
	f.onCart = func() {
		select {
		case <-first:
			close(started)
			<-release
		default:
		}
	}

	refreshed := make(chan struct{})
	go func() {
		defer close(refreshed)
		_, _ = s.RefreshCart(context.Background())
	}()
	<-started

	// The add's own fetch must go to the server, not join the held read
	// whose snapshot predates the add.
	require.NoError(t, s.AddItem(context.Background(), 42, 1))
	assert.Equal(t, serumSnapshot(), s.Store().Cart())

	close(release)
	<-refreshed
	assert.Equal(t, serumSnapshot(), s.Store().Cart(),
		"the pre-add snapshot carries an older ticket and must not land")
}

func TestAddAndCheckoutNeverInterleave(t *testing.T) {
	f := newFakeAPI()
	f.cart = serumSnapshot()
	f.checkoutTotal = 150000
	s := loggedInShop(t, f)

	f.onAdd = func(productID int64, quantity int) {
		f.cart.Items = append(f.cart.Items, domain.CartLine{Title: "Toner", Price: 85000, Quantity: quantity, Subtotal: 85000})
		f.cart.Total += 85000
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.AddItem(context.Background(), 42, 1))
	}()
	go func() {
		defer wg.Done()
		_, err := s.Checkout(context.Background())
		assert.NoError(t, err)
	}()
	wg.Wait()

	// Whichever order the mutex grants, each mutation and its own fetch
	// form an unbroken pair.
	calls := f.callLog()
	require.Len(t, calls, 4)
	for i := 0; i < len(calls); i += 2 {
		assert.Contains(t, []string{"add", "checkout"}, calls[i])
		assert.Equal(t, "cart", calls[i+1])
	}
}
