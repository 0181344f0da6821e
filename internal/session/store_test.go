package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowify/storefront/internal/domain"
)

func serumCart() domain.CartSnapshot {
	return domain.CartSnapshot{
		Items: []domain.CartLine{{Title: "Serum", Price: 150000, Quantity: 1, Subtotal: 150000}},
		Total: 150000,
	}
}

func TestNewStoreIsAnonymousAndEmpty(t *testing.T) {
	s := New()

	_, ok := s.Identity()
	assert.False(t, ok)

	cart := s.Cart()
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestSetIdentity(t *testing.T) {
	s := New()
	s.SetIdentity(&domain.Identity{UserID: 1, Name: "Ayu", Email: "a@x.com"})

	id, ok := s.Identity()
	require.True(t, ok)
	assert.EqualValues(t, 1, id.UserID)
	assert.Equal(t, "a@x.com", id.Email)
}

func TestSetIdentityNilClearsCart(t *testing.T) {
	s := New()
	s.SetIdentity(&domain.Identity{UserID: 1})
	s.SetCart(serumCart())
	require.False(t, s.Cart().Empty())

	s.SetIdentity(nil)

	_, ok := s.Identity()
	assert.False(t, ok)
	cart := s.Cart()
	assert.Equal(t, domain.EmptyCart(), cart)
}

func TestIdentitySwitchClearsCart(t *testing.T) {
	s := New()
	s.SetIdentity(&domain.Identity{UserID: 1})
	s.SetCart(serumCart())

	s.SetIdentity(&domain.Identity{UserID: 2})

	assert.True(t, s.Cart().Empty(), "a cart is meaningless without its owner")
}

func TestStaleTicketDiscarded(t *testing.T) {
	s := New()
	s.SetIdentity(&domain.Identity{UserID: 1})

	older := s.BeginCartUpdate()
	newer := s.BeginCartUpdate()

	require.True(t, s.ApplyCart(newer, serumCart()))
	assert.False(t, s.ApplyCart(older, domain.EmptyCart()), "late response must not overwrite a later one")
	assert.EqualValues(t, 150000, s.Cart().Total)
}

func TestTicketFromPreviousIdentityDiscarded(t *testing.T) {
	s := New()
	s.SetIdentity(&domain.Identity{UserID: 1})
	stale := s.BeginCartUpdate()

	s.SetIdentity(&domain.Identity{UserID: 2})

	assert.False(t, s.ApplyCart(stale, serumCart()))
	assert.True(t, s.Cart().Empty())
}

func TestApplyCartCopiesSnapshot(t *testing.T) {
	s := New()
	snap := serumCart()
	s.SetCart(snap)

	snap.Items[0].Title = "mutated"

	assert.Equal(t, "Serum", s.Cart().Items[0].Title)
}

func TestSubscribeNotifiesIdentityAndCart(t *testing.T) {
	s := New()
	ch, cancel := s.Subscribe()
	defer cancel()

	s.SetIdentity(&domain.Identity{UserID: 1})

	kinds := map[ChangeKind]bool{}
	for i := 0; i < 2; i++ {
		select {
		case c := <-ch:
			kinds[c.Kind] = true
		default:
			t.Fatal("expected buffered change notification")
		}
	}
	assert.True(t, kinds[ChangeIdentity])
	assert.True(t, kinds[ChangeCart])
}

func TestSubscribeCancelStopsDelivery(t *testing.T) {
	s := New()
	ch, cancel := s.Subscribe()
	cancel()

	s.SetCart(serumCart())

	_, open := <-ch
	assert.False(t, open)
}

func TestCancelIsIdempotent(t *testing.T) {
	s := New()
	_, cancel := s.Subscribe()
	cancel()
	assert.NotPanics(t, cancel)
}
