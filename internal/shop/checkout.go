package shop

import (
	"context"
)

// Checkout submits the session's cart and returns the charged total.
// It refuses before any network call when there is no identity or the
// local snapshot is empty. On success the cart is re-fetched so the store
// reflects the now-cleared server cart.
//
// Checkout and AddItem share the cart mutex: a checkout can never race an
// add-triggered snapshot update for the same identity.
func (s *Shop) Checkout(ctx context.Context) (int64, error) {
	id, ok := s.store.Identity()
	if !ok {
		return 0, ErrNoIdentity
	}
	if s.store.Cart().Empty() {
		return 0, ErrEmptyCart
	}

	s.cartMu.Lock()
	defer s.cartMu.Unlock()

	total, err := s.api.Checkout(ctx, id.UserID)
	if err != nil {
		return 0, remoteErr("checkout", err)
	}

	ticket := s.store.BeginCartUpdate()
	snap, ferr := s.fetchCart(ctx, id.UserID)
	if ferr != nil {
		s.log.WithUser(id.UserID).Warn("cart_resync_failed", nil, ferr)
	} else {
		s.store.ApplyCart(ticket, snap)
	}

	s.log.WithUser(id.UserID).Info("checkout_completed", map[string]any{"total": total})
	return total, nil
}
