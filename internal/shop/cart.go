package shop

import (
	"context"
	"strconv"

	"github.com/glowify/storefront/internal/domain"
)

// AddItem adds a product to the remote cart and then re-fetches the
// authoritative snapshot. Requires an identity; without one it fails with
// ErrNoIdentity before issuing any network call, and the caller is expected
// to raise the auth prompt instead.
//
// The add and its follow-up fetch run under the cart mutex, and the fetch
// goes to the server directly rather than joining an in-flight refresh, so
// the fetched snapshot always reflects the completed add and no checkout
// can interleave. Re-fetching rather than incrementing locally keeps the
// client aligned with server-side pricing it does not know about, at the
// cost of one extra round trip.
func (s *Shop) AddItem(ctx context.Context, productID int64, quantity int) error {
	id, ok := s.store.Identity()
	if !ok {
		return ErrNoIdentity
	}
	if quantity < 1 {
		quantity = 1
	}

	s.cartMu.Lock()
	defer s.cartMu.Unlock()

	if err := s.api.AddToCart(ctx, id.UserID, productID, quantity); err != nil {
		return remoteErr("add to cart", err)
	}

	ticket := s.store.BeginCartUpdate()
	snap, err := s.fetchCart(ctx, id.UserID)
	if err != nil {
		// The add itself succeeded; a failed resync leaves the local
		// snapshot stale until the next refresh.
		s.log.WithUser(id.UserID).Warn("cart_resync_failed", map[string]any{"product_id": productID}, err)
		return nil
	}
	s.store.ApplyCart(ticket, snap)

	s.log.WithUser(id.UserID).Info("cart_item_added", map[string]any{
		"product_id": productID,
		"quantity":   quantity,
		"lines":      len(snap.Items),
	})
	return nil
}

// RefreshCart fetches the current snapshot for the session's identity and
// installs it in the store. Without an identity the cart must be empty, so
// it returns the empty snapshot with no network call and no error.
func (s *Shop) RefreshCart(ctx context.Context) (domain.CartSnapshot, error) {
	id, ok := s.store.Identity()
	if !ok {
		return domain.EmptyCart(), nil
	}

	ticket := s.store.BeginCartUpdate()
	snap, err := s.dedupedCart(ctx, id.UserID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}
	s.store.ApplyCart(ticket, snap)
	return snap, nil
}

// fetchCart reads the remote cart directly. The mutation flows use it so
// the follow-up fetch can never join a read that was already in flight
// before the mutation, which would hand back a pre-mutation snapshot.
func (s *Shop) fetchCart(ctx context.Context, userID int64) (domain.CartSnapshot, error) {
	snap, err := s.api.Cart(ctx, userID)
	if err != nil {
		return domain.CartSnapshot{}, remoteErr("fetch cart", err)
	}
	return snap, nil
}

// dedupedCart collapses concurrent fetches for the same user into one
// flight. Only the refresh path uses it; stale results are screened out by
// the caller's store ticket, not here.
func (s *Shop) dedupedCart(ctx context.Context, userID int64) (domain.CartSnapshot, error) {
	v, err, _ := s.sfg.Do(strconv.FormatInt(userID, 10), func() (any, error) {
		return s.api.Cart(ctx, userID)
	})
	if err != nil {
		return domain.CartSnapshot{}, remoteErr("fetch cart", err)
	}
	return v.(domain.CartSnapshot), nil
}
