// Package shop coordinates the storefront flows: authentication, catalog,
// cart, and checkout. Each flow validates its preconditions, calls the
// remote commerce API, and updates the session store with the server's
// response. The store is the flows' only write target.
package shop

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/glowify/storefront/internal/domain"
	"github.com/glowify/storefront/internal/logging"
	"github.com/glowify/storefront/internal/session"
)

// Commerce is the remote API surface the flows depend on.
// *api.Client satisfies it; tests substitute fakes.
type Commerce interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (domain.Identity, error)
	Cart(ctx context.Context, userID int64) (domain.CartSnapshot, error)
	AddToCart(ctx context.Context, userID, productID int64, quantity int) error
	Checkout(ctx context.Context, userID int64) (int64, error)
}

// Shop owns the flows for one storefront session.
type Shop struct {
	api   Commerce
	store *session.Store
	log   *logging.Logger

	// cartMu serializes cart mutations: an add and its follow-up fetch,
	// and checkout against add, are mutually exclusive per session.
	cartMu sync.Mutex

	// sfg collapses concurrent identical cart fetches (cache-stampede
	// guard on the read path; mutations never share flights).
	sfg singleflight.Group
}

// New creates a Shop over the given API client and session store.
func New(api Commerce, store *session.Store) *Shop {
	return &Shop{
		api:   api,
		store: store,
		log:   logging.New("shop"),
	}
}

// Store exposes the session store for the presentation layer to read from
// and subscribe to.
func (s *Shop) Store() *session.Store {
	return s.store
}
