// Package session holds the in-memory storefront session: the authenticated
// identity (or none) and the current cart snapshot. The store is the sole
// owner of both; flows mutate remote state first and then replace the
// snapshot here with the server's response. Nothing is persisted.
package session

import (
	"sync"

	"github.com/glowify/storefront/internal/domain"
)

// ChangeKind classifies store notifications.
type ChangeKind string

const (
	ChangeIdentity ChangeKind = "identity"
	ChangeCart     ChangeKind = "cart"
)

// Change is delivered to subscribers whenever the store mutates.
type Change struct {
	Kind ChangeKind
}

// Ticket orders cart writes. Tickets from a previous identity epoch, or
// older than the last applied write, are discarded so a late fetch can
// never overwrite the result of a later add.
type Ticket struct {
	epoch uint64
	seq   uint64
}

// Store is the single shared mutable resource of the storefront session.
type Store struct {
	mu         sync.RWMutex
	identity   *domain.Identity
	cart       domain.CartSnapshot
	epoch      uint64
	nextSeq    uint64
	appliedSeq uint64

	subMu   sync.Mutex
	subs    map[int]chan Change
	nextSub int
}

// New creates an empty anonymous session.
func New() *Store {
	return &Store{
		cart: domain.EmptyCart(),
		subs: make(map[int]chan Change),
	}
}

// Identity returns the current identity, if any.
func (s *Store) Identity() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

// Cart returns a copy of the current snapshot.
func (s *Store) Cart() domain.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySnapshot(s.cart)
}

// SetIdentity replaces the current identity. Passing nil logs out. Either
// way the cart resets to empty and the epoch advances, invalidating any
// in-flight cart fetch issued under the previous identity.
func (s *Store) SetIdentity(id *domain.Identity) {
	s.mu.Lock()
	if id == nil {
		s.identity = nil
	} else {
		v := *id
		s.identity = &v
	}
	s.epoch++
	s.nextSeq = 0
	s.appliedSeq = 0
	s.cart = domain.EmptyCart()
	s.mu.Unlock()

	s.notify(ChangeIdentity)
	s.notify(ChangeCart)
}

// BeginCartUpdate reserves the next write slot for the current identity
// epoch. Call before issuing the remote fetch whose result will be applied.
func (s *Store) BeginCartUpdate() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return Ticket{epoch: s.epoch, seq: s.nextSeq}
}

// ApplyCart installs a fetched snapshot. It reports false, leaving the
// store untouched, when the ticket is stale: issued before an identity
// switch, or outrun by a later applied write.
func (s *Store) ApplyCart(t Ticket, snap domain.CartSnapshot) bool {
	s.mu.Lock()
	if t.epoch != s.epoch || t.seq <= s.appliedSeq {
		s.mu.Unlock()
		return false
	}
	s.appliedSeq = t.seq
	s.cart = copySnapshot(snap)
	s.mu.Unlock()

	s.notify(ChangeCart)
	return true
}

// SetCart replaces the snapshot unconditionally (reserve-and-apply in one
// step). Flows that interleave remote calls should use BeginCartUpdate and
// ApplyCart instead.
func (s *Store) SetCart(snap domain.CartSnapshot) {
	s.ApplyCart(s.BeginCartUpdate(), snap)
}

// Subscribe registers a change listener. The returned cancel function
// releases it. Slow listeners miss intermediate changes rather than block
// the store.
func (s *Store) Subscribe() (<-chan Change, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Change, 16)
	s.subs[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (s *Store) notify(kind ChangeKind) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- Change{Kind: kind}:
		default:
		}
	}
}

func copySnapshot(snap domain.CartSnapshot) domain.CartSnapshot {
	items := make([]domain.CartLine, len(snap.Items))
	copy(items, snap.Items)
	return domain.CartSnapshot{Items: items, Total: snap.Total}
}
