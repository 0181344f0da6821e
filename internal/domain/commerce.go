// Package domain defines the commerce types shared across the storefront.
package domain

// Identity is the authenticated user's session-scoped record, returned by a
// successful login. It is distinct from credentials and carries no token.
type Identity struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Product is a catalog entry. Products come from the remote catalog and are
// never mutated locally.
type Product struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"` // smallest currency unit
	ImageURL    string `json:"image_url"`
}

// CartLine is one line of the server-computed cart. Subtotal is computed by
// the remote API, never re-derived here.
type CartLine struct {
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	ImageURL string `json:"image_url"`
	Subtotal int64  `json:"subtotal"`
}

// CartSnapshot is the authoritative, server-computed view of a user's cart.
// A snapshot is only ever a verbatim copy of a remote response; the client
// does not compute totals, so server-side pricing rules cannot drift.
type CartSnapshot struct {
	Items []CartLine `json:"items"`
	Total int64      `json:"total"`
}

// Empty reports whether the snapshot holds no lines.
func (c CartSnapshot) Empty() bool {
	return len(c.Items) == 0
}

// EmptyCart returns the canonical empty snapshot.
func EmptyCart() CartSnapshot {
	return CartSnapshot{Items: []CartLine{}, Total: 0}
}

// ChatRole classifies transcript messages.
type ChatRole string

const (
	RoleUser ChatRole = "user"
	RoleBot  ChatRole = "bot"
)

// ChatMessage is one entry in the assistant transcript. The transcript is
// append-only and scoped to the running session.
type ChatMessage struct {
	ID   string   `json:"id"`
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}
