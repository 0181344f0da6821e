package shop

import (
	"errors"
	"fmt"

	"github.com/glowify/storefront/internal/api"
)

// Flow errors. Precondition failures are raised before any network call.
var (
	// ErrNoIdentity indicates the operation needs an authenticated user.
	ErrNoIdentity = errors.New("no authenticated identity")

	// ErrEmptyCart indicates checkout was attempted on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrRegistrationRejected indicates the registration endpoint refused
	// the request (e.g. duplicate email).
	ErrRegistrationRejected = errors.New("registration rejected")

	// ErrInvalidCredentials indicates the login endpoint refused the
	// credentials.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRemoteRejected indicates the commerce API refused a cart or
	// checkout request.
	ErrRemoteRejected = errors.New("rejected by commerce API")
)

// User-facing messages, matching the shop's storefront copy.
const (
	// AuthFailedMessage is the single message shown for any auth flow
	// failure. Backend error detail is deliberately not leaked here.
	AuthFailedMessage = "Terjadi kesalahan. Pastikan data benar."

	// CheckoutFailedMessage is shown when checkout fails without a
	// server-provided detail.
	CheckoutFailedMessage = "Gagal checkout"
)

// RemoteError wraps a commerce API rejection with the server's detail.
type RemoteError struct {
	Op     string
	Status int
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Detail, e.Status)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

func (e *RemoteError) Unwrap() error {
	return ErrRemoteRejected
}

// remoteErr maps an API client error to the flow taxonomy: API status
// rejections become RemoteError, transport failures stay wrapped as-is.
func remoteErr(op string, err error) error {
	if se, ok := api.IsStatus(err); ok {
		return &RemoteError{Op: op, Status: se.Status, Detail: se.Detail}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// CheckoutMessage converts a checkout error into the user-facing message:
// server detail verbatim when present (checkout failures are actionable),
// generic fallback otherwise.
func CheckoutMessage(err error) string {
	var re *RemoteError
	if errors.As(err, &re) && re.Detail != "" {
		return re.Detail
	}
	return CheckoutFailedMessage
}

// AuthMessage converts any auth flow error into the single generic
// user-facing message.
func AuthMessage(err error) string {
	return AuthFailedMessage
}
