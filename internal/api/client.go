package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glowify/storefront/internal/domain"
	"github.com/glowify/storefront/internal/logging"
)

// maxResponseSize caps how much of a response body is read (10MB).
const maxResponseSize = 10 * 1024 * 1024

// Client talks to the commerce API.
type Client struct {
	baseURL string
	http    HTTPClient
	log     *logging.Logger
}

// New creates a client for the given base URL with a timeout-bounded
// http.Client. An empty base URL means same-host defaults resolved by config.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithClient creates a client with a caller-supplied HTTP client.
func NewWithClient(baseURL string, client HTTPClient) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
		log:     logging.New("api"),
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type addItemRequest struct {
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type checkoutRequest struct {
	UserID int64 `json:"user_id"`
}

type checkoutResponse struct {
	Total int64 `json:"total"`
}

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

// Products lists the catalog.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Register creates an account. The success body is ignored.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", registerRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, nil)
}

// Login exchanges credentials for an Identity.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	var id domain.Identity
	err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{
		Email:    email,
		Password: password,
	}, &id)
	return id, err
}

// Cart fetches the server-computed cart snapshot for a user.
func (c *Client) Cart(ctx context.Context, userID int64) (domain.CartSnapshot, error) {
	var snap domain.CartSnapshot
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/cart/%d", userID), nil, &snap)
	if err != nil {
		return domain.CartSnapshot{}, err
	}
	if snap.Items == nil {
		snap.Items = []domain.CartLine{}
	}
	return snap, nil
}

// AddToCart adds a product to the user's remote cart. The caller re-fetches
// the snapshot afterwards; this call does not return cart state.
func (c *Client) AddToCart(ctx context.Context, userID, productID int64, quantity int) error {
	return c.do(ctx, http.MethodPost, "/api/cart/add", addItemRequest{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}, nil)
}

// Checkout submits the user's cart and returns the charged total.
func (c *Client) Checkout(ctx context.Context, userID int64) (int64, error) {
	var resp checkoutResponse
	if err := c.do(ctx, http.MethodPost, "/api/checkout", checkoutRequest{UserID: userID}, &resp); err != nil {
		return 0, err
	}
	return resp.Total, nil
}

// Ask sends a question to the shop assistant and returns its answer.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	var resp chatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", chatRequest{Question: question}, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request_failed", map[string]any{"method": method, "path": path}, err)
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.log.TimedEvent("request_done", start, map[string]any{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return &StatusError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
