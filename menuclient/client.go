package menuclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/oshmenu/menu-service/internal/ordering"
)

// RequestError is the single failure shape surfaced to callers: transport
// errors, non-2xx responses and malformed bodies all collapse into it.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// Client issues REST calls against the menu service. It is safe for
// concurrent use: the token may be set while background requests are in
// flight.
type Client struct {
	baseURL string
	httpc   *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login verifies admin credentials and stores the returned token for
// subsequent mutating calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return err
	}
	c.SetToken(resp.Token)
	return nil
}

// do performs one request/response round-trip with JSON bodies.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Message: fmt.Sprintf("failed to encode request: %v", err)}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &RequestError{Message: fmt.Sprintf("failed to build request: %v", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &RequestError{Message: fmt.Sprintf("request to %s failed: %v", path, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var serverErr struct {
			Error string `json:"error"`
		}
		msg := fmt.Sprintf("server returned status %d for %s", resp.StatusCode, path)
		if err := json.NewDecoder(resp.Body).Decode(&serverErr); err == nil && serverErr.Error != "" {
			msg = serverErr.Error
		}
		return &RequestError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &RequestError{Status: resp.StatusCode, Message: fmt.Sprintf("failed to decode response from %s: %v", path, err)}
		}
	}
	return nil
}

// --- Branches ---

func (c *Client) Branches(ctx context.Context) ([]Branch, error) {
	var wire []wireBranch
	if err := c.do(ctx, http.MethodGet, "/api/branches", nil, &wire); err != nil {
		return nil, err
	}
	branches := make([]Branch, len(wire))
	for i, w := range wire {
		branches[i] = branchFromWire(w)
	}
	return branches, nil
}

func (c *Client) CreateBranch(ctx context.Context, b Branch) (Branch, error) {
	wire, err := branchToWire(b)
	if err != nil {
		return Branch{}, &RequestError{Message: err.Error()}
	}
	var created wireBranch
	if err := c.do(ctx, http.MethodPost, "/api/branches", wire, &created); err != nil {
		return Branch{}, err
	}
	return branchFromWire(created), nil
}

func (c *Client) UpdateBranch(ctx context.Context, b Branch) (Branch, error) {
	wire, err := branchToWire(b)
	if err != nil {
		return Branch{}, &RequestError{Message: err.Error()}
	}
	var updated wireBranch
	if err := c.do(ctx, http.MethodPut, "/api/branches/"+b.ID, wire, &updated); err != nil {
		return Branch{}, err
	}
	return branchFromWire(updated), nil
}

func (c *Client) DeleteBranch(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/branches/"+id, nil, nil)
}

// --- Categories ---

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var wire []wireCategory
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &wire); err != nil {
		return nil, err
	}
	categories := make([]Category, len(wire))
	for i, w := range wire {
		categories[i] = categoryFromWire(w)
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, cat Category) (Category, error) {
	wire, err := categoryToWire(cat)
	if err != nil {
		return Category{}, &RequestError{Message: err.Error()}
	}
	var created wireCategory
	if err := c.do(ctx, http.MethodPost, "/api/categories", wire, &created); err != nil {
		return Category{}, err
	}
	return categoryFromWire(created), nil
}

func (c *Client) UpdateCategory(ctx context.Context, cat Category) (Category, error) {
	wire, err := categoryToWire(cat)
	if err != nil {
		return Category{}, &RequestError{Message: err.Error()}
	}
	var updated wireCategory
	if err := c.do(ctx, http.MethodPut, "/api/categories/"+cat.ID, wire, &updated); err != nil {
		return Category{}, err
	}
	return categoryFromWire(updated), nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/categories/"+id, nil, nil)
}

func (c *Client) ReorderCategories(ctx context.Context, entries []ordering.Entry) error {
	batch, err := reorderBatch(entries)
	if err != nil {
		return err
	}
	body := map[string]interface{}{"categories": batch}
	return c.do(ctx, http.MethodPut, "/api/categories/reorder", body, nil)
}

// --- Dishes ---

func (c *Client) Dishes(ctx context.Context) ([]Dish, error) {
	var wire []wireDish
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &wire); err != nil {
		return nil, err
	}
	dishes := make([]Dish, len(wire))
	for i, w := range wire {
		dishes[i] = dishFromWire(w)
	}
	return dishes, nil
}

func (c *Client) CreateDish(ctx context.Context, d Dish) (Dish, error) {
	wire, err := dishToWire(d)
	if err != nil {
		return Dish{}, &RequestError{Message: err.Error()}
	}
	var created wireDish
	if err := c.do(ctx, http.MethodPost, "/api/products", wire, &created); err != nil {
		return Dish{}, err
	}
	return dishFromWire(created), nil
}

func (c *Client) UpdateDish(ctx context.Context, d Dish) (Dish, error) {
	wire, err := dishToWire(d)
	if err != nil {
		return Dish{}, &RequestError{Message: err.Error()}
	}
	var updated wireDish
	if err := c.do(ctx, http.MethodPut, "/api/products/"+d.ID, wire, &updated); err != nil {
		return Dish{}, err
	}
	return dishFromWire(updated), nil
}

func (c *Client) DeleteDish(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+id, nil, nil)
}

func (c *Client) ReorderDishes(ctx context.Context, entries []ordering.Entry) error {
	batch, err := reorderBatch(entries)
	if err != nil {
		return err
	}
	body := map[string]interface{}{"products": batch}
	return c.do(ctx, http.MethodPut, "/api/products/reorder", body, nil)
}

// --- Branding ---

func (c *Client) Branding(ctx context.Context) (Branding, error) {
	var wire wireBranding
	if err := c.do(ctx, http.MethodGet, "/api/branding", nil, &wire); err != nil {
		return Branding{}, err
	}
	return brandingFromWire(wire), nil
}

func (c *Client) UpdateBranding(ctx context.Context, b Branding) (Branding, error) {
	var updated wireBranding
	if err := c.do(ctx, http.MethodPut, "/api/branding", brandingToWire(b), &updated); err != nil {
		return Branding{}, err
	}
	return brandingFromWire(updated), nil
}

type reorderItem struct {
	ID        int64 `json:"id"`
	SortOrder int   `json:"sort_order"`
}

func reorderBatch(entries []ordering.Entry) ([]reorderItem, error) {
	batch := make([]reorderItem, len(entries))
	for i, e := range entries {
		id, err := parseID(e.ID)
		if err != nil {
			return nil, &RequestError{Message: err.Error()}
		}
		batch[i] = reorderItem{ID: id, SortOrder: e.SortOrder}
	}
	return batch, nil
}
