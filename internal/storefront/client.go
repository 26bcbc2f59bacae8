// internal/storefront/client.go
package storefront

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Product is the API's product representation as seen by the storefront
type Product struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	CountInStock int     `json:"count_in_stock"`
	Rating       float64 `json:"rating"`
	NumReviews   int     `json:"num_reviews"`
}

// Client is a thin API client for the storefront. Calls are issued once,
// with no retry and no deduplication; a failure surfaces to the caller and
// leaves prior state unchanged.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *SessionStore
}

// NewClient creates an API client bound to a session store
func NewClient(baseURL string, sessions *SessionStore) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		sessions:   sessions,
	}
}

type authPayload struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	Token   string `json:"token"`
}

// Login authenticates against the API and stores the session on success
func (c *Client) Login(email, password string) (*SessionInfo, error) {
	body := map[string]string{"email": email, "password": password}

	var payload authPayload
	if err := c.do(http.MethodPost, "/auth/login", body, &payload); err != nil {
		return nil, err
	}

	return c.storeSession(payload)
}

// Register creates an account against the API and stores the session on
// success
func (c *Client) Register(name, email, password string) (*SessionInfo, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var payload authPayload
	if err := c.do(http.MethodPost, "/auth/register", body, &payload); err != nil {
		return nil, err
	}

	return c.storeSession(payload)
}

// Logout destroys the local session record. The bearer token is stateless,
// so there is nothing to revoke server-side.
func (c *Client) Logout() error {
	return c.sessions.Clear()
}

// Profile is the API's profile representation for the signed-in user
type Profile struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// FetchProfile retrieves the signed-in user's profile
func (c *Client) FetchProfile() (*Profile, error) {
	var profile Profile
	if err := c.do(http.MethodGet, "/auth/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// FetchProducts retrieves the product catalog
func (c *Client) FetchProducts() ([]Product, error) {
	var products []Product
	if err := c.do(http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchProduct retrieves a single product by ID
func (c *Client) FetchProduct(id uint) (*Product, error) {
	var product Product
	if err := c.do(http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) storeSession(payload authPayload) (*SessionInfo, error) {
	info := SessionInfo{
		UserID:  payload.ID,
		Name:    payload.Name,
		IsAdmin: payload.IsAdmin,
		Token:   payload.Token,
	}
	if err := c.sessions.Set(info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) do(method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if session := c.sessions.Current(); session != nil {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s", apiErr.Message)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
