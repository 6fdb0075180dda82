// Package client drives a running booking server over HTTP the way a
// browser would: one cookie-backed session per Client.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/evcraddock/museum-visit/internal/app"
	"github.com/evcraddock/museum-visit/internal/navigation"
	"github.com/evcraddock/museum-visit/internal/web"
)

// csrfField finds the token the server embeds in every form.
var csrfField = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

// Client is an HTTP client for the booking server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	csrfToken  string
}

// New creates a client with an empty cookie jar.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second, Jar: jar},
	}, nil
}

// Health returns GET /health.
func (c *Client) Health() (*web.HealthResponse, error) {
	var resp web.HealthResponse
	if err := c.get("/health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Pages returns the screen list and navigation graph.
func (c *Client) Pages() (*web.PagesResponse, error) {
	var resp web.PagesResponse
	if err := c.get("/api/pages", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// State returns the session's current view. The first call starts a session.
func (c *Client) State() (*app.View, error) {
	var v app.View
	if err := c.get("/api/state", &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Navigate moves the session to page.
func (c *Client) Navigate(page navigation.Page) error {
	return c.post("/nav/"+string(page), nil)
}

// Back returns the session to the parent of the current screen.
func (c *Client) Back() error {
	return c.post("/back", nil)
}

// Login submits the login form. The session must be on the login page.
func (c *Client) Login(username, password string) error {
	return c.post("/login", url.Values{"username": {username}, "password": {password}})
}

// SubmitBooking books the current selection on the booking page.
func (c *Client) SubmitBooking() error {
	return c.post("/booking/submit", nil)
}

// get fetches path and decodes its JSON body into result.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	body, err := c.do(req)
	if err != nil {
		return err
	}
	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// post submits a form. The server answers with a redirect to the rendered
// page, which is scanned for a fresh CSRF token.
func (c *Client) post(path string, form url.Values) error {
	if form == nil {
		form = url.Values{}
	}
	if c.csrfToken == "" {
		if err := c.refreshToken(); err != nil {
			return err
		}
	}

	req, err := http.NewRequest("POST", c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.csrfToken != "" {
		req.Header.Set("X-CSRF-Token", c.csrfToken)
	}

	body, err := c.do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	c.scanToken(body)
	return nil
}

// refreshToken loads the current page to pick up a CSRF token. Servers
// running without CSRF protection leave the token empty.
func (c *Client) refreshToken() error {
	req, err := http.NewRequest("GET", c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	body, err := c.do(req)
	if err != nil {
		return err
	}
	c.scanToken(body)
	return nil
}

func (c *Client) scanToken(page []byte) {
	if m := csrfField.FindSubmatch(page); m != nil {
		c.csrfToken = string(m[1])
	}
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%s", errResp.Error)
		}
		return nil, fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}

	return respBody, nil
}
