// Package client is the HTTP client the infrastructure-as-code
// tooling drives. It speaks the same wire contracts as the API:
// password-grant login on /token, bearer access tokens, and CRUD on
// /todos and /profile. A 401 triggers one re-authentication and a
// single retry.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	BaseURL      string
	Email        string
	Password     string
	AccessToken  string
	RefreshToken string
	HTTPClient   *http.Client
}

func New(baseURL, email, password string) *Client {
	return &Client{
		BaseURL:  baseURL,
		Email:    email,
		Password: password,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// TokenResponse is the OAuth2-style token payload.
type TokenResponse struct {
	TokenType    string `json:"token_type"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// Account is the identity returned by registration.
type Account struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Profile is the authenticated user's profile.
type Profile struct {
	UserID      string         `json:"userId"`
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Bio         string         `json:"bio"`
	Preferences map[string]any `json:"preferences"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

// Todo is a todo item as it appears on the wire.
type Todo struct {
	ID          string `json:"id,omitempty"`
	UserID      string `json:"userId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Register creates an account with the client's configured credentials.
func (c *Client) Register(name string) (*Account, error) {
	body := map[string]string{
		"email":    c.Email,
		"password": c.Password,
		"name":     name,
	}

	resp, err := c.post("/register", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, statusError("registration", resp)
	}

	var account Account
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &account, nil
}

// Authenticate logs in and retrieves access tokens.
func (c *Client) Authenticate() error {
	body := map[string]string{
		"email":    c.Email,
		"password": c.Password,
	}

	resp, err := c.post("/token", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError("authentication", resp)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return fmt.Errorf("failed to parse auth response: %w", err)
	}

	c.AccessToken = tokenResp.AccessToken
	c.RefreshToken = tokenResp.RefreshToken
	return nil
}

// RefreshAccess exchanges the stored refresh token for a new access
// token without resending the password.
func (c *Client) RefreshAccess() error {
	resp, err := c.post("/refresh", map[string]string{"refresh_token": c.RefreshToken})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError("token refresh", resp)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return fmt.Errorf("failed to parse refresh response: %w", err)
	}

	c.AccessToken = tokenResp.AccessToken
	return nil
}

// Revoke invalidates the stored refresh token server-side.
func (c *Client) Revoke() error {
	resp, err := c.post("/revoke", map[string]string{"refresh_token": c.RefreshToken})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError("token revocation", resp)
	}

	c.RefreshToken = ""
	return nil
}

// DoRequest makes an authenticated HTTP request, re-authenticating
// once if the access token has gone stale.
func (c *Client) DoRequest(method, path string, body any) (*http.Response, error) {
	resp, err := c.doOnce(method, path, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if err := c.Authenticate(); err != nil {
			return nil, fmt.Errorf("re-authentication failed: %w", err)
		}
		return c.doOnce(method, path, body)
	}

	return resp, nil
}

func (c *Client) doOnce(method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func (c *Client) GetProfile() (*Profile, error) {
	resp, err := c.DoRequest(http.MethodGet, "/profile", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("get profile", resp)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &profile, nil
}

func (c *Client) UpdateProfile(name, bio *string, preferences map[string]any) (*Profile, error) {
	updates := make(map[string]any)
	if name != nil {
		updates["name"] = *name
	}
	if bio != nil {
		updates["bio"] = *bio
	}
	if preferences != nil {
		updates["preferences"] = preferences
	}

	resp, err := c.DoRequest(http.MethodPut, "/profile", updates)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("update profile", resp)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &profile, nil
}

func (c *Client) CreateTodo(title, description string, completed bool) (*Todo, error) {
	todo := map[string]any{
		"title":       title,
		"description": description,
		"completed":   completed,
	}

	resp, err := c.DoRequest(http.MethodPost, "/todos", todo)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, statusError("create todo", resp)
	}

	var created Todo
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &created, nil
}

func (c *Client) GetTodo(id string) (*Todo, error) {
	resp, err := c.DoRequest(http.MethodGet, "/todos/"+id, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("todo not found")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("get todo", resp)
	}

	var todo Todo
	if err := json.NewDecoder(resp.Body).Decode(&todo); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &todo, nil
}

func (c *Client) UpdateTodo(id string, title, description *string, completed *bool) (*Todo, error) {
	updates := make(map[string]any)
	if title != nil {
		updates["title"] = *title
	}
	if description != nil {
		updates["description"] = *description
	}
	if completed != nil {
		updates["completed"] = *completed
	}

	resp, err := c.DoRequest(http.MethodPut, "/todos/"+id, updates)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("update todo", resp)
	}

	var updated Todo
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &updated, nil
}

// DeleteTodo removes a todo. A 404 counts as success: the resource is
// gone either way, which is what a declarative caller cares about.
func (c *Client) DeleteTodo(id string) error {
	resp, err := c.DoRequest(http.MethodDelete, "/todos/"+id, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return statusError("delete todo", resp)
	}
	return nil
}

func (c *Client) post(path string, body any) (*http.Response, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func statusError(op string, resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("%s failed (status %d): %s", op, resp.StatusCode, string(bodyBytes))
}
