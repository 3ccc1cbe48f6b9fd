// Package identity talks to the external user directory that owns user
// identities. Local user records only shadow what it returns.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var ErrUserNotFound = errors.New("identity: user not found")

// User is the identity provider's view of a user. Only ID is relied upon.
type User struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetUserByID(ctx context.Context, id int64) (*User, error) {
	return c.get(ctx, "/api/users/"+strconv.FormatInt(id, 10))
}

func (c *Client) GetUserByName(ctx context.Context, name string) (*User, error) {
	return c.get(ctx, "/api/users/name/"+url.PathEscape(name))
}

func (c *Client) get(ctx context.Context, path string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build identity request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		return nil, fmt.Errorf("identity endpoint %s returned status %d", path, resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode identity user: %w", err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("identity endpoint %s returned no user id", path)
	}
	return &user, nil
}
