package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
)

type authResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type meResponse struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}

// session is the durable form of the auth state written to the session
// file, the SDK's equivalent of browser local storage.
type session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Register creates an account and signs the session in.
func (c *Client) Register(name, email, password string) error {
	return c.authenticate("/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// Login signs the session in with existing credentials.
func (c *Client) Login(email, password string) error {
	return c.authenticate("/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) authenticate(path string, body map[string]string) error {
	c.beginAuth()

	var resp authResponse
	if err := c.doJSON(http.MethodPost, path, body, &resp); err != nil {
		c.rejectAuth(err)
		return err
	}

	c.mu.Lock()
	c.auth = AuthState{
		User:          &resp.User,
		Token:         resp.Token,
		Authenticated: true,
	}
	c.mu.Unlock()

	c.saveSession()
	return nil
}

// Logout tells the server (which keeps no token state) and clears the
// local session either way.
func (c *Client) Logout() error {
	err := c.doJSON(http.MethodPost, "/api/auth/logout", nil, nil)

	c.mu.Lock()
	c.auth = AuthState{}
	c.mu.Unlock()
	c.clearSession()

	return err
}

// Restore reloads a persisted session and confirms it with /api/auth/me.
// An invalid or expired token clears the stored session.
func (c *Client) Restore() error {
	if c.sessionPath == "" {
		return nil
	}

	data, err := os.ReadFile(c.sessionPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var sess session
	if err := json.Unmarshal(data, &sess); err != nil {
		c.clearSession()
		return nil
	}

	c.mu.Lock()
	c.auth = AuthState{User: &sess.User, Token: sess.Token, Authenticated: true, Loading: true}
	c.mu.Unlock()

	var resp meResponse
	if err := c.doJSON(http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		c.mu.Lock()
		c.auth = AuthState{}
		c.mu.Unlock()
		c.clearSession()
		return err
	}

	c.mu.Lock()
	c.auth = AuthState{User: &resp.User, Token: sess.Token, Authenticated: true}
	c.mu.Unlock()
	return nil
}

func (c *Client) beginAuth() {
	c.mu.Lock()
	c.auth.Loading = true
	c.auth.Error = ""
	c.mu.Unlock()
}

func (c *Client) rejectAuth(err error) {
	c.mu.Lock()
	c.auth = AuthState{Error: err.Error()}
	c.mu.Unlock()
	c.clearSession()
}

func (c *Client) saveSession() {
	if c.sessionPath == "" {
		return
	}
	c.mu.Lock()
	sess := session{Token: c.auth.Token}
	if c.auth.User != nil {
		sess.User = *c.auth.User
	}
	c.mu.Unlock()

	data, err := json.Marshal(sess)
	if err != nil {
		return
	}
	_ = os.WriteFile(c.sessionPath, data, 0o600)
}

func (c *Client) clearSession() {
	if c.sessionPath != "" {
		_ = os.Remove(c.sessionPath)
	}
}
