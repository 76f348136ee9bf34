// Package client is a Go SDK for the referral tracker API. It mirrors the
// server resources in two independent client-side states, auth and
// candidates, each with an observable async lifecycle: pending while a
// request is in flight, fulfilled on success (error cleared), rejected on
// failure (error populated, stale data retained).
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

type User struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Candidate struct {
	ID         uint      `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	JobTitle   string    `json:"job_title"`
	Status     string    `json:"status"`
	ResumeURL  *string   `json:"resume_url"`
	ReferredBy uint      `json:"referred_by"`
}

type Stats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

// AuthState mirrors the server session: token, user and whether both are
// present. Persisted to the session file so a restart can reconstruct it.
type AuthState struct {
	User          *User
	Token         string
	Authenticated bool
	Loading       bool
	Error         string
}

// CandidatesState mirrors the candidate list and stats plus the active
// search/filter criteria.
type CandidatesState struct {
	Items        []Candidate
	Stats        *Stats
	Search       string
	StatusFilter string
	Loading      bool
	Error        string
}

type Client struct {
	baseURL     string
	httpClient  *http.Client
	sessionPath string

	mu         sync.Mutex
	auth       AuthState
	candidates CandidatesState
}

// New builds a client for the API at baseURL. sessionPath is where the
// session is persisted; empty disables persistence.
func New(baseURL, sessionPath string) *Client {
	return &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		sessionPath: sessionPath,
	}
}

// Auth returns a snapshot of the auth state.
func (c *Client) Auth() AuthState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auth
}

// Candidates returns a snapshot of the candidates state.
func (c *Client) Candidates() CandidatesState {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.candidates
	state.Items = append([]Candidate(nil), c.candidates.Items...)
	return state
}

// APIError is a non-2xx response decoded into the server's error shape.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Message string `json:"message"`
	Err     string `json:"error"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return apiErr
	}
	switch {
	case body.Message != "":
		apiErr.Message = body.Message
	case body.Err != "":
		apiErr.Message = body.Err
	case len(body.Errors) > 0:
		apiErr.Message = body.Errors[0].Field + ": " + body.Errors[0].Message
	}
	return apiErr
}

// doJSON sends a JSON request (body may be nil) and decodes a 2xx response
// into out (which may be nil).
func (c *Client) doJSON(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	c.mu.Lock()
	if c.auth.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.auth.Token)
	}
	c.mu.Unlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
