package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
)

// NewCandidate is the referral submission form. ResumePath optionally
// points at a local PDF to attach.
type NewCandidate struct {
	Name       string
	Email      string
	Phone      string
	JobTitle   string
	ResumePath string
}

// SetFilters records the active search/filter criteria and refetches the
// list with them applied.
func (c *Client) SetFilters(search, status string) error {
	c.mu.Lock()
	c.candidates.Search = search
	c.candidates.StatusFilter = status
	c.mu.Unlock()
	return c.FetchCandidates()
}

// FetchCandidates reloads the list using the active criteria.
func (c *Client) FetchCandidates() error {
	c.mu.Lock()
	c.candidates.Loading = true
	c.candidates.Error = ""
	query := url.Values{}
	if c.candidates.Search != "" {
		query.Set("search", c.candidates.Search)
	}
	if c.candidates.StatusFilter != "" {
		query.Set("status", c.candidates.StatusFilter)
	}
	c.mu.Unlock()

	path := "/api/candidates"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var items []Candidate
	if err := c.doJSON(http.MethodGet, path, nil, &items); err != nil {
		c.rejectCandidates(err)
		return err
	}

	c.mu.Lock()
	c.candidates.Items = items
	c.candidates.Loading = false
	c.mu.Unlock()
	return nil
}

// Create submits a referral and refetches the list on success. Mutations
// are confirmed round-trips, never applied optimistically.
func (c *Client) Create(form NewCandidate) (*Candidate, error) {
	c.mu.Lock()
	c.candidates.Loading = true
	c.candidates.Error = ""
	c.mu.Unlock()

	body, contentType, err := encodeCandidateForm(form)
	if err != nil {
		c.rejectCandidates(err)
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/candidates", body)
	if err != nil {
		c.rejectCandidates(err)
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var created Candidate
	if err := c.send(req, &created); err != nil {
		c.rejectCandidates(err)
		return nil, err
	}

	c.mu.Lock()
	c.candidates.Loading = false
	c.mu.Unlock()

	if err := c.FetchCandidates(); err != nil {
		return &created, err
	}
	return &created, nil
}

// UpdateStatus moves a candidate to a new stage and refetches the list.
func (c *Client) UpdateStatus(id uint, status string) (*Candidate, error) {
	var updated Candidate
	path := fmt.Sprintf("/api/candidates/%d/status", id)
	if err := c.doJSON(http.MethodPut, path, map[string]string{"status": status}, &updated); err != nil {
		c.rejectCandidates(err)
		return nil, err
	}
	if err := c.FetchCandidates(); err != nil {
		return &updated, err
	}
	return &updated, nil
}

// Delete removes a candidate and refetches the list.
func (c *Client) Delete(id uint) error {
	path := fmt.Sprintf("/api/candidates/%d", id)
	if err := c.doJSON(http.MethodDelete, path, nil, nil); err != nil {
		c.rejectCandidates(err)
		return err
	}
	return c.FetchCandidates()
}

// FetchStats reloads the aggregate dashboard numbers.
func (c *Client) FetchStats() error {
	c.mu.Lock()
	c.candidates.Loading = true
	c.candidates.Error = ""
	c.mu.Unlock()

	var stats Stats
	if err := c.doJSON(http.MethodGet, "/api/candidates/stats", nil, &stats); err != nil {
		c.rejectCandidates(err)
		return err
	}

	c.mu.Lock()
	c.candidates.Stats = &stats
	c.candidates.Loading = false
	c.mu.Unlock()
	return nil
}

func (c *Client) rejectCandidates(err error) {
	c.mu.Lock()
	c.candidates.Loading = false
	c.candidates.Error = err.Error()
	c.mu.Unlock()
}

func encodeCandidateForm(form NewCandidate) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":     form.Name,
		"email":    form.Email,
		"phone":    form.Phone,
		"jobTitle": form.JobTitle,
	}
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}

	if form.ResumePath != "" {
		file, err := os.Open(form.ResumePath)
		if err != nil {
			return nil, "", err
		}
		defer file.Close()

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename="%s"`, filepath.Base(form.ResumePath)))
		header.Set("Content-Type", "application/pdf")
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
