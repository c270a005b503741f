// Package cbr is a minimal Carbon Black Response client covering the
// single capability the survey needs: paged process search.
package cbr

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/threatops/surveyor/internal/model"
)

const (
	defaultPageSize    = 100
	defaultHTTPTimeout = 5 * time.Minute
)

// Client talks to a Carbon Black Response server's process search API.
// It implements model.ProcessSearcher.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client

	// PageSize is the rows-per-request used while paging. Zero means
	// the default.
	PageSize int
}

// NewClient builds a client from a credentials profile.
func NewClient(p Profile) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !p.SSLVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &Client{
		baseURL: strings.TrimRight(p.URL, "/"),
		token:   p.Token,
		httpc: &http.Client{
			Timeout:   defaultHTTPTimeout,
			Transport: transport,
		},
	}
}

type searchResponse struct {
	TotalResults int             `json:"total_results"`
	Results      []processResult `json:"results"`
}

type processResult struct {
	Hostname string `json:"hostname"`
	Username string `json:"username"`
	Path     string `json:"path"`
	Cmdline  string `json:"cmdline"`
}

// SearchProcesses pages through /api/v1/process for filter and calls fn
// per record. Cancellation is checked between records and surfaces as
// the context's error so the caller can keep the prefix it consumed.
func (c *Client) SearchProcesses(ctx context.Context, filter string, fn func(model.ProcessRecord) error) error {
	start := 0
	for {
		page, err := c.fetchPage(ctx, filter, start)
		if err != nil {
			return err
		}
		for _, r := range page.Results {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec := model.ProcessRecord{
				Hostname: r.Hostname,
				Username: r.Username,
				Path:     r.Path,
				Cmdline:  r.Cmdline,
			}
			if err := fn(rec); err != nil {
				return err
			}
		}

		start += len(page.Results)
		if len(page.Results) == 0 || start >= page.TotalResults {
			return nil
		}
	}
}

func (c *Client) pageSize() int {
	if c.PageSize > 0 {
		return c.PageSize
	}
	return defaultPageSize
}

func (c *Client) fetchPage(ctx context.Context, filter string, start int) (*searchResponse, error) {
	q := url.Values{}
	q.Set("q", filter)
	q.Set("start", strconv.Itoa(start))
	q.Set("rows", strconv.Itoa(c.pageSize()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/process?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("cbr: build request: %w", err)
	}
	req.Header.Set("X-Auth-Token", c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		// A cancelled context surfaces as a wrapped url.Error; report
		// the bare context error so callers can tell it apart.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("cbr: search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("cbr: search returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var page searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("cbr: decode response: %w", err)
	}
	return &page, nil
}
