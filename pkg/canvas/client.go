package canvas

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PlannerItemsPath is the planner feed endpoint, resolved against the base URL.
const PlannerItemsPath = "/api/v1/planner/items"

const dateLayout = "2006-01-02"

// HTTPError carries status/body for non-2xx responses. URL never contains
// the access token.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("canvas: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, snippet(e.Body, 300))
}

// Client talks to one Canvas instance with a pre-obtained access token.
type Client struct {
	BaseURL *url.URL
	Token   string
	HTTP    *http.Client
}

// New validates baseURL and returns a client. The HTTP client carries no
// timeout; cancel ctx to abandon a request.
func New(baseURL, token string) (*Client, error) {
	u, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("canvas: access token required")
	}
	return &Client{BaseURL: u, Token: token, HTTP: &http.Client{}}, nil
}

// ParseBaseURL accepts an absolute http(s) URL.
func ParseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("canvas: base url required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("canvas: invalid base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("canvas: base url %q must be an absolute http(s) url", raw)
	}
	return u, nil
}

// PlannerItemsURL builds the feed URL for items starting on start's date.
func (c *Client) PlannerItemsURL(start time.Time) *url.URL {
	u := c.BaseURL.ResolveReference(&url.URL{Path: PlannerItemsPath})
	q := u.Query()
	q.Set("access_token", c.Token)
	q.Set("start_date", start.Format(dateLayout))
	u.RawQuery = q.Encode()
	return u
}

// PlannerItems fetches the raw planner feed body.
func (c *Client) PlannerItems(ctx context.Context, start time.Time) ([]byte, error) {
	u := c.PlannerItemsURL(start)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("canvas: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("canvas: get %s: %w", c.redact(u), c.scrub(err))
	}
	body, err := readAndClose(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("canvas: read %s: %w", c.redact(u), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			Method:     req.Method,
			URL:        c.redact(u),
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}
	return body, nil
}

func (c *Client) redact(u *url.URL) string {
	r := *u
	q := r.Query()
	if q.Has("access_token") {
		q.Set("access_token", "REDACTED")
	}
	r.RawQuery = q.Encode()
	return r.String()
}

// scrub strips the token from transport errors, which embed the full URL.
func (c *Client) scrub(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

func readAndClose(rc io.ReadCloser) ([]byte, error) {
	defer rc.Close()
	return io.ReadAll(rc)
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
