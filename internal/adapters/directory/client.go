package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cadencehq/cadence/internal/domain/entry"
	"github.com/cadencehq/cadence/pkg/metrics"
)

const defaultRequestTimeout = 10 * time.Second

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithCache sizes the lookup cache.
func WithCache(maxSize int, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newTTLCache(maxSize, ttl)
	}
}

// WithHTTPClient overrides the HTTP client, e.g. for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// Client resolves people against an upstream user-directory HTTP API.
// It is an explicitly constructed, injected client: no process-wide
// singleton, no unbounded memoization.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *ttlCache
}

// NewClient builds a directory client for the API at baseURL.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultRequestTimeout},
		cache:   newTTLCache(defaultCacheSize, defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type userRecord struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	ManagerEmail string `json:"manager_email"`
}

type usersResponse struct {
	Results []userRecord `json:"results"`
}

func (c *Client) fetch(ctx context.Context, query url.Values) ([]Person, error) {
	u := c.baseURL + "/v1/users"
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}
	req.Header.Set("Authorization", "Key "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: directory returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var body usersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode directory response: %w", err)
	}

	people := make([]Person, 0, len(body.Results))
	for _, r := range body.Results {
		people = append(people, normalize(Person{
			Username:     r.Username,
			Email:        r.Email,
			FirstName:    r.FirstName,
			ManagerEmail: r.ManagerEmail,
		}))
	}
	return people, nil
}

// Lookup resolves a username, serving repeats from the TTL cache.
func (c *Client) Lookup(ctx context.Context, username string) (Person, error) {
	if p, ok := c.cache.get("u:" + username); ok {
		metrics.RecordDirectoryCacheHit()
		return p, nil
	}
	metrics.RecordDirectoryCacheMiss()

	people, err := c.fetch(ctx, url.Values{"prefix": {username}})
	if err != nil {
		return Person{}, err
	}
	for _, p := range people {
		if p.Username == username {
			c.cache.put("u:"+username, p)
			return p, nil
		}
	}
	return Person{}, ErrNotFound
}

// ByEmail resolves an email address, serving repeats from the TTL cache.
func (c *Client) ByEmail(ctx context.Context, email string) (Person, error) {
	email = entry.NormalizeIdentity(email)
	if p, ok := c.cache.get("e:" + email); ok {
		metrics.RecordDirectoryCacheHit()
		return p, nil
	}
	metrics.RecordDirectoryCacheMiss()

	people, err := c.fetch(ctx, nil)
	if err != nil {
		return Person{}, err
	}
	for _, p := range people {
		if p.Email == email {
			c.cache.put("e:"+email, p)
			return p, nil
		}
	}
	return Person{}, ErrNotFound
}

// Reports returns the manager's direct reports.
func (c *Client) Reports(ctx context.Context, managerEmail string) ([]Person, error) {
	managerEmail = entry.NormalizeIdentity(managerEmail)
	people, err := c.fetch(ctx, nil)
	if err != nil {
		return nil, err
	}
	var reports []Person
	for _, p := range people {
		if p.ManagerEmail == managerEmail {
			reports = append(reports, p)
		}
	}
	return reports, nil
}

// Managers returns every person with at least one direct report.
func (c *Client) Managers(ctx context.Context) ([]Person, error) {
	people, err := c.fetch(ctx, nil)
	if err != nil {
		return nil, err
	}
	managed := make(map[string]bool)
	for _, p := range people {
		if p.ManagerEmail != "" {
			managed[p.ManagerEmail] = true
		}
	}
	var managers []Person
	for _, p := range people {
		if managed[p.Email] {
			managers = append(managers, p)
		}
	}
	return managers, nil
}
