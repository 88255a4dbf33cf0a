// Package client is the typed contract layer over the zoezi REST API: a
// descriptor table binding every operation to its method, path template and
// per-status response schema, a cache-aware transport for reads, and explicit
// cache invalidation for mutations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const maxBodySize = 4 << 20 // 4MiB

type (
	Options struct {
		// BaseURL is the server origin, e.g. "http://localhost:8000".
		BaseURL string
		// Token is the ambient session credential attached to every request.
		Token string
		// HTTPClient overrides the transport; timeouts live there.
		HTTPClient *http.Client
		// Store overrides the read cache; a fresh one is created when nil.
		Store *Store
	}

	Client struct {
		base  string
		token string
		http  *http.Client
		store *Store
	}
)

func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	store := opts.Store
	if store == nil {
		store = NewStore()
	}
	return &Client{
		base:  opts.BaseURL,
		token: opts.Token,
		http:  httpClient,
		store: store,
	}
}

// SetToken swaps the session credential and clears the cache: cached reads
// are per-identity.
func (c *Client) SetToken(token string) {
	c.token = token
	c.store.Clear()
}

func (c *Client) Store() *Store { return c.store }

// Typed resource surfaces.
func (c *Client) Problems() ProblemsClient       { return ProblemsClient{c} }
func (c *Client) Tutorials() TutorialsClient     { return TutorialsClient{c} }
func (c *Client) Discussions() DiscussionsClient { return DiscussionsClient{c} }
func (c *Client) Leaderboard() LeaderboardClient { return LeaderboardClient{c} }
func (c *Client) Badges() BadgesClient           { return BadgesClient{c} }
func (c *Client) Hackathons() HackathonsClient   { return HackathonsClient{c} }
func (c *Client) Users() UsersClient             { return UsersClient{c} }
func (c *Client) Auth() AuthClient               { return AuthClient{c} }

// get performs a cache-backed read. It reports found=false when a soft-auth
// op got a 401 or a nil-on-not-found op got a 404.
func (c *Client) get(ctx context.Context, opName string, params Params, query url.Values, out interface{}) (found bool, err error) {
	d := Lookup(opName)
	if !d.IsRead() {
		panic("client: " + opName + " is not a read operation")
	}

	key := appendQuery(BuildPath(d.Path, params), query)
	raw, err := c.store.Get(ctx, d.Path, key, func(ctx context.Context) (json.RawMessage, error) {
		return c.fetch(ctx, d, key)
	})
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if out != nil {
		if err = json.Unmarshal(raw, out); err != nil {
			return false, &SchemaMismatchError{Op: d.Name, Status: http.StatusOK, Err: err}
		}
	}
	return true, nil
}

// fetch issues the underlying GET and validates the body against the schema
// declared for the response status. Only validated bodies reach the cache.
func (c *Client) fetch(ctx context.Context, d Descriptor, keyPath string) (json.RawMessage, error) {
	resp, body, err := c.roundTrip(ctx, d, http.MethodGet, keyPath, nil)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized && d.SoftAuth:
		return nil, nil // not logged in: a valid empty outcome
	case resp.StatusCode == http.StatusNotFound && d.NilOnNotFound:
		return nil, nil // does not exist: a valid nil outcome
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err = c.validate(d, resp.StatusCode, body); err != nil {
			return nil, err
		}
		return body, nil
	default:
		return nil, c.apiError(d, resp.StatusCode, keyPath, body)
	}
}

// do performs a one-shot mutation: validates the input against the
// descriptor's input schema, issues the request, validates the 2xx response
// and then invalidates the read keys the descriptor declares as dependent.
// No retries are performed; mutations are not idempotent at this layer.
func (c *Client) do(ctx context.Context, opName string, params Params, input, out interface{}) error {
	d := Lookup(opName)
	if d.IsRead() {
		panic("client: " + opName + " is not a mutation")
	}

	var payload []byte
	if input != nil {
		var err error
		if payload, err = json.Marshal(input); err != nil {
			return errors.Wrapf(err, "%s: encoding input", d.Name)
		}
		if d.Input != nil {
			if err = validateJSON(d.Input, payload); err != nil {
				return &ValidationError{Op: d.Name, Message: err.Error()}
			}
		}
	}

	path := BuildPath(d.Path, params)
	resp, body, err := c.roundTrip(ctx, d, d.Method, path, payload)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(d, resp.StatusCode, path, body)
	}
	if err = c.validate(d, resp.StatusCode, body); err != nil {
		return err
	}
	if out != nil {
		if err = json.Unmarshal(body, out); err != nil {
			return &SchemaMismatchError{Op: d.Name, Status: resp.StatusCode, Err: err}
		}
	}

	c.store.Invalidate(d.Invalidates...)
	return nil
}

func (c *Client) roundTrip(ctx context.Context, d Descriptor, method, path string, payload []byte) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, bodyReader)
	if err != nil {
		return nil, nil, &TransportError{Op: d.Name, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &TransportError{Op: d.Name, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, nil, &TransportError{Op: d.Name, Err: err}
	}
	return resp, body, nil
}

// validate asserts the body against the schema declared for status. A 2xx
// response with no declared schema is itself contract drift.
func (c *Client) validate(d Descriptor, status int, body []byte) error {
	schema, ok := d.Responses[status]
	if !ok {
		return &SchemaMismatchError{Op: d.Name, Status: status, Err: errors.Errorf("no schema declared for status %d", status)}
	}
	if err := validateJSON(schema, body); err != nil {
		return &SchemaMismatchError{Op: d.Name, Status: status, Err: err}
	}
	return nil
}

// apiError maps a non-2xx response to the error taxonomy.
func (c *Client) apiError(d Descriptor, status int, path string, body []byte) error {
	switch status {
	case http.StatusNotFound:
		return &NotFoundError{Op: d.Name, Path: path}
	case http.StatusUnauthorized:
		return &UnauthenticatedError{Op: d.Name}
	}

	msg, field := parseErrorBody(body)
	if status >= 400 && status < 500 && msg != "" {
		return &ValidationError{Op: d.Name, Message: msg, Field: field}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Op: d.Name, Status: status, Message: msg}
}

// parseErrorBody understands the server's two error shapes:
// {"error": "msg"} and a flat {field: msg, ...} map for validation errors.
func parseErrorBody(body []byte) (msg, field string) {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		return "", ""
	}

	if v, ok := payload["error"]; ok {
		switch e := v.(type) {
		case string:
			return e, ""
		case map[string]interface{}:
			payload = e
		}
	}

	fields := make([]string, 0, len(payload))
	for k := range payload {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	for _, f := range fields {
		if s, ok := payload[f].(string); ok {
			return s, f
		}
	}
	return "", ""
}

func validateJSON(schema *jsonschema.Schema, body []byte) error {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return err
	}
	return schema.Validate(v)
}
