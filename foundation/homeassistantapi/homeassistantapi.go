// Package homeassistantapi provides an authenticated client for the Home
// Assistant REST API: read entity states and invoke hub services.
package homeassistantapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/jroedel/hatemp"
)

// the token ends up in the Authorization header, so it must be a valid header value
var tokenRegex = regexp.MustCompile(`^[[:print:]]+$`)

const apiCallTimeout = time.Second * 10
const bodyLengthLimit = 1_000_000

// Client is immutable once constructed; every call it services uses the same
// base url and bearer credential and performs exactly one round trip.
type Client struct {
	baseUrl    string
	authHeader string
}

// New builds a client for the hub at baseUrl, e.g.
// "http://homeassistant.local:8123". A trailing slash is optional; the "/api"
// root segment is appended here.
func New(baseUrl string, token string) (*Client, error) {
	if token == "" || !tokenRegex.MatchString(token) {
		return nil, hatemp.ErrClientConstruction.With("token is not a valid header value")
	}
	u, err := url.Parse(baseUrl)
	if err != nil {
		return nil, hatemp.ErrClientConstruction.Withf("base url %q: %s", baseUrl, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, hatemp.ErrClientConstruction.Withf("base url %q must include a scheme and host", baseUrl)
	}
	return &Client{
		baseUrl:    strings.TrimRight(baseUrl, "/") + "/api",
		authHeader: "Bearer " + token,
	}, nil
}

// GetState fetches the current state of one entity.
func (cln *Client) GetState(ctx context.Context, entityId string) (EntityState, error) {
	var state EntityState
	if err := cln.do(ctx, http.MethodGet, "/states/"+url.PathEscape(entityId), nil, &state); err != nil {
		return EntityState{}, err
	}
	return state, nil
}

// GetStates fetches the states of all entities known to the hub.
func (cln *Client) GetStates(ctx context.Context) ([]EntityState, error) {
	var states []EntityState
	if err := cln.do(ctx, http.MethodGet, "/states", nil, &states); err != nil {
		return nil, err
	}
	return states, nil
}

// CallService invokes a hub service, e.g. domain "switch", service "turn_on".
// A nil payload sends an empty JSON object. The response body is discarded.
func (cln *Client) CallService(ctx context.Context, domain string, service string, payload map[string]any) error {
	if payload == nil {
		payload = map[string]any{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return hatemp.ErrTransport.Withf("encode payload: %s", err)
	}
	path := "/services/" + url.PathEscape(domain) + "/" + url.PathEscape(service)
	return cln.do(ctx, http.MethodPost, path, bytes.NewReader(body), nil)
}

func (cln *Client) do(ctx context.Context, method string, path string, payload io.Reader, out any) error {
	ctx, cancel := context.WithTimeout(ctx, apiCallTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, method, cln.baseUrl+path, payload)
	if err != nil {
		return hatemp.ErrTransport.Withf("create %s request: %s", method, err)
	}
	req.Header.Set("Authorization", cln.authHeader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return hatemp.ErrTransport.Withf("%s %s: %s", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		//read the body even on error, it's the only diagnostic the hub gives us
		body, _ := io.ReadAll(io.LimitReader(resp.Body, bodyLengthLimit))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return hatemp.ErrTransport.Withf("decode response from %s: %s", path, err)
	}
	return nil
}

// StatusError reports a non-2xx response from the hub. It unwraps to
// hatemp.ErrHTTPStatus so callers can classify it with errors.Is and still
// reach the status code and raw body through errors.As.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %d: %s", hatemp.ErrHTTPStatus, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return hatemp.ErrHTTPStatus
}
