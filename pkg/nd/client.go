// Package nd implements the HTTP transport towards a Cisco Nexus Dashboard
// controller: session handling, the request envelope and the error taxonomy.
package nd

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cisco-open/nd-insights-client/pkg/logging"
	"github.com/cisco-open/nd-insights-client/pkg/metrics"
)

const (
	loginPath = "/login"

	// sessionRefreshMargin is how long before token expiry we proactively re-login
	sessionRefreshMargin = 2 * time.Minute

	// fallbackSessionLifetime is assumed when the controller token carries no exp claim
	fallbackSessionLifetime = 20 * time.Minute
)

// Message is a single entry of the controller's response message list
type Message struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Response is the envelope the controller wraps every reply in. Read endpoints
// populate only Value, mutating endpoints additionally report Success.
type Response struct {
	Success  bool `json:"success"`
	Value    struct {
		Data            json.RawMessage `json:"data"`
		DataSummary     json.RawMessage `json:"dataSummary,omitempty"`
		TotalItemsCount int             `json:"totalItemsCount,omitempty"`
	} `json:"value"`
	Messages []Message `json:"messages,omitempty"`
}

// Data returns the payload of the envelope
func (r *Response) Data() json.RawMessage {
	return r.Value.Data
}

// ErrorMessages collects the ERROR severity messages of the envelope
func (r *Response) ErrorMessages() []string {
	var msgs []string
	for _, m := range r.Messages {
		if strings.EqualFold(m.Severity, "error") {
			msgs = append(msgs, m.Message)
		}
	}
	return msgs
}

type loginRequest struct {
	UserName   string `json:"userName"`
	UserPasswd string `json:"userPasswd"`
	Domain     string `json:"domain"`
}

type loginResponse struct {
	JwtToken string `json:"jwttoken"`
	UserName string `json:"username"`
}

// Client is a session-holding HTTP client for a Nexus Dashboard controller
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	cfg        *Config

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

// New creates a client for the controller described by the config. No request
// is sent until the first operation needs a session.
func New(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid controller configuration: %w", err)
	}

	base, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("could not parse controller host '%s': %w", cfg.Host, err)
	}
	if base.Scheme == "" {
		base.Scheme = "https"
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- lab controllers commonly run self-signed certs
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout(),
		},
		cfg: cfg,
	}, nil
}

// Login opens a session with the controller and stores the returned token.
// It is called automatically by Request when no valid session exists.
func (c *Client) Login(ctx context.Context) error {
	body, err := json.Marshal(loginRequest{
		UserName:   c.cfg.Username,
		UserPasswd: c.cfg.Password,
		Domain:     c.cfg.LoginDomain,
	})
	if err != nil {
		return fmt.Errorf("could not marshal login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.JoinPath(loginPath).String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RequestErr{Err: err}
	}
	defer resp.Body.Close()

	metrics.Inc(metrics.APIRequests, http.MethodPost, strconv.Itoa(resp.StatusCode))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return AuthErr{Err: fmt.Errorf("controller rejected the credentials with status %d", resp.StatusCode)}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return APIErr{StatusCode: resp.StatusCode}
	}

	login := loginResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return fmt.Errorf("could not decode login response: %w", err)
	}
	if login.JwtToken == "" {
		return AuthErr{Err: fmt.Errorf("login response did not contain a token")}
	}

	c.mu.Lock()
	c.token = login.JwtToken
	c.tokenExp = tokenExpiry(login.JwtToken)
	c.mu.Unlock()

	logging.Debugf("opened session with %s as %s, token valid until %s", c.baseURL.Host, c.cfg.Username, c.tokenExp.Format(time.RFC3339))
	return nil
}

// tokenExpiry extracts the exp claim of the session token. The token was
// signed by the controller, we only need the expiry, so the signature is not
// verified here.
func tokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil || claims.ExpiresAt == nil {
		return time.Now().Add(fallbackSessionLifetime)
	}
	return claims.ExpiresAt.Time
}

// ensureSession opens or refreshes the session when missing or close to expiry
func (c *Client) ensureSession(ctx context.Context) error {
	c.mu.Lock()
	valid := c.token != "" && time.Now().Before(c.tokenExp.Add(-sessionRefreshMargin))
	c.mu.Unlock()
	if valid {
		return nil
	}
	return c.Login(ctx)
}

// Request sends a JSON request to the controller and decodes the response
// envelope. The path is taken relative to the controller root, query may be
// nil, body is marshalled to JSON when non-nil.
func (c *Client) Request(ctx context.Context, method string, path string, query url.Values, body interface{}) (*Response, error) {
	if err := c.ensureSession(ctx); err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request payload: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req)
}

// Upload sends a multipart request carrying a change file plus a JSON 'data'
// part, the format the pre-change analysis file endpoint expects
func (c *Client) Upload(ctx context.Context, path string, filePath string, data interface{}) (*Response, error) {
	if err := c.ensureSession(ctx); err != nil {
		return nil, err
	}

	fileContent, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("could not read upload file '%s': %w", filePath, err)
	}

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("could not create file part: %w", err)
	}
	if _, err := part.Write(fileContent); err != nil {
		return nil, fmt.Errorf("could not write file part: %w", err)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("could not marshal data part: %w", err)
	}
	if err := writer.WriteField("data", string(payload)); err != nil {
		return nil, fmt.Errorf("could not write data part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("could not finalize multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req)
}

func (c *Client) newRequest(ctx context.Context, method string, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("could not build request for %s: %w", path, err)
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	req.AddCookie(&http.Cookie{Name: "AuthCookie", Value: token})
	req.Header.Set("X-Request-Id", uuid.NewString())

	return req, nil
}

func (c *Client) do(req *http.Request) (*Response, error) {
	logging.Debugf("%s %s", req.Method, req.URL.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, RequestErr{Err: err}
	}
	defer resp.Body.Close()

	metrics.Inc(metrics.APIRequests, req.Method, strconv.Itoa(resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, RequestErr{Err: fmt.Errorf("could not read response body: %w", err)}
	}

	envelope := &Response{}
	if len(raw) > 0 {
		// some error replies are not valid envelopes, keep the status based error in that case
		_ = json.Unmarshal(raw, envelope)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, AuthErr{Err: fmt.Errorf("session was rejected with status %d", resp.StatusCode)}
	case resp.StatusCode == http.StatusNotFound:
		return nil, NotFoundErr{Err: fmt.Errorf("%s %s returned 404", req.Method, req.URL.Path)}
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, APIErr{StatusCode: resp.StatusCode, Messages: envelope.ErrorMessages()}
	}

	return envelope, nil
}
