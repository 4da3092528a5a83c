package treasurysdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the chapter treasury service. It provides the
// unauthenticated operations and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a treasury client with a 10 second request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a pending account. It cannot sign in until approved.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*CreatedResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/register", req, nil)
	if err != nil {
		return nil, err
	}

	var created CreatedResponse
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return nil, err
	}
	return &created, nil
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		return nil, err
	}

	var tok TokenResponse
	if err := decodeJSON(resp, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	return &tok, nil
}

// AuthenticateWithPassword logs in and returns a Session bound to the token.
func (c *Client) AuthenticateWithPassword(ctx context.Context, email, password string) (*Session, error) {
	tok, err := c.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return newSession(c, tok), nil
}

// NewSession wraps a token response, such as the one returned by Bootstrap.
// The session knows its user id without a round trip to /v1/me.
func (c *Client) NewSession(tok *TokenResponse) *Session {
	return newSession(c, tok)
}

// NewSessionFromToken wraps an access token obtained elsewhere. UserID is
// empty until Me has been called.
func (c *Client) NewSessionFromToken(accessToken string) *Session {
	return &Session{client: c, accessToken: accessToken}
}

// Bootstrap creates the first account on an empty service. The token must
// match the server's BOOTSTRAP_TOKEN.
func (c *Client) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*BootstrapResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/bootstrap", req, map[string]string{
		"X-Bootstrap-Token": token,
	})
	if err != nil {
		return nil, err
	}

	var out BootstrapResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}
