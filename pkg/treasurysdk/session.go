package treasurysdk

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

// ErrSessionExpired is returned before sending a request with a token the
// session already knows to be expired. Log in again to continue.
var ErrSessionExpired = errors.New("treasurysdk: access token expired")

// Session is an authenticated connection to the treasury service. It is safe
// for concurrent use.
type Session struct {
	client *Client

	mu          sync.RWMutex
	accessToken string
	userID      string
	expiresAt   time.Time
}

func newSession(c *Client, tok *TokenResponse) *Session {
	s := &Session{client: c, accessToken: tok.AccessToken, userID: tok.UserID}
	if tok.ExpiresIn > 0 {
		s.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}
	return s
}

// UserID is the account the session was opened for, when known.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// AccessToken returns the raw bearer token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return "", ErrSessionExpired
	}
	return s.accessToken, nil
}

// Me returns the caller's account, roles and resolved permissions.
func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	var out MeResponse
	if err := s.get(ctx, "/v1/me", &out); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.userID = out.User.ID
	s.mu.Unlock()
	return &out, nil
}

func (s *Session) get(ctx context.Context, path string, target any) error {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, http.StatusOK)
}

func (s *Session) send(ctx context.Context, method, path string, payload, target any, expectedStatus int) error {
	resp, err := s.doAuthRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expectedStatus)
}

// changed sends a request answered with a ChangedResponse.
func (s *Session) changed(ctx context.Context, method, path string, payload any) (bool, error) {
	var out ChangedResponse
	if err := s.send(ctx, method, path, payload, &out, http.StatusOK); err != nil {
		return false, err
	}
	return out.Changed, nil
}

// created sends a request answered with 201 and a CreatedResponse.
func (s *Session) created(ctx context.Context, path string, payload any) (string, error) {
	var out CreatedResponse
	if err := s.send(ctx, http.MethodPost, path, payload, &out, http.StatusCreated); err != nil {
		return "", err
	}
	return out.ID, nil
}
