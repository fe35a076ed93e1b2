package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dkozyrev/jobtrack/internal/client/models"
	"github.com/dkozyrev/jobtrack/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// refreshLeeway renews the access token slightly before its real expiry so
// an in-flight request does not race the deadline.
const refreshLeeway = 30 * time.Second

// HTTPClient talks JSON over HTTP to the remote API.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	tokens  TokenPair

	// now is a test seam for expiry checks.
	now func() time.Time
}

// NewHTTPClient returns a client for the API at baseURL (scheme and host,
// no trailing slash).
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 15 * time.Second},
		now:     time.Now,
	}
}

func (c *HTTPClient) SetTokens(t TokenPair) { c.tokens = t }
func (c *HTTPClient) Tokens() TokenPair     { return c.tokens }

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type applicationPayload struct {
	ID              string `json:"id"`
	Company         string `json:"company"`
	Role            string `json:"role"`
	Status          string `json:"status"`
	Link            string `json:"link"`
	Notes           string `json:"notes"`
	AppliedAtMillis int64  `json:"applied_at_ms"`
	UpdatedAtMillis int64  `json:"updated_at_ms"`
}

type syncRequest struct {
	Cursor       int64                `json:"cursor"`
	Applications []applicationPayload `json:"applications"`
}

type syncResponse struct {
	Cursor       int64                `json:"cursor"`
	Applications []applicationPayload `json:"applications"`
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/register", false,
		credentialsRequest{Username: username, Password: password}, nil)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (TokenPair, error) {
	var resp tokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/login", false,
		credentialsRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return TokenPair{}, err
	}

	c.tokens = TokenPair{Access: resp.AccessToken, Refresh: resp.RefreshToken}
	return c.tokens, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/ping", false, nil, nil)
}

func (c *HTTPClient) Sync(ctx context.Context, changed []*models.Application, cursor int64) ([]*models.Application, int64, error) {
	req := syncRequest{Cursor: cursor, Applications: make([]applicationPayload, 0, len(changed))}
	for _, app := range changed {
		req.Applications = append(req.Applications, toPayload(app))
	}

	var resp syncResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/applications/sync", true, req, &resp); err != nil {
		return nil, 0, err
	}

	result := make([]*models.Application, 0, len(resp.Applications))
	for _, p := range resp.Applications {
		result = append(result, fromPayload(p))
	}
	return result, resp.Cursor, nil
}

// ensureFreshAccess refreshes the token pair when the access token is at or
// near expiry. The expiry claim is read without signature verification:
// only the server can verify the token, the client just avoids sending one
// it already knows is dead.
func (c *HTTPClient) ensureFreshAccess(ctx context.Context) error {
	if c.tokens.Access == "" {
		return fmt.Errorf("%w: not logged in", common.ErrUnauthorized)
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.tokens.Access, claims); err != nil {
		return fmt.Errorf("%w: malformed access token: %v", common.ErrUnauthorized, err)
	}

	if claims.ExpiresAt == nil || c.now().Add(refreshLeeway).Before(claims.ExpiresAt.Time) {
		return nil
	}

	if c.tokens.Refresh == "" {
		return fmt.Errorf("%w: access token expired", common.ErrTokenExpired)
	}

	var resp tokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/refresh", false,
		refreshRequest{RefreshToken: c.tokens.Refresh}, &resp)
	if err != nil {
		return err
	}

	c.tokens = TokenPair{Access: resp.AccessToken, Refresh: resp.RefreshToken}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, authed bool, in, out any) error {
	if authed {
		if err := c.ensureFreshAccess(ctx); err != nil {
			return err
		}
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.tokens.Access)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case resp.StatusCode >= 300:
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func toPayload(app *models.Application) applicationPayload {
	return applicationPayload{
		ID:              app.ID,
		Company:         app.Company,
		Role:            app.Role,
		Status:          string(app.Status),
		Link:            app.Link,
		Notes:           app.Notes,
		AppliedAtMillis: app.AppliedAt.UnixMilli(),
		UpdatedAtMillis: app.UpdatedAt.UnixMilli(),
	}
}

func fromPayload(p applicationPayload) *models.Application {
	return &models.Application{
		ID:        p.ID,
		Company:   p.Company,
		Role:      p.Role,
		Status:    models.ApplicationStatus(p.Status),
		Link:      p.Link,
		Notes:     p.Notes,
		AppliedAt: time.UnixMilli(p.AppliedAtMillis).UTC(),
		UpdatedAt: time.UnixMilli(p.UpdatedAtMillis).UTC(),
	}
}
