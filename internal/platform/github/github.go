// Package github implements platform.Connector for GitHub, authenticating as
// an installation of a registered GitHub App.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"

	"github.com/mcp-bot/reviewd/internal/platform"
)

const approveBody = "✅ Code looks good! Auto-approved by MCP bot."

// Connector implements platform.Connector for GitHub.
type Connector struct {
	client         *http.Client
	baseURL        string
	appID          string
	installationID string
	privateKeyPath string

	mu          sync.Mutex
	cachedToken string
	tokenExpiry time.Time
}

func init() {
	platform.Register("github", NewConnector)
}

// NewConnector creates a GitHub connector from configuration. It needs the
// App id, the installation id and the path to the App's PEM private key.
func NewConnector(v *viper.Viper) (platform.Connector, error) {
	appID := v.GetString("github.app_id")
	installationID := v.GetString("github.installation_id")
	keyPath := v.GetString("github.private_key_path")
	if appID == "" || installationID == "" || keyPath == "" {
		return nil, fmt.Errorf("github: app_id, installation_id and private_key_path are required")
	}

	baseURL := v.GetString("github.base_url")
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}

	return &Connector{
		client:         &http.Client{Timeout: 30 * time.Second},
		baseURL:        strings.TrimRight(baseURL, "/"),
		appID:          appID,
		installationID: installationID,
		privateKeyPath: keyPath,
	}, nil
}

func (c *Connector) Info() platform.ConnectorInfo {
	return platform.ConnectorInfo{Name: "github", BaseURL: c.baseURL}
}

// prEvent is the slice of the webhook payload the connector reads.
type prEvent struct {
	Number     int `json:"number"`
	Repository struct {
		Name  string `json:"name"`
		Owner struct {
			Login string `json:"login"`
		} `json:"owner"`
	} `json:"repository"`
	PullRequest struct {
		Head struct {
			SHA string `json:"sha"`
		} `json:"head"`
	} `json:"pull_request"`
}

func parseEvent(event []byte) (prEvent, error) {
	var ev prEvent
	if err := json.Unmarshal(event, &ev); err != nil {
		return ev, fmt.Errorf("github: malformed PR event: %w", err)
	}
	if ev.Repository.Owner.Login == "" || ev.Repository.Name == "" {
		return ev, fmt.Errorf("github: PR event is missing repository identity")
	}
	return ev, nil
}

func (c *Connector) FetchFiles(ctx context.Context, event []byte) ([]platform.ChangedFile, error) {
	ev, err := parseEvent(event)
	if err != nil {
		return nil, err
	}

	type prFile struct {
		Filename string `json:"filename"`
	}

	var listed []prFile
	page := 1
	for {
		endpoint := fmt.Sprintf("/repos/%s/%s/pulls/%d/files?per_page=100&page=%d",
			ev.Repository.Owner.Login, ev.Repository.Name, ev.Number, page)
		var files []prFile
		resp, err := c.getJSONWithResponse(ctx, endpoint, &files)
		if err != nil {
			return nil, fmt.Errorf("github: failed to list PR files: %w", err)
		}
		listed = append(listed, files...)

		if !hasNextPage(resp.Header.Get("Link")) {
			break
		}
		page++
	}

	out := make([]platform.ChangedFile, 0, len(listed))
	for _, f := range listed {
		var blob struct {
			Content  string `json:"content"`
			Encoding string `json:"encoding"`
		}
		endpoint := fmt.Sprintf("/repos/%s/%s/contents/%s?ref=%s",
			ev.Repository.Owner.Login, ev.Repository.Name,
			f.Filename, ev.PullRequest.Head.SHA)
		if err := c.getJSON(ctx, endpoint, &blob); err != nil {
			return nil, fmt.Errorf("github: failed to fetch %s: %w", f.Filename, err)
		}

		content, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(blob.Content, "\n", ""))
		if err != nil {
			return nil, fmt.Errorf("github: failed to decode %s: %w", f.Filename, err)
		}
		out = append(out, platform.ChangedFile{Filename: f.Filename, Content: string(content)})
	}
	return out, nil
}

func (c *Connector) PostComment(ctx context.Context, event []byte, body string) error {
	ev, err := parseEvent(event)
	if err != nil {
		return err
	}
	payload := map[string]string{"body": body}
	if err := c.postJSON(ctx,
		fmt.Sprintf("/repos/%s/%s/issues/%d/comments",
			ev.Repository.Owner.Login, ev.Repository.Name, ev.Number),
		payload,
		nil,
	); err != nil {
		return fmt.Errorf("github: failed to post PR comment: %w", err)
	}
	return nil
}

func (c *Connector) Approve(ctx context.Context, event []byte) error {
	ev, err := parseEvent(event)
	if err != nil {
		return err
	}
	payload := map[string]string{
		"event": "APPROVE",
		"body":  approveBody,
	}
	if err := c.postJSON(ctx,
		fmt.Sprintf("/repos/%s/%s/pulls/%d/reviews",
			ev.Repository.Owner.Login, ev.Repository.Name, ev.Number),
		payload,
		nil,
	); err != nil {
		return fmt.Errorf("github: failed to approve PR: %w", err)
	}
	return nil
}

// token returns a valid installation token, minting a new one through the App
// JWT flow when the cached token is missing or about to expire.
func (c *Connector) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cachedToken != "" && time.Until(c.tokenExpiry) > time.Minute {
		return c.cachedToken, nil
	}

	appJWT, err := c.signAppJWT()
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/app/installations/%s/access_tokens", c.baseURL, c.installationID), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+appJWT)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("github: failed to mint installation token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("github: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("github: malformed token response: %w", err)
	}

	c.cachedToken = out.Token
	c.tokenExpiry = out.ExpiresAt
	return c.cachedToken, nil
}

// signAppJWT builds the short-lived RS256 JWT that identifies the App itself.
func (c *Connector) signAppJWT() (string, error) {
	raw, err := os.ReadFile(c.privateKeyPath)
	if err != nil {
		return "", fmt.Errorf("github: failed to read private key: %w", err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(raw)
	if err != nil {
		return "", fmt.Errorf("github: failed to parse private key: %w", err)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    c.appID,
		IssuedAt:  jwt.NewNumericDate(now.Add(-30 * time.Second)),
		ExpiresAt: jwt.NewNumericDate(now.Add(9 * time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("github: failed to sign app JWT: %w", err)
	}
	return signed, nil
}

func (c *Connector) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	_, err := c.getJSONWithResponse(ctx, endpoint, out)
	return err
}

func (c *Connector) getJSONWithResponse(ctx context.Context, endpoint string, out interface{}) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return resp, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

func (c *Connector) postJSON(ctx context.Context, endpoint string, payload interface{}, out interface{}) error {
	var buf io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, buf)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Connector) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	tok, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "reviewd")
	req.Header.Set("Authorization", "Bearer "+tok)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func hasNextPage(linkHeader string) bool {
	if linkHeader == "" {
		return false
	}
	for _, part := range strings.Split(linkHeader, ",") {
		if strings.Contains(part, `rel="next"`) {
			return true
		}
	}
	return false
}
