package github

// OAuth helpers for the login/dashboard flow. They are collaborators of the
// review core, not part of the Connector contract: they authenticate as a
// user, not as an App installation.

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var oauthClient = resty.New()

// OAuthToken is the result of exchanging an authorization code.
type OAuthToken struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
	TokenType   string `json:"token_type"`
}

// Repo is one repository visible to the authenticated user.
type Repo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Private  bool   `json:"private"`
}

// Branch is a single branch with its tip commit.
type Branch struct {
	Name   string `json:"name"`
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

// ExchangeCode trades an OAuth authorization code for an access token.
func ExchangeCode(ctx context.Context, code, clientID, clientSecret, redirectURI string) (*OAuthToken, error) {
	var tok OAuthToken
	resp, err := oauthClient.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetFormData(map[string]string{
			"client_id":     clientID,
			"client_secret": clientSecret,
			"code":          code,
			"redirect_uri":  redirectURI,
		}).
		SetResult(&tok).
		Post("https://github.com/login/oauth/access_token")
	if err != nil {
		return nil, fmt.Errorf("github: oauth exchange failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("github: oauth exchange HTTP %d: %s",
			resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("github: oauth exchange returned no token")
	}
	return &tok, nil
}

// ListRepos lists the repositories the user token can see.
func ListRepos(ctx context.Context, token string) ([]Repo, error) {
	var repos []Repo
	resp, err := oauthClient.R().
		SetContext(ctx).
		SetHeader("Accept", "application/vnd.github+json").
		SetAuthToken(token).
		SetResult(&repos).
		Get("https://api.github.com/user/repos?per_page=100")
	if err != nil {
		return nil, fmt.Errorf("github: failed to list repos: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("github: list repos HTTP %d: %s",
			resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return repos, nil
}

// GetBranch looks up one branch of a repository.
func GetBranch(ctx context.Context, token, owner, repo, branch string) (*Branch, error) {
	var b Branch
	resp, err := oauthClient.R().
		SetContext(ctx).
		SetHeader("Accept", "application/vnd.github+json").
		SetAuthToken(token).
		SetResult(&b).
		Get(fmt.Sprintf("https://api.github.com/repos/%s/%s/branches/%s", owner, repo, branch))
	if err != nil {
		return nil, fmt.Errorf("github: failed to fetch branch: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("github: fetch branch HTTP %d: %s",
			resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return &b, nil
}
