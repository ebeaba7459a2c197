package bitbucket

// OAuth helpers for the login/dashboard flow, collaborators of the review
// core rather than part of the Connector contract.

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
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	Scopes       string `json:"scopes"`
}

// Repo is one repository in a workspace.
type Repo struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Private  bool   `json:"is_private"`
}

// ExchangeCode trades an OAuth authorization code for an access token.
func ExchangeCode(ctx context.Context, code, clientID, clientSecret string) (*OAuthToken, error) {
	var tok OAuthToken
	resp, err := oauthClient.R().
		SetContext(ctx).
		SetBasicAuth(clientID, clientSecret).
		SetFormData(map[string]string{
			"grant_type": "authorization_code",
			"code":       code,
		}).
		SetResult(&tok).
		Post("https://bitbucket.org/site/oauth2/access_token")
	if err != nil {
		return nil, fmt.Errorf("bitbucket: oauth exchange failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("bitbucket: oauth exchange HTTP %d: %s",
			resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("bitbucket: oauth exchange returned no token")
	}
	return &tok, nil
}

// ListRepos lists the repositories of a workspace, following pagination.
func ListRepos(ctx context.Context, token, workspace string) ([]Repo, error) {
	var all []Repo
	next := fmt.Sprintf("https://api.bitbucket.org/2.0/repositories/%s?pagelen=100", workspace)

	for next != "" {
		var page struct {
			Values []Repo `json:"values"`
			Next   string `json:"next"`
		}
		resp, err := oauthClient.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetHeader("Accept", "application/json").
			SetResult(&page).
			Get(next)
		if err != nil {
			return nil, fmt.Errorf("bitbucket: failed to list repos: %w", err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("bitbucket: list repos HTTP %d: %s",
				resp.StatusCode(), strings.TrimSpace(resp.String()))
		}
		all = append(all, page.Values...)
		next = page.Next
	}
	return all, nil
}
