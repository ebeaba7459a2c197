// Package bitbucket implements platform.Connector for Bitbucket Cloud using
// basic auth with an account email and an app password / OAuth token.
package bitbucket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/viper"

	"github.com/mcp-bot/reviewd/internal/platform"
)

// Connector implements platform.Connector for Bitbucket.
type Connector struct {
	client  *resty.Client
	baseURL string
}

func init() {
	platform.Register("bitbucket", NewConnector)
}

// NewConnector creates a Bitbucket connector from configuration.
func NewConnector(v *viper.Viper) (platform.Connector, error) {
	email := v.GetString("bitbucket.email")
	token := v.GetString("bitbucket.token")
	if email == "" || token == "" {
		return nil, fmt.Errorf("bitbucket: email and token are required")
	}

	baseURL := v.GetString("bitbucket.base_url")
	if baseURL == "" {
		baseURL = "https://api.bitbucket.org/2.0"
	}

	client := resty.New().
		SetTimeout(30 * time.Second).
		SetBasicAuth(email, token).
		SetHeader("Accept", "application/json")

	return &Connector{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (c *Connector) Info() platform.ConnectorInfo {
	return platform.ConnectorInfo{Name: "bitbucket", BaseURL: c.baseURL}
}

// prEvent is the slice of the webhook payload the connector reads.
type prEvent struct {
	Repository struct {
		FullName  string `json:"full_name"`
		Workspace struct {
			Slug string `json:"slug"`
		} `json:"workspace"`
	} `json:"repository"`
	PullRequest struct {
		ID     int `json:"id"`
		Source struct {
			Commit struct {
				Hash string `json:"hash"`
			} `json:"commit"`
		} `json:"source"`
	} `json:"pullrequest"`
}

// workspaceAndSlug splits the repository full name, preferring the explicit
// workspace field when the payload carries one.
func (ev prEvent) workspaceAndSlug() (string, string, error) {
	parts := strings.SplitN(ev.Repository.FullName, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", "", fmt.Errorf("bitbucket: malformed repository full_name %q", ev.Repository.FullName)
	}
	workspace := ev.Repository.Workspace.Slug
	if workspace == "" {
		workspace = parts[0]
	}
	return workspace, parts[1], nil
}

func parseEvent(event []byte) (prEvent, error) {
	var ev prEvent
	if err := json.Unmarshal(event, &ev); err != nil {
		return ev, fmt.Errorf("bitbucket: malformed PR event: %w", err)
	}
	if ev.Repository.FullName == "" {
		return ev, fmt.Errorf("bitbucket: PR event is missing repository identity")
	}
	return ev, nil
}

func (c *Connector) FetchFiles(ctx context.Context, event []byte) ([]platform.ChangedFile, error) {
	ev, err := parseEvent(event)
	if err != nil {
		return nil, err
	}
	workspace, slug, err := ev.workspaceAndSlug()
	if err != nil {
		return nil, err
	}
	commit := ev.PullRequest.Source.Commit.Hash

	var diffstat struct {
		Values []struct {
			New struct {
				Path string `json:"path"`
			} `json:"new"`
		} `json:"values"`
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&diffstat).
		Get(fmt.Sprintf("%s/repositories/%s/%s/diffstat/%s", c.baseURL, workspace, slug, commit))
	if err != nil {
		return nil, fmt.Errorf("bitbucket: failed to fetch diffstat: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("bitbucket: diffstat HTTP %d: %s",
			resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	out := make([]platform.ChangedFile, 0, len(diffstat.Values))
	for _, entry := range diffstat.Values {
		if entry.New.Path == "" {
			// Deleted files have no head-commit content to review.
			continue
		}
		raw, err := c.client.R().
			SetContext(ctx).
			Get(fmt.Sprintf("%s/repositories/%s/%s/src/%s/%s", c.baseURL, workspace, slug, commit, entry.New.Path))
		if err != nil {
			return nil, fmt.Errorf("bitbucket: failed to fetch %s: %w", entry.New.Path, err)
		}
		if raw.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("bitbucket: fetch %s HTTP %d", entry.New.Path, raw.StatusCode())
		}
		out = append(out, platform.ChangedFile{
			Filename: entry.New.Path,
			Content:  string(raw.Body()),
		})
	}
	return out, nil
}

func (c *Connector) PostComment(ctx context.Context, event []byte, body string) error {
	ev, err := parseEvent(event)
	if err != nil {
		return err
	}
	workspace, slug, err := ev.workspaceAndSlug()
	if err != nil {
		return err
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"content": map[string]string{"raw": body},
		}).
		Post(fmt.Sprintf("%s/repositories/%s/%s/pullrequests/%d/comments",
			c.baseURL, workspace, slug, ev.PullRequest.ID))
	if err != nil {
		return fmt.Errorf("bitbucket: failed to post PR comment: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("bitbucket: post comment HTTP %d: %s",
			resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return nil
}

func (c *Connector) Approve(ctx context.Context, event []byte) error {
	ev, err := parseEvent(event)
	if err != nil {
		return err
	}
	workspace, slug, err := ev.workspaceAndSlug()
	if err != nil {
		return err
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{}).
		Post(fmt.Sprintf("%s/repositories/%s/%s/pullrequests/%d/approve",
			c.baseURL, workspace, slug, ev.PullRequest.ID))
	if err != nil {
		return fmt.Errorf("bitbucket: failed to approve PR: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("bitbucket: approve HTTP %d: %s",
			resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return nil
}
