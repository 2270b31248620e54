// Package github implements the outbound GitHub repository lookup.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"devlink/internal/cache"
	"devlink/internal/config"
	"devlink/internal/models"
	"devlink/internal/observability"
)

// Repo is the subset of the GitHub repository payload exposed to clients.
type Repo struct {
	Name            string `json:"name"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	StargazersCount int    `json:"stargazers_count"`
	WatchersCount   int    `json:"watchers_count"`
	ForksCount      int    `json:"forks_count"`
}

// Client performs GitHub API lookups with an enforced request timeout.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient initializes a GitHub client from application configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.GithubAPIURL,
		token:   cfg.GithubToken,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Repos returns the user's five most recent repositories. Results are cached;
// an upstream non-200 is surfaced as a not-found error without detail leakage.
func (c *Client) Repos(ctx context.Context, username string) ([]Repo, error) {
	var repos []Repo
	err := cache.Aside(ctx, cache.GithubKey(username), &repos, cache.GithubTTL, func() error {
		fetched, err := c.fetch(ctx, username)
		if err != nil {
			return err
		}
		repos = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) fetch(ctx context.Context, username string) ([]Repo, error) {
	uri := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc",
		c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, models.NewInternalError("Github", err)
	}
	req.Header.Set("User-Agent", "devlink-api")
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		observability.GithubLookups.WithLabelValues("error").Inc()
		return nil, models.NewInternalError("Github", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observability.GithubLookups.WithLabelValues("not_found").Inc()
		return nil, models.NewNotFoundError("No Github profile found")
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		observability.GithubLookups.WithLabelValues("error").Inc()
		return nil, models.NewInternalError("Github", err)
	}

	observability.GithubLookups.WithLabelValues("ok").Inc()
	return repos, nil
}
