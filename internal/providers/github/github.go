package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.github.com"
	perPage        = 100
	userAgent      = "followsync"
)

// Config holds the settings for the GitHub client.
type Config struct {
	Token    string
	Username string
	// BaseURL overrides the GitHub API endpoint, used by tests.
	BaseURL string
}

// Client talks to the GitHub REST API for one account.
type Client struct {
	token    string
	username string
	baseURL  string
	http     *http.Client
	pageRate *rate.Limiter
	log      zerolog.Logger
}

// New creates a GitHub client.
func New(cfg Config, log zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		token:    cfg.Token,
		username: cfg.Username,
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
		// GitHub tolerates bursts but pagination is paced anyway to stay far
		// from secondary rate limits.
		pageRate: rate.NewLimiter(rate.Limit(2), 1),
		log:      log,
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
}

// listAllPages fetches every page of a relation list. On a non-success status
// or transport error it stops paginating and returns the partial list along
// with the error; the caller decides how loudly to complain.
func (c *Client) listAllPages(ctx context.Context, relation string) ([]string, error) {
	var logins []string

	for page := 1; ; page++ {
		if page > 1 {
			if err := c.pageRate.Wait(ctx); err != nil {
				return logins, err
			}
		}

		reqURL := fmt.Sprintf("%s/users/%s/%s?page=%d&per_page=%d",
			c.baseURL, c.username, relation, page, perPage)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return logins, err
		}
		c.setHeaders(req)

		resp, err := c.http.Do(req)
		if err != nil {
			c.log.Warn().Err(err).Str("relation", relation).Int("page", page).
				Msg("list request failed, keeping partial result")
			return logins, fmt.Errorf("list %s page %d: %w", relation, page, err)
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			c.log.Warn().Int("status", resp.StatusCode).Str("relation", relation).
				Int("page", page).Str("body", string(body)).
				Msg("API error, keeping partial result")
			return logins, fmt.Errorf("list %s page %d: unexpected status %s", relation, page, resp.Status)
		}

		var users []struct {
			Login string `json:"login"`
		}
		err = json.NewDecoder(resp.Body).Decode(&users)
		resp.Body.Close()
		if err != nil {
			c.log.Warn().Err(err).Str("relation", relation).Int("page", page).
				Msg("malformed list response, keeping partial result")
			return logins, fmt.Errorf("list %s page %d: %w", relation, page, err)
		}

		if len(users) == 0 {
			break
		}
		for _, u := range users {
			logins = append(logins, u.Login)
		}
		if len(users) < perPage {
			break
		}
	}

	return logins, nil
}

// ListFollowers returns the accounts following the configured user.
func (c *Client) ListFollowers(ctx context.Context) ([]string, error) {
	return c.listAllPages(ctx, "followers")
}

// ListFollowing returns the accounts the configured user follows.
func (c *Client) ListFollowing(ctx context.Context) ([]string, error) {
	return c.listAllPages(ctx, "following")
}

// Follow adds login to the authenticated user's following list.
func (c *Client) Follow(ctx context.Context, login string) bool {
	return c.setFollowing(ctx, http.MethodPut, login)
}

// Unfollow removes login from the authenticated user's following list.
func (c *Client) Unfollow(ctx context.Context, login string) bool {
	return c.setFollowing(ctx, http.MethodDelete, login)
}

func (c *Client) setFollowing(ctx context.Context, method, login string) bool {
	reqURL := fmt.Sprintf("%s/user/following/%s", c.baseURL, url.PathEscape(login))
	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		c.log.Warn().Err(err).Str("login", login).Msg("building follow request failed")
		return false
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("login", login).Str("method", method).
			Msg("follow state change failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		c.log.Warn().Int("status", resp.StatusCode).Str("login", login).
			Str("method", method).Msg("follow state change rejected")
		return false
	}
	return true
}
