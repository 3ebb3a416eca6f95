package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vncsmyrnk/crosswordpolls/internal/core/domain"
	"github.com/vncsmyrnk/crosswordpolls/internal/core/ports"
)

const (
	DefaultAuthURL = "https://www.reddit.com/api/v1/access_token"
	DefaultAPIURL  = "https://oauth.reddit.com"
	searchLimit    = 5
)

type Config struct {
	AuthURL      string
	APIURL       string
	Subreddit    string
	Username     string
	Password     string
	ClientID     string
	ClientSecret string
	UserAgent    string
}

// Client authenticates as a script application and searches one subreddit.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.ForumClient = (*Client)(nil)

func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, httpClient: httpClient, logger: logger}
}

// AccessToken performs the password grant with the application credentials.
// Every failure wraps domain.ErrAuthentication.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.cfg.Username)
	form.Set("password", c.cfg.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create token request: %v", domain.ErrAuthentication, err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute token request: %v", domain.ErrAuthentication, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: token endpoint returned %s: %s", domain.ErrAuthentication, resp.Status, strings.TrimSpace(string(body)))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("%w: failed to decode token response: %v", domain.ErrAuthentication, err)
	}
	if token.Error != "" {
		return "", fmt.Errorf("%w: %s", domain.ErrAuthentication, token.Error)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: %w: empty access_token", domain.ErrAuthentication, domain.ErrDecode)
	}

	c.logger.Debug("forum access token obtained", "expires_in_seconds", token.ExpiresIn)
	return token.AccessToken, nil
}

func (c *Client) SearchThreads(ctx context.Context, accessToken, query string) ([]domain.Thread, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "relevance")
	params.Set("restrict_sr", "on")
	params.Set("limit", strconv.Itoa(searchLimit))

	endpoint := fmt.Sprintf("%s/r/%s/search.json?%s", strings.TrimSuffix(c.cfg.APIURL, "/"), url.PathEscape(c.cfg.Subreddit), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Authorization", "bearer "+accessToken)
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned %s", resp.Status)
	}

	var result listing
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode search listing: %v", domain.ErrDecode, err)
	}
	if err := result.validate(); err != nil {
		return nil, err
	}

	threads := result.threads()
	c.logger.Debug("forum search finished", "query", query, "results", len(threads))
	return threads, nil
}
