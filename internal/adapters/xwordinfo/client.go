package xwordinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"time"

	"github.com/vncsmyrnk/crosswordpolls/internal/core/domain"
	"github.com/vncsmyrnk/crosswordpolls/internal/core/ports"
)

const (
	DefaultURL     = "https://www.xwordinfo.com/JSON/Data.ashx"
	DefaultReferer = "https://www.xwordinfo.com/JSON/"
)

// Client fetches puzzle metadata from the xwordinfo JSON service, which only
// answers requests carrying its own Referer.
type Client struct {
	baseURL    string
	referer    string
	httpClient *http.Client
}

var _ ports.MetadataFetcher = (*Client)(nil)

func NewClient(baseURL, referer string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if referer == "" {
		referer = DefaultReferer
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, referer: referer, httpClient: httpClient}
}

type puzzleResponse struct {
	Author *string `json:"author"`
	Editor *string `json:"editor"`
}

func (p puzzleResponse) validate() error {
	if p.Author == nil {
		return fmt.Errorf("%w: puzzle has no author", domain.ErrDecode)
	}
	if p.Editor == nil {
		return fmt.Errorf("%w: puzzle has no editor", domain.ErrDecode)
	}
	return nil
}

func (c *Client) FetchMetadata(ctx context.Context, day time.Time) (domain.PuzzleMetadata, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return domain.PuzzleMetadata{}, fmt.Errorf("invalid metadata url %s: %w", c.baseURL, err)
	}
	q := u.Query()
	q.Set("date", domain.DateString(day))
	q.Set("format", "text")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.PuzzleMetadata{}, fmt.Errorf("failed to create metadata request: %w", err)
	}
	req.Header.Set("Referer", c.referer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.PuzzleMetadata{}, fmt.Errorf("failed to fetch metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.PuzzleMetadata{}, fmt.Errorf("metadata service returned %s", resp.Status)
	}

	var puzzle puzzleResponse
	if err := json.NewDecoder(resp.Body).Decode(&puzzle); err != nil {
		return domain.PuzzleMetadata{}, fmt.Errorf("%w: failed to decode puzzle: %v", domain.ErrDecode, err)
	}
	if err := puzzle.validate(); err != nil {
		return domain.PuzzleMetadata{}, err
	}

	return domain.PuzzleMetadata{
		Author: html.UnescapeString(*puzzle.Author),
		Editor: html.UnescapeString(*puzzle.Editor),
	}, nil
}
