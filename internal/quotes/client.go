// Package quotes fetches motivational quotes from an external API. The
// client degrades to a static fallback on any failure, so Get always
// returns some text.
package quotes

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
)

var fallbackQuotes = []string{
	"The secret of getting ahead is getting started. - Mark Twain",
	"Success is the sum of small efforts repeated day in and day out. - Robert Collier",
	"Don't watch the clock; do what it does. Keep going. - Sam Levenson",
	"The way to get started is to quit talking and begin doing. - Walt Disney",
	"Great things never come from comfort zones.",
	"Push yourself, because no one else is going to do it for you.",
	"Success doesn't just find you. You have to go out and get it.",
}

type Config struct {
	URL      string
	Timeout  time.Duration
	CacheTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		URL:      "https://api.quotable.io/random",
		Timeout:  5 * time.Second,
		CacheTTL: 12 * time.Hour,
	}
}

type Client struct {
	cfg    Config
	client *http.Client

	mu        sync.Mutex
	cached    string
	expiresAt time.Time
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type quoteResponse struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// Get returns a motivational quote: cached if fresh, otherwise fetched,
// otherwise a fallback. It never returns an empty string.
func (c *Client) Get(ctx context.Context) string {
	c.mu.Lock()
	if c.cached != "" && time.Now().Before(c.expiresAt) {
		quote := c.cached
		c.mu.Unlock()
		return quote
	}
	c.mu.Unlock()

	quote, err := c.fetch(ctx)
	if err != nil {
		slog.Warn("fetching quote failed, using fallback", slog.String("error", err.Error()))
		return fallbackQuotes[rand.Intn(len(fallbackQuotes))]
	}

	c.mu.Lock()
	c.cached = quote
	c.expiresAt = time.Now().Add(c.cfg.CacheTTL)
	c.mu.Unlock()
	return quote
}

func (c *Client) fetch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return "", errors.New("building quote request error: " + err.Error())
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.New("quote request error: " + err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.New("quote API returned status " + resp.Status)
	}
	var body quoteResponse
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.New("decoding quote response error: " + err.Error())
	}
	if body.Content == "" {
		return "", errors.New("quote API returned empty content")
	}
	if body.Author != "" {
		return body.Content + " - " + body.Author, nil
	}
	return body.Content, nil
}
