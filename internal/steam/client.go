package steam

import (
	"log/slog"
	"net/http"
	"time"
)

// Credentials are the two session cookies Steam expects on inventory
// requests.
type Credentials struct {
	SessionID   string // "sessionid" cookie
	LoginSecure string // "steamLoginSecure" cookie
}

// Client provides access to the Steam Community inventory and market
// price endpoints for a single account.
type Client struct {
	baseURL    string
	cdnBaseURL string
	steamID    string
	creds      Credentials
	httpClient *http.Client
	logger     *slog.Logger

	appID     int
	contextID int
	currency  int
	language  string
	count     int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a Steam Community client for the given account.
func NewClient(baseURL, steamID string, creds Credentials, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		cdnBaseURL: "https://cdn.steamcommunity.com",
		steamID:    steamID,
		creds:      creds,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger:    slog.Default(),
		appID:     730,
		contextID: 2,
		currency:  5,
		language:  "russian",
		count:     75,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithApp sets the application and inventory context to watch.
func WithApp(appID, contextID int) ClientOption {
	return func(c *Client) {
		c.appID = appID
		c.contextID = contextID
	}
}

// WithMarket sets the price lookup currency and response language.
func WithMarket(currency int, language string) ClientOption {
	return func(c *Client) {
		c.currency = currency
		c.language = language
	}
}

// WithInventoryCount sets how many newest assets each fetch requests.
func WithInventoryCount(n int) ClientOption {
	return func(c *Client) {
		c.count = n
	}
}

// WithCDNBaseURL sets the economy image CDN base URL.
func WithCDNBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.cdnBaseURL = base
	}
}
