package recruit

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultAPIURL = "http://localhost:8000"
	apiPrefix     = "/api/v1"
	userAgent     = "recruitgenius/recruit-cli"

	defaultTimeout = 30 * time.Second
	// Page size used by the web pages for every listing.
	DefaultLimit = 100
)

type Client struct {
	token      string
	logger     *zap.Logger
	limiter    *rate.Limiter
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(logger *zap.Logger, apiURL, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	return &Client{
		token:   strings.TrimSpace(token),
		APIURL:  apiURL,
		limiter: rate.NewLimiter(rate.Inf, 1),
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// SetRateLimit paces outgoing requests to at most rps per second. Zero or a
// negative value removes the limit.
func (c *Client) SetRateLimit(rps float64) {
	if rps <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 1)
		return
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
}

func (c *Client) endpoint(path string) string {
	return c.APIURL + apiPrefix + path
}
