package youtube

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	ythttp "ytexport/http"
)

// API operations, used for quota accounting, logs and errors.
const (
	opChannels      = "channels.list"
	opSearch        = "search.list"
	opPlaylistItems = "playlistItems.list"
	opVideos        = "videos.list"
)

// Config configures a Client.
type Config struct {
	// APIKey is the Data API credential. Required.
	APIKey string

	// Endpoint overrides the API base URL (e.g. "http://127.0.0.1:8080/").
	// Empty uses the public endpoint.
	Endpoint string

	// HTTP configures the underlying HTTP client. Nil uses ythttp.DefaultConfig().
	// Its APIKey field is overwritten with APIKey.
	HTTP *ythttp.Config

	// DailyCallLimit is the local ceiling on API calls. 0 uses DefaultDailyCallLimit.
	DailyCallLimit int

	// PageDelay is the pause between successive pagination requests.
	// Negative disables pacing; 0 uses ythttp.DefaultPageInterval.
	PageDelay time.Duration

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger

	// Now returns the current time. Nil uses time.Now.
	Now func() time.Time
}

// Client is a session against the YouTube Data API. It owns the call
// counter for the session; all operations draw from the same Quota.
// A Client is meant to be used from a single goroutine.
type Client struct {
	service *ytapi.Service
	http    *ythttp.Client
	quota   *Quota
	pacer   *ythttp.RateLimiter
	logger  *slog.Logger
	now     func() time.Time
}

// NewClient creates a Data API session.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key required")
	}

	httpCfg := ythttp.DefaultConfig()
	if cfg.HTTP != nil {
		c := *cfg.HTTP
		httpCfg = &c
	}
	httpCfg.APIKey = cfg.APIKey
	hc := ythttp.New(httpCfg)

	opts := []option.ClientOption{option.WithHTTPClient(hc.HTTPClient())}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := ytapi.NewService(ctx, opts...)
	if err != nil {
		hc.Close()
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = discardLogger()
	}

	delay := cfg.PageDelay
	switch {
	case delay == 0:
		delay = ythttp.DefaultPageInterval
	case delay < 0:
		delay = 0
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		service: service,
		http:    hc,
		quota:   NewQuota(cfg.DailyCallLimit, logger),
		pacer:   ythttp.NewRateLimiter(ythttp.RateLimiterConfig{Interval: delay}),
		logger:  logger,
		now:     now,
	}, nil
}

// Quota returns the session's call counter.
func (c *Client) Quota() *Quota {
	return c.quota
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.http.Close()
}

// call reserves quota for op, then runs fn. Errors from fn are classified
// into the package error taxonomy.
func (c *Client) call(op string, fn func() error) error {
	if err := c.quota.Reserve(op); err != nil {
		c.logger.Warn("youtube api call refused", slog.String("operation", op), slog.Any("error", err))
		return err
	}

	start := c.now()
	err := fn()
	if err != nil {
		err = classifyError(op, err)
		c.logger.Debug("youtube api call failed",
			slog.String("operation", op),
			slog.Duration("elapsed", c.now().Sub(start)),
			slog.Any("error", err))
		return err
	}

	c.logger.Debug("youtube api call completed",
		slog.String("operation", op),
		slog.Duration("elapsed", c.now().Sub(start)))
	return nil
}

// ScrapeChannel runs the whole pipeline: resolve the channel URL, fetch
// channel info, then collect videos. On error no partial result is returned.
func (c *Client) ScrapeChannel(ctx context.Context, channelURL string, opts CollectOptions) (*ScrapeResult, error) {
	channelID, err := c.ExtractChannelID(ctx, channelURL)
	if err != nil {
		return nil, &ScrapeError{Stage: "resolve", Channel: channelURL, Err: err}
	}

	info, err := c.FetchChannelInfo(ctx, channelID)
	if err != nil {
		return nil, &ScrapeError{Stage: "channel", Channel: channelID, Err: err}
	}

	c.logger.Info("scraping channel",
		slog.String("channel", info.Name),
		slog.String("channel_id", info.ID),
		slog.Int64("total_videos", info.VideoCount))

	videos, err := c.CollectVideos(ctx, info, opts)
	if err != nil {
		return nil, &ScrapeError{Stage: "collect", Channel: channelID, Err: err}
	}

	return &ScrapeResult{Channel: *info, Videos: videos}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
