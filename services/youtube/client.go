package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Sentinel titles substituted when resolution fails. Title lookup is a
// best-effort step; the client never returns an error to its caller.
const (
	TitleInvalidURL = "Invalid YouTube URL"
	TitleFetchError = "Error fetching title"
	TitleUnexpected = "Unexpected error"
)

type Config struct {
	APIKey            string
	BaseURL           string
	RequestsPerMinute int
}

// Client resolves human-readable video titles through the YouTube Data API v3.
type Client struct {
	config  Config
	http    *http.Client
	limiter *rate.Limiter
	logger  *logrus.Logger
}

func NewClient(cfg Config, httpClient *http.Client, logger *logrus.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	return &Client{
		config:  cfg,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(rpm)/60, 1),
		logger:  logger,
	}
}

type videosResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Items []struct {
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

// ResolveTitle returns the video's title, or a sentinel string when the link
// cannot be parsed or the lookup fails.
func (c *Client) ResolveTitle(ctx context.Context, link string) string {
	videoID, ok := extractVideoID(link)
	if !ok {
		c.logger.WithField("link", link).Info("Invalid YouTube URL format")
		return TitleInvalidURL
	}

	if err := c.limiter.Wait(ctx); err != nil {
		c.logger.WithError(err).Warn("Title lookup cancelled while rate limited")
		return TitleFetchError
	}

	reqURL := fmt.Sprintf(
		"%s/youtube/v3/videos?part=snippet&id=%s&key=%s",
		c.config.BaseURL, url.QueryEscape(videoID), url.QueryEscape(c.config.APIKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.WithError(err).Error("Failed to build title request")
		return TitleUnexpected
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("Title request failed")
		return TitleFetchError
	}
	defer resp.Body.Close()

	var data videosResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.logger.WithError(err).Warn("Failed to decode title response")
		return TitleUnexpected
	}

	if data.Error != nil {
		c.logger.WithField("api_error", data.Error.Message).Warn("Title lookup rejected")
		return TitleFetchError
	}

	if len(data.Items) == 0 {
		c.logger.WithField("video_id", videoID).Warn("No metadata items for video")
		return TitleUnexpected
	}

	return data.Items[0].Snippet.Title
}

// extractVideoID locates the v= query parameter and truncates at the next
// delimiter. Links without the marker are unparsable here by design.
func extractVideoID(link string) (string, bool) {
	idx := strings.Index(link, "v=")
	if idx == -1 {
		return "", false
	}
	id := link[idx+2:]
	if amp := strings.Index(id, "&"); amp != -1 {
		id = id[:amp]
	}
	if id == "" {
		return "", false
	}
	return id, true
}
