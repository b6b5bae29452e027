package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	APIKey       string
	BaseURL      string
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// Client submits audio files to the AssemblyAI API and waits for the
// resulting transcript. From the caller's view the call is synchronous:
// upload, create a transcript job, poll until it settles.
type Client struct {
	config Config
	http   *http.Client
	logger *logrus.Logger
}

func NewClient(cfg Config, httpClient *http.Client, logger *logrus.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 3 * time.Second
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 20 * time.Minute
	}
	return &Client{config: cfg, http: httpClient, logger: logger}
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type transcriptResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

// Transcribe uploads the audio file and blocks until the transcript job
// completes or fails. Failed HTTP calls and failed jobs surface immediately;
// only the poll interval backs off.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	logger := c.logger.WithField("audio_path", audioPath)

	uploadURL, err := c.upload(ctx, audioPath)
	if err != nil {
		return "", err
	}
	logger.Info("Audio uploaded for transcription")

	id, err := c.createTranscript(ctx, uploadURL)
	if err != nil {
		return "", err
	}
	logger = logger.WithField("transcript_id", id)
	logger.Info("Transcript job created")

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.PollInterval
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = c.config.PollTimeout

	for {
		result, err := c.getTranscript(ctx, id)
		if err != nil {
			return "", err
		}

		switch result.Status {
		case "completed":
			logger.WithField("chars", len(result.Text)).Info("Transcription completed")
			return result.Text, nil
		case "error":
			return "", errors.Errorf("transcription failed: %s", result.Error)
		}

		wait := bo.NextBackOff()
		if wait == backoff.Stop {
			return "", errors.New("transcription did not complete in time")
		}

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return "", errors.Wrap(ctx.Err(), "transcription cancelled")
		}
	}
}

func (c *Client) upload(ctx context.Context, audioPath string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", errors.Wrap(err, "failed to open audio file")
	}
	defer file.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v2/upload", file)
	if err != nil {
		return "", errors.Wrap(err, "failed to build upload request")
	}
	req.Header.Set("Authorization", c.config.APIKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	var result uploadResponse
	if err := c.doJSON(req, &result); err != nil {
		return "", errors.Wrap(err, "audio upload failed")
	}
	if result.UploadURL == "" {
		return "", errors.New("upload response missing upload_url")
	}
	return result.UploadURL, nil
}

func (c *Client) createTranscript(ctx context.Context, audioURL string) (string, error) {
	body, err := json.Marshal(map[string]string{"audio_url": audioURL})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode transcript request")
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.config.BaseURL+"/v2/transcript", bytes.NewReader(body),
	)
	if err != nil {
		return "", errors.Wrap(err, "failed to build transcript request")
	}
	req.Header.Set("Authorization", c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	var result transcriptResponse
	if err := c.doJSON(req, &result); err != nil {
		return "", errors.Wrap(err, "transcript creation failed")
	}
	if result.ID == "" {
		return "", errors.New("transcript response missing id")
	}
	return result.ID, nil
}

func (c *Client) getTranscript(ctx context.Context, id string) (*transcriptResponse, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.config.BaseURL+"/v2/transcript/"+id, nil,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build status request")
	}
	req.Header.Set("Authorization", c.config.APIKey)

	var result transcriptResponse
	if err := c.doJSON(req, &result); err != nil {
		return nil, errors.Wrap(err, "transcript status check failed")
	}
	return &result, nil
}

func (c *Client) doJSON(req *http.Request, target interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.Wrapf(err, "failed to decode response: %s", body)
	}
	return nil
}
