package media

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "command failed (stderr: %s)", stderr.String())
	}
	return stdout.Bytes(), nil
}

type Config struct {
	BinPath string
	Dir     string
	Timeout time.Duration
}

// Fetcher downloads the audio-only stream of a video into the media directory
// via yt-dlp.
type Fetcher struct {
	config Config
	runner CommandRunner
	logger *logrus.Logger
}

type Option func(*Fetcher)

// WithRunner swaps the command runner, used by tests.
func WithRunner(r CommandRunner) Option {
	return func(f *Fetcher) { f.runner = r }
}

func NewFetcher(cfg Config, logger *logrus.Logger, opts ...Option) (*Fetcher, error) {
	if cfg.BinPath == "" {
		cfg.BinPath = "yt-dlp"
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create media directory")
	}

	f := &Fetcher{
		config: cfg,
		runner: execRunner{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch downloads the best audio-only stream for link and returns the local
// file path. The extension is normalized to .mp3 after download without
// transcoding; downstream consumers accept the container as-is. Failed
// downloads may leave partial files behind; they are never cleaned up here.
func (f *Fetcher) Fetch(ctx context.Context, link string) (string, error) {
	logger := f.logger.WithField("link", link)

	if f.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.config.Timeout)
		defer cancel()
	}

	template := filepath.Join(f.config.Dir, uuid.New().String()+".%(ext)s")
	args := []string{
		"-f", "bestaudio",
		"--no-playlist",
		"--no-progress",
		"-o", template,
		"--print", "after_move:filepath",
		link,
	}

	logger.WithField("bin", f.config.BinPath).Info("Starting audio download")

	output, err := f.runner.Run(ctx, f.config.BinPath, args...)
	if err != nil {
		return "", errors.Wrap(err, "audio download failed")
	}

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	downloaded := strings.TrimSpace(lines[len(lines)-1])
	if downloaded == "" {
		return "", errors.New("audio download produced no file path")
	}

	normalized, err := normalizeExtension(downloaded)
	if err != nil {
		return "", err
	}

	logger.WithField("path", normalized).Info("Audio download completed")
	return normalized, nil
}

func normalizeExtension(path string) (string, error) {
	ext := filepath.Ext(path)
	if ext == ".mp3" {
		return path, nil
	}
	renamed := strings.TrimSuffix(path, ext) + ".mp3"
	if err := os.Rename(path, renamed); err != nil {
		return "", errors.Wrap(err, "failed to rename audio file")
	}
	return renamed, nil
}
