package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const systemPrompt = "You are an expert content writer."

const promptTemplate = "Based on the following transcript from a YouTube video, " +
	"write a comprehensive blog article. Do not use bold, italic, or any " +
	"formatting other than plain text. Do not make it look like a YouTube " +
	"video; make it look like a proper blog article:\n\n%s\n\nArticle:"

type Config struct {
	APIKey string
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL            string
	Model              string
	MaxTokens          int
	Temperature        float32
	MaxTranscriptChars int
}

// Generator turns a transcript into blog prose via a chat completion.
type Generator struct {
	client *openai.Client
	config Config
	logger *logrus.Logger
}

func NewGenerator(cfg Config, logger *logrus.Logger) *Generator {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4o
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.MaxTranscriptChars <= 0 {
		cfg.MaxTranscriptChars = 48000
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Generator{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		logger: logger,
	}
}

// Generate returns the article text for the given transcript, trimmed of
// surrounding whitespace.
func (g *Generator) Generate(ctx context.Context, transcript string) (string, error) {
	logger := g.logger.WithField("transcript_chars", len(transcript))

	transcript = truncate(transcript, g.config.MaxTranscriptChars)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(promptTemplate, transcript)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return "", errors.Wrap(err, "chat completion failed")
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	logger.WithField("article_chars", len(content)).Info("Blog content generated")
	return content, nil
}

// truncate caps the transcript at max runes. Long transcripts are cut rather
// than chunked: the pipeline makes a single synchronous completion call.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
