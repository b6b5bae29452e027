package blog

import (
	"context"

	"blogify/models"
)

// Service runs the link-to-article pipeline and serves stored posts.
type Service interface {
	// Generate runs the full pipeline for link and persists the result
	// owned by userID. Each invocation is independent: repeating a link
	// creates a new record.
	Generate(ctx context.Context, userID int64, link string) (*models.BlogPost, error)

	// List returns the posts owned by userID, newest first.
	List(ctx context.Context, userID int64) ([]models.BlogPost, error)

	// Get returns a single post; callers only ever see their own.
	Get(ctx context.Context, userID int64, id string) (*models.BlogPost, error)
}

// TitleResolver is the non-fatal metadata step. It substitutes a sentinel
// title on failure and never reports an error.
type TitleResolver interface {
	ResolveTitle(ctx context.Context, link string) string
}

type AudioFetcher interface {
	Fetch(ctx context.Context, link string) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

type Generator interface {
	Generate(ctx context.Context, transcript string) (string, error)
}

// Archiver copies a finished post to external storage. Optional; failures
// are logged and never affect the pipeline outcome.
type Archiver interface {
	ArchivePost(ctx context.Context, post *models.BlogPost, transcript string) error
}
