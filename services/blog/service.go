package blog

import (
	"context"
	"time"

	"blogify/errors"
	"blogify/models"
	"blogify/repository"
	"blogify/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type service struct {
	repo        repository.PostRepository
	titles      TitleResolver
	audio       AudioFetcher
	transcriber Transcriber
	generator   Generator
	archiver    Archiver
	validator   *validation.Validator
	logger      *logrus.Logger
}

type Option func(*service)

// WithArchiver enables post-persist archiving to external storage.
func WithArchiver(a Archiver) Option {
	return func(s *service) { s.archiver = a }
}

func NewService(
	repo repository.PostRepository,
	titles TitleResolver,
	audio AudioFetcher,
	transcriber Transcriber,
	generator Generator,
	validator *validation.Validator,
	logger *logrus.Logger,
	opts ...Option,
) Service {
	s := &service{
		repo:        repo,
		titles:      titles,
		audio:       audio,
		transcriber: transcriber,
		generator:   generator,
		validator:   validator,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Generate(ctx context.Context, userID int64, link string) (*models.BlogPost, error) {
	const op = "BlogService.Generate"
	logger := s.logger.WithFields(logrus.Fields{
		"operation": op,
		"link":      link,
		"user_id":   userID,
	})
	logger.Info("Starting blog generation")

	if err := s.validator.ValidateLink(link); err != nil {
		return nil, err
	}

	// Title lookup is best effort; on failure the resolver substitutes a
	// sentinel and the pipeline continues.
	title := s.titles.ResolveTitle(ctx, link)
	logger.WithField("title", title).Info("Resolved video title")

	audioPath, err := s.audio.Fetch(ctx, link)
	if err != nil {
		logger.WithError(err).Error("Audio download failed")
		return nil, errors.Internal(op, err, "Failed to get transcript")
	}

	transcript, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		logger.WithError(err).Error("Transcription failed")
		return nil, errors.Internal(op, err, "Failed to get transcript")
	}
	if transcript == "" {
		logger.Error("Transcription produced empty text")
		return nil, errors.Internal(op, nil, "Failed to get transcript")
	}

	content, err := s.generator.Generate(ctx, transcript)
	if err != nil {
		logger.WithError(err).Error("Blog generation failed")
		return nil, errors.Internal(op, err, "Failed to generate blog")
	}
	if content == "" {
		logger.Error("Generation produced empty content")
		return nil, errors.Internal(op, nil, "Failed to generate blog")
	}

	post := &models.BlogPost{
		ID:               uuid.New().String(),
		UserID:           userID,
		SourceLink:       link,
		SourceTitle:      title,
		GeneratedContent: content,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.repo.Save(ctx, post); err != nil {
		logger.WithError(err).Error("Failed to persist post")
		return nil, err
	}

	if s.archiver != nil {
		if err := s.archiver.ArchivePost(ctx, post, transcript); err != nil {
			logger.WithError(err).Warn("Failed to archive post")
		}
	}

	logger.WithField("post_id", post.ID).Info("Blog post created")
	return post, nil
}

func (s *service) List(ctx context.Context, userID int64) ([]models.BlogPost, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID int64, id string) (*models.BlogPost, error) {
	const op = "BlogService.Get"

	if id == "" {
		return nil, errors.InvalidInput(op, nil, "Post ID is required")
	}

	post, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.UserID != userID {
		return nil, errors.Forbidden(op, nil, "You do not have access to this post")
	}

	return post, nil
}
