package repository

import (
	"context"

	"blogify/models"
)

type PostRepository interface {
	Save(ctx context.Context, post *models.BlogPost) error
	Find(ctx context.Context, id string) (*models.BlogPost, error)
	FindByUser(ctx context.Context, userID int64) ([]models.BlogPost, error)
}

// UserRepository method names stay distinct from PostRepository's so a single
// store can implement both.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindUser(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}
