package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"blogify/errors"
	"blogify/models"
)

// Repository implements repository.PostRepository and
// repository.UserRepository on top of sqlite.
type Repository struct {
	db         *sql.DB
	statements preparedStatements
}

func NewRepository(db *sql.DB) (*Repository, error) {
	r := &Repository{db: db}
	if err := r.statements.prepare(context.Background(), db); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) Close() error {
	return r.statements.close()
}

func (r *Repository) Save(ctx context.Context, post *models.BlogPost) error {
	const op = "SQLiteRepository.Save"

	_, err := r.statements.insertPost.ExecContext(ctx,
		post.ID,
		post.UserID,
		post.SourceLink,
		post.SourceTitle,
		post.GeneratedContent,
		post.CreatedAt,
	)
	if err != nil {
		return errors.Internal(op, err, "Failed to save post")
	}
	return nil
}

func (r *Repository) Find(ctx context.Context, id string) (*models.BlogPost, error) {
	const op = "SQLiteRepository.Find"

	post := &models.BlogPost{}
	err := r.statements.getPost.QueryRowContext(ctx, id).Scan(
		&post.ID,
		&post.UserID,
		&post.SourceLink,
		&post.SourceTitle,
		&post.GeneratedContent,
		&post.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, nil, "Post not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query post")
	}

	return post, nil
}

func (r *Repository) FindByUser(ctx context.Context, userID int64) ([]models.BlogPost, error) {
	const op = "SQLiteRepository.FindByUser"

	rows, err := r.statements.listPostsByUser.QueryContext(ctx, userID)
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query posts")
	}
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		var post models.BlogPost
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.SourceLink,
			&post.SourceTitle,
			&post.GeneratedContent,
			&post.CreatedAt,
		); err != nil {
			return nil, errors.Internal(op, err, "Failed to scan post")
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal(op, err, "Failed to iterate posts")
	}

	return posts, nil
}

func (r *Repository) Create(ctx context.Context, user *models.User) error {
	const op = "SQLiteRepository.Create"

	res, err := r.statements.insertUser.ExecContext(ctx,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict(op, err, "Username already taken")
		}
		return errors.Internal(op, err, "Failed to create user")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return errors.Internal(op, err, "Failed to read new user id")
	}
	user.ID = id
	return nil
}

func (r *Repository) FindUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "SQLiteRepository.FindUser"

	user := &models.User{}
	err := r.statements.getUser.QueryRowContext(ctx, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, nil, "User not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query user")
	}

	return user, nil
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "SQLiteRepository.FindByUsername"

	user := &models.User{}
	err := r.statements.getUserByUsername.QueryRowContext(ctx, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, nil, "User not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query user")
	}

	return user, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
