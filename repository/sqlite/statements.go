package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"blogify/errors"
)

const (
	insertPostQuery = `
        INSERT INTO posts (
            id, user_id, source_link, source_title,
            generated_content, created_at
        ) VALUES (?, ?, ?, ?, ?, ?)
    `

	getPostQuery = `
        SELECT id, user_id, source_link, source_title,
               generated_content, created_at
        FROM posts WHERE id = ?
    `

	listPostsByUserQuery = `
        SELECT id, user_id, source_link, source_title,
               generated_content, created_at
        FROM posts
        WHERE user_id = ?
        ORDER BY created_at DESC
    `

	insertUserQuery = `
        INSERT INTO users (username, email, password_hash, created_at)
        VALUES (?, ?, ?, ?)
    `

	getUserQuery = `
        SELECT id, username, email, password_hash, created_at
        FROM users WHERE id = ?
    `

	getUserByUsernameQuery = `
        SELECT id, username, email, password_hash, created_at
        FROM users WHERE username = ?
    `
)

type preparedStatements struct {
	insertPost        *sql.Stmt
	getPost           *sql.Stmt
	listPostsByUser   *sql.Stmt
	insertUser        *sql.Stmt
	getUser           *sql.Stmt
	getUserByUsername *sql.Stmt
}

func (stmts *preparedStatements) prepare(ctx context.Context, db *sql.DB) error {
	const op = "preparedStatements.prepare"

	var err error

	if stmts.insertPost, err = db.PrepareContext(ctx, insertPostQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare insert post statement")
	}

	if stmts.getPost, err = db.PrepareContext(ctx, getPostQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare get post statement")
	}

	if stmts.listPostsByUser, err = db.PrepareContext(ctx, listPostsByUserQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare list posts statement")
	}

	if stmts.insertUser, err = db.PrepareContext(ctx, insertUserQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare insert user statement")
	}

	if stmts.getUser, err = db.PrepareContext(ctx, getUserQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare get user statement")
	}

	if stmts.getUserByUsername, err = db.PrepareContext(ctx, getUserByUsernameQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare get user by username statement")
	}

	return nil
}

func (stmts *preparedStatements) close() error {
	var errs []error

	statements := [...]*sql.Stmt{
		stmts.insertPost,
		stmts.getPost,
		stmts.listPostsByUser,
		stmts.insertUser,
		stmts.getUser,
		stmts.getUserByUsername,
	}

	for _, stmt := range statements {
		if stmt != nil {
			if err := stmt.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to close prepared statements: %v", errs)
	}

	return nil
}
